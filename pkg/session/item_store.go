package session

import (
	"sort"
	"sync"

	"EcoFeast-Backend/domain"
)

// ItemStore holds the session's view of all known food items. It replaces
// the implicit global collection with an explicit store: safe for concurrent
// readers at all times, with per-item locks so only one writer performs a
// status transition at a time. Items are stored and returned by value.
type ItemStore struct {
	mu    sync.RWMutex
	items map[string]domain.FoodItem

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func NewItemStore() *ItemStore {
	return &ItemStore{
		items: make(map[string]domain.FoodItem),
		locks: make(map[string]*sync.Mutex),
	}
}

// Put inserts or replaces an item. Used for warm-loading and for records
// returned by the persistence layer after creation.
func (s *ItemStore) Put(item domain.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

func (s *ItemStore) Get(id string) (domain.FoodItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// List returns all items, newest first.
func (s *ItemStore) List() []domain.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FoodItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// ListByStatuses returns items whose status matches any of the given
// statuses, newest first.
func (s *ItemStore) ListByStatuses(statuses ...domain.FoodStatus) []domain.FoodItem {
	all := s.List()
	out := make([]domain.FoodItem, 0, len(all))
	for _, item := range all {
		for _, st := range statuses {
			if item.Status == st {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// SetStatus updates the status of a known item.
func (s *ItemStore) SetStatus(id string, status domain.FoodStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return domain.ErrFoodItemNotFound
	}
	item.Status = status
	s.items[id] = item
	return nil
}

func (s *ItemStore) lockFor(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	return m
}

// WithLock runs fn while holding the per-item lock, serializing status
// transitions on one item without blocking transitions on others.
func (s *ItemStore) WithLock(id string, fn func() error) error {
	m := s.lockFor(id)
	m.Lock()
	defer m.Unlock()
	return fn()
}
