package session

import (
	"sync"
	"testing"
	"time"

	"EcoFeast-Backend/domain"
)

func seedStore() *ItemStore {
	store := NewItemStore()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.Put(domain.FoodItem{ID: "1", Name: "Lunch Packets", Status: domain.StatusAvailable, Timestamp: base.Add(-time.Hour)})
	store.Put(domain.FoodItem{ID: "2", Name: "Pastries", Status: domain.StatusNotified, Timestamp: base.Add(-2 * time.Hour)})
	store.Put(domain.FoodItem{ID: "3", Name: "Rice Bags", Status: domain.StatusDelivered, Timestamp: base})
	return store
}

func TestListNewestFirst(t *testing.T) {
	store := seedStore()

	items := store.List()
	if len(items) != 3 {
		t.Fatalf("List() returned %d items; want 3", len(items))
	}
	if items[0].ID != "3" || items[1].ID != "1" || items[2].ID != "2" {
		t.Errorf("List() order = %s, %s, %s; want 3, 1, 2", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestListByStatuses(t *testing.T) {
	store := seedStore()

	prePickup := store.ListByStatuses(domain.StatusAvailable, domain.StatusNotified)
	if len(prePickup) != 2 {
		t.Errorf("pre-pickup bucket has %d items; want 2", len(prePickup))
	}

	delivered := store.ListByStatuses(domain.StatusDelivered)
	if len(delivered) != 1 || delivered[0].ID != "3" {
		t.Errorf("delivered bucket = %+v; want item 3 only", delivered)
	}
}

func TestSetStatusUnknownItem(t *testing.T) {
	store := NewItemStore()
	if err := store.SetStatus("missing", domain.StatusAccepted); err != domain.ErrFoodItemNotFound {
		t.Errorf("SetStatus(missing) error = %v; want ErrFoodItemNotFound", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := seedStore()

	item, _ := store.Get("1")
	item.Status = domain.StatusDelivered

	fresh, _ := store.Get("1")
	if fresh.Status != domain.StatusAvailable {
		t.Errorf("store item mutated through a returned copy: %+v", fresh)
	}
}

func TestWithLockSerializesWriters(t *testing.T) {
	store := seedStore()

	const writers = 32
	counter := 0
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_ = store.WithLock("1", func() error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != writers {
		t.Errorf("counter = %d; want %d (lost update under per-item lock)", counter, writers)
	}
}
