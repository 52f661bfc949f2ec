package pickup

import (
	"context"

	"EcoFeast-Backend/domain"
	"EcoFeast-Backend/pkg/donation"
	"EcoFeast-Backend/pkg/session"
)

type (
	// PickupService drives one item through the fixed pickup sequence.
	// Every transition applies an optimistic session-store update, writes the
	// new status through the persistence port, and reverts the local update
	// if the remote write fails, so local and cloud state never diverge.
	PickupService interface {
		Accept(ctx context.Context, id string, ngoID string) (domain.FoodItem, error)
		Advance(ctx context.Context, id string) (domain.FoodItem, error)
	}

	pickupService struct {
		donationRepository donation.DonationRepository
		store              *session.ItemStore
	}
)

func NewPickupService(donationRepository donation.DonationRepository, store *session.ItemStore) PickupService {
	return &pickupService{
		donationRepository: donationRepository,
		store:              store,
	}
}

// Accept is the sole entry point into the pickup sequence. Valid only from
// Available or Notified; accepting an already-accepted item is a no-op, and
// any later status is rejected.
func (s *pickupService) Accept(ctx context.Context, id string, ngoID string) (domain.FoodItem, error) {
	var result domain.FoodItem

	err := s.store.WithLock(id, func() error {
		item, ok := s.store.Get(id)
		if !ok {
			return domain.ErrFoodItemNotFound
		}

		switch {
		case domain.IsPrePickup(item.Status):
			return s.transition(ctx, &item, domain.StatusAccepted, ngoID)
		case item.Status == domain.StatusAccepted:
			result = item
			return nil
		default:
			return domain.ErrPickupInProgress
		}
	})
	if err != nil {
		return domain.FoodItem{}, err
	}

	if result.ID == "" {
		result, _ = s.store.Get(id)
	}
	return result, nil
}

// Advance moves the item to the next status in the pickup sequence. Calling
// it on a Delivered item is a terminal no-op.
func (s *pickupService) Advance(ctx context.Context, id string) (domain.FoodItem, error) {
	err := s.store.WithLock(id, func() error {
		item, ok := s.store.Get(id)
		if !ok {
			return domain.ErrFoodItemNotFound
		}

		if domain.IsTerminal(item.Status) {
			return nil
		}
		if !domain.InPickup(item.Status) {
			return domain.ErrNotAcceptable
		}

		next, ok := domain.NextStatus(item.Status)
		if !ok {
			return nil
		}
		return s.transition(ctx, &item, next, "")
	})
	if err != nil {
		return domain.FoodItem{}, err
	}

	item, _ := s.store.Get(id)
	return item, nil
}

// transition performs the optimistic local update followed by the remote
// write, reverting on failure. Callers must hold the per-item lock.
func (s *pickupService) transition(ctx context.Context, item *domain.FoodItem, next domain.FoodStatus, ngoID string) error {
	prev := item.Status
	if err := s.store.SetStatus(item.ID, next); err != nil {
		return err
	}

	if err := s.donationRepository.UpdateFoodStatus(ctx, item.ID, next, ngoID); err != nil {
		_ = s.store.SetStatus(item.ID, prev)
		return err
	}
	return nil
}
