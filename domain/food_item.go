package domain

import (
	"errors"
	"time"
)

// FoodStatus is the closed set of states a donated food item moves through.
// Available and Notified are donor-side pre-pickup states; the remaining four
// form the strict pickup sequence and are totally ordered.
type FoodStatus string

const (
	StatusAvailable FoodStatus = "Available"
	StatusNotified  FoodStatus = "Notified"
	StatusAccepted  FoodStatus = "Accepted"
	StatusOnTheWay  FoodStatus = "On the way"
	StatusPickedUp  FoodStatus = "Picked up"
	StatusDelivered FoodStatus = "Delivered"
)

// AllStatuses lists every valid status, pre-pickup states first.
var AllStatuses = []FoodStatus{
	StatusAvailable,
	StatusNotified,
	StatusAccepted,
	StatusOnTheWay,
	StatusPickedUp,
	StatusDelivered,
}

// PickupSequence is the fixed forward-only progression handled by the pickup
// controller. "Next status" and "is terminal" are index lookups on this slice,
// never ad hoc comparisons.
var PickupSequence = []FoodStatus{
	StatusAccepted,
	StatusOnTheWay,
	StatusPickedUp,
	StatusDelivered,
}

func pickupIndex(s FoodStatus) int {
	for i, v := range PickupSequence {
		if v == s {
			return i
		}
	}
	return -1
}

// NextStatus returns the status following s in the pickup sequence. ok is
// false when s is terminal or not part of the sequence.
func NextStatus(s FoodStatus) (FoodStatus, bool) {
	idx := pickupIndex(s)
	if idx < 0 || idx == len(PickupSequence)-1 {
		return s, false
	}
	return PickupSequence[idx+1], true
}

// IsTerminal reports whether s is the final state of the lifecycle.
func IsTerminal(s FoodStatus) bool {
	return s == StatusDelivered
}

// IsPrePickup reports whether s precedes the pickup sequence, i.e. the item
// has not yet been claimed by an NGO.
func IsPrePickup(s FoodStatus) bool {
	return s == StatusAvailable || s == StatusNotified
}

// InPickup reports whether s belongs to the pickup sequence.
func InPickup(s FoodStatus) bool {
	return pickupIndex(s) >= 0
}

// ParseFoodStatus validates a raw status string against the enumeration.
func ParseFoodStatus(raw string) (FoodStatus, error) {
	for _, s := range AllStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", ErrInvalidFoodStatus
}

var (
	MessageSuccessGetFoodItems = "food items retrieved successfully"
	MessageSuccessGetFoodItem  = "food item retrieved successfully"
	MessageSuccessAcceptItem   = "food item accepted for pickup"
	MessageSuccessAdvanceItem  = "pickup status advanced"

	MessageFailedGetFoodItems = "failed to retrieve food items"
	MessageFailedAcceptItem   = "failed to accept food item"
	MessageFailedAdvanceItem  = "failed to advance pickup status"

	ErrFoodItemNotFound  = errors.New("food item not found")
	ErrInvalidFoodStatus = errors.New("invalid food status")
	ErrNotAcceptable     = errors.New("food item is not available for acceptance")
	ErrPickupInProgress  = errors.New("pickup already in progress for this item")
	ErrStatusSyncFailed  = errors.New("failed to sync status with cloud store")
)

type (
	// FoodItem is one donation offer as exposed to clients. ID is assigned by
	// the persistence layer on creation; Status is the only field that mutates
	// after persistence.
	FoodItem struct {
		ID        string     `json:"id"`
		Name      string     `json:"name"`
		Category  string     `json:"category"`
		Quantity  string     `json:"quantity"`
		Expiry    string     `json:"expiry"`
		Status    FoodStatus `json:"status"`
		DonorName string     `json:"donorName"`
		Image     string     `json:"image"`
		Timestamp time.Time  `json:"timestamp"`
	}
)
