package entities

import (
	"github.com/google/uuid"
)

type FoodItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID   *uuid.UUID `json:"donor_id,omitempty"` // nil for seeded demo listings
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Quantity  string     `json:"quantity"` // free-text magnitude, e.g. "20 Plates"
	Expiry    string     `json:"expiry"`   // free-text or date
	Status    string     `json:"status"`   // one of domain.AllStatuses
	DonorName string     `json:"donor_name"`
	ImageURL  string     `json:"image_url,omitempty"`
	NgoID     *uuid.UUID `json:"ngo_id,omitempty"` // set on acceptance

	Donor *User `gorm:"foreignKey:DonorID"`
	Timestamp
}
