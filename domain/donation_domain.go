package domain

import (
	"errors"
	"mime/multipart"
)

// Status buckets used by the dashboard listings.
const (
	BucketAvailable = "available"
	BucketActive    = "active"
	BucketDelivered = "delivered"
)

var (
	MessageSuccessSubmitDonation = "donation submitted successfully"
	MessageSuccessVerifyImage    = "food image verified"
	MessageSuccessGetImpact      = "impact statistics retrieved successfully"

	MessageFailedSubmitDonation = "failed to submit donation"
	MessageFailedVerifyImage    = "failed to verify food image"
	MessageFailedGetImpact      = "failed to retrieve impact statistics"

	ErrMissingFoodImage   = errors.New("food image is required")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrInvalidBucket      = errors.New("invalid status bucket")
	ErrSubmissionFailed   = errors.New("donation submission failed")
)

type (
	SubmitDonationRequest struct {
		Name     string                `json:"name" form:"name" validate:"required"`
		Category string                `json:"category" form:"category" validate:"required"`
		Quantity string                `json:"quantity" form:"quantity" validate:"required"`
		Expiry   string                `json:"expiry" form:"expiry" validate:"required"`
		Image    *multipart.FileHeader `json:"image" form:"image"`
	}

	// ImpactStats mirrors the donor-facing impact dashboard. Baselines carry
	// over the program totals accumulated before per-item tracking started.
	ImpactStats struct {
		FoodSavedKg float64 `json:"foodSavedKg"`
		PeopleFed   int     `json:"peopleFed"`
		CO2SavedKg  float64 `json:"co2SavedKg"`
	}
)
