package domain

import "errors"

// FallbackDescription is returned whenever the vision service cannot produce
// an assessment. The zero confidence signals that the verdict is not
// authoritative and a human check is still needed.
const FallbackDescription = "AI analysis unavailable. Please perform a manual freshness check before proceeding."

var (
	ErrEmptyImage              = errors.New("image data is empty")
	ErrVerificationUnavailable = errors.New("verification service unavailable")
)

// VerificationResult is the outcome of one AI safety check on one photograph.
// Produced once per submitted image and never mutated.
type VerificationResult struct {
	IsSafe         bool    `json:"isSafe"`
	Confidence     float64 `json:"confidence"`
	Description    string  `json:"description"`
	FreshnessScore float64 `json:"freshnessScore"`
}

// FallbackVerification is the fixed result used when the vision service
// fails: submission must never be blocked by service unavailability.
func FallbackVerification() VerificationResult {
	return VerificationResult{
		IsSafe:         true,
		Confidence:     0,
		Description:    FallbackDescription,
		FreshnessScore: 50,
	}
}
