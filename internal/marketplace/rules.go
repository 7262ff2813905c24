package marketplace

import "errors"

// Sentinel errors for the booking lifecycle rules. Handlers map these to
// HTTP statuses at their own boundary.
var (
	ErrNotParticipant  = errors.New("caller is neither the customer nor the provider of this booking")
	ErrNotCustomer     = errors.New("only the customer can review a booking")
	ErrNotCompleted    = errors.New("can only review completed bookings")
	ErrAlreadyReviewed = errors.New("review already exists for this booking")
	ErrBadRating       = errors.New("rating must be between 1 and 5")
	ErrBadTransition   = errors.New("invalid status transition")
)

// ValidateTransition checks that the caller may move the booking to the
// target status.
func ValidateTransition(callerID string, b Booking, target string) error {
	if callerID != b.CustomerID && callerID != b.ProviderID {
		return ErrNotParticipant
	}
	if !CanTransition(b.Status, target) {
		return ErrBadTransition
	}
	return nil
}

// ValidateReview checks that the caller may submit a rating and review for
// the booking. Re-reviewing is rejected; the first submission wins.
func ValidateReview(callerID string, b Booking, rating int) error {
	if callerID != b.CustomerID {
		return ErrNotCustomer
	}
	if rating < 1 || rating > 5 {
		return ErrBadRating
	}
	if b.Status != StatusCompleted {
		return ErrNotCompleted
	}
	if b.Rating != nil {
		return ErrAlreadyReviewed
	}
	return nil
}

// AggregateRating is the arithmetic mean of the given ratings, or 0 when
// there are none. Full float precision, no rounding.
func AggregateRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += r
	}
	return float64(total) / float64(len(ratings))
}
