package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func booking(status string) Booking {
	return Booking{
		ID:         "b1",
		ServiceID:  "s1",
		CustomerID: "customer",
		ProviderID: "provider",
		Status:     status,
	}
}

func TestValidateTransition(t *testing.T) {
	t.Run("CustomerMayCancel", func(t *testing.T) {
		assert.NoError(t, ValidateTransition("customer", booking(StatusPending), StatusCancelled))
	})

	t.Run("ProviderMayConfirm", func(t *testing.T) {
		assert.NoError(t, ValidateTransition("provider", booking(StatusPending), StatusConfirmed))
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		err := ValidateTransition("someone-else", booking(StatusPending), StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("ParticipantCannotSkip", func(t *testing.T) {
		err := ValidateTransition("provider", booking(StatusPending), StatusCompleted)
		assert.ErrorIs(t, err, ErrBadTransition)
	})

	t.Run("ParticipantCannotMoveBackward", func(t *testing.T) {
		err := ValidateTransition("customer", booking(StatusInProgress), StatusPending)
		assert.ErrorIs(t, err, ErrBadTransition)
	})
}

func TestValidateReview(t *testing.T) {
	t.Run("CustomerOnCompleted", func(t *testing.T) {
		assert.NoError(t, ValidateReview("customer", booking(StatusCompleted), 5))
	})

	t.Run("ProviderForbiddenEvenOnOwnBooking", func(t *testing.T) {
		err := ValidateReview("provider", booking(StatusCompleted), 5)
		assert.ErrorIs(t, err, ErrNotCustomer)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		err := ValidateReview("someone-else", booking(StatusCompleted), 5)
		assert.ErrorIs(t, err, ErrNotCustomer)
	})

	t.Run("NotCompletedRejectedRegardlessOfStatus", func(t *testing.T) {
		for _, status := range []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCancelled} {
			err := ValidateReview("customer", booking(status), 4)
			assert.ErrorIs(t, err, ErrNotCompleted, status)
		}
	})

	t.Run("RatingBounds", func(t *testing.T) {
		assert.ErrorIs(t, ValidateReview("customer", booking(StatusCompleted), 0), ErrBadRating)
		assert.ErrorIs(t, ValidateReview("customer", booking(StatusCompleted), 6), ErrBadRating)
		assert.NoError(t, ValidateReview("customer", booking(StatusCompleted), 1))
		assert.NoError(t, ValidateReview("customer", booking(StatusCompleted), 5))
	})

	t.Run("SecondReviewRejected", func(t *testing.T) {
		b := booking(StatusCompleted)
		existing := 5
		b.Rating = &existing
		err := ValidateReview("customer", b, 3)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})
}

func TestAggregateRating(t *testing.T) {
	t.Run("EmptyIsZero", func(t *testing.T) {
		assert.Equal(t, 0.0, AggregateRating(nil))
		assert.Equal(t, 0.0, AggregateRating([]int{}))
	})

	t.Run("MeanOfRatings", func(t *testing.T) {
		assert.Equal(t, 4.0, AggregateRating([]int{5, 4, 3}))
		assert.Equal(t, 5.0, AggregateRating([]int{5}))
	})

	t.Run("FullPrecisionNoRounding", func(t *testing.T) {
		assert.InDelta(t, 4.333333333333333, AggregateRating([]int{5, 4, 4}), 1e-12)
		assert.InDelta(t, 3.6666666666666665, AggregateRating([]int{5, 4, 2}), 1e-12)
	})
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("roofing"))
	assert.False(t, ValidCategory(""))
}

func TestValidWeekdays(t *testing.T) {
	assert.True(t, ValidWeekdays(nil))
	assert.True(t, ValidWeekdays([]string{"monday", "sunday"}))
	assert.False(t, ValidWeekdays([]string{"monday", "funday"}))
}
