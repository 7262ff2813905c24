package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records one confirmed charge attempt against a booking.
// Amount is in minor units (cents). Never mutated after creation.
type Payment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	BookingID       string    `json:"bookingId"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	PaymentIntentID string    `json:"paymentIntentId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Cents converts a price in major units to minor units with decimal
// half-up rounding: 19.994 -> 1999, 19.995 -> 2000. Plain float64 math
// would round 19.995 down because it is not exactly representable.
func Cents(price float64) int64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
