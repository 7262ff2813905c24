package marketplace

import "time"

// Booking lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Payment statuses carried on a booking.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Categories is the closed set of service categories.
var Categories = []string{
	"plumbing", "electrical", "cleaning", "carpentry",
	"painting", "pest_control", "appliance_repair", "gardening",
}

// Weekdays accepted in a listing's availability.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// ValidWeekdays reports whether every day is a known weekday.
func ValidWeekdays(days []string) bool {
	for _, d := range days {
		found := false
		for _, w := range Weekdays {
			if d == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Hours is a daily time-of-day window.
type Hours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability describes when a listing can be booked.
type Availability struct {
	Days  []string `json:"days"`
	Hours Hours    `json:"hours"`
}

// Service is a provider-published offering.
type Service struct {
	ID           string       `json:"id"`
	ProviderID   string       `json:"provider"`
	ProviderName string       `json:"providerName,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	BasePrice    float64      `json:"basePrice"`
	IsEmergency  bool         `json:"isEmergency"`
	Availability Availability `json:"availability"`
	Rating       float64      `json:"rating"`
	Images       []string     `json:"images"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Booking is a scheduled engagement between a customer and a provider.
type Booking struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service"`
	CustomerID    string    `json:"customer"`
	ProviderID    string    `json:"provider"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	Address       string    `json:"address"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	PaymentStatus string    `json:"paymentStatus"`
	Emergency     bool      `json:"emergency"`
	Rating        *int      `json:"rating,omitempty"`
	Review        *string   `json:"review,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookingReview is a rated booking surfaced on a listing detail.
type BookingReview struct {
	BookingID    string    `json:"bookingId"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review"`
	CreatedAt    time.Time `json:"createdAt"`
}
