package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail         = "email:welcome"
	TaskBookingRequested     = "email:booking_requested"
	TaskBookingStatusChanged = "email:booking_status_changed"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// Booking requested payload (sent to the provider)
type BookingRequestedPayload struct {
	BookingID   string        `json:"booking_id"`
	CustomerID  string        `json:"customer_id"`
	ProviderID  string        `json:"provider_id"`
	Email       string        `json:"email"`
	ServiceName string        `json:"service_name"`
	Envelope    EmailEnvelope `json:"envelope"`
	SentAt      time.Time     `json:"sent_at"`
}

// Booking status changed payload (sent to the counterparty)
type BookingStatusChangedPayload struct {
	BookingID  string        `json:"booking_id"`
	CustomerID string        `json:"customer_id"`
	ProviderID string        `json:"provider_id"`
	Email      string        `json:"email"`
	Status     string        `json:"status"`
	Envelope   EmailEnvelope `json:"envelope"`
	SentAt     time.Time     `json:"sent_at"`
}
