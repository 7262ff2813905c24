package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init()
	}
	return client
}

func appURL() string {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return strings.TrimRight(base, "/")
}

// EnqueueWelcomeEmail schedules a welcome email to a new user
func EnqueueWelcomeEmail(userID, email, name string) error {
	subject := fmt.Sprintf("Welcome to HomeFix, %s!", name)
	body := fmt.Sprintf("Hi %s, thanks for joining HomeFix.\n\nBrowse services: %s/services", name, appURL())

	payload := WelcomeEmailPayload{
		UserID: userID,
		Name:   name,
		Email:  email,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: subject,
			Body:    body,
		},
		SentAt: time.Now(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = ensureClient().Enqueue(asynq.NewTask(TaskWelcomeEmail, b), asynq.Queue("emails"))
	return err
}

// EnqueueBookingRequested tells a provider about a new booking request
func EnqueueBookingRequested(bookingID, customerID, providerID, email, serviceName string) error {
	payload := BookingRequestedPayload{
		BookingID:   bookingID,
		CustomerID:  customerID,
		ProviderID:  providerID,
		Email:       email,
		ServiceName: serviceName,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: "New booking request on HomeFix",
			Body:    fmt.Sprintf("You have a new booking request for %s.\n\nReview it: %s/bookings/%s", serviceName, appURL(), bookingID),
		},
		SentAt: time.Now(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = ensureClient().Enqueue(asynq.NewTask(TaskBookingRequested, b), asynq.Queue("emails"))
	return err
}

// EnqueueBookingStatusChanged tells the counterparty a booking moved
func EnqueueBookingStatusChanged(bookingID, customerID, providerID, email, status string) error {
	payload := BookingStatusChangedPayload{
		BookingID:  bookingID,
		CustomerID: customerID,
		ProviderID: providerID,
		Email:      email,
		Status:     status,
		Envelope: EmailEnvelope{
			To:      email,
			Subject: fmt.Sprintf("Your HomeFix booking is now %s", status),
			Body:    fmt.Sprintf("Booking %s changed status to %s.\n\nView it: %s/bookings/%s", bookingID, status, appURL(), bookingID),
		},
		SentAt: time.Now(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = ensureClient().Enqueue(asynq.NewTask(TaskBookingStatusChanged, b), asynq.Queue("emails"))
	return err
}
