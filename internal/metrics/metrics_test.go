package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(httpRequests.WithLabelValues("/bookings"))
	IncHTTP("/bookings")
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/bookings")))

	before = testutil.ToFloat64(bookingTransitions.WithLabelValues("confirmed"))
	IncTransition("confirmed")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("confirmed")))
}
