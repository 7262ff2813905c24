package notify

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homefix-app/homefix/internal/middleware"
)

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestNotificationsWSPush(t *testing.T) {
	userID := "11111111-1111-1111-1111-111111111111"

	e := echo.New()
	e.GET("/notifications/ws", NotificationsWS, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("principal", middleware.Principal{ID: userID, Role: "homeowner"})
			return next(c)
		}
	})

	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/ws"
	conn := dialWS(t, url)
	defer conn.Close()

	// Wait for the read loop to register the connection
	require.Eventually(t, func() bool {
		return getHub(userID).size() == 1
	}, time.Second, 10*time.Millisecond)

	n := Notification{
		ID:      "22222222-2222-2222-2222-222222222222",
		UserID:  userID,
		Type:    "booking_request",
		Message: "New booking request",
	}
	Push(userID, n)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt wsEvent
	require.NoError(t, json.Unmarshal(payload, &evt))
	assert.Equal(t, "notification_new", evt.Type)

	data, ok := evt.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, n.ID, data["id"])
	assert.Equal(t, n.Message, data["message"])
}

func TestHubUnregisterOnClose(t *testing.T) {
	userID := "33333333-3333-3333-3333-333333333333"

	e := echo.New()
	e.GET("/notifications/ws", NotificationsWS, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("principal", middleware.Principal{ID: userID, Role: "service_provider"})
			return next(c)
		}
	})

	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/ws"
	conn := dialWS(t, url)

	require.Eventually(t, func() bool {
		return getHub(userID).size() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return getHub(userID).size() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationsWSUnauthorized(t *testing.T) {
	e := echo.New()
	e.GET("/notifications/ws", NotificationsWS)

	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}
