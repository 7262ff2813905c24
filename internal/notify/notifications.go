package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/homefix-app/homefix/internal/db"
	"github.com/homefix-app/homefix/internal/middleware"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Create stores a notification for a user and pushes it to any open
// websocket sessions. Callers treat failures as non-fatal.
func Create(ctx context.Context, userID, typ, message string) error {
	n := Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Conn.Exec(ctx,
		`INSERT INTO notifications (id, user_id, type, message, read, created_at)
		 VALUES ($1, $2, $3, $4, false, $5)`,
		n.ID, n.UserID, n.Type, n.Message, n.CreatedAt,
	)
	if err != nil {
		return err
	}
	Push(userID, n)
	return nil
}

// GetNotifications - GET /notifications (caller's notifications, newest first)
func GetNotifications(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(),
		`SELECT id, user_id, type, message, read, created_at
		   FROM notifications
		  WHERE user_id = $1
		  ORDER BY created_at DESC
		  LIMIT 100`, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch notifications"})
	}
	defer rows.Close()

	list := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to read notifications"})
		}
		list = append(list, n)
	}
	return c.JSON(http.StatusOK, list)
}

type sendRequest struct {
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SendNotification - POST /notifications (admin or system-facing)
func SendNotification(c echo.Context) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.UserID == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId and message are required"})
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid user id"})
	}
	if req.Type == "" {
		req.Type = "general"
	}

	if err := Create(c.Request().Context(), req.UserID, req.Type, req.Message); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create notification"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Notification sent"})
}

// MarkAsRead - PUT /notifications/:id/read
func MarkAsRead(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid notification id"})
	}

	tag, err := db.Conn.Exec(c.Request().Context(),
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		id, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update notification"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Notification not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}
