package api

import (
	"context"
	"fmt"

	"go-recruitart-client/internal/models"
)

type NotificationCount struct {
	Count  int `json:"count"`
	Unread int `json:"unread_count"`
}

type markReadRequest struct {
	NotificationIDs []int `json:"notification_ids"`
}

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.get(ctx, "/notifications/notifications/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.get(ctx, "/notifications/notifications/unread/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CountNotifications(ctx context.Context) (*NotificationCount, error) {
	var out NotificationCount
	if err := c.get(ctx, "/notifications/notifications/count/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkNotificationsRead marks the given ids as read; an empty slice marks
// everything read, matching the backend contract.
func (c *Client) MarkNotificationsRead(ctx context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	return c.postJSON(ctx, "/notifications/notifications/mark_as_read/", markReadRequest{NotificationIDs: ids}, nil)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.postJSON(ctx, fmt.Sprintf("/notifications/notifications/%d/read/", id), nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/notifications/notifications/%d/", id))
}
