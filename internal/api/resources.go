package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/haymini/hayctl/internal/models"
)

// The backend is inconsistent about collection payloads: some
// endpoints return a bare JSON array, others wrap it in an object
// keyed by the resource name. normalizeList maps both shapes into one
// canonical slice so the inconsistency never leaks past this package.
func normalizeList[T any](data []byte, key string) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	raw, ok := wrapper[key]
	if !ok {
		return nil, fmt.Errorf("%w: response missing %q collection", ErrUnavailable, key)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	return items, nil
}

func listResource[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	var raw json.RawMessage
	if err := c.getResource(ctx, path, &raw); err != nil {
		return nil, err
	}
	return normalizeList[T](raw, key)
}

// ListOrganizations returns all organizations visible to the caller.
func (c *Client) ListOrganizations(ctx context.Context) ([]models.Organization, error) {
	return listResource[models.Organization](ctx, c, "/organizations", "organizations")
}

// ListUsers returns all users visible to the caller.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return listResource[models.User](ctx, c, "/users", "users")
}

// ListDevices returns all registered RFID readers.
func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	return listResource[models.Device](ctx, c, "/devices", "devices")
}

// ListCards returns all issued cards.
func (c *Client) ListCards(ctx context.Context) ([]models.Card, error) {
	return listResource[models.Card](ctx, c, "/cards", "cards")
}

// ListEvents returns recorded attendance events.
func (c *Client) ListEvents(ctx context.Context) ([]models.AttendanceEvent, error) {
	return listResource[models.AttendanceEvent](ctx, c, "/logs", "logs")
}

// ListNotifications returns notifications for the current user.
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return listResource[models.Notification](ctx, c, "/notifications", "notifications")
}
