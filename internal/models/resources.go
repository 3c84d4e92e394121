package models

import "time"

// Organization is a tenant on the platform.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Device is an RFID reader registered to an organization.
type Device struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Name           string     `json:"name"`
	SerialNumber   string     `json:"serial_number"`
	Online         bool       `json:"online"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
}

// Card is an issued RFID card bound to a user.
type Card struct {
	ID     string `json:"id"`
	UID    string `json:"uid"`
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}

// AttendanceEvent is a single card read recorded by a device.
type AttendanceEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	CardUID   string    `json:"card_uid"`
	DeviceID  string    `json:"device_id"`
	UserID    string    `json:"user_id,omitempty"`
	Direction string    `json:"direction"`
}

// Notification is a backend message addressed to the current user.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
