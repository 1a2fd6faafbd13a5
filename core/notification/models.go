package notification

import (
	"context"
	"time"
)

// Entry types and statuses. There is no real delivery tracking; entries are
// logged as sent the moment the transports accept them.
const (
	TypeNewApplication      = "new_application"
	TypeApplicationReceived = "application_received"

	StatusSent = "sent"
)

type (
	// AdminNotification feeds the admin dashboard.
	AdminNotification struct {
		Type           string    `json:"type"`
		Message        string    `json:"message"`
		ApplicationRef string    `json:"applicationRef"`
		Timestamp      time.Time `json:"timestamp"` // UTC
		Read           bool      `json:"read"`
	}

	// EmailNotification records one acknowledgment email.
	EmailNotification struct {
		To        string    `json:"to"`
		Subject   string    `json:"subject"`
		Body      string    `json:"body"`
		Timestamp time.Time `json:"timestamp"` // UTC
		Status    string    `json:"status"`
		Type      string    `json:"type"`
	}

	// SMSNotification records one acknowledgment text message.
	SMSNotification struct {
		To        string    `json:"to"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"` // UTC
		Status    string    `json:"status"`
		Type      string    `json:"type"`
	}

	// Log is the persistence behind the three parallel notification logs.
	// Each log is append-only; entries are never deleted.
	Log interface {
		AppendAdminNotification(ctx context.Context, n AdminNotification) error
		AppendEmailNotification(ctx context.Context, n EmailNotification) error
		AppendSMSNotification(ctx context.Context, n SMSNotification) error
		QueryAdminNotifications(ctx context.Context) ([]AdminNotification, error)
		QueryEmailNotifications(ctx context.Context) ([]EmailNotification, error)
		QuerySMSNotifications(ctx context.Context) ([]SMSNotification, error)
		// MarkAdminNotificationsRead flags every admin entry as read.
		MarkAdminNotificationsRead(ctx context.Context) error
	}
)
