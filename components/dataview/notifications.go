package dataview

import "context"

// Severity levels understood by toast presenters.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notification is a (message, severity) pair for the toast presenter.
type Notification struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Notification) error { return nil }

// NotificationsClient defines the minimal interface needed from an external
// notifications service.
type NotificationsClient interface {
	PublishNotification(ctx context.Context, channel string, n Notification) error
}

// NotificationsHook forwards toasts to an external notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// Notify publishes the notification on the configured channel.
func (h *NotificationsHook) Notify(ctx context.Context, n Notification) error {
	if h == nil || h.Client == nil {
		return nil
	}
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	return h.Client.PublishNotification(ctx, h.Channel, n)
}
