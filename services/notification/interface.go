package notification

import "context"

// Sender delivers a templated notification to a recipient. Callers treat
// delivery as fire-and-forget: an error is logged by the caller and never
// blocks the mutation that triggered the notification.
type Sender interface {
	Send(ctx context.Context, to, template string, data map[string]string) error
}
