// Package notify holds the outbound transports the delivery processor talks
// to. Both are best-effort from the processor's point of view: a transport
// error is recorded, never retried.
package notify

import "context"

// Mailer sends a single email. Implementations must be safe for use from
// multiple goroutines.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Pusher mirrors an in-app notification to an external chat, keyed by the
// recipient's linked chat ID.
type Pusher interface {
	Push(ctx context.Context, chatID int64, text string) error
}
