package ports

import "context"

// EmailMessage is a single outbound transactional email.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers transactional email. Implementations do not retry;
// delivery failure is surfaced to the caller as a retryable error.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
