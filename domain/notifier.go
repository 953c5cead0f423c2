package domain

import "context"

// ParentNotice is one message to a parent about their child.
type ParentNotice struct {
	Parent  *User
	Student *User
	Subject string
	Body    string
}

// Notifier delivers a notice and reports the channel that carried it
// (whatsapp or email). Implementations pick the channel from the parent's
// contact data.
type Notifier interface {
	Send(ctx context.Context, notice *ParentNotice) (method string, err error)
}
