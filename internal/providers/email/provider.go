package email

import (
	"context"
	"errors"
)

// Message is one outbound email. Attachments are optional.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string

	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

// ErrDisabled is returned when email delivery is switched off in settings.
var ErrDisabled = errors.New("email_disabled")
