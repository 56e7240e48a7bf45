package email

import "log"

type consoleSender struct{}

var _ Sender = (*consoleSender)(nil)

// NewConsoleSender returns a Sender that logs messages instead of delivering
// them. Used in development when no SendGrid key is configured.
func NewConsoleSender() Sender {
	return consoleSender{}
}

func (consoleSender) Send(to, subject, text, _ string) {
	log.Printf("email (console): to=%s subject=%q\n%s", to, subject, text)
}
