package email

import (
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridSender struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
}

var _ Sender = (*sendgridSender)(nil)

// NewSendgridSender builds a Sender backed by the SendGrid v3 mail API.
func NewSendgridSender(apiKey, fromEmail, appName string) Sender {
	return &sendgridSender{
		client:     sendgrid.NewSendClient(apiKey),
		from:       sgmail.NewEmail(appName, fromEmail),
		subjPrefix: "[" + appName + "] ",
	}
}

func (s *sendgridSender) Send(to, subject, text, html string) {
	go func() {
		msg := sgmail.NewSingleEmail(s.from, s.subjPrefix+subject, sgmail.NewEmail("", to), text, html)
		resp, err := s.client.Send(msg)
		if err != nil {
			log.Printf("sendgrid: sending %q to %s: %v", subject, to, err)
			return
		}
		if resp.StatusCode >= http.StatusBadRequest {
			log.Printf("sendgrid: sending %q to %s: status %d: %s", subject, to, resp.StatusCode, resp.Body)
		}
	}()
}
