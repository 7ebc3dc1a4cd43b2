package email

import (
	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
)

// NewConsoleSender returns an InvoiceSender that writes the message to the
// log instead of a mail provider. Good enough for a demo deployment; swap in
// a real provider behind the same interface for production.
func NewConsoleSender() model.InvoiceSender {
	return &consoleSender{}
}

type consoleSender struct{}

func (s *consoleSender) Send(recipient, subject, body string) error {
	log.WithFields(log.Fields{
		"to":      recipient,
		"subject": subject,
		"body":    body,
	}).Info("invoice email")
	return nil
}
