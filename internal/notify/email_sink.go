package notify

import (
	"github.com/gsolanocr/comercio-api/internal/snapshot"
	"github.com/gsolanocr/comercio-api/internal/whatsapp"
	"github.com/gsolanocr/comercio-api/pkg/email"
)

// EmailSink forwards purchase notifications to the business owner's inbox.
// Other notification types pass through silently.
type EmailSink struct {
	service *email.Service
	to      string
}

func NewEmailSink(service *email.Service, to string) *EmailSink {
	return &EmailSink{service: service, to: to}
}

func (s *EmailSink) Deliver(n snapshot.Notification) error {
	if n.Type != "purchase" || s.to == "" {
		return nil
	}
	// The alert template carries the currency sign.
	total := whatsapp.FormatAmount(n.Total)
	return s.service.SendSaleAlert(s.to, n.ClientName, n.ClientPhone, total, n.Reference)
}
