package noop

import (
	"context"

	log "github.com/sirupsen/logrus"

	"gstsync/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs the invoice link instead of sending it.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, msg port.InvoiceEmail) error {
	log.Printf("[NOOP EMAIL] Invoice %s for %s (%s): %s", msg.InvoiceNumber, msg.ToName, msg.ToEmail, msg.DocumentURL)
	return nil
}
