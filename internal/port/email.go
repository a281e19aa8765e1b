package port

import "context"

// InvoiceEmail carries what a customer needs to download their invoice.
type InvoiceEmail struct {
	ToEmail       string
	ToName        string
	CompanyName   string
	InvoiceNumber string
	OrderNumber   string
	DocumentURL   string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, msg InvoiceEmail) error
}
