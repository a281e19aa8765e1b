package ses

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstsync/internal/port"
)

func TestInvoiceBodies(t *testing.T) {
	msg := port.InvoiceEmail{
		ToEmail:       "asha@example.com",
		ToName:        "Asha <Admin>",
		CompanyName:   "Acme Textiles",
		InvoiceNumber: "INV-1001",
		OrderNumber:   "1001",
		DocumentURL:   "https://cdn.example.com/inv.pdf?a=1&b=2",
	}

	assert.Equal(t, "Your invoice INV-1001 for order 1001", invoiceSubject(msg))

	text := buildInvoiceText(msg)
	assert.Contains(t, text, "Hi Asha <Admin>,")
	assert.Contains(t, text, msg.DocumentURL)

	body := buildInvoiceHTML(msg)
	assert.Contains(t, body, "Asha &lt;Admin&gt;")
	assert.Contains(t, body, "a=1&amp;b=2")
	assert.Contains(t, body, "Acme Textiles")
}

func TestGreetingNameFallback(t *testing.T) {
	assert.Equal(t, "there", greetingName(port.InvoiceEmail{}))
}
