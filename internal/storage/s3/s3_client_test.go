package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopySource(t *testing.T) {
	assert.Equal(t, "invoices/active/demo/INV-1001.pdf",
		copySource("invoices", "active/demo/INV-1001.pdf"))
	assert.Equal(t, "invoices/active/my%20shop/INV%231.pdf",
		copySource("invoices", "active/my shop/INV#1.pdf"))
}
