package gst

import (
	"fmt"
	"regexp"
	"strings"
)

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN checks a seller GSTIN's format and that its leading state code
// matches the registered state. An empty GSTIN is allowed; unregistered
// sellers issue invoices without one.
func ValidateGSTIN(gstin, state string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin == "" {
		return nil
	}
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("GSTIN %q does not match the expected format", gstin)
	}
	code, ok := ResolveStateCode(state)
	if !ok {
		return fmt.Errorf("unknown state %q", state)
	}
	if gstin[:2] != code {
		return fmt.Errorf("GSTIN state code %s does not match %s (%s)", gstin[:2], state, code)
	}
	return nil
}
