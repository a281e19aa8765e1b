// Package hsn resolves a line item's HSN classification code.
package hsn

import (
	"regexp"
	"strings"

	"gstsync/internal/domain"
)

var (
	skuPattern  = regexp.MustCompile(`HSN(\d{4,8})`)
	codePattern = regexp.MustCompile(`\d+(?:[ .\-]\d+)*`)
)

// Code lengths accepted on the ledger: chapter heading up to full tariff item.
const (
	MinCodeDigits = 4
	MaxCodeDigits = 8
)

// Source names where a code was found, for logging.
const (
	SourceMetafield = "metafield"
	SourceCache     = "cache"
	SourceFetch     = "fetch"
	SourceProperty  = "property"
	SourceSKU       = "sku"
)

// Normalize reduces free text such as "6109.10.00" or "HSN 6109 10 00" to the
// digits of the first code with at least MinCodeDigits digits, truncated to
// MaxCodeDigits. The result always fits the ledger's hsn column.
func Normalize(raw string) (string, bool) {
	for _, m := range codePattern.FindAllString(raw, -1) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, m)
		if len(digits) < MinCodeDigits {
			continue
		}
		if len(digits) > MaxCodeDigits {
			digits = digits[:MaxCodeDigits]
		}
		return digits, true
	}
	return "", false
}

// FromMetafield returns the structured product field carried on the item, if any.
func FromMetafield(item *domain.RawLineItem) (string, bool) {
	if item.HSNMetafield == nil {
		return "", false
	}
	return Normalize(*item.HSNMetafield)
}

// FromProperties returns the first property whose name contains "hsn".
func FromProperties(item *domain.RawLineItem) (string, bool) {
	for i := range item.Properties {
		p := &item.Properties[i]
		if !strings.Contains(strings.ToLower(p.Name), "hsn") {
			continue
		}
		if code, ok := Normalize(p.Value); ok {
			return code, true
		}
	}
	return "", false
}

// FromSKU returns the digits of an "HSN<digits>" token embedded in the SKU.
func FromSKU(item *domain.RawLineItem) (string, bool) {
	m := skuPattern.FindStringSubmatch(item.SKU)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Extract applies the offline sources in priority order: metafield, property, SKU.
// The first match wins; sources are never merged.
func Extract(item *domain.RawLineItem) (code, source string, ok bool) {
	if code, ok := FromMetafield(item); ok {
		return code, SourceMetafield, true
	}
	if code, ok := FromProperties(item); ok {
		return code, SourceProperty, true
	}
	if code, ok := FromSKU(item); ok {
		return code, SourceSKU, true
	}
	return "", "", false
}
