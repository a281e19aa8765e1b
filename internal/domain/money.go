package domain

import (
	"bytes"
	"fmt"
	"strconv"
)

// Money is a currency amount decoded from either a JSON number or a JSON string.
// Commerce platforms commonly send prices as strings ("118.00").
type Money float64

// UnmarshalJSON accepts 118, 118.5, "118.00", "" and null.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	*m = Money(v)
	return nil
}

// Float64 returns the amount as a float64.
func (m Money) Float64() float64 {
	return float64(m)
}
