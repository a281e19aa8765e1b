package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1001#", "1001#%"},
		{"CN-1001-55#", "CN-1001-55#%"},
		{"a_b%c#", `a\_b\%c#%`},
		{`back\slash#`, `back\\slash#%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePrefix(tt.in))
		})
	}
}
