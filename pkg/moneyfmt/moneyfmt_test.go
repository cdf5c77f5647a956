package moneyfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDOP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "RD$0.00"},
		{"318.6", "RD$318.60"},
		{"1234.56", "RD$1,234.56"},
		{"1000000", "RD$1,000,000.00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DOP(decimal.RequireFromString(c.in)), "monto %s", c.in)
	}
}
