package money_test

import (
	"testing"

	"github.com/finbooks/bookkeeping_app/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no change at 2dp", in: "310.50", want: "310.5"},
		{name: "half rounds up", in: "40.505", want: "40.51"},
		{name: "below half rounds down", in: "40.504", want: "40.5"},
		{name: "negative half rounds away from zero", in: "-40.505", want: "-40.51"},
		{name: "full precision truncated", in: "270.13333", want: "270.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.Round(dec(tt.in))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "equal", a: "100.00", b: "100.00", want: true},
		{name: "exactly at epsilon", a: "500.00", b: "499.99", want: true},
		{name: "just beyond epsilon", a: "500.00", b: "499.98", want: false},
		{name: "far apart", a: "620.00", b: "621.00", want: false},
		{name: "symmetric", a: "499.99", b: "500.00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Within(dec(tt.a), dec(tt.b)))
		})
	}
}

func TestIsSettled(t *testing.T) {
	assert.True(t, money.IsSettled(dec("0")))
	assert.True(t, money.IsSettled(dec("0.01")))
	assert.True(t, money.IsSettled(dec("-0.02")), "overpayment residue counts as settled")
	assert.False(t, money.IsSettled(dec("0.02")))
	assert.False(t, money.IsSettled(dec("79.00")))
}

func TestPercentKeepsPrecision(t *testing.T) {
	// 270 * 15% = 40.5 exactly; 100.10 * 7.77% keeps all digits until rounded.
	assert.True(t, money.Percent(dec("270"), dec("15")).Equal(dec("40.5")))
	assert.True(t, money.Percent(dec("100.10"), dec("7.77")).Equal(dec("7.777770")))
}
