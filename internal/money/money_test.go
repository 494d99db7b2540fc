package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/money"
)

func TestToMilliunits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "WholeAmount", input: "10", want: 10000},
		{name: "TwoDecimals", input: "10.50", want: 10500},
		{name: "ThreeDecimals", input: "0.001", want: 1},
		{name: "Negative", input: "-588.74", want: -588740},
		{name: "RoundsHalfUp", input: "1.0005", want: 1001},
		{name: "RoundsHalfAwayFromZeroNegative", input: "-1.0005", want: -1001},
		{name: "RoundsDown", input: "2.0004", want: 2000},
		{name: "Zero", input: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.want, money.ToMilliunits(d))
		})
	}
}

func TestFromMilliunits(t *testing.T) {
	assert.Equal(t, "10.5", money.FromMilliunits(10500).String())
	assert.Equal(t, "-0.001", money.FromMilliunits(-1).String())
	assert.Equal(t, "0", money.FromMilliunits(0).String())
}

// Round-tripping any amount through storage must preserve it to three
// decimal places.
func TestRoundTrip(t *testing.T) {
	inputs := []string{"10.5", "-0.004", "1234.567", "0.0005", "-99.9995"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			d, err := decimal.NewFromString(in)
			require.NoError(t, err)

			got := money.FromMilliunits(money.ToMilliunits(d))
			assert.True(t, got.Equal(d.Round(3)), "got %s want %s", got, d.Round(3))
		})
	}
}

func TestParseAmount(t *testing.T) {
	got, err := money.ParseAmount("10.50")
	require.NoError(t, err)
	assert.Equal(t, int64(10500), got)

	_, err = money.ParseAmount("not-a-number")
	assert.Error(t, err)
}
