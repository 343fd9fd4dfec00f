package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cents int64
		ok    bool
	}{
		{"Empty", "", 0, true},
		{"WholeOnly", "10", 1000, true},
		{"TwoDecimals", "10,10", 1010, true},
		{"OneDecimal", "3,5", 350, true},
		{"TrailingComma", "7,", 700, true},
		{"LeadingZeroFraction", "3,05", 305, true},
		{"ThousandsSeparator", "1.234,56", 123456, true},
		{"MultipleThousands", "1.234.567,89", 123456789, true},
		{"Whitespace", "  12,00 ", 1200, true},
		{"Zero", "0", 0, true},
		{"ThreeDecimals", "1,234", 0, false},
		{"Letters", "abc", 0, false},
		{"MixedLetters", "12a,00", 0, false},
		{"CommaOnly", ",50", 0, false},
		{"Negative", "-5,00", 0, false},
		{"DoubleComma", "1,2,3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cents, cents)
		})
	}
}

func TestParseAmount_NoFloatDrift(t *testing.T) {
	// total "10,10" minus used "3,05" must be exactly 705 cents.
	total, ok := ParseAmount("10,10")
	assert.True(t, ok)
	used, ok := ParseAmount("3,05")
	assert.True(t, ok)
	assert.Equal(t, int64(705), PayNow(total, used))
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0,00"},
		{5, "0,05"},
		{50, "0,50"},
		{705, "7,05"},
		{1010, "10,10"},
		{123456, "1.234,56"},
		{123456789, "1.234.567,89"},
		{-1010, "-10,10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCents(tt.cents))
	}
}

func TestFormatCents_RoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1010, 99999, 100000, 123456789} {
		got, ok := ParseAmount(FormatCents(cents))
		assert.True(t, ok)
		assert.Equal(t, cents, got)
	}
}

func TestPayNow(t *testing.T) {
	assert.Equal(t, int64(1400), PayNow(2000, 600))
	assert.Equal(t, int64(2000), PayNow(2000, 0))
	assert.Equal(t, int64(0), PayNow(2000, 2000))
	// Used above total clamps at zero rather than going negative.
	assert.Equal(t, int64(0), PayNow(2000, 3000))
}

func TestMaxApplicable(t *testing.T) {
	// Balance below the 30% cap: balance wins.
	assert.Equal(t, int64(500), MaxApplicable(500, 2000, 30))
	// Balance above the cap: cap wins. min(1000, 600) = 600.
	assert.Equal(t, int64(600), MaxApplicable(1000, 2000, 30))
	assert.Equal(t, int64(0), MaxApplicable(0, 2000, 30))
	assert.Equal(t, int64(0), MaxApplicable(1000, 0, 30))
	assert.Equal(t, int64(0), MaxApplicable(-100, 2000, 30))
}

func TestCashbackToEarn(t *testing.T) {
	// round(1400 * 5%) = 70
	assert.Equal(t, int64(70), CashbackToEarn(1400, 5))
	// Rounds half up: 1250 * 5% = 62.5 -> 63
	assert.Equal(t, int64(63), CashbackToEarn(1250, 5))
	// 1240 * 5% = 62
	assert.Equal(t, int64(62), CashbackToEarn(1240, 5))
	assert.Equal(t, int64(0), CashbackToEarn(0, 5))
	assert.Equal(t, int64(0), CashbackToEarn(1400, 0))
}
