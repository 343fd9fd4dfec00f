package money

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern accepts digits, an optional decimal comma and up to two
// decimal digits. Thousands dots are stripped before matching.
var amountPattern = regexp.MustCompile(`^\d+(,\d{0,2})?$`)

// ParseAmount converts a locale-formatted decimal string (comma as decimal
// separator, optional dot thousands separators) into integer cents.
// The empty string parses as zero. Malformed input returns ok=false so the
// caller can retain its previous valid value instead of corrupting state.
func ParseAmount(s string) (cents int64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	// Strip thousands separators before interpreting the decimal comma.
	s = strings.ReplaceAll(s, ".", "")
	if !amountPattern.MatchString(s) {
		return 0, false
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, ','); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, false
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, false
	}
	return whole*100 + frac, true
}

// FormatCents renders integer cents as a locale-formatted decimal string
// with a comma decimal separator and dot thousands separators, the inverse
// of ParseAmount (e.g. 123456 -> "1.234,56").
func FormatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// PayNow returns the portion of the purchase paid in cash after applying
// the stored-balance deduction, never negative.
func PayNow(totalCents, cashbackUsedCents int64) int64 {
	if cashbackUsedCents >= totalCents {
		return 0
	}
	return totalCents - cashbackUsedCents
}

// MaxApplicable returns the largest stored-balance amount a customer may
// apply to a purchase: the lesser of the available balance and
// maxPercent% of the total.
func MaxApplicable(balanceCents, totalCents, maxPercent int64) int64 {
	if balanceCents < 0 {
		balanceCents = 0
	}
	if totalCents < 0 {
		totalCents = 0
	}
	limit := totalCents * maxPercent / 100
	if balanceCents < limit {
		return balanceCents
	}
	return limit
}

// CashbackToEarn computes the reward on the cash-paid portion, rounding
// half up to the nearest cent.
func CashbackToEarn(payNowCents, percent int64) int64 {
	if payNowCents <= 0 || percent <= 0 {
		return 0
	}
	return (payNowCents*percent + 50) / 100
}
