package console

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney renders an amount with thousands separators, no decimals
// when the amount is whole.
func formatMoney(amount decimal.Decimal, currency string) string {
	places := int32(2)
	if amount.Equal(amount.Truncate(0)) {
		places = 0
	}
	text := amount.StringFixed(places)

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	whole, frac, _ := strings.Cut(text, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if frac != "" {
		out += "." + frac
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

func checkmark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
