package normalize

import (
	"regexp"
	"strings"
)

// currencySymbols maps leading price symbols to ISO 4217 codes.
// "kr" is ambiguous across the Nordic currencies; SEK is the convention
// the dataset settled on.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
	{"kr", "SEK"},
}

var (
	trailingCode = regexp.MustCompile(`^([\d.,\s]+)\s*([A-Z]{3})$`)
	leadingCode  = regexp.MustCompile(`^([A-Z]{3})\s*([\d.,]+)$`)
	bareNumber   = regexp.MustCompile(`^[\d.,]+$`)
)

// ParsePrice parses a price string like "$19.99", "€24,99" or "19.99 USD"
// into a decimal amount string and an ISO currency code. A bare number
// yields an amount with no currency. Both results are empty when no numeric
// pattern matches.
func ParsePrice(raw string) (amount, currency string) {
	price := strings.TrimSpace(raw)
	if price == "" {
		return "", ""
	}

	for _, sym := range currencySymbols {
		if strings.HasPrefix(price, sym.symbol) {
			amount = strings.TrimSpace(strings.TrimPrefix(price, sym.symbol))
			amount = strings.ReplaceAll(amount, ",", ".")
			amount = strings.ReplaceAll(amount, " ", "")
			return amount, sym.code
		}
	}

	if m := trailingCode.FindStringSubmatch(price); m != nil {
		amount = strings.ReplaceAll(strings.TrimSpace(m[1]), ",", ".")
		amount = strings.ReplaceAll(amount, " ", "")
		return amount, m[2]
	}

	if m := leadingCode.FindStringSubmatch(price); m != nil {
		return strings.ReplaceAll(m[2], ",", "."), m[1]
	}

	if bareNumber.MatchString(price) {
		return strings.ReplaceAll(price, ",", "."), ""
	}

	return "", ""
}
