package claim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"US$", "USD"},
	{"Rs.", "INR"},
	{"Rs", "INR"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"₹", "INR"},
	{"¥", "JPY"},
}

// Known ISO 4217 currency codes accepted as a prefix or suffix.
var knownCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "INR": true, "JPY": true,
	"CAD": true, "AUD": true, "CHF": true, "CNY": true, "SGD": true,
	"AED": true, "NZD": true, "ZAR": true, "MXN": true, "BRL": true,
}

// Currencies without a minor unit.
var zeroDecimalCurrencies = map[string]bool{"JPY": true}

var (
	isoPrefix    = regexp.MustCompile(`^([A-Za-z]{3})\s*(.*)$`)
	isoSuffix    = regexp.MustCompile(`^(.*?)\s*([A-Za-z]{3})$`)
	plainDecimal = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// ParseAmount converts a printed amount such as "$1,250.00" or "EUR 1.250,00"
// into minor units and an ISO currency code. defaultCurrency is used when the
// text carries no currency marker.
func ParseAmount(s, defaultCurrency string) (int64, string, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, "", fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		negative = true
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if strings.HasPrefix(text, "-") {
		negative = true
		text = strings.TrimSpace(text[1:])
	}

	currency, text := splitCurrency(text)
	if currency == "" {
		currency = strings.ToUpper(defaultCurrency)
	}
	if strings.HasPrefix(text, "-") {
		negative = true
		text = strings.TrimSpace(text[1:])
	}

	number, err := canonicalNumber(text)
	if err != nil {
		return 0, "", fmt.Errorf("amount %q: %w", s, err)
	}

	minor, err := toMinorUnits(number, currency)
	if err != nil {
		return 0, "", fmt.Errorf("amount %q: %w", s, err)
	}
	if negative {
		minor = -minor
	}
	return minor, currency, nil
}

func splitCurrency(text string) (string, string) {
	for _, cs := range currencySymbols {
		if strings.HasPrefix(text, cs.symbol) {
			return cs.code, strings.TrimSpace(strings.TrimPrefix(text, cs.symbol))
		}
		if strings.HasSuffix(text, cs.symbol) {
			return cs.code, strings.TrimSpace(strings.TrimSuffix(text, cs.symbol))
		}
	}
	if m := isoPrefix.FindStringSubmatch(text); m != nil && knownCurrencies[strings.ToUpper(m[1])] {
		return strings.ToUpper(m[1]), strings.TrimSpace(m[2])
	}
	if m := isoSuffix.FindStringSubmatch(text); m != nil && knownCurrencies[strings.ToUpper(m[2])] {
		return strings.ToUpper(m[2]), strings.TrimSpace(m[1])
	}
	return "", text
}

// canonicalNumber rewrites grouped numbers ("1,250.00", "1.250,00", "1 250")
// into a plain decimal with a dot separator.
func canonicalNumber(text string) (string, error) {
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "\u00a0", "")
	if text == "" {
		return "", fmt.Errorf("no digits")
	}

	lastComma := strings.LastIndex(text, ",")
	lastDot := strings.LastIndex(text, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			text = strings.ReplaceAll(text, ".", "")
			text = strings.Replace(text, ",", ".", 1)
		} else {
			text = strings.ReplaceAll(text, ",", "")
		}
	case lastComma >= 0:
		decimals := len(text) - lastComma - 1
		if strings.Count(text, ",") == 1 && decimals == 2 {
			text = strings.Replace(text, ",", ".", 1)
		} else {
			text = strings.ReplaceAll(text, ",", "")
		}
	case strings.Count(text, ".") > 1:
		text = strings.ReplaceAll(text, ".", "")
	}

	if !plainDecimal.MatchString(text) {
		return "", fmt.Errorf("not a number")
	}
	return text, nil
}

func toMinorUnits(number, currency string) (int64, error) {
	digits := 2
	if zeroDecimalCurrencies[currency] {
		digits = 0
	}

	whole, frac, _ := strings.Cut(number, ".")
	frac = strings.TrimRight(frac, "0")
	if len(frac) > digits {
		return 0, fmt.Errorf("more than %d decimal places", digits)
	}
	frac += strings.Repeat("0", digits-len(frac))

	minor, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("out of range")
	}
	return minor, nil
}
