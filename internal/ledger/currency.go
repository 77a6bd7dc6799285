package ledger

import "sort"

// DefaultCurrency is used when an intent or account omits one.
const DefaultCurrency = "INR"

var currencyNames = map[string]string{
	"INR": "Indian Rupee",
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "Pound Sterling",
	"AED": "UAE Dirham",
	"SGD": "Singapore Dollar",
	"AUD": "Australian Dollar",
	"CAD": "Canadian Dollar",
	"JPY": "Japanese Yen",
	"CHF": "Swiss Franc",
}

func ValidCurrency(code string) bool {
	_, ok := currencyNames[code]
	return ok
}

// CurrencyCodes returns the supported codes sorted alphabetically.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(currencyNames))
	for code := range currencyNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
