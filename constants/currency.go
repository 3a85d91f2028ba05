package constants

// Currency is the fixed set of supported ISO 4217 codes.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyZAR Currency = "ZAR"
	CurrencyGBP Currency = "GBP"
)

// DefaultCurrency is what a fresh entry draft starts with.
const DefaultCurrency = CurrencyUSD

var allCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyZAR, CurrencyGBP}

func Currencies() []string {
	result := make([]string, len(allCurrencies))
	for i, c := range allCurrencies {
		result[i] = string(c)
	}
	return result
}

func IsCurrency(s string) bool {
	for _, c := range allCurrencies {
		if s == string(c) {
			return true
		}
	}
	return false
}
