package domain

import (
	"regexp"
	"strings"
)

// CoinStatsID maps ticker symbols to CoinStats coin identifiers.
var CoinStatsID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"BNB":   "binance-coin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
}

var symbolRx = regexp.MustCompile(`^[A-Z0-9]{1,15}$`)

// NormalizeSymbol upper-cases and validates a ticker symbol.
func NormalizeSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !symbolRx.MatchString(symbol) {
		return "", NewError(KindUnknownSymbol, "", ErrInvalidSymbol)
	}
	return symbol, nil
}

// CoinStatsIDFor resolves the CoinStats id for a symbol, falling back to
// the lower-cased symbol for unmapped coins.
func CoinStatsIDFor(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if id, ok := CoinStatsID[symbol]; ok {
		return id
	}
	return strings.ToLower(symbol)
}
