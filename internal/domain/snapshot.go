package domain

import "time"

// PriceSnapshot is the latest quote for a single coin.
type PriceSnapshot struct {
	Symbol           string    `json:"symbol"`
	PriceUSD         float64   `json:"price_usd"`
	Volume24hUSD     float64   `json:"volume_24h_usd"`
	Change24hPercent float64   `json:"change_24h_percent"`
	Change1hPercent  float64   `json:"change_1h_percent"`
	Change7dPercent  float64   `json:"change_7d_percent"`
	MarketCapUSD     float64   `json:"market_cap_usd"`
	LastUpdated      time.Time `json:"last_updated"`
}

// GlobalSnapshot holds market-wide totals and dominance.
type GlobalSnapshot struct {
	TotalMarketCapUSD      float64   `json:"total_market_cap_usd"`
	TotalVolume24hUSD      float64   `json:"total_volume_24h_usd"`
	BTCDominancePercent    float64   `json:"btc_dominance_percent"`
	ETHDominancePercent    float64   `json:"eth_dominance_percent"`
	ActiveCryptocurrencies int       `json:"active_cryptocurrencies"`
	LastUpdated            time.Time `json:"last_updated"`
}

// OnChainSnapshot carries supply and market data from the on-chain provider.
// Explorers is part of the canonical schema even though some upstream
// responses omit it.
type OnChainSnapshot struct {
	Name            string   `json:"name"`
	Symbol          string   `json:"symbol"`
	Rank            int      `json:"rank"`
	PriceUSD        float64  `json:"price_usd"`
	MarketCapUSD    float64  `json:"market_cap_usd"`
	Volume24hUSD    float64  `json:"volume_24h_usd"`
	AvailableSupply float64  `json:"available_supply"`
	TotalSupply     float64  `json:"total_supply"`
	PriceChange1h   float64  `json:"price_change_1h"`
	PriceChange1d   float64  `json:"price_change_1d"`
	PriceChange1w   float64  `json:"price_change_1w"`
	WebsiteURL      string   `json:"website_url,omitempty"`
	Explorers       []string `json:"explorers"`
}

// DerivativesSnapshot aggregates perpetual futures data across venues.
type DerivativesSnapshot struct {
	Symbol             string  `json:"symbol"`
	FundingRate        float64 `json:"funding_rate"`
	FundingExchanges   int     `json:"funding_exchanges"`
	OpenInterestUSD    float64 `json:"open_interest_usd"`
	OIChange24hPercent float64 `json:"oi_change_24h_percent"`
}

// SentimentSnapshot is the latest fear-and-greed reading.
type SentimentSnapshot struct {
	Value            int       `json:"value"`
	Classification   string    `json:"classification"`
	Timestamp        time.Time `json:"timestamp"`
	TimeUntilUpdateS int       `json:"time_until_update_s"`
}

// MacroQuote is one index or commodity quote.
type MacroQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}

// MacroSnapshot groups the macro indices. A nil quote means that index
// could not be fetched.
type MacroSnapshot struct {
	DXY    *MacroQuote `json:"dxy"`
	Nasdaq *MacroQuote `json:"nasdaq"`
	Gold   *MacroQuote `json:"gold"`
	VIX    *MacroQuote `json:"vix"`
}

// CoinListing is one row of the top-N listing.
type CoinListing struct {
	Rank             int     `json:"rank"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	PriceUSD         float64 `json:"price_usd"`
	MarketCapUSD     float64 `json:"market_cap_usd"`
	Volume24hUSD     float64 `json:"volume_24h_usd"`
	Change24hPercent float64 `json:"change_24h_percent"`
}
