package domain

import "time"

// Section names used in composite views and their error maps.
const (
	SectionPrice       = "price"
	SectionGlobal      = "global"
	SectionOnChain     = "onchain"
	SectionDerivatives = "derivatives"
	SectionSentiment   = "sentiment"
	SectionMacro       = "macro"
)

// DashboardView combines price, global and on-chain data for one symbol.
// Failed sections are nil and described in Errors.
type DashboardView struct {
	Symbol  string            `json:"symbol"`
	Price   *PriceSnapshot    `json:"price"`
	Global  *GlobalSnapshot   `json:"global"`
	OnChain *OnChainSnapshot  `json:"onchain"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ExtendedView combines all six snapshot kinds for one symbol.
type ExtendedView struct {
	Symbol      string               `json:"symbol"`
	Price       *PriceSnapshot       `json:"price"`
	Global      *GlobalSnapshot      `json:"global"`
	OnChain     *OnChainSnapshot     `json:"onchain"`
	Derivatives *DerivativesSnapshot `json:"derivatives"`
	Sentiment   *SentimentSnapshot   `json:"sentiment"`
	Macro       *MacroSnapshot       `json:"macro"`
	Errors      map[string]string    `json:"errors,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// BiasInputs are the six resolved signals a bias score was computed from.
type BiasInputs struct {
	FundingRate        float64 `json:"funding_rate"`
	OIChange24hPercent float64 `json:"oi_change_24h_percent"`
	FearGreed          float64 `json:"fear_greed"`
	DXY                float64 `json:"dxy"`
	VIX                float64 `json:"vix"`
	PriceChange24h     float64 `json:"price_change_24h_percent"`
}

// BiasReport is the response payload of the bias endpoint. Fallbacks lists
// the inputs that were substituted with their neutral defaults.
type BiasReport struct {
	Symbol    string     `json:"symbol"`
	Score     float64    `json:"score"`
	Label     string     `json:"label"`
	Inputs    BiasInputs `json:"inputs"`
	Fallbacks []string   `json:"fallbacks"`
}
