package bias

// Signals carries optional raw signals. A nil field means the source
// snapshot was unavailable.
type Signals struct {
	FundingRate    *float64
	OIChange       *float64
	FearGreed      *float64
	DXY            *float64
	VIX            *float64
	PriceChange24h *float64
}

// Signal names reported when a fallback is substituted.
const (
	SignalFundingRate    = "funding_rate"
	SignalOIChange       = "oi_change_24h_percent"
	SignalFearGreed      = "fear_greed"
	SignalDXY            = "dxy"
	SignalVIX            = "vix"
	SignalPriceChange24h = "price_change_24h_percent"
)

// Resolve substitutes neutral fallbacks for missing signals and returns the
// names of the substituted ones in a stable order.
func Resolve(sig Signals) (Input, []string) {
	in := NeutralInput()
	fallbacks := make([]string, 0, 6)

	pick := func(dst *float64, v *float64, name string) {
		if v == nil {
			fallbacks = append(fallbacks, name)
			return
		}
		*dst = *v
	}

	pick(&in.FundingRate, sig.FundingRate, SignalFundingRate)
	pick(&in.OIChange, sig.OIChange, SignalOIChange)
	pick(&in.FearGreed, sig.FearGreed, SignalFearGreed)
	pick(&in.DXY, sig.DXY, SignalDXY)
	pick(&in.VIX, sig.VIX, SignalVIX)
	pick(&in.PriceChange24h, sig.PriceChange24h, SignalPriceChange24h)

	return in, fallbacks
}
