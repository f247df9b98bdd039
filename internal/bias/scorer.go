package bias

import "math"

// Label is the three-way classification of a bias score.
type Label string

const (
	LabelBullish Label = "Bullish"
	LabelNeutral Label = "Neutral"
	LabelBearish Label = "Bearish"
)

const (
	MinScore = -5.0
	MaxScore = 5.0
)

// Neutral fallbacks used when a signal's source snapshot is unavailable.
const (
	FallbackFundingRate    = 0.0
	FallbackOIChange       = 0.0
	FallbackFearGreed      = 50.0
	FallbackDXY            = 100.0
	FallbackVIX            = 15.0
	FallbackPriceChange24h = 0.0
)

// Thresholds are the comparison points for each signal. Funding rate and
// price change are compared against zero and have no threshold.
type Thresholds struct {
	OIChangePercent float64
	FearGreedHigh   float64
	FearGreedLow    float64
	DXYHigh         float64
	DXYLow          float64
	VIXHigh         float64
	VIXLow          float64
	BullishScore    float64
	BearishScore    float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		OIChangePercent: 1,
		FearGreedHigh:   60,
		FearGreedLow:    40,
		DXYHigh:         105,
		DXYLow:          100,
		VIXHigh:         18,
		VIXLow:          13,
		BullishScore:    3,
		BearishScore:    -3,
	}
}

// Valid reports whether t can be scored: every value is finite, each
// low/high pair is ordered and the OI band is not negative.
func (t Thresholds) Valid() bool {
	for _, v := range []float64{t.OIChangePercent, t.FearGreedHigh, t.FearGreedLow, t.DXYHigh, t.DXYLow, t.VIXHigh, t.VIXLow} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return t.OIChangePercent >= 0 &&
		t.FearGreedLow <= t.FearGreedHigh &&
		t.DXYLow <= t.DXYHigh &&
		t.VIXLow <= t.VIXHigh
}

// Input holds the six resolved signals.
type Input struct {
	FundingRate    float64
	OIChange       float64
	FearGreed      float64
	DXY            float64
	VIX            float64
	PriceChange24h float64
}

// NeutralInput returns an input with every signal at its fallback.
func NeutralInput() Input {
	return Input{
		FundingRate:    FallbackFundingRate,
		OIChange:       FallbackOIChange,
		FearGreed:      FallbackFearGreed,
		DXY:            FallbackDXY,
		VIX:            FallbackVIX,
		PriceChange24h: FallbackPriceChange24h,
	}
}

type Result struct {
	Score float64
	Label Label
}

// Scorer turns six market signals into a bounded directional score.
type Scorer struct {
	th Thresholds
}

func NewScorer(th Thresholds) *Scorer {
	return &Scorer{th: th}
}

// Score is deterministic. Each signal adds or subtracts on strict
// inequality only, so a value sitting exactly on a threshold contributes
// nothing. The sum is clamped, then rounded to two decimals.
func (s *Scorer) Score(in Input) Result {
	th := s.th
	score := 0.0

	switch {
	case in.FundingRate > 0:
		score += 1
	case in.FundingRate < 0:
		score -= 1
	}

	switch {
	case in.OIChange > th.OIChangePercent:
		score += 0.5
	case in.OIChange < -th.OIChangePercent:
		score -= 0.5
	}

	switch {
	case in.FearGreed >= th.FearGreedHigh:
		score += 1
	case in.FearGreed <= th.FearGreedLow:
		score -= 1
	}

	// strong dollar is risk-off
	switch {
	case in.DXY > th.DXYHigh:
		score -= 1
	case in.DXY < th.DXYLow:
		score += 1
	}

	switch {
	case in.VIX > th.VIXHigh:
		score -= 0.5
	case in.VIX < th.VIXLow:
		score += 0.5
	}

	switch {
	case in.PriceChange24h > 0:
		score += 1
	case in.PriceChange24h < 0:
		score -= 1
	}

	score = clamp(score, MinScore, MaxScore)
	return Result{
		Score: round2(score),
		Label: s.classify(score),
	}
}

func (s *Scorer) classify(score float64) Label {
	switch {
	case score >= s.th.BullishScore:
		return LabelBullish
	case score <= s.th.BearishScore:
		return LabelBearish
	default:
		return LabelNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
