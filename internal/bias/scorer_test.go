package bias

import (
	"math"
	"testing"
)

func TestScoreAllBullish(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	out := s.Score(Input{FundingRate: 0.01, OIChange: 2, FearGreed: 75, DXY: 98, VIX: 10, PriceChange24h: 3})
	if out.Score != 5 {
		t.Fatalf("expected score 5, got %v", out.Score)
	}
	if out.Label != LabelBullish {
		t.Fatalf("expected Bullish, got %s", out.Label)
	}
}

func TestScoreAllBearish(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	out := s.Score(Input{FundingRate: -0.01, OIChange: -2, FearGreed: 20, DXY: 110, VIX: 25, PriceChange24h: -3})
	if out.Score != -5 {
		t.Fatalf("expected score -5, got %v", out.Score)
	}
	if out.Label != LabelBearish {
		t.Fatalf("expected Bearish, got %s", out.Label)
	}
}

func TestScoreNeutralFallbacks(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	out := s.Score(NeutralInput())
	if out.Score != 0 || out.Label != LabelNeutral {
		t.Fatalf("expected 0/Neutral, got %+v", out)
	}
}

func TestScoreBoundaryValuesContributeNothing(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	base := NeutralInput()

	tests := []struct {
		name string
		mod  func(*Input)
	}{
		{"funding zero", func(in *Input) { in.FundingRate = 0 }},
		{"oi at +1", func(in *Input) { in.OIChange = 1 }},
		{"oi at -1", func(in *Input) { in.OIChange = -1 }},
		{"fear 41", func(in *Input) { in.FearGreed = 41 }},
		{"fear 59", func(in *Input) { in.FearGreed = 59 }},
		{"dxy 105", func(in *Input) { in.DXY = 105 }},
		{"dxy 100", func(in *Input) { in.DXY = 100 }},
		{"vix 18", func(in *Input) { in.VIX = 18 }},
		{"vix 13", func(in *Input) { in.VIX = 13 }},
		{"price change zero", func(in *Input) { in.PriceChange24h = 0 }},
	}
	for _, tt := range tests {
		in := base
		tt.mod(&in)
		if out := s.Score(in); out.Score != 0 {
			t.Fatalf("%s: expected 0 contribution, got %v", tt.name, out.Score)
		}
	}
}

func TestScoreFearGreedInclusiveBounds(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	in := NeutralInput()

	in.FearGreed = 60
	if out := s.Score(in); out.Score != 1 {
		t.Fatalf("fear 60 should add 1, got %v", out.Score)
	}
	in.FearGreed = 40
	if out := s.Score(in); out.Score != -1 {
		t.Fatalf("fear 40 should subtract 1, got %v", out.Score)
	}
}

func TestScoreSingleTerms(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	tests := []struct {
		name string
		mod  func(*Input)
		want float64
	}{
		{"oi up", func(in *Input) { in.OIChange = 1.01 }, 0.5},
		{"oi down", func(in *Input) { in.OIChange = -1.01 }, -0.5},
		{"dxy strong", func(in *Input) { in.DXY = 105.01 }, -1},
		{"dxy weak", func(in *Input) { in.DXY = 99.99 }, 1},
		{"vix high", func(in *Input) { in.VIX = 18.5 }, -0.5},
		{"vix low", func(in *Input) { in.VIX = 12.9 }, 0.5},
		{"funding tiny positive", func(in *Input) { in.FundingRate = 0.0001 }, 1},
	}
	for _, tt := range tests {
		in := NeutralInput()
		tt.mod(&in)
		if out := s.Score(in); out.Score != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, out.Score)
		}
	}
}

func TestScoreBoundedAndLabelConsistent(t *testing.T) {
	s := NewScorer(DefaultThresholds())
	funding := []float64{-0.5, 0, 0.5}
	oi := []float64{-5, -1, 0, 1, 5}
	fear := []float64{0, 40, 50, 60, 100}
	dxy := []float64{90, 100, 102, 105, 120}
	vix := []float64{5, 13, 15, 18, 40}
	price := []float64{-10, 0, 10}

	for _, f := range funding {
		for _, o := range oi {
			for _, fg := range fear {
				for _, d := range dxy {
					for _, v := range vix {
						for _, p := range price {
							out := s.Score(Input{FundingRate: f, OIChange: o, FearGreed: fg, DXY: d, VIX: v, PriceChange24h: p})
							if out.Score < MinScore || out.Score > MaxScore {
								t.Fatalf("score out of range: %v", out.Score)
							}
							want := LabelNeutral
							if out.Score >= 3 {
								want = LabelBullish
							} else if out.Score <= -3 {
								want = LabelBearish
							}
							if out.Label != want {
								t.Fatalf("score %v labelled %s, expected %s", out.Score, out.Label, want)
							}
						}
					}
				}
			}
		}
	}
}

func TestScoreLabelEdges(t *testing.T) {
	s := NewScorer(DefaultThresholds())

	// funding + fear + price = 3
	in := NeutralInput()
	in.FundingRate, in.FearGreed, in.PriceChange24h = 0.01, 80, 1
	if out := s.Score(in); out.Score != 3 || out.Label != LabelBullish {
		t.Fatalf("expected 3/Bullish, got %+v", out)
	}

	// 2.5 stays neutral
	in.OIChange = 0
	in.PriceChange24h = 0
	in.VIX = 10
	if out := s.Score(in); out.Score != 2.5 || out.Label != LabelNeutral {
		t.Fatalf("expected 2.5/Neutral, got %+v", out)
	}
}

func TestScoreCustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.DXYHigh = 110
	s := NewScorer(th)

	in := NeutralInput()
	in.DXY = 107
	if out := s.Score(in); out.Score != 0 {
		t.Fatalf("dxy 107 should be neutral with high=110, got %v", out.Score)
	}
}

func TestThresholdsValid(t *testing.T) {
	if !DefaultThresholds().Valid() {
		t.Fatal("default thresholds should be valid")
	}

	cases := map[string]func(*Thresholds){
		"negative oi band": func(th *Thresholds) { th.OIChangePercent = -0.5 },
		"nan fear high":    func(th *Thresholds) { th.FearGreedHigh = math.NaN() },
		"inf vix low":      func(th *Thresholds) { th.VIXLow = math.Inf(-1) },
		"inverted dxy":     func(th *Thresholds) { th.DXYLow = 110 },
	}
	for name, mutate := range cases {
		th := DefaultThresholds()
		mutate(&th)
		if th.Valid() {
			t.Fatalf("%s: expected invalid thresholds", name)
		}
	}
}
