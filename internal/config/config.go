package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"krypto-backend/internal/bias"
	"krypto-backend/internal/provider"

	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPAddr string

	CMCKey       string
	CoinglassKey string

	CMCBaseURL       string
	CoinStatsBaseURL string
	CoinglassBaseURL string
	FearGreedBaseURL string
	YahooBaseURL     string

	CacheBackend    string
	RedisURL        string
	CacheMaxEntries int

	UpstreamTimeoutSecs int

	// Calls per minute allowed to each keyed upstream. 0 disables pacing.
	CMCCallsPerMin       int
	CoinglassCallsPerMin int

	LogLevel  string
	LogFormat string

	WarmSymbols      []string
	WarmIntervalSecs int

	Bias bias.Thresholds
}

// UpstreamTimeout bounds each individual provider call.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSecs) * time.Second
}

func Load() *Config {
	cfg := &Config{
		CMCKey:           strings.TrimSpace(os.Getenv("CMC_KEY")),
		CoinglassKey:     strings.TrimSpace(os.Getenv("COINGLASS_KEY")),
		CMCBaseURL:       strings.TrimSpace(os.Getenv("CMC_BASE_URL")),
		CoinStatsBaseURL: strings.TrimSpace(os.Getenv("COINSTATS_BASE_URL")),
		CoinglassBaseURL: strings.TrimSpace(os.Getenv("COINGLASS_BASE_URL")),
		FearGreedBaseURL: strings.TrimSpace(os.Getenv("FEAR_GREED_BASE_URL")),
		YahooBaseURL:     strings.TrimSpace(os.Getenv("YAHOO_BASE_URL")),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	cfg.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.CMCKey == "" {
		log.Warn().Msg("CMC_KEY not set, price/global/multi endpoints will fail upstream")
	}
	if cfg.CoinglassKey == "" {
		log.Warn().Msg("COINGLASS_KEY not set, derivatives endpoint will fail upstream")
	}

	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(os.Getenv("CACHE_BACKEND")))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = "memory"
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		log.Warn().Str("backend", cfg.CacheBackend).Msg("unsupported CACHE_BACKEND, defaulting to memory")
		cfg.CacheBackend = "memory"
	}
	if cfg.CacheBackend == "redis" && cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.CacheMaxEntries = positiveInt("CACHE_MAX_ENTRIES", 1024)
	cfg.UpstreamTimeoutSecs = positiveInt("UPSTREAM_TIMEOUT_SECS", 10)
	cfg.CMCCallsPerMin = nonNegativeInt("CMC_CALLS_PER_MIN", provider.DefaultCoinMarketCapCallsPerMinute)
	cfg.CoinglassCallsPerMin = nonNegativeInt("COINGLASS_CALLS_PER_MIN", provider.DefaultCoinglassCallsPerMinute)

	cfg.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat != "console" {
		cfg.LogFormat = "json"
	}

	for _, s := range strings.Split(os.Getenv("WARM_SYMBOLS"), ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			cfg.WarmSymbols = append(cfg.WarmSymbols, s)
		}
	}
	cfg.WarmIntervalSecs = positiveInt("WARM_INTERVAL_SECS", 60)

	th := bias.DefaultThresholds()
	th.OIChangePercent = envFloat("BIAS_OI_CHANGE_PCT", th.OIChangePercent)
	th.FearGreedHigh = envFloat("BIAS_FEAR_GREED_HIGH", th.FearGreedHigh)
	th.FearGreedLow = envFloat("BIAS_FEAR_GREED_LOW", th.FearGreedLow)
	th.DXYHigh = envFloat("BIAS_DXY_HIGH", th.DXYHigh)
	th.DXYLow = envFloat("BIAS_DXY_LOW", th.DXYLow)
	th.VIXHigh = envFloat("BIAS_VIX_HIGH", th.VIXHigh)
	th.VIXLow = envFloat("BIAS_VIX_LOW", th.VIXLow)
	if !th.Valid() {
		log.Warn().Msg("inconsistent BIAS_* thresholds, using defaults")
		th = bias.DefaultThresholds()
	}
	cfg.Bias = th

	return cfg
}

func positiveInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
	}
	return def
}

func nonNegativeInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid number, using default")
	}
	return def
}
