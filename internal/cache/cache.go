package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// TTL is the freshness window shared by every key.
const TTL = 60 * time.Second

// Snapshot kinds used as key prefixes.
const (
	KindPrice       = "price"
	KindGlobal      = "global"
	KindOnChain     = "onchain"
	KindDerivatives = "derivatives"
	KindSentiment   = "sentiment"
	KindMacro       = "macro"
	KindListing     = "multi"
	KindExtended    = "extended"
)

// Cache stores serialized snapshots for at most TTL. Implementations never
// surface errors: a failed read is a miss and a failed write is dropped.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte)
}

// Key builds "<kind>:<SYMBOL>", or just "<kind>" for symbol-less snapshots.
func Key(kind, symbol string) string {
	if symbol == "" {
		return kind
	}
	return kind + ":" + strings.ToUpper(symbol)
}

// GetJSON reads key and decodes it into a T. Undecodable entries are
// treated as a miss.
func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// PutJSON encodes v and stores it under key.
func PutJSON[T any](ctx context.Context, c Cache, key string, v *T) {
	if c == nil || v == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Put(ctx, key, raw)
}
