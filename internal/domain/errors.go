package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can tell an unreachable upstream
// apart from a schema change or a bad symbol.
type ErrorKind string

const (
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindBadSchema           ErrorKind = "bad_schema"
	KindUnknownSymbol       ErrorKind = "unknown_symbol"
	KindBadRequest          ErrorKind = "bad_request"
	KindInternal            ErrorKind = "internal"
)

var (
	ErrInvalidSymbol  = errors.New("invalid symbol")
	ErrSymbolNotFound = errors.New("coin not found or invalid symbol")
)

// Error is a classified failure, optionally attributed to a provider.
type Error struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func NewError(kind ErrorKind, provider string, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Err: err}
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind of err. Deadline and cancellation errors count as
// an unavailable upstream; anything unclassified is internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUpstreamUnavailable
	}
	return KindInternal
}

// Upstream wraps a transport failure or non-200 response.
func Upstream(provider string, err error) error {
	return NewError(KindUpstreamUnavailable, provider, err)
}

// Schema wraps a decode failure or a payload missing expected fields.
func Schema(provider string, err error) error {
	return NewError(KindBadSchema, provider, err)
}

// UnknownSymbol reports that a provider has no data for symbol.
func UnknownSymbol(provider, symbol string) error {
	return NewError(KindUnknownSymbol, provider, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol))
}
