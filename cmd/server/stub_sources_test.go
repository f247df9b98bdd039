package main

import (
	"context"
	"errors"

	"krypto-backend/internal/domain"
)

var errStubDown = errors.New("stub upstream down")

type stubSources struct{}

func (stubSources) FetchQuote(context.Context, string) (*domain.PriceSnapshot, error) {
	return nil, errStubDown
}

func (stubSources) FetchGlobal(context.Context) (*domain.GlobalSnapshot, error) {
	return nil, errStubDown
}

func (stubSources) FetchListings(context.Context, int) ([]domain.CoinListing, error) {
	return nil, errStubDown
}

func (stubSources) FetchCoin(context.Context, string) (*domain.OnChainSnapshot, error) {
	return nil, errStubDown
}

func (stubSources) FetchDerivatives(context.Context, string) (*domain.DerivativesSnapshot, error) {
	return nil, errStubDown
}

func (stubSources) FetchLatest(context.Context) (*domain.SentimentSnapshot, error) {
	return nil, errStubDown
}

func (stubSources) FetchMacro(context.Context) (*domain.MacroSnapshot, error) {
	return nil, errStubDown
}
