package collector

import (
	"context"

	"github.com/newthinker/scorecard/internal/core"
)

// FinancialsSource fetches the raw ratio fields for a ticker.
type FinancialsSource interface {
	Name() string

	// FetchFinancials returns the provider's fields for ticker. Missing fields
	// are simply absent from the result.
	FetchFinancials(ctx context.Context, ticker string) (core.RawFinancials, error)
}

// PeerSource resolves related tickers.
type PeerSource interface {
	Name() string

	// FetchPeers returns up to five uppercase peers of ticker, never including
	// ticker itself. It returns an empty slice on any failure.
	FetchPeers(ctx context.Context, ticker string) []string

	// LookupURL returns the provider page for ticker.
	LookupURL(ticker string) string
}
