package collector

import (
	"context"
	"errors"

	"CryptoDash/internal/model"
)

// Failure kinds returned (wrapped) by fetchers.
var (
	// ErrNetwork covers transport failures and non-2xx responses.
	ErrNetwork = errors.New("network failure")
	// ErrMalformed covers bodies that are not JSON or lack the expected fields.
	ErrMalformed = errors.New("malformed response")
)

// Fetcher defines the interface for fetching a single symbol's latest quote.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	Name() string
}
