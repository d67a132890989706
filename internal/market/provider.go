// Package market fetches daily price bars from the market-data source.
package market

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrSymbolNotFound reports that the source does not know the symbol.
var ErrSymbolNotFound = errors.New("market: symbol not found")

// Bar is one day's OHLCV for a symbol.
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// Provider returns daily bars for a symbol over [start, end].
// Implementations must bound their own request timeouts.
type Provider interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error)
}
