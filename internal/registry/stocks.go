package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/types"
)

// SeriesFetcher retrieves the full daily price history for a ticker from an
// external source.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, ticker string) (types.PriceSeries, error)
}

// Stocks caches one price series per ticker, fetched at most once even under
// concurrent lookups. A failed fetch is not cached, so the next lookup
// retries.
type Stocks struct {
	fetcher SeriesFetcher

	mu      sync.Mutex
	entries map[string]*stockEntry
}

type stockEntry struct {
	once  sync.Once
	stock *types.Stock
	err   error
}

func NewStocks(fetcher SeriesFetcher) *Stocks {
	return &Stocks{
		fetcher: fetcher,
		entries: make(map[string]*stockEntry),
	}
}

// FetchOrGet returns the cached stock for the ticker, fetching its series
// first if this is the first reference. Tickers are case-insensitive.
func (r *Stocks) FetchOrGet(ctx context.Context, ticker string) (*types.Stock, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker: %w", ErrInvalidName)
	}

	r.mu.Lock()
	entry, ok := r.entries[ticker]
	if !ok {
		entry = &stockEntry{}
		r.entries[ticker] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		series, err := r.fetcher.FetchSeries(ctx, ticker)
		if err != nil {
			entry.err = fmt.Errorf("fetching %s: %w", ticker, err)
			return
		}
		entry.stock = types.NewStock(ticker, series)
	})

	if entry.err != nil {
		// drop the failed entry so a later call can retry
		r.mu.Lock()
		if r.entries[ticker] == entry {
			delete(r.entries, ticker)
		}
		r.mu.Unlock()
		return nil, entry.err
	}
	return entry.stock, nil
}

// PriceOn implements engine.PriceSource.
func (r *Stocks) PriceOn(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error) {
	stock, err := r.FetchOrGet(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Series.PriceOn(date)
}

// LatestPriceOnOrBefore implements engine.PriceSource.
func (r *Stocks) LatestPriceOnOrBefore(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error) {
	stock, err := r.FetchOrGet(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Series.LatestOnOrBefore(date)
}

// PriceOnOrNearestAfter implements engine.PriceSource.
func (r *Stocks) PriceOnOrNearestAfter(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error) {
	stock, err := r.FetchOrGet(ctx, ticker)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Series.OnOrNearestAfter(date)
}
