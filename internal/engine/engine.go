// Package engine implements the tutoring core: plain and strategy-driven
// stock purchases against in-memory portfolios, priced from a cached
// per-ticker history.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stocktutor/internal/dateutil"
	"stocktutor/strategies"
	"stocktutor/types"
)

var hundred = decimal.NewFromInt(100)

// PriceSource answers per-ticker, per-day price queries, fetching and
// caching the underlying series on first reference.
type PriceSource interface {
	PriceOn(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error)
	LatestPriceOnOrBefore(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error)
	PriceOnOrNearestAfter(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error)
}

type portfolioStore interface {
	Create(name string) (*types.Portfolio, error)
	Get(name string) (*types.Portfolio, error)
	GetOrCreate(name string) (*types.Portfolio, error)
	Add(p *types.Portfolio) error
	All() []*types.Portfolio
}

type strategyStore interface {
	Add(def strategies.Definition) error
	Get(name string) (strategies.Definition, error)
	All() []strategies.Definition
}

// Tutor is the service facade over the purchase engine, the scheduler and
// the registries. All business logic is synchronous on the calling
// goroutine.
type Tutor struct {
	prices     PriceSource
	portfolios portfolioStore
	strategies strategyStore
	log        *zap.SugaredLogger

	now          func() time.Time
	showProgress bool
}

type Option func(*Tutor)

// WithClock overrides the wall clock used to decide whether scheduled dates
// have arrived.
func WithClock(now func() time.Time) Option {
	return func(t *Tutor) { t.now = now }
}

// WithProgressBar renders a progress bar while a recurring strategy is
// applied.
func WithProgressBar() Option {
	return func(t *Tutor) { t.showProgress = true }
}

func NewTutor(prices PriceSource, portfolios portfolioStore, strategyReg strategyStore, log *zap.SugaredLogger, opts ...Option) *Tutor {
	t := &Tutor{
		prices:     prices,
		portfolios: portfolios,
		strategies: strategyReg,
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetStockPrice returns the closing price of the ticker on exactly the given
// calendar day.
func (t *Tutor) GetStockPrice(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error) {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return decimal.Zero, ErrInvalidTicker
	}
	if date.IsZero() {
		return decimal.Zero, ErrInvalidDate
	}
	return t.prices.PriceOn(ctx, ticker, date)
}

// CreatePortfolio registers a new empty portfolio under a unique name.
func (t *Tutor) CreatePortfolio(name string) (types.PortfolioView, error) {
	p, err := t.portfolios.Create(name)
	if err != nil {
		return types.PortfolioView{}, err
	}
	t.log.Debugw("portfolio created", "name", p.Name())
	return p.Snapshot(), nil
}

// Portfolio returns a snapshot of the named portfolio.
func (t *Tutor) Portfolio(name string) (types.PortfolioView, error) {
	p, err := t.portfolios.Get(name)
	if err != nil {
		return types.PortfolioView{}, err
	}
	return p.Snapshot(), nil
}

// Portfolios returns snapshots of every registered portfolio.
func (t *Tutor) Portfolios() []types.PortfolioView {
	all := t.portfolios.All()
	views := make([]types.PortfolioView, 0, len(all))
	for _, p := range all {
		views = append(views, p.Snapshot())
	}
	return views
}

// TotalCostBasis returns the amount charged for every purchase in the
// portfolio made on or before the given day, rounded to two decimals.
func (t *Tutor) TotalCostBasis(name string, date time.Time) (decimal.Decimal, error) {
	if date.IsZero() {
		return decimal.Zero, ErrInvalidDate
	}
	p, err := t.portfolios.Get(name)
	if err != nil {
		return decimal.Zero, err
	}
	return p.CostBasisAsOf(date), nil
}

// TotalValue returns the market value of the portfolio as of the given day:
// each held quantity priced at the most recent close on or before that day.
func (t *Tutor) TotalValue(ctx context.Context, name string, date time.Time) (decimal.Decimal, error) {
	if date.IsZero() {
		return decimal.Zero, ErrInvalidDate
	}
	p, err := t.portfolios.Get(name)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, record := range p.Purchases() {
		if !dateutil.DayLTE(record.DateOfPurchase, date) {
			continue
		}
		price, err := t.prices.LatestPriceOnOrBefore(ctx, record.Ticker, date)
		if err != nil {
			return decimal.Zero, fmt.Errorf("valuing %s: %w", record.Ticker, err)
		}
		total = total.Add(record.Quantity.Mul(price))
	}
	return total.Round(2), nil
}

// CreateStrategy registers a built strategy definition under its unique
// name.
func (t *Tutor) CreateStrategy(def strategies.Definition) error {
	if err := t.strategies.Add(def); err != nil {
		return err
	}
	t.log.Debugw("strategy created", "name", def.Name(), "frequency", def.Frequency())
	return nil
}

// Strategy returns the named strategy definition.
func (t *Tutor) Strategy(name string) (strategies.Definition, error) {
	return t.strategies.Get(name)
}

// Strategies returns every registered strategy definition.
func (t *Tutor) Strategies() []strategies.Definition {
	return t.strategies.All()
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
