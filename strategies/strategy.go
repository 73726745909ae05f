// Package strategies defines investment strategy values: a named, weighted
// set of tickers invested with a fixed amount on a schedule. Definitions are
// validated at construction and immutable afterwards.
package strategies

import (
	"time"

	"github.com/shopspring/decimal"
)

// Definition is an immutable investment strategy. Weights are percentages
// summing to exactly 100. Frequency is a recurrence interval in days, 0
// meaning a single application at the start date.
type Definition struct {
	name       string
	startDate  time.Time
	endDate    time.Time // zero when open-ended
	frequency  int
	amount     decimal.Decimal
	commission decimal.Decimal
	stocks     map[string]decimal.Decimal
}

func (d Definition) Name() string { return d.name }

func (d Definition) StartDate() time.Time { return d.startDate }

// EndDate returns the optional end date; ok is false for open-ended
// strategies.
func (d Definition) EndDate() (end time.Time, ok bool) {
	return d.endDate, !d.endDate.IsZero()
}

func (d Definition) Frequency() int { return d.frequency }

func (d Definition) Amount() decimal.Decimal { return d.amount }

func (d Definition) Commission() decimal.Decimal { return d.commission }

// StockWeights returns a copy of the ticker to weight-percent mapping.
func (d Definition) StockWeights() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(d.stocks))
	for ticker, weight := range d.stocks {
		out[ticker] = weight
	}
	return out
}
