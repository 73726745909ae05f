package strategies

import (
	"time"

	"github.com/shopspring/decimal"
)

// EqualWeight returns a builder whose stocks all carry the same weight. The
// last ticker absorbs the division remainder so the weights sum to exactly
// 100 for any count.
func EqualWeight(name string, amount decimal.Decimal, start time.Time, tickers []string) *Builder {
	b := NewBuilder(name, amount, start)
	if len(tickers) == 0 {
		return b
	}

	weight := hundred.Div(decimal.NewFromInt(int64(len(tickers))))
	weights := make(map[string]decimal.Decimal, len(tickers))
	assigned := decimal.Zero
	for i, ticker := range tickers {
		if i == len(tickers)-1 {
			weights[ticker] = hundred.Sub(assigned)
			break
		}
		weights[ticker] = weight
		assigned = assigned.Add(weight)
	}
	return b.Stocks(weights)
}

// DollarCostAveraging returns a builder for a recurring weighted investment:
// the given amount is split across the weights every frequencyDays days,
// starting at start.
func DollarCostAveraging(name string, amount decimal.Decimal, start time.Time, frequencyDays int, weights map[string]decimal.Decimal) *Builder {
	return NewBuilder(name, amount, start).
		Stocks(weights).
		Frequency(frequencyDays)
}
