package strategies

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName             = errors.New("strategy name must contain only letters, digits and spaces")
	ErrInvalidDate             = errors.New("start date must be set")
	ErrNonPositiveAmount       = errors.New("investment amount must be greater than zero")
	ErrInvalidFrequency        = errors.New("frequency must be greater than zero days")
	ErrWeightsNotHundred       = errors.New("stock weights must sum to exactly 100")
	ErrNoStocks                = errors.New("strategy must contain at least one stock")
	ErrInvalidTicker           = errors.New("ticker symbol cannot be empty")
	ErrDuplicateTicker         = errors.New("duplicate ticker in strategy")
	ErrNegativeCommission      = errors.New("commission fee cannot be negative")
	ErrCommissionExceedsAmount = errors.New("commission fee cannot exceed the investment amount")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

var hundred = decimal.NewFromInt(100)

// Builder accumulates strategy fields and validates them on Build.
type Builder struct {
	name         string
	startDate    time.Time
	endDate      time.Time
	frequency    int
	frequencySet bool
	amount       decimal.Decimal
	commission   decimal.Decimal
	stocks       map[string]decimal.Decimal
}

func NewBuilder(name string, amount decimal.Decimal, start time.Time) *Builder {
	return &Builder{
		name:      name,
		startDate: start,
		amount:    amount,
		stocks:    map[string]decimal.Decimal{},
	}
}

// Frequency sets the recurrence interval in days. Leaving it unset makes the
// strategy a single, non-recurring application.
func (b *Builder) Frequency(days int) *Builder {
	b.frequency = days
	b.frequencySet = true
	return b
}

func (b *Builder) EndDate(date time.Time) *Builder {
	b.endDate = date
	return b
}

func (b *Builder) Commission(fee decimal.Decimal) *Builder {
	b.commission = fee
	return b
}

// Stocks sets the ticker to weight-percent mapping.
func (b *Builder) Stocks(weights map[string]decimal.Decimal) *Builder {
	b.stocks = weights
	return b
}

// Build validates the accumulated fields and returns the immutable
// definition. Name uniqueness is enforced by the registry at registration,
// not here.
func (b *Builder) Build() (Definition, error) {
	if strings.TrimSpace(b.name) == "" || !namePattern.MatchString(b.name) {
		return Definition{}, ErrInvalidName
	}
	if b.startDate.IsZero() {
		return Definition{}, ErrInvalidDate
	}
	if !b.amount.IsPositive() {
		return Definition{}, ErrNonPositiveAmount
	}
	if b.frequencySet && b.frequency <= 0 {
		return Definition{}, ErrInvalidFrequency
	}
	if b.commission.IsNegative() {
		return Definition{}, ErrNegativeCommission
	}
	if b.commission.GreaterThanOrEqual(b.amount) {
		return Definition{}, ErrCommissionExceedsAmount
	}
	stocks, err := normalizeWeights(b.stocks)
	if err != nil {
		return Definition{}, err
	}

	return Definition{
		name:       b.name,
		startDate:  b.startDate,
		endDate:    b.endDate,
		frequency:  b.frequency,
		amount:     b.amount,
		commission: b.commission,
		stocks:     stocks,
	}, nil
}

// normalizeWeights uppercases tickers and checks that weights are
// non-negative and sum to exactly 100. The sum check is exact: decimal
// arithmetic makes equality well defined where float weights were ambiguous.
func normalizeWeights(weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if len(weights) == 0 {
		return nil, ErrNoStocks
	}
	stocks := make(map[string]decimal.Decimal, len(weights))
	sum := decimal.Zero
	for ticker, weight := range weights {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker == "" {
			return nil, ErrInvalidTicker
		}
		if _, exists := stocks[ticker]; exists {
			return nil, ErrDuplicateTicker
		}
		if weight.IsNegative() {
			return nil, ErrWeightsNotHundred
		}
		stocks[ticker] = weight
		sum = sum.Add(weight)
	}
	if !sum.Equal(hundred) {
		return nil, ErrWeightsNotHundred
	}
	return stocks, nil
}
