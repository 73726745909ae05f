package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/internal/dateutil"
	"stocktutor/types"
)

// BuyStock purchases as many whole shares of the ticker as the amount covers
// at the exact closing price of the given date, and returns the leftover
// cash rounded to two decimals. The date must be a weekday within trading
// hours.
func (t *Tutor) BuyStock(ctx context.Context, portfolioName, ticker string, amount decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	return t.buyWholeShares(ctx, portfolioName, ticker, amount, decimal.Zero, date)
}

// BuyStockWithCommission is BuyStock with a commission fee deducted from the
// amount before shares are bought. The fee is charged into the recorded cost
// basis.
func (t *Tutor) BuyStockWithCommission(ctx context.Context, portfolioName, ticker string, amount decimal.Decimal, date time.Time, commission decimal.Decimal) (decimal.Decimal, error) {
	return t.buyWholeShares(ctx, portfolioName, ticker, amount, commission, date)
}

func (t *Tutor) buyWholeShares(ctx context.Context, portfolioName, ticker string, amount, commission decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	ticker = normalizeTicker(ticker)
	price, err := t.validateTradingWindow(ctx, ticker, amount, date)
	if err != nil {
		return decimal.Zero, err
	}
	// the fee is validated after the market rules, matching the strategy path
	if commission.IsNegative() {
		return decimal.Zero, ErrNegativeCommission
	}
	if commission.GreaterThanOrEqual(amount) {
		return decimal.Zero, ErrCommissionExceedsAmount
	}
	portfolio, err := t.portfolios.Get(portfolioName)
	if err != nil {
		return decimal.Zero, err
	}

	net := amount.Sub(commission)
	quantity := net.Div(price).Floor()
	leftover := net.Mod(price)
	actualCost := amount.Sub(leftover)

	portfolio.AddPurchase(types.NewPurchaseRecord(ticker, quantity, actualCost, date))
	t.log.Debugw("stock purchased",
		"portfolio", portfolioName, "ticker", ticker,
		"quantity", quantity, "cost", actualCost)
	return leftover.Round(2), nil
}

// validateTradingWindow enforces the plain-buy market rules and resolves the
// exact price for the day. Trades outside 9:00-16:59 or on weekends are
// rejected; the strategy path does not go through here.
func (t *Tutor) validateTradingWindow(ctx context.Context, ticker string, amount decimal.Decimal, date time.Time) (decimal.Decimal, error) {
	if ticker == "" {
		return decimal.Zero, ErrInvalidTicker
	}
	if date.IsZero() {
		return decimal.Zero, ErrInvalidDate
	}
	if dateutil.IsWeekend(date) {
		return decimal.Zero, ErrHolidayViolation
	}
	if !dateutil.IsTradingHours(date) {
		return decimal.Zero, ErrOutsideTradingHours
	}
	price, err := t.prices.PriceOn(ctx, ticker, date)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.LessThan(price) {
		return decimal.Zero, fmt.Errorf("the price of %s is %s: %w", ticker, price, ErrInsufficientAmount)
	}
	return price, nil
}

// buyPartialForStrategy is the strategy purchase path: fractional shares,
// no trading-window check, and a price snapped to the nearest available
// trading day on or after the scheduled date. The target portfolio is
// created when missing. The full net amount converts to quantity, so there
// is no leftover.
func (t *Tutor) buyPartialForStrategy(ctx context.Context, portfolioName, ticker string, amount decimal.Decimal, date time.Time, commission decimal.Decimal) error {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		return ErrInvalidTicker
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	price, err := t.prices.PriceOnOrNearestAfter(ctx, ticker, date)
	if err != nil {
		return err
	}
	if commission.IsNegative() {
		return ErrNegativeCommission
	}
	if commission.GreaterThanOrEqual(amount) {
		return ErrCommissionExceedsAmount
	}
	portfolio, err := t.portfolios.GetOrCreate(portfolioName)
	if err != nil {
		return err
	}

	net := amount.Sub(commission)
	quantity := net.Div(price)

	// cost basis is the full allocation: net spend plus the commission fee
	portfolio.AddPurchase(types.NewPurchaseRecord(ticker, quantity, net.Add(commission), date))
	return nil
}
