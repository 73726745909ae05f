package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"

	"stocktutor/internal/dateutil"
	"stocktutor/strategies"
)

// ApplyStrategy expands the named strategy into dated purchase batches
// against the target portfolio, creating the portfolio when missing.
//
// A purchase failure aborts the apply immediately; batches already applied
// stay committed, so callers must treat a failed apply as possibly partially
// applied.
func (t *Tutor) ApplyStrategy(ctx context.Context, portfolioName, strategyName string) error {
	def, err := t.strategies.Get(strategyName)
	if err != nil {
		return err
	}
	now := t.now()

	if !dateutil.IsNotFutureForInvestment(def.StartDate(), now) {
		return ErrFutureStartDate
	}

	if def.Frequency() == 0 {
		// Single application at the start date as given; the nearest-after
		// price lookup absorbs non-trading days.
		if err := t.applyBatch(ctx, portfolioName, def, def.StartDate()); err != nil {
			return err
		}
		t.log.Infow("strategy applied", "strategy", strategyName, "portfolio", portfolioName, "dates", 1)
		return nil
	}

	dates := t.scheduledDates(def, now)
	bar := t.progressBar(len(dates), strategyName)
	for _, date := range dates {
		if err := t.applyBatch(ctx, portfolioName, def, date); err != nil {
			return err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	t.log.Infow("strategy applied", "strategy", strategyName, "portfolio", portfolioName, "dates", len(dates))
	return nil
}

// scheduledDates expands a recurring strategy into its purchase dates:
// start rolled off a weekend, then every frequency days rolled the same way,
// stopping at the effective end date or when a rolled date has not arrived
// yet. A roll landing in the future yields no further dates, so a start
// that rolls past now produces an empty schedule.
func (t *Tutor) scheduledDates(def strategies.Definition, now time.Time) []time.Time {
	end, ok := def.EndDate()
	if !ok || !dateutil.IsNotFutureForInvestment(end, now) {
		end = now
	}

	var dates []time.Time
	next, ok := rollForwardIfWeekend(def.StartDate(), now)
	for ok {
		dates = append(dates, next)

		candidate, candidateOK := rollForwardIfWeekend(dateutil.AddDays(next, def.Frequency()), now)
		if !candidateOK || !dateutil.DayLTE(candidate, end) {
			break
		}
		next = candidate
	}
	return dates
}

// rollForwardIfWeekend moves a weekend date to the following Monday. The
// rolled date is discarded when it has not arrived yet; weekday dates pass
// through unchecked.
func rollForwardIfWeekend(date, now time.Time) (time.Time, bool) {
	if !dateutil.IsWeekend(date) {
		return date, true
	}
	rolled := dateutil.NextTradingDay(date)
	if !dateutil.IsNotFutureForInvestment(rolled, now) {
		return time.Time{}, false
	}
	return rolled, true
}

// applyBatch buys every weighted ticker of the definition on one scheduled
// date. Tickers are processed in a fixed order so a mid-batch failure is
// reproducible.
func (t *Tutor) applyBatch(ctx context.Context, portfolioName string, def strategies.Definition, date time.Time) error {
	weights := def.StockWeights()
	tickers := make([]string, 0, len(weights))
	for ticker := range weights {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		amount := def.Amount().Mul(weights[ticker]).Div(hundred)
		if err := t.buyPartialForStrategy(ctx, portfolioName, ticker, amount, date, def.Commission()); err != nil {
			return fmt.Errorf("buying %s on %s: %w", ticker, date.Format("2006-01-02"), err)
		}
	}
	return nil
}

func (t *Tutor) progressBar(dates int, strategyName string) *progressbar.ProgressBar {
	if !t.showProgress || dates == 0 {
		return nil
	}
	return progressbar.NewOptions(dates,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription(fmt.Sprintf("Applying %s...", strategyName)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
