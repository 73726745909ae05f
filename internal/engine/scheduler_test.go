package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/internal/registry"
	"stocktutor/strategies"
	"stocktutor/types"
)

func mustStrategy(t *testing.T, name string, amount int64, start time.Time, frequency int, weights map[string]decimal.Decimal) strategies.Definition {
	t.Helper()
	b := strategies.NewBuilder(name, decimal.NewFromInt(amount), start).Stocks(weights)
	if frequency != 0 {
		b = b.Frequency(frequency)
	}
	def, err := b.Build()
	if err != nil {
		t.Fatalf("building strategy %s: %v", name, err)
	}
	return def
}

func fixedClock(now time.Time) Option {
	return WithClock(func() time.Time { return now })
}

func applyStrategy(t *testing.T, tutor *Tutor, def strategies.Definition, portfolio string) error {
	t.Helper()
	if err := tutor.CreateStrategy(def); err != nil {
		t.Fatal(err)
	}
	return tutor.ApplyStrategy(context.Background(), portfolio, def.Name())
}

func TestApplyStrategySingleApplication(t *testing.T) {
	prices := stubPrices{
		"GOOG": seriesOf(map[string]float64{"2019-03-15": 1184.46, "2019-03-18": 1184.26}),
		"MSFT": seriesOf(map[string]float64{"2019-03-15": 115.91, "2019-03-18": 117.57}),
	}
	tutor := newTestTutor(prices, fixedClock(at(2019, time.April, 1, 10)))

	def := mustStrategy(t, "Tech split", 2000, day(2019, time.March, 18), 0,
		map[string]decimal.Decimal{
			"GOOG": decimal.NewFromInt(50),
			"MSFT": decimal.NewFromInt(50),
		})
	if err := applyStrategy(t, tutor, def, "Fund"); err != nil {
		t.Fatalf("ApplyStrategy() error = %v", err)
	}

	view, err := tutor.Portfolio("Fund")
	if err != nil {
		t.Fatalf("portfolio not auto-created: %v", err)
	}
	if len(view.Purchases) != 2 {
		t.Fatalf("recorded %d purchases, want 2", len(view.Purchases))
	}

	// tickers are bought in alphabetical order, each slice worth 1000
	slice := decimal.NewFromInt(1000)
	for i, want := range []struct {
		ticker string
		price  decimal.Decimal
	}{
		{"GOOG", decimal.NewFromFloat(1184.26)},
		{"MSFT", decimal.NewFromFloat(117.57)},
	} {
		record := view.Purchases[i]
		if record.Ticker != want.ticker {
			t.Errorf("purchase %d ticker = %s, want %s", i, record.Ticker, want.ticker)
		}
		if !record.CostBasis.Equal(slice) {
			t.Errorf("purchase %d cost basis = %s, want 1000", i, record.CostBasis)
		}
		if !record.Quantity.Equal(slice.Div(want.price)) {
			t.Errorf("purchase %d quantity = %s, want %s", i, record.Quantity, slice.Div(want.price))
		}
		if !dayEqual(record.DateOfPurchase, day(2019, time.March, 18)) {
			t.Errorf("purchase %d date = %s, want 2019-03-18", i, record.DateOfPurchase)
		}
	}

	total, err := tutor.TotalCostBasis("Fund", day(2019, time.April, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !total.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("TotalCostBasis() = %s, want 2000", total)
	}
}

func TestApplyStrategyCommission(t *testing.T) {
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{"2019-03-15": 1184.46, "2019-03-18": 1184.26})}
	tutor := newTestTutor(prices, fixedClock(at(2019, time.April, 1, 10)))

	def, err := strategies.NewBuilder("With fee", decimal.NewFromInt(1000), day(2019, time.March, 18)).
		Stocks(map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)}).
		Commission(decimal.NewFromFloat(2.50)).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := applyStrategy(t, tutor, def, "Fund"); err != nil {
		t.Fatalf("ApplyStrategy() error = %v", err)
	}

	record := mustOnlyPurchase(t, tutor, "Fund")
	// the fee reduces the shares bought but the full allocation is charged
	net := decimal.NewFromFloat(997.50)
	if !record.Quantity.Equal(net.Div(decimal.NewFromFloat(1184.26))) {
		t.Errorf("quantity = %s, want %s", record.Quantity, net.Div(decimal.NewFromFloat(1184.26)))
	}
	if !record.CostBasis.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("cost basis = %s, want 1000", record.CostBasis)
	}
}

func TestApplyStrategyRecurring(t *testing.T) {
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{
		"2018-03-16": 1135.73,
		"2018-03-19": 1099.82,
		"2018-04-18": 1072.08,
		"2018-05-18": 1066.36,
	})}
	tutor := newTestTutor(prices, fixedClock(at(2018, time.May, 30, 10)))

	// Sunday start rolls to Monday; every 30 days after that
	def := mustStrategy(t, "Monthly", 1000, day(2018, time.March, 18), 30,
		map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)})
	if err := applyStrategy(t, tutor, def, "Fund"); err != nil {
		t.Fatalf("ApplyStrategy() error = %v", err)
	}

	view, err := tutor.Portfolio("Fund")
	if err != nil {
		t.Fatal(err)
	}
	wantDates := []time.Time{
		day(2018, time.March, 19),
		day(2018, time.April, 18),
		day(2018, time.May, 18),
	}
	if len(view.Purchases) != len(wantDates) {
		t.Fatalf("recorded %d purchases, want %d", len(view.Purchases), len(wantDates))
	}
	for i, want := range wantDates {
		if !dayEqual(view.Purchases[i].DateOfPurchase, want) {
			t.Errorf("purchase %d date = %s, want %s", i, view.Purchases[i].DateOfPurchase, want)
		}
		if !view.Purchases[i].CostBasis.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("purchase %d cost basis = %s, want 1000", i, view.Purchases[i].CostBasis)
		}
	}
}

func TestApplyStrategyMidScheduleWeekendRoll(t *testing.T) {
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{
		"2018-03-16": 1135.73,
		"2018-03-19": 1099.82,
		"2018-03-26": 1053.21,
	})}
	tutor := newTestTutor(prices, fixedClock(at(2018, time.March, 28, 10)))

	// 19th + 5 days lands on Saturday the 24th and rolls to Monday the 26th
	def := mustStrategy(t, "Weekly", 500, day(2018, time.March, 19), 5,
		map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)})
	if err := applyStrategy(t, tutor, def, "Fund"); err != nil {
		t.Fatalf("ApplyStrategy() error = %v", err)
	}

	view, err := tutor.Portfolio("Fund")
	if err != nil {
		t.Fatal(err)
	}
	wantDates := []time.Time{day(2018, time.March, 19), day(2018, time.March, 26)}
	if len(view.Purchases) != len(wantDates) {
		t.Fatalf("recorded %d purchases, want %d", len(view.Purchases), len(wantDates))
	}
	for i, want := range wantDates {
		if !dayEqual(view.Purchases[i].DateOfPurchase, want) {
			t.Errorf("purchase %d date = %s, want %s", i, view.Purchases[i].DateOfPurchase, want)
		}
	}
}

func TestApplyStrategyEndDate(t *testing.T) {
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{
		"2018-03-16": 1135.73,
		"2018-03-19": 1099.82,
		"2018-04-18": 1072.08,
	})}
	tutor := newTestTutor(prices, fixedClock(at(2018, time.June, 1, 10)))

	def, err := strategies.NewBuilder("Bounded", decimal.NewFromInt(1000), day(2018, time.March, 19)).
		Stocks(map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)}).
		Frequency(30).
		EndDate(day(2018, time.April, 1)).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := applyStrategy(t, tutor, def, "Fund"); err != nil {
		t.Fatalf("ApplyStrategy() error = %v", err)
	}

	// the second recurrence falls past the end date
	record := mustOnlyPurchase(t, tutor, "Fund")
	if !dayEqual(record.DateOfPurchase, day(2018, time.March, 19)) {
		t.Errorf("purchase date = %s, want 2018-03-19", record.DateOfPurchase)
	}
}

func TestApplyStrategyFutureStart(t *testing.T) {
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{"2019-03-18": 1184.26})}

	tests := []struct {
		name string
		now  time.Time
	}{
		{"start after today", at(2019, time.March, 10, 10)},
		{"start today after market close", at(2019, time.March, 18, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor := newTestTutor(prices, fixedClock(tt.now))
			def := mustStrategy(t, "Early", 1000, day(2019, time.March, 18), 0,
				map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)})
			if err := applyStrategy(t, tutor, def, "Fund"); !errors.Is(err, ErrFutureStartDate) {
				t.Errorf("ApplyStrategy() error = %v, want ErrFutureStartDate", err)
			}
			if _, err := tutor.Portfolio("Fund"); !errors.Is(err, registry.ErrNotFound) {
				t.Errorf("aborted apply created the portfolio anyway")
			}
		})
	}
}

func TestApplyStrategyWeekendStartRollsIntoFuture(t *testing.T) {
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{"2019-03-15": 1184.46})}
	// applied on Sunday: Saturday's start has arrived, but its roll to
	// Monday has not, so the schedule is empty
	tutor := newTestTutor(prices, fixedClock(at(2019, time.March, 17, 10)))

	if _, err := tutor.CreatePortfolio("Fund"); err != nil {
		t.Fatal(err)
	}
	def := mustStrategy(t, "Weekend", 1000, day(2019, time.March, 16), 30,
		map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)})
	if err := applyStrategy(t, tutor, def, "Fund"); err != nil {
		t.Fatalf("ApplyStrategy() error = %v, want nil for empty schedule", err)
	}

	view, err := tutor.Portfolio("Fund")
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Purchases) != 0 {
		t.Errorf("recorded %d purchases, want 0", len(view.Purchases))
	}
}

func TestApplyStrategyPartialCommit(t *testing.T) {
	// price history stops before the second recurrence
	prices := stubPrices{"GOOG": seriesOf(map[string]float64{
		"2018-03-16": 1135.73,
		"2018-03-19": 1099.82,
	})}
	tutor := newTestTutor(prices, fixedClock(at(2018, time.May, 30, 10)))

	def := mustStrategy(t, "Monthly", 1000, day(2018, time.March, 19), 30,
		map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(100)})
	err := applyStrategy(t, tutor, def, "Fund")
	if !errors.Is(err, types.ErrPriceNotFound) {
		t.Fatalf("ApplyStrategy() error = %v, want ErrPriceNotFound", err)
	}
	if !strings.Contains(err.Error(), "GOOG") || !strings.Contains(err.Error(), "2018-04-18") {
		t.Errorf("error %q should name the ticker and the failed date", err)
	}

	// the first batch stays committed
	record := mustOnlyPurchase(t, tutor, "Fund")
	if !dayEqual(record.DateOfPurchase, day(2018, time.March, 19)) {
		t.Errorf("committed purchase date = %s, want 2018-03-19", record.DateOfPurchase)
	}
}

func TestApplyStrategyUnknownStrategy(t *testing.T) {
	tutor := newTestTutor(stubPrices{})
	err := tutor.ApplyStrategy(context.Background(), "Fund", "Missing")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("ApplyStrategy() error = %v, want ErrNotFound", err)
	}
}

func dayEqual(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
