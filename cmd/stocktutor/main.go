package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/config"
	"stocktutor/internal/dateutil"
	"stocktutor/internal/engine"
	"stocktutor/internal/externalApi/alphavantage"
	"stocktutor/internal/logger"
	"stocktutor/internal/registry"
	"stocktutor/internal/repository"
	"stocktutor/strategies"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer log.Sync()

	fetcher, cleanup, err := newFetcher(cfg)
	if err != nil {
		log.Fatalf("price source: %s", err)
	}
	defer cleanup()

	tutor := engine.NewTutor(
		registry.NewStocks(fetcher),
		registry.NewPortfolios(),
		registry.NewStrategies(),
		log,
		engine.WithProgressBar(),
	)
	ctx := context.Background()

	if _, err := tutor.CreatePortfolio("Retirement fund"); err != nil {
		log.Fatalf("create portfolio: %s", err)
	}

	// A plain one-off purchase, placed during trading hours.
	buyDate := time.Date(2019, time.March, 18, 10, 0, 0, 0, time.UTC)
	leftover, err := tutor.BuyStock(ctx, "Retirement fund", "AAPL",
		decimal.NewFromInt(2000), buyDate)
	if err != nil {
		log.Fatalf("buy AAPL: %s", err)
	}
	fmt.Printf("bought AAPL, leftover %s\n", leftover)

	// A recurring dollar-cost-averaging strategy, split across two tickers.
	def, err := strategies.DollarCostAveraging(
		"Monthly tech", decimal.NewFromInt(1000), buyDate, 30,
		map[string]decimal.Decimal{
			"GOOG": decimal.NewFromInt(50),
			"MSFT": decimal.NewFromInt(50),
		}).Build()
	if err != nil {
		log.Fatalf("build strategy: %s", err)
	}
	if err := tutor.CreateStrategy(def); err != nil {
		log.Fatalf("register strategy: %s", err)
	}
	if err := tutor.ApplyStrategy(ctx, "Retirement fund", "Monthly tech"); err != nil {
		log.Fatalf("apply strategy: %s", err)
	}

	// value as of the last trading day so weekend runs report Friday's close
	asOf := dateutil.PrevTradingDay(time.Now())
	cost, err := tutor.TotalCostBasis("Retirement fund", asOf)
	if err != nil {
		log.Fatalf("cost basis: %s", err)
	}
	value, err := tutor.TotalValue(ctx, "Retirement fund", asOf)
	if err != nil {
		log.Fatalf("value: %s", err)
	}
	fmt.Printf("cost basis %s, value as of %s: %s\n", cost, asOf.Format("2006-01-02"), value)

	if err := tutor.SavePortfolioToFile("Retirement fund",
		cfg.DataDir+"/retirement-fund"); err != nil {
		log.Fatalf("save portfolio: %s", err)
	}
}

// newFetcher picks the price history source: the local Postgres mirror when
// configured, the Alpha Vantage API otherwise.
func newFetcher(cfg *config.Config) (registry.SeriesFetcher, func(), error) {
	if cfg.Postgres.URL != "" {
		db, err := repository.NewDatabase(cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return alphavantage.New(cfg), func() {}, nil
}
