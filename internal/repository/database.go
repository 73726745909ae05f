// Package repository provides a Postgres-backed price history source for
// deployments that keep a local daily_prices table instead of fetching from
// the market-data API.
package repository

import (
	"context"
	"errors"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoPrices = errors.New("no prices found in datasource")

type pricesQuerier interface {
	DailyPrices(ctx context.Context, ticker string) ([]dailyPriceRow, error)
}

// Database holds the connection pool and the price queries.
type Database struct {
	prices pricesQuerier
	conn   *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &Database{
		prices: pgxPrices{conn: conn},
		conn:   conn,
	}, nil
}

func (db *Database) Close() {
	db.conn.Close()
}
