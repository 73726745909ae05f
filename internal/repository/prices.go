package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"stocktutor/types"
)

type dailyPriceRow struct {
	Day   time.Time
	Close decimal.Decimal
}

// FetchSeries implements registry.SeriesFetcher from the daily_prices table.
func (db *Database) FetchSeries(ctx context.Context, ticker string) (types.PriceSeries, error) {
	rows, err := db.prices.DailyPrices(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoPrices
	}

	points := make([]types.PricePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, types.PricePoint{Day: row.Day, Close: row.Close})
	}
	return types.NewPriceSeries(points), nil
}

type pgxPrices struct {
	conn *pgxpool.Pool
}

func (q pgxPrices) DailyPrices(ctx context.Context, ticker string) ([]dailyPriceRow, error) {
	rows, err := q.conn.Query(ctx,
		`SELECT day, close FROM daily_prices WHERE ticker = $1 ORDER BY day`, ticker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dailyPriceRow
	for rows.Next() {
		var row dailyPriceRow
		if err := rows.Scan(&row.Day, &row.Close); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
