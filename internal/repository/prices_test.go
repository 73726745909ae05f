package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type mockPricesRepository struct {
	sqlError error
	rows     []dailyPriceRow
}

func (m mockPricesRepository) DailyPrices(_ context.Context, _ string) ([]dailyPriceRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	return m.rows, nil
}

func testRows() []dailyPriceRow {
	return []dailyPriceRow{
		{Day: time.Date(2019, time.March, 15, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromFloat(1184.46)},
		{Day: time.Date(2019, time.March, 18, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromFloat(1184.26)},
	}
}

func TestDatabase_FetchSeries(t *testing.T) {
	queryErr := errors.New("connection refused")
	tests := []struct {
		name    string
		rows    []dailyPriceRow
		sqlErr  error
		wantLen int
		wantErr error
	}{
		{"should throw ErrNoPrices on empty table", nil, nil, 0, ErrNoPrices},
		{"should propagate query errors", nil, queryErr, 0, queryErr},
		{"should return the series", testRows(), nil, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				prices: mockPricesRepository{
					sqlError: tt.sqlErr,
					rows:     tt.rows,
				},
			}
			got, err := db.FetchSeries(context.Background(), "GOOG")

			if err != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FetchSeries() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if len(got) != tt.wantLen {
				t.Fatalf("FetchSeries() len = %d, want %d", len(got), tt.wantLen)
			}
			price, err := got.PriceOn(tt.rows[1].Day)
			if err != nil {
				t.Fatalf("PriceOn() error = %v", err)
			}
			if !price.Equal(tt.rows[1].Close) {
				t.Errorf("PriceOn() = %s, want %s", price, tt.rows[1].Close)
			}
		})
	}
}
