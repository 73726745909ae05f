// Package alphavantage fetches daily closing-price history from the
// Alpha Vantage TIME_SERIES_DAILY endpoint in CSV form.
package alphavantage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"stocktutor/config"
	"stocktutor/types"
)

var (
	ErrFetchFailed = errors.New("failed to fetch stock data")
	ErrNoData      = errors.New("no price data found for ticker")
)

const dayLayout = "2006-01-02"

// csv columns: timestamp,open,high,low,close,volume
const closeColumn = 4

type Client struct {
	client *resty.Client
	apiKey string
}

func New(cfg *config.Config) *Client {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.AlphaVantage.URL)
	return &Client{client: client, apiKey: cfg.API.AlphaVantage.Key}
}

// FetchSeries implements registry.SeriesFetcher: it retrieves the complete
// daily close history for the ticker, ordered by day.
func (c *Client) FetchSeries(ctx context.Context, ticker string) (types.PriceSeries, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function":   "TIME_SERIES_DAILY",
			"outputsize": "full",
			"datatype":   "csv",
			"symbol":     ticker,
			"apikey":     c.apiKey,
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %s", ErrFetchFailed, resp.Status())
	}

	series, err := parseSeries(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parsing response for %s: %w", ticker, err)
	}
	return series, nil
}

// parseSeries reads the CSV body. Alpha Vantage answers errors (unknown
// symbol, throttling) with a JSON body, which fails the column check here.
func parseSeries(r io.Reader) (types.PriceSeries, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var points []types.PricePoint
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoData, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < closeColumn+2 {
			return nil, ErrNoData
		}

		day, err := time.Parse(dayLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrNoData, record[0])
		}
		price, err := decimal.NewFromString(record[closeColumn])
		if err != nil {
			return nil, fmt.Errorf("%w: bad close %q", ErrNoData, record[closeColumn])
		}
		points = append(points, types.PricePoint{Day: day, Close: price})
	}
	if len(points) == 0 {
		return nil, ErrNoData
	}
	return types.NewPriceSeries(points), nil
}
