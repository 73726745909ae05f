package types

// Stock is a ticker together with its cached price history. Stocks are
// created once per ticker on first reference and never refetched.
type Stock struct {
	Ticker string      `json:"ticker"`
	Series PriceSeries `json:"series"`
}

func NewStock(ticker string, series PriceSeries) *Stock {
	return &Stock{
		Ticker: ticker,
		Series: series,
	}
}
