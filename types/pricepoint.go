package types

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/internal/dateutil"
)

var ErrPriceNotFound = errors.New("no price found for the given date")

// PricePoint is a single closing price on a calendar day.
type PricePoint struct {
	Day   time.Time       `json:"day"`
	Close decimal.Decimal `json:"close"`
}

// PriceSeries is the full known price history of one ticker, ordered by day.
// It is immutable once built.
type PriceSeries []PricePoint

// NewPriceSeries sorts points by day and returns them as a series.
func NewPriceSeries(points []PricePoint) PriceSeries {
	s := make(PriceSeries, len(points))
	copy(s, points)
	sort.Slice(s, func(i, j int) bool { return s[i].Day.Before(s[j].Day) })
	return s
}

// PriceOn returns the closing price recorded on exactly the given calendar
// day, ignoring time-of-day.
func (s PriceSeries) PriceOn(date time.Time) (decimal.Decimal, error) {
	i := s.searchDay(date)
	if i < len(s) && dateutil.SameDay(s[i].Day, date) {
		return s[i].Close, nil
	}
	return decimal.Zero, ErrPriceNotFound
}

// LatestOnOrBefore returns the price on the given day, or the most recent
// price strictly before it. Dates before the first recorded price fail with
// ErrPriceNotFound.
func (s PriceSeries) LatestOnOrBefore(date time.Time) (decimal.Decimal, error) {
	if price, err := s.PriceOn(date); err == nil {
		return price, nil
	}
	if len(s) == 0 || !dateutil.DayAfter(date, s[0].Day) {
		return decimal.Zero, ErrPriceNotFound
	}
	i := s.searchDay(date)
	if i == 0 {
		return decimal.Zero, ErrPriceNotFound
	}
	return s[i-1].Close, nil
}

// OnOrNearestAfter returns the price on the given day, or the next recorded
// price strictly after it. Dates on or before the first recorded price fail
// with ErrPriceNotFound, as do dates past the end of the series.
func (s PriceSeries) OnOrNearestAfter(date time.Time) (decimal.Decimal, error) {
	if price, err := s.PriceOn(date); err == nil {
		return price, nil
	}
	if len(s) == 0 || !dateutil.DayAfter(date, s[0].Day) {
		return decimal.Zero, ErrPriceNotFound
	}
	i := s.searchDay(date)
	if i >= len(s) {
		return decimal.Zero, ErrPriceNotFound
	}
	return s[i].Close, nil
}

// First returns the earliest recorded point.
func (s PriceSeries) First() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[0], true
}

// searchDay returns the index of the first point whose day is >= date.
func (s PriceSeries) searchDay(date time.Time) int {
	return sort.Search(len(s), func(i int) bool {
		return !dateutil.DayBefore(s[i].Day, date)
	})
}
