// Package dateutil holds the market calendar rules shared by the purchase
// engine and the strategy scheduler. Weekends are the only recognized market
// holidays and the trading window is 9:00-16:59; a closing price stands in
// for the whole day.
package dateutil

import "time"

const dayLayout = "2006-01-02"

// marketCloseHour is the last hour of the day in which trades are accepted.
const marketCloseHour = 16

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsTradingHours reports whether the time-of-day is within market hours.
func IsTradingHours(date time.Time) bool {
	hour := date.Hour()
	return hour >= 9 && hour <= marketCloseHour
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Format(dayLayout) == b.Format(dayLayout)
}

// DayBefore reports whether a falls on an earlier calendar day than b.
func DayBefore(a, b time.Time) bool {
	return a.Format(dayLayout) < b.Format(dayLayout)
}

// DayAfter reports whether a falls on a later calendar day than b.
func DayAfter(a, b time.Time) bool {
	return a.Format(dayLayout) > b.Format(dayLayout)
}

// DayLTE reports whether a falls on the same or an earlier calendar day
// than b.
func DayLTE(a, b time.Time) bool {
	return a.Format(dayLayout) <= b.Format(dayLayout)
}

// AddDays adds n calendar days, carrying across month and year boundaries.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// NextTradingDay moves a weekend date forward to the following Monday and
// returns any other date unchanged.
func NextTradingDay(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, 2)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	}
	return date
}

// PrevTradingDay moves a weekend date back to the preceding Friday and
// returns any other date unchanged.
func PrevTradingDay(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, -1)
	case time.Sunday:
		return date.AddDate(0, 0, -2)
	}
	return date
}

// IsNotFutureForInvestment reports whether a purchase scheduled on the given
// date has arrived relative to now: strictly before today, or today before
// the market close hour.
func IsNotFutureForInvestment(date, now time.Time) bool {
	if DayBefore(date, now) {
		return true
	}
	return SameDay(date, now) && now.Hour() < marketCloseHour
}
