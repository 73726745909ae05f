package engine

import "errors"

// Validation errors surfaced by the purchase engine and the scheduler. All
// are recoverable; callers display the message and may retry.
var (
	ErrInvalidTicker           = errors.New("illegal ticker symbol received")
	ErrInvalidDate             = errors.New("date cannot be unset or invalid")
	ErrHolidayViolation        = errors.New("stock cannot be purchased on a holiday")
	ErrOutsideTradingHours     = errors.New("stock can be purchased between 9am and 4pm only")
	ErrInsufficientAmount      = errors.New("amount is below the price of one share")
	ErrNegativeCommission      = errors.New("commission fee cannot be negative")
	ErrCommissionExceedsAmount = errors.New("commission fee cannot exceed purchase amount")
	ErrFutureStartDate         = errors.New("strategy cannot be applied to a future date")
)
