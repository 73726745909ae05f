package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRecord is one executed stock purchase. CostBasis is the amount
// actually charged, including any commission. Quantity is integral for plain
// buys and may be fractional for strategy buys. Records are immutable once
// appended to a portfolio.
type PurchaseRecord struct {
	ID             uuid.UUID
	Ticker         string
	Quantity       decimal.Decimal
	CostBasis      decimal.Decimal
	DateOfPurchase time.Time
}

func NewPurchaseRecord(ticker string, quantity, costBasis decimal.Decimal, dateOfPurchase time.Time) PurchaseRecord {
	return RestorePurchaseRecord(uuid.New(), ticker, quantity, costBasis, dateOfPurchase)
}

// RestorePurchaseRecord rebuilds a record under its original ID. Used by the
// persistence load path so a record keeps its identity across save/load.
func RestorePurchaseRecord(id uuid.UUID, ticker string, quantity, costBasis decimal.Decimal, dateOfPurchase time.Time) PurchaseRecord {
	return PurchaseRecord{
		ID:             id,
		Ticker:         ticker,
		Quantity:       quantity,
		CostBasis:      costBasis,
		DateOfPurchase: dateOfPurchase,
	}
}
