package types

import (
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/internal/dateutil"
)

// Portfolio is a named, append-only ledger of stock purchases. Insertion
// order is purchase order. Aggregates are point-in-time over purchases made
// on or before the query day.
type Portfolio struct {
	name      string
	purchases []PurchaseRecord
}

func NewPortfolio(name string) *Portfolio {
	return &Portfolio{name: name}
}

// RestorePortfolio rebuilds a portfolio from previously recorded purchases,
// preserving their order. Used by the persistence load path.
func RestorePortfolio(name string, purchases []PurchaseRecord) *Portfolio {
	p := &Portfolio{name: name}
	p.purchases = append(p.purchases, purchases...)
	return p
}

func (p *Portfolio) Name() string { return p.name }

// AddPurchase appends a record. Multiple purchases of the same ticker are
// expected and accumulate.
func (p *Portfolio) AddPurchase(record PurchaseRecord) {
	p.purchases = append(p.purchases, record)
}

// Purchases returns a copy of the ledger in purchase order.
func (p *Portfolio) Purchases() []PurchaseRecord {
	out := make([]PurchaseRecord, len(p.purchases))
	copy(out, p.purchases)
	return out
}

// CostBasisAsOf sums the cost basis of every purchase made on or before the
// given day, rounded to two decimal places.
func (p *Portfolio) CostBasisAsOf(date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, record := range p.purchases {
		if dateutil.DayLTE(record.DateOfPurchase, date) {
			total = total.Add(record.CostBasis)
		}
	}
	return total.Round(2)
}

// Snapshot returns a read-only view of the portfolio.
func (p *Portfolio) Snapshot() PortfolioView {
	return PortfolioView{
		Name:      p.name,
		Purchases: p.Purchases(),
	}
}

// PortfolioView is a point-in-time copy of a portfolio handed to callers;
// mutating it does not affect the portfolio.
type PortfolioView struct {
	Name      string
	Purchases []PurchaseRecord
}
