// Package filestore reads and writes portfolios and strategies as
// human-readable JSON files. Saves are synchronous: when Save returns, the
// file is on disk.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stocktutor/types"
)

var ErrMalformed = errors.New("malformed file")

// purchase dates are stored the way the application displays them
const dateLayout = "02-01-2006 15:04:05"

type portfolioFile struct {
	PortfolioName string         `json:"portfolioName"`
	Items         []purchaseItem `json:"items"`
}

type purchaseItem struct {
	ID             string          `json:"id"`
	TickerSymbol   string          `json:"tickerSymbol"`
	Quantity       decimal.Decimal `json:"quantity"`
	PurchaseAmount decimal.Decimal `json:"purchaseAmount"`
	DateOfPurchase string          `json:"dateOfPurchase"`
}

// EncodePortfolio writes the portfolio view as indented JSON.
func EncodePortfolio(w io.Writer, view types.PortfolioView) error {
	file := portfolioFile{
		PortfolioName: view.Name,
		Items:         make([]purchaseItem, 0, len(view.Purchases)),
	}
	for _, record := range view.Purchases {
		file.Items = append(file.Items, purchaseItem{
			ID:             record.ID.String(),
			TickerSymbol:   record.Ticker,
			Quantity:       record.Quantity,
			PurchaseAmount: record.CostBasis,
			DateOfPurchase: record.DateOfPurchase.Format(dateLayout),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}

// DecodePortfolio parses a portfolio file back into a ledger.
func DecodePortfolio(r io.Reader) (*types.Portfolio, error) {
	var file portfolioFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	if file.PortfolioName == "" {
		return nil, fmt.Errorf("%w: missing portfolio name", ErrMalformed)
	}

	purchases := make([]types.PurchaseRecord, 0, len(file.Items))
	for _, item := range file.Items {
		date, err := time.Parse(dateLayout, item.DateOfPurchase)
		if err != nil {
			return nil, fmt.Errorf("%w: bad purchase date %q", ErrMalformed, item.DateOfPurchase)
		}
		id, err := parseItemID(item.ID)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, types.RestorePurchaseRecord(
			id, item.TickerSymbol, item.Quantity, item.PurchaseAmount, date))
	}
	return types.RestorePortfolio(file.PortfolioName, purchases), nil
}

// parseItemID reads a stored record ID. Files written before IDs were saved
// carry none; those records get a fresh identity.
func parseItemID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: bad purchase id %q", ErrMalformed, raw)
	}
	return id, nil
}

// SavePortfolio writes the view to path, appending the .json extension when
// missing.
func SavePortfolio(path string, view types.PortfolioView) error {
	return saveFile(path, func(w io.Writer) error {
		return EncodePortfolio(w, view)
	})
}

// LoadPortfolio reads a portfolio from the file at path.
func LoadPortfolio(path string) (*types.Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open portfolio file: %w", err)
	}
	defer f.Close()
	return DecodePortfolio(f)
}

func saveFile(path string, encode func(io.Writer) error) error {
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
