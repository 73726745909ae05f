package filestore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"stocktutor/strategies"
)

type strategyFile struct {
	StrategyName  string                     `json:"strategyName"`
	StartDate     string                     `json:"startDate"`
	EndDate       string                     `json:"endDate,omitempty"`
	Frequency     int                        `json:"frequency"`
	Price         decimal.Decimal            `json:"price"`
	CommissionFee decimal.Decimal            `json:"commissionFee"`
	Stocks        map[string]decimal.Decimal `json:"stocks"`
}

// EncodeStrategy writes the definition as indented JSON.
func EncodeStrategy(w io.Writer, def strategies.Definition) error {
	file := strategyFile{
		StrategyName:  def.Name(),
		StartDate:     def.StartDate().Format(dateLayout),
		Frequency:     def.Frequency(),
		Price:         def.Amount(),
		CommissionFee: def.Commission(),
		Stocks:        def.StockWeights(),
	}
	if end, ok := def.EndDate(); ok {
		file.EndDate = end.Format(dateLayout)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}

// DecodeStrategy parses a strategy file and rebuilds the definition through
// the builder, so loaded strategies satisfy the same structural invariants
// as programmatically created ones.
func DecodeStrategy(r io.Reader) (strategies.Definition, error) {
	var file strategyFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return strategies.Definition{}, fmt.Errorf("%w: %s", ErrMalformed, err)
	}

	start, err := time.Parse(dateLayout, file.StartDate)
	if err != nil {
		return strategies.Definition{}, fmt.Errorf("%w: bad start date %q", ErrMalformed, file.StartDate)
	}

	builder := strategies.NewBuilder(file.StrategyName, file.Price, start).
		Stocks(file.Stocks).
		Commission(file.CommissionFee)
	if file.Frequency != 0 {
		builder = builder.Frequency(file.Frequency)
	}
	if file.EndDate != "" {
		end, err := time.Parse(dateLayout, file.EndDate)
		if err != nil {
			return strategies.Definition{}, fmt.Errorf("%w: bad end date %q", ErrMalformed, file.EndDate)
		}
		builder = builder.EndDate(end)
	}

	def, err := builder.Build()
	if err != nil {
		return strategies.Definition{}, fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	return def, nil
}

// SaveStrategy writes the definition to path, appending the .json extension
// when missing.
func SaveStrategy(path string, def strategies.Definition) error {
	return saveFile(path, func(w io.Writer) error {
		return EncodeStrategy(w, def)
	})
}

// LoadStrategy reads a strategy from the file at path.
func LoadStrategy(path string) (strategies.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return strategies.Definition{}, fmt.Errorf("open strategy file: %w", err)
	}
	defer f.Close()
	return DecodeStrategy(f)
}
