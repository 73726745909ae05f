package engine

import (
	"stocktutor/internal/filestore"
	"stocktutor/strategies"
	"stocktutor/types"
)

// SavePortfolioToFile writes the named portfolio to path. The write is
// synchronous; when this returns nil the file is on disk.
func (t *Tutor) SavePortfolioToFile(name, path string) error {
	p, err := t.portfolios.Get(name)
	if err != nil {
		return err
	}
	if err := filestore.SavePortfolio(path, p.Snapshot()); err != nil {
		return err
	}
	t.log.Infow("portfolio saved", "name", name, "path", path)
	return nil
}

// LoadPortfolioFromFile reads a portfolio file and registers it. The loaded
// name is subject to the same uniqueness and charset rules as programmatic
// creation.
func (t *Tutor) LoadPortfolioFromFile(path string) (types.PortfolioView, error) {
	p, err := filestore.LoadPortfolio(path)
	if err != nil {
		return types.PortfolioView{}, err
	}
	if err := t.portfolios.Add(p); err != nil {
		return types.PortfolioView{}, err
	}
	t.log.Infow("portfolio loaded", "name", p.Name(), "path", path)
	return p.Snapshot(), nil
}

// SaveStrategyToFile writes the named strategy definition to path.
func (t *Tutor) SaveStrategyToFile(name, path string) error {
	def, err := t.strategies.Get(name)
	if err != nil {
		return err
	}
	if err := filestore.SaveStrategy(path, def); err != nil {
		return err
	}
	t.log.Infow("strategy saved", "name", name, "path", path)
	return nil
}

// LoadStrategyFromFile reads a strategy file and registers the definition
// under the usual uniqueness rules.
func (t *Tutor) LoadStrategyFromFile(path string) (strategies.Definition, error) {
	def, err := filestore.LoadStrategy(path)
	if err != nil {
		return strategies.Definition{}, err
	}
	if err := t.strategies.Add(def); err != nil {
		return strategies.Definition{}, err
	}
	t.log.Infow("strategy loaded", "name", def.Name(), "path", path)
	return def, nil
}
