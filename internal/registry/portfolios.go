package registry

import (
	"fmt"
	"sync"

	"stocktutor/types"
)

// Portfolios is the registry of portfolios keyed case-insensitively by name.
// The mutex is held across check-then-insert so concurrent creation of the
// same name cannot slip past the uniqueness rule.
type Portfolios struct {
	mu    sync.Mutex
	byKey map[string]*types.Portfolio
	order []*types.Portfolio
}

func NewPortfolios() *Portfolios {
	return &Portfolios{byKey: make(map[string]*types.Portfolio)}
}

// Create registers a new empty portfolio under a unique, validated name.
func (r *Portfolios) Create(name string) (*types.Portfolio, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(types.NewPortfolio(name))
}

// Add registers an existing portfolio, e.g. one loaded from a file. The
// uniqueness and naming rules apply exactly as for Create.
func (r *Portfolios) Add(p *types.Portfolio) error {
	if err := validateName(p.Name()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := r.insert(p)
	return err
}

// Get returns the portfolio registered under the name.
func (r *Portfolios) Get(name string) (*types.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byKey[nameKey(name)]
	if !ok {
		return nil, fmt.Errorf("portfolio %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// GetOrCreate returns the named portfolio, creating it first when missing.
// Used by the strategy purchase path.
func (r *Portfolios) GetOrCreate(name string) (*types.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byKey[nameKey(name)]; ok {
		return p, nil
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return r.insert(types.NewPortfolio(name))
}

// All returns the registered portfolios in creation order.
func (r *Portfolios) All() []*types.Portfolio {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*types.Portfolio, len(r.order))
	copy(out, r.order)
	return out
}

// insert assumes the mutex is held.
func (r *Portfolios) insert(p *types.Portfolio) (*types.Portfolio, error) {
	key := nameKey(p.Name())
	if _, exists := r.byKey[key]; exists {
		return nil, fmt.Errorf("portfolio %q: %w", p.Name(), ErrDuplicateName)
	}
	r.byKey[key] = p
	r.order = append(r.order, p)
	return p, nil
}
