package registry

import (
	"fmt"
	"sync"

	"stocktutor/strategies"
)

// Strategies is the registry of strategy definitions keyed
// case-insensitively by name.
type Strategies struct {
	mu    sync.Mutex
	byKey map[string]strategies.Definition
	order []strategies.Definition
}

func NewStrategies() *Strategies {
	return &Strategies{byKey: make(map[string]strategies.Definition)}
}

// Add registers a built definition. The definition carries its own field
// validation; only name uniqueness is checked here, under the lock.
func (r *Strategies) Add(def strategies.Definition) error {
	if err := validateName(def.Name()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := nameKey(def.Name())
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("strategy %q: %w", def.Name(), ErrDuplicateName)
	}
	r.byKey[key] = def
	r.order = append(r.order, def)
	return nil
}

// Get returns the definition registered under the name.
func (r *Strategies) Get(name string) (strategies.Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.byKey[nameKey(name)]
	if !ok {
		return strategies.Definition{}, fmt.Errorf("strategy %q: %w", name, ErrNotFound)
	}
	return def, nil
}

// All returns the registered definitions in creation order.
func (r *Strategies) All() []strategies.Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]strategies.Definition, len(r.order))
	copy(out, r.order)
	return out
}
