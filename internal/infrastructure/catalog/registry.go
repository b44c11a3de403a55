package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kirillkom/customs-intake/internal/core/domain"
)

// Registry keeps submitted declarations in memory, in submission order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Declaration
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]domain.Declaration)}
}

func (r *Registry) Save(ctx context.Context, decl domain.Declaration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if decl.ID == "" {
		return domain.WrapError(domain.ErrInvalidInput, "save declaration", errors.New("declaration id is empty"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[decl.ID]; exists {
		return domain.WrapError(domain.ErrInvalidInput, "save declaration", fmt.Errorf("declaration %s already recorded", decl.ID))
	}
	r.byID[decl.ID] = decl.Clone()
	r.order = append(r.order, decl.ID)
	return nil
}

func (r *Registry) Get(ctx context.Context, id string) (domain.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return domain.Declaration{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	decl, ok := r.byID[id]
	if !ok {
		return domain.Declaration{}, domain.WrapError(domain.ErrNotFound, "get declaration", fmt.Errorf("declaration %s", id))
	}
	return decl.Clone(), nil
}

func (r *Registry) List(ctx context.Context) ([]domain.Declaration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Declaration, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}
