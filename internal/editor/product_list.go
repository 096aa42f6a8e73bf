package editor

import (
	"context"
	"errors"
	"sync"

	"go-couture-api/internal/pkg/async"
	"go-couture-api/internal/product"

	"go.uber.org/zap"
)

type Catalog interface {
	List(ctx context.Context, f product.Filter) ([]product.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductList is the admin product table. Only the latest Reload result is
// applied; older in-flight loads are discarded.
type ProductList struct {
	mu      sync.Mutex
	items   []product.Product
	filter  product.Filter
	catalog Catalog
	latest  async.Latest[[]product.Product]
	logger  *zap.Logger
}

func NewProductList(c Catalog, logger ...*zap.Logger) *ProductList {
	l := zap.L().Named("editor.list")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("editor.list")
	}
	return &ProductList{catalog: c, logger: l}
}

// SetFilter changes the search text and category used by the next Reload.
func (l *ProductList) SetFilter(search, category string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter.Search = search
	l.filter.Category = category
}

func (l *ProductList) Items() []product.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]product.Product, len(l.items))
	copy(out, l.items)
	return out
}

// Reload fetches the list with the current filter. A call overtaken by a
// newer one returns async.ErrStale and changes nothing.
func (l *ProductList) Reload(ctx context.Context) ([]product.Product, error) {
	l.mu.Lock()
	f := l.filter
	l.mu.Unlock()

	items, err := l.latest.Run(ctx, func(ctx context.Context) ([]product.Product, error) {
		return l.catalog.List(ctx, f)
	}, func(items []product.Product) {
		l.mu.Lock()
		l.items = items
		l.mu.Unlock()
	})
	if errors.Is(err, async.ErrStale) {
		return nil, err
	}
	if err != nil {
		l.logger.Error("error fetching products", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// Delete removes id from the table right away, deletes it remotely, then
// reloads. A failed delete restores the table through the reload.
func (l *ProductList) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	kept := make([]product.Product, 0, len(l.items))
	for _, p := range l.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	l.items = kept
	l.mu.Unlock()

	delErr := l.catalog.Delete(ctx, id)
	if delErr != nil {
		l.logger.Error("error deleting product", zap.String("id", id), zap.Error(delErr))
	}

	if _, err := l.Reload(ctx); err != nil && !errors.Is(err, async.ErrStale) && delErr == nil {
		return err
	}
	return delErr
}

// Close abandons any in-flight reload.
func (l *ProductList) Close() {
	l.latest.Stop()
}
