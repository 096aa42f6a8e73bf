package cart

import (
	"encoding/json"
	"strings"
	"sync"

	carterrors "go-couture-api/internal/cart/errors"
	"go-couture-api/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store is the device-local cart. Call Load once at start-up. Until then
// mutations stay in memory and nothing is written to the slot.
type Store struct {
	mu     sync.Mutex
	lines  []Line
	slot   Slot
	ready  bool
	logger *zap.Logger
}

func NewStore(slot Slot, logger ...*zap.Logger) *Store {
	l := zap.L().Named("cart.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.store")
	}
	return &Store{slot: slot, logger: l}
}

// Load reads the saved cart. A missing or unreadable value leaves the cart
// empty; either way the store is ready afterwards.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return
	}
	s.ready = true

	raw, ok, err := s.slot.Read()
	if err != nil {
		s.logger.Error("failed to read cart", zap.Error(err))
		return
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Error("error loading cart", zap.Error(err))
		return
	}
	s.lines = sanitize(lines)
}

func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Add merges quantity into the line keyed by (product, size, color), or
// appends a new line.
func (s *Store) Add(p product.Product, quantity int, size, color string) error {
	if p.ID == "" {
		return carterrors.ErrProductRequired
	}
	if quantity <= 0 {
		return carterrors.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key{ProductID: p.ID, Size: size, Color: color}
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity += quantity
			return s.persist()
		}
	}
	s.lines = append(s.lines, Line{Product: p, Quantity: quantity, SelectedSize: size, SelectedColor: color})
	return s.persist()
}

// UpdateQuantity sets quantity on every line of productID. A non-positive
// quantity removes those lines.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = quantity
		}
	}
	return s.persist()
}

// Remove drops every line of productID regardless of size and color.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return s.persist()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.persist()
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) Total() float64 {
	return s.TotalDecimal().InexactFloat64()
}

func (s *Store) TotalDecimal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemCount(s.lines)
}

// persist writes the whole cart. Caller holds mu.
func (s *Store) persist() error {
	if !s.ready {
		return nil
	}

	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return carterrors.ErrPersistFailed.Wrap(err)
	}
	if err := s.slot.Write(string(b)); err != nil {
		s.logger.Error("failed to save cart", zap.Error(err))
		return carterrors.ErrPersistFailed.Wrap(err)
	}
	return nil
}

// sanitize drops lines without a product or with a non-positive quantity,
// and folds lines sharing a key into the first of them.
func sanitize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	seen := make(map[Key]int, len(lines))
	for _, l := range lines {
		if l.Product.ID == "" || l.Quantity <= 0 {
			continue
		}
		if i, ok := seen[l.Key()]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		seen[l.Key()] = len(out)
		out = append(out, l)
	}
	return out
}
