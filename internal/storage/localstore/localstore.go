// Package localstore persists orders in a single JSON slot on disk, the
// last tier of the order data gateway. The whole list is read and written
// on every access, mirroring how the storefront kept orders in browser
// storage.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tulamia/orderdesk/internal/domain/model"
)

// Store owns one named slot of orders. A single session owns the slot;
// the mutex only guards against concurrent handlers of that session.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// New creates a store writing to path.
func New(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger, now: time.Now}
}

// List returns every locally saved order. A missing slot is an empty
// list; a corrupt slot is logged and treated as empty rather than
// blocking checkout.
func (s *Store) List() ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Append assigns a local id and timestamp, rewrites the whole slot and
// returns the stored order.
func (s *Store) Append(order model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.read()
	if err != nil {
		return model.Order{}, err
	}

	// The prefix marks orders recorded by this tier.
	if order.ID == "" {
		order.ID = "local-" + uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now().UTC()
	}
	orders = append(orders, order)

	if err := s.write(orders); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (s *Store) read() ([]model.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read local orders: %w", err)
	}

	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		s.logger.Warn("local order slot is corrupt, starting over", slog.String("path", s.path), slog.String("error", err.Error()))
		return nil, nil
	}
	return orders, nil
}

func (s *Store) write(orders []model.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local orders: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write local orders: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local orders: %w", err)
	}
	return nil
}
