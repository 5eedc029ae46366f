package docstore

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"

	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/pkg/common"
)

// MemStore is the embedded in-memory Store implementation, used for demo
// deployments without a database and throughout the tests. Semantics match
// GormStore: writes emit a full snapshot to every subscriber.
type MemStore struct {
	mu       sync.Mutex
	bus      EventBus.Bus
	products []domain.Product
	settings map[string]string
}

// NewMemStore builds an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		bus: EventBus.New(),
	}
}

func (s *MemStore) Writable() bool { return true }

// Start is a no-op; there are no external writers to poll for.
func (s *MemStore) Start() {}

func (s *MemStore) Close() error { return nil }

func (s *MemStore) Products(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.products), nil
}

func (s *MemStore) CreateProduct(ctx context.Context, draft domain.Product) (domain.Product, error) {
	now := time.Now()
	p := draft
	p.ID = common.NewID()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.mu.Lock()
	// Newest first, matching the persistent store's ordering.
	s.products = append([]domain.Product{p}, s.products...)
	snapshot := cloneProducts(s.products)
	s.mu.Unlock()

	s.bus.Publish(topicProducts, snapshot)
	return p, nil
}

func (s *MemStore) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) error {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return errors.Wrapf(ErrNotFound, "product %s", id)
	}
	patch.Apply(&s.products[idx])
	s.products[idx].UpdatedAt = time.Now()
	snapshot := cloneProducts(s.products)
	s.mu.Unlock()

	s.bus.Publish(topicProducts, snapshot)
	return nil
}

func (s *MemStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	snapshot := cloneProducts(s.products)
	s.mu.Unlock()

	s.bus.Publish(topicProducts, snapshot)
	return nil
}

func (s *MemStore) Settings(ctx context.Context) (*domain.SiteConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsLocked()
}

func (s *MemStore) settingsLocked() (*domain.SiteConfig, error) {
	if s.settings == nil {
		return nil, nil
	}
	rows := make([]domain.SiteSetting, 0, len(s.settings))
	for name, value := range s.settings {
		rows = append(rows, domain.SiteSetting{Name: name, Value: value})
	}
	return decodeSettings(rows)
}

func (s *MemStore) CreateSettings(ctx context.Context, cfg domain.SiteConfig) error {
	s.mu.Lock()
	s.settings = cfg.Values()
	snapshot, err := s.settingsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.bus.Publish(topicSettings, snapshot)
	return nil
}

func (s *MemStore) UpdateSettings(ctx context.Context, patch domain.SiteConfigPatch) error {
	values := patch.Values()
	if len(values) == 0 {
		return nil
	}
	s.mu.Lock()
	if s.settings == nil {
		s.settings = map[string]string{}
	}
	for name, value := range values {
		s.settings[name] = value
	}
	snapshot, err := s.settingsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.bus.Publish(topicSettings, snapshot)
	return nil
}

func (s *MemStore) SubscribeProducts(h ProductsHandler) CancelFunc {
	if err := s.bus.Subscribe(topicProducts, h); err != nil {
		return func() {}
	}
	s.mu.Lock()
	snapshot := cloneProducts(s.products)
	s.mu.Unlock()
	h(snapshot)
	return func() { _ = s.bus.Unsubscribe(topicProducts, h) }
}

func (s *MemStore) SubscribeSettings(h SettingsHandler) CancelFunc {
	if err := s.bus.Subscribe(topicSettings, h); err != nil {
		return func() {}
	}
	s.mu.Lock()
	snapshot, err := s.settingsLocked()
	s.mu.Unlock()
	if err == nil {
		h(snapshot)
	}
	return func() { _ = s.bus.Unsubscribe(topicSettings, h) }
}
