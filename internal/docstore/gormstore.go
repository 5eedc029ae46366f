package docstore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/domain"
	"github.com/maisonaurum/aurum/pkg/common"
)

// DefaultPollInterval is how often the store checks for writes made by
// other clients of the same database.
const DefaultPollInterval = 3 * time.Second

// GormStore is the persistent Store implementation. Local writes emit a
// fresh snapshot immediately after commit; a fingerprint poller picks up
// external writers and re-emits, which gives every subscriber the
// last-writer-wins view of a multi-writer backend.
type GormStore struct {
	db   *gorm.DB
	bus  EventBus.Bus
	poll time.Duration
	done chan struct{}

	// emitMu serializes snapshot emission so deliveries stay in order.
	emitMu     sync.Mutex
	productsFP string
	settingsFP string
}

// Open connects to the configured database and migrates the schema.
func Open(cfg config.DBConfig, workdir string) (*GormStore, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "postgres", "postgresql":
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	case "sqlite":
		path := filepath.Join(workdir, "aurum.db")
		if cfg.Name != "" {
			path = cfg.Name
		}
		db, err = gorm.Open(sqlite.Open(path), gormCfg)
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if err := db.AutoMigrate(domain.Tables...); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}

	return &GormStore{
		db:   db,
		bus:  EventBus.New(),
		poll: DefaultPollInterval,
		done: make(chan struct{}),
	}, nil
}

func (s *GormStore) Writable() bool { return true }

// Start launches the external-change poller.
func (s *GormStore) Start() {
	// Seed the fingerprints so the first poll does not re-emit an
	// unchanged collection to subscribers that already got their initial
	// snapshot.
	s.emitMu.Lock()
	s.productsFP, _ = s.productsFingerprint()
	s.settingsFP, _ = s.settingsFingerprint()
	s.emitMu.Unlock()

	go s.pollLoop()
}

func (s *GormStore) pollLoop() {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.done:
			return
		}
	}
}

// refresh compares collection fingerprints and emits snapshots for
// anything that changed since the last emission.
func (s *GormStore) refresh() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	if fp, err := s.productsFingerprint(); err != nil {
		zap.L().Warn("products change poll failed", zap.Error(err))
	} else if fp != s.productsFP {
		s.emitProductsLocked(fp)
	}

	if fp, err := s.settingsFingerprint(); err != nil {
		zap.L().Warn("settings change poll failed", zap.Error(err))
	} else if fp != s.settingsFP {
		s.emitSettingsLocked(fp)
	}
}

func (s *GormStore) productsFingerprint() (string, error) {
	var row struct {
		C int64
		M *time.Time
	}
	if err := s.db.Raw("SELECT COUNT(*) AS c, MAX(updated_at) AS m FROM products").Scan(&row).Error; err != nil {
		return "", err
	}
	var stamp int64
	if row.M != nil {
		stamp = row.M.UnixNano()
	}
	return fmt.Sprintf("%d|%d", row.C, stamp), nil
}

func (s *GormStore) settingsFingerprint() (string, error) {
	var row struct {
		C int64
		M *time.Time
	}
	if err := s.db.Raw("SELECT COUNT(*) AS c, MAX(updated_at) AS m FROM site_settings").Scan(&row).Error; err != nil {
		return "", err
	}
	var stamp int64
	if row.M != nil {
		stamp = row.M.UnixNano()
	}
	return fmt.Sprintf("%d|%d", row.C, stamp), nil
}

func (s *GormStore) emitProducts() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	fp, err := s.productsFingerprint()
	if err != nil {
		zap.L().Warn("products fingerprint failed", zap.Error(err))
		fp = s.productsFP
	}
	s.emitProductsLocked(fp)
}

func (s *GormStore) emitProductsLocked(fp string) {
	products, err := s.loadProducts()
	if err != nil {
		zap.L().Error("products snapshot load failed", zap.Error(err))
		return
	}
	s.productsFP = fp
	s.bus.Publish(topicProducts, products)
}

func (s *GormStore) emitSettings() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	fp, err := s.settingsFingerprint()
	if err != nil {
		zap.L().Warn("settings fingerprint failed", zap.Error(err))
		fp = s.settingsFP
	}
	s.emitSettingsLocked(fp)
}

func (s *GormStore) emitSettingsLocked(fp string) {
	cfg, err := s.loadSettings()
	if err != nil {
		zap.L().Error("settings snapshot load failed", zap.Error(err))
		return
	}
	s.settingsFP = fp
	s.bus.Publish(topicSettings, cfg)
}

func (s *GormStore) loadProducts() ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

func (s *GormStore) loadSettings() (*domain.SiteConfig, error) {
	var rows []domain.SiteSetting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return decodeSettings(rows)
}

func decodeSettings(rows []domain.SiteSetting) (*domain.SiteConfig, error) {
	values := map[string]interface{}{}
	for _, row := range rows {
		values[row.Name] = row.Value
	}
	var cfg domain.SiteConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build settings decoder")
	}
	if err := decoder.Decode(values); err != nil {
		return nil, errors.Wrap(err, "decode settings document")
	}
	return &cfg, nil
}

func (s *GormStore) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

// CreateProduct stores a new document under a store-assigned id and returns
// the persisted value. Any id on the draft is discarded.
func (s *GormStore) CreateProduct(ctx context.Context, draft domain.Product) (domain.Product, error) {
	now := time.Now()
	p := draft
	p.ID = common.NewID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return domain.Product{}, errors.Wrap(err, "create product")
	}
	s.emitProducts()
	return p, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	var existing domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(ErrNotFound, "product %s", id)
		}
		return errors.Wrap(err, "load product")
	}
	if err := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return errors.Wrap(err, "update product")
	}
	s.emitProducts()
	return nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return errors.Wrap(err, "delete product")
	}
	s.emitProducts()
	return nil
}

func (s *GormStore) Settings(ctx context.Context) (*domain.SiteConfig, error) {
	return s.loadSettings()
}

// CreateSettings establishes the singleton document.
func (s *GormStore) CreateSettings(ctx context.Context, cfg domain.SiteConfig) error {
	if err := s.upsertSettings(ctx, cfg.Values()); err != nil {
		return errors.Wrap(err, "create settings")
	}
	s.emitSettings()
	return nil
}

func (s *GormStore) UpdateSettings(ctx context.Context, patch domain.SiteConfigPatch) error {
	values := patch.Values()
	if len(values) == 0 {
		return nil
	}
	if err := s.upsertSettings(ctx, values); err != nil {
		return errors.Wrap(err, "update settings")
	}
	s.emitSettings()
	return nil
}

func (s *GormStore) upsertSettings(ctx context.Context, values map[string]string) error {
	now := time.Now()
	rows := make([]domain.SiteSetting, 0, len(values))
	for name, value := range values {
		rows = append(rows, domain.SiteSetting{Name: name, Value: value, UpdatedAt: now})
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
}

func (s *GormStore) SubscribeProducts(h ProductsHandler) CancelFunc {
	if err := s.bus.Subscribe(topicProducts, h); err != nil {
		zap.L().Error("products subscribe failed", zap.Error(err))
		return func() {}
	}
	if products, err := s.loadProducts(); err != nil {
		zap.L().Error("initial products snapshot failed", zap.Error(err))
	} else {
		h(products)
	}
	return func() { _ = s.bus.Unsubscribe(topicProducts, h) }
}

func (s *GormStore) SubscribeSettings(h SettingsHandler) CancelFunc {
	if err := s.bus.Subscribe(topicSettings, h); err != nil {
		zap.L().Error("settings subscribe failed", zap.Error(err))
		return func() {}
	}
	if cfg, err := s.loadSettings(); err != nil {
		zap.L().Error("initial settings snapshot failed", zap.Error(err))
	} else {
		h(cfg)
	}
	return func() { _ = s.bus.Unsubscribe(topicSettings, h) }
}

func (s *GormStore) Close() error {
	close(s.done)
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
