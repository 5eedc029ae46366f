// Package app wires the application together: configuration, logging,
// metrics, the document store, the shared projection, the mutation gateway
// and the background jobs.
package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/audit"
	"github.com/maisonaurum/aurum/internal/docstore"
	"github.com/maisonaurum/aurum/internal/gateway"
	"github.com/maisonaurum/aurum/internal/media"
	"github.com/maisonaurum/aurum/internal/state"
	"github.com/maisonaurum/aurum/pkg/metrics"
)

type Application struct {
	appConfig  *config.AppConfig
	store      docstore.Store
	projection *state.Projection
	gw         *gateway.Gateway
	sessions   *state.Manager
	auditLog   *audit.Logger
	sched      *cron.Cron
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider     = (*Application)(nil)
	_ StoreProvider      = (*Application)(nil)
	_ ProjectionProvider = (*Application)(nil)
	_ GatewayProvider    = (*Application)(nil)
	_ SessionProvider    = (*Application)(nil)
	_ SchedulerProvider  = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() docstore.Store {
	return a.store
}

// OverrideStore replaces the document store handle (used in tests).
func (a *Application) OverrideStore(s docstore.Store) {
	a.store = s
}

func (a *Application) Projection() *state.Projection {
	return a.projection
}

func (a *Application) Gateway() *gateway.Gateway {
	return a.gw
}

func (a *Application) Sessions() *state.Manager {
	return a.sessions
}

func (a *Application) Audit() *audit.Logger {
	return a.auditLog
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize metrics with workdir convention
	err = metrics.InitMetrics(cfg.System.Workdir)
	if err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	// Connect the document store; an unreachable or unconfigured backend
	// switches the application into degraded mode instead of failing.
	a.store = openStore(cfg)
	if a.store.Writable() {
		a.checkCatalog()
	}
	a.store.Start()

	a.auditLog = openAudit(cfg.System.Workdir)

	a.gw, err = gateway.New(a.store, media.NewClient(cfg.Media), a.auditLog)
	if err != nil {
		zap.S().Errorf("gateway init failed: %v", err)
	}

	a.projection = state.NewProjection(a.store)
	a.projection.Start()

	a.sessions = state.NewManager()

	a.initJob()
}

// openStore selects the store backend from configuration. Anything short of
// a working backend yields the read-only disabled store.
func openStore(cfg *config.AppConfig) docstore.Store {
	if !cfg.Database.Configured() {
		zap.L().Warn("no document store configured, starting in degraded mode")
		return docstore.Disabled{}
	}
	if cfg.Database.Type == "memory" {
		zap.L().Info("using in-memory document store")
		return docstore.NewMemStore()
	}
	store, err := docstore.Open(cfg.Database, cfg.System.Workdir)
	if err != nil {
		zap.L().Error("document store connection failed, starting in degraded mode", zap.Error(err))
		return docstore.Disabled{}
	}
	zap.S().Infof("Document store connection successful, type: %s", cfg.Database.Type)
	return store
}

// openAudit opens the operator audit log. The log is best effort; a failed
// open leaves auditing off but the application running.
func openAudit(workdir string) *audit.Logger {
	path := filepath.Join(workdir, "audit.db")
	log, err := audit.Open(path)
	if err != nil {
		zap.L().Warn("audit log unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return log
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.projection != nil {
		a.projection.Close()
	}
	if a.gw != nil {
		a.gw.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.auditLog != nil {
		_ = a.auditLog.Close()
	}

	_ = metrics.Close()
	_ = zap.L().Sync()
}
