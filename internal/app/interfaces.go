package app

import (
	"github.com/robfig/cron/v3"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/docstore"
	"github.com/maisonaurum/aurum/internal/gateway"
	"github.com/maisonaurum/aurum/internal/state"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides document store access
type StoreProvider interface {
	Store() docstore.Store
}

// ProjectionProvider provides the shared read projection
type ProjectionProvider interface {
	Projection() *state.Projection
}

// GatewayProvider provides the mutation gateway
type GatewayProvider interface {
	Gateway() *gateway.Gateway
}

// SessionProvider provides per-visitor session state
type SessionProvider interface {
	Sessions() *state.Manager
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	ProjectionProvider
	GatewayProvider
	SessionProvider
	SchedulerProvider
}
