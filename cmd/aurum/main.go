package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/maisonaurum/aurum/config"
	"github.com/maisonaurum/aurum/internal/adminapi"
	"github.com/maisonaurum/aurum/internal/app"
	"github.com/maisonaurum/aurum/internal/shopapi"
	"github.com/maisonaurum/aurum/internal/webserver"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	webserver.Init(webserver.Deps{
		Config:     cfg,
		Projection: application.Projection(),
		Gateway:    application.Gateway(),
		Sessions:   application.Sessions(),
		Audit:      application.Audit(),
	})
	shopapi.InitRouter()
	adminapi.InitRouter()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Instance().Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zap.L().Info("shutting down", zap.String("signal", sig.String()))
		webserver.Instance().Shutdown()
	case err := <-errCh:
		if err != nil {
			zap.L().Error("web server failed", zap.Error(err))
		}
	}
}
