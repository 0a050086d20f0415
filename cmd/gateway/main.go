package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campus-community/gateway/internal/api"
	"github.com/campus-community/gateway/internal/backend"
	"github.com/campus-community/gateway/internal/config"
	"github.com/campus-community/gateway/internal/server"
	"github.com/campus-community/gateway/internal/session"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	var store session.Store
	var gorm *session.GormStore
	if cfg.DatabaseURL != "" {
		gorm, err = session.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("session store", zap.Error(err))
		}
		store = gorm
	} else {
		log.Warn("no DATABASE_URL, sessions are in-memory and lost on restart")
		store = session.NewMemoryStore()
	}

	bc := backend.NewClient(cfg.BackendURL, log)
	mgr := session.NewManager(store, bc, cfg.SessionSecret, cfg.SessionTTL, log)
	a := api.NewAPI(cfg, mgr, bc, log)
	srv := server.NewServer(cfg, a).NewHTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if gorm != nil {
		go func() {
			t := time.NewTicker(time.Hour)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					if err := gorm.DeleteExpired(ctx); err != nil {
						log.Warn("expired session sweep", zap.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		log.Info("gateway listening", zap.String("addr", cfg.BindAddr), zap.String("backend", cfg.BackendURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	if gorm != nil {
		_ = gorm.Close()
	}
	os.Exit(0)
}
