// Command tomlconfigd watches a directory of TOML configuration files,
// keeps a validated, cached, audited view of each one, and serves that
// view over HTTP and WebSocket — the config-watch daemon described
// alongside the core parser/serializer/schema/binding library.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tomlcore/tomlcore/internal/configsvc"
	"github.com/tomlcore/tomlcore/internal/configsvc/cache"
	svcconfig "github.com/tomlcore/tomlcore/internal/configsvc/config"
	"github.com/tomlcore/tomlcore/internal/configsvc/diagnostics"
	"github.com/tomlcore/tomlcore/internal/configsvc/httpapi"
	"github.com/tomlcore/tomlcore/internal/configsvc/storage"
	"github.com/tomlcore/tomlcore/internal/configwatch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tomlconfigd:", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := svcconfig.Load()
	if err != nil {
		return fmt.Errorf("load daemon config: %w", err)
	}

	audit, err := storage.Open(cfg.StorageDSN)
	if err != nil {
		return fmt.Errorf("open audit store: %w", err)
	}
	defer audit.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := audit.Migrate(ctx); err != nil {
		cancel()
		return fmt.Errorf("migrate audit store: %w", err)
	}
	cancel()

	c, err := cache.New(cfg.RedisAddr, "", 0, cache.DefaultConfig())
	if err != nil {
		logger.Warn("redis unavailable, continuing without L2 cache", zap.Error(err))
		c = nil
	}
	if c != nil {
		defer c.Close()
	}

	registry := configsvc.NewRegistry(c, audit, nil, logger)
	for _, dir := range cfg.WatchDirs {
		if err := loadDirectory(registry, dir); err != nil {
			logger.Warn("initial load of watch dir failed", zap.String("dir", dir), zap.Error(err))
		}
	}

	hub := diagnostics.NewHub(logger)
	defer hub.Close()

	watcher, err := configwatch.New(cfg.WatchDirs, logger, func(paths []string) {
		for _, p := range paths {
			name := filepath.Base(p)
			if err := registry.Load(context.Background(), name, p); err != nil {
				logger.Warn("reload failed", zap.String("path", p), zap.Error(err))
				hub.NotifyInvalid(name, []string{err.Error()})
				continue
			}
			hub.NotifyReloaded(name)
		}
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	auth := configsvc.NewAuthService(cfg.JWTSecret, time.Hour)
	router := httpapi.New(registry, jwtAuthenticator{auth}, hub, logger)

	server := &http.Server{Addr: cfg.ListenAddr, Handler: router}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func loadDirectory(registry *configsvc.Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := registry.Load(context.Background(), entry.Name(), path); err != nil {
			return err
		}
	}
	return nil
}

// jwtAuthenticator adapts AuthService to httpapi.Authenticator,
// reporting the token's "sub" claim as the subject.
type jwtAuthenticator struct{ svc *configsvc.AuthService }

func (a jwtAuthenticator) ValidateToken(token string) (string, error) {
	claims, err := a.svc.ValidateToken(token)
	if err != nil {
		return "", err
	}
	subject, _ := claims["sub"].(string)
	return subject, nil
}
