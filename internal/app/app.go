// Package app assembles the pantry service: configuration, storage, the
// session core and its collaborators, and the HTTP server, plus the
// run/shutdown lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpapi "github.com/pantrybook/pantry/internal/http"
	"github.com/pantrybook/pantry/internal/service"
	"github.com/pantrybook/pantry/internal/store"
	"github.com/pantrybook/pantry/internal/store/drivers/sqlite"
	"github.com/pantrybook/pantry/pkg/cryptox"
	"github.com/pantrybook/pantry/pkg/slogx"
	"github.com/pantrybook/pantry/pkg/tokenx"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type Application struct {
	cfg    Config
	log    *slog.Logger
	store  store.Store
	server *http.Server
}

// New wires the whole service together. Nothing is listening yet; call Run.
func New(cfg Config) (*Application, error) {
	log := slogx.New(slogx.Config{
		Service: "pantryd",
		Version: Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	cryptox.SetPepperPath(cfg.PepperFile)

	st, err := initDatabase(cfg)
	if err != nil {
		return nil, err
	}

	codec, err := tokenx.NewCodec([]byte(cfg.TokenSecret), cfg.Issuer)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("init token codec: %w", err)
	}

	handler := initHTTP(cfg, log, st, codec)

	return &Application{
		cfg:   cfg,
		log:   log,
		store: st,
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}, nil
}

func initDatabase(cfg Config) (*sqlite.Store, error) {
	st, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return st, nil
}

func initHTTP(cfg Config, log *slog.Logger, st store.Store, codec *tokenx.Codec) http.Handler {
	sessions := &service.SessionService{
		Store:       st,
		Codec:       codec,
		Credentials: &service.CredentialVerifier{Store: st},
		Issuer:      cfg.Issuer,
		TokenTTL:    cfg.TokenTTL,
	}

	return httpapi.NewRouter(httpapi.RouterConfig{
		Logger:    log,
		Verifier:  codec,
		Sessions:  &httpapi.SessionHandler{Sessions: sessions},
		Meals:     &httpapi.MealsHandler{Meals: &service.MealService{Store: st}},
		Groceries: &httpapi.GroceriesHandler{Groceries: &service.GroceryService{Store: st}},
		Health: &httpapi.HealthHandler{
			Store:   st,
			Codec:   codec,
			Version: Version,
			Started: time.Now(),
		},
	})
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured grace period.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down", "grace_period", a.cfg.ShutdownGracePeriod.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("shutdown incomplete", "err", err)
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("closing store", "err", err)
	}

	return <-errCh
}
