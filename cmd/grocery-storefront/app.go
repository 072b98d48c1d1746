package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	repository "github.com/aaravmahajanofficial/grocery-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/grocery-storefront/internal/services"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/telemetry"
	"github.com/spf13/cobra"
)

// app wires the services for one command invocation.
type app struct {
	cfg      *config.Config
	client   *api.Client
	sessions *service.SessionService
	catalog  *service.CatalogService
	cart     *service.CartService

	closers []func(context.Context) error
}

// sessionTokens lets the API client read the bearer token from a session
// service that is built after the client.
type sessionTokens struct {
	sessions *service.SessionService
}

func (t *sessionTokens) Token() string {
	if t.sessions == nil {
		return ""
	}

	return t.sessions.Token()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {

	a := &app{cfg: cfg}

	shutdown, err := telemetry.InitTracer(ctx, &cfg.Otel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise tracing: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	creds, err := a.openCredentials(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	fee, err := cfg.Cart.ShippingFee()
	if err != nil {
		a.close()
		return nil, err
	}

	tokens := &sessionTokens{}

	client, err := api.New(&cfg.API, tokens)
	if err != nil {
		a.close()
		return nil, err
	}

	a.client = client
	a.sessions = service.NewSessionService(client, creds)
	tokens.sessions = a.sessions

	a.catalog = service.NewCatalogService(client, client, a.sessions)

	var remote api.CartAPI
	if cfg.Cart.Sync {
		remote = client
	}
	a.cart = service.NewCartService(service.NewCart(fee), remote)

	a.sessions.OnLogout(a.cart, a.catalog)

	if _, err := a.sessions.Restore(ctx); err != nil {
		slog.Warn("⚠️ Could not restore saved session", slog.String("error", err.Error()))
	}

	return a, nil
}

func (a *app) openCredentials(ctx context.Context) (repository.CredentialRepository, error) {

	switch a.cfg.Credentials.Driver {
	case config.DriverRedis:
		client, err := repository.NewRedisClient(ctx, &a.cfg.RedisConnect)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })

		return repository.NewRedisCredentialRepo(client, a.cfg.Credentials.Profile, a.cfg.RedisConnect.SessionTTL), nil

	default:
		db, err := repository.OpenSQLite(ctx, a.cfg.Credentials.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		return repository.NewSQLiteCredentialRepo(db, a.cfg.Credentials.Profile), nil
	}
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			slog.Error("⚠️ Error releasing resource", slog.String("error", err.Error()))
		}
	}
}

// withApp builds the app for cmd, runs fn and tears everything down.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {

	ctx := middleware.WithLogger(cmd.Context(), slog.Default())

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}
