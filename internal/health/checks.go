package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthHttp "github.com/hellofresh/health-go/v5/checks/http"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/jmoiron/sqlx"
)

type Endpoints struct {
	DB *sqlx.DB
}

// NewHealthChecker reports on the backend API and whichever credential store
// is configured.
func NewHealthChecker(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "backend",
			Timeout:   cfg.API.Timeout,
			SkipOnErr: false,
			Check: healthHttp.New(healthHttp.Config{
				URL:            cfg.API.BaseURL,
				RequestTimeout: cfg.API.Timeout,
			}),
		},
	}

	switch cfg.Credentials.Driver {
	case config.DriverRedis:
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	default:
		checks = append(checks, health.Config{
			Name:      "credentials",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints == nil || endpoints.DB == nil {
					return fmt.Errorf("credential database is not open")
				}
				if err := endpoints.DB.PingContext(ctx); err != nil {
					return fmt.Errorf("failed to reach credential database: %w", err)
				}
				return nil
			},
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "grocery-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
