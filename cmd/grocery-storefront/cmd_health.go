package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	storefrontHealth "github.com/aaravmahajanofficial/grocery-storefront/internal/health"
	repository "github.com/aaravmahajanofficial/grocery-storefront/internal/repositories"
	"github.com/hellofresh/health-go/v5"
	"github.com/spf13/cobra"
)

// healthCmd checks the backend and the credential store
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend and local credential store",
	RunE: func(cmd *cobra.Command, args []string) error {

		ctx := middleware.WithLogger(cmd.Context(), slog.Default())
		endpoints := &storefrontHealth.Endpoints{}

		if cfg.Credentials.Driver == config.DriverSQLite {
			db, err := repository.OpenSQLite(ctx, cfg.Credentials.SQLitePath)
			if err != nil {
				slog.Warn("⚠️ Credential database unavailable", slog.String("error", err.Error()))
			} else {
				defer db.Close()
				endpoints.DB = db
			}
		}

		h, err := storefrontHealth.NewHealthChecker(cfg, endpoints)
		if err != nil {
			return errors.InternalError("Failed to set up health checks").WithError(err)
		}

		result := h.Measure(ctx)

		if err := render(cmd.OutOrStdout(), result, func(w io.Writer) {
			printHealth(w, result)
		}); err != nil {
			return err
		}

		if result.Status != health.StatusOK {
			return errors.ThirdPartyError("Storefront is unhealthy").WithDetail(string(result.Status))
		}

		return nil
	},
}

func printHealth(w io.Writer, result health.Check) {

	fmt.Fprintf(w, "status: %s\n", result.Status)

	names := make([]string, 0, len(result.Failures))
	for name := range result.Failures {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, result.Failures[name])
	}
}
