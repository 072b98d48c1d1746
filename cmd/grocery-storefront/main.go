package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils/response"
	"github.com/spf13/cobra"
)

var (
	configPath string
	output     string

	// loaded by the root command before any subcommand runs
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "grocery-storefront",
	Short: "Terminal storefront for the grocery shop",
	Long: `Browse products, manage a cart and administer the catalog of a
grocery shop backend from the terminal.

Start with 'login' (or 'admin-login'), then 'shop' or 'products'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		cfg = loaded
		slog.SetDefault(newLogger(cfg.Log, cmd.ErrOrStderr()))

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (or set CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(adminLoginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		response.Error(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newLogger writes to stderr so stdout stays clean for command output.
func newLogger(cfg config.Log, w io.Writer) *slog.Logger {

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}
