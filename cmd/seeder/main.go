// cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ammerola/dashboard-be/internal/adapters/db"
	"github.com/ammerola/dashboard-be/internal/pkg/config"
	"github.com/ammerola/dashboard-be/internal/pkg/logger"
)

// cmdContext holds the resources shared by the seeder commands
type cmdContext struct {
	Config   *config.Config
	Logger   *slog.Logger
	Database *db.Database
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Database != nil {
		c.Database.Close()
	}
}

// loadConfig reads the configuration with a quiet logger
func loadConfig() (*config.Config, *slog.Logger) {
	slogger := logger.SetupLogger(logLevel, "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		exitError("failed to load configuration: %v", err)
	}
	return cfg, slogger
}

// initContext loads configuration and connects to the database
func initContext(ctx context.Context) *cmdContext {
	cfg, slogger := loadConfig()

	database, err := db.NewDatabase(ctx, db.ConfigFromSettings(cfg.Database), slogger)
	if err != nil {
		exitError("failed to connect to database: %v", err)
	}

	return &cmdContext{Config: cfg, Logger: slogger, Database: database}
}

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Dashboard database tooling",
	Long: `seeder manages the dashboard database: it applies schema migrations,
loads sales and inventory fixtures from YAML and dumps the stored
collections back into the same fixture format.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func exitError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", color.GreenString("ok"), fmt.Sprintf(format, args...))
}
