package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/eleven-am/bistro/internal/logger"
	"github.com/eleven-am/bistro/internal/migrator"
	"github.com/eleven-am/bistro/internal/store"
	"github.com/eleven-am/bistro/pkg/bistro"
	"github.com/spf13/cobra"
)

// rootOptions carries the global flags and the configuration resolved from them
type rootOptions struct {
	configFile  string
	databaseURL string
	driver      string
	debug       bool
	verbose     bool

	config *BistroConfig
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bistro",
		Short: "Bistro - Restaurant Data Store",
		Long: `Bistro keeps a restaurant's categories, dishes, clients and orders in a
relational database and lets you manage them from the command line.

Run a single operation with the entity commands, or start the interactive
menu with 'bistro menu'.`,
		Version:       bistro.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: bistro.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.databaseURL, "db", "", "database file path (sqlite) or connection URL (postgres)")
	rootCmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "database driver (sqlite, postgres)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(newCategoryCommand(opts))
	rootCmd.AddCommand(newDishCommand(opts))
	rootCmd.AddCommand(newClientCommand(opts))
	rootCmd.AddCommand(newOrderCommand(opts))
	rootCmd.AddCommand(newDumpCommand(opts))
	rootCmd.AddCommand(newMenuCommand(opts))
	rootCmd.AddCommand(newDBCommand(opts))
	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// load resolves the configuration and applies flag overrides and log level
func (o *rootOptions) load() error {
	config, err := LoadConfig(o.configFile)
	if err != nil {
		return err
	}

	if o.databaseURL != "" {
		config.Database.URL = o.databaseURL
	}
	if o.driver != "" {
		config.Database.Driver = o.driver
	}
	o.config = config

	level, err := logger.ParseLevel(config.Logging.Level)
	if err != nil {
		logger.Config().Warn("falling back to warn level", "error", err)
	}
	logger.Configure(level, o.debug, o.verbose)

	return nil
}

func (o *rootOptions) dbConfig() *migrator.DBConfig {
	config := o.config
	if config == nil {
		config = DefaultConfig()
	}

	dbConfig := migrator.NewDBConfig(config.Database.Driver, config.Database.URL)
	if dbConfig.Driver != migrator.DriverSQLite {
		if config.Database.MaxConnections > 0 {
			dbConfig.MaxOpenConns = config.Database.MaxConnections
			dbConfig.MaxIdleConns = config.Database.MaxConnections
		}
		if config.Database.ConnMaxLifetime > 0 {
			dbConfig.ConnMaxLifetime = config.Database.ConnMaxLifetime
		}
	}
	return dbConfig
}

// withStore opens the store for the duration of fn
func (o *rootOptions) withStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store, out *printer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := store.Open(ctx, o.dbConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.CLI().Warn("failed to close store", "error", err)
		}
	}()

	return fn(ctx, s, newPrinter(cmd.OutOrStdout()))
}

// withRestaurant is withStore restricted to the entity operations
func (o *rootOptions) withRestaurant(cmd *cobra.Command, fn func(ctx context.Context, r store.Restaurant, out *printer) error) error {
	return o.withStore(cmd, func(ctx context.Context, s *store.Store, out *printer) error {
		return fn(ctx, s, out)
	})
}

// parseID accepts positive whole numbers only
func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: expected a positive whole number", value)
	}
	return id, nil
}

func parseAmount(value string) (int64, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: expected a whole number", value)
	}
	return amount, nil
}
