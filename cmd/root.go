// Package cmd implements the plantcare command line.
package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-plantcare/advisory"
	"go-plantcare/catalog"
	"go-plantcare/config"
	"go-plantcare/logger"
)

// app is the state shared by subcommands after the root pre-run.
type app struct {
	cfg     *config.Config
	log     *zap.SugaredLogger
	advisor *advisory.Advisor
}

// NewRootCmd builds the command tree. clock pins "now" for the advisory
// commands; nil means the system clock.
func NewRootCmd(clock advisory.Clock) *cobra.Command {
	a := &app{advisor: advisory.NewAdvisor(clock)}

	root := &cobra.Command{
		Use:           "plantcare",
		Short:         "Plant catalog and seasonal care service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.Init(cfg.Debug); err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Get()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newPlantsCmd(a),
		newSeasonCmd(a),
		newWaterCmd(a),
		newImportCmd(a),
	)
	return root
}

// Execute runs the CLI with the system clock.
func Execute() error {
	return NewRootCmd(nil).Execute()
}

// catalogSource builds the configured source. db may be nil unless the
// source is the database.
func (a *app) catalogSource(db *sql.DB) (catalog.Source, error) {
	var src catalog.Source
	switch a.cfg.Catalog.Source {
	case config.CatalogFile:
		src = catalog.NewFileSource(a.cfg.Catalog.Path)
	case config.CatalogURL:
		src = catalog.NewURLSource(a.cfg.Catalog.URL, a.cfg.Catalog.Timeout)
	case config.CatalogDB:
		if db == nil {
			return nil, fmt.Errorf("catalog source %q needs a database", config.CatalogDB)
		}
		src = catalog.NewSQLSource(db)
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", a.cfg.Catalog.Source)
	}
	return catalog.NewCachedSource(src, a.cfg.Catalog.CacheTTL), nil
}

// openDBIfNeeded opens the database only for the db catalog source.
func (a *app) openDBIfNeeded() (*sql.DB, error) {
	if a.cfg.Catalog.Source != config.CatalogDB {
		return nil, nil
	}
	return config.OpenDB(a.cfg, a.log)
}
