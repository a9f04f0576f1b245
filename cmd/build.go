package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/open-filament/ofdb/internal/catalog"
	"github.com/open-filament/ofdb/internal/config"
	"github.com/open-filament/ofdb/internal/crawler"
	"github.com/open-filament/ofdb/internal/export"
)

var (
	flagDataDir      string
	flagStoresDir    string
	flagOutputDir    string
	flagVersion      string
	flagBaseURL      string
	flagAssetURLMode string
	flagConfig       string

	flagSkipJSON   bool
	flagSkipSQLite bool
	flagSkipCSV    bool
	flagSkipAPI    bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Crawl the source trees and export every artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		applyConfig(cmd, cfg)

		logger, err := buildLogger()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		if flagVersion == "" {
			now := time.Now().UTC()
			flagVersion = fmt.Sprintf("%d.%d.0", now.Year(), int(now.Month()))
		}
		if err := os.MkdirAll(flagOutputDir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", flagOutputDir, err)
		}

		start := time.Now()
		fmt.Printf("Open Filament Database build %s\n", flagVersion)

		fmt.Println("==> Crawling source trees")
		c := crawler.New(flagDataDir, flagStoresDir, logger)
		g := c.Crawl()
		fmt.Printf("    %d brands, %d filaments, %d variants, %d sizes, %d stores\n",
			len(g.Brands), len(g.Filaments), len(g.Variants), len(g.Sizes), len(g.Stores))

		opts := export.Options{
			OutputDir:    flagOutputDir,
			Version:      flagVersion,
			GeneratedAt:  c.Timestamp(),
			BaseURL:      flagBaseURL,
			AssetURLMode: flagAssetURLMode,
			DataDir:      flagDataDir,
			StoresDir:    flagStoresDir,
			Logger:       logger,
		}
		if err := runExporters(g, opts); err != nil {
			return err
		}

		fmt.Println("==> Writing manifest")
		count, err := export.Manifest(opts)
		if err != nil {
			return err
		}

		fmt.Printf("Done: %d artifacts in %s (%v)\n", count, flagOutputDir, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func runExporters(g *catalog.Graph, opts export.Options) error {
	steps := []struct {
		name string
		skip bool
		run  func(*catalog.Graph, export.Options) error
	}{
		{"JSON", flagSkipJSON, export.JSON},
		{"SQLite", flagSkipSQLite, export.SQLite},
		{"CSV", flagSkipCSV, export.CSV},
		{"Static API", flagSkipAPI, export.API},
	}
	for _, step := range steps {
		if step.skip {
			fmt.Printf("==> Skipping %s export\n", step.name)
			continue
		}
		fmt.Printf("==> Exporting %s\n", step.name)
		if err := step.run(g, opts); err != nil {
			return fmt.Errorf("%s export: %w", step.name, err)
		}
	}
	return nil
}

// applyConfig fills in file-supplied defaults for every flag the user did
// not set explicitly.
func applyConfig(cmd *cobra.Command, cfg config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("data-dir") && cfg.DataDir != "" {
		flagDataDir = cfg.DataDir
	}
	if !flags.Changed("stores-dir") && cfg.StoresDir != "" {
		flagStoresDir = cfg.StoresDir
	}
	if !flags.Changed("output-dir") && cfg.OutputDir != "" {
		flagOutputDir = cfg.OutputDir
	}
	if !flags.Changed("dataset-version") && cfg.Version != "" {
		flagVersion = cfg.Version
	}
	if !flags.Changed("base-url") && cfg.BaseURL != "" {
		flagBaseURL = cfg.BaseURL
	}
	if !flags.Changed("asset-url-mode") && cfg.AssetURLMode != "" {
		flagAssetURLMode = cfg.AssetURLMode
	}
	if !flags.Changed("skip-json") && cfg.SkipJSON {
		flagSkipJSON = true
	}
	if !flags.Changed("skip-sqlite") && cfg.SkipSQLite {
		flagSkipSQLite = true
	}
	if !flags.Changed("skip-csv") && cfg.SkipCSV {
		flagSkipCSV = true
	}
	if !flags.Changed("skip-api") && cfg.SkipAPI {
		flagSkipAPI = true
	}
}

func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg.Build()
}

func init() {
	buildCmd.Flags().StringVar(&flagDataDir, "data-dir", "data", "Catalog tree root (brand/material/filament/variant)")
	buildCmd.Flags().StringVar(&flagStoresDir, "stores-dir", "stores", "Stores tree root")
	buildCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "dist", "Output directory for all artifacts")
	buildCmd.Flags().StringVar(&flagVersion, "dataset-version", "", "Dataset version (default YYYY.M.0 from the current UTC date)")
	buildCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Public base URL for the static API")
	buildCmd.Flags().StringVar(&flagAssetURLMode, "asset-url-mode", "auto", "Asset URL policy: auto, absolute, or relative")
	buildCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Optional YAML config file with flag defaults")

	buildCmd.Flags().BoolVar(&flagSkipJSON, "skip-json", false, "Skip the JSON exporters")
	buildCmd.Flags().BoolVar(&flagSkipSQLite, "skip-sqlite", false, "Skip the SQLite exporter")
	buildCmd.Flags().BoolVar(&flagSkipCSV, "skip-csv", false, "Skip the CSV exporter")
	buildCmd.Flags().BoolVar(&flagSkipAPI, "skip-api", false, "Skip the static API exporter")

	rootCmd.AddCommand(buildCmd)
}
