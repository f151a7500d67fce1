// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the platewatch CLI. It wires the
// lookup pipeline (plate extraction, open-data queries, aggregation,
// response chunking) behind two channel surfaces: direct CLI lookups and
// an HTTP server for transport-layer integrations.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openplates/platewatch/internal/geocode"
	"github.com/openplates/platewatch/internal/history"
	"github.com/openplates/platewatch/internal/normalize"
	"github.com/openplates/platewatch/internal/opendata"
	"github.com/openplates/platewatch/internal/pipeline"
	"github.com/openplates/platewatch/internal/secrets"
	"github.com/openplates/platewatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the configured value if set, falling back to the
// secrets directory.
func secretDefault(key, configured string) string {
	if configured != "" {
		return configured
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the platewatch CLI.
var rootCmd = &cobra.Command{
	Use:   "platewatch",
	Short: "Look up NYC parking and camera violations by license plate",
	Long: `platewatch extracts license plates from free text, queries the NYC
open-data violation datasets, and aggregates each vehicle's full violation
history: totals, breakdowns by violation type, year, and borough, fines,
and the densest rolling-year camera-violation streak.

Use lookup for one-off or batch queries, serve to expose the pipeline over
HTTP, and campaign to manage advocacy hashtags.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./platewatch.yaml or ~/.config/platewatch/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("platewatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "platewatch"))
		}
	}

	viper.SetEnvPrefix("PLATEWATCH")
	viper.AutomaticEnv()

	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "platewatch/"+version)
	viper.SetDefault("opendata.max_retries", 3)
	viper.SetDefault("storage.db_path", "platewatch.db")
	viper.SetDefault("server.addr", ":8080")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

// loadConfig assembles the pipeline configuration from viper and secrets.
func loadConfig() types.PipelineConfig {
	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
	return types.PipelineConfig{
		OpenData: types.OpenDataConfig{
			HTTPConfig: httpCfg,
			BaseURL:    viper.GetString("opendata.base_url"),
			AppToken:   secretDefault(secrets.SocrataAppToken, viper.GetString("opendata.app_token")),
			MaxRetries: viper.GetInt("opendata.max_retries"),
		},
		Geocode: types.GeocodeConfig{
			HTTPConfig: httpCfg,
			BaseURL:    viper.GetString("geocode.base_url"),
			APIKey:     secretDefault(secrets.GeoclientAPIKey, viper.GetString("geocode.api_key")),
		},
		Storage: types.StorageConfig{
			DBPath: viper.GetString("storage.db_path"),
		},
		Server: types.ServerConfig{
			Addr:           viper.GetString("server.addr"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		},
	}
}

// newPipeline wires the full lookup stack. The caller owns closing the
// returned store.
func newPipeline(log zerolog.Logger) (*pipeline.Pipeline, *history.Store, error) {
	cfg := loadConfig()

	store, err := history.Open(cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening lookup history: %w", err)
	}

	resolver := geocode.NewResolver(geocode.NewClient(cfg.Geocode), store, log)
	normalizer := normalize.New(resolver, log)
	data := opendata.NewClient(cfg.OpenData)

	p := pipeline.New(data, normalizer, store, nil, viper.GetString("mention"), log)
	return p, store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
