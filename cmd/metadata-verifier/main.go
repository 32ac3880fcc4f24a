// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the metadata-verifier CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/metadata-verifier/internal/config"
	"github.com/pdiddy/metadata-verifier/internal/logging"
	"github.com/pdiddy/metadata-verifier/internal/secrets"
	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig holds the configuration resolved before any subcommand runs.
var appConfig types.Config

// logger is built from appConfig.Log and writes to stderr.
var logger = zerolog.Nop()

// configFileUsed names the config file read at startup, if any. It is
// logged once the logger exists.
var configFileUsed string

// rootCmd is the base command for the metadata-verifier CLI.
var rootCmd = &cobra.Command{
	Use:   "metadata-verifier",
	Short: "Reconcile concept identifiers in spreadsheets against reference systems",
	Long: `metadata-verifier checks the concept UUIDs found in spreadsheet columns
against several reference systems: the catalog source, a curated collection,
and each deployed instance (registry mode), or the concepts referenced by a
form definition (form mode).

Each identifier cell gets a verdict with per-source presence, datatype
agreement, and a discrepancy flag. Summaries print per sheet and per source.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		logger = logging.New(cfg.Log, os.Stderr)
		if configFileUsed != "" {
			logger.Info().Str("file", configFileUsed).Msg("Using config file")
		}

		s, err := secrets.Load(secrets.DefaultDir, &logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("Loaded secrets")
		}
		secrets.Apply(&cfg, s)

		appConfig = cfg
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./metadata-verifier.yaml or ~/.config/metadata-verifier/metadata-verifier.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper(), config.Name+"/"+version)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.Name)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", config.Name))
		}
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
