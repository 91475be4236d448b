// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubpage CLI, which fetches an
// author's publication list from Semantic Scholar and renders the static
// artifacts embedded on the author's website.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubpage/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for
// key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pubpage CLI.
var rootCmd = &cobra.Command{
	Use:   "pubpage",
	Short: "Generate a static publications page from Semantic Scholar",
	Long: `pubpage fetches one author's publication list from the Semantic Scholar
graph API and writes two artifacts: a JSON snapshot and a self-contained
HTML fragment for embedding on a personal website. A scheduler (weekly
cron plus manual trigger) runs "pubpage generate" and commits the
regenerated files; the other subcommands support that loop.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubpage.yaml or ~/.config/pubpage/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubpage")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubpage"))
		}
	}

	viper.SetEnvPrefix("PUBPAGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
