// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the iga CLI, which builds InvenioRDM
// metadata records for GitHub and GitLab releases.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caltechlibrary/iga/internal/logging"
	"github.com/caltechlibrary/iga/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials read from .secrets/ at startup.
	loadedSecrets secrets.Set

	// logger writes to stderr; --verbose enables Verbose lines.
	logger = logging.NewConsoleLogger(os.Stderr, false)
)

// rootCmd is the base command for the iga CLI.
var rootCmd = &cobra.Command{
	Use:   "iga",
	Short: "Build InvenioRDM records for GitHub and GitLab releases",
	Long: `iga builds an InvenioRDM metadata record for a GitHub or GitLab software
release.

It reads the release, the repository, codemeta.json and CITATION.cff,
resolves every record field from them in a fixed priority order, and
writes the record as JSON or YAML. Helper commands expose the identifier,
name, license and reference resolvers on their own.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = logging.NewConsoleLogger(os.Stderr, verbose || viper.GetBool("verbose"))

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Verbose("loaded secrets: %v", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./iga.yaml or ~/.config/iga/iga.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print detailed progress on stderr")
}

func initConfig() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("iga")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "iga"))
		}
	}

	viper.SetEnvPrefix("IGA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("forge.token", "IGA_FORGE_TOKEN", "GITHUB_TOKEN")
	_ = viper.BindEnv("gitlab.token", "IGA_GITLAB_TOKEN", "GITLAB_TOKEN")
	_ = viper.BindEnv("gitlab.enabled", "IGA_GITLAB_ENABLED", "GITLAB")
	_ = viper.BindEnv("gitlab.server", "IGA_GITLAB_SERVER", "GITLAB_SERVER")
	_ = viper.BindEnv("classifier.api_key", "IGA_CLASSIFIER_API_KEY", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("invenio.server", "IGA_INVENIO_SERVER", "INVENIO_SERVER")
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "iga:", err)
		}
		os.Exit(exitCode(err))
	}
}
