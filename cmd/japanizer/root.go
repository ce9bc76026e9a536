package main

import (
	"fmt"
	"os"

	"github.com/aretw0/japanizer"
	"github.com/aretw0/japanizer/internal/config"
	"github.com/aretw0/japanizer/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "japanizer",
	Short: "Japanizer converts romaji chat messages into Japanese",
	Long: `Japanizer turns romaji into hiragana, then kanji, while keeping message styling.
Messages starting with the force prefix are always converted, those starting with the
prevent prefix never are, and the rest are converted when they look like romaji.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the config)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides the config)")
}

// loadConfig reads the --config file and applies the logging flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	return cfg, nil
}

// newApp loads the configuration and builds the App with a logger on Stderr.
func newApp(cmd *cobra.Command, cfg *config.Config, opts ...japanizer.Option) (*japanizer.App, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithFormat(cmd.ErrOrStderr(), level, cfg.Log.Format)

	return japanizer.New(cfg, append([]japanizer.Option{japanizer.WithLogger(logger)}, opts...)...)
}
