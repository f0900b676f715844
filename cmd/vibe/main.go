package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vibebuilder/internal/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
	wsURL      string
	apiKey     string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vibe",
	Short: "vibe - natural-language world building for ResoniteLink",
	Long: `vibe turns natural-language descriptions into object hierarchies
inside a running Resonite session, over the ResoniteLink protocol.

Simple requests become one command batch. Complex requests (a house, a
scene) are planned first, built substructure by substructure, and
assembled under a single root slot.

Run without arguments to start the interactive console.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if wsURL != "" {
			cfg.Link.URL = wsURL
		}
		if apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}

		zc := zap.NewProductionConfig()
		if verbose || cfg.Logging.Level == "debug" {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else if level, parseErr := zapcore.ParseLevel(cfg.Logging.Level); parseErr == nil {
			zc.Level = zap.NewAtomicLevelAt(level)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "vibe.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&wsURL, "url", "", "ResoniteLink websocket URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "generation API key (overrides config)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
