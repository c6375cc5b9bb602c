package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/skintone-mcp/internal/config"
	"github.com/ironsheep/skintone-mcp/internal/logging"
	"github.com/ironsheep/skintone-mcp/internal/server"
	"github.com/ironsheep/skintone-mcp/internal/skintone"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	rootCmd = &cobra.Command{
		Use:   "skintone-mcp",
		Short: "MCP server and CLI for skin tone detection, palettes and adjustment",
		Long: `skintone-mcp classifies the skin tone of a photo into one of seven
categories (Fair, Light, Medium, Olive, Tan, Deep, Dark), recommends clothing
colours for it, and can shift the skin region toward another category.

Run without a subcommand to serve MCP over stdin/stdout. Configure it in your
MCP client (e.g., Claude Desktop).

Environment variables override the config file, e.g.:
  SKINTONE_LOG_LEVEL=debug
  SKINTONE_IMAGE_MAX_DIMENSION=2000`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Debugf("skintone-mcp %s (built %s, commit %s)", Version, BuildTime, GitCommit)
			server.Version = Version
			return server.New(cfg, logger).Run()
		},
	}

	configFile string
	logLevel   string

	cfg    *config.Config
	logger *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./skintone.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(detectCmd, paletteCmd, adjustCmd, versionCmd)
}

// setup loads configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Logs always go to stderr; stdout carries MCP or command output.
	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	skintone.SetLogger(logger)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
