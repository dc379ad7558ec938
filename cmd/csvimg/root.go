package main

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handiism/csv-image-downloader/internal/config"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "csvimg",
	Short: "Download product images listed in CSV files",
	Long: `csvimg reads a product CSV export, downloads the image URLs found in the
selected columns and names each file after a template such as {produkt_ean}-1.

Failures are appended to <destination>/errors.txt.
For interactive mode, use: csvimg-tui`,
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

func initialize(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch strings.ToLower(logFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid --log-format %q (text, json)", logFormat)
	}

	settings, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.WithField("config", cfgFile).Debug("Configuration loaded")

	return nil
}
