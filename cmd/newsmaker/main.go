package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	Version = "dev"

	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "newsmaker",
	Short: "Assemble multi-language HTML documents from content fields",
	Long: `newsmaker composes an HTML document from a configuration (base template,
presets, languages) and an optional working-document snapshot of fields.

The build command writes the composed document once; the preview command
serves it over HTTP and reloads the browser when the configuration or the
snapshot changes on disk.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(previewCmd)
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVarP(&configPath, "config", "c", "config.json", "path to the configuration document")
}

func newLogger() *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "newsmaker: %v\n", err)
		os.Exit(1)
	}
}
