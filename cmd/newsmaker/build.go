package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/clic-epfl/newsmaker"
)

var (
	snapshotPath      string
	outPath           string
	writeSnapshotPath string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compose the document and write it to disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(newLogger())
	},
}

func init() {
	buildCmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "working-document snapshot to load")
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "index.html", "output HTML file")
	buildCmd.Flags().StringVar(&writeSnapshotPath, "write-snapshot", "", "re-encode the field set to this snapshot file")
}

// document bundles a loaded configuration with the field registry built
// from it.
type document struct {
	format *newsmaker.Format
	reg    *newsmaker.SectionRegistry
}

func runBuild(logger *slog.Logger) error {
	doc, err := loadDocument(configPath, snapshotPath, logger)
	if err != nil {
		return err
	}

	html := newsmaker.NewComposer(doc.format, doc.reg).Compose()
	if err := atomic.WriteFile(outPath, strings.NewReader(html)); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Info("document written", "path", outPath, "bytes", len(html), "fields", doc.reg.Len())

	if writeSnapshotPath != "" {
		data, err := newsmaker.EncodeSnapshot(doc.reg)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := atomic.WriteFile(writeSnapshotPath, strings.NewReader(string(data))); err != nil {
			return fmt.Errorf("write %s: %w", writeSnapshotPath, err)
		}
		logger.Info("snapshot written", "path", writeSnapshotPath)
	}
	return nil
}

// loadDocument reads the configuration, resolves template files relative
// to the configuration's directory and, when a snapshot path is given,
// decodes the field set from it. A snapshot that fails to decode aborts
// the load; nothing half-decoded is ever returned.
func loadDocument(configPath, snapshotPath string, logger *slog.Logger) (*document, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	format, err := newsmaker.ParseFormat(data, fileResolver(filepath.Dir(configPath)))
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		"languages", format.Languages, "presets", len(format.Presets))

	reg := newsmaker.NewSectionRegistry(format)
	if snapshotPath != "" {
		snap, err := os.ReadFile(snapshotPath)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		reg, err = newsmaker.DecodeSnapshot(snap, format)
		if err != nil {
			return nil, err
		}
		logger.Debug("snapshot loaded", "path", snapshotPath, "fields", reg.Len())
	}
	return &document{format: format, reg: reg}, nil
}

// fileResolver reads template files referenced by the configuration,
// resolving relative paths against the configuration's own directory.
func fileResolver(baseDir string) newsmaker.ResolveFunc {
	return func(path string) (string, error) {
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
}
