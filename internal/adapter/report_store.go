package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/heft/internal/model"
)

// reportHashLength is the number of content-hash characters used for report
// file names. Sixteen hex digits keep names short while collisions stay
// practically impossible within one project.
const reportHashLength = 16

// ReportStore persists and retrieves complexity reports.
type ReportStore interface {
	// SaveScores writes one YAML document per scored file into the reports
	// directory, creating it when missing. Files without scopes are skipped.
	SaveScores(path m.Path, files []m.FileScore) error

	// LoadScores reads every report document from the reports directory.
	// Entries that fail to parse are skipped with a warning.
	LoadScores(path m.Path) ([]m.FileScore, error)
}

// LocalReportStore is the concrete ReportStore backed by a directory of YAML
// documents, one per analyzed source file.
type LocalReportStore struct{}

// NewLocalReportStore constructs a LocalReportStore instance ready to be wired
// into the workflow.
func NewLocalReportStore() *LocalReportStore {
	return &LocalReportStore{}
}

// SaveScores persists the provided file scores. Each file becomes
// <hash-prefix>.yaml inside path, so re-running over unchanged sources
// overwrites the same documents instead of accumulating duplicates.
func (rs *LocalReportStore) SaveScores(path m.Path, files []m.FileScore) error {
	if path == "" {
		return fmt.Errorf("reports directory path is required")
	}

	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	for _, file := range files {
		if len(file.Scopes) == 0 || file.Hash == "" {
			continue
		}

		data, err := yaml.Marshal(file)
		if err != nil {
			return fmt.Errorf("marshal report for %s: %w", file.File, err)
		}

		reportPath := filepath.Join(string(path), reportFileName(file.Hash))
		if err := os.WriteFile(reportPath, data, 0o600); err != nil {
			return fmt.Errorf("write report %s: %w", reportPath, err)
		}
	}

	return nil
}

// LoadScores reads all report documents under path and returns them ordered by
// source file path.
func (rs *LocalReportStore) LoadScores(path m.Path) ([]m.FileScore, error) {
	if path == "" {
		return nil, fmt.Errorf("reports directory path is required")
	}

	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}

	var files []m.FileScore

	for _, entry := range entries {
		if entry.IsDir() || !isReportFileName(entry.Name()) {
			continue
		}

		reportPath := filepath.Join(string(path), entry.Name())

		data, err := os.ReadFile(reportPath)
		if err != nil {
			slog.Warn("Skipping unreadable report", "path", reportPath, "error", err)

			continue
		}

		var file m.FileScore
		if err := yaml.Unmarshal(data, &file); err != nil {
			slog.Warn("Skipping malformed report", "path", reportPath, "error", err)

			continue
		}

		if len(file.Scopes) == 0 {
			continue
		}

		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].File < files[j].File
	})

	return files, nil
}

// reportFileName derives the report document name from a source content hash.
func reportFileName(hash string) string {
	if len(hash) > reportHashLength {
		hash = hash[:reportHashLength]
	}

	return hash + ".yaml"
}

// isReportFileName filters directory entries down to report documents.
// Underscore-prefixed names are reserved for bookkeeping files.
func isReportFileName(name string) bool {
	return strings.HasSuffix(name, ".yaml") && !strings.HasPrefix(name, "_")
}
