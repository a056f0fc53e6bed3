package table

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Extensions lists the file extensions ReadDir recognizes as tabular.
var Extensions = []string{".csv", ".xlsx"}

// FileError records a file that could not be parsed.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// LoadReport summarizes a ReadDir call.
type LoadReport struct {
	// Dir is the directory that was scanned.
	Dir string
	// Loaded lists the files parsed successfully, in load order.
	Loaded []string
	// Failed lists the files that were skipped.
	Failed []FileError
	// Rows is the number of rows in the combined table.
	Rows int
}

// ReadDir loads every tabular file directly inside dir into one table.
// Files are read in lexical order. Unreadable files are logged and skipped,
// and a directory with no tabular files yields an empty table.
func ReadDir(dir string, log *zap.Logger) (*Table, *LoadReport) {
	report := &LoadReport{Dir: dir}
	l := log.With(zap.String("dir", dir))

	files, err := listFiles(dir)
	if err != nil {
		l.Warn("Failed to list directory", zap.Error(err))
	}
	if len(files) == 0 {
		l.Warn("No tabular files found")
		return &Table{}, report
	}

	var parts []*Table
	for _, path := range files {
		l.Info("Loading file", zap.String("file", filepath.Base(path)))

		t, err := ReadFile(path)
		if err != nil {
			l.Error("Failed to read file", zap.String("file", filepath.Base(path)), zap.Error(err))
			report.Failed = append(report.Failed, FileError{Path: path, Err: err})
			continue
		}

		report.Loaded = append(report.Loaded, path)
		parts = append(parts, t)
	}

	combined := Concat(parts...)
	report.Rows = combined.Len()

	l.Info("Directory loaded",
		zap.Int("files", len(report.Loaded)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("rows", report.Rows),
		zap.Int("columns", len(combined.Columns)),
	)

	return combined, report
}

// ReadFile parses a single tabular file based on its extension.
func ReadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// listFiles returns the tabular files directly inside dir, sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isTabular(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	return files, nil
}

func isTabular(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
