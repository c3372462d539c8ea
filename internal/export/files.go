package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/willfong/finfixture/internal/models"
)

// FileOptions selects which files WriteResultFiles produces
type FileOptions struct {
	JSON     bool
	CSV      bool
	Compress bool
	XZPreset int
}

// BatchFilename returns basename with a zero-padded request number.
// Example: BatchFilename("fixture", 1, 8) returns "fixture_001".
// The padding width follows the total (minimum 3 digits).
func BatchFilename(basename string, n, total int) string {
	width := len(fmt.Sprintf("%d", total))
	if width < 3 {
		width = 3
	}
	return fmt.Sprintf("%s_%0*d", basename, width, n)
}

// WriteResultFiles writes result under dir as <basename>.json and/or
// <basename>.csv (with .xz appended when compressing) and returns the paths
// written.
func WriteResultFiles(dir, basename string, result *models.GenerationResult, opts FileOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	if opts.JSON {
		path, err := writeJSONFile(dir, basename, result, opts)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if opts.CSV {
		cw, err := NewCSVWriter(CSVWriterConfig{
			OutputDir: dir,
			Filename:  basename,
			Headers:   TransactionHeaders,
			Compress:  opts.Compress,
			XZPreset:  opts.XZPreset,
		})
		if err != nil {
			return paths, err
		}
		if err := cw.WriteRows(TransactionRows(result)); err != nil {
			cw.Close()
			return paths, err
		}
		if err := cw.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, cw.Path())
	}

	return paths, nil
}

func writeJSONFile(dir, basename string, result *models.GenerationResult, opts FileOptions) (string, error) {
	if opts.Compress {
		xzw, err := NewXZWriter(XZWriterConfig{OutputDir: dir, Filename: basename + ".json", Preset: opts.XZPreset})
		if err != nil {
			return "", fmt.Errorf("failed to create xz writer: %w", err)
		}
		if err := WriteJSON(xzw, result); err != nil {
			xzw.Close()
			return "", err
		}
		return xzw.Path(), xzw.Close()
	}

	path := filepath.Join(dir, basename+".json")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	buf := bufio.NewWriter(file)
	if err := WriteJSON(buf, result); err != nil {
		file.Close()
		return "", err
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return "", fmt.Errorf("buffer flush error: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// FindBatchFiles lists basename_NNN files in dir with the given extension
// (".json", ".csv", ".csv.xz", ...), in request order.
func FindBatchFiles(dir, basename, ext string) ([]string, error) {
	pattern := filepath.Join(dir, basename+"_*"+ext)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error for pattern %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
