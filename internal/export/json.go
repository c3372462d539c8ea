// Package export serializes generation results to JSON and CSV files.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/willfong/finfixture/internal/models"
)

// FormatDataForDownload renders result as indented JSON
func FormatDataForDownload(result *models.GenerationResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON streams result to w as indented JSON
func WriteJSON(w io.Writer, result *models.GenerationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// ParseDownload decodes a file written by FormatDataForDownload
func ParseDownload(data []byte) (*models.GenerationResult, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ReadJSON decodes one result from r, rejecting unknown fields
func ReadJSON(r io.Reader) (*models.GenerationResult, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var result models.GenerationResult
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}

// ReadFile loads a result written by WriteResultFiles. Files ending in .xz
// are decompressed with the external xz command.
func ReadFile(ctx context.Context, path string) (*models.GenerationResult, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".xz") {
		data, err = decompressXZ(ctx, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := ParseDownload(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
