// Package export writes finished quiz sessions to disk.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lecture-quiz/internal/domain"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when the caller names no file.
const DefaultPath = "quiz_results.json"

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ResolveFormat picks the format from the file extension and falls back to
// fallback, then JSON.
func ResolveFormat(path string, fallback string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	switch strings.ToLower(fallback) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", fallback)
}

// Encode renders the session in format. JSON keeps non-ASCII text as is.
func Encode(session domain.SessionExport, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(session); err != nil {
			return nil, fmt.Errorf("failed to encode session as json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(session); err != nil {
			return nil, fmt.Errorf("failed to encode session as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode session as yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return buf.Bytes(), nil
}

// Save writes session to path, or DefaultPath when path is empty, and returns
// the path written.
func Save(path string, session domain.SessionExport, fallbackFormat string) (string, error) {
	if path == "" {
		path = DefaultPath
	}
	format, err := ResolveFormat(path, fallbackFormat)
	if err != nil {
		return "", err
	}
	data, err := Encode(session, format)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write results to %s: %w", path, err)
	}
	return path, nil
}
