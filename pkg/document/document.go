// Package document loads the values that schemas are validated against.
//
// JSON is decoded with json.Number so integers keep their exact text and
// YAML is decoded with gopkg.in/yaml.v3. Both yield the plain Go shapes the
// schema matcher understands: maps, slices, strings, numbers, bools and nil.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("unknown document format %q", name)
}

// FormatFromPath picks the format from a file extension.
// Unknown extensions yield FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// Sniff guesses the format of data. Documents that open with '{' or '['
// are JSON; everything else is YAML.
func Sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a single document.
func Decode(data []byte, format Format) (any, error) {
	if format == FormatAuto {
		format = Sniff(data)
	}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
		if dec.More() {
			return nil, fmt.Errorf("failed to parse JSON document: trailing data after value")
		}
		return v, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown document format %q", format)
}

// DecodeAll parses every document in a YAML stream, or the single value of
// a JSON document.
func DecodeAll(r io.Reader, format Format) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if format == FormatAuto {
		format = Sniff(data)
	}
	if format != FormatYAML {
		v, err := Decode(data, format)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, v)
	}
	return docs, nil
}

// Load reads and decodes the file at path. The format comes from the
// extension, or from the content when the extension is unknown.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	v, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
