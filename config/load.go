package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format int

// Supported formats.
const (
	FormatYAML Format = iota
	FormatTOML
)

// ErrUnknownFormat is returned for file extensions without a decoder.
var ErrUnknownFormat = errors.New("config: unknown file format")

// FormatOf selects the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load decodes the file at path into out, choosing the syntax by extension.
func Load(path string, out any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()
	if err := Decode(f, format, out); err != nil {
		return fmt.Errorf("config: %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Decode reads a document in the given format into out. Unknown keys are
// rejected. Percent values and graphs are written as strings, for example
// "110%" or "0:0,50:40,100:100".
func Decode(r io.Reader, format Format, out any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("toml: %w", err)
		}
	default:
		return ErrUnknownFormat
	}
	return nil
}
