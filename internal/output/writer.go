// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output serializes converted documents and writes them to disk.
// Writes go to a temporary file in the target directory which is renamed
// over the target, so the output path never holds a partial document.
// Concurrent writers to the same path are not coordinated; the last rename
// wins.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pheno-convert/internal/converr"
)

// Encoding selects the serialization of a written document.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingFor picks the encoding from the file extension: .yaml and .yml are
// YAML, everything else is JSON.
func EncodingFor(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return EncodingYAML
	}
	return EncodingJSON
}

// Encode serializes doc. Map keys are emitted in sorted order by both
// encoders, so equal documents produce identical bytes.
func Encode(w io.Writer, enc Encoding, doc any) error {
	switch enc {
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return e.Close()
	case EncodingJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		e.SetEscapeHTML(false)
		if err := e.Encode(doc); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported encoding %q", enc)
}

// Decode parses a JSON or YAML document into a generic tree of maps, slices
// and scalars.
func Decode(data []byte, enc Encoding) (any, error) {
	var doc any
	switch enc {
	case EncodingYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		doc = stringKeys(doc)
	case EncodingJSON:
		d := json.NewDecoder(bytes.NewReader(data))
		d.UseNumber()
		if err := d.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		if d.More() {
			return nil, fmt.Errorf("parsing JSON: trailing data after document")
		}
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
	return doc, nil
}

// stringKeys rewrites YAML mappings with non-string keys (e.g. "1: a") as
// map[string]any so the tree can also be encoded as JSON.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	}
	return v
}

// ReadFile reads and decodes the document at path, choosing the encoding
// from the extension.
func ReadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Decode(data, EncodingFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// FileWriter writes documents to the local filesystem.
type FileWriter struct {
	// Perm is the mode of created files (default 0o644).
	Perm os.FileMode
}

// Write serializes doc according to the extension of path and replaces the
// file at path. Errors are *converr.IOError.
func (w FileWriter) Write(path string, doc any) error {
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	enc := EncodingFor(path)
	return withWriteFile(path, perm, func(f io.Writer) error {
		return Encode(f, enc, doc)
	})
}

func withWriteFile(path string, perm os.FileMode, writeFn func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &converr.IOError{Op: "create temp for", Path: path, Cause: err}
	}
	tmp := f.Name()

	if err := writeFn(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return &converr.IOError{Op: "write", Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &converr.IOError{Op: "close", Path: path, Cause: err}
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return &converr.IOError{Op: "chmod", Path: path, Cause: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &converr.IOError{Op: "rename", Path: path, Cause: err}
	}
	return nil
}
