// Package config reads and writes parameter documents and user settings.
//
// A parameter document names a generator kind and carries its parameters:
//
//	kind = "gradient"
//
//	[params]
//	type = "linear"
//	angle = 135
//
// The same shape is accepted as YAML (kind plus a params mapping) and JSON
// (an object with "kind" and "params"). Parameters are decoded on top of
// the kind's defaults, so a document only lists what it changes. A list
// given in the document replaces the default list whole. Unknown TOML and
// JSON parameter keys are rejected.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
)

// Document formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q (want .toml, .yaml or .json)", filepath.Ext(path))
}

// LoadDocument reads the parameter document at path.
func LoadDocument(path string) (generator.Generator, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return DecodeDocument(f, format)
}

// DecodeDocument decodes a document in the given format into the generator
// it names, normalized.
func DecodeDocument(r io.Reader, format string) (generator.Generator, error) {
	var (
		g   generator.Generator
		err error
	)
	switch format {
	case FormatTOML:
		g, err = decodeTOML(r)
	case FormatYAML:
		g, err = decodeYAML(r)
	case FormatJSON:
		g, err = decodeJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if n, ok := g.(generator.Normalizer); ok {
		n.Normalize()
	}
	return g, nil
}

func newForKind(kind string) (generator.Generator, error) {
	if kind == "" {
		return nil, errors.New(errors.ErrCodeInvalidParams, "document has no kind")
	}
	return registry.New(kind)
}

func decodeTOML(r io.Reader) (generator.Generator, error) {
	var doc struct {
		Kind   string         `toml:"kind"`
		Params toml.Primitive `toml:"params"`
	}
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParams, err, "parse toml document")
	}
	g, err := newForKind(doc.Kind)
	if err != nil {
		return nil, err
	}
	if md.IsDefined("params") {
		if err := decodeParamsTOML(md, doc.Params, g); err != nil {
			return nil, err
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidParams, "unknown keys in %s document: %s", doc.Kind, strings.Join(keys, ", "))
	}
	return g, nil
}

func decodeYAML(r io.Reader) (generator.Generator, error) {
	var doc struct {
		Kind   string    `yaml:"kind"`
		Params yaml.Node `yaml:"params"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidParams, "empty yaml document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidParams, err, "parse yaml document")
	}
	g, err := newForKind(doc.Kind)
	if err != nil {
		return nil, err
	}
	if doc.Params.Kind != 0 {
		if err := decodeParamsYAML(&doc.Params, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func decodeJSON(r io.Reader) (generator.Generator, error) {
	var doc struct {
		Kind   string          `json:"kind"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParams, err, "parse json document")
	}
	g, err := newForKind(doc.Kind)
	if err != nil {
		return nil, err
	}
	if err := DecodeParamsJSON(doc.Params, g); err != nil {
		return nil, err
	}
	return g, nil
}

// EncodeDocument writes g as a parameter document in format.
func EncodeDocument(w io.Writer, g generator.Generator, format string) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(struct {
			Kind   string `toml:"kind"`
			Params any    `toml:"params"`
		}{g.Kind(), g})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(struct {
			Kind   string `yaml:"kind"`
			Params any    `yaml:"params"`
		}{g.Kind(), g})
		if err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(struct {
			Kind   string `json:"kind"`
			Params any    `json:"params"`
		}{g.Kind(), g})
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s document", g.Kind())
	}
	return nil
}

// SaveDocument writes g to path in the format implied by its extension.
func SaveDocument(path string, g generator.Generator) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeDocument(&buf, g, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
