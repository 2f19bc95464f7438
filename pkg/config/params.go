package config

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
)

// DecodeParamsJSON decodes a JSON params object onto g's current values.
// Unknown keys are rejected. A list present in data replaces the default
// list instead of being merged into it element by element.
func DecodeParamsJSON(data []byte, g generator.Generator) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParams, err, "decode %s params", g.Kind())
	}
	resetLists(g, "json", func(k string) bool { _, ok := keys[k]; return ok })

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParams, err, "decode %s params", g.Kind())
	}
	return nil
}

func decodeParamsTOML(md toml.MetaData, params toml.Primitive, g generator.Generator) error {
	resetLists(g, "toml", func(k string) bool { return md.IsDefined("params", k) })
	if err := md.PrimitiveDecode(params, g); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParams, err, "decode %s params", g.Kind())
	}
	return nil
}

func decodeParamsYAML(node *yaml.Node, g generator.Generator) error {
	present := make(map[string]bool)
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			present[node.Content[i].Value] = true
		}
	}
	resetLists(g, "yaml", func(k string) bool { return present[k] })
	if err := node.Decode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParams, err, "decode %s params", g.Kind())
	}
	return nil
}

// resetLists nils every top-level slice field of g whose key (from the
// given struct tag) is present. Decoders reuse the elements of a non-nil
// slice, which would leak default fields into partially specified items.
func resetLists(g any, tag string, present func(key string) bool) {
	v := reflect.ValueOf(g)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Slice {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			name = f.Name
		}
		if present(name) {
			v.Field(i).SetZero()
		}
	}
}
