package babelrc

import (
	"bytes"
	"encoding/json"
	"math/big"
	"regexp"
	"strings"

	"github.com/titanous/json5"

	"github.com/Hactar-js/hactar-babel/internal/errors"
)

const presetsKey = "presets"

// Document is the parsed content of a .babelrc.
type Document struct {
	// presets holds the entries as found on disk: either a name or a
	// [name, options] pair.
	presets []any

	// extra holds every other top-level field. Numbers are json.Number so
	// they are written back with the digits they were read with.
	extra map[string]any
}

// NewDocument returns a document with an empty presets list.
func NewDocument() *Document {
	return &Document{presets: []any{}}
}

// Parse decodes a JSON5 .babelrc. A missing or null "presets" field
// defaults to an empty list.
func Parse(data []byte) (*Document, error) {
	// Unmarshal rejects trailing garbage; the Decoder alone stops after the
	// first value.
	if err := json5.Unmarshal(data, new(any)); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding JSON5"), errors.ErrConfigParse)
	}

	dec := json5.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding JSON5"), errors.ErrConfigParse)
	}
	v, err := toJSON(v)
	if err != nil {
		return nil, errors.Mark(err, errors.ErrConfigParse)
	}

	raw, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Mark(errors.New("top-level value must be an object"), errors.ErrConfigParse)
	}

	doc := NewDocument()
	if v, ok := raw[presetsKey]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return nil, errors.Mark(errors.Newf("%q must be a list, got %T", presetsKey, v), errors.ErrConfigParse)
		}
		for i, entry := range list {
			if entryName(entry) == "" {
				return nil, errors.Mark(errors.Newf("%s[%d]: unsupported preset entry %v", presetsKey, i, entry), errors.ErrConfigParse)
			}
		}
		doc.presets = list
	}
	delete(raw, presetsKey)

	if len(raw) > 0 {
		doc.extra = raw
	}
	return doc, nil
}

// Presets returns the preset names in file order. Entries with options
// contribute their name only.
func (d *Document) Presets() []string {
	names := make([]string, 0, len(d.presets))
	for _, entry := range d.presets {
		names = append(names, entryName(entry))
	}
	return names
}

// HasPreset reports whether an entry named exactly name is configured.
func (d *Document) HasPreset(name string) bool {
	for _, entry := range d.presets {
		if entryName(entry) == name {
			return true
		}
	}
	return false
}

// AddPreset appends name to the presets list. It is a no-op returning false
// when the preset is already configured.
func (d *Document) AddPreset(name string) bool {
	if d.HasPreset(name) {
		return false
	}
	d.presets = append(d.presets, name)
	return true
}

// Field returns a top-level field other than "presets".
func (d *Document) Field(key string) (any, bool) {
	v, ok := d.extra[key]
	return v, ok
}

// MarshalJSON writes the presets list alongside every preserved field.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+1)
	for k, v := range d.extra {
		out[k] = v
	}
	presets := d.presets
	if presets == nil {
		presets = []any{}
	}
	out[presetsKey] = presets
	return json.Marshal(out)
}

// entryName returns the preset name of a presets entry, or "" when the entry
// is neither a string nor an array starting with a string.
func entryName(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// toJSON replaces every json5.Number in v with an equivalent json.Number.
func toJSON(v any) (any, error) {
	switch v := v.(type) {
	case json5.Number:
		return jsonNumber(string(v))
	case map[string]any:
		for k, item := range v {
			conv, err := toJSON(item)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", k)
			}
			v[k] = conv
		}
		return v, nil
	case []any:
		for i, item := range v {
			conv, err := toJSON(item)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			v[i] = conv
		}
		return v, nil
	default:
		return v, nil
	}
}

var plainNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// jsonNumber rewrites a JSON5 number literal in JSON syntax. Literals that
// are already valid JSON are kept byte for byte; hex becomes decimal, and a
// leading "+" or a bare leading or trailing "." is filled in.
func jsonNumber(s string) (json.Number, error) {
	if plainNumber.MatchString(s) {
		return json.Number(s), nil
	}

	lit, sign := s, ""
	switch {
	case strings.HasPrefix(lit, "+"):
		lit = lit[1:]
	case strings.HasPrefix(lit, "-"):
		lit, sign = lit[1:], "-"
	}

	if len(lit) > 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X') {
		n, ok := new(big.Int).SetString(lit[2:], 16)
		if !ok {
			return "", errors.Newf("invalid hex number %q", s)
		}
		if n.Sign() == 0 {
			sign = ""
		}
		return json.Number(sign + n.String()), nil
	}

	mantissa, exp := lit, ""
	if i := strings.IndexAny(lit, "eE"); i >= 0 {
		mantissa, exp = lit[:i], lit[i:]
	}
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if strings.HasSuffix(mantissa, ".") {
		mantissa += "0"
	}

	out := sign + mantissa + exp
	if !plainNumber.MatchString(out) {
		return "", errors.Newf("number %q has no JSON form", s)
	}
	return json.Number(out), nil
}
