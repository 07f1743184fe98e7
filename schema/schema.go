// Package schema provides lookups over the embedded service schema.
package schema

import (
	_ "embed"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gotd/tl"
)

//go:embed mt.tl
var raw string

// Schema answers name and id queries over parsed TL definitions.
type Schema struct {
	defs   []tl.SchemaDefinition
	byID   map[uint32]tl.Definition
	byName map[string]tl.Definition
}

// Load parses the embedded schema.
func Load() (*Schema, error) {
	parsed, err := tl.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "parse schema")
	}

	s := &Schema{
		defs:   parsed.Definitions,
		byID:   map[uint32]tl.Definition{},
		byName: map[string]tl.Definition{},
	}
	for _, d := range parsed.Definitions {
		def := d.Definition
		s.byID[def.ID] = def
		s.byName[fullName(def)] = def
	}
	return s, nil
}

func fullName(d tl.Definition) string {
	if len(d.Namespace) == 0 {
		return d.Name
	}
	return strings.Join(d.Namespace, ".") + "." + d.Name
}

// Definitions returns all parsed definitions.
func (s *Schema) Definitions() []tl.SchemaDefinition {
	return s.defs
}

// NameByID returns constructor name for the given type id.
func (s *Schema) NameByID(id uint32) (string, bool) {
	def, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return fullName(def), true
}

// IDByName returns type id for the given constructor name.
func (s *Schema) IDByName(name string) (uint32, bool) {
	def, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return def.ID, true
}
