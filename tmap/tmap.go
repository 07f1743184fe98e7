// Package tmap provides type mapping facility to map type id to type
// name or constructor.
package tmap

import "github.com/gramkit/gram/bin"

// Map is an immutable type id to type name map.
type Map struct {
	types map[uint32]string
}

// Get returns the type name of the provided type id, or blank string
// if the type is unknown.
func (m *Map) Get(id uint32) string {
	if m == nil {
		return ""
	}
	return m.types[id]
}

// Has reports whether the type id is known.
func (m *Map) Has(id uint32) bool {
	return m.Get(id) != ""
}

// New merges provided mappings into a new Map.
func New(maps ...map[uint32]string) *Map {
	m := &Map{types: map[uint32]string{}}
	for _, t := range maps {
		for id, name := range t {
			m.types[id] = name
		}
	}
	return m
}

// Constructor is an immutable type id to constructor map.
type Constructor struct {
	types map[uint32]func() bin.Object
}

// New returns a new instance of the type with the provided id, or nil
// if the type is unknown.
func (c *Constructor) New(id uint32) bin.Object {
	if c == nil {
		return nil
	}
	fn, ok := c.types[id]
	if !ok {
		return nil
	}
	return fn()
}

// NewConstructor merges provided mappings into a new Constructor.
func NewConstructor(maps ...map[uint32]func() bin.Object) *Constructor {
	c := &Constructor{types: map[uint32]func() bin.Object{}}
	for _, t := range maps {
		for id, fn := range t {
			c.types[id] = fn
		}
	}
	return c
}
