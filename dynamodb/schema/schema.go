// Package schema describes entities as an ordered set of named, typed fields
// and resolves field names against that description.
//
// Descriptors follow the JSON Schema "properties" layout and can be written in
// YAML or JSON:
//
//	title: article
//	type: object
//	properties:
//	  id:      {type: string}
//	  title:   {type: string}
//	  created: {type: integer}
//
// Property order is preserved as declared.
package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/acksell/entitytable/dynamodb/internal/validate"
)

// Descriptor is the declarative description of an entity.
type Descriptor struct {
	Title      string     `yaml:"title,omitempty" json:"title,omitempty"`
	Type       string     `yaml:"type,omitempty" json:"type,omitempty" validate:"omitempty,eq=object"`
	Properties Properties `yaml:"properties" json:"properties" validate:"required,min=1,unique=Name,dive"`
	Required   []string   `yaml:"required,omitempty" json:"required,omitempty"`
}

// Properties is the ordered list of declared fields. In YAML and JSON it is a
// mapping from property name to property.
type Properties []Property

// Property is a single declared field of a Descriptor.
type Property struct {
	Name        string `yaml:"-" json:"-" validate:"required"`
	Type        string `yaml:"type" json:"type" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Options tune how names are resolved by a Schema.
type Options struct {
	// FoldCase makes lookups case-insensitive.
	FoldCase bool `yaml:"foldCase,omitempty" json:"foldCase,omitempty"`
	// Aliases maps alternative names to declared property names.
	Aliases map[string]string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Field is a resolved property. Name is always the declared name, even when
// the lookup went through an alias or case folding.
type Field struct {
	Name string
	Type string
}

// Fields is an ordered list of resolved fields.
type Fields []Field

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Schema answers field lookups for a single entity Descriptor.
type Schema struct {
	desc   Descriptor
	opts   Options
	byName map[string]int
	folded map[string]int
}

// New validates desc and returns a Schema that resolves names according to opts.
func New(desc Descriptor, opts Options) (*Schema, error) {
	if err := validate.Struct(desc); err != nil {
		return nil, fmt.Errorf("invalid schema %q: %w", desc.Title, err)
	}
	s := &Schema{
		desc:   desc,
		opts:   opts,
		byName: make(map[string]int, len(desc.Properties)),
	}
	for i, p := range desc.Properties {
		s.byName[p.Name] = i
	}
	if opts.FoldCase {
		s.folded = make(map[string]int, len(desc.Properties))
		for i, p := range desc.Properties {
			key := strings.ToLower(p.Name)
			if j, ok := s.folded[key]; ok {
				return nil, fmt.Errorf("invalid schema %q: properties %q and %q collide when case is folded",
					desc.Title, desc.Properties[j].Name, p.Name)
			}
			s.folded[key] = i
		}
	}
	for alias, target := range opts.Aliases {
		if _, ok := s.byName[target]; !ok {
			return nil, fmt.Errorf("invalid schema %q: alias %q refers to unknown property %q", desc.Title, alias, target)
		}
	}
	return s, nil
}

// Fields resolves names and returns the matching fields in declaration order,
// each at most once. Without names every declared field is returned.
// An unknown name fails the whole lookup with an *UnknownFieldError.
func (s *Schema) Fields(ctx context.Context, names ...string) (Fields, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	picked := make([]bool, len(s.desc.Properties))
	if len(names) == 0 {
		for i := range picked {
			picked[i] = true
		}
	}
	for _, name := range names {
		i, ok := s.resolve(name)
		if !ok {
			return nil, &UnknownFieldError{Name: name, Schema: s.desc.Title}
		}
		picked[i] = true
	}

	fields := make(Fields, 0, len(names))
	for i, p := range s.desc.Properties {
		if picked[i] {
			fields = append(fields, Field{Name: p.Name, Type: p.Type})
		}
	}
	return fields, nil
}

func (s *Schema) resolve(name string) (int, bool) {
	if i, ok := s.byName[name]; ok {
		return i, true
	}
	if target, ok := s.opts.Aliases[name]; ok {
		return s.byName[target], true
	}
	if s.opts.FoldCase {
		i, ok := s.folded[strings.ToLower(name)]
		return i, ok
	}
	return 0, false
}
