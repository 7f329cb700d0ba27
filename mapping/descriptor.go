package mapping

import (
	"errors"
	"fmt"
)

// RuleKind selects how a field is resolved against a raw object.
type RuleKind int

const (
	// DirectKey copies the raw value at Key.
	DirectKey RuleKind = iota
	// ScalarTransform applies a TransformFunc to the raw value at Key.
	ScalarTransform
	// NestedObject decodes the object at Key with the Nested descriptor.
	NestedObject
	// NestedList decodes every element of the array at Key with the Nested descriptor.
	NestedList
)

func (k RuleKind) String() string {
	switch k {
	case DirectKey:
		return "direct"
	case ScalarTransform:
		return "transform"
	case NestedObject:
		return "object"
	case NestedList:
		return "list"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// TransformFunc converts one raw JSON value into the value stored in a field.
// It must be pure.
type TransformFunc func(raw any) (any, error)

// Rule is the resolution rule of a single field.
type Rule struct {
	Kind          RuleKind
	Key           string
	TransformName string
	Transform     TransformFunc
	Nested        string
}

// Field pairs an output field name with its rule.
type Field struct {
	Name string
	Rule Rule
}

// Direct declares a field copied from key.
func Direct(name, key string) Field {
	return Field{Name: name, Rule: Rule{Kind: DirectKey, Key: key}}
}

// Transform declares a field computed by fn from the value at key.
func Transform(name, key, transformName string, fn TransformFunc) Field {
	return Field{Name: name, Rule: Rule{Kind: ScalarTransform, Key: key, TransformName: transformName, Transform: fn}}
}

// Object declares a field decoded from the object at key with the nested descriptor.
func Object(name, key, nested string) Field {
	return Field{Name: name, Rule: Rule{Kind: NestedObject, Key: key, Nested: nested}}
}

// List declares a field decoded from the array at key, one nested record per element.
func List(name, key, nested string) Field {
	return Field{Name: name, Rule: Rule{Kind: NestedList, Key: key, Nested: nested}}
}

// Descriptor construction errors.
var (
	ErrEmptyName      = errors.New("empty name")
	ErrDuplicateField = errors.New("duplicate field")
	ErrInvalidRule    = errors.New("invalid rule")
)

// Descriptor is the immutable field mapping of one record type.
type Descriptor struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewDescriptor validates fields and returns a descriptor named name.
// Field order is preserved.
func NewDescriptor(name string, fields ...Field) (*Descriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("descriptor: %w", ErrEmptyName)
	}

	d := &Descriptor{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("descriptor %s: field: %w", name, ErrEmptyName)
		}
		if _, ok := d.index[f.Name]; ok {
			return nil, fmt.Errorf("descriptor %s: %w %q", name, ErrDuplicateField, f.Name)
		}
		if err := validateRule(f.Rule); err != nil {
			return nil, fmt.Errorf("descriptor %s: field %q: %w", name, f.Name, err)
		}

		d.index[f.Name] = len(d.fields)
		d.fields = append(d.fields, f)
	}

	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on error. It is meant for
// package-level descriptor tables.
func MustDescriptor(name string, fields ...Field) *Descriptor {
	d, err := NewDescriptor(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

func validateRule(r Rule) error {
	if r.Key == "" {
		return fmt.Errorf("%w: empty source key", ErrInvalidRule)
	}

	switch r.Kind {
	case DirectKey:
		return nil
	case ScalarTransform:
		if r.Transform == nil {
			return fmt.Errorf("%w: transform %q has no function", ErrInvalidRule, r.TransformName)
		}
		return nil
	case NestedObject, NestedList:
		if r.Nested == "" {
			return fmt.Errorf("%w: %s rule names no descriptor", ErrInvalidRule, r.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidRule, r.Kind)
	}
}

// Name returns the record type name.
func (d *Descriptor) Name() string {
	return d.name
}

// Fields returns a copy of the fields in declared order.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Keys returns the source keys read directly by this descriptor, in declared order.
func (d *Descriptor) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.Rule.Key
	}
	return keys
}

// Field looks up a field by output name.
func (d *Descriptor) Field(name string) (Field, bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// nested returns the names of the descriptors this one refers to.
func (d *Descriptor) nested() []string {
	var names []string
	for _, f := range d.fields {
		if f.Rule.Kind == NestedObject || f.Rule.Kind == NestedList {
			names = append(names, f.Rule.Nested)
		}
	}
	return names
}
