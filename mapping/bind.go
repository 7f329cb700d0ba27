package mapping

import (
	"fmt"
	"reflect"
)

// TagName is the struct tag that binds a Go field to a descriptor field.
const TagName = "record"

type bindingKey struct {
	typ  reflect.Type
	name string
}

type binding struct {
	desc   *Descriptor
	typ    reflect.Type
	fields []boundField
}

type boundField struct {
	field  Field
	index  int
	typ    reflect.Type
	nested *binding
	// elemPtr is set when the nested record is held through a pointer
	// (*Struct for objects, []*Struct for lists).
	elemPtr bool
}

// bind resolves how records of descriptor name are stored into values of
// type t. Results are cached per schema.
func (s *Schema) bind(t reflect.Type, name string) (*binding, error) {
	key := bindingKey{typ: t, name: name}
	if b, ok := s.bindings.Load(key); ok {
		return b.(*binding), nil
	}

	d, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("bind %s: %w", name, ErrUnknownDescriptor)
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &BindingError{Descriptor: name, Type: t, Reason: "target is not a struct"}
	}

	tagged, err := taggedFields(t, name)
	if err != nil {
		return nil, err
	}

	b := &binding{desc: d, typ: t, fields: make([]boundField, 0, len(d.fields))}
	for _, f := range d.fields {
		idx, ok := tagged[f.Name]
		if !ok {
			return nil, &BindingError{Descriptor: name, Type: t, Field: f.Name, Reason: "no struct field tagged " + TagName + `:"` + f.Name + `"`}
		}

		bf := boundField{field: f, index: idx, typ: t.Field(idx).Type}

		switch f.Rule.Kind {
		case DirectKey:
			if !supportedDirect(bf.typ) {
				return nil, &BindingError{Descriptor: name, Type: t, Field: f.Name, Reason: fmt.Sprintf("unsupported field type %v", bf.typ)}
			}
		case NestedObject:
			elem := bf.typ
			if elem.Kind() == reflect.Pointer {
				elem = elem.Elem()
				bf.elemPtr = true
			}
			if bf.nested, err = s.bind(elem, f.Rule.Nested); err != nil {
				return nil, err
			}
		case NestedList:
			if bf.typ.Kind() != reflect.Slice {
				return nil, &BindingError{Descriptor: name, Type: t, Field: f.Name, Reason: fmt.Sprintf("list rule needs a slice, got %v", bf.typ)}
			}
			elem := bf.typ.Elem()
			if elem.Kind() == reflect.Pointer {
				elem = elem.Elem()
				bf.elemPtr = true
			}
			if bf.nested, err = s.bind(elem, f.Rule.Nested); err != nil {
				return nil, err
			}
		}

		b.fields = append(b.fields, bf)
	}

	actual, _ := s.bindings.LoadOrStore(key, b)
	return actual.(*binding), nil
}

func taggedFields(t reflect.Type, name string) (map[string]int, error) {
	tagged := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get(TagName)
		if tag == "" || tag == "-" {
			continue
		}
		if !sf.IsExported() {
			return nil, &BindingError{Descriptor: name, Type: t, Field: tag, Reason: "tagged field " + sf.Name + " is unexported"}
		}
		if _, dup := tagged[tag]; dup {
			return nil, &BindingError{Descriptor: name, Type: t, Field: tag, Reason: "tag used twice"}
		}
		tagged[tag] = i
	}
	return tagged, nil
}

func supportedDirect(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Interface:
		return true
	case reflect.Pointer:
		return supportedDirect(t.Elem())
	default:
		return false
	}
}
