package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"reflect"
)

// Decode applies the descriptor named descriptor to raw, which must be a JSON
// object, and returns the populated record. Fields typed any receive deep
// copies of JSON objects and arrays, never the containers of raw.
func Decode[T any](s *Schema, descriptor string, raw any) (T, error) {
	var zero T

	b, err := s.bind(reflect.TypeFor[T](), descriptor)
	if err != nil {
		return zero, err
	}

	return decodeRecord[T](b, raw, "")
}

// DecodeMany decodes every element of raw, which must be a JSON array, with
// the descriptor named descriptor.
//
// Elements are decoded on demand as the sequence is consumed, in array order.
// The first failure is yielded with a zero record and ends the sequence.
// A raw value that is not an array yields a single TypeMismatch error.
func DecodeMany[T any](s *Schema, descriptor string, raw any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		b, err := s.bind(reflect.TypeFor[T](), descriptor)
		if err != nil {
			yield(zero, err)
			return
		}

		elements, ok := raw.([]any)
		if !ok {
			yield(zero, &DecodeError{
				Descriptor: descriptor,
				Kind:       TypeMismatch,
				Err:        fmt.Errorf("%w: want array, got %s", ErrWrongKind, kindOf(raw)),
			})
			return
		}

		for i, el := range elements {
			rec, err := decodeRecord[T](b, el, indexPath("", i))
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func decodeRecord[T any](b *binding, raw any, path string) (T, error) {
	var out T
	if err := b.decodeObject(raw, reflect.ValueOf(&out).Elem(), path); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (b *binding) fail(path string, err error) *DecodeError {
	kind := InvalidValue
	if errors.Is(err, ErrWrongKind) {
		kind = TypeMismatch
	}
	return &DecodeError{Descriptor: b.desc.name, Path: path, Kind: kind, Err: err}
}

func (b *binding) decodeObject(raw any, dst reflect.Value, path string) error {
	obj, ok := raw.(map[string]any)
	if !ok {
		return b.fail(path, fmt.Errorf("%w: want object, got %s", ErrWrongKind, kindOf(raw)))
	}

	for _, bf := range b.fields {
		rule := bf.field.Rule
		fieldPath := keyPath(path, rule.Key)

		val, present := obj[rule.Key]
		if !present {
			return &DecodeError{Descriptor: b.desc.name, Path: fieldPath, Kind: MissingField}
		}

		target := dst.Field(bf.index)

		switch rule.Kind {
		case DirectKey:
			if err := assign(target, val); err != nil {
				return b.fail(fieldPath, err)
			}

		case ScalarTransform:
			res, err := rule.Transform(val)
			if err != nil {
				return b.fail(fieldPath, fmt.Errorf("%s: %w", rule.TransformName, err))
			}
			if err := b.store(target, bf, res); err != nil {
				return err
			}

		case NestedObject:
			elem := target
			if bf.elemPtr {
				elem = reflect.New(bf.typ.Elem()).Elem()
			}
			if err := bf.nested.decodeObject(val, elem, fieldPath); err != nil {
				return err
			}
			if bf.elemPtr {
				target.Set(elem.Addr())
			}

		case NestedList:
			elements, ok := val.([]any)
			if !ok {
				return b.fail(fieldPath, fmt.Errorf("%w: want array, got %s", ErrWrongKind, kindOf(val)))
			}

			list := reflect.MakeSlice(bf.typ, len(elements), len(elements))
			for i, el := range elements {
				elem := list.Index(i)
				if bf.elemPtr {
					elem.Set(reflect.New(bf.typ.Elem().Elem()))
					elem = elem.Elem()
				}
				if err := bf.nested.decodeObject(el, elem, indexPath(fieldPath, i)); err != nil {
					return err
				}
			}
			target.Set(list)
		}
	}

	return nil
}

func (b *binding) store(target reflect.Value, bf boundField, res any) error {
	rv := reflect.ValueOf(res)
	if !rv.IsValid() {
		switch target.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			target.SetZero()
			return nil
		}
		return &BindingError{Descriptor: b.desc.name, Type: b.typ, Field: bf.field.Name, Reason: "transform returned nil for a non-nillable field"}
	}
	if !rv.Type().AssignableTo(target.Type()) {
		return &BindingError{Descriptor: b.desc.name, Type: b.typ, Field: bf.field.Name,
			Reason: fmt.Sprintf("transform %s returns %v, field is %v", bf.field.Rule.TransformName, rv.Type(), target.Type())}
	}
	target.Set(rv)
	return nil
}

// assign copies a raw JSON scalar into dst with the minimal coercion its Go
// type implies.
func assign(dst reflect.Value, raw any) error {
	switch dst.Kind() {
	case reflect.Pointer:
		if raw == nil {
			dst.SetZero()
			return nil
		}
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), raw); err != nil {
			return err
		}
		dst.Set(elem)
		return nil

	case reflect.Interface:
		if raw == nil {
			dst.SetZero()
			return nil
		}
		rv := reflect.ValueOf(cloneRaw(raw))
		if !rv.Type().AssignableTo(dst.Type()) {
			return fmt.Errorf("%w: %s does not fit %v", ErrWrongKind, kindOf(raw), dst.Type())
		}
		dst.Set(rv)
		return nil

	case reflect.Bool:
		v, ok := raw.(bool)
		if !ok {
			return wrongKind("bool", raw)
		}
		dst.SetBool(v)
		return nil

	case reflect.String:
		v, ok := raw.(string)
		if !ok {
			return wrongKind("string", raw)
		}
		dst.SetString(v)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := integer(raw)
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return fmt.Errorf("%d overflows %v", n, dst.Type())
		}
		dst.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := integer(raw)
		if err != nil {
			return err
		}
		if n < 0 || dst.OverflowUint(uint64(n)) {
			return fmt.Errorf("%d overflows %v", n, dst.Type())
		}
		dst.SetUint(uint64(n))
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := float(raw)
		if err != nil {
			return err
		}
		if dst.OverflowFloat(f) {
			return fmt.Errorf("%g overflows %v", f, dst.Type())
		}
		dst.SetFloat(f)
		return nil
	}

	return fmt.Errorf("unsupported field type %v", dst.Type())
}

// cloneRaw deep-copies JSON containers so records never share them with the
// decoded input.
func cloneRaw(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, el := range v {
			out[k] = cloneRaw(el)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = cloneRaw(el)
		}
		return out
	default:
		return raw
	}
}

func integer(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("number %q: %w", v, err)
		}
		return integral(f)
	case float64:
		return integral(v)
	default:
		return 0, wrongKind("number", raw)
	}
}

func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("number %g is not an integer", f)
	}
	return int64(f), nil
}

func float(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("number %q: %w", v, err)
		}
		return f, nil
	case float64:
		return v, nil
	default:
		return 0, wrongKind("number", raw)
	}
}

func wrongKind(want string, raw any) error {
	return fmt.Errorf("%w: want %s, got %s", ErrWrongKind, want, kindOf(raw))
}

func kindOf(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

func keyPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
