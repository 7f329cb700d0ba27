package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrorKind classifies decode failures.
type ErrorKind int

const (
	// MissingField means a required source key is absent.
	MissingField ErrorKind = iota + 1
	// TypeMismatch means a value has the wrong JSON kind for its rule or Go field.
	TypeMismatch
	// InvalidValue means a value has the right kind but cannot be converted,
	// such as a malformed clock time or an out of range integer.
	InvalidValue
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case TypeMismatch:
		return "type mismatch"
	case InvalidValue:
		return "invalid value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DecodeError reports why a raw value did not satisfy a descriptor.
// Descriptor is the innermost descriptor being applied and Path the full key
// path from the root value, e.g. "p.l[0].vs[1].t".
type DecodeError struct {
	Descriptor string
	Path       string
	Kind       ErrorKind
	Err        error
}

func (e *DecodeError) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s at %q: %v", e.Descriptor, e.Kind, path, e.Err)
	}
	return fmt.Sprintf("decode %s: %s at %q", e.Descriptor, e.Kind, path)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Key returns the last key of the path, i.e. the key that failed.
func (e *DecodeError) Key() string {
	key := e.Path[strings.LastIndexByte(e.Path, '.')+1:]
	if i := strings.IndexByte(key, '['); i >= 0 {
		key = key[:i]
	}
	return key
}

// IsMissingField reports whether err is a DecodeError of kind MissingField.
func IsMissingField(err error) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Kind == MissingField
}

// BindingError means a Go type cannot hold the records a descriptor produces.
// It signals a programming error rather than bad input.
type BindingError struct {
	Descriptor string
	Type       reflect.Type
	Field      string
	Reason     string
}

func (e *BindingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bind %s to %v: %s", e.Descriptor, e.Type, e.Reason)
	}
	return fmt.Sprintf("bind %s to %v: field %q: %s", e.Descriptor, e.Type, e.Field, e.Reason)
}
