package mapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrDuplicateDescriptor = errors.New("duplicate descriptor")
	ErrUnknownDescriptor   = errors.New("unknown descriptor")
	ErrDescriptorCycle     = errors.New("descriptor cycle")
)

// Schema is a closed set of descriptors whose nested references all resolve
// and form a directed acyclic graph.
type Schema struct {
	byName map[string]*Descriptor
	order  []string

	bindings sync.Map // bindingKey -> *binding
}

// NewSchema links descriptors by name.
func NewSchema(descriptors ...*Descriptor) (*Schema, error) {
	s := &Schema{byName: make(map[string]*Descriptor, len(descriptors))}

	for _, d := range descriptors {
		if d == nil {
			return nil, fmt.Errorf("schema: nil descriptor")
		}
		if _, ok := s.byName[d.name]; ok {
			return nil, fmt.Errorf("schema: %w %q", ErrDuplicateDescriptor, d.name)
		}
		s.byName[d.name] = d
	}

	index := make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		index[d.name] = i
	}

	deps := make([][]int, len(descriptors))
	for i, d := range descriptors {
		for _, ref := range d.nested() {
			j, ok := index[ref]
			if !ok {
				return nil, fmt.Errorf("schema: descriptor %s: %w %q", d.name, ErrUnknownDescriptor, ref)
			}
			deps[i] = append(deps[i], j)
		}
	}

	order, err := topoSort(len(descriptors), func(i int) []int { return deps[i] })
	if err != nil {
		names := make([]string, 0, len(err.remaining))
		for _, i := range err.remaining {
			names = append(names, descriptors[i].name)
		}
		return nil, fmt.Errorf("schema: %w among %s", ErrDescriptorCycle, strings.Join(names, ", "))
	}

	s.order = make([]string, len(order))
	for i, j := range order {
		s.order[i] = descriptors[j].name
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(descriptors ...*Descriptor) *Schema {
	s, err := NewSchema(descriptors...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the descriptor registered under name.
func (s *Schema) Lookup(name string) (*Descriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Names returns descriptor names with every nested descriptor listed before
// the descriptors that refer to it.
func (s *Schema) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

type cycleError struct {
	remaining []int
}

func (e *cycleError) Error() string { return "cycle detected" }

// topoSort returns node indices so that every node comes after its
// dependencies. Ties are broken by smallest index.
func topoSort(n int, depsFn func(i int) []int) ([]int, *cycleError) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int
	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)
	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		var remaining []int
		for i := range n {
			if indeg[i] > 0 {
				remaining = append(remaining, i)
			}
		}
		return nil, &cycleError{remaining: remaining}
	}

	return order, nil
}
