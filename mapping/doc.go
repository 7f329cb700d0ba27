// Package mapping turns provider-shaped JSON into typed Go records.
//
// A Descriptor declares, for one record type, how each output field is
// obtained from a decoded JSON object: copied from a key, converted by a
// named transform, or decoded recursively from a nested object or list using
// another descriptor. Descriptors are grouped in a Schema, which links nested
// references by name and rejects cycles.
//
// Decoding binds a descriptor to a Go struct through `record` struct tags:
//
//	type Lane struct {
//	    Code int    `record:"code"`
//	    Name string `record:"name"`
//	}
//
//	lanes := mapping.MustSchema(mapping.MustDescriptor("Lane",
//	    mapping.Direct("code", "CodCorredor"),
//	    mapping.Direct("name", "Nome"),
//	))
//	lane, err := mapping.Decode[Lane](lanes, "Lane", raw)
//
// Raw values are the generic trees produced by encoding/json: map[string]any,
// []any, json.Number or float64, string, bool and nil. Decoding never mutates
// them and never substitutes defaults for missing keys.
package mapping
