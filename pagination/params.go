package pagination

import "reflect"

// Params is a nested set of query parameters. Values are scalars, nested
// Params (or map[string]any), slices, or nil. A nil value means "absent" and is
// dropped by Compact.
type Params map[string]any

// Merge deep-merges overlay on top of base and returns a new Params.
//
// Keys holding nested mappings on both sides are merged recursively, anything
// else is replaced by the overlay's value. Neither input is modified.
func Merge(base, overlay Params) Params {
	out := make(Params, len(base)+len(overlay))
	for k, v := range base {
		out[k] = clone(v)
	}

	for k, v := range overlay {
		existing, ok := asParams(out[k])
		incoming, ok2 := asParams(v)
		if ok && ok2 {
			out[k] = Merge(existing, incoming)
			continue
		}
		out[k] = clone(v)
	}

	return out
}

// Compact returns a copy of p without any nil values, at any depth. Typed nils
// (a nil Params or pointer) count as nil. Nested mappings left empty are kept.
func Compact(p Params) Params {
	out := make(Params, len(p))
	for k, v := range p {
		if null(v) {
			continue
		}
		if nested, ok := asParams(v); ok {
			out[k] = Compact(nested)
			continue
		}
		out[k] = clone(v)
	}

	return out
}

// Dig walks the nested keys and returns the value found at the end.
func (p Params) Dig(keys ...string) (any, bool) {
	var cur any = p
	for _, k := range keys {
		m, ok := asParams(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}

// null reports whether v stands for an absent value: nil itself, or a nil
// mapping or pointer held in the interface.
func null(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case Params:
		return v == nil
	case map[string]any:
		return v == nil
	case map[string]string:
		return v == nil
	}

	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func asParams(v any) (Params, bool) {
	switch v := v.(type) {
	case Params:
		return v, v != nil
	case map[string]any:
		return Params(v), v != nil
	case map[string]string:
		out := make(Params, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out, true
	}

	return nil, false
}

// clone copies nested mappings and slices so results never share structure
// with the inputs.
func clone(v any) any {
	if m, ok := asParams(v); ok {
		out := make(Params, len(m))
		for k, nv := range m {
			out[k] = clone(nv)
		}
		return out
	}

	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = clone(e)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	}

	return v
}
