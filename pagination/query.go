package pagination

import (
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Encode serializes p into a percent-encoded query string using bracket
// notation for nested keys (page[number]=2) and key[] for slices.
//
// Pairs are sorted by key, so equal inputs always produce identical output.
func Encode(p Params) string {
	vals := url.Values{}
	for k, v := range p {
		flatten(k, v, vals)
	}

	return vals.Encode()
}

func flatten(key string, v any, out url.Values) {
	if null(v) {
		return
	}
	if m, ok := asParams(v); ok {
		for k, nv := range m {
			flatten(key+"["+k+"]", nv, out)
		}
		return
	}

	switch v := v.(type) {
	case []any:
		for _, e := range v {
			flatten(key+"[]", e, out)
		}
	case []string:
		for _, e := range v {
			out.Add(key+"[]", e)
		}
	case []int:
		for _, e := range v {
			out.Add(key+"[]", strconv.Itoa(e))
		}
	default:
		if s, ok := scalar(v); ok {
			out.Add(key, s)
		}
	}
}

func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		return v.String(), true
	}

	// Named types over the basic kinds, e.g. a string enum
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}

	// Anything else has no query form
	return "", false
}

// ParseQuery decodes a raw query string (without the leading '?') into nested
// Params, the inverse of Encode: "page[number]=2&tag[]=a" becomes
// {page: {number: "2"}, tag: ["a"]}. Values stay strings. Malformed pairs are
// skipped.
func ParseQuery(raw string) Params {
	out := Params{}

	// ParseQuery keeps going past bad pairs, the error only reports the first.
	vals, _ := url.ParseQuery(raw)

	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		parts := splitKey(k)
		if parts == nil {
			continue
		}
		assign(out, parts, vals[k])
	}

	return out
}

// SplitURL splits a URL on its first '?' into the part before it and the
// parsed query. Any fragment is dropped.
func SplitURL(raw string) (string, Params) {
	raw, _, _ = strings.Cut(raw, "#")
	path, query, ok := strings.Cut(raw, "?")
	if !ok {
		return path, Params{}
	}

	return path, ParseQuery(query)
}

// splitKey turns "a[b][c]" into [a b c] and "a[]" into [a ""]. Keys with an
// empty segment anywhere but the end are not supported and yield nil.
func splitKey(key string) []string {
	i := strings.IndexByte(key, '[')
	if i <= 0 {
		return []string{key}
	}

	parts := []string{key[:i]}
	rest := key[i:]
	for rest != "" {
		j := strings.IndexByte(rest, ']')
		if rest[0] != '[' || j < 0 {
			// Not bracket notation after all
			return []string{key}
		}
		parts = append(parts, rest[1:j])
		rest = rest[j+1:]
	}

	for _, p := range parts[:len(parts)-1] {
		if p == "" {
			return nil
		}
	}

	return parts
}

func assign(p Params, parts []string, vals []string) {
	last := len(parts) - 1
	isList := parts[last] == ""
	if isList {
		last--
	}

	m := p
	for _, k := range parts[:last] {
		next, ok := m[k].(Params)
		if !ok {
			next = Params{}
			m[k] = next
		}
		m = next
	}

	key := parts[last]
	if !isList {
		m[key] = vals[len(vals)-1]
		return
	}

	list, _ := m[key].([]any)
	for _, v := range vals {
		list = append(list, v)
	}
	m[key] = list
}
