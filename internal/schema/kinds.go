package schema

import (
	"fmt"
	"reflect"
	"strings"
)

var flagType = reflect.TypeOf(flag(""))

// checkKinds walks a decoded JSON value against the wire type t and appends
// an issue for every value of the wrong JSON kind, null included. It returns
// v with those values removed: object keys are deleted, array elements and
// the root become nil.
func checkKinds(v any, t reflect.Type, path string, issues *[]Issue) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	mismatch := func() any {
		*issues = append(*issues, Issue{
			Path:    rootPath(path),
			Message: fmt.Sprintf("expected %s, received %s", expectedKind(t), kindOf(v)),
		})
		return nil
	}

	switch {
	case t == flagType:
		switch v.(type) {
		case bool, string:
			return v
		}
		return mismatch()
	case t.Kind() == reflect.String:
		if _, ok := v.(string); ok {
			return v
		}
		return mismatch()
	case t.Kind() == reflect.Float64:
		if _, ok := v.(float64); ok {
			return v
		}
		return mismatch()
	case t.Kind() == reflect.Slice:
		xs, ok := v.([]any)
		if !ok {
			return mismatch()
		}
		for i, x := range xs {
			xs[i] = checkKinds(x, t.Elem(), fmt.Sprintf("%s[%d]", path, i), issues)
		}
		return xs
	case t.Kind() == reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch()
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			fv, present := m[name]
			if !present {
				continue
			}
			p := name
			if path != "" {
				p = path + "." + name
			}
			if out := checkKinds(fv, f.Type, p, issues); out != nil {
				m[name] = out
			} else {
				delete(m, name)
			}
		}
		return m
	}
	return v
}

func expectedKind(t reflect.Type) string {
	switch {
	case t == flagType:
		return "boolean or string"
	case t.Kind() == reflect.Struct:
		return "object"
	case t.Kind() == reflect.Slice:
		return "array"
	case t.Kind() == reflect.Float64:
		return "number"
	default:
		return "string"
	}
}

// kindOf names the JSON kind of a value decoded into any.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func rootPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
