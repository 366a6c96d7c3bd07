package slugs

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Lookup resolves a dotted path against target. Records are read through
// GetAttribute; maps, structs (field name, json or bun tag), pointers and
// slices (numeric segments) are walked with reflection. Any missing segment
// yields nil.
func Lookup(target any, path string) any {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	current := target
	for _, segment := range strings.Split(path, ".") {
		if current == nil {
			return nil
		}
		var ok bool
		current, ok = lookupSegment(current, segment)
		if !ok {
			return nil
		}
	}
	return current
}

func lookupSegment(target any, segment string) (any, bool) {
	if record, ok := target.(interfaces.SlugRecord); ok {
		return record.GetAttribute(segment), true
	}
	if m, ok := target.(map[string]any); ok {
		value, found := m[segment]
		return value, found
	}

	v := reflect.ValueOf(target)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		value := v.MapIndex(reflect.ValueOf(segment).Convert(v.Type().Key()))
		if !value.IsValid() {
			return nil, false
		}
		return value.Interface(), true
	case reflect.Struct:
		field, ok := structField(v, segment)
		if !ok {
			return nil, false
		}
		return field.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= v.Len() {
			return nil, false
		}
		return v.Index(idx).Interface(), true
	default:
		return nil, false
	}
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Name == name || strings.EqualFold(f.Name, name) ||
			tagName(f.Tag.Get("json")) == name || tagName(f.Tag.Get("bun")) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// stringValue renders an attribute value as slug source text. Nil values,
// nil pointers and composite values without a String method render as the
// empty string.
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case []byte:
		return string(v)
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return v.String()
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array,
		reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return ""
	}
	return fmt.Sprint(rv.Interface())
}

// sourceText builds the text a slug is generated from. Without configured
// sources the record's String method is used.
func sourceText(record interfaces.SlugRecord, cfg FieldConfig) string {
	if len(cfg.Source) == 0 {
		if stringer, ok := record.(fmt.Stringer); ok {
			return stringer.String()
		}
		return ""
	}
	parts := make([]string, len(cfg.Source))
	for i, path := range cfg.Source {
		parts[i] = stringValue(Lookup(record, path))
	}
	return strings.Join(parts, " ")
}
