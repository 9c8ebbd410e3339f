package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path binds router path parameters into fields tagged `path:"name"`.
// extractor returns the raw value for a parameter name; with chi this is
// chi.URLParam. Empty values leave the field untouched.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor is nil", ErrFailedToParsePath)
		}
		return walkTagged(v, "path", ErrFailedToParsePath, func(name string) []string {
			if value := extractor(r, name); value != "" {
				return []string{value}
			}
			return nil
		})
	}
}

// Query binds URL query parameters into fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := r.URL.Query()
		return walkTagged(v, "query", ErrFailedToParseQuery, func(name string) []string {
			return values[name]
		})
	}
}

// walkTagged sets every exported field carrying tagName from lookup.
// Only explicitly tagged fields are bound.
func walkTagged(v any, tagName string, bindErr error, lookup func(name string) []string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field, fieldType := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, ok := parseFieldTag(fieldType, tagName)
		if !ok {
			continue
		}
		values := lookup(name)
		if len(values) == 0 {
			continue
		}
		if err := setFieldValue(field, fieldType.Type, values); err != nil {
			return fmt.Errorf("%w: %s: %v", bindErr, name, err)
		}
	}
	return nil
}
