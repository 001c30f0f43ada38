// Package decode turns parsed JSON values into typed records using
// declarative field tables.
//
// A table lists, for each record field, the payload key, the expected JSON
// shape and whether the key may be absent. Required keys that are absent or
// null fail with FieldMissing, keys of the wrong shape fail with
// FieldTypeMismatch. A failing record is discarded as a whole.
package decode

import (
	"fmt"
	"sort"
	"time"

	"github.com/scylladb/go-set/strset"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindEpoch
	KindIntList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindEpoch:
		return "epoch"
	case KindIntList:
		return "int list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field maps one payload key onto a record of type T.
// Set receives the converted value: string, int64, float64, bool, time.Time or []int64
// depending on Kind. When an optional key is absent Set is called with Default,
// unless Default is nil in which case the record keeps its zero value.
type Field[T any] struct {
	Name     string
	Kind     Kind
	Optional bool
	Default  any
	Set      func(*T, any)
}

// Or marks the field optional with the given default.
func (f Field[T]) Or(def any) Field[T] {
	f.Optional = true
	f.Default = def
	return f
}

func String[T any](name string, dst func(*T) *string) Field[T] {
	return Field[T]{Name: name, Kind: KindString, Set: func(r *T, v any) { *dst(r) = v.(string) }}
}

// Enum decodes a string key through parse, which must be total.
func Enum[T any, E any](name string, dst func(*T) *E, parse func(string) E) Field[T] {
	return Field[T]{Name: name, Kind: KindString, Set: func(r *T, v any) { *dst(r) = parse(v.(string)) }}
}

func Int[T any, N ~int | ~int32 | ~int64](name string, dst func(*T) *N) Field[T] {
	return Field[T]{Name: name, Kind: KindInt, Set: func(r *T, v any) { *dst(r) = N(v.(int64)) }}
}

func Float[T any](name string, dst func(*T) *float64) Field[T] {
	return Field[T]{Name: name, Kind: KindFloat, Set: func(r *T, v any) { *dst(r) = v.(float64) }}
}

func Bool[T any](name string, dst func(*T) *bool) Field[T] {
	return Field[T]{Name: name, Kind: KindBool, Set: func(r *T, v any) { *dst(r) = v.(bool) }}
}

func Epoch[T any](name string, dst func(*T) *time.Time) Field[T] {
	return Field[T]{Name: name, Kind: KindEpoch, Set: func(r *T, v any) { *dst(r) = v.(time.Time) }}
}

func IntList[T any](name string, dst func(*T) *[]int64) Field[T] {
	return Field[T]{Name: name, Kind: KindIntList, Set: func(r *T, v any) { *dst(r) = v.([]int64) }}
}

func convert(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		return asString(v)
	case KindInt:
		return asInt(v)
	case KindFloat:
		return asFloat(v)
	case KindBool:
		return asBool(v)
	case KindEpoch:
		return asEpoch(v)
	case KindIntList:
		return asIntList(v)
	default:
		return nil, fmt.Errorf("unsupported kind %v", kind)
	}
}

// AsObject asserts that a parsed JSON value is an object.
func AsObject(value any) (map[string]any, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, Malformed(fmt.Errorf("expected object, got %s", jsonType(value)))
	}

	return obj, nil
}

// Object decodes obj using table. Fields are evaluated in table order and the
// first failure is returned.
func Object[T any](obj map[string]any, table []Field[T]) (T, error) {
	var rec T

	for _, f := range table {
		raw, ok := obj[f.Name]
		if !ok || raw == nil {
			if !f.Optional {
				var zero T
				return zero, Missing(f.Name)
			}
			if f.Default != nil {
				f.Set(&rec, f.Default)
			}
			continue
		}

		v, err := convert(f.Kind, raw)
		if err != nil {
			var zero T
			return zero, Mismatch(f.Name, err)
		}
		f.Set(&rec, v)
	}

	return rec, nil
}

// Array decodes a JSON array of objects. Any failing element fails the whole
// array and the error carries the element index.
func Array[T any](value any, table []Field[T]) ([]T, error) {
	arr, ok := value.([]any)
	if !ok {
		return nil, Malformed(fmt.Errorf("expected array, got %s", jsonType(value)))
	}

	out := make([]T, 0, len(arr))
	for i, e := range arr {
		obj, ok := e.(map[string]any)
		if !ok {
			err := Malformed(fmt.Errorf("expected object, got %s", jsonType(e)))
			err.Index = i
			return nil, err
		}

		rec, err := Object(obj, table)
		if err != nil {
			if de, ok := err.(*Error); ok {
				de.Index = i
			}
			return nil, err
		}
		out = append(out, rec)
	}

	return out, nil
}

// UnknownKeys lists the keys of obj that no table entry names, sorted.
func UnknownKeys[T any](obj map[string]any, table []Field[T]) []string {
	known := strset.NewWithSize(len(table))
	for _, f := range table {
		known.Add(f.Name)
	}

	present := strset.NewWithSize(len(obj))
	for k := range obj {
		present.Add(k)
	}

	unknown := strset.Difference(present, known).List()
	sort.Strings(unknown)
	return unknown
}

func jsonType(v any) string {
	switch v.(type) {
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
	default:
		return "number"
	}
}
