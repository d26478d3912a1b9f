// Package query serializes request parameters for the Revizto API.
//
// Flat option structs are encoded with go-querystring using `url` struct
// tags. The API also accepts nested structures (issue filters, sort
// descriptors, comment records) in PHP-style bracket notation:
//
//	alwaysFiltersDTO[0][type]=5&alwaysFiltersDTO[0][value][0]=open
//
// Nested produces that form from arbitrary maps and slices.
package query

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"

	gq "github.com/google/go-querystring/query"
)

// Values encodes a flat options struct. A nil opts yields empty values.
func Values(opts any) (url.Values, error) {
	if opts == nil {
		return url.Values{}, nil
	}
	v := reflect.ValueOf(opts)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return url.Values{}, nil
	}
	vals, err := gq.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return vals, nil
}

// Nested adds v to into under prefix using bracket notation. Map keys are
// visited in sorted order and slice elements by index, so the same input
// always yields the same pairs. Nil values are skipped.
func Nested(prefix string, v any, into url.Values) {
	nested(prefix, reflect.ValueOf(v), into)
}

func nested(prefix string, v reflect.Value, into url.Values) {
	if !v.IsValid() {
		return
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return
		}
		nested(prefix, v.Elem(), into)
	case reflect.Map:
		keys := v.MapKeys()
		names := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
			byName[names[i]] = v.MapIndex(k)
		}
		sort.Strings(names)
		for _, name := range names {
			nested(fmt.Sprintf("%s[%s]", prefix, name), byName[name], into)
		}
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return
		}
		for i := 0; i < v.Len(); i++ {
			nested(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), into)
		}
	default:
		into.Add(prefix, scalar(v))
	}
}

func scalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.String:
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

// SortedKeys returns the keys of vals in lexical order.
func SortedKeys(vals url.Values) []string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
