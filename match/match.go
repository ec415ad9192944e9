// Package match implements partial matching over strings, slices and nested
// values.
package match

import (
	"bytes"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Contains reports whether sub is within s.
func Contains(s, sub string) bool { return strings.Contains(s, sub) }

// Matches reports whether s matches pattern. An invalid pattern is an error.
func Matches(s, pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// MatchesRegexp reports whether s matches re.
func MatchesRegexp(s string, re *regexp.Regexp) bool { return re.MatchString(s) }

// ContainsElement reports whether slice holds an element == v.
func ContainsElement[T comparable](slice []T, v T) bool { return slices.Contains(slice, v) }

// ContainsEqual reports whether any element of slice is structurally equal
// to want. Elements and want are compared after a JSON round trip, so a
// struct matches a map with the same fields and numeric kinds do not matter.
func ContainsEqual(slice any, want any) bool {
	rv := reflect.ValueOf(slice)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	w, ok := normalize(want)
	if !ok {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		e, ok := normalize(rv.Index(i).Interface())
		if ok && reflect.DeepEqual(e, w) {
			return true
		}
	}
	return false
}

// Equal is the element comparison used by ContainsEqual.
func Equal(a, b any) bool {
	na, ok := normalize(a)
	if !ok {
		return false
	}
	nb, ok := normalize(b)
	return ok && reflect.DeepEqual(na, nb)
}

func normalize(v any) (any, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	return canonNumbers(out), true
}

// canonNumbers rewrites json.Number so that 2, 2.0 and 2e0 compare equal.
// Integers stay exact as int64; only non-integral or out-of-range values
// become float64.
func canonNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, err := t.Float64()
		if err != nil {
			return string(t)
		}
		if f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 {
			return int64(f)
		}
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = canonNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = canonNumbers(e)
		}
		return t
	}
	return v
}

// Property returns the value at a dotted path such as "details.description".
// Segments select map keys, struct fields (by json tag, then field name) or
// slice indexes.
func Property(obj any, path string) (any, bool) {
	cur := reflect.ValueOf(obj)
	if path == "" {
		return obj, cur.IsValid()
	}
	for _, seg := range strings.Split(path, ".") {
		cur = indirect(cur)
		if !cur.IsValid() {
			return nil, false
		}
		switch cur.Kind() {
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			v := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
			if !v.IsValid() {
				return nil, false
			}
			cur = v
		case reflect.Struct:
			f, ok := structField(cur, seg)
			if !ok {
				return nil, false
			}
			cur = f
		case reflect.Slice, reflect.Array:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= cur.Len() {
				return nil, false
			}
			cur = cur.Index(i)
		default:
			return nil, false
		}
	}
	if !cur.IsValid() || !cur.CanInterface() {
		return nil, false
	}
	return cur.Interface(), true
}

// HasProperty reports whether path exists in obj and, when want is given,
// whether its value is Equal to want[0].
func HasProperty(obj any, path string, want ...any) bool {
	v, ok := Property(obj, path)
	if !ok {
		return false
	}
	if len(want) == 0 {
		return true
	}
	return Equal(v, want[0])
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if tag != "" && tag == name {
			return v.Field(i), true
		}
	}
	if sf, ok := t.FieldByName(name); ok && sf.IsExported() {
		return v.FieldByIndex(sf.Index), true
	}
	return reflect.Value{}, false
}
