// Package binding fills ${path} placeholders in text from structured data.
package binding

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/ledger/format"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 路径段可以是 map 键、结构体字段（json 标签或字段名）或 [n] 下标。
// 可选的 |filter 后缀使用 format 包格式化：amount、quantity、smart、date、datetime。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	return InterpolateWith(text, data, format.Default())
}

// InterpolateWith is Interpolate with an explicit formatter for filters.
func InterpolateWith(text string, data any, f *format.Formatter) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path, filter, _ := strings.Cut(groups[1], "|")
		path = strings.TrimSpace(path)
		if path == "" {
			return match
		}
		val, ok := Resolve(data, path)
		if !ok {
			return match
		}
		out, ok := applyFilter(val, strings.TrimSpace(filter), f)
		if !ok {
			return match
		}
		return out
	})
}

// Resolve walks path through data and returns the value it names.
func Resolve(data any, path string) (any, bool) {
	current := reflect.ValueOf(data)
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendField(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendIndex(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	current = indirect(current)
	if !current.IsValid() {
		return nil, false
	}
	return current.Interface(), true
}

func parseSegment(segment string) (string, []string) {
	name := strings.TrimSpace(segment)
	var indexes []string
	if i := strings.Index(name, "["); i != -1 {
		rest := name[i:]
		name = name[:i]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
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

func descendField(current reflect.Value, key string) (reflect.Value, bool) {
	v := indirect(current)
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		val := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		return val, val.IsValid()
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if tag == key || (tag == "" && sf.Name == key) || strings.EqualFold(sf.Name, key) {
				return v.Field(i), true
			}
		}
	}
	return reflect.Value{}, false
}

func descendIndex(current reflect.Value, idx int) (reflect.Value, bool) {
	v := indirect(current)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if idx < 0 || idx >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(idx), true
	}
	return reflect.Value{}, false
}

func applyFilter(val any, filter string, f *format.Formatter) (string, bool) {
	if filter == "" {
		return fmt.Sprint(val), true
	}
	switch filter {
	case "date", "datetime":
		t, ok := val.(time.Time)
		if !ok {
			return "", false
		}
		if filter == "date" {
			return f.Date(t), true
		}
		return f.DateTime(t), true
	}
	n, ok := toFloat(val)
	if !ok {
		return "", false
	}
	switch filter {
	case "amount":
		return f.Amount(n), true
	case "quantity":
		return f.Quantity(n), true
	case "smart":
		return f.SmartAmount(n), true
	}
	return "", false
}

func toFloat(val any) (float64, bool) {
	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	}
	return 0, false
}
