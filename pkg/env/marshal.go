package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders the env-tagged fields of the struct pointed to by c as
// .env lines. Zero values are left out so the parser falls back to the
// field default, except for a false bool whose envDefault is true.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("env: expected pointer to struct, got %T", c)
	}
	v = v.Elem()
	t := v.Type()

	var sb strings.Builder
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val, ok := encode(v.Field(i), field.Tag.Get("envDefault"))
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s=%s\n", key, val)
	}
	return sb.String(), nil
}

// encode formats a field value. It reports false when the field should be
// omitted.
func encode(v reflect.Value, def string) (string, bool) {
	if v.Kind() == reflect.Bool {
		if v.Bool() {
			return "true", true
		}
		on, _ := strconv.ParseBool(def)
		return "false", on
	}
	if v.IsZero() {
		return "", false
	}

	var s string
	switch {
	case v.Type() == durationType:
		s = time.Duration(v.Int()).String()
	case v.CanInt():
		s = strconv.FormatInt(v.Int(), 10)
	case v.CanUint():
		s = strconv.FormatUint(v.Uint(), 10)
	case v.CanFloat():
		s = strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	case v.Kind() == reflect.String:
		s = v.String()
	default:
		s = fmt.Sprint(v.Interface())
	}
	if strings.ContainsAny(s, " #\"'") {
		s = strconv.Quote(s)
	}
	return s, true
}
