package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// bindValues copies values into the fields of the struct v points to, using
// tagName to find the parameter name of each field.
func bindValues(v any, tagName string, values map[string][]string, bindErr error) error {
	rv, err := structValue(v, bindErr)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, skip := parseFieldTag(sf, tagName)
		if skip {
			continue
		}

		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setFieldValue(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func structValue(v any, bindErr error) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}
	return rv, nil
}

// parseFieldTag returns the parameter name of a field. Untagged fields use the
// lowercased field name; "-" skips the field.
func parseFieldTag(sf reflect.StructField, tagName string) (name string, skip bool) {
	tag := sf.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(sf.Name), false
	case "-":
		return "", true
	}
	name, _, _ = strings.Cut(tag, ",")
	return name, name == ""
}

func setFieldValue(field reflect.Value, t reflect.Type, values []string) error {
	if t.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(t.Elem()))
		}
		return setFieldValue(field.Elem(), t.Elem(), values)
	}
	if t.Kind() == reflect.Slice {
		return setSliceValue(field, t, values)
	}
	if len(values) == 0 {
		return nil
	}
	value := values[0]

	switch t.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", t.Kind())
	}
	return nil
}

// parseBool also accepts the values HTML checkboxes send.
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

func setSliceValue(field reflect.Value, t reflect.Type, values []string) error {
	slice := reflect.MakeSlice(t, len(values), len(values))
	for i, value := range values {
		if err := setFieldValue(slice.Index(i), t.Elem(), []string{value}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}
