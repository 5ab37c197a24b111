package binconf

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses a binconf document and stores the result in the
// value pointed to by v. If v is not a pointer to a struct, Unmarshal
// returns an error. The document must evaluate to a table (either a
// top-level table or a sequence of constant declarations).
//
// Unmarshal uses struct tags to determine how to map table keys to
// struct fields:
//   - `binconf:"KEY"` - maps table key "KEY" to this struct field
//   - `binconf:"KEY,required"` - fails if the key is absent
//   - `binconf:"-"` - ignores this field
//
// Without a tag, the upper-cased field name is used, matching the
// language's uppercase-only key set.
//
// Example:
//
//	type Config struct {
//	    Port    int64 `binconf:"PORT"`
//	    Host    int64 `binconf:"HOST"`
//	    Server  struct {
//	        IP   int64 `binconf:"IP"`
//	        Mask int64 `binconf:"MASK"`
//	    } `binconf:"SERVER"`
//	}
func Unmarshal(data []byte, v any) error {
	result, err := Parse(string(data))
	if err != nil {
		return err
	}
	return Decode(result, v)
}

// Decode stores an already-parsed Value in the value pointed to by v.
func Decode(value Value, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a pointer to struct")
	}

	tbl, ok := value.(*Table)
	if !ok {
		return fmt.Errorf("document is not a table")
	}

	return decodeStruct(tbl, elem)
}

// decodeStruct decodes a table into a struct value
func decodeStruct(tbl *Table, v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Skip unexported fields
		if !fieldValue.CanSet() {
			continue
		}

		tag := field.Tag.Get("binconf")
		if tag == "-" {
			continue
		}

		tagName, opts := parseTag(tag)
		if tagName == "" {
			tagName = strings.ToUpper(field.Name)
		}

		value, ok := tbl.Get(tagName)
		if !ok {
			if hasOption(opts, "required") {
				return fmt.Errorf("required key %s not found", tagName)
			}
			continue
		}

		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("field %s: %v", field.Name, err)
		}
	}

	return nil
}

// setField sets a reflect.Value based on the parsed Value
func setField(field reflect.Value, value Value) error {
	if value == nil {
		return nil
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(field, value)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint(field, value)
	case reflect.Map:
		return setMap(field, value)
	case reflect.Struct:
		return setStruct(field, value)
	case reflect.Ptr:
		return setPointer(field, value)
	case reflect.Interface:
		field.Set(reflect.ValueOf(value))
		return nil
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}

func setInt(field reflect.Value, value Value) error {
	n, ok := value.(Integer)
	if !ok {
		return fmt.Errorf("cannot convert %T to int", value)
	}
	if field.OverflowInt(int64(n)) {
		return fmt.Errorf("value %d overflows %s", int64(n), field.Type())
	}
	field.SetInt(int64(n))
	return nil
}

func setUint(field reflect.Value, value Value) error {
	n, ok := value.(Integer)
	if !ok {
		return fmt.Errorf("cannot convert %T to uint", value)
	}
	if n < 0 || field.OverflowUint(uint64(n)) {
		return fmt.Errorf("value %d overflows %s", int64(n), field.Type())
	}
	field.SetUint(uint64(n))
	return nil
}

func setMap(field reflect.Value, value Value) error {
	tbl, ok := value.(*Table)
	if !ok {
		return fmt.Errorf("cannot convert %T to map", value)
	}
	if field.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("map key type must be string, got %s", field.Type().Key())
	}

	m := reflect.MakeMap(field.Type())
	for _, key := range tbl.Keys() {
		val, _ := tbl.Get(key)
		elemValue := reflect.New(field.Type().Elem()).Elem()
		if err := setField(elemValue, val); err != nil {
			return fmt.Errorf("key %s: %v", key, err)
		}
		m.SetMapIndex(reflect.ValueOf(key), elemValue)
	}
	field.Set(m)
	return nil
}

func setStruct(field reflect.Value, value Value) error {
	tbl, ok := value.(*Table)
	if !ok {
		return fmt.Errorf("cannot convert %T to struct", value)
	}
	return decodeStruct(tbl, field)
}

func setPointer(field reflect.Value, value Value) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	// Create new pointer
	ptr := reflect.New(field.Type().Elem())
	if err := setField(ptr.Elem(), value); err != nil {
		return err
	}
	field.Set(ptr)
	return nil
}

// Helper functions

func parseTag(tag string) (string, []string) {
	parts := strings.Split(tag, ",")
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func hasOption(opts []string, option string) bool {
	for _, opt := range opts {
		if opt == option {
			return true
		}
	}
	return false
}
