package conv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Char represents a single character, its pointer form is a nullable character
type Char rune

// String returns character text
func (c Char) String() string {
	return string(rune(c))
}

// ToString renders value as text, arrays and slices are rendered as [a, b, c]
func ToString(value interface{}) (string, bool) {
	if IsNil(value) {
		return "", false
	}
	switch actual := value.(type) {
	case string:
		return actual, true
	case []byte:
		return string(actual), true
	case Char:
		return actual.String(), true
	case time.Time:
		return actual.Format(time.RFC3339), true
	case fmt.Stringer:
		return actual.String(), true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr:
		return ToString(rValue.Elem().Interface())
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rValue.Len())
		for i := 0; i < rValue.Len(); i++ {
			item, ok := ToString(rValue.Index(i).Interface())
			if !ok {
				item = "null"
			}
			items = append(items, item)
		}
		return "[" + strings.Join(items, ", ") + "]", true
	case reflect.String:
		return rValue.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rValue.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rValue.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rValue.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rValue.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rValue.Float(), 'f', -1, 64), true
	}
	return fmt.Sprintf("%v", value), true
}

func trimmedString(value interface{}) (string, bool) {
	text, ok := ToString(value)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// NewString creates string converter
func NewString() Converter {
	return New(reflect.TypeOf(""), func(value interface{}) (interface{}, bool) {
		text, ok := ToString(value)
		if !ok {
			return nil, false
		}
		return text, true
	})
}
