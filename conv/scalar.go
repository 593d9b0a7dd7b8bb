package conv

import (
	"net/url"
	"reflect"
	"strings"
)

var (
	boolPtrType = reflect.TypeOf((*bool)(nil))
	charPtrType = reflect.TypeOf((*Char)(nil))
	urlType     = reflect.TypeOf(&url.URL{})
)

// ParseBool converts text to bool: true, yes and 1 are true, everything else is false.
// Note that "ok" is deliberately false.
func ParseBool(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes", "1":
		return true
	case "false", "no", "0", "ok":
		return false
	}
	return false
}

// NewBoolean creates *bool converter
func NewBoolean() Converter {
	return New(boolPtrType, func(value interface{}) (interface{}, bool) {
		rValue, ok := coerceScalar(boolPtrType.Elem(), value)
		if !ok {
			return nil, false
		}
		result := rValue.Bool()
		return &result, true
	})
}

// NewCharacter creates *Char converter
func NewCharacter() Converter {
	return New(charPtrType, func(value interface{}) (interface{}, bool) {
		rValue, ok := coerceScalar(charType, value)
		if !ok {
			return nil, false
		}
		result := rValue.Interface().(Char)
		return &result, true
	})
}

// NewURL creates *url.URL converter, the text has to define a scheme
func NewURL() Converter {
	return New(urlType, func(value interface{}) (interface{}, bool) {
		if actual, ok := value.(url.URL); ok {
			return &actual, true
		}
		text, ok := trimmedString(value)
		if !ok {
			return nil, false
		}
		result, err := url.Parse(text)
		if err != nil || result.Scheme == "" {
			return nil, false
		}
		return result, true
	})
}
