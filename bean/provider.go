package bean

import (
	"fmt"
	"strings"

	"github.com/francoispqt/gojay"
)

type (
	// ValueProvider returns value for a property name, nil when not available
	ValueProvider interface {
		Value(name string) interface{}
	}

	// ValueProviderFunc adapts function to ValueProvider
	ValueProviderFunc func(name string) interface{}

	jsonObject map[string]interface{}
)

// Value returns value for a property name
func (f ValueProviderFunc) Value(name string) interface{} {
	return f(name)
}

// MapProvider returns provider backed by any map kind
func MapProvider(source interface{}) ValueProvider {
	aMap, _ := AsMap(source)
	return ValueProviderFunc(func(name string) interface{} {
		return aMap[name]
	})
}

// IgnoreCaseMapProvider returns provider matching map string keys case insensitively
func IgnoreCaseMapProvider(source interface{}) ValueProvider {
	aMap, _ := AsMap(source)
	var index = make(map[string]interface{}, len(aMap))
	for key, value := range aMap {
		if name, ok := key.(string); ok {
			index[strings.ToLower(name)] = value
		}
	}
	return ValueProviderFunc(func(name string) interface{} {
		return index[strings.ToLower(name)]
	})
}

// JSONProvider returns provider backed by JSON object
func JSONProvider(data []byte) (ValueProvider, error) {
	object := jsonObject{}
	if err := gojay.UnmarshalJSONObject(data, object); err != nil {
		return nil, fmt.Errorf("failed to decode JSON object: %w", err)
	}
	return MapProvider(map[string]interface{}(object)), nil
}

// UnmarshalJSONObject decodes object key
func (o jsonObject) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var value interface{}
	if err := dec.Interface(&value); err != nil {
		return err
	}
	o[key] = value
	return nil
}

// NKeys returns 0 to decode all keys
func (o jsonObject) NKeys() int {
	return 0
}
