package bean

import (
	"strings"

	"github.com/viant/coerce/conv"
	"github.com/viant/tagly/format/text"
)

// ToCamelCase returns a copy of source with snake_case string keys rewritten to camelCase, other keys pass through
func ToCamelCase(source map[interface{}]interface{}) map[interface{}]interface{} {
	var result = make(map[interface{}]interface{}, len(source))
	for key, value := range source {
		if name, ok := key.(string); ok {
			key = ToCamel(name)
		}
		result[key] = value
	}
	return result
}

// ToCamel rewrites snake_case name to camelCase, names without underscore are returned unchanged
func ToCamel(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}
	return text.DetectCaseFormat(name).Format(name, text.CaseFormatLowerCamel)
}

// ToSnakeCase rewrites camelCase name to snake_case
func ToSnakeCase(name string) string {
	if name == "" {
		return name
	}
	return text.DetectCaseFormat(name).Format(name, text.CaseFormatLowerUnderscore)
}

// AsMap normalizes any map kind into map[interface{}]interface{}, string kinded keys are converted to string
func AsMap(source interface{}) (map[interface{}]interface{}, bool) {
	if aMap, ok := source.(map[interface{}]interface{}); ok {
		return aMap, aMap != nil
	}
	if conv.IsNil(source) {
		return nil, false
	}
	visit, err := EntryVisitorOf(source)
	if err != nil {
		return nil, false
	}
	var result = make(map[interface{}]interface{})
	_ = visit(func(key interface{}, element interface{}) (bool, error) {
		result[key] = element
		return true, nil
	})
	return result, true
}
