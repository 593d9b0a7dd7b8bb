package conv

import (
	"reflect"

	"github.com/viant/xreflect"
)

// TypeType represents reflect.Type interface type
var TypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// NewClass creates reflect.Type converter resolving type names with supplied registry
func NewClass(types *xreflect.Types) Converter {
	if types == nil {
		types = xreflect.NewTypes()
	}
	return New(TypeType, func(value interface{}) (interface{}, bool) {
		name, ok := trimmedString(value)
		if !ok {
			return nil, false
		}
		rType, err := types.Lookup(name)
		if err != nil || rType == nil {
			return nil, false
		}
		return rType, true
	})
}
