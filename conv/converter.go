package conv

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoConverter is returned when registry has no converter for requested type
	ErrNoConverter = errors.New("no converter for type")
	// ErrIncompatibleDefault is returned when default value is not an instance of converter type
	ErrIncompatibleDefault = errors.New("default value is not an instance of target type")
)

type (
	// Converter converts an arbitrary value into its target type
	Converter interface {
		//Type returns converter target type
		Type() reflect.Type
		//Convert converts value, defaultValue is returned when value is nil or can not be coerced
		Convert(value interface{}, defaultValue interface{}) (interface{}, error)
	}

	// Coercion converts value into a target type, false is returned when value can not be coerced
	Coercion func(value interface{}) (interface{}, bool)

	converter struct {
		rType     reflect.Type
		primitive bool
		coerce    Coercion
	}
)

// Type returns converter target type
func (c *converter) Type() reflect.Type {
	return c.rType
}

// Convert converts value to the converter type
func (c *converter) Convert(value interface{}, defaultValue interface{}) (interface{}, error) {
	if c.primitive {
		if IsNil(value) {
			value = nil
		}
		ret, ok := c.safeCoerce(value)
		if !ok || ret == nil {
			return reflect.Zero(c.rType).Interface(), nil
		}
		return ret, nil
	}
	if IsNil(value) {
		return defaultValue, nil
	}
	if defaultValue != nil && !c.isInstance(defaultValue) {
		return nil, fmt.Errorf("%w: %v(%T) is not %v", ErrIncompatibleDefault, defaultValue, defaultValue, c.rType)
	}
	if c.isInstance(value) {
		return value, nil
	}
	ret, ok := c.safeCoerce(value)
	if !ok || IsNil(ret) {
		return defaultValue, nil
	}
	return ret, nil
}

func (c *converter) isInstance(value interface{}) bool {
	vType := reflect.TypeOf(value)
	if vType == c.rType {
		return true
	}
	return c.rType.Kind() == reflect.Interface && vType.Implements(c.rType)
}

func (c *converter) safeCoerce(value interface{}) (ret interface{}, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ret, ok = nil, false
		}
	}()
	return c.coerce(value)
}

// New creates a converter for supplied target type and coercion
func New(rType reflect.Type, coerce Coercion) Converter {
	return &converter{rType: rType, primitive: IsPrimitive(rType), coerce: coerce}
}

// IsPrimitive returns true for non pointer bool and numeric kinds
func IsPrimitive(rType reflect.Type) bool {
	if rType == nil {
		return false
	}
	switch rType.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsNil returns true for nil or nil pointer, map, slice, interface, func and chan values
func IsNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rValue.IsNil()
	}
	return false
}
