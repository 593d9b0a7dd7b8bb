package conv

import (
	"fmt"
	"reflect"
	"sync"
)

var primitiveTypes = []reflect.Type{
	reflect.TypeOf(false),
	reflect.TypeOf(0), reflect.TypeOf(int8(0)), reflect.TypeOf(int16(0)), reflect.TypeOf(int32(0)), reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)), reflect.TypeOf(uint8(0)), reflect.TypeOf(uint16(0)), reflect.TypeOf(uint32(0)), reflect.TypeOf(uint64(0)),
	reflect.TypeOf(float32(0)), reflect.TypeOf(float64(0)),
	charType,
}

// Registry holds one converter per target type.
// Built-in converters are populated once by NewRegistry and never mutated;
// custom converters shadow built-ins and can be registered concurrently with lookups.
type Registry struct {
	builtIn map[reflect.Type]Converter
	custom  sync.Map // map[reflect.Type]Converter
	options *options
}

// Register registers custom converter
func (r *Registry) Register(converter Converter) {
	r.custom.Store(converter.Type(), converter)
}

// BuiltIn returns built-in converter for exact type or nil
func (r *Registry) BuiltIn(rType reflect.Type) Converter {
	return r.builtIn[rType]
}

// Custom returns custom converter for exact type or nil
func (r *Registry) Custom(rType reflect.Type) Converter {
	if v, ok := r.custom.Load(rType); ok {
		return v.(Converter)
	}
	return nil
}

// Converter returns custom or built-in converter for exact type or nil
func (r *Registry) Converter(rType reflect.Type) Converter {
	if ret := r.Custom(rType); ret != nil {
		return ret
	}
	return r.BuiltIn(rType)
}

// Convert converts value into rType, defaultValue is returned when value is nil or can not be coerced
func (r *Registry) Convert(rType reflect.Type, value interface{}, defaultValue interface{}) (interface{}, error) {
	converter := r.Converter(rType)
	if converter == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConverter, rType)
	}
	return converter.Convert(value, defaultValue)
}

func (r *Registry) registerBuiltIn(converter Converter) {
	r.builtIn[converter.Type()] = converter
}

// NewRegistry creates a registry with built-in converters
func NewRegistry(opts ...Option) *Registry {
	ret := &Registry{builtIn: make(map[reflect.Type]Converter), options: newOptions(opts)}
	for _, rType := range primitiveTypes {
		ret.registerBuiltIn(NewPrimitive(rType))
		if rType == charType {
			continue
		}
		if rType.Kind() == reflect.Bool {
			ret.registerBuiltIn(NewBoolean())
			continue
		}
		ret.registerBuiltIn(NewNumber(reflect.PtrTo(rType)))
	}
	ret.registerBuiltIn(NewCharacter())
	ret.registerBuiltIn(NewNumber(jsonNumberType))
	ret.registerBuiltIn(NewNumber(bigIntType))
	ret.registerBuiltIn(NewNumber(bigFloatType))
	ret.registerBuiltIn(NewString())
	ret.registerBuiltIn(NewURL())
	ret.registerBuiltIn(NewDate(ret.options.asOptions()...))
	ret.registerBuiltIn(NewCalendar(ret.options.asOptions()...))
	ret.registerBuiltIn(NewClass(ret.options.types))
	return ret
}

func (o *options) asOptions() []Option {
	return []Option{WithLocation(o.location), WithDatePattern(o.datePattern), WithTimeLayout(o.timeLayout), WithTypes(o.types)}
}

// As converts value into T with registry converter
func As[T any](registry *Registry, value interface{}, defaultValue T) (T, error) {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	var def interface{}
	if !IsNil(defaultValue) {
		def = defaultValue
	}
	var zero T
	result, err := registry.Convert(rType, value, def)
	if err != nil || result == nil {
		return zero, err
	}
	return result.(T), nil
}

// Options returns registry options, used to derive converters sharing registry location and types
func (r *Registry) Options() []Option {
	return r.options.asOptions()
}
