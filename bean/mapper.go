package bean

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/viant/coerce/conv"
	"github.com/viant/xunsafe"
)

type (
	// Mapper maps values between value providers, maps and structs
	Mapper struct {
		registry     *conv.Registry
		introspector Introspector
	}

	// Option represents mapper option
	Option func(m *Mapper)

	assignment struct {
		property *Property
		value    interface{}
	}
)

var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    reflect.TypeOf(false),
	reflect.Int:     reflect.TypeOf(0),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.String:  reflect.TypeOf(""),
}

// WithIntrospector returns option setting property introspector
func WithIntrospector(introspector Introspector) Option {
	return func(m *Mapper) {
		m.introspector = introspector
	}
}

// Registry returns mapper converter registry
func (m *Mapper) Registry() *conv.Registry {
	return m.registry
}

// Properties returns type properties
func (m *Mapper) Properties(rType reflect.Type) (*Properties, error) {
	return m.introspector.Properties(rType)
}

// Fill sets every writable target property with non nil provider value, target has to be a struct pointer.
// Either all properties are set or none.
func (m *Mapper) Fill(target interface{}, provider ValueProvider) (interface{}, error) {
	targetType, targetPtr, err := structPointer(target, true)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return target, nil
	}
	properties, err := m.introspector.Properties(targetType)
	if err != nil {
		return nil, err
	}
	var assignments = make([]assignment, 0, len(properties.Items))
	for _, property := range properties.Items {
		if !property.Writable() {
			continue
		}
		value := provider.Value(property.Name)
		if conv.IsNil(value) {
			continue
		}
		coerced, err := m.coerce(property, value)
		if err != nil {
			return nil, &PropertyError{Target: property.Name, Err: err}
		}
		assignments = append(assignments, assignment{property: property, value: coerced})
	}
	for _, item := range assignments {
		item.property.SetValue(targetPtr, item.value)
	}
	return target, nil
}

// FillWithMap fills target with map values, snake_case keys are rewritten when toCamelCase is set
func (m *Mapper) FillWithMap(source interface{}, target interface{}, toCamelCase bool) (interface{}, error) {
	aMap, _ := AsMap(source)
	if toCamelCase {
		aMap = ToCamelCase(aMap)
	}
	return m.Fill(target, MapProvider(aMap))
}

// FillWithMapIgnoreCase fills target with map values matched case insensitively
func (m *Mapper) FillWithMapIgnoreCase(source interface{}, target interface{}) (interface{}, error) {
	return m.Fill(target, IgnoreCaseMapProvider(source))
}

// ToObject creates rType (struct or struct pointer) instance filled from provider, a struct pointer is returned
func (m *Mapper) ToObject(rType reflect.Type, provider ValueProvider) (interface{}, error) {
	target, err := newStruct(rType)
	if err != nil {
		return nil, err
	}
	return m.Fill(target, provider)
}

// Value returns source property value by name, map sources are looked up by key
func (m *Mapper) Value(source interface{}, name string) (interface{}, error) {
	if conv.IsNil(source) {
		return nil, nil
	}
	if aMap, ok := AsMap(source); ok {
		return aMap[name], nil
	}
	sourceType, sourcePtr, err := structPointer(source, false)
	if err != nil {
		return nil, err
	}
	properties, err := m.introspector.Properties(sourceType)
	if err != nil {
		return nil, err
	}
	property := properties.Lookup(name)
	if property == nil {
		return nil, fmt.Errorf("%w: %v.%v", ErrUnknownProperty, sourceType.Name(), name)
	}
	return property.Value(sourcePtr), nil
}

// MapToObject creates rType (struct or struct pointer) instance filled with map values, a struct pointer is returned
func (m *Mapper) MapToObject(source interface{}, rType reflect.Type, toCamelCase bool) (interface{}, error) {
	target, err := newStruct(rType)
	if err != nil {
		return nil, err
	}
	return m.FillWithMap(source, target, toCamelCase)
}

// MapToObjectIgnoreCase creates rType instance filled with map values matched case insensitively
func (m *Mapper) MapToObjectIgnoreCase(source interface{}, rType reflect.Type) (interface{}, error) {
	target, err := newStruct(rType)
	if err != nil {
		return nil, err
	}
	return m.FillWithMapIgnoreCase(source, target)
}

// MapTo creates T filled with map values
func MapTo[T any](mapper *Mapper, source interface{}, toCamelCase bool) (*T, error) {
	result, err := mapper.MapToObject(source, reflect.TypeOf((*T)(nil)).Elem(), toCamelCase)
	if err != nil {
		return nil, err
	}
	ret, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotStruct, *new(T))
	}
	return ret, nil
}

// ObjectToMap returns source properties keyed by name, type identity property is excluded
func (m *Mapper) ObjectToMap(source interface{}, toSnakeCase, ignoreNull bool) (map[string]interface{}, error) {
	if conv.IsNil(source) {
		return nil, nil
	}
	sourceType, sourcePtr, err := structPointer(source, false)
	if err != nil {
		return nil, err
	}
	properties, err := m.introspector.Properties(sourceType)
	if err != nil {
		return nil, err
	}
	var result = make(map[string]interface{}, len(properties.Items))
	visit := PropertyVisitorOf(properties, sourcePtr)
	err = visit(func(property *Property, value interface{}) (bool, error) {
		if ignoreNull && conv.IsNil(value) {
			return true, nil
		}
		key := property.Name
		if toSnakeCase {
			key = ToSnakeCase(key)
		}
		result[key] = value
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *Mapper) coerce(property *Property, value interface{}) (interface{}, error) {
	if property.converter != nil {
		return property.converter.Convert(value, nil)
	}
	if converter := m.registry.Converter(property.Type); converter != nil {
		return converter.Convert(value, nil)
	}
	valueType := reflect.TypeOf(value)
	if valueType.AssignableTo(property.Type) {
		return value, nil
	}
	if nested := structType(property.Type); nested != nil {
		if aMap, ok := AsMap(value); ok {
			return m.coerceStruct(property.Type, aMap)
		}
	}
	if property.Type.Kind() == reflect.Slice && (valueType.Kind() == reflect.Slice || valueType.Kind() == reflect.Array) {
		return m.coerceSlice(property, reflect.ValueOf(value))
	}
	if valueType.ConvertibleTo(property.Type) && valueType.Kind() == property.Type.Kind() {
		return reflect.ValueOf(value).Convert(property.Type).Interface(), nil
	}
	if basic, ok := basicTypes[property.Type.Kind()]; ok {
		//named basic types, i.e. type Status int
		converted, err := m.registry.Convert(basic, value, nil)
		if err != nil || converted == nil {
			return nil, err
		}
		return reflect.ValueOf(converted).Convert(property.Type).Interface(), nil
	}
	return nil, fmt.Errorf("%w: %v from %T", conv.ErrNoConverter, property.Type, value)
}

func (m *Mapper) coerceStruct(rType reflect.Type, aMap map[interface{}]interface{}) (interface{}, error) {
	target, err := m.MapToObject(aMap, rType, false)
	if err != nil {
		return nil, err
	}
	if rType.Kind() == reflect.Struct {
		return reflect.ValueOf(target).Elem().Interface(), nil
	}
	return target, nil
}

func (m *Mapper) coerceSlice(property *Property, source reflect.Value) (interface{}, error) {
	itemProperty := &Property{Name: property.Name, Type: property.Type.Elem()}
	result := reflect.MakeSlice(property.Type, source.Len(), source.Len())
	for i := 0; i < source.Len(); i++ {
		item := source.Index(i).Interface()
		if conv.IsNil(item) {
			continue
		}
		coerced, err := m.coerce(itemProperty, item)
		if err != nil {
			return nil, fmt.Errorf("item[%v]: %w", i, err)
		}
		if coerced != nil {
			result.Index(i).Set(reflect.ValueOf(coerced))
		}
	}
	return result.Interface(), nil
}

func newStruct(rType reflect.Type) (interface{}, error) {
	aStruct := structType(rType)
	if aStruct == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, rType)
	}
	return reflect.New(aStruct).Interface(), nil
}

// structPointer returns struct type and its address, non pointer source is copied unless pointer is required
func structPointer(value interface{}, requirePointer bool) (reflect.Type, unsafe.Pointer, error) {
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr:
		if rValue.IsNil() || rValue.Elem().Kind() != reflect.Struct {
			break
		}
		return rValue.Type().Elem(), xunsafe.AsPointer(value), nil
	case reflect.Struct:
		if requirePointer {
			return nil, nil, fmt.Errorf("%w: expected *%T, but had %T", ErrNotStruct, value, value)
		}
		holder := reflect.New(rValue.Type())
		holder.Elem().Set(rValue)
		return rValue.Type(), xunsafe.AsPointer(holder.Interface()), nil
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrNotStruct, value)
}

// New creates a mapper, nil registry is replaced with default one
func New(registry *conv.Registry, opts ...Option) *Mapper {
	if registry == nil {
		registry = conv.NewRegistry()
	}
	ret := &Mapper{registry: registry}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.introspector == nil {
		ret.introspector = NewIntrospector(registry)
	}
	return ret
}
