package bean

import (
	"fmt"
	"reflect"

	"github.com/viant/coerce/conv"
)

type (
	copyOptions struct {
		editable   reflect.Type
		ignoreNull bool
		ignored    map[string]bool
	}

	// CopyOption represents copy properties option
	CopyOption func(o *copyOptions)
)

// WithEditable restricts copied properties to these reachable via editable struct type, target has to be
// editable type instance or embed it
func WithEditable(editable reflect.Type) CopyOption {
	return func(o *copyOptions) {
		o.editable = editable
	}
}

// WithIgnoreNull returns option skipping nil source values
func WithIgnoreNull(ignoreNull bool) CopyOption {
	return func(o *copyOptions) {
		o.ignoreNull = ignoreNull
	}
}

// WithIgnoreProperties returns option excluding named target properties
func WithIgnoreProperties(names ...string) CopyOption {
	return func(o *copyOptions) {
		if o.ignored == nil {
			o.ignored = make(map[string]bool, len(names))
		}
		for _, name := range names {
			o.ignored[name] = true
		}
	}
}

// CopyProperties copies same named source properties with assignable types into target struct pointer.
// Pointers to primitives are copied by value so target never shares them with source; other pointers,
// maps and slices are shared. Any property failure aborts the copy leaving target untouched.
func (m *Mapper) CopyProperties(source, target interface{}, opts ...CopyOption) error {
	options := &copyOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if conv.IsNil(source) {
		return nil
	}
	targetType, targetPtr, err := structPointer(target, true)
	if err != nil {
		return err
	}
	sourceType, sourcePtr, err := structPointer(source, false)
	if err != nil {
		return err
	}
	targetProperties, err := m.introspector.Properties(targetType)
	if err != nil {
		return err
	}
	sourceProperties, err := m.introspector.Properties(sourceType)
	if err != nil {
		return err
	}
	editable := targetProperties
	if options.editable != nil {
		if editable, err = m.editableProperties(targetType, options.editable); err != nil {
			return err
		}
	}
	var assignments = make([]assignment, 0, len(editable.Items))
	for _, item := range editable.Items {
		if !item.Writable() || options.ignored[item.Name] {
			continue
		}
		targetProperty := targetProperties.Lookup(item.Name)
		sourceProperty := sourceProperties.Lookup(item.Name)
		if targetProperty == nil || !targetProperty.Writable() || sourceProperty == nil || sourceProperty.IsIdentity() {
			continue
		}
		if !isAssignable(sourceProperty.Type, targetProperty.Type) {
			continue
		}
		value := sourceProperty.Value(sourcePtr)
		if conv.IsNil(value) && options.ignoreNull {
			continue
		}
		adapted, err := adapt(value, targetProperty.Type)
		if err != nil {
			return &PropertyError{Source: sourceProperty.Name, Target: targetProperty.Name, Err: err}
		}
		assignments = append(assignments, assignment{property: targetProperty, value: adapted})
	}
	for _, item := range assignments {
		item.property.SetValue(targetPtr, item.value)
	}
	return nil
}

func (m *Mapper) editableProperties(targetType, editable reflect.Type) (*Properties, error) {
	editableStruct := structType(editable)
	if editableStruct == nil || !embeds(targetType, editableStruct, map[reflect.Type]bool{}) {
		return nil, fmt.Errorf("%w: %v is not an instance of %v", ErrNotEditable, targetType, editable)
	}
	return m.introspector.Properties(editableStruct)
}

// embeds returns true if rType is candidate or embeds it at any depth
func embeds(rType, candidate reflect.Type, visited map[reflect.Type]bool) bool {
	if rType == candidate {
		return true
	}
	if visited[rType] {
		return false
	}
	visited[rType] = true
	for i := 0; i < rType.NumField(); i++ {
		field := rType.Field(i)
		if !field.Anonymous {
			continue
		}
		if embedded := structType(field.Type); embedded != nil && embeds(embedded, candidate, visited) {
			return true
		}
	}
	return false
}

// isAssignable returns true for assignable types or primitive and its pointer in both directions
func isAssignable(source, target reflect.Type) bool {
	if source.AssignableTo(target) {
		return true
	}
	if source.Kind() == reflect.Ptr && source.Elem() == target && conv.IsPrimitive(target) {
		return true
	}
	return target.Kind() == reflect.Ptr && target.Elem() == source && conv.IsPrimitive(source)
}

func adapt(value interface{}, target reflect.Type) (interface{}, error) {
	if conv.IsNil(value) {
		if conv.IsPrimitive(target) {
			return nil, ErrNilPrimitive
		}
		return nil, nil
	}
	rValue := reflect.ValueOf(value)
	switch {
	case rValue.Kind() == reflect.Ptr && conv.IsPrimitive(rValue.Type().Elem()) && target.Kind() == reflect.Ptr:
		ptr := reflect.New(rValue.Type().Elem())
		ptr.Elem().Set(rValue.Elem())
		return ptr.Interface(), nil
	case rValue.Type().AssignableTo(target):
		return value, nil
	case rValue.Kind() == reflect.Ptr:
		return rValue.Elem().Interface(), nil
	default:
		ptr := reflect.New(rValue.Type())
		ptr.Elem().Set(rValue)
		return ptr.Interface(), nil
	}
}
