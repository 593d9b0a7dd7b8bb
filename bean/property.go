package bean

import (
	"reflect"
	"unsafe"

	"github.com/viant/coerce/conv"
	"github.com/viant/xunsafe"
)

// ClassProperty is the name of the read only type identity property every struct exposes
const ClassProperty = "class"

type (
	// Property represents struct property descriptor
	Property struct {
		Name      string
		Field     string
		Type      reflect.Type
		converter conv.Converter
		path      []*xunsafe.Field //embedded holders followed by the field itself
		identity  reflect.Type
	}

	// Properties represents struct properties
	Properties struct {
		Type   reflect.Type
		Items  []*Property
		byName map[string]*Property
	}
)

// Lookup returns property by name or nil
func (p *Properties) Lookup(name string) *Property {
	return p.byName[name]
}

// Names returns property names
func (p *Properties) Names() []string {
	var result = make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		result = append(result, item.Name)
	}
	return result
}

func (p *Properties) add(property *Property) bool {
	if _, ok := p.byName[property.Name]; ok {
		return false
	}
	p.byName[property.Name] = property
	p.Items = append(p.Items, property)
	return true
}

// IsIdentity returns true for the synthetic type identity property
func (p *Property) IsIdentity() bool {
	return p.identity != nil
}

// Writable returns true if property can be set
func (p *Property) Writable() bool {
	return p.identity == nil
}

// Converter returns property specific converter (i.e. tag defined time layout) or nil
func (p *Property) Converter() conv.Converter {
	return p.converter
}

// Value returns property value, nil is returned when an embedded pointer holder is nil
func (p *Property) Value(structPtr unsafe.Pointer) interface{} {
	if p.identity != nil {
		return p.identity
	}
	holder := p.holder(structPtr, false)
	if holder == nil {
		return nil
	}
	return p.field().Value(holder)
}

// SetValue sets property value, nil embedded pointer holders are allocated
func (p *Property) SetValue(structPtr unsafe.Pointer, value interface{}) {
	holder := p.holder(structPtr, true)
	fieldValue := reflect.NewAt(p.Type, p.field().Pointer(holder)).Elem()
	if value == nil {
		fieldValue.Set(reflect.Zero(p.Type))
		return
	}
	fieldValue.Set(reflect.ValueOf(value))
}

func (p *Property) field() *xunsafe.Field {
	return p.path[len(p.path)-1]
}

func (p *Property) holder(structPtr unsafe.Pointer, allocate bool) unsafe.Pointer {
	ptr := structPtr
	for _, holder := range p.path[:len(p.path)-1] {
		fieldPtr := holder.Pointer(ptr)
		if holder.Type.Kind() == reflect.Ptr {
			if xunsafe.DerefPointer(fieldPtr) == nil {
				if !allocate {
					return nil
				}
				reflect.NewAt(holder.Type, fieldPtr).Elem().Set(reflect.New(holder.Type.Elem()))
			}
			fieldPtr = xunsafe.DerefPointer(fieldPtr)
		}
		ptr = fieldPtr
	}
	return ptr
}
