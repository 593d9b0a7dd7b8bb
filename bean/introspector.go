package bean

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/viant/coerce/conv"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type (
	// Introspector returns struct type properties
	Introspector interface {
		Properties(rType reflect.Type) (*Properties, error)
	}

	// introspector derives properties from struct fields and caches them per type
	introspector struct {
		registry *conv.Registry
		cache    sync.Map // map[reflect.Type]*Properties
	}

	embedded struct {
		rType reflect.Type
		path  []*xunsafe.Field
	}
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf(&time.Time{})
)

// Properties returns properties for struct or struct pointer type
func (i *introspector) Properties(rType reflect.Type) (*Properties, error) {
	if rType == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotStruct)
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if rType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, rType)
	}
	if cached, ok := i.cache.Load(rType); ok {
		return cached.(*Properties), nil
	}
	properties, err := i.introspect(rType)
	if err != nil {
		return nil, err
	}
	actual, _ := i.cache.LoadOrStore(rType, properties)
	return actual.(*Properties), nil
}

func (i *introspector) introspect(rType reflect.Type) (*Properties, error) {
	ret := &Properties{Type: rType, byName: map[string]*Property{}}
	//breadth first, so that outer fields shadow promoted ones
	var queue = []*embedded{{rType: rType}}
	visited := map[reflect.Type]bool{}
	for len(queue) > 0 {
		var next []*embedded
		for _, holder := range queue {
			if visited[holder.rType] {
				continue
			}
			visited[holder.rType] = true
			for j := 0; j < holder.rType.NumField(); j++ {
				structField := holder.rType.Field(j)
				xField := xunsafe.NewField(structField)
				path := append(append([]*xunsafe.Field{}, holder.path...), xField)
				if structField.Anonymous {
					if embeddedType := structType(structField.Type); embeddedType != nil {
						next = append(next, &embedded{rType: embeddedType, path: path})
						continue
					}
				}
				if !structField.IsExported() {
					continue
				}
				property, err := i.newProperty(structField, path)
				if err != nil {
					return nil, fmt.Errorf("invalid %v.%v tag: %w", rType.Name(), structField.Name, err)
				}
				if property != nil {
					ret.add(property)
				}
			}
		}
		queue = next
	}
	ret.add(&Property{Name: ClassProperty, Type: conv.TypeType, identity: rType})
	return ret, nil
}

func (i *introspector) newProperty(field reflect.StructField, path []*xunsafe.Field) (*Property, error) {
	if field.Tag.Get(format.TagName) == "-" {
		return nil, nil
	}
	tag, err := format.Parse(field.Tag)
	if err != nil {
		return nil, err
	}
	if tag.Ignore {
		return nil, nil
	}
	ret := &Property{Name: tag.Name, Field: field.Name, Type: field.Type, path: path}
	if ret.Name == "" {
		ret.Name = ToLowerCamel(field.Name)
	}
	if tag.TimeLayout != "" {
		opts := append(i.registry.Options(), conv.WithTimeLayout(tag.TimeLayout))
		switch field.Type {
		case timeType:
			ret.converter = conv.NewDate(opts...)
		case timePtrType:
			ret.converter = conv.NewCalendar(opts...)
		}
	}
	return ret, nil
}

func structType(rType reflect.Type) reflect.Type {
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if rType.Kind() == reflect.Struct {
		return rType
	}
	return nil
}

// ToLowerCamel returns lower camel form of a field name, i.e. UserName -> userName
func ToLowerCamel(name string) string {
	return text.DetectCaseFormat(name).Format(name, text.CaseFormatLowerCamel)
}

// NewIntrospector creates caching field based introspector, registry supplies options for tag defined converters
func NewIntrospector(registry *conv.Registry) Introspector {
	if registry == nil {
		registry = conv.NewRegistry()
	}
	return &introspector{registry: registry}
}
