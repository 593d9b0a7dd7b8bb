package bean

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Visitor iterates (key, element) pairs; returning false from the callback stops iteration,
// returning an error stops iteration with that error.
type Visitor[K comparable, E any] func(func(key K, element E) (bool, error)) error

// EntryVisitorOf creates a visitor over any map kind, string kinded keys are passed as string
func EntryVisitorOf(source interface{}) (Visitor[interface{}, interface{}], error) {
	switch actual := source.(type) {
	case map[string]interface{}:
		return typedEntryVisitorOf(actual), nil
	case map[interface{}]interface{}:
		return typedEntryVisitorOf(actual), nil
	case map[string]string:
		return typedEntryVisitorOf(actual), nil
	}
	rValue := reflect.ValueOf(source)
	if rValue.Kind() == reflect.Ptr && !rValue.IsNil() {
		rValue = rValue.Elem()
	}
	if rValue.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", source)
	}
	return func(f func(key interface{}, element interface{}) (bool, error)) error {
		iter := rValue.MapRange()
		for iter.Next() {
			var key interface{}
			if iter.Key().Kind() == reflect.String {
				key = iter.Key().String()
			} else {
				key = iter.Key().Interface()
			}
			continueVisit, err := f(key, iter.Value().Interface())
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}, nil
}

func typedEntryVisitorOf[K comparable, E any](aMap map[K]E) Visitor[interface{}, interface{}] {
	return func(f func(key interface{}, element interface{}) (bool, error)) error {
		for k, e := range aMap {
			continueVisit, err := f(k, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}

// PropertyVisitorOf creates a visitor over readable struct property values, type identity property is skipped
func PropertyVisitorOf(properties *Properties, structPtr unsafe.Pointer) Visitor[*Property, interface{}] {
	return func(f func(key *Property, element interface{}) (bool, error)) error {
		for _, property := range properties.Items {
			if property.IsIdentity() {
				continue
			}
			continueVisit, err := f(property, property.Value(structPtr))
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}
