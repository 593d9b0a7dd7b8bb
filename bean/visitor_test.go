package bean

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/xunsafe"
)

type label string

func TestEntryVisitorOf(t *testing.T) {
	var testCases = []struct {
		description string
		source      interface{}
		expect      map[interface{}]interface{}
	}{
		{description: "string map", source: map[string]interface{}{"a": 1}, expect: map[interface{}]interface{}{"a": 1}},
		{description: "string values", source: map[string]string{"a": "b"}, expect: map[interface{}]interface{}{"a": "b"}},
		{description: "named keys", source: map[label]int{"a": 1}, expect: map[interface{}]interface{}{"a": 1}},
		{description: "float keys", source: map[float64]float64{1: 2}, expect: map[interface{}]interface{}{1.0: 2.0}},
		{description: "map pointer", source: &map[string]bool{"x": true}, expect: map[interface{}]interface{}{"x": true}},
	}
	for _, testCase := range testCases {
		visit, err := EntryVisitorOf(testCase.source)
		require.NoError(t, err, testCase.description)
		actual := map[interface{}]interface{}{}
		require.NoError(t, visit(func(key interface{}, element interface{}) (bool, error) {
			actual[key] = element
			return true, nil
		}), testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
	_, err := EntryVisitorOf([]int{1})
	assert.Error(t, err)
}

func TestPropertyVisitorOf(t *testing.T) {
	introspector := NewIntrospector(nil)
	properties, err := introspector.Properties(reflect.TypeOf(Person{}))
	require.NoError(t, err)
	person := &Person{Name: "ann", Age: 3}
	visit := PropertyVisitorOf(properties, xunsafe.AsPointer(person))

	var names []string
	require.NoError(t, visit(func(property *Property, value interface{}) (bool, error) {
		names = append(names, property.Name)
		return false, nil
	}))
	assert.Equal(t, []string{"name"}, names, "visit stops on false")

	stop := errors.New("stop")
	err = visit(func(property *Property, value interface{}) (bool, error) {
		return true, stop
	})
	assert.Same(t, stop, err)
}
