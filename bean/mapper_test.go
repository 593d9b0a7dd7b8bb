package bean

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/coerce/conv"
)

type (
	Person struct {
		Name string
		Age  int
	}

	Employee struct {
		Person
		Title  string
		Salary *float64
	}

	Manager struct {
		*Person
		Level int
	}

	User struct {
		ID       int
		UserName string
		Active   bool
		Score    *float64
		Born     time.Time `format:"timeLayout=2006-01-02"`
		Secret   string    `format:"-"`
		Alias    string    `format:"name=nick"`
		internal string
	}

	Profile struct {
		Name string
		Tags map[string]int
	}

	Order struct {
		ID     int
		Status Status
		Buyer  Person
		Seller *Person
		Items  []int
	}

	Status int

	Event struct {
		At   time.Time
		Seen *time.Time
	}
)

func newTestMapper() *Mapper {
	return New(conv.NewRegistry(conv.WithLocation(time.UTC)))
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestIntrospector_Properties(t *testing.T) {
	introspector := NewIntrospector(nil)
	var testCases = []struct {
		description string
		rType       reflect.Type
		expect      []string
	}{
		{description: "tagged fields", rType: reflect.TypeOf(User{}), expect: []string{"id", "userName", "active", "score", "born", "nick", "class"}},
		{description: "outer fields first", rType: reflect.TypeOf(&Employee{}), expect: []string{"title", "salary", "name", "age", "class"}},
		{description: "embedded pointer", rType: reflect.TypeOf(Manager{}), expect: []string{"level", "name", "age", "class"}},
	}
	for _, testCase := range testCases {
		properties, err := introspector.Properties(testCase.rType)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, properties.Names(), testCase.description)
	}
	_, err := introspector.Properties(reflect.TypeOf(1))
	assert.True(t, errors.Is(err, ErrNotStruct))
}

func TestIntrospector_Shadowing(t *testing.T) {
	type Base struct{ Name string }
	type Derived struct {
		Base
		Name string
	}
	mapper := newTestMapper()
	derived := &Derived{}
	_, err := mapper.Fill(derived, MapProvider(map[string]interface{}{"name": "outer"}))
	require.NoError(t, err)
	assert.Equal(t, "outer", derived.Name)
	assert.Equal(t, "", derived.Base.Name)
}

func TestIntrospector_Concurrent(t *testing.T) {
	introspector := NewIntrospector(nil)
	var results = make([]*Properties, 16)
	wg := sync.WaitGroup{}
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = introspector.Properties(reflect.TypeOf(User{}))
		}(i)
	}
	wg.Wait()
	for _, result := range results {
		assert.Same(t, results[0], result)
	}
}

func TestMapper_MapToObject(t *testing.T) {
	mapper := newTestMapper()
	source := map[string]interface{}{
		"id":        " 7 ",
		"user_name": "bob",
		"active":    "yes",
		"score":     "1.5",
		"born":      "2013-05-01",
		"nick":      "b",
		"secret":    "x",
	}
	actual, err := mapper.MapToObject(source, reflect.TypeOf(User{}), true)
	require.NoError(t, err)
	expect := &User{ID: 7, UserName: "bob", Active: true, Score: floatPtr(1.5), Born: time.Date(2013, 5, 1, 0, 0, 0, 0, time.UTC), Alias: "b"}
	assert.Equal(t, expect, actual)

	actual, err = mapper.MapToObject(source, reflect.TypeOf(&User{}), false)
	require.NoError(t, err)
	assert.Equal(t, "", actual.(*User).UserName, "snake key is not matched without camel case rewrite")

	_, err = mapper.MapToObject(source, reflect.TypeOf(""), false)
	assert.True(t, errors.Is(err, ErrNotStruct))
}

func TestMapTo(t *testing.T) {
	mapper := newTestMapper()
	order, err := MapTo[Order](mapper, map[string]interface{}{
		"id":     1,
		"status": "3",
		"buyer":  map[string]interface{}{"name": "ann"},
		"seller": map[interface{}]interface{}{"age": "40"},
		"items":  []interface{}{"1", 2.0, nil},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, &Order{ID: 1, Status: 3, Buyer: Person{Name: "ann"}, Seller: &Person{Age: 40}, Items: []int{1, 2, 0}}, order)
}

func TestMapper_MapToObjectIgnoreCase(t *testing.T) {
	mapper := newTestMapper()
	actual, err := mapper.MapToObjectIgnoreCase(map[string]string{"USERNAME": "x", "Id": "5"}, reflect.TypeOf(User{}))
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 5, UserName: "x"}, actual)
}

func TestMapper_Fill(t *testing.T) {
	mapper := newTestMapper()
	t.Run("nil values are skipped", func(t *testing.T) {
		user := &User{UserName: "keep", ID: 3}
		_, err := mapper.Fill(user, ValueProviderFunc(func(name string) interface{} {
			if name == "active" {
				return true
			}
			return nil
		}))
		require.NoError(t, err)
		assert.Equal(t, &User{UserName: "keep", ID: 3, Active: true}, user)
	})

	t.Run("failure leaves target untouched", func(t *testing.T) {
		profile := &Profile{Name: "keep"}
		_, err := mapper.FillWithMap(map[string]interface{}{"name": "new", "tags": "x"}, profile, false)
		require.Error(t, err)
		propertyErr := &PropertyError{}
		require.True(t, errors.As(err, &propertyErr))
		assert.Equal(t, "tags", propertyErr.Target)
		assert.True(t, errors.Is(err, conv.ErrNoConverter))
		assert.Equal(t, &Profile{Name: "keep"}, profile)
	})

	t.Run("embedded pointer is allocated", func(t *testing.T) {
		manager := &Manager{}
		_, err := mapper.Fill(manager, MapProvider(map[string]interface{}{"name": "boss", "level": 2}))
		require.NoError(t, err)
		require.NotNil(t, manager.Person)
		assert.Equal(t, "boss", manager.Name)
		assert.Equal(t, 2, manager.Level)
	})

	t.Run("struct value target", func(t *testing.T) {
		_, err := mapper.Fill(User{}, MapProvider(map[string]interface{}{}))
		assert.True(t, errors.Is(err, ErrNotStruct))
	})
}

func TestJSONProvider(t *testing.T) {
	mapper := newTestMapper()
	provider, err := JSONProvider([]byte(`{"id": 3, "userName": "ann", "active": true, "score": 2.5, "extra": {"a": 1}}`))
	require.NoError(t, err)
	user := &User{}
	_, err = mapper.Fill(user, provider)
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 3, UserName: "ann", Active: true, Score: floatPtr(2.5)}, user)

	_, err = JSONProvider([]byte(`{"id":`))
	assert.Error(t, err)

	provider, err = JSONProvider([]byte(`{"at": 1367411445000, "seen": 1367411445000}`))
	require.NoError(t, err)
	event := &Event{}
	_, err = mapper.Fill(event, provider)
	require.NoError(t, err)
	expect := time.Date(2013, 5, 1, 12, 30, 45, 0, time.UTC)
	assert.True(t, expect.Equal(event.At), event.At.String())
	require.NotNil(t, event.Seen)
	assert.True(t, expect.Equal(*event.Seen))
}

func TestMapper_ObjectToMap(t *testing.T) {
	mapper := newTestMapper()
	user := User{ID: 1, UserName: "bob", Active: true, Born: time.Date(2013, 5, 1, 0, 0, 0, 0, time.UTC), Alias: "b", Secret: "s"}

	actual, err := mapper.ObjectToMap(user, true, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": 1, "user_name": "bob", "active": true, "born": user.Born, "nick": "b"}, actual)

	actual, err = mapper.ObjectToMap(&user, false, false)
	require.NoError(t, err)
	assert.NotContains(t, actual, ClassProperty)
	assert.Contains(t, actual, "score")
	assert.Nil(t, actual["score"])

	actual, err = mapper.ObjectToMap(Manager{Level: 1}, false, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"level": 1}, actual)

	actual, err = mapper.ObjectToMap(nil, false, false)
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestMapper_RoundTrip(t *testing.T) {
	mapper := newTestMapper()
	var testCases = []struct {
		description string
		source      interface{}
	}{
		{description: "flat", source: &User{ID: 1, UserName: "bob", Active: true, Score: floatPtr(3), Born: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), Alias: "b"}},
		{description: "embedded", source: &Employee{Person: Person{Name: "ann", Age: 30}, Title: "dev", Salary: floatPtr(10)}},
		{description: "zero", source: &Person{}},
	}
	for _, testCase := range testCases {
		aMap, err := mapper.ObjectToMap(testCase.source, false, false)
		require.NoError(t, err, testCase.description)
		actual, err := mapper.MapToObject(aMap, reflect.TypeOf(testCase.source), false)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.source, actual, testCase.description)
	}
}

func TestCase(t *testing.T) {
	var testCases = []struct {
		input string
		camel string
		snake string
	}{
		{input: "user_name", camel: "userName", snake: "user_name"},
		{input: "userName", camel: "userName", snake: "user_name"},
		{input: "id", camel: "id", snake: "id"},
		{input: "USER_ID", camel: "userId", snake: "user_id"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.camel, ToCamel(testCase.input), testCase.input)
		assert.Equal(t, testCase.snake, ToSnakeCase(testCase.input), testCase.input)
	}
	assert.Equal(t, map[interface{}]interface{}{1: "a", "userName": "b"}, ToCamelCase(map[interface{}]interface{}{1: "a", "user_name": "b"}))
	assert.Equal(t, "userName", ToLowerCamel("UserName"))
	assert.Equal(t, "id", ToLowerCamel("ID"))
}

func TestMapper_FillWithMapIgnoreCase(t *testing.T) {
	mapper := newTestMapper()
	user := &User{Active: true}
	_, err := mapper.FillWithMapIgnoreCase(map[string]interface{}{"USERNAME": "x", "ID": 4}, user)
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 4, UserName: "x", Active: true}, user)
}

func TestMapper_ToObject(t *testing.T) {
	mapper := newTestMapper()
	actual, err := mapper.ToObject(reflect.TypeOf(Person{}), ValueProviderFunc(func(name string) interface{} {
		if name == "age" {
			return "21"
		}
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, &Person{Age: 21}, actual)

	_, err = mapper.ToObject(reflect.TypeOf(1), MapProvider(nil))
	assert.True(t, errors.Is(err, ErrNotStruct))
}

func TestMapper_Value(t *testing.T) {
	mapper := newTestMapper()
	employee := Employee{Person: Person{Name: "ann"}, Title: "dev"}
	var testCases = []struct {
		description string
		source      interface{}
		name        string
		expect      interface{}
	}{
		{description: "struct property", source: employee, name: "title", expect: "dev"},
		{description: "promoted property", source: &employee, name: "name", expect: "ann"},
		{description: "tag named property", source: User{Alias: "b"}, name: "nick", expect: "b"},
		{description: "map key", source: map[string]int{"a": 1}, name: "a", expect: 1},
		{description: "nil embedded holder", source: Manager{}, name: "name", expect: nil},
		{description: "nil source", source: nil, name: "x", expect: nil},
	}
	for _, testCase := range testCases {
		actual, err := mapper.Value(testCase.source, testCase.name)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
	_, err := mapper.Value(employee, "unknown")
	assert.True(t, errors.Is(err, ErrUnknownProperty))
}
