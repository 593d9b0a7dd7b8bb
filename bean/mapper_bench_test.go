package bean

import (
	"reflect"
	"testing"
)

var benchSource = map[string]interface{}{
	"id":        "7",
	"user_name": "bob",
	"active":    "yes",
	"score":     1.5,
	"born":      "2013-05-01",
}

func BenchmarkMapper_MapToObject(b *testing.B) {
	mapper := newTestMapper()
	rType := reflect.TypeOf(User{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := mapper.MapToObject(benchSource, rType, true); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMapper_CopyProperties(b *testing.B) {
	mapper := newTestMapper()
	source := &Employee{Person: Person{Name: "ann", Age: 30}, Title: "dev"}
	target := &Employee{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := mapper.CopyProperties(source, target); err != nil {
			b.Fatal(err)
		}
	}
}
