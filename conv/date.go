package conv

import (
	"reflect"
	"time"

	"github.com/viant/coerce/format/date"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf(&time.Time{})
)

// NewDate creates time.Time converter, numbers (including json.Number and big numbers) are interpreted as epoch milliseconds
func NewDate(opts ...Option) Converter {
	options := newOptions(opts)
	return New(timeType, func(value interface{}) (interface{}, bool) {
		ts, ok := options.asTime(value)
		if !ok {
			return nil, false
		}
		return ts, true
	})
}

// NewCalendar creates *time.Time converter, result is expressed in the option location
func NewCalendar(opts ...Option) Converter {
	options := newOptions(opts)
	return New(timePtrType, func(value interface{}) (interface{}, bool) {
		ts, ok := options.asTime(value)
		if !ok {
			return nil, false
		}
		ts = ts.In(options.location)
		return &ts, true
	})
}

func (o *options) asTime(value interface{}) (time.Time, bool) {
	switch actual := value.(type) {
	case time.Time:
		return actual, true
	case *time.Time:
		if actual == nil {
			return time.Time{}, false
		}
		return *actual, true
	}
	if number, ok := numberValue(indirectValue(value)); ok {
		var millis int64
		switch {
		case isSignedKind(number.Kind()):
			millis = number.Int()
		case isUnsignedKind(number.Kind()):
			millis = int64(number.Uint())
		default:
			millis = int64(number.Float())
		}
		return time.UnixMilli(millis).In(o.location), true
	}
	text, ok := trimmedString(value)
	if !ok {
		return time.Time{}, false
	}
	var ts time.Time
	var err error
	switch {
	case o.timeLayout != "":
		ts, err = time.ParseInLocation(o.timeLayout, text, o.location)
	case o.datePattern != "":
		ts, err = date.ParsePattern(text, o.datePattern, o.location)
	default:
		ts, err = date.Parse(text, o.location)
	}
	return ts, err == nil
}
