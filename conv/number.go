package conv

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strconv"
	"unicode/utf8"
)

var (
	charType       = reflect.TypeOf(Char(0))
	jsonNumberType = reflect.TypeOf(json.Number(""))
	bigIntType     = reflect.TypeOf(&big.Int{})
	bigFloatType   = reflect.TypeOf(&big.Float{})
)

// NewPrimitive creates a converter for bool, numeric or Char type, it never returns nil:
// values that can not be coerced yield the type zero value
func NewPrimitive(rType reflect.Type) Converter {
	if !IsPrimitive(rType) {
		panic("not a primitive type: " + rType.String())
	}
	return New(rType, func(value interface{}) (interface{}, bool) {
		if value == nil {
			return nil, false
		}
		if reflect.TypeOf(value) == rType {
			return value, true
		}
		rValue, ok := coerceScalar(rType, value)
		if !ok {
			return nil, false
		}
		return rValue.Interface(), true
	})
}

// NewNumber creates a pointer number converter, i.e. *int, *float64, or json.Number, *big.Int, *big.Float
func NewNumber(rType reflect.Type) Converter {
	switch rType {
	case jsonNumberType:
		return New(rType, asJSONNumber)
	case bigIntType:
		return New(rType, asBigInt)
	case bigFloatType:
		return New(rType, asBigFloat)
	}
	if rType.Kind() != reflect.Ptr || !IsPrimitive(rType.Elem()) {
		panic("not a number pointer type: " + rType.String())
	}
	elemType := rType.Elem()
	return New(rType, func(value interface{}) (interface{}, bool) {
		rValue, ok := coerceScalar(elemType, value)
		if !ok {
			return nil, false
		}
		ptr := reflect.New(elemType)
		ptr.Elem().Set(rValue)
		return ptr.Interface(), true
	})
}

// coerceScalar coerces value into primitive destType
func coerceScalar(destType reflect.Type, value interface{}) (reflect.Value, bool) {
	value = indirectValue(value)
	if value == nil {
		return reflect.Value{}, false
	}
	switch destType.Kind() {
	case reflect.Bool:
		if actual, ok := value.(bool); ok {
			return reflect.ValueOf(actual).Convert(destType), true
		}
		text, _ := ToString(value)
		return reflect.ValueOf(ParseBool(text)).Convert(destType), true
	}
	if destType == charType {
		if actual, ok := value.(Char); ok {
			return reflect.ValueOf(actual), true
		}
		text, ok := trimmedString(value)
		if !ok {
			return reflect.Value{}, false
		}
		r, _ := utf8.DecodeRuneInString(text)
		return reflect.ValueOf(Char(r)), true
	}
	if srcValue, ok := numberValue(value); ok {
		return convertNumber(destType, srcValue)
	}
	text, ok := trimmedString(value)
	if !ok {
		return reflect.Value{}, false
	}
	result := reflect.New(destType).Elem()
	switch destType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(text, 10, destType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		result.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(text, 10, destType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		result.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(text, destType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		result.SetFloat(v)
	default:
		return reflect.Value{}, false
	}
	return result, true
}

// numberValue returns numeric kind value for Go numbers, json.Number, *big.Int and *big.Float
func numberValue(value interface{}) (reflect.Value, bool) {
	switch actual := value.(type) {
	case json.Number:
		if v, err := actual.Int64(); err == nil {
			return reflect.ValueOf(v), true
		}
		if v, err := actual.Float64(); err == nil {
			return reflect.ValueOf(v), true
		}
		return reflect.Value{}, false
	case *big.Int:
		switch {
		case actual.IsInt64():
			return reflect.ValueOf(actual.Int64()), true
		case actual.IsUint64():
			return reflect.ValueOf(actual.Uint64()), true
		}
		v, _ := new(big.Float).SetInt(actual).Float64()
		return reflect.ValueOf(v), true
	case *big.Float:
		if actual.IsInt() {
			if v, accuracy := actual.Int64(); accuracy == big.Exact {
				return reflect.ValueOf(v), true
			}
		}
		v, _ := actual.Float64()
		return reflect.ValueOf(v), true
	}
	rValue := reflect.ValueOf(value)
	if isNumberKind(rValue.Kind()) {
		return rValue, true
	}
	return reflect.Value{}, false
}

func convertNumber(destType reflect.Type, srcValue reflect.Value) (reflect.Value, bool) {
	if isUnsignedKind(destType.Kind()) {
		switch {
		case isSignedKind(srcValue.Kind()) && srcValue.Int() < 0:
			return reflect.Value{}, false
		case isFloatKind(srcValue.Kind()) && srcValue.Float() < 0:
			return reflect.Value{}, false
		}
	}
	return srcValue.Convert(destType), true
}

func asJSONNumber(value interface{}) (interface{}, bool) {
	value = indirectValue(value)
	if value == nil {
		return nil, false
	}
	switch actual := value.(type) {
	case *big.Int:
		return json.Number(actual.String()), true
	case *big.Float:
		return json.Number(actual.Text('g', -1)), true
	}
	if isNumberKind(reflect.ValueOf(value).Kind()) {
		text, _ := ToString(value)
		return json.Number(text), true
	}
	text, ok := trimmedString(value)
	if !ok {
		return nil, false
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return nil, false
	}
	return json.Number(text), true
}

func asBigInt(value interface{}) (interface{}, bool) {
	value = indirectValue(value)
	if value == nil {
		return nil, false
	}
	switch actual := value.(type) {
	case *big.Float:
		ret, _ := actual.Int(nil)
		return ret, true
	case json.Number:
		if ret, ok := new(big.Int).SetString(string(actual), 10); ok {
			return ret, true
		}
		f, ok := new(big.Float).SetString(string(actual))
		if !ok {
			return nil, false
		}
		ret, _ := f.Int(nil)
		return ret, true
	}
	rValue := reflect.ValueOf(value)
	switch {
	case isSignedKind(rValue.Kind()):
		return big.NewInt(rValue.Int()), true
	case isUnsignedKind(rValue.Kind()):
		return new(big.Int).SetUint64(rValue.Uint()), true
	case isFloatKind(rValue.Kind()):
		//truncates toward zero, NaN and infinities panic and are recovered as not coercible
		ret, _ := big.NewFloat(rValue.Float()).Int(nil)
		return ret, true
	}
	text, ok := trimmedString(value)
	if !ok {
		return nil, false
	}
	return new(big.Int).SetString(text, 10)
}

func asBigFloat(value interface{}) (interface{}, bool) {
	value = indirectValue(value)
	if value == nil {
		return nil, false
	}
	if actual, ok := value.(*big.Int); ok {
		return new(big.Float).SetInt(actual), true
	}
	rValue := reflect.ValueOf(value)
	switch {
	case isSignedKind(rValue.Kind()):
		return new(big.Float).SetInt64(rValue.Int()), true
	case isUnsignedKind(rValue.Kind()):
		return new(big.Float).SetUint64(rValue.Uint()), true
	case isFloatKind(rValue.Kind()):
		return new(big.Float).SetFloat64(rValue.Float()), true
	}
	text, ok := trimmedString(value)
	if !ok {
		return nil, false
	}
	return new(big.Float).SetString(text)
}

func indirectValue(value interface{}) interface{} {
	for value != nil {
		rValue := reflect.ValueOf(value)
		if rValue.Kind() != reflect.Ptr {
			return value
		}
		switch value.(type) {
		case *big.Int, *big.Float:
			return value
		}
		if rValue.IsNil() {
			return nil
		}
		value = rValue.Elem().Interface()
	}
	return value
}

func isNumberKind(kind reflect.Kind) bool {
	return isSignedKind(kind) || isUnsignedKind(kind) || isFloatKind(kind)
}

func isSignedKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsignedKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatKind(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}
