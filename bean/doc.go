// Package bean maps flat key/value sources onto struct properties and back.
//
// Properties are derived from exported struct fields (including fields promoted from embedded structs)
// and named after the `format` tag, falling back to the lower camel form of the field name.
// Values are coerced with conv.Registry; a fill or copy either applies every property or none.
//
//	mapper := bean.New(conv.NewRegistry())
//	user, err := bean.MapTo[User](mapper, map[string]interface{}{"user_name": "Bob", "age": "42"}, true)
package bean
