package script

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// file library_json.go implements the JSON standard-library group: parse
// and stringify. Parsing goes through github.com/tidwall/gjson's result
// tree rather than encoding/json's generic interface{} decode, since gjson
// preserves object key order without an intermediate ordered-map shim;
// gjson.Valid checks the text before gjson.Parse builds the tree. gjsonToValue is
// reused by library_misc.go's fetch for the same reason: a JSON response
// body decoded through encoding/json's map[string]any would lose key order.

func init() {
	registerBuiltin("jsonParse", false, biJSONParse)
	registerBuiltin("jsonStringify", false, biJSONStringify)
}

func biJSONParse(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	if !gjson.Valid(s) {
		host.log("jsonParse: invalid JSON")
		return NewNull(), nil
	}
	return gjsonToValue(gjson.Parse(s)), nil
}

func gjsonToValue(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return NewNull()
	case gjson.True:
		return NewBool(true)
	case gjson.False:
		return NewBool(false)
	case gjson.Number:
		return NewNumber(r.Num)
	case gjson.String:
		return NewString(r.Str)
	default:
		if r.IsArray() {
			var items []Value
			r.ForEach(func(_, v gjson.Result) bool {
				items = append(items, gjsonToValue(v))
				return true
			})
			return NewArray(items)
		}
		if r.IsObject() {
			out := NewObject()
			r.ForEach(func(k, v gjson.Result) bool {
				out.Obj().Set(k.Str, gjsonToValue(v))
				return true
			})
			return out
		}
		return NewNull()
	}
}

// biJSONStringify renders v as JSON text with object keys sorted for
// determinism, per the data model's contract; an optional `space` argument
// (Number of spaces, or a String used literally as the indent unit)
// pretty-prints the same way encoding/json.MarshalIndent would.
func biJSONStringify(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	data := toJSONInterface(v)

	space := arg(args, 1)
	var indent string
	switch space.Type() {
	case Number:
		n := int(space.Num())
		if n > 0 {
			indent = stringsRepeat(" ", n)
		}
	case String:
		indent = space.Str()
	}

	var out []byte
	var err error
	if indent != "" {
		out, err = json.MarshalIndent(data, "", indent)
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		host.log(err.Error())
		return NewNull(), nil
	}
	return NewString(string(out)), nil
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}
