package script

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// ValueType is the tag of a runtime Value.
type ValueType int

const (
	Null ValueType = iota
	Boolean
	Number
	String
	Datetime
	Array
	Object
	Regex
	Func
)

func (t ValueType) String() string {
	switch t {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Datetime:
		return "datetime"
	case Array:
		return "array"
	case Object:
		return "object"
	case Regex:
		return "regex"
	case Func:
		return "function"
	default:
		return "unknown"
	}
}

// RegexHandle is the opaque host regex handle a Value of type Regex wraps.
// It is satisfied by *scriptRegex (regex.go) so the core Value type does
// not need to import a specific regex engine.
type RegexHandle interface {
	Source() string
}

// HostRef is the minimal view of the host a Function Value's callable needs.
// It is a narrow alias of Host to avoid an import cycle between value.go and
// host.go; both are declared in this package so they're the same type.
type HostRef = *Host

// Callable is a built-in or user-defined function body.
type Callable func(args []Value, host HostRef) (Value, error)

// FuncValue is the payload of a Func-typed Value.
type FuncValue struct {
	Name    string
	Async   bool
	Call    Callable
}

// Value is the tagged runtime value variant described in the data model:
// Null, Boolean, Number, String, Datetime, Array, Object, Regex, and
// Function. The zero Value is Null.
type Value struct {
	t   ValueType
	b   bool
	n   float64
	s   string
	dt  time.Time
	arr *[]Value
	obj *orderedObject
	re  RegexHandle
	fn  *FuncValue
}

// NewNull returns the Null value.
func NewNull() Value { return Value{t: Null} }

// NewBool returns a Boolean value.
func NewBool(b bool) Value { return Value{t: Boolean, b: b} }

// NewNumber returns a Number value.
func NewNumber(n float64) Value { return Value{t: Number, n: n} }

// NewString returns a String value.
func NewString(s string) Value { return Value{t: String, s: s} }

// NewDatetime returns a Datetime value.
func NewDatetime(t time.Time) Value { return Value{t: Datetime, dt: t} }

// NewArray returns an Array value wrapping the given slice. The slice is
// shared, not copied, so callers that want an independent array should
// arrayCopy it first.
func NewArray(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{t: Array, arr: &items}
}

// NewObject returns an empty, insertion-order-preserving Object value.
func NewObject() Value {
	return Value{t: Object, obj: newOrderedObject()}
}

// NewRegex returns a Regex value wrapping the given opaque handle.
func NewRegex(h RegexHandle) Value {
	return Value{t: Regex, re: h}
}

// NewFunc returns a Function value.
func NewFunc(fv *FuncValue) Value {
	return Value{t: Func, fn: fv}
}

// Type returns the tag of v.
func (v Value) Type() ValueType { return v.t }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.t == Null }

// Bool returns the raw bool payload; only meaningful when Type() == Boolean.
func (v Value) Bool() bool { return v.b }

// Num returns the raw float64 payload; only meaningful when Type() == Number.
func (v Value) Num() float64 { return v.n }

// Str returns the raw string payload; only meaningful when Type() == String.
func (v Value) Str() string { return v.s }

// Time returns the raw time payload; only meaningful when Type() == Datetime.
func (v Value) Time() time.Time { return v.dt }

// ArraySlice returns the underlying slice for an Array value. Mutating the
// returned slice's elements (but not its length, unless reassigned via
// SetArraySlice) is observed by every alias of this Value, matching the
// "mutable, heterogeneous" array semantics in the data model.
func (v Value) ArraySlice() []Value {
	if v.arr == nil {
		return nil
	}
	return *v.arr
}

// SetArraySlice replaces the backing slice of an Array value in place, so
// that every alias observes the new contents.
func (v Value) SetArraySlice(items []Value) {
	if v.arr == nil {
		return
	}
	*v.arr = items
}

// Obj returns the underlying ordered map for an Object value.
func (v Value) Obj() *orderedObject { return v.obj }

// RegexHandle returns the opaque regex handle for a Regex value.
func (v Value) RegexHandle() RegexHandle { return v.re }

// Func returns the function payload for a Func value.
func (v Value) Func() *FuncValue { return v.fn }

// typeOf returns the type name string used by error messages and by the
// exported TypeOf.
func typeOf(v Value) string { return v.t.String() }

// truthy implements the Value-to-boolean coercion rules from the data model:
// Null is false, Boolean is itself, Number is "nonzero and non-NaN", String
// is "nonempty", everything else is true.
func truthy(v Value) bool {
	switch v.t {
	case Null:
		return false
	case Boolean:
		return v.b
	case Number:
		return v.n != 0 && !math.IsNaN(v.n)
	case String:
		return v.s != ""
	default:
		return true
	}
}

// equal implements the structural/identity equality rules from the data
// model: structural for Null/Bool/Number/String, same-instant for Datetime,
// identity for Array/Object/Regex/Function.
func equal(a, b Value) bool {
	if a.t != b.t {
		return false
	}
	switch a.t {
	case Null:
		return true
	case Boolean:
		return a.b == b.b
	case Number:
		// NaN is not equal to itself, matching strict equality semantics.
		return a.n == b.n
	case String:
		return a.s == b.s
	case Datetime:
		return a.dt.Equal(b.dt)
	case Array:
		return a.arr == b.arr
	case Object:
		return a.obj == b.obj
	case Regex:
		return a.re == b.re
	case Func:
		return a.fn == b.fn
	default:
		return false
	}
}

// typeOrder gives the sort rank used when comparing values of different
// types: Null sorts greatest (last), otherwise types are grouped in the
// order Datetime, Number, String, everything else.
func typeOrder(t ValueType) int {
	switch t {
	case Datetime:
		return 0
	case Number:
		return 1
	case String:
		return 2
	case Boolean:
		return 3
	case Null:
		return 100
	default:
		return 50
	}
}

// compare implements the ordering rules from the data model: Null sorts
// greatest, Datetime compares by instant, Number and String by natural
// order, and mixed-type ordering is stable (keyed by typeOrder) but not a
// total order over arbitrary types.
func compare(a, b Value) int {
	if a.t == b.t {
		switch a.t {
		case Null:
			return 0
		case Boolean:
			if a.b == b.b {
				return 0
			}
			if !a.b {
				return -1
			}
			return 1
		case Number:
			switch {
			case a.n < b.n:
				return -1
			case a.n > b.n:
				return 1
			default:
				return 0
			}
		case String:
			switch {
			case a.s < b.s:
				return -1
			case a.s > b.s:
				return 1
			default:
				return 0
			}
		case Datetime:
			switch {
			case a.dt.Before(b.dt):
				return -1
			case a.dt.After(b.dt):
				return 1
			default:
				return 0
			}
		default:
			return 0
		}
	}

	ra, rb := typeOrder(a.t), typeOrder(b.t)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// stringify produces the display form of v described in the data model:
// numbers via shortest round-trip formatting, datetimes via ISO-8601
// extended, strings and booleans literally, and arrays/objects via JSON with
// sorted object keys.
func stringify(v Value) string {
	switch v.t {
	case Null:
		return "null"
	case Boolean:
		if v.b {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(v.n)
	case String:
		return v.s
	case Datetime:
		return v.dt.UTC().Format(time.RFC3339Nano)
	case Array, Object:
		data, err := json.Marshal(toJSONInterface(v))
		if err != nil {
			return ""
		}
		return string(data)
	case Regex:
		return "/" + v.re.Source() + "/"
	case Func:
		return "function " + v.fn.Name
	default:
		return ""
	}
}

// formatNumber renders a float64 via the shortest round-trip representation,
// collapsing integral values to a bare integer the way script source numbers
// are written.
func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// toJSONInterface converts a Value tree into plain Go interface{} values
// suitable for encoding/json, sorting Object keys lexicographically so that
// jsonStringify is deterministic regardless of insertion order.
func toJSONInterface(v Value) any {
	switch v.t {
	case Null:
		return nil
	case Boolean:
		return v.b
	case Number:
		return v.n
	case String:
		return v.s
	case Datetime:
		return v.dt.UTC().Format(time.RFC3339Nano)
	case Array:
		items := v.ArraySlice()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = toJSONInterface(item)
		}
		return out
	case Object:
		keys := v.obj.Keys()
		sorted := append([]string(nil), keys...)
		sort.Strings(sorted)
		out := make(map[string]any, len(sorted))
		for _, k := range sorted {
			val, _ := v.obj.Get(k)
			out[k] = toJSONInterface(val)
		}
		return out
	default:
		return fmt.Sprintf("%v", stringify(v))
	}
}

// orderedObject is a string-keyed map that preserves insertion order,
// backing Object values.
type orderedObject struct {
	keys   []string
	values map[string]Value
}

func newOrderedObject() *orderedObject {
	return &orderedObject{values: make(map[string]Value)}
}

// Get returns the value for k and whether it is present (an own key).
func (o *orderedObject) Get(k string) (Value, bool) {
	v, ok := o.values[k]
	return v, ok
}

// Set inserts or updates k, appending it to the key order on first
// insertion only.
func (o *orderedObject) Set(k string, v Value) {
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v
}

// Delete removes k, if present, and drops it from the key order.
func (o *orderedObject) Delete(k string) {
	if _, ok := o.values[k]; !ok {
		return
	}
	delete(o.values, k)
	for i, kk := range o.keys {
		if kk == k {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (o *orderedObject) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of own keys.
func (o *orderedObject) Len() int { return len(o.keys) }

// TypeOf, Truthy, Compare, Equal, and Stringify expose the Value operations
// (C1) to other packages (the standard library groups and cmd/bsrun).

// TypeOf returns one of "null", "boolean", "number", "string", "datetime",
// "array", "object", "regex", "function".
func TypeOf(v Value) string { return typeOf(v) }

// Truthy applies the Value-to-boolean coercion rules.
func Truthy(v Value) bool { return truthy(v) }

// Compare returns <0, 0, or >0 for orderable pairs; see the data model for
// the exact ordering rules.
func Compare(a, b Value) int { return compare(a, b) }

// Equal applies the structural/identity equality rules.
func Equal(a, b Value) bool { return equal(a, b) }

// Stringify renders v's display form.
func Stringify(v Value) string { return stringify(v) }
