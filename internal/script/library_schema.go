package script

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dekarrin/barescript/internal/schema"
)

// file library_schema.go implements schemaParse/schemaTypeModel/
// schemaValidate (C10), using the same opaque-handle-in-an-Object trick as
// library_drawing.go's canvases to carry a *schema.Model across the Value
// boundary without adding a tenth Value case.

const schemaHandleKey = "__schemaHandle"

var (
	schemaRegistryMu sync.Mutex
	schemaRegistry   = map[string]*schema.Model{}
)

func init() {
	registerBuiltin("schemaParse", false, biSchemaParse)
	registerBuiltin("schemaTypeModel", false, biSchemaTypeModel)
	registerBuiltin("schemaValidate", false, biSchemaValidate)
	registerBuiltin("schemaValidateTypeModel", false, biSchemaValidateTypeModel)
}

func biSchemaParse(args []Value, host HostRef) (Value, error) {
	text, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	model, err := schema.Parse(text)
	if err != nil {
		host.log(err.Error())
		return NewNull(), nil
	}
	id := uuid.NewString()
	schemaRegistryMu.Lock()
	schemaRegistry[id] = model
	schemaRegistryMu.Unlock()

	out := NewObject()
	out.Obj().Set(schemaHandleKey, NewString(id))
	return out, nil
}

func resolveSchemaModel(v Value) *schema.Model {
	if v.Type() != Object {
		return nil
	}
	handle, ok := v.Obj().Get(schemaHandleKey)
	if !ok || handle.Type() != String {
		return nil
	}
	schemaRegistryMu.Lock()
	defer schemaRegistryMu.Unlock()
	return schemaRegistry[handle.Str()]
}

// schemaDescribeKeyOrder fixes the iteration order of schema.Describe()'s
// map, since Go map iteration order is randomized and the Object it is
// converted to must preserve key order deterministically. Must list every
// key schema.Describe() produces.
var schemaDescribeKeyOrder = []string{"fieldTypes", "syntax", "required"}

// biSchemaTypeModel returns the schema definition language's own
// self-descriptive type model: the field types and syntax rules schemaParse
// itself obeys.
func biSchemaTypeModel(args []Value, host HostRef) (Value, error) {
	d := schema.Describe()
	out := NewObject()
	for _, key := range schemaDescribeKeyOrder {
		if v, ok := d[key]; ok {
			out.Obj().Set(key, valueFromAny(v))
		}
	}
	return out, nil
}

func biSchemaValidate(args []Value, host HostRef) (Value, error) {
	model := resolveSchemaModel(arg(args, 0))
	typeName, ok := strArg(args, 1)
	if model == nil || !ok {
		return NewNull(), nil
	}
	value := arg(args, 2)
	msg, err := model.Validate(typeName, toJSONInterface(value))
	if err != nil {
		host.log(err.Error())
		return NewNull(), nil
	}
	if msg == "" {
		return NewNull(), nil
	}
	return NewString(msg), nil
}

// biSchemaValidateTypeModel checks that a schema source string itself parses
// into a well-formed type model, returning Null when it does or a message
// describing the parse failure.
func biSchemaValidateTypeModel(args []Value, host HostRef) (Value, error) {
	text, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	if _, err := schema.Parse(text); err != nil {
		return NewString(err.Error()), nil
	}
	return NewNull(), nil
}

// valueFromAny converts a plain Go value (as produced by a literal Go map,
// not a parsed JSON document) to a Value. Any nested map[string]any has no
// inherent key order, so its keys are sorted for determinism rather than
// risking Go's randomized map iteration; callers with an actual declared
// order (schemaDescribeKeyOrder above) should prefer building the Object
// directly instead of routing through this fallback.
func valueFromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return NewNull()
	case bool:
		return NewBool(t)
	case float64:
		return NewNumber(t)
	case int:
		return NewNumber(float64(t))
	case string:
		return NewString(t)
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = valueFromAny(e)
		}
		return NewArray(out)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewObject()
		for _, k := range keys {
			out.Obj().Set(k, valueFromAny(t[k]))
		}
		return out
	default:
		return NewNull()
	}
}
