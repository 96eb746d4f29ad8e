package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiJSONParseObjectPreservesKeyOrder(t *testing.T) {
	v, err := builtins["jsonParse"].Call([]Value{NewString(`{"z":1,"a":2}`)}, nil)
	require.NoError(t, err)
	require.Equal(t, Object, v.Type())
	assert.Equal(t, []string{"z", "a"}, v.Obj().Keys())
}

func TestBiJSONParseArray(t *testing.T) {
	v, err := builtins["jsonParse"].Call([]Value{NewString(`[1, "x", true, null]`)}, nil)
	require.NoError(t, err)
	items := v.ArraySlice()
	require.Len(t, items, 4)
	assert.Equal(t, float64(1), items[0].Num())
	assert.Equal(t, "x", items[1].Str())
	assert.True(t, items[2].Bool())
	assert.True(t, items[3].IsNull())
}

func TestBiJSONParseInvalidIsNull(t *testing.T) {
	v, err := builtins["jsonParse"].Call([]Value{NewString(`{not valid`)}, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestBiJSONStringifySortsKeys(t *testing.T) {
	obj := NewObject()
	obj.Obj().Set("z", NewNumber(1))
	obj.Obj().Set("a", NewNumber(2))
	v, err := builtins["jsonStringify"].Call([]Value{obj}, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"z":1}`, v.Str())
}

func TestBiJSONStringifyWithNumericIndent(t *testing.T) {
	obj := NewObject()
	obj.Obj().Set("a", NewNumber(1))
	v, err := builtins["jsonStringify"].Call([]Value{obj, NewNumber(2)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", v.Str())
}

func TestBiJSONParseStringifyRoundTrip(t *testing.T) {
	src := `{"a":1,"b":[1,2,3],"c":"x"}`
	parsed, err := builtins["jsonParse"].Call([]Value{NewString(src)}, nil)
	require.NoError(t, err)
	out, err := builtins["jsonStringify"].Call([]Value{parsed}, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out.Str())
}
