package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiDataParseCSVProducesObjectsKeyedByHeader(t *testing.T) {
	csv := "name,age\nalice,30\nbob,40"
	v, err := builtins["dataParseCSV"].Call([]Value{NewString(csv)}, NewHost())
	require.NoError(t, err)
	rows := v.ArraySlice()
	require.Len(t, rows, 2)
	name, _ := rows[0].Obj().Get("name")
	age, _ := rows[0].Obj().Get("age")
	assert.Equal(t, "alice", name.Str())
	assert.Equal(t, "30", age.Str())
}

func TestBiDataParseCSVCustomDelimiter(t *testing.T) {
	csv := "name;age\nalice;30"
	v, err := builtins["dataParseCSV"].Call([]Value{NewString(csv), NewString(";")}, NewHost())
	require.NoError(t, err)
	rows := v.ArraySlice()
	require.Len(t, rows, 1)
}

func TestBiDataParseCSVRaggedRowIsNullAndLogged(t *testing.T) {
	var logged string
	host := NewHost()
	host.LogFn = func(text string) { logged = text }
	csv := "a,b\n1,2,3"
	v, err := builtins["dataParseCSV"].Call([]Value{NewString(csv)}, host)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.NotEmpty(t, logged)
}

func TestBiDataTableProjectsFieldsWithNullPadding(t *testing.T) {
	row := NewObject()
	row.Obj().Set("name", NewString("alice"))
	rows := NewArray([]Value{row})
	fields := NewArray([]Value{NewString("name"), NewString("missing")})

	v, err := builtins["dataTable"].Call([]Value{rows, fields}, nil)
	require.NoError(t, err)
	out := v.ArraySlice()
	require.Len(t, out, 1)
	name, _ := out[0].Obj().Get("name")
	missing, _ := out[0].Obj().Get("missing")
	assert.Equal(t, "alice", name.Str())
	assert.True(t, missing.IsNull())
}

func makeRow(name string, age float64) Value {
	row := NewObject()
	row.Obj().Set("name", NewString(name))
	row.Obj().Set("age", NewNumber(age))
	return row
}

func TestBiDataSortAscendingByField(t *testing.T) {
	rows := NewArray([]Value{makeRow("bob", 40), makeRow("alice", 30)})
	spec := NewObject()
	spec.Obj().Set("field", NewString("age"))
	specs := NewArray([]Value{spec})

	v, err := builtins["dataSort"].Call([]Value{rows, specs}, nil)
	require.NoError(t, err)
	out := v.ArraySlice()
	first, _ := out[0].Obj().Get("name")
	assert.Equal(t, "alice", first.Str())
}

func TestBiDataSortDescending(t *testing.T) {
	rows := NewArray([]Value{makeRow("alice", 30), makeRow("bob", 40)})
	spec := NewObject()
	spec.Obj().Set("field", NewString("age"))
	spec.Obj().Set("desc", NewBool(true))
	specs := NewArray([]Value{spec})

	v, err := builtins["dataSort"].Call([]Value{rows, specs}, nil)
	require.NoError(t, err)
	out := v.ArraySlice()
	first, _ := out[0].Obj().Get("name")
	assert.Equal(t, "bob", first.Str())
}

func TestBiDataFilterKeepsTruthyRows(t *testing.T) {
	rows := NewArray([]Value{makeRow("alice", 30), makeRow("bob", 17)})

	host := NewHost()
	host.invoke = func(fv Value, args []Value) (Value, error) {
		return fv.Func().Call(args, host)
	}

	predicate := NewFunc(&FuncValue{
		Name: "isAdult",
		Call: func(args []Value, h HostRef) (Value, error) {
			row := arg(args, 0)
			age, _ := row.Obj().Get("age")
			return NewBool(age.Num() >= 18), nil
		},
	})

	v, err := builtins["dataFilter"].Call([]Value{rows, predicate}, host)
	require.NoError(t, err)
	out := v.ArraySlice()
	require.Len(t, out, 1)
	name, _ := out[0].Obj().Get("name")
	assert.Equal(t, "alice", name.Str())
}
