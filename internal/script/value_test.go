package script

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(NewNull()))
	assert.False(t, Truthy(NewBool(false)))
	assert.True(t, Truthy(NewBool(true)))
	assert.False(t, Truthy(NewNumber(0)))
	assert.True(t, Truthy(NewNumber(-1)))
	assert.False(t, Truthy(NewString("")))
	assert.True(t, Truthy(NewString("x")))
	assert.True(t, Truthy(NewArray(nil)))
	assert.True(t, Truthy(NewObject()))
}

func TestEqualStructuralVsIdentity(t *testing.T) {
	assert.True(t, Equal(NewNumber(1), NewNumber(1)))
	assert.True(t, Equal(NewString("a"), NewString("a")))
	assert.False(t, Equal(NewNumber(1), NewString("1")))

	a1 := NewArray([]Value{NewNumber(1)})
	a2 := NewArray([]Value{NewNumber(1)})
	assert.False(t, Equal(a1, a2), "arrays compare by identity, not structure")
	assert.True(t, Equal(a1, a1))
}

func TestCompareOrdering(t *testing.T) {
	assert.Less(t, Compare(NewNumber(1), NewNumber(2)), 0)
	assert.Greater(t, Compare(NewString("b"), NewString("a")), 0)
	assert.Equal(t, 0, Compare(NewNull(), NewNull()))
	// Null always sorts greatest regardless of the other operand's type.
	assert.Less(t, Compare(NewNumber(1), NewNull()), 0)
	assert.Greater(t, Compare(NewNull(), NewString("z")), 0)
}

func TestStringifyNumbers(t *testing.T) {
	assert.Equal(t, "3", Stringify(NewNumber(3)))
	assert.Equal(t, "3.5", Stringify(NewNumber(3.5)))
	assert.Equal(t, "NaN", Stringify(NewNumber(nanValue())))
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestStringifyArrayObjectIsSortedJSON(t *testing.T) {
	obj := NewObject()
	obj.Obj().Set("z", NewNumber(1))
	obj.Obj().Set("a", NewNumber(2))
	assert.Equal(t, `{"a":2,"z":1}`, Stringify(obj))

	arr := NewArray([]Value{NewNumber(1), NewString("x")})
	assert.Equal(t, `[1,"x"]`, Stringify(arr))
}

func TestStringifyDatetimeISO(t *testing.T) {
	dt := NewDatetime(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, "2024-01-02T03:04:05Z", Stringify(dt))
}

func TestOrderedObjectPreservesInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Obj().Set("b", NewNumber(1))
	obj.Obj().Set("a", NewNumber(2))
	obj.Obj().Set("c", NewNumber(3))
	assert.Equal(t, []string{"b", "a", "c"}, obj.Obj().Keys())

	obj.Obj().Delete("a")
	assert.Equal(t, []string{"b", "c"}, obj.Obj().Keys())
	assert.Equal(t, 2, obj.Obj().Len())
}

func TestArraySliceSharesBackingStore(t *testing.T) {
	items := []Value{NewNumber(1), NewNumber(2)}
	arr := NewArray(items)
	alias := arr
	alias.SetArraySlice(append(alias.ArraySlice(), NewNumber(3)))
	assert.Len(t, arr.ArraySlice(), 3, "SetArraySlice must be observed through every alias of the Value")
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "null", TypeOf(NewNull()))
	assert.Equal(t, "boolean", TypeOf(NewBool(true)))
	assert.Equal(t, "number", TypeOf(NewNumber(1)))
	assert.Equal(t, "string", TypeOf(NewString("")))
	assert.Equal(t, "array", TypeOf(NewArray(nil)))
	assert.Equal(t, "object", TypeOf(NewObject()))
}
