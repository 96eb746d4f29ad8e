package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiStringLengthCountsRunesNotBytes(t *testing.T) {
	v, err := builtins["stringLength"].Call([]Value{NewString("héllo")}, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(5), v.Num())
}

func TestBiStringCaseConversion(t *testing.T) {
	v, _ := builtins["stringUpper"].Call([]Value{NewString("abc")}, nil)
	assert.Equal(t, "ABC", v.Str())
	v, _ = builtins["stringLower"].Call([]Value{NewString("ABC")}, nil)
	assert.Equal(t, "abc", v.Str())
}

func TestBiStringIndexOfAndLastIndexOf(t *testing.T) {
	v, _ := builtins["stringIndexOf"].Call([]Value{NewString("abcabc"), NewString("b")}, nil)
	assert.Equal(t, float64(1), v.Num())
	v, _ = builtins["stringLastIndexOf"].Call([]Value{NewString("abcabc"), NewString("b")}, nil)
	assert.Equal(t, float64(4), v.Num())
}

func TestBiStringStartsEndsWith(t *testing.T) {
	v, _ := builtins["stringStartsWith"].Call([]Value{NewString("hello"), NewString("he")}, nil)
	assert.True(t, v.Bool())
	v, _ = builtins["stringEndsWith"].Call([]Value{NewString("hello"), NewString("lo")}, nil)
	assert.True(t, v.Bool())
}

func TestBiStringSliceNegativeIndices(t *testing.T) {
	v, err := builtins["stringSlice"].Call([]Value{NewString("hello"), NewNumber(-3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "llo", v.Str())
}

func TestBiStringSliceClampsBeginAfterEnd(t *testing.T) {
	v, err := builtins["stringSlice"].Call([]Value{NewString("hello"), NewNumber(4), NewNumber(1)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", v.Str())
}

func TestBiStringSplitOnEmptySeparatorSplitsRunes(t *testing.T) {
	v, err := builtins["stringSplit"].Call([]Value{NewString("abc"), NewString("")}, nil)
	require.NoError(t, err)
	items := v.ArraySlice()
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Str())
}

func TestBiStringSplitWithLimit(t *testing.T) {
	v, err := builtins["stringSplit"].Call([]Value{NewString("a,b,c"), NewString(","), NewNumber(2)}, nil)
	require.NoError(t, err)
	items := v.ArraySlice()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Str())
	assert.Equal(t, "b,c", items[1].Str())
}

func TestBiStringRepeat(t *testing.T) {
	v, err := builtins["stringRepeat"].Call([]Value{NewString("ab"), NewNumber(3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ababab", v.Str())
}

func TestBiStringRepeatNegativeCountIsNull(t *testing.T) {
	v, err := builtins["stringRepeat"].Call([]Value{NewString("ab"), NewNumber(-1)}, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestBiStringTrim(t *testing.T) {
	v, err := builtins["stringTrim"].Call([]Value{NewString("  hi  ")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Str())
}

func TestBiStringReplaceLiteralSubstring(t *testing.T) {
	v, err := builtins["stringReplace"].Call([]Value{NewString("foo bar foo"), NewString("foo"), NewString("baz")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "baz bar foo", v.Str())
}

func TestBiStringReplaceWithFunctionReplacement(t *testing.T) {
	upper := NewFunc(&FuncValue{
		Name: "upper",
		Call: func(args []Value, host HostRef) (Value, error) {
			return NewString(stringsToUpper(arg(args, 0).Str())), nil
		},
	})
	host := NewHost()
	host.invoke = func(fv Value, args []Value) (Value, error) {
		return fv.Func().Call(args, host)
	}
	v, err := builtins["stringReplace"].Call([]Value{NewString("hi foo"), NewString("foo"), upper}, host)
	require.NoError(t, err)
	assert.Equal(t, "hi FOO", v.Str())
}

func stringsToUpper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
	}
	return string(out)
}

func TestBiStringCharCodeAtAndFromCharCode(t *testing.T) {
	v, err := builtins["stringCharCodeAt"].Call([]Value{NewString("A"), NewNumber(0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(65), v.Num())

	v, err = builtins["stringFromCharCode"].Call([]Value{NewNumber(65), NewNumber(66)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "AB", v.Str())
}

func TestBiStringNewStringifiesArgument(t *testing.T) {
	v, err := builtins["stringNew"].Call([]Value{NewNumber(3.5)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "3.5", v.Str())
}
