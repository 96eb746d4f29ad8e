package script

import (
	"sort"
	"strings"
)

// file library_array.go implements the Array standard-library group: copy,
// extend, get, indexOf, join, lastIndexOf, length, new, newSize, pop, push,
// set, slice, sort.

func init() {
	registerBuiltin("arrayCopy", false, biArrayCopy)
	registerBuiltin("arrayExtend", false, biArrayExtend)
	registerBuiltin("arrayGet", false, biArrayGet)
	registerBuiltin("arrayIndexOf", false, biArrayIndexOf)
	registerBuiltin("arrayJoin", false, biArrayJoin)
	registerBuiltin("arrayLastIndexOf", false, biArrayLastIndexOf)
	registerBuiltin("arrayLength", false, biArrayLength)
	registerBuiltin("arrayNew", false, biArrayNew)
	registerBuiltin("arrayNewSize", false, biArrayNewSize)
	registerBuiltin("arrayPop", false, biArrayPop)
	registerBuiltin("arrayPush", false, biArrayPush)
	registerBuiltin("arraySet", false, biArraySet)
	registerBuiltin("arraySlice", false, biArraySlice)
	registerBuiltin("arraySort", false, biArraySort)
}

func biArrayCopy(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	out := make([]Value, len(items))
	copy(out, items)
	return NewArray(out), nil
}

// biArrayExtend appends every element of the second array onto a copy of
// the first, returning the new array without mutating either argument.
func biArrayExtend(args []Value, host HostRef) (Value, error) {
	a, ok1 := arrArg(args, 0)
	b, ok2 := arrArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	out := make([]Value, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return NewArray(out), nil
}

func biArrayGet(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	idx, ok2 := numArg(args, 1)
	if !ok || !ok2 {
		return NewNull(), nil
	}
	i := int(idx)
	if i < 0 || i >= len(items) {
		return NewNull(), nil
	}
	return items[i], nil
}

func biArrayIndexOf(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	needle := arg(args, 1)
	for i, v := range items {
		if equal(v, needle) {
			return NewNumber(float64(i)), nil
		}
	}
	return NewNumber(-1), nil
}

func biArrayLastIndexOf(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	needle := arg(args, 1)
	for i := len(items) - 1; i >= 0; i-- {
		if equal(items[i], needle) {
			return NewNumber(float64(i)), nil
		}
	}
	return NewNumber(-1), nil
}

func biArrayJoin(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	sep, _ := strArgDefault(args, 1, ",")
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = stringify(v)
	}
	return NewString(strings.Join(parts, sep)), nil
}

func biArrayLength(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewNumber(float64(len(items))), nil
}

func biArrayNew(args []Value, host HostRef) (Value, error) {
	out := make([]Value, len(args))
	copy(out, args)
	return NewArray(out), nil
}

func biArrayNewSize(args []Value, host HostRef) (Value, error) {
	size, ok := numArgDefault(args, 0, 0)
	if !ok || size < 0 {
		return NewNull(), nil
	}
	fill := arg(args, 1)
	if len(args) < 2 {
		fill = NewNumber(0)
	}
	out := make([]Value, int(size))
	for i := range out {
		out[i] = fill
	}
	return NewArray(out), nil
}

// biArrayPop removes and returns the last element of the array in place,
// mutating the backing slice the argument Value shares with every alias;
// Null (not an error) if the array is empty.
func biArrayPop(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	if v.Type() != Array {
		return NewNull(), nil
	}
	items := v.ArraySlice()
	if len(items) == 0 {
		return NewNull(), nil
	}
	last := items[len(items)-1]
	v.SetArraySlice(items[:len(items)-1])
	return last, nil
}

// biArrayPush appends one or more values onto the array in place.
func biArrayPush(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	if v.Type() != Array {
		return NewNull(), nil
	}
	items := v.ArraySlice()
	items = append(items, args[1:]...)
	v.SetArraySlice(items)
	return NewNumber(float64(len(items))), nil
}

// biArraySet writes value at index in place, extending the array with Null
// padding if index is beyond the current length.
func biArraySet(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	idx, ok := numArg(args, 1)
	if v.Type() != Array || !ok || idx < 0 {
		return NewNull(), nil
	}
	items := v.ArraySlice()
	i := int(idx)
	for len(items) <= i {
		items = append(items, NewNull())
	}
	items[i] = arg(args, 2)
	v.SetArraySlice(items)
	return v, nil
}

func biArraySlice(args []Value, host HostRef) (Value, error) {
	items, ok := arrArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	n := len(items)
	begin := 0
	if v := arg(args, 1); v.Type() == Number {
		begin = normalizeIndex(int(v.Num()), n)
	}
	end := n
	if v := arg(args, 2); v.Type() == Number {
		end = normalizeIndex(int(v.Num()), n)
	}
	if begin > end {
		begin = end
	}
	out := make([]Value, end-begin)
	copy(out, items[begin:end])
	return NewArray(out), nil
}

// biArraySort sorts the array in place, stably, using compare() by default
// or a script comparator (called via host.CallFunction so a user-defined
// function works identically under either evaluator) returning <0, 0, >0.
func biArraySort(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	if v.Type() != Array {
		return NewNull(), nil
	}
	items := v.ArraySlice()
	cmp := arg(args, 1)

	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		if cmp.Type() == Func {
			rv, err := host.CallFunction(cmp, []Value{items[i], items[j]})
			if err != nil {
				sortErr = err
				return false
			}
			if rv.Type() != Number {
				return false
			}
			return rv.Num() < 0
		}
		return compare(items[i], items[j]) < 0
	})
	if sortErr != nil {
		return Value{}, sortErr
	}
	v.SetArraySlice(items)
	return v, nil
}
