package script

// file library_object.go implements the Object standard-library group:
// assign, copy, delete, get, has, keys, new, set. Every function rejects a
// non-Object argument (including Array) by returning Null, per the data
// model's "Array arguments are rejected for object-only functions" rule.

func init() {
	registerBuiltin("objectAssign", false, biObjectAssign)
	registerBuiltin("objectCopy", false, biObjectCopy)
	registerBuiltin("objectDelete", false, biObjectDelete)
	registerBuiltin("objectGet", false, biObjectGet)
	registerBuiltin("objectHas", false, biObjectHas)
	registerBuiltin("objectKeys", false, biObjectKeys)
	registerBuiltin("objectNew", false, biObjectNew)
	registerBuiltin("objectSet", false, biObjectSet)
}

// biObjectAssign copies every own key of each subsequent Object argument
// onto a fresh copy of the first, later arguments winning on conflict.
func biObjectAssign(args []Value, host HostRef) (Value, error) {
	base, ok := objArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	out := NewObject()
	for _, k := range base.Keys() {
		v, _ := base.Get(k)
		out.Obj().Set(k, v)
	}
	for i := 1; i < len(args); i++ {
		src, ok := objArg(args, i)
		if !ok {
			return NewNull(), nil
		}
		for _, k := range src.Keys() {
			v, _ := src.Get(k)
			out.Obj().Set(k, v)
		}
	}
	return out, nil
}

func biObjectCopy(args []Value, host HostRef) (Value, error) {
	src, ok := objArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	out := NewObject()
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		out.Obj().Set(k, v)
	}
	return out, nil
}

// biObjectDelete removes the key in place and returns the object.
func biObjectDelete(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	if v.Type() != Object {
		return NewNull(), nil
	}
	k, ok := strArg(args, 1)
	if !ok {
		return NewNull(), nil
	}
	v.Obj().Delete(k)
	return v, nil
}

func biObjectGet(args []Value, host HostRef) (Value, error) {
	obj, ok := objArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	k, ok := strArg(args, 1)
	if !ok {
		return NewNull(), nil
	}
	if v, present := obj.Get(k); present {
		return v, nil
	}
	if len(args) > 2 {
		return args[2], nil
	}
	return NewNull(), nil
}

func biObjectHas(args []Value, host HostRef) (Value, error) {
	obj, ok := objArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	k, ok := strArg(args, 1)
	if !ok {
		return NewNull(), nil
	}
	_, present := obj.Get(k)
	return NewBool(present), nil
}

func biObjectKeys(args []Value, host HostRef) (Value, error) {
	obj, ok := objArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	keys := obj.Keys()
	out := make([]Value, len(keys))
	for i, k := range keys {
		out[i] = NewString(k)
	}
	return NewArray(out), nil
}

// biObjectNew builds an Object from a variadic, even-count key/value
// argument list; an odd count or a non-String key returns Null.
func biObjectNew(args []Value, host HostRef) (Value, error) {
	if len(args)%2 != 0 {
		return NewNull(), nil
	}
	out := NewObject()
	for i := 0; i < len(args); i += 2 {
		if args[i].Type() != String {
			return NewNull(), nil
		}
		out.Obj().Set(args[i].Str(), args[i+1])
	}
	return out, nil
}

func biObjectSet(args []Value, host HostRef) (Value, error) {
	v := arg(args, 0)
	if v.Type() != Object {
		return NewNull(), nil
	}
	k, ok := strArg(args, 1)
	if !ok {
		return NewNull(), nil
	}
	v.Obj().Set(k, arg(args, 2))
	return v, nil
}
