package script

// file library_helpers.go holds the small argument-extraction helpers every
// standard-library group leans on to implement the type-guard-then-compute
// contract: wrong type or missing argument yields a zero value the caller
// checks with the boolean "ok", and the caller then returns Null instead of
// computing.

var builtins = make(map[string]*FuncValue)

// registerBuiltin installs a standard-library function under name. Called
// from each library_*.go file's init().
func registerBuiltin(name string, async bool, fn Callable) {
	builtins[name] = &FuncValue{Name: name, Async: async, Call: fn}
}

// isBuiltinFetch reports whether f is the actual registered fetch builtin,
// by *FuncValue identity rather than by name, so a user script that
// declares its own "async function fetch" (shadowing the name) is not
// mistaken for it.
func isBuiltinFetch(f *FuncValue) bool {
	return f != nil && f == builtins["fetch"]
}

// arg returns args[i], or Null if i is out of range.
func arg(args []Value, i int) Value {
	if i < 0 || i >= len(args) {
		return NewNull()
	}
	return args[i]
}

// numArg extracts a Number argument.
func numArg(args []Value, i int) (float64, bool) {
	v := arg(args, i)
	if v.Type() != Number {
		return 0, false
	}
	return v.Num(), true
}

// numArgDefault extracts a Number argument, substituting def when the
// argument is absent (not merely wrong-typed).
func numArgDefault(args []Value, i int, def float64) (float64, bool) {
	if i >= len(args) {
		return def, true
	}
	return numArg(args, i)
}

// strArg extracts a String argument.
func strArg(args []Value, i int) (string, bool) {
	v := arg(args, i)
	if v.Type() != String {
		return "", false
	}
	return v.Str(), true
}

// strArgDefault extracts a String argument, substituting def when absent.
func strArgDefault(args []Value, i int, def string) (string, bool) {
	if i >= len(args) {
		return def, true
	}
	return strArg(args, i)
}

// arrArg extracts an Array argument's backing slice.
func arrArg(args []Value, i int) ([]Value, bool) {
	v := arg(args, i)
	if v.Type() != Array {
		return nil, false
	}
	return v.ArraySlice(), true
}

// objArg extracts an Object argument.
func objArg(args []Value, i int) (*orderedObject, bool) {
	v := arg(args, i)
	if v.Type() != Object {
		return nil, false
	}
	return v.Obj(), true
}

// fnArg extracts a Function argument.
func fnArg(args []Value, i int) (Value, bool) {
	v := arg(args, i)
	if v.Type() != Func {
		return Value{}, false
	}
	return v, true
}

// boolArgDefault extracts a Boolean argument, substituting def when absent
// or wrong-typed.
func boolArgDefault(args []Value, i int, def bool) bool {
	v := arg(args, i)
	if v.Type() != Boolean {
		return def
	}
	return v.Bool()
}
