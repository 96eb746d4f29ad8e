package script

// file library_regex.go implements the Regex standard-library group:
// escape, match, matchAll, new, test, delegating to regex.go's regexp2
// wrapper.

func init() {
	registerBuiltin("regexEscape", false, biRegexEscape)
	registerBuiltin("regexNew", false, biRegexNew)
	registerBuiltin("regexMatch", false, biRegexMatch)
	registerBuiltin("regexMatchAll", false, biRegexMatchAll)
	registerBuiltin("regexTest", false, biRegexTest)
}

func biRegexEscape(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewString(escapeRegex(s)), nil
}

func biRegexNew(args []Value, host HostRef) (Value, error) {
	pattern, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	flags, _ := strArgDefault(args, 1, "")
	re, err := compileRegex(pattern, flags)
	if err != nil {
		host.log(err.Error())
		return NewNull(), nil
	}
	return NewRegex(re), nil
}

// resolveRegex accepts either an already-built Regex value or a String
// pattern (compiled with no flags), matching the data model's "pattern may
// be string or regex" contract used by both match-family functions and
// stringReplace.
func resolveRegex(v Value, host HostRef) (*scriptRegex, bool) {
	switch v.Type() {
	case Regex:
		r, ok := v.RegexHandle().(*scriptRegex)
		return r, ok
	case String:
		re, err := compileRegex(v.Str(), "")
		if err != nil {
			host.log(err.Error())
			return nil, false
		}
		return re, true
	default:
		return nil, false
	}
}

func biRegexMatch(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	r, ok := resolveRegex(arg(args, 1), host)
	if !ok {
		return NewNull(), nil
	}
	groups, ok := r.matchGroups(s)
	if !ok {
		return NewNull(), nil
	}
	out := make([]Value, len(groups))
	for i, g := range groups {
		out[i] = NewString(g)
	}
	return NewArray(out), nil
}

func biRegexMatchAll(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	r, ok := resolveRegex(arg(args, 1), host)
	if !ok {
		return NewNull(), nil
	}
	all := r.matchAllGroups(s)
	out := make([]Value, len(all))
	for i, groups := range all {
		row := make([]Value, len(groups))
		for j, g := range groups {
			row[j] = NewString(g)
		}
		out[i] = NewArray(row)
	}
	return NewArray(out), nil
}

func biRegexTest(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	r, ok := resolveRegex(arg(args, 1), host)
	if !ok {
		return NewNull(), nil
	}
	_, found := r.matchGroups(s)
	return NewBool(found), nil
}
