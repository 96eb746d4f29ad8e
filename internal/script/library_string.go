package script

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// file library_string.go implements the String standard-library group:
// charCodeAt, endsWith, fromCharCode, indexOf, lastIndexOf, length, lower,
// upper, repeat, replace, slice, split, startsWith, trim, new.

func init() {
	registerBuiltin("stringCharCodeAt", false, biStringCharCodeAt)
	registerBuiltin("stringEndsWith", false, biStringEndsWith)
	registerBuiltin("stringFromCharCode", false, biStringFromCharCode)
	registerBuiltin("stringIndexOf", false, biStringIndexOf)
	registerBuiltin("stringLastIndexOf", false, biStringLastIndexOf)
	registerBuiltin("stringLength", false, biStringLength)
	registerBuiltin("stringLower", false, biStringLower)
	registerBuiltin("stringUpper", false, biStringUpper)
	registerBuiltin("stringRepeat", false, biStringRepeat)
	registerBuiltin("stringReplace", false, biStringReplace)
	registerBuiltin("stringSlice", false, biStringSlice)
	registerBuiltin("stringSplit", false, biStringSplit)
	registerBuiltin("stringStartsWith", false, biStringStartsWith)
	registerBuiltin("stringTrim", false, biStringTrim)
	registerBuiltin("stringNew", false, biStringNew)
}

func biStringCharCodeAt(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	idx, ok2 := numArg(args, 1)
	if !ok || !ok2 {
		return NewNull(), nil
	}
	runes := []rune(s)
	i := int(idx)
	if i < 0 || i >= len(runes) {
		return NewNull(), nil
	}
	return NewNumber(float64(runes[i])), nil
}

func biStringEndsWith(args []Value, host HostRef) (Value, error) {
	s, ok1 := strArg(args, 0)
	suffix, ok2 := strArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	return NewBool(strings.HasSuffix(s, suffix)), nil
}

func biStringFromCharCode(args []Value, host HostRef) (Value, error) {
	var b strings.Builder
	for _, a := range args {
		if a.Type() != Number {
			return NewNull(), nil
		}
		b.WriteRune(rune(int(a.Num())))
	}
	return NewString(b.String()), nil
}

func biStringIndexOf(args []Value, host HostRef) (Value, error) {
	s, ok1 := strArg(args, 0)
	sub, ok2 := strArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	return NewNumber(float64(strings.Index(s, sub))), nil
}

func biStringLastIndexOf(args []Value, host HostRef) (Value, error) {
	s, ok1 := strArg(args, 0)
	sub, ok2 := strArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	return NewNumber(float64(strings.LastIndex(s, sub))), nil
}

func biStringLength(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewNumber(float64(len([]rune(s)))), nil
}

func biStringLower(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewString(strings.ToLower(s)), nil
}

func biStringUpper(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewString(strings.ToUpper(s)), nil
}

func biStringRepeat(args []Value, host HostRef) (Value, error) {
	s, ok1 := strArg(args, 0)
	n, ok2 := numArg(args, 1)
	if !ok1 || !ok2 || n < 0 {
		return NewNull(), nil
	}
	return NewString(strings.Repeat(s, int(n))), nil
}

// biStringReplace implements replace(s, pattern, replacement): pattern may
// be a String (literal substring) or a Regex value; replacement may be a
// String (with $N group references when pattern is a Regex) or a script
// function called with the match's groups followed by host, per the data
// model's "replacement may be a string or a script function" contract.
func biStringReplace(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	pattern := arg(args, 1)
	replacement := arg(args, 2)

	if pattern.Type() == String {
		if replacement.Type() == Func {
			idx := strings.Index(s, pattern.Str())
			if idx < 0 {
				return NewString(s), nil
			}
			rv, err := host.CallFunction(replacement, []Value{NewString(pattern.Str())})
			if err != nil {
				return Value{}, err
			}
			return NewString(s[:idx] + stringify(rv) + s[idx+len(pattern.Str()):]), nil
		}
		if replacement.Type() != String {
			return NewNull(), nil
		}
		return NewString(strings.Replace(s, pattern.Str(), replacement.Str(), 1)), nil
	}

	r, ok := resolveRegex(pattern, host)
	if !ok {
		return NewNull(), nil
	}
	if replacement.Type() == Func {
		groups, found := r.matchGroups(s)
		if !found {
			return NewString(s), nil
		}
		callArgs := make([]Value, len(groups))
		for i, g := range groups {
			callArgs[i] = NewString(g)
		}
		rv, err := host.CallFunction(replacement, callArgs)
		if err != nil {
			return Value{}, err
		}
		lit := stringify(rv)
		out, err := r.re.ReplaceFunc(s, func(regexp2.Match) string { return lit }, 0, 1)
		if err != nil {
			host.log(err.Error())
			return NewNull(), nil
		}
		return NewString(out), nil
	}
	if replacement.Type() != String {
		return NewNull(), nil
	}
	out, err := replaceFirst(r, s, replacement.Str())
	if err != nil {
		host.log(err.Error())
		return NewNull(), nil
	}
	return NewString(out), nil
}

func biStringSlice(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	runes := []rune(s)
	n := len(runes)
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
	return NewString(string(runes[begin:end])), nil
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func biStringSplit(args []Value, host HostRef) (Value, error) {
	s, ok1 := strArg(args, 0)
	sep, ok2 := strArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	limit := -1
	if v := arg(args, 2); v.Type() == Number {
		limit = int(v.Num())
	}
	var parts []string
	if sep == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else if limit >= 0 {
		parts = strings.SplitN(s, sep, limit)
	} else {
		parts = strings.Split(s, sep)
	}
	out := make([]Value, len(parts))
	for i, p := range parts {
		out[i] = NewString(p)
	}
	return NewArray(out), nil
}

func biStringStartsWith(args []Value, host HostRef) (Value, error) {
	s, ok1 := strArg(args, 0)
	prefix, ok2 := strArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	return NewBool(strings.HasPrefix(s, prefix)), nil
}

func biStringTrim(args []Value, host HostRef) (Value, error) {
	s, ok := strArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewString(strings.TrimSpace(s)), nil
}

func biStringNew(args []Value, host HostRef) (Value, error) {
	return NewString(stringify(arg(args, 0))), nil
}
