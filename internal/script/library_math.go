package script

import (
	"math"
	"math/rand"
)

// file library_math.go implements the Math standard-library group (C4),
// grounded on tunascript's numeric builtins but widened to the full math
// family named in the data model: abs/acos/asin/atan/atan2/ceil/cos/floor/
// ln/log/max/min/round/sign/sin/sqrt/tan/pi/random.

func init() {
	registerBuiltin("mathAbs", false, biMathUnary(math.Abs))
	registerBuiltin("mathAcos", false, biMathUnary(math.Acos))
	registerBuiltin("mathAsin", false, biMathUnary(math.Asin))
	registerBuiltin("mathAtan", false, biMathUnary(math.Atan))
	registerBuiltin("mathCeil", false, biMathUnary(math.Ceil))
	registerBuiltin("mathCos", false, biMathUnary(math.Cos))
	registerBuiltin("mathFloor", false, biMathUnary(math.Floor))
	registerBuiltin("mathLn", false, biMathUnary(math.Log))
	registerBuiltin("mathSign", false, biMathUnary(mathSign))
	registerBuiltin("mathSin", false, biMathUnary(math.Sin))
	registerBuiltin("mathSqrt", false, biMathUnary(math.Sqrt))
	registerBuiltin("mathTan", false, biMathUnary(math.Tan))

	registerBuiltin("mathAtan2", false, biAtan2)
	registerBuiltin("mathLog", false, biLog)
	registerBuiltin("mathMax", false, biMax)
	registerBuiltin("mathMin", false, biMin)
	registerBuiltin("mathRound", false, biRound)
	registerBuiltin("mathPi", false, biPi)
	registerBuiltin("mathRandom", false, biRandom)
}

func mathSign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// biMathUnary adapts a single-argument float64 math function into a
// Callable that yields Null for a non-Number argument.
func biMathUnary(fn func(float64) float64) Callable {
	return func(args []Value, host HostRef) (Value, error) {
		x, ok := numArg(args, 0)
		if !ok {
			return NewNull(), nil
		}
		return NewNumber(fn(x)), nil
	}
}

func biAtan2(args []Value, host HostRef) (Value, error) {
	y, ok1 := numArg(args, 0)
	x, ok2 := numArg(args, 1)
	if !ok1 || !ok2 {
		return NewNull(), nil
	}
	return NewNumber(math.Atan2(y, x)), nil
}

func biLog(args []Value, host HostRef) (Value, error) {
	x, ok := numArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	base, ok := numArgDefault(args, 1, 10)
	if !ok {
		return NewNull(), nil
	}
	return NewNumber(math.Log(x) / math.Log(base)), nil
}

func biMax(args []Value, host HostRef) (Value, error) {
	return numFold(args, math.Max, math.Inf(-1))
}

func biMin(args []Value, host HostRef) (Value, error) {
	return numFold(args, math.Min, math.Inf(1))
}

func numFold(args []Value, fn func(a, b float64) float64, seed float64) (Value, error) {
	if len(args) == 0 {
		return NewNull(), nil
	}
	acc := seed
	for _, a := range args {
		if a.Type() != Number {
			return NewNull(), nil
		}
		acc = fn(acc, a.Num())
	}
	return NewNumber(acc), nil
}

func biRound(args []Value, host HostRef) (Value, error) {
	x, ok := numArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	digits, ok := numArgDefault(args, 1, 0)
	if !ok {
		return NewNull(), nil
	}
	mult := math.Pow(10, digits)
	return NewNumber(math.Round(x*mult) / mult), nil
}

func biPi(args []Value, host HostRef) (Value, error) {
	return NewNumber(math.Pi), nil
}

func biRandom(args []Value, host HostRef) (Value, error) {
	return NewNumber(rand.Float64()), nil
}
