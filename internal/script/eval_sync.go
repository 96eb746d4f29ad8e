package script

import "math"

// file eval_sync.go is the synchronous tree-walking evaluator (C5), grounded
// on tunascript/eval.go's node-kind switch but restructured around the
// frozen Expression/Statement AST: Number/String/Variable/Group/Unary/
// Binary/Call dispatch, lazy "if" and short-circuit &&/||, builtin/Locals/
// Globals name resolution, and rejection of calls into async-marked
// functions (with fetch specially carved out as a synchronous no-op per the
// data model's fetch/async contradiction, resolved in DESIGN.md).

// ExecuteScript runs a parsed Script to completion under the synchronous
// evaluator and returns the value of its Return statement, or Null if
// control falls off the end. host may be nil, in which case NewHost's
// default (no fetch/log/url callbacks, the 1e7 statement budget, fresh
// Globals) is used.
func ExecuteScript(script *Script, host *Host) (Value, error) {
	if host == nil {
		host = NewHost()
	}
	host.ensureGlobals()
	host.invoke = func(fv Value, args []Value) (Value, error) {
		return callSync(fv, args, host)
	}
	return runStatements(script.Statements, nil, host, evalExprSync)
}

// EvaluateExpression evaluates a single standalone Expression under the
// synchronous evaluator. locals may be nil, meaning the expression runs
// outside any function body (Globals + builtins only).
func EvaluateExpression(expr *Expression, host *Host, locals *Scope) (Value, error) {
	if host == nil {
		host = NewHost()
	}
	host.ensureGlobals()
	host.invoke = func(fv Value, args []Value) (Value, error) {
		return callSync(fv, args, host)
	}
	return evalExprSync(expr, locals, host)
}

// evalExprSync recursively evaluates expr. It is the exprEvalFunc passed to
// runStatements for every synchronous invocation.
func evalExprSync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	switch expr.Kind {
	case ExprNumber:
		return NewNumber(expr.NumberVal), nil

	case ExprString:
		return NewString(expr.StringVal), nil

	case ExprVariable:
		if rv, ok := reservedIdent(expr.Name); ok {
			return rv, nil
		}
		globals := host.ensureGlobals()
		if v, ok := lookupVar(locals, globals, expr.Name); ok {
			return v, nil
		}
		return NewNull(), nil

	case ExprGroup:
		return evalExprSync(expr.Operand, locals, host)

	case ExprUnary:
		v, err := evalExprSync(expr.Operand, locals, host)
		if err != nil {
			return Value{}, err
		}
		switch expr.UnaryOp {
		case OpNeg:
			return evalNeg(v), nil
		case OpNot:
			return NewBool(!truthy(v)), nil
		}
		return NewNull(), nil

	case ExprBinary:
		return evalBinarySync(expr, locals, host)

	case ExprCall:
		return evalCallSync(expr, locals, host)
	}
	return NewNull(), newRuntimeError("unknown expression kind")
}

// reservedIdent resolves the three reserved literal identifiers that take
// precedence over any Locals/Globals binding of the same name.
func reservedIdent(name string) (Value, bool) {
	switch name {
	case "null":
		return NewNull(), true
	case "true":
		return NewBool(true), true
	case "false":
		return NewBool(false), true
	}
	return Value{}, false
}

// evalNeg negates a Value per the arithmetic coercion rule: non-Number
// operands coerce to NaN, matching every other arithmetic binary operator.
func evalNeg(v Value) Value {
	if v.Type() != Number {
		return NewNumber(math.NaN())
	}
	return NewNumber(-v.Num())
}

// evalBinarySync evaluates a Binary expression, short-circuiting && and ||
// before touching the right operand.
func evalBinarySync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	if expr.BinaryOp == OpAnd || expr.BinaryOp == OpOr {
		left, err := evalExprSync(expr.Left, locals, host)
		if err != nil {
			return Value{}, err
		}
		lt := truthy(left)
		if expr.BinaryOp == OpAnd && !lt {
			return NewBool(false), nil
		}
		if expr.BinaryOp == OpOr && lt {
			return NewBool(true), nil
		}
		right, err := evalExprSync(expr.Right, locals, host)
		if err != nil {
			return Value{}, err
		}
		return NewBool(truthy(right)), nil
	}

	left, err := evalExprSync(expr.Left, locals, host)
	if err != nil {
		return Value{}, err
	}
	right, err := evalExprSync(expr.Right, locals, host)
	if err != nil {
		return Value{}, err
	}
	return applyBinary(expr.BinaryOp, left, right), nil
}

// applyBinary computes the result of a non-short-circuit binary operator.
// Arithmetic operators coerce non-Number operands to NaN; + additionally
// concatenates when either operand is a String; comparisons use compare();
// equality uses equal().
func applyBinary(op BinaryOp, left, right Value) Value {
	switch op {
	case OpAdd:
		if left.Type() == String || right.Type() == String {
			return NewString(stringify(left) + stringify(right))
		}
		return arithmetic(left, right, func(a, b float64) float64 { return a + b })
	case OpSub:
		return arithmetic(left, right, func(a, b float64) float64 { return a - b })
	case OpMul:
		return arithmetic(left, right, func(a, b float64) float64 { return a * b })
	case OpDiv:
		return arithmetic(left, right, func(a, b float64) float64 { return a / b })
	case OpMod:
		return arithmetic(left, right, math.Mod)
	case OpPow:
		return arithmetic(left, right, math.Pow)
	case OpLT:
		return NewBool(compare(left, right) < 0)
	case OpLE:
		return NewBool(compare(left, right) <= 0)
	case OpGT:
		return NewBool(compare(left, right) > 0)
	case OpGE:
		return NewBool(compare(left, right) >= 0)
	case OpEq:
		return NewBool(equal(left, right))
	case OpNotEq:
		return NewBool(!equal(left, right))
	}
	return NewNull()
}

func arithmetic(left, right Value, fn func(a, b float64) float64) Value {
	if left.Type() != Number || right.Type() != Number {
		return NewNumber(math.NaN())
	}
	return NewNumber(fn(left.Num(), right.Num()))
}

// evalCallSync evaluates a Function-call expression: "if" is special-cased
// as lazy (only the taken branch's argument is evaluated), everything else
// evaluates every argument eagerly, in order, before resolving the callee.
func evalCallSync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	if expr.FuncName == "if" {
		return evalIfSync(expr, locals, host)
	}

	args := make([]Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := evalExprSync(a, locals, host)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	globals := host.ensureGlobals()
	if v, ok := lookupVar(locals, globals, expr.FuncName); ok && v.Type() == Func {
		return callSync(v, args, host)
	}
	if fv, ok := builtins[expr.FuncName]; ok {
		return callSync(NewFunc(fv), args, host)
	}
	return Value{}, newRuntimeError("Call to undefined function %q", expr.FuncName)
}

// evalIfSync implements if(cond, then, else?) with lazy branch evaluation:
// only cond and the taken branch are evaluated. A missing else branch
// yields Null when cond is falsy.
func evalIfSync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	if len(expr.Args) < 2 || len(expr.Args) > 3 {
		return Value{}, newRuntimeError("if() requires 2 or 3 arguments")
	}
	cond, err := evalExprSync(expr.Args[0], locals, host)
	if err != nil {
		return Value{}, err
	}
	if truthy(cond) {
		return evalExprSync(expr.Args[1], locals, host)
	}
	if len(expr.Args) == 3 {
		return evalExprSync(expr.Args[2], locals, host)
	}
	return NewNull(), nil
}

// callSync invokes a Func value synchronously. Calling an async-marked
// function from synchronous scope is a RuntimeError, except the builtin
// fetch itself, which is special-cased as a no-op returning Null: the data
// model requires fetch to be callable (and inert) from a synchronous
// evaluator even though it is declared async, an intentional carve-out
// documented in DESIGN.md. The carve-out is keyed off the registered
// builtin's own *FuncValue (identity, via isBuiltinFetch), not its name, so
// a user script that shadows the name with its own `async function fetch`
// still gets the normal "cannot call async function" error.
func callSync(fv Value, args []Value, host *Host) (Value, error) {
	if fv.Type() != Func {
		return Value{}, newRuntimeError("value of type %s is not callable", typeOf(fv))
	}
	f := fv.Func()
	if isBuiltinFetch(f) {
		return NewNull(), nil
	}
	if f.Async {
		return Value{}, newRuntimeError("Cannot call async function %q from synchronous scope", f.Name)
	}
	v, err := f.Call(args, host)
	if err == nil {
		return v, nil
	}
	if re, ok := err.(*RuntimeError); ok {
		return Value{}, re
	}
	host.log(err.Error())
	return NewNull(), nil
}
