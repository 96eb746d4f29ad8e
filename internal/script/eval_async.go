package script

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// file eval_async.go is the asynchronous evaluator (C6): the same statement
// dispatcher and expression semantics as eval_sync.go, except that a call
// expression's arguments are gathered concurrently (one goroutine per
// argument, via golang.org/x/sync/errgroup, mirroring Promise.all-style
// gather semantics) and a call to an async-marked function is awaited
// in-process rather than rejected. fetch is a real, blocking host round trip
// here rather than the synchronous no-op.

// ExecuteScriptAsync runs a parsed Script to completion under the
// asynchronous evaluator. ctx, if non-nil, bounds every fetch and every
// concurrent argument-gather errgroup spawned during the run; callers
// enforce deadlines this way since the evaluator has no in-process
// cancellation API of its own.
func ExecuteScriptAsync(ctx context.Context, script *Script, host *Host) (Value, error) {
	if host == nil {
		host = NewHost()
	}
	host.ensureGlobals()
	host.Ctx = ctx
	host.invoke = func(fv Value, args []Value) (Value, error) {
		return callAsync(fv, args, host)
	}
	return runStatements(script.Statements, nil, host, evalExprAsync)
}

// EvaluateExpressionAsync evaluates a single standalone Expression under the
// asynchronous evaluator.
func EvaluateExpressionAsync(ctx context.Context, expr *Expression, host *Host, locals *Scope) (Value, error) {
	if host == nil {
		host = NewHost()
	}
	host.ensureGlobals()
	host.Ctx = ctx
	host.invoke = func(fv Value, args []Value) (Value, error) {
		return callAsync(fv, args, host)
	}
	return evalExprAsync(expr, locals, host)
}

// evalExprAsync mirrors evalExprSync exactly except for ExprCall, where
// arguments gather concurrently and the callee resolution allows async
// functions.
func evalExprAsync(expr *Expression, locals *Scope, host *Host) (Value, error) {
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
		return evalExprAsync(expr.Operand, locals, host)

	case ExprUnary:
		v, err := evalExprAsync(expr.Operand, locals, host)
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
		return evalBinaryAsync(expr, locals, host)

	case ExprCall:
		return evalCallAsync(expr, locals, host)
	}
	return NewNull(), newRuntimeError("unknown expression kind")
}

func evalBinaryAsync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	if expr.BinaryOp == OpAnd || expr.BinaryOp == OpOr {
		left, err := evalExprAsync(expr.Left, locals, host)
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
		right, err := evalExprAsync(expr.Right, locals, host)
		if err != nil {
			return Value{}, err
		}
		return NewBool(truthy(right)), nil
	}

	left, err := evalExprAsync(expr.Left, locals, host)
	if err != nil {
		return Value{}, err
	}
	right, err := evalExprAsync(expr.Right, locals, host)
	if err != nil {
		return Value{}, err
	}
	return applyBinary(expr.BinaryOp, left, right), nil
}

// evalCallAsync evaluates a call expression. "if" stays lazy and
// single-threaded, same as the synchronous evaluator; every other call
// gathers its arguments concurrently, one goroutine per argument, before
// resolving and invoking the callee.
func evalCallAsync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	if expr.FuncName == "if" {
		return evalIfAsync(expr, locals, host)
	}

	args := make([]Value, len(expr.Args))
	if len(expr.Args) > 0 {
		g, ctx := errgroup.WithContext(host.context())
		for i, a := range expr.Args {
			i, a := i, a
			g.Go(func() error {
				if ctx.Err() != nil {
					return newRuntimeError("script execution cancelled: %s", ctx.Err())
				}
				v, err := evalExprAsync(a, locals, host)
				if err != nil {
					return err
				}
				args[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Value{}, err
		}
	}

	globals := host.ensureGlobals()
	if v, ok := lookupVar(locals, globals, expr.FuncName); ok && v.Type() == Func {
		return callAsync(v, args, host)
	}
	if fv, ok := builtins[expr.FuncName]; ok {
		return callAsync(NewFunc(fv), args, host)
	}
	return Value{}, newRuntimeError("Call to undefined function %q", expr.FuncName)
}

func evalIfAsync(expr *Expression, locals *Scope, host *Host) (Value, error) {
	if len(expr.Args) < 2 || len(expr.Args) > 3 {
		return Value{}, newRuntimeError("if() requires 2 or 3 arguments")
	}
	cond, err := evalExprAsync(expr.Args[0], locals, host)
	if err != nil {
		return Value{}, err
	}
	if truthy(cond) {
		return evalExprAsync(expr.Args[1], locals, host)
	}
	if len(expr.Args) == 3 {
		return evalExprAsync(expr.Args[2], locals, host)
	}
	return NewNull(), nil
}

// callAsync invokes a Func value, awaiting it in-process regardless of
// whether it is marked async: the asynchronous evaluator is where an async
// function actually runs to completion.
func callAsync(fv Value, args []Value, host *Host) (Value, error) {
	if fv.Type() != Func {
		return Value{}, newRuntimeError("value of type %s is not callable", typeOf(fv))
	}
	v, err := fv.Func().Call(args, host)
	if err == nil {
		return v, nil
	}
	if re, ok := err.(*RuntimeError); ok {
		return Value{}, re
	}
	host.log(err.Error())
	return NewNull(), nil
}
