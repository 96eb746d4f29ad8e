package script

// file runner.go is the single statement dispatcher shared by both
// evaluators (C5/C6), grounded on tunascript/eval.go's node-kind switch but
// restructured around the spec's statement loop with an instruction
// pointer, a lazily built label-index cache, and the statement budget. The
// only thing that varies between sync and async execution is the
// expression evaluator passed in: evalExprSync (eval_sync.go) or
// evalExprAsync (eval_async.go).

// exprEvalFunc evaluates a single expression against the given scope/host.
// It is the one seam where sync and async evaluation differ.
type exprEvalFunc func(expr *Expression, locals *Scope, host *Host) (Value, error)

// runStatements executes stmts to completion (a Return, a RuntimeError, or
// falling off the end), incrementing host's statement counter before each
// statement and honoring the statement budget, jumps, labels, and
// assignment-to-Locals-or-Globals rules from the data model.
func runStatements(stmts []*Statement, locals *Scope, host *Host, evalExpr exprEvalFunc) (Value, error) {
	globals := host.ensureGlobals()
	labelCache := make(map[string]int)

	ip := 0
	for ip < len(stmts) {
		if err := host.bumpStatement(); err != nil {
			return Value{}, err
		}
		st := stmts[ip]

		switch st.Kind {
		case StmtExpr:
			v, err := evalExpr(st.Expr, locals, host)
			if err != nil {
				return Value{}, err
			}
			if st.Name != "" {
				assignVar(locals, globals, st.Name, v)
			}

		case StmtJump:
			doJump := true
			if st.Expr != nil {
				v, err := evalExpr(st.Expr, locals, host)
				if err != nil {
					return Value{}, err
				}
				doJump = truthy(v)
			}
			if doJump {
				idx, ok := labelCache[st.JumpLabel]
				if !ok {
					idx, ok = findLabel(stmts, st.JumpLabel)
					if !ok {
						return Value{}, newRuntimeError("Unknown jump label")
					}
					labelCache[st.JumpLabel] = idx
				}
				ip = idx
				continue
			}

		case StmtReturn:
			if st.Expr != nil {
				v, err := evalExpr(st.Expr, locals, host)
				if err != nil {
					return Value{}, err
				}
				return v, nil
			}
			return NewNull(), nil

		case StmtFunction:
			fv := buildUserFunction(st, evalExpr)
			globals.Set(st.FuncName, NewFunc(fv))

		case StmtLabel:
			// no-op at run time

		case StmtInclude:
			return Value{}, newRuntimeError("Include within non-async scope")
		}

		ip++
	}
	return NewNull(), nil
}

// findLabel scans stmts for a Label whose name matches, returning its
// index. Labels may be referenced before or after the jump that targets
// them.
func findLabel(stmts []*Statement, name string) (int, bool) {
	for i, st := range stmts {
		if st.Kind == StmtLabel && st.LabelName == name {
			return i, true
		}
	}
	return 0, false
}

// buildUserFunction constructs the callable for a Function statement: a
// fresh Locals frame is built per call (each declared parameter bound to
// the corresponding positional argument, or Null if fewer were supplied;
// extra arguments are ignored), then the body runs via the same evalExpr
// the defining statement list was itself running under.
func buildUserFunction(st *Statement, evalExpr exprEvalFunc) *FuncValue {
	params := st.Params
	body := st.Statements
	name := st.FuncName

	return &FuncValue{
		Name:  name,
		Async: st.Async,
		Call: func(args []Value, host *Host) (Value, error) {
			locals := NewScope(nil)
			for i, p := range params {
				if i < len(args) {
					locals.Set(p, args[i])
				} else {
					locals.Set(p, NewNull())
				}
			}
			return runStatements(body, locals, host, evalExpr)
		},
	}
}
