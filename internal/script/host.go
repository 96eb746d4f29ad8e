package script

import (
	"context"
	"sync"
)

// file host.go defines the Host configuration record (C7), generalized from
// tunascript.go's WorldInterface seam into the fetch/log/url-rewrite/
// globals/statement-budget record described in the data model.

// FetchInit mirrors the handful of fetch options a script can pass: request
// method, headers, and body. It intentionally does not expose the full
// breadth of a Go http.Request; library_misc.go's defaultFetch fills in the
// rest (GET when Method is empty).
type FetchInit struct {
	Method  string
	Headers map[string]string
	Body    string
}

// FetchResponse is what a host's FetchFn returns for a single URL.
type FetchResponse struct {
	StatusCode int
	Body       []byte
	IsText     bool
}

// FetchFunc performs a single HTTP-ish request. Returning a non-nil error
// causes the calling builtin to log it (if LogFn is set) and produce Null;
// FetchFunc must not panic.
type FetchFunc func(url string, init *FetchInit) (*FetchResponse, error)

// LogFunc receives a line of host-directed log output, e.g. from debugLog
// or a caught library/JSON-parse error.
type LogFunc func(text string)

// URLFunc rewrites a URL before it is fetched; if nil, URLs pass through
// unchanged.
type URLFunc func(url string) string

// Host is the configuration record consulted by both evaluators: fetch, log
// and url-rewrite callbacks, the shared Globals mapping, and the statement
// budget. The evaluator must tolerate a fully empty (zero-value) Host.
type Host struct {
	FetchFn FetchFunc
	LogFn   LogFunc
	URLFn   URLFunc

	// Globals is the shared mutable scope. It is created lazily on first
	// use by the top-level executor if left nil, and is shared by any user
	// functions defined within that execution.
	Globals *Scope

	// MaxStatements bounds the number of statements a single evaluator
	// invocation may execute; 0 means unbounded. Defaults to 1e7 when the
	// Host is constructed via NewHost.
	MaxStatements int

	// StatementCount is incremented by the evaluator before each statement
	// and is left intact after a terminal RuntimeError for inspection.
	StatementCount int

	stmtMu sync.Mutex

	// Ctx is attached by the host embedder before calling ExecuteScriptAsync
	// or EvaluateExpressionAsync to enforce a deadline; a cancellation or
	// timeout aborts every in-flight member of the current argument-gather
	// or fetch-array errgroup. Callers enforce deadlines externally, per the
	// data model's concurrency section -- there is no in-process
	// cancellation API. Left nil, context.Background() is used.
	Ctx context.Context

	// invoke is installed by ExecuteScript/ExecuteScriptAsync (and their
	// expression-evaluating counterparts) for the duration of one top-level
	// invocation, letting standard-library functions that accept a script
	// callback (arraySort's cmp, stringReplace's replacer function, etc.)
	// call back into whichever evaluator is currently running.
	invoke func(fv Value, args []Value) (Value, error)
}

// CallFunction invokes a Func value from within a built-in, routing through
// whichever evaluator (sync or async) is currently executing. Built-ins use
// this instead of calling fv.Func().Call directly so that user-defined
// script functions passed as callbacks get the same Locals/statement-budget
// treatment as any other call.
func (h *Host) CallFunction(fv Value, args []Value) (Value, error) {
	if fv.Type() != Func {
		return Value{}, newRuntimeError("value of type %s is not callable", typeOf(fv))
	}
	if h.invoke == nil {
		return Value{}, newRuntimeError("no evaluator attached to host")
	}
	return h.invoke(fv, args)
}

// NewHost returns a Host with the default statement budget (1e7) and a
// freshly allocated, empty Globals scope.
func NewHost() *Host {
	return &Host{
		Globals:       NewScope(nil),
		MaxStatements: 10_000_000,
	}
}

// log writes text to the host's log sink, if any, and is a no-op otherwise.
func (h *Host) log(text string) {
	if h == nil || h.LogFn == nil {
		return
	}
	h.LogFn(text)
}

// rewriteURL applies the host's URL rewrite function, if any.
func (h *Host) rewriteURL(url string) string {
	if h == nil || h.URLFn == nil {
		return url
	}
	return h.URLFn(url)
}

// context returns h.Ctx, defaulting to context.Background() when unset.
func (h *Host) context() context.Context {
	if h.Ctx == nil {
		return context.Background()
	}
	return h.Ctx
}

// ensureGlobals lazily allocates Globals on first use, matching the "created
// lazily by the top-level executor" lifecycle rule in the data model.
func (h *Host) ensureGlobals() *Scope {
	if h.Globals == nil {
		h.Globals = NewScope(nil)
	}
	return h.Globals
}

// bumpStatement increments the statement counter and returns a RuntimeError
// if the budget has just been exceeded.
func (h *Host) bumpStatement() error {
	h.stmtMu.Lock()
	h.StatementCount++
	count := h.StatementCount
	h.stmtMu.Unlock()
	if h.MaxStatements > 0 && count > h.MaxStatements {
		return newRuntimeError("Exceeded maximum script statements (%d)", h.MaxStatements)
	}
	return nil
}
