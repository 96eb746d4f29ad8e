package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteScriptAsyncRunsAsyncFunction(t *testing.T) {
	script, err := ParseScript("async function f()\nreturn 41 + 1\nendfunction\nreturn f()")
	require.NoError(t, err)

	v, err := ExecuteScriptAsync(context.Background(), script, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(42), v.Num())
}

func TestExecuteScriptAsyncGathersCallArgumentsConcurrently(t *testing.T) {
	script, err := ParseScript(`return mathMax(1, 2, 3)`)
	require.NoError(t, err)
	v, err := ExecuteScriptAsync(context.Background(), script, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v.Num())
}

func TestExecuteScriptAsyncContextCancellationStopsArgumentGather(t *testing.T) {
	script, err := ParseScript(`return mathMax(1, 2, 3)`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ExecuteScriptAsync(ctx, script, nil)
	require.Error(t, err)
}

func TestExecuteScriptAsyncFetchUsesHostFetchFn(t *testing.T) {
	var gotURL string
	host := NewHost()
	host.FetchFn = func(url string, init *FetchInit) (*FetchResponse, error) {
		gotURL = url
		return &FetchResponse{StatusCode: 200, Body: []byte(`"hello"`)}, nil
	}

	script, err := ParseScript(`return fetch("http://example.invalid/data")`)
	require.NoError(t, err)

	v, err := ExecuteScriptAsync(context.Background(), script, host)
	require.NoError(t, err)
	assert.Equal(t, "http://example.invalid/data", gotURL)
	assert.Equal(t, String, v.Type())
	assert.Equal(t, "hello", v.Str())
}

func TestExecuteScriptAsyncFetchNonOKStatusYieldsNullAndLogs(t *testing.T) {
	host := NewHost()
	host.FetchFn = func(url string, init *FetchInit) (*FetchResponse, error) {
		return &FetchResponse{StatusCode: 500}, nil
	}
	var logged string
	host.LogFn = func(text string) { logged = text }

	script, err := ParseScript(`return fetch("http://example.invalid/data")`)
	require.NoError(t, err)

	v, err := ExecuteScriptAsync(context.Background(), script, host)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.NotEmpty(t, logged)
}

func TestExecuteScriptAsyncFetchRewritesURL(t *testing.T) {
	host := NewHost()
	host.URLFn = func(url string) string { return "https://rewritten.example" + url }
	var gotURL string
	host.FetchFn = func(url string, init *FetchInit) (*FetchResponse, error) {
		gotURL = url
		return &FetchResponse{StatusCode: 200, IsText: true, Body: []byte("ok")}, nil
	}

	script, err := ParseScript(`return fetch("/path")`)
	require.NoError(t, err)

	_, err = ExecuteScriptAsync(context.Background(), script, host)
	require.NoError(t, err)
	assert.Equal(t, "https://rewritten.example/path", gotURL)
}

func TestEvaluateExpressionAsyncShortCircuitStillApplies(t *testing.T) {
	expr, err := ParseExpression("false && undefinedFn()")
	require.NoError(t, err)
	v, err := EvaluateExpressionAsync(context.Background(), expr, nil, nil)
	require.NoError(t, err)
	assert.False(t, v.Bool())
}

func TestExecuteScriptAsyncBuiltinNonRuntimeErrorBecomesNull(t *testing.T) {
	registerBuiltin("__testAsyncFailingBuiltin", true, func(args []Value, host HostRef) (Value, error) {
		return Value{}, assertError{"kaboom"}
	})

	var logged string
	host := NewHost()
	host.LogFn = func(text string) { logged = text }

	script, err := ParseScript("return __testAsyncFailingBuiltin()")
	require.NoError(t, err)

	v, err := ExecuteScriptAsync(context.Background(), script, host)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Equal(t, "kaboom", logged)
}
