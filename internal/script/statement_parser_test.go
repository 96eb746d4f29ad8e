package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScriptAssignmentAndBareExpr(t *testing.T) {
	script, err := ParseScript("x = 1 + 2\ndebugLog(x)")
	require.NoError(t, err)
	require.Len(t, script.Statements, 2)

	assign := script.Statements[0]
	assert.Equal(t, StmtExpr, assign.Kind)
	assert.Equal(t, "x", assign.Name)

	bare := script.Statements[1]
	assert.Equal(t, StmtExpr, bare.Kind)
	assert.Empty(t, bare.Name)
}

func TestParseScriptFunctionStatement(t *testing.T) {
	script, err := ParseScript("function add(a, b)\nreturn a + b\nendfunction")
	require.NoError(t, err)
	require.Len(t, script.Statements, 1)
	fn := script.Statements[0]
	assert.Equal(t, StmtFunction, fn.Kind)
	assert.Equal(t, "add", fn.FuncName)
	assert.False(t, fn.Async)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Statements, 1)
	assert.Equal(t, StmtReturn, fn.Statements[0].Kind)
}

func TestParseScriptAsyncFunctionStatement(t *testing.T) {
	script, err := ParseScript("async function f()\nreturn 1\nendfunction")
	require.NoError(t, err)
	require.Len(t, script.Statements, 1)
	assert.True(t, script.Statements[0].Async)
}

func TestParseScriptRejectsNestedFunction(t *testing.T) {
	_, err := ParseScript("function outer()\nfunction inner()\nreturn 1\nendfunction\nendfunction")
	require.Error(t, err)
}

func TestParseScriptLabelsAndJumps(t *testing.T) {
	script, err := ParseScript("top:\njumpif (x) top\njump top\nreturn 0")
	require.NoError(t, err)
	require.Len(t, script.Statements, 4)
	assert.Equal(t, StmtLabel, script.Statements[0].Kind)
	assert.Equal(t, "top", script.Statements[0].LabelName)

	jumpif := script.Statements[1]
	assert.Equal(t, StmtJump, jumpif.Kind)
	assert.Equal(t, "top", jumpif.JumpLabel)
	assert.NotNil(t, jumpif.Expr)

	jump := script.Statements[2]
	assert.Equal(t, StmtJump, jump.Kind)
	assert.Nil(t, jump.Expr)
}

func TestParseScriptRejectsDuplicateLabel(t *testing.T) {
	_, err := ParseScript("a:\na:\nreturn 0")
	require.Error(t, err)
}

func TestParseScriptInclude(t *testing.T) {
	script, err := ParseScript(`include "other.bs"`)
	require.NoError(t, err)
	require.Len(t, script.Statements, 1)
	assert.Equal(t, StmtInclude, script.Statements[0].Kind)
	assert.Equal(t, "other.bs", script.Statements[0].IncludePath)
}

func TestParseScriptMissingEndfunctionIsError(t *testing.T) {
	_, err := ParseScript("function f()\nreturn 1")
	require.Error(t, err)
}

func TestParseScriptBracketIdentAssignment(t *testing.T) {
	script, err := ParseScript(`[my var] = 5`)
	require.NoError(t, err)
	require.Len(t, script.Statements, 1)
	assert.Equal(t, "my var", script.Statements[0].Name)
}
