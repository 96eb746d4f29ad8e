package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexLineBasicTokens(t *testing.T) {
	toks, err := lexLine(`x = 1 + 2.5 * "hi"`, 1)
	require.NoError(t, err)

	kinds := make([]tokenKind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.kind)
	}
	assert.Equal(t, []tokenKind{
		tkIdent, tkOpSet, tkNumber, tkOpAdd, tkNumber, tkOpMul, tkString, tkEOF,
	}, kinds)
	assert.Equal(t, "hi", toks[6].text)
}

func TestLexLineBracketIdentWithEscape(t *testing.T) {
	toks, err := lexLine(`[my \] var] = 1`, 1)
	require.NoError(t, err)
	require.Equal(t, tkExtIdent, toks[0].kind)
	assert.Equal(t, "my ] var", toks[0].text)
}

func TestLexLineMultiCharOperatorsWinOverSingle(t *testing.T) {
	toks, err := lexLine("a <= b", 1)
	require.NoError(t, err)
	assert.Equal(t, tkOpLE, toks[1].kind)

	toks, err = lexLine("a ** b", 1)
	require.NoError(t, err)
	assert.Equal(t, tkOpPow, toks[1].kind)
}

func TestLexLineUnterminatedStringIsError(t *testing.T) {
	_, err := lexLine(`"abc`, 1)
	require.Error(t, err)
}

func TestLexLineUnknownCharacterIsSyntaxError(t *testing.T) {
	_, err := lexLine("a ~ b", 1)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Syntax error", pe.Message)
}

func TestSplitLinesJoinsBackslashContinuation(t *testing.T) {
	lines := splitLines("a = 1 + \\\n    2\nb = 3")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0].text, "1 +")
	assert.Contains(t, lines[0].text, "2")
	assert.Equal(t, 1, lines[0].line)
	assert.Equal(t, 3, lines[1].line)
}

func TestSplitLinesDropsCommentsAndBlanks(t *testing.T) {
	lines := splitLines("a = 1\n// a comment\n\nb = 2")
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].line)
	assert.Equal(t, 4, lines[1].line)
}
