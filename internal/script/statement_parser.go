package script

import "strings"

// file statement_parser.go implements the line-oriented statement grammar
// (C3 continued): assignment, function/endfunction, labels, jump/jumpif,
// return, include, and bare expression statements, dispatched by leading
// keyword the way tunascript's line-by-line command forms are recognized.

// ParseScript parses a complete script source, per the public API
// (`parseScript(text|lines) -> Script`).
func ParseScript(text string) (*Script, error) {
	lines := splitLines(text)
	stmts, _, err := parseStatementBlock(lines, 0, false)
	if err != nil {
		return nil, err
	}
	if err := ValidateStatements(stmts, "$", false); err != nil {
		return nil, err
	}
	return &Script{Statements: stmts}, nil
}

// parseStatementBlock parses lines[start:] as a statement list. If
// insideFunction is true, a nested "function"/"async function" header is a
// parse error. It stops at either the end of lines or (when insideFunction)
// the matching "endfunction" line, returning the statements and the index
// one past the last line consumed.
func parseStatementBlock(lines []sourceLine, start int, insideFunction bool) ([]*Statement, int, error) {
	var stmts []*Statement
	i := start
	for i < len(lines) {
		ln := lines[i]
		trimmed := strings.TrimSpace(ln.text)

		if insideFunction && trimmed == "endfunction" {
			return stmts, i, nil
		}

		toks, err := lexLine(trimmed, ln.line)
		if err != nil {
			return nil, 0, err
		}
		if len(toks) == 1 { // just EOF: blank after trim, shouldn't normally occur
			i++
			continue
		}

		first := toks[0]

		switch {
		case isKeyword(first, "function"):
			stmt, next, err := parseFunctionStatement(lines, i, false, insideFunction)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, stmt)
			i = next
			continue

		case isKeyword(first, "async") && len(toks) > 1 && isKeyword(toks[1], "function"):
			stmt, next, err := parseFunctionStatement(lines, i, true, insideFunction)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, stmt)
			i = next
			continue

		case isKeyword(first, "endfunction"):
			return nil, 0, newSyntaxError(trimmed, ln.line, 1)

		case isKeyword(first, "jumpif"):
			stmt, err := parseJumpIf(toks, ln.line)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, stmt)

		case isKeyword(first, "jump"):
			stmt, err := parseJump(toks, ln.line)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, stmt)

		case isKeyword(first, "return"):
			stmt, err := parseReturn(toks, ln.line)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, stmt)

		case isKeyword(first, "include"):
			stmt, err := parseInclude(toks, ln.line)
			if err != nil {
				return nil, 0, err
			}
			stmts = append(stmts, stmt)

		case (first.kind == tkIdent || first.kind == tkExtIdent) && len(toks) == 3 && toks[1].kind == tkColon && toks[2].kind == tkEOF:
			stmts = append(stmts, &Statement{Kind: StmtLabel, LabelName: first.text, Line: ln.line})

		case (first.kind == tkIdent || first.kind == tkExtIdent) && len(toks) >= 2 && toks[1].kind == tkOpSet:
			name := first.text
			p := &exprParser{toks: toks, pos: 2}
			expr, err := p.parseExpression()
			if err != nil {
				return nil, 0, err
			}
			if !p.atEnd() {
				return nil, 0, newSyntaxError(p.remainingText(), p.peek().line, p.peek().col)
			}
			stmts = append(stmts, &Statement{Kind: StmtExpr, Name: name, Expr: expr, Line: ln.line})

		default:
			p := newExprParser(toks)
			expr, err := p.parseExpression()
			if err != nil {
				return nil, 0, err
			}
			if !p.atEnd() {
				return nil, 0, newSyntaxError(p.remainingText(), p.peek().line, p.peek().col)
			}
			stmts = append(stmts, &Statement{Kind: StmtExpr, Expr: expr, Line: ln.line})
		}
		i++
	}

	if insideFunction {
		return nil, 0, &ParseError{Message: "Syntax error", Tail: "expected endfunction, found end of input"}
	}
	return stmts, i, nil
}

// isKeyword reports whether t is a plain identifier token whose text is
// exactly kw (statement-leading keywords are case-sensitive literals, not
// part of the identifier namespace).
func isKeyword(t lexToken, kw string) bool {
	return t.kind == tkIdent && t.text == kw
}

func parseFunctionStatement(lines []sourceLine, headerIdx int, async bool, insideFunction bool) (*Statement, int, error) {
	if insideFunction {
		return nil, 0, &ParseError{Message: "Syntax error", Tail: "nested function definitions are not allowed", Line: lines[headerIdx].line}
	}

	ln := lines[headerIdx]
	toks, err := lexLine(strings.TrimSpace(ln.text), ln.line)
	if err != nil {
		return nil, 0, err
	}

	pos := 0
	if async {
		pos = 2 // "async" "function"
	} else {
		pos = 1 // "function"
	}
	if pos >= len(toks) || toks[pos].kind != tkIdent {
		return nil, 0, newSyntaxError(ln.text, ln.line, 1)
	}
	name := toks[pos].text
	pos++
	if pos >= len(toks) || toks[pos].kind != tkLParen {
		return nil, 0, newSyntaxError(ln.text, ln.line, 1)
	}
	pos++

	var params []string
	if toks[pos].kind != tkRParen {
		for {
			if toks[pos].kind != tkIdent {
				return nil, 0, newSyntaxError(ln.text, ln.line, 1)
			}
			params = append(params, toks[pos].text)
			pos++
			if toks[pos].kind == tkComma {
				pos++
				continue
			}
			break
		}
	}
	if toks[pos].kind != tkRParen {
		return nil, 0, newUnmatchedParenError(ln.line, 1)
	}
	pos++
	if toks[pos].kind != tkEOF {
		return nil, 0, newSyntaxError(ln.text, ln.line, 1)
	}

	body, next, err := parseStatementBlock(lines, headerIdx+1, true)
	if err != nil {
		return nil, 0, err
	}
	if next >= len(lines) || strings.TrimSpace(lines[next].text) != "endfunction" {
		return nil, 0, &ParseError{Message: "Syntax error", Tail: "expected endfunction", Line: ln.line}
	}

	return &Statement{
		Kind:       StmtFunction,
		FuncName:   name,
		Async:      async,
		Params:     params,
		Statements: body,
		Line:       ln.line,
	}, next + 1, nil
}

func parseJump(toks []lexToken, line int) (*Statement, error) {
	if len(toks) != 3 || (toks[1].kind != tkIdent && toks[1].kind != tkExtIdent) || toks[2].kind != tkEOF {
		return nil, newSyntaxError(tokensText(toks[1:]), line, toks[0].col)
	}
	return &Statement{Kind: StmtJump, JumpLabel: toks[1].text, Line: line}, nil
}

func parseJumpIf(toks []lexToken, line int) (*Statement, error) {
	if len(toks) < 2 || toks[1].kind != tkLParen {
		return nil, newSyntaxError(tokensText(toks[1:]), line, toks[0].col)
	}
	depth := 0
	closeIdx := -1
	for i := 1; i < len(toks); i++ {
		switch toks[i].kind {
		case tkLParen:
			depth++
		case tkRParen:
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx != -1 {
			break
		}
	}
	if closeIdx == -1 {
		return nil, newUnmatchedParenError(line, toks[1].col)
	}
	innerToks := append(append([]lexToken{}, toks[2:closeIdx]...), lexToken{kind: tkEOF})
	p := newExprParser(innerToks)
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, newSyntaxError(p.remainingText(), p.peek().line, p.peek().col)
	}
	if closeIdx+1 >= len(toks) || (toks[closeIdx+1].kind != tkIdent && toks[closeIdx+1].kind != tkExtIdent) || toks[closeIdx+2].kind != tkEOF {
		return nil, newSyntaxError(tokensText(toks[closeIdx+1:]), line, toks[0].col)
	}
	return &Statement{Kind: StmtJump, JumpLabel: toks[closeIdx+1].text, Expr: cond, Line: line}, nil
}

func parseReturn(toks []lexToken, line int) (*Statement, error) {
	if len(toks) == 2 && toks[1].kind == tkEOF {
		return &Statement{Kind: StmtReturn, Line: line}, nil
	}
	p := &exprParser{toks: toks, pos: 1}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, newSyntaxError(p.remainingText(), p.peek().line, p.peek().col)
	}
	return &Statement{Kind: StmtReturn, Expr: expr, Line: line}, nil
}

func parseInclude(toks []lexToken, line int) (*Statement, error) {
	if len(toks) != 3 || toks[1].kind != tkString || toks[2].kind != tkEOF {
		return nil, newSyntaxError(tokensText(toks[1:]), line, toks[0].col)
	}
	return &Statement{Kind: StmtInclude, IncludePath: toks[1].text, Line: line}, nil
}

func tokensText(toks []lexToken) string {
	var out string
	for _, t := range toks {
		if t.kind == tkEOF {
			continue
		}
		if out != "" {
			out += " "
		}
		out += t.text
	}
	return out
}
