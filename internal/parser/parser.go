// Package parser is a recursive-descent (Pratt, for expressions) parser
// that turns a internal/lexer token stream into an internal/ast tree.
package parser

import (
	"fmt"

	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/lexer"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/token"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	precLowest
	precEquals  // == !=
	precCompare // < > <= >=
	precSum     // + -
	precProduct // * /
)

var precedences = map[token.Type]int{
	token.EQ:    precEquals,
	token.NEQ:   precEquals,
	token.LT:    precCompare,
	token.GT:    precCompare,
	token.LE:    precCompare,
	token.GE:    precCompare,
	token.PLUS:  precSum,
	token.MINUS: precSum,
	token.STAR:  precProduct,
	token.SLASH: precProduct,
}

// Parser holds the mutable state of a single parse.
type Parser struct {
	file *source.File
	l    *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors diagnostics.List
}

// New creates a Parser reading from file.
func New(file *source.File) *Parser {
	p := &Parser{file: file, l: lexer.New(file)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

// expect consumes the current token if it matches t, else records a syntax
// error and leaves the cursor in place so callers can attempt recovery.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.curToken.Span, "expected %s, got %s ('%s')", t, p.curToken.Type, p.curToken.Lexeme)
	return false
}

func (p *Parser) errorf(span source.Span, format string, args ...interface{}) {
	p.errors.Add(diagnostics.Syntax(fmt.Sprintf(format, args...), span))
}

// Errors returns every syntax error collected during the parse.
func (p *Parser) Errors() []*diagnostics.Diagnostic {
	return p.errors.Items()
}

// ParseFile parses a whole compilation unit.
func ParseFile(file *source.File) (*ast.File, []*diagnostics.Diagnostic) {
	p := New(file)
	f := &ast.File{SourceFile: file}
	for !p.curIs(token.EOF) {
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			f.Statements = append(f.Statements, stmt)
		} else {
			p.nextToken() // avoid an infinite loop on unrecoverable input
		}
	}
	return f, p.Errors()
}

func (p *Parser) parseTopLevelStatement() ast.Statement {
	switch p.curToken.Type {
	case token.KW_USE:
		return p.parseUse()
	case token.KW_CLASS:
		return p.parseClass()
	case token.KW_INTERFACE:
		return p.parseInterface()
	case token.KW_EXTEND:
		return p.parseExtend()
	case token.KW_FUNC:
		return p.parseFunction()
	default:
		p.errorf(p.curToken.Span, "unexpected token %s at top level", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseDottedPath() ast.DottedPath {
	start := p.curToken.Span
	var segs []string
	segs = append(segs, p.curToken.Lexeme)
	end := p.curToken.Span
	p.nextToken()
	for p.curIs(token.DOT) {
		p.nextToken()
		if !p.curIs(token.IDENT) {
			p.errorf(p.curToken.Span, "expected identifier after '.'")
			break
		}
		segs = append(segs, p.curToken.Lexeme)
		end = p.curToken.Span
		p.nextToken()
	}
	return ast.DottedPath{Segments: segs, SpanVal: source.Merge(start, end)}
}

func (p *Parser) parseUse() ast.Statement {
	tok := p.curToken
	p.nextToken() // consume 'use'
	path := p.parseDottedPath()
	var alias *string
	if p.curIs(token.KW_AS) {
		p.nextToken()
		if p.curIs(token.IDENT) {
			a := p.curToken.Lexeme
			alias = &a
			p.nextToken()
		}
	}
	end := p.curToken.Span
	p.expect(token.SEMICOLON)
	return &ast.UseAst{Token: tok, Path: path, Alias: alias, SpanVal: source.Merge(tok.Span, end)}
}

func (p *Parser) parseTypeName() *ast.TypeNameAst {
	tok := p.curToken
	path := p.parseDottedPath()
	n := &ast.TypeNameAst{Token: tok, Path: path, SpanVal: path.Span()}
	if p.curIs(token.QUESTION) {
		n.Nullable = true
		n.SpanVal = source.Merge(n.SpanVal, p.curToken.Span)
		p.nextToken()
	}
	if p.curIs(token.KW_REF) {
		n.Ref = true
		n.SpanVal = source.Merge(n.SpanVal, p.curToken.Span)
		p.nextToken()
	}
	return n
}

func (p *Parser) parseArgumentList() []*ast.ArgumentAst {
	var args []*ast.ArgumentAst
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		tok := p.curToken
		if p.curIs(token.KW_THIS) {
			p.nextToken()
			args = append(args, &ast.ArgumentAst{Token: tok, IsThis: true, Name: "this", SpanVal: tok.Span})
		} else if p.curIs(token.IDENT) {
			name := p.curToken.Lexeme
			p.nextToken()
			p.expect(token.COLON)
			typ := p.parseTypeName()
			args = append(args, &ast.ArgumentAst{Token: tok, Name: name, Type: typ, SpanVal: source.Merge(tok.Span, typ.Span())})
		} else {
			p.errorf(p.curToken.Span, "expected argument, got %s", p.curToken.Type)
			break
		}
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RPAREN)
	return args
}

// parseFunction parses `func name(args): RetType { body }` or, without a
// trailing body, `func name(args): RetType;` (an interface signature).
func (p *Parser) parseFunction() *ast.FunctionDefinitionAst {
	tok := p.curToken
	p.nextToken() // consume 'func'
	name := p.curToken.Lexeme
	p.expect(token.IDENT)
	args := p.parseArgumentList()
	p.expect(token.COLON)
	ret := p.parseTypeName()
	fn := &ast.FunctionDefinitionAst{Token: tok, Name: name, Arguments: args, ReturnType: ret}
	if p.curIs(token.LBRACE) {
		fn.Body = p.parseBody()
		fn.SpanVal = source.Merge(tok.Span, fn.Body.Span())
	} else {
		end := p.curToken.Span
		p.expect(token.SEMICOLON)
		fn.SpanVal = source.Merge(tok.Span, end)
	}
	return fn
}

func (p *Parser) parseClassFields() []*ast.ClassFieldAst {
	var fields []*ast.ClassFieldAst
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fields = append(fields, p.parseClassField())
	}
	p.expect(token.RBRACE)
	return fields
}

func (p *Parser) parseClassField() *ast.ClassFieldAst {
	public := false
	if p.curIs(token.KW_PUB) {
		public = true
		p.nextToken()
	}
	if p.curIs(token.KW_FUNC) {
		fn := p.parseFunction()
		fn.Public = public
		return &ast.ClassFieldAst{Function: fn}
	}
	tok := p.curToken
	name := p.curToken.Lexeme
	p.expect(token.IDENT)
	p.expect(token.COLON)
	typ := p.parseTypeName()
	end := p.curToken.Span
	p.expect(token.SEMICOLON)
	return &ast.ClassFieldAst{Data: &ast.DataFieldAst{Token: tok, Name: name, Type: typ, Public: public, SpanVal: source.Merge(tok.Span, end)}}
}

func (p *Parser) parseClass() ast.Statement {
	tok := p.curToken
	p.nextToken() // consume 'class'
	name := p.curToken.Lexeme
	p.expect(token.IDENT)
	fields := p.parseClassFields()
	return &ast.ClassDefinitionAst{Token: tok, Name: name, Fields: fields, SpanVal: source.Merge(tok.Span, p.prevEndSpan())}
}

// prevEndSpan approximates the span of the token just consumed, for nodes
// whose precise end we don't track token-by-token.
func (p *Parser) prevEndSpan() source.Span {
	return p.curToken.Span
}

func (p *Parser) parseBaseList() []ast.DottedPath {
	var bases []ast.DottedPath
	if !p.curIs(token.COLON) {
		return bases
	}
	p.nextToken()
	bases = append(bases, p.parseDottedPath())
	for p.curIs(token.COMMA) {
		p.nextToken()
		bases = append(bases, p.parseDottedPath())
	}
	return bases
}

func (p *Parser) parseInterface() ast.Statement {
	tok := p.curToken
	p.nextToken() // consume 'interface'
	name := p.curToken.Lexeme
	p.expect(token.IDENT)
	bases := p.parseBaseList()
	var fields []*ast.InterfaceFieldAst
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.KW_FUNC) {
			fields = append(fields, &ast.InterfaceFieldAst{Function: p.parseFunction()})
			continue
		}
		dtok := p.curToken
		fname := p.curToken.Lexeme
		p.expect(token.IDENT)
		p.expect(token.COLON)
		typ := p.parseTypeName()
		end := p.curToken.Span
		p.expect(token.SEMICOLON)
		fields = append(fields, &ast.InterfaceFieldAst{Data: &ast.DataFieldAst{Token: dtok, Name: fname, Type: typ, SpanVal: source.Merge(dtok.Span, end)}})
	}
	p.expect(token.RBRACE)
	return &ast.InterfaceDefinitionAst{Token: tok, Name: name, Bases: bases, Fields: fields, SpanVal: source.Merge(tok.Span, p.prevEndSpan())}
}

func (p *Parser) parseExtend() ast.Statement {
	tok := p.curToken
	p.nextToken() // consume 'extend'
	target := p.parseDottedPath()
	interfaces := p.parseBaseList()
	fields := p.parseClassFields()
	return &ast.ExtendDefinitionAst{Token: tok, Target: target, Interfaces: interfaces, Fields: fields, SpanVal: source.Merge(tok.Span, p.prevEndSpan())}
}

// --- bodies and statements --------------------------------------------------

func (p *Parser) parseBody() *ast.BodyAst {
	tok := p.curToken
	p.expect(token.LBRACE)
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		s := p.parseBodyStatement()
		if s != nil {
			stmts = append(stmts, s)
		} else {
			p.nextToken()
		}
	}
	end := p.curToken.Span
	p.expect(token.RBRACE)
	return &ast.BodyAst{Statements: stmts, SpanVal: source.Merge(tok.Span, end)}
}

func (p *Parser) parseBodyStatement() ast.Statement {
	switch p.curToken.Type {
	case token.KW_VAR, token.KW_CONST:
		return p.parseVariableDefinition()
	case token.KW_IF:
		return p.parseIfCondition()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseVariableDefinition() ast.Statement {
	tok := p.curToken
	isConst := p.curIs(token.KW_CONST)
	p.nextToken() // consume var/const
	name := p.curToken.Lexeme
	p.expect(token.IDENT)
	var typ *ast.TypeNameAst
	if p.curIs(token.COLON) {
		p.nextToken()
		typ = p.parseTypeName()
	}
	p.expect(token.WALRUS)
	value := p.parseExpression(precLowest)
	end := p.curToken.Span
	p.expect(token.SEMICOLON)
	return &ast.VariableDefinitionAst{Token: tok, Name: name, IsConstant: isConst, Type: typ, Value: value, SpanVal: source.Merge(tok.Span, end)}
}

func (p *Parser) parseIfCondition() ast.Statement {
	tok := p.curToken
	p.nextToken() // consume 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	then := p.parseBody()
	ifNode := &ast.IfConditionAst{Token: tok, Condition: cond, Then: then, SpanVal: source.Merge(tok.Span, then.Span())}
	if p.curIs(token.KW_ELSE) {
		p.nextToken()
		elseBody := p.parseBody()
		ifNode.Else = elseBody
		ifNode.SpanVal = source.Merge(ifNode.SpanVal, elseBody.Span())
	}
	return ifNode
}

// parseExprStatement parses either a bare function call or an assignment,
// both of which start with an expression.
func (p *Parser) parseExprStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if p.curIs(token.ASSIGN) {
		p.nextToken()
		value := p.parseExpression(precLowest)
		end := p.curToken.Span
		p.expect(token.SEMICOLON)
		return &ast.VariableAssignAst{Token: tok, Target: expr, Value: value, SpanVal: source.Merge(tok.Span, end)}
	}
	end := p.curToken.Span
	p.expect(token.SEMICOLON)
	if call, ok := expr.(*ast.FunctionCallAst); ok {
		call.SpanVal = source.Merge(call.SpanVal, end)
		return call
	}
	p.errorf(expr.Span(), "expression statement must be a function call")
	return nil
}

// --- expressions (Pratt parser) --------------------------------------------

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for !p.curIs(token.SEMICOLON) && precedence < p.curPrecedence() {
		op := p.curToken
		opPrec := p.curPrecedence()
		p.nextToken()
		right := p.parseExpression(opPrec)
		left = &ast.BinaryExpr{Token: op, Op: op.Type, Left: left, Right: right, SpanVal: source.Merge(left.Span(), p.prevEndSpan())}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		return p.parseIntegerLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.KW_TRUE, token.KW_FALSE:
		return p.parseBoolLiteral()
	case token.AMP:
		return p.parseReferenceExpr()
	case token.LPAREN:
		return p.parseParenExpr()
	case token.IDENT, token.KW_THIS:
		return p.parsePostfix(p.parseIdentifierOrThis())
	default:
		p.errorf(p.curToken.Span, "unexpected token %s in expression", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseIdentifierOrThis() ast.Expression {
	tok := p.curToken
	id := &ast.Identifier{Token: tok, Name: tok.Lexeme, SpanVal: tok.Span}
	p.nextToken()
	return id
}

// parsePostfix wraps base in member-access / call nodes for any trailing
// `.field` or `(args)`.
func (p *Parser) parsePostfix(base ast.Expression) ast.Expression {
	for {
		switch {
		case p.curIs(token.DOT):
			tok := p.curToken
			p.nextToken()
			field := p.curToken.Lexeme
			p.expect(token.IDENT)
			base = &ast.MemberAccessAst{Token: tok, Target: base, Field: field, SpanVal: source.Merge(base.Span(), tok.Span)}
		case p.curIs(token.LPAREN):
			tok := p.curToken
			args := p.parseCallArguments()
			base = &ast.FunctionCallAst{Token: tok, Callee: base, Arguments: args, SpanVal: source.Merge(base.Span(), p.prevEndSpan())}
		default:
			return base
		}
	}
}

func (p *Parser) parseCallArguments() []ast.Expression {
	var args []ast.Expression
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression(precLowest))
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.curToken
	var v int64
	for _, ch := range tok.Lexeme {
		v = v*10 + int64(ch-'0')
	}
	p.nextToken()
	return &ast.IntegerLiteral{Token: tok, Value: v, SpanVal: tok.Span}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.StringLiteral{Token: tok, Value: tok.Lexeme, SpanVal: tok.Span}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.curToken
	p.nextToken()
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.KW_TRUE, SpanVal: tok.Span}
}

func (p *Parser) parseReferenceExpr() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(precProduct)
	return &ast.ReferenceExpr{Token: tok, Operand: operand, SpanVal: source.Merge(tok.Span, operand.Span())}
}

func (p *Parser) parseParenExpr() ast.Expression {
	tok := p.curToken
	p.nextToken()
	inner := p.parseExpression(precLowest)
	end := p.curToken.Span
	p.expect(token.RPAREN)
	return &ast.ParenExpr{Token: tok, Inner: inner, SpanVal: source.Merge(tok.Span, end)}
}
