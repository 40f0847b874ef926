package parser

import (
	"fmt"

	"github.com/thiremani/tac/ast"
	"github.com/thiremani/tac/lexer"
	"github.com/thiremani/tac/symbols"
	"github.com/thiremani/tac/token"
	"github.com/thiremani/tac/types"
)

const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or !X
)

var precedences = map[token.TokenType]int{
	token.LOR:  OR,
	token.LAND: AND,
	token.EQL:  EQUALS,
	token.NEQ:  EQUALS,
	token.LSS:  LESSGREATER,
	token.LEQ:  LESSGREATER,
	token.GTR:  LESSGREATER,
	token.GEQ:  LESSGREATER,
	token.ADD:  SUM,
	token.SUB:  SUM,
	token.MUL:  PRODUCT,
	token.QUO:  PRODUCT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// bailout unwinds the parser after the first error has been recorded.
type bailout struct{}

// Parser builds checked statement trees from tokens. curToken is the one-token
// lookahead. Parsing stops at the first error.
type Parser struct {
	l      *lexer.Lexer
	errors []*token.CompileError

	curToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	top      *symbols.Table
	loops    []ast.LoopID // enclosing loops, innermost last
	nextLoop ast.LoopID
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []*token.CompileError{},
		top:    symbols.New(),
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseConstant)
	p.registerPrefix(token.FLOAT, p.parseConstant)
	p.registerPrefix(token.TRUE, p.parseConstant)
	p.registerPrefix(token.FALSE, p.parseConstant)
	p.registerPrefix(token.NOT, p.parseNotExpression)
	p.registerPrefix(token.SUB, p.parseMinusExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tt := range precedences {
		p.registerInfix(tt, p.parseInfixExpression)
	}

	return p
}

// Symbols is the scope chain the parser declares into.
func (p *Parser) Symbols() *symbols.Table {
	return p.top
}

func (p *Parser) Errors() []*token.CompileError {
	return p.errors
}

// Err returns the error that stopped parsing, if any.
func (p *Parser) Err() *token.CompileError {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors[0]
}

func (p *Parser) fail(kind token.ErrorKind, tok token.Token, msg string) {
	p.check(&token.CompileError{Kind: kind, Token: tok, Msg: msg})
}

func (p *Parser) check(err *token.CompileError) {
	if err == nil {
		return
	}
	p.errors = append(p.errors, err)
	panic(bailout{})
}

func (p *Parser) nextToken() {
	p.curToken = p.l.NextToken()
	if p.curToken.Type == token.ILLEGAL {
		p.fail(token.LexicalError, p.curToken, fmt.Sprintf("unexpected character %q", p.curToken.Literal))
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

// expect consumes the current token if it has type t.
func (p *Parser) expect(t token.TokenType) token.Token {
	tok := p.curToken
	if tok.Type != t {
		p.fail(token.SyntaxError, tok, fmt.Sprintf("expected %s, got %s instead", t, tok))
	}
	p.nextToken()
	return tok
}

// ParseProgram parses program := block. It returns nil if an error stopped
// parsing; the error is then available from Err.
func (p *Parser) ParseProgram() (prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog = nil
		}
	}()

	p.nextToken()
	body := p.parseBlock()
	if !p.curTokenIs(token.EOF) {
		p.fail(token.SyntaxError, p.curToken, fmt.Sprintf("expected EOF after the program block, got %s", p.curToken))
	}

	return &ast.Program{
		Body:      body,
		Decls:     p.top.Decls(),
		FrameSize: p.top.FrameSize(),
	}
}

// parseBlock parses { decls stmts } inside a fresh scope.
func (p *Parser) parseBlock() ast.Statement {
	p.expect(token.LBRACE)
	p.top.Enter()
	p.parseDeclarations()
	s := p.parseStatements()
	p.expect(token.RBRACE)
	p.top.Leave()
	return s
}

func (p *Parser) parseDeclarations() {
	for p.curTokenIs(token.BASIC) {
		t, ok := types.Lookup(p.curToken.Literal)
		if !ok {
			p.fail(token.SyntaxError, p.curToken, fmt.Sprintf("unknown type %q", p.curToken.Literal))
		}
		p.nextToken()
		name := p.expect(token.IDENT)
		p.expect(token.SEMI)
		_, err := p.top.Declare(name, t)
		p.check(err)
	}
}

// parseStatements parses statements up to the closing brace into a
// right-nested Seq ending in Null. Empty statements and empty blocks are
// dropped, so no Seq ever holds a Null first.
func (p *Parser) parseStatements() ast.Statement {
	var stmts []ast.Statement
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if s := p.parseStatement(); !ast.IsNull(s) {
			stmts = append(stmts, s)
		}
	}

	var s ast.Statement = &ast.Null{}
	for i := len(stmts) - 1; i >= 0; i-- {
		s = &ast.Seq{First: stmts[i], Second: s}
	}
	return s
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.SEMI:
		p.nextToken()
		return &ast.Null{}
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseAssignStatement()
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.expect(token.IF)
	cond := p.parseCondition()
	then := p.parseStatement()
	if !p.curTokenIs(token.ELSE) {
		stmt, err := ast.NewIf(tok, cond, then)
		p.check(err)
		return stmt
	}

	p.nextToken()
	els := p.parseStatement()
	stmt, err := ast.NewIfElse(tok, cond, then, els)
	p.check(err)
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	stmt := ast.NewWhile(tok, p.enterLoop())
	p.nextToken()
	cond := p.parseCondition()
	body := p.parseStatement()
	p.leaveLoop()
	p.check(stmt.Init(cond, body))
	return stmt
}

func (p *Parser) parseDoStatement() ast.Statement {
	tok := p.curToken
	stmt := ast.NewDoWhile(tok, p.enterLoop())
	p.nextToken()
	body := p.parseStatement()
	p.leaveLoop()
	p.expect(token.WHILE)
	cond := p.parseCondition()
	p.expect(token.SEMI)
	p.check(stmt.Init(body, cond))
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.curToken
	if len(p.loops) == 0 {
		p.fail(token.UnenclosedBreak, tok, "break is not inside a loop")
	}
	p.nextToken()
	p.expect(token.SEMI)
	return &ast.Break{Token: tok, Loop: p.loops[len(p.loops)-1]}
}

func (p *Parser) parseAssignStatement() ast.Statement {
	nameTok := p.curToken
	if !p.curTokenIs(token.IDENT) {
		p.fail(token.SyntaxError, nameTok, fmt.Sprintf("expected a statement, got %s", nameTok))
	}
	target := p.lookup(nameTok)
	p.nextToken()
	eq := p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	stmt, err := ast.NewAssign(eq, target, value)
	p.check(err)
	p.expect(token.SEMI)
	return stmt
}

// parseCondition parses ( expr ).
func (p *Parser) parseCondition() ast.Expression {
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return cond
}

// enterLoop pushes a fresh loop id so breaks parsed before the loop is
// complete can name it.
func (p *Parser) enterLoop() ast.LoopID {
	p.nextLoop++
	p.loops = append(p.loops, p.nextLoop)
	return p.nextLoop
}

func (p *Parser) leaveLoop() {
	p.loops = p.loops[:len(p.loops)-1]
}

func (p *Parser) lookup(tok token.Token) *ast.Id {
	id, ok := p.top.Get(tok.Literal)
	if !ok {
		p.fail(token.UndeclaredIdentifier, tok, fmt.Sprintf("%q is not declared", tok.Literal))
	}
	return id
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.fail(token.SyntaxError, p.curToken, fmt.Sprintf("expected an expression, got %s", p.curToken))
	}
	leftExp := prefix()

	for precedence < p.curPrecedence() {
		infix := p.infixParseFns[p.curToken.Type]
		if infix == nil {
			return leftExp
		}
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}

	return LOWEST
}

func (p *Parser) parseIdentifier() ast.Expression {
	id := p.lookup(p.curToken)
	p.nextToken()
	return id
}

func (p *Parser) parseConstant() ast.Expression {
	c, err := ast.NewConstant(p.curToken)
	p.check(err)
	p.nextToken()
	return c
}

func (p *Parser) parseNotExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	exp, err := ast.NewNot(tok, operand)
	p.check(err)
	return exp
}

func (p *Parser) parseMinusExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	exp, err := ast.NewUnary(tok, operand)
	p.check(err)
	return exp
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return exp
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)

	switch tok.Type {
	case token.ADD, token.SUB, token.MUL, token.QUO:
		exp, err := ast.NewArith(tok, left, right)
		p.check(err)
		return exp
	case token.LAND:
		exp, err := ast.NewAnd(tok, left, right)
		p.check(err)
		return exp
	case token.LOR:
		exp, err := ast.NewOr(tok, left, right)
		p.check(err)
		return exp
	default:
		exp, err := ast.NewRel(tok, left, right)
		p.check(err)
		return exp
	}
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}
