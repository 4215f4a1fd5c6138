package parser

import (
	"strconv"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/lexer"
	"github.com/luka-lang/lukac/internal/types"
)

// parseExpression is the grammar's entry point: expression → assignment.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// assignment → equality ('=' assignment)?
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseEquality()
	if p.accept(lexer.ASSIGN) {
		tok := p.curTok
		right := p.parseAssignment()
		if !ast.IsValidAssignTarget(left) {
			p.fail("invalid assignment target")
		}
		return ast.NewAssignment(left, right, &tok)
	}
	return left
}

// equality → comparison (('==' | '!=') comparison)*
func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.at(lexer.EQ) || p.at(lexer.NE) {
		op, tok := p.binOpFor(p.curTok.Kind), p.curTok
		p.nextToken()
		right := p.parseComparison()
		left = ast.NewBinary(op, left, right, &tok)
	}
	return left
}

// comparison → term (('<' | '>' | '<=' | '>=') term)*
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	for p.at(lexer.LT) || p.at(lexer.GT) || p.at(lexer.LE) || p.at(lexer.GE) {
		op, tok := p.binOpFor(p.curTok.Kind), p.curTok
		p.nextToken()
		right := p.parseTerm()
		left = ast.NewBinary(op, left, right, &tok)
	}
	return left
}

// term → factor (('+' | '-') factor)*
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op, tok := p.binOpFor(p.curTok.Kind), p.curTok
		p.nextToken()
		right := p.parseFactor()
		left = ast.NewBinary(op, left, right, &tok)
	}
	return left
}

// factor → unary (('*' | '/' | '%') unary)*
func (p *Parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	for p.at(lexer.STAR) || p.at(lexer.SLASH) || p.at(lexer.PERCENT) {
		op, tok := p.binOpFor(p.curTok.Kind), p.curTok
		p.nextToken()
		right := p.parseUnary()
		left = ast.NewBinary(op, left, right, &tok)
	}
	return left
}

func (p *Parser) binOpFor(kind lexer.TokenType) ast.BinaryOp {
	switch kind {
	case lexer.PLUS:
		return ast.BinAdd
	case lexer.MINUS:
		return ast.BinSub
	case lexer.STAR:
		return ast.BinMul
	case lexer.SLASH:
		return ast.BinDiv
	case lexer.PERCENT:
		return ast.BinMod
	case lexer.EQ:
		return ast.BinEq
	case lexer.NE:
		return ast.BinNe
	case lexer.LT:
		return ast.BinLt
	case lexer.GT:
		return ast.BinGt
	case lexer.LE:
		return ast.BinLe
	case lexer.GE:
		return ast.BinGe
	default:
		p.fail("not a binary operator")
		return 0
	}
}

// unary → ('!' | '-' | '&' | '*') unary | primary, with a trailing
// `as <type>` turning any expression into a Cast.
func (p *Parser) parseUnary() ast.Expr {
	var expr ast.Expr
	switch p.curTok.Kind {
	case lexer.BANG:
		tok := p.curTok
		p.nextToken()
		expr = ast.NewUnary(ast.UnaryNot, p.parseUnary(), &tok)
	case lexer.MINUS:
		tok := p.curTok
		p.nextToken()
		expr = ast.NewUnary(ast.UnaryNeg, p.parseUnary(), &tok)
	case lexer.AMPERSAND:
		tok := p.curTok
		p.nextToken()
		expr = ast.NewUnary(ast.UnaryAddr, p.parseUnary(), &tok)
	case lexer.STAR:
		tok := p.curTok
		p.nextToken()
		expr = ast.NewUnary(ast.UnaryDeref, p.parseUnary(), &tok)
	default:
		expr = p.parsePrimary()
	}

	for p.accept(lexer.AS) {
		tok := p.curTok
		t := p.parseType()
		expr = ast.NewCast(expr, t, &tok)
	}
	return expr
}

// parsePrimary covers literals, identifiers (which dispatch to
// get-expression, struct-value literal, array-dereference, variable
// reference, or call), parenthesized expressions, and the keyword
// literals null/true/false.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.curTok
	switch tok.Kind {
	case lexer.INT, lexer.FLOAT:
		return p.parseNumber()
	case lexer.STRING:
		p.nextToken()
		return ast.NewStringLit(tok.Lexeme, &tok)
	case lexer.NULL:
		p.nextToken()
		return ast.NewLiteral(ast.LitNull, &tok)
	case lexer.TRUE:
		p.nextToken()
		return ast.NewLiteral(ast.LitTrue, &tok)
	case lexer.FALSE:
		p.nextToken()
		return ast.NewLiteral(ast.LitFalse, &tok)
	case lexer.LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN)
		return inner
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.IDENT:
		if tok.Lexeme == sizeOfIdent {
			return p.parseSizeOf()
		}
		return p.parseIdentExpr()
	default:
		p.fail("unexpected token in expression")
		return nil
	}
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.curTok
	p.nextToken()

	if tok.Kind == lexer.FLOAT {
		isF32 := len(tok.Lexeme) > 0 && tok.Lexeme[len(tok.Lexeme)-1] == 'f'
		text := tok.Lexeme
		if isF32 {
			text = text[:len(text)-1]
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.fail("malformed float literal %q", tok.Lexeme)
		}
		base := types.New(types.F64)
		if isF32 {
			base = types.New(types.F32)
		}
		return ast.NewNumber(base, ast.NumberValue{F64: f, IsFloat: true}, &tok)
	}

	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.fail("malformed integer literal %q", tok.Lexeme)
	}
	return ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: v}, &tok)
}

// sizeOfIdent is the source spelling of the sole builtin. The lexer's
// token set has no '@' rune, so `builtins.NameSizeOf` ("@sizeOf")
// names the registry entry while source spells the call bare.
const sizeOfIdent = "sizeOf"

// parseSizeOf parses `sizeOf(<type>)` directly into its own node
// rather than a generic Call to a Builtin, since its sole argument is
// a type, not an expression.
func (p *Parser) parseSizeOf() ast.Expr {
	tok := p.curTok
	p.nextToken()
	p.expect(lexer.LPAREN)
	typeTok := p.curTok
	t := p.parseType()
	p.expect(lexer.RPAREN)
	return ast.NewSizeOf(ast.NewTypeExprNode(t, &typeTok), &tok)
}

// parseArrayLiteral parses `[ expr, expr, ... ]`.
func (p *Parser) parseArrayLiteral() ast.Expr {
	tok := p.curTok
	p.expect(lexer.LBRACKET)
	var elems []ast.Expr
	for !p.at(lexer.RBRACKET) {
		elems = append(elems, p.parseExpression())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return ast.NewArrayLiteral(elems, &tok)
}

// parseIdentExpr dispatches an identifier-led primary to a
// struct-value literal, a variable reference, or either followed by
// `.field`/`::Const`/`(args)`/`[index]` postfix chains.
func (p *Parser) parseIdentExpr() ast.Expr {
	tok := p.curTok
	name := tok.Lexeme
	p.nextToken()

	var expr ast.Expr
	if p.structNames[name] && p.at(lexer.LBRACE) {
		expr = p.parseStructValue(name, &tok)
	} else {
		expr = ast.NewVariable(name, nil, false, &tok)
	}

	for {
		switch {
		case p.accept(lexer.DOT):
			fieldTok := p.curTok
			field := p.expect(lexer.IDENT).Lexeme
			get := ast.NewGet(expr, field, false, &fieldTok)
			if p.at(lexer.LPAREN) {
				expr = p.parseCallArgs(get)
			} else {
				expr = get
			}
		case p.accept(lexer.DCOLON):
			constTok := p.curTok
			constName := p.expect(lexer.IDENT).Lexeme
			expr = ast.NewGet(expr, constName, true, &constTok)
		case p.at(lexer.LPAREN):
			callable, ok := expr.(ast.Callable)
			if !ok {
				p.fail("expression is not callable")
			}
			expr = p.parseCallArgs(callable)
		case p.accept(lexer.LBRACKET):
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = ast.NewArrayDeref(expr, idx, &tok)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Callable) ast.Expr {
	tok := p.curTok
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	for !p.at(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return ast.NewCall(callee, args, &tok)
}

func (p *Parser) parseStructValue(name string, tok *lexer.Token) ast.Expr {
	p.expect(lexer.LBRACE)
	var fields []ast.StructValueField
	for !p.at(lexer.RBRACE) {
		fieldTok := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		value := p.parseExpression()
		fields = append(fields, ast.StructValueField{Name: fieldTok.Lexeme, Value: value})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewStructValue(name, fields, tok)
}
