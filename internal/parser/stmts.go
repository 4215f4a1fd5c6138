package parser

import (
	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/lexer"
)

// parseStmt dispatches on the leading token of a statement.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Kind {
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.LET:
		return p.parseLet()
	case lexer.BREAK:
		tok := p.curTok
		p.nextToken()
		p.expect(lexer.SEMICOLON)
		return ast.NewBreak(&tok)
	case lexer.STRUCT:
		return p.parseStructDef()
	case lexer.ENUM:
		return p.parseEnumDef()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	tok := p.curTok
	p.nextToken()
	var value ast.Expr
	if !p.at(lexer.SEMICOLON) {
		value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)
	return ast.NewReturn(value, &tok)
}

// parseLet parses `let [mut] <name> [: <type>] = <expr> ;`.
func (p *Parser) parseLet() *ast.Let {
	tok := p.curTok
	p.expect(lexer.LET)
	mutable := p.accept(lexer.MUT)
	nameTok := p.expect(lexer.IDENT)
	declared := p.parseTypeAnnotation()
	p.expect(lexer.ASSIGN)
	init := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	v := ast.NewVariable(nameTok.Lexeme, declared, mutable, &nameTok)
	return ast.NewLet(v, init, false, &tok)
}

// parseExprStmt parses an expression used as a statement. The
// trailing semicolon is optional exactly when the expression is
// itself an if or while (a "compound expression").
func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.curTok
	var expr ast.Expr
	switch p.curTok.Kind {
	case lexer.IF:
		expr = p.parseIf()
	case lexer.WHILE:
		expr = p.parseWhile()
	default:
		expr = p.parseExpression()
	}

	switch expr.(type) {
	case *ast.If, *ast.While:
		p.accept(lexer.SEMICOLON)
	default:
		p.expect(lexer.SEMICOLON)
	}
	return ast.NewExprStmt(expr, &tok)
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE)
	return stmts
}

func (p *Parser) parseIf() ast.Expr {
	tok := p.curTok
	p.expect(lexer.IF)
	cond := p.parseExpression()
	then := p.parseBlock()
	var els []ast.Stmt
	if p.accept(lexer.ELSE) {
		if p.at(lexer.IF) {
			els = []ast.Stmt{ast.NewExprStmt(p.parseIf(), &tok)}
		} else {
			els = p.parseBlock()
		}
	}
	return ast.NewIf(cond, then, els, &tok)
}

func (p *Parser) parseWhile() ast.Expr {
	tok := p.curTok
	p.expect(lexer.WHILE)
	cond := p.parseExpression()
	body := p.parseBlock()
	return ast.NewWhile(cond, body, &tok)
}
