package parser

import (
	"strconv"

	"github.com/luka-lang/lukac/internal/ast"
	"github.com/luka-lang/lukac/internal/lexer"
	"github.com/luka-lang/lukac/internal/module"
	"github.com/luka-lang/lukac/internal/types"
)

// parseTopLevel consumes one top-level item: a `fn` definition, an
// `extern` prototype, a struct or enum definition, an `import`
// directive, a `type` alias, or a top-level `let`.
func (p *Parser) parseTopLevel(mod *module.Module) {
	switch p.curTok.Kind {
	case lexer.FN:
		mod.Functions = append(mod.Functions, p.parseFunction())
	case lexer.EXTERN:
		mod.Functions = append(mod.Functions, p.parseExtern())
	case lexer.STRUCT:
		mod.Structs = append(mod.Structs, p.parseStructDef())
	case lexer.ENUM:
		mod.Enums = append(mod.Enums, p.parseEnumDef())
	case lexer.IMPORT:
		mod.ImportPaths = append(mod.ImportPaths, p.parseImport())
	case lexer.TYPE:
		mod.Aliases = append(mod.Aliases, p.parseTypeAlias())
	case lexer.LET:
		letStmt := p.parseLet()
		letStmt.IsGlobal = true
		mod.Variables = append(mod.Variables, letStmt)
	default:
		p.fail("expected a top-level declaration")
	}
}

// parseParams parses a parenthesized parameter list. A parameter whose
// type is directly followed by `...` becomes the sole trailing
// variadic parameter: its declared type is forced to `any` and no
// further parameters are accepted.
func (p *Parser) parseParams() (names []string, paramTypes []*types.Type, variadic bool) {
	p.expect(lexer.LPAREN)
	for !p.at(lexer.RPAREN) {
		nameTok := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		t := p.parseType()
		if p.accept(lexer.ELLIPSIS) {
			t = types.New(types.Any)
			variadic = true
		}
		names = append(names, nameTok.Lexeme)
		paramTypes = append(paramTypes, t)
		if variadic {
			break
		}
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return names, paramTypes, variadic
}

func (p *Parser) parsePrototype() *ast.Prototype {
	tok := p.curTok
	nameTok := p.expect(lexer.IDENT)
	names, paramTypes, variadic := p.parseParams()
	ret := types.New(types.Void)
	if p.accept(lexer.COLON) {
		ret = p.parseType()
	}
	return ast.NewPrototype(nameTok.Lexeme, names, paramTypes, ret, variadic, &tok)
}

func (p *Parser) parseFunction() *ast.Function {
	tok := p.curTok
	p.expect(lexer.FN)
	proto := p.parsePrototype()
	body := p.parseBlock()
	return ast.NewFunction(proto, body, &tok)
}

func (p *Parser) parseExtern() *ast.Function {
	tok := p.curTok
	p.expect(lexer.EXTERN)
	proto := p.parsePrototype()
	p.expect(lexer.SEMICOLON)
	return ast.NewFunction(proto, nil, &tok)
}

func (p *Parser) parseStructDef() *ast.StructDef {
	tok := p.curTok
	p.expect(lexer.STRUCT)
	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)
	var fields []ast.StructField
	for !p.at(lexer.RBRACE) {
		fieldTok := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		t := p.parseType()
		fields = append(fields, ast.StructField{Name: fieldTok.Lexeme, Type: t})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return ast.NewStructDef(nameTok.Lexeme, fields, &tok)
}

// parseEnumDef parses `enum Name { A, B = 5, C }`, delegating
// auto-increment fill-in to ast.BuildEnumDef.
func (p *Parser) parseEnumDef() *ast.EnumDef {
	tok := p.curTok
	p.expect(lexer.ENUM)
	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.LBRACE)
	var raw []ast.RawEnumField
	for !p.at(lexer.RBRACE) {
		fieldTok := p.expect(lexer.IDENT)
		field := ast.RawEnumField{Name: fieldTok.Lexeme, Tok: &fieldTok}
		if p.accept(lexer.ASSIGN) {
			negative := p.accept(lexer.MINUS)
			valTok := p.expect(lexer.INT)
			n, err := strconv.ParseInt(valTok.Lexeme, 10, 64)
			if err != nil {
				p.fail("malformed enum initializer %q", valTok.Lexeme)
			}
			if negative {
				n = -n
			}
			field.Init = ast.NewNumber(types.New(types.S32), ast.NumberValue{S64: n}, &valTok)
		}
		raw = append(raw, field)
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return ast.BuildEnumDef(nameTok.Lexeme, raw, &tok)
}

func (p *Parser) parseImport() string {
	p.expect(lexer.IMPORT)
	pathTok := p.expect(lexer.STRING)
	p.expect(lexer.SEMICOLON)
	return pathTok.Lexeme
}

func (p *Parser) parseTypeAlias() module.TypeAlias {
	p.expect(lexer.TYPE)
	nameTok := p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	t := p.parseType()
	p.expect(lexer.SEMICOLON)
	return module.TypeAlias{Name: nameTok.Lexeme, Type: t}
}
