// Package ast defines Luka's tagged syntax tree plus the traversal
// helpers that mutate it in place: type-alias resolution, parameter and
// variable type filling, and last-statement-to-expression promotion.
//
// Every node is owned by exactly one parent (a tree, not a graph); a
// node's Type fields are owned by that node and are duplicated (never
// shared) whenever propagated elsewhere. See internal/types for the
// Type value itself.
package ast

import (
	"github.com/luka-lang/lukac/internal/lexer"
	"github.com/luka-lang/lukac/internal/types"
)

// NodeKind tags every concrete node with its variant, so a single switch
// in a traversal can dispatch without a type assertion chain.
type NodeKind int

const (
	KindNumber NodeKind = iota
	KindString
	KindUnary
	KindBinary
	KindPrototype
	KindFunction
	KindReturn
	KindIf
	KindWhile
	KindCast
	KindVariable
	KindLet
	KindAssignment
	KindCall
	KindExprStmt
	KindBreak
	KindStructDef
	KindStructValue
	KindEnumDef
	KindGet
	KindArrayDeref
	KindLiteral
	KindArrayLiteral
	KindSizeOf
	KindBuiltin
	KindTypeExpr
)

// Node is any tree vertex. Every concrete node carries an originating
// token for diagnostics.
type Node interface {
	Kind() NodeKind
	Span() lexer.Span
}

// Expr is a node usable in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node usable in statement position.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

func spanOf(tok *lexer.Token) lexer.Span {
	if tok == nil {
		return lexer.Span{}
	}
	return tok.Span
}

// ---- Literals and simple leaves -------------------------------------------------

// NumberValue holds a bit-exact numeric literal value in the concrete
// Go field matching its Type's base: never a reinterpreted pointer
// cast, always the concrete variant picked by IsFloat/IsUnsigned.
type NumberValue struct {
	S64        int64
	U64        uint64
	F64        float64
	IsFloat    bool
	IsUnsigned bool
}

// Number is a numeric literal with its already-resolved Type.
type Number struct {
	Type  *types.Type
	Value NumberValue
	Tok   *lexer.Token
}

func NewNumber(t *types.Type, v NumberValue, tok *lexer.Token) *Number {
	return &Number{Type: t, Value: v, Tok: tok}
}
func (n *Number) Kind() NodeKind   { return KindNumber }
func (n *Number) Span() lexer.Span { return spanOf(n.Tok) }
func (n *Number) exprNode()        {}

// StringLit is a string literal; its inferred type is ptr u8.
type StringLit struct {
	Value string
	Tok   *lexer.Token
}

func NewStringLit(value string, tok *lexer.Token) *StringLit {
	return &StringLit{Value: value, Tok: tok}
}
func (s *StringLit) Kind() NodeKind   { return KindString }
func (s *StringLit) Span() lexer.Span { return spanOf(s.Tok) }
func (s *StringLit) exprNode()        {}

// LiteralKind distinguishes the keyword literals null/true/false.
type LiteralKind int

const (
	LitNull LiteralKind = iota
	LitTrue
	LitFalse
)

// Literal is one of the keyword literals null, true, false.
type Literal struct {
	LitKind LiteralKind
	Tok     *lexer.Token
}

func NewLiteral(kind LiteralKind, tok *lexer.Token) *Literal {
	return &Literal{LitKind: kind, Tok: tok}
}
func (l *Literal) Kind() NodeKind   { return KindLiteral }
func (l *Literal) Span() lexer.Span { return spanOf(l.Tok) }
func (l *Literal) exprNode()        {}

// ---- Operators --------------------------------------------------------------

// UnaryOp is the closed set of unary operators: !, -, &, *.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
	UnaryAddr
	UnaryDeref
)

// Unary is a prefix unary operation.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Tok     *lexer.Token
}

func NewUnary(op UnaryOp, operand Expr, tok *lexer.Token) *Unary {
	return &Unary{Op: op, Operand: operand, Tok: tok}
}
func (u *Unary) Kind() NodeKind   { return KindUnary }
func (u *Unary) Span() lexer.Span { return spanOf(u.Tok) }
func (u *Unary) exprNode()        {}

// BinaryOp is the closed set of binary operators.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinGt
	BinLe
	BinGe
)

// Binary is a left/right binary operation.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Tok   *lexer.Token
}

func NewBinary(op BinaryOp, left, right Expr, tok *lexer.Token) *Binary {
	return &Binary{Op: op, Left: left, Right: right, Tok: tok}
}
func (b *Binary) Kind() NodeKind   { return KindBinary }
func (b *Binary) Span() lexer.Span { return spanOf(b.Tok) }
func (b *Binary) exprNode()        {}

// Cast is a trailing "expr as Type" conversion.
type Cast struct {
	Operand Expr
	Type    *types.Type
	Tok     *lexer.Token
}

func NewCast(operand Expr, t *types.Type, tok *lexer.Token) *Cast {
	return &Cast{Operand: operand, Type: t, Tok: tok}
}
func (c *Cast) Kind() NodeKind   { return KindCast }
func (c *Cast) Span() lexer.Span { return spanOf(c.Tok) }
func (c *Cast) exprNode()        {}

// ---- Variables, let, assignment ---------------------------------------------

// Variable is a reference occurrence of a name. Type is nil when the
// binding site omitted an annotation; the type filler resolves it in
// place from the binding's initializer.
type Variable struct {
	Name    string
	Type    *types.Type
	Mutable bool
	Tok     *lexer.Token
}

func NewVariable(name string, t *types.Type, mutable bool, tok *lexer.Token) *Variable {
	return &Variable{Name: name, Type: t, Mutable: mutable, Tok: tok}
}
func (v *Variable) Kind() NodeKind   { return KindVariable }
func (v *Variable) Span() lexer.Span { return spanOf(v.Tok) }
func (v *Variable) exprNode()        {}
func (v *Variable) callableNode()    {}

// Let is a (possibly global) variable binding statement.
type Let struct {
	Var      *Variable
	Init     Expr
	IsGlobal bool
	Tok      *lexer.Token
}

func NewLet(v *Variable, init Expr, isGlobal bool, tok *lexer.Token) *Let {
	return &Let{Var: v, Init: init, IsGlobal: isGlobal, Tok: tok}
}
func (l *Let) Kind() NodeKind   { return KindLet }
func (l *Let) Span() lexer.Span { return spanOf(l.Tok) }
func (l *Let) stmtNode()        {}

// Assignment targets one of: Variable, a deref Unary, a Get, or an
// ArrayDeref.
type Assignment struct {
	LHS Expr
	RHS Expr
	Tok *lexer.Token
}

func NewAssignment(lhs, rhs Expr, tok *lexer.Token) *Assignment {
	return &Assignment{LHS: lhs, RHS: rhs, Tok: tok}
}
func (a *Assignment) Kind() NodeKind   { return KindAssignment }
func (a *Assignment) Span() lexer.Span { return spanOf(a.Tok) }
func (a *Assignment) exprNode()        {}

// IsValidAssignTarget reports whether e is one of the node kinds
// permitted as an assignment lhs.
func IsValidAssignTarget(e Expr) bool {
	switch v := e.(type) {
	case *Variable:
		return true
	case *Unary:
		return v.Op == UnaryDeref
	case *Get:
		return true
	case *ArrayDeref:
		return true
	default:
		return false
	}
}

// ---- Functions and calls -----------------------------------------------------

// Prototype is the signature portion of a function.
type Prototype struct {
	Name       string
	ParamNames []string
	ParamTypes []*types.Type
	ReturnType *types.Type
	IsVariadic bool
	Tok        *lexer.Token
}

func NewPrototype(name string, paramNames []string, paramTypes []*types.Type, ret *types.Type, variadic bool, tok *lexer.Token) *Prototype {
	return &Prototype{Name: name, ParamNames: paramNames, ParamTypes: paramTypes, ReturnType: ret, IsVariadic: variadic, Tok: tok}
}
func (p *Prototype) Kind() NodeKind   { return KindPrototype }
func (p *Prototype) Span() lexer.Span { return spanOf(p.Tok) }
func (p *Prototype) declNode()        {}

// Arity is the declared parameter count (the variadic sentinel counts).
func (p *Prototype) Arity() int { return len(p.ParamNames) }

// RequiredParams is arity minus one when variadic.
func (p *Prototype) RequiredParams() int {
	if p.IsVariadic {
		return p.Arity() - 1
	}
	return p.Arity()
}

// Function owns a prototype and an ordered body. An empty Body means extern.
type Function struct {
	Proto *Prototype
	Body  []Stmt
	Tok   *lexer.Token
}

func NewFunction(proto *Prototype, body []Stmt, tok *lexer.Token) *Function {
	return &Function{Proto: proto, Body: body, Tok: tok}
}
func (f *Function) Kind() NodeKind   { return KindFunction }
func (f *Function) Span() lexer.Span { return spanOf(f.Tok) }
func (f *Function) declNode()        {}

// IsExtern reports whether f has no body.
func (f *Function) IsExtern() bool { return len(f.Body) == 0 }

// Callable is the closed set of node kinds that may appear in Call.Callee:
// *Variable (free function), *Get (method-style), *Builtin.
type Callable interface {
	Expr
	callableNode()
}

func (g *Get) callableNode() {}

// Builtin references a compiler intrinsic by name (e.g. "@sizeOf").
type Builtin struct {
	Name string
	Tok  *lexer.Token
}

func NewBuiltin(name string, tok *lexer.Token) *Builtin {
	return &Builtin{Name: name, Tok: tok}
}
func (b *Builtin) Kind() NodeKind   { return KindBuiltin }
func (b *Builtin) Span() lexer.Span { return spanOf(b.Tok) }
func (b *Builtin) exprNode()        {}
func (b *Builtin) callableNode()    {}

// Call is a function/method/builtin invocation.
type Call struct {
	Callee Callable
	Args   []Expr
	Tok    *lexer.Token
}

func NewCall(callee Callable, args []Expr, tok *lexer.Token) *Call {
	return &Call{Callee: callee, Args: args, Tok: tok}
}
func (c *Call) Kind() NodeKind   { return KindCall }
func (c *Call) Span() lexer.Span { return spanOf(c.Tok) }
func (c *Call) exprNode()        {}

// Return yields a value (or void) from the enclosing function.
type Return struct {
	Value Expr // nil for a bare "return;"
	Tok   *lexer.Token
}

func NewReturn(value Expr, tok *lexer.Token) *Return {
	return &Return{Value: value, Tok: tok}
}
func (r *Return) Kind() NodeKind   { return KindReturn }
func (r *Return) Span() lexer.Span { return spanOf(r.Tok) }
func (r *Return) stmtNode()        {}

// ---- Control flow as expression -----------------------------------------------

// If is a conditional that may yield a value from its tail expression.
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if there is no else branch
	Tok  *lexer.Token
}

func NewIf(cond Expr, then, els []Stmt, tok *lexer.Token) *If {
	return &If{Cond: cond, Then: then, Else: els, Tok: tok}
}
func (i *If) Kind() NodeKind   { return KindIf }
func (i *If) Span() lexer.Span { return spanOf(i.Tok) }
func (i *If) exprNode()        {}
func (i *If) stmtNode()        {}

// While is a loop that may yield a value from its tail expression.
type While struct {
	Cond Expr
	Body []Stmt
	Tok  *lexer.Token
}

func NewWhile(cond Expr, body []Stmt, tok *lexer.Token) *While {
	return &While{Cond: cond, Body: body, Tok: tok}
}
func (w *While) Kind() NodeKind   { return KindWhile }
func (w *While) Span() lexer.Span { return spanOf(w.Tok) }
func (w *While) exprNode()        {}
func (w *While) stmtNode()        {}

// Break exits the nearest enclosing while. It carries no label or value.
type Break struct {
	Tok *lexer.Token
}

func NewBreak(tok *lexer.Token) *Break { return &Break{Tok: tok} }
func (b *Break) Kind() NodeKind         { return KindBreak }
func (b *Break) Span() lexer.Span       { return spanOf(b.Tok) }
func (b *Break) stmtNode()              {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X   Expr
	Tok *lexer.Token
}

func NewExprStmt(x Expr, tok *lexer.Token) *ExprStmt {
	return &ExprStmt{X: x, Tok: tok}
}
func (e *ExprStmt) Kind() NodeKind   { return KindExprStmt }
func (e *ExprStmt) Span() lexer.Span { return spanOf(e.Tok) }
func (e *ExprStmt) stmtNode()        {}

// ---- Structs ------------------------------------------------------------------

// StructField is one name+type pair in a struct definition.
type StructField struct {
	Name string
	Type *types.Type
}

// StructDef declares a nominal struct type. It may appear at top level
// or nested inside a function body (both Decl and Stmt).
type StructDef struct {
	Name   string
	Fields []StructField
	Tok    *lexer.Token
}

func NewStructDef(name string, fields []StructField, tok *lexer.Token) *StructDef {
	return &StructDef{Name: name, Fields: fields, Tok: tok}
}
func (s *StructDef) Kind() NodeKind   { return KindStructDef }
func (s *StructDef) Span() lexer.Span { return spanOf(s.Tok) }
func (s *StructDef) declNode()        {}
func (s *StructDef) stmtNode()        {}

// FieldType returns the declared type of field name, or nil.
func (s *StructDef) FieldType(name string) *types.Type {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

// StructValueField is one name:expr pair in a struct literal.
type StructValueField struct {
	Name  string
	Value Expr
}

// StructValue is a `Name { field: expr, ... }` literal.
type StructValue struct {
	StructName string
	Fields     []StructValueField
	Tok        *lexer.Token
}

func NewStructValue(name string, fields []StructValueField, tok *lexer.Token) *StructValue {
	return &StructValue{StructName: name, Fields: fields, Tok: tok}
}
func (s *StructValue) Kind() NodeKind   { return KindStructValue }
func (s *StructValue) Span() lexer.Span { return spanOf(s.Tok) }
func (s *StructValue) exprNode()        {}

// ---- Enums ---------------------------------------------------------------------

// EnumField is one name=value constant in an enum definition. Value is
// always a *Number after parsing: auto-increment fills an omitted
// initializer, and an explicit initializer may carry a leading unary
// minus.
type EnumField struct {
	Name  string
	Value *Number
}

// EnumDef declares a nominal enum type: an ordered set of named
// constant integers. May appear at top level or nested.
type EnumDef struct {
	Name   string
	Fields []EnumField
	Tok    *lexer.Token
}

func NewEnumDef(name string, fields []EnumField, tok *lexer.Token) *EnumDef {
	return &EnumDef{Name: name, Fields: fields, Tok: tok}
}
func (e *EnumDef) Kind() NodeKind   { return KindEnumDef }
func (e *EnumDef) Span() lexer.Span { return spanOf(e.Tok) }
func (e *EnumDef) declNode()        {}
func (e *EnumDef) stmtNode()        {}

// HasField reports whether name is one of e's constants.
func (e *EnumDef) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ---- Get / array-deref ----------------------------------------------------------

// Get is a field read (struct.field) or a constant read (Enum::Value).
type Get struct {
	Receiver Expr
	Key      string
	IsEnum   bool
	Tok      *lexer.Token
}

func NewGet(receiver Expr, key string, isEnum bool, tok *lexer.Token) *Get {
	return &Get{Receiver: receiver, Key: key, IsEnum: isEnum, Tok: tok}
}
func (g *Get) Kind() NodeKind   { return KindGet }
func (g *Get) Span() lexer.Span { return spanOf(g.Tok) }
func (g *Get) exprNode()        {}

// ArrayDeref is an indexed read e[i], valid for pointer and array types.
type ArrayDeref struct {
	Indexable Expr
	Index     Expr
	Tok       *lexer.Token
}

func NewArrayDeref(indexable, index Expr, tok *lexer.Token) *ArrayDeref {
	return &ArrayDeref{Indexable: indexable, Index: index, Tok: tok}
}
func (a *ArrayDeref) Kind() NodeKind   { return KindArrayDeref }
func (a *ArrayDeref) Span() lexer.Span { return spanOf(a.Tok) }
func (a *ArrayDeref) exprNode()        {}

// ArrayLiteral is a bracketed list of element expressions.
type ArrayLiteral struct {
	Elements []Expr
	Tok      *lexer.Token
}

func NewArrayLiteral(elements []Expr, tok *lexer.Token) *ArrayLiteral {
	return &ArrayLiteral{Elements: elements, Tok: tok}
}
func (a *ArrayLiteral) Kind() NodeKind   { return KindArrayLiteral }
func (a *ArrayLiteral) Span() lexer.Span { return spanOf(a.Tok) }
func (a *ArrayLiteral) exprNode()        {}

// ---- Builtin call sugar (@sizeOf) ------------------------------------------------

// TypeExprNode wraps a Type for use in expression position, e.g. the
// sole argument to @sizeOf.
type TypeExprNode struct {
	Type *types.Type
	Tok  *lexer.Token
}

func NewTypeExprNode(t *types.Type, tok *lexer.Token) *TypeExprNode {
	return &TypeExprNode{Type: t, Tok: tok}
}
func (t *TypeExprNode) Kind() NodeKind   { return KindTypeExpr }
func (t *TypeExprNode) Span() lexer.Span { return spanOf(t.Tok) }
func (t *TypeExprNode) exprNode()        {}

// SizeOf is the @sizeOf(<type>) intrinsic call. Its sole argument is a
// type, not an expression, so the parser resolves it to its own node
// kind rather than a general Call to a Builtin.
type SizeOf struct {
	Arg *TypeExprNode
	Tok *lexer.Token
}

func NewSizeOf(arg *TypeExprNode, tok *lexer.Token) *SizeOf {
	return &SizeOf{Arg: arg, Tok: tok}
}
func (s *SizeOf) Kind() NodeKind   { return KindSizeOf }
func (s *SizeOf) Span() lexer.Span { return spanOf(s.Tok) }
func (s *SizeOf) exprNode()        {}
