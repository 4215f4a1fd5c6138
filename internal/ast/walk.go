package ast

import (
	"fmt"

	"github.com/luka-lang/lukac/internal/types"
	"github.com/xrash/smetrics"
)

// TypeOf implements the type_of(expr) inference rule of the type
// utilities: Number/Variable/Cast carry their type directly, String is
// always ptr u8, and everything else that does not participate in
// inference reports any. Return statements are covered by TypeOfStmt.
func TypeOf(e Expr) *types.Type {
	switch n := e.(type) {
	case *Number:
		return n.Type
	case *Variable:
		return n.Type
	case *Cast:
		return n.Type
	case *StringLit:
		return types.NewPtr(types.New(types.U8))
	default:
		return types.New(types.Any)
	}
}

// TypeOfStmt extends TypeOf to Return statements, whose type is that of
// their inner expression (void when bare).
func TypeOfStmt(s Stmt) *types.Type {
	if r, ok := s.(*Return); ok {
		if r.Value == nil {
			return types.New(types.Void)
		}
		return TypeOf(r.Value)
	}
	return types.New(types.Any)
}

// ---- Last-expression promotion ------------------------------------------------

// PromoteLastExpr unwraps, in place, a trailing expression-statement
// wrapping an if or while so that the body's tail value becomes that
// expression's value. It recurses into then/else/while bodies so the
// whole tree reaches the fixed point in
// one pass; re-running it is a no-op (idempotent), since a promoted
// body's last element is no longer an ExprStmt.
func PromoteLastExpr(body []Stmt) []Stmt {
	for _, s := range body {
		promoteStmt(s)
	}
	if len(body) == 0 {
		return body
	}
	last := body[len(body)-1]
	if es, ok := last.(*ExprStmt); ok {
		switch x := es.X.(type) {
		case *If:
			body[len(body)-1] = x
		case *While:
			body[len(body)-1] = x
		}
	}
	return body
}

func promoteStmt(s Stmt) {
	switch n := s.(type) {
	case *If:
		n.Then = PromoteLastExpr(n.Then)
		if n.Else != nil {
			n.Else = PromoteLastExpr(n.Else)
		}
	case *While:
		n.Body = PromoteLastExpr(n.Body)
	case *ExprStmt:
		promoteExpr(n.X)
	}
}

func promoteExpr(e Expr) {
	switch n := e.(type) {
	case *If:
		n.Then = PromoteLastExpr(n.Then)
		if n.Else != nil {
			n.Else = PromoteLastExpr(n.Else)
		}
	case *While:
		n.Body = PromoteLastExpr(n.Body)
	}
}

// PromoteFunction applies PromoteLastExpr to fn's body in place.
func PromoteFunction(fn *Function) {
	fn.Body = PromoteLastExpr(fn.Body)
}

// ---- Type-alias resolution -----------------------------------------------------

// AliasTable maps an alias name to its resolved target type.
type AliasTable map[string]*types.Type

// UnknownAliasError is returned when a type references an alias name
// absent from the table; fatal per spec §4.3.
type UnknownAliasError struct {
	Name       string
	Suggestion string // nearest known alias by edit distance, if any
}

func (e *UnknownAliasError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown type alias %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown type alias %q", e.Name)
}

// nearestAlias finds the known alias name closest to name by
// Jaro-Winkler similarity, for "did you mean" diagnostics; returns ""
// when aliases is empty or nothing clears the similarity floor.
func nearestAlias(name string, aliases AliasTable) string {
	const floor = 0.6
	best, bestScore := "", floor
	for known := range aliases {
		score := smetrics.JaroWinkler(name, known, 0.7, 4)
		if score > bestScore {
			best, bestScore = known, score
		}
	}
	return best
}

// ResolveType replaces, in place, every alias-based subterm of t with a
// deep duplicate of its resolution, recursing through inner-type chains
// (ptr/array) so nested aliases (e.g. alias*) resolve too. Returns the
// possibly-replaced root (t itself may be an alias, in which case the
// returned pointer differs from the argument).
func ResolveType(t *types.Type, aliases AliasTable) (*types.Type, error) {
	if t == nil {
		return nil, nil
	}
	if t.Base == types.Alias {
		target, ok := aliases[t.Payload]
		if !ok {
			return nil, &UnknownAliasError{Name: t.Payload, Suggestion: nearestAlias(t.Payload, aliases)}
		}
		resolved := target.Duplicate()
		resolved.Mutable = t.Mutable
		return ResolveType(resolved, aliases)
	}
	if t.Inner != nil {
		inner, err := ResolveType(t.Inner, aliases)
		if err != nil {
			return nil, err
		}
		t.Inner = inner
	}
	return t, nil
}

// ResolveAliasesInFunction walks every directly-owned type reachable
// from fn (prototype parameter/return types, cast targets, variable
// types, nested struct-field types) and resolves aliases in place.
func ResolveAliasesInFunction(fn *Function, aliases AliasTable) error {
	proto := fn.Proto
	for i, pt := range proto.ParamTypes {
		resolved, err := ResolveType(pt, aliases)
		if err != nil {
			return err
		}
		proto.ParamTypes[i] = resolved
	}
	if proto.ReturnType != nil {
		resolved, err := ResolveType(proto.ReturnType, aliases)
		if err != nil {
			return err
		}
		proto.ReturnType = resolved
	}
	return resolveAliasesInBody(fn.Body, aliases)
}

func resolveAliasesInBody(body []Stmt, aliases AliasTable) error {
	for _, s := range body {
		if err := resolveAliasesInStmt(s, aliases); err != nil {
			return err
		}
	}
	return nil
}

func resolveAliasesInStmt(s Stmt, aliases AliasTable) error {
	switch n := s.(type) {
	case *Let:
		if n.Var.Type != nil {
			resolved, err := ResolveType(n.Var.Type, aliases)
			if err != nil {
				return err
			}
			n.Var.Type = resolved
		}
		return resolveAliasesInExpr(n.Init, aliases)
	case *Return:
		if n.Value != nil {
			return resolveAliasesInExpr(n.Value, aliases)
		}
	case *ExprStmt:
		return resolveAliasesInExpr(n.X, aliases)
	case *StructDef:
		for i, f := range n.Fields {
			resolved, err := ResolveType(f.Type, aliases)
			if err != nil {
				return err
			}
			n.Fields[i].Type = resolved
		}
	case *If:
		if err := resolveAliasesInExpr(n.Cond, aliases); err != nil {
			return err
		}
		if err := resolveAliasesInBody(n.Then, aliases); err != nil {
			return err
		}
		return resolveAliasesInBody(n.Else, aliases)
	case *While:
		if err := resolveAliasesInExpr(n.Cond, aliases); err != nil {
			return err
		}
		return resolveAliasesInBody(n.Body, aliases)
	}
	return nil
}

func resolveAliasesInExpr(e Expr, aliases AliasTable) error {
	switch n := e.(type) {
	case *Cast:
		resolved, err := ResolveType(n.Type, aliases)
		if err != nil {
			return err
		}
		n.Type = resolved
		return resolveAliasesInExpr(n.Operand, aliases)
	case *Variable:
		if n.Type != nil {
			resolved, err := ResolveType(n.Type, aliases)
			if err != nil {
				return err
			}
			n.Type = resolved
		}
	case *Unary:
		return resolveAliasesInExpr(n.Operand, aliases)
	case *Binary:
		if err := resolveAliasesInExpr(n.Left, aliases); err != nil {
			return err
		}
		return resolveAliasesInExpr(n.Right, aliases)
	case *Call:
		for _, a := range n.Args {
			if err := resolveAliasesInExpr(a, aliases); err != nil {
				return err
			}
		}
	case *Assignment:
		if err := resolveAliasesInExpr(n.LHS, aliases); err != nil {
			return err
		}
		return resolveAliasesInExpr(n.RHS, aliases)
	case *Get:
		return resolveAliasesInExpr(n.Receiver, aliases)
	case *ArrayDeref:
		if err := resolveAliasesInExpr(n.Indexable, aliases); err != nil {
			return err
		}
		return resolveAliasesInExpr(n.Index, aliases)
	case *ArrayLiteral:
		for _, el := range n.Elements {
			if err := resolveAliasesInExpr(el, aliases); err != nil {
				return err
			}
		}
	case *StructValue:
		for _, f := range n.Fields {
			if err := resolveAliasesInExpr(f.Value, aliases); err != nil {
				return err
			}
		}
	case *If:
		if err := resolveAliasesInExpr(n.Cond, aliases); err != nil {
			return err
		}
		if err := resolveAliasesInBody(n.Then, aliases); err != nil {
			return err
		}
		return resolveAliasesInBody(n.Else, aliases)
	case *While:
		if err := resolveAliasesInExpr(n.Cond, aliases); err != nil {
			return err
		}
		return resolveAliasesInBody(n.Body, aliases)
	}
	return nil
}

// ---- Parameter- and variable-type fill ------------------------------------------

// FillParamTypes replaces, for each parameter of fn, every variable
// reference in the body whose name matches the parameter and whose
// type is nil or any with a duplicate of the parameter's declared type,
// preserving any prior mutable annotation the reference site carried
// when the parameter type would otherwise drop it.
func FillParamTypes(fn *Function) {
	proto := fn.Proto
	for i, name := range proto.ParamNames {
		pt := proto.ParamTypes[i]
		fillNameInBody(fn.Body, name, pt)
	}
}

func fillNameInBody(body []Stmt, name string, t *types.Type) {
	for _, s := range body {
		fillNameInStmt(s, name, t)
	}
}

func fillNameInStmt(s Stmt, name string, t *types.Type) {
	switch n := s.(type) {
	case *Let:
		fillNameInExpr(n.Init, name, t)
	case *Return:
		if n.Value != nil {
			fillNameInExpr(n.Value, name, t)
		}
	case *ExprStmt:
		fillNameInExpr(n.X, name, t)
	case *If:
		fillNameInExpr(n.Cond, name, t)
		fillNameInBody(n.Then, name, t)
		fillNameInBody(n.Else, name, t)
	case *While:
		fillNameInExpr(n.Cond, name, t)
		fillNameInBody(n.Body, name, t)
	}
}

func fillVarType(v *Variable, t *types.Type) {
	if v.Name == "" || t == nil {
		return
	}
	if v.Type != nil && v.Type.Base != types.Any {
		return
	}
	wasMutable := v.Type != nil && v.Type.Mutable
	dup := t.Duplicate()
	if wasMutable {
		dup.Mutable = true
	}
	v.Type = dup
}

func fillNameInExpr(e Expr, name string, t *types.Type) {
	switch n := e.(type) {
	case *Variable:
		if n.Name == name {
			fillVarType(n, t)
		}
	case *Unary:
		fillNameInExpr(n.Operand, name, t)
	case *Binary:
		fillNameInExpr(n.Left, name, t)
		fillNameInExpr(n.Right, name, t)
	case *Cast:
		fillNameInExpr(n.Operand, name, t)
	case *Call:
		for _, a := range n.Args {
			fillNameInExpr(a, name, t)
		}
	case *Assignment:
		fillNameInExpr(n.LHS, name, t)
		fillNameInExpr(n.RHS, name, t)
	case *Get:
		fillNameInExpr(n.Receiver, name, t)
	case *ArrayDeref:
		fillNameInExpr(n.Indexable, name, t)
		fillNameInExpr(n.Index, name, t)
	case *ArrayLiteral:
		for _, el := range n.Elements {
			fillNameInExpr(el, name, t)
		}
	case *StructValue:
		for _, f := range n.Fields {
			fillNameInExpr(f.Value, name, t)
		}
	case *If:
		fillNameInExpr(n.Cond, name, t)
		fillNameInBody(n.Then, name, t)
		fillNameInBody(n.Else, name, t)
	case *While:
		fillNameInExpr(n.Cond, name, t)
		fillNameInBody(n.Body, name, t)
	}
}

// FillVariableTypes walks fn's body resolving each let binding whose
// annotation was omitted (or given as any) from its initializer's
// inferred type, then propagates that type to every reference of the
// bound name within the enclosing scope (the let's own body, and the
// then/else/while bodies nested under it) — mirroring FillParamTypes's
// walk but sourced from let bindings instead of parameters.
func FillVariableTypes(fn *Function) {
	fillVariableTypesInBody(fn.Body)
}

func fillVariableTypesInBody(body []Stmt) {
	for i, s := range body {
		switch n := s.(type) {
		case *Let:
			fillVariableTypesInExpr(n.Init)
			inferred := TypeOf(n.Init)
			fillVarType(n.Var, inferred)
			fillNameInBody(body[i+1:], n.Var.Name, n.Var.Type)
		case *Return:
			if n.Value != nil {
				fillVariableTypesInExpr(n.Value)
			}
		case *ExprStmt:
			fillVariableTypesInExpr(n.X)
		case *If:
			fillVariableTypesInExpr(n.Cond)
			fillVariableTypesInBody(n.Then)
			fillVariableTypesInBody(n.Else)
		case *While:
			fillVariableTypesInExpr(n.Cond)
			fillVariableTypesInBody(n.Body)
		}
	}
}

func fillVariableTypesInExpr(e Expr) {
	switch n := e.(type) {
	case *Unary:
		fillVariableTypesInExpr(n.Operand)
	case *Binary:
		fillVariableTypesInExpr(n.Left)
		fillVariableTypesInExpr(n.Right)
	case *Cast:
		fillVariableTypesInExpr(n.Operand)
	case *Call:
		for _, a := range n.Args {
			fillVariableTypesInExpr(a)
		}
	case *Assignment:
		fillVariableTypesInExpr(n.LHS)
		fillVariableTypesInExpr(n.RHS)
	case *Get:
		fillVariableTypesInExpr(n.Receiver)
	case *ArrayDeref:
		fillVariableTypesInExpr(n.Indexable)
		fillVariableTypesInExpr(n.Index)
	case *ArrayLiteral:
		for _, el := range n.Elements {
			fillVariableTypesInExpr(el)
		}
	case *StructValue:
		for _, f := range n.Fields {
			fillVariableTypesInExpr(f.Value)
		}
	case *If:
		fillVariableTypesInExpr(n.Cond)
		fillVariableTypesInBody(n.Then)
		fillVariableTypesInBody(n.Else)
	case *While:
		fillVariableTypesInExpr(n.Cond)
		fillVariableTypesInBody(n.Body)
	}
}
