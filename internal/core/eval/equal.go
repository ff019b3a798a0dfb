package eval

import "github.com/dhall-go/dhall/internal/core/adt"

// exprEqualModAlpha is plain structural equality over two already-evaluated
// expressions, binder names included. Callers pass both sides through
// norm.Alpha first, so every binder is named norm.Placeholder and equal
// results mean the operands are α-equivalent.
// Used only for the Or/And short-circuit-under-equivalence rules and the
// if-then-else branch-identity reduction of §4.2; full β∘α∘structural
// equivalence (C6) lives in internal/core/typecheck.
func exprEqualModAlpha(a, b adt.Expr) bool {
	switch x := a.(type) {
	case *adt.Var:
		y, ok := b.(*adt.Var)
		return ok && x.Name == y.Name && x.Index == y.Index

	case *adt.Lambda:
		y, ok := b.(*adt.Lambda)
		return ok && x.Param == y.Param && exprEqualModAlpha(x.ParamType, y.ParamType) && exprEqualModAlpha(x.Body, y.Body)

	case *adt.ForAll:
		y, ok := b.(*adt.ForAll)
		return ok && x.Param == y.Param && exprEqualModAlpha(x.ParamType, y.ParamType) && exprEqualModAlpha(x.Body, y.Body)

	case *adt.App:
		y, ok := b.(*adt.App)
		return ok && exprEqualModAlpha(x.Fn, y.Fn) && exprEqualModAlpha(x.Arg, y.Arg)

	case *adt.Conditional:
		y, ok := b.(*adt.Conditional)
		return ok && exprEqualModAlpha(x.Cond, y.Cond) && exprEqualModAlpha(x.Then, y.Then) && exprEqualModAlpha(x.Else, y.Else)

	case *adt.Op:
		y, ok := b.(*adt.Op)
		return ok && x.Kind == y.Kind && exprEqualModAlpha(x.L, y.L) && exprEqualModAlpha(x.R, y.R)

	case *adt.Merge:
		y, ok := b.(*adt.Merge)
		if !ok || !exprEqualModAlpha(x.Handlers, y.Handlers) || !exprEqualModAlpha(x.Union, y.Union) {
			return false
		}
		return (x.Type == nil) == (y.Type == nil) && (x.Type == nil || exprEqualModAlpha(x.Type, y.Type))

	case *adt.Select:
		y, ok := b.(*adt.Select)
		return ok && x.Label == y.Label && exprEqualModAlpha(x.Expr, y.Expr)

	case *adt.Project:
		y, ok := b.(*adt.Project)
		return ok && stringsEqual(x.Labels, y.Labels) && exprEqualModAlpha(x.Expr, y.Expr)

	case *adt.RecordLiteral:
		y, ok := b.(*adt.RecordLiteral)
		return ok && fieldsEqual(x.Fields, y.Fields)

	case *adt.RecordType:
		y, ok := b.(*adt.RecordType)
		return ok && fieldsEqual(x.Fields, y.Fields)

	case *adt.Union:
		y, ok := b.(*adt.Union)
		return ok && x.Label == y.Label && exprEqualModAlpha(x.Value, y.Value) && alternativesEqual(x.Alternatives, y.Alternatives)

	case *adt.UnionType:
		y, ok := b.(*adt.UnionType)
		return ok && alternativesEqual(x.Alternatives, y.Alternatives)

	case *adt.ListLiteral:
		y, ok := b.(*adt.ListLiteral)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !exprEqualModAlpha(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true

	case *adt.OptionalLiteral:
		y, ok := b.(*adt.OptionalLiteral)
		if !ok {
			return false
		}
		if x.Wrapped == nil || y.Wrapped == nil {
			if x.Wrapped != nil || y.Wrapped != nil {
				return false
			}
			if (x.ElementType == nil) != (y.ElementType == nil) {
				return false
			}
			return x.ElementType == nil || exprEqualModAlpha(x.ElementType, y.ElementType)
		}
		return exprEqualModAlpha(x.Wrapped, y.Wrapped)

	case *adt.NaturalLiteral:
		y, ok := b.(*adt.NaturalLiteral)
		return ok && x.Value.Cmp(&y.Value) == 0

	case *adt.DoubleLiteral:
		y, ok := b.(*adt.DoubleLiteral)
		return ok && x.Value.Cmp(&y.Value) == 0

	case *adt.BooleanLiteral:
		y, ok := b.(*adt.BooleanLiteral)
		return ok && x.Value == y.Value

	case *adt.TextLiteral:
		y, ok := b.(*adt.TextLiteral)
		if !ok || len(x.Chunks) != len(y.Chunks) {
			return false
		}
		for i := range x.Chunks {
			if x.Chunks[i].Expr == nil && y.Chunks[i].Expr == nil {
				if x.Chunks[i].Text != y.Chunks[i].Text {
					return false
				}
				continue
			}
			if x.Chunks[i].Expr == nil || y.Chunks[i].Expr == nil {
				return false
			}
			if !exprEqualModAlpha(x.Chunks[i].Expr, y.Chunks[i].Expr) {
				return false
			}
		}
		return true

	case *adt.Builtin:
		y, ok := b.(*adt.Builtin)
		return ok && x.Tag == y.Tag

	default:
		return false
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fieldsEqual(a, b []adt.Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Label != b[i].Label || !exprEqualModAlpha(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func alternativesEqual(a, b []adt.Alternative) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Label != b[i].Label {
			return false
		}
		if (a[i].Type == nil) != (b[i].Type == nil) {
			return false
		}
		if a[i].Type != nil && !exprEqualModAlpha(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}
