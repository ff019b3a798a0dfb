package builtin

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/dhall-go/dhall/internal/core/adt"
)

// reduceListBuild implements List/build's two cases from §4.5 and the
// Open-Question decision recorded in DESIGN.md: fuse only the single
// literal shape `List/build a (List/fold a' xs)`, grounded on
// original_source/dhall/ast.py's ListBuildTyped.apply. Otherwise it
// rewrites to the general `f (List a) cons nil` application (still an
// unevaluated Expr; the caller keeps evaluating it).
func reduceListBuild(args []adt.Expr) (adt.Expr, bool) {
	a, f := args[0], args[1]

	if tag, foldArgs, ok := Spine(f); ok && tag == adt.BuiltinListFold && len(foldArgs) == 2 {
		if exprEqual(a, foldArgs[0]) {
			return foldArgs[1], true
		}
	}

	listA := listOf(a)
	cons := &adt.Lambda{
		Param:     "x",
		ParamType: a,
		Body: &adt.Lambda{
			Param:     "xs",
			ParamType: listA,
			Body: &adt.Op{
				Kind: adt.OpListAppend,
				L:    &adt.ListLiteral{Items: []adt.Expr{&adt.Var{Name: "x", Index: 0}}},
				R:    &adt.Var{Name: "xs", Index: 0},
			},
		},
	}
	nilList := &adt.ListLiteral{ElementType: a}

	return &adt.App{Fn: &adt.App{Fn: &adt.App{Fn: f, Arg: listA}, Arg: cons}, Arg: nilList}, true
}

// reduceListFold implements List/fold's canonical right-fold over a
// concrete list literal; it is inert (ok=false) on a list that hasn't
// reduced to a literal.
func reduceListFold(args []adt.Expr) (adt.Expr, bool) {
	xs, cons, nilV := args[1], args[3], args[4]

	list, ok := xs.(*adt.ListLiteral)
	if !ok {
		return nil, false
	}

	acc := nilV
	for i := len(list.Items) - 1; i >= 0; i-- {
		acc = &adt.App{Fn: &adt.App{Fn: cons, Arg: list.Items[i]}, Arg: acc}
	}
	return acc, true
}

// reduceDoubleShow renders a DoubleLiteral's canonical decimal form.
func reduceDoubleShow(args []adt.Expr) (adt.Expr, bool) {
	lit, ok := args[0].(*adt.DoubleLiteral)
	if !ok {
		return nil, false
	}
	return adt.NewText(lit.Value.Text('g')), true
}

// exprEqual is a small, self-contained structural-equality check used only
// to detect the List/build-over-List/fold fusion shape. It is deliberately
// not the full β∘α equivalence (C6) defined in internal/core/typecheck:
// wiring that here would create an import cycle (typecheck already depends
// on builtin for built-in types), and fusion only needs to recognize a
// type argument reappearing unchanged, which this covers for the closed
// type expressions built-in type arguments actually are in practice.
func exprEqual(a, b adt.Expr) bool {
	switch x := a.(type) {
	case *adt.Var:
		y, ok := b.(*adt.Var)
		return ok && x.Name == y.Name && x.Index == y.Index
	case *adt.Builtin:
		y, ok := b.(*adt.Builtin)
		return ok && x.Tag == y.Tag
	case *adt.App:
		y, ok := b.(*adt.App)
		return ok && exprEqual(x.Fn, y.Fn) && exprEqual(x.Arg, y.Arg)
	case *adt.RecordType:
		y, ok := b.(*adt.RecordType)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Label != y.Fields[i].Label || !exprEqual(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	case *adt.UnionType:
		y, ok := b.(*adt.UnionType)
		if !ok || len(x.Alternatives) != len(y.Alternatives) {
			return false
		}
		for i := range x.Alternatives {
			if x.Alternatives[i].Label != y.Alternatives[i].Label || !exprEqual(x.Alternatives[i].Type, y.Alternatives[i].Type) {
				return false
			}
		}
		return true
	case *adt.NaturalLiteral:
		y, ok := b.(*adt.NaturalLiteral)
		return ok && apdEqual(&x.Value, &y.Value)
	case *adt.DoubleLiteral:
		y, ok := b.(*adt.DoubleLiteral)
		return ok && apdEqual(&x.Value, &y.Value)
	case *adt.BooleanLiteral:
		y, ok := b.(*adt.BooleanLiteral)
		return ok && x.Value == y.Value
	default:
		return false
	}
}

func apdEqual(a, b *apd.Decimal) bool {
	return a.Cmp(b) == 0
}
