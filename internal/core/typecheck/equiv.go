package typecheck

import (
	"sort"

	"github.com/dhall-go/dhall/internal/core/adt"
	"github.com/dhall-go/dhall/internal/core/eval"
	"github.com/dhall-go/dhall/internal/core/norm"
)

// Equivalent decides e1 ≡ e2 (C6, §4.3): equal after β-evaluation then
// α-normalization, comparing structurally with RecordLiteral/RecordType
// fields and UnionType alternatives treated as sets ordered by label
// rather than as ordered tuples.
func Equivalent(e1, e2 adt.Expr, fuel *adt.Fuel) (bool, error) {
	ev := eval.New(fuel)
	v1, err := ev.Evaluate(e1, eval.EmptyEnv())
	if err != nil {
		return false, err
	}
	v2, err := ev.Evaluate(e2, eval.EmptyEnv())
	if err != nil {
		return false, err
	}
	return structuralEqual(norm.Alpha(v1), norm.Alpha(v2)), nil
}

// structuralEqual compares two α-normal, β-normal expressions. It keeps a
// copy local to this package (rather than reusing eval's
// exprEqualModAlpha) because equivalence has to canonicalize field and
// alternative order the way §4.3 requires, which eval's branch-identity
// check does not need to do.
func structuralEqual(a, b adt.Expr) bool {
	switch x := a.(type) {
	case *adt.Var:
		y, ok := b.(*adt.Var)
		return ok && x.Name == y.Name && x.Index == y.Index

	case *adt.Lambda:
		y, ok := b.(*adt.Lambda)
		return ok && x.Param == y.Param && structuralEqual(x.ParamType, y.ParamType) && structuralEqual(x.Body, y.Body)

	case *adt.ForAll:
		y, ok := b.(*adt.ForAll)
		return ok && x.Param == y.Param && structuralEqual(x.ParamType, y.ParamType) && structuralEqual(x.Body, y.Body)

	case *adt.LetIn:
		y, ok := b.(*adt.LetIn)
		if !ok || len(x.Bindings) != len(y.Bindings) {
			return false
		}
		for i := range x.Bindings {
			if x.Bindings[i].Name != y.Bindings[i].Name || !structuralEqual(x.Bindings[i].Value, y.Bindings[i].Value) {
				return false
			}
		}
		return structuralEqual(x.Body, y.Body)

	case *adt.App:
		y, ok := b.(*adt.App)
		return ok && structuralEqual(x.Fn, y.Fn) && structuralEqual(x.Arg, y.Arg)

	case *adt.Conditional:
		y, ok := b.(*adt.Conditional)
		return ok && structuralEqual(x.Cond, y.Cond) && structuralEqual(x.Then, y.Then) && structuralEqual(x.Else, y.Else)

	case *adt.TypeAnnotation:
		y, ok := b.(*adt.TypeAnnotation)
		return ok && structuralEqual(x.Expr, y.Expr) && structuralEqual(x.Type, y.Type)

	case *adt.Op:
		y, ok := b.(*adt.Op)
		return ok && x.Kind == y.Kind && structuralEqual(x.L, y.L) && structuralEqual(x.R, y.R)

	case *adt.Merge:
		y, ok := b.(*adt.Merge)
		if !ok || !structuralEqual(x.Handlers, y.Handlers) || !structuralEqual(x.Union, y.Union) {
			return false
		}
		if (x.Type == nil) != (y.Type == nil) {
			return false
		}
		return x.Type == nil || structuralEqual(x.Type, y.Type)

	case *adt.Select:
		y, ok := b.(*adt.Select)
		return ok && x.Label == y.Label && structuralEqual(x.Expr, y.Expr)

	case *adt.Project:
		y, ok := b.(*adt.Project)
		return ok && sortedStrings(x.Labels) == sortedStrings(y.Labels) && structuralEqual(x.Expr, y.Expr)

	case *adt.RecordLiteral:
		y, ok := b.(*adt.RecordLiteral)
		return ok && fieldsEqual(x.Fields, y.Fields)

	case *adt.RecordType:
		y, ok := b.(*adt.RecordType)
		return ok && fieldsEqual(x.Fields, y.Fields)

	case *adt.Union:
		y, ok := b.(*adt.Union)
		return ok && x.Label == y.Label && structuralEqual(x.Value, y.Value) && alternativesEqual(x.Alternatives, y.Alternatives)

	case *adt.UnionType:
		y, ok := b.(*adt.UnionType)
		return ok && alternativesEqual(x.Alternatives, y.Alternatives)

	case *adt.ListLiteral:
		y, ok := b.(*adt.ListLiteral)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !structuralEqual(x.Items[i], y.Items[i]) {
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
			return x.ElementType == nil || structuralEqual(x.ElementType, y.ElementType)
		}
		return structuralEqual(x.Wrapped, y.Wrapped)

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
			xe, ye := x.Chunks[i].Expr, y.Chunks[i].Expr
			if xe == nil && ye == nil {
				if x.Chunks[i].Text != y.Chunks[i].Text {
					return false
				}
				continue
			}
			if xe == nil || ye == nil || !structuralEqual(xe, ye) {
				return false
			}
		}
		return true

	case *adt.Builtin:
		y, ok := b.(*adt.Builtin)
		return ok && x.Tag == y.Tag

	case *adt.Import:
		y, ok := b.(*adt.Import)
		return ok && x.Source == y.Source

	default:
		return false
	}
}

// fieldsEqual compares two field slices as label-keyed sets: Dhall records
// are unordered, so a stable sort by label precedes comparison.
func fieldsEqual(a, b []adt.Field) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedFields(a), sortedFields(b)
	for i := range as {
		if as[i].Label != bs[i].Label || !structuralEqual(as[i].Value, bs[i].Value) {
			return false
		}
	}
	return true
}

func sortedFields(fields []adt.Field) []adt.Field {
	out := make([]adt.Field, len(fields))
	copy(out, fields)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func alternativesEqual(a, b []adt.Alternative) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedAlternatives(a), sortedAlternatives(b)
	for i := range as {
		if as[i].Label != bs[i].Label {
			return false
		}
		if (as[i].Type == nil) != (bs[i].Type == nil) {
			return false
		}
		if as[i].Type != nil && !structuralEqual(as[i].Type, bs[i].Type) {
			return false
		}
	}
	return true
}

func sortedAlternatives(alts []adt.Alternative) []adt.Alternative {
	out := make([]adt.Alternative, len(alts))
	copy(out, alts)
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func sortedStrings(ss []string) string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	joined := ""
	for _, s := range out {
		joined += "\x00" + s
	}
	return joined
}
