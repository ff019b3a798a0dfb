// Package builtin is the table from built-in name (adt.BuiltinTag) to a
// descriptor of its type, arity, and reduction rule (§4.5, C7). It depends
// only on adt, never on eval or typecheck, so that both can consult it
// without an import cycle: Reduce operates purely over already-evaluated
// adt.Expr arguments and, where a rule needs to keep evaluating (List/fold,
// List/build), returns a plain, not-yet-reduced adt.Expr for the caller
// (internal/core/eval) to feed back into its own evaluation loop.
//
// This mirrors the teacher's pkg/list and pkg/math built-in packages in
// spirit (a name → descriptor table consulted by the evaluator/checker)
// but those operate on cue.Value and an internal.CallCtxt callback and are
// not reusable as-is; nothing from them is copied verbatim (see
// DESIGN.md).
package builtin

import (
	"github.com/dhall-go/dhall/internal/core/adt"
)

// Descriptor describes one built-in.
type Descriptor struct {
	Tag   adt.BuiltinTag
	Type  adt.Expr
	Arity int
	// Reduce fires once exactly Arity arguments have been applied, each
	// already evaluated to normal form. It returns the reduced
	// expression and true if the rule fired, or (nil, false) to leave
	// the application stuck (rebuilt as nested App nodes by the
	// caller). The returned expression may itself still need further
	// evaluation (e.g. a constructed App(Lambda, arg)); callers are
	// expected to keep evaluating it.
	Reduce func(args []adt.Expr) (adt.Expr, bool)
}

func forAllType() adt.Expr {
	return &adt.ForAll{Param: "_", ParamType: typ(), Body: typ()}
}

func typ() adt.Expr     { return &adt.Builtin{Tag: adt.BuiltinType} }
func kind() adt.Expr    { return &adt.Builtin{Tag: adt.BuiltinKind} }
func natural() adt.Expr { return &adt.Builtin{Tag: adt.BuiltinNatural} }
func double() adt.Expr  { return &adt.Builtin{Tag: adt.BuiltinDouble} }
func text() adt.Expr    { return &adt.Builtin{Tag: adt.BuiltinText} }

func listOf(elem adt.Expr) adt.Expr {
	return &adt.App{Fn: &adt.Builtin{Tag: adt.BuiltinList}, Arg: elem}
}

func optionalOf(elem adt.Expr) adt.Expr {
	return &adt.App{Fn: &adt.Builtin{Tag: adt.BuiltinOptional}, Arg: elem}
}

// listFoldHandlerType builds ∀(list:Type)→∀(cons:a→list→list)→∀(nil:list)→list
// for element type a (a Var with index 0 relative to where it is bound).
func listFoldHandlerType(a adt.Expr) adt.Expr {
	list := &adt.Var{Name: "list", Index: 0}
	return &adt.ForAll{
		Param:     "list",
		ParamType: typ(),
		Body: &adt.ForAll{
			Param: "cons",
			ParamType: &adt.ForAll{
				Param:     "_",
				ParamType: a,
				Body: &adt.ForAll{
					Param:     "_",
					ParamType: list,
					Body:      list,
				},
			},
			Body: &adt.ForAll{
				Param:     "nil",
				ParamType: list,
				Body:      list,
			},
		},
	}
}

// Registry maps every built-in tag to its descriptor.
var Registry = map[adt.BuiltinTag]Descriptor{
	adt.BuiltinSort: {
		Tag:  adt.BuiltinSort,
		Type: nil, // Sort has no type (§4.5, IllKindedSort)
	},
	adt.BuiltinKind: {
		Tag:  adt.BuiltinKind,
		Type: &adt.Builtin{Tag: adt.BuiltinSort},
	},
	adt.BuiltinType: {
		Tag:  adt.BuiltinType,
		Type: &adt.Builtin{Tag: adt.BuiltinKind},
	},
	adt.BuiltinBool: {
		Tag:  adt.BuiltinBool,
		Type: typ(),
	},
	adt.BuiltinNatural: {
		Tag:  adt.BuiltinNatural,
		Type: typ(),
	},
	adt.BuiltinDouble: {
		Tag:  adt.BuiltinDouble,
		Type: typ(),
	},
	adt.BuiltinText: {
		Tag:  adt.BuiltinText,
		Type: typ(),
	},
	adt.BuiltinList: {
		Tag:    adt.BuiltinList,
		Type:   forAllType(),
		Arity:  1,
		Reduce: func(args []adt.Expr) (adt.Expr, bool) { return nil, false },
	},
	adt.BuiltinOptional: {
		Tag:    adt.BuiltinOptional,
		Type:   forAllType(),
		Arity:  1,
		Reduce: func(args []adt.Expr) (adt.Expr, bool) { return nil, false },
	},
	adt.BuiltinNone: {
		Tag:   adt.BuiltinNone,
		Type:  &adt.ForAll{Param: "a", ParamType: typ(), Body: optionalOf(&adt.Var{Name: "a", Index: 0})},
		Arity: 1,
		Reduce: func(args []adt.Expr) (adt.Expr, bool) {
			return &adt.OptionalLiteral{ElementType: args[0]}, true
		},
	},
	adt.BuiltinListBuild: {
		Tag: adt.BuiltinListBuild,
		Type: &adt.ForAll{
			Param:     "a",
			ParamType: typ(),
			Body: &adt.ForAll{
				Param:     "_",
				ParamType: listFoldHandlerType(&adt.Var{Name: "a", Index: 0}),
				Body:      listOf(&adt.Var{Name: "a", Index: 0}),
			},
		},
		Arity:  2,
		Reduce: reduceListBuild,
	},
	adt.BuiltinListFold: {
		Tag: adt.BuiltinListFold,
		Type: &adt.ForAll{
			Param:     "a",
			ParamType: typ(),
			Body: &adt.ForAll{
				Param:     "_",
				ParamType: listOf(&adt.Var{Name: "a", Index: 0}),
				Body:      listFoldHandlerType(&adt.Var{Name: "a", Index: 0}),
			},
		},
		Arity:  5,
		Reduce: reduceListFold,
	},
	adt.BuiltinDoubleShow: {
		Tag:    adt.BuiltinDoubleShow,
		Type:   &adt.ForAll{Param: "_", ParamType: double(), Body: text()},
		Arity:  1,
		Reduce: reduceDoubleShow,
	},
}

// Spine unwinds nested App nodes around a Builtin head, returning the tag
// and the already-applied arguments in application order (first-applied
// first). ok is false if e is not built on a Builtin head.
func Spine(e adt.Expr) (tag adt.BuiltinTag, args []adt.Expr, ok bool) {
	for {
		switch x := e.(type) {
		case *adt.Builtin:
			reverse(args)
			return x.Tag, args, true
		case *adt.App:
			args = append(args, x.Arg)
			e = x.Fn
		default:
			return 0, nil, false
		}
	}
}

func reverse(es []adt.Expr) {
	for i, j := 0, len(es)-1; i < j; i, j = i+1, j-1 {
		es[i], es[j] = es[j], es[i]
	}
}

// TryReduce attempts to fire the built-in reduction rule for an
// application whose (already evaluated) function position unwinds to tag
// with priorArgs already applied, and newArg being the argument just
// applied. It returns (nil, false) when tag is unregistered, arity is not
// yet met, or the rule declines to fire.
func TryReduce(tag adt.BuiltinTag, priorArgs []adt.Expr, newArg adt.Expr) (adt.Expr, bool) {
	desc, ok := Registry[tag]
	if !ok || desc.Reduce == nil {
		return nil, false
	}
	args := make([]adt.Expr, 0, len(priorArgs)+1)
	args = append(args, priorArgs...)
	args = append(args, newArg)
	if len(args) != desc.Arity {
		return nil, false
	}
	return desc.Reduce(args)
}
