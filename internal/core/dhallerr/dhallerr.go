// Package dhallerr defines the closed taxonomy of error kinds the type
// inferencer can produce (§7). Each kind carries the offending expression
// and a diagnostic string, built on github.com/samber/oops the way
// holomush's internal/auth package builds its own closed error codes
// (oops.Code("...").With(...).Errorf(...)).
package dhallerr

import (
	"github.com/samber/oops"

	"github.com/dhall-go/dhall/internal/core/adt"
	"github.com/dhall-go/dhall/internal/core/debug"
)

// Kind identifies one of the closed error variants from §7.
type Kind string

const (
	KindUnboundVariable         Kind = "UNBOUND_VARIABLE"
	KindAnnotationMismatch      Kind = "ANNOTATION_MISMATCH"
	KindNotAFunction            Kind = "NOT_A_FUNCTION"
	KindArgumentTypeMismatch    Kind = "ARGUMENT_TYPE_MISMATCH"
	KindFieldMissing            Kind = "FIELD_MISSING"
	KindDuplicateLabels         Kind = "DUPLICATE_LABELS"
	KindUnionHandlersMismatch   Kind = "UNION_HANDLERS_MISMATCH"
	KindUniverseMismatch        Kind = "UNIVERSE_MISMATCH"
	KindEmptyMergeWithoutAnnot  Kind = "EMPTY_MERGE_WITHOUT_ANNOTATION"
	KindIllKindedSort           Kind = "ILL_KINDED_SORT"
	KindStepBudgetExceeded      Kind = "STEP_BUDGET_EXCEEDED"
)

// code builds the oops error-code builder for kind, tagging it with the
// offending expression's pretty-printed form when expr is non-nil.
func code(kind Kind, expr adt.Expr) oops.OopsErrorBuilder {
	b := oops.Code(string(kind))
	if expr != nil {
		b = b.With("expr", debug.Pretty(expr))
	}
	return b
}

// UnboundVariable reports a free variable reaching typeOf (§7).
func UnboundVariable(name string, index int) error {
	return code(KindUnboundVariable, &adt.Var{Name: name, Index: index}).
		With("name", name).With("index", index).
		Errorf("unbound variable %s@%d", name, index)
}

// AnnotationMismatch reports a `e : T` whose inferred type differs from T.
func AnnotationMismatch(expr adt.Expr, expected, actual adt.Expr) error {
	return code(KindAnnotationMismatch, expr).
		Errorf("annotation %s does not match inferred type %s", debug.Pretty(expected), debug.Pretty(actual))
}

// NotAFunction reports an application whose head did not infer a ∀ type.
func NotAFunction(expr adt.Expr, actualType adt.Expr) error {
	return code(KindNotAFunction, expr).
		Errorf("%s is not a function, its type is %s", debug.Pretty(expr), debug.Pretty(actualType))
}

// ArgumentTypeMismatch reports an application whose argument's type does
// not match the function's declared parameter type.
func ArgumentTypeMismatch(expr adt.Expr, expected, actual adt.Expr) error {
	return code(KindArgumentTypeMismatch, expr).
		Errorf("argument has type %s, expected %s", debug.Pretty(actual), debug.Pretty(expected))
}

// FieldMissing reports a Select/Merge referencing an unknown label.
func FieldMissing(expr adt.Expr, label string) error {
	return code(KindFieldMissing, expr).With("label", label).
		Errorf("missing field %q", label)
}

// DuplicateLabels reports a V2 violation detected at typing time.
func DuplicateLabels(expr adt.Expr, labels []string) error {
	return code(KindDuplicateLabels, expr).With("labels", labels).
		Errorf("duplicate labels: %v", labels)
}

// UnionHandlersMismatch reports a Merge whose handler labels and union
// alternative labels differ.
func UnionHandlersMismatch(expr adt.Expr, unionLabels, handlerLabels []string) error {
	return code(KindUnionHandlersMismatch, expr).
		With("union_labels", unionLabels).With("handler_labels", handlerLabels).
		Errorf("merge handlers %v do not match union alternatives %v", handlerLabels, unionLabels)
}

// UniverseMismatch reports a failed ↝ check or a mixed-universe record
// type.
func UniverseMismatch(expr adt.Expr, context string) error {
	return code(KindUniverseMismatch, expr).With("context", context).
		Errorf("universe mismatch: %s", context)
}

// EmptyMergeWithoutAnnotation reports a `merge {} u` lacking a result-type
// annotation.
func EmptyMergeWithoutAnnotation(expr adt.Expr) error {
	return code(KindEmptyMergeWithoutAnnot, expr).
		Errorf("merge with no handlers requires a result type annotation")
}

// IllKindedSort reports an attempt to infer the type of Sort itself.
func IllKindedSort() error {
	return code(KindIllKindedSort, &adt.Builtin{Tag: adt.BuiltinSort}).
		Errorf("Sort has no type")
}

// StepBudgetExceeded reports the fuel budget (§5) being exhausted.
func StepBudgetExceeded(expr adt.Expr, budget int) error {
	return code(KindStepBudgetExceeded, expr).With("budget", budget).
		Errorf("step budget of %d exceeded", budget)
}

// KindOf extracts the Kind tag from an error produced by this package, if
// any. It lets callers dispatch on error kind the way errors.As dispatches
// on a concrete error type.
func KindOf(err error) (Kind, bool) {
	oe, ok := oops.AsOops(err)
	if !ok {
		return "", false
	}
	if oe.Code == "" {
		return "", false
	}
	return Kind(oe.Code), true
}
