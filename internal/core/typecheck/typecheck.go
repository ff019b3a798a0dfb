// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package typecheck

import (
	"fmt"
	"sort"

	"github.com/dhall-go/dhall/internal/core/adt"
	"github.com/dhall-go/dhall/internal/core/builtin"
	"github.com/dhall-go/dhall/internal/core/dhallerr"
	"github.com/dhall-go/dhall/internal/core/eval"
	"github.com/dhall-go/dhall/internal/core/norm"
)

// Inferencer performs bidirectional type inference (C5, §4.4) under an
// optional shared step budget (§5).
type Inferencer struct {
	Fuel *adt.Fuel
	Eval *eval.Evaluator
}

// New returns an Inferencer sharing fuel with its own Evaluator, so typeOf
// and the normalization it relies on draw from the same budget.
func New(fuel *adt.Fuel) *Inferencer {
	return &Inferencer{Fuel: fuel, Eval: eval.New(fuel)}
}

// TypeOf is the public entry point (§6.2): infers e's type under the
// empty context, recovering a spent fuel budget into
// dhallerr.StepBudgetExceeded the same way eval.Evaluator.Evaluate does.
func (inf *Inferencer) TypeOf(e adt.Expr) (result adt.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(adt.FuelExceeded); ok {
				err = dhallerr.StepBudgetExceeded(fe.Expr, fe.Budget)
				return
			}
			panic(r)
		}
	}()
	return inf.infer(e, Empty())
}

// infer always returns a β-normal type: every case below builds the raw
// type expression for e and normalizes it once before returning, so
// callers needing "the type of this type" can simply recurse into infer
// again instead of separately normalizing.
func (inf *Inferencer) infer(e adt.Expr, ctx Context) (adt.Expr, error) {
	inf.Fuel.Consume(e)
	t, err := inf.inferRaw(e, ctx)
	if err != nil {
		return nil, err
	}
	return inf.Eval.Evaluate(t, ctx.Values)
}

func (inf *Inferencer) inferRaw(e adt.Expr, ctx Context) (adt.Expr, error) {
	switch x := e.(type) {
	case *adt.Var:
		t, ok := ctx.Types.Get(x.Name, x.Index)
		if !ok {
			return nil, dhallerr.UnboundVariable(x.Name, x.Index)
		}
		return t, nil

	case *adt.Builtin:
		if x.Tag == adt.BuiltinSort {
			return nil, dhallerr.IllKindedSort()
		}
		return builtin.Registry[x.Tag].Type, nil

	case *adt.Lambda:
		return inf.inferLambda(e, x, ctx)

	case *adt.ForAll:
		return inf.inferForAll(e, x, ctx)

	case *adt.LetIn:
		return inf.inferLetIn(x, ctx)

	case *adt.App:
		return inf.inferApp(e, x, ctx)

	case *adt.Conditional:
		return inf.inferConditional(e, x, ctx)

	case *adt.TypeAnnotation:
		return inf.inferAnnotation(e, x, ctx)

	case *adt.Op:
		return inf.inferOp(e, x, ctx)

	case *adt.Merge:
		return inf.inferMerge(e, x, ctx)

	case *adt.Select:
		return inf.inferSelect(e, x, ctx)

	case *adt.Project:
		return inf.inferProject(e, x, ctx)

	case *adt.RecordLiteral:
		return inf.inferRecordLiteral(e, x, ctx)

	case *adt.RecordType:
		return inf.inferRecordType(e, x, ctx)

	case *adt.Union:
		return inf.inferUnion(e, x, ctx)

	case *adt.UnionType:
		return inf.inferUnionType(e, x, ctx)

	case *adt.ListLiteral:
		return inf.inferListLiteral(e, x, ctx)

	case *adt.OptionalLiteral:
		return inf.inferOptionalLiteral(e, x, ctx)

	case *adt.NaturalLiteral:
		return naturalType(), nil

	case *adt.DoubleLiteral:
		return doubleType(), nil

	case *adt.BooleanLiteral:
		return boolType(), nil

	case *adt.TextLiteral:
		return inf.inferTextLiteral(x, ctx)

	case *adt.Import:
		return nil, fmt.Errorf("unresolved import reached typeOf: %s", x.Source)

	default:
		return nil, fmt.Errorf("typecheck: unhandled expression %T", e)
	}
}

func (inf *Inferencer) inferLambda(e adt.Expr, x *adt.Lambda, ctx Context) (adt.Expr, error) {
	paramTypeType, err := inf.infer(x.ParamType, ctx)
	if err != nil {
		return nil, err
	}
	u1, ok := universeOf(paramTypeType)
	if !ok {
		return nil, dhallerr.UniverseMismatch(e, "lambda parameter type is not Type, Kind, or Sort")
	}
	normParamType, err := inf.Eval.Evaluate(x.ParamType, ctx.Values)
	if err != nil {
		return nil, err
	}
	inner := ctx.shadow(x.Param, normParamType, nil)
	bodyType, err := inf.infer(x.Body, inner)
	if err != nil {
		return nil, err
	}
	bodyTypeType, err := inf.infer(bodyType, inner)
	if err != nil {
		return nil, err
	}
	u2, ok := universeOf(bodyTypeType)
	if !ok {
		return nil, dhallerr.UniverseMismatch(e, "lambda body type is not Type, Kind, or Sort")
	}
	if _, ok := adt.FunctionCheck(u1, u2); !ok {
		return nil, dhallerr.UniverseMismatch(e, fmt.Sprintf("function from %s to %s is not allowed", u1, u2))
	}
	return &adt.ForAll{Param: x.Param, ParamType: normParamType, Body: bodyType}, nil
}

func (inf *Inferencer) inferForAll(e adt.Expr, x *adt.ForAll, ctx Context) (adt.Expr, error) {
	paramTypeType, err := inf.infer(x.ParamType, ctx)
	if err != nil {
		return nil, err
	}
	u1, ok := universeOf(paramTypeType)
	if !ok {
		return nil, dhallerr.UniverseMismatch(e, "forall parameter type is not Type, Kind, or Sort")
	}
	normParamType, err := inf.Eval.Evaluate(x.ParamType, ctx.Values)
	if err != nil {
		return nil, err
	}
	inner := ctx.shadow(x.Param, normParamType, nil)
	bodyTypeType, err := inf.infer(x.Body, inner)
	if err != nil {
		return nil, err
	}
	u2, ok := universeOf(bodyTypeType)
	if !ok {
		return nil, dhallerr.UniverseMismatch(e, "forall body type is not Type, Kind, or Sort")
	}
	result, ok := adt.FunctionCheck(u1, u2)
	if !ok {
		return nil, dhallerr.UniverseMismatch(e, fmt.Sprintf("function from %s to %s is not allowed", u1, u2))
	}
	return result.Expr(), nil
}

func (inf *Inferencer) inferLetIn(x *adt.LetIn, ctx Context) (adt.Expr, error) {
	cur := ctx
	for _, bind := range x.Bindings {
		valType, err := inf.infer(bind.Value, cur)
		if err != nil {
			return nil, err
		}
		if bind.Type != nil {
			if _, err := inf.infer(bind.Type, cur); err != nil {
				return nil, err
			}
			annot, err := inf.Eval.Evaluate(bind.Type, cur.Values)
			if err != nil {
				return nil, err
			}
			if !alphaEqual(annot, valType) {
				return nil, dhallerr.AnnotationMismatch(bind.Value, annot, valType)
			}
		}
		normVal, err := inf.Eval.Evaluate(bind.Value, cur.Values)
		if err != nil {
			return nil, err
		}
		cur = cur.shadow(bind.Name, valType, normVal)
	}
	return inf.infer(x.Body, cur)
}

func (inf *Inferencer) inferApp(e adt.Expr, x *adt.App, ctx Context) (adt.Expr, error) {
	fType, err := inf.infer(x.Fn, ctx)
	if err != nil {
		return nil, err
	}
	forall, ok := fType.(*adt.ForAll)
	if !ok {
		return nil, dhallerr.NotAFunction(x.Fn, fType)
	}
	aType, err := inf.infer(x.Arg, ctx)
	if err != nil {
		return nil, err
	}
	if !alphaEqual(forall.ParamType, aType) {
		return nil, dhallerr.ArgumentTypeMismatch(e, forall.ParamType, aType)
	}
	normArg, err := inf.Eval.Evaluate(x.Arg, ctx.Values)
	if err != nil {
		return nil, err
	}
	resultEnv := eval.EmptyEnv().Shadow(forall.Param, eval.Binding{Expr: normArg, Env: eval.EmptyEnv()})
	return inf.Eval.Evaluate(forall.Body, resultEnv)
}

func (inf *Inferencer) inferConditional(e adt.Expr, x *adt.Conditional, ctx Context) (adt.Expr, error) {
	condType, err := inf.infer(x.Cond, ctx)
	if err != nil {
		return nil, err
	}
	if !alphaEqual(condType, boolType()) {
		return nil, dhallerr.AnnotationMismatch(x.Cond, boolType(), condType)
	}
	thenType, err := inf.infer(x.Then, ctx)
	if err != nil {
		return nil, err
	}
	elseType, err := inf.infer(x.Else, ctx)
	if err != nil {
		return nil, err
	}
	if !alphaEqual(thenType, elseType) {
		return nil, dhallerr.AnnotationMismatch(e, thenType, elseType)
	}
	return thenType, nil
}

func (inf *Inferencer) inferAnnotation(e adt.Expr, x *adt.TypeAnnotation, ctx Context) (adt.Expr, error) {
	if _, err := inf.infer(x.Type, ctx); err != nil {
		return nil, err
	}
	normType, err := inf.Eval.Evaluate(x.Type, ctx.Values)
	if err != nil {
		return nil, err
	}
	exprType, err := inf.infer(x.Expr, ctx)
	if err != nil {
		return nil, err
	}
	if !alphaEqual(exprType, normType) {
		return nil, dhallerr.AnnotationMismatch(e, normType, exprType)
	}
	return normType, nil
}

func (inf *Inferencer) inferRecordLiteral(e adt.Expr, x *adt.RecordLiteral, ctx Context) (adt.Expr, error) {
	if dup, ok := firstDuplicate(x.Fields); ok {
		return nil, dhallerr.DuplicateLabels(e, fieldLabels(x.Fields))
	} else {
		_ = dup
	}
	fields := make([]adt.Field, len(x.Fields))
	for i, f := range x.Fields {
		ft, err := inf.infer(f.Value, ctx)
		if err != nil {
			return nil, err
		}
		fields[i] = adt.Field{Label: f.Label, Value: ft}
	}
	return &adt.RecordType{Fields: fields}, nil
}

func (inf *Inferencer) inferRecordType(e adt.Expr, x *adt.RecordType, ctx Context) (adt.Expr, error) {
	if _, ok := firstDuplicate(x.Fields); ok {
		return nil, dhallerr.DuplicateLabels(e, fieldLabels(x.Fields))
	}
	sawKind := false
	for _, f := range x.Fields {
		ft, err := inf.infer(f.Value, ctx)
		if err != nil {
			return nil, err
		}
		u, ok := universeOf(ft)
		if !ok {
			return nil, dhallerr.UniverseMismatch(e, "record field type is not Type, Kind, or Sort")
		}
		switch u {
		case adt.UniverseKind:
			sawKind = true
		case adt.UniverseSort:
			return nil, dhallerr.UniverseMismatch(e, "record field may not itself have type Sort")
		}
	}
	if sawKind {
		return adt.UniverseSort.Expr(), nil
	}
	return adt.UniverseType.Expr(), nil
}

func (inf *Inferencer) inferUnion(e adt.Expr, x *adt.Union, ctx Context) (adt.Expr, error) {
	seen := map[string]bool{x.Label: true}
	for _, a := range x.Alternatives {
		if seen[a.Label] {
			return nil, dhallerr.DuplicateLabels(e, append([]string{x.Label}, altLabels(x.Alternatives)...))
		}
		seen[a.Label] = true
	}
	vt, err := inf.infer(x.Value, ctx)
	if err != nil {
		return nil, err
	}
	ut := &adt.UnionType{Alternatives: append([]adt.Alternative{{Label: x.Label, Type: vt}}, x.Alternatives...)}
	if _, err := inf.infer(ut, ctx); err != nil {
		return nil, err
	}
	return ut, nil
}

func (inf *Inferencer) inferUnionType(e adt.Expr, x *adt.UnionType, ctx Context) (adt.Expr, error) {
	if dup, ok := firstDuplicateAlt(x.Alternatives); ok {
		return nil, dhallerr.DuplicateLabels(e, []string{dup})
	}
	var result *adt.Universe
	for _, a := range x.Alternatives {
		if a.Type == nil {
			continue
		}
		at, err := inf.infer(a.Type, ctx)
		if err != nil {
			return nil, err
		}
		u, ok := universeOf(at)
		if !ok {
			return nil, dhallerr.UniverseMismatch(e, "union alternative type is not Type, Kind, or Sort")
		}
		if result != nil && *result != u {
			return nil, dhallerr.UniverseMismatch(e, "union alternatives have mixed universes")
		}
		result = &u
	}
	if result == nil {
		return adt.UniverseType.Expr(), nil
	}
	return result.Expr(), nil
}

func (inf *Inferencer) inferListLiteral(e adt.Expr, x *adt.ListLiteral, ctx Context) (adt.Expr, error) {
	if len(x.Items) == 0 {
		et, err := inf.infer(x.ElementType, ctx)
		if err != nil {
			return nil, err
		}
		if u, ok := universeOf(et); !ok || u != adt.UniverseType {
			return nil, dhallerr.UniverseMismatch(e, "list element type is not Type")
		}
		normElem, err := inf.Eval.Evaluate(x.ElementType, ctx.Values)
		if err != nil {
			return nil, err
		}
		return listOf(normElem), nil
	}
	headType, err := inf.infer(x.Items[0], ctx)
	if err != nil {
		return nil, err
	}
	headTypeType, err := inf.infer(headType, ctx)
	if err != nil {
		return nil, err
	}
	if u, ok := universeOf(headTypeType); !ok || u != adt.UniverseType {
		return nil, dhallerr.UniverseMismatch(e, "list element type is not Type")
	}
	for _, item := range x.Items[1:] {
		it, err := inf.infer(item, ctx)
		if err != nil {
			return nil, err
		}
		if !alphaEqual(it, headType) {
			return nil, dhallerr.ArgumentTypeMismatch(e, headType, it)
		}
	}
	return listOf(headType), nil
}

func (inf *Inferencer) inferOptionalLiteral(e adt.Expr, x *adt.OptionalLiteral, ctx Context) (adt.Expr, error) {
	if x.Wrapped == nil {
		if x.ElementType == nil {
			return nil, dhallerr.EmptyMergeWithoutAnnotation(e)
		}
		ett, err := inf.infer(x.ElementType, ctx)
		if err != nil {
			return nil, err
		}
		if u, ok := universeOf(ett); !ok || u != adt.UniverseType {
			return nil, dhallerr.UniverseMismatch(e, "optional element type is not Type")
		}
		elemType, err := inf.Eval.Evaluate(x.ElementType, ctx.Values)
		if err != nil {
			return nil, err
		}
		return optionalOf(elemType), nil
	}
	wt, err := inf.infer(x.Wrapped, ctx)
	if err != nil {
		return nil, err
	}
	wtt, err := inf.infer(wt, ctx)
	if err != nil {
		return nil, err
	}
	if u, ok := universeOf(wtt); !ok || u != adt.UniverseType {
		return nil, dhallerr.UniverseMismatch(e, "optional element type is not Type")
	}
	return optionalOf(wt), nil
}

func (inf *Inferencer) inferTextLiteral(x *adt.TextLiteral, ctx Context) (adt.Expr, error) {
	for _, c := range x.Chunks {
		if c.Expr == nil {
			continue
		}
		ct, err := inf.infer(c.Expr, ctx)
		if err != nil {
			return nil, err
		}
		if !alphaEqual(ct, textType()) {
			return nil, dhallerr.ArgumentTypeMismatch(c.Expr, textType(), ct)
		}
	}
	return textType(), nil
}

func (inf *Inferencer) inferSelect(e adt.Expr, x *adt.Select, ctx Context) (adt.Expr, error) {
	normExpr, err := inf.Eval.Evaluate(x.Expr, ctx.Values)
	if err != nil {
		return nil, err
	}
	if ut, ok := normExpr.(*adt.UnionType); ok {
		for _, a := range ut.Alternatives {
			if a.Label == x.Label {
				return &adt.ForAll{Param: "_", ParamType: a.Type, Body: ut}, nil
			}
		}
		return nil, dhallerr.FieldMissing(e, x.Label)
	}
	et, err := inf.infer(x.Expr, ctx)
	if err != nil {
		return nil, err
	}
	rt, ok := et.(*adt.RecordType)
	if !ok {
		return nil, dhallerr.FieldMissing(e, x.Label)
	}
	for _, f := range rt.Fields {
		if f.Label == x.Label {
			return f.Value, nil
		}
	}
	return nil, dhallerr.FieldMissing(e, x.Label)
}

func (inf *Inferencer) inferProject(e adt.Expr, x *adt.Project, ctx Context) (adt.Expr, error) {
	if dup, ok := firstDuplicateString(x.Labels); ok {
		return nil, dhallerr.DuplicateLabels(e, []string{dup})
	}
	et, err := inf.infer(x.Expr, ctx)
	if err != nil {
		return nil, err
	}
	rt, ok := et.(*adt.RecordType)
	if !ok {
		return nil, dhallerr.FieldMissing(e, "project operand is not a record")
	}
	byLabel := map[string]adt.Expr{}
	for _, f := range rt.Fields {
		byLabel[f.Label] = f.Value
	}
	fields := make([]adt.Field, 0, len(x.Labels))
	for _, l := range x.Labels {
		v, ok := byLabel[l]
		if !ok {
			return nil, dhallerr.FieldMissing(e, l)
		}
		fields = append(fields, adt.Field{Label: l, Value: v})
	}
	return &adt.RecordType{Fields: fields}, nil
}

func (inf *Inferencer) inferMerge(e adt.Expr, x *adt.Merge, ctx Context) (adt.Expr, error) {
	ht, err := inf.infer(x.Handlers, ctx)
	if err != nil {
		return nil, err
	}
	handlersType, ok := ht.(*adt.RecordType)
	if !ok {
		return nil, dhallerr.UnionHandlersMismatch(e, nil, nil)
	}
	ut, err := inf.infer(x.Union, ctx)
	if err != nil {
		return nil, err
	}
	unionType, ok := ut.(*adt.UnionType)
	if !ok {
		return nil, dhallerr.UnionHandlersMismatch(e, nil, nil)
	}
	unionLabels := altLabels(unionType.Alternatives)
	handlerLabels := fieldLabels(handlersType.Fields)
	if !sameLabelSet(unionLabels, handlerLabels) {
		return nil, dhallerr.UnionHandlersMismatch(e, unionLabels, handlerLabels)
	}

	var annotated adt.Expr
	if x.Type != nil {
		if _, err := inf.infer(x.Type, ctx); err != nil {
			return nil, err
		}
		annotated, err = inf.Eval.Evaluate(x.Type, ctx.Values)
		if err != nil {
			return nil, err
		}
	}

	if len(handlersType.Fields) == 0 {
		if annotated == nil {
			return nil, dhallerr.EmptyMergeWithoutAnnotation(e)
		}
		return annotated, nil
	}

	byLabel := map[string]adt.Expr{}
	for _, f := range handlersType.Fields {
		byLabel[f.Label] = f.Value
	}
	var out adt.Expr
	for _, alt := range unionType.Alternatives {
		handler := byLabel[alt.Label]
		if alt.Type == nil {
			if out == nil {
				out = handler
			} else if !alphaEqual(out, handler) {
				return nil, dhallerr.UnionHandlersMismatch(e, unionLabels, handlerLabels)
			}
			continue
		}
		fa, ok := handler.(*adt.ForAll)
		if !ok {
			return nil, dhallerr.UnionHandlersMismatch(e, unionLabels, handlerLabels)
		}
		if !alphaEqual(fa.ParamType, alt.Type) {
			return nil, dhallerr.ArgumentTypeMismatch(e, alt.Type, fa.ParamType)
		}
		if out == nil {
			out = fa.Body
		} else if !alphaEqual(out, fa.Body) {
			return nil, dhallerr.UnionHandlersMismatch(e, unionLabels, handlerLabels)
		}
	}
	if annotated != nil && !alphaEqual(out, annotated) {
		return nil, dhallerr.AnnotationMismatch(e, annotated, out)
	}
	return out, nil
}

func (inf *Inferencer) inferOp(e adt.Expr, x *adt.Op, ctx Context) (adt.Expr, error) {
	switch x.Kind {
	case adt.OpPlus, adt.OpTimes:
		return inf.checkBinaryOp(x, ctx, naturalType())
	case adt.OpAnd, adt.OpOr, adt.OpEqual, adt.OpNotEqual:
		return inf.checkBinaryOp(x, ctx, boolType())
	case adt.OpTextAppend:
		return inf.checkBinaryOp(x, ctx, textType())
	case adt.OpListAppend:
		lt, err := inf.infer(x.L, ctx)
		if err != nil {
			return nil, err
		}
		rt, err := inf.infer(x.R, ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := asListType(lt); !ok {
			return nil, dhallerr.ArgumentTypeMismatch(x.L, nil, lt)
		}
		if !alphaEqual(lt, rt) {
			return nil, dhallerr.ArgumentTypeMismatch(x.R, lt, rt)
		}
		return lt, nil
	case adt.OpCombine, adt.OpPrefer:
		lt, err := inf.infer(x.L, ctx)
		if err != nil {
			return nil, err
		}
		rt, err := inf.infer(x.R, ctx)
		if err != nil {
			return nil, err
		}
		lrt, ok1 := lt.(*adt.RecordType)
		rrt, ok2 := rt.(*adt.RecordType)
		if !ok1 || !ok2 {
			return nil, dhallerr.UniverseMismatch(e, "combine/prefer operands must be records")
		}
		return combineRecordTypes(x.Kind, lrt, rrt), nil
	case adt.OpCombineTypes:
		normL, err := inf.Eval.Evaluate(x.L, ctx.Values)
		if err != nil {
			return nil, err
		}
		normR, err := inf.Eval.Evaluate(x.R, ctx.Values)
		if err != nil {
			return nil, err
		}
		lrt, ok1 := normL.(*adt.RecordType)
		rrt, ok2 := normR.(*adt.RecordType)
		if !ok1 || !ok2 {
			return nil, dhallerr.UniverseMismatch(e, "combine-types operands must be record types")
		}
		combined := combineRecordTypes(adt.OpCombineTypes, lrt, rrt)
		return inf.infer(combined, ctx)
	case adt.OpImportAlt:
		return inf.infer(x.L, ctx)
	default:
		return nil, fmt.Errorf("typecheck: unhandled operator %s", x.Kind)
	}
}

func (inf *Inferencer) checkBinaryOp(x *adt.Op, ctx Context, want adt.Expr) (adt.Expr, error) {
	lt, err := inf.infer(x.L, ctx)
	if err != nil {
		return nil, err
	}
	if !alphaEqual(lt, want) {
		return nil, dhallerr.ArgumentTypeMismatch(x.L, want, lt)
	}
	rt, err := inf.infer(x.R, ctx)
	if err != nil {
		return nil, err
	}
	if !alphaEqual(rt, want) {
		return nil, dhallerr.ArgumentTypeMismatch(x.R, want, rt)
	}
	return want, nil
}

func combineRecordTypes(kind adt.OpKind, l, r *adt.RecordType) *adt.RecordType {
	byLabel := map[string]adt.Expr{}
	order := make([]string, 0, len(l.Fields)+len(r.Fields))
	for _, f := range l.Fields {
		byLabel[f.Label] = f.Value
		order = append(order, f.Label)
	}
	for _, f := range r.Fields {
		existing, ok := byLabel[f.Label]
		if !ok {
			byLabel[f.Label] = f.Value
			order = append(order, f.Label)
			continue
		}
		if kind == adt.OpPrefer {
			byLabel[f.Label] = f.Value
			continue
		}
		el, eok := existing.(*adt.RecordType)
		fr, fok := f.Value.(*adt.RecordType)
		if eok && fok {
			byLabel[f.Label] = combineRecordTypes(kind, el, fr)
		} else {
			byLabel[f.Label] = f.Value
		}
	}
	fields := make([]adt.Field, len(order))
	for i, l := range order {
		fields[i] = adt.Field{Label: l, Value: byLabel[l]}
	}
	return &adt.RecordType{Fields: fields}
}

func universeOf(t adt.Expr) (adt.Universe, bool) {
	b, ok := t.(*adt.Builtin)
	if !ok {
		return 0, false
	}
	switch b.Tag {
	case adt.BuiltinType:
		return adt.UniverseType, true
	case adt.BuiltinKind:
		return adt.UniverseKind, true
	case adt.BuiltinSort:
		return adt.UniverseSort, true
	}
	return 0, false
}

func asListType(t adt.Expr) (adt.Expr, bool) {
	app, ok := t.(*adt.App)
	if !ok {
		return nil, false
	}
	b, ok := app.Fn.(*adt.Builtin)
	if !ok || b.Tag != adt.BuiltinList {
		return nil, false
	}
	return app.Arg, true
}

func alphaEqual(a, b adt.Expr) bool {
	return structuralEqual(norm.Alpha(a), norm.Alpha(b))
}

func boolType() adt.Expr    { return &adt.Builtin{Tag: adt.BuiltinBool} }
func naturalType() adt.Expr { return &adt.Builtin{Tag: adt.BuiltinNatural} }
func doubleType() adt.Expr  { return &adt.Builtin{Tag: adt.BuiltinDouble} }
func textType() adt.Expr    { return &adt.Builtin{Tag: adt.BuiltinText} }

func listOf(elem adt.Expr) adt.Expr {
	return &adt.App{Fn: &adt.Builtin{Tag: adt.BuiltinList}, Arg: elem}
}

func optionalOf(elem adt.Expr) adt.Expr {
	return &adt.App{Fn: &adt.Builtin{Tag: adt.BuiltinOptional}, Arg: elem}
}

func fieldLabels(fields []adt.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

func altLabels(alts []adt.Alternative) []string {
	out := make([]string, len(alts))
	for i, a := range alts {
		out[i] = a.Label
	}
	return out
}

func firstDuplicate(fields []adt.Field) (string, bool) {
	seen := map[string]bool{}
	for _, f := range fields {
		if seen[f.Label] {
			return f.Label, true
		}
		seen[f.Label] = true
	}
	return "", false
}

func firstDuplicateAlt(alts []adt.Alternative) (string, bool) {
	seen := map[string]bool{}
	for _, a := range alts {
		if seen[a.Label] {
			return a.Label, true
		}
		seen[a.Label] = true
	}
	return "", false
}

func firstDuplicateString(ss []string) (string, bool) {
	seen := map[string]bool{}
	for _, s := range ss {
		if seen[s] {
			return s, true
		}
		seen[s] = true
	}
	return "", false
}

func sameLabelSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := append([]string{}, a...), append([]string{}, b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
