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

// Package eval implements β-evaluation (C4, §4.2): full normalization of
// an adt.Expr to weak/normal β-normal form under a value context, with
// capture-avoiding substitution and built-in reduction.
package eval

import (
	"github.com/cockroachdb/apd/v2"

	"github.com/dhall-go/dhall/internal/core/adt"
	"github.com/dhall-go/dhall/internal/core/builtin"
	"github.com/dhall-go/dhall/internal/core/dhallerr"
	"github.com/dhall-go/dhall/internal/core/norm"
)

// Binding is the payload carried by an Env entry (§3.2's value context
// Γ_V): either a captured closure over an unevaluated value (Expr
// non-nil, Env the snapshot it must be evaluated under — §4.2.1), or the
// "bound but not substituted" placeholder used for Lambda/ForAll
// parameters (Expr nil).
type Binding struct {
	Expr adt.Expr
	Env  Env
}

// Env is the value context Γ_V.
type Env = adt.ShadowContext[Binding]

// EmptyEnv is the empty value context.
func EmptyEnv() Env { return adt.NewShadowContext[Binding]() }

// Evaluator performs β-evaluation under an optional step budget (§5).
type Evaluator struct {
	Fuel *adt.Fuel
}

// New returns an Evaluator with the given fuel budget. A nil budget means
// unbounded.
func New(fuel *adt.Fuel) *Evaluator {
	return &Evaluator{Fuel: fuel}
}

// Evaluate is the public entry point: β(e, env). It never returns an error
// on well-typed input (§7); on adversarial input it either returns a
// (possibly non-canonical) expression or, once the fuel budget is spent,
// a dhallerr.StepBudgetExceeded error.
func (ev *Evaluator) Evaluate(e adt.Expr, env Env) (result adt.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(adt.FuelExceeded); ok {
				err = dhallerr.StepBudgetExceeded(fe.Expr, fe.Budget)
				return
			}
			panic(r)
		}
	}()
	return ev.eval(e, env), nil
}

func (ev *Evaluator) eval(e adt.Expr, env Env) adt.Expr {
	ev.Fuel.Consume(e)

	switch x := e.(type) {
	case *adt.Var:
		if b, ok := env.Get(x.Name, x.Index); ok {
			if b.Expr == nil {
				return x // bound, not substituted: stays free at this depth
			}
			return ev.eval(b.Expr, b.Env)
		}
		return x

	case *adt.Lambda:
		paramType := ev.eval(x.ParamType, env)
		body := ev.eval(x.Body, env.Shadow(x.Param, Binding{}))
		return &adt.Lambda{Param: x.Param, ParamType: paramType, Body: body}

	case *adt.ForAll:
		paramType := ev.eval(x.ParamType, env)
		body := ev.eval(x.Body, env.Shadow(x.Param, Binding{}))
		return &adt.ForAll{Param: x.Param, ParamType: paramType, Body: body}

	case *adt.LetIn:
		cur := env
		for _, b := range x.Bindings {
			cur = cur.Shadow(b.Name, Binding{Expr: b.Value, Env: env})
			env = cur
		}
		return ev.eval(x.Body, cur)

	case *adt.App:
		fn := ev.eval(x.Fn, env)
		arg := ev.eval(x.Arg, env)
		return ev.apply(fn, arg)

	case *adt.Conditional:
		cond := ev.eval(x.Cond, env)
		if b, ok := cond.(*adt.BooleanLiteral); ok {
			if b.Value {
				return ev.eval(x.Then, env)
			}
			return ev.eval(x.Else, env)
		}
		then := ev.eval(x.Then, env)
		els := ev.eval(x.Else, env)
		if exprEqualModAlpha(norm.Alpha(then), norm.Alpha(els)) {
			return then
		}
		return &adt.Conditional{Cond: cond, Then: then, Else: els}

	case *adt.TypeAnnotation:
		return ev.eval(x.Expr, env)

	case *adt.Op:
		return ev.evalOp(x, env)

	case *adt.Merge:
		return ev.evalMerge(x, env)

	case *adt.Select:
		return ev.evalSelect(x, env)

	case *adt.Project:
		inner := ev.eval(x.Expr, env)
		rec, ok := inner.(*adt.RecordLiteral)
		if !ok {
			return &adt.Project{Expr: inner, Labels: x.Labels}
		}
		fields := make([]adt.Field, 0, len(x.Labels))
		for _, l := range x.Labels {
			for _, f := range rec.Fields {
				if f.Label == l {
					fields = append(fields, adt.Field{Label: l, Value: f.Value})
					break
				}
			}
		}
		return &adt.RecordLiteral{Fields: fields}

	case *adt.RecordLiteral:
		fields := make([]adt.Field, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.Field{Label: f.Label, Value: ev.eval(f.Value, env)}
		}
		return &adt.RecordLiteral{Fields: fields}

	case *adt.RecordType:
		fields := make([]adt.Field, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.Field{Label: f.Label, Value: ev.eval(f.Value, env)}
		}
		return &adt.RecordType{Fields: fields}

	case *adt.Union:
		alts := evalAlternatives(ev, x.Alternatives, env)
		return &adt.Union{Label: x.Label, Value: ev.eval(x.Value, env), Alternatives: alts}

	case *adt.UnionType:
		alts := evalAlternatives(ev, x.Alternatives, env)
		sortAlternatives(alts)
		return &adt.UnionType{Alternatives: alts}

	case *adt.ListLiteral:
		items := make([]adt.Expr, len(x.Items))
		for i, it := range x.Items {
			items[i] = ev.eval(it, env)
		}
		var elemType adt.Expr
		if x.ElementType != nil {
			elemType = ev.eval(x.ElementType, env)
		}
		return &adt.ListLiteral{Items: items, ElementType: elemType}

	case *adt.OptionalLiteral:
		if x.Wrapped == nil {
			var elemType adt.Expr
			if x.ElementType != nil {
				elemType = ev.eval(x.ElementType, env)
			}
			return &adt.OptionalLiteral{ElementType: elemType}
		}
		return &adt.OptionalLiteral{Wrapped: ev.eval(x.Wrapped, env)}

	case *adt.NaturalLiteral, *adt.DoubleLiteral, *adt.BooleanLiteral, *adt.Builtin:
		return e

	case *adt.TextLiteral:
		return ev.evalText(x, env)

	case *adt.Import:
		// Import resolution is external (§1); never reached on a fully
		// resolved AST, left unchanged if it is.
		return x

	default:
		return e
	}
}

func evalAlternatives(ev *Evaluator, alts []adt.Alternative, env Env) []adt.Alternative {
	out := make([]adt.Alternative, len(alts))
	for i, a := range alts {
		out[i] = adt.Alternative{Label: a.Label, Type: ev.eval(a.Type, env)}
	}
	return out
}

func sortAlternatives(alts []adt.Alternative) {
	for i := 1; i < len(alts); i++ {
		for j := i; j > 0 && alts[j-1].Label > alts[j].Label; j-- {
			alts[j-1], alts[j] = alts[j], alts[j-1]
		}
	}
}

// apply implements the Application rule of §4.2: β-reduce a Lambda,
// otherwise try the built-in registry, otherwise rebuild the application.
//
// fn, when a Lambda, was itself produced by eval's *adt.Lambda case, which
// already evaluates Body under the closure's captured environment with
// the parameter bound to "no value" (§4.2.1): every free variable other
// than the parameter itself is already resolved, so firing the redex only
// needs a fresh environment binding the parameter to arg, mirroring
// Lambda.apply's `bind_value(parameter_name, value).evaluated()` in
// original_source/dhall/ast.py.
func (ev *Evaluator) apply(fn, arg adt.Expr) adt.Expr {
	if lam, ok := fn.(*adt.Lambda); ok {
		return ev.eval(lam.Body, EmptyEnv().Shadow(lam.Param, Binding{Expr: arg, Env: EmptyEnv()}))
	}
	if tag, priorArgs, ok := builtin.Spine(fn); ok {
		if reduced, fired := builtin.TryReduce(tag, priorArgs, arg); fired {
			return ev.eval(reduced, EmptyEnv())
		}
	}
	return &adt.App{Fn: fn, Arg: arg}
}

func (ev *Evaluator) evalOp(x *adt.Op, env Env) adt.Expr {
	l := ev.eval(x.L, env)
	r := ev.eval(x.R, env)
	switch x.Kind {
	case adt.OpPlus:
		if ln, ok := l.(*adt.NaturalLiteral); ok {
			if rn, ok := r.(*adt.NaturalLiteral); ok {
				ctx := apd.BaseContext
				var sum apd.Decimal
				_, _ = ctx.Add(&sum, &ln.Value, &rn.Value)
				return &adt.NaturalLiteral{Value: sum}
			}
		}
	case adt.OpTimes:
		if ln, ok := l.(*adt.NaturalLiteral); ok {
			if rn, ok := r.(*adt.NaturalLiteral); ok {
				ctx := apd.BaseContext
				var prod apd.Decimal
				_, _ = ctx.Mul(&prod, &ln.Value, &rn.Value)
				return &adt.NaturalLiteral{Value: prod}
			}
		}
	case adt.OpOr:
		if lb, ok := l.(*adt.BooleanLiteral); ok {
			if lb.Value {
				return l
			}
			return r
		}
		if rb, ok := r.(*adt.BooleanLiteral); ok {
			if rb.Value {
				return r
			}
			return l
		}
		if exprEqualModAlpha(norm.Alpha(l), norm.Alpha(r)) {
			return l
		}
	case adt.OpAnd:
		if lb, ok := l.(*adt.BooleanLiteral); ok {
			if !lb.Value {
				return l
			}
			return r
		}
		if rb, ok := r.(*adt.BooleanLiteral); ok {
			if !rb.Value {
				return r
			}
			return l
		}
		if exprEqualModAlpha(norm.Alpha(l), norm.Alpha(r)) {
			return l
		}
	case adt.OpListAppend:
		if ll, ok := l.(*adt.ListLiteral); ok {
			if rl, ok := r.(*adt.ListLiteral); ok {
				items := make([]adt.Expr, 0, len(ll.Items)+len(rl.Items))
				items = append(items, ll.Items...)
				items = append(items, rl.Items...)
				elemType := ll.ElementType
				if elemType == nil {
					elemType = rl.ElementType
				}
				if len(items) > 0 {
					elemType = nil
				}
				return &adt.ListLiteral{Items: items, ElementType: elemType}
			}
		}
	case adt.OpTextAppend:
		if lt, ok := l.(*adt.TextLiteral); ok {
			if rt, ok := r.(*adt.TextLiteral); ok {
				return mergeTextLiterals(lt, rt)
			}
		}
	case adt.OpEqual:
		if lb, ok := l.(*adt.BooleanLiteral); ok {
			if rb, ok := r.(*adt.BooleanLiteral); ok {
				return &adt.BooleanLiteral{Value: lb.Value == rb.Value}
			}
		}
	case adt.OpNotEqual:
		if lb, ok := l.(*adt.BooleanLiteral); ok {
			if rb, ok := r.(*adt.BooleanLiteral); ok {
				return &adt.BooleanLiteral{Value: lb.Value != rb.Value}
			}
		}
	case adt.OpCombine, adt.OpPrefer, adt.OpCombineTypes:
		if lr, ok := l.(*adt.RecordLiteral); ok {
			if rr, ok := r.(*adt.RecordLiteral); ok {
				return combineRecords(x.Kind, lr, rr)
			}
		}
		// ⩓ operates on record *types*, not record values (DESIGN.md Open
		// Question #7): typecheck.combineRecordTypes already requires this
		// shape to type the operator, so normalize has to reduce it too.
		if lt, ok := l.(*adt.RecordType); ok {
			if rt, ok := r.(*adt.RecordType); ok {
				return combineRecordTypes(x.Kind, lt, rt)
			}
		}
	case adt.OpImportAlt:
		return l
	}
	return &adt.Op{Kind: x.Kind, L: l, R: r}
}

// combineRecords implements ∧ (Combine, recursive deep-merge), ⫽ (Prefer,
// shallow right-biased merge) and ⩓ (CombineTypes, recursive deep-merge
// like ∧) over two already-evaluated record literals. Record-type
// operands are handled by combineRecordTypes instead.
func combineRecords(kind adt.OpKind, l, r *adt.RecordLiteral) *adt.RecordLiteral {
	byLabel := map[string]adt.Expr{}
	order := make([]string, 0, len(l.Fields)+len(r.Fields))
	for _, f := range l.Fields {
		byLabel[f.Label] = f.Value
		order = append(order, f.Label)
	}
	for _, f := range r.Fields {
		if existing, ok := byLabel[f.Label]; ok {
			switch kind {
			case adt.OpPrefer:
				byLabel[f.Label] = f.Value
			default: // Combine / CombineTypes: recurse if both sides are records
				if el, ok := existing.(*adt.RecordLiteral); ok {
					if fr, ok := f.Value.(*adt.RecordLiteral); ok {
						byLabel[f.Label] = combineRecords(kind, el, fr)
						continue
					}
				}
				byLabel[f.Label] = f.Value
			}
			continue
		}
		byLabel[f.Label] = f.Value
		order = append(order, f.Label)
	}
	fields := make([]adt.Field, len(order))
	for i, l := range order {
		fields[i] = adt.Field{Label: l, Value: byLabel[l]}
	}
	return &adt.RecordLiteral{Fields: fields}
}

// combineRecordTypes implements ⩓ (CombineTypes) over two already-evaluated
// record types, mirroring typecheck.combineRecordTypes's recursive-merge
// rule so that both components reduce the operator the same way.
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

func mergeTextLiterals(l, r *adt.TextLiteral) *adt.TextLiteral {
	chunks := make([]adt.TextChunk, 0, len(l.Chunks)+len(r.Chunks))
	chunks = append(chunks, l.Chunks...)
	chunks = append(chunks, r.Chunks...)
	return &adt.TextLiteral{Chunks: mergeAdjacentLiteralChunks(chunks)}
}

func mergeAdjacentLiteralChunks(chunks []adt.TextChunk) []adt.TextChunk {
	out := make([]adt.TextChunk, 0, len(chunks))
	for _, c := range chunks {
		if c.Expr == nil && len(out) > 0 && out[len(out)-1].Expr == nil {
			out[len(out)-1].Text += c.Text
			continue
		}
		out = append(out, c)
	}
	return out
}

func (ev *Evaluator) evalText(x *adt.TextLiteral, env Env) adt.Expr {
	chunks := make([]adt.TextChunk, 0, len(x.Chunks))
	for _, c := range x.Chunks {
		if c.Expr == nil {
			chunks = append(chunks, c)
			continue
		}
		v := ev.eval(c.Expr, env)
		if t, ok := v.(*adt.TextLiteral); ok {
			chunks = append(chunks, t.Chunks...)
			continue
		}
		chunks = append(chunks, adt.TextChunk{Expr: v})
	}
	return &adt.TextLiteral{Chunks: mergeAdjacentLiteralChunks(chunks)}
}

func (ev *Evaluator) evalMerge(x *adt.Merge, env Env) adt.Expr {
	handlers := ev.eval(x.Handlers, env)
	union := ev.eval(x.Union, env)
	if u, ok := union.(*adt.Union); ok {
		if h, ok := handlers.(*adt.RecordLiteral); ok {
			for _, f := range h.Fields {
				if f.Label == u.Label {
					return ev.apply(f.Value, u.Value)
				}
			}
		}
	}
	var typ adt.Expr
	if x.Type != nil {
		typ = ev.eval(x.Type, env)
	}
	return &adt.Merge{Handlers: handlers, Union: union, Type: typ}
}

func (ev *Evaluator) evalSelect(x *adt.Select, env Env) adt.Expr {
	inner := ev.eval(x.Expr, env)
	switch v := inner.(type) {
	case *adt.RecordLiteral:
		for _, f := range v.Fields {
			if f.Label == x.Label {
				return f.Value
			}
		}
	case *adt.UnionType:
		for _, a := range v.Alternatives {
			if a.Label == x.Label {
				return &adt.Lambda{Param: "_", ParamType: a.Type, Body: &adt.Union{
					Label:        x.Label,
					Value:        &adt.Var{Name: "_", Index: 0},
					Alternatives: removeAlternative(v.Alternatives, x.Label),
				}}
			}
		}
	}
	return &adt.Select{Expr: inner, Label: x.Label}
}

func removeAlternative(alts []adt.Alternative, label string) []adt.Alternative {
	out := make([]adt.Alternative, 0, len(alts)-1)
	for _, a := range alts {
		if a.Label != label {
			out = append(out, a)
		}
	}
	return out
}
