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

// Package norm implements α-normalization (C3, §4.1): canonical renaming
// of every binder's parameter name to a placeholder, so that two
// α-equivalent terms compare structurally equal.
package norm

import "github.com/dhall-go/dhall/internal/core/adt"

// Placeholder is the canonical name every binder is rewritten to,
// mirroring original_source/dhall/ast.py's DEFAULT_VARIABLE_NAME.
const Placeholder = "_"

// Renaming is the renaming context R of §4.1: a per-name stack recording
// what each in-scope binder's original name has been rewritten to.
type Renaming = adt.ShadowContext[string]

// Alpha returns the α-normal form of e: every binder's parameter name
// becomes Placeholder, every bound occurrence is rewritten to reference
// Placeholder at the correct (stack) index, and free variables are left
// exactly as given.
func Alpha(e adt.Expr) adt.Expr {
	return alpha(e, adt.NewShadowContext[string]())
}

func alpha(e adt.Expr, r Renaming) adt.Expr {
	switch x := e.(type) {
	case *adt.Var:
		if r.Has(x.Name, x.Index) {
			name, _ := r.Get(x.Name, x.Index)
			return &adt.Var{Name: name, Index: r.Age(x.Name, x.Index)}
		}
		return x

	case *adt.Lambda:
		paramType := alpha(x.ParamType, r)
		body := alpha(x.Body, r.Shadow(x.Param, Placeholder))
		return &adt.Lambda{Param: Placeholder, ParamType: paramType, Body: body}

	case *adt.ForAll:
		paramType := alpha(x.ParamType, r)
		body := alpha(x.Body, r.Shadow(x.Param, Placeholder))
		return &adt.ForAll{Param: Placeholder, ParamType: paramType, Body: body}

	case *adt.LetIn:
		bindings := make([]adt.LetBinding, len(x.Bindings))
		cur := r
		for i, b := range x.Bindings {
			var typ adt.Expr
			if b.Type != nil {
				typ = alpha(b.Type, cur)
			}
			val := alpha(b.Value, cur)
			bindings[i] = adt.LetBinding{Name: Placeholder, Type: typ, Value: val}
			cur = cur.Shadow(b.Name, Placeholder)
		}
		return &adt.LetIn{Bindings: bindings, Body: alpha(x.Body, cur)}

	case *adt.App:
		return &adt.App{Fn: alpha(x.Fn, r), Arg: alpha(x.Arg, r)}

	case *adt.Conditional:
		return &adt.Conditional{Cond: alpha(x.Cond, r), Then: alpha(x.Then, r), Else: alpha(x.Else, r)}

	case *adt.TypeAnnotation:
		return &adt.TypeAnnotation{Expr: alpha(x.Expr, r), Type: alpha(x.Type, r)}

	case *adt.Op:
		return &adt.Op{Kind: x.Kind, L: alpha(x.L, r), R: alpha(x.R, r)}

	case *adt.Merge:
		var typ adt.Expr
		if x.Type != nil {
			typ = alpha(x.Type, r)
		}
		return &adt.Merge{Handlers: alpha(x.Handlers, r), Union: alpha(x.Union, r), Type: typ}

	case *adt.Select:
		return &adt.Select{Expr: alpha(x.Expr, r), Label: x.Label}

	case *adt.Project:
		return &adt.Project{Expr: alpha(x.Expr, r), Labels: x.Labels}

	case *adt.RecordLiteral:
		return &adt.RecordLiteral{Fields: alphaFields(x.Fields, r)}

	case *adt.RecordType:
		return &adt.RecordType{Fields: alphaFields(x.Fields, r)}

	case *adt.Union:
		return &adt.Union{Label: x.Label, Value: alpha(x.Value, r), Alternatives: alphaAlternatives(x.Alternatives, r)}

	case *adt.UnionType:
		return &adt.UnionType{Alternatives: alphaAlternatives(x.Alternatives, r)}

	case *adt.ListLiteral:
		items := make([]adt.Expr, len(x.Items))
		for i, it := range x.Items {
			items[i] = alpha(it, r)
		}
		var elemType adt.Expr
		if x.ElementType != nil {
			elemType = alpha(x.ElementType, r)
		}
		return &adt.ListLiteral{Items: items, ElementType: elemType}

	case *adt.OptionalLiteral:
		if x.Wrapped == nil {
			var elemType adt.Expr
			if x.ElementType != nil {
				elemType = alpha(x.ElementType, r)
			}
			return &adt.OptionalLiteral{ElementType: elemType}
		}
		return &adt.OptionalLiteral{Wrapped: alpha(x.Wrapped, r)}

	case *adt.TextLiteral:
		chunks := make([]adt.TextChunk, len(x.Chunks))
		for i, c := range x.Chunks {
			if c.Expr == nil {
				chunks[i] = c
				continue
			}
			chunks[i] = adt.TextChunk{Expr: alpha(c.Expr, r)}
		}
		return &adt.TextLiteral{Chunks: chunks}

	default:
		// NaturalLiteral, DoubleLiteral, BooleanLiteral, Builtin, Import:
		// no binders, no variables.
		return e
	}
}

func alphaFields(fields []adt.Field, r Renaming) []adt.Field {
	out := make([]adt.Field, len(fields))
	for i, f := range fields {
		out[i] = adt.Field{Label: f.Label, Value: alpha(f.Value, r)}
	}
	return out
}

func alphaAlternatives(alts []adt.Alternative, r Renaming) []adt.Alternative {
	out := make([]adt.Alternative, len(alts))
	for i, a := range alts {
		var typ adt.Expr
		if a.Type != nil {
			typ = alpha(a.Type, r)
		}
		out[i] = adt.Alternative{Label: a.Label, Type: typ}
	}
	return out
}
