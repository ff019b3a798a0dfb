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

// Package typecheck implements bidirectional type inference (C5, §4.4) and
// expression equivalence (C6, §4.3).
package typecheck

import (
	"github.com/dhall-go/dhall/internal/core/adt"
	"github.com/dhall-go/dhall/internal/core/eval"
)

// Context bundles the type context Γ_T and the value context Γ_V in
// lockstep: every binder pushes onto both at once, so a dependent result
// type (e.g. an Application's return type mentioning the parameter) can be
// evaluated against the same indices typeOf used to look the variable up.
type Context struct {
	Types  adt.ShadowContext[adt.Expr]
	Values eval.Env
}

// Empty is the context typeOf starts from at the top level (§6.2).
func Empty() Context {
	return Context{Types: adt.NewShadowContext[adt.Expr](), Values: eval.EmptyEnv()}
}

// shadow extends both contexts with a new binding of name: typ in Γ_T, val
// in Γ_V (val nil means "bound, no value", the Lambda/ForAll case).
func (c Context) shadow(name string, typ, val adt.Expr) Context {
	return Context{
		Types:  c.Types.Shadow(name, typ),
		Values: c.Values.Shadow(name, eval.Binding{Expr: val, Env: c.Values}),
	}
}
