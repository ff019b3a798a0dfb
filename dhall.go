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

// Package dhall is the public façade over the semantic core
// (internal/core/{adt,eval,norm,typecheck,builtin,dhallerr}): the four
// operations a parser-produced AST can be handed to once parsing and
// import resolution (both external, §1/§6.1) have already run.
package dhall

import (
	"github.com/dhall-go/dhall/internal/core/adt"
	"github.com/dhall-go/dhall/internal/core/eval"
	"github.com/dhall-go/dhall/internal/core/norm"
	"github.com/dhall-go/dhall/internal/core/typecheck"
)

// Normalize returns e' = α(β(e)) (§6.2): e fully β-reduced to normal form,
// then α-normalized so that expressions differing only by bound-variable
// names compare equal byte-for-byte.
func Normalize(e adt.Expr, opts ...Option) (adt.Expr, error) {
	cfg := newConfig(opts)
	ev := eval.New(cfg.newFuel())
	reduced, err := ev.Evaluate(e, eval.EmptyEnv())
	if err != nil {
		return nil, err
	}
	return norm.Alpha(reduced), nil
}

// TypeOf infers e's type under the empty context (§6.2), returning one of
// the closed error kinds of §7 on failure.
func TypeOf(e adt.Expr, opts ...Option) (adt.Expr, error) {
	cfg := newConfig(opts)
	inf := typecheck.New(cfg.newFuel())
	return inf.TypeOf(e)
}

// Equivalent decides e1 ≡ e2 (§6.2, C6, §4.3): β-evaluate both sides, then
// α-normalize, then compare structurally with record fields and union
// alternatives treated as label-keyed sets.
func Equivalent(e1, e2 adt.Expr, opts ...Option) (bool, error) {
	cfg := newConfig(opts)
	return typecheck.Equivalent(e1, e2, cfg.newFuel())
}

// Substitute computes e[name := value] (§6.2), exposed for tooling that
// needs capture-avoiding substitution without a full normalize/typeOf
// round-trip. Substitution and β-reduction are the same operation in this
// core's environment-based evaluation model (§4.2.1): binding name to
// value in a fresh environment and evaluating e under it resolves every
// free occurrence of name while the per-name stack in eval.Env keeps any
// of e's own binders that reuse the name from ever seeing value — the
// same mechanism Application uses to β-reduce a Lambda redex.
func Substitute(name string, value, e adt.Expr, opts ...Option) (adt.Expr, error) {
	cfg := newConfig(opts)
	ev := eval.New(cfg.newFuel())
	env := eval.EmptyEnv().Shadow(name, eval.Binding{Expr: value, Env: eval.EmptyEnv()})
	return ev.Evaluate(e, env)
}
