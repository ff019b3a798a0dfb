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

package dhall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall/internal/core/adt"
)

func natural() adt.Expr { return &adt.Builtin{Tag: adt.BuiltinNatural} }
func boolean() adt.Expr { return &adt.Builtin{Tag: adt.BuiltinBool} }
func typ() adt.Expr     { return &adt.Builtin{Tag: adt.BuiltinType} }

func mustNatural(t *testing.T, e adt.Expr) int64 {
	t.Helper()
	lit, ok := e.(*adt.NaturalLiteral)
	require.True(t, ok, "expected NaturalLiteral, got %T", e)
	n, err := lit.Value.Int64()
	require.NoError(t, err)
	return n
}

// Scenario 1: typeOf(λ(a : Type) → λ(x : a) → x) = ∀(a : Type) → ∀(x : a) → a.
func TestScenarioIdentityFunctionType(t *testing.T) {
	id := &adt.Lambda{
		Param: "a", ParamType: typ(),
		Body: &adt.Lambda{Param: "x", ParamType: &adt.Var{Name: "a", Index: 0}, Body: &adt.Var{Name: "x", Index: 0}},
	}
	got, err := TypeOf(id)
	require.NoError(t, err)
	want := &adt.ForAll{
		Param: "a", ParamType: typ(),
		Body: &adt.ForAll{Param: "x", ParamType: &adt.Var{Name: "a", Index: 0}, Body: &adt.Var{Name: "a", Index: 0}},
	}
	ok, err := Equivalent(got, want)
	require.NoError(t, err)
	assert.True(t, ok, "got %#v, want equivalent to %#v", got, want)
}

// Scenario 2: normalize((λ(x : Natural) → x + 1) 41) = 42.
func TestScenarioApplication(t *testing.T) {
	e := &adt.App{
		Fn: &adt.Lambda{
			Param: "x", ParamType: natural(),
			Body: &adt.Op{Kind: adt.OpPlus, L: &adt.Var{Name: "x", Index: 0}, R: adt.NewNatural(1)},
		},
		Arg: adt.NewNatural(41),
	}
	got, err := Normalize(e)
	require.NoError(t, err)
	assert.EqualValues(t, 42, mustNatural(t, got))
}

// Scenario 3: normalize(if True then "y" else "n") = TextLiteral(["y"]).
func TestScenarioIf(t *testing.T) {
	e := &adt.Conditional{
		Cond: &adt.BooleanLiteral{Value: true},
		Then: adt.NewText("y"),
		Else: adt.NewText("n"),
	}
	got, err := Normalize(e)
	require.NoError(t, err)
	text, ok := got.(*adt.TextLiteral)
	require.True(t, ok)
	require.Len(t, text.Chunks, 1)
	assert.Equal(t, "y", text.Chunks[0].Text)
}

// Scenario 4: merge dispatching to a payload alternative.
func TestScenarioMergeValue(t *testing.T) {
	handlers := &adt.RecordLiteral{Fields: []adt.Field{
		{Label: "Left", Value: &adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Var{Name: "x", Index: 0}}},
		{Label: "Right", Value: &adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Op{Kind: adt.OpTimes, L: &adt.Var{Name: "x", Index: 0}, R: adt.NewNatural(2)}}},
	}}
	ut := &adt.UnionType{Alternatives: []adt.Alternative{
		{Label: "Left", Type: natural()},
		{Label: "Right", Type: natural()},
	}}
	union := &adt.App{Fn: &adt.Select{Expr: ut, Label: "Right"}, Arg: adt.NewNatural(3)}
	e := &adt.Merge{Handlers: handlers, Union: union}
	got, err := Normalize(e)
	require.NoError(t, err)
	assert.EqualValues(t, 6, mustNatural(t, got))
}

// Scenario 5: universe typing for ∀-quantified kinds/types.
func TestScenarioUniverses(t *testing.T) {
	overKind := &adt.ForAll{Param: "a", ParamType: &adt.Builtin{Tag: adt.BuiltinKind}, Body: &adt.Var{Name: "a", Index: 0}}
	got, err := TypeOf(overKind)
	require.NoError(t, err)
	assert.Equal(t, &adt.Builtin{Tag: adt.BuiltinSort}, got)

	overType := &adt.ForAll{Param: "a", ParamType: typ(), Body: &adt.Var{Name: "a", Index: 0}}
	got, err = TypeOf(overType)
	require.NoError(t, err)
	assert.Equal(t, &adt.Builtin{Tag: adt.BuiltinType}, got)
}

// Scenario 6: typeOf of a merge expression over a union-typed parameter.
func TestScenarioMergeType(t *testing.T) {
	ut := &adt.UnionType{Alternatives: []adt.Alternative{
		{Label: "L", Type: natural()},
		{Label: "R", Type: boolean()},
	}}
	handlers := &adt.RecordLiteral{Fields: []adt.Field{
		{Label: "L", Value: &adt.Lambda{Param: "n", ParamType: natural(), Body: &adt.BooleanLiteral{Value: true}}},
		{Label: "R", Value: &adt.Lambda{Param: "b", ParamType: boolean(), Body: &adt.Var{Name: "b", Index: 0}}},
	}}
	fn := &adt.Lambda{
		Param: "u", ParamType: ut,
		Body: &adt.Merge{Handlers: handlers, Union: &adt.Var{Name: "u", Index: 0}},
	}
	got, err := TypeOf(fn)
	require.NoError(t, err)
	want := &adt.ForAll{Param: "u", ParamType: ut, Body: boolean()}
	ok, err := Equivalent(got, want)
	require.NoError(t, err)
	assert.True(t, ok, "got %#v", got)
}

// P1: α-idempotence, α(α(e)) = α(e).
func TestPropertyAlphaIdempotent(t *testing.T) {
	e := &adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Lambda{Param: "y", ParamType: natural(), Body: &adt.Var{Name: "x", Index: 1}}}
	once, err := Normalize(e)
	require.NoError(t, err)
	twice, err := Normalize(once)
	require.NoError(t, err)
	ok, err := Equivalent(once, twice)
	require.NoError(t, err)
	assert.True(t, ok)
}

// P3/P4: β-idempotence and type preservation across normalization.
func TestPropertyNormalizeIdempotentAndTypePreserving(t *testing.T) {
	e := &adt.App{
		Fn:  &adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Op{Kind: adt.OpPlus, L: &adt.Var{Name: "x", Index: 0}, R: adt.NewNatural(1)}},
		Arg: adt.NewNatural(1),
	}
	t1, err := TypeOf(e)
	require.NoError(t, err)

	n1, err := Normalize(e)
	require.NoError(t, err)
	n2, err := Normalize(n1)
	require.NoError(t, err)
	ok, err := Equivalent(n1, n2)
	require.NoError(t, err)
	assert.True(t, ok, "normalize is not idempotent")

	t2, err := TypeOf(n1)
	require.NoError(t, err)
	ok, err = Equivalent(t1, t2)
	require.NoError(t, err)
	assert.True(t, ok, "type not preserved across normalization")
}

// P5: equivalence is reflexive, symmetric, and transitive.
func TestPropertyEquivalenceIsAnEquivalenceRelation(t *testing.T) {
	a := &adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Var{Name: "x", Index: 0}}
	b := &adt.Lambda{Param: "y", ParamType: natural(), Body: &adt.Var{Name: "y", Index: 0}}
	c := &adt.Lambda{Param: "z", ParamType: natural(), Body: &adt.Var{Name: "z", Index: 0}}

	refl, err := Equivalent(a, a)
	require.NoError(t, err)
	assert.True(t, refl)

	ab, err := Equivalent(a, b)
	require.NoError(t, err)
	ba, err := Equivalent(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)

	bc, err := Equivalent(b, c)
	require.NoError(t, err)
	ac, err := Equivalent(a, c)
	require.NoError(t, err)
	assert.True(t, ab && bc && ac, "equivalence is not transitive for this chain")
}

// P6: annotation round-trip, typeOf(e : T) = T when typeOf(e) = T.
func TestPropertyAnnotationRoundTrip(t *testing.T) {
	e := adt.NewNatural(1)
	tpe, err := TypeOf(e)
	require.NoError(t, err)
	annotated := &adt.TypeAnnotation{Expr: e, Type: tpe}
	got, err := TypeOf(annotated)
	require.NoError(t, err)
	ok, err := Equivalent(got, tpe)
	require.NoError(t, err)
	assert.True(t, ok)
}

// P7: record field order does not affect normalized form.
func TestPropertyRecordCanonicalOrder(t *testing.T) {
	e1 := &adt.RecordLiteral{Fields: []adt.Field{{Label: "a", Value: adt.NewNatural(1)}, {Label: "b", Value: adt.NewNatural(2)}}}
	e2 := &adt.RecordLiteral{Fields: []adt.Field{{Label: "b", Value: adt.NewNatural(2)}, {Label: "a", Value: adt.NewNatural(1)}}}
	n1, err := Normalize(e1)
	require.NoError(t, err)
	n2, err := Normalize(e2)
	require.NoError(t, err)
	ok, err := Equivalent(n1, n2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNoneTypePreservedThroughNormalize(t *testing.T) {
	// None Natural must still typecheck after normalization (P4): the
	// reduced OptionalLiteral keeps its element type instead of needing
	// an enclosing annotation the reduction rule would otherwise lose.
	e := &adt.App{Fn: &adt.Builtin{Tag: adt.BuiltinNone}, Arg: natural()}
	before, err := TypeOf(e)
	require.NoError(t, err)

	reduced, err := Normalize(e)
	require.NoError(t, err)

	after, err := TypeOf(reduced)
	require.NoError(t, err)

	ok, err := Equivalent(before, after)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWithFuelStopsRunawayEvaluation(t *testing.T) {
	var e adt.Expr = adt.NewNatural(1)
	for i := 0; i < 50; i++ {
		e = &adt.Op{Kind: adt.OpPlus, L: adt.NewNatural(1), R: e}
	}
	_, err := Normalize(e, WithFuel(5))
	assert.Error(t, err)
}

func TestSubstituteResolvesFreeVariable(t *testing.T) {
	// x + 1  with x := 41  normalizes to 42.
	e := &adt.Op{Kind: adt.OpPlus, L: &adt.Var{Name: "x", Index: 0}, R: adt.NewNatural(1)}
	got, err := Substitute("x", adt.NewNatural(41), e)
	require.NoError(t, err)
	assert.EqualValues(t, 42, mustNatural(t, got))
}

func TestSubstituteLeavesOtherNamesAlone(t *testing.T) {
	e := &adt.Op{Kind: adt.OpPlus, L: &adt.Var{Name: "y", Index: 0}, R: adt.NewNatural(1)}
	got, err := Substitute("x", adt.NewNatural(41), e)
	require.NoError(t, err)
	op := got.(*adt.Op)
	v, ok := op.L.(*adt.Var)
	require.True(t, ok)
	assert.Equal(t, "y", v.Name)
}
