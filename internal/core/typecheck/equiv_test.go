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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall/internal/core/adt"
)

func TestEquivalentBetaThenAlpha(t *testing.T) {
	// (λ(x : Natural) → x + 1) 41  ≡  42
	e1 := &adt.App{
		Fn: &adt.Lambda{Param: "x", ParamType: naturalType(), Body: &adt.Op{Kind: adt.OpPlus, L: &adt.Var{Name: "x", Index: 0}, R: adt.NewNatural(1)}},
		Arg: adt.NewNatural(41),
	}
	e2 := adt.NewNatural(42)
	ok, err := Equivalent(e1, e2, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEquivalentAlphaEquivalentLambdas(t *testing.T) {
	e1 := &adt.Lambda{Param: "x", ParamType: naturalType(), Body: &adt.Var{Name: "x", Index: 0}}
	e2 := &adt.Lambda{Param: "y", ParamType: naturalType(), Body: &adt.Var{Name: "y", Index: 0}}
	ok, err := Equivalent(e1, e2, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEquivalentRecordFieldOrderIgnored(t *testing.T) {
	e1 := &adt.RecordLiteral{Fields: []adt.Field{
		{Label: "a", Value: adt.NewNatural(1)},
		{Label: "b", Value: adt.NewNatural(2)},
	}}
	e2 := &adt.RecordLiteral{Fields: []adt.Field{
		{Label: "b", Value: adt.NewNatural(2)},
		{Label: "a", Value: adt.NewNatural(1)},
	}}
	ok, err := Equivalent(e1, e2, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEquivalentUnionAlternativeOrderIgnored(t *testing.T) {
	e1 := &adt.UnionType{Alternatives: []adt.Alternative{{Label: "Foo", Type: naturalType()}, {Label: "Bar"}}}
	e2 := &adt.UnionType{Alternatives: []adt.Alternative{{Label: "Bar"}, {Label: "Foo", Type: naturalType()}}}
	ok, err := Equivalent(e1, e2, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEquivalentRejectsDifferentValues(t *testing.T) {
	ok, err := Equivalent(adt.NewNatural(1), adt.NewNatural(2), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEquivalentProjectLabelOrderIgnored(t *testing.T) {
	rec := &adt.RecordLiteral{Fields: []adt.Field{
		{Label: "a", Value: adt.NewNatural(1)},
		{Label: "b", Value: adt.NewNatural(2)},
	}}
	e1 := &adt.Project{Expr: rec, Labels: []string{"a", "b"}}
	e2 := &adt.Project{Expr: rec, Labels: []string{"b", "a"}}
	ok, err := Equivalent(e1, e2, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
