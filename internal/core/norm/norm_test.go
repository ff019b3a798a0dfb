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

package norm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/dhall-go/dhall/internal/core/adt"
)

func natural() adt.Expr { return &adt.Builtin{Tag: adt.BuiltinNatural} }

func TestAlphaRenamesBoundVariables(t *testing.T) {
	// λ(x : Natural) → x  =α=  λ(y : Natural) → y
	lhs := Alpha(&adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Var{Name: "x", Index: 0}})
	rhs := Alpha(&adt.Lambda{Param: "y", ParamType: natural(), Body: &adt.Var{Name: "y", Index: 0}})
	if diff := cmp.Diff(lhs, rhs); diff != "" {
		t.Errorf("α-normal forms differ (-lhs +rhs):\n%s", diff)
	}
}

func TestAlphaLeavesFreeVariablesAlone(t *testing.T) {
	free := &adt.Var{Name: "x", Index: 0}
	assert.Equal(t, free, Alpha(free))
}

func TestAlphaDistinguishesDifferentShapes(t *testing.T) {
	// λ(x : Natural) → x  is not α-equivalent to  λ(x : Natural) → λ(y : Natural) → x
	a := Alpha(&adt.Lambda{Param: "x", ParamType: natural(), Body: &adt.Var{Name: "x", Index: 0}})
	b := Alpha(&adt.Lambda{
		Param:     "x",
		ParamType: natural(),
		Body: &adt.Lambda{
			Param:     "y",
			ParamType: natural(),
			Body:      &adt.Var{Name: "x", Index: 0},
		},
	})
	assert.NotEqual(t, a, b)
}

func TestAlphaNestedSameNameShadowing(t *testing.T) {
	// λ(x : Natural) → λ(x : Bool) → x   references the inner x.
	inner := &adt.Lambda{
		Param:     "x",
		ParamType: natural(),
		Body: &adt.Lambda{
			Param:     "x",
			ParamType: &adt.Builtin{Tag: adt.BuiltinBool},
			Body:      &adt.Var{Name: "x", Index: 0},
		},
	}
	got := Alpha(inner).(*adt.Lambda)
	innerLambda := got.Body.(*adt.Lambda)
	v := innerLambda.Body.(*adt.Var)
	assert.Equal(t, Placeholder, v.Name)
	assert.Equal(t, 0, v.Index)
}

func TestAlphaRecordFieldsPreserveLabels(t *testing.T) {
	rec := &adt.RecordLiteral{Fields: []adt.Field{
		{Label: "a", Value: adt.NewNatural(1)},
		{Label: "b", Value: adt.NewNatural(2)},
	}}
	got := Alpha(rec).(*adt.RecordLiteral)
	assert.Equal(t, "a", got.Fields[0].Label)
	assert.Equal(t, "b", got.Fields[1].Label)
}
