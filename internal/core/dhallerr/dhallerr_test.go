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

package dhallerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhall-go/dhall/internal/core/adt"
)

func TestKindOfRoundTripsEveryConstructor(t *testing.T) {
	v := &adt.Var{Name: "x", Index: 0}
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"UnboundVariable", UnboundVariable("x", 0), KindUnboundVariable},
		{"AnnotationMismatch", AnnotationMismatch(v, adt.NewNatural(1), adt.NewNatural(2)), KindAnnotationMismatch},
		{"NotAFunction", NotAFunction(v, adt.NewNatural(1)), KindNotAFunction},
		{"ArgumentTypeMismatch", ArgumentTypeMismatch(v, adt.NewNatural(1), adt.NewNatural(2)), KindArgumentTypeMismatch},
		{"FieldMissing", FieldMissing(v, "foo"), KindFieldMissing},
		{"DuplicateLabels", DuplicateLabels(v, []string{"a", "a"}), KindDuplicateLabels},
		{"UnionHandlersMismatch", UnionHandlersMismatch(v, []string{"a"}, []string{"b"}), KindUnionHandlersMismatch},
		{"UniverseMismatch", UniverseMismatch(v, "bad kind"), KindUniverseMismatch},
		{"EmptyMergeWithoutAnnotation", EmptyMergeWithoutAnnotation(v), KindEmptyMergeWithoutAnnot},
		{"IllKindedSort", IllKindedSort(), KindIllKindedSort},
		{"StepBudgetExceeded", StepBudgetExceeded(v, 100), KindStepBudgetExceeded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.err)
			kind, ok := KindOf(tc.err)
			require.True(t, ok)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestKindOfRejectsForeignErrors(t *testing.T) {
	_, ok := KindOf(assertAnError{})
	assert.False(t, ok)
}

type assertAnError struct{}

func (assertAnError) Error() string { return "not a dhallerr error" }

func TestUnboundVariableMessageNamesTheVariable(t *testing.T) {
	err := UnboundVariable("foo", 2)
	assert.Contains(t, err.Error(), "foo@2")
}

func TestFieldMissingMessageNamesTheLabel(t *testing.T) {
	err := FieldMissing(&adt.RecordLiteral{}, "bar")
	assert.Contains(t, err.Error(), "bar")
}
