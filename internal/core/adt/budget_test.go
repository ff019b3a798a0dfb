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

package adt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuelNilIsNoop(t *testing.T) {
	var f *Fuel
	assert.NotPanics(t, func() {
		for i := 0; i < 1000; i++ {
			f.Consume(NewNatural(1))
		}
	})
}

func TestFuelExhausts(t *testing.T) {
	f := NewFuel(3)
	assert.NotPanics(t, func() {
		f.Consume(NewNatural(1))
		f.Consume(NewNatural(1))
		f.Consume(NewNatural(1))
	})
	assert.PanicsWithValue(t, FuelExceeded{Expr: NewNatural(2), Budget: 3}, func() {
		f.Consume(NewNatural(2))
	})
}
