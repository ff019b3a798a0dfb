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

func TestShadowContextEmpty(t *testing.T) {
	c := NewShadowContext[int]()
	assert.False(t, c.Has("x", 0))
	_, ok := c.Get("x", 0)
	assert.False(t, ok)
}

func TestShadowContextShadowAndGet(t *testing.T) {
	c := NewShadowContext[string]()
	c1 := c.Shadow("x", "outer")
	c2 := c1.Shadow("x", "inner")

	v, ok := c2.Get("x", 0)
	assert.True(t, ok)
	assert.Equal(t, "inner", v)

	v, ok = c2.Get("x", 1)
	assert.True(t, ok)
	assert.Equal(t, "outer", v)

	_, ok = c2.Get("x", 2)
	assert.False(t, ok)
}

func TestShadowContextImmutable(t *testing.T) {
	c := NewShadowContext[int]()
	c1 := c.Shadow("x", 1)
	_ = c1.Shadow("x", 2)

	v, ok := c1.Get("x", 0)
	assert.True(t, ok)
	assert.Equal(t, 1, v, "Shadow must not mutate the receiver")
}

func TestShadowContextDistinctNamesDontInterfere(t *testing.T) {
	c := NewShadowContext[int]().Shadow("x", 1).Shadow("y", 2)
	vx, _ := c.Get("x", 0)
	vy, _ := c.Get("y", 0)
	assert.Equal(t, 1, vx)
	assert.Equal(t, 2, vy)
}

func TestShadowContextJoin(t *testing.T) {
	a := NewShadowContext[int]().Shadow("x", 1)
	b := NewShadowContext[int]().Shadow("x", 2)
	joined := a.Join(b)

	v, ok := joined.Get("x", 0)
	assert.True(t, ok)
	assert.Equal(t, 2, v, "Join layers other's entries on top")

	v, ok = joined.Get("x", 1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestShadowContextJoinEmptyOtherIsNoop(t *testing.T) {
	a := NewShadowContext[int]().Shadow("x", 1)
	joined := a.Join(NewShadowContext[int]())
	v, ok := joined.Get("x", 0)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}
