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

// Universe identifies one of the three universe constants of the strict
// tower Type : Kind : Sort.
type Universe int

const (
	UniverseType Universe = iota
	UniverseKind
	UniverseSort
)

func (u Universe) String() string {
	switch u {
	case UniverseType:
		return "Type"
	case UniverseKind:
		return "Kind"
	case UniverseSort:
		return "Sort"
	}
	return "?universe"
}

// Expr returns the Builtin expression denoting this universe.
func (u Universe) Expr() Expr {
	switch u {
	case UniverseType:
		return &Builtin{Tag: BuiltinType}
	case UniverseKind:
		return &Builtin{Tag: BuiltinKind}
	case UniverseSort:
		return &Builtin{Tag: BuiltinSort}
	}
	panic("unreachable")
}

// FunctionCheck implements the ↝ relation from §3.4: given the universe of
// a ∀'s parameter type and the universe of its body, returns the universe
// the ∀ itself lives in, or ok=false if the combination is ill-kinded.
func FunctionCheck(arg, body Universe) (result Universe, ok bool) {
	switch {
	case body == UniverseType:
		return UniverseType, true
	case arg == UniverseKind && body == UniverseKind:
		return UniverseKind, true
	case arg == UniverseSort && (body == UniverseKind || body == UniverseSort):
		return UniverseSort, true
	default:
		return 0, false
	}
}
