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

// Package adt defines the closed algebraic representation of Dhall
// expressions (§3.3) and the persistent ShadowContext (§3.2) used to track
// scope while working with them. Every Expr variant here corresponds
// one-to-one with a constructor the external parser (§6.1) is required to
// produce; no variant is added or removed beyond what §3.3 lists.
package adt

import (
	"fmt"

	"github.com/cockroachdb/apd/v2"
)

// Expr is the closed sum of Dhall expression variants. It has no methods of
// its own: α-normalization, β-evaluation and type inference are each a
// single function in their own package that pattern-matches over the
// concrete types below, rather than per-node virtual methods.
type Expr interface {
	exprNode()
}

// Var is a variable occurrence: a (name, index) pair per §3.1, where index
// counts enclosing binders of that name starting from 0 (innermost).
type Var struct {
	Name  string
	Index int
}

// Lambda is a term-level function: λ(Param : ParamType) → Body.
type Lambda struct {
	Param     string
	ParamType Expr
	Body      Expr
}

// ForAll is a dependent function type: ∀(Param : ParamType) → Body.
type ForAll struct {
	Param     string
	ParamType Expr
	Body      Expr
}

// LetBinding is a single binding of a LetIn: `let Name [: Type] = Value`.
// Type is nil when the binding carries no annotation (V3).
type LetBinding struct {
	Name  string
	Type  Expr
	Value Expr
}

// LetIn is a sequence of bindings, each seeing all earlier ones, followed
// by a body that sees them all.
type LetIn struct {
	Bindings []LetBinding
	Body     Expr
}

// App is function application: Fn Arg.
type App struct {
	Fn  Expr
	Arg Expr
}

// Conditional is `if Cond then Then else Else`.
type Conditional struct {
	Cond Expr
	Then Expr
	Else Expr
}

// TypeAnnotation is `Expr : Type`.
type TypeAnnotation struct {
	Expr Expr
	Type Expr
}

// OpKind enumerates the built-in binary operators of §3.3.
type OpKind int

const (
	OpPlus OpKind = iota
	OpTimes
	OpAnd
	OpOr
	OpListAppend
	OpTextAppend
	OpEqual
	OpNotEqual
	OpCombine
	OpPrefer
	OpCombineTypes
	OpImportAlt
)

func (k OpKind) String() string {
	switch k {
	case OpPlus:
		return "+"
	case OpTimes:
		return "*"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpListAppend:
		return "#"
	case OpTextAppend:
		return "++"
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpCombine:
		return "∧"
	case OpPrefer:
		return "⫽"
	case OpCombineTypes:
		return "⩓"
	case OpImportAlt:
		return "?"
	}
	return "?op"
}

// Op is a binary operator application.
type Op struct {
	Kind OpKind
	L, R Expr
}

// Merge eliminates a union value using a record of per-label handlers.
// Type is the optional result-type annotation, nil if absent.
type Merge struct {
	Handlers Expr
	Union    Expr
	Type     Expr
}

// Select projects a single field out of a record, or builds a union
// constructor out of a union type: `Expr.Label`.
type Select struct {
	Expr  Expr
	Label string
}

// Project keeps an ordered subset of a record's fields: `Expr.{Labels...}`.
type Project struct {
	Expr   Expr
	Labels []string
}

// Field is one label/value pair of a RecordLiteral or RecordType.
type Field struct {
	Label string
	Value Expr
}

// RecordLiteral is `{ Fields... }`.
type RecordLiteral struct {
	Fields []Field
}

// RecordType is `{ Fields : Types... }`.
type RecordType struct {
	Fields []Field
}

// Alternative is one label/type pair of a Union value or UnionType.
type Alternative struct {
	Label string
	Type  Expr
}

// Union is an inhabited value of a discriminated union: the active Label
// carries Value, and Alternatives lists every other constructor's type.
type Union struct {
	Label        string
	Value        Expr
	Alternatives []Alternative
}

// UnionType is `< Alternatives... >`.
type UnionType struct {
	Alternatives []Alternative
}

// ListLiteral is `[ Items... ]`. ElementType is required (non-nil) iff
// Items is empty (V4).
type ListLiteral struct {
	Items       []Expr
	ElementType Expr
}

// OptionalLiteral is either `Some Wrapped` (Wrapped non-nil) or an empty
// optional (Wrapped nil). ElementType mirrors ListLiteral.ElementType: it
// is required (non-nil) when Wrapped is nil, carrying the type that would
// otherwise have to come from an enclosing TypeAnnotation (V4) — this is
// how `None T` keeps its element type across normalization.
type OptionalLiteral struct {
	Wrapped     Expr
	ElementType Expr
}

// NaturalLiteral is a non-negative arbitrary-precision integer literal.
type NaturalLiteral struct {
	Value apd.Decimal
}

// DoubleLiteral is an arbitrary-precision decimal literal standing in for
// a Dhall Double.
type DoubleLiteral struct {
	Value apd.Decimal
}

// TextChunk is one piece of a TextLiteral: either a literal run of
// characters (Expr nil) or an interpolated expression (Expr non-nil, Text
// ignored).
type TextChunk struct {
	Text string
	Expr Expr
}

// TextLiteral is a double-quoted or multi-line Dhall text literal, broken
// into literal and interpolated chunks.
type TextLiteral struct {
	Chunks []TextChunk
}

// BooleanLiteral is `True` or `False`.
type BooleanLiteral struct {
	Value bool
}

// Import is an opaque, unresolved import. Import resolution is an external
// pass (§1); Import never appears in the result of normalize (§3.3).
type Import struct {
	Source string
}

// BuiltinTag enumerates the built-ins in the minimal required set of §4.5.
// The registry (internal/core/builtin) is open: adding a built-in means
// adding a tag here and an entry to that registry's table.
type BuiltinTag int

const (
	BuiltinSort BuiltinTag = iota
	BuiltinKind
	BuiltinType
	BuiltinBool
	BuiltinNatural
	BuiltinDouble
	BuiltinText
	BuiltinList
	BuiltinOptional
	BuiltinNone
	BuiltinListBuild
	BuiltinListFold
	BuiltinDoubleShow
)

func (t BuiltinTag) String() string {
	switch t {
	case BuiltinSort:
		return "Sort"
	case BuiltinKind:
		return "Kind"
	case BuiltinType:
		return "Type"
	case BuiltinBool:
		return "Bool"
	case BuiltinNatural:
		return "Natural"
	case BuiltinDouble:
		return "Double"
	case BuiltinText:
		return "Text"
	case BuiltinList:
		return "List"
	case BuiltinOptional:
		return "Optional"
	case BuiltinNone:
		return "None"
	case BuiltinListBuild:
		return "List/build"
	case BuiltinListFold:
		return "List/fold"
	case BuiltinDoubleShow:
		return "Double/show"
	}
	return "?builtin"
}

// Builtin is a reference to a registered built-in (§4.5).
type Builtin struct {
	Tag BuiltinTag
}

func (*Var) exprNode()             {}
func (*Lambda) exprNode()          {}
func (*ForAll) exprNode()          {}
func (*LetIn) exprNode()           {}
func (*App) exprNode()             {}
func (*Conditional) exprNode()     {}
func (*TypeAnnotation) exprNode()  {}
func (*Op) exprNode()              {}
func (*Merge) exprNode()           {}
func (*Select) exprNode()          {}
func (*Project) exprNode()         {}
func (*RecordLiteral) exprNode()   {}
func (*RecordType) exprNode()      {}
func (*Union) exprNode()           {}
func (*UnionType) exprNode()       {}
func (*ListLiteral) exprNode()     {}
func (*OptionalLiteral) exprNode() {}
func (*NaturalLiteral) exprNode()  {}
func (*DoubleLiteral) exprNode()   {}
func (*TextLiteral) exprNode()     {}
func (*BooleanLiteral) exprNode()  {}
func (*Import) exprNode()          {}
func (*Builtin) exprNode()         {}

// NewNatural returns a NaturalLiteral for a small non-negative int, for use
// in tests and built-in reduction rules.
func NewNatural(n int64) *NaturalLiteral {
	if n < 0 {
		panic("adt: negative Natural")
	}
	lit := &NaturalLiteral{}
	lit.Value.SetInt64(n)
	return lit
}

// NewDouble returns a DoubleLiteral for a float64, for use in tests and
// built-in reduction rules.
func NewDouble(f float64) *DoubleLiteral {
	lit := &DoubleLiteral{}
	_, _, _ = lit.Value.SetString(fmt.Sprintf("%g", f))
	return lit
}

// NewText returns a TextLiteral consisting of a single literal chunk.
func NewText(s string) *TextLiteral {
	return &TextLiteral{Chunks: []TextChunk{{Text: s}}}
}
