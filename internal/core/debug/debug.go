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

// Package debug prints adt.Expr values for diagnostics. It plays the role
// the teacher's internal/core/debug.NodeString plays for golden-file
// tests: a single textual rendering used both by error messages
// (dhallerr) and directly by tests, since this module has no surface
// grammar to round-trip through.
package debug

import (
	"fmt"
	"strings"

	"github.com/dhall-go/dhall/internal/core/adt"
)

// Pretty renders e as a single-line Dhall-ish expression. It is meant for
// diagnostics, not as a conforming pretty-printer for the Dhall grammar.
func Pretty(e adt.Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

func write(b *strings.Builder, e adt.Expr) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch x := e.(type) {
	case *adt.Var:
		fmt.Fprintf(b, "%s@%d", x.Name, x.Index)
	case *adt.Lambda:
		fmt.Fprintf(b, "λ(%s : ", x.Param)
		write(b, x.ParamType)
		b.WriteString(") → ")
		write(b, x.Body)
	case *adt.ForAll:
		fmt.Fprintf(b, "∀(%s : ", x.Param)
		write(b, x.ParamType)
		b.WriteString(") → ")
		write(b, x.Body)
	case *adt.LetIn:
		for _, bind := range x.Bindings {
			fmt.Fprintf(b, "let %s", bind.Name)
			if bind.Type != nil {
				b.WriteString(" : ")
				write(b, bind.Type)
			}
			b.WriteString(" = ")
			write(b, bind.Value)
			b.WriteString(" ")
		}
		b.WriteString("in ")
		write(b, x.Body)
	case *adt.App:
		write(b, x.Fn)
		b.WriteString(" ")
		writeAtom(b, x.Arg)
	case *adt.Conditional:
		b.WriteString("if ")
		write(b, x.Cond)
		b.WriteString(" then ")
		write(b, x.Then)
		b.WriteString(" else ")
		write(b, x.Else)
	case *adt.TypeAnnotation:
		write(b, x.Expr)
		b.WriteString(" : ")
		write(b, x.Type)
	case *adt.Op:
		write(b, x.L)
		fmt.Fprintf(b, " %s ", x.Kind)
		write(b, x.R)
	case *adt.Merge:
		b.WriteString("merge ")
		writeAtom(b, x.Handlers)
		b.WriteString(" ")
		writeAtom(b, x.Union)
		if x.Type != nil {
			b.WriteString(" : ")
			write(b, x.Type)
		}
	case *adt.Select:
		writeAtom(b, x.Expr)
		fmt.Fprintf(b, ".%s", x.Label)
	case *adt.Project:
		writeAtom(b, x.Expr)
		b.WriteString(".{")
		b.WriteString(strings.Join(x.Labels, ", "))
		b.WriteString("}")
	case *adt.RecordLiteral:
		b.WriteString("{")
		writeFields(b, x.Fields, "=")
		b.WriteString("}")
	case *adt.RecordType:
		b.WriteString("{")
		writeFields(b, x.Fields, ":")
		b.WriteString("}")
	case *adt.Union:
		fmt.Fprintf(b, "<%s = ", x.Label)
		write(b, x.Value)
		writeAlternatives(b, x.Alternatives, true)
		b.WriteString(">")
	case *adt.UnionType:
		b.WriteString("<")
		writeAlternatives(b, x.Alternatives, false)
		b.WriteString(">")
	case *adt.ListLiteral:
		b.WriteString("[")
		for i, item := range x.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, item)
		}
		b.WriteString("]")
		if x.ElementType != nil {
			b.WriteString(" : List ")
			writeAtom(b, x.ElementType)
		}
	case *adt.OptionalLiteral:
		if x.Wrapped == nil {
			b.WriteString("None")
			if x.ElementType != nil {
				b.WriteString(" ")
				writeAtom(b, x.ElementType)
			}
		} else {
			b.WriteString("Some ")
			writeAtom(b, x.Wrapped)
		}
	case *adt.NaturalLiteral:
		b.WriteString(x.Value.String())
	case *adt.DoubleLiteral:
		b.WriteString(x.Value.String())
	case *adt.TextLiteral:
		b.WriteString(`"`)
		for _, c := range x.Chunks {
			if c.Expr != nil {
				b.WriteString("${")
				write(b, c.Expr)
				b.WriteString("}")
			} else {
				b.WriteString(c.Text)
			}
		}
		b.WriteString(`"`)
	case *adt.BooleanLiteral:
		if x.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *adt.Import:
		fmt.Fprintf(b, "missing /* %s */", x.Source)
	case *adt.Builtin:
		b.WriteString(x.Tag.String())
	default:
		fmt.Fprintf(b, "<unknown %T>", e)
	}
}

func writeFields(b *strings.Builder, fields []adt.Field, sep string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s %s ", f.Label, sep)
		write(b, f.Value)
	}
}

func writeAlternatives(b *strings.Builder, alts []adt.Alternative, leadingBar bool) {
	for i, a := range alts {
		if leadingBar || i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(b, "%s : ", a.Label)
		write(b, a.Type)
	}
}

// writeAtom wraps e in parens if it is not already an atomic expression,
// so that e.g. application arguments print unambiguously.
func writeAtom(b *strings.Builder, e adt.Expr) {
	switch e.(type) {
	case *adt.Var, *adt.NaturalLiteral, *adt.DoubleLiteral, *adt.BooleanLiteral,
		*adt.TextLiteral, *adt.RecordLiteral, *adt.RecordType, *adt.ListLiteral,
		*adt.Builtin, *adt.Select, *adt.Project:
		write(b, e)
	default:
		b.WriteString("(")
		write(b, e)
		b.WriteString(")")
	}
}
