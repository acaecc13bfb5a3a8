// printer.go — deterministic logic-notation rendering.
//
// FormatPredicate renders a formula the way the test suite and the CLI
// show it: facts as `word<id>(x0, x1)` with arguments in place order,
// conjunction with ∧, quantifiers and abstraction as `∃x1,x2. φ` and
// `λx0. φ`, negation as ¬, equivalence bindings as `x0 = φ`. Operands
// that are not atomic are parenthesized, quantifier bodies extend to the
// end of the enclosing operand. The rendering carries no semantic
// weight; it exists to make formulas comparable and readable.
package eberban

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatVar renders a formula variable.
func FormatVar(v Var) string { return "x" + strconv.Itoa(v) }

// FormatPredicate renders a formula as a single line.
func FormatPredicate(p Predicate) string {
	var b strings.Builder
	writePredicate(&b, p)
	return b.String()
}

// SpellWords joins word spellings with single pauses, the canonical
// written form of a lexed stream.
func SpellWords(words []Word) string {
	spellings := make([]string, len(words))
	for i, w := range words {
		spellings[i] = w.Spelling
	}
	return strings.Join(spellings, " ")
}

func writeVars(b *strings.Builder, vars []Var) {
	for i, v := range vars {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(FormatVar(v))
	}
}

func writePredicate(b *strings.Builder, p Predicate) {
	switch p := p.(type) {
	case *Fact:
		b.WriteString(p.Word)
		fmt.Fprintf(b, "<%d>", p.ID)
		b.WriteByte('(')
		for i, a := range p.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatVar(a.Var))
		}
		b.WriteByte(')')
	case *Not:
		b.WriteString("¬")
		writeAtom(b, p.Pred)
	case *And:
		if len(p.Preds) == 0 {
			b.WriteString("⊤")
			return
		}
		for i, c := range p.Preds {
			if i > 0 {
				b.WriteString(" ∧ ")
			}
			writeAtom(b, c)
		}
	case *Exists:
		b.WriteString("∃")
		writeVars(b, p.Vars)
		b.WriteString(". ")
		writePredicate(b, p.Pred)
	case *Lambda:
		b.WriteString("λ")
		writeVars(b, p.Vars)
		b.WriteString(". ")
		writePredicate(b, p.Pred)
	case *Equivalent:
		b.WriteString(FormatVar(p.Var))
		b.WriteString(" = ")
		writeAtom(b, p.Pred)
	}
}

// writeAtom renders p, parenthesized when it would not bind tightly
// enough as an operand.
func writeAtom(b *strings.Builder, p Predicate) {
	switch p := p.(type) {
	case *Fact, *Not:
		writePredicate(b, p)
	case *And:
		if len(p.Preds) == 0 {
			writePredicate(b, p)
			return
		}
		b.WriteByte('(')
		writePredicate(b, p)
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		writePredicate(b, p)
		b.WriteByte(')')
	}
}
