// printer_test.go
package eberban

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Printer_Facts(t *testing.T) {
	require.Equal(t, "dona<3>()", FormatPredicate(&Fact{Word: "dona", ID: 3}))
	require.Equal(t, "dona<0>(x0, x2)", FormatPredicate(&Fact{
		Word: "dona",
		Args: []Arg{{Place: 0, Var: 0}, {Place: 2, Var: 2}},
	}))
}

func Test_Printer_Connectives(t *testing.T) {
	mian := &Fact{Word: "mian", ID: 0}
	tce := &Fact{Word: "tce", ID: 1, Args: []Arg{{Place: 0, Var: 0}}}

	require.Equal(t, "⊤", FormatPredicate(&And{}))
	require.Equal(t, "mian<0>()", FormatPredicate(&And{Preds: []Predicate{mian}}))
	require.Equal(t, "mian<0>() ∧ tce<1>(x0)",
		FormatPredicate(&And{Preds: []Predicate{mian, tce}}))
	require.Equal(t, "¬mian<0>()", FormatPredicate(&Not{Pred: mian}))
	require.Equal(t, "∃x0,x1. tce<1>(x0)",
		FormatPredicate(&Exists{Vars: []Var{0, 1}, Pred: tce}))
	require.Equal(t, "λx0. tce<1>(x0)",
		FormatPredicate(&Lambda{Vars: []Var{0}, Pred: tce}))
	require.Equal(t, "x2 = mian<0>()",
		FormatPredicate(&Equivalent{Var: 2, Pred: mian}))
}

func Test_Printer_OperandsAreParenthesized(t *testing.T) {
	mian := &Fact{Word: "mian", ID: 0}
	tce := &Fact{Word: "tce", ID: 1, Args: []Arg{{Place: 0, Var: 0}}}
	inner := &Exists{Vars: []Var{0}, Pred: &And{Preds: []Predicate{mian, tce}}}

	require.Equal(t, "(∃x0. mian<0>() ∧ tce<1>(x0)) ∧ mian<0>()",
		FormatPredicate(&And{Preds: []Predicate{inner, mian}}))
	require.Equal(t, "¬(∃x0. mian<0>() ∧ tce<1>(x0))",
		FormatPredicate(&Not{Pred: inner}))
	require.Equal(t, "x1 = (λx0. tce<1>(x0))",
		FormatPredicate(&Equivalent{Var: 1, Pred: &Lambda{Vars: []Var{0}, Pred: tce}}))
}

func Test_Printer_SpellWords(t *testing.T) {
	ws, err := Lex("mi dona tce mian")
	require.NoError(t, err)
	require.Equal(t, "mi dona tce mian", SpellWords(ws))
}
