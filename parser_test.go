// parser_test.go
package eberban

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) PredicateTree {
	t.Helper()
	ws, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	tree, err := Parse(ws)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return tree
}

func asBinding(t *testing.T, tree PredicateTree) *Binding {
	t.Helper()
	b, ok := tree.(*Binding)
	if !ok {
		t.Fatalf("want *Binding, got %T", tree)
	}
	return b
}

func leafSpelling(t *testing.T, tree PredicateTree) string {
	t.Helper()
	l, ok := tree.(*Leaf)
	if !ok {
		t.Fatalf("want *Leaf, got %T", tree)
	}
	return l.Word.Spelling
}

func Test_Parser_BareLeaf(t *testing.T) {
	require.Equal(t, "mian", leafSpelling(t, parse(t, "mian")))
}

func Test_Parser_TrailingChainsAtHeadPlace(t *testing.T) {
	b := asBinding(t, parse(t, "dona tce"))
	require.Equal(t, "dona", leafSpelling(t, b.Root))
	// dona ends in a plain vowel: the trailing tree lands at place 1.
	require.Len(t, b.Sharers, 2)
	require.Empty(t, b.Sharers[0])
	require.Len(t, b.Sharers[1], 1)
	require.Equal(t, Sharing, b.Sharers[1][0].Mode)
}

func Test_Parser_GroupsAndTrailing(t *testing.T) {
	// The trailing tree inside "duna ..." resolves before the vo group.
	b := asBinding(t, parse(t, "mi duna vo mo vei meon"))
	require.Equal(t, "mi", leafSpelling(t, b.Root))
	require.Len(t, b.Sharers, 1)

	duna := asBinding(t, b.Sharers[0][0].Tree)
	require.Equal(t, "duna", leafSpelling(t, duna.Root))
	require.Len(t, duna.Sharers, 3)
	require.Empty(t, duna.Sharers[0])
	require.Equal(t, "meon", leafSpelling(t, duna.Sharers[1][0].Tree))
	require.Equal(t, "mo", leafSpelling(t, duna.Sharers[2][0].Tree))
}

func Test_Parser_UnnumberedLinkerJoinsAnd(t *testing.T) {
	b := asBinding(t, parse(t, "mai vi ge fi ga vei"))
	require.Empty(t, b.Sharers)
	require.Len(t, b.And, 2)
	require.Equal(t, "ge", leafSpelling(t, b.And[0]))
	require.Equal(t, "ga", leafSpelling(t, b.And[1]))
}

func Test_Parser_PeGroupingIsTransparent(t *testing.T) {
	plain, _ := ToExpr(parse(t, "mi dona mian"))
	grouped, _ := ToExpr(parse(t, "mi dona pe pe mian pei pei"))
	require.Equal(t, FormatPredicate(plain), FormatPredicate(grouped))
}

func Test_Parser_PeiOptional(t *testing.T) {
	parse(t, "pe dona pei pe pe mian pei mavda")
	parse(t, "pe mi duna vo mo vei meon")
}

func Test_Parser_NegationParity(t *testing.T) {
	l, ok := parse(t, "zi mian").(*Leaf)
	require.True(t, ok)
	require.Equal(t, Negation{Short: true}, l.Negation)

	l, ok = parse(t, "bi mian").(*Leaf)
	require.True(t, ok)
	require.Equal(t, Negation{Long: true}, l.Negation)

	l, ok = parse(t, "bi zi mian").(*Leaf)
	require.True(t, ok)
	require.Equal(t, Negation{Short: true, Long: true}, l.Negation)

	l, ok = parse(t, "bi bi zi zi mian").(*Leaf)
	require.True(t, ok)
	require.True(t, l.Negation.None())
}

func Test_Parser_SiRewritesChainingAndExposure(t *testing.T) {
	b := asBinding(t, parse(t, "sia sre bure"))
	require.Equal(t, ExposureTransparent, b.Exposure.Kind)
	require.Equal(t, ChainingBehavior{Place: 1, Mode: Equivalence}, b.Chaining)
	require.Equal(t, "sre", leafSpelling(t, b.Root))
	require.Len(t, b.Sharers, 2)
	require.Equal(t, Equivalence, b.Sharers[1][0].Mode)
	require.Equal(t, "bure", leafSpelling(t, b.Sharers[1][0].Tree))
}

func Test_Parser_ArgListBecomesExplicitExposure(t *testing.T) {
	b := asBinding(t, parse(t, "mi dona va ke be mian bure ke"))
	dona := asBinding(t, b.Sharers[0][0].Tree)
	item := asBinding(t, dona.Sharers[1][0].Tree)
	require.Equal(t, ExposureExplicit, item.Exposure.Kind)
	require.Equal(t, []NamedArg{{Name: "ke", Mode: Sharing}}, item.Exposure.Args)
	require.Equal(t, "mian", leafSpelling(t, item.Root))
}

func Test_Parser_ArgListNeedsBe(t *testing.T) {
	// Without a closing be, ke is an ordinary leaf.
	b := asBinding(t, parse(t, "dona va ke"))
	require.Equal(t, "ke", leafSpelling(t, b.Sharers[1][0].Tree))
}

func Test_Parser_Errors(t *testing.T) {
	cases := []string{
		"",
		"vi mian",
		"mi vei",
		"mian se bure blan vei",
		"zi mio tiho a ol ahu nu",
		"kavda'nakla",
	}
	for _, src := range cases {
		ws, err := Lex(src)
		require.NoError(t, err, "Lex(%q)", src)
		_, err = Parse(ws)
		require.Error(t, err, "Parse(%q)", src)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "Parse(%q)", src)
	}
}
