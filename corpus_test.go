// corpus_test.go
package eberban

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Corpus_Embedded(t *testing.T) {
	corpus, err := DemoCorpus()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(corpus.Sentences), 30)
}

func Test_Corpus_EverySentenceLexes(t *testing.T) {
	corpus, err := DemoCorpus()
	require.NoError(t, err)
	for _, s := range corpus.Sentences {
		_, err := Lex(s.Text)
		require.NoError(t, err, "Lex(%q)", s.Text)
	}
}

func Test_Corpus_LexingRoundTrip(t *testing.T) {
	// Respelling a lexed sentence with explicit pauses and lexing again
	// yields the same words.
	corpus, err := DemoCorpus()
	require.NoError(t, err)
	for _, s := range corpus.Sentences {
		ws, err := Lex(s.Text)
		require.NoError(t, err, "Lex(%q)", s.Text)
		respelled := SpellWords(ws)
		ws2, err := Lex(respelled)
		require.NoError(t, err, "Lex(%q)", respelled)
		require.Equal(t, SpellWords(ws2), respelled, "round trip of %q", s.Text)
		require.Equal(t, kindsOf(ws), kindsOf(ws2), "classification of %q", s.Text)
	}
}

func Test_Corpus_GrammaticalityMatches(t *testing.T) {
	corpus, err := DemoCorpus()
	require.NoError(t, err)
	for _, s := range corpus.Sentences {
		ws, err := Lex(s.Text)
		require.NoError(t, err, "Lex(%q)", s.Text)
		_, err = Parse(ws)
		if s.Parses {
			require.NoError(t, err, "Parse(%q)", s.Text)
		} else {
			require.Error(t, err, "Parse(%q)", s.Text)
		}
	}
}

func Test_Corpus_TranslationsAreClosed(t *testing.T) {
	corpus, err := DemoCorpus()
	require.NoError(t, err)
	for _, s := range corpus.Sentences {
		if !s.Parses {
			continue
		}
		ws, err := Lex(s.Text)
		require.NoError(t, err, "Lex(%q)", s.Text)
		tree, err := Parse(ws)
		require.NoError(t, err, "Parse(%q)", s.Text)
		p, free := ToExpr(tree)
		assertClosed(t, p, withVars(nil, free))
	}
}

func Test_Corpus_LoadExternalFile(t *testing.T) {
	corpus, err := LoadCorpus("testdata/corpus.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, corpus.Sentences)

	_, err = LoadCorpus("testdata/missing.yaml")
	require.Error(t, err)
}
