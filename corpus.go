// corpus.go — the embedded demo sentence corpus.
//
// The corpus drives the CLI's demo subcommand and the round-trip tests.
// It ships embedded; LoadCorpus reads an external file in the same
// format for callers that bring their own sentences.
package eberban

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/corpus.yaml
var corpusYAML []byte

// Sentence is one corpus entry. Parses says whether the sentence is
// grammatical; every entry must at least lex.
type Sentence struct {
	Text   string `yaml:"text"`
	Parses bool   `yaml:"parses"`
}

// Corpus is a set of demo sentences.
type Corpus struct {
	Sentences []Sentence `yaml:"sentences"`
}

// DemoCorpus decodes the embedded corpus.
func DemoCorpus() (*Corpus, error) {
	return decodeCorpus(corpusYAML)
}

// LoadCorpus reads a corpus file in the embedded corpus's YAML format.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return decodeCorpus(data)
}

func decodeCorpus(data []byte) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if len(c.Sentences) == 0 {
		return nil, fmt.Errorf("corpus has no sentences")
	}
	return &c, nil
}
