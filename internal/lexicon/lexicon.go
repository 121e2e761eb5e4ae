package lexicon

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.json
var defaultLexicon []byte

// ErrMissingKey is returned when a required table is absent from the source.
var ErrMissingKey = errors.New("lexicon: missing required key")

// Lexicon holds the lookup tables consulted by the analyzers. A Lexicon is
// never mutated after Load/Parse returns, so it can be shared between
// goroutines without locking.
type Lexicon struct {
	RedundantPhrases Table
	ComplexWords     Table
	GrammarMistakes  Table
	NERSuggestions   map[string]Table
	CasualWords      []string
	FormalTerms      Table

	casual map[string]bool
}

type rawLexicon struct {
	RedundantPhrases *Table           `yaml:"redundant_phrases"`
	ComplexWords     *Table           `yaml:"complex_words"`
	GrammarMistakes  *Table           `yaml:"grammar_mistakes"`
	NERSuggestions   map[string]Table `yaml:"ner_suggestions"`
	CasualWords      []string         `yaml:"casual_words"`
	FormalTerms      *Table           `yaml:"formal_terms"`
}

// Load reads a lexicon from a JSON or YAML file.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return lex, nil
}

// Default returns the lexicon bundled with the binary.
func Default() (*Lexicon, error) {
	return Parse(defaultLexicon)
}

// Parse decodes a lexicon document. JSON is accepted as YAML flow syntax.
// Every table except formal_terms is required.
func Parse(data []byte) (*Lexicon, error) {
	var raw rawLexicon
	var present map[string]yaml.Node
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for _, key := range []string{"redundant_phrases", "complex_words", "grammar_mistakes", "ner_suggestions", "casual_words"} {
		if _, ok := present[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	lex := &Lexicon{
		RedundantPhrases: orEmpty(raw.RedundantPhrases),
		ComplexWords:     orEmpty(raw.ComplexWords).lowerKeys(),
		GrammarMistakes:  orEmpty(raw.GrammarMistakes),
		NERSuggestions:   make(map[string]Table, len(raw.NERSuggestions)),
		casual:           make(map[string]bool, len(raw.CasualWords)),
	}
	lex.FormalTerms = orEmpty(raw.FormalTerms).lowerKeys()
	for label, terms := range raw.NERSuggestions {
		lex.NERSuggestions[strings.ToUpper(label)] = terms.lowerKeys()
	}
	for _, w := range raw.CasualWords {
		lw := strings.ToLower(strings.TrimSpace(w))
		if lw == "" || lex.casual[lw] {
			continue
		}
		lex.casual[lw] = true
		lex.CasualWords = append(lex.CasualWords, lw)
	}
	return lex, nil
}

func orEmpty(t *Table) Table {
	if t == nil {
		return Table{}
	}
	return *t
}

// IsCasual reports whether the lowercased word is listed as casual.
func (l *Lexicon) IsCasual(word string) bool {
	return l.casual[strings.ToLower(word)]
}

// EntityTerms returns the suggestion table configured for an entity label.
func (l *Lexicon) EntityTerms(label string) (Table, bool) {
	t, ok := l.NERSuggestions[strings.ToUpper(label)]
	return t, ok && t.Len() > 0
}
