package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "redundant_phrases": {"in order to": "to", "end result": "result", "at this point in time": "now"},
  "complex_words": {"Utilize": "use"},
  "grammar_mistakes": {"alot": "a lot"},
  "ner_suggestions": {"org": {"Acme": "Use the registered name"}},
  "casual_words": ["Gonna", "cool", "cool"]
}`

func TestParsePreservesOrder(t *testing.T) {
	lex, err := Parse([]byte(sample))
	require.NoError(t, err)

	var keys []string
	for _, p := range lex.RedundantPhrases.Pairs() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"in order to", "end result", "at this point in time"}, keys)
}

func TestParseNormalizesLookupKeys(t *testing.T) {
	lex, err := Parse([]byte(sample))
	require.NoError(t, err)

	v, ok := lex.ComplexWords.Lookup("utilize")
	assert.True(t, ok)
	assert.Equal(t, "use", v)

	terms, ok := lex.EntityTerms("ORG")
	require.True(t, ok)
	v, ok = terms.Lookup("acme")
	assert.True(t, ok)
	assert.Equal(t, "Use the registered name", v)

	assert.True(t, lex.IsCasual("GONNA"))
	assert.Equal(t, []string{"gonna", "cool"}, lex.CasualWords)
	assert.Equal(t, 0, lex.FormalTerms.Len())
}

func TestParseMissingKey(t *testing.T) {
	_, err := Parse([]byte(`{"redundant_phrases": {}, "complex_words": {}, "grammar_mistakes": {}, "casual_words": []}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "ner_suggestions")
}

func TestParseRejectsNonStringEntries(t *testing.T) {
	_, err := Parse([]byte(`{"redundant_phrases": {"a": ["b"]}, "complex_words": {}, "grammar_mistakes": {}, "ner_suggestions": {}, "casual_words": []}`))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	doc := `
redundant_phrases:
  due to the fact that: because
complex_words:
  commence: begin
grammar_mistakes: {}
ner_suggestions: {}
casual_words: [yeah]
formal_terms:
  yeah: yes
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	lex, err := Load(path)
	require.NoError(t, err)
	v, ok := lex.FormalTerms.Lookup("yeah")
	assert.True(t, ok)
	assert.Equal(t, "yes", v)
}

func TestDefault(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	v, ok := lex.RedundantPhrases.Lookup("in order to")
	assert.True(t, ok)
	assert.Equal(t, "to", v)
	v, ok = lex.GrammarMistakes.Lookup("alot")
	assert.True(t, ok)
	assert.Equal(t, "a lot", v)
}
