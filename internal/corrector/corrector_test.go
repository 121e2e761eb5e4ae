package corrector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memStore struct {
	words map[string]bool
	err   error
}

func (m *memStore) All(context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for w := range m.words {
		out = append(out, w)
	}
	return out, nil
}

func (m *memStore) Add(_ context.Context, w string) error {
	if m.err != nil {
		return m.err
	}
	m.words[w] = true
	return nil
}

func (m *memStore) Remove(_ context.Context, w string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.words, w)
	return nil
}

func newTestCorrector(t *testing.T, store WordStore) *SpellCorrector {
	t.Helper()
	sc, err := NewSpellCorrector(context.Background(), DefaultConfig(), filepath.Join("testdata", "words.txt"), store, zaptest.NewLogger(t))
	require.NoError(t, err)
	return sc
}

func TestCorrectTextTransposition(t *testing.T) {
	sc := newTestCorrector(t, nil)
	res := sc.CorrectText("I saw teh cat.")

	assert.Equal(t, "I saw teh cat.", res.Original)
	assert.Equal(t, "I saw the cat.", res.Corrected)
	require.Len(t, res.Suggestions, 1)
	info := res.Suggestions[0]
	assert.Equal(t, "teh", info.Token)
	assert.Equal(t, 6, info.Offset)
	assert.Equal(t, "the", info.Replacement)
	assert.Equal(t, DecisionAutoReplace, info.Decision)
	assert.Equal(t, "the", info.Suggestions[0])
}

func TestCorrectTextKeepsCase(t *testing.T) {
	sc := newTestCorrector(t, nil)
	assert.Equal(t, "The cat sat.", sc.CorrectText("Teh cat sat.").Corrected)
	assert.Equal(t, "I saw the cat. The cat sat.", sc.CorrectText("I saw teh cat. Teh cat sat.").Corrected)
}

func TestCorrectTextSkipsNamesAndAcronyms(t *testing.T) {
	sc := newTestCorrector(t, nil)
	for _, text := range []string{
		"I met Teh today.",
		"I saw TEH today.",
		"I saw it today.",
		"I can't see 42 cats.",
	} {
		res := sc.CorrectText(text)
		assert.Equal(t, text, res.Corrected, text)
	}
}

func TestCorrectTextLeavesAccentedWords(t *testing.T) {
	sc, err := NewFromFrequencies(context.Background(), DefaultConfig(), map[string]float64{
		"we": 500, "love": 300, "the": 900, "cafe": 300, "cafes": 100, "naive": 200, "plan": 150, "didn't": 50,
	}, nil, nil)
	require.NoError(t, err)

	for _, text := range []string{
		"We love the café.",
		"We love the cafés.",
		"The naïve plan.",
		"We didn’t plan.",
	} {
		res := sc.CorrectText(text)
		assert.Equal(t, text, res.Corrected, text)
		assert.Empty(t, res.Suggestions, text)
	}
}

func TestTokenizeKeepsWordsWhole(t *testing.T) {
	assert.Equal(t, []string{"a", " ", "café", "."}, tokenize("a café."))
	assert.Equal(t, []string{"naïve", " ", "didn’t", " ", "can't"}, tokenize("naïve didn’t can't"))
	assert.Equal(t, []string{"42", " ", "cats", "!"}, tokenize("42 cats!"))
}

func TestCorrectTextHintOnly(t *testing.T) {
	sc := newTestCorrector(t, nil)
	res := sc.CorrectText("a wrd here")

	assert.Equal(t, "a wrd here", res.Corrected)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, DecisionHintOnly, res.Suggestions[0].Decision)
	assert.Empty(t, res.Suggestions[0].Replacement)
	assert.ElementsMatch(t, []string{"word", "ward"}, res.Suggestions[0].Suggestions)
}

func TestSuggest(t *testing.T) {
	sc := newTestCorrector(t, nil)

	got, ok := sc.Suggest("teh")
	require.True(t, ok)
	assert.Equal(t, "the", got)

	got, ok = sc.Suggest("Teh")
	require.True(t, ok)
	assert.Equal(t, "The", got)

	got, ok = sc.Suggest("tehh")
	require.True(t, ok)
	assert.Equal(t, "the", got)

	_, ok = sc.Suggest("the")
	assert.False(t, ok)
	_, ok = sc.Suggest("zzzzzzzz")
	assert.False(t, ok)
}

func TestCustomWords(t *testing.T) {
	store := &memStore{words: map[string]bool{"teh": true}}
	sc := newTestCorrector(t, store)
	ctx := context.Background()

	assert.True(t, sc.Known("teh"))
	assert.Equal(t, "I saw teh cat.", sc.CorrectText("I saw teh cat.").Corrected)

	require.NoError(t, sc.RemoveCustomWord(ctx, "Teh"))
	assert.False(t, sc.Known("teh"))
	assert.False(t, store.words["teh"])
	assert.Equal(t, "I saw the cat.", sc.CorrectText("I saw teh cat.").Corrected)

	require.NoError(t, sc.AddCustomWord(ctx, "Gopher"))
	assert.True(t, sc.Known("gopher"))
	assert.True(t, store.words["gopher"])

	// removing a custom word never forgets dictionary words
	require.NoError(t, sc.RemoveCustomWord(ctx, "the"))
	assert.True(t, sc.Known("the"))
}

func TestCustomWordStoreFailure(t *testing.T) {
	boom := errors.New("boom")
	store := &memStore{words: map[string]bool{}, err: boom}
	sc := newTestCorrector(t, store)

	err := sc.AddCustomWord(context.Background(), "gopher")
	assert.ErrorIs(t, err, boom)
	assert.False(t, sc.Known("gopher"))
}

func TestLoadFrequencies(t *testing.T) {
	freqs, err := loadFrequencies(filepath.Join("testdata", "words.txt"))
	require.NoError(t, err)
	assert.Equal(t, 5010.0, freqs["the"])
	assert.NotContains(t, freqs, "broken")
	assert.NotContains(t, freqs, "#")
}

func TestEmptyDictionary(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err := NewSpellCorrector(context.Background(), DefaultConfig(), empty, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	junk := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(junk, []byte("no counts here\n"), 0o644))
	_, err = NewSpellCorrector(context.Background(), DefaultConfig(), junk, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = NewFromFrequencies(context.Background(), DefaultConfig(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestWeightedDL(t *testing.T) {
	sc, err := NewFromFrequencies(context.Background(), DefaultConfig(), map[string]float64{"x": 1}, nil, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, sc.weightedDL("teh", "the"), 1e-9)
	assert.InDelta(t, 0.6, sc.weightedDL("ten", "teh"), 1e-9)
	assert.InDelta(t, 0.9, sc.weightedDL("cat", "cart"), 1e-9)
	assert.Equal(t, 0.0, sc.weightedDL("same", "same"))
	assert.Equal(t, 3, unitDL("kitten", "sitting"))
}

func TestEdits1(t *testing.T) {
	e := edits1("ab")
	assert.Contains(t, e, "b")
	assert.Contains(t, e, "ba")
	assert.Contains(t, e, "xb")
	assert.Contains(t, e, "abz")
	assert.NotContains(t, e, "ab")
}
