package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"improver/internal/corrector"
	"improver/internal/grammar"
	"improver/internal/lexicon"
	"improver/internal/nlp"
	"improver/internal/readability"
	"improver/internal/suggestion"
)

func defaultLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return lex
}

func toks(words ...string) []nlp.Token {
	out := make([]nlp.Token, len(words))
	for i, w := range words {
		out[i] = nlp.Token{Text: w, Lower: strings.ToLower(w), Index: i}
	}
	return out
}

func wordsSentence(n int) nlp.Sentence {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return nlp.Sentence{Text: strings.Join(words, " ") + "."}
}

func TestPassiveVoice(t *testing.T) {
	sent := nlp.Sentence{
		Text:   "The ball was thrown by John.",
		Tokens: []nlp.Token{{Text: "ball", Role: nlp.RoleSubjPass}, {Text: "was", Role: nlp.RoleAuxPass}},
	}
	got, ok := PassiveVoice(sent)
	require.True(t, ok)
	assert.Equal(t, "Consider using active voice in: 'The ball was thrown by John.'", got.Message())
	assert.Equal(t, suggestion.Advisory, got.Kind)

	_, ok = PassiveVoice(nlp.Sentence{Text: "John threw the ball.", Tokens: toks("John", "threw", "the", "ball")})
	assert.False(t, ok)
}

func TestLongSentence(t *testing.T) {
	long := wordsSentence(25)
	got, ok := LongSentence(long, 20)
	require.True(t, ok)
	assert.Equal(t, "Consider breaking down the long sentence: '"+long.Text+"'", got.Message())

	_, ok = LongSentence(wordsSentence(15), 20)
	assert.False(t, ok)
	_, ok = LongSentence(wordsSentence(20), 20)
	assert.False(t, ok)
}

func TestGrammarMatch(t *testing.T) {
	lex := defaultLexicon(t)
	matches := []grammar.Match{
		{Message: "Possible spelling mistake: 'ALOT' should be written as 'a lot'."},
		{Message: "Did you mean 'Could have'? 'Could of' is a common mistake."},
		{Message: "Use 'an' instead of 'a' before a vowel sound."},
	}
	got := GrammarMatch(matches, lex.GrammarMistakes)
	assert.Equal(t, []string{
		"Consider replacing 'alot' with 'a lot'",
		"Consider replacing 'could of' with 'could have'",
	}, suggestion.Messages(got))
	assert.Equal(t, suggestion.Replacement, got[0].Kind)
}

func TestEntityAdvice(t *testing.T) {
	lex := defaultLexicon(t)
	got := EntityAdvice([]nlp.Entity{
		{Text: "Google", Label: "GPE"},
		{Text: "John", Label: "PERSON"},
		{Text: "Google", Label: "ORG"},
		{Text: "IBM Corp", Label: "ORG"},
		{Text: "Google Cloud", Label: "GPE"},
	}, lex)
	require.Len(t, got, 2)
	assert.Equal(t, "Use the full legal name 'Google LLC' in formal documents for 'Google'", got[0].Message())
	assert.Equal(t, "Spell out 'International Business Machines Corporation' on first use for 'IBM Corp'", got[1].Message())
}

func TestCasualTone(t *testing.T) {
	lex := defaultLexicon(t)
	got := CasualTone(toks("That", "was", "Cool", "and", "we", "gonna", "win"), lex)
	require.Len(t, got, 2)
	assert.Equal(t, "Consider replacing 'Cool' with a more formal term.", got[0].Message())
	assert.Equal(t, suggestion.Advisory, got[0].Kind)
	assert.Equal(t, "Consider replacing 'gonna' with 'going to'.", got[1].Message())
	assert.Equal(t, suggestion.Replacement, got[1].Kind)
}

func TestSentimentTone(t *testing.T) {
	got, ok := SentimentTone(-0.8, -0.5)
	require.True(t, ok)
	assert.Equal(t, "The text has a negative tone. Consider making it more positive.", got.Message())

	_, ok = SentimentTone(-0.5, -0.5)
	assert.False(t, ok)
}

func TestReadability(t *testing.T) {
	got := Readability([]Score{
		{readability.MetricEase, 30},
		{readability.MetricComplexity, 8},
		{readability.MetricFog, 14},
	})
	assert.Equal(t, []string{
		"The text is difficult to read. Consider simplifying your sentences and using more common words.",
		"The text has a high fog index. Consider cutting long sentences and words of three or more syllables.",
	}, suggestion.Messages(got))
	assert.Empty(t, Readability([]Score{{readability.MetricEase, 80}}))
}

func TestRedundancy(t *testing.T) {
	lex := defaultLexicon(t)
	got := Redundancy("We met in order to plan the end result.", lex.RedundantPhrases)
	assert.Equal(t, []string{
		"Consider replacing 'in order to' with 'to'.",
		"Consider replacing 'end result' with 'result'.",
	}, suggestion.Messages(got))

	// verbatim and case sensitive
	assert.Empty(t, Redundancy("In Order To plan", lex.RedundantPhrases))
}

func TestComplexWords(t *testing.T) {
	lex := defaultLexicon(t)
	got := ComplexWords(toks("Utilize", "the", "numerous", "TERMINATE", "tools"), lex.ComplexWords)
	assert.Equal(t, []string{
		"Consider replacing 'Utilize' with 'Use'.",
		"Consider replacing 'numerous' with 'many'.",
		"Consider replacing 'TERMINATE' with 'END'.",
	}, suggestion.Messages(got))
}

func TestGrammarCorrections(t *testing.T) {
	text := "I like it alot."
	got := GrammarCorrections(text, []grammar.Match{
		{Offset: 10, Length: 4, Message: "spelling", Replacements: []string{"a lot"}},
		{Offset: 0, Length: 1, Message: "Sentence is fine but odd."},
		{Offset: 0, Length: 1, Message: "", Replacements: []string{"I"}},
	})
	assert.Equal(t, []string{
		"Grammar issue: Consider using a lot instead of alot",
		"Sentence is fine but odd.",
	}, suggestion.Messages(got))
	assert.Equal(t, suggestion.Informational, got[1].Kind)
}

func TestSpellingCorrections(t *testing.T) {
	got := SpellingCorrections([]corrector.SuggestionInfo{
		{Token: "teh", Replacement: "the", Suggestions: []string{"the", "ten"}, Decision: corrector.DecisionAutoReplace},
		{Token: "wrd", Suggestions: []string{"word"}, Decision: corrector.DecisionHintOnly},
		{Token: "zzz", Decision: corrector.DecisionHintOnly},
	})
	assert.Equal(t, []string{
		"Spelling issue: 'teh' is misspelled.",
		"Possible spelling issue: 'wrd'. Did you mean 'word'?",
	}, suggestion.Messages(got))
	e, ok := got[0].Edit()
	require.True(t, ok)
	assert.Equal(t, suggestion.Edit{Old: "teh", New: "the"}, e)
}

func TestKeepCase(t *testing.T) {
	assert.Equal(t, "use", keepCase("utilize", "use"))
	assert.Equal(t, "Use", keepCase("Utilize", "use"))
	assert.Equal(t, "USE", keepCase("UTILIZE", "use"))
	assert.Equal(t, "", keepCase("Utilize", ""))
}
