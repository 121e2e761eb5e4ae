// Package analyzer holds the writing analyzers. Each one is a pure function
// from segmented text, engine output and lexicon tables to suggestions.
package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"improver/internal/grammar"
	"improver/internal/lexicon"
	"improver/internal/nlp"
	"improver/internal/readability"
	"improver/internal/suggestion"
)

const negativeToneMessage = "The text has a negative tone. Consider making it more positive."

var readabilityMessages = map[readability.Metric]string{
	readability.MetricEase:       "The text is difficult to read. Consider simplifying your sentences and using more common words.",
	readability.MetricGrade:      "The text requires a high reading grade level. Consider shorter sentences and simpler words.",
	readability.MetricFog:        "The text has a high fog index. Consider cutting long sentences and words of three or more syllables.",
	readability.MetricComplexity: "The text may be too complex. Consider simplifying it for easier comprehension.",
}

// PassiveVoice flags a sentence holding a passive auxiliary or subject.
func PassiveVoice(sent nlp.Sentence) (suggestion.Suggestion, bool) {
	if !sent.IsPassive() {
		return suggestion.Suggestion{}, false
	}
	return suggestion.About(suggestion.SourcePassiveVoice, "Consider using active voice in:", sent.Text), true
}

// LongSentence flags a sentence of more than limit whitespace separated
// words.
func LongSentence(sent nlp.Sentence, limit int) (suggestion.Suggestion, bool) {
	if sent.WordCount() <= limit {
		return suggestion.Suggestion{}, false
	}
	return suggestion.About(suggestion.SourceLongSentence, "Consider breaking down the long sentence:", sent.Text), true
}

// GrammarMatch maps grammar checker matches onto the grammar mistakes table:
// every mistake whose text appears in a match message, ignoring case, yields
// a replacement. Other matches are dropped.
func GrammarMatch(matches []grammar.Match, mistakes lexicon.Table) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, m := range matches {
		msg := strings.ToLower(m.Message)
		for _, p := range mistakes.Pairs() {
			if strings.Contains(msg, strings.ToLower(p.Key)) {
				out = append(out, suggestion.Mistake(p.Key, p.Value))
			}
		}
	}
	return out
}

// EntityAdvice emits the configured advice for entities whose lowercased
// text is a term under their label.
func EntityAdvice(entities []nlp.Entity, lex *lexicon.Lexicon) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, e := range entities {
		terms, ok := lex.EntityTerms(e.Label)
		if !ok {
			continue
		}
		if advice, ok := terms.Lookup(strings.ToLower(e.Text)); ok {
			out = append(out, suggestion.About(suggestion.SourceEntity, advice+" for", e.Text))
		}
	}
	return out
}

// CasualTone flags casual words. A word with a configured formal term
// becomes a replacement.
func CasualTone(tokens []nlp.Token, lex *lexicon.Lexicon) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, t := range tokens {
		if !lex.IsCasual(t.Lower) {
			continue
		}
		if formal, ok := lex.FormalTerms.Lookup(t.Lower); ok {
			out = append(out, suggestion.Replace(suggestion.SourceCasualTone, t.Text, keepCase(t.Text, formal)))
			continue
		}
		out = append(out, suggestion.CasualWord(t.Text))
	}
	return out
}

// SentimentTone flags a polarity below threshold.
func SentimentTone(polarity, threshold float64) (suggestion.Suggestion, bool) {
	if polarity >= threshold {
		return suggestion.Suggestion{}, false
	}
	return suggestion.Advise(suggestion.SourceSentiment, negativeToneMessage), true
}

// Score is one readability measurement.
type Score struct {
	Metric readability.Metric
	Value  float64
}

// Readability emits the fixed advice of every breached metric, in the order
// of scores.
func Readability(scores []Score) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, sc := range scores {
		if sc.Metric.Breached(sc.Value) {
			out = append(out, suggestion.Advise(suggestion.SourceReadability, readabilityMessages[sc.Metric]))
		}
	}
	return out
}

// Redundancy suggests the configured replacement for every phrase found
// verbatim in text.
func Redundancy(text string, phrases lexicon.Table) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, p := range phrases.Pairs() {
		if p.Key != "" && strings.Contains(text, p.Key) {
			out = append(out, suggestion.Replace(suggestion.SourceRedundancy, p.Key, p.Value))
		}
	}
	return out
}

// ComplexWords suggests simpler words, keeping the token's capitalization.
func ComplexWords(tokens []nlp.Token, words lexicon.Table) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, t := range tokens {
		if repl, ok := words.Lookup(t.Lower); ok {
			out = append(out, suggestion.Replace(suggestion.SourceComplexWord, t.Text, keepCase(t.Text, repl)))
		}
	}
	return out
}

// keepCase capitalizes repl like word: all caps or a leading capital.
func keepCase(word, repl string) string {
	first, _ := utf8.DecodeRuneInString(word)
	switch {
	case repl == "" || !unicode.IsUpper(first):
		return repl
	case utf8.RuneCountInString(word) > 1 && strings.ToUpper(word) == word:
		return strings.ToUpper(repl)
	}
	r, size := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(r)) + repl[size:]
}
