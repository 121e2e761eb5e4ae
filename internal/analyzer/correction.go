package analyzer

import (
	"improver/internal/corrector"
	"improver/internal/grammar"
	"improver/internal/suggestion"
)

// GrammarCorrections reports the grammar matches found in text. Matches
// with a replacement become grammar fixes; the rest pass their message
// through as diagnostics.
func GrammarCorrections(text string, matches []grammar.Match) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, m := range matches {
		old := m.Text(text)
		if len(m.Replacements) > 0 && old != "" && old != m.Replacements[0] {
			out = append(out, suggestion.GrammarFix(old, m.Replacements[0]))
			continue
		}
		if m.Message != "" {
			out = append(out, suggestion.Inform(suggestion.SourceGrammar, m.Message))
		}
	}
	return out
}

// SpellingCorrections reports the spelling corrector's findings: replaced
// words as misspellings, uncertain ones as hints.
func SpellingCorrections(infos []corrector.SuggestionInfo) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, info := range infos {
		switch {
		case info.Replacement != "":
			out = append(out, suggestion.Misspelling(info.Token, info.Replacement))
		case len(info.Suggestions) > 0:
			out = append(out, suggestion.SpellingHint(info.Token, info.Suggestions[0]))
		}
	}
	return out
}
