// Package suggestion holds the structured writing suggestions produced by
// the analyzers and the translator that turns suggestion messages back into
// edits.
package suggestion

import (
	"encoding/json"
	"fmt"
)

// Kind tells whether a suggestion can be applied to the text.
type Kind int

const (
	// Advisory suggestions are shown to the user but never applied.
	Advisory Kind = iota
	// Replacement suggestions carry an Old → New edit.
	Replacement
	// Informational suggestions are engine diagnostics without an edit.
	Informational
)

func (k Kind) String() string {
	switch k {
	case Replacement:
		return "replacement"
	case Informational:
		return "informational"
	}
	return "advisory"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Source names the analyzer that produced a suggestion.
type Source string

const (
	SourcePassiveVoice Source = "passive_voice"
	SourceLongSentence Source = "long_sentence"
	SourceGrammarMatch Source = "grammar_match"
	SourceEntity       Source = "entity"
	SourceCasualTone   Source = "casual_tone"
	SourceSentiment    Source = "sentiment"
	SourceReadability  Source = "readability"
	SourceRedundancy   Source = "redundancy"
	SourceComplexWord  Source = "complex_word"
	SourceGrammar      Source = "grammar"
	SourceSpelling     Source = "spelling"
)

type form int

const (
	formPlain form = iota
	formReplace
	formMistake
	formGrammar
	formSpelling
	formHint
	formCasual
	formQuoted
)

// Suggestion is one piece of writing advice. Its message is rendered from
// the fields, so the constructors below are the only way to build one.
type Suggestion struct {
	Kind    Kind
	Source  Source
	Old     string
	New     string
	Subject string
	Text    string

	form form
}

// Edit is an Old → New whole-word replacement.
type Edit struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Replace suggests replacing old with new:
// "Consider replacing '<old>' with '<new>'."
func Replace(src Source, old, repl string) Suggestion {
	return Suggestion{Kind: Replacement, Source: src, Old: old, New: repl, form: formReplace}
}

// Mistake is the grammar-match variant of Replace, rendered without the
// final period.
func Mistake(old, repl string) Suggestion {
	return Suggestion{Kind: Replacement, Source: SourceGrammarMatch, Old: old, New: repl, form: formMistake}
}

// GrammarFix reports a grammar correction:
// "Grammar issue: Consider using <new> instead of <old>".
func GrammarFix(old, repl string) Suggestion {
	return Suggestion{Kind: Replacement, Source: SourceGrammar, Old: old, New: repl, form: formGrammar}
}

// Misspelling reports a corrected spelling mistake:
// "Spelling issue: '<word>' is misspelled.". The replacement is not part of
// the message.
func Misspelling(word, replacement string) Suggestion {
	return Suggestion{Kind: Replacement, Source: SourceSpelling, Old: word, New: replacement, form: formSpelling}
}

// SpellingHint reports a possible misspelling the corrector was not sure
// enough to fix.
func SpellingHint(word, candidate string) Suggestion {
	return Suggestion{Kind: Advisory, Source: SourceSpelling, Old: word, New: candidate, form: formHint}
}

// CasualWord advises a more formal term for token.
func CasualWord(token string) Suggestion {
	return Suggestion{Kind: Advisory, Source: SourceCasualTone, Subject: token, form: formCasual}
}

// About renders "<text> '<subject>'".
func About(src Source, text, subject string) Suggestion {
	return Suggestion{Kind: Advisory, Source: src, Text: text, Subject: subject, form: formQuoted}
}

// Advise is a fixed advisory message.
func Advise(src Source, text string) Suggestion {
	return Suggestion{Kind: Advisory, Source: src, Text: text}
}

// Inform is a diagnostic passed through from an engine.
func Inform(src Source, text string) Suggestion {
	return Suggestion{Kind: Informational, Source: src, Text: text}
}

// Message renders the suggestion for display.
func (s Suggestion) Message() string {
	switch s.form {
	case formReplace:
		return fmt.Sprintf("Consider replacing '%s' with '%s'.", s.Old, s.New)
	case formMistake:
		return fmt.Sprintf("Consider replacing '%s' with '%s'", s.Old, s.New)
	case formGrammar:
		return fmt.Sprintf("Grammar issue: Consider using %s instead of %s", s.New, s.Old)
	case formSpelling:
		return fmt.Sprintf("Spelling issue: '%s' is misspelled.", s.Old)
	case formHint:
		return fmt.Sprintf("Possible spelling issue: '%s'. Did you mean '%s'?", s.Old, s.New)
	case formCasual:
		return fmt.Sprintf("Consider replacing '%s' with a more formal term.", s.Subject)
	case formQuoted:
		return fmt.Sprintf("%s '%s'", s.Text, s.Subject)
	}
	return s.Text
}

func (s Suggestion) String() string { return s.Message() }

// Edit returns the edit of a Replacement suggestion.
func (s Suggestion) Edit() (Edit, bool) {
	if s.Kind != Replacement || s.Old == "" {
		return Edit{}, false
	}
	return Edit{Old: s.Old, New: s.New}, true
}

func (s Suggestion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    Kind   `json:"kind"`
		Source  Source `json:"source"`
		Old     string `json:"old,omitempty"`
		New     string `json:"new,omitempty"`
		Subject string `json:"subject,omitempty"`
		Message string `json:"message"`
	}{s.Kind, s.Source, s.Old, s.New, s.Subject, s.Message()})
}

// Messages renders every suggestion.
func Messages(list []Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Message()
	}
	return out
}

// Dedupe drops suggestions whose message was already seen, keeping the
// first occurrence.
func Dedupe(list []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(list))
	out := make([]Suggestion, 0, len(list))
	for _, s := range list {
		msg := s.Message()
		if seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, s)
	}
	return out
}
