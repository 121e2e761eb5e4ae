package suggestion

import "strings"

// Speller resolves the replacement of a misspelled word.
type Speller interface {
	Suggest(word string) (string, bool)
}

const (
	replacePrefix  = "Consider replacing '"
	replaceSep     = "' with '"
	grammarPrefix  = "Grammar issue: Consider using "
	grammarSep     = " instead of "
	spellingPrefix = "Spelling issue: '"
	spellingSuffix = "' is misspelled"
)

// Translator turns plain suggestion messages back into edits. It recognizes
// the replacement, grammar and spelling templates; anything else is
// advisory.
type Translator struct {
	speller Speller
}

// NewTranslator returns a Translator. A nil speller leaves spelling messages
// untranslated.
func NewTranslator(speller Speller) *Translator {
	return &Translator{speller: speller}
}

// Translate parses msg. The second result is false for advisory and
// malformed messages.
func (t *Translator) Translate(msg string) (Edit, bool) {
	switch {
	case strings.HasPrefix(msg, replacePrefix):
		return parseReplace(msg[len(replacePrefix):])
	case strings.HasPrefix(msg, grammarPrefix):
		return parseGrammar(msg[len(grammarPrefix):])
	case strings.HasPrefix(msg, spellingPrefix):
		return t.parseSpelling(msg[len(spellingPrefix):])
	}
	return Edit{}, false
}

// TranslateAll translates msgs in order, skipping the ones that do not
// translate.
func (t *Translator) TranslateAll(msgs []string) []Edit {
	var out []Edit
	for _, m := range msgs {
		if e, ok := t.Translate(m); ok {
			out = append(out, e)
		}
	}
	return out
}

// parseReplace handles "<old>' with '<new>'" with an optional final period.
func parseReplace(rest string) (Edit, bool) {
	i := strings.Index(rest, replaceSep)
	if i <= 0 {
		return Edit{}, false
	}
	old, tail := rest[:i], rest[i+len(replaceSep):]
	switch {
	case strings.HasSuffix(tail, "'."):
		tail = tail[:len(tail)-2]
	case strings.HasSuffix(tail, "'"):
		tail = tail[:len(tail)-1]
	default:
		return Edit{}, false
	}
	return Edit{Old: old, New: tail}, true
}

// parseGrammar handles "<new> instead of <old>".
func parseGrammar(rest string) (Edit, bool) {
	parts := strings.Split(rest, grammarSep)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Edit{}, false
	}
	return Edit{Old: parts[1], New: parts[0]}, true
}

func (t *Translator) parseSpelling(rest string) (Edit, bool) {
	word, ok := strings.CutSuffix(strings.TrimSuffix(rest, "."), spellingSuffix)
	if !ok || word == "" || t.speller == nil {
		return Edit{}, false
	}
	repl, ok := t.speller.Suggest(word)
	if !ok {
		return Edit{}, false
	}
	return Edit{Old: word, New: repl}, true
}
