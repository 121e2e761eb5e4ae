package grammar

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a pattern based check. Message and Replacement are expanded with
// the submatches of Pattern ($1, $2, ...). Skip, when set, vetoes a match
// given its submatches.
type Rule struct {
	ID          string
	Pattern     string
	Message     string
	Replacement string
	Skip        func(groups []string) bool

	re *regexp.Regexp
}

// RuleChecker is an in-process Checker driven by a fixed rule list.
type RuleChecker struct {
	rules []Rule
}

var _ Checker = (*RuleChecker)(nil)

// NewRuleChecker compiles rules. It fails on the first invalid pattern.
func NewRuleChecker(rules []Rule) (*RuleChecker, error) {
	compiled := make([]Rule, len(rules))
	for i, rl := range rules {
		re, err := regexp.Compile(rl.Pattern)
		if err != nil {
			return nil, fmt.Errorf("grammar: rule %s: %w", rl.ID, err)
		}
		rl.re = re
		compiled[i] = rl
	}
	return &RuleChecker{rules: compiled}, nil
}

// Check returns the matches of every rule plus repeated-word matches,
// ordered by offset.
func (c *RuleChecker) Check(ctx context.Context, text string) ([]Match, error) {
	var out []Match
	for _, rl := range c.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, loc := range rl.re.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, len(loc)/2)
			for g := range groups {
				if loc[2*g] >= 0 {
					groups[g] = text[loc[2*g]:loc[2*g+1]]
				}
			}
			if rl.Skip != nil && rl.Skip(groups) {
				continue
			}
			m := Match{
				Offset:  loc[0],
				Length:  loc[1] - loc[0],
				Message: string(rl.re.ExpandString(nil, rl.Message, text, loc)),
				Rule:    rl.ID,
			}
			if rl.Replacement != "" {
				repl := string(rl.re.ExpandString(nil, rl.Replacement, text, loc))
				m.Replacements = []string{matchCase(groups[0], repl)}
			}
			out = append(out, m)
		}
	}
	out = append(out, repeatedWords(text)...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out, nil
}

// DefaultRules returns the built-in English rule set.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          "ALOT",
			Pattern:     `(?i)\b(alot)\b`,
			Message:     "Possible spelling mistake: 'alot' should be written as 'a lot'.",
			Replacement: "a lot",
		},
		{
			ID:          "MODAL_OF",
			Pattern:     `(?i)\b(could|should|would|must|might) of\b`,
			Message:     "Did you mean '${1} have'? '${1} of' is a common mistake.",
			Replacement: "${1} have",
		},
		{
			ID:          "IRREGARDLESS",
			Pattern:     `(?i)\b(irregardless)\b`,
			Message:     "'irregardless' is nonstandard; use 'regardless'.",
			Replacement: "regardless",
		},
		{
			ID:          "ALRIGHT",
			Pattern:     `(?i)\b(alright)\b`,
			Message:     "'alright' is informal; consider 'all right'.",
			Replacement: "all right",
		},
		{
			ID:          "THEIR_IS",
			Pattern:     `(?i)\b(their) (is|are|was|were)\b`,
			Message:     "Did you mean 'there ${2}'?",
			Replacement: "there ${2}",
		},
		{
			ID:          "A_VOWEL",
			Pattern:     `\b([Aa]) ([aeiouAEIOU][a-zA-Z]*)\b`,
			Message:     "Use 'an' instead of 'a' before a vowel sound: '${1} ${2}'.",
			Replacement: "an ${2}",
			Skip: func(g []string) bool {
				return consonantSound(strings.ToLower(g[2]))
			},
		},
		{
			ID:          "AN_CONSONANT",
			Pattern:     `\b([Aa]n) ([b-df-hj-np-tv-zB-DF-HJ-NP-TV-Z][a-zA-Z]*)\b`,
			Message:     "Use 'a' instead of 'an' before a consonant sound: '${1} ${2}'.",
			Replacement: "a ${2}",
			Skip: func(g []string) bool {
				return silentH(strings.ToLower(g[2])) || isAcronym(g[2])
			},
		},
	}
}

// vowel-initial words pronounced with a leading consonant sound
var consonantPrefixes = []string{"uni", "use", "usu", "uti", "eu", "one", "once", "ure", "ura", "ubi"}

func consonantSound(w string) bool {
	for _, p := range consonantPrefixes {
		if strings.HasPrefix(w, p) {
			return true
		}
	}
	return false
}

func silentH(w string) bool {
	for _, p := range []string{"hour", "honest", "honor", "honour", "heir", "herb"} {
		if strings.HasPrefix(w, p) {
			return true
		}
	}
	return false
}

func isAcronym(w string) bool {
	return len(w) > 1 && strings.ToUpper(w) == w
}

// repeatedWords flags a word immediately repeated, e.g. "the the". Go
// regexps have no backreferences, so this runs as a scan.
func repeatedWords(text string) []Match {
	var out []Match
	prevStart, prevEnd := -1, -1
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsLetter(r) {
			if !unicode.IsSpace(r) {
				prevStart = -1
			}
			i += size
			continue
		}
		start := i
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !unicode.IsLetter(r) && r != '\'' {
				break
			}
			i += size
		}
		word := text[start:i]
		if prevStart >= 0 && strings.EqualFold(word, text[prevStart:prevEnd]) && !allowedRepeat[strings.ToLower(word)] {
			out = append(out, Match{
				Offset:       prevStart,
				Length:       i - prevStart,
				Message:      fmt.Sprintf("Possible typo: you repeated a word: '%s'.", text[prevStart:i]),
				Replacements: []string{text[prevStart:prevEnd]},
				Rule:         "WORD_REPEAT",
			})
			prevStart = -1
			continue
		}
		prevStart, prevEnd = start, i
	}
	return out
}

var allowedRepeat = map[string]bool{"had": true, "that": true}

// matchCase capitalizes repl when the matched text starts with a capital.
func matchCase(matched, repl string) string {
	r, _ := utf8.DecodeRuneInString(matched)
	if !unicode.IsUpper(r) || repl == "" {
		return repl
	}
	first, size := utf8.DecodeRuneInString(repl)
	return string(unicode.ToUpper(first)) + repl[size:]
}
