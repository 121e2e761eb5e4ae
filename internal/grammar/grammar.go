package grammar

import (
	"context"
	"sort"
)

// Match is a single issue reported by a grammar checker. Offset and Length
// are byte positions in the checked text.
type Match struct {
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Message      string   `json:"message"`
	Replacements []string `json:"replacements,omitempty"`
	Rule         string   `json:"rule"`
}

// Text returns the span of src the match covers.
func (m Match) Text(src string) string {
	if m.Offset < 0 || m.Offset+m.Length > len(src) {
		return ""
	}
	return src[m.Offset : m.Offset+m.Length]
}

// Checker reports grammar issues in a text.
type Checker interface {
	Check(ctx context.Context, text string) ([]Match, error)
}

// Correct applies the first replacement of every match, skipping matches
// that overlap an earlier one or carry no replacement.
func Correct(text string, matches []Match) string {
	ordered := make([]Match, 0, len(matches))
	for _, m := range matches {
		if len(m.Replacements) > 0 && m.Offset >= 0 && m.Length > 0 && m.Offset+m.Length <= len(text) {
			ordered = append(ordered, m)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Offset < ordered[j].Offset })

	out := make([]byte, 0, len(text))
	pos := 0
	for _, m := range ordered {
		if m.Offset < pos {
			continue
		}
		out = append(out, text[pos:m.Offset]...)
		out = append(out, m.Replacements[0]...)
		pos = m.Offset + m.Length
	}
	out = append(out, text[pos:]...)
	return string(out)
}
