// Package rewrite applies suggestion edits to text with whole-word literal
// matching.
package rewrite

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"improver/internal/suggestion"
)

// Apply applies edits in order, each to the text produced by the previous
// one.
func Apply(text string, edits []suggestion.Edit) string {
	for _, e := range edits {
		text = Replace(text, e.Old, e.New)
	}
	return text
}

// Replace substitutes every whole-word occurrence of old with repl. old is
// literal text. A word boundary is required on each side of old that starts
// or ends with a word character. Occurrences lying inside an existing
// occurrence of repl are left alone, so applying an edit twice changes
// nothing the second time.
func Replace(text, old, repl string) string {
	if old == "" || old == repl || !strings.Contains(text, old) {
		return text
	}
	var protected [][2]int
	if strings.Contains(repl, old) {
		protected = occurrences(text, repl)
	}

	needLeft := isWordRune(firstRune(old))
	needRight := isWordRune(lastRune(old))

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for pos := 0; pos <= len(text)-len(old); {
		i := strings.Index(text[pos:], old)
		if i < 0 {
			break
		}
		start, end := pos+i, pos+i+len(old)
		if (needLeft && isWordRune(lastRune(text[:start]))) ||
			(needRight && isWordRune(firstRune(text[end:]))) ||
			inside(protected, start, end) {
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(repl)
		last, pos = end, end
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

func occurrences(text, s string) [][2]int {
	var out [][2]int
	for pos := 0; ; {
		i := strings.Index(text[pos:], s)
		if i < 0 {
			return out
		}
		out = append(out, [2]int{pos + i, pos + i + len(s)})
		_, size := utf8.DecodeRuneInString(text[pos+i:])
		pos += i + size
	}
}

func inside(spans [][2]int, start, end int) bool {
	for _, sp := range spans {
		if sp[0] <= start && end <= sp[1] {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return utf8.RuneError
	}
	return r
}

func lastRune(s string) rune {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return utf8.RuneError
	}
	return r
}
