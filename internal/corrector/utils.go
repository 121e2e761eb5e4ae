package corrector

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

var tokenRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\d+|\s+|[^\s\p{L}\d]`)

var wordRe = regexp.MustCompile(`^[A-Za-z]+$`)

func tokenize(text string) []string { return tokenRe.FindAllString(text, -1) }

// isWord reports whether tok is a plain ASCII letter run. Contractions and
// accented words are tokens but never candidates for correction, since
// edits1 only knows the ASCII alphabet.
func isWord(tok string) bool { return wordRe.MatchString(tok) }

func isTitle(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(r) {
		return false
	}
	return strings.ToLower(s[size:]) == s[size:]
}

func isUpper(s string) bool { return strings.ToUpper(s) == s }

func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// edits1 returns every string one deletion, transposition, substitution or
// insertion away from word.
func edits1(word string) []string {
	out := make([]string, 0, 54*len(word)+25)
	for i := 0; i <= len(word); i++ {
		l, r := word[:i], word[i:]
		if len(r) > 0 {
			out = append(out, l+r[1:])
		}
		if len(r) > 1 {
			out = append(out, l+string(r[1])+string(r[0])+r[2:])
		}
		for _, c := range alphabet {
			if len(r) > 0 && byte(c) != r[0] {
				out = append(out, l+string(c)+r[1:])
			}
			out = append(out, l+string(c)+r)
		}
	}
	return out
}

func unitDL(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				x = min(x, prev2[j-2]+1)
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}
