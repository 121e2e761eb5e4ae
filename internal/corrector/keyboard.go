package corrector

import (
	"math"
	"unicode"
)

var keyboardRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var keyPos = func() map[rune][2]int {
	m := make(map[rune][2]int)
	for r, row := range keyboardRows {
		for c, ch := range row {
			m[ch] = [2]int{r, c}
		}
	}
	return m
}()

// phonetic confusions that are cheaper than their key distance suggests
var soundAlike = map[[2]rune]float64{
	{'c', 'k'}: 0.4, {'k', 'c'}: 0.4,
	{'c', 's'}: 0.5, {'s', 'c'}: 0.5,
	{'s', 'z'}: 0.4, {'z', 's'}: 0.4,
	{'i', 'y'}: 0.5, {'y', 'i'}: 0.5,
	{'a', 'e'}: 0.7, {'e', 'a'}: 0.7,
}

func keyDistance(a, b rune) float64 {
	pa, oka := keyPos[unicode.ToLower(a)]
	pb, okb := keyPos[unicode.ToLower(b)]
	if !oka || !okb {
		return 2.5
	}
	dr := float64(pa[0] - pb[0])
	dc := float64(pa[1] - pb[1])
	return math.Sqrt(dr*dr + dc*dc)
}

func (sc *SpellCorrector) substitutionCost(a, b rune) float64 {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	if v, ok := soundAlike[[2]rune{a, b}]; ok {
		return v
	}
	d := keyDistance(a, b)
	switch {
	case d <= 1.0:
		return sc.config.KeyboardNearSub
	case d <= 1.5:
		return 0.8
	case d <= 2.2:
		return 1.2
	}
	return 1.8
}

// isOneAdjacentSwap reports whether b is a with exactly one pair of
// neighbouring letters swapped.
func isOneAdjacentSwap(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) != len(rb) || len(ra) < 2 {
		return false
	}
	diff := -1
	for i := range ra {
		if ra[i] != rb[i] {
			diff = i
			break
		}
	}
	if diff == -1 || diff+1 >= len(ra) {
		return false
	}
	if ra[diff] != rb[diff+1] || ra[diff+1] != rb[diff] {
		return false
	}
	for j := diff + 2; j < len(ra); j++ {
		if ra[j] != rb[j] {
			return false
		}
	}
	return true
}
