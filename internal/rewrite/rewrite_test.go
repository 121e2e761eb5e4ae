package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"improver/internal/suggestion"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name           string
		text, old, new string
		want           string
	}{
		{"whole word", "This is cool.", "cool", "good", "This is good."},
		{"inside longer word", "Check the coolant level.", "cool", "good", "Check the coolant level."},
		{"mixed", "cool coolant cool", "cool", "fine", "fine coolant fine"},
		{"absent", "Nothing to see.", "alot", "a lot", "Nothing to see."},
		{"same", "keep it", "keep", "keep", "keep it"},
		{"empty old", "text", "", "x", "text"},
		{"phrase", "We met in order to plan.", "in order to", "to", "We met to plan."},
		{"special characters", "Use (a+b)* here and (a+b)*.", "(a+b)*", "$1", "Use $1 here and $1."},
		{"punctuation edge", "See e.g. this.", "e.g.", "for example", "See for example this."},
		{"case sensitive", "Alot of alot", "alot", "a lot", "Alot of a lot"},
		{"unicode neighbours", "écafe cafe", "cafe", "coffee", "écafe coffee"},
		{"underscore is a word rune", "snake_cool cool", "cool", "hot", "snake_cool hot"},
		{"replacement contains old", "use it and make use of it", "use", "make use", "make use it and make use of it"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Replace(tt.text, tt.old, tt.new))
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	edits := []suggestion.Edit{{Old: "alot", New: "a lot"}, {Old: "use", New: "make use"}}
	once := Apply("I use alot of tools.", edits)
	assert.Equal(t, "I make use a lot of tools.", once)
	assert.Equal(t, once, Apply(once, edits))
}

func TestApplyOrderSensitive(t *testing.T) {
	text := "A then B"
	ab := suggestion.Edit{Old: "A", New: "B"}
	bc := suggestion.Edit{Old: "B", New: "C"}

	assert.Equal(t, "C then C", Apply(text, []suggestion.Edit{ab, bc}))
	assert.Equal(t, "B then C", Apply(text, []suggestion.Edit{bc, ab}))
}

func TestApplyEmpty(t *testing.T) {
	assert.Equal(t, "unchanged", Apply("unchanged", nil))
}
