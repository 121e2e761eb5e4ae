package nlp

import "strings"

// Role is the grammatical dependency role of a token, limited to the
// markers the passive-voice check needs.
type Role int

const (
	RoleNone Role = iota
	// RoleAuxPass marks the auxiliary of a passive construction ("was" in
	// "was thrown").
	RoleAuxPass
	// RoleSubjPass marks the subject of a passive construction.
	RoleSubjPass
)

func (r Role) String() string {
	switch r {
	case RoleAuxPass:
		return "auxpass"
	case RoleSubjPass:
		return "nsubjpass"
	}
	return ""
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// The unmodified word
	Text string `json:"text"`

	// Lowercased Text, used for every lexicon lookup
	Lower string `json:"lower"`

	// Penn Treebank tag
	Tag string `json:"tag"`

	Role Role `json:"dep"`

	// Entity label without IOB prefix, empty outside entities
	Label string `json:"label,omitempty"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Sentence is an ordered sequence of tokens plus the sentence surface text.
type Sentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// WordCount returns the number of whitespace separated words.
func (s Sentence) WordCount() int {
	return len(strings.Fields(s.Text))
}

// IsPassive reports whether any token carries a passive marker.
func (s Sentence) IsPassive() bool {
	for _, t := range s.Tokens {
		if t.Role == RoleAuxPass || t.Role == RoleSubjPass {
			return true
		}
	}
	return false
}

// Entity is a named entity span with its category label (PERSON, ORG, ...).
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Document is the segmented form of a text.
type Document struct {
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences"`
	Entities  []Entity   `json:"entities"`
}

// Tokens returns the tokens of all sentences in order.
func (d Document) Tokens() []Token {
	var n int
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	out := make([]Token, 0, n)
	for _, s := range d.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}
