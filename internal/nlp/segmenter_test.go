package nlp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(pairs ...string) []Token {
	var out []Token
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Token{Text: pairs[i], Lower: strings.ToLower(pairs[i]), Tag: pairs[i+1], Index: len(out)})
	}
	return out
}

func TestMarkPassive(t *testing.T) {
	tks := tokens("The", "DT", "ball", "NN", "was", "VBD", "quickly", "RB", "thrown", "VBN", "by", "IN", "John", "NNP", ".", ".")
	markPassive(tks)

	assert.Equal(t, RoleSubjPass, tks[1].Role)
	assert.Equal(t, RoleAuxPass, tks[2].Role)
	assert.Equal(t, RoleNone, tks[4].Role)
	assert.True(t, Sentence{Tokens: tks}.IsPassive())
}

func TestMarkPassiveActive(t *testing.T) {
	tks := tokens("John", "NNP", "threw", "VBD", "the", "DT", "ball", "NN", ".", ".")
	markPassive(tks)
	assert.False(t, Sentence{Tokens: tks}.IsPassive())

	tks = tokens("She", "PRP", "was", "VBD", "happy", "JJ", ".", ".")
	markPassive(tks)
	assert.False(t, Sentence{Tokens: tks}.IsPassive())
}

func TestMarkPassiveMistaggedParticiple(t *testing.T) {
	tks := tokens("The", "DT", "report", "NN", "was", "VBD", "finished", "VBD")
	markPassive(tks)
	assert.Equal(t, RoleAuxPass, tks[2].Role)
	assert.Equal(t, RoleSubjPass, tks[1].Role)
}

func TestOrganizations(t *testing.T) {
	tks := tokens("She", "PRP", "joined", "VBD", "Acme", "NNP", "Widgets", "NNP", "Inc", "NNP", "last", "JJ", "year", "NN")
	ents := organizations(tks)
	require.Len(t, ents, 1)
	assert.Equal(t, Entity{Text: "Acme Widgets Inc", Label: "ORG"}, ents[0])

	// a lone suffix is not an organization
	assert.Empty(t, organizations(tokens("Group", "NNP", "work", "NN")))
}

func TestMergeAbbreviations(t *testing.T) {
	text := "Dr. Smith arrived. He sat down."
	spans := []span{{0, 3}, {4, 18}, {19, len(text)}}
	merged := mergeAbbreviations(text, spans)
	require.Len(t, merged, 2)
	assert.Equal(t, "Dr. Smith arrived.", text[merged[0].start:merged[0].end])
}

func TestLocate(t *testing.T) {
	text := "One two.  Three four. Five."
	spans := locate(text, []string{"One two.", "Three four.", "Five."})
	require.Len(t, spans, 3)
	assert.Equal(t, "Three four.", text[spans[1].start:spans[1].end])
	assert.Equal(t, len(text), spans[2].end)
}

func TestEntityLabel(t *testing.T) {
	assert.Equal(t, "PERSON", entityLabel("B-PERSON"))
	assert.Equal(t, "GPE", entityLabel("I-GPE"))
	assert.Equal(t, "", entityLabel("O"))
	assert.Equal(t, "", entityLabel(""))
}

func TestSegmentEmpty(t *testing.T) {
	doc, err := NewSegmenter().Segment("   \n ")
	require.NoError(t, err)
	assert.Empty(t, doc.Sentences)
	assert.Empty(t, doc.Entities)
}

func TestSegmentPassiveSentence(t *testing.T) {
	doc, err := NewSegmenter().Segment("The ball was thrown by John.")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)

	s := doc.Sentences[0]
	assert.Equal(t, "The ball was thrown by John.", s.Text)
	assert.Equal(t, 6, s.WordCount())
	assert.True(t, s.IsPassive())
}

func TestSegmentSentencesAndOrg(t *testing.T) {
	doc, err := NewSegmenter().Segment("Dr. Smith works at Acme Widgets Inc in Boston. He likes the job.")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, "He likes the job.", doc.Sentences[1].Text)
	assert.Contains(t, doc.Entities, Entity{Text: "Acme Widgets Inc", Label: "ORG"})

	var n int
	for _, s := range doc.Sentences {
		n += len(s.Tokens)
	}
	assert.Equal(t, n, len(doc.Tokens()))
}

func TestSegmenterReusesModel(t *testing.T) {
	sg := NewSegmenter()
	require.NotNil(t, sg.model)

	text := "The report was written by the team. It was reviewed at IBM Corp on Monday."
	first, err := sg.Segment(text)
	require.NoError(t, err)

	start := time.Now()
	second, err := sg.Segment(text)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond)

	assert.Equal(t, first, second)
	assert.Contains(t, second.Entities, Entity{Text: "IBM Corp", Label: "ORG"})
}
