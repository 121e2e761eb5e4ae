package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// abbreviations that the sentence model may mistake for a sentence end.
var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "prof.": true,
	"sr.": true, "jr.": true, "st.": true, "vs.": true, "e.g.": true,
	"i.e.": true, "fig.": true, "approx.": true, "dept.": true, "gen.": true,
	"gov.": true, "sen.": true, "rep.": true, "mt.": true, "capt.": true,
}

// orgSuffixes close a capitalized span that names an organization.
var orgSuffixes = map[string]bool{
	"inc": true, "corp": true, "corporation": true, "ltd": true, "llc": true,
	"plc": true, "gmbh": true, "company": true, "co": true, "group": true,
	"university": true, "institute": true, "bank": true, "foundation": true,
	"agency": true, "association": true,
}

// Segmenter splits text into sentences, tagged tokens and entities.
// It is safe for concurrent use.
type Segmenter struct {
	model *prose.Model
}

// NewSegmenter loads the tagging and entity models once; every Segment call
// reuses them.
func NewSegmenter() *Segmenter {
	sg := &Segmenter{}
	if d, err := prose.NewDocument("Warm up.", prose.WithSegmentation(false)); err == nil {
		sg.model = d.Model
	}
	return sg
}

type span struct {
	start, end int
}

// Segment runs sentence segmentation, POS tagging and entity extraction over
// text.
func (sg *Segmenter) Segment(text string) (Document, error) {
	doc := Document{Text: text}
	if strings.TrimSpace(text) == "" {
		return doc, nil
	}

	var opts []prose.DocOpt
	if sg.model != nil {
		opts = append(opts, prose.UsingModel(sg.model))
	}
	pd, err := prose.NewDocument(text, opts...)
	if err != nil {
		return doc, fmt.Errorf("nlp: segment: %w", err)
	}

	var raw []string
	for _, s := range pd.Sentences() {
		raw = append(raw, s.Text)
	}
	spans := mergeAbbreviations(text, locate(text, raw))
	if len(spans) == 0 {
		spans = []span{{0, len(text)}}
	}

	sentences := make([]Sentence, len(spans))
	for i, sp := range spans {
		sentences[i].Text = strings.TrimSpace(text[sp.start:sp.end])
	}

	cursor, current := 0, 0
	for _, pt := range pd.Tokens() {
		pos := cursor
		if idx := strings.Index(text[cursor:], pt.Text); idx >= 0 {
			pos = cursor + idx
			cursor = pos + len(pt.Text)
		}
		for current+1 < len(spans) && pos >= spans[current+1].start {
			current++
		}
		s := &sentences[current]
		s.Tokens = append(s.Tokens, Token{
			Text:  pt.Text,
			Lower: strings.ToLower(pt.Text),
			Tag:   pt.Tag,
			Label: entityLabel(pt.Label),
			Index: len(s.Tokens),
		})
	}

	seen := make(map[Entity]bool)
	for _, e := range pd.Entities() {
		ent := Entity{Text: e.Text, Label: e.Label}
		if !seen[ent] {
			seen[ent] = true
			doc.Entities = append(doc.Entities, ent)
		}
	}
	for i := range sentences {
		markPassive(sentences[i].Tokens)
		for _, ent := range organizations(sentences[i].Tokens) {
			if !seen[ent] {
				seen[ent] = true
				doc.Entities = append(doc.Entities, ent)
			}
		}
	}

	for _, s := range sentences {
		if s.Text != "" {
			doc.Sentences = append(doc.Sentences, s)
		}
	}
	return doc, nil
}

// locate finds the byte span of every sentence in text, scanning forward.
// Sentences the model normalized beyond recognition keep the cursor span.
func locate(text string, sentences []string) []span {
	var spans []span
	cursor := 0
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		idx := strings.Index(text[cursor:], s)
		if idx < 0 {
			end := min(len(text), cursor+len(s))
			spans = append(spans, span{cursor, end})
			cursor = end
			continue
		}
		spans = append(spans, span{cursor + idx, cursor + idx + len(s)})
		cursor += idx + len(s)
	}
	if len(spans) > 0 {
		spans[len(spans)-1].end = len(text)
	}
	return spans
}

// mergeAbbreviations joins a sentence into its successor when it ends in a
// known abbreviation.
func mergeAbbreviations(text string, spans []span) []span {
	if len(spans) < 2 {
		return spans
	}
	out := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		fields := strings.Fields(text[last.start:last.end])
		if len(fields) > 0 && abbreviations[strings.ToLower(fields[len(fields)-1])] {
			last.end = sp.end
			continue
		}
		out = append(out, sp)
	}
	return out
}

func entityLabel(iob string) string {
	if iob == "" || iob == "O" {
		return ""
	}
	if i := strings.IndexByte(iob, '-'); i >= 0 {
		return iob[i+1:]
	}
	return iob
}

var beForms = map[string]bool{
	"am": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "'s": true, "'re": true,
	"get": true, "gets": true, "got": true, "gotten": true, "getting": true,
}

// markPassive tags passive auxiliaries and their subjects. A form of "be" or
// "get" followed by a past participle, with only adverbs in between, is the
// auxiliary; the closest noun or pronoun before it is the subject.
func markPassive(tokens []Token) {
	for i := range tokens {
		if !beForms[tokens[i].Lower] {
			continue
		}
		j := i + 1
		for j < len(tokens) && (strings.HasPrefix(tokens[j].Tag, "RB") || tokens[j].Lower == "not" || tokens[j].Lower == "n't") {
			j++
		}
		if j >= len(tokens) || !isParticiple(tokens[j]) {
			continue
		}
		tokens[i].Role = RoleAuxPass
		for k := i - 1; k >= 0; k-- {
			if isNominal(tokens[k].Tag) {
				if tokens[k].Role == RoleNone {
					tokens[k].Role = RoleSubjPass
				}
				break
			}
		}
	}
}

func isParticiple(t Token) bool {
	if t.Tag == "VBN" {
		return true
	}
	// the tagger sometimes labels a participle after "was" as simple past
	return t.Tag == "VBD" && strings.HasSuffix(t.Lower, "ed")
}

func isNominal(tag string) bool {
	return strings.HasPrefix(tag, "NN") || tag == "PRP"
}

// organizations finds capitalized token runs closed by an organization
// suffix, e.g. "Acme Widgets Inc".
func organizations(tokens []Token) []Entity {
	var out []Entity
	start := -1
	for i, t := range tokens {
		if !isCapitalized(t.Text) {
			start = -1
			continue
		}
		if start < 0 {
			start = i
		}
		if orgSuffixes[strings.TrimSuffix(t.Lower, ".")] && i > start {
			words := make([]string, 0, i-start+1)
			for _, w := range tokens[start : i+1] {
				words = append(words, w.Text)
			}
			out = append(out, Entity{Text: strings.Join(words, " "), Label: "ORG"})
			start = -1
		}
	}
	return out
}

func isCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
