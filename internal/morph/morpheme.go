package morph

import (
	"context"
	"unicode/utf8"
)

// Morpheme is one lexical unit returned by the analyzer, decoded and
// categorized.
type Morpheme struct {
	Text     string   `json:"text"`
	Tags     Tags     `json:"tags"`
	Category Category `json:"category"`

	Lemma          string `json:"lemma,omitempty"`
	Reading        string `json:"reading,omitempty"`
	PartOfSpeech   string `json:"part_of_speech,omitempty"`
	InflectionType string `json:"inflection_type,omitempty"`
	InflectionForm string `json:"inflection_form,omitempty"`
}

// NewMorpheme decodes a tag tuple. When text is empty the surface is taken
// from the schema's surface field. The category is resolved locally.
func NewMorpheme(text string, tags Tags) Morpheme {
	m := Morpheme{Text: text, Tags: tags}

	s := SchemaFor(tags)
	if s == nil {
		return m
	}

	if m.Text == "" {
		m.Text = s.field(tags, s.SurfaceField)
	}
	m.Lemma = s.field(tags, s.LemmaField)
	m.Reading = s.field(tags, s.ReadingField)
	m.PartOfSpeech = s.PartOfSpeech(tags)
	m.InflectionType = s.field(tags, s.CTypeField)
	m.InflectionForm = s.field(tags, s.CFormField)
	m.Category = s.Categorize(tags)

	return m
}

// CharCount returns the number of Unicode scalar values in the surface text.
func (m Morpheme) CharCount() int {
	return utf8.RuneCountInString(m.Text)
}

// CharCount sums the character counts of morphemes.
func CharCount(morphemes []Morpheme) int {
	n := 0
	for _, m := range morphemes {
		n += m.CharCount()
	}
	return n
}

// Analyzer splits a sentence into morphemes.
type Analyzer interface {
	Analyze(ctx context.Context, sentence string) ([]Morpheme, error)
}
