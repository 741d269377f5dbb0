package recommender

import (
	"strings"
	"unicode"
)

// source records where a term came from so explanations can tell a matched
// skill from a matched interest.
type source uint8

const (
	sourceDescription source = 1 << iota
	sourceTag
	sourceSkill
	sourceInterest
	sourceStrength
)

func (s source) has(flag source) bool { return s&flag != 0 }

// tokenize lower-cases text, splits on every non letter/digit rune and drops
// stop words.
func tokenize(text string, stopWords map[string]struct{}) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// document accumulates weighted term frequencies for one program or student.
type document struct {
	tf      map[string]float64
	sources map[string]source
}

func newDocument() *document {
	return &document{
		tf:      make(map[string]float64),
		sources: make(map[string]source),
	}
}

func (d *document) add(text string, weight float64, src source, stopWords map[string]struct{}) {
	for _, tok := range tokenize(text, stopWords) {
		d.tf[tok] += weight
		d.sources[tok] |= src
	}
}
