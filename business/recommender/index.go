package recommender

import (
	"math"
	"slices"
	"sort"
)

// Engine fits program catalogs and ranks programs for students. It holds
// only its configuration, so one Engine may be shared by concurrent callers.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.Normalize()}
}

func (e *Engine) Config() Config { return e.cfg }

// FittedIndex is an immutable TF-IDF space over one catalog snapshot. A nil
// index reads as empty.
type FittedIndex struct {
	vocabulary map[string]int
	idf        map[string]float64
	programs   []fittedProgram // sorted by ID
	byID       map[string]int
}

type fittedProgram struct {
	record  ProgramRecord
	vector  FeatureVector
	sources map[string]source
}

// Len returns the number of fitted programs.
func (idx *FittedIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.programs)
}

// Vocabulary returns the fitted terms in dimension order.
func (idx *FittedIndex) Vocabulary() []string {
	if idx == nil {
		return []string{}
	}
	out := make([]string, len(idx.vocabulary))
	for term, dim := range idx.vocabulary {
		out[dim] = term
	}
	return out
}

// Dimension returns the vector dimension assigned to term.
func (idx *FittedIndex) Dimension(term string) (int, bool) {
	if idx == nil {
		return 0, false
	}
	dim, ok := idx.vocabulary[term]
	return dim, ok
}

func (idx *FittedIndex) IDF(term string) (float64, bool) {
	if idx == nil {
		return 0, false
	}
	w, ok := idx.idf[term]
	return w, ok
}

// Vector returns the unit-length program vector for id.
func (idx *FittedIndex) Vector(id string) (FeatureVector, bool) {
	if idx == nil {
		return FeatureVector{}, false
	}
	i, ok := idx.byID[id]
	if !ok {
		return FeatureVector{}, false
	}
	return idx.programs[i].vector, true
}

// Fit builds a new index over programs. Tags and skills are weighted by
// CategoricalWeight against one unit per description word. A record without
// an id fails with *ValidationError, a repeated id with *ConflictError.
func (e *Engine) Fit(programs []ProgramRecord) (*FittedIndex, error) {
	seen := make(map[string]struct{}, len(programs))
	docs := make([]*document, len(programs))
	df := make(map[string]int)

	for i, p := range programs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID]; dup {
			return nil, &ConflictError{ID: p.ID}
		}
		seen[p.ID] = struct{}{}

		doc := e.programDocument(p)
		for term := range doc.tf {
			df[term]++
		}
		docs[i] = doc
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(programs))
	s := e.cfg.IDFSmoothing
	vocabulary := make(map[string]int, len(terms))
	idf := make(map[string]float64, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
		idf[term] = math.Log((s+n)/(s+float64(df[term]))) + 1
	}

	fitted := make([]fittedProgram, len(programs))
	for i, p := range programs {
		weights := make(map[string]float64, len(docs[i].tf))
		for term, tf := range docs[i].tf {
			weights[term] = tf * idf[term]
		}
		fitted[i] = fittedProgram{
			record:  cloneRecord(p),
			vector:  newFeatureVector(weights).Normalized(),
			sources: docs[i].sources,
		}
	}
	sort.Slice(fitted, func(i, j int) bool {
		return fitted[i].record.ID < fitted[j].record.ID
	})

	byID := make(map[string]int, len(fitted))
	for i, fp := range fitted {
		byID[fp.record.ID] = i
	}

	return &FittedIndex{
		vocabulary: vocabulary,
		idf:        idf,
		programs:   fitted,
		byID:       byID,
	}, nil
}

func (e *Engine) programDocument(p ProgramRecord) *document {
	doc := newDocument()
	doc.add(p.Description, 1, sourceDescription, e.cfg.StopWords)
	for _, tag := range p.Tags {
		doc.add(tag, e.cfg.CategoricalWeight, sourceTag, e.cfg.StopWords)
	}
	for _, skill := range p.Skills {
		doc.add(skill, e.cfg.CategoricalWeight, sourceSkill, e.cfg.StopWords)
	}
	return doc
}

func cloneRecord(p ProgramRecord) ProgramRecord {
	p.Tags = slices.Clone(p.Tags)
	p.Skills = slices.Clone(p.Skills)
	return p
}
