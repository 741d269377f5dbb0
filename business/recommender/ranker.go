package recommender

import (
	"maps"
	"slices"
	"sort"
)

type queryVector struct {
	vector  FeatureVector
	sources map[string]source
}

// Recommend scores every fitted program against student and returns at most
// topK results ordered by score, then program id. A student sharing no terms
// with the catalog gets zero scores, not an error.
func (e *Engine) Recommend(idx *FittedIndex, student StudentProfile, topK int) ([]RankedResult, error) {
	if idx == nil {
		return nil, &InvalidArgumentError{Argument: "index", Message: "must not be nil"}
	}
	if topK < 1 {
		return nil, &InvalidArgumentError{Argument: "top_k", Message: "must be at least 1"}
	}
	if err := student.Validate(); err != nil {
		return nil, err
	}
	if idx.Len() == 0 {
		return []RankedResult{}, nil
	}

	query := e.projectStudent(idx, student)

	type scored struct {
		pos   int
		score float64
	}
	scores := make([]scored, len(idx.programs))
	for i, fp := range idx.programs {
		scores[i] = scored{pos: i, score: cosine(query.vector, fp.vector)}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return idx.programs[scores[i].pos].record.ID < idx.programs[scores[j].pos].record.ID
	})

	if topK > len(scores) {
		topK = len(scores)
	}

	out := make([]RankedResult, 0, topK)
	for _, sc := range scores[:topK] {
		fp := idx.programs[sc.pos]
		shared := sharedTerms(query.vector, fp.vector, e.cfg.ExplanationTerms)

		matches := make([]string, len(shared))
		for i, c := range shared {
			matches[i] = c.word
		}

		out = append(out, RankedResult{
			Program:     cloneRecord(fp.record),
			Score:       sc.score,
			Matches:     matches,
			Explanation: explain(shared, query.sources, fp.sources),
		})
	}

	return out, nil
}

// projectStudent maps a student into the index space. Interests are weighted
// like tags, strong subjects by StrengthWeight, and terms outside the fitted
// vocabulary are dropped.
func (e *Engine) projectStudent(idx *FittedIndex, student StudentProfile) queryVector {
	doc := newDocument()
	for _, interest := range student.Interests {
		doc.add(interest, e.cfg.CategoricalWeight, sourceInterest, e.cfg.StopWords)
	}
	for _, subject := range slices.Sorted(maps.Keys(student.Grades)) {
		if student.Grades[subject] > e.cfg.GradeThreshold {
			doc.add(subject, e.cfg.StrengthWeight, sourceStrength, e.cfg.StopWords)
		}
	}

	weights := make(map[string]float64, len(doc.tf))
	for term, tf := range doc.tf {
		if w, ok := idx.idf[term]; ok {
			weights[term] = tf * w
		}
	}

	return queryVector{
		vector:  newFeatureVector(weights).Normalized(),
		sources: doc.sources,
	}
}
