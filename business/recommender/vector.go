package recommender

import (
	"math"
	"sort"
)

// Term is a single term-weight pair in a sparse vector.
type Term struct {
	Word   string
	Weight float64
}

// FeatureVector is a sparse non-negative vector kept sorted by Word, with its
// L2 norm cached. Sorted order keeps every sum over it deterministic.
type FeatureVector struct {
	Terms []Term
	Norm  float64
}

// newFeatureVector builds a sorted vector from a term-weight map, dropping
// non-positive weights.
func newFeatureVector(weights map[string]float64) FeatureVector {
	terms := make([]Term, 0, len(weights))
	for word, w := range weights {
		if w > 0 {
			terms = append(terms, Term{Word: word, Weight: w})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Word < terms[j].Word
	})

	sum := 0.0
	for _, t := range terms {
		sum += t.Weight * t.Weight
	}
	return FeatureVector{Terms: terms, Norm: math.Sqrt(sum)}
}

// Normalized returns a unit-length copy. The zero vector stays zero.
func (v FeatureVector) Normalized() FeatureVector {
	if v.Norm == 0 {
		return FeatureVector{}
	}
	terms := make([]Term, len(v.Terms))
	for i, t := range v.Terms {
		terms[i] = Term{Word: t.Word, Weight: t.Weight / v.Norm}
	}
	return FeatureVector{Terms: terms, Norm: 1}
}

func (v FeatureVector) IsZero() bool { return len(v.Terms) == 0 }

// Weight returns the weight of word, or 0 when absent.
func (v FeatureVector) Weight(word string) float64 {
	i := sort.Search(len(v.Terms), func(i int) bool { return v.Terms[i].Word >= word })
	if i < len(v.Terms) && v.Terms[i].Word == word {
		return v.Terms[i].Weight
	}
	return 0
}

// dot computes the dot product of two sorted vectors with a merge-join.
func dot(a, b FeatureVector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a.Terms) && j < len(b.Terms) {
		switch {
		case a.Terms[i].Word == b.Terms[j].Word:
			sum += a.Terms[i].Weight * b.Terms[j].Weight
			i++
			j++
		case a.Terms[i].Word < b.Terms[j].Word:
			i++
		default:
			j++
		}
	}
	return sum
}

// cosine returns the cosine similarity of two vectors using their cached
// norms, clamped to [0, 1].
func cosine(a, b FeatureVector) float64 {
	if a.Norm == 0 || b.Norm == 0 {
		return 0
	}
	return clampUnit(dot(a, b) / (a.Norm * b.Norm))
}

func clampUnit(x float64) float64 {
	switch {
	case x < 0 || math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

type contribution struct {
	word   string
	weight float64
}

// sharedTerms returns the terms present in both vectors ordered by the
// product of their weights, largest first, ties by word. At most limit terms
// are returned.
func sharedTerms(a, b FeatureVector, limit int) []contribution {
	var out []contribution
	i, j := 0, 0
	for i < len(a.Terms) && j < len(b.Terms) {
		switch {
		case a.Terms[i].Word == b.Terms[j].Word:
			out = append(out, contribution{
				word:   a.Terms[i].Word,
				weight: a.Terms[i].Weight * b.Terms[j].Weight,
			})
			i++
			j++
		case a.Terms[i].Word < b.Terms[j].Word:
			i++
		default:
			j++
		}
	}
	sort.SliceStable(out, func(x, y int) bool {
		if out[x].weight != out[y].weight {
			return out[x].weight > out[y].weight
		}
		return out[x].word < out[y].word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
