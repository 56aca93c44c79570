package domain

import (
	"math"
	"sort"
)

// Vocabulary maps surface terms (unigrams and bigrams) to feature indices.
// It is built once per document and shared by every vector of that document.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary creates a vocabulary whose feature index is the position in terms.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{
		terms: make([]string, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	copy(v.terms, terms)
	for i, t := range v.terms {
		v.index[t] = i
	}
	return v
}

// Len returns the vocabulary size, which is also every vector's dimensionality.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Term returns the surface string for a feature index.
func (v *Vocabulary) Term(i int) string {
	return v.terms[i]
}

// Index returns the feature index for a term.
func (v *Vocabulary) Index(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[term]
	return i, ok
}

// Terms returns a copy of the ordered term list.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// SparseVector is a non-negative sparse feature vector.
// Indices are strictly ascending; Values[i] belongs to Indices[i].
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NewSparseVector builds a vector from an index->weight map, dropping zeros.
func NewSparseVector(dim int, weights map[int]float64) SparseVector {
	idx := make([]int, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = weights[i]
	}
	return SparseVector{Dim: dim, Indices: idx, Values: vals}
}

// NNZ returns the number of stored non-zero entries.
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (v SparseVector) IsZero() bool {
	return len(v.Indices) == 0
}

// Get returns the weight at feature index i.
func (v SparseVector) Get(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Dense expands the vector to a full slice of length Dim.
func (v SparseVector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Norm returns the Euclidean norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	a, b := 0, 0
	for a < len(v.Indices) && b < len(o.Indices) {
		switch {
		case v.Indices[a] == o.Indices[b]:
			sum += v.Values[a] * o.Values[b]
			a++
			b++
		case v.Indices[a] < o.Indices[b]:
			a++
		default:
			b++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of two vectors.
// A zero vector has similarity 0 with everything.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := a.Dot(b) / (na * nb)
	if sim > 1 {
		sim = 1
	}
	return sim
}

// TopIndices returns up to n feature indices ordered by descending weight.
// Ties are broken by ascending feature index. Zero weights are never returned.
func (v SparseVector) TopIndices(n int) []int {
	if n <= 0 || len(v.Indices) == 0 {
		return nil
	}
	order := make([]int, len(v.Indices))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(x, y int) bool {
		return v.Values[order[x]] > v.Values[order[y]]
	})
	if n > len(order) {
		n = len(order)
	}
	out := make([]int, n)
	for k := 0; k < n; k++ {
		out[k] = v.Indices[order[k]]
	}
	return out
}
