package data

import "math"

// Vector is a sparse count vector keyed by bucket name, like a day-of-week or
// time-of-day play distribution.
type Vector map[string]float64

func (this Vector) Add(key string, n float64) {
	this[key] += n
}

// Cosine returns the cosine similarity between the two vectors, in [0, 1]
// for non-negative counts. Either vector being all-zero yields 0.
func (this Vector) Cosine(other Vector) float64 {
	var dot float64
	for k, v := range this {
		dot += v * other[k]
	}
	m1, m2 := this.magnitude(), other.magnitude()
	if m1 == 0 || m2 == 0 {
		return 0
	}
	return dot / (m1 * m2)
}

// Top returns the key with the largest value, breaking ties by taking the
// lexicographically smallest key so callers get a stable answer. Returns ""
// for an empty or all-zero vector.
func (this Vector) Top() string {
	var top string
	var max float64
	for k, v := range this {
		if v > max || (v == max && v > 0 && k < top) {
			top, max = k, v
		}
	}
	return top
}

func (this Vector) magnitude() float64 {
	var sum float64
	for _, v := range this {
		sum += v * v
	}
	return math.Sqrt(sum)
}
