package data_test

import (
	"testing"

	"github.com/avelis/earshot/data"
	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	a := data.Vector{"Monday": 1, "Tuesday": 2}
	b := data.Vector{"Monday": 2, "Tuesday": 4}
	assert.InDelta(t, 1.0, a.Cosine(b), 1e-9)

	orthogonal := data.Vector{"Wednesday": 3}
	assert.Equal(t, 0.0, a.Cosine(orthogonal))
}

func TestCosineZeroVector(t *testing.T) {
	a := data.Vector{"Monday": 1}
	assert.Equal(t, 0.0, a.Cosine(data.Vector{}))
	assert.Equal(t, 0.0, data.Vector{}.Cosine(a))
	assert.Equal(t, 0.0, a.Cosine(data.Vector{"Monday": 0}))
}

func TestTop(t *testing.T) {
	v := data.Vector{"morning": 2, "night": 5, "evening": 1}
	assert.Equal(t, "night", v.Top())
}

func TestTopTie(t *testing.T) {
	v := data.Vector{"night": 2, "morning": 2}
	assert.Equal(t, "morning", v.Top())
}

func TestTopEmpty(t *testing.T) {
	assert.Equal(t, "", data.Vector{}.Top())
	assert.Equal(t, "", data.Vector{"morning": 0}.Top())
}
