package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Lookups(t *testing.T) {
	p := Product{
		ID:     "1",
		Tags:   []string{"silk", "elegant"},
		Colors: []Color{{Name: "Black"}, {Name: "Navy"}},
		Sizes:  []Size{{Name: "S"}, {Name: "M"}},
	}

	assert.True(t, p.HasTag("elegant"))
	assert.False(t, p.HasTag("Elegant"), "tags match exactly")
	assert.True(t, p.HasColor("Navy"))
	assert.False(t, p.HasColor("Red"))
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XL"))
}

func TestProduct_RatingValue(t *testing.T) {
	assert.Equal(t, 0.0, (&Product{}).RatingValue())
	assert.Equal(t, 4.5, (&Product{Rating: Float(4.5)}).RatingValue())
}

func TestFindProduct(t *testing.T) {
	catalog := []Product{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}

	p, ok := FindProduct(catalog, "2")
	assert.True(t, ok)
	assert.Equal(t, "B", p.Name)

	_, ok = FindProduct(catalog, "9")
	assert.False(t, ok)
}
