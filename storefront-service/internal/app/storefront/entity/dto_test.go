package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSort(t *testing.T) {
	for _, s := range []ProductSort{SortRelevant, SortPriceAsc, SortPriceDesc, SortNewest, SortRating, SortPopular} {
		assert.True(t, ValidSort(s), string(s))
	}

	assert.False(t, ValidSort("price"))
	assert.False(t, ValidSort(""))
	assert.False(t, ValidSort("RELEVANT"))
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()

	assert.Empty(t, prefs.Categories)
	assert.Equal(t, PriceRange{Min: 0, Max: 1000}, prefs.PriceRange)
	assert.Empty(t, prefs.RecentlyViewed)
	assert.Empty(t, prefs.FavoriteProducts)
}
