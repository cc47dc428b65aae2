package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsValid(t *testing.T) {
	for _, c := range AllCategories {
		assert.True(t, c.IsValid(), "category %s should be valid", c)
	}

	assert.False(t, Category("rent").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Delivery", CategoryFoodDelivery.Label())
	assert.Equal(t, "Combustível", CategoryFuel.Label())
	assert.Equal(t, "Outros", CategoryOthers.Label())
	// unknown categories fall back to their raw value
	assert.Equal(t, "weird", Category("weird").Label())
}

func TestOthersIsLast(t *testing.T) {
	assert.Equal(t, CategoryOthers, AllCategories[len(AllCategories)-1])
}

func TestNormalizationStatsKeepRate(t *testing.T) {
	ns := NormalizationStats{Total: 0}
	assert.Equal(t, 0.0, ns.KeepRate())

	ns = NormalizationStats{Total: 4, Kept: 3, Dropped: 1}
	assert.InDelta(t, 75.0, ns.KeepRate(), 0.001)
}
