package classify_test

import (
	"testing"

	"github.com/pocketledger/backend/internal/classify"
	"github.com/pocketledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func taxonomy() []models.Category {
	return []models.Category{
		{Name: "Groceries", Keywords: models.Keywords{"aldi", "rewe", "*market*"}, Active: true},
		{Name: "Transport", Keywords: models.Keywords{"uber", "bvg"}, Active: true},
		{Name: "Old Stuff", Keywords: models.Keywords{"uber"}, Active: false},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		merchant    string
		description string
		category    string
		matched     bool
	}{
		{"substring match on merchant", "ALDI Nord", "", "Groceries", true},
		{"substring match on description", "", "paid at rewe yesterday", "Groceries", true},
		{"glob pattern", "Tom's Supermarket", "", "Groceries", true},
		{"case insensitive", "UBER *TRIP", "", "Transport", true},
		{"no match", "Some Shop", "weird purchase", "", false},
		{"empty input", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, matched := classify.Classify(taxonomy(), tt.merchant, tt.description)

			assert.Equal(t, tt.matched, matched)
			assert.Equal(t, tt.category, category)
		})
	}
}

// First matching category wins, so classification is deterministic for a
// sorted taxonomy.
func TestClassifyFirstMatchWins(t *testing.T) {
	categories := []models.Category{
		{Name: "Eating Out", Keywords: models.Keywords{"pizza"}, Active: true},
		{Name: "Groceries", Keywords: models.Keywords{"pizza"}, Active: true},
	}

	category, matched := classify.Classify(categories, "Pizza Palace", "")
	assert.True(t, matched)
	assert.Equal(t, "Eating Out", category)
}

func TestClassifySkipsInactive(t *testing.T) {
	categories := []models.Category{
		{Name: "Old Stuff", Keywords: models.Keywords{"pizza"}, Active: false},
	}

	_, matched := classify.Classify(categories, "Pizza Palace", "")
	assert.False(t, matched)
}

func TestClassifyIgnoresEmptyKeywords(t *testing.T) {
	categories := []models.Category{
		{Name: "Broken", Keywords: models.Keywords{""}, Active: true},
	}

	_, matched := classify.Classify(categories, "anything", "anything")
	assert.False(t, matched)
}
