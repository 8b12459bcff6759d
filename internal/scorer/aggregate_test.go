package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ats-engine-go/internal/types"
)

func TestAggregateWeighted(t *testing.T) {
	factors := types.FactorScores{
		Keyword:  80,
		Semantic: 60,
		Format:   70,
		Content:  60,
		ATS:      90,
	}

	overall, category := Aggregate(factors)

	// (80*40 + 60*15 + 70*20 + 60*15 + 90*10) / 100 = 73
	assert.Equal(t, 73.0, overall)
	assert.Equal(t, CategoryGood, category)
}

func TestAggregateBounds(t *testing.T) {
	overall, category := Aggregate(types.FactorScores{})
	assert.Zero(t, overall)
	assert.Equal(t, CategoryPoor, category)

	overall, category = Aggregate(types.FactorScores{
		Keyword: 100, Semantic: 100, Format: 100, Content: 100, ATS: 100,
	})
	assert.Equal(t, 100.0, overall)
	assert.Equal(t, CategoryExcellent, category)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score    float64
		category string
	}{
		{95, CategoryExcellent},
		{80, CategoryExcellent},
		{79, CategoryGood},
		{70, CategoryGood},
		{65, CategoryFair},
		{60, CategoryFair},
		{55, CategoryNeedsImprovement},
		{50, CategoryNeedsImprovement},
		{49, CategoryPoor},
		{0, CategoryPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.category, Categorize(tt.score), "分数 %.0f", tt.score)
	}
}

func TestAggregatePartialRenormalizes(t *testing.T) {
	factors := types.FactorScores{Keyword: 60, Format: 80}
	present := map[string]bool{"keyword": true, "format": true}

	overall, category := AggregatePartial(factors, present)

	// (60*40 + 80*20) / 60 = 66.67 → 67
	assert.Equal(t, 67.0, overall)
	assert.Equal(t, CategoryFair, category)
}

func TestAggregatePartialNoFactors(t *testing.T) {
	overall, category := AggregatePartial(types.FactorScores{Keyword: 90}, nil)

	assert.Zero(t, overall)
	assert.Equal(t, CategoryPoor, category)
}

func TestAggregatePartialAllFactorsMatchesAggregate(t *testing.T) {
	factors := types.FactorScores{Keyword: 72, Semantic: 55, Format: 81, Content: 64, ATS: 90}
	present := map[string]bool{
		"keyword": true, "semantic": true, "format": true, "content": true, "ats": true,
	}

	full, _ := Aggregate(factors)
	partial, _ := AggregatePartial(factors, present)

	assert.Equal(t, full, partial)
}
