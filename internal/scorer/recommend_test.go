package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-engine-go/internal/types"
)

func findRec(recs []types.Recommendation, kind, factor string) *types.Recommendation {
	for i := range recs {
		if recs[i].Kind == kind && recs[i].Factor == factor {
			return &recs[i]
		}
	}
	return nil
}

func TestBuildRecommendationsWeakResume(t *testing.T) {
	e := NewRecommendationEngine()
	result := &types.AnalysisResult{
		Keyword: types.KeywordAnalysis{
			Score:   45,
			Missing: []string{"kubernetes", "terraform", "aws", "docker", "golang", "grpc", "kafka"},
		},
		Format:  types.FormatResult{Score: 55, WordCount: 300},
		Content: types.ContentResult{Score: 40},
		ATS:     types.ATSResult{Score: 60},
	}

	recs := e.Build(result)

	require.NotNil(t, findRec(recs, "weakness", "keyword"))
	require.NotNil(t, findRec(recs, "weakness", "format"))
	require.NotNil(t, findRec(recs, "weakness", "content"))
	require.NotNil(t, findRec(recs, "weakness", "ats"))

	// 关键词建议只带前5个缺失词
	advice := findRec(recs, "advice", "keyword")
	require.NotNil(t, advice)
	assert.Len(t, advice.Keywords, 5)
	assert.Equal(t, "kubernetes", advice.Keywords[0])

	// 篇幅偏短建议
	assert.NotNil(t, findRec(recs, "advice", "format"))
}

func TestBuildRecommendationsStrongResume(t *testing.T) {
	e := NewRecommendationEngine()
	result := &types.AnalysisResult{
		Keyword:  types.KeywordAnalysis{Score: 90},
		Semantic: types.SemanticResult{Score: 88, Method: "embedding"},
		Format:   types.FormatResult{Score: 85, WordCount: 600},
		Content:  types.ContentResult{Score: 82},
		ATS:      types.ATSResult{Score: 95},
	}

	recs := e.Build(result)

	for _, factor := range []string{"keyword", "format", "content", "ats", "semantic"} {
		assert.NotNil(t, findRec(recs, "strength", factor), "缺少 %s 优势项", factor)
	}
	for _, rec := range recs {
		assert.NotEqual(t, "weakness", rec.Kind)
	}
}

func TestBuildRecommendationsSemanticFallbackNoStrength(t *testing.T) {
	e := NewRecommendationEngine()
	result := &types.AnalysisResult{
		Keyword:  types.KeywordAnalysis{Score: 75},
		Semantic: types.SemanticResult{Score: 90, Method: "fallback"},
		Format:   types.FormatResult{Score: 75, WordCount: 600},
		Content:  types.ContentResult{Score: 70},
		ATS:      types.ATSResult{Score: 75},
	}

	recs := e.Build(result)

	// 降级路径的语义分不构成优势
	assert.Nil(t, findRec(recs, "strength", "semantic"))
}

func TestBuildRecommendationsLongResumeAdvice(t *testing.T) {
	e := NewRecommendationEngine()
	result := &types.AnalysisResult{
		Keyword: types.KeywordAnalysis{Score: 75},
		Format:  types.FormatResult{Score: 75, WordCount: 950},
		Content: types.ContentResult{Score: 70},
		ATS:     types.ATSResult{Score: 75},
	}

	recs := e.Build(result)

	advice := findRec(recs, "advice", "format")
	require.NotNil(t, advice)
	assert.Contains(t, advice.Message, "偏长")
}
