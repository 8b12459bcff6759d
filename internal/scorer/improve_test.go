package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-engine-go/internal/types"
)

func weakAnalysisResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		Keyword: types.KeywordAnalysis{
			Score:   30,
			Matched: []string{"python", "sql", "git"},
			Missing: []string{
				"kubernetes", "terraform", "aws", "docker", "golang", "grpc",
				"kafka", "redis", "postgresql", "ansible", "jenkins", "linux",
			},
		},
		Format: types.FormatResult{
			Score:           40,
			HeaderPoints:    6,
			WordCountPoints: 0,
			WordCount:       1500,
		},
		Content: types.ContentResult{
			Score:           30,
			QuantifiedCount: 1,
			ActionVerbCount: 2,
		},
		ATS: types.ATSResult{
			Score: 60,
			Deductions: []types.ATSDeduction{
				{Reason: "项目符号样式超过2种", Points: 10},
				{Reason: "特殊字符过多", Points: 5},
			},
		},
	}
}

func weakResume() *types.StructuredResume {
	return &types.StructuredResume{
		Contact: types.ContactInfo{Phone: "+49 555 0100"},
	}
}

func itemByID(items []types.ImprovementItem, id string) *types.ImprovementItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func TestPlanWeakResume(t *testing.T) {
	p := NewImprovementPlanner()
	plan := p.Plan(weakAnalysisResult(), weakResume())

	require.Len(t, plan.Items, 13)

	// 缺失关键词超过10个 → 严重级条目
	kw := itemByID(plan.Items, "kw-001")
	require.NotNil(t, kw)
	assert.Equal(t, "critical", kw.Priority)
	assert.Equal(t, 15.0, kw.ScoreImpact)

	// 动词条目附带建议动词表
	verbs := itemByID(plan.Items, "cnt-004")
	require.NotNil(t, verbs)
	assert.Contains(t, verbs.SuggestedVerbs, "Spearheaded")

	// 联系方式缺失是严重级
	contact := itemByID(plan.Items, "str-002")
	require.NotNil(t, contact)
	assert.Equal(t, "critical", contact.Priority)
	assert.Contains(t, contact.Title, "邮箱")

	// ATS扣分项转为警示条目
	assert.NotNil(t, itemByID(plan.Items, "ats-wrn-1"))
	assert.NotNil(t, itemByID(plan.Items, "ats-wrn-2"))
}

func TestPlanItemOrdering(t *testing.T) {
	p := NewImprovementPlanner()
	plan := p.Plan(weakAnalysisResult(), weakResume())

	// 先按优先级，再按影响降序
	ids := make([]string, 0, 4)
	for _, item := range plan.Items[:4] {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"ats-001", "kw-001", "fmt-001", "str-002"}, ids)

	lastRank := -1
	for _, item := range plan.Items {
		rank := priorityRank[item.Priority]
		assert.GreaterOrEqual(t, rank, lastRank)
		lastRank = rank
	}
}

func TestPlanQuickWins(t *testing.T) {
	p := NewImprovementPlanner()
	plan := p.Plan(weakAnalysisResult(), weakResume())

	// 速赢项：critical/high 且影响>=8，按影响取前3
	require.Len(t, plan.QuickWins, 3)
	assert.Equal(t, "ats-001", plan.QuickWins[0].ID)
	assert.Equal(t, 20.0, plan.QuickWins[0].ScoreImpact)
	assert.Equal(t, "kw-001", plan.QuickWins[1].ID)
	assert.Equal(t, "fmt-001", plan.QuickWins[2].ID)
}

// TestQuickWinsPreferLowCostCategories 验证速赢项优先低成本类别而非裸影响值
func TestQuickWinsPreferLowCostCategories(t *testing.T) {
	items := []types.ImprovementItem{
		{ID: "content-x", Category: "content", Priority: "high", ScoreImpact: 14},
		{ID: "ats-x", Category: "ats", Priority: "high", ScoreImpact: 10},
		{ID: "kw-x", Category: "keyword", Priority: "critical", ScoreImpact: 9},
		{ID: "fmt-x", Category: "formatting", Priority: "high", ScoreImpact: 8},
	}

	wins := quickWins(items)

	require.Len(t, wins, 3)
	assert.Equal(t, "ats-x", wins[0].ID)
	assert.Equal(t, "kw-x", wins[1].ID)
	assert.Equal(t, "fmt-x", wins[2].ID, "高影响的content项被低成本类别挤出前3")

	// 低成本类别不足3项时，其余名额按影响降序补齐
	wins = quickWins(items[:2])
	require.Len(t, wins, 2)
	assert.Equal(t, "ats-x", wins[0].ID)
	assert.Equal(t, "content-x", wins[1].ID)
}

func TestPlanSummary(t *testing.T) {
	p := NewImprovementPlanner()
	plan := p.Plan(weakAnalysisResult(), weakResume())

	assert.Equal(t, 13, plan.Summary.TotalItems)
	assert.Equal(t, 4, plan.Summary.ByPriority["critical"])
	assert.Equal(t, 2, plan.Summary.ByPriority["high"])
	assert.Equal(t, 6, plan.Summary.ByPriority["medium"])
	assert.Equal(t, 1, plan.Summary.ByPriority["low"])
	// 总提升有上限
	assert.Equal(t, 40.0, plan.Summary.EstimatedBoost)
}

func TestPlanHealthyResume(t *testing.T) {
	p := NewImprovementPlanner()
	result := &types.AnalysisResult{
		Keyword: types.KeywordAnalysis{
			Score:   90,
			Matched: []string{"go", "kubernetes", "aws", "docker", "sql", "grpc"},
			Missing: []string{"terraform"},
		},
		Format: types.FormatResult{
			Score:           95,
			HeaderPoints:    15,
			WordCountPoints: 25,
			WordCount:       600,
		},
		Content: types.ContentResult{
			Score:           90,
			QuantifiedCount: 6,
			ActionVerbCount: 8,
		},
		ATS: types.ATSResult{Score: 92, ATSFriendly: true},
	}
	resume := fullResume(600)

	plan := p.Plan(result, resume)

	assert.Empty(t, plan.Items)
	assert.Empty(t, plan.QuickWins)
	assert.Zero(t, plan.Summary.TotalItems)
	assert.Zero(t, plan.Summary.EstimatedBoost)
}

func TestPlanModerateATSScore(t *testing.T) {
	p := NewImprovementPlanner()
	result := weakAnalysisResult()
	result.ATS.Score = 80

	plan := p.Plan(result, weakResume())

	ats := itemByID(plan.Items, "ats-001")
	require.NotNil(t, ats)
	assert.Equal(t, "high", ats.Priority)
	assert.Equal(t, 10.0, ats.ScoreImpact)
}
