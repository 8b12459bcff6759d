package scorer

import (
	"fmt"
	"strings"

	"ats-engine-go/internal/types"
)

// 阈值：低于该分的因子产生弱点与建议，不低于80的因子计为优势
const (
	weaknessThreshold        = 70
	contentWeaknessThreshold = 60
	strengthThreshold        = 80
)

// RecommendationEngine 按固定阈值规则从各因子结果生成优势/弱点/建议
type RecommendationEngine struct{}

// NewRecommendationEngine 创建建议生成器
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Build 汇总各因子结果生成建议列表
func (e *RecommendationEngine) Build(result *types.AnalysisResult) []types.Recommendation {
	var recs []types.Recommendation

	// 关键词
	if result.Keyword.Score < weaknessThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "weakness",
			Factor:  "keyword",
			Message: "关键词与职位要求的匹配度偏低",
		})
		missing := topN(result.Keyword.Missing, 5)
		if len(missing) > 0 {
			recs = append(recs, types.Recommendation{
				Kind:     "advice",
				Factor:   "keyword",
				Message:  fmt.Sprintf("建议补充这些职位关键词: %s", strings.Join(missing, ", ")),
				Keywords: missing,
			})
		}
	} else if result.Keyword.Score >= strengthThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "strength",
			Factor:  "keyword",
			Message: "关键词覆盖良好，与职位要求高度匹配",
		})
	}

	// 格式
	if result.Format.Score < weaknessThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "weakness",
			Factor:  "format",
			Message: "简历结构不完整，建议补齐工作经历、教育背景、技能等标准区块",
		})
	} else if result.Format.Score >= strengthThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "strength",
			Factor:  "format",
			Message: "简历结构清晰，区块划分规范",
		})
	}

	// 内容
	if result.Content.Score < contentWeaknessThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "weakness",
			Factor:  "content",
			Message: "缺少可量化的业绩描述，建议补充具体数字和成果",
		})
	} else if result.Content.Score >= strengthThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "strength",
			Factor:  "content",
			Message: "内容质量高，量化成果充分",
		})
	}

	// ATS兼容性
	if result.ATS.Score < weaknessThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "weakness",
			Factor:  "ats",
			Message: "排版存在ATS解析风险，建议简化格式",
		})
	} else if result.ATS.Score >= strengthThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "strength",
			Factor:  "ats",
			Message: "排版对ATS友好",
		})
	}

	// 语义相关性
	if result.Semantic.Method == "embedding" && result.Semantic.Score >= strengthThreshold {
		recs = append(recs, types.Recommendation{
			Kind:    "strength",
			Factor:  "semantic",
			Message: "简历内容与职位描述语义相关性强",
		})
	}

	// 篇幅建议
	switch wc := result.Format.WordCount; {
	case wc > 0 && wc < 400:
		recs = append(recs, types.Recommendation{
			Kind:    "advice",
			Factor:  "format",
			Message: "篇幅偏短，建议补充更详细的职责与成果描述",
		})
	case wc > 800:
		recs = append(recs, types.Recommendation{
			Kind:    "advice",
			Factor:  "format",
			Message: "篇幅偏长，建议精简内容聚焦最相关的经历",
		})
	}

	return recs
}

func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
