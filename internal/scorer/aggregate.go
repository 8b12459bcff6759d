package scorer

import (
	"fmt"
	"math"

	"ats-engine-go/internal/types"
)

// 各因子权重，总和必须为100
const (
	WeightKeyword  = 40
	WeightSemantic = 15
	WeightFormat   = 20
	WeightContent  = 15
	WeightATS      = 10
)

// 匹配等级
const (
	CategoryExcellent        = "Excellent"
	CategoryGood             = "Good"
	CategoryFair             = "Fair"
	CategoryNeedsImprovement = "Needs Improvement"
	CategoryPoor             = "Poor"
)

func init() {
	if WeightKeyword+WeightSemantic+WeightFormat+WeightContent+WeightATS != 100 {
		panic(fmt.Sprintf("评分权重之和必须为100, 当前为 %d",
			WeightKeyword+WeightSemantic+WeightFormat+WeightContent+WeightATS))
	}
}

// Aggregate 按权重合成总分并给出匹配等级
func Aggregate(factors types.FactorScores) (float64, string) {
	weighted := (factors.Keyword*WeightKeyword +
		factors.Semantic*WeightSemantic +
		factors.Format*WeightFormat +
		factors.Content*WeightContent +
		factors.ATS*WeightATS) / 100

	overall := math.Round(weighted)
	if overall > 100 {
		overall = 100
	}
	if overall < 0 {
		overall = 0
	}
	return overall, Categorize(overall)
}

// Categorize 按总分划分匹配等级
func Categorize(overall float64) string {
	switch {
	case overall >= 80:
		return CategoryExcellent
	case overall >= 70:
		return CategoryGood
	case overall >= 60:
		return CategoryFair
	case overall >= 50:
		return CategoryNeedsImprovement
	default:
		return CategoryPoor
	}
}

// AggregatePartial 只用部分因子合成总分：缺席因子的权重按比例摊给在场因子。
// 快速分析模式（无外部服务）使用。
func AggregatePartial(factors types.FactorScores, present map[string]bool) (float64, string) {
	type entry struct {
		score  float64
		weight float64
	}
	var entries []entry
	add := func(name string, score float64, weight float64) {
		if present[name] {
			entries = append(entries, entry{score: score, weight: weight})
		}
	}
	add("keyword", factors.Keyword, WeightKeyword)
	add("semantic", factors.Semantic, WeightSemantic)
	add("format", factors.Format, WeightFormat)
	add("content", factors.Content, WeightContent)
	add("ats", factors.ATS, WeightATS)

	if len(entries) == 0 {
		return 0, CategoryPoor
	}

	var totalWeight, weighted float64
	for _, e := range entries {
		totalWeight += e.weight
		weighted += e.score * e.weight
	}
	overall := math.Round(weighted / totalWeight)
	if overall > 100 {
		overall = 100
	}
	if overall < 0 {
		overall = 0
	}
	return overall, Categorize(overall)
}
