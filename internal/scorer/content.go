package scorer

import (
	"regexp"
	"strings"

	"ats-engine-go/internal/types"
)

var digitsGroupRe = regexp.MustCompile(`\d+`)

// ContentScorer 内容质量评分：量化指标密度 + 成就动词 + 专业词汇
type ContentScorer struct{}

// NewContentScorer 创建内容评分器
func NewContentScorer() *ContentScorer {
	return &ContentScorer{}
}

// Score 对简历原文计算内容得分
func (s *ContentScorer) Score(resumeText string) types.ContentResult {
	textLower := strings.ToLower(resumeText)
	result := types.ContentResult{}

	// 量化指标：数字组 >=5 得40，>=3 得25，>=1 得10
	result.QuantifiedCount = len(digitsGroupRe.FindAllString(resumeText, -1))
	switch {
	case result.QuantifiedCount >= 5:
		result.QuantifiedPoints = 40
	case result.QuantifiedCount >= 3:
		result.QuantifiedPoints = 25
	case result.QuantifiedCount >= 1:
		result.QuantifiedPoints = 10
	}

	// 成就动词：min(数量/5×30, 30)
	for _, verb := range actionVerbs {
		if strings.Contains(textLower, verb) {
			result.ActionVerbCount++
		}
	}
	result.ActionVerbPoints = float64(result.ActionVerbCount) / 5 * 30
	if result.ActionVerbPoints > 30 {
		result.ActionVerbPoints = 30
	}

	// 专业词汇：min(数量/3×30, 30)
	for _, term := range professionalTerms {
		if strings.Contains(textLower, term) {
			result.VocabularyCount++
		}
	}
	result.VocabularyPoints = float64(result.VocabularyCount) / 3 * 30
	if result.VocabularyPoints > 30 {
		result.VocabularyPoints = 30
	}

	total := result.QuantifiedPoints + result.ActionVerbPoints + result.VocabularyPoints
	if total > 100 {
		total = 100
	}
	result.Score = total
	return result
}
