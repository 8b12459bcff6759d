package scorer

import (
	"strings"

	"ats-engine-go/internal/types"
)

// atsFriendlyThreshold 达到该分数视为ATS友好
const atsFriendlyThreshold = 70

// ATSScorer ATS兼容性评分：从100起按风险项逐项扣分，下限0
type ATSScorer struct{}

// NewATSScorer 创建ATS兼容性评分器
func NewATSScorer() *ATSScorer {
	return &ATSScorer{}
}

// Score 结合结构化简历与排版信号计算ATS兼容性得分
func (s *ATSScorer) Score(resume *types.StructuredResume, signals *types.FormattingSignals) types.ATSResult {
	result := types.ATSResult{Score: 100}
	deduct := func(reason string, points float64) {
		result.Score -= points
		result.Deductions = append(result.Deductions, types.ATSDeduction{Reason: reason, Points: points})
	}

	if signals != nil {
		if signals.ImagesCount > 0 {
			deduct("嵌入图片无法被ATS解析", 40)
		}
		if signals.TablesDetected {
			deduct("表格布局会打乱ATS的文本抽取顺序", 35)
		}
		if signals.FontsCount > 3 {
			deduct("字体超过3种", 20)
		}
		format := strings.ToLower(signals.SourceFormat)
		if format != "" && format != "docx" {
			deduct("非docx格式在部分ATS中解析质量较低", 15)
		}
		if len(signals.BulletStyles) > 2 {
			deduct("项目符号样式超过2种", 10)
		}
		if signals.CapsLineRatio > 0.15 {
			deduct("全大写行占比超过15%", 10)
		}
		if signals.SpecialCharCount > 20 {
			deduct("特殊字符过多", 5)
		}
		if len(signals.DateFormats) > 2 {
			deduct("日期格式超过2种，ATS难以统一解析", 5)
		}
	}

	if resume != nil {
		found := 0
		for _, sec := range keySections {
			if hasSection(resume, sec) {
				found++
			}
		}
		if found < 3 {
			deduct("关键区块不足3个", 25)
		}
		if resume.Contact.Email == "" || resume.Contact.Phone == "" {
			deduct("缺少必要联系方式(邮箱或电话)", 15)
		}
		if resume.WordCount < 200 || resume.WordCount > 1200 {
			deduct("篇幅超出200-1200词的可接受区间", 15)
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}
	result.ATSFriendly = result.Score >= atsFriendlyThreshold
	return result
}
