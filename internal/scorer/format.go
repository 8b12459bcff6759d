package scorer

import (
	"ats-engine-go/internal/types"
)

// 关键区块与可选区块，关键区块每个8分(上限40)，可选每个5分(上限10)
var keySections = []types.SectionType{
	types.SectionContact,
	types.SectionSummary,
	types.SectionExperience,
	types.SectionEducation,
	types.SectionSkills,
}

var optionalSections = []types.SectionType{
	types.SectionProjects,
	types.SectionCertifications,
	types.SectionAwards,
	types.SectionLanguages,
}

// FormatScorer 格式规范性评分：区块覆盖 + 篇幅 + 联系方式完整度 + 标题清晰度
type FormatScorer struct{}

// NewFormatScorer 创建格式评分器
func NewFormatScorer() *FormatScorer {
	return &FormatScorer{}
}

// Score 计算格式得分，各分项写回结果便于前端展示
func (s *FormatScorer) Score(resume *types.StructuredResume, headerCount int) types.FormatResult {
	result := types.FormatResult{WordCount: resume.WordCount}

	// 关键区块 8分/个，上限40
	for _, sec := range keySections {
		if hasSection(resume, sec) {
			result.SectionPoints += 8
		}
	}
	if result.SectionPoints > 40 {
		result.SectionPoints = 40
	}

	// 可选区块 5分/个，上限10
	for _, sec := range optionalSections {
		if hasSection(resume, sec) {
			result.OptionalPoints += 5
		}
	}
	if result.OptionalPoints > 10 {
		result.OptionalPoints = 10
	}

	// 篇幅分档
	switch wc := resume.WordCount; {
	case wc >= 400 && wc <= 800:
		result.WordCountPoints = 25
	case wc >= 300 && wc <= 1000:
		result.WordCountPoints = 15
	case wc >= 200 && wc <= 1200:
		result.WordCountPoints = 10
	}

	// 联系方式完整度：email 8 / phone 6 / linkedin 3 / location 3
	if resume.Contact.Email != "" {
		result.ContactPoints += 8
	}
	if resume.Contact.Phone != "" {
		result.ContactPoints += 6
	}
	if resume.Contact.LinkedIn != "" {
		result.ContactPoints += 3
	}
	if resume.Contact.Location != "" {
		result.ContactPoints += 3
	}

	// 标题清晰度：每个识别出的区块标题3分，上限15
	result.HeaderPoints = float64(headerCount) * 3
	if result.HeaderPoints > 15 {
		result.HeaderPoints = 15
	}

	if resume.Summary != "" {
		result.SummaryPoints = 5
	}

	total := result.SectionPoints + result.OptionalPoints + result.WordCountPoints +
		result.ContactPoints + result.HeaderPoints + result.SummaryPoints
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	result.Score = total
	return result
}

// hasSection 判断结构化简历中某区块是否有实际内容
func hasSection(resume *types.StructuredResume, sec types.SectionType) bool {
	switch sec {
	case types.SectionContact:
		return resume.Contact.Email != "" || resume.Contact.Phone != "" || resume.Contact.Name != ""
	case types.SectionSummary:
		return resume.Summary != ""
	case types.SectionExperience:
		return len(resume.Experience) > 0
	case types.SectionEducation:
		return len(resume.Education) > 0
	case types.SectionSkills:
		return resume.MatchedSkillCount() > 0
	case types.SectionProjects:
		return len(resume.Projects) > 0 || resume.Sections[types.SectionProjects] != ""
	case types.SectionCertifications:
		return len(resume.Certifications) > 0
	case types.SectionLanguages:
		return len(resume.Languages) > 0
	default:
		return resume.Sections[sec] != ""
	}
}
