package parser

import (
	"strings"
	"time"

	"ats-engine-go/internal/types"
)

// StructuredResumeBuilder 把章节切分与各提取器组合成完整的结构化简历
// 提取是确定性的：相同输入总是产出相同结果
type StructuredResumeBuilder struct {
	sectioner  *TextSectioner
	contact    *ContactExtractor
	education  *EducationExtractor
	experience *WorkExperienceExtractor
	skills     *SkillsClassifier
}

// BuilderOption 构建器的功能选项
type BuilderOption func(*StructuredResumeBuilder)

// WithBuilderClock 注入时钟，影响工作经历中"Present"的时长计算
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *StructuredResumeBuilder) {
		b.experience.WithClock(now)
	}
}

// NewStructuredResumeBuilder 创建构建器，各提取器初始化一次后可并发复用
func NewStructuredResumeBuilder(opts ...BuilderOption) *StructuredResumeBuilder {
	b := &StructuredResumeBuilder{
		sectioner:  NewTextSectioner(),
		contact:    NewContactExtractor(),
		education:  NewEducationExtractor(),
		experience: NewWorkExperienceExtractor(),
		skills:     NewSkillsClassifier(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 从简历原文构建结构化简历
// 空文本返回空结构而非错误，提取不到某章节属于提取缺口而非失败
func (b *StructuredResumeBuilder) Build(text string) *types.StructuredResume {
	resume := &types.StructuredResume{
		Education:           make([]types.Education, 0),
		Experience:          make([]types.Position, 0),
		ExperienceByCompany: make([]types.CompanyExperience, 0),
		Skills:              b.skills.Classify(""),
	}
	if strings.TrimSpace(text) == "" {
		return resume
	}

	sections := b.sectioner.Sectionize(text)
	resume.Sections = sections
	resume.WordCount = len(strings.Fields(text))

	resume.Contact = b.contact.Extract(sections[types.SectionContact], text)
	resume.Summary = sections[types.SectionSummary]
	resume.Education = b.education.Extract(sections[types.SectionEducation])
	resume.Experience = b.experience.Extract(sections[types.SectionExperience])
	resume.ExperienceByCompany = groupByCompany(resume.Experience)

	// 技能在全文上分类，技能章节之外（项目、职责）提到的也收录
	resume.Skills = b.skills.Classify(text)

	resume.Projects = b.extractSectionProjects(sections[types.SectionProjects])
	resume.Certifications = nonEmptyLines(sections[types.SectionCertifications])
	resume.Languages = nonEmptyLines(sections[types.SectionLanguages])

	return resume
}

// HeaderCount 暴露章节标题计数，供格式评分使用
func (b *StructuredResumeBuilder) HeaderCount(text string) int {
	return b.sectioner.HeaderCount(text)
}

// extractSectionProjects 解析独立项目章节
// 复用工作经历的项目标题判定；标题之间的内容行归入该项目的成果
func (b *StructuredResumeBuilder) extractSectionProjects(sectionText string) []types.Project {
	var projects []types.Project
	if strings.TrimSpace(sectionText) == "" {
		return projects
	}

	var current *types.Project
	flush := func() {
		if current != nil {
			projects = append(projects, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(sectionText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if b.experience.isProjectHeader(trimmed) {
			flush()
			name, techs := b.experience.parseProjectHeader(trimmed)
			current = &types.Project{Name: name, Technologies: techs}
			continue
		}
		if current != nil && len(trimmed) >= minContentLineLen {
			current.Achievements = append(current.Achievements, stripBullet(trimmed))
		}
	}
	flush()
	return projects
}

// groupByCompany 把同一公司的多段职位归并为一个条目
// 条目顺序按公司首次出现排列，公司名为空的职位各自独立成条
func groupByCompany(positions []types.Position) []types.CompanyExperience {
	grouped := make([]types.CompanyExperience, 0, len(positions))
	index := make(map[string]int)

	for _, pos := range positions {
		key := strings.ToLower(strings.TrimSpace(pos.Company))
		if key == "" {
			grouped = append(grouped, companyEntry(pos))
			continue
		}
		if i, ok := index[key]; ok {
			grouped[i].Positions = append(grouped[i].Positions, pos)
			grouped[i].Current = grouped[i].Current || pos.Current
			grouped[i].DurationMonths += pos.DurationMonths
			continue
		}
		index[key] = len(grouped)
		grouped = append(grouped, companyEntry(pos))
	}
	return grouped
}

func companyEntry(pos types.Position) types.CompanyExperience {
	return types.CompanyExperience{
		Company:        pos.Company,
		Positions:      []types.Position{pos},
		Current:        pos.Current,
		DurationMonths: pos.DurationMonths,
	}
}

// nonEmptyLines 把章节内容拆成非空行列表
func nonEmptyLines(sectionText string) []string {
	var lines []string
	for _, line := range strings.Split(sectionText, "\n") {
		trimmed := strings.TrimSpace(stripBullet(strings.TrimSpace(line)))
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
