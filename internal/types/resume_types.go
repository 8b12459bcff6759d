package types

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionContact 联系方式/抬头章节（首个标题之前的内容也归入此类）
	SectionContact SectionType = "CONTACT"
	// SectionSummary 个人概述章节
	SectionSummary SectionType = "SUMMARY"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "EXPERIENCE"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "PROJECTS"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "CERTIFICATIONS"
	// SectionAwards 获奖章节
	SectionAwards SectionType = "AWARDS"
	// SectionLanguages 语言能力章节
	SectionLanguages SectionType = "LANGUAGES"
	// SectionInterests 兴趣爱好章节
	SectionInterests SectionType = "INTERESTS"
	// SectionUnknown 未分类内容
	SectionUnknown SectionType = "UNKNOWN"
)

// ContactInfo 简历的联系方式信息
type ContactInfo struct {
	Name string `json:"name,omitempty"`
	// FirstName/MiddleName/LastName 由 Name 按空白切分而来
	FirstName   string `json:"first_name,omitempty"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	GitHub      string `json:"github,omitempty"`
	Location    string `json:"location,omitempty"`
	Portfolio   string `json:"portfolio,omitempty"`
}

// Education 一条教育经历
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Location    string `json:"location,omitempty"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
	// EndYearIsPresent 为 true 表示该学历仍在进行中
	EndYearIsPresent bool `json:"end_year_is_present,omitempty"`
	// GPA 原始成绩值，GPAScale 为 "4.0"、"10.0" 或百分制的 "100"
	GPA      string `json:"gpa,omitempty"`
	GPAScale string `json:"gpa_scale,omitempty"`
	// GradeType 取值: CGPA / GPA / Percentage
	GradeType string `json:"grade_type,omitempty"`
	// Percentile 百分位成绩，与 GPA 独立提取
	Percentile string `json:"percentile,omitempty"`
	// StartYearEstimated 表示开始年份由学位类型推算而来
	StartYearEstimated bool `json:"start_year_estimated,omitempty"`
}

// Project 工作经历中的一个项目
type Project struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Position 一段职位经历
type Position struct {
	Title   string `json:"title"`
	Company string `json:"company,omitempty"`
	// StartDate/EndDate 格式为 MM/YYYY，EndDate 可能为 "Present"
	StartDate        string    `json:"start_date,omitempty"`
	EndDate          string    `json:"end_date,omitempty"`
	DurationMonths   int       `json:"duration_months,omitempty"`
	Current          bool      `json:"current,omitempty"`
	Location         string    `json:"location,omitempty"`
	Responsibilities []string  `json:"responsibilities,omitempty"`
	Projects         []Project `json:"projects,omitempty"`
}

// CompanyExperience 同一公司下的一段或多段职位经历
// 同一公司的多个头衔合并为一个条目，Positions 保持原文顺序
type CompanyExperience struct {
	Company   string     `json:"company"`
	Positions []Position `json:"positions"`
	// Current 该公司下存在仍在进行中的职位
	Current        bool `json:"current,omitempty"`
	DurationMonths int  `json:"duration_months,omitempty"`
}

// StructuredResume 整份简历的结构化表示
type StructuredResume struct {
	Contact    ContactInfo `json:"contact"`
	Summary    string      `json:"summary,omitempty"`
	Education  []Education `json:"education"`
	Experience []Position  `json:"experience"`
	// ExperienceByCompany 按公司归并后的工作经历视图
	ExperienceByCompany []CompanyExperience `json:"experience_by_company"`
	Skills              map[string][]string `json:"skills"`
	// Projects 独立项目章节中的项目，职位内项目归属各Position
	Projects       []Project `json:"projects,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	Languages      []string  `json:"languages,omitempty"`
	// Sections 保留分章后的原始文本，键为章节类型
	Sections map[SectionType]string `json:"sections,omitempty"`
	// WordCount 全文词数，供评分器复用
	WordCount int `json:"word_count,omitempty"`
}

// MatchedSkillCount 统计命中的技能总数
// Skills 始终包含全部类别键，非空判断须看值而非键数
func (r *StructuredResume) MatchedSkillCount() int {
	count := 0
	for _, skills := range r.Skills {
		count += len(skills)
	}
	return count
}

// TotalExperienceMonths 汇总所有职位的月数
func (r *StructuredResume) TotalExperienceMonths() int {
	total := 0
	for _, p := range r.Experience {
		total += p.DurationMonths
	}
	return total
}

// FormattingSignals 文档格式信号，由文件解析阶段产出，供ATS兼容性评分使用
type FormattingSignals struct {
	ImagesCount      int      `json:"images_count"`
	TablesDetected   bool     `json:"tables_detected"`
	FontsCount       int      `json:"fonts_count"`
	FontsUsed        []string `json:"fonts_used,omitempty"`
	BulletStyles     []string `json:"bullet_styles,omitempty"`
	CapsLineRatio    float64  `json:"caps_line_ratio"`
	SpecialCharCount int      `json:"special_char_count"`
	DateFormats      []string `json:"date_formats,omitempty"`
	// SourceFormat 原始文件扩展名（不含点），如 pdf / docx / txt
	SourceFormat     string   `json:"source_format"`
	FormattingIssues []string `json:"formatting_issues,omitempty"`
	ATSFriendly      bool     `json:"ats_friendly"`
}
