package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ats-engine-go/internal/parser"
	"ats-engine-go/internal/types"
)

func fullResume(wordCount int) *types.StructuredResume {
	return &types.StructuredResume{
		Contact: types.ContactInfo{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Phone:    "+1 555 0100",
			LinkedIn: "linkedin.com/in/janedoe",
			Location: "Berlin",
		},
		Summary: "Senior engineer with a decade of backend experience.",
		Experience: []types.Position{
			{Title: "Backend Engineer", Company: "Acme"},
		},
		Education: []types.Education{
			{Degree: "B.Sc.", Institution: "TU Berlin"},
		},
		Skills: map[string][]string{
			"languages": {"go", "python"},
		},
		Projects:       []types.Project{{Name: "billing pipeline"}},
		Certifications: []string{"CKA"},
		WordCount:      wordCount,
	}
}

func TestFormatScoreFullResume(t *testing.T) {
	s := NewFormatScorer()
	result := s.Score(fullResume(600), 6)

	// 区块40 + 可选10 + 篇幅25 + 联系方式20 + 标题15(封顶) + 摘要5 = 115 → 封顶100
	assert.Equal(t, 40.0, result.SectionPoints)
	assert.Equal(t, 10.0, result.OptionalPoints)
	assert.Equal(t, 25.0, result.WordCountPoints)
	assert.Equal(t, 20.0, result.ContactPoints)
	assert.Equal(t, 15.0, result.HeaderPoints)
	assert.Equal(t, 5.0, result.SummaryPoints)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, 600, result.WordCount)
}

func TestFormatScoreEmptyResume(t *testing.T) {
	s := NewFormatScorer()
	result := s.Score(&types.StructuredResume{}, 0)

	assert.Zero(t, result.Score)
	assert.Zero(t, result.SectionPoints)
	assert.Zero(t, result.ContactPoints)
}

func TestFormatWordCountBands(t *testing.T) {
	s := NewFormatScorer()
	tests := []struct {
		wordCount int
		points    float64
	}{
		{600, 25},
		{400, 25},
		{800, 25},
		{350, 15},
		{950, 15},
		{250, 10},
		{1150, 10},
		{150, 0},
		{1300, 0},
	}
	for _, tt := range tests {
		result := s.Score(fullResume(tt.wordCount), 0)
		assert.Equal(t, tt.points, result.WordCountPoints, "词数 %d", tt.wordCount)
	}
}

func TestFormatHeaderPointsCapped(t *testing.T) {
	s := NewFormatScorer()

	assert.Equal(t, 9.0, s.Score(&types.StructuredResume{}, 3).HeaderPoints)
	assert.Equal(t, 15.0, s.Score(&types.StructuredResume{}, 10).HeaderPoints)
}

// TestFormatScoreMonotonicOnSectionRemoval 验证删掉教育章节不会推高格式分
func TestFormatScoreMonotonicOnSectionRemoval(t *testing.T) {
	withEducation := `John Doe
john.doe@example.com | +1 555-123-4567

SUMMARY
Experienced backend engineer with 6 years building distributed systems.

WORK EXPERIENCE
Software Engineer
Acme Technologies Inc
01/2020 - 01/2022
• Developed payment microservices handling 2M requests per day

EDUCATION
Bachelor of Science in Computer Science
Stanford University, California
2014 - 2018

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL
`
	withoutEducation := `John Doe
john.doe@example.com | +1 555-123-4567

SUMMARY
Experienced backend engineer with 6 years building distributed systems.

WORK EXPERIENCE
Software Engineer
Acme Technologies Inc
01/2020 - 01/2022
• Developed payment microservices handling 2M requests per day

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL
`

	b := parser.NewStructuredResumeBuilder()
	s := NewFormatScorer()

	before := s.Score(b.Build(withEducation), b.HeaderCount(withEducation))
	after := s.Score(b.Build(withoutEducation), b.HeaderCount(withoutEducation))

	assert.LessOrEqual(t, after.Score, before.Score, "删除章节后格式分不应上升")
	assert.Less(t, after.SectionPoints, before.SectionPoints)
}

// TestHasSectionRequiresMatchedSkills 验证空的技能分类表不计为技能章节
func TestHasSectionRequiresMatchedSkills(t *testing.T) {
	resume := &types.StructuredResume{
		Skills: map[string][]string{
			"programming_languages": {},
			"soft_skills":           {},
		},
	}
	assert.False(t, hasSection(resume, types.SectionSkills), "只有键没有技能不算拥有技能章节")

	resume.Skills["programming_languages"] = []string{"Go"}
	assert.True(t, hasSection(resume, types.SectionSkills))
}

func TestHasSectionFallsBackToRawSections(t *testing.T) {
	resume := &types.StructuredResume{
		Sections: map[types.SectionType]string{
			types.SectionAwards:   "Employee of the year 2023",
			types.SectionProjects: "Internal tooling revamp",
		},
	}

	assert.True(t, hasSection(resume, types.SectionAwards))
	assert.True(t, hasSection(resume, types.SectionProjects))
	assert.False(t, hasSection(resume, types.SectionLanguages))
}
