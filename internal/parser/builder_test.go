package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilderFullResume 验证完整简历的端到端结构化
func TestBuilderFullResume(t *testing.T) {
	b := NewStructuredResumeBuilder(WithBuilderClock(fixedClock))
	resume := b.Build(sampleResumeText)

	assert.Equal(t, "John Doe", resume.Contact.Name)
	assert.Equal(t, "john.doe@example.com", resume.Contact.Email)
	assert.Contains(t, resume.Summary, "distributed systems")

	require.Len(t, resume.Education, 1)
	assert.Equal(t, "4.0", resume.Education[0].GPAScale)

	require.Len(t, resume.Experience, 1)
	assert.Equal(t, 24, resume.Experience[0].DurationMonths)

	require.Len(t, resume.ExperienceByCompany, 1)
	assert.Equal(t, "Acme Technologies Inc", resume.ExperienceByCompany[0].Company)

	assert.Contains(t, resume.Skills["programming_languages"], "Python")
	assert.Contains(t, resume.Skills["containers_orchestration"], "Docker")
	assert.Greater(t, resume.WordCount, 0)
}

// TestBuilderDeterministic 验证相同输入产出相同结果
func TestBuilderDeterministic(t *testing.T) {
	b := NewStructuredResumeBuilder(WithBuilderClock(fixedClock))

	first := b.Build(sampleResumeText)
	second := b.Build(sampleResumeText)
	assert.Equal(t, first, second, "提取必须是确定性的")
}

// TestBuilderEmptyText 验证空文本返回空结构而非错误
func TestBuilderEmptyText(t *testing.T) {
	b := NewStructuredResumeBuilder()
	resume := b.Build("   \n  ")

	assert.NotNil(t, resume)
	assert.Empty(t, resume.Education)
	assert.Empty(t, resume.Experience)
	assert.Empty(t, resume.ExperienceByCompany)
	assert.NotNil(t, resume.ExperienceByCompany)

	// 技能分类表的键集合固定，空文本下每个类别都是空列表
	assert.Len(t, resume.Skills, len(NewSkillsClassifier().Categories()))
	for category, skills := range resume.Skills {
		assert.Empty(t, skills, "类别 %s 应为空列表", category)
		assert.NotNil(t, skills)
	}
}

// TestBuilderGroupsPositionsByCompany 验证同公司职位聚合到一个条目
func TestBuilderGroupsPositionsByCompany(t *testing.T) {
	text := `WORK EXPERIENCE
Senior Engineer
Acme Technologies Inc
01/2021 - 01/2022
• Led migration of billing pipeline to event-driven architecture
Software Engineer
Acme Technologies Inc
01/2019 - 01/2021
• Developed payment microservices handling 2M requests per day
Data Analyst
Beta Solutions Ltd
06/2017 - 12/2018
• Analyzed churn across 12 product lines`

	b := NewStructuredResumeBuilder(WithBuilderClock(fixedClock))
	resume := b.Build(text)

	require.Len(t, resume.Experience, 3, "扁平职位列表保持原样")
	require.Len(t, resume.ExperienceByCompany, 2, "同公司职位应聚合")

	acme := resume.ExperienceByCompany[0]
	assert.Equal(t, "Acme Technologies Inc", acme.Company)
	require.Len(t, acme.Positions, 2)
	assert.Equal(t, "Senior Engineer", acme.Positions[0].Title)
	assert.Equal(t, "Software Engineer", acme.Positions[1].Title)
	assert.Equal(t, 36, acme.DurationMonths, "同公司时长累加")

	beta := resume.ExperienceByCompany[1]
	assert.Equal(t, "Beta Solutions Ltd", beta.Company)
	require.Len(t, beta.Positions, 1)
}

// TestBuilderGroupsCurrentPropagation 验证在职职位使公司条目标记为当前
func TestBuilderGroupsCurrentPropagation(t *testing.T) {
	text := `WORK EXPERIENCE
Staff Engineer
Acme Technologies Inc
01/2022 - Present
• Owns reliability roadmap for the payments platform`

	b := NewStructuredResumeBuilder(WithBuilderClock(fixedClock))
	resume := b.Build(text)

	require.Len(t, resume.ExperienceByCompany, 1)
	assert.True(t, resume.ExperienceByCompany[0].Current)
}

// TestBuilderEducationMonotonicity 验证删除一条教育经历不会增加教育条目数
func TestBuilderEducationMonotonicity(t *testing.T) {
	withTwoDegrees := `EDUCATION
Master of Technology
IIT Delhi
2018 - 2020
Bachelor of Technology
NIT Trichy
2014 - 2018`

	withOneDegree := `EDUCATION
Bachelor of Technology
NIT Trichy
2014 - 2018`

	b := NewStructuredResumeBuilder()
	before := b.Build(withTwoDegrees)
	after := b.Build(withOneDegree)

	require.Len(t, before.Education, 2)
	assert.Less(t, len(after.Education), len(before.Education),
		"删除学历后教育条目数不应增加")
}

// TestBuilderSectionProjects 验证独立项目章节的解析
func TestBuilderSectionProjects(t *testing.T) {
	text := `PROJECTS
Realtime Chat Platform (Go, WebSocket)
• Supports 10k concurrent connections with sub-second delivery
Portfolio Website Builder:
• Drag and drop editor used by 500 monthly users`

	b := NewStructuredResumeBuilder()
	resume := b.Build(text)

	require.Len(t, resume.Projects, 2)
	assert.Equal(t, "Realtime Chat Platform", resume.Projects[0].Name)
	assert.Equal(t, []string{"Go", "WebSocket"}, resume.Projects[0].Technologies)
	assert.Equal(t, "Portfolio Website Builder", resume.Projects[1].Name)
}
