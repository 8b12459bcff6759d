package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-engine-go/internal/types"
)

const sampleResumeText = `John Doe
john.doe@example.com | +1 555-123-4567
linkedin.com/in/johndoe

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
GPA: 3.6

SKILLS
Python, Go, Docker, Kubernetes, PostgreSQL
`

// TestSectionizeSplitsKnownHeaders 验证标准标题能把文本切成对应章节
func TestSectionizeSplitsKnownHeaders(t *testing.T) {
	s := NewTextSectioner()
	sections := s.Sectionize(sampleResumeText)

	require.Contains(t, sections, types.SectionContact, "首个标题前的内容应归入联系方式章节")
	require.Contains(t, sections, types.SectionSummary)
	require.Contains(t, sections, types.SectionExperience)
	require.Contains(t, sections, types.SectionEducation)
	require.Contains(t, sections, types.SectionSkills)

	assert.Contains(t, sections[types.SectionContact], "John Doe")
	assert.Contains(t, sections[types.SectionEducation], "Stanford University")
	assert.NotContains(t, sections[types.SectionEducation], "EDUCATION", "章节内容中不应再包含标题行")
}

// TestSectionizeIdempotent 验证对章节内容再次切分不会产生新的章节
func TestSectionizeIdempotent(t *testing.T) {
	s := NewTextSectioner()
	sections := s.Sectionize(sampleResumeText)

	for section, content := range sections {
		again := s.Sectionize(content)
		// 内容中已无标题行，再切分只会得到一个前导块
		require.Len(t, again, 1, "章节 %s 的内容再切分应只有前导块", section)
		assert.Equal(t, content, again[types.SectionContact])
	}
}

// TestSectionizeRejectsLongHeaderLines 验证超长行即使含标题词也不被当作标题
func TestSectionizeRejectsLongHeaderLines(t *testing.T) {
	s := NewTextSectioner()
	longLine := "experience " + strings.Repeat("x", maxHeaderLength)
	sections := s.Sectionize("intro\n" + longLine + "\nmore")

	assert.NotContains(t, sections, types.SectionExperience)
	assert.Contains(t, sections[types.SectionContact], longLine)
}

// TestSectionizeHeaderDecoration 验证冒号与装饰字符不影响标题识别
func TestSectionizeHeaderDecoration(t *testing.T) {
	s := NewTextSectioner()
	sections := s.Sectionize("intro\nTECHNICAL SKILLS:\nGo, Python\n")

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, "Go, Python", sections[types.SectionSkills])
}

// TestHeaderCount 验证标题计数
func TestHeaderCount(t *testing.T) {
	s := NewTextSectioner()
	assert.Equal(t, 4, s.HeaderCount(sampleResumeText), "样例简历应识别出4个章节标题")
	assert.Equal(t, 0, s.HeaderCount("no headers here\njust text"))
}
