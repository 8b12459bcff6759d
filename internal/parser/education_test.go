package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEducationExtractBasicEntry 验证一条完整教育经历的提取
func TestEducationExtractBasicEntry(t *testing.T) {
	e := NewEducationExtractor()
	section := `Bachelor of Science in Computer Science
Stanford University, California
2014 - 2018
GPA: 3.6`

	entries := e.Extract(section)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Bachelor of Science", entry.Degree)
	assert.Equal(t, "Computer Science", entry.Field)
	assert.Equal(t, "Stanford University", entry.Institution)
	assert.Equal(t, "California", entry.Location)
	assert.Equal(t, 2014, entry.StartYear)
	assert.Equal(t, 2018, entry.EndYear)
	assert.False(t, entry.StartYearEstimated)
}

// TestEducationDegreeLineFlushes 验证学位关键词行会冲刷上一条目
func TestEducationDegreeLineFlushes(t *testing.T) {
	e := NewEducationExtractor()
	section := `Master of Technology
IIT Delhi
2018 - 2020
Bachelor of Technology
NIT Trichy
2014 - 2018`

	entries := e.Extract(section)
	require.Len(t, entries, 2, "两条学位记录都应被提取")
	assert.Equal(t, "Master of Technology", entries[0].Degree)
	assert.Equal(t, "Bachelor of Technology", entries[1].Degree)
}

// TestEducationGPAScaleInference 验证裸GPA值的量纲推断
func TestEducationGPAScaleInference(t *testing.T) {
	e := NewEducationExtractor()

	tests := []struct {
		name      string
		gradeLine string
		wantGPA   string
		wantScale string
	}{
		{"4分制", "GPA: 3.6", "3.6", "4.0"},
		{"10分制", "CGPA: 8.2", "8.2", "10.0"},
		{"显式量纲", "CGPA: 8.2/10", "8.2", "10.0"},
		{"边界值4.0", "GPA 4.0", "4.0", "4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := e.Extract("Bachelor of Engineering\n" + tt.gradeLine)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantGPA, entries[0].GPA)
			assert.Equal(t, tt.wantScale, entries[0].GPAScale)
		})
	}
}

// TestEducationGradeType 验证成绩类型标注为 CGPA / GPA / Percentage
func TestEducationGradeType(t *testing.T) {
	e := NewEducationExtractor()

	tests := []struct {
		name      string
		gradeLine string
		wantType  string
		wantGPA   string
		wantScale string
	}{
		{"GPA", "GPA: 3.6", "GPA", "3.6", "4.0"},
		{"CGPA", "CGPA: 8.2/10", "CGPA", "8.2", "10.0"},
		{"百分制", "Percentage: 85%", "Percentage", "85", "100"},
		{"裸百分比", "Scored 78.5% in final year", "Percentage", "78.5", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := e.Extract("Bachelor of Engineering\n" + tt.gradeLine)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantType, entries[0].GradeType)
			assert.Equal(t, tt.wantGPA, entries[0].GPA)
			assert.Equal(t, tt.wantScale, entries[0].GPAScale)
		})
	}
}

// TestEducationPercentileIndependent 验证百分位与成绩互不挤占
func TestEducationPercentileIndependent(t *testing.T) {
	e := NewEducationExtractor()

	entries := e.Extract("Bachelor of Technology\nCGPA: 9.1, 95th percentile")
	require.Len(t, entries, 1)
	assert.Equal(t, "9.1", entries[0].GPA)
	assert.Equal(t, "CGPA", entries[0].GradeType)
	assert.Equal(t, "95", entries[0].Percentile)

	entries = e.Extract("Master of Science\n92nd percentile")
	require.Len(t, entries, 1)
	assert.Equal(t, "92", entries[0].Percentile)
	assert.Empty(t, entries[0].GPA, "仅百分位时不伪造成绩")
}

// TestEducationStartYearEstimation 验证缺失开始年份时的推算规则
func TestEducationStartYearEstimation(t *testing.T) {
	e := NewEducationExtractor()

	entries := e.Extract("Bachelor of Science\nGraduated 2020")
	require.Len(t, entries, 1)
	assert.Equal(t, 2016, entries[0].StartYear, "本科按4年回推开始年份")
	assert.True(t, entries[0].StartYearEstimated)

	entries = e.Extract("Master of Science\nGraduated 2020")
	require.Len(t, entries, 1)
	assert.Equal(t, 2018, entries[0].StartYear, "硕士按2年回推开始年份")
	assert.True(t, entries[0].StartYearEstimated)
}

// TestEducationPresentEndYear 验证Present结束年份
func TestEducationPresentEndYear(t *testing.T) {
	e := NewEducationExtractor()
	entries := e.Extract("Master of Business Administration\n2023 - Present")
	require.Len(t, entries, 1)
	assert.True(t, entries[0].EndYearIsPresent)
	assert.Equal(t, 2023, entries[0].StartYear)
}

// TestEducationEmptySection 验证空章节返回空切片而非nil或错误
func TestEducationEmptySection(t *testing.T) {
	e := NewEducationExtractor()
	entries := e.Extract("")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
