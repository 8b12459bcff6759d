package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMeaningfulKeywords(t *testing.T) {
	jd := "We are looking for a Python developer. Python and React experience required. " +
		"Strong communication skills and communication with stakeholders."

	keywords := ExtractMeaningfulKeywords(jd)

	// communication 属于通用词汇被过滤，python/react 经领域正则保留
	assert.Equal(t, []string{"python", "react"}, keywords)
}

func TestExtractMeaningfulKeywordsRelaxesOnTemplateText(t *testing.T) {
	// 候选词几乎全是通用词时说明职位描述是低信噪模板，应放宽过滤
	jd := "Experience experience communication communication leadership leadership " +
		"teamwork teamwork AWS"

	keywords := ExtractMeaningfulKeywords(jd)

	assert.Contains(t, keywords, "aws")
	assert.Contains(t, keywords, "leadership")
	assert.Len(t, keywords, 5)
}

func TestExtractMeaningfulKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractMeaningfulKeywords(""))
	assert.Empty(t, ExtractMeaningfulKeywords("the and for with"))
}

func TestAnalyzeScoring(t *testing.T) {
	a := NewKeywordAnalyzer()
	jd := "Looking for Python and React developers. Python required, React preferred, " +
		"excellent communication needed. Communication is key."
	resume := "Worked with Python for five years building web services."

	result := a.Analyze(resume, jd)

	// 有效关键词 {python, react}，命中 python → 50分
	require.Equal(t, 2, result.MeaningfulCount)
	assert.InDelta(t, 50.0, result.Score, 0.001)
	assert.Equal(t, []string{"python"}, result.Matched)
	assert.Equal(t, []string{"react"}, result.Missing)
}

func TestAnalyzeEmptyJobDescription(t *testing.T) {
	a := NewKeywordAnalyzer()
	result := a.Analyze("some resume text", "")

	assert.Zero(t, result.Score)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestContainsKeywordWholeWord(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    bool
	}{
		{"整词命中", "Expert in Python and Go", "python", true},
		{"子串不算命中", "I love javascript", "java", false},
		{"c++词尾符号", "Expert in C++ and Rust", "c++", true},
		{"node.js带点号", "Built services with Node.js runtime", "node.js", true},
		{"多词短语跨空白", "experience with machine  learning models", "machine learning", true},
		{"未出现", "Frontend developer", "kubernetes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsKeyword(tt.text, tt.keyword))
		})
	}
}
