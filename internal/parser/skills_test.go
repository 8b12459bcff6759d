package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSkillsClassifyWholeWord 验证整词匹配，不会命中单词内部
func TestSkillsClassifyWholeWord(t *testing.T) {
	c := NewSkillsClassifier()

	result := c.Classify("Experienced in Java and JavaScript development")
	require.Contains(t, result, "programming_languages")
	assert.Contains(t, result["programming_languages"], "Java")
	assert.Contains(t, result["programming_languages"], "JavaScript")

	// "Going"中的Go不应命中
	result = c.Classify("Going forward we will improve")
	assert.NotContains(t, result["programming_languages"], "Go")
}

// TestSkillsClassifySpecialChars 验证C++/C#这类带符号的技能词
func TestSkillsClassifySpecialChars(t *testing.T) {
	c := NewSkillsClassifier()
	result := c.Classify("Proficient in C++, C# and .NET ecosystems")

	require.Contains(t, result, "programming_languages")
	assert.Contains(t, result["programming_languages"], "C++")
	assert.Contains(t, result["programming_languages"], "C#")
	assert.NotContains(t, result["programming_languages"], "C", "C不应由C++或C#连带命中")
}

// TestSkillsClassifySortedDedup 验证结果去重且有序
func TestSkillsClassifySortedDedup(t *testing.T) {
	c := NewSkillsClassifier()
	result := c.Classify("Docker docker DOCKER and Kubernetes with Helm")

	require.Contains(t, result, "containers_orchestration")
	skills := result["containers_orchestration"]
	assert.Equal(t, []string{"Docker", "Helm", "Kubernetes"}, skills, "技能应去重并按字典序排列")
}

// TestSkillsClassifyClosedCategories 验证类别集合封闭且词表外技能被忽略
func TestSkillsClassifyClosedCategories(t *testing.T) {
	c := NewSkillsClassifier()

	result := c.Classify("Expert in UnheardOfFramework v3")
	for category, skills := range result {
		assert.Empty(t, skills, "词表之外的技能不应被收录到 %s", category)
	}

	categories := c.Categories()
	assert.Len(t, categories, 51, "类别集合是封闭枚举")
}

// TestSkillsClassifyAllCategoriesAlwaysPresent 验证结果始终带全量类别键
// 未命中的类别是空列表而非缺席，下游无需做存在性判断
func TestSkillsClassifyAllCategoriesAlwaysPresent(t *testing.T) {
	c := NewSkillsClassifier()
	result := c.Classify("Python developer")

	require.Len(t, result, len(c.Categories()), "每个类别键都应出现在结果中")
	require.Contains(t, result, "medical_clinical")
	assert.NotNil(t, result["medical_clinical"])
	assert.Empty(t, result["medical_clinical"])
	assert.Contains(t, result["programming_languages"], "Python")
}

// TestSkillsClassifyNonTechCategories 验证非技术职业的技能也能归类
func TestSkillsClassifyNonTechCategories(t *testing.T) {
	c := NewSkillsClassifier()
	text := `Registered nurse experienced in patient care and medication administration.
Handled medical billing with ICD-10 coding under HIPAA.
Strong contract drafting and compliance background, fluent in Spanish.`

	result := c.Classify(text)
	assert.Contains(t, result["medical_clinical"], "Patient Care")
	assert.Contains(t, result["medical_clinical"], "Medication Administration")
	assert.Contains(t, result["healthcare_admin"], "ICD-10")
	assert.Contains(t, result["healthcare_admin"], "HIPAA")
	assert.Contains(t, result["legal_regulatory"], "Contract Drafting")
	assert.Contains(t, result["languages_spoken"], "Spanish")
}

// TestSkillsClassifyEmptyText 验证空文本仍返回全量空类别
func TestSkillsClassifyEmptyText(t *testing.T) {
	c := NewSkillsClassifier()
	result := c.Classify("   ")

	require.Len(t, result, len(c.Categories()))
	for category, skills := range result {
		assert.NotNil(t, skills, "%s 应为空列表而非nil", category)
		assert.Empty(t, skills)
	}
}
