package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestContactExtractBasics 验证姓名、邮箱、电话与链接的提取
func TestContactExtractBasics(t *testing.T) {
	e := NewContactExtractor()
	preamble := "Jane Smith\njane.smith@example.com | +91 98765 43210\nlinkedin.com/in/janesmith | github.com/janesmith\njanesmith.dev"

	info := e.Extract(preamble, preamble)

	assert.Equal(t, "Jane Smith", info.Name)
	assert.Equal(t, "jane.smith@example.com", info.Email)
	assert.Equal(t, "+91", info.CountryCode, "前导区号应被单独拆出")
	assert.Equal(t, "98765 43210", info.Phone)
	assert.Equal(t, "linkedin.com/in/janesmith", info.LinkedIn)
	assert.Equal(t, "github.com/janesmith", info.GitHub)
	assert.Equal(t, "janesmith.dev", info.Portfolio)
}

// TestContactNameParts 验证姓名按空白拆分为 first/middle/last
func TestContactNameParts(t *testing.T) {
	e := NewContactExtractor()

	info := e.Extract("Jane Smith", "Jane Smith")
	assert.Equal(t, "Jane", info.FirstName)
	assert.Empty(t, info.MiddleName)
	assert.Equal(t, "Smith", info.LastName)

	info = e.Extract("Mary Anne van Dyke", "Mary Anne van Dyke")
	assert.Equal(t, "Mary", info.FirstName)
	assert.Equal(t, "Anne van", info.MiddleName, "中间的全部词合并为 middle")
	assert.Equal(t, "Dyke", info.LastName)

	info = e.Extract("Prince", "Prince")
	assert.Equal(t, "Prince", info.FirstName)
	assert.Empty(t, info.MiddleName)
	assert.Empty(t, info.LastName)
}

// TestContactPhoneRequiresEightDigits 验证不足8位数字的序列不被当作电话
func TestContactPhoneRequiresEightDigits(t *testing.T) {
	e := NewContactExtractor()
	info := e.Extract("", "call 1234567 anytime")
	assert.Empty(t, info.Phone, "7位数字不应被识别为电话号码")

	info = e.Extract("", "call +1 415-555-0100 anytime")
	require.NotEmpty(t, info.Phone)
	assert.Equal(t, "+1", info.CountryCode)
}

// TestContactLocationPrecedence 验证定位词表按 州 > 邦 > 城市 首次命中
func TestContactLocationPrecedence(t *testing.T) {
	e := NewContactExtractor()

	info := e.Extract("", "Based in Bangalore, Karnataka")
	assert.Equal(t, "Karnataka", info.Location, "邦名的优先级应高于城市名")

	info = e.Extract("", "Based in Bangalore")
	assert.Equal(t, "Bangalore", info.Location)

	info = e.Extract("", "Austin, Texas, USA")
	assert.Equal(t, "Texas", info.Location, "美国州名优先")
}

// TestContactPortfolioSkipsKnownHosts 验证linkedin/github域名不会被当作作品集
func TestContactPortfolioSkipsKnownHosts(t *testing.T) {
	e := NewContactExtractor()
	preamble := "linkedin.com/in/someone\ngithub.com/someone\nmysite.io"
	info := e.Extract(preamble, preamble)
	assert.Equal(t, "mysite.io", info.Portfolio)
}

// TestContactNameSkipsDataLines 验证邮箱行和电话行不会被误认为姓名
func TestContactNameSkipsDataLines(t *testing.T) {
	e := NewContactExtractor()
	preamble := "jane@example.com\n+1 415-555-0100\nJane Smith"
	info := e.Extract(preamble, preamble)
	assert.Equal(t, "Jane Smith", info.Name)
}
