package parser

import (
	"regexp"
	"strings"

	"ats-engine-go/internal/types"
)

var (
	emailRe    = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
	phoneRe    = regexp.MustCompile(`[+\d][\d\s\-()]{8,}`)
	digitRe    = regexp.MustCompile(`\d`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/([\w-]+)`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/([\w-]+)`)
	// countryCodeRe 匹配电话号码前缀中的国家区号
	countryCodeRe = regexp.MustCompile(`^\+(\d{1,3})[\s\-]`)
	// domainRe 匹配裸域名（作品集网站）
	domainRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?([a-z0-9][a-z0-9-]*\.[a-z]{2,}(?:\.[a-z]{2,})?)(?:/\S*)?`)
)

// usStates 美国州名，用于定位识别
var usStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

// indianStates 印度邦名
var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan",
	"Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal",
}

// knownCities 常见城市，用于州名未命中时的定位识别
var knownCities = []string{
	"New York", "San Francisco", "Seattle", "Austin", "Boston", "Chicago",
	"Los Angeles", "Denver", "Atlanta", "Dallas", "Houston", "Portland",
	"San Jose", "San Diego", "Miami", "Phoenix",
	"Bangalore", "Bengaluru", "Hyderabad", "Pune", "Chennai", "Mumbai",
	"Delhi", "New Delhi", "Gurgaon", "Gurugram", "Noida", "Kolkata",
	"Ahmedabad", "Kochi", "Jaipur", "Chandigarh",
	"London", "Berlin", "Toronto", "Vancouver", "Singapore", "Dublin",
	"Amsterdam", "Sydney",
}

// ContactExtractor 从简历抬头和全文中提取联系方式
type ContactExtractor struct {
	locationPatterns []*regexp.Regexp
	locationNames    []string
}

// NewContactExtractor 创建联系方式提取器
// 定位词表按 美国州 > 印度邦 > 已知城市 的顺序做首次命中
func NewContactExtractor() *ContactExtractor {
	e := &ContactExtractor{}
	for _, group := range [][]string{usStates, indianStates, knownCities} {
		for _, name := range group {
			pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
			e.locationPatterns = append(e.locationPatterns, pattern)
			e.locationNames = append(e.locationNames, name)
		}
	}
	return e
}

// Extract 提取联系方式，preamble为首个章节标题之前的文本
func (e *ContactExtractor) Extract(preamble, fullText string) types.ContactInfo {
	info := types.ContactInfo{}

	info.Name = e.extractName(preamble, fullText)
	info.FirstName, info.MiddleName, info.LastName = splitNameParts(info.Name)

	if m := emailRe.FindString(fullText); m != "" {
		info.Email = m
	}

	info.Phone, info.CountryCode = e.extractPhone(fullText)

	if m := linkedinRe.FindStringSubmatch(fullText); len(m) > 1 {
		info.LinkedIn = "linkedin.com/in/" + m[1]
	}
	if m := e.findGitHub(fullText); m != "" {
		info.GitHub = m
	}

	info.Location = e.extractLocation(fullText)
	// 作品集域名只在抬头块中找，避免把正文里的技术名词当作域名
	source := preamble
	if strings.TrimSpace(source) == "" {
		source = fullText
	}
	info.Portfolio = e.extractPortfolio(source)

	return info
}

// extractName 取首个非空且不含邮箱/URL/电话特征的行作为姓名
func (e *ContactExtractor) extractName(preamble, fullText string) string {
	source := preamble
	if strings.TrimSpace(source) == "" {
		source = fullText
	}
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, "@") ||
			strings.Contains(strings.ToLower(trimmed), "http") ||
			strings.Contains(strings.ToLower(trimmed), "linkedin") ||
			len(digitRe.FindAllString(trimmed, -1)) >= 4 {
			continue
		}
		return trimmed
	}
	return ""
}

// splitNameParts 按空白把姓名拆成 first/middle/last
func splitNameParts(name string) (first, middle, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", "", ""
	case 1:
		return parts[0], "", ""
	case 2:
		return parts[0], "", parts[1]
	default:
		return parts[0], strings.Join(parts[1:len(parts)-1], " "), parts[len(parts)-1]
	}
}

// extractPhone 提取电话号码，要求至少8位数字；前导+区号单独拆出
func (e *ContactExtractor) extractPhone(text string) (phone, countryCode string) {
	for _, candidate := range phoneRe.FindAllString(text, -1) {
		digits := digitRe.FindAllString(candidate, -1)
		if len(digits) < 8 {
			continue
		}
		candidate = strings.TrimSpace(candidate)
		if m := countryCodeRe.FindStringSubmatch(candidate); len(m) > 1 {
			countryCode = "+" + m[1]
			phone = strings.TrimSpace(candidate[len(m[0]):])
		} else {
			phone = candidate
		}
		return phone, countryCode
	}
	return "", ""
}

// findGitHub 匹配GitHub主页链接，排除linkedin等误匹配
func (e *ContactExtractor) findGitHub(text string) string {
	if m := githubRe.FindStringSubmatch(text); len(m) > 1 {
		return "github.com/" + m[1]
	}
	return ""
}

// extractLocation 按词表顺序首次命中
func (e *ContactExtractor) extractLocation(text string) string {
	for i, pattern := range e.locationPatterns {
		if pattern.MatchString(text) {
			return e.locationNames[i]
		}
	}
	return ""
}

// extractPortfolio 取第一个非linkedin/github的裸域名
func (e *ContactExtractor) extractPortfolio(text string) string {
	// 先移除邮箱，避免邮箱域名被当作作品集网站
	cleaned := emailRe.ReplaceAllString(text, " ")
	for _, m := range domainRe.FindAllStringSubmatch(cleaned, -1) {
		domain := strings.ToLower(m[1])
		if strings.Contains(domain, "linkedin.com") || strings.Contains(domain, "github.com") {
			continue
		}
		// 过滤掉技术名词伪装的域名，如 node.js / vue.js
		if strings.HasSuffix(domain, ".js") || strings.HasSuffix(domain, ".ts") || strings.HasSuffix(domain, ".py") {
			continue
		}
		return domain
	}
	return ""
}
