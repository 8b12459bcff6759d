package parser

import (
	"regexp"
	"strconv"
	"strings"

	"ats-engine-go/internal/types"
)

var (
	// degreeRe 学位关键词，命中即开启一条新的教育经历
	degreeRe = regexp.MustCompile(`(?i)\b(bachelor|master|phd|ph\.d|doctorate|b\.?tech|m\.?tech|b\.?e\b|m\.?e\b|b\.?sc|m\.?sc|b\.?s\b|m\.?s\b|mba|bca|mca|b\.?a\b|m\.?a\b|diploma|associate)\b`)
	// bachelorRe / masterRe 用于缺失开始年份时的推算
	bachelorRe = regexp.MustCompile(`(?i)\b(bachelor|b\.?tech|b\.?e\b|b\.?sc|b\.?s\b|bca|b\.?a\b)\b`)
	masterRe   = regexp.MustCompile(`(?i)\b(master|m\.?tech|m\.?sc|m\.?s\b|mba|mca|m\.?a\b)\b`)

	institutionRe = regexp.MustCompile(`(?i)\b(university|college|institute|school|academy|polytechnic)\b`)
	yearRangeRe   = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*[-–—]\s*((?:19|20)\d{2}|present)\b`)
	singleYearRe  = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	gradeRe       = regexp.MustCompile(`(?i)\b(cgpa|gpa)\b\s*[:\-]?\s*(\d+(?:\.\d+)?)(?:\s*/\s*(\d+(?:\.\d+)?))?`)
	percentageRe  = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
	percentileRe  = regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d+)?)(?:st|nd|rd|th)?\s*percentile`)
	fieldSplitRe  = regexp.MustCompile(`(?i)\s+in\s+`)
)

// 缺失开始年份时按学位类型推算的修读年数
const (
	bachelorYears = 4
	masterYears   = 2
)

// EducationExtractor 从教育章节中提取结构化的教育经历
type EducationExtractor struct{}

// NewEducationExtractor 创建教育经历提取器
func NewEducationExtractor() *EducationExtractor {
	return &EducationExtractor{}
}

// Extract 逐行扫描教育章节
// 学位关键词行开启新条目并冲刷上一条；院校、年份、成绩行填充当前条目
func (e *EducationExtractor) Extract(sectionText string) []types.Education {
	entries := make([]types.Education, 0)
	if strings.TrimSpace(sectionText) == "" {
		return entries
	}

	var current *types.Education

	flush := func() {
		if current != nil {
			e.finalize(current)
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(sectionText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if degreeRe.MatchString(trimmed) {
			flush()
			current = &types.Education{Degree: trimmed}
			// "Bachelor of Science in Computer Science" 拆出专业
			if parts := fieldSplitRe.Split(trimmed, 2); len(parts) == 2 {
				current.Degree = strings.TrimSpace(parts[0])
				current.Field = strings.TrimSpace(parts[1])
			}
			// 学位行自身也可能携带年份或成绩
			e.applyYears(current, trimmed)
			e.applyGrade(current, trimmed)
			continue
		}

		if current == nil {
			continue
		}

		if institutionRe.MatchString(trimmed) && current.Institution == "" {
			// 逗号后半段通常是院校所在地
			if idx := strings.LastIndex(trimmed, ","); idx > 0 {
				current.Institution = strings.TrimSpace(trimmed[:idx])
				current.Location = strings.TrimSpace(trimmed[idx+1:])
			} else {
				current.Institution = trimmed
			}
			e.applyYears(current, trimmed)
			continue
		}

		if e.applyYears(current, trimmed) {
			continue
		}
		if e.applyGrade(current, trimmed) {
			continue
		}
		if current.Location == "" {
			if loc := defaultContactExtractor.extractLocation(trimmed); loc != "" {
				current.Location = loc
			}
		}
	}
	flush()

	return entries
}

// applyYears 解析年份区间或单个年份，返回是否有命中
func (e *EducationExtractor) applyYears(entry *types.Education, line string) bool {
	if m := yearRangeRe.FindStringSubmatch(line); len(m) > 2 {
		start, _ := strconv.Atoi(m[1])
		if entry.StartYear == 0 {
			entry.StartYear = start
			entry.StartYearEstimated = false
		}
		if strings.EqualFold(m[2], "present") {
			entry.EndYearIsPresent = true
		} else if end, err := strconv.Atoi(m[2]); err == nil && entry.EndYear == 0 {
			entry.EndYear = end
		}
		return true
	}
	if entry.EndYear == 0 && !entry.EndYearIsPresent {
		if m := singleYearRe.FindStringSubmatch(line); len(m) > 1 {
			year, _ := strconv.Atoi(m[1])
			entry.EndYear = year
			return true
		}
	}
	return false
}

// applyGrade 解析成绩行
// CGPA/GPA 显式 x/y 固定量纲，裸值按 ≤4.0 推断为4分制否则10分制；
// 百分比与百分位独立匹配，互不冲突
func (e *EducationExtractor) applyGrade(entry *types.Education, line string) bool {
	hit := false
	if m := percentileRe.FindStringSubmatch(line); len(m) > 1 && entry.Percentile == "" {
		entry.Percentile = m[1]
		hit = true
	}
	if entry.GPA != "" {
		return hit
	}

	if m := gradeRe.FindStringSubmatch(line); len(m) > 0 {
		entry.GradeType = strings.ToUpper(m[1])
		entry.GPA = m[2]
		if m[3] != "" {
			if scale, err := strconv.ParseFloat(m[3], 64); err == nil {
				entry.GPAScale = strconv.FormatFloat(scale, 'f', 1, 64)
			} else {
				entry.GPAScale = m[3]
			}
			return true
		}

		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return true
		}
		if value <= 4.0 {
			entry.GPAScale = "4.0"
		} else {
			entry.GPAScale = "10.0"
		}
		return true
	}

	if m := percentageRe.FindStringSubmatch(line); len(m) > 1 {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil && value <= 100 {
			entry.GPA = m[1]
			entry.GradeType = "Percentage"
			entry.GPAScale = "100"
			return true
		}
	}
	return hit
}

// finalize 补全缺失的开始年份：本科按4年、硕士按2年回推
func (e *EducationExtractor) finalize(entry *types.Education) {
	if entry.StartYear != 0 || entry.EndYear == 0 {
		return
	}
	switch {
	case bachelorRe.MatchString(entry.Degree):
		entry.StartYear = entry.EndYear - bachelorYears
		entry.StartYearEstimated = true
	case masterRe.MatchString(entry.Degree):
		entry.StartYear = entry.EndYear - masterYears
		entry.StartYearEstimated = true
	}
}

// defaultContactExtractor 复用联系方式提取器的定位词表
var defaultContactExtractor = NewContactExtractor()
