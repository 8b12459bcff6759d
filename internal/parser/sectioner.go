package parser

import (
	"strings"

	"ats-engine-go/internal/types"
)

// maxHeaderLength 章节标题行的最大长度，超过则视为正文
const maxHeaderLength = 50

// headerVocabulary 各章节类型对应的标题词表（小写、去装饰后精确匹配）
var headerVocabulary = map[types.SectionType][]string{
	types.SectionSummary: {
		"summary", "professional summary", "profile", "professional profile",
		"objective", "career objective", "about", "about me",
	},
	types.SectionExperience: {
		"experience", "work experience", "professional experience",
		"employment", "employment history", "work history", "career history",
		"internships", "internship experience",
	},
	types.SectionEducation: {
		"education", "academic background", "academics",
		"qualifications", "educational qualifications",
	},
	types.SectionSkills: {
		"skills", "technical skills", "core competencies", "key skills",
		"technologies", "skills & abilities", "skills and abilities",
	},
	types.SectionProjects: {
		"projects", "personal projects", "academic projects",
		"key projects", "selected projects",
	},
	types.SectionCertifications: {
		"certifications", "certificates", "licenses",
		"certifications & licenses", "certifications and licenses",
	},
	types.SectionAwards: {
		"awards", "honors", "achievements", "honors & awards",
		"awards & recognition", "awards and recognition",
	},
	types.SectionLanguages: {
		"languages", "language proficiency",
	},
	types.SectionInterests: {
		"interests", "hobbies", "hobbies & interests", "hobbies and interests",
	},
	types.SectionContact: {
		"contact", "contact information", "personal details", "personal information",
	},
}

// TextSectioner 按章节标题把简历原文切分为章节
type TextSectioner struct {
	// vocab 标题短语到章节类型的反向索引
	vocab map[string]types.SectionType
}

// NewTextSectioner 创建章节切分器
func NewTextSectioner() *TextSectioner {
	vocab := make(map[string]types.SectionType)
	for section, phrases := range headerVocabulary {
		for _, phrase := range phrases {
			vocab[phrase] = section
		}
	}
	return &TextSectioner{vocab: vocab}
}

// Sectionize 将原文切分为章节，首个标题之前的内容归入联系方式章节
// 对自身输出是幂等的：章节内容中不再包含标题行
func (s *TextSectioner) Sectionize(text string) map[types.SectionType]string {
	sections := make(map[types.SectionType]string)
	if strings.TrimSpace(text) == "" {
		return sections
	}

	builders := make(map[types.SectionType]*strings.Builder)
	current := types.SectionContact

	for _, line := range strings.Split(text, "\n") {
		if section, ok := s.matchHeader(line); ok {
			current = section
			continue
		}
		b, ok := builders[current]
		if !ok {
			b = &strings.Builder{}
			builders[current] = b
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for section, b := range builders {
		content := strings.TrimSpace(b.String())
		if content != "" {
			sections[section] = content
		}
	}
	return sections
}

// matchHeader 判断一行是否为章节标题
func (s *TextSectioner) matchHeader(line string) (types.SectionType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxHeaderLength {
		return "", false
	}

	// 去掉标题行常见的装饰字符后做词表匹配
	normalized := strings.ToLower(strings.Trim(trimmed, " \t:：-=_*#|"))
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" {
		return "", false
	}

	section, ok := s.vocab[normalized]
	return section, ok
}

// HeaderCount 统计文本中被识别为章节标题的行数，供格式评分使用
func (s *TextSectioner) HeaderCount(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if _, ok := s.matchHeader(line); ok {
			count++
		}
	}
	return count
}
