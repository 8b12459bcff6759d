package parser

import (
	"regexp"
	"sort"
	"strings"
)

// SkillsClassifier 按固定类别词表对简历文本中出现的技能做分类
// 类别集合是封闭枚举，词表之外的技能不会被收录
type SkillsClassifier struct {
	// patterns 类别 -> (规范技能名, 编译后的整词正则)
	patterns map[string][]skillPattern
}

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

// NewSkillsClassifier 创建技能分类器，编译全部词表正则
// 词表是只读的，分类器可并发使用
func NewSkillsClassifier() *SkillsClassifier {
	c := &SkillsClassifier{patterns: make(map[string][]skillPattern, len(skillCategories))}
	for category, terms := range skillCategories {
		compiled := make([]skillPattern, 0, len(terms))
		for _, term := range terms {
			compiled = append(compiled, skillPattern{name: term, re: buildTermPattern(term)})
		}
		c.patterns[category] = compiled
	}
	return c
}

// Classify 扫描文本，返回 类别 -> 去重排序后的技能名 映射
// 结果始终包含全部类别键，未命中的类别对应空列表而非缺席
func (c *SkillsClassifier) Classify(text string) map[string][]string {
	result := make(map[string][]string, len(c.patterns))
	empty := strings.TrimSpace(text) == ""

	for category, patterns := range c.patterns {
		matched := make([]string, 0)
		if !empty {
			seen := make(map[string]bool)
			for _, p := range patterns {
				if p.re.MatchString(text) && !seen[p.name] {
					seen[p.name] = true
					matched = append(matched, p.name)
				}
			}
			sort.Strings(matched)
		}
		result[category] = matched
	}
	return result
}

// Categories 返回全部类别名（排序后），类别集合是封闭的
func (c *SkillsClassifier) Categories() []string {
	names := make([]string, 0, len(c.patterns))
	for category := range c.patterns {
		names = append(names, category)
	}
	sort.Strings(names)
	return names
}

// buildTermPattern 为技能词构造大小写不敏感的整词正则
// 不用 \b 是因为 C++ / C# / .NET 这类词以非单词字符结尾
func buildTermPattern(term string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(term)
	// 词内空格放宽为任意空白
	quoted = strings.ReplaceAll(quoted, ` `, `\s+`)
	return regexp.MustCompile(`(?i)(^|[^a-zA-Z0-9])` + quoted + `($|[^a-zA-Z0-9+#.])`)
}
