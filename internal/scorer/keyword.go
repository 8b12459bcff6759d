package scorer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"ats-engine-go/internal/types"
)

const (
	minKeywordLen     = 3
	minKeywordFreq    = 2
	// 通用词过滤若移除超过该比例的候选词，则放宽过滤
	genericFilterRelaxRatio = 0.7
	relaxKeepMinLen         = 5
)

var tokenRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+#./\-]*`)

// keywordMatchRes 按关键词缓存的整词匹配正则。
// 边界用非字母数字字符表达，兼容 c++ / c# / node.js 这类词尾。
var keywordMatchRes sync.Map

// KeywordAnalyzer 对照职位描述统计简历的关键词覆盖率
type KeywordAnalyzer struct{}

// NewKeywordAnalyzer 创建关键词分析器
func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze 提取职位描述中的有效关键词并与简历比对。
// score = 命中数 / 有效关键词数 × 100，上限100。
func (a *KeywordAnalyzer) Analyze(resumeText, jobDescription string) types.KeywordAnalysis {
	meaningful := ExtractMeaningfulKeywords(jobDescription)
	if len(meaningful) == 0 {
		return types.KeywordAnalysis{Score: 0, Matched: []string{}, Missing: []string{}}
	}

	var matched, missing []string
	for _, kw := range meaningful {
		if containsKeyword(resumeText, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	score := float64(len(matched)) / float64(len(meaningful)) * 100
	if score > 100 {
		score = 100
	}

	return types.KeywordAnalysis{
		Score:           score,
		Matched:         matched,
		Missing:         missing,
		MeaningfulCount: len(meaningful),
	}
}

// ExtractMeaningfulKeywords 从职位描述提取有效关键词：
// 词频>=2的内容词加上领域正则命中的术语，剔除停用词后过通用词过滤，
// 过滤掉超过70%候选时放宽为保留长词和缩写白名单
func ExtractMeaningfulKeywords(jobDescription string) []string {
	textLower := strings.ToLower(jobDescription)

	freq := make(map[string]int)
	for _, tok := range tokenRe.FindAllString(textLower, -1) {
		tok = strings.Trim(tok, "./-")
		if len(tok) < minKeywordLen || stopwords[tok] {
			continue
		}
		freq[tok]++
	}

	candidates := make(map[string]bool)
	for tok, n := range freq {
		if n >= minKeywordFreq {
			candidates[tok] = true
		}
	}
	// 领域术语不看词频
	for _, re := range domainTermRes {
		for _, m := range re.FindAllString(textLower, -1) {
			candidates[strings.ToLower(m)] = true
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	var kept []string
	for kw := range candidates {
		if !genericVocabulary[kw] {
			kept = append(kept, kw)
		}
	}

	// 过滤过狠说明职位描述本身是低信噪的模板文本，放宽标准
	removedRatio := 1 - float64(len(kept))/float64(len(candidates))
	if removedRatio > genericFilterRelaxRatio {
		kept = kept[:0]
		for kw := range candidates {
			if len(kw) >= relaxKeepMinLen || acronymAllowList[kw] {
				kept = append(kept, kw)
			}
		}
	}

	sort.Strings(kept)
	return kept
}

// containsKeyword 整词匹配，多词短语按字面匹配
func containsKeyword(text, keyword string) bool {
	re := keywordRegexp(keyword)
	return re.MatchString(text)
}

func keywordRegexp(keyword string) *regexp.Regexp {
	if cached, ok := keywordMatchRes.Load(keyword); ok {
		return cached.(*regexp.Regexp)
	}
	escaped := strings.ReplaceAll(regexp.QuoteMeta(keyword), " ", `\s+`)
	re := regexp.MustCompile(fmt.Sprintf(`(?i)(^|[^a-zA-Z0-9])%s($|[^a-zA-Z0-9+#.])`, escaped))
	keywordMatchRes.Store(keyword, re)
	return re
}
