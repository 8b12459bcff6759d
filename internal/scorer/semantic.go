package scorer

import (
	"context"
	"regexp"
	"strings"

	"ats-engine-go/internal/ai"
	"ats-engine-go/internal/logger"
	"ats-engine-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
)

const (
	minSentenceLen             = 20
	defaultMaxSentencesPerSide = 10
	// 语义服务不可用时的中性分
	semanticFallbackScore = 50
)

var sentenceSplitRe = regexp.MustCompile(`[.!?。！？\n]+`)

// SemanticScorer 语义相似度评分：简历与职位描述逐句向量比对。
// 每个简历句取与职位描述句的最大余弦相似度，再取平均后放大到0-100。
type SemanticScorer struct {
	embedder     embedding.Embedder
	maxPerSide   int
}

// NewSemanticScorer 创建语义评分器；embedder 为 nil 时恒走降级路径
func NewSemanticScorer(embedder embedding.Embedder, maxSentencesPerSide int) *SemanticScorer {
	if maxSentencesPerSide <= 0 {
		maxSentencesPerSide = defaultMaxSentencesPerSide
	}
	return &SemanticScorer{embedder: embedder, maxPerSide: maxSentencesPerSide}
}

// Score 计算语义相似度得分，任何失败都降级为中性分50而非报错
func (s *SemanticScorer) Score(ctx context.Context, resumeText, jobDescription string) types.SemanticResult {
	fallback := types.SemanticResult{Score: semanticFallbackScore, Method: "fallback"}

	if s.embedder == nil {
		return fallback
	}

	resumeSentences := splitSentences(resumeText, s.maxPerSide)
	jdSentences := splitSentences(jobDescription, s.maxPerSide)
	if len(resumeSentences) == 0 || len(jdSentences) == 0 {
		return fallback
	}

	// 两侧句子合并为一次嵌入请求
	all := append(append([]string{}, resumeSentences...), jdSentences...)
	vectors, err := s.embedder.EmbedStrings(ctx, all)
	if err != nil || len(vectors) != len(all) {
		logger.Warn().Err(err).Msg("语义评分向量化失败，返回中性分")
		return fallback
	}
	resumeVecs := vectors[:len(resumeSentences)]
	jdVecs := vectors[len(resumeSentences):]

	var sum float64
	for _, rv := range resumeVecs {
		best := 0.0
		for _, jv := range jdVecs {
			if sim := ai.CosineSimilarity(rv, jv); sim > best {
				best = sim
			}
		}
		sum += best
	}

	score := sum / float64(len(resumeVecs)) * 100
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return types.SemanticResult{Score: score, Method: "embedding"}
}

// splitSentences 拆句并过滤短句，每侧句数有上限
func splitSentences(text string, limit int) []string {
	var out []string
	for _, raw := range sentenceSplitRe.Split(text, -1) {
		sentence := strings.TrimSpace(raw)
		if len(sentence) <= minSentenceLen {
			continue
		}
		out = append(out, sentence)
		if len(out) >= limit {
			break
		}
	}
	return out
}
