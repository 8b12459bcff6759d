package jobtype

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"ats-engine-go/internal/ai"
	"ats-engine-go/internal/config"
	"ats-engine-go/internal/logger"
	"ats-engine-go/internal/types"

	"github.com/cloudwego/eino/components/embedding"
)

const (
	defaultSimilarityThreshold = 0.4
	defaultGenerativeTimeout   = 10 * time.Second

	// 目录向量分批请求的批大小，受嵌入API单次输入条数限制
	embedBatchSize = 10

	// 置信度常量
	confGenerative = 0.85 // 生成式策略单独命中
	confConsensus  = 0.95 // 双策略结论一致
	confKeyword    = 0.6  // 关键词兜底命中
	confDefault    = 0.5  // 完全未识别
)

// relevantLineRes 用于从简历前部筛出含职位名的行
var relevantLineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:senior|junior|lead|principal|staff)?\s*(?:software|data|machine learning|ai|ml|cloud|security|devops|backend|frontend|full.?stack)\s+(?:engineer|developer|scientist|analyst|architect)`),
	regexp.MustCompile(`(?i)(?:product|project|program|engineering)\s+manager`),
	regexp.MustCompile(`(?i)(?:ux|ui|product)\s+designer`),
	regexp.MustCompile(`(?i)(?:business|data|systems|security|financial)\s+analyst`),
	regexp.MustCompile(`(?i)\b(?:registered\s+nurse|physician|doctor|pharmacist|therapist)\b`),
}

// seniorityPrefixes 生成式结果中要剥掉的级别前缀
var seniorityPrefixes = []string{"Senior", "Junior", "Lead", "Principal", "Staff", "Entry-Level"}

// titleSynonyms 职位词的同义归一表，用于双策略结论比对
var titleSynonyms = map[string]string{
	"developer":  "engineer",
	"lead":       "manager",
	"specialist": "analyst",
	"architect":  "designer",
}

// GenerativeClassifier 生成式职位分类的最小接口
type GenerativeClassifier interface {
	ClassifyJobTitle(ctx context.Context, resumeText string) (string, error)
}

// VectorCache 职位名向量的跨请求缓存，未命中返回 (nil, nil)
type VectorCache interface {
	GetTitleVector(ctx context.Context, title string) ([]float64, error)
	SetTitleVector(ctx context.Context, title string, vector []float64) error
}

// Classifier 双策略职位分类器：嵌入目录比对与生成式模型并行执行，
// 再按一致性规则合并两边的结论。
type Classifier struct {
	embedder   embedding.Embedder
	generative GenerativeClassifier
	cache      VectorCache

	threshold         float64
	generativeTimeout time.Duration

	catalogOnce    sync.Once
	catalogVectors [][]float64
	catalogErr     error
}

// ClassifierOption 分类器配置选项
type ClassifierOption func(*Classifier)

// WithVectorCache 设置目录向量缓存
func WithVectorCache(cache VectorCache) ClassifierOption {
	return func(c *Classifier) {
		c.cache = cache
	}
}

// NewClassifier 创建职位分类器；embedder 和 generative 均可为 nil，
// 缺失的策略按文档化的降级路径处理
func NewClassifier(embedder embedding.Embedder, generative GenerativeClassifier, cfg config.JobTypeConfig, opts ...ClassifierOption) *Classifier {
	threshold := cfg.SimilarityThreshold
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultSimilarityThreshold
	}
	genTimeout := defaultGenerativeTimeout
	if cfg.GenerativeTimeout != "" {
		if d, err := time.ParseDuration(cfg.GenerativeTimeout); err == nil && d > 0 {
			genTimeout = d
		}
	}

	c := &Classifier{
		embedder:          embedder,
		generative:        generative,
		threshold:         threshold,
		generativeTimeout: genTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify 对简历文本执行职位分类
func (c *Classifier) Classify(ctx context.Context, resumeText string) *types.JobTypeResult {
	if strings.TrimSpace(resumeText) == "" {
		return &types.JobTypeResult{Title: DefaultTitle, Confidence: confDefault, Method: "default"}
	}

	// 两条策略并行，生成式一路带独立超时
	type genOutcome struct {
		title string
		err   error
	}
	genCh := make(chan genOutcome, 1)
	if c.generative != nil {
		go func() {
			genCtx, cancel := context.WithTimeout(ctx, c.generativeTimeout)
			defer cancel()
			title, err := c.generative.ClassifyJobTitle(genCtx, resumeText)
			genCh <- genOutcome{title: title, err: err}
		}()
	} else {
		genCh <- genOutcome{err: fmt.Errorf("生成式分类器未配置")}
	}

	embResult := c.embeddingClassify(ctx, resumeText)

	var genTitle string
	select {
	case out := <-genCh:
		if out.err != nil {
			logger.Debug().Err(out.err).Msg("生成式职位分类不可用，使用嵌入/关键词结果")
		} else {
			genTitle = normalizeGenerativeTitle(out.title)
		}
	case <-time.After(c.generativeTimeout + time.Second):
		// goroutine 内部已有超时，这里只是兜底防泄漏等待
		logger.Warn().Msg("生成式职位分类超时")
	}

	return reconcile(embResult, genTitle)
}

// embeddingClassify 嵌入策略：简历向量与目录向量逐一余弦比对，
// 低于阈值或嵌入不可用时退到关键词兜底
func (c *Classifier) embeddingClassify(ctx context.Context, resumeText string) types.JobTypeResult {
	if c.embedder == nil {
		return c.keywordFallback(resumeText)
	}

	catalogVecs, err := c.loadCatalogVectors(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("职位目录向量加载失败，退到关键词兜底")
		return c.keywordFallback(resumeText)
	}

	relevant := extractRelevantLines(resumeText)
	vecs, err := c.embedder.EmbedStrings(ctx, []string{relevant})
	if err != nil || len(vecs) == 0 {
		logger.Warn().Err(err).Msg("简历文本向量化失败，退到关键词兜底")
		return c.keywordFallback(resumeText)
	}

	bestIdx, bestSim := -1, 0.0
	for i, cv := range catalogVecs {
		if sim := ai.CosineSimilarity(vecs[0], cv); sim > bestSim {
			bestIdx, bestSim = i, sim
		}
	}

	if bestIdx >= 0 && bestSim >= c.threshold {
		return types.JobTypeResult{
			Title:      jobTitleCatalog[bestIdx],
			Confidence: bestSim,
			Method:     "embedding",
		}
	}

	// 阈值之下时，关键词兜底若给出结果则优先
	fallback := c.keywordFallback(resumeText)
	if fallback.Method == "keyword" {
		return fallback
	}
	if bestIdx >= 0 && bestSim > 0 {
		return types.JobTypeResult{
			Title:      jobTitleCatalog[bestIdx],
			Confidence: bestSim,
			Method:     "embedding",
		}
	}
	return fallback
}

// keywordFallback 关键词兜底：按命中率取最高的职位，全部未命中时给默认值
func (c *Classifier) keywordFallback(resumeText string) types.JobTypeResult {
	textLower := strings.ToLower(resumeText)

	bestRole, bestRatio := "", 0.0
	for role, keywords := range roleKeywords {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(textLower, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		ratio := float64(hits) / float64(len(keywords))
		if ratio > bestRatio || (ratio == bestRatio && role < bestRole) {
			bestRole, bestRatio = role, ratio
		}
	}

	if bestRole != "" {
		return types.JobTypeResult{Title: bestRole, Confidence: confKeyword, Method: "keyword"}
	}
	return types.JobTypeResult{Title: DefaultTitle, Confidence: confDefault, Method: "default"}
}

// loadCatalogVectors 惰性加载目录向量：优先读缓存，缺失的分批向量化后回写
func (c *Classifier) loadCatalogVectors(ctx context.Context) ([][]float64, error) {
	c.catalogOnce.Do(func() {
		vectors := make([][]float64, len(jobTitleCatalog))
		var missing []int

		if c.cache != nil {
			for i, title := range jobTitleCatalog {
				vec, err := c.cache.GetTitleVector(ctx, title)
				if err != nil {
					logger.Debug().Err(err).Str("title", title).Msg("读取职位向量缓存失败")
				}
				if len(vec) > 0 {
					vectors[i] = vec
				} else {
					missing = append(missing, i)
				}
			}
		} else {
			for i := range jobTitleCatalog {
				missing = append(missing, i)
			}
		}

		for start := 0; start < len(missing); start += embedBatchSize {
			end := start + embedBatchSize
			if end > len(missing) {
				end = len(missing)
			}
			batch := missing[start:end]
			texts := make([]string, len(batch))
			for j, idx := range batch {
				texts[j] = jobTitleCatalog[idx]
			}
			vecs, err := c.embedder.EmbedStrings(ctx, texts)
			if err != nil {
				c.catalogErr = fmt.Errorf("目录向量化失败: %w", err)
				return
			}
			for j, idx := range batch {
				vectors[idx] = vecs[j]
				if c.cache != nil {
					if err := c.cache.SetTitleVector(ctx, jobTitleCatalog[idx], vecs[j]); err != nil {
						logger.Debug().Err(err).Msg("写入职位向量缓存失败")
					}
				}
			}
		}

		c.catalogVectors = vectors
		logger.Info().Int("titles", len(jobTitleCatalog)).Int("embedded", len(missing)).Msg("职位目录向量就绪")
	})
	return c.catalogVectors, c.catalogErr
}

// reconcile 合并两条策略的结论：
// 一致 -> 生成式标题，置信度0.95；生成式缺席 -> 嵌入结果原样返回；
// 不一致 -> 嵌入置信度<0.5时信任生成式，否则生成式打9折、下限0.7
func reconcile(emb types.JobTypeResult, genTitle string) *types.JobTypeResult {
	result := &types.JobTypeResult{
		EmbeddingTitle:      emb.Title,
		EmbeddingConfidence: emb.Confidence,
		GenerativeTitle:     genTitle,
	}

	if genTitle == "" {
		result.Title = emb.Title
		result.Confidence = emb.Confidence
		result.Method = emb.Method
		return result
	}

	if titlesAgree(emb.Title, genTitle) {
		result.Title = genTitle
		result.Confidence = confConsensus
		result.Method = "consensus"
		return result
	}

	result.Title = genTitle
	if emb.Confidence < 0.5 {
		result.Confidence = confGenerative
	} else {
		discounted := confGenerative * 0.9
		if discounted < 0.7 {
			discounted = 0.7
		}
		result.Confidence = discounted
	}
	result.Method = "generative"
	return result
}

// titlesAgree 判断两个职位名是否指向同一角色
func titlesAgree(a, b string) bool {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return true
	}
	wordsA := normalizedTitleWords(a)
	wordsB := normalizedTitleWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}
	// 同义归一后完全一致
	if strings.Join(wordsA, " ") == strings.Join(wordsB, " ") {
		return true
	}
	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	shared := 0
	for _, w := range wordsB {
		if setA[w] {
			shared++
			delete(setA, w) // 重复词只计一次
		}
	}
	return shared >= 2
}

// normalizedTitleWords 小写、剔除短词并做同义归一
func normalizedTitleWords(title string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.Trim(w, ".,/()")
		if len(w) <= 2 {
			continue
		}
		if canonical, ok := titleSynonyms[w]; ok {
			w = canonical
		}
		out = append(out, w)
	}
	return out
}

// normalizeGenerativeTitle 清洗生成式结果：剥掉级别前缀，长度异常则丢弃
func normalizeGenerativeTitle(raw string) string {
	title := ai.CleanGeneratedTitle(raw)
	if title == "" {
		return ""
	}
	for _, prefix := range seniorityPrefixes {
		if strings.HasPrefix(title, prefix+" ") {
			title = strings.TrimSpace(strings.TrimPrefix(title, prefix))
		}
	}
	if len(title) < 3 || len(title) > 50 {
		return ""
	}
	return title
}

// extractRelevantLines 取简历前部最可能描述职位的行；没有命中时取前10行
func extractRelevantLines(resumeText string) string {
	lines := strings.Split(resumeText, "\n")

	var relevant []string
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	for _, line := range lines[:limit] {
		for _, re := range relevantLineRes {
			if re.MatchString(line) {
				relevant = append(relevant, strings.TrimSpace(line))
				break
			}
		}
	}
	if len(relevant) > 0 {
		return strings.Join(relevant, " ")
	}

	head := len(lines)
	if head > 10 {
		head = 10
	}
	return strings.TrimSpace(strings.Join(lines[:head], " "))
}
