package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/logger"
	"ats-engine-go/pkg/ratelimit"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// classifyTitleSystemPrompt 职位分类的系统提示词。
// 要求模型只输出标准化职位名，避免携带解释或标点。
const classifyTitleSystemPrompt = `你是一位资深的招聘领域分析专家，擅长从简历文本中判断候选人的目标职位类型。

以下是一些示例：

简历片段: "Developed REST APIs in Go, deployed microservices on Kubernetes, optimized PostgreSQL queries."
输出: Backend Engineer

简历片段: "Built dashboards in Tableau, ran A/B tests, presented insights to stakeholders."
输出: Data Analyst

简历片段: "Led a team of 8 engineers, owned the product roadmap, coordinated cross-functional releases."
输出: Engineering Manager`

const classifyTitleUserPromptFmt = `请阅读下面的简历内容，判断最匹配的职位类型。

要求：
- 只返回职位名称本身，由2到4个英文单词组成
- 不要输出解释、标点或任何其他文本

简历内容:
"""
%s
"""`

// generateJDSystemPrompt 岗位描述生成的系统提示词
const generateJDSystemPrompt = `你是一位专业的招聘顾问，负责根据职位名称和经验级别撰写标准的英文岗位描述(Job Description)。岗位描述需包含职责(Responsibilities)和任职要求(Requirements)两部分，使用简洁的要点列表，总长度控制在300词以内。只输出岗位描述正文。`

const generateJDUserPromptFmt = `职位名称: %s
经验级别: %s

请生成该职位的英文岗位描述。`

// maxClassifyInputChars 送入模型的简历文本上限，超出部分截断
const maxClassifyInputChars = 6000

// GenerativeTextService 封装生成式模型的文本任务：职位分类与岗位描述生成。
// 统一走限流器和熔断器，单次调用带超时。
type GenerativeTextService struct {
	chatModel model.ToolCallingChatModel
	limiter   *ratelimit.TokenBucket
	breaker   *ChatBreaker

	callTimeout time.Duration
	maxRetries  int
	retryWait   time.Duration
}

// GenerativeOption 生成式服务的配置选项
type GenerativeOption func(*GenerativeTextService)

// WithChatBreaker 设置熔断器
func WithChatBreaker(b *ChatBreaker) GenerativeOption {
	return func(s *GenerativeTextService) {
		s.breaker = b
	}
}

// WithRateLimiter 设置限流器
func WithRateLimiter(tb *ratelimit.TokenBucket) GenerativeOption {
	return func(s *GenerativeTextService) {
		s.limiter = tb
	}
}

// NewGenerativeTextService 创建生成式文本服务
func NewGenerativeTextService(chatModel model.ToolCallingChatModel, cfg config.GenerativeConfig, opts ...GenerativeOption) (*GenerativeTextService, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chatModel 不能为空")
	}

	callTimeout := 20 * time.Second
	if cfg.CallTimeout != "" {
		if d, err := time.ParseDuration(cfg.CallTimeout); err == nil && d > 0 {
			callTimeout = d
		}
	}

	retryWait := 2 * time.Second
	if cfg.RetryWaitSeconds > 0 {
		retryWait = time.Duration(cfg.RetryWaitSeconds) * time.Second
	}

	svc := &GenerativeTextService{
		chatModel:   chatModel,
		callTimeout: callTimeout,
		maxRetries:  cfg.MaxRetries,
		retryWait:   retryWait,
	}

	if cfg.QPM > 0 {
		svc.limiter = ratelimit.NewTokenBucket(cfg.QPM, cfg.QPM).
			WithRetryPolicy(retryWait, cfg.MaxRetries)
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// ClassifyJobTitle 让模型从简历文本判断职位类型，返回2-4个词的标准化职位名
func (s *GenerativeTextService) ClassifyJobTitle(ctx context.Context, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", fmt.Errorf("简历文本不能为空")
	}
	if len(resumeText) > maxClassifyInputChars {
		resumeText = resumeText[:maxClassifyInputChars]
	}

	messages := []*schema.Message{
		schema.SystemMessage(classifyTitleSystemPrompt),
		schema.UserMessage(fmt.Sprintf(classifyTitleUserPromptFmt, resumeText)),
	}

	content, err := s.generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("职位分类调用失败: %w", err)
	}

	title := CleanGeneratedTitle(content)
	if title == "" {
		return "", fmt.Errorf("模型未返回有效的职位名称: %q", truncateForLog(content, 200))
	}
	return title, nil
}

// GenerateJobDescription 根据职位名称与经验级别生成岗位描述
func (s *GenerativeTextService) GenerateJobDescription(ctx context.Context, jobTitle, experienceLevel string) (string, error) {
	if strings.TrimSpace(jobTitle) == "" {
		return "", fmt.Errorf("职位名称不能为空")
	}
	if experienceLevel == "" {
		experienceLevel = "mid"
	}

	messages := []*schema.Message{
		schema.SystemMessage(generateJDSystemPrompt),
		schema.UserMessage(fmt.Sprintf(generateJDUserPromptFmt, jobTitle, experienceLevel)),
	}

	content, err := s.generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("岗位描述生成调用失败: %w", err)
	}

	jd := strings.TrimSpace(strings.TrimPrefix(content, "\uFEFF"))
	if jd == "" {
		return "", fmt.Errorf("模型返回了空的岗位描述")
	}
	if !utf8.ValidString(jd) {
		jd = strings.ToValidUTF8(jd, "")
	}
	return jd, nil
}

const classifyKeywordsSystemPrompt = `你是一位技术招聘专家。给定一组从岗位描述中提取的关键词，请从中挑出属于具体技术能力（编程语言、框架、工具、平台、方法论）的词，过滤掉通用软技能和业务套话。只输出挑选出的关键词，用英文逗号分隔，不要输出其他文本。`

const classifyKeywordsUserPromptFmt = `岗位背景: %s

关键词列表: %s

请输出其中的技术类关键词（逗号分隔）：`

// ClassifyTechnicalKeywords 让模型从关键词集合中挑出技术类关键词。
// 只会返回输入集合的子集，模型幻觉出的新词被丢弃。
func (s *GenerativeTextService) ClassifyTechnicalKeywords(ctx context.Context, keywords []string, jobContext string) ([]string, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if len(jobContext) > 1000 {
		jobContext = jobContext[:1000]
	}

	messages := []*schema.Message{
		schema.SystemMessage(classifyKeywordsSystemPrompt),
		schema.UserMessage(fmt.Sprintf(classifyKeywordsUserPromptFmt, jobContext, strings.Join(keywords, ", "))),
	}

	content, err := s.generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("技术关键词分类调用失败: %w", err)
	}

	allowed := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		allowed[strings.ToLower(strings.TrimSpace(kw))] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.FieldsFunc(content, func(r rune) bool { return r == ',' || r == '\n' || r == '、' }) {
		kw := strings.ToLower(strings.Trim(strings.TrimSpace(part), "\"'`."))
		if kw == "" || seen[kw] || !allowed[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out, nil
}

// generate 统一的模型调用路径：限流 -> 熔断 -> 超时调用，必要时重试
func (s *GenerativeTextService) generate(ctx context.Context, messages []*schema.Message) (string, error) {
	call := func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		resp, err := s.breaker.Execute(func() (*schema.Message, error) {
			return s.chatModel.Generate(callCtx, messages)
		})
		if err != nil {
			return "", err
		}
		if resp == nil || resp.Content == "" {
			return "", fmt.Errorf("模型返回了空响应")
		}
		return resp.Content, nil
	}

	if s.limiter != nil {
		var content string
		err := s.limiter.RetryWithBackoff(ctx, func() error {
			var callErr error
			content, callErr = call()
			return callErr
		})
		return content, err
	}

	var content string
	var lastErr error
	attempts := s.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		content, lastErr = call()
		if lastErr == nil {
			return content, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if i < attempts-1 {
			logger.Debug().Err(lastErr).Int("attempt", i+1).Msg("模型调用失败，准备重试")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.retryWait):
			}
		}
	}
	return "", lastErr
}

// CleanGeneratedTitle 清洗模型返回的职位名称：去掉引号、句末标点和多余空白，
// 超过4个词或为空则视为无效返回空串
func CleanGeneratedTitle(raw string) string {
	title := strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF"))
	// 模型偶尔会带上"输出:"之类的前缀
	for _, prefix := range []string{"输出:", "输出：", "Output:", "Title:", "职位:", "职位："} {
		if strings.HasPrefix(title, prefix) {
			title = strings.TrimSpace(strings.TrimPrefix(title, prefix))
		}
	}
	// 只取第一行
	if idx := strings.IndexAny(title, "\r\n"); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	title = strings.Trim(title, "\"'`“”‘’.,;:!。")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return ""
	}
	if n := len(strings.Fields(title)); n > 4 {
		return ""
	}
	return title
}
