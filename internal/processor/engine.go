package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/jobtype"
	"ats-engine-go/internal/logger"
	"ats-engine-go/internal/parser"
	"ats-engine-go/internal/scorer"
	"ats-engine-go/internal/tracing"
	"ats-engine-go/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("processor")

// AnalyzeRequest 一次完整分析的输入
type AnalyzeRequest struct {
	SubmissionUUID string
	ResumeText     string
	JobDescription string
	// GenerateJD 为 true 且未提供职位描述时，按识别出的岗位生成一份
	GenerateJD bool
	// Signals 文件解析阶段产出的排版信号，纯文本分析时可为 nil
	Signals *types.FormattingSignals
}

// AnalysisEngine 分析引擎门面：结构化提取、岗位识别、五因子评分与建议生成。
// 引擎本身无状态，外部服务（生成式模型、向量服务）都通过注入的组件进入。
type AnalysisEngine struct {
	extractor    DocumentExtractor
	builder      *parser.StructuredResumeBuilder
	classifier   JobClassifier
	jdGen        DescriptionGenerator
	kwClassifier KeywordClassifier

	keyword   *scorer.KeywordAnalyzer
	format    *scorer.FormatScorer
	content   *scorer.ContentScorer
	ats       *scorer.ATSScorer
	semantic  *scorer.SemanticScorer
	recommend *scorer.RecommendationEngine
	planner   *scorer.ImprovementPlanner

	clock func() time.Time
}

// NewAnalysisEngine 创建分析引擎，未注入的外部组件走离线降级路径
func NewAnalysisEngine(opts ...Option) *AnalysisEngine {
	e := &AnalysisEngine{
		builder:   parser.NewStructuredResumeBuilder(),
		keyword:   scorer.NewKeywordAnalyzer(),
		format:    scorer.NewFormatScorer(),
		content:   scorer.NewContentScorer(),
		ats:       scorer.NewATSScorer(),
		semantic:  scorer.NewSemanticScorer(nil, 0),
		recommend: scorer.NewRecommendationEngine(),
		planner:   scorer.NewImprovementPlanner(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.classifier == nil {
		e.classifier = jobtype.NewClassifier(nil, nil, config.JobTypeConfig{})
	}
	if e.jdGen == nil {
		e.jdGen = jobtype.NewJDGenerator(nil)
	}
	return e
}

// ExtractStructuredResume 对纯文本做确定性的结构化提取
func (e *AnalysisEngine) ExtractStructuredResume(text string) *types.StructuredResume {
	return e.builder.Build(text)
}

// ParseDocument 从上传文件提取文本与排版信号。
// 未注入文档提取器时只接受纯文本内容。
func (e *AnalysisEngine) ParseDocument(ctx context.Context, data []byte, filename string) (string, *types.FormattingSignals, error) {
	ctx, span := tracer.Start(ctx, "AnalysisEngine.ParseDocument")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.name", tracing.SafeAttributeValue("file.name", filename, 128)),
		attribute.Int("file.size", len(data)),
	)

	if e.extractor != nil {
		text, signals, err := e.extractor.ExtractText(ctx, data, filename)
		if err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeExternal)
			return "", nil, NewExtractError("", err.Error())
		}
		return text, signals, nil
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext != "" && ext != "txt" {
		return "", nil, NewUnsupportedFormatError("", fmt.Sprintf("未配置文档提取器，无法解析 .%s 文件", ext))
	}
	text := string(data)
	signals := parser.AnalyzeFormatting(text, ext)
	parser.SupplementRawSignals(signals, data)
	return text, signals, nil
}

// Analyze 执行完整分析：结构化提取、岗位识别、五因子并发评分、建议生成。
// 外部服务失败走各自的降级路径，不会让分析本身失败。
func (e *AnalysisEngine) Analyze(ctx context.Context, req AnalyzeRequest) (*types.AnalysisResult, error) {
	ctx, span := tracer.Start(ctx, "AnalysisEngine.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("submission.uuid", req.SubmissionUUID),
		attribute.Int("resume.length", len(req.ResumeText)),
		attribute.Bool("jd.provided", strings.TrimSpace(req.JobDescription) != ""),
	)

	text := strings.TrimSpace(req.ResumeText)
	if text == "" {
		return e.emptyResult(req.SubmissionUUID), nil
	}

	resume := e.builder.Build(text)
	headerCount := e.builder.HeaderCount(text)

	classifyCtx, classifySpan := tracer.Start(ctx, "AnalysisEngine.ClassifyJobType")
	jobType := e.classifier.Classify(classifyCtx, text)
	classifySpan.SetAttributes(
		attribute.String("jobtype.title", jobType.Title),
		attribute.String("jobtype.method", jobType.Method),
	)
	switch jobType.Method {
	case "keyword", "default":
		tracing.RecordFallback(classifySpan, "jobtype", "模型服务不可用，使用"+jobType.Method+"路径")
	}
	classifySpan.End()

	jd := strings.TrimSpace(req.JobDescription)
	jdGenerated := false
	if jd == "" && req.GenerateJD {
		level := jobtype.DetermineExperienceLevel(text)
		generated, fromModel := e.jdGen.Generate(ctx, jobType.Title, level)
		jd = generated
		jdGenerated = jd != ""
		logger.Info().
			Str("job_title", jobType.Title).
			Str("level", level).
			Bool("from_model", fromModel).
			Msg("未提供职位描述，已按识别岗位生成")
	}

	result := &types.AnalysisResult{
		SubmissionUUID:          req.SubmissionUUID,
		JobType:                 *jobType,
		Structured:              resume,
		JobDescriptionGenerated: jdGenerated,
		AnalyzedAt:              e.clock().Unix(),
	}

	// 五个评分因子互不依赖，并发执行
	var wg sync.WaitGroup
	run := func(name string, fn func(ctx context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spanCtx, scoreSpan := tracer.Start(ctx, name)
			defer scoreSpan.End()
			fn(spanCtx)
		}()
	}

	withJD := jd != ""
	if withJD {
		run("Score.Keyword", func(context.Context) {
			result.Keyword = e.keyword.Analyze(text, jd)
		})
		run("Score.Semantic", func(scoreCtx context.Context) {
			result.Semantic = e.semantic.Score(scoreCtx, text, jd)
			if result.Semantic.Method == "fallback" {
				tracing.RecordFallback(trace.SpanFromContext(scoreCtx), "semantic", "嵌入服务不可用，使用中性降级分")
			}
		})
	}
	run("Score.Format", func(context.Context) {
		result.Format = e.format.Score(resume, headerCount)
	})
	run("Score.Content", func(context.Context) {
		result.Content = e.content.Score(text)
	})
	run("Score.ATS", func(context.Context) {
		result.ATS = e.ats.Score(resume, req.Signals)
	})
	wg.Wait()

	result.Factors = types.FactorScores{
		Keyword:  result.Keyword.Score,
		Semantic: result.Semantic.Score,
		Format:   result.Format.Score,
		Content:  result.Content.Score,
		ATS:      result.ATS.Score,
	}

	if withJD {
		e.classifyKeywords(ctx, result, jd)
		result.OverallScore, result.Category = scorer.Aggregate(result.Factors)
	} else {
		present := map[string]bool{"format": true, "content": true, "ats": true}
		result.OverallScore, result.Category = scorer.AggregatePartial(result.Factors, present)
	}

	result.Recommendations = e.buildRecommendations(result, withJD)
	result.Warnings = collectWarnings(resume)

	span.SetAttributes(
		attribute.Float64("score.overall", result.OverallScore),
		attribute.String("score.category", result.Category),
	)
	return result, nil
}

// classifyKeywords 调用生成式服务把职位关键词划分为技术/非技术两类。
// 服务缺席或调用失败时两个列表保持为空，不影响评分
func (e *AnalysisEngine) classifyKeywords(ctx context.Context, result *types.AnalysisResult, jd string) {
	if e.kwClassifier == nil {
		return
	}
	keywords := make([]string, 0, len(result.Keyword.Matched)+len(result.Keyword.Missing))
	keywords = append(keywords, result.Keyword.Matched...)
	keywords = append(keywords, result.Keyword.Missing...)
	if len(keywords) == 0 {
		return
	}

	classifyCtx, span := tracer.Start(ctx, "AnalysisEngine.ClassifyKeywords")
	defer span.End()

	technical, err := e.kwClassifier.ClassifyTechnicalKeywords(classifyCtx, keywords, jd)
	if err != nil {
		tracing.RecordFallback(span, "keywords", "关键词分类服务不可用，跳过技术属性划分")
		logger.Warn().Err(err).Msg("技术关键词分类失败")
		return
	}

	isTechnical := make(map[string]bool, len(technical))
	for _, kw := range technical {
		isTechnical[kw] = true
	}
	nonTechnical := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if !isTechnical[kw] {
			nonTechnical = append(nonTechnical, kw)
		}
	}
	result.Keyword.Technical = technical
	result.Keyword.NonTechnical = nonTechnical
	span.SetAttributes(attribute.Int("keywords.technical", len(technical)))
}

// QuickAnalyze 无职位描述的快速评分：只跑格式/内容/ATS三个因子
func (e *AnalysisEngine) QuickAnalyze(ctx context.Context, resumeText string, signals *types.FormattingSignals) (*types.AnalysisResult, error) {
	ctx, span := tracer.Start(ctx, "AnalysisEngine.QuickAnalyze")
	defer span.End()

	return e.Analyze(ctx, AnalyzeRequest{
		ResumeText: resumeText,
		Signals:    signals,
	})
}

// BuildImprovementPlan 基于已有分析结果生成改进计划
func (e *AnalysisEngine) BuildImprovementPlan(result *types.AnalysisResult) *types.ImprovementPlan {
	return e.planner.Plan(result, result.Structured)
}

// buildRecommendations 生成建议；缺席因子（无职位描述时的关键词/语义）的建议剔除
func (e *AnalysisEngine) buildRecommendations(result *types.AnalysisResult, withJD bool) []types.Recommendation {
	recs := e.recommend.Build(result)
	if withJD {
		return recs
	}
	kept := recs[:0]
	for _, rec := range recs {
		if rec.Factor == "keyword" || rec.Factor == "semantic" {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// emptyResult 空文本不报错，返回零分结果并在警告中说明
func (e *AnalysisEngine) emptyResult(submissionUUID string) *types.AnalysisResult {
	_, category := scorer.AggregatePartial(types.FactorScores{}, nil)
	return &types.AnalysisResult{
		SubmissionUUID: submissionUUID,
		Category:       category,
		JobType: types.JobTypeResult{
			Title:      jobtype.DefaultTitle,
			Confidence: 0.5,
			Method:     "default",
		},
		Structured: e.builder.Build(""),
		Warnings:   []string{"简历文本为空，未执行任何提取与评分"},
		AnalyzedAt: e.clock().Unix(),
	}
}

// collectWarnings 记录提取缺口，缺口不是错误但需要让调用方知道
func collectWarnings(resume *types.StructuredResume) []string {
	var warnings []string
	if resume.Contact.Email == "" && resume.Contact.Phone == "" {
		warnings = append(warnings, "未识别到邮箱或电话")
	}
	if len(resume.Education) == 0 {
		warnings = append(warnings, "未识别到教育经历")
	}
	if len(resume.Experience) == 0 {
		warnings = append(warnings, "未识别到工作经历")
	}
	if resume.MatchedSkillCount() == 0 {
		warnings = append(warnings, "未识别到技能信息")
	}
	return warnings
}
