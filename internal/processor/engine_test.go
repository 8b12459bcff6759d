package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-engine-go/internal/types"
)

const sampleResume = `John Smith
john.smith@example.com
+1 555 123 4567

Summary
Backend engineer with six years of experience building payment systems.

Experience
Senior Backend Engineer
TechCorp Inc
01/2020 - 01/2023
- Developed payment microservices in Go handling 2 million requests daily
- Reduced p99 latency by 40% through caching and query optimization
- Led a team of 5 engineers across two product lines

Education
Bachelor of Technology in Computer Science
National Institute of Technology
2012 - 2016
CGPA: 8.2/10

Skills
Go, Python, PostgreSQL, Redis, Docker, Kubernetes, AWS
`

const sampleJD = `We are hiring a Senior Backend Engineer to build scalable payment services.
Requirements: 5+ years of experience with Go or Python, PostgreSQL, Redis,
Docker and Kubernetes on AWS. You will design microservices, own reliability
targets and mentor engineers. Experience with Kafka is a plus.`

type stubClassifier struct {
	result *types.JobTypeResult
}

func (s *stubClassifier) Classify(ctx context.Context, resumeText string) *types.JobTypeResult {
	return s.result
}

type stubJDGen struct {
	jd        string
	fromModel bool
	called    bool
}

func (s *stubJDGen) Generate(ctx context.Context, jobTitle, experienceLevel string) (string, bool) {
	s.called = true
	return s.jd, s.fromModel
}

type stubKeywordClassifier struct {
	err error
	got []string
}

// ClassifyTechnicalKeywords 把收到的第一个关键词标为技术词
func (s *stubKeywordClassifier) ClassifyTechnicalKeywords(ctx context.Context, keywords []string, jobContext string) ([]string, error) {
	s.got = keywords
	if s.err != nil {
		return nil, s.err
	}
	return keywords[:1], nil
}

func TestAnalyzeEmptyText(t *testing.T) {
	e := NewAnalysisEngine()

	result, err := e.Analyze(context.Background(), AnalyzeRequest{ResumeText: "   "})

	require.NoError(t, err)
	assert.Zero(t, result.OverallScore)
	assert.Equal(t, "Poor", result.Category)
	assert.Equal(t, "General Professional", result.JobType.Title)
	assert.NotEmpty(t, result.Warnings)

	// 空输入的结构化结果同样保持列表字段非nil
	require.NotNil(t, result.Structured)
	assert.NotNil(t, result.Structured.Education)
	assert.NotNil(t, result.Structured.Experience)
	assert.NotNil(t, result.Structured.ExperienceByCompany)
	assert.NotEmpty(t, result.Structured.Skills, "技能分类键集合固定存在")
	for _, skills := range result.Structured.Skills {
		assert.NotNil(t, skills)
	}
}

func TestAnalyzeClassifiesKeywordAttribution(t *testing.T) {
	stub := &stubKeywordClassifier{}
	e := NewAnalysisEngine(WithKeywordClassifier(stub))

	result, err := e.Analyze(context.Background(), AnalyzeRequest{
		ResumeText:     sampleResume,
		JobDescription: sampleJD,
	})

	require.NoError(t, err)
	require.NotEmpty(t, stub.got, "匹配与缺失关键词都应送入分类器")
	assert.Len(t, stub.got, len(result.Keyword.Matched)+len(result.Keyword.Missing))

	require.Len(t, result.Keyword.Technical, 1)
	assert.Equal(t, stub.got[0], result.Keyword.Technical[0])
	assert.Len(t, result.Keyword.NonTechnical, len(stub.got)-1)
	assert.NotContains(t, result.Keyword.NonTechnical, result.Keyword.Technical[0])
}

func TestAnalyzeKeywordAttributionDegradesQuietly(t *testing.T) {
	stub := &stubKeywordClassifier{err: errors.New("模型超时")}
	e := NewAnalysisEngine(WithKeywordClassifier(stub))

	result, err := e.Analyze(context.Background(), AnalyzeRequest{
		ResumeText:     sampleResume,
		JobDescription: sampleJD,
	})

	require.NoError(t, err, "分类失败只降级，不影响分析结果")
	assert.Empty(t, result.Keyword.Technical)
	assert.Empty(t, result.Keyword.NonTechnical)
	assert.Positive(t, result.OverallScore)
}

func TestAnalyzeWithJobDescription(t *testing.T) {
	e := NewAnalysisEngine(WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}))

	result, err := e.Analyze(context.Background(), AnalyzeRequest{
		SubmissionUUID: "test-uuid",
		ResumeText:     sampleResume,
		JobDescription: sampleJD,
		Signals:        &types.FormattingSignals{SourceFormat: "docx"},
	})

	require.NoError(t, err)
	assert.Equal(t, "test-uuid", result.SubmissionUUID)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Unix(), result.AnalyzedAt)

	// 所有因子与总分均在[0,100]内
	for name, score := range map[string]float64{
		"keyword":  result.Factors.Keyword,
		"semantic": result.Factors.Semantic,
		"format":   result.Factors.Format,
		"content":  result.Factors.Content,
		"ats":      result.Factors.ATS,
		"overall":  result.OverallScore,
	} {
		assert.GreaterOrEqual(t, score, 0.0, "%s 低于下限", name)
		assert.LessOrEqual(t, score, 100.0, "%s 超出上限", name)
	}

	// 离线环境下语义评分走降级路径
	assert.Equal(t, "fallback", result.Semantic.Method)
	assert.NotEmpty(t, result.Keyword.Matched)
	require.NotNil(t, result.Structured)
	assert.Equal(t, "john.smith@example.com", result.Structured.Contact.Email)
	assert.NotEmpty(t, result.Category)
}

func TestAnalyzeWithoutJDOmitsKeywordFactors(t *testing.T) {
	e := NewAnalysisEngine()

	result, err := e.Analyze(context.Background(), AnalyzeRequest{ResumeText: sampleResume})

	require.NoError(t, err)
	assert.Zero(t, result.Factors.Keyword)
	assert.Zero(t, result.Factors.Semantic)
	assert.Positive(t, result.OverallScore)

	// 缺席因子不产生建议
	for _, rec := range result.Recommendations {
		assert.NotEqual(t, "keyword", rec.Factor)
		assert.NotEqual(t, "semantic", rec.Factor)
	}
}

func TestAnalyzeGeneratesJDWhenRequested(t *testing.T) {
	classifier := &stubClassifier{result: &types.JobTypeResult{
		Title: "Backend Developer", Confidence: 0.9, Method: "consensus",
	}}
	jdGen := &stubJDGen{jd: sampleJD, fromModel: false}
	e := NewAnalysisEngine(
		WithJobClassifier(classifier),
		WithDescriptionGenerator(jdGen),
	)

	result, err := e.Analyze(context.Background(), AnalyzeRequest{
		ResumeText: sampleResume,
		GenerateJD: true,
	})

	require.NoError(t, err)
	assert.True(t, jdGen.called)
	// 离线模板生成的JD同样计为系统生成
	assert.True(t, result.JobDescriptionGenerated)
	assert.Equal(t, "Backend Developer", result.JobType.Title)
	// 生成了JD后按全因子聚合
	assert.NotEmpty(t, result.Keyword.Matched)
}

func TestAnalyzeIdempotent(t *testing.T) {
	e := NewAnalysisEngine(WithClock(func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}))
	req := AnalyzeRequest{ResumeText: sampleResume, JobDescription: sampleJD}

	first, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.Factors, second.Factors)
	assert.Equal(t, first.Keyword.Matched, second.Keyword.Matched)
}

func TestQuickAnalyze(t *testing.T) {
	e := NewAnalysisEngine()

	result, err := e.QuickAnalyze(context.Background(), sampleResume, nil)

	require.NoError(t, err)
	assert.Positive(t, result.Factors.Format)
	assert.Positive(t, result.Factors.Content)
	assert.Zero(t, result.Factors.Keyword)
}

func TestParseDocumentPlainText(t *testing.T) {
	e := NewAnalysisEngine()

	text, signals, err := e.ParseDocument(context.Background(), []byte(sampleResume), "resume.txt")

	require.NoError(t, err)
	assert.Equal(t, sampleResume, text)
	require.NotNil(t, signals)
	assert.Equal(t, "txt", signals.SourceFormat)
}

func TestParseDocumentUnsupportedWithoutExtractor(t *testing.T) {
	e := NewAnalysisEngine()

	_, _, err := e.ParseDocument(context.Background(), []byte("%PDF-1.4"), "resume.pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestBuildImprovementPlan(t *testing.T) {
	e := NewAnalysisEngine()
	result, err := e.Analyze(context.Background(), AnalyzeRequest{
		ResumeText:     sampleResume,
		JobDescription: sampleJD,
	})
	require.NoError(t, err)

	plan := e.BuildImprovementPlan(result)

	require.NotNil(t, plan)
	assert.Equal(t, len(plan.Items), plan.Summary.TotalItems)
	assert.LessOrEqual(t, plan.Summary.EstimatedBoost, 40.0)
}

func TestAnalysisErrorUnwrapping(t *testing.T) {
	err := NewExtractError("uuid-1", "文件损坏")

	assert.True(t, errors.Is(err, ErrExtractTextFailed))
	assert.Contains(t, err.Error(), "uuid-1")
	assert.Contains(t, err.Error(), "文件损坏")
}
