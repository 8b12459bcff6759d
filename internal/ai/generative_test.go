package ai

import (
	"context"
	"errors"
	"testing"

	"ats-engine-go/internal/config"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanGeneratedTitle(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Backend Engineer", "Backend Engineer"},
		{"  \"Software Engineer\".  ", "Software Engineer"},
		{"输出: Data Analyst", "Data Analyst"},
		{"Title: DevOps Engineer\n这是额外的解释文字", "DevOps Engineer"},
		{"Senior Staff Machine Learning Platform Engineer", ""}, // 超过4个词
		{"", ""},
		{"   \n  ", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanGeneratedTitle(c.raw), "输入: %q", c.raw)
	}
}

func TestClassifyJobTitleWithMock(t *testing.T) {
	mock := NewMockChatClient("Backend Engineer", nil)
	svc, err := NewGenerativeTextService(mock, config.GenerativeConfig{CallTimeout: "5s"})
	require.NoError(t, err)

	title, err := svc.ClassifyJobTitle(context.Background(), "Developed REST APIs in Go and deployed on Kubernetes.")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", title)

	// 确认简历文本确实进入了提示词
	msgs := mock.GetReceivedMessages()
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[len(msgs)-1].Content, "Kubernetes")
}

func TestClassifyJobTitleEmptyInput(t *testing.T) {
	svc, err := NewGenerativeTextService(NewMockChatClient("x", nil), config.GenerativeConfig{})
	require.NoError(t, err)

	_, err = svc.ClassifyJobTitle(context.Background(), "   ")
	assert.Error(t, err)
}

func TestClassifyJobTitleRetriesThenSucceeds(t *testing.T) {
	mock := NewMockChatClientSequential([]MockResponse{
		{Error: errors.New("temporary upstream failure")},
		{Content: "Data Scientist"},
	})
	svc, err := NewGenerativeTextService(mock, config.GenerativeConfig{
		CallTimeout:      "5s",
		MaxRetries:       2,
		RetryWaitSeconds: 0,
	})
	require.NoError(t, err)
	svc.retryWait = 0 // 测试中不真正等待

	title, err := svc.ClassifyJobTitle(context.Background(), "Built ML pipelines with Python and Spark.")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", title)
}

func TestGenerateJobDescriptionWithMock(t *testing.T) {
	jdText := "Responsibilities:\n- Build backend services\nRequirements:\n- 3+ years of Go"
	svc, err := NewGenerativeTextService(NewMockChatClient(jdText, nil), config.GenerativeConfig{CallTimeout: "5s"})
	require.NoError(t, err)

	jd, err := svc.GenerateJobDescription(context.Background(), "Backend Engineer", "mid")
	require.NoError(t, err)
	assert.Contains(t, jd, "Responsibilities")
}

func TestClassifyTechnicalKeywords(t *testing.T) {
	// 模型返回的词只有属于输入集合的才会被保留
	mock := NewMockChatClient("python, kubernetes, Teamwork, golang", nil)
	svc, err := NewGenerativeTextService(mock, config.GenerativeConfig{CallTimeout: "5s"})
	require.NoError(t, err)

	got, err := svc.ClassifyTechnicalKeywords(context.Background(),
		[]string{"python", "kubernetes", "communication", "leadership"}, "Backend Engineer role")
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "kubernetes"}, got)

	// 空输入直接返回
	got, err = svc.ClassifyTechnicalKeywords(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChatBreakerDisabledPassthrough(t *testing.T) {
	// breaker_enabled=false 时返回 nil，Execute 对 nil 接收者直接透传
	b := NewChatBreaker("test", config.GenerativeConfig{BreakerEnabled: false})
	assert.Nil(t, b)

	msg, err := b.Execute(func() (*schema.Message, error) {
		return schema.AssistantMessage("ok", nil), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Content)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	// 维度不匹配或零向量时返回0
	assert.Equal(t, 0.0, CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}))
	assert.Equal(t, 0.0, CosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}

func TestMockEmbedderDeterministic(t *testing.T) {
	e := NewMockEmbedder(32)
	a, err := e.EmbedStrings(context.Background(), []string{"hello", "hello", "world"})
	require.NoError(t, err)
	require.Len(t, a, 3)
	assert.Equal(t, a[0], a[1], "同一文本应产生同一向量")
	assert.NotEqual(t, a[0], a[2], "不同文本应产生不同向量")
}
