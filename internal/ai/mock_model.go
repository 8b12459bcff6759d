package ai

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// MockResponse 定义 MockChatClient 的单次预期响应
type MockResponse struct {
	Content string
	Error   error
}

// MockChatClient 用于测试和降级运行的 ChatModel 模拟实现
type MockChatClient struct {
	mu sync.Mutex

	// 固定响应模式
	ExpectedResponse string
	ExpectedError    error

	// 顺序响应模式
	SequentialResponses []MockResponse
	ResponseIndex       int
	IsSequential        bool

	ReceivedMessages []*schema.Message
}

var _ model.ChatModel = (*MockChatClient)(nil)
var _ model.ToolCallingChatModel = (*MockChatClient)(nil)

// NewMockChatClient 创建返回固定响应的模拟客户端
func NewMockChatClient(expectedResponse string, expectedError error) *MockChatClient {
	return &MockChatClient{
		ExpectedResponse: expectedResponse,
		ExpectedError:    expectedError,
		ReceivedMessages: make([]*schema.Message, 0),
	}
}

// NewMockChatClientSequential 创建按顺序返回不同响应的模拟客户端
func NewMockChatClientSequential(responses []MockResponse) *MockChatClient {
	if len(responses) == 0 {
		responses = []MockResponse{{Error: errors.New("mock client has no responses configured")}}
	}
	return &MockChatClient{
		SequentialResponses: responses,
		IsSequential:        true,
		ReceivedMessages:    make([]*schema.Message, 0),
	}
}

// Generate 返回预设响应并记录收到的消息
func (m *MockChatClient) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReceivedMessages = append(m.ReceivedMessages, input...)

	if m.IsSequential {
		if m.ResponseIndex >= len(m.SequentialResponses) {
			return nil, errors.New("mock client has run out of sequential responses")
		}
		resp := m.SequentialResponses[m.ResponseIndex]
		m.ResponseIndex++
		if resp.Error != nil {
			return nil, resp.Error
		}
		return schema.AssistantMessage(resp.Content, nil), nil
	}

	if m.ExpectedError != nil {
		return nil, m.ExpectedError
	}
	return schema.AssistantMessage(m.ExpectedResponse, nil), nil
}

// Stream 模拟客户端不支持流式输出
func (m *MockChatClient) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("streaming not implemented in MockChatClient")
}

// BindTools 记录但忽略工具绑定
func (m *MockChatClient) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

// WithTools 返回自身，模拟客户端不区分工具绑定
func (m *MockChatClient) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

// GetReceivedMessages 返回累计收到的消息
func (m *MockChatClient) GetReceivedMessages() []*schema.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*schema.Message, len(m.ReceivedMessages))
	copy(out, m.ReceivedMessages)
	return out
}

// MockEmbedder 确定性的 Embedder 模拟实现：同一文本总是产生同一向量，
// 不同文本产生弱相关向量。用于测试和无API密钥的降级运行。
type MockEmbedder struct {
	Dimensions int
	// Vectors 可为特定文本指定固定向量，优先于哈希生成
	Vectors map[string][]float64
	Err     error
}

var _ embedding.Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder 创建指定维度的模拟 Embedder
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 64
	}
	return &MockEmbedder{Dimensions: dimensions}
}

// EmbedStrings 为每个文本生成确定性的伪随机向量
func (m *MockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := m.Vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = m.hashVector(text)
	}
	return out, nil
}

func (m *MockEmbedder) hashVector(text string) []float64 {
	v := make([]float64, m.Dimensions)
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()
	for i := range v {
		// 简单的线性同余序列，足够让不同文本的向量彼此远离
		seed = seed*6364136223846793005 + 1442695040888963407
		v[i] = float64(int64(seed)%1000) / 1000.0
	}
	return v
}
