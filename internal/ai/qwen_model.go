package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ats-engine-go/internal/logger"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	defaultQwenModelName = "qwen-plus"
	defaultQwenAPIURL    = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
)

// QwenChatModel 通过 OpenAI 兼容端点调用通义千问，实现 eino 的 ChatModel 接口
type QwenChatModel struct {
	apiKey     string
	modelName  string
	apiURL     string
	httpClient *http.Client

	boundTools []*schema.ToolInfo
}

// 编译期接口断言
var _ model.ChatModel = (*QwenChatModel)(nil)
var _ model.ToolCallingChatModel = (*QwenChatModel)(nil)

// openAIChatRequest OpenAI 兼容的聊天补全请求体
type openAIChatRequest struct {
	Model       string            `json:"model"`
	Messages    []*openAIMessage  `json:"messages"`
	Tools       []openAITool      `json:"tools,omitempty"`
	Temperature *float64          `json:"temperature,omitempty"`
	MaxTokens   *int              `json:"max_tokens,omitempty"`
	Extra       map[string]string `json:"-"`
}

type openAIMessage struct {
	Role       string            `json:"role"`
	Content    *string           `json:"content"`
	ToolCalls  []openAIToolCall  `json:"tool_calls,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
	Name       string            `json:"name,omitempty"`
}

type openAITool struct {
	Type     string         `json:"type"`
	Function openAIFunction `json:"function"`
}

type openAIFunction struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

type openAIToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openAIChatChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openAIChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []openAIChatChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewQwenChatModel 创建通义千问聊天模型客户端
func NewQwenChatModel(apiKey, modelName, apiURL string) (*QwenChatModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}
	if modelName == "" {
		modelName = defaultQwenModelName
	}
	if apiURL == "" {
		apiURL = defaultQwenAPIURL
	}
	return &QwenChatModel{
		apiKey:    apiKey,
		modelName: modelName,
		apiURL:    apiURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Generate 发送一次聊天补全请求并返回首个候选消息
func (q *QwenChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("输入消息不能为空")
	}

	reqBody := openAIChatRequest{
		Model:    q.modelName,
		Messages: convertToOpenAIMessages(input),
	}
	if len(q.boundTools) > 0 {
		reqBody.Tools = convertToOpenAITools(q.boundTools)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, q.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+q.apiKey)

	start := time.Now()
	resp, err := q.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("模型API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, truncateForLog(string(body), 512))
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("模型API返回错误: 类型=%s, 消息=%s", parsed.Error.Type, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("模型API未返回任何候选结果")
	}

	choice := parsed.Choices[0]
	out := &schema.Message{
		Role: schema.Assistant,
	}
	if choice.Message.Content != nil {
		out.Content = *choice.Message.Content
	}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
			ID:   tc.ID,
			Type: tc.Type,
			Function: schema.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	logger.Debug().
		Str("model", q.modelName).
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Int("completion_tokens", parsed.Usage.CompletionTokens).
		Dur("elapsed", time.Since(start)).
		Msg("模型调用完成")

	return out, nil
}

// Stream 暂不支持流式输出
func (q *QwenChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, fmt.Errorf("QwenChatModel 暂不支持流式输出")
}

// BindTools 在当前实例上绑定工具定义
func (q *QwenChatModel) BindTools(tools []*schema.ToolInfo) error {
	q.boundTools = tools
	return nil
}

// WithTools 返回绑定了工具定义的新实例，实现 ToolCallingChatModel 接口
func (q *QwenChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	clone := *q
	clone.boundTools = tools
	return &clone, nil
}

func convertToOpenAIMessages(input []*schema.Message) []*openAIMessage {
	out := make([]*openAIMessage, 0, len(input))
	for _, msg := range input {
		content := msg.Content
		m := &openAIMessage{
			Role:    string(msg.Role),
			Content: &content,
		}
		if msg.Role == schema.Tool {
			m.ToolCallID = msg.ToolCallID
		}
		for _, tc := range msg.ToolCalls {
			oc := openAIToolCall{ID: tc.ID, Type: tc.Type}
			oc.Function.Name = tc.Function.Name
			oc.Function.Arguments = tc.Function.Arguments
			m.ToolCalls = append(m.ToolCalls, oc)
		}
		out = append(out, m)
	}
	return out
}

func convertToOpenAITools(tools []*schema.ToolInfo) []openAITool {
	out := make([]openAITool, 0, len(tools))
	for _, t := range tools {
		if t == nil {
			continue
		}
		fn := openAIFunction{
			Name:        t.Name,
			Description: t.Desc,
		}
		if t.ParamsOneOf != nil {
			if js, err := t.ParamsOneOf.ToOpenAPIV3(); err == nil && js != nil {
				fn.Parameters = js
			}
		}
		out = append(out, openAITool{Type: "function", Function: fn})
	}
	return out
}

func truncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
