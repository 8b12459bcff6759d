package ai

import (
	"time"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/logger"

	"github.com/cloudwego/eino/schema"
	"github.com/sony/gobreaker/v2"
)

// ChatBreaker 为生成式模型调用套上熔断器，连续失败时快速拒绝后续请求。
// 配置关闭时返回 nil，调用方对 nil 直接透传。
type ChatBreaker struct {
	cb *gobreaker.CircuitBreaker[*schema.Message]
}

// NewChatBreaker 按配置创建模型调用熔断器
func NewChatBreaker(name string, cfg config.GenerativeConfig) *ChatBreaker {
	if !cfg.BreakerEnabled {
		return nil
	}

	failureRatio := cfg.BreakerFailureRatio
	if failureRatio <= 0 || failureRatio > 1 {
		failureRatio = 0.6
	}
	minRequests := cfg.BreakerMinRequests
	if minRequests <= 0 {
		minRequests = 5
	}
	openSeconds := cfg.BreakerOpenSeconds
	if openSeconds <= 0 {
		openSeconds = 30
	}

	settings := gobreaker.Settings{
		Name:        name,
		Timeout:     time.Duration(openSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(minRequests) && ratio >= failureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("熔断器状态变更")
		},
	}

	return &ChatBreaker{
		cb: gobreaker.NewCircuitBreaker[*schema.Message](settings),
	}
}

// Execute 经熔断器执行一次模型调用；接收者为 nil 时直接执行
func (b *ChatBreaker) Execute(fn func() (*schema.Message, error)) (*schema.Message, error) {
	if b == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// State 返回当前熔断器状态，未启用时视作 Closed
func (b *ChatBreaker) State() gobreaker.State {
	if b == nil {
		return gobreaker.StateClosed
	}
	return b.cb.State()
}
