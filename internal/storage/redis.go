package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/constants"
	"ats-engine-go/internal/tracing"
	"ats-engine-go/internal/types"
	"ats-engine-go/pkg/utils"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var redisTracer = otel.Tracer("ats-engine-go/storage/redis")

// ErrNotFound 缓存未命中
var ErrNotFound = redis.Nil

// RedisAdapter Redis客户端封装：文件MD5去重、分析结果缓存、职位向量缓存
type RedisAdapter struct {
	client *redis.Client
	cfg    *config.RedisConfig

	// 职位向量缓存参数，由 ConfigureVectorCache 设置
	vectorModelVersion string
	vectorCacheExpire  time.Duration
}

// NewRedisAdapter 创建Redis客户端并完成连通性检查
func NewRedisAdapter(cfg *config.RedisConfig) (*RedisAdapter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis配置不能为空")
	}

	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	// 连接池设置
	if cfg.PoolSize > 0 {
		options.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		options.MinIdleConns = cfg.MinIdleConns
	}

	// 超时设置
	if cfg.DialTimeoutSeconds > 0 {
		options.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		options.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		options.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	// 重试设置
	if cfg.MaxRetries > 0 {
		options.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoffMS > 0 {
		options.MinRetryBackoff = time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond
	}
	if cfg.MaxRetryBackoffMS > 0 {
		options.MaxRetryBackoff = time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond
	}

	// 连接生命周期
	if cfg.ConnMaxLifetimeMinutes > 0 {
		options.ConnMaxLifetime = time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute
	}
	if cfg.ConnMaxIdleTimeMinutes > 0 {
		options.ConnMaxIdleTime = time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute
	}

	client := redis.NewClient(options)

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("启用Redis链路追踪失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &RedisAdapter{
		client:            client,
		cfg:               cfg,
		vectorCacheExpire: constants.AnalysisCacheDuration,
	}, nil
}

// ConfigureVectorCache 设置职位向量缓存的模型版本与过期时间
func (r *RedisAdapter) ConfigureVectorCache(modelVersion string, expireDays int) {
	r.vectorModelVersion = modelVersion
	if expireDays > 0 {
		r.vectorCacheExpire = time.Duration(expireDays) * 24 * time.Hour
	}
}

// Client 返回底层Redis客户端
func (r *RedisAdapter) Client() *redis.Client {
	return r.client
}

// Close 关闭Redis连接
func (r *RedisAdapter) Close() error {
	return r.client.Close()
}

// GetMD5ExpireDuration 文件MD5去重记录的过期时长
func (r *RedisAdapter) GetMD5ExpireDuration() time.Duration {
	if r.cfg.MD5RecordExpireDays > 0 {
		return time.Duration(r.cfg.MD5RecordExpireDays) * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// CheckAndSetFileMD5 原子地检查文件MD5是否已存在；不存在则登记并关联SubmissionUUID。
// 返回 (是否已存在, 已存在记录的SubmissionUUID, 错误)。
func (r *RedisAdapter) CheckAndSetFileMD5(ctx context.Context, fileMD5, submissionUUID string) (bool, string, error) {
	ctx, span := redisTracer.Start(ctx, "Redis.CheckAndSetFileMD5",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("file.md5", fileMD5),
		attribute.String("submission.uuid", submissionUUID),
	)

	mapKey := fmt.Sprintf(constants.KeyFileMD5ToSubmissionUUID, fileMD5)

	exists, err := r.client.SIsMember(ctx, constants.KeyFileMD5Set, fileMD5).Result()
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return false, "", fmt.Errorf("检查MD5集合失败: %w", err)
	}
	if exists {
		existingUUID, err := r.client.Get(ctx, mapKey).Result()
		if err != nil && err != redis.Nil {
			tracing.RecordError(span, err, tracing.ErrorTypeRedis)
			return true, "", fmt.Errorf("获取MD5映射失败: %w", err)
		}
		span.SetAttributes(attribute.Bool("file.duplicate", true))
		span.SetStatus(codes.Ok, "")
		return true, existingUUID, nil
	}

	expire := r.GetMD5ExpireDuration()
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, constants.KeyFileMD5Set, fileMD5)
	setNX := pipe.SetNX(ctx, mapKey, submissionUUID, expire)
	pipe.Expire(ctx, constants.KeyFileMD5Set, expire)
	if _, err := pipe.Exec(ctx); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return false, "", fmt.Errorf("登记文件MD5失败: %w", err)
	}

	// SetNX失败说明有并发请求抢先登记，回读已有的UUID
	if !setNX.Val() {
		existingUUID, err := r.client.Get(ctx, mapKey).Result()
		if err != nil && err != redis.Nil {
			return true, "", fmt.Errorf("并发竞争后获取MD5映射失败: %w", err)
		}
		span.SetAttributes(attribute.Bool("file.duplicate", true))
		span.SetStatus(codes.Ok, "")
		return true, existingUUID, nil
	}

	span.SetAttributes(attribute.Bool("file.duplicate", false))
	span.SetStatus(codes.Ok, "")
	return false, "", nil
}

// RemoveFileMD5 删除文件MD5去重记录，分析失败时回滚登记
func (r *RedisAdapter) RemoveFileMD5(ctx context.Context, fileMD5 string) error {
	mapKey := fmt.Sprintf(constants.KeyFileMD5ToSubmissionUUID, fileMD5)
	pipe := r.client.TxPipeline()
	pipe.SRem(ctx, constants.KeyFileMD5Set, fileMD5)
	pipe.Del(ctx, mapKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("删除文件MD5记录失败: %w", err)
	}
	return nil
}

// CacheAnalysisResult 缓存分析结果，过期时间见 constants.AnalysisCacheDuration
func (r *RedisAdapter) CacheAnalysisResult(ctx context.Context, result *types.AnalysisResult) error {
	ctx, span := redisTracer.Start(ctx, "Redis.CacheAnalysisResult",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("submission.uuid", result.SubmissionUUID))

	data, err := json.Marshal(result)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("序列化分析结果失败: %w", err)
	}

	key := fmt.Sprintf(constants.KeyAnalysisResult, result.SubmissionUUID)
	if err := r.client.Set(ctx, key, data, constants.AnalysisCacheDuration).Err(); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("写入分析结果缓存失败: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetCachedAnalysis 读取分析结果缓存，未命中返回 ErrNotFound
func (r *RedisAdapter) GetCachedAnalysis(ctx context.Context, submissionUUID string) (*types.AnalysisResult, error) {
	ctx, span := redisTracer.Start(ctx, "Redis.GetCachedAnalysis",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("submission.uuid", submissionUUID))

	key := fmt.Sprintf(constants.KeyAnalysisResult, submissionUUID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.Bool("cache.hit", false))
			span.SetStatus(codes.Ok, "cache miss")
			return nil, ErrNotFound
		}
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, fmt.Errorf("读取分析结果缓存失败: %w", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return nil, fmt.Errorf("反序列化分析结果失败: %w", err)
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	span.SetStatus(codes.Ok, "")
	return &result, nil
}

// GetTitleVector 读取职位标题向量缓存；模型版本不一致视为未命中，避免跨模型复用向量
func (r *RedisAdapter) GetTitleVector(ctx context.Context, title string) ([]float64, error) {
	key := fmt.Sprintf(constants.KeyJobTitleVector, utils.CalculateMD5([]byte(title)))

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("读取职位向量缓存失败: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	if r.vectorModelVersion != "" && fields["model_version"] != r.vectorModelVersion {
		return nil, nil
	}

	var vector []float64
	if err := json.Unmarshal([]byte(fields["vector"]), &vector); err != nil {
		return nil, fmt.Errorf("反序列化职位向量失败: %w", err)
	}
	return vector, nil
}

// SetTitleVector 写入职位标题向量缓存
func (r *RedisAdapter) SetTitleVector(ctx context.Context, title string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("序列化职位向量失败: %w", err)
	}

	key := fmt.Sprintf(constants.KeyJobTitleVector, utils.CalculateMD5([]byte(title)))
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, "vector", data, "model_version", r.vectorModelVersion)
	pipe.Expire(ctx, key, r.vectorCacheExpire)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入职位向量缓存失败: %w", err)
	}
	return nil
}
