package storage

import (
	"context"
	"fmt"
	"strings"

	"ats-engine-go/internal/config"
	"ats-engine-go/internal/logger"
)

// Storage 聚合所有存储组件。任一组件初始化失败不中断其余组件，
// 错误汇总后一次性返回，便于启动日志定位。
type Storage struct {
	MinIO *MinIO
	MySQL *MySQL
	Redis *RedisAdapter
}

// NewStorage 按配置初始化全部存储组件
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	s := &Storage{}
	var initErrors []string

	minioClient, err := NewMinIO(ctx, &cfg.MinIO)
	if err != nil {
		initErrors = append(initErrors, fmt.Sprintf("MinIO: %v", err))
		logger.Error().Err(err).Msg("初始化MinIO失败")
	} else {
		s.MinIO = minioClient
		logger.Info().Str("endpoint", cfg.MinIO.Endpoint).Msg("MinIO初始化成功")
	}

	mysqlClient, err := NewMySQL(&cfg.MySQL)
	if err != nil {
		initErrors = append(initErrors, fmt.Sprintf("MySQL: %v", err))
		logger.Error().Err(err).Msg("初始化MySQL失败")
	} else {
		s.MySQL = mysqlClient
		logger.Info().
			Str("host", cfg.MySQL.Host).
			Str("database", cfg.MySQL.Database).
			Msg("MySQL初始化成功")
	}

	redisClient, err := NewRedisAdapter(&cfg.Redis)
	if err != nil {
		initErrors = append(initErrors, fmt.Sprintf("Redis: %v", err))
		logger.Error().Err(err).Msg("初始化Redis失败")
	} else {
		redisClient.ConfigureVectorCache(cfg.Aliyun.Embedding.Model, cfg.JobType.VectorCacheExpireDays)
		s.Redis = redisClient
		logger.Info().Str("address", cfg.Redis.Address).Msg("Redis初始化成功")
	}

	if len(initErrors) > 0 {
		s.Close()
		return nil, fmt.Errorf("存储组件初始化失败: %s", strings.Join(initErrors, "; "))
	}

	return s, nil
}

// Close 关闭所有已初始化的存储组件
func (s *Storage) Close() {
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭MySQL连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	// MinIO客户端无需显式关闭
}
