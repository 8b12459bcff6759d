package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RedisConfig Redis配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`      // 连接池大小
	MinIdleConns int `yaml:"min_idle_conns"` // 最小空闲连接数
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`  // 连接超时(秒)
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`  // 读取超时(秒)
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"` // 写入超时(秒)
	// 重试设置
	MaxRetries        int `yaml:"max_retries"`          // 最大重试次数
	MinRetryBackoffMS int `yaml:"min_retry_backoff_ms"` // 最小重试间隔(毫秒)
	MaxRetryBackoffMS int `yaml:"max_retry_backoff_ms"` // 最大重试间隔(毫秒)
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`  // 连接最大生命周期(分钟)
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"` // 空闲连接最大生命周期(分钟)
	// MD5去重记录过期时间(天)
	MD5RecordExpireDays int `yaml:"md5_record_expire_days"`
}

// Config 应用程序配置
type Config struct {
	Aliyun struct {
		APIKey     string            `yaml:"api_key"`
		APIURL     string            `yaml:"api_url"`
		Model      string            `yaml:"model"`
		TaskModels map[string]string `yaml:"task_models"` // 任务专用模型
		Embedding  EmbeddingConfig   `yaml:"embedding"`
	} `yaml:"aliyun"`

	// MinIO原始文件存储配置
	MinIO MinIOConfig `yaml:"minio"`

	// MySQL分析记录存储配置
	MySQL MySQLConfig `yaml:"mysql"`

	// Redis缓存配置
	Redis RedisConfig `yaml:"redis"`

	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 生成式模型调用配置（岗位识别、JD生成）
	Generative GenerativeConfig `yaml:"generative"`

	// 岗位类型识别配置
	JobType JobTypeConfig `yaml:"job_type"`

	// 分析引擎开关与阈值
	Analysis AnalysisConfig `yaml:"analysis"`

	// 文档提取配置
	Extractor ExtractorConfig `yaml:"extractor"`

	// 链路追踪配置
	Tracing TracingConfig `yaml:"tracing"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 模型QPM限制配置
	ModelQPMLimits map[string]int `yaml:"model_qpm_limits"`

	// 当前分析引擎版本，写入分析记录
	ActiveEngineVersion string `yaml:"active_engine_version"`
}

// EmbeddingConfig Embedding服务配置
type EmbeddingConfig struct {
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	BaseURL    string `yaml:"base_url"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	UseSSL          bool   `yaml:"useSSL"`
	// OriginalsBucket 原始简历存储桶
	OriginalsBucket string `yaml:"originalsBucket"`
	Location        string `yaml:"location"` // 可选，存储桶区域
	// 原始文件过期天数
	OriginalFileExpireDays int `yaml:"original_file_expire_days"`
}

// MySQLConfig MySQL配置
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"` // 最大空闲连接数
	MaxOpenConns int `yaml:"max_open_conns"` // 最大打开连接数
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"`
	// 超时设置
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds   int `yaml:"write_timeout_seconds"`
	// 日志级别(1-4)
	LogLevel int `yaml:"log_level"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080"
	// APIKeys 为空时不启用keyauth中间件
	APIKeys []string `yaml:"api_keys"`
}

// GenerativeConfig 生成式模型调用配置
type GenerativeConfig struct {
	ModelName        string  `yaml:"modelName"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"maxTokens"`
	CallTimeout      string  `yaml:"callTimeout"` // 单次调用超时，例如 "20s"
	QPM              int     `yaml:"qpm"`
	MaxRetries       int     `yaml:"maxRetries"`
	RetryWaitSeconds int     `yaml:"retryWaitSeconds"`
	// 熔断器设置
	BreakerEnabled      bool    `yaml:"breaker_enabled"`
	BreakerFailureRatio float64 `yaml:"breaker_failure_ratio"` // 触发熔断的失败率
	BreakerMinRequests  int     `yaml:"breaker_min_requests"`  // 统计窗口内的最小请求数
	BreakerOpenSeconds  int     `yaml:"breaker_open_seconds"`  // 熔断打开后的冷却时间(秒)
}

// JobTypeConfig 岗位类型识别配置
type JobTypeConfig struct {
	// SimilarityThreshold 接受向量匹配结果的最低余弦相似度
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	// GenerativeTimeout 生成式策略的等待上限，例如 "10s"
	GenerativeTimeout string `yaml:"generative_timeout"`
	// VectorCacheExpireDays 目录标题向量缓存过期天数
	VectorCacheExpireDays int `yaml:"vector_cache_expire_days"`
}

// AnalysisConfig 分析引擎开关与阈值
type AnalysisConfig struct {
	// SemanticEnabled 为 false 时语义评分直接走fallback
	SemanticEnabled bool `yaml:"semantic_enabled"`
	// MaxSentencesPerSide 语义评分每侧句子上限
	MaxSentencesPerSide int `yaml:"max_sentences_per_side"`
}

// ExtractorConfig 文档提取配置
type ExtractorConfig struct {
	// Timeout 单文件提取超时，例如 "30s"
	Timeout string `yaml:"timeout"`
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Endpoint     string `yaml:"endpoint"`      // OTLP gRPC端点，例如 "localhost:4317"
	ServiceName  string `yaml:"service_name"`  // 上报的服务名
	SampleRatio  float64 `yaml:"sample_ratio"` // 采样率 0-1
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果未指定配置文件路径，则尝试在默认位置查找
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".ats-engine", "config.yaml"),
		}

		// 可执行文件所在目录及其上级
		execPath, err := os.Executable()
		if err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths, filepath.Join(execDir, "config.yaml"))
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "config.yaml"))
		}

		// 测试环境下额外尝试可能的项目根目录
		workDir, err := os.Getwd()
		if err == nil && isTestEnv(workDir) {
			projectRoots := []string{
				workDir,
				filepath.Join(workDir, ".."),
				filepath.Join(workDir, "..", ".."),
				filepath.Join(workDir, "..", "..", ".."),
			}
			for _, root := range projectRoots {
				searchPaths = append(searchPaths, filepath.Join(root, "config.yaml"))
			}
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		// 测试环境找不到配置文件时直接返回默认配置
		if configPath == "" {
			if isTestEnv("") {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if isTestEnv("") {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 从环境变量覆盖配置（如果存在）
	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	}
	if envURL := os.Getenv("ALIYUN_API_URL"); envURL != "" {
		config.Aliyun.APIURL = envURL
	}
	if envModel := os.Getenv("ALIYUN_MODEL"); envModel != "" {
		config.Aliyun.Model = envModel
	}

	applyDefaults(&config)
	return &config, nil
}

// isTestEnv 通过工作目录与命令行参数判断是否处于测试环境
func isTestEnv(workDir string) bool {
	if workDir != "" && strings.Contains(workDir, "tmp") && strings.Contains(workDir, "test") {
		return true
	}
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// applyDefaults 为未设置的字段填充默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Aliyun.Embedding.Model == "" {
		config.Aliyun.Embedding.Model = "text-embedding-v3"
	}
	if config.Aliyun.Embedding.Dimensions == 0 {
		config.Aliyun.Embedding.Dimensions = 1024
	}
	if config.Aliyun.Embedding.BaseURL == "" {
		config.Aliyun.Embedding.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}
	if config.JobType.SimilarityThreshold == 0 {
		config.JobType.SimilarityThreshold = 0.4
	}
	if config.JobType.GenerativeTimeout == "" {
		config.JobType.GenerativeTimeout = "10s"
	}
	if config.JobType.VectorCacheExpireDays == 0 {
		config.JobType.VectorCacheExpireDays = 30
	}
	if config.Generative.CallTimeout == "" {
		config.Generative.CallTimeout = "20s"
	}
	if config.Extractor.Timeout == "" {
		config.Extractor.Timeout = "30s"
	}
	if config.Analysis.MaxSentencesPerSide == 0 {
		config.Analysis.MaxSentencesPerSide = 10
	}
	if config.ActiveEngineVersion == "" {
		config.ActiveEngineVersion = "1.0"
	}
}

// 创建一个默认配置，用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}
	config.Aliyun.APIURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions"
	config.Aliyun.Model = "qwen-turbo"

	// MinIO默认配置
	config.MinIO.Endpoint = "localhost:9000"
	config.MinIO.AccessKeyID = "minioadmin"
	config.MinIO.SecretAccessKey = "minioadmin123"
	config.MinIO.UseSSL = false
	config.MinIO.OriginalsBucket = "originals"
	config.MinIO.OriginalFileExpireDays = 1095 // 默认3年过期

	// MySQL默认配置
	config.MySQL.Host = "localhost"
	config.MySQL.Port = 3306
	config.MySQL.Username = "root"
	config.MySQL.Password = "password"
	config.MySQL.Database = "ats_engine"
	config.MySQL.MaxIdleConns = 10
	config.MySQL.MaxOpenConns = 100
	config.MySQL.ConnMaxLifetimeMinutes = 60
	config.MySQL.ConnMaxIdleTimeMinutes = 30
	config.MySQL.ConnectTimeoutSeconds = 10
	config.MySQL.ReadTimeoutSeconds = 30
	config.MySQL.WriteTimeoutSeconds = 30
	config.MySQL.LogLevel = 4 // Info级别

	// Redis默认配置
	config.Redis.Address = "localhost:6379"
	config.Redis.Password = ""
	config.Redis.DB = 0
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.MinRetryBackoffMS = 8
	config.Redis.MaxRetryBackoffMS = 512
	config.Redis.ConnMaxLifetimeMinutes = 60
	config.Redis.ConnMaxIdleTimeMinutes = 30
	config.Redis.MD5RecordExpireDays = 365 // 默认1年过期

	// 生成式调用默认配置
	config.Generative.ModelName = "qwen-turbo"
	config.Generative.Temperature = 0.1
	config.Generative.MaxTokens = 512
	config.Generative.QPM = 60
	config.Generative.MaxRetries = 3
	config.Generative.RetryWaitSeconds = 1
	config.Generative.BreakerEnabled = true
	config.Generative.BreakerFailureRatio = 0.6
	config.Generative.BreakerMinRequests = 5
	config.Generative.BreakerOpenSeconds = 30

	// 语义评分默认启用
	config.Analysis.SemanticEnabled = true

	// 日志默认配置
	config.Logger.Level = "info"
	config.Logger.Format = "pretty" // 开发环境默认使用美化输出
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	// 链路追踪默认关闭
	config.Tracing.Enabled = false
	config.Tracing.Endpoint = "localhost:4317"
	config.Tracing.ServiceName = "ats-engine"
	config.Tracing.SampleRatio = 1.0

	// 默认的模型QPM限制
	config.ModelQPMLimits = map[string]int{
		"qwen-max":          1200,
		"qwen-max-latest":   1200,
		"qwen-plus":         15000,
		"qwen-plus-latest":  15000,
		"qwen-turbo":        1200,
		"qwen-turbo-latest": 1200,
	}

	if envKey := os.Getenv("ALIYUN_API_KEY"); envKey != "" {
		config.Aliyun.APIKey = envKey
	} else {
		config.Aliyun.APIKey = "test_api_key"
	}

	applyDefaults(config)
	return config
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	config := createDefaultConfig()

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}

	fmt.Printf("示例配置文件已创建: %s\n", filePath)
	return nil
}

// GetModelForTask 根据任务名称获取合适的模型
// 如果任务专用模型存在则返回专用模型，否则返回默认模型
func (c *Config) GetModelForTask(taskName string) string {
	if c.Aliyun.TaskModels != nil {
		if model, ok := c.Aliyun.TaskModels[taskName]; ok && model != "" {
			return model
		}
	}
	return c.Aliyun.Model
}

// GetDuration 解析配置中的时长字符串，失败时返回默认值
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
