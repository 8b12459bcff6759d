package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigWithCorrectMapSyntax 验证当 YAML 语法正确时，配置能否被成功加载
func TestLoadConfigWithCorrectMapSyntax(t *testing.T) {
	// 1. 创建一个临时的 YAML 配置文件，内容包含正确的 map 结构
	correctYAMLContent := `
server:
  address: ":9090"
model_qpm_limits:
  qwen-turbo: 600
  qwen-plus: 6000
job_type:
  similarity_threshold: 0.5
`
	tmpDir, err := os.MkdirTemp("", "config-test")
	require.NoError(t, err, "无法创建临时目录")
	defer os.RemoveAll(tmpDir) // 测试结束后清理目录

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte(correctYAMLContent), 0644)
	require.NoError(t, err, "无法写入临时配置文件")

	// 2. 调用 LoadConfig 函数加载配置
	config, err := LoadConfig(configPath)

	// 3. 断言结果
	require.NoError(t, err, "加载具有正确语法的配置不应返回错误")
	require.NotNil(t, config, "配置对象不应为 nil")

	expectedQPMLimits := map[string]int{
		"qwen-turbo": 600,
		"qwen-plus":  6000,
	}
	assert.Equal(t, expectedQPMLimits, config.ModelQPMLimits, "ModelQPMLimits 的值与预期不符")
	assert.Equal(t, ":9090", config.Server.Address, "Server.Address 的值与预期不符")
	assert.Equal(t, 0.5, config.JobType.SimilarityThreshold, "JobType.SimilarityThreshold 的值与预期不符")
}

// TestLoadConfigAppliesDefaults 验证未设置的字段会被填充默认值
func TestLoadConfigAppliesDefaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config-test-defaults")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	err = os.WriteFile(configPath, []byte("logger:\n  level: debug\n"), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, ":8080", config.Server.Address, "Server.Address 应使用默认值")
	assert.Equal(t, 0.4, config.JobType.SimilarityThreshold, "相似度阈值应使用默认值")
	assert.Equal(t, "text-embedding-v3", config.Aliyun.Embedding.Model)
	assert.Equal(t, 1024, config.Aliyun.Embedding.Dimensions)
	assert.Equal(t, "debug", config.Logger.Level, "显式设置的字段不应被覆盖")
}

// TestGetModelForTask 验证任务专用模型的选择逻辑
func TestGetModelForTask(t *testing.T) {
	config := createDefaultConfig()
	config.Aliyun.Model = "qwen-turbo"
	config.Aliyun.TaskModels = map[string]string{
		"job_title": "qwen-plus",
	}

	assert.Equal(t, "qwen-plus", config.GetModelForTask("job_title"), "应返回任务专用模型")
	assert.Equal(t, "qwen-turbo", config.GetModelForTask("jd_generate"), "无专用模型时应返回默认模型")
}

// TestGetDuration 验证时长解析与默认值回退
func TestGetDuration(t *testing.T) {
	assert.Equal(t, 20*time.Second, GetDuration("20s", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("not-a-duration", time.Minute))
}
