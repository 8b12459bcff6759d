package storage

import (
	"testing"
	"time"

	"ats-engine-go/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", getContentType(".pdf"))
	assert.Equal(t, "application/pdf", getContentType(".PDF"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", getContentType(".docx"))
	assert.Equal(t, "text/plain", getContentType(".txt"))
	assert.Equal(t, "application/octet-stream", getContentType(".xyz"))
}

func TestGetMD5ExpireDuration(t *testing.T) {
	r := &RedisAdapter{cfg: &config.RedisConfig{MD5RecordExpireDays: 7}}
	assert.Equal(t, 7*24*time.Hour, r.GetMD5ExpireDuration())

	// 未配置时使用默认30天
	r = &RedisAdapter{cfg: &config.RedisConfig{}}
	assert.Equal(t, 30*24*time.Hour, r.GetMD5ExpireDuration())
}

func TestConfigureVectorCache(t *testing.T) {
	r := &RedisAdapter{}
	r.ConfigureVectorCache("text-embedding-v3", 14)
	assert.Equal(t, "text-embedding-v3", r.vectorModelVersion)
	assert.Equal(t, 14*24*time.Hour, r.vectorCacheExpire)

	// 非法天数不覆盖既有过期时间
	r.ConfigureVectorCache("text-embedding-v3", 0)
	assert.Equal(t, 14*24*time.Hour, r.vectorCacheExpire)
}
