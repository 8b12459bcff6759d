package constants

import "time"

const (
	// DefaultEngineVer 分析引擎版本号，写入分析记录
	DefaultEngineVer = "1.0"

	// AnalysisCacheDuration 分析结果在Redis中的缓存时长
	AnalysisCacheDuration = 24 * time.Hour

	// MaxUploadSize 上传文件大小上限
	MaxUploadSize = 10 << 20 // 10MB

	// MinJobDescriptionLen 完整分析要求的职位描述最小长度
	MinJobDescriptionLen = 50
)

// SupportedExtensions 接受的上传扩展名（含点）
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}
