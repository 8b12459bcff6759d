package processor

import (
	"context"

	"ats-engine-go/internal/types"
)

// DocumentExtractor 从上传文件中提取纯文本和排版信号
type DocumentExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, *types.FormattingSignals, error)
}

// JobClassifier 识别简历对应的岗位类型
type JobClassifier interface {
	Classify(ctx context.Context, resumeText string) *types.JobTypeResult
}

// DescriptionGenerator 按岗位和经验级别生成职位描述。
// 第二个返回值表示内容是否来自生成式模型（false为离线模板）。
type DescriptionGenerator interface {
	Generate(ctx context.Context, jobTitle, experienceLevel string) (string, bool)
}

// KeywordClassifier 从关键词集合中挑出技术类关键词
type KeywordClassifier interface {
	ClassifyTechnicalKeywords(ctx context.Context, keywords []string, jobContext string) ([]string, error)
}
