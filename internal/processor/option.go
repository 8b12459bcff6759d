package processor

import (
	"time"

	"ats-engine-go/internal/parser"
	"ats-engine-go/internal/scorer"
)

// Option 分析引擎的组件选项
type Option func(*AnalysisEngine)

// WithDocumentExtractor 注入文档提取器
func WithDocumentExtractor(extractor DocumentExtractor) Option {
	return func(e *AnalysisEngine) {
		e.extractor = extractor
	}
}

// WithJobClassifier 注入岗位类型识别器
func WithJobClassifier(classifier JobClassifier) Option {
	return func(e *AnalysisEngine) {
		e.classifier = classifier
	}
}

// WithDescriptionGenerator 注入职位描述生成器
func WithDescriptionGenerator(gen DescriptionGenerator) Option {
	return func(e *AnalysisEngine) {
		e.jdGen = gen
	}
}

// WithKeywordClassifier 注入关键词技术属性分类器
func WithKeywordClassifier(classifier KeywordClassifier) Option {
	return func(e *AnalysisEngine) {
		e.kwClassifier = classifier
	}
}

// WithSemanticScorer 注入语义评分器（决定是否走向量路径）
func WithSemanticScorer(s *scorer.SemanticScorer) Option {
	return func(e *AnalysisEngine) {
		if s != nil {
			e.semantic = s
		}
	}
}

// WithResumeBuilder 注入结构化提取器（测试中用于固定时钟）
func WithResumeBuilder(builder *parser.StructuredResumeBuilder) Option {
	return func(e *AnalysisEngine) {
		if builder != nil {
			e.builder = builder
		}
	}
}

// WithClock 固定引擎时钟，AnalyzedAt 等时间戳由此产生
func WithClock(now func() time.Time) Option {
	return func(e *AnalysisEngine) {
		if now != nil {
			e.clock = now
		}
	}
}
