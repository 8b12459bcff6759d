package types

// JobTypeResult 岗位类型识别结果
type JobTypeResult struct {
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	// Method 取值: consensus / generative / embedding / keyword / default
	Method              string  `json:"method"`
	EmbeddingTitle      string  `json:"embedding_title,omitempty"`
	EmbeddingConfidence float64 `json:"embedding_confidence,omitempty"`
	GenerativeTitle     string  `json:"generative_title,omitempty"`
}

// KeywordAnalysis 关键词匹配分析结果
type KeywordAnalysis struct {
	Score float64 `json:"score"`
	// Matched/Missing 均为有序去重后的关键词
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	// MeaningfulCount 职位描述中有效关键词总数
	MeaningfulCount int `json:"meaningful_count"`
	// Technical/NonTechnical 模型对关键词的技术属性划分，服务缺席时为空
	Technical    []string `json:"technical,omitempty"`
	NonTechnical []string `json:"non_technical,omitempty"`
}

// SemanticResult 语义相似度评分结果
type SemanticResult struct {
	Score float64 `json:"score"`
	// Method 取值: embedding / fallback
	Method string `json:"method"`
}

// FormatResult 格式规范性评分结果
type FormatResult struct {
	Score          float64 `json:"score"`
	SectionPoints  float64 `json:"section_points"`
	OptionalPoints float64 `json:"optional_points"`
	WordCountPoints float64 `json:"word_count_points"`
	ContactPoints  float64 `json:"contact_points"`
	HeaderPoints   float64 `json:"header_points"`
	SummaryPoints  float64 `json:"summary_points"`
	WordCount      int     `json:"word_count"`
}

// ContentResult 内容质量评分结果
type ContentResult struct {
	Score            float64 `json:"score"`
	QuantifiedPoints float64 `json:"quantified_points"`
	ActionVerbPoints float64 `json:"action_verb_points"`
	VocabularyPoints float64 `json:"vocabulary_points"`
	QuantifiedCount  int     `json:"quantified_count"`
	ActionVerbCount  int     `json:"action_verb_count"`
	VocabularyCount  int     `json:"vocabulary_count"`
}

// ATSDeduction ATS兼容性评分中的一项扣分
type ATSDeduction struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
}

// ATSResult ATS兼容性评分结果
type ATSResult struct {
	Score       float64        `json:"score"`
	Deductions  []ATSDeduction `json:"deductions,omitempty"`
	ATSFriendly bool           `json:"ats_friendly"`
}

// Recommendation 一条针对简历的建议
type Recommendation struct {
	// Kind 取值: strength / weakness / advice
	Kind    string `json:"kind"`
	Factor  string `json:"factor"`
	Message string `json:"message"`
	// Keywords 仅在关键词相关建议中填充
	Keywords []string `json:"keywords,omitempty"`
}

// ImprovementItem 改进计划中的一个条目
type ImprovementItem struct {
	ID          string `json:"id"`
	// Category 取值: keyword / formatting / content / structure / ats
	Category    string `json:"category"`
	// Priority 取值: critical / high / medium / low
	Priority    string   `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Before      string   `json:"before,omitempty"`
	After       string   `json:"after,omitempty"`
	ScoreImpact float64  `json:"score_impact"`
	ActionSteps []string `json:"action_steps,omitempty"`
	// SuggestedVerbs 仅在动词相关条目中填充
	SuggestedVerbs []string `json:"suggested_verbs,omitempty"`
}

// ImprovementSummary 改进计划的汇总信息
type ImprovementSummary struct {
	TotalItems     int            `json:"total_items"`
	ByPriority     map[string]int `json:"by_priority"`
	EstimatedBoost float64        `json:"estimated_boost"`
}

// ImprovementPlan 完整的改进计划
type ImprovementPlan struct {
	Items     []ImprovementItem  `json:"items"`
	QuickWins []ImprovementItem  `json:"quick_wins"`
	Summary   ImprovementSummary `json:"summary"`
}

// FactorScores 五个评分因子的得分
type FactorScores struct {
	Keyword  float64 `json:"keyword"`
	Semantic float64 `json:"semantic"`
	Format   float64 `json:"format"`
	Content  float64 `json:"content"`
	ATS      float64 `json:"ats"`
}

// AnalysisResult 一次完整分析的结果
type AnalysisResult struct {
	SubmissionUUID string `json:"submission_uuid,omitempty"`
	// OverallScore 加权总分，Category 为对应等级
	OverallScore float64      `json:"overall_score"`
	Category     string       `json:"category"`
	Factors      FactorScores `json:"factors"`

	JobType  JobTypeResult   `json:"job_type"`
	Keyword  KeywordAnalysis `json:"keyword_analysis"`
	Semantic SemanticResult  `json:"semantic_analysis"`
	Format   FormatResult    `json:"format_analysis"`
	Content  ContentResult   `json:"content_analysis"`
	ATS      ATSResult       `json:"ats_analysis"`

	Structured      *StructuredResume `json:"structured_resume,omitempty"`
	Recommendations []Recommendation  `json:"recommendations"`
	// Warnings 记录提取缺口（如未识别到教育经历），不构成错误
	Warnings []string `json:"warnings,omitempty"`
	// JobDescriptionGenerated 为 true 表示职位描述由系统生成
	JobDescriptionGenerated bool   `json:"job_description_generated,omitempty"`
	AnalyzedAt              int64  `json:"analyzed_at"`
}
