package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AnalysisRecord 一次完整分析的持久化记录。
// 结构化简历、建议与改进计划以JSON列存储，评分字段冗余展开便于查询聚合。
type AnalysisRecord struct {
	ID             uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	SubmissionUUID string `gorm:"column:submission_uuid;type:varchar(36);uniqueIndex;not null"`

	OriginalFilename string `gorm:"column:original_filename;type:varchar(255)"`
	FileMD5          string `gorm:"column:file_md5;type:varchar(32);index"`
	// OriginalObjectKey MinIO中原始文件的对象键
	OriginalObjectKey string `gorm:"column:original_object_key;type:varchar(255)"`

	JobTitle          string  `gorm:"column:job_title;type:varchar(100)"`
	JobTypeMethod     string  `gorm:"column:job_type_method;type:varchar(20)"`
	JobTypeConfidence float64 `gorm:"column:job_type_confidence"`

	OverallScore  float64 `gorm:"column:overall_score"`
	Category      string  `gorm:"column:category;type:varchar(32)"`
	KeywordScore  float64 `gorm:"column:keyword_score"`
	SemanticScore float64 `gorm:"column:semantic_score"`
	FormatScore   float64 `gorm:"column:format_score"`
	ContentScore  float64 `gorm:"column:content_score"`
	ATSScore      float64 `gorm:"column:ats_score"`

	JobDescriptionGenerated bool   `gorm:"column:job_description_generated"`
	EngineVersion           string `gorm:"column:engine_version;type:varchar(20)"`

	StructuredResume datatypes.JSON `gorm:"column:structured_resume;type:json"`
	Recommendations  datatypes.JSON `gorm:"column:recommendations;type:json"`
	ImprovementPlan  datatypes.JSON `gorm:"column:improvement_plan;type:json"`
	Warnings         datatypes.JSON `gorm:"column:warnings;type:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName 指定表名
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// StringToJSON 将JSON字符串转换为JSON列值
func StringToJSON(s string) datatypes.JSON {
	if s == "" {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(s)
}

// MapToJSON 将map转换为JSON列值
func MapToJSON(m map[string]interface{}) (datatypes.JSON, error) {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(jsonBytes), nil
}
