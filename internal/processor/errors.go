package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrInvalidInput      = errors.New("输入校验失败")
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	ErrExtractTextFailed = errors.New("提取文档文本失败")
	ErrStorageFailed     = errors.New("存储操作失败")
	ErrAnalysisNotFound  = errors.New("分析记录不存在")
)

// AnalysisError 包含详细错误信息的自定义错误
type AnalysisError struct {
	SubmissionUUID string
	Op             string
	BaseErr        error
	Detail         string
}

func (e *AnalysisError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.SubmissionUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.SubmissionUUID)
}

func (e *AnalysisError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *AnalysisError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewValidationError(uuid, detail string) error {
	return &AnalysisError{
		SubmissionUUID: uuid,
		Op:             "validate",
		BaseErr:        ErrInvalidInput,
		Detail:         detail,
	}
}

func NewUnsupportedFormatError(uuid, detail string) error {
	return &AnalysisError{
		SubmissionUUID: uuid,
		Op:             "validate",
		BaseErr:        ErrUnsupportedFormat,
		Detail:         detail,
	}
}

func NewExtractError(uuid, detail string) error {
	return &AnalysisError{
		SubmissionUUID: uuid,
		Op:             "extract",
		BaseErr:        ErrExtractTextFailed,
		Detail:         detail,
	}
}

func NewStorageError(uuid, detail string) error {
	return &AnalysisError{
		SubmissionUUID: uuid,
		Op:             "storage",
		BaseErr:        ErrStorageFailed,
		Detail:         detail,
	}
}
