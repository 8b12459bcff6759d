package parser

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"

	"ats-engine-go/internal/logger"
	"ats-engine-go/internal/types"
)

// EinoDocumentExtractor 使用 Eino PDF Parser 提取文档文本
// 纯文本文件直接透传；docx 仅接受扩展名，内容按文本处理
type EinoDocumentExtractor struct {
	parser  *pdf.PDFParser
	timeout time.Duration
}

// DocumentExtractorOption 文档提取器的配置选项
type DocumentExtractorOption func(*EinoDocumentExtractor)

// WithExtractTimeout 配置单文件提取超时
func WithExtractTimeout(timeout time.Duration) DocumentExtractorOption {
	return func(e *EinoDocumentExtractor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// NewEinoDocumentExtractor 初始化文档提取器
// PDF解析配置为不按页面分割，以获取整个文档的连续文本
func NewEinoDocumentExtractor(ctx context.Context, options ...DocumentExtractorOption) (*EinoDocumentExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false, // 需要整个PDF的文本作为单个字符串
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	extractor := &EinoDocumentExtractor{
		parser:  p,
		timeout: 30 * time.Second,
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor, nil
}

// ExtractText 从上传的文件内容中提取纯文本并分析格式信号
// filename 用于判定来源格式
func (e *EinoDocumentExtractor) ExtractText(ctx context.Context, data []byte, filename string) (string, *types.FormattingSignals, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var text string
	var err error
	switch ext {
	case "pdf":
		text, err = e.extractPDF(ctx, data, filename)
		if err != nil {
			return "", nil, err
		}
	case "txt", "docx", "":
		// docx按文本内容处理，二进制内容的文本化不在此层做
		text = string(data)
	default:
		return "", nil, fmt.Errorf("不支持的文件格式: %s", ext)
	}

	signals := AnalyzeFormatting(text, ext)
	SupplementRawSignals(signals, data)
	return text, signals, nil
}

// extractPDF 用eino解析PDF字节内容
func (e *EinoDocumentExtractor) extractPDF(ctx context.Context, data []byte, filename string) (string, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	extraMeta := map[string]interface{}{
		"source_file":     filename,
		"extraction_time": time.Now().Format(time.RFC3339),
	}

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(filename),
		einoParser.WithExtraMeta(extraMeta),
	)

	duration := time.Since(startTime)
	if err != nil {
		logger.Error().Err(err).Str("file", filename).
			Float64("seconds", duration.Seconds()).Msg("PDF提取失败")
		return "", fmt.Errorf("eino PDF解析失败 (%s): %w", filename, err)
	}

	if len(docs) == 0 {
		return "", fmt.Errorf("eino PDF解析无结果: %s", filename)
	}

	// 合并所有文档的内容（以防万一返回了多个）
	var fullContent strings.Builder
	for i, doc := range docs {
		fullContent.WriteString(doc.Content)
		if i < len(docs)-1 {
			fullContent.WriteString("\n\n")
		}
	}

	logger.Debug().Str("file", filename).Int("chars", fullContent.Len()).
		Float64("seconds", duration.Seconds()).Msg("PDF提取完成")
	return fullContent.String(), nil
}
