package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeFormattingTableDetection 验证表格式排版的检测阈值
func TestAnalyzeFormattingTableDetection(t *testing.T) {
	// 4行含制表符，超过阈值3
	tabular := strings.Repeat("cell1\tcell2\tcell3\n", 4)
	signals := AnalyzeFormatting(tabular, "pdf")
	assert.True(t, signals.TablesDetected)

	// 恰好3行不触发
	signals = AnalyzeFormatting(strings.Repeat("cell1\tcell2\n", 3), "pdf")
	assert.False(t, signals.TablesDetected)

	// 3个以上连续空格同样算表格信号
	signals = AnalyzeFormatting(strings.Repeat("name    value\n", 4), "pdf")
	assert.True(t, signals.TablesDetected)
}

// TestAnalyzeFormattingCapsRatio 验证全大写行比例
func TestAnalyzeFormattingCapsRatio(t *testing.T) {
	text := "SECTION ONE\nnormal line here\nANOTHER HEADER\nmore normal text"
	signals := AnalyzeFormatting(text, "txt")
	assert.InDelta(t, 0.5, signals.CapsLineRatio, 0.001)
}

// TestAnalyzeFormattingBulletCensus 验证列表符号样式统计
func TestAnalyzeFormattingBulletCensus(t *testing.T) {
	text := "• first point\n- second point\n* third point\n"
	signals := AnalyzeFormatting(text, "txt")
	assert.Len(t, signals.BulletStyles, 3)
	assert.Contains(t, signals.FormattingIssues, "列表符号样式超过2种")
}

// TestAnalyzeFormattingDateFormats 验证日期格式census
func TestAnalyzeFormattingDateFormats(t *testing.T) {
	text := "01/2020 - 01/2022\nJan 2019 to Mar 2020"
	signals := AnalyzeFormatting(text, "txt")
	assert.Contains(t, signals.DateFormats, "MM/YYYY")
	assert.Contains(t, signals.DateFormats, "Month YYYY")
}

// TestSupplementRawSignalsImages 验证从原始字节中统计嵌入图片
func TestSupplementRawSignalsImages(t *testing.T) {
	signals := AnalyzeFormatting("plain text", "pdf")
	raw := append([]byte("prefix"), []byte("\x89PNG....\xff\xd8\xffJFIF")...)
	SupplementRawSignals(signals, raw)

	assert.Equal(t, 2, signals.ImagesCount)
	assert.False(t, signals.ATSFriendly, "含图片的文档不应被判为ATS友好")
}

// TestSupplementRawSignalsPDFFonts 验证PDF字体名提取与子集前缀归并
func TestSupplementRawSignalsPDFFonts(t *testing.T) {
	signals := AnalyzeFormatting("plain text", "pdf")
	raw := []byte("/BaseFont /ABCDEF+Arial ... /BaseFont /Helvetica ... /BaseFont /ABCDEF+Arial")
	SupplementRawSignals(signals, raw)

	require.Equal(t, 2, signals.FontsCount, "重复与子集前缀应被归并")
	assert.Contains(t, signals.FontsUsed, "Arial")
	assert.Contains(t, signals.FontsUsed, "Helvetica")
}

// TestAnalyzeFormattingEmptyText 验证空文本默认ATS友好
func TestAnalyzeFormattingEmptyText(t *testing.T) {
	signals := AnalyzeFormatting("", "txt")
	assert.True(t, signals.ATSFriendly)
	assert.Equal(t, 0, signals.ImagesCount)
}
