package parser

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"ats-engine-go/internal/types"
)

var (
	// tableSpacingRe 一行内3个以上连续空格视为表格式排版的信号
	tableSpacingRe = regexp.MustCompile(`\S {3,}\S`)
	// specialCharRe 常规简历文本之外的特殊字符
	specialCharRe = regexp.MustCompile(`[^\w\s.,;:()\-'"/&%+#@!?*•·–—]`)

	// dateFormatRes 日期书写格式的census，键为格式名
	dateFormatRes = map[string]*regexp.Regexp{
		"MM/YYYY":    regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
		"Month YYYY": regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\b`),
		"YYYY-MM":    regexp.MustCompile(`\b(?:19|20)\d{2}-\d{1,2}\b`),
		"DD/MM/YYYY": regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	}

	// pdfFontRe 从PDF原始字节中提取字体名
	pdfFontRe = regexp.MustCompile(`/BaseFont\s*/([A-Za-z0-9+\-]+)`)
)

// 嵌入图片的文件签名
var imageSignatures = [][]byte{
	[]byte("\x89PNG"),      // PNG
	[]byte("\xff\xd8\xff"), // JPEG
	[]byte("GIF89a"),       // GIF
	[]byte("GIF87a"),
}

// AnalyzeFormatting 基于提取出的文本分析文档格式信号
// 图片与字体信号需要原始字节，见 SupplementRawSignals
func AnalyzeFormatting(text, sourceFormat string) *types.FormattingSignals {
	signals := &types.FormattingSignals{
		SourceFormat: sourceFormat,
	}
	if strings.TrimSpace(text) == "" {
		signals.ATSFriendly = true
		return signals
	}

	lines := strings.Split(text, "\n")

	// 表格检测：含制表符或大段连续空格的行超过3行
	tabularLines := 0
	letterLines := 0
	capsLines := 0
	bulletSeen := make(map[string]bool)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(line, "\t") || tableSpacingRe.MatchString(line) {
			tabularLines++
		}
		for _, prefix := range bulletPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				bulletSeen[prefix] = true
				break
			}
		}
		if hasLetter(trimmed) {
			letterLines++
			if isAllCaps(trimmed) {
				capsLines++
			}
		}
	}
	signals.TablesDetected = tabularLines > 3

	for style := range bulletSeen {
		signals.BulletStyles = append(signals.BulletStyles, style)
	}

	if letterLines > 0 {
		signals.CapsLineRatio = float64(capsLines) / float64(letterLines)
	}

	signals.SpecialCharCount = len(specialCharRe.FindAllString(text, -1))

	for name, re := range dateFormatRes {
		if re.MatchString(text) {
			signals.DateFormats = append(signals.DateFormats, name)
		}
	}

	signals.FormattingIssues = collectIssues(signals)
	signals.ATSFriendly = len(signals.FormattingIssues) == 0
	return signals
}

// SupplementRawSignals 用原始文件字节补充图片与字体信号
func SupplementRawSignals(signals *types.FormattingSignals, data []byte) {
	if signals == nil || len(data) == 0 {
		return
	}

	for _, sig := range imageSignatures {
		signals.ImagesCount += bytes.Count(data, sig)
	}

	if signals.SourceFormat == "pdf" {
		seen := make(map[string]bool)
		for _, m := range pdfFontRe.FindAllSubmatch(data, -1) {
			name := string(m[1])
			// 子集字体前缀形如 ABCDEF+Arial，归并到基础字体名
			if idx := strings.Index(name, "+"); idx > 0 && idx < len(name)-1 {
				name = name[idx+1:]
			}
			if !seen[name] {
				seen[name] = true
				signals.FontsUsed = append(signals.FontsUsed, name)
			}
		}
		signals.FontsCount = len(signals.FontsUsed)
	}

	signals.FormattingIssues = collectIssues(signals)
	signals.ATSFriendly = len(signals.FormattingIssues) == 0
}

// collectIssues 汇总明显的格式问题
func collectIssues(signals *types.FormattingSignals) []string {
	var issues []string
	if signals.ImagesCount > 0 {
		issues = append(issues, "文档包含图片，ATS无法读取图片内容")
	}
	if signals.TablesDetected {
		issues = append(issues, "检测到表格式排版，可能破坏解析顺序")
	}
	if signals.FontsCount > 3 {
		issues = append(issues, "使用字体过多，排版不统一")
	}
	if len(signals.BulletStyles) > 2 {
		issues = append(issues, "列表符号样式超过2种")
	}
	if signals.CapsLineRatio > 0.15 {
		issues = append(issues, "全大写行比例过高")
	}
	return issues
}

// hasLetter 判断行内是否包含字母
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// isAllCaps 判断含字母的行是否全为大写
func isAllCaps(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
