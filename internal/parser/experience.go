package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"ats-engine-go/internal/types"
)

var (
	// dateRangeRe 匹配 MM/YYYY - MM/YYYY 或 MM/YYYY - Present 形式的日期行
	dateRangeRe = regexp.MustCompile(`(?i)(\d{1,2})/(\d{4})\s*[-–—]\s*(?:(\d{1,2})/(\d{4})|(present))`)
	// roleKeywordRe 职位头衔中的常见角色词
	roleKeywordRe = regexp.MustCompile(`(?i)\b(engineer|developer|manager|analyst|consultant|designer|architect|lead|intern|specialist|director|officer|administrator|scientist|researcher|coordinator|executive|head)\b`)
	// companyKeywordRe 公司名称行中的常见后缀词
	companyKeywordRe = regexp.MustCompile(`(?i)\b(inc|ltd|llc|corp|corporation|technologies|technology|solutions|systems|labs|pvt|limited|gmbh|co)\b\.?`)
	// companyLocationRe 公司行尾部的 ", 大写地名" 后缀
	companyLocationRe = regexp.MustCompile(`,\s*[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)?\s*$`)
	// techParensRe 项目标题尾部的技术栈括号
	techParensRe = regexp.MustCompile(`\(([^()]+)\)\s*$`)
	// techSplitRe 技术栈按逗号/分号/斜杠切分
	techSplitRe = regexp.MustCompile(`[,;/]`)
	// leadingVerbRe 以动词开头的行视为描述性内容而非项目标题
	leadingVerbRe = regexp.MustCompile(`(?i)^(developed|designed|built|implemented|created|led|managed|improved|reduced|increased|delivered|launched|optimized|automated|architected|migrated|maintained|established|spearheaded|drove|owned|collaborated|coordinated|analyzed|achieved|deployed|integrated|refactored|streamlined|mentored|conducted|executed|resolved|engineered)\b`)
)

// bulletPrefixes 无序列表行的前缀符号
var bulletPrefixes = []string{"•", "-", "*", "▪", "◦", "‣", "–", "·", "●", "➤"}

const (
	// titleLookaheadLines 职位头衔向后确认的行数窗口
	titleLookaheadLines = 3
	// minContentLineLen 达到该长度的行才被当作职责/成果内容
	minContentLineLen = 20
	// 项目标题的长度区间
	minProjectHeaderLen = 10
	maxProjectHeaderLen = 100
)

// WorkExperienceExtractor 从工作经历章节中提取职位、项目与职责
type WorkExperienceExtractor struct {
	// now 注入的时钟，"Present"的时长计算以此为准
	now func() time.Time
}

// NewWorkExperienceExtractor 创建工作经历提取器
func NewWorkExperienceExtractor() *WorkExperienceExtractor {
	return &WorkExperienceExtractor{now: time.Now}
}

// WithClock 注入时钟，测试中用于固定"Present"的计算基准
func (e *WorkExperienceExtractor) WithClock(now func() time.Time) *WorkExperienceExtractor {
	if now != nil {
		e.now = now
	}
	return e
}

// experienceState 单次提取过程中的滚动状态
type experienceState struct {
	positions []types.Position
	current   *types.Position
	project   *types.Project
	// pendingTitle 等待确认的头衔行与剩余确认窗口
	pendingTitle     string
	pendingCountdown int
}

// Extract 逐行扫描工作经历章节
// 头衔行先挂起，3行内出现日期行或公司行才确认为新职位；
// 边界处始终先冲刷打开的项目再冲刷职位，保证条目不丢失
func (e *WorkExperienceExtractor) Extract(sectionText string) []types.Position {
	st := &experienceState{positions: make([]types.Position, 0)}
	if strings.TrimSpace(sectionText) == "" {
		return st.positions
	}

	for _, line := range strings.Split(sectionText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		e.consumeLine(st, trimmed)
	}
	e.flushPosition(st)

	return st.positions
}

// consumeLine 处理一行内容
func (e *WorkExperienceExtractor) consumeLine(st *experienceState, line string) {
	// 日期行：确认挂起头衔或补全当前职位
	if m := dateRangeRe.FindStringSubmatch(line); m != nil {
		if st.pendingTitle != "" {
			e.confirmPosition(st, "")
		}
		if st.current == nil {
			st.current = &types.Position{}
		}
		e.applyDates(st.current, m)
		return
	}

	// 挂起窗口内的公司行：以公司名确认新职位
	if st.pendingTitle != "" {
		if e.isCompanyLine(line) {
			e.confirmPosition(st, line)
			return
		}
		st.pendingCountdown--
		if st.pendingCountdown <= 0 {
			// 窗口耗尽，头衔行退化为普通内容
			expired := st.pendingTitle
			st.pendingTitle = ""
			if st.current != nil && len(expired) >= minContentLineLen {
				st.current.Responsibilities = append(st.current.Responsibilities, expired)
			}
		}
	}

	// 新的头衔候选行
	if e.isTitleLine(line) && st.pendingTitle == "" {
		st.pendingTitle = line
		st.pendingCountdown = titleLookaheadLines
		return
	}

	// 项目标题行：冲刷上一个项目，打开新项目
	if st.current != nil && e.isProjectHeader(line) {
		e.flushProject(st)
		name, techs := e.parseProjectHeader(line)
		st.project = &types.Project{Name: name, Technologies: techs}
		return
	}

	// 内容行：按是否以符号/动词开头路由到成果或职责
	if st.current != nil && len(line) >= minContentLineLen {
		content := stripBullet(line)
		if isBulletLine(line) || leadingVerbRe.MatchString(content) {
			if st.project != nil {
				st.project.Achievements = append(st.project.Achievements, content)
			} else {
				st.current.Responsibilities = append(st.current.Responsibilities, content)
			}
			return
		}
		st.current.Responsibilities = append(st.current.Responsibilities, content)
	}
}

// confirmPosition 把挂起头衔确认成新职位，先冲刷上一个职位
func (e *WorkExperienceExtractor) confirmPosition(st *experienceState, company string) {
	e.flushPosition(st)
	st.current = &types.Position{Title: st.pendingTitle, Company: company}
	st.pendingTitle = ""
	st.pendingCountdown = 0
}

// flushProject 把打开的项目并入当前职位
func (e *WorkExperienceExtractor) flushProject(st *experienceState) {
	if st.project != nil && st.current != nil {
		st.current.Projects = append(st.current.Projects, *st.project)
	}
	st.project = nil
}

// flushPosition 冲刷当前职位（先冲刷其打开的项目）
func (e *WorkExperienceExtractor) flushPosition(st *experienceState) {
	e.flushProject(st)
	if st.current != nil {
		if st.current.Title != "" || st.current.StartDate != "" ||
			len(st.current.Responsibilities) > 0 || len(st.current.Projects) > 0 {
			st.positions = append(st.positions, *st.current)
		}
		st.current = nil
	}
}

// applyDates 填充日期区间并计算月数
func (e *WorkExperienceExtractor) applyDates(pos *types.Position, m []string) {
	startMonth, _ := strconv.Atoi(m[1])
	startYear, _ := strconv.Atoi(m[2])
	pos.StartDate = m[1] + "/" + m[2]

	var endMonth, endYear int
	if m[5] != "" {
		// Present
		pos.EndDate = "Present"
		pos.Current = true
		now := e.now()
		endMonth = int(now.Month())
		endYear = now.Year()
	} else {
		endMonth, _ = strconv.Atoi(m[3])
		endYear, _ = strconv.Atoi(m[4])
		pos.EndDate = m[3] + "/" + m[4]
	}

	months := (endYear-startYear)*12 + (endMonth - startMonth)
	if months < 0 {
		months = 0
	}
	pos.DurationMonths = months
}

// isCompanyLine 判断一行是否为公司名称行，仅在头衔挂起窗口内调用
// 公司后缀词直接确认；否则要求 ", 大写地名"后缀、短全大写行
// 或以大写开头的无符号短行，且不是头衔行、动词行或纯地名行
func (e *WorkExperienceExtractor) isCompanyLine(line string) bool {
	if isBulletLine(line) || dateRangeRe.MatchString(line) {
		return false
	}
	if companyKeywordRe.MatchString(line) {
		return true
	}
	if len(line) > 60 || roleKeywordRe.MatchString(line) || leadingVerbRe.MatchString(line) {
		return false
	}
	if isBareLocationLine(line) {
		return false
	}
	if companyLocationRe.MatchString(line) && startsUpper(line) {
		return true
	}
	if len(line) <= 30 && isAllCapsLine(line) {
		return true
	}
	return len(line) <= 40 && startsUpper(line)
}

// isBareLocationLine 整行只是地名，如 "Bangalore" 或 "San Francisco, CA"
func isBareLocationLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if loc := defaultContactExtractor.extractLocation(trimmed); loc != "" && len(trimmed) <= len(loc)+2 {
		return true
	}
	if m := companyLocationRe.FindStringIndex(trimmed); m != nil {
		head := strings.TrimSpace(strings.TrimSuffix(trimmed[:m[0]], ","))
		if loc := defaultContactExtractor.extractLocation(head); loc != "" && len(head) <= len(loc)+2 {
			return true
		}
	}
	return false
}

func startsUpper(line string) bool {
	for _, r := range line {
		return r >= 'A' && r <= 'Z'
	}
	return false
}

// isAllCapsLine 至少含一个字母且不含小写字母
func isAllCapsLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// isTitleLine 判断一行是否像职位头衔
func (e *WorkExperienceExtractor) isTitleLine(line string) bool {
	if isBulletLine(line) || len(line) < 3 || len(line) > 60 {
		return false
	}
	if dateRangeRe.MatchString(line) {
		return false
	}
	return roleKeywordRe.MatchString(line) && !leadingVerbRe.MatchString(line)
}

// isProjectHeader 判断一行是否为项目标题
// 要求不以动词开头、长度10-100，且带技术栈括号或含project字样或以冒号结尾
func (e *WorkExperienceExtractor) isProjectHeader(line string) bool {
	if isBulletLine(line) {
		return false
	}
	if len(line) < minProjectHeaderLen || len(line) > maxProjectHeaderLen {
		return false
	}
	if leadingVerbRe.MatchString(line) {
		return false
	}
	if techParensRe.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "project") || strings.HasSuffix(line, ":")
}

// parseProjectHeader 拆出项目名与尾部括号中的技术栈
func (e *WorkExperienceExtractor) parseProjectHeader(line string) (string, []string) {
	name := strings.TrimSuffix(strings.TrimSpace(line), ":")
	var techs []string

	if m := techParensRe.FindStringSubmatch(name); len(m) > 1 {
		name = strings.TrimSpace(strings.TrimSuffix(name, m[0]))
		for _, t := range techSplitRe.Split(m[1], -1) {
			t = strings.TrimSpace(t)
			if t != "" {
				techs = append(techs, t)
			}
		}
	}
	return name, techs
}

// isBulletLine 判断是否为列表符号行
func isBulletLine(line string) bool {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// stripBullet 去掉行首的列表符号
func stripBullet(line string) string {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}
