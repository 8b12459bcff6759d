package scorer

import (
	"fmt"
	"sort"
	"strings"

	"ats-engine-go/internal/types"
)

// maxEstimatedBoost 汇总时声称的总提升上限，各条目的提升并不严格可加
const maxEstimatedBoost = 40

var priorityRank = map[string]int{
	"critical": 0,
	"high":     1,
	"medium":   2,
	"low":      3,
}

// ImprovementPlanner 基于分析结果生成分优先级的改进计划
type ImprovementPlanner struct{}

// NewImprovementPlanner 创建改进计划生成器
func NewImprovementPlanner() *ImprovementPlanner {
	return &ImprovementPlanner{}
}

// Plan 汇总关键词/格式/内容/结构/ATS五类改进条目，
// 按(优先级, 影响降序)排序并挑出速赢项
func (p *ImprovementPlanner) Plan(result *types.AnalysisResult, resume *types.StructuredResume) *types.ImprovementPlan {
	var items []types.ImprovementItem
	items = append(items, p.keywordItems(result)...)
	items = append(items, p.formattingItems(result)...)
	items = append(items, p.contentItems(result, resume)...)
	items = append(items, p.structureItems(resume)...)
	items = append(items, p.atsItems(result)...)

	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := priorityRank[items[i].Priority], priorityRank[items[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return items[i].ScoreImpact > items[j].ScoreImpact
	})

	return &types.ImprovementPlan{
		Items:     items,
		QuickWins: quickWins(items),
		Summary:   summarize(items),
	}
}

func (p *ImprovementPlanner) keywordItems(result *types.AnalysisResult) []types.ImprovementItem {
	var items []types.ImprovementItem
	missing := result.Keyword.Missing

	switch {
	case len(missing) > 10:
		items = append(items, types.ImprovementItem{
			ID:          "kw-001",
			Category:    "keyword",
			Priority:    "critical",
			Title:       fmt.Sprintf("补充%d个缺失的职位关键词", len(missing)),
			Description: fmt.Sprintf("简历缺少职位描述中的%d个重要关键词，建议把其中最相关的10-15个自然融入工作经历描述。", len(missing)),
			Before:      "通用化的职责描述，缺少行业关键术语",
			After:       "描述中带有具体关键词，例如 'Led React.js development team'",
			ScoreImpact: 15,
			ActionSteps: []string{
				"从下方缺失关键词中挑出与实际经历相符的10-15个",
				"将关键词自然融入经历要点而非堆成列表",
				"重要关键词在不同区块重复出现2-3次",
			},
		})
	case len(missing) > 5:
		items = append(items, types.ImprovementItem{
			ID:          "kw-001",
			Category:    "keyword",
			Priority:    "high",
			Title:       fmt.Sprintf("补充%d个缺失的职位关键词", len(missing)),
			Description: fmt.Sprintf("加入这%d个相关关键词以更好地匹配职位要求。", len(missing)),
			ScoreImpact: 8,
			ActionSteps: []string{
				"核对缺失关键词列表",
				"自然加入到相关经历要点中",
				"确保关键词反映真实技能",
			},
		})
	}

	if n := len(result.Keyword.Matched); n > 0 && n < 5 {
		items = append(items, types.ImprovementItem{
			ID:          "kw-002",
			Category:    "keyword",
			Priority:    "high",
			Title:       "提高关键词出现频次",
			Description: "关键词命中过少。重要关键词应在不同语境下重复出现2-3次。",
			ScoreImpact: 8,
			ActionSteps: []string{
				"确定该职位最关键的5个关键词",
				"每个关键词在不同区块出现2-3次",
				"同时使用变体（如 JavaScript 和 JS）",
				"摘要、经历、技能区块都要覆盖",
			},
		})
	}
	return items
}

func (p *ImprovementPlanner) formattingItems(result *types.AnalysisResult) []types.ImprovementItem {
	var items []types.ImprovementItem

	if result.Format.HeaderPoints < 9 {
		items = append(items, types.ImprovementItem{
			ID:          "fmt-001",
			Category:    "formatting",
			Priority:    "critical",
			Title:       "使用标准区块标题",
			Description: "简历中可识别的标准区块标题过少，ATS依赖标准标题定位内容。",
			Before:      "自由段落，没有清晰的区块划分",
			After:       "使用 Experience / Education / Skills 等标准标题分区",
			ScoreImpact: 12,
			ActionSteps: []string{
				"为每个区块加上标准标题（Experience、Education、Skills）",
				"标题独立成行并保持简短",
				"同级标题使用一致的样式",
			},
		})
	}

	if result.Format.WordCountPoints == 0 && result.Format.WordCount > 0 {
		items = append(items, types.ImprovementItem{
			ID:          "fmt-002",
			Category:    "formatting",
			Priority:    "medium",
			Title:       "调整简历篇幅",
			Description: fmt.Sprintf("当前约%d词，建议控制在400-800词区间以兼顾信息量和可读性。", result.Format.WordCount),
			ScoreImpact: 3,
			ActionSteps: []string{
				"篇幅不足时补充量化成果与职责细节",
				"篇幅过长时裁剪久远或无关的经历",
			},
		})
	}
	return items
}

func (p *ImprovementPlanner) contentItems(result *types.AnalysisResult, resume *types.StructuredResume) []types.ImprovementItem {
	var items []types.ImprovementItem

	if result.Content.QuantifiedCount < 3 {
		items = append(items, types.ImprovementItem{
			ID:          "cnt-001",
			Category:    "content",
			Priority:    "high",
			Title:       "用数字量化你的成果",
			Description: "加入具体数字、百分比和指标来体现可衡量的影响，量化成果能显著提高面试邀约率。",
			Before:      "Improved system performance and user experience",
			After:       "Improved system performance by 45%, reducing page load time from 3.2s to 1.8s, resulting in 23% increase in user engagement",
			ScoreImpact: 10,
			ActionSteps: []string{
				"逐条检查经历要点",
				"补充团队规模、营收、用户量、节省时间等具体数字",
				"用 'by X%' 或 'from X to Y' 的格式呈现提升",
				"涉密数字可用区间表示（如 20-30%）",
			},
		})
	}

	wc := result.Format.WordCount
	switch {
	case wc > 0 && wc < 300:
		items = append(items, types.ImprovementItem{
			ID:          "cnt-002",
			Category:    "content",
			Priority:    "high",
			Title:       "扩充简历内容",
			Description: fmt.Sprintf("简历只有%d词。中级岗位建议400-600词，高级岗位600-800词。", wc),
			ScoreImpact: 7,
			ActionSteps: []string{
				"为每段经历补充更多细节",
				"每个职位写3-5条要点",
				"加一段2-3句的职业摘要",
				"补充相关项目、证书或奖项",
			},
		})
	case wc > 800:
		items = append(items, types.ImprovementItem{
			ID:          "cnt-003",
			Category:    "content",
			Priority:    "medium",
			Title:       "精简简历篇幅",
			Description: fmt.Sprintf("简历有%d词。建议精简到400-600词以维持阅读注意力。", wc),
			ScoreImpact: 4,
			ActionSteps: []string{
				"删除10-15年以上的过时经历",
				"合并相似要点",
				"只保留最有说服力的成果",
			},
		})
	}

	if result.Content.ActionVerbCount < 5 {
		items = append(items, types.ImprovementItem{
			ID:          "cnt-004",
			Category:    "content",
			Priority:    "medium",
			Title:       "使用有力的成就动词",
			Description: "用强成就动词替换弱表述，让成果更突出。",
			Before:      "Responsible for managing team and working on projects",
			After:       "Led cross-functional team of 8 engineers, architected scalable microservices",
			ScoreImpact: 6,
			ActionSteps: []string{
				"把 'Responsible for' 换成 'Led'、'Managed'、'Directed'",
				"把 'Worked on' 换成 'Developed'、'Built'、'Implemented'",
				"每条要点以动词开头",
				"过往职位用过去式，当前职位用现在式",
			},
			SuggestedVerbs: []string{
				"Led", "Managed", "Developed", "Implemented", "Designed",
				"Architected", "Optimized", "Streamlined", "Launched",
				"Delivered", "Spearheaded", "Orchestrated",
			},
		})
	}
	return items
}

func (p *ImprovementPlanner) structureItems(resume *types.StructuredResume) []types.ImprovementItem {
	var items []types.ImprovementItem
	if resume == nil {
		return items
	}

	if len(strings.TrimSpace(resume.Summary)) < 50 {
		items = append(items, types.ImprovementItem{
			ID:          "str-001",
			Category:    "structure",
			Priority:    "medium",
			Title:       "添加职业摘要",
			Description: "在简历顶部加一段2-3句的摘要，突出你的专长与价值。",
			Before:      "没有摘要区块",
			After:       "Senior Software Engineer with 7+ years developing scalable web applications using React, Node.js, and AWS.",
			ScoreImpact: 5,
			ActionSteps: []string{
				"写2-3句（50-80词）概括职业定位",
				"注明经验年限和核心角色",
				"点出3-5项核心技能或技术",
				"提及最大的成就或专长",
			},
		})
	}

	var missingContact []string
	if resume.Contact.Email == "" {
		missingContact = append(missingContact, "邮箱")
	}
	if resume.Contact.Phone == "" {
		missingContact = append(missingContact, "电话")
	}
	if resume.Contact.Location == "" {
		missingContact = append(missingContact, "所在城市")
	}
	if len(missingContact) > 0 {
		items = append(items, types.ImprovementItem{
			ID:          "str-002",
			Category:    "structure",
			Priority:    "critical",
			Title:       fmt.Sprintf("补全缺失的联系方式: %s", strings.Join(missingContact, "、")),
			Description: "完整的联系方式是招聘方联系你的前提，缺失会直接导致淘汰。",
			ScoreImpact: 10,
			ActionSteps: []string{
				fmt.Sprintf("在简历头部补充%s", strings.Join(missingContact, "、")),
				"附上LinkedIn主页链接",
				"与岗位相关时附上GitHub或作品集",
				"使用专业的邮箱地址",
			},
		})
	}

	if resume.Contact.LinkedIn == "" {
		items = append(items, types.ImprovementItem{
			ID:          "str-003",
			Category:    "structure",
			Priority:    "low",
			Title:       "添加LinkedIn主页",
			Description: "绝大多数招聘方会查看LinkedIn，附上主页链接能提升可信度。",
			ScoreImpact: 3,
			ActionSteps: []string{
				"在联系方式区块加上LinkedIn链接",
				"使用自定义短链格式 linkedin.com/in/yourname",
				"保持LinkedIn资料与简历同步",
			},
		})
	}
	return items
}

func (p *ImprovementPlanner) atsItems(result *types.AnalysisResult) []types.ImprovementItem {
	var items []types.ImprovementItem

	switch score := result.ATS.Score; {
	case score < 70:
		items = append(items, types.ImprovementItem{
			ID:          "ats-001",
			Category:    "ats",
			Priority:    "critical",
			Title:       "存在严重的ATS兼容性问题",
			Description: fmt.Sprintf("ATS兼容性得分%.0f/100，简历可能无法被跟踪系统正确解析而被自动淘汰。", score),
			ScoreImpact: 20,
			ActionSteps: []string{
				"删除所有图片、徽标和图形元素",
				"避免页眉页脚",
				"使用标准区块标题",
				"避免表格、文本框和多栏布局",
				"使用标准字体（Arial、Calibri、Times New Roman）",
				"保存为 .docx 或 .pdf",
			},
		})
	case score < 85:
		items = append(items, types.ImprovementItem{
			ID:          "ats-001",
			Category:    "ats",
			Priority:    "high",
			Title:       "提升ATS兼容性",
			Description: fmt.Sprintf("ATS兼容性得分%.0f/100，进一步简化排版有助于稳定解析。", score),
			ScoreImpact: 10,
			ActionSteps: []string{
				"简化排版与布局",
				"使用标准区块标题",
				"避免复杂表格或图形",
				"使用简单的项目符号",
			},
		})
	}

	// 具体扣分项转为中优先级条目，取前两条
	count := 0
	for _, d := range result.ATS.Deductions {
		if count >= 2 {
			break
		}
		// 总分类条目已覆盖的大项不再重复
		if d.Points >= 20 {
			continue
		}
		count++
		items = append(items, types.ImprovementItem{
			ID:          fmt.Sprintf("ats-wrn-%d", count),
			Category:    "ats",
			Priority:    "medium",
			Title:       "ATS解析风险提示",
			Description: d.Reason,
			ScoreImpact: 3,
			ActionSteps: []string{
				"按上述提示调整排版",
				"保持版式简洁统一",
			},
		})
	}
	return items
}

// quickWinCategories 调整成本低的类别，速赢项中优先
var quickWinCategories = map[string]bool{
	"ats":        true,
	"keyword":    true,
	"formatting": true,
}

// quickWins 速赢项：critical/high 且影响>=8 的条目，
// 低成本类别（ats/keyword/formatting）优先，同类按影响降序，取前3
func quickWins(items []types.ImprovementItem) []types.ImprovementItem {
	var wins []types.ImprovementItem
	for _, item := range items {
		if (item.Priority == "critical" || item.Priority == "high") && item.ScoreImpact >= 8 {
			wins = append(wins, item)
		}
	}
	sort.SliceStable(wins, func(i, j int) bool {
		pi, pj := quickWinCategories[wins[i].Category], quickWinCategories[wins[j].Category]
		if pi != pj {
			return pi
		}
		return wins[i].ScoreImpact > wins[j].ScoreImpact
	})
	if len(wins) > 3 {
		wins = wins[:3]
	}
	return wins
}

func summarize(items []types.ImprovementItem) types.ImprovementSummary {
	byPriority := map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0}
	var boost float64
	for _, item := range items {
		byPriority[item.Priority]++
		boost += item.ScoreImpact
	}
	if boost > maxEstimatedBoost {
		boost = maxEstimatedBoost
	}
	return types.ImprovementSummary{
		TotalItems:     len(items),
		ByPriority:     byPriority,
		EstimatedBoost: boost,
	}
}
