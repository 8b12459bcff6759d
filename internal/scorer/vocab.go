package scorer

import "regexp"

// stopwords 关键词提取时剔除的英文功能词
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "use": true,
	"has": true, "have": true, "had": true, "was": true, "were": true,
	"will": true, "with": true, "from": true, "this": true, "that": true,
	"these": true, "those": true, "they": true, "their": true, "them": true,
	"our": true, "your": true, "who": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "would": true, "should": true,
	"could": true, "must": true, "may": true, "might": true, "into": true,
	"onto": true, "about": true, "above": true, "after": true, "before": true,
	"between": true, "both": true, "each": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "than": true, "then": true,
	"too": true, "very": true, "per": true, "via": true, "etc": true,
	"also": true, "any": true, "including": true, "well": true, "able": true,
	"being": true, "been": true, "its": true, "their's": true, "out": true,
	"plus": true, "like": true, "within": true, "across": true, "using": true,
}

// genericVocabulary 通用/模板词汇，默认从关键词候选中过滤掉。
// 覆盖业务套话、招聘模板占位词和不具区分度的软技能词。
var genericVocabulary = map[string]bool{
	// 业务套话
	"team": true, "work": true, "working": true, "experience": true,
	"experienced": true, "years": true, "year": true, "strong": true,
	"excellent": true, "good": true, "great": true, "ability": true,
	"abilities": true, "knowledge": true, "understanding": true,
	"skills": true, "skill": true, "required": true, "requirements": true,
	"preferred": true, "qualifications": true, "responsibilities": true,
	"responsible": true, "role": true, "position": true, "job": true,
	"candidate": true, "candidates": true, "company": true, "business": true,
	"environment": true, "opportunity": true, "opportunities": true,
	"benefits": true, "salary": true, "location": true, "remote": true,
	"hybrid": true, "office": true, "full-time": true, "part-time": true,
	"join": true, "looking": true, "seeking": true, "hiring": true,
	"ideal": true, "successful": true, "motivated": true, "passionate": true,
	"dynamic": true, "fast-paced": true, "growing": true, "degree": true,
	"bachelor": true, "master": true, "related": true, "relevant": true,
	"field": true, "equivalent": true, "minimum": true, "least": true,
	"demonstrated": true, "proven": true, "track": true, "record": true,
	"best": true, "practices": true, "various": true, "multiple": true,
	"day-to-day": true, "daily": true, "weekly": true, "ongoing": true,
	// 模板占位词
	"insert": true, "brief": true, "engaging": true, "overview": true,
	"description": true, "summary": true, "example": true, "placeholder": true,
	"template": true, "section": true, "bullet": true, "list": true,
	// 低区分度软技能词
	"communication": true, "teamwork": true, "leadership": true,
	"collaboration": true, "collaborative": true, "interpersonal": true,
	"organizational": true, "detail-oriented": true, "self-starter": true,
	"problem-solving": true, "analytical": true, "adaptable": true,
	"flexible": true, "reliable": true, "proactive": true,
}

// acronymAllowList 宽松模式下保留的短缩写词
var acronymAllowList = map[string]bool{
	"aws": true, "gcp": true, "sql": true, "api": true, "css": true,
	"etl": true, "nlp": true, "sre": true, "ci": true, "cd": true,
	"qa": true, "ux": true, "ui": true, "ml": true, "ai": true,
	"erp": true, "crm": true, "seo": true, "sem": true, "kpi": true,
	"sdk": true, "ios": true, "php": true, "vba": true, "sap": true,
}

// domainTermRes 领域关键词正则库：无论词频如何都纳入候选
var domainTermRes = []*regexp.Regexp{
	// 编程语言
	regexp.MustCompile(`(?i)\b(python|java|javascript|typescript|golang|rust|ruby|scala|kotlin|swift|perl|matlab|c\+\+|c#)\b`),
	// 框架与库
	regexp.MustCompile(`(?i)\b(react|angular|vue|django|flask|spring|express|rails|laravel|tensorflow|pytorch|pandas|numpy|node\.js|next\.js)\b`),
	// 云与基础设施
	regexp.MustCompile(`(?i)\b(aws|azure|gcp|docker|kubernetes|terraform|ansible|jenkins|linux|nginx|serverless)\b`),
	// 数据技术
	regexp.MustCompile(`(?i)\b(sql|nosql|postgresql|mysql|mongodb|redis|elasticsearch|kafka|spark|hadoop|airflow|tableau|snowflake)\b`),
	// 方法论与协作
	regexp.MustCompile(`(?i)\b(agile|scrum|kanban|devops|microservices|ci/cd|tdd|rest|graphql|grpc|oauth)\b`),
}

// actionVerbs 内容评分使用的成就动词表
var actionVerbs = []string{
	"developed", "implemented", "designed", "created", "built", "managed",
	"led", "increased", "improved", "optimized", "delivered", "achieved",
	"launched", "reduced", "automated", "streamlined", "spearheaded",
	"architected", "established", "coordinated", "mentored", "negotiated",
}

// professionalTerms 内容评分使用的专业词汇表
var professionalTerms = []string{
	"collaborated", "strategic", "innovative", "efficient", "scalable",
	"robust", "comprehensive", "proven", "expertise", "proficiency",
	"cross-functional", "stakeholders", "initiative", "methodology",
	"optimization", "infrastructure", "architecture", "analytics",
}
