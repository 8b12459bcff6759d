package jobtype

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ats-engine-go/internal/logger"
)

// 经验级别标签
const (
	LevelEntry  = "entry-level"
	LevelMid    = "mid-level"
	LevelSenior = "senior-level"
)

var (
	seniorIndicators = []string{"senior", "lead", "principal", "staff", "architect", "director", "manager"}
	entryIndicators  = []string{"junior", "entry", "associate", "intern", "trainee"}

	yearsExperienceRe = regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`)
)

// JDGenerator 在未提供岗位描述时，按识别出的职位生成一份标准岗位描述。
// 优先走生成式模型，失败时退到内置模板。
type JDGenerator struct {
	generative JDTextService
}

// JDTextService 生成式岗位描述服务的最小接口
type JDTextService interface {
	GenerateJobDescription(ctx context.Context, jobTitle, experienceLevel string) (string, error)
}

// NewJDGenerator 创建岗位描述生成器；generative 可为 nil，此时只用模板
func NewJDGenerator(generative JDTextService) *JDGenerator {
	return &JDGenerator{generative: generative}
}

// Generate 为指定职位生成岗位描述，返回文本和是否出自生成式模型
func (g *JDGenerator) Generate(ctx context.Context, jobTitle, experienceLevel string) (string, bool) {
	if jobTitle == "" {
		jobTitle = DefaultTitle
	}
	if experienceLevel == "" {
		experienceLevel = LevelMid
	}

	if g.generative != nil {
		jd, err := g.generative.GenerateJobDescription(ctx, jobTitle, experienceLevel)
		if err == nil && jd != "" {
			return cleanGeneratedJD(jd), true
		}
		if err != nil {
			logger.Debug().Err(err).Str("title", jobTitle).Msg("生成式岗位描述失败，使用内置模板")
		}
	}

	return fallbackJobDescription(jobTitle, experienceLevel), false
}

// DetermineExperienceLevel 从简历文本推断候选人的经验级别：
// 含高级头衔词或累计年限>=7为senior，含初级词或年限<=2为entry，其余为mid
func DetermineExperienceLevel(resumeText string) string {
	textLower := strings.ToLower(resumeText)

	totalYears := 0
	for _, m := range yearsExperienceRe.FindAllStringSubmatch(textLower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			totalYears += n
		}
	}

	for _, ind := range seniorIndicators {
		if strings.Contains(textLower, ind) {
			return LevelSenior
		}
	}
	if totalYears >= 7 {
		return LevelSenior
	}
	for _, ind := range entryIndicators {
		if strings.Contains(textLower, ind) {
			return LevelEntry
		}
	}
	if totalYears > 0 && totalYears <= 2 {
		return LevelEntry
	}
	return LevelMid
}

// cleanGeneratedJD 去掉生成文本里的Markdown装饰行和空行
func cleanGeneratedJD(text string) string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "**") || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// jdTemplates 内置岗位描述模板，按职位名索引
var jdTemplates = map[string]string{
	"DevOps Engineer": `Requirements:
- 3+ years of experience in DevOps, infrastructure, and automation
- Strong proficiency in cloud platforms (AWS, Azure, GCP)
- Experience with containerization (Docker, Kubernetes)
- Knowledge of CI/CD pipelines and automation tools
- Experience with Infrastructure as Code (Terraform, CloudFormation)
- Proficiency in scripting languages (Python, Bash, PowerShell)
- Experience with monitoring and logging tools
- Knowledge of security best practices
- Strong problem-solving and communication skills
- Experience with version control systems (Git)
- Knowledge of Linux/Unix systems administration
- Experience with configuration management tools`,

	"Software Engineer": `Requirements:
- 3+ years of software development experience
- Strong proficiency in programming languages (Java, Python, JavaScript, C++)
- Experience with web development frameworks
- Knowledge of databases (SQL, NoSQL)
- Experience with version control systems (Git)
- Understanding of software development lifecycle
- Experience with testing frameworks and methodologies
- Knowledge of cloud platforms and services
- Strong problem-solving and analytical skills
- Experience with agile development methodologies
- Knowledge of API development and integration
- Strong communication and teamwork skills`,

	"Data Scientist": `Requirements:
- 3+ years of experience in data science and analytics
- Strong proficiency in Python and R
- Experience with machine learning frameworks (scikit-learn, TensorFlow, PyTorch)
- Knowledge of statistical analysis and modeling
- Experience with data visualization tools
- Proficiency in SQL and database management
- Experience with big data technologies
- Knowledge of cloud platforms for data processing
- Strong analytical and problem-solving skills
- Experience with data preprocessing and feature engineering
- Knowledge of business intelligence tools
- Strong communication skills for presenting insights`,

	"Product Manager": `Requirements:
- 3+ years of product management experience
- Strong understanding of product development lifecycle
- Experience with agile methodologies and frameworks
- Knowledge of market research and competitive analysis
- Experience with user research and customer feedback
- Strong analytical and data-driven decision making
- Experience with project management tools
- Knowledge of business strategy and planning
- Strong communication and leadership skills
- Experience with cross-functional team collaboration
- Knowledge of product metrics and KPIs
- Understanding of technology and development processes`,

	"UX/UI Designer": `Requirements:
- 3+ years of UX/UI design experience
- Proficiency in design tools (Figma, Sketch, Adobe Creative Suite)
- Experience with user research and usability testing
- Knowledge of design systems and component libraries
- Experience with prototyping and wireframing
- Understanding of user-centered design principles
- Knowledge of accessibility standards and guidelines
- Experience with responsive and mobile design
- Strong visual design and typography skills
- Experience with design collaboration tools
- Knowledge of front-end development basics
- Strong communication and presentation skills`,
}

// fallbackJobDescription 模板兜底：无专属模板的职位给通用描述
func fallbackJobDescription(jobTitle, experienceLevel string) string {
	header := fmt.Sprintf("%s - %s\n\nWe are seeking a %s %s to join our team.\n\n",
		jobTitle, titleCaseLevel(experienceLevel), experienceLevel, jobTitle)

	if tpl, ok := jdTemplates[jobTitle]; ok {
		return header + tpl
	}

	return header + fmt.Sprintf(`Requirements:
- 3+ years of relevant experience in %s
- Strong technical skills and domain expertise
- Experience with industry-standard tools and technologies
- Knowledge of best practices and methodologies
- Strong problem-solving and analytical skills
- Excellent communication and teamwork abilities
- Experience with project management and delivery
- Continuous learning and adaptability
- Attention to detail and quality focus
- Leadership and mentoring capabilities`, strings.ToLower(jobTitle))
}

func titleCaseLevel(level string) string {
	parts := strings.Split(level, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "-")
}
