package jobtype

// DefaultTitle 未能识别出任何职位时的兜底结果
const DefaultTitle = "General Professional"

// jobTitleCatalog 职位目录，覆盖技术与非技术领域的常见职位。
// 嵌入策略把简历向量与目录中每个职位名的向量做余弦比对。
var jobTitleCatalog = []string{
	// 技术 - 软件工程
	"Software Engineer", "Frontend Developer", "Backend Developer",
	"Full Stack Developer", "Mobile Developer", "iOS Developer",
	"Android Developer", "React Developer", "Vue Developer", "Angular Developer",
	"Node.js Developer", "Python Developer", "Java Developer",
	"C++ Developer", "Go Developer", "Rust Developer",

	// 技术 - DevOps 与云
	"DevOps Engineer", "Cloud Engineer", "Cloud Architect", "Solutions Architect",
	"AWS Engineer", "Azure Engineer", "GCP Engineer",
	"Site Reliability Engineer", "Platform Engineer", "Infrastructure Engineer",
	"Kubernetes Engineer", "Docker Specialist", "CI/CD Engineer",

	// 技术 - 数据与AI
	"Data Scientist", "Data Engineer", "Machine Learning Engineer",
	"AI Engineer", "Generative AI Engineer", "Prompt Engineer",
	"NLP Engineer", "Computer Vision Engineer", "AI Safety Researcher",
	"MLOps Engineer", "Data Architect", "Big Data Engineer",
	"Deep Learning Engineer", "Research Scientist",

	// 技术 - 安全
	"Security Engineer", "Cybersecurity Analyst", "Penetration Tester",
	"Security Architect", "Information Security Analyst",
	"Application Security Engineer", "Network Security Engineer",
	"Ethical Hacker", "Security Operations Analyst", "CISO",

	// 技术 - 新兴方向
	"Blockchain Developer", "Web3 Developer", "Smart Contract Developer",
	"Cryptocurrency Developer", "DeFi Developer", "NFT Developer",
	"IoT Engineer", "IoT Security Architect", "Embedded Systems Engineer",
	"Robotics Engineer", "Quantum Computing Engineer",
	"AR/VR Developer", "Metaverse Developer", "Game Developer",

	// 技术 - 质量与测试
	"QA Engineer", "Test Automation Engineer", "SDET",
	"Quality Assurance Analyst", "Test Engineer", "Performance Tester",

	// 数据与分析
	"Business Analyst", "Data Analyst", "Business Intelligence Analyst",
	"Analytics Engineer", "Quantitative Analyst", "Financial Analyst",
	"Marketing Analyst", "Operations Analyst", "Systems Analyst",
	"Insights Analyst", "Revenue Analyst", "Pricing Analyst",

	// 产品与设计
	"Product Manager", "Technical Product Manager", "Product Owner",
	"Senior Product Manager", "Group Product Manager", "VP of Product",
	"UX Designer", "UI Designer", "Product Designer",
	"UX Researcher", "Interaction Designer", "Visual Designer",
	"UI/UX Designer", "Experience Designer", "Service Designer",
	"Design Systems Designer", "Motion Designer",

	// 市场与增长
	"Marketing Manager", "Digital Marketing Specialist", "SEO Specialist",
	"Content Strategist", "Social Media Manager", "Growth Marketer",
	"Content Marketing Manager", "Email Marketing Specialist",
	"Marketing Automation Specialist", "Brand Manager",
	"Performance Marketing Manager", "Demand Generation Manager",
	"Community Manager", "Influencer Marketing Manager",
	"Growth Hacker", "Conversion Rate Optimizer",

	// 销售与商务拓展
	"Sales Manager", "Account Executive", "Sales Engineer",
	"Sales Development Representative", "Business Development Manager",
	"Partnerships Manager", "Account Manager", "Customer Success Manager",
	"Sales Operations Manager", "Inside Sales Representative",
	"Territory Sales Manager", "Enterprise Sales Executive",

	// 运营与管理
	"Operations Manager", "Project Manager", "Program Manager",
	"Scrum Master", "Agile Coach", "Technical Program Manager",
	"Supply Chain Manager", "Logistics Manager",
	"Process Improvement Manager", "Change Manager",
	"Revenue Operations Manager", "Business Operations Manager",

	// 财务与会计
	"Accountant", "Investment Analyst",
	"Risk Analyst", "Compliance Officer", "Auditor",
	"Cloud FinOps Analyst", "Financial Controller", "Treasury Analyst",
	"Tax Analyst", "Budget Analyst", "Credit Analyst",
	"Portfolio Manager", "Investment Banking Analyst",
	"Financial Planning Analyst", "Management Accountant",

	// 医疗健康
	"Registered Nurse", "Physician", "Medical Doctor",
	"Healthcare Administrator", "Clinical Research Coordinator",
	"Pharmacist", "Physical Therapist", "Medical Lab Technician",
	"Nurse Practitioner", "Physician Assistant", "Medical Coder",
	"Healthcare Data Analyst", "Clinical Analyst", "Medical Writer",
	"Radiologist", "Surgeon", "Dentist", "Veterinarian",

	// 教育培训
	"Teacher", "Professor", "Academic Advisor",
	"Instructional Designer", "Education Coordinator",
	"Training Specialist", "Corporate Trainer", "E-Learning Developer",
	"Curriculum Developer", "Educational Consultant",

	// 客户成功与支持
	"Support Engineer", "Technical Support Specialist",
	"Customer Service Representative", "Customer Experience Manager",
	"Implementation Specialist", "Onboarding Specialist",

	// 人力资源
	"Recruiter", "HR Manager", "Talent Acquisition Specialist",
	"HR Business Partner", "Compensation Analyst", "Benefits Administrator",
	"People Operations Manager", "Organizational Development Specialist",
	"Diversity and Inclusion Manager", "Employee Relations Specialist",

	// 法务合规
	"Legal Counsel", "Paralegal", "Contract Manager",
	"Corporate Lawyer", "Intellectual Property Attorney",
	"Compliance Analyst", "Regulatory Affairs Specialist",

	// 内容创意
	"Technical Writer", "Documentation Specialist", "Content Writer",
	"Copywriter", "Editor", "Video Producer", "Graphic Designer",
	"Creative Director", "Art Director", "Illustrator",
	"Photographer", "Videographer", "3D Artist",

	// 可持续发展
	"Climate Tech Engineer", "Sustainability Analyst", "Carbon Analyst",
	"Environmental Engineer", "Renewable Energy Engineer",
	"ESG Analyst", "Sustainability Manager",

	// 其他专业方向
	"Management Consultant", "Strategy Consultant",
	"Real Estate Analyst", "Urban Planner",
	"Research Associate", "Lab Technician",
	"Manufacturing Engineer", "Industrial Engineer",
	"Mechanical Engineer", "Electrical Engineer",
	"Civil Engineer", "Chemical Engineer",
	"Aerospace Engineer", "Biomedical Engineer",
}

// roleKeywords 关键词兜底表，嵌入策略低置信时按命中率取最高的职位
var roleKeywords = map[string][]string{
	"Software Engineer":  {"software engineer", "developer", "programming", "coding"},
	"Data Scientist":     {"data scientist", "machine learning", "data analysis", "statistics"},
	"Product Manager":    {"product manager", "product owner", "roadmap", "stakeholders"},
	"DevOps Engineer":    {"devops", "infrastructure", "ci/cd", "kubernetes", "docker"},
	"Frontend Developer": {"frontend", "react", "vue", "angular", "ui development"},
	"Backend Developer":  {"backend", "api", "database", "server", "microservices"},
	"Data Engineer":      {"data engineer", "etl", "data pipeline", "data warehouse"},
	"Marketing Manager":  {"marketing", "campaigns", "branding", "market research"},
	"UX Designer":        {"ux designer", "user experience", "wireframes", "prototypes"},
	"Business Analyst":   {"business analyst", "requirements", "process improvement"},
}

// Catalog 返回职位目录的副本
func Catalog() []string {
	out := make([]string, len(jobTitleCatalog))
	copy(out, jobTitleCatalog)
	return out
}
