package parser

// skillCategories 技能分类词表，封闭枚举，覆盖技术与非技术职业
// 键为类别名，值为该类别下的规范技能名，匹配时做大小写不敏感的整词比较
// 词表有意宽收录：技能清单里漏报比误报代价更高
var skillCategories = map[string][]string{
	"programming_languages": {
		"Python", "Java", "JavaScript", "TypeScript", "Go", "Golang", "C", "C++",
		"C#", "Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala", "Perl", "R",
		"MATLAB", "Dart", "Elixir", "Haskell", "Lua",
	},
	"web_frontend": {
		"React", "Angular", "Vue", "Vue.js", "Svelte", "Next.js", "Nuxt",
		"HTML", "CSS", "Sass", "Less", "Tailwind", "Bootstrap", "jQuery",
		"Redux", "Webpack", "Vite",
	},
	"web_backend": {
		"Node.js", "Express", "Django", "Flask", "FastAPI", "Spring",
		"Spring Boot", "Rails", "Ruby on Rails", "Laravel", "ASP.NET",
		"Gin", "Echo", "Fiber", "NestJS", "Koa",
	},
	"mobile": {
		"Android", "iOS", "React Native", "Flutter", "SwiftUI", "Xamarin",
		"Ionic", "Jetpack Compose",
	},
	"databases": {
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "Oracle",
		"SQL Server", "Cassandra", "DynamoDB", "Elasticsearch", "MariaDB",
		"Neo4j", "Couchbase", "InfluxDB", "SQL",
	},
	"cloud_platforms": {
		"AWS", "Amazon Web Services", "Azure", "GCP", "Google Cloud",
		"Heroku", "DigitalOcean", "Alibaba Cloud", "Oracle Cloud",
		"Cloudflare", "Vercel", "Netlify",
	},
	"devops_tools": {
		"Jenkins", "GitLab CI", "GitHub Actions", "CircleCI", "Travis CI",
		"Ansible", "Terraform", "Puppet", "Chef", "Vagrant", "ArgoCD",
	},
	"containers_orchestration": {
		"Docker", "Kubernetes", "Helm", "OpenShift", "Docker Compose",
		"Istio", "Rancher", "Podman",
	},
	"monitoring_observability": {
		"Prometheus", "Grafana", "Datadog", "New Relic", "Splunk",
		"ELK", "Kibana", "Logstash", "Jaeger", "OpenTelemetry", "Zabbix",
		"Nagios", "Sentry",
	},
	"data_science": {
		"Pandas", "NumPy", "SciPy", "Matplotlib", "Seaborn", "Jupyter",
		"Statistics", "Data Analysis", "Data Visualization", "ETL",
	},
	"machine_learning": {
		"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "XGBoost",
		"Machine Learning", "Deep Learning", "NLP",
		"Natural Language Processing", "Computer Vision", "OpenCV",
		"Hugging Face", "LangChain", "LLM",
	},
	"big_data": {
		"Hadoop", "Spark", "Apache Spark", "Hive", "Flink", "Airflow",
		"Databricks", "Snowflake", "BigQuery", "Redshift", "Presto",
	},
	"messaging_queues": {
		"Kafka", "RabbitMQ", "ActiveMQ", "SQS", "Pub/Sub", "NATS",
		"Pulsar", "ZeroMQ", "MQTT",
	},
	"api_technologies": {
		"REST", "RESTful", "GraphQL", "gRPC", "WebSocket", "SOAP",
		"OpenAPI", "Swagger", "Protobuf", "JSON", "XML",
	},
	"testing_qa": {
		"Selenium", "Cypress", "Jest", "Mocha", "JUnit", "PyTest",
		"Postman", "TestNG", "Cucumber", "Playwright", "Unit Testing",
		"Integration Testing", "TDD",
	},
	"version_control": {
		"Git", "GitHub", "GitLab", "Bitbucket", "SVN", "Mercurial",
	},
	"operating_systems": {
		"Linux", "Ubuntu", "CentOS", "Red Hat", "Unix", "Windows Server",
		"macOS", "Debian", "Shell Scripting", "Bash", "PowerShell",
	},
	"networking": {
		"TCP/IP", "DNS", "HTTP", "HTTPS", "Load Balancing", "Nginx",
		"Apache", "VPN", "Firewall", "CDN",
	},
	"security": {
		"OAuth", "JWT", "SSL", "TLS", "Penetration Testing", "OWASP",
		"Encryption", "IAM", "SSO", "Vulnerability Assessment", "SIEM",
	},
	"project_management": {
		"Jira", "Confluence", "Trello", "Asana", "Monday.com", "Notion",
		"MS Project", "Basecamp",
	},
	"methodologies": {
		"Agile", "Scrum", "Kanban", "Waterfall", "Lean", "Six Sigma",
		"DevOps", "CI/CD", "SAFe", "Extreme Programming",
	},
	"design_tools": {
		"Figma", "Sketch", "Adobe XD", "Photoshop", "Illustrator",
		"InVision", "Zeplin", "Canva", "UI/UX", "Wireframing", "Prototyping",
	},
	"crm_erp": {
		"Salesforce", "SAP", "HubSpot", "Zoho", "Dynamics 365",
		"NetSuite", "Workday", "ServiceNow",
	},
	"analytics_bi": {
		"Tableau", "Power BI", "Looker", "Google Analytics", "Mixpanel",
		"Amplitude", "Qlik", "Metabase", "Excel",
	},
	"game_development": {
		"Unity", "Unreal Engine", "Godot", "OpenGL", "DirectX",
	},
	"embedded_iot": {
		"Arduino", "Raspberry Pi", "Embedded C", "RTOS", "FPGA",
		"Microcontrollers", "IoT",
	},
	"blockchain": {
		"Solidity", "Ethereum", "Smart Contracts", "Web3", "Hyperledger",
		"Bitcoin", "NFT",
	},
	"low_code": {
		"Power Apps", "Power Automate", "Zapier", "Airtable", "Bubble",
		"Retool", "OutSystems",
	},
	"build_ci": {
		"Maven", "Gradle", "npm", "Yarn", "pnpm", "Make", "CMake", "Bazel",
	},
	"soft_skills": {
		"Leadership", "Communication", "Teamwork", "Problem Solving",
		"Time Management", "Critical Thinking", "Collaboration",
		"Presentation", "Mentoring", "Negotiation", "Stakeholder Management",
	},
	"business_management": {
		"Strategic Planning", "Business Development", "Operations Management",
		"Budgeting", "Forecasting", "Vendor Management", "Risk Management",
		"Business Analysis", "Process Improvement", "Change Management",
		"P&L Management", "KPI",
	},
	"financial_accounting": {
		"Accounting", "Bookkeeping", "Financial Analysis", "Financial Reporting",
		"Financial Modeling", "Auditing", "Taxation", "Payroll",
		"Accounts Payable", "Accounts Receivable", "QuickBooks", "GAAP",
		"Reconciliation", "Budget Management",
	},
	"creative_design": {
		"Graphic Design", "Typography", "Branding", "Illustration",
		"Motion Graphics", "Video Editing", "3D Modeling", "After Effects",
		"Premiere Pro", "InDesign", "Lightroom", "Color Grading",
	},
	"media_content": {
		"Content Writing", "Copywriting", "Content Strategy", "Editing",
		"Proofreading", "Journalism", "Blogging", "Storytelling",
		"Scriptwriting", "Podcasting", "Photography",
	},
	"medical_clinical": {
		"Patient Care", "Nursing", "Phlebotomy", "Clinical Research",
		"Medication Administration", "Vital Signs", "Wound Care",
		"Emergency Care", "Surgery", "Diagnosis", "CPR", "BLS", "ACLS",
		"EMR", "EHR", "Epic", "Radiology", "Pharmacology", "Telemetry",
		"Patient Assessment", "Infection Control",
	},
	"healthcare_admin": {
		"Medical Billing", "Medical Coding", "ICD-10", "CPT", "HIPAA",
		"Patient Scheduling", "Insurance Verification", "Claims Processing",
		"Revenue Cycle", "Medical Records", "Prior Authorization",
	},
	"teaching_training": {
		"Curriculum Development", "Lesson Planning", "Classroom Management",
		"Instructional Design", "E-Learning", "Tutoring", "Training Delivery",
		"Student Assessment", "Special Education", "Workshop Facilitation",
	},
	"academic_research": {
		"Research Design", "Literature Review", "Grant Writing",
		"Academic Writing", "Peer Review", "SPSS", "Qualitative Research",
		"Quantitative Research", "Survey Design", "Lab Techniques",
	},
	"sales_marketing": {
		"Lead Generation", "Cold Calling", "Account Management",
		"Sales Strategy", "Digital Marketing", "SEO", "SEM",
		"Email Marketing", "Brand Management", "Market Research",
		"Campaign Management", "Social Media Marketing", "Upselling",
		"Sales Forecasting",
	},
	"customer_service": {
		"Customer Support", "Client Relations", "Conflict Resolution",
		"Call Center", "Complaint Handling", "Customer Retention",
		"Zendesk", "Live Chat", "Ticketing", "Upset Customer Handling",
	},
	"manufacturing_operations": {
		"Lean Manufacturing", "Production Planning", "Supply Chain",
		"Inventory Management", "Logistics", "Warehouse Management",
		"Procurement", "Kaizen", "5S", "CNC", "Assembly", "Forklift",
	},
	"quality_control": {
		"Quality Assurance", "Quality Control", "ISO 9001",
		"Root Cause Analysis", "Inspection", "SPC", "GMP", "HACCP", "CAPA",
		"Statistical Process Control",
	},
	"hospitality_food": {
		"Food Safety", "Menu Planning", "Culinary", "Catering", "Front Desk",
		"Housekeeping", "Banquet", "Bartending", "POS Systems",
		"Guest Relations", "ServSafe", "Food Preparation", "Reservations",
	},
	"travel_tourism": {
		"Itinerary Planning", "Tour Management", "Amadeus", "GDS",
		"Travel Booking", "Visa Processing", "Tour Guiding",
	},
	"legal_regulatory": {
		"Legal Research", "Contract Drafting", "Litigation", "Compliance",
		"Due Diligence", "Paralegal", "Intellectual Property",
		"Corporate Law", "Regulatory Affairs", "Legal Writing",
		"Arbitration", "Contract Negotiation", "Case Management",
	},
	"hr_recruitment": {
		"Talent Acquisition", "Recruiting", "Onboarding",
		"Performance Management", "Employee Relations", "HRIS",
		"Compensation", "Benefits Administration", "Interviewing",
		"Workforce Planning", "Employee Engagement",
	},
	"fashion_styling": {
		"Fashion Design", "Styling", "Pattern Making",
		"Garment Construction", "Textile", "Merchandising",
		"Trend Forecasting", "Wardrobe Styling", "Draping",
	},
	"beauty_cosmetology": {
		"Hair Styling", "Makeup", "Skincare", "Cosmetology", "Manicure",
		"Esthetics", "Salon Management", "Hair Coloring",
	},
	"construction_civil": {
		"Construction Management", "AutoCAD", "Civil Engineering",
		"Site Supervision", "Structural Analysis", "Surveying",
		"Cost Estimation", "Blueprint Reading", "Revit", "OSHA",
		"Concrete", "Project Scheduling",
	},
	"mechanical_electrical": {
		"Mechanical Design", "SolidWorks", "CATIA", "PLC", "SCADA",
		"Electrical Wiring", "Circuit Design", "HVAC", "Welding",
		"Preventive Maintenance", "Thermodynamics", "Hydraulics",
	},
	"languages_spoken": {
		"English", "Spanish", "French", "German", "Hindi", "Mandarin",
		"Japanese", "Arabic", "Portuguese", "Russian", "Italian", "Korean",
	},
}
