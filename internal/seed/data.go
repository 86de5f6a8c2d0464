package seed

import (
	"time"

	"github.com/tadreeb/academy/internal/app/models"
)

type programSeed struct {
	categorySlug string
	program      models.Program
}

type trackSeed struct {
	programSlugs []string
	track        models.TrainingTrack
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var categories = []models.Category{
	{Slug: "leadership", SortOrder: 1, Name: models.LocalizedText{AR: "القيادة والإدارة", EN: "Leadership & Management"}},
	{Slug: "human-resources", SortOrder: 2, Name: models.LocalizedText{AR: "الموارد البشرية", EN: "Human Resources"}},
	{Slug: "quality", SortOrder: 3, Name: models.LocalizedText{AR: "الجودة والتميز المؤسسي", EN: "Quality & Excellence"}},
	{Slug: "finance", SortOrder: 4, Name: models.LocalizedText{AR: "المالية والمحاسبة", EN: "Finance & Accounting"}},
	{Slug: "digital-skills", SortOrder: 5, Name: models.LocalizedText{AR: "المهارات الرقمية", EN: "Digital Skills"}},
}

var programs = []programSeed{
	{
		categorySlug: "leadership",
		program: models.Program{
			Slug:          "strategic-leadership",
			Title:         models.LocalizedText{AR: "القيادة الاستراتيجية", EN: "Strategic Leadership"},
			Summary:       models.LocalizedText{AR: "بناء رؤية واضحة وقيادة الفرق نحو تحقيقها", EN: "Build a clear vision and lead teams to deliver it"},
			Description:   models.LocalizedText{AR: "برنامج مكثف يغطي التخطيط الاستراتيجي واتخاذ القرار وإدارة التغيير في المؤسسات.", EN: "An intensive program covering strategic planning, decision making and change management in organizations."},
			DurationHours: 24,
			DeliveryMode:  models.DeliveryHybrid,
			Level:         models.LevelAdvanced,
			Price:         450000,
			Currency:      "SAR",
			StartDate:     date(2026, time.November, 8),
			Seats:         25,
			ImageURL:      "/images/programs/strategic-leadership.jpg",
			Featured:      true,
			IsActive:      true,
		},
	},
	{
		categorySlug: "leadership",
		program: models.Program{
			Slug:          "new-managers",
			Title:         models.LocalizedText{AR: "مهارات المدير الجديد", EN: "Essentials for New Managers"},
			Summary:       models.LocalizedText{AR: "الانتقال من موظف متميز إلى مدير فعال", EN: "Move from strong individual contributor to effective manager"},
			Description:   models.LocalizedText{AR: "يتناول البرنامج التفويض والتغذية الراجعة وإدارة الأداء وبناء الثقة داخل الفريق.", EN: "Covers delegation, feedback, performance management and building trust inside the team."},
			DurationHours: 16,
			DeliveryMode:  models.DeliveryOnsite,
			Level:         models.LevelBeginner,
			Price:         280000,
			Currency:      "SAR",
			StartDate:     date(2026, time.November, 22),
			Seats:         30,
			ImageURL:      "/images/programs/new-managers.jpg",
			IsActive:      true,
		},
	},
	{
		categorySlug: "human-resources",
		program: models.Program{
			Slug:          "talent-management",
			Title:         models.LocalizedText{AR: "إدارة المواهب", EN: "Talent Management"},
			Summary:       models.LocalizedText{AR: "استقطاب الكفاءات وتطويرها والاحتفاظ بها", EN: "Attract, develop and retain talent"},
			Description:   models.LocalizedText{AR: "أدوات عملية لتخطيط القوى العاملة والتعاقب الوظيفي ومسارات التطوير.", EN: "Practical tools for workforce planning, succession and development paths."},
			DurationHours: 20,
			DeliveryMode:  models.DeliveryOnline,
			Level:         models.LevelIntermediate,
			Price:         320000,
			Currency:      "SAR",
			StartDate:     date(2026, time.December, 6),
			Seats:         40,
			ImageURL:      "/images/programs/talent-management.jpg",
			Featured:      true,
			IsActive:      true,
		},
	},
	{
		categorySlug: "human-resources",
		program: models.Program{
			Slug:          "training-needs-analysis",
			Title:         models.LocalizedText{AR: "تحليل الاحتياجات التدريبية", EN: "Training Needs Analysis"},
			Summary:       models.LocalizedText{AR: "ربط التدريب بأهداف المؤسسة", EN: "Tie training to organizational goals"},
			Description:   models.LocalizedText{AR: "منهجية متكاملة لتحديد الفجوات في الكفاءات وتصميم خطط تدريب قابلة للقياس.", EN: "A complete method for finding competency gaps and designing measurable training plans."},
			DurationHours: 12,
			DeliveryMode:  models.DeliveryOnline,
			Level:         models.LevelIntermediate,
			Price:         190000,
			Currency:      "SAR",
			Seats:         0,
			ImageURL:      "/images/programs/training-needs.jpg",
			IsActive:      true,
		},
	},
	{
		categorySlug: "quality",
		program: models.Program{
			Slug:          "iso-9001-internal-auditor",
			Title:         models.LocalizedText{AR: "مدقق داخلي ISO 9001", EN: "ISO 9001 Internal Auditor"},
			Summary:       models.LocalizedText{AR: "تخطيط وتنفيذ التدقيق الداخلي لنظم الجودة", EN: "Plan and run internal quality audits"},
			Description:   models.LocalizedText{AR: "يغطي متطلبات المواصفة وإعداد قوائم التدقيق وكتابة تقارير عدم المطابقة.", EN: "Covers the standard's requirements, audit checklists and nonconformity reporting."},
			DurationHours: 30,
			DeliveryMode:  models.DeliveryOnsite,
			Level:         models.LevelIntermediate,
			Price:         520000,
			Currency:      "SAR",
			StartDate:     date(2027, time.January, 10),
			Seats:         20,
			ImageURL:      "/images/programs/iso-9001.jpg",
			Featured:      true,
			IsActive:      true,
		},
	},
	{
		categorySlug: "quality",
		program: models.Program{
			Slug:          "process-improvement",
			Title:         models.LocalizedText{AR: "تحسين العمليات", EN: "Process Improvement"},
			Summary:       models.LocalizedText{AR: "تبسيط الإجراءات ورفع الكفاءة التشغيلية", EN: "Streamline procedures and raise operational efficiency"},
			Description:   models.LocalizedText{AR: "تطبيقات عملية لأدوات Lean وتحليل الأسباب الجذرية وقياس الأداء.", EN: "Hands-on Lean tools, root cause analysis and performance measurement."},
			DurationHours: 18,
			DeliveryMode:  models.DeliveryHybrid,
			Level:         models.LevelIntermediate,
			Price:         300000,
			Currency:      "SAR",
			Seats:         30,
			ImageURL:      "/images/programs/process-improvement.jpg",
			IsActive:      true,
		},
	},
	{
		categorySlug: "finance",
		program: models.Program{
			Slug:          "finance-for-non-financial-managers",
			Title:         models.LocalizedText{AR: "المالية لغير الماليين", EN: "Finance for Non-Financial Managers"},
			Summary:       models.LocalizedText{AR: "قراءة القوائم المالية واتخاذ قرارات مبنية على الأرقام", EN: "Read financial statements and decide with numbers"},
			Description:   models.LocalizedText{AR: "مفاهيم الميزانية والتدفقات النقدية والتكاليف بلغة مبسطة للمديرين.", EN: "Budgets, cash flow and costing explained plainly for managers."},
			DurationHours: 12,
			DeliveryMode:  models.DeliveryOnline,
			Level:         models.LevelBeginner,
			Price:         210000,
			Currency:      "SAR",
			StartDate:     date(2026, time.December, 13),
			Seats:         50,
			ImageURL:      "/images/programs/finance-basics.jpg",
			IsActive:      true,
		},
	},
	{
		categorySlug: "digital-skills",
		program: models.Program{
			Slug:          "data-driven-decisions",
			Title:         models.LocalizedText{AR: "اتخاذ القرار المبني على البيانات", EN: "Data-Driven Decision Making"},
			Summary:       models.LocalizedText{AR: "تحويل البيانات إلى مؤشرات ولوحات متابعة", EN: "Turn data into indicators and dashboards"},
			Description:   models.LocalizedText{AR: "أساسيات تحليل البيانات وبناء مؤشرات الأداء وعرضها للإدارة العليا.", EN: "Data analysis basics, building KPIs and presenting them to senior leadership."},
			DurationHours: 15,
			DeliveryMode:  models.DeliveryOnline,
			Level:         models.LevelIntermediate,
			Price:         260000,
			Currency:      "SAR",
			Seats:         35,
			ImageURL:      "/images/programs/data-decisions.jpg",
			Featured:      true,
			IsActive:      true,
		},
	},
}

var tracks = []trackSeed{
	{
		programSlugs: []string{"new-managers", "strategic-leadership", "finance-for-non-financial-managers"},
		track: models.TrainingTrack{
			Slug:        "leadership-path",
			SortOrder:   1,
			Title:       models.LocalizedText{AR: "مسار القيادة", EN: "Leadership Path"},
			Description: models.LocalizedText{AR: "من الإدارة الأولى إلى القيادة الاستراتيجية", EN: "From first-line management to strategic leadership"},
		},
	},
	{
		programSlugs: []string{"training-needs-analysis", "talent-management"},
		track: models.TrainingTrack{
			Slug:        "hr-professional",
			SortOrder:   2,
			Title:       models.LocalizedText{AR: "مسار أخصائي الموارد البشرية", EN: "HR Professional Path"},
			Description: models.LocalizedText{AR: "تطوير ممارسات الموارد البشرية الحديثة", EN: "Modern HR practice, end to end"},
		},
	},
	{
		programSlugs: []string{"process-improvement", "iso-9001-internal-auditor", "data-driven-decisions"},
		track: models.TrainingTrack{
			Slug:        "institutional-excellence",
			SortOrder:   3,
			Title:       models.LocalizedText{AR: "مسار التميز المؤسسي", EN: "Institutional Excellence Path"},
			Description: models.LocalizedText{AR: "الجودة والتحسين المستمر والقياس", EN: "Quality, continuous improvement and measurement"},
		},
	},
}

var teamMembers = []models.TeamMember{
	{
		Slug:        "khalid-alharbi",
		SortOrder:   1,
		Name:        models.LocalizedText{AR: "د. خالد الحربي", EN: "Dr. Khalid Alharbi"},
		Role:        models.LocalizedText{AR: "المدير التنفيذي وخبير القيادة", EN: "Managing Director, Leadership Expert"},
		Bio:         models.LocalizedText{AR: "أكثر من عشرين عامًا في تطوير القيادات في القطاعين العام والخاص.", EN: "Over twenty years developing leaders across the public and private sectors."},
		PhotoURL:    "/images/team/khalid.jpg",
		LinkedInURL: "https://www.linkedin.com/in/khalid-alharbi",
	},
	{
		Slug:      "noura-alqahtani",
		SortOrder: 2,
		Name:      models.LocalizedText{AR: "نورة القحطاني", EN: "Noura Alqahtani"},
		Role:      models.LocalizedText{AR: "مستشارة الموارد البشرية", EN: "HR Consultant"},
		Bio:       models.LocalizedText{AR: "متخصصة في إدارة المواهب وتصميم أنظمة الأداء.", EN: "Specialist in talent management and performance system design."},
		PhotoURL:  "/images/team/noura.jpg",
	},
	{
		Slug:      "omar-hassan",
		SortOrder: 3,
		Name:      models.LocalizedText{AR: "عمر حسن", EN: "Omar Hassan"},
		Role:      models.LocalizedText{AR: "مدرب الجودة والتميز", EN: "Quality & Excellence Trainer"},
		Bio:       models.LocalizedText{AR: "مدقق رئيسي معتمد ولديه خبرة في نماذج التميز المؤسسي.", EN: "Certified lead auditor with hands-on experience in excellence models."},
		PhotoURL:  "/images/team/omar.jpg",
	},
	{
		Slug:      "sara-almutairi",
		SortOrder: 4,
		Name:      models.LocalizedText{AR: "سارة المطيري", EN: "Sara Almutairi"},
		Role:      models.LocalizedText{AR: "مدربة تحليل البيانات", EN: "Data Analytics Trainer"},
		Bio:       models.LocalizedText{AR: "تساعد المؤسسات على بناء مؤشرات أداء ولوحات متابعة فعالة.", EN: "Helps organizations build KPIs and dashboards that get used."},
		PhotoURL:  "/images/team/sara.jpg",
	},
}

var testimonials = []models.Testimonial{
	{
		Slug:        "ministry-hr-director",
		SortOrder:   1,
		Rating:      5,
		AuthorName:  models.LocalizedText{AR: "فهد العتيبي", EN: "Fahad Alotaibi"},
		AuthorTitle: models.LocalizedText{AR: "مدير الموارد البشرية", EN: "HR Director"},
		Quote:       models.LocalizedText{AR: "برنامج إدارة المواهب غيّر طريقة تخطيطنا للتعاقب الوظيفي.", EN: "The talent program changed how we plan succession."},
	},
	{
		Slug:        "bank-quality-manager",
		SortOrder:   2,
		Rating:      5,
		AuthorName:  models.LocalizedText{AR: "ريم الشهري", EN: "Reem Alshehri"},
		AuthorTitle: models.LocalizedText{AR: "مديرة الجودة", EN: "Quality Manager"},
		Quote:       models.LocalizedText{AR: "تدريب عملي ومباشر، طبقنا ما تعلمناه من الأسبوع الأول.", EN: "Practical and direct. We applied it from the first week."},
	},
	{
		Slug:        "startup-founder",
		SortOrder:   3,
		Rating:      4,
		AuthorName:  models.LocalizedText{AR: "ماجد الزهراني", EN: "Majed Alzahrani"},
		AuthorTitle: models.LocalizedText{AR: "مؤسس شركة ناشئة", EN: "Startup Founder"},
		Quote:       models.LocalizedText{AR: "المالية لغير الماليين أعطتني ثقة في قراءة أرقام شركتي.", EN: "Finance for non-financial managers gave me confidence reading my own numbers."},
	},
}
