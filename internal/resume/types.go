package resume

// Document 表示一次编辑会话中的完整简历数据。
// 每次编辑操作都会产出一个新的 Document 快照整体替换旧值，
// 任何嵌套结构都不允许原地修改。
type Document struct {
	PersonalInfo        PersonalInfo          `json:"personal_info"`
	ProfessionalSummary string                `json:"professional_summary"`
	Education           []Education           `json:"education"`
	Experiences         []Experience          `json:"experiences"`
	Projects            []Project             `json:"projects"`
	Certifications      []Certification       `json:"certifications"`
	ExtraCurricular     []ExtraCurricular     `json:"extra_curricular"`
	Awards              []Award               `json:"awards"`
	Achievements        []Achievement         `json:"achievements"`
	TechnicalSkills     TechnicalSkills       `json:"technical_skills"`
	LanguageProficiency []LanguageProficiency `json:"language_proficiency"`
	SectionOrder        []SectionKey          `json:"section_order"`
}

// PersonalInfo 是简历头部的个人信息，单例、无 ID。
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`
	Location string `json:"location"`
}

// Education 教育经历条目。
type Education struct {
	ID        string `json:"id"`
	Degree    string `json:"degree"`
	School    string `json:"school"`
	SchoolURL string `json:"school_url,omitempty"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GPA       string `json:"gpa,omitempty"`
}

// Experience 工作经历条目，Description 为逐条要点（可含行内标记）。
type Experience struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	CompanyURL  string   `json:"company_url,omitempty"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Description []string `json:"description"`
}

// Project 项目条目。
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Technologies string   `json:"technologies"`
	LiveURL      string   `json:"live_url,omitempty"`
	GitHubURL    string   `json:"github_url,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  []string `json:"description"`
}

// Certification 认证条目。
type Certification struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	CredentialURL string `json:"credential_url,omitempty"`
}

// ExtraCurricular 课外活动条目。
type ExtraCurricular struct {
	ID              string   `json:"id"`
	Activity        string   `json:"activity"`
	Organization    string   `json:"organization"`
	OrganizationURL string   `json:"organization_url,omitempty"`
	Role            string   `json:"role"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Description     []string `json:"description"`
}

// Award 获奖条目，Description 为单段富文本。
type Award struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	IssuerURL   string `json:"issuer_url,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Achievement 成就条目。
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	URL         string `json:"url,omitempty"`
}

// TechnicalSkills 按类别存放技能词条，词条顺序即用户输入顺序。
type TechnicalSkills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
	Libraries  []string `json:"libraries"`
}

// IsEmpty 四个类别全为空时成立，预览模式据此隐藏技能区块。
func (s TechnicalSkills) IsEmpty() bool {
	return len(s.Languages) == 0 &&
		len(s.Frameworks) == 0 &&
		len(s.Tools) == 0 &&
		len(s.Libraries) == 0
}

// LanguageProficiency 语言能力（0-5 星）。
// 编辑器暂未提供修改入口，字段保留以兼容既有数据。
type LanguageProficiency struct {
	Language    string `json:"language"`
	Proficiency int    `json:"proficiency"`
}

// NewDocument 返回全空的简历骨架，SectionOrder 为默认顺序。
func NewDocument() Document {
	return Document{
		Education:       []Education{},
		Experiences:     []Experience{},
		Projects:        []Project{},
		Certifications:  []Certification{},
		ExtraCurricular: []ExtraCurricular{},
		Awards:          []Award{},
		Achievements:    []Achievement{},
		TechnicalSkills: TechnicalSkills{
			Languages:  []string{},
			Frameworks: []string{},
			Tools:      []string{},
			Libraries:  []string{},
		},
		LanguageProficiency: []LanguageProficiency{},
		SectionOrder:        DefaultSectionOrder(),
	}
}

// Clone 返回 Document 的深拷贝，保证交给渲染方的快照与会话内部不共享底层数组。
func (d Document) Clone() Document {
	out := d
	out.Education = append([]Education(nil), d.Education...)
	out.Experiences = cloneWithDescription(d.Experiences, func(e *Experience) *[]string { return &e.Description })
	out.Projects = cloneWithDescription(d.Projects, func(p *Project) *[]string { return &p.Description })
	out.Certifications = append([]Certification(nil), d.Certifications...)
	out.ExtraCurricular = cloneWithDescription(d.ExtraCurricular, func(x *ExtraCurricular) *[]string { return &x.Description })
	out.Awards = append([]Award(nil), d.Awards...)
	out.Achievements = append([]Achievement(nil), d.Achievements...)
	out.TechnicalSkills = TechnicalSkills{
		Languages:  append([]string(nil), d.TechnicalSkills.Languages...),
		Frameworks: append([]string(nil), d.TechnicalSkills.Frameworks...),
		Tools:      append([]string(nil), d.TechnicalSkills.Tools...),
		Libraries:  append([]string(nil), d.TechnicalSkills.Libraries...),
	}
	out.LanguageProficiency = append([]LanguageProficiency(nil), d.LanguageProficiency...)
	out.SectionOrder = append([]SectionKey(nil), d.SectionOrder...)
	return out
}

func cloneWithDescription[T any](list []T, desc func(*T) *[]string) []T {
	out := append([]T(nil), list...)
	for i := range out {
		d := desc(&out[i])
		*d = append([]string(nil), *d...)
	}
	return out
}
