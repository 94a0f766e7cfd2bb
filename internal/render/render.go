// Package render 将简历文档投影为两种展示树：
// 编辑视图（完整表单）与预览视图（紧凑打印版）。
// 两种投影消费同一份只读快照，渲染过程绝不回写文档。
package render

import (
	"fmt"
	"strings"

	"rgResume/internal/markup"
	"rgResume/internal/resume"
)

// Mode 选择渲染投影。
type Mode string

const (
	// ModeEditor 渲染完整的编辑表单：所有区块始终可见（包括空区块），
	// 富文本字段以原始标记文本呈现。
	ModeEditor Mode = "editor"
	// ModePreview 渲染紧凑的打印视图：空区块隐藏，富文本展开。
	ModePreview Mode = "preview"
)

// Tree 是渲染结果的根：头部固定在最前，其余区块按 SectionOrder 排列。
type Tree struct {
	Mode           Mode
	Header         Header
	PersonalFields []Field
	Sections       []Section
}

// Header 预览头部的联系信息；空字段由模板跳过。
type Header struct {
	FullName string
	Phone    string
	Email    string
	Location string
	LinkedIn string
	GitHub   string
}

// Section 单个区块的展示内容。未使用的字段保持零值，由模板按区块类型取用。
type Section struct {
	Key         resume.SectionKey
	Title       string
	Summary     []markup.Node
	SummaryRaw  string
	Entries     []Entry
	SkillLines  []SkillLine
	Languages   []LanguageRating
	CanMoveUp   bool
	CanMoveDown bool
	CanAdd      bool
	CanClear    bool
}

// Entry 区块内的单个条目。预览模式填充展示字段；编辑模式填充 Fields。
type Entry struct {
	ID         string
	Title      string
	TitleHref  string
	Subtitle   string
	SubHref    string
	Detail     string
	DateRange  string
	Location   string
	Links      []LinkRef
	Bullets    [][]markup.Node
	Body       []markup.Node
	Fields     []Field
	BulletsRaw string
}

// LinkRef 条目标题旁的附加链接（例如项目的在线地址与仓库）。
type LinkRef struct {
	Label string
	Href  string
}

// Field 编辑模式下的单个可编辑字段。Name 与编辑操作的字段名一致。
type Field struct {
	Name      string
	Label     string
	Value     string
	Multiline bool
}

// SkillLine 技能区块中的一行（类别标签 + 逗号连接的词条）。
// Category 是技能编辑接口使用的类别 token，仅编辑模式填充。
type SkillLine struct {
	Label    string
	Items    string
	Category resume.SkillCategory
}

// LanguageRating 语言能力的星级展示。
type LanguageRating struct {
	Language string
	Stars    string
}

// Render 将文档投影为展示树。纯函数：相同输入必得相同输出。
func Render(doc resume.Document, mode Mode) Tree {
	tree := Tree{
		Mode:   mode,
		Header: buildHeader(doc.PersonalInfo),
	}
	if mode == ModeEditor {
		tree.PersonalFields = personalFields(doc.PersonalInfo)
	}

	for i, key := range doc.SectionOrder {
		section, ok := buildSection(doc, key, mode)
		if !ok {
			continue
		}
		if mode == ModeEditor {
			section.CanMoveUp = i > 0
			section.CanMoveDown = i < len(doc.SectionOrder)-1
		}
		tree.Sections = append(tree.Sections, section)
	}
	return tree
}

func buildHeader(info resume.PersonalInfo) Header {
	name := info.FullName
	if name == "" {
		name = "Your Name"
	}
	return Header{
		FullName: name,
		Phone:    info.Phone,
		Email:    info.Email,
		Location: info.Location,
		LinkedIn: markup.NormalizeURL(info.LinkedIn),
		GitHub:   markup.NormalizeURL(info.GitHub),
	}
}

func personalFields(info resume.PersonalInfo) []Field {
	return []Field{
		{Name: "full_name", Label: "Full Name", Value: info.FullName},
		{Name: "phone", Label: "Phone", Value: info.Phone},
		{Name: "email", Label: "Email", Value: info.Email},
		{Name: "location", Label: "Location", Value: info.Location},
		{Name: "linkedin", Label: "LinkedIn URL", Value: info.LinkedIn},
		{Name: "github", Label: "GitHub URL", Value: info.GitHub},
	}
}

// buildSection 按区块 key 分发到对应的构造函数。
// 预览模式下空区块返回 ok=false；未知 key 一律不渲染，保证渲染总是成功。
func buildSection(doc resume.Document, key resume.SectionKey, mode Mode) (Section, bool) {
	preview := mode == ModePreview
	switch key {
	case resume.SectionProfessionalSummary:
		return summarySection(doc, preview)
	case resume.SectionEducation:
		return educationSection(doc, preview)
	case resume.SectionExperiences:
		return experienceSection(doc, preview)
	case resume.SectionProjects:
		return projectSection(doc, preview)
	case resume.SectionCertifications:
		return certificationSection(doc, preview)
	case resume.SectionExtraCurricular:
		return extraCurricularSection(doc, preview)
	case resume.SectionAwards:
		return awardSection(doc, preview)
	case resume.SectionAchievements:
		return achievementSection(doc, preview)
	case resume.SectionTechnicalSkills:
		return skillSection(doc, preview)
	case resume.SectionLanguageProficiency:
		return languageSection(doc, preview)
	default:
		return Section{}, false
	}
}

func summarySection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{
		Key:      resume.SectionProfessionalSummary,
		Title:    "Professional Summary",
		CanClear: true,
	}
	if preview {
		if doc.ProfessionalSummary == "" {
			return Section{}, false
		}
		section.Summary = markup.Expand(doc.ProfessionalSummary)
		return section, true
	}
	section.SummaryRaw = doc.ProfessionalSummary
	return section, true
}

func educationSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionEducation, Title: "Education", CanAdd: true}
	if preview && len(doc.Education) == 0 {
		return Section{}, false
	}
	for _, edu := range doc.Education {
		if preview {
			detail := edu.Degree
			if edu.GPA != "" {
				detail = fmt.Sprintf("%s, GPA: %s", detail, edu.GPA)
			}
			section.Entries = append(section.Entries, Entry{
				ID:        edu.ID,
				Title:     edu.School,
				TitleHref: markup.NormalizeURL(edu.SchoolURL),
				Detail:    detail,
				DateRange: dateRange(edu.StartDate, edu.EndDate),
				Location:  edu.Location,
			})
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID: edu.ID,
			Fields: []Field{
				{Name: "degree", Label: "Degree", Value: edu.Degree},
				{Name: "school", Label: "School", Value: edu.School},
				{Name: "school_url", Label: "School URL", Value: edu.SchoolURL},
				{Name: "location", Label: "Location", Value: edu.Location},
				{Name: "gpa", Label: "GPA", Value: edu.GPA},
				{Name: "start_date", Label: "Start", Value: edu.StartDate},
				{Name: "end_date", Label: "End", Value: edu.EndDate},
			},
		})
	}
	return section, true
}

func experienceSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionExperiences, Title: "Experience", CanAdd: true}
	if preview && len(doc.Experiences) == 0 {
		return Section{}, false
	}
	for _, exp := range doc.Experiences {
		if preview {
			section.Entries = append(section.Entries, Entry{
				ID:        exp.ID,
				Title:     exp.Title,
				TitleHref: markup.NormalizeURL(exp.CompanyURL),
				Subtitle:  exp.Company,
				DateRange: dateRange(exp.StartDate, exp.EndDate),
				Location:  exp.Location,
				Bullets:   expandBullets(exp.Description),
			})
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID:         exp.ID,
			BulletsRaw: strings.Join(exp.Description, "\n"),
			Fields: []Field{
				{Name: "title", Label: "Job Title", Value: exp.Title},
				{Name: "company", Label: "Company", Value: exp.Company},
				{Name: "company_url", Label: "Company URL", Value: exp.CompanyURL},
				{Name: "location", Label: "Location", Value: exp.Location},
				{Name: "start_date", Label: "Start Date", Value: exp.StartDate},
				{Name: "end_date", Label: "End Date", Value: exp.EndDate},
				{Name: "description", Label: "Description", Value: strings.Join(exp.Description, "\n"), Multiline: true},
			},
		})
	}
	return section, true
}

func projectSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionProjects, Title: "Projects", CanAdd: true}
	if preview && len(doc.Projects) == 0 {
		return Section{}, false
	}
	for _, proj := range doc.Projects {
		if preview {
			entry := Entry{
				ID:        proj.ID,
				Title:     proj.Name,
				Detail:    proj.Technologies,
				DateRange: dateRange(proj.StartDate, proj.EndDate),
				Bullets:   expandBullets(proj.Description),
			}
			if proj.LiveURL != "" {
				entry.Links = append(entry.Links, LinkRef{Label: "Live", Href: markup.NormalizeURL(proj.LiveURL)})
			}
			if proj.GitHubURL != "" {
				entry.Links = append(entry.Links, LinkRef{Label: "GitHub", Href: markup.NormalizeURL(proj.GitHubURL)})
			}
			section.Entries = append(section.Entries, entry)
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID:         proj.ID,
			BulletsRaw: strings.Join(proj.Description, "\n"),
			Fields: []Field{
				{Name: "name", Label: "Project Name", Value: proj.Name},
				{Name: "technologies", Label: "Technologies", Value: proj.Technologies},
				{Name: "live_url", Label: "Live URL", Value: proj.LiveURL},
				{Name: "github_url", Label: "GitHub URL", Value: proj.GitHubURL},
				{Name: "start_date", Label: "Start Date", Value: proj.StartDate},
				{Name: "end_date", Label: "End Date", Value: proj.EndDate},
				{Name: "description", Label: "Description", Value: strings.Join(proj.Description, "\n"), Multiline: true},
			},
		})
	}
	return section, true
}

func certificationSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionCertifications, Title: "Certifications", CanAdd: true}
	if preview && len(doc.Certifications) == 0 {
		return Section{}, false
	}
	for _, cert := range doc.Certifications {
		if preview {
			// 预览版刻意不显示认证日期，保持单页紧凑。
			section.Entries = append(section.Entries, Entry{
				ID:        cert.ID,
				Title:     cert.Name,
				TitleHref: markup.NormalizeURL(cert.CredentialURL),
			})
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID: cert.ID,
			Fields: []Field{
				{Name: "name", Label: "Certification Name", Value: cert.Name},
				{Name: "date", Label: "Date", Value: cert.Date},
				{Name: "credential_url", Label: "Credential URL", Value: cert.CredentialURL},
			},
		})
	}
	return section, true
}

func extraCurricularSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionExtraCurricular, Title: "Extra Curricular", CanAdd: true}
	if preview && len(doc.ExtraCurricular) == 0 {
		return Section{}, false
	}
	for _, act := range doc.ExtraCurricular {
		if preview {
			section.Entries = append(section.Entries, Entry{
				ID:        act.ID,
				Title:     fmt.Sprintf("%s - %s", act.Role, act.Activity),
				Subtitle:  act.Organization,
				SubHref:   markup.NormalizeURL(act.OrganizationURL),
				DateRange: dateRange(act.StartDate, act.EndDate),
				Bullets:   expandBullets(act.Description),
			})
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID:         act.ID,
			BulletsRaw: strings.Join(act.Description, "\n"),
			Fields: []Field{
				{Name: "activity", Label: "Activity", Value: act.Activity},
				{Name: "organization", Label: "Organization", Value: act.Organization},
				{Name: "organization_url", Label: "Organization URL", Value: act.OrganizationURL},
				{Name: "role", Label: "Role", Value: act.Role},
				{Name: "start_date", Label: "Start Date", Value: act.StartDate},
				{Name: "end_date", Label: "End Date", Value: act.EndDate},
				{Name: "description", Label: "Description", Value: strings.Join(act.Description, "\n"), Multiline: true},
			},
		})
	}
	return section, true
}

func awardSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionAwards, Title: "Awards", CanAdd: true}
	if preview && len(doc.Awards) == 0 {
		return Section{}, false
	}
	for _, award := range doc.Awards {
		if preview {
			section.Entries = append(section.Entries, Entry{
				ID:        award.ID,
				Title:     award.Title,
				Subtitle:  award.Issuer,
				SubHref:   markup.NormalizeURL(award.IssuerURL),
				DateRange: award.Date,
				Body:      markup.Expand(award.Description),
			})
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID: award.ID,
			Fields: []Field{
				{Name: "title", Label: "Award Title", Value: award.Title},
				{Name: "issuer", Label: "Issuer", Value: award.Issuer},
				{Name: "issuer_url", Label: "Issuer URL", Value: award.IssuerURL},
				{Name: "date", Label: "Date", Value: award.Date},
				{Name: "description", Label: "Description", Value: award.Description, Multiline: true},
			},
		})
	}
	return section, true
}

func achievementSection(doc resume.Document, preview bool) (Section, bool) {
	section := Section{Key: resume.SectionAchievements, Title: "Achievements", CanAdd: true}
	if preview && len(doc.Achievements) == 0 {
		return Section{}, false
	}
	for _, ach := range doc.Achievements {
		if preview {
			section.Entries = append(section.Entries, Entry{
				ID:        ach.ID,
				Title:     ach.Title,
				TitleHref: markup.NormalizeURL(ach.URL),
				DateRange: ach.Date,
				Body:      markup.Expand(ach.Description),
			})
			continue
		}
		section.Entries = append(section.Entries, Entry{
			ID: ach.ID,
			Fields: []Field{
				{Name: "title", Label: "Achievement Title", Value: ach.Title},
				{Name: "date", Label: "Date", Value: ach.Date},
				{Name: "description", Label: "Description", Value: ach.Description, Multiline: true},
				{Name: "url", Label: "URL", Value: ach.URL},
			},
		})
	}
	return section, true
}

func skillSection(doc resume.Document, preview bool) (Section, bool) {
	skills := doc.TechnicalSkills
	section := Section{Key: resume.SectionTechnicalSkills, Title: "Technical Skills", CanClear: true}
	if preview {
		if skills.IsEmpty() {
			return Section{}, false
		}
		lines := []struct {
			label string
			items []string
		}{
			{"Languages", skills.Languages},
			{"Frameworks", skills.Frameworks},
			{"Developer Tools", skills.Tools},
			{"Libraries", skills.Libraries},
		}
		for _, line := range lines {
			if len(line.items) == 0 {
				continue
			}
			section.SkillLines = append(section.SkillLines, SkillLine{
				Label: line.label,
				Items: strings.Join(line.items, ", "),
			})
		}
		return section, true
	}
	section.SkillLines = []SkillLine{
		{Label: "Languages", Items: strings.Join(skills.Languages, ", "), Category: resume.SkillLanguages},
		{Label: "Frameworks", Items: strings.Join(skills.Frameworks, ", "), Category: resume.SkillFrameworks},
		{Label: "Tools", Items: strings.Join(skills.Tools, ", "), Category: resume.SkillTools},
		{Label: "Libraries", Items: strings.Join(skills.Libraries, ", "), Category: resume.SkillLibraries},
	}
	return section, true
}

// languageSection 只在预览模式输出：编辑器尚无语言能力的编辑入口。
func languageSection(doc resume.Document, preview bool) (Section, bool) {
	if !preview || len(doc.LanguageProficiency) == 0 {
		return Section{}, false
	}
	section := Section{Key: resume.SectionLanguageProficiency, Title: "Language Proficiency"}
	for _, lang := range doc.LanguageProficiency {
		level := lang.Proficiency
		if level < 0 {
			level = 0
		}
		if level > 5 {
			level = 5
		}
		section.Languages = append(section.Languages, LanguageRating{
			Language: lang.Language,
			Stars:    strings.Repeat("★", level) + strings.Repeat("☆", 5-level),
		})
	}
	return section, true
}

func dateRange(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return fmt.Sprintf("%s - %s", start, end)
}

// expandBullets 过滤空白行并展开行内标记。
// 过滤只发生在渲染投影：存储中的空行保持原样。
func expandBullets(lines []string) [][]markup.Node {
	var out [][]markup.Node
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, markup.Expand(line))
	}
	return out
}
