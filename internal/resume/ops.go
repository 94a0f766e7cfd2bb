package resume

import (
	"strings"

	"github.com/google/uuid"
)

// Collection 标识一个带 ID 的条目集合。
type Collection string

const (
	CollectionEducation       Collection = "education"
	CollectionExperiences     Collection = "experiences"
	CollectionProjects        Collection = "projects"
	CollectionCertifications  Collection = "certifications"
	CollectionExtraCurricular Collection = "extraCurricular"
	CollectionAwards          Collection = "awards"
	CollectionAchievements    Collection = "achievements"
)

// KnownCollection 判断 name 是否为合法的条目集合名。
func KnownCollection(name Collection) bool {
	switch name {
	case CollectionEducation, CollectionExperiences, CollectionProjects,
		CollectionCertifications, CollectionExtraCurricular,
		CollectionAwards, CollectionAchievements:
		return true
	}
	return false
}

// SkillCategory 标识技能区块中的一个类别。
type SkillCategory string

const (
	SkillLanguages  SkillCategory = "languages"
	SkillFrameworks SkillCategory = "frameworks"
	SkillTools      SkillCategory = "tools"
	SkillLibraries  SkillCategory = "libraries"
)

// 所有编辑操作都是纯函数：输入 Document，输出新的 Document，
// 绝不修改入参。条目 ID 在此生成，整个会话内保证唯一。

// NewEntryID 生成条目 ID。
// 原实现使用毫秒时间戳，快速连续创建会撞 ID，这里改用 UUID。
func NewEntryID() string {
	return uuid.NewString()
}

// AddEntry 在指定集合尾部追加一个空白条目，返回新文档与新条目的 ID。
// 集合名非法时原样返回文档，ID 为空串。
func AddEntry(doc Document, collection Collection) (Document, string) {
	id := NewEntryID()
	switch collection {
	case CollectionEducation:
		doc.Education = append(append([]Education(nil), doc.Education...), Education{ID: id})
	case CollectionExperiences:
		doc.Experiences = append(append([]Experience(nil), doc.Experiences...), Experience{ID: id, Description: []string{""}})
	case CollectionProjects:
		doc.Projects = append(append([]Project(nil), doc.Projects...), Project{ID: id, Description: []string{""}})
	case CollectionCertifications:
		doc.Certifications = append(append([]Certification(nil), doc.Certifications...), Certification{ID: id})
	case CollectionExtraCurricular:
		doc.ExtraCurricular = append(append([]ExtraCurricular(nil), doc.ExtraCurricular...), ExtraCurricular{ID: id, Description: []string{""}})
	case CollectionAwards:
		doc.Awards = append(append([]Award(nil), doc.Awards...), Award{ID: id})
	case CollectionAchievements:
		doc.Achievements = append(append([]Achievement(nil), doc.Achievements...), Achievement{ID: id})
	default:
		return doc, ""
	}
	return doc, id
}

// UpdateEntryField 按 ID 定位条目并只替换指定字段。
// ID 不存在（例如删除与编辑竞态后的过期引用）、集合名或字段名非法时
// 均为静默 no-op，原样返回文档。
// 要点列表字段（description）以换行拆分 value，与编辑器的多行输入框对应。
func UpdateEntryField(doc Document, collection Collection, id, field, value string) Document {
	switch collection {
	case CollectionEducation:
		doc.Education = updateByID(doc.Education, id, func(e *Education) {
			switch field {
			case "degree":
				e.Degree = value
			case "school":
				e.School = value
			case "school_url":
				e.SchoolURL = value
			case "location":
				e.Location = value
			case "start_date":
				e.StartDate = value
			case "end_date":
				e.EndDate = value
			case "gpa":
				e.GPA = value
			}
		})
	case CollectionExperiences:
		doc.Experiences = updateByID(doc.Experiences, id, func(e *Experience) {
			switch field {
			case "title":
				e.Title = value
			case "company":
				e.Company = value
			case "company_url":
				e.CompanyURL = value
			case "location":
				e.Location = value
			case "start_date":
				e.StartDate = value
			case "end_date":
				e.EndDate = value
			case "description":
				e.Description = strings.Split(value, "\n")
			}
		})
	case CollectionProjects:
		doc.Projects = updateByID(doc.Projects, id, func(p *Project) {
			switch field {
			case "name":
				p.Name = value
			case "technologies":
				p.Technologies = value
			case "live_url":
				p.LiveURL = value
			case "github_url":
				p.GitHubURL = value
			case "start_date":
				p.StartDate = value
			case "end_date":
				p.EndDate = value
			case "description":
				p.Description = strings.Split(value, "\n")
			}
		})
	case CollectionCertifications:
		doc.Certifications = updateByID(doc.Certifications, id, func(c *Certification) {
			switch field {
			case "name":
				c.Name = value
			case "date":
				c.Date = value
			case "credential_url":
				c.CredentialURL = value
			}
		})
	case CollectionExtraCurricular:
		doc.ExtraCurricular = updateByID(doc.ExtraCurricular, id, func(x *ExtraCurricular) {
			switch field {
			case "activity":
				x.Activity = value
			case "organization":
				x.Organization = value
			case "organization_url":
				x.OrganizationURL = value
			case "role":
				x.Role = value
			case "start_date":
				x.StartDate = value
			case "end_date":
				x.EndDate = value
			case "description":
				x.Description = strings.Split(value, "\n")
			}
		})
	case CollectionAwards:
		doc.Awards = updateByID(doc.Awards, id, func(a *Award) {
			switch field {
			case "title":
				a.Title = value
			case "issuer":
				a.Issuer = value
			case "issuer_url":
				a.IssuerURL = value
			case "date":
				a.Date = value
			case "description":
				a.Description = value
			}
		})
	case CollectionAchievements:
		doc.Achievements = updateByID(doc.Achievements, id, func(a *Achievement) {
			switch field {
			case "title":
				a.Title = value
			case "description":
				a.Description = value
			case "date":
				a.Date = value
			case "url":
				a.URL = value
			}
		})
	}
	return doc
}

// RemoveEntry 删除指定 ID 的条目，保持其余条目的相对顺序。
// ID 不存在时为静默 no-op。
func RemoveEntry(doc Document, collection Collection, id string) Document {
	switch collection {
	case CollectionEducation:
		doc.Education = removeByID(doc.Education, id, func(e Education) string { return e.ID })
	case CollectionExperiences:
		doc.Experiences = removeByID(doc.Experiences, id, func(e Experience) string { return e.ID })
	case CollectionProjects:
		doc.Projects = removeByID(doc.Projects, id, func(p Project) string { return p.ID })
	case CollectionCertifications:
		doc.Certifications = removeByID(doc.Certifications, id, func(c Certification) string { return c.ID })
	case CollectionExtraCurricular:
		doc.ExtraCurricular = removeByID(doc.ExtraCurricular, id, func(x ExtraCurricular) string { return x.ID })
	case CollectionAwards:
		doc.Awards = removeByID(doc.Awards, id, func(a Award) string { return a.ID })
	case CollectionAchievements:
		doc.Achievements = removeByID(doc.Achievements, id, func(a Achievement) string { return a.ID })
	}
	return doc
}

// UpdatePersonalInfo 替换个人信息中的单个字段，字段名非法时 no-op。
func UpdatePersonalInfo(doc Document, field, value string) Document {
	switch field {
	case "full_name":
		doc.PersonalInfo.FullName = value
	case "phone":
		doc.PersonalInfo.Phone = value
	case "email":
		doc.PersonalInfo.Email = value
	case "linkedin":
		doc.PersonalInfo.LinkedIn = value
	case "github":
		doc.PersonalInfo.GitHub = value
	case "twitter":
		doc.PersonalInfo.Twitter = value
	case "location":
		doc.PersonalInfo.Location = value
	}
	return doc
}

// SetSummary 整体替换职业概述。
func SetSummary(doc Document, text string) Document {
	doc.ProfessionalSummary = text
	return doc
}

// UpdateSkills 以逗号分隔的原始输入整体替换指定类别的技能序列。
// 词条去除首尾空白、丢弃空串，但保留顺序与重复项。
func UpdateSkills(doc Document, category SkillCategory, rawText string) Document {
	tokens := SplitSkills(rawText)
	skills := doc.TechnicalSkills
	skills.Languages = append([]string(nil), skills.Languages...)
	skills.Frameworks = append([]string(nil), skills.Frameworks...)
	skills.Tools = append([]string(nil), skills.Tools...)
	skills.Libraries = append([]string(nil), skills.Libraries...)
	switch category {
	case SkillLanguages:
		skills.Languages = tokens
	case SkillFrameworks:
		skills.Frameworks = tokens
	case SkillTools:
		skills.Tools = tokens
	case SkillLibraries:
		skills.Libraries = tokens
	default:
		return doc
	}
	doc.TechnicalSkills = skills
	return doc
}

// SplitSkills 拆分逗号分隔的技能输入：逐项 trim，丢弃空项，不去重。
func SplitSkills(rawText string) []string {
	parts := strings.Split(rawText, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// ClearSection 重置单个区块的内容，不影响其它区块。
// 目前编辑器只为职业概述与技能区块提供清空入口，其余 key 为 no-op。
func ClearSection(doc Document, key SectionKey) Document {
	switch key {
	case SectionProfessionalSummary:
		doc.ProfessionalSummary = ""
	case SectionTechnicalSkills:
		doc.TechnicalSkills = TechnicalSkills{
			Languages:  []string{},
			Frameworks: []string{},
			Tools:      []string{},
			Libraries:  []string{},
		}
	}
	return doc
}

func updateByID[T any](list []T, id string, apply func(*T)) []T {
	out := append([]T(nil), list...)
	for i := range out {
		if entryID(&out[i]) == id {
			apply(&out[i])
			return out
		}
	}
	return out
}

func removeByID[T any](list []T, id string, getID func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if getID(item) != id {
			out = append(out, item)
		}
	}
	return out
}

func entryID[T any](item *T) string {
	switch v := any(item).(type) {
	case *Education:
		return v.ID
	case *Experience:
		return v.ID
	case *Project:
		return v.ID
	case *Certification:
		return v.ID
	case *ExtraCurricular:
		return v.ID
	case *Award:
		return v.ID
	case *Achievement:
		return v.ID
	default:
		return ""
	}
}
