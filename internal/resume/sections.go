package resume

// SectionKey 标识一个可排序的简历区块。
type SectionKey string

// 固定的区块集合；SectionOrder 必须恰好是它的一个排列。
const (
	SectionProfessionalSummary SectionKey = "professionalSummary"
	SectionEducation           SectionKey = "education"
	SectionExperiences         SectionKey = "experiences"
	SectionProjects            SectionKey = "projects"
	SectionCertifications      SectionKey = "certifications"
	SectionExtraCurricular     SectionKey = "extraCurricular"
	SectionAwards              SectionKey = "awards"
	SectionAchievements        SectionKey = "achievements"
	SectionTechnicalSkills     SectionKey = "technicalSkills"
	SectionLanguageProficiency SectionKey = "languageProficiency"
)

// DefaultSectionOrder 返回默认的区块顺序（新文档与示例文档一致）。
func DefaultSectionOrder() []SectionKey {
	return []SectionKey{
		SectionProfessionalSummary,
		SectionEducation,
		SectionExperiences,
		SectionProjects,
		SectionCertifications,
		SectionExtraCurricular,
		SectionAwards,
		SectionAchievements,
		SectionTechnicalSkills,
		SectionLanguageProficiency,
	}
}

// KnownSection 判断 key 是否属于固定区块集合。
func KnownSection(key SectionKey) bool {
	for _, k := range DefaultSectionOrder() {
		if k == key {
			return true
		}
	}
	return false
}

// ValidOrder 校验 order 是否为固定区块集合的排列：
// 每个区块恰好出现一次，且不含集合之外的 key。
func ValidOrder(order []SectionKey) bool {
	all := DefaultSectionOrder()
	if len(order) != len(all) {
		return false
	}
	seen := make(map[SectionKey]bool, len(order))
	for _, key := range order {
		if !KnownSection(key) || seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// MoveSectionUp 将 key 与前一个区块交换。
// key 位于首位或不在顺序中时原样返回。
func MoveSectionUp(doc Document, key SectionKey) Document {
	return swapSection(doc, key, -1)
}

// MoveSectionDown 将 key 与后一个区块交换。
// key 位于末位或不在顺序中时原样返回。
func MoveSectionDown(doc Document, key SectionKey) Document {
	return swapSection(doc, key, +1)
}

func swapSection(doc Document, key SectionKey, delta int) Document {
	idx := -1
	for i, k := range doc.SectionOrder {
		if k == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return doc
	}
	target := idx + delta
	if target < 0 || target >= len(doc.SectionOrder) {
		return doc
	}

	order := append([]SectionKey(nil), doc.SectionOrder...)
	order[idx], order[target] = order[target], order[idx]
	doc.SectionOrder = order
	return doc
}
