package render

import (
	"strings"
	"testing"

	"rgResume/internal/resume"
)

func sectionKeys(tree Tree) []resume.SectionKey {
	keys := make([]resume.SectionKey, 0, len(tree.Sections))
	for _, s := range tree.Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func findSection(t *testing.T, tree Tree, key resume.SectionKey) Section {
	t.Helper()
	for _, s := range tree.Sections {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("section %q not rendered, got %v", key, sectionKeys(tree))
	return Section{}
}

func TestPreviewSuppressesEmptySections(t *testing.T) {
	doc := resume.NewDocument()
	doc.ProfessionalSummary = "Backend engineer"
	doc, _ = resume.AddEntry(doc, resume.CollectionEducation)

	tree := Render(doc, ModePreview)

	keys := sectionKeys(tree)
	if len(keys) != 2 {
		t.Fatalf("expected 2 visible sections, got %v", keys)
	}
	if keys[0] != resume.SectionProfessionalSummary || keys[1] != resume.SectionEducation {
		t.Fatalf("unexpected section order: %v", keys)
	}
}

func TestEditorRendersEverySectionEvenWhenEmpty(t *testing.T) {
	tree := Render(resume.NewDocument(), ModeEditor)

	// 语言能力暂无编辑入口，其余区块必须全部出现。
	want := len(resume.DefaultSectionOrder()) - 1
	if len(tree.Sections) != want {
		t.Fatalf("expected %d editor sections, got %v", want, sectionKeys(tree))
	}
	for _, s := range tree.Sections {
		if s.Key == resume.SectionLanguageProficiency {
			t.Fatalf("language proficiency should not render in editor mode")
		}
	}
}

func TestEditorMoveControlsAtBoundaries(t *testing.T) {
	tree := Render(resume.NewDocument(), ModeEditor)

	first := tree.Sections[0]
	last := tree.Sections[len(tree.Sections)-1]
	if first.CanMoveUp {
		t.Errorf("first section should not be movable up")
	}
	if !first.CanMoveDown {
		t.Errorf("first section should be movable down")
	}
	if last.CanMoveDown {
		t.Errorf("last section should not be movable down")
	}
	if !last.CanMoveUp {
		t.Errorf("last section should be movable up")
	}
}

func TestPreviewFollowsStoredSectionOrder(t *testing.T) {
	doc := resume.SampleDocument()
	doc = resume.MoveSectionUp(doc, resume.SectionTechnicalSkills)
	idx := indexOf(doc.SectionOrder, resume.SectionTechnicalSkills)

	tree := Render(doc, ModePreview)

	keys := sectionKeys(tree)
	got := indexOf(keys, resume.SectionTechnicalSkills)
	prev := indexOf(keys, doc.SectionOrder[idx+1])
	if got == -1 || prev == -1 || got > prev {
		t.Fatalf("skills should render before the section it passed, got order %v", keys)
	}
}

func indexOf(keys []resume.SectionKey, key resume.SectionKey) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

func TestPreviewFiltersBlankBulletsWithoutMutating(t *testing.T) {
	doc := resume.NewDocument()
	doc, id := resume.AddEntry(doc, resume.CollectionExperiences)
	doc = resume.UpdateEntryField(doc, resume.CollectionExperiences, id, "description", "Shipped the thing\n\n   \nKept it running")

	tree := Render(doc, ModePreview)

	section := findSection(t, tree, resume.SectionExperiences)
	if len(section.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(section.Entries))
	}
	if got := len(section.Entries[0].Bullets); got != 2 {
		t.Fatalf("expected blank bullets filtered, got %d bullets", got)
	}
	if got := len(doc.Experiences[0].Description); got != 4 {
		t.Fatalf("stored description must keep blank lines, got %d lines", got)
	}
}

func TestPreviewExpandsInlineMarkup(t *testing.T) {
	doc := resume.NewDocument()
	doc.ProfessionalSummary = "Built **fast** services"

	tree := Render(doc, ModePreview)

	nodes := findSection(t, tree, resume.SectionProfessionalSummary).Summary
	if len(nodes) != 3 {
		t.Fatalf("expected 3 inline nodes, got %d", len(nodes))
	}
	if nodes[1].Text != "fast" {
		t.Fatalf("bold node text = %q", nodes[1].Text)
	}
}

func TestEditorKeepsSummaryRaw(t *testing.T) {
	doc := resume.NewDocument()
	doc.ProfessionalSummary = "Built **fast** services"

	tree := Render(doc, ModeEditor)

	section := findSection(t, tree, resume.SectionProfessionalSummary)
	if section.SummaryRaw != doc.ProfessionalSummary {
		t.Fatalf("editor must keep raw markup, got %q", section.SummaryRaw)
	}
	if section.Summary != nil {
		t.Fatalf("editor must not expand markup")
	}
}

func TestLanguageProficiencyStars(t *testing.T) {
	doc := resume.NewDocument()
	doc.LanguageProficiency = []resume.LanguageProficiency{
		{Language: "English", Proficiency: 5},
		{Language: "Hindi", Proficiency: 3},
		{Language: "Broken", Proficiency: 9},
	}

	tree := Render(doc, ModePreview)

	langs := findSection(t, tree, resume.SectionLanguageProficiency).Languages
	if len(langs) != 3 {
		t.Fatalf("expected 3 ratings, got %d", len(langs))
	}
	if langs[0].Stars != "★★★★★" {
		t.Errorf("English stars = %q", langs[0].Stars)
	}
	if langs[1].Stars != "★★★☆☆" {
		t.Errorf("Hindi stars = %q", langs[1].Stars)
	}
	if langs[2].Stars != "★★★★★" {
		t.Errorf("out-of-range proficiency should clamp, got %q", langs[2].Stars)
	}
}

func TestUnknownSectionKeyRendersNothing(t *testing.T) {
	doc := resume.SampleDocument()
	doc.SectionOrder = append([]resume.SectionKey{"hobbies"}, doc.SectionOrder...)

	tree := Render(doc, ModePreview)

	for _, s := range tree.Sections {
		if s.Key == "hobbies" {
			t.Fatalf("unknown key must be skipped")
		}
	}
}

func TestHeaderFallbackName(t *testing.T) {
	tree := Render(resume.NewDocument(), ModePreview)
	if tree.Header.FullName != "Your Name" {
		t.Fatalf("empty name should fall back, got %q", tree.Header.FullName)
	}
}

func TestPreviewHTMLEscapesAndStyles(t *testing.T) {
	doc := resume.NewDocument()
	doc.PersonalInfo.FullName = "Jake <Ryan>"
	doc.ProfessionalSummary = "Ships **reliable** code, see [docs](example.com/a?b=1)"

	html, err := DocumentHTML(doc, ModePreview)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(html, "Jake &lt;Ryan&gt;") {
		t.Errorf("name not escaped")
	}
	if !strings.Contains(html, "<strong>reliable</strong>") {
		t.Errorf("bold markup not expanded")
	}
	if !strings.Contains(html, `href="https://example.com/a?b=1"`) {
		t.Errorf("link href not normalized, html: %s", html)
	}
	if strings.Contains(html, "**") {
		t.Errorf("raw markers leaked into preview html")
	}
	if !strings.Contains(html, `id="a4-container"`) {
		t.Errorf("missing print canvas marker")
	}
	if !strings.Contains(html, `id="pdf-render-ready"`) {
		t.Errorf("missing render ready signal")
	}
}

func TestEditorHTMLListsAllSections(t *testing.T) {
	html, err := DocumentHTML(resume.SampleDocument(), ModeEditor)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, key := range resume.DefaultSectionOrder() {
		if key == resume.SectionLanguageProficiency {
			continue
		}
		if !strings.Contains(html, `data-section="`+string(key)+`"`) {
			t.Errorf("editor html missing section %q", key)
		}
	}
	if !strings.Contains(html, `name="professional_summary"`) {
		t.Errorf("summary textarea missing")
	}
}

func TestEditorSkillInputsCarryCategoryTokens(t *testing.T) {
	html, err := DocumentHTML(resume.SampleDocument(), ModeEditor)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	// data-category 必须与技能接口的路径参数一致，不是展示用的标签。
	for _, category := range []resume.SkillCategory{
		resume.SkillLanguages,
		resume.SkillFrameworks,
		resume.SkillTools,
		resume.SkillLibraries,
	} {
		if !strings.Contains(html, `data-category="`+string(category)+`"`) {
			t.Errorf("editor html missing skill category token %q", category)
		}
	}
	if strings.Contains(html, `data-category="Developer Tools"`) || strings.Contains(html, `data-category="Tools"`) {
		t.Errorf("editor html leaks display label into data-category")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := resume.SampleDocument()
	a, err := DocumentHTML(doc, ModePreview)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := DocumentHTML(doc, ModePreview)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if a != b {
		t.Fatalf("same document rendered differently")
	}
}
