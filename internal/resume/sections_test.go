package resume

import "testing"

func TestMoveSectionDownSwapsNeighbors(t *testing.T) {
	doc := NewDocument()
	doc = MoveSectionDown(doc, SectionEducation)

	if doc.SectionOrder[1] != SectionExperiences || doc.SectionOrder[2] != SectionEducation {
		t.Fatalf("order after move: %v", doc.SectionOrder)
	}
	if !ValidOrder(doc.SectionOrder) {
		t.Fatalf("move broke the permutation invariant: %v", doc.SectionOrder)
	}
}

func TestMoveSectionUpAtTopIsNoop(t *testing.T) {
	doc := NewDocument()
	got := MoveSectionUp(doc, SectionProfessionalSummary)
	for i, key := range got.SectionOrder {
		if key != doc.SectionOrder[i] {
			t.Fatalf("top section moved: %v", got.SectionOrder)
		}
	}
}

func TestMoveSectionDownAtBottomIsNoop(t *testing.T) {
	doc := NewDocument()
	last := doc.SectionOrder[len(doc.SectionOrder)-1]
	got := MoveSectionDown(doc, last)
	if got.SectionOrder[len(got.SectionOrder)-1] != last {
		t.Fatalf("bottom section moved: %v", got.SectionOrder)
	}
}

func TestMoveUnknownSectionIsNoop(t *testing.T) {
	doc := NewDocument()
	got := MoveSectionUp(doc, SectionKey("hobbies"))
	if !ValidOrder(got.SectionOrder) {
		t.Fatalf("unknown key corrupted order: %v", got.SectionOrder)
	}
	for i, key := range got.SectionOrder {
		if key != doc.SectionOrder[i] {
			t.Fatalf("unknown key changed order: %v", got.SectionOrder)
		}
	}
}

func TestMovesPreservePermutation(t *testing.T) {
	doc := NewDocument()
	moves := []struct {
		key  SectionKey
		down bool
	}{
		{SectionTechnicalSkills, false},
		{SectionTechnicalSkills, false},
		{SectionEducation, true},
		{SectionAwards, true},
		{SectionProfessionalSummary, true},
		{SectionLanguageProficiency, false},
	}
	for _, m := range moves {
		if m.down {
			doc = MoveSectionDown(doc, m.key)
		} else {
			doc = MoveSectionUp(doc, m.key)
		}
		if !ValidOrder(doc.SectionOrder) {
			t.Fatalf("order no longer a permutation after moving %q: %v", m.key, doc.SectionOrder)
		}
	}
}

func TestValidOrder(t *testing.T) {
	if !ValidOrder(DefaultSectionOrder()) {
		t.Errorf("default order must be valid")
	}
	short := DefaultSectionOrder()[:9]
	if ValidOrder(short) {
		t.Errorf("missing section accepted")
	}
	dup := DefaultSectionOrder()
	dup[0] = dup[1]
	if ValidOrder(dup) {
		t.Errorf("duplicate section accepted")
	}
	unknown := DefaultSectionOrder()
	unknown[3] = "hobbies"
	if ValidOrder(unknown) {
		t.Errorf("unknown section accepted")
	}
}
