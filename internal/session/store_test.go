package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"rgResume/internal/resume"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore()
	id, doc := store.Create()
	if id == "" {
		t.Fatalf("empty session id")
	}
	if len(doc.SectionOrder) == 0 {
		t.Fatalf("new session should hold a blank document with default order")
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PersonalInfo.FullName != "" {
		t.Fatalf("blank document expected, got %+v", got.PersonalInfo)
	}
}

func TestGetMissingSession(t *testing.T) {
	store := NewStore()
	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	store := NewStore()
	id, _ := store.CreateSample()

	snap, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	snap.Experiences[0].Description[0] = "tampered"
	snap.PersonalInfo.FullName = "tampered"

	fresh, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh.Experiences[0].Description[0] == "tampered" || fresh.PersonalInfo.FullName == "tampered" {
		t.Fatalf("store state leaked through a snapshot")
	}
}

func TestReplaceRejectsInvalidOrder(t *testing.T) {
	store := NewStore()
	id, doc := store.Create()

	doc.SectionOrder = doc.SectionOrder[:3]
	if err := store.Replace(id, doc); err == nil {
		t.Fatalf("truncated section order accepted")
	}

	good := resume.SampleDocument()
	if err := store.Replace(id, good); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, _ := store.Get(id)
	if got.PersonalInfo.FullName != good.PersonalInfo.FullName {
		t.Fatalf("replace did not persist")
	}
}

func TestMutateAppliesAtomically(t *testing.T) {
	store := NewStore()
	id, _ := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Mutate(id, func(doc resume.Document) resume.Document {
				doc, _ = resume.AddEntry(doc, resume.CollectionAwards)
				return doc
			})
			if err != nil {
				t.Errorf("Mutate: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Awards) != 20 {
		t.Fatalf("lost updates: %d awards, want 20", len(got.Awards))
	}
}

func TestLoadSample(t *testing.T) {
	store := NewStore()
	id, _ := store.Create()
	doc, err := store.LoadSample(id)
	if err != nil {
		t.Fatalf("LoadSample: %v", err)
	}
	if doc.PersonalInfo.FullName == "" {
		t.Fatalf("sample not loaded")
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := NewStore()
	clock := time.Now()
	store.now = func() time.Time { return clock }

	idle, _ := store.Create()
	clock = clock.Add(2 * time.Hour)
	active, _ := store.Create()

	removed := store.Sweep(time.Hour)
	if len(removed) != 1 || removed[0] != idle {
		t.Fatalf("removed = %v, want [%s]", removed, idle)
	}
	if _, err := store.Get(idle); !errors.Is(err, ErrNotFound) {
		t.Errorf("idle session survived sweep")
	}
	if _, err := store.Get(active); err != nil {
		t.Errorf("active session swept: %v", err)
	}
}
