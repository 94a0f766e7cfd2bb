package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"rgResume/internal/resume"
	"rgResume/internal/session"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(f.tasks))}, nil
}

const testInternalSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *session.Store, *fakeEnqueuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore()
	enqueuer := &fakeEnqueuer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(logger)
	RegisterRoutes(router, store, enqueuer, nil, logger, testInternalSecret, nil)
	return router, store, enqueuer
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeDocument(t *testing.T, rec *httptest.ResponseRecorder) resume.Document {
	t.Helper()
	var resp struct {
		Document resume.Document `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return resp.Document
}

func createSession(t *testing.T, router *gin.Engine, sample bool) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/v1/sessions", gin.H{"sample": sample})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("empty session id")
	}
	return resp.SessionID
}

func TestCreateAndFetchSession(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get session status = %d", rec.Code)
	}
	doc := decodeDocument(t, rec)
	if len(doc.SectionOrder) != len(resume.DefaultSectionOrder()) {
		t.Fatalf("fresh session order = %v", doc.SectionOrder)
	}
}

func TestGetMissingSessionReturns404(t *testing.T) {
	router, _, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSampleSessionFlow(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, true)

	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/"+id, nil)
	doc := decodeDocument(t, rec)
	if doc.PersonalInfo.FullName == "" {
		t.Fatalf("sample session should carry the sample document")
	}
}

func TestEntryLifecycle(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	rec := doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/entries/experiences", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add entry status = %d, body %s", rec.Code, rec.Body.String())
	}
	var addResp struct {
		EntryID  string          `json:"entry_id"`
		Document resume.Document `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &addResp); err != nil {
		t.Fatalf("decode add response: %v", err)
	}
	if addResp.EntryID == "" || len(addResp.Document.Experiences) != 1 {
		t.Fatalf("add entry response = %+v", addResp)
	}

	rec = doJSON(t, router, http.MethodPatch,
		"/v1/sessions/"+id+"/entries/experiences/"+addResp.EntryID,
		gin.H{"field": "title", "value": "Platform Engineer"},
	)
	if rec.Code != http.StatusOK {
		t.Fatalf("update entry status = %d", rec.Code)
	}
	doc := decodeDocument(t, rec)
	if doc.Experiences[0].Title != "Platform Engineer" {
		t.Fatalf("title = %q", doc.Experiences[0].Title)
	}

	rec = doJSON(t, router, http.MethodDelete,
		"/v1/sessions/"+id+"/entries/experiences/"+addResp.EntryID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove entry status = %d", rec.Code)
	}
	doc = decodeDocument(t, rec)
	if len(doc.Experiences) != 0 {
		t.Fatalf("entry not removed")
	}
}

func TestStaleEntryUpdateIsSilentNoop(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, true)

	rec := doJSON(t, router, http.MethodPatch,
		"/v1/sessions/"+id+"/entries/projects/stale-id",
		gin.H{"field": "name", "value": "ignored"},
	)
	if rec.Code != http.StatusOK {
		t.Fatalf("stale update status = %d, want 200", rec.Code)
	}
	doc := decodeDocument(t, rec)
	for _, p := range doc.Projects {
		if p.Name == "ignored" {
			t.Fatalf("stale id modified an entry")
		}
	}
}

func TestUnknownCollectionRejected(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	rec := doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/entries/hobbies", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSkillsUpdateAndClear(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	rec := doJSON(t, router, http.MethodPut, "/v1/sessions/"+id+"/skills/languages",
		gin.H{"text": " Go, Rust ,, Go "})
	if rec.Code != http.StatusOK {
		t.Fatalf("update skills status = %d", rec.Code)
	}
	doc := decodeDocument(t, rec)
	if len(doc.TechnicalSkills.Languages) != 3 {
		t.Fatalf("languages = %v", doc.TechnicalSkills.Languages)
	}

	rec = doJSON(t, router, http.MethodDelete, "/v1/sessions/"+id+"/sections/technicalSkills", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear skills status = %d", rec.Code)
	}
	doc = decodeDocument(t, rec)
	if !doc.TechnicalSkills.IsEmpty() {
		t.Fatalf("skills not cleared")
	}
}

func TestSectionMoveEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	rec := doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/sections/education/move-down", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("move down status = %d", rec.Code)
	}
	doc := decodeDocument(t, rec)
	if doc.SectionOrder[2] != resume.SectionEducation {
		t.Fatalf("order after move = %v", doc.SectionOrder)
	}

	// 顶端上移是 no-op，不报错。
	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/sections/professionalSummary/move-up", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("boundary move status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/sections/hobbies/move-up", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown section status = %d, want 400", rec.Code)
	}
}

func TestPersonalAndSummaryEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	rec := doJSON(t, router, http.MethodPut, "/v1/sessions/"+id+"/personal",
		gin.H{"field": "full_name", "value": "Jake Ryan"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update personal status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/v1/sessions/"+id+"/summary",
		gin.H{"text": "Ships **reliable** services"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update summary status = %d", rec.Code)
	}
	doc := decodeDocument(t, rec)
	if doc.PersonalInfo.FullName != "Jake Ryan" || !strings.Contains(doc.ProfessionalSummary, "**reliable**") {
		t.Fatalf("document = %+v", doc)
	}
}

func TestReplaceSessionValidatesOrder(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, false)

	bad := resume.SampleDocument()
	bad.SectionOrder = bad.SectionOrder[:4]
	rec := doJSON(t, router, http.MethodPut, "/v1/sessions/"+id, bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid order status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/v1/sessions/"+id, resume.SampleDocument())
	if rec.Code != http.StatusOK {
		t.Fatalf("replace status = %d", rec.Code)
	}
}

func TestMarkupEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/markup/format",
		gin.H{"format": "bold", "start": 0, "end": 5, "text": "hello world"})
	if rec.Code != http.StatusOK {
		t.Fatalf("format status = %d", rec.Code)
	}
	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Text != "**hello** world" {
		t.Fatalf("formatted text = %q", resp.Text)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/markup/link",
		gin.H{"start": 0, "end": 0, "text": "x", "display": "", "url": "example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank display status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/markup/format",
		gin.H{"format": "strike", "text": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format status = %d, want 400", rec.Code)
	}
}

func TestPreviewAndEditorEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, true)

	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/"+id+"/preview", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("preview content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `id="a4-container"`) {
		t.Fatalf("preview missing print canvas")
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/sessions/"+id+"/editor", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("editor status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-section="education"`) {
		t.Fatalf("editor missing sections")
	}
}

func TestPrintEndpointRequiresInternalSecret(t *testing.T) {
	router, _, _ := newTestRouter(t)
	id := createSession(t, router, true)

	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/"+id+"/print", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing secret status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+id+"/print", nil)
	req.Header.Set("X-Internal-Secret", testInternalSecret)
	withSecret := httptest.NewRecorder()
	router.ServeHTTP(withSecret, req)
	if withSecret.Code != http.StatusOK {
		t.Fatalf("with secret status = %d", withSecret.Code)
	}
	doc := decodeDocument(t, withSecret)
	if doc.PersonalInfo.FullName == "" {
		t.Fatalf("print data missing document")
	}
}

func TestExportEnqueues(t *testing.T) {
	router, _, enqueuer := newTestRouter(t)
	id := createSession(t, router, true)

	rec := doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/export/image", nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("export image status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/"+id+"/export/pdf", nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("export pdf status = %d", rec.Code)
	}

	if len(enqueuer.tasks) != 2 {
		t.Fatalf("enqueued %d tasks, want 2", len(enqueuer.tasks))
	}
	if enqueuer.tasks[0].Type() != "export:image" || enqueuer.tasks[1].Type() != "export:pdf" {
		t.Fatalf("task types = %s, %s", enqueuer.tasks[0].Type(), enqueuer.tasks[1].Type())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/sessions/missing/export/pdf", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing session export status = %d, want 404", rec.Code)
	}
}
