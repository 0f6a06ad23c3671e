package report

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/SabrinaDeveloper/mindtracking-api/internal/platform/storage"
)

type fakeRenderer struct {
	store storage.Store
	err   error

	rendered *Report
}

func (f *fakeRenderer) Render(ctx context.Context, rep *Report) (string, error) {
	f.rendered = rep
	if f.err != nil {
		return "", f.err
	}
	return f.store.Save(ctx, FileName(rep.Identity.Name), strings.NewReader("%PDF-fake"))
}

// openFailStore saves fine but cannot open anything back.
type openFailStore struct {
	storage.Store
}

func (s openFailStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, storage.ErrArtifactNotFound
}

func newReportRequest(h *Handler, patientID string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/patients/:id/report")
	c.SetParamNames("id")
	c.SetParamValues(patientID)
	if err := h.GenerateReport(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func testHandler(repo Repository, store storage.Store, rendererErr error, exposeErrors bool) *Handler {
	renderer := &fakeRenderer{store: store, err: rendererErr}
	return NewHandler(NewService(repo), renderer, store, zerolog.Nop(), exposeErrors)
}

func TestGenerateReport_StreamsAttachment(t *testing.T) {
	repo := &fakeRepo{bundle: &RawBundle{Name: "Maria Silva", Email: "m@x.com"}}
	store := storage.NewMemStore()
	h := testHandler(repo, store, nil, false)

	rec := newReportRequest(h, "42")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if cd != `attachment; filename="Relatorio-Maria_Silva.pdf"` {
		t.Errorf("content disposition = %q", cd)
	}
	if body := rec.Body.String(); body != "%PDF-fake" {
		t.Errorf("body = %q, want stored artifact content", body)
	}
}

func TestGenerateReport_UnknownPatient(t *testing.T) {
	repo := &fakeRepo{err: ErrNotFound}
	h := testHandler(repo, storage.NewMemStore(), nil, false)

	rec := newReportRequest(h, "missing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["message"] != "patient not found" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestGenerateReport_RenderFailure(t *testing.T) {
	repo := &fakeRepo{bundle: &RawBundle{Name: "Ana"}}
	h := testHandler(repo, storage.NewMemStore(), errors.New("font table corrupt"), false)

	rec := newReportRequest(h, "1")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["message"] != "internal server error" {
		t.Errorf("message = %q", body["message"])
	}
	if _, leaked := body["error"]; leaked {
		t.Error("error detail must not leak when exposeErrors is off")
	}
}

func TestGenerateReport_RenderFailureExposesDetailInDev(t *testing.T) {
	repo := &fakeRepo{bundle: &RawBundle{Name: "Ana"}}
	h := testHandler(repo, storage.NewMemStore(), errors.New("font table corrupt"), true)

	rec := newReportRequest(h, "1")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["error"] != "font table corrupt" {
		t.Errorf("expected error detail in dev mode, got %v", body["error"])
	}
}

func TestGenerateReport_DeliveryFailureReportsLocation(t *testing.T) {
	repo := &fakeRepo{bundle: &RawBundle{Name: "Maria Silva"}}
	store := openFailStore{Store: storage.NewMemStore()}
	h := testHandler(repo, store, nil, false)

	rec := newReportRequest(h, "42")

	// The artifact exists on disk; the response degrades to a pointer
	// instead of a hard failure.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["location"] != "Relatorio-Maria_Silva.pdf" {
		t.Errorf("location = %v", body["location"])
	}
}
