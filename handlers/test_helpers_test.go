package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
	"lvestimate/storage"
	"lvestimate/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e
}

// newTestWorkspace returns a workspace over an in-memory store.
func newTestWorkspace(t *testing.T) *services.Workspace {
	t.Helper()
	return testhelpers.NewWorkspaceOn(t, storage.NewMemoryKV())
}

// formRequest builds a form-encoded request with optional path values.
func formRequest(method, target string, form url.Values, pathValues map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

type testUpload struct {
	field    string
	filename string
	body     []byte
}

// multipartRequest builds a multipart POST carrying the given files.
func multipartRequest(t *testing.T, target string, uploads ...testUpload) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.field, u.filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(u.body); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// serve runs handler against req and returns the recorder.
func serve(t *testing.T, handler func(*core.RequestEvent) error, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decodeEstimate(t *testing.T, rec *httptest.ResponseRecorder) estimateResponse {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode estimate response: %v", err)
	}
	return resp
}

// firstFloorID returns the id of the workspace's first floor.
func firstFloorID(t *testing.T, ws *services.Workspace) string {
	t.Helper()

	est := ws.Estimates.Snapshot()
	if len(est.Floors) == 0 {
		t.Fatal("expected at least one floor")
	}
	return est.Floors[0].ID
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
