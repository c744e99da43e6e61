package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m6r-ai/m6rclib/workspace"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	good := "Role: Tester\n    Reviews Go code.\nAction: Review\n    Read the diff.\n"
	bad := "junk\n"
	if err := os.WriteFile(filepath.Join(dir, "good.m6r"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.m6r"), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := workspace.New(dir, nil)
	if err := ws.ScanAll(); err != nil {
		t.Fatalf("ScanAll: %v", err)
	}

	s, err := NewServer(ws)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, dir
}

func get(t *testing.T, s *Server, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestServerIndex(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /: status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, want := range []string{"good.m6r", "bad.m6r", "2 documents", "1 error"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q\nbody:\n%s", want, body)
		}
	}
}

func TestServerIndexUnknownPath(t *testing.T) {
	s, _ := newTestServer(t)

	if w := get(t, s, "/no-such-page"); w.Code != http.StatusNotFound {
		t.Errorf("GET /no-such-page: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestServerDocumentRendersPrompt(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/d/good.m6r")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /d/good.m6r: status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, want := range []string{"Compiled prompt", "Role: Tester", "Read the diff."} {
		if !strings.Contains(body, want) {
			t.Errorf("document view missing %q\nbody:\n%s", want, body)
		}
	}
}

func TestServerDocumentShowsErrors(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/d/bad.m6r")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /d/bad.m6r: status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	for _, want := range []string{"1 error", "Unexpected token: junk at top level"} {
		if !strings.Contains(body, want) {
			t.Errorf("error view missing %q\nbody:\n%s", want, body)
		}
	}
}

func TestServerDocumentNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	if w := get(t, s, "/d/missing.m6r"); w.Code != http.StatusNotFound {
		t.Errorf("GET /d/missing.m6r: status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestServerDocumentJSON(t *testing.T) {
	s, dir := newTestServer(t)

	w := get(t, s, "/d/good.m6r", "Accept", "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got struct {
		Path string `json:"path"`
		AST  struct {
			Kind     string `json:"kind"`
			Children []struct {
				Kind  string `json:"kind"`
				Value string `json:"value"`
			} `json:"children"`
		} `json:"ast"`
		Errors []struct {
			Message string `json:"Message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if want := filepath.Join(dir, "good.m6r"); got.Path != want {
		t.Errorf("path = %q, want %q", got.Path, want)
	}
	if got.AST.Kind != "Root" {
		t.Errorf("ast kind = %q, want Root", got.AST.Kind)
	}
	if len(got.AST.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(got.AST.Children))
	}
	if got.AST.Children[0].Kind != "Role" || got.AST.Children[0].Value != "Tester" {
		t.Errorf("first child = %s %q, want Role Tester", got.AST.Children[0].Kind, got.AST.Children[0].Value)
	}
	if len(got.Errors) != 0 {
		t.Errorf("errors = %d, want 0", len(got.Errors))
	}
}

func TestServerDocumentJSONErrors(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/d/bad.m6r", "Accept", "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var got struct {
		Errors []struct {
			Message string `json:"Message"`
			Line    int    `json:"Line"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(got.Errors))
	}
	if got.Errors[0].Message != "Unexpected token: junk at top level" {
		t.Errorf("message = %q", got.Errors[0].Message)
	}
	if got.Errors[0].Line != 1 {
		t.Errorf("line = %d, want 1", got.Errors[0].Line)
	}
}

func TestServerStaticStylesheet(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/static/style.css")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /static/style.css: status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "font-family") {
		t.Error("stylesheet served without expected content")
	}
}
