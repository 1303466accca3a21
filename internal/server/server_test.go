package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gogpu/sierpinski"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	rec := get(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestStats(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	rec := get(t, h, "/api/stats?width=800&height=600")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Triangles != 1094 || got.Culled != 0 || got.MaxDepth != 7 {
		t.Errorf("stats = %+v, want 1094 triangles, 0 culled, depth 7", got)
	}
	// One fill per triangle plus the background rectangle.
	if got.Commands < got.Triangles+1 {
		t.Errorf("Commands = %d, want >= %d", got.Commands, got.Triangles+1)
	}
	if got.Zoom != 1 || got.Width != 800 || got.Height != 600 {
		t.Errorf("echoed view = %+v", got)
	}
}

func TestStatsDefaults(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	rec := get(t, h, "/api/stats")
	var got StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Width != DefaultWidth || got.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want defaults", got.Width, got.Height)
	}
}

func TestStatsCullsOffscreen(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	rec := get(t, h, "/api/stats?width=800&height=600&x=100000")
	var got StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Triangles != 1 || got.Culled != 1 {
		t.Errorf("Triangles = %d, Culled = %d, want 1, 1", got.Triangles, got.Culled)
	}
}

func TestRenderPNG(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	rec := get(t, h, "/render.png?width=120&height=90&zoom=2.5&x=-10&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if rec.Header().Get("X-Triangles") == "" {
		t.Error("missing X-Triangles header")
	}
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("image size = %dx%d, want 120x90", b.Dx(), b.Dy())
	}
}

func TestBadQuery(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	for _, target := range []string{
		"/render.png?width=0",
		"/render.png?height=99999",
		"/render.png?width=abc",
		"/api/stats?zoom=0.5",
		"/api/stats?zoom=1e9",
		"/api/stats?x=NaN",
		"/api/stats?y=Inf",
		"/api/stats?zoom=two",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
			t.Errorf("%s: body = %v, %v, want error message", target, body, err)
		}
	}
}

func TestNotFound(t *testing.T) {
	h := New(sierpinski.DefaultConfig()).Handler()
	if rec := get(t, h, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
