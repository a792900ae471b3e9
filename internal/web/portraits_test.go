package web

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// minimalJPEG returns a valid 1x1 JPEG.
func minimalJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{A: 255})
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode minimal JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestHandlePortrait_ServesPNG(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "border_collie.png"), minimalPNG(t, color.RGBA{A: 255}), 0o600); err != nil {
		t.Fatalf("write portrait: %v", err)
	}
	srv := testServer(t)
	srv.PortraitDir = tmpDir

	for _, path := range []string{"/portraits/border_collie", "/portraits/Border%20Collie"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != contentTypePNG {
			t.Errorf("Content-Type: expected %s, got %q", contentTypePNG, ct)
		}
	}
}

func TestHandlePortrait_ServesJPEG(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "arabian.jpg"), minimalJPEG(t), 0o600); err != nil {
		t.Fatalf("write portrait: %v", err)
	}
	srv := testServer(t)
	srv.PortraitDir = tmpDir
	req := httptest.NewRequest(http.MethodGet, "/portraits/Arabian", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /portraits/Arabian: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != contentTypeJPEG {
		t.Errorf("Content-Type: expected %s, got %q", contentTypeJPEG, ct)
	}
}

func TestHandlePortrait_NotFound(t *testing.T) {
	tmpDir := t.TempDir()
	srv := testServer(t)

	// No portrait dir configured.
	req := httptest.NewRequest(http.MethodGet, "/portraits/arabian", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a portrait dir, got %d", rec.Code)
	}

	srv.PortraitDir = tmpDir
	for _, path := range []string{"/portraits/arabian", "/portraits/..%2F..%2Fetc%2Fpasswd"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestPortraitCandidates(t *testing.T) {
	srv := &Server{PortraitDir: "/srv/portraits"}
	got, ok := srv.portraitCandidates("German Shepherd", portraitExtensions)
	if !ok {
		t.Fatal("Expected candidates")
	}
	if want := filepath.Join("/srv/portraits", "german_shepherd.png"); got[0] != want {
		t.Errorf("Expected %s, got %s", want, got[0])
	}
	if len(got) != len(portraitExtensions) {
		t.Errorf("Expected %d candidates, got %d", len(portraitExtensions), len(got))
	}
	if _, ok := srv.portraitCandidates("../secret", portraitExtensions); ok {
		t.Error("Expected traversal to be rejected")
	}
}
