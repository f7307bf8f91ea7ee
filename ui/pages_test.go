package ui

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestAssetsEmbedded verifies that templates and static files are embedded.
func TestAssetsEmbedded(t *testing.T) {
	for _, name := range []string{
		"templates/layout.html",
		"templates/listing.html",
		"templates/detail.html",
		"static/styles.css",
	} {
		data, err := fs.ReadFile(AssetsFS(), name)
		if err != nil {
			t.Fatalf("Failed to read %s from embedded filesystem: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestParsePages(t *testing.T) {
	pages, err := ParsePages(AssetsFS(), nil)
	if err != nil {
		t.Fatalf("ParsePages: %v", err)
	}

	var buf bytes.Buffer
	data := map[string]any{
		"Title":     "HKBK Plant Catalog",
		"SiteTitle": "HKBK Plant Catalog",
		"Message":   map[string]any{"Text": "No plants found.", "Error": false},
	}
	if err := pages.Render(&buf, PageListing, data); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("expected rendered page to include the layout")
	}
	if !strings.Contains(out, `<div id="plant-list">`) {
		t.Error("expected listing container")
	}
	if !strings.Contains(out, "No plants found.") {
		t.Error("expected message in container")
	}
}

func TestPages_RenderUnknownPage(t *testing.T) {
	pages, err := ParsePages(AssetsFS(), nil)
	if err != nil {
		t.Fatalf("ParsePages: %v", err)
	}
	if err := pages.Render(&bytes.Buffer{}, "missing", nil); err == nil {
		t.Error("expected error for unknown page")
	}
}

func TestStaticHandler(t *testing.T) {
	h, err := StaticHandler(AssetsFS())
	if err != nil {
		t.Fatalf("StaticHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/styles.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/css") {
		t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}
