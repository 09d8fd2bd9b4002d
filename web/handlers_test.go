package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"
)

func TestHeaderHandler(t *testing.T) {
	h := HeaderHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), map[string]string{"X-Frame-Options": "DENY"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("Expected configured header, got %q", got)
	}
}

func TestExpiresHandler(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	tests := []struct {
		path    string
		expires time.Duration
		static  time.Duration
		want    bool
	}{
		{"/posts/coroutines.html", time.Hour, 0, true},
		{"/posts/", time.Hour, 0, true},
		{"/feed.xml", time.Hour, 0, true},
		{"/sitemap.xml", time.Hour, 0, true},
		{"/static/site.css", time.Hour, 0, false},
		{"/static/site.css", time.Hour, time.Hour, true},
		{"/posts/coroutines.html", 0, time.Hour, false},
	}
	for _, tt := range tests {
		h := ExpiresHandler(inner, tt.expires, tt.static)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		got := rec.Header().Get("Expires") != ""
		if got != tt.want {
			t.Errorf("%s (expires=%s, static=%s): expected header presence %v", tt.path, tt.expires, tt.static, tt.want)
		}
	}
}

func TestErrorHandlerServesCustomPage(t *testing.T) {
	fsys := fstest.MapFS{
		"404.html": {Data: []byte("<html>custom not found</html>")},
	}
	h := ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), fsys)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.html", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "<html>custom not found</html>" {
		t.Errorf("Expected the custom page, got %q", body)
	}
}

func TestErrorHandlerFallsThrough(t *testing.T) {
	h := ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), fstest.MapFS{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.html", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected the default error body")
	}
}
