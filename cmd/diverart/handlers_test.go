package main

import (
	"bytes"
	"crypto/sha256"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mush1e/drunken-diver/internal/config"
	"github.com/mush1e/drunken-diver/internal/converter"
	"github.com/mush1e/drunken-diver/internal/diver"
)

func testConfig() config.Config {
	return config.Config{
		Addr:           ":0",
		Width:          16,
		Digest:         converter.DigestSHA256,
		Color:          converter.ColorNever,
		MaxUploadBytes: 1 << 10,
		StreamInterval: time.Millisecond,
	}
}

func TestRenderHandler(t *testing.T) {
	mux := newMux(testConfig())
	sum := sha256.Sum256([]byte("hey"))

	tests := []struct {
		name   string
		target string
		walked []byte
		width  int
	}{
		{"defaults", "/render", sum[:], 16},
		{"width", "/render?width=32", sum[:], 32},
		{"raw", "/render?digest=raw&width=8", []byte("hey"), 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.target, strings.NewReader("hey")))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			want, err := diver.RenderBytes(tc.walked, tc.width)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, rec.Body.String()); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderHandlerRejects(t *testing.T) {
	mux := newMux(testConfig())
	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"method", http.MethodGet, "/render", "", http.StatusMethodNotAllowed},
		{"width", http.MethodPost, "/render?width=0", "x", http.StatusBadRequest},
		{"digest", http.MethodPost, "/render?digest=md5", "x", http.StatusBadRequest},
		{"size", http.MethodPost, "/render", strings.Repeat("x", 2<<10), http.StatusRequestEntityTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body)))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

var jobLink = regexp.MustCompile(`/stream/([0-9]+)`)

func TestUploadThenStream(t *testing.T) {
	mux := newMux(testConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("width", "8")
	fw, err := mw.CreateFormFile("data", "hey.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("hey"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	m := jobLink.FindStringSubmatch(rec.Body.String())
	if m == nil {
		t.Fatalf("no stream link in %q", rec.Body.String())
	}

	stream := httptest.NewRecorder()
	mux.ServeHTTP(stream, httptest.NewRequest(http.MethodGet, "/stream/"+m[1], nil))
	if stream.Code != http.StatusOK {
		t.Fatalf("stream status = %d", stream.Code)
	}
	got := stream.Body.String()
	if !strings.Contains(got, `"kind":"top"`) || !strings.Contains(got, "event: end") {
		t.Errorf("unexpected stream %q", got)
	}
}

func TestUploadPage(t *testing.T) {
	mux := newMux(testConfig())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="data"`) {
		t.Errorf("upload page: status %d, body %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("static status = %d, want 200", rec.Code)
	}
}

func TestStreamHandlerMissingID(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux(testConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
