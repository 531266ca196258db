package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/soal8877-ctrl/referent/internal/referr"
)

func TestFetch_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	body, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "ok") {
		t.Fatalf("unexpected body: %q", body)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Fatalf("expected browser user-agent, got %q", gotUA)
	}
}

func TestFetch_StatusClassification(t *testing.T) {
	cases := []struct {
		status   int
		wantCode string
	}{
		{404, referr.ENotFound},
		{500, referr.EServerError},
		{503, referr.EServerError},
		{403, referr.ELoadError},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
		}))
		cl := &Client{Timeout: 2 * time.Second}
		_, err := cl.Fetch(context.Background(), srv.URL)
		srv.Close()
		if referr.ErrorCode(err) != c.wantCode {
			t.Errorf("status %d: code = %q, want %q", c.status, referr.ErrorCode(err), c.wantCode)
		}
		if referr.UpstreamStatus(err) != c.status {
			t.Errorf("status %d not recorded on error", c.status)
		}
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := c.Fetch(context.Background(), srv.URL)
	if referr.ErrorCode(err) != referr.ETimeout {
		t.Fatalf("code = %q, want %q", referr.ErrorCode(err), referr.ETimeout)
	}
	if time.Since(start) > 250*time.Millisecond {
		t.Fatal("fetch did not return promptly after the deadline")
	}
}

func TestFetch_NetworkError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	_, err := c.Fetch(context.Background(), url)
	if referr.ErrorCode(err) != referr.ENetwork {
		t.Fatalf("code = %q, want %q", referr.ErrorCode(err), referr.ENetwork)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	c := &Client{}
	for _, bad := range []string{"", "ftp://example.com/x", "://nope"} {
		_, err := c.Fetch(context.Background(), bad)
		if referr.ErrorCode(err) != referr.EValidation {
			t.Errorf("url %q: code = %q, want %q", bad, referr.ErrorCode(err), referr.EValidation)
		}
	}
}

func TestFetch_DecodesDeclaredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		// 0xE9 is 'é' in windows-1252.
		_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	body, err := c.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "café" {
		t.Fatalf("decoded body = %q, want %q", body, "café")
	}
}
