package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/soal8877-ctrl/referent/internal/extract"
	"github.com/soal8877-ctrl/referent/internal/prompt"
	"github.com/soal8877-ctrl/referent/internal/referr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePipeline struct {
	article    extract.Article
	extractErr error

	transformResult string
	transformErr    error
	gotContent      string
	gotAction       prompt.Action
	gotSourceURL    string

	translation  string
	translateErr error
}

func (f *fakePipeline) Extract(ctx context.Context, url string) (extract.Article, error) {
	return f.article, f.extractErr
}

func (f *fakePipeline) Transform(ctx context.Context, content string, action prompt.Action, sourceURL string) (string, error) {
	f.gotContent = content
	f.gotAction = action
	f.gotSourceURL = sourceURL
	return f.transformResult, f.transformErr
}

func (f *fakePipeline) Translate(ctx context.Context, content string) (string, error) {
	return f.translation, f.translateErr
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseRoute(t *testing.T) {
	p := &fakePipeline{article: extract.Article{
		Title:       "Headline",
		PublishedAt: "2024-05-01",
		Body:        "Body text.",
	}}
	r := NewRouter(p, nil)

	w := doJSON(t, r, "/api/parse", `{"url":"https://example.com/a"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp parseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Headline", resp.Title)
	assert.Equal(t, "2024-05-01", resp.Date)
	assert.Equal(t, "Body text.", resp.Content)
}

func TestParseRoute_MissingURL(t *testing.T) {
	r := NewRouter(&fakePipeline{}, nil)
	w := doJSON(t, r, "/api/parse", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseRoute_FetchErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{referr.ENotFound, http.StatusNotFound},
		{referr.ETimeout, http.StatusGatewayTimeout},
		{referr.ENetwork, http.StatusBadGateway},
		{referr.EServerError, http.StatusBadGateway},
		{referr.ELoadError, http.StatusBadGateway},
	}
	for _, tc := range cases {
		p := &fakePipeline{extractErr: referr.Errorf(tc.code, "failed")}
		r := NewRouter(p, nil)
		w := doJSON(t, r, "/api/parse", `{"url":"https://example.com/a"}`)
		if w.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.code, w.Code, tc.want)
		}
	}
}

func TestAIProcessRoute(t *testing.T) {
	p := &fakePipeline{transformResult: "summary text"}
	r := NewRouter(p, nil)

	w := doJSON(t, r, "/api/ai-process",
		`{"content":"article body","action":"summary","sourceUrl":"https://example.com/a"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp processResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "summary text", resp.Result)
	assert.Equal(t, "article body", p.gotContent)
	assert.Equal(t, prompt.ActionSummarize, p.gotAction)
	assert.Equal(t, "https://example.com/a", p.gotSourceURL)
}

func TestAIProcessRoute_UnknownAction(t *testing.T) {
	r := NewRouter(&fakePipeline{}, nil)
	w := doJSON(t, r, "/api/ai-process", `{"content":"x","action":"haiku"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIProcessRoute_EmptyContent(t *testing.T) {
	r := NewRouter(&fakePipeline{}, nil)
	w := doJSON(t, r, "/api/ai-process", `{"content":"  ","action":"summary"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIProcessRoute_UpstreamError(t *testing.T) {
	p := &fakePipeline{transformErr: referr.StatusErrorf(referr.EUpstream, 500, "completion service error: boom")}
	r := NewRouter(p, nil)
	w := doJSON(t, r, "/api/ai-process", `{"content":"x","action":"summary"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, referr.EUpstream, resp["code"])
	assert.Equal(t, "completion service error: boom", resp["error"])
}

func TestAIProcessRoute_InternalErrorIsOpaque(t *testing.T) {
	p := &fakePipeline{transformErr: context.Canceled}
	r := NewRouter(p, nil)
	w := doJSON(t, r, "/api/ai-process", `{"content":"x","action":"summary"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "an internal error has occurred", resp["error"])
}

func TestTranslateRoute(t *testing.T) {
	p := &fakePipeline{translation: "translated"}
	r := NewRouter(p, nil)

	w := doJSON(t, r, "/api/translate", `{"content":"оригинал"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp translateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "translated", resp.Translation)
}

func TestIllustrationRoute_Disabled(t *testing.T) {
	r := NewRouter(&fakePipeline{}, nil)
	w := doJSON(t, r, "/api/illustration", `{"content":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "illustration generation is temporarily disabled", resp["message"])
}

func TestHealthRoute(t *testing.T) {
	r := NewRouter(&fakePipeline{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
