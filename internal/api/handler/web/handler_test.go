package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/scorecard/internal/app"
	"github.com/newthinker/scorecard/internal/core"
	"github.com/newthinker/scorecard/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	report *app.Report
	err    error
}

func (m *mockAnalyzer) Analyze(ctx context.Context, ticker string) (*app.Report, error) {
	return m.report, m.err
}

func sampleReport() *app.Report {
	breakdown, score := scoring.Aggregate(scoring.Extract(core.RawFinancials{}))
	return &app.Report{
		ID:        uuid.MustParse("6f1c2d8e-0b7a-4c1e-9d53-2a4f8e1b7c90"),
		Ticker:    "PAY",
		Breakdown: breakdown,
		Score:     score,
		Peers: []app.PeerScore{
			{Ticker: "FOUR", Score: 12.666, URL: "https://finviz.com/quote.ashx?t=FOUR"},
		},
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestHandler(t *testing.T, a Analyzer) *Handler {
	t.Helper()
	h, err := NewHandler(a, "", nil)
	require.NoError(t, err)
	return h
}

func TestHandler_Index(t *testing.T) {
	h := newTestHandler(t, &mockAnalyzer{})

	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `value="PAY"`)
	assert.Contains(t, w.Body.String(), `action="/analysis"`)
}

func TestHandler_Analysis(t *testing.T) {
	h := newTestHandler(t, &mockAnalyzer{report: sampleReport()})

	w := httptest.NewRecorder()
	h.Analysis(w, httptest.NewRequest("GET", "/analysis?ticker=pay", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	for _, c := range scoring.Criteria {
		assert.Contains(t, body, c.Name())
	}
	assert.Contains(t, body, "7.40")
	assert.Contains(t, body, `<a href="https://finviz.com/quote.ashx?t=FOUR" target="_blank" rel="noopener">FOUR</a>`)
	assert.Contains(t, body, "12.67")
	assert.Contains(t, body, "6f1c2d8e-0b7a-4c1e-9d53-2a4f8e1b7c90")
	assert.NotContains(t, body, `<a href="">PAY</a>`)
}

func TestHandler_Analysis_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid ticker", core.ErrInvalidTicker, http.StatusBadRequest},
		{"fetch failed", core.WrapError(core.ErrFetchFailed, errors.New("quote not found")), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &mockAnalyzer{err: tt.err})

			w := httptest.NewRecorder()
			h.Analysis(w, httptest.NewRequest("GET", "/analysis?ticker=ZZZZ", nil))

			assert.Equal(t, tt.expected, w.Code)
			assert.Contains(t, w.Body.String(), `class="error"`)
			assert.NotContains(t, w.Body.String(), "<h2>Comparison</h2>")
		})
	}
}

func TestNewHandlerWithFS_MissingTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`{{template "content" .}}`)},
		"index.html":  {Data: []byte(`{{define "content"}}hi{{end}}`)},
	}

	_, err := NewHandlerWithFS(&mockAnalyzer{}, fsys, nil)
	assert.Error(t, err)
}

func TestHandler_RenderFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html":   {Data: []byte(`{{template "content" .}}`)},
		"index.html":    {Data: []byte(`{{define "content"}}{{.Missing}}{{end}}`)},
		"analysis.html": {Data: []byte(`{{define "content"}}ok{{end}}`)},
	}
	h, err := NewHandlerWithFS(&mockAnalyzer{}, fsys, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
