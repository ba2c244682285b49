// Package web serves the HTML form and analysis pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/newthinker/scorecard/internal/api/response"
	"github.com/newthinker/scorecard/internal/app"
	"github.com/newthinker/scorecard/internal/scoring"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// DefaultTicker pre-fills the form on the index page.
const DefaultTicker = "PAY"

var pages = []string{"index.html", "analysis.html"}

// Analyzer is the subset of app.Analyzer the pages need.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*app.Report, error)
}

// PageData is shared by every page template.
type PageData struct {
	Title    string
	Ticker   string
	MaxScore float64
}

// AnalysisData holds data for the analysis template.
type AnalysisData struct {
	PageData
	Error       string
	ReportID    string
	Breakdown   scoring.Breakdown
	Comparison  []app.PeerScore
	GeneratedAt time.Time
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds one layout + page pair per page
	pageTemplates map[string]*template.Template
	analyzer      Analyzer
	logger        *zap.Logger
}

// NewHandler creates a web handler with templates loaded from templatesDir,
// or from the embedded templates when templatesDir is empty.
func NewHandler(analyzer Analyzer, templatesDir string, logger *zap.Logger) (*Handler, error) {
	var fsys fs.FS
	if templatesDir != "" {
		fsys = os.DirFS(templatesDir)
	} else {
		fsys = TemplateFS()
	}
	return NewHandlerWithFS(analyzer, fsys, logger)
}

// NewHandlerWithFS creates a web handler using a custom filesystem.
func NewHandlerWithFS(analyzer Analyzer, fsys fs.FS, logger *zap.Logger) (*Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pageTemplates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}

	return &Handler{
		pageTemplates: pageTemplates,
		analyzer:      analyzer,
		logger:        logger,
	}, nil
}

// Index renders the ticker form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", PageData{
		Title:    "Scorecard",
		Ticker:   DefaultTicker,
		MaxScore: scoring.MaxScore,
	})
}

// Analysis renders both tables for the ticker query parameter.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	data := AnalysisData{
		PageData: PageData{Title: "Analysis", Ticker: ticker, MaxScore: scoring.MaxScore},
	}

	report, err := h.analyzer.Analyze(r.Context(), ticker)
	if err != nil {
		h.logger.Warn("analysis page failed", zap.String("ticker", ticker), zap.Error(err))
		data.Error = err.Error()
		h.render(w, response.StatusFor(err), "analysis.html", data)
		return
	}

	data.Title = report.Ticker
	data.Ticker = report.Ticker
	data.ReportID = report.ID.String()
	data.Breakdown = report.Breakdown
	data.Comparison = report.Comparison()
	data.GeneratedAt = report.GeneratedAt
	h.render(w, http.StatusOK, "analysis.html", data)
}

// render buffers the page so a template error still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return subFS
}
