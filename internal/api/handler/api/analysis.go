// Package api holds the JSON handlers under /api/v1.
package api

import (
	"context"
	"net/http"

	"github.com/newthinker/scorecard/internal/api/response"
	"github.com/newthinker/scorecard/internal/app"
)

// Analyzer is the subset of app.Analyzer the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*app.Report, error)
}

// AnalysisHandler serves analysis reports as JSON.
type AnalysisHandler struct {
	analyzer Analyzer
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analyzer Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// Get analyzes the {ticker} path value.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyzer.Analyze(r.Context(), r.PathValue("ticker"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, report)
}
