// Package app drives one analysis: the primary ticker, its peers and the
// resulting comparison report.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/scorecard/internal/collector"
	"github.com/newthinker/scorecard/internal/core"
	"github.com/newthinker/scorecard/internal/scoring"
	"go.uber.org/zap"
)

// Analysis outcomes and score roles used as metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	RolePrimary = "primary"
	RolePeer    = "peer"

	DropFetchFailed = "fetch_failed"
)

// Recorder receives analysis metrics. *metrics.Registry satisfies it.
type Recorder interface {
	RecordAnalysis(status string, duration float64)
	RecordPeers(count int)
	RecordPeerDropped(reason string)
	RecordScore(role string, score float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(string, float64) {}
func (nopRecorder) RecordPeers(int)                {}
func (nopRecorder) RecordPeerDropped(string)       {}
func (nopRecorder) RecordScore(string, float64)    {}

// PeerScore is one row of the comparison table.
type PeerScore struct {
	Ticker string  `json:"ticker"`
	Score  float64 `json:"score"`
	URL    string  `json:"url,omitempty"`
}

// Report is the result of analyzing one ticker and its peers.
type Report struct {
	ID          uuid.UUID         `json:"id"`
	Ticker      string            `json:"ticker"`
	Metrics     scoring.MetricSet `json:"metrics"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
	Score       float64           `json:"score"`
	Peers       []PeerScore       `json:"peers"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Comparison returns the primary ticker followed by every scored peer.
func (r *Report) Comparison() []PeerScore {
	rows := make([]PeerScore, 0, len(r.Peers)+1)
	rows = append(rows, PeerScore{Ticker: r.Ticker, Score: r.Score})
	return append(rows, r.Peers...)
}

// Analyzer scores a ticker and its peers.
type Analyzer struct {
	financials collector.FinancialsSource
	peers      collector.PeerSource
	recorder   Recorder
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.recorder = r
		}
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Analyzer.
func New(financials collector.FinancialsSource, peers collector.PeerSource, logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		financials: financials,
		peers:      peers,
		recorder:   nopRecorder{},
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores ticker, then each of its peers in order. A primary fetch
// failure aborts with core.ErrFetchFailed; a failing peer is left out.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*Report, error) {
	start := time.Now()

	report, err := a.analyze(ctx, ticker)
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	a.recorder.RecordAnalysis(status, time.Since(start).Seconds())

	return report, err
}

func (a *Analyzer) analyze(ctx context.Context, ticker string) (*Report, error) {
	symbol, err := core.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	raw, err := a.financials.FetchFinancials(ctx, symbol)
	if err != nil {
		a.logger.Error("primary fetch failed",
			zap.String("ticker", symbol),
			zap.String("source", a.financials.Name()),
			zap.Error(err),
		)
		return nil, core.WrapError(core.ErrFetchFailed, err)
	}

	metrics := scoring.Extract(raw)
	breakdown, score := scoring.Aggregate(metrics)
	a.recorder.RecordScore(RolePrimary, score)

	report := &Report{
		ID:          uuid.New(),
		Ticker:      symbol,
		Metrics:     metrics,
		Breakdown:   breakdown,
		Score:       score,
		Peers:       []PeerScore{},
		GeneratedAt: a.now().UTC(),
	}

	if a.peers == nil {
		return report, nil
	}

	tickers := a.peers.FetchPeers(ctx, symbol)
	a.recorder.RecordPeers(len(tickers))

	for _, peer := range tickers {
		peerScore, ok := a.scorePeer(ctx, peer)
		if !ok {
			continue
		}
		report.Peers = append(report.Peers, PeerScore{
			Ticker: peer,
			Score:  peerScore,
			URL:    a.peers.LookupURL(peer),
		})
	}

	a.logger.Info("analysis complete",
		zap.String("report_id", report.ID.String()),
		zap.String("ticker", symbol),
		zap.Float64("score", score),
		zap.Int("peers_resolved", len(tickers)),
		zap.Int("peers_scored", len(report.Peers)),
	)

	return report, nil
}

func (a *Analyzer) scorePeer(ctx context.Context, peer string) (float64, bool) {
	raw, err := a.financials.FetchFinancials(ctx, peer)
	if err != nil {
		a.logger.Debug("dropping peer",
			zap.String("peer", peer),
			zap.Error(err),
		)
		a.recorder.RecordPeerDropped(DropFetchFailed)
		return 0, false
	}

	score := scoring.Score(scoring.Extract(raw))
	a.recorder.RecordScore(RolePeer, score)
	return score, true
}
