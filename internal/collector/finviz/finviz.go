// Package finviz resolves peer tickers from the correlation links on a
// Finviz quote page.
package finviz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/newthinker/scorecard/internal/core"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://finviz.com/quote.ashx"

	// DefaultMaxPeers caps the peer list.
	DefaultMaxPeers = 5

	peerSelector = "td.js-quote-correlation-links-container a.tab-link"
)

// Config holds Finviz settings. Zero values fall back to defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	MaxPeers  int
}

// Finviz implements collector.PeerSource by scraping quote pages
type Finviz struct {
	client *http.Client
	config Config
	logger *zap.Logger
}

// New creates a new Finviz peer source
func New(cfg Config, logger *zap.Logger) *Finviz {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxPeers <= 0 || cfg.MaxPeers > DefaultMaxPeers {
		cfg.MaxPeers = DefaultMaxPeers
	}

	return &Finviz{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		logger: logger,
	}
}

func (f *Finviz) Name() string { return "finviz" }

// LookupURL returns the quote page for ticker.
func (f *Finviz) LookupURL(ticker string) string {
	return f.config.BaseURL + "?t=" + url.QueryEscape(strings.ToUpper(ticker))
}

// FetchPeers scrapes the correlated tickers for ticker. Any failure yields an
// empty list.
func (f *Finviz) FetchPeers(ctx context.Context, ticker string) []string {
	peers, err := f.fetchPeers(ctx, ticker)
	if err != nil {
		f.logger.Warn("peer lookup failed",
			zap.String("ticker", ticker),
			zap.Error(core.WrapError(core.ErrScrapeFailed, err)),
		)
		return []string{}
	}

	f.logger.Debug("peers resolved",
		zap.String("ticker", ticker),
		zap.Strings("peers", peers),
	)
	return peers
}

func (f *Finviz) fetchPeers(ctx context.Context, ticker string) ([]string, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, core.ErrInvalidTicker
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.LookupURL(ticker), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching quote page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return ParsePeers(resp.Body, ticker, f.config.MaxPeers)
}

// ParsePeers extracts peer tickers from a quote page. Symbols are trimmed and
// uppercased; the queried ticker, blanks and duplicates are dropped and the
// result is truncated to limit. Missing markup yields an empty list.
func ParsePeers(r io.Reader, ticker string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	self := strings.ToUpper(strings.TrimSpace(ticker))
	seen := map[string]bool{self: true}
	peers := []string{}

	doc.Find(peerSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(peers) >= limit {
			return false
		}
		sym := strings.ToUpper(strings.TrimSpace(s.Text()))
		if sym == "" || seen[sym] {
			return true
		}
		seen[sym] = true
		peers = append(peers, sym)
		return true
	})

	return peers, nil
}
