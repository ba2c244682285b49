package yahoo

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/newthinker/scorecard/internal/core"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultBaseURL   = "https://query2.finance.yahoo.com/v10/finance/quoteSummary"
	defaultCookieURL = "https://fc.yahoo.com"
	defaultCrumbURL  = "https://query2.finance.yahoo.com/v1/test/getcrumb"

	// quoteSummary module carrying the margin, leverage, liquidity,
	// return and recommendation fields.
	financialDataModule = "financialData"

	maxBodyBytes = 2 << 20

	// crumbRetryAfter is how long a failed handshake is remembered before
	// the next attempt.
	crumbRetryAfter = time.Minute
)

// Config holds Yahoo endpoints and HTTP settings. Zero values fall back to
// the public endpoints and a 10s timeout.
type Config struct {
	BaseURL   string
	CookieURL string
	CrumbURL  string
	UserAgent string
	Timeout   time.Duration
}

// Yahoo fetches ratio fields from the Yahoo Finance quoteSummary API
type Yahoo struct {
	client *http.Client
	config Config
	logger *zap.Logger

	mu            sync.Mutex
	crumb         string
	crumbFailedAt time.Time
	now           func() time.Time
}

// New creates a new Yahoo source
func New(cfg Config, logger *zap.Logger) *Yahoo {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.CookieURL == "" {
		cfg.CookieURL = defaultCookieURL
	}
	if cfg.CrumbURL == "" {
		cfg.CrumbURL = defaultCrumbURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	// cookiejar.New only fails on a non-nil PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	return &Yahoo{
		client: &http.Client{
			Jar:     jar,
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

// FetchFinancials fetches the financialData module for ticker
func (y *Yahoo) FetchFinancials(ctx context.Context, ticker string) (core.RawFinancials, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, core.ErrInvalidTicker
	}

	crumb := y.ensureCrumb(ctx)
	reqURL := y.quoteSummaryURL(ticker, crumb)

	body, status, err := y.get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("yahoo: fetching %s: %w", ticker, err)
	}

	// A rotated session rejects the cached crumb; the next call handshakes again.
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		y.resetCrumb(crumb)
	}

	if !gjson.ValidBytes(body) {
		if status != http.StatusOK {
			return nil, fmt.Errorf("yahoo: unexpected status: %d", status)
		}
		return nil, fmt.Errorf("yahoo: invalid JSON response for %s", ticker)
	}

	if desc := gjson.GetBytes(body, "quoteSummary.error.description"); desc.Exists() && desc.String() != "" {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("yahoo: %s", desc.String()))
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: unexpected status: %d", status)
	}

	data := gjson.GetBytes(body, "quoteSummary.result.0."+financialDataModule)
	if !data.Exists() || !data.IsObject() {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("yahoo: no %s for %s", financialDataModule, ticker))
	}

	return parseFinancialData(data), nil
}

// parseFinancialData reads every scored field. Yahoo wraps numbers as
// {"raw": 0.31, "fmt": "31%"} and reports missing values as {}. Non-finite
// numbers count as missing.
func parseFinancialData(data gjson.Result) core.RawFinancials {
	raw := make(core.RawFinancials, len(core.Fields))
	for _, field := range core.Fields {
		v := data.Get(field)
		if v.IsObject() {
			v = v.Get("raw")
		}
		if v.Type != gjson.Number {
			continue
		}
		if f := v.Float(); !math.IsInf(f, 0) && !math.IsNaN(f) {
			raw[field] = f
		}
	}
	return raw
}

func (y *Yahoo) quoteSummaryURL(ticker, crumb string) string {
	u := fmt.Sprintf("%s/%s?modules=%s", y.config.BaseURL, url.PathEscape(ticker), financialDataModule)
	if crumb != "" {
		u += "&crumb=" + url.QueryEscape(crumb)
	}
	return u
}

// ensureCrumb performs the cookie + crumb handshake and caches the crumb.
// Failures are logged, leave the crumb empty and suppress further attempts
// for crumbRetryAfter.
func (y *Yahoo) ensureCrumb(ctx context.Context) string {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.crumb != "" {
		return y.crumb
	}
	if !y.crumbFailedAt.IsZero() && y.now().Sub(y.crumbFailedAt) < crumbRetryAfter {
		return ""
	}

	// The cookie endpoint answers 404 but still sets the session cookie.
	if _, _, err := y.get(ctx, y.config.CookieURL); err != nil {
		y.logger.Debug("yahoo cookie request failed", zap.Error(err))
	}

	body, status, err := y.get(ctx, y.config.CrumbURL)
	if err != nil {
		y.logger.Debug("yahoo crumb request failed", zap.Error(err))
		y.crumbFailedAt = y.now()
		return ""
	}

	crumb := strings.TrimSpace(string(body))
	if status != http.StatusOK || crumb == "" || strings.ContainsAny(crumb, "<{ ") {
		y.logger.Debug("yahoo crumb unavailable", zap.Int("status", status))
		y.crumbFailedAt = y.now()
		return ""
	}

	y.crumb = crumb
	y.crumbFailedAt = time.Time{}
	return crumb
}

// resetCrumb drops the cached crumb if it is still the one that was rejected.
func (y *Yahoo) resetCrumb(rejected string) {
	y.mu.Lock()
	defer y.mu.Unlock()

	if rejected == "" || y.crumb != rejected {
		return
	}
	y.logger.Debug("yahoo crumb rejected, will handshake again")
	y.crumb = ""
	y.crumbFailedAt = time.Time{}
}

func (y *Yahoo) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	if y.config.UserAgent != "" {
		req.Header.Set("User-Agent", y.config.UserAgent)
	}
	req.Header.Set("Accept", "application/json,text/plain,*/*")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}
