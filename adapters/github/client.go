package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/internal/config"
	"github.com/khoahotran/devfinder/internal/domain/account"
	"github.com/khoahotran/devfinder/pkg/apperror"
	"github.com/khoahotran/devfinder/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github+json"
	maxBodyBytes   = 1 << 20
)

// Client looks up public GitHub accounts. It never retries or caches.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       logger.Logger
}

var _ account.Fetcher = (*Client)(nil)

var (
	errNullBody     = errors.New("response body is null")
	errTrailingData = errors.New("unexpected data after account object")
)

func NewClient(cfg config.Config, log logger.Logger) *Client {
	baseURL := strings.TrimRight(cfg.GitHub.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.GitHub.UserAgent
	if userAgent == "" {
		userAgent = "devfinder"
	}

	httpClient := &http.Client{
		Timeout:   cfg.GitHub.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	log.Info("GitHub client initialized", zap.String("base_url", baseURL), zap.Duration("timeout", cfg.GitHub.Timeout))
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      httpClient,
		log:       log,
	}
}

// GetAccount fetches /users/{username}. The username is forwarded as typed,
// only path escaped.
func (c *Client) GetAccount(ctx context.Context, username string) (*account.Account, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.NewInternal("failed to build github request", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.NewUpstream("github request failed", 0, err)
	}
	defer resp.Body.Close()

	log := c.log.WithContext(ctx).With(
		zap.String("username", username),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		log.Debug("GitHub account not found")
		return nil, apperror.NewNotFound("account", username)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("GitHub returned an error status", zap.ByteString("body", body))
		return nil, apperror.NewUpstream("github returned an error status", resp.StatusCode, nil)
	}

	acc, err := decodeAccount(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Warn("GitHub returned a malformed body", zap.Error(err))
		return nil, apperror.NewUpstream("github returned a malformed body", resp.StatusCode, err)
	}
	return acc, nil
}

// decodeAccount reads exactly one JSON object. A null body or trailing data
// is an error.
func decodeAccount(r io.Reader) (*account.Account, error) {
	dec := json.NewDecoder(r)
	var acc *account.Account
	if err := dec.Decode(&acc); err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errNullBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return acc, nil
}
