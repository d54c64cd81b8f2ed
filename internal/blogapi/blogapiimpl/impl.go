package blogapiimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/blog-post-state/internal/blogapi"
	"github.com/orgball2608/blog-post-state/internal/ratelimit"
	"github.com/orgball2608/blog-post-state/pkg/config"
	apperrors "github.com/orgball2608/blog-post-state/pkg/errors"
	"github.com/orgball2608/blog-post-state/pkg/logger"
	"go.uber.org/fx"
)

const maxResponseBytes = 8 << 20

type Opts struct {
	fx.In

	Config     *config.Config
	Logger     logger.Logger
	Limiter    ratelimit.Limiter
	HTTPClient *http.Client `optional:"true"`
}

type Impl struct {
	baseURL *url.URL
	http    *http.Client
	limiter ratelimit.Limiter
	logger  logger.Logger
}

func New(opts Opts) (*Impl, error) {
	base, err := url.Parse(opts.Config.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blog api base url %q: %w", opts.Config.API.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("blog api base url %q must be absolute", opts.Config.API.BaseURL)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Config.API.Timeout}
	}

	return &Impl{
		baseURL: base,
		http:    client,
		limiter: opts.Limiter,
		logger:  opts.Logger.WithComponent("BlogAPI"),
	}, nil
}

var _ blogapi.Client = (*Impl)(nil)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// get performs one GET request and decodes a 2xx body into out.
// It returns the response status when one arrived.
func (c *Impl) get(ctx context.Context, op, path string, query url.Values, out any) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperrors.RequestSetup(err, "request canceled before sending")
	}

	if err := c.limiter.Wait(ctx, op); err != nil {
		return 0, apperrors.RequestSetup(err, "rate limiter refused request")
	}

	endpoint := c.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, apperrors.RequestSetup(err, "could not build request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	c.logger.Debug("Sending blog api request", "operation", op, "url", endpoint.String(), "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Blog api request got no response", "operation", op, "request_id", requestID, "error", err)
		return 0, apperrors.NoResponse(err, "no response from blog api")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.Warn("Failed to read blog api response", "operation", op, "request_id", requestID, "error", err)
		return resp.StatusCode, apperrors.NoResponse(err, "response body interrupted")
	}

	c.logger.Debug("Blog api responded",
		"operation", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start).Round(time.Millisecond).String())

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		c.logger.Warn("Blog api returned error status",
			"operation", op,
			"request_id", requestID,
			"status", resp.StatusCode,
			"message", eb.Message)
		return resp.StatusCode, apperrors.ServerResponse(resp.StatusCode, eb.Code, eb.Message)
	}

	if len(body) == 0 {
		return resp.StatusCode, invalidResponse(resp.StatusCode, "empty response body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, invalidResponse(resp.StatusCode, "undecodable response body: "+err.Error())
	}

	return resp.StatusCode, nil
}

// invalidResponse reports a success status whose body cannot be used.
func invalidResponse(status int, message string) error {
	return apperrors.ServerResponse(status, "invalid_response", message)
}
