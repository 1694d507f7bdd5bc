package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/prepgenius-backend/internal/platform/ctxutil"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "mistral"
	DefaultTimeout = 300 * time.Second

	generatePath = "/api/generate"
)

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Observer receives the outcome of every generation; used for metrics.
type Observer interface {
	ObserveGeneration(model string, failed bool, d time.Duration)
}

type Client struct {
	log        *logger.Logger
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	observer   Observer
}

func New(log *logger.Logger, cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		log:        log.With("client", "ollama"),
		baseURL:    baseURL,
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr},
	}
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewWithHTTPClient(log *logger.Logger, cfg Config, httpClient *http.Client) *Client {
	c := New(log, cfg)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

func (c *Client) Model() string { return c.model }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends a single non-streaming prompt. It never returns a Go error:
// transport and protocol failures come back as a failed Result.
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer("prepgenius/ollama").Start(ctx, "ollama.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.prompt_bytes", len(prompt)),
	)

	start := time.Now()
	var out generateResponse
	err := c.doJSON(ctx, http.MethodPost, generatePath, generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}, &out)
	elapsed := time.Since(start)

	if c.observer != nil {
		c.observer.ObserveGeneration(c.model, err != nil, elapsed)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		c.log.Warn("model generation failed",
			"request_id", ctxutil.RequestID(ctx),
			"model", c.model,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return Failure(err)
	}

	c.log.Debug("model generation done",
		"request_id", ctxutil.RequestID(ctx),
		"model", c.model,
		"duration_ms", elapsed.Milliseconds(),
		"response_bytes", len(out.Response),
	)
	return Success(out.Response)
}

func (c *Client) doJSON(ctx context.Context, method string, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: empty body")
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
