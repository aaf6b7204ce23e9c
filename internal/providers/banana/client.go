package banana

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tryon/internal/domain"
	"tryon/internal/infra"
	"tryon/internal/infra/metrics"
)

// ErrMissingCredentials indicates the client was configured without an API key
// or model key.
var ErrMissingCredentials = fmt.Errorf("banana: api key and model key are required: %w", domain.ErrMissingCredentials)

// Options configures the Banana generation client.
type Options struct {
	APIKey     string
	ModelKey   string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client performs HTTP calls to the Banana image-synthesis API.
type Client struct {
	apiKey     string
	modelKey   string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// RunRequest captures the inputs for one try-on composition.
type RunRequest struct {
	PersonImageURL  string
	GarmentImageURL string
	Metrics         *domain.BodyMetrics
}

type runPayload struct {
	ModelKey    string         `json:"modelKey"`
	ModelInputs map[string]any `json:"modelInputs"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
// The default HTTP client carries no timeout: a hung upstream call leaves the
// owning job in the running state (see the orchestrator contract).
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.banana.dev"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		modelKey:   strings.TrimSpace(opts.ModelKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" && c.modelKey != ""
}

// Run invokes the generation API once and returns the composited image URL.
// Exactly one network attempt is made per call; there is no retry or backoff.
func (c *Client) Run(ctx context.Context, req RunRequest) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingCredentials
	}
	person := strings.TrimSpace(req.PersonImageURL)
	garment := strings.TrimSpace(req.GarmentImageURL)
	if person == "" || garment == "" {
		return "", errors.New("banana: person and garment image urls are required")
	}

	inputs := map[string]any{
		"person_image":  person,
		"garment_image": garment,
	}
	if m := req.Metrics; m != nil {
		inputs["scale_factor"] = m.ScaleFactor
		inputs["shoulder_width"] = m.ShoulderWidth
		inputs["waist"] = m.Waist
		inputs["hip"] = m.Hip
	}
	body, err := json.Marshal(runPayload{ModelKey: c.modelKey, ModelInputs: inputs})
	if err != nil {
		return "", fmt.Errorf("banana: encode request: %w", err)
	}

	endpoint := c.baseURL + "/run"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("banana: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.ObserveBananaRequest(time.Since(start).Seconds(), false)
		return "", fmt.Errorf("banana: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveBananaRequest(time.Since(start).Seconds(), false)
		return "", fmt.Errorf("banana: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		metrics.ObserveBananaRequest(time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: banana: status %d: %s", domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		metrics.ObserveBananaRequest(time.Since(start).Seconds(), false)
		return "", fmt.Errorf("banana: decode response: %w", err)
	}
	if msg := upstreamError(decoded); msg != "" {
		metrics.ObserveBananaRequest(time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: banana: %s", domain.ErrUpstream, msg)
	}
	resultURL := extractResultURL(decoded)
	if resultURL == "" {
		metrics.ObserveBananaRequest(time.Since(start).Seconds(), false)
		return "", fmt.Errorf("%w: banana: no result image URL in response", domain.ErrUpstream)
	}
	metrics.ObserveBananaRequest(time.Since(start).Seconds(), true)
	c.logger.Debug().
		Str("model_key", c.modelKey).
		Str("result_url", resultURL).
		Msg("banana: composited image ready")
	return resultURL, nil
}

func upstreamError(decoded map[string]any) string {
	if v, ok := decoded["error"].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return ""
}
