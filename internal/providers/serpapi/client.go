package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tryon/internal/domain"
	"tryon/internal/infra"
	"tryon/internal/infra/metrics"
)

// ErrMissingAPIKey indicates the client was configured without credentials.
var ErrMissingAPIKey = fmt.Errorf("serpapi: api key is required: %w", domain.ErrMissingCredentials)

const maxResults = 12

// Minimum original width for a usable full-body outfit photo.
const minImageWidth = 400

// Options configures the SerpAPI image search client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client proxies Google Images searches through SerpAPI.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Query describes one outfit search.
type Query struct {
	Text    string
	Country string // ISO country code, lowercased into the gl parameter
	Locale  string // language tag, lowercased into the hl parameter
}

// Outfit is one candidate garment image.
type Outfit struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type searchResponse struct {
	ImagesResults []imageResult `json:"images_results"`
	Error         string        `json:"error"`
}

type imageResult struct {
	Position       int    `json:"position"`
	Original       string `json:"original"`
	OriginalWidth  int    `json:"original_width"`
	OriginalHeight int    `json:"original_height"`
	Thumbnail      string `json:"thumbnail"`
	Title          string `json:"title"`
	Source         string `json:"source"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://serpapi.com"
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
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// SearchOutfits returns up to twelve candidate outfit images for the query,
// dropping entries without a full image URL, without a thumbnail, or below the
// minimum resolution.
func (c *Client) SearchOutfits(ctx context.Context, q Query) ([]Outfit, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.New("serpapi: query text is required")
	}

	params := url.Values{}
	params.Set("engine", "google_images")
	params.Set("q", text)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(maxResults))
	params.Set("tbm", "isch")
	params.Set("ijn", "0")
	params.Set("tbs", "isz:l")
	if cc := strings.TrimSpace(q.Country); cc != "" {
		params.Set("gl", strings.ToLower(cc))
	}
	if loc := strings.TrimSpace(q.Locale); loc != "" {
		params.Set("hl", strings.ToLower(loc))
	}

	endpoint := c.baseURL + "/search?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.IncOutfitSearch("error")
		return nil, fmt.Errorf("serpapi: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncOutfitSearch("error")
		return nil, fmt.Errorf("serpapi: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		metrics.IncOutfitSearch("error")
		return nil, fmt.Errorf("%w: serpapi: status %d: %s", domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded searchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		metrics.IncOutfitSearch("error")
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}
	if decoded.Error != "" {
		metrics.IncOutfitSearch("error")
		return nil, fmt.Errorf("%w: serpapi: %s", domain.ErrUpstream, decoded.Error)
	}

	outfits := filterResults(decoded.ImagesResults)
	metrics.IncOutfitSearch("ok")
	c.logger.Debug().
		Str("query", text).
		Int("results", len(outfits)).
		Msg("serpapi: outfit search completed")
	return outfits, nil
}

func filterResults(results []imageResult) []Outfit {
	outfits := make([]Outfit, 0, maxResults)
	for _, img := range results {
		if img.Original == "" || img.Thumbnail == "" || img.OriginalWidth <= minImageWidth {
			continue
		}
		id := strconv.Itoa(img.Position)
		if img.Position == 0 {
			id = fmt.Sprintf("outfit-%d", len(outfits)+1)
		}
		title := img.Title
		if title == "" {
			title = "Outfit"
		}
		source := img.Source
		if source == "" {
			source = "Unknown"
		}
		outfits = append(outfits, Outfit{
			ID:        id,
			URL:       img.Original,
			Thumbnail: img.Thumbnail,
			Title:     title,
			Source:    source,
			Width:     img.OriginalWidth,
			Height:    img.OriginalHeight,
		})
		if len(outfits) == maxResults {
			break
		}
	}
	return outfits
}
