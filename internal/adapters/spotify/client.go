// Package spotify implements the MusicProvider port against the Spotify Web
// API using the client-credentials flow.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
	"github.com/jeredson/Spoti-Finder/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"

	searchPageSize    = 50
	featuresBatchSize = 100
	featuresFetchers  = 4
)

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
	log         zerolog.Logger
}

// compile-time interface assertion
var _ ports.MusicProvider = (*Client)(nil)

// NewClient constructs a client that authenticates with the
// client-credentials flow. The returned client refreshes its token
// automatically.
func NewClient(ctx context.Context, clientID, clientSecret string, log zerolog.Logger) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return &Client{
		httpClient: cc.Client(ctx),
		baseURL:    defaultBaseURL,
		log:        log,
	}
}

// NewClientWithHTTP constructs a client over an existing HTTP client and
// base URL. Used by tests and by deployments that front the API.
func NewClientWithHTTP(httpClient *http.Client, baseURL string, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

// BuildCatalog searches each genre, fetches audio features for every hit and
// assembles a catalog snapshot. Track order follows genre order and search
// ranking, which gives the engine its stable tiebreak order. Tracks the
// feature endpoint knows nothing about are dropped.
func (c *Client) BuildCatalog(ctx context.Context, genres []string, tracksPerGenre int) (*domain.Catalog, error) {
	if tracksPerGenre <= 0 {
		return nil, fmt.Errorf("spotify adapter: %w: tracks per genre must be positive", domain.ErrInvalidArgument)
	}

	var hits []wireTrack
	seen := make(map[string]struct{})
	for _, genre := range genres {
		page, err := c.searchGenre(ctx, genre, tracksPerGenre)
		if err != nil {
			return nil, err
		}
		for _, t := range page {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
			hits = append(hits, t)
		}
	}

	ids := make([]string, len(hits))
	for i, t := range hits {
		ids[i] = t.ID
	}
	features, err := c.fetchFeatures(ctx, ids)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(hits))
	dropped := 0
	for _, wt := range hits {
		af, ok := features[wt.ID]
		if !ok {
			dropped++
			continue
		}
		tracks = append(tracks, mapTrack(wt, af))
	}
	if dropped > 0 {
		c.log.Warn().Int("dropped", dropped).Msg("tracks without audio features excluded from catalog")
	}

	version := time.Now().UTC().Format(time.RFC3339)
	return domain.NewCatalog(version, tracks), nil
}

// searchGenre pages through search results for one genre until want tracks
// have been collected or the results run out.
func (c *Client) searchGenre(ctx context.Context, genre string, want int) ([]wireTrack, error) {
	var out []wireTrack
	for len(out) < want {
		limit := want - len(out)
		if limit > searchPageSize {
			limit = searchPageSize
		}

		page, err := c.searchTracks(ctx, fmt.Sprintf("genre:%q", genre), limit, len(out))
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < limit {
			break
		}
	}
	return out, nil
}

// searchTracks performs one GET /search page.
func (c *Client) searchTracks(ctx context.Context, query string, limit, offset int) ([]wireTrack, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	var resp wireSearchResponse
	if err := c.getJSON(ctx, "/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Tracks.Items, nil
}

// fetchFeatures retrieves audio features for all ids, batched at the API
// limit and fetched concurrently with a bounded group.
func (c *Client) fetchFeatures(ctx context.Context, ids []string) (map[string]wireAudioFeatures, error) {
	if len(ids) == 0 {
		return map[string]wireAudioFeatures{}, nil
	}

	var batches [][]string
	for start := 0; start < len(ids); start += featuresBatchSize {
		end := start + featuresBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}

	results := make([][]wireAudioFeatures, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(featuresFetchers)
	for i, batch := range batches {
		g.Go(func() error {
			feats, err := c.audioFeatures(gctx, batch)
			if err != nil {
				return err
			}
			results[i] = feats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]wireAudioFeatures, len(ids))
	for _, feats := range results {
		for _, f := range feats {
			if f.ID != "" {
				merged[f.ID] = f
			}
		}
	}
	return merged, nil
}

// audioFeatures performs one GET /audio-features batch. The API returns
// null entries for unknown ids; those are filtered out here.
func (c *Client) audioFeatures(ctx context.Context, ids []string) ([]wireAudioFeatures, error) {
	var resp wireFeaturesResponse
	if err := c.getJSON(ctx, "/audio-features?ids="+url.QueryEscape(strings.Join(ids, ",")), &resp); err != nil {
		return nil, err
	}

	out := make([]wireAudioFeatures, 0, len(resp.AudioFeatures))
	for _, f := range resp.AudioFeatures {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out, nil
}

// getJSON issues a GET with retry and decodes the body into dst.
func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	return nil
}
