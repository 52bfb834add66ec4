package deezer

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/logger"
	http_transport "github.com/velikanov/deezgrab/internal/transport/http"
	"github.com/velikanov/deezgrab/internal/utils"
)

// Client defines the interface for interacting with the Deezer gateway and CDNs.
type Client interface {
	// Authenticate establishes the gateway session from the ARL credential.
	Authenticate(ctx context.Context) error
	// GetSession returns a copy of the current session state.
	GetSession() Session
	// GetTrackMetadata retrieves parsed metadata for the specified track ID.
	GetTrackMetadata(ctx context.Context, trackID string) (*Track, error)
	// GetTrackFullMediaURL asks the gateway for a ready-made full-media URL.
	// An empty string means the gateway offered none.
	GetTrackFullMediaURL(ctx context.Context, trackID string) (string, error)
	// ProbeURL checks whether a candidate CDN URL serves content.
	ProbeURL(ctx context.Context, candidateURL string) bool
	// FetchTrack fetches track content from the specified URL.
	FetchTrack(ctx context.Context, trackURL string) (*FetchTrackResult, error)
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// baseURL is the base URL for gateway and page requests.
	baseURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// session is the gateway session state, mutated only by Authenticate.
	session Session
	// tracksCache caches track metadata so each track is fetched at most once per run.
	tracksCache *lru.Cache[string, *Track]
}

// NewClient creates and returns a new instance of ClientImpl.
// It seeds the cookie jar with the ARL credential and wires the
// user-agent and debug-logging transports.
func NewClient(cfg *config.Config) (Client, error) {
	// Create a cookie jar to manage cookies for the HTTP client.
	cookies, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	// Parse the base URL for the Deezer service.
	baseURL, err := url.Parse(cfg.DeezerBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid host URL: %w", err)
	}

	// Set the session credential cookie.
	cookie := &http.Cookie{
		Name:  arlCookieName,
		Value: cfg.ARLToken,
	}
	cookies.SetCookies(baseURL, []*http.Cookie{cookie})

	// Initialize the HTTP client with custom transport and timeout.
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Jar:     cookies,
		Timeout: http_transport.DefaultTimeout,
	}

	// Initialize the LRU cache so repeated metadata lookups hit the network once.
	tracksCache, err := lru.New[string, *Track](tracksCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracks cache: %w", err)
	}

	return &ClientImpl{
		cfg:         cfg,
		baseURL:     baseURL.String(),
		httpClient:  httpClient,
		tracksCache: tracksCache,
	}, nil
}

// GetTrackMetadata retrieves parsed metadata for the specified track ID.
// Uses an LRU cache to guarantee at most one live fetch per track per run.
func (c *ClientImpl) GetTrackMetadata(ctx context.Context, trackID string) (*Track, error) {
	if cached, ok := c.tracksCache.Get(trackID); ok {
		logger.Debugf(ctx, "Track cache hit for ID: %s", trackID)

		return cached, nil
	}

	payload := map[string]any{"sng_id": trackID}

	results, err := gatewayCall[pageTrackResults](c, ctx, methodPageTrack, payload)
	if err != nil {
		return nil, err
	}

	if results.Data == nil || results.Data.ID == "" || results.Data.ID == "0" {
		return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, trackID)
	}

	if !streamAllowed(results.Data.Rights) {
		return nil, fmt.Errorf("%w: %s", ErrRightsRestricted, trackID)
	}

	track := parseTrack(results.Data)
	c.tracksCache.Add(trackID, track)

	return track, nil
}

// GetTrackFullMediaURL asks the gateway for a ready-made full-media URL
// via song.getListData. An empty string means none was offered, which is
// common and not an error.
func (c *ClientImpl) GetTrackFullMediaURL(ctx context.Context, trackID string) (string, error) {
	payload := map[string]any{"sng_ids": []string{trackID}}

	results, err := gatewayCall[listDataResults](c, ctx, methodGetListData, payload)
	if err != nil {
		return "", err
	}

	if len(results.Data) == 0 {
		return "", nil
	}

	for _, media := range results.Data[0].Media {
		if media.Type == MediaTypeFull && media.Href != "" {
			return media.Href, nil
		}
	}

	return "", nil
}

// ProbeURL checks whether a candidate CDN URL serves content.
// Probe failures are local: they only mean "try the next candidate",
// so they are logged at debug level and swallowed.
func (c *ClientImpl) ProbeURL(ctx context.Context, candidateURL string) bool {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, candidateURL, http.NoBody)
	if err != nil {
		return false
	}

	// Ask for a single byte: enough to learn the status without the payload.
	request.Header.Add("Range", "bytes=0-1")

	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.Debugf(ctx, "Probe failed for %s: %v", candidateURL, err)

		return false
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	_, _ = io.Copy(io.Discard, response.Body) //nolint:errcheck // Drain to reuse the connection.

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusPartialContent {
		logger.Debugf(ctx, "Probe rejected for %s: HTTP %d", candidateURL, response.StatusCode)

		return false
	}

	return true
}

// FetchTrack fetches track content from the specified URL.
func (c *ClientImpl) FetchTrack(ctx context.Context, trackURL string) (*FetchTrackResult, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	// Add a Range header to request partial content.
	request.Header.Add("Range", "bytes=0-")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusPartialContent {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return &FetchTrackResult{
		Body:       response.Body,
		TotalBytes: response.ContentLength,
	}, nil
}

