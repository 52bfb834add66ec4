package deezer

//go:generate $MOCKGEN -source=url_processor.go -destination=mocks/url_processor_mock.go

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/velikanov/deezgrab/internal/logger"
	http_transport "github.com/velikanov/deezgrab/internal/transport/http"
	"github.com/velikanov/deezgrab/internal/utils"
)

// URLProcessor defines the interface for turning user input into a track ID.
type URLProcessor interface {
	// ExtractTrackID accepts a bare numeric ID, any deezer.com track URL,
	// or a link.deezer.com short link and returns the numeric track ID.
	ExtractTrackID(ctx context.Context, reference string) (string, error)
}

// URLProcessorImpl implements the URLProcessor interface.
type URLProcessorImpl struct {
	// httpClient follows redirects, used for short link resolution.
	httpClient *http.Client
	// noRedirectClient stops at the first response so the Location
	// header can be read manually.
	noRedirectClient *http.Client
	// shortLinkHost is the host treated as a shared short link.
	shortLinkHost string
}

// defaultShortLinkHost is the host Deezer uses for shared short links.
const defaultShortLinkHost = "link.deezer.com"

//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var (
	// trackURLPattern matches the track ID inside any Deezer track URL.
	trackURLPattern = regexp.MustCompile(`/track/(?P<ID>\d+)`)
	// bareTrackIDPattern matches input that is already a numeric track ID.
	bareTrackIDPattern = regexp.MustCompile(`^\d+$`)
)

// NewURLProcessor creates and returns a new instance of URLProcessorImpl.
func NewURLProcessor() URLProcessor {
	transport := http_transport.NewUserAgentInjector(
		http_transport.NewLogTransport(http.DefaultTransport, 0),
		utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent))

	return &URLProcessorImpl{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   http_transport.DefaultTimeout,
		},
		noRedirectClient: &http.Client{
			Transport: transport,
			Timeout:   http_transport.DefaultTimeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		shortLinkHost: defaultShortLinkHost,
	}
}

// ExtractTrackID accepts a bare numeric ID, any deezer.com track URL,
// or a link.deezer.com short link and returns the numeric track ID.
func (up *URLProcessorImpl) ExtractTrackID(ctx context.Context, reference string) (string, error) {
	reference = strings.TrimSpace(reference)

	if bareTrackIDPattern.MatchString(reference) {
		return reference, nil
	}

	if strings.Contains(reference, up.shortLinkHost) {
		resolved, err := up.resolveShortLink(ctx, reference)
		if err != nil {
			return "", err
		}

		logger.Infof(ctx, "Short link resolved to: %s", resolved)

		reference = resolved
	}

	if trackID := utils.ExtractNamedGroup(trackURLPattern, "ID", reference); trackID != "" {
		return trackID, nil
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidTrackReference, reference)
}

// resolveShortLink follows a short link to the track page it points at.
// Redirects are followed first; if the chain never leaves the short-link
// host, the Location header of the first hop is read manually.
func (up *URLProcessorImpl) resolveShortLink(ctx context.Context, shortURL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := up.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to resolve short link: %w", err)
	}

	finalURL := response.Request.URL.String()

	response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

	if !strings.Contains(finalURL, up.shortLinkHost) {
		return finalURL, nil
	}

	// Some short links answer with an HTML interstitial instead of an HTTP
	// redirect; a raw Location header is the last resort.
	request, err = http.NewRequestWithContext(ctx, http.MethodGet, shortURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err = up.noRedirectClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to resolve short link: %w", err)
	}

	response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

	if location := response.Header.Get("Location"); location != "" {
		return location, nil
	}

	return "", fmt.Errorf("%w: %s", ErrShortLinkNotResolved, shortURL)
}
