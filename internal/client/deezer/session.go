package deezer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/velikanov/deezgrab/internal/logger"
)

// Authenticate performs the two-step gateway handshake:
// it scrapes the bootstrap API token from the landing page, then confirms
// it via deezer.getUserData, storing the checkForm token and user identity
// on the session. The ARL cookie set at construction time rides along on
// both requests.
func (c *ClientImpl) Authenticate(ctx context.Context) error {
	landingHTML, err := c.fetchLandingPage(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch landing page: %w", err)
	}

	bootstrapToken := extractAPIToken(landingHTML)
	if bootstrapToken == "" {
		return ErrAPITokenNotFound
	}

	logger.Debugf(ctx, "Scraped bootstrap API token: %s...", truncateToken(bootstrapToken))

	userData, err := gatewayRequest[userDataResults](c, ctx, methodGetUserData, bootstrapToken, nil)
	if err != nil {
		if errors.Is(err, errStaleToken) {
			return ErrInvalidCredential
		}

		return fmt.Errorf("failed to confirm API token: %w", err)
	}

	// A zero user ID means the gateway answered for an anonymous visitor:
	// the ARL cookie did not establish a session.
	if userData.User.ID == 0 || userData.CheckForm == "" {
		return ErrInvalidCredential
	}

	c.session = Session{
		APIToken: userData.CheckForm,
		UserID:   userData.User.ID,
		UserName: displayName(userData.User),
	}

	logger.Infof(ctx, "Authenticated as %s", c.session.UserName)

	return nil
}

// GetSession returns a copy of the current session state.
func (c *ClientImpl) GetSession() Session {
	return c.session
}

// fetchLandingPage downloads the landing page HTML carrying the bootstrap token.
func (c *ClientImpl) fetchLandingPage(ctx context.Context) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	html, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	return string(html), nil
}

// gatewayCall invokes a gateway method with the confirmed session token.
// On a stale-token response it re-runs the handshake exactly once and
// retries the call once; after that the failure is final.
//
//nolint:revive // Go doesn't allow struct methods to be generic.
func gatewayCall[T any](c *ClientImpl, ctx context.Context, method string, payload any) (*T, error) {
	results, err := gatewayRequest[T](c, ctx, method, c.session.APIToken, payload)
	if err == nil || !errors.Is(err, errStaleToken) {
		return results, err
	}

	logger.Warnf(ctx, "API token went stale, re-running the handshake")

	if authErr := c.Authenticate(ctx); authErr != nil {
		return nil, authErr
	}

	results, err = gatewayRequest[T](c, ctx, method, c.session.APIToken, payload)
	if errors.Is(err, errStaleToken) {
		return nil, ErrTokenRejected
	}

	return results, err
}

// gatewayRequest performs a single gateway POST with the given API token.
// The method and fixed protocol parameters travel as query string, the
// payload as JSON body.
//
//nolint:revive // Go doesn't allow struct methods to be generic.
func gatewayRequest[T any](
	c *ClientImpl,
	ctx context.Context,
	method, apiToken string,
	payload any,
) (*T, error) {
	route, err := url.JoinPath(c.baseURL, gwLightURI)
	if err != nil {
		return nil, err
	}

	body := bytes.NewReader(nil)

	if payload != nil {
		encoded, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return nil, fmt.Errorf("failed to encode gateway payload: %w", marshalErr)
		}

		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, route, body)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("method", method)
	query.Set("input", gwInput)
	query.Set("api_version", gwAPIVersion)
	query.Set("api_token", apiToken)
	request.URL.RawQuery = query.Encode()

	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	var envelope gatewayEnvelope[T]
	if err = json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if gatewayErr := classifyGatewayError(envelope.Error); gatewayErr != nil {
		return nil, gatewayErr
	}

	if envelope.Results == nil {
		return nil, fmt.Errorf("%w: empty results", ErrGatewayError)
	}

	return envelope.Results, nil
}

// classifyGatewayError inspects the raw error member of a gateway envelope.
// Empty containers mean success; token complaints map to errStaleToken.
func classifyGatewayError(raw json.RawMessage) error {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "[]" || text == "{}" || text == "null" || text == "false" || text == "0" {
		return nil
	}

	if strings.Contains(text, "VALID_TOKEN_REQUIRED") || strings.Contains(text, "Invalid CSRF token") {
		return fmt.Errorf("%w: %s", errStaleToken, text)
	}

	if strings.Contains(text, "DATA_ERROR") {
		return fmt.Errorf("%w: %s", ErrTrackNotFound, text)
	}

	return fmt.Errorf("%w: %s", ErrGatewayError, text)
}

// displayName picks the best available user name from the profile payload.
func displayName(user userDataRaw) string {
	if user.BlogName != "" {
		return user.BlogName
	}

	if user.Username != "" {
		return user.Username
	}

	return "unknown user"
}

// truncateToken shortens a token for debug logging.
func truncateToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return token
	}

	return token[:visible]
}
