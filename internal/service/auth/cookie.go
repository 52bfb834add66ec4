package auth

import (
	"context"

	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/logger"
)

// getARLCookie retrieves the arl cookie value if it exists, without logging.
// A cookie with the wrong shape (too short, non-alphanumeric) is treated as
// absent: Deezer sets a placeholder before login completes.
func (s *ServiceImpl) getARLCookie(ctx context.Context) string {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "getARLCookie panic recovered: %v", r)
		}
	}()

	cookies, err := s.page.Cookies([]string{deezerHomeURL})
	if err != nil {
		return ""
	}

	for _, cookie := range cookies {
		if cookie.Name != arlCookieName || cookie.Value == "" {
			continue
		}

		if validationErr := config.ValidateARLToken(cookie.Value); validationErr != nil {
			logger.Debugf(ctx, "Found arl cookie with unexpected shape (%d chars), ignoring", len(cookie.Value))

			continue
		}

		return cookie.Value
	}

	return ""
}

// extractTokenFromProfile extracts the arl token from all browser cookies.
// It is the fallback when domain-scoped lookup comes back empty.
func (s *ServiceImpl) extractTokenFromProfile(ctx context.Context) (string, error) {
	logger.Info(ctx, "Extracting ARL token from cookies...")

	cookies := s.page.MustCookies()
	logger.Debugf(ctx, "Found %d cookies", len(cookies))

	// Log all cookies only in debug mode.
	if logger.IsDebugLevel() && len(cookies) > 0 {
		logger.Debug(ctx, "Cookie list:")

		for i, cookie := range cookies {
			logger.Debugf(ctx, "Cookie %d: name=%s, domain=%s", i+1, cookie.Name, cookie.Domain)
		}
	}

	for _, cookie := range cookies {
		if cookie.Name != arlCookieName {
			continue
		}

		if err := config.ValidateARLToken(cookie.Value); err != nil {
			logger.Debugf(ctx, "Skipping malformed arl cookie on domain %s", cookie.Domain)

			continue
		}

		logger.Debugf(ctx, "Found '%s' cookie! Length: %d characters", arlCookieName, len(cookie.Value))

		return cookie.Value, nil
	}

	logger.Error(ctx, "ARL cookie not found! Available cookies:")

	for _, cookie := range cookies {
		logger.Errorf(ctx, "%s (domain: %s)", cookie.Name, cookie.Domain)
	}

	return "", ErrARLCookieNotFound
}
