package auth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/velikanov/deezgrab/internal/logger"
)

// waitForUserLogin navigates to the login page and waits for the arl
// cookie to appear, which happens once authentication succeeds.
//
//nolint:funlen // Login instructions require many log statements.
func (s *ServiceImpl) waitForUserLogin(ctx context.Context) (string, error) {
	logger.Info(ctx, "Opening Deezer login page...")
	logger.Debugf(ctx, "Navigating to %s", deezerLoginURL)

	// Add random delay before navigation to appear more human.
	randomHumanDelay()

	s.page.MustNavigate(deezerLoginURL)

	// Wait for page to fully load with random delay.
	randomHumanDelay()

	// Perform some human-like mouse movements after page load.
	s.simulateHumanBehavior(ctx)

	logger.Info(ctx, "")
	logger.Info(ctx, "╔══════════════════════════════════════════════════════════════════╗")
	logger.Info(ctx, "║                      LOGIN INSTRUCTIONS                          ║")
	logger.Info(ctx, "╚══════════════════════════════════════════════════════════════════╝")
	logger.Info(ctx, "")
	logger.Info(ctx, "Please complete the login in the browser:")
	logger.Info(ctx, "")
	logger.Info(ctx, "1. Log in with your Deezer account (email/password or Google/Apple)")
	logger.Info(ctx, "")
	logger.Info(ctx, "2. Wait until the Deezer home page shows your profile")
	logger.Info(ctx, "")
	logger.Info(ctx, "3. DO NOT CLOSE THE BROWSER - the token is picked up automatically")
	logger.Info(ctx, "")
	logger.Info(ctx, "CRITICAL RULES:")
	logger.Info(ctx, "- ONLY interact with login forms")
	logger.Info(ctx, "- Do NOT close the browser manually")
	logger.Info(ctx, "- Do NOT navigate away from deezer.com")
	logger.Info(ctx, "")
	logger.Info(ctx, "Waiting for login to complete...")
	logger.Info(ctx, "")

	token, err := s.waitForLoginComplete(ctx)
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "Login completed successfully!")

	// Give the session a moment to fully establish.
	time.Sleep(sessionEstablishDelay)

	return token, nil
}

// waitForLoginComplete polls for the arl cookie while keeping the session
// looking human. The cookie appears on deezer.com the moment the login
// round-trip finishes.
func (s *ServiceImpl) waitForLoginComplete(ctx context.Context) (string, error) {
	var (
		startTime = time.Now()
		lastURL   string
	)

	for {
		// Check context cancellation.
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		// Check timeout.
		if time.Since(startTime) > maxLoginWaitTime {
			return "", fmt.Errorf("%w: waited for %v", ErrLoginTimeout, maxLoginWaitTime)
		}

		// Check if browser was closed.
		if !s.isBrowserAlive(ctx) {
			return "", ErrBrowserClosed
		}

		currentURL, err := s.getCurrentURL(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get current URL: %w", err)
		}

		if currentURL != lastURL {
			s.logURLChange(ctx, currentURL)
			lastURL = currentURL
		}

		// The arl cookie shows up as soon as the session is established,
		// regardless of which page the login flow lands on.
		if token := s.getARLCookie(ctx); token != "" {
			logger.Info(ctx, "ARL cookie detected - login successful!")

			return token, nil
		}

		// Validate user hasn't navigated away.
		if err = s.validateLoginURL(currentURL); err != nil {
			return "", err
		}

		// Simulate human behavior to avoid bot detection.
		s.simulateHumanBehavior(ctx)

		// Occasionally add extra random interactions.
		//nolint:gosec // Weak random is fine for simulating human behavior.
		if rand.IntN(interactionProbability) == 0 {
			s.simulateRandomPageInteraction(ctx)
		}

		// Wait before checking again with some randomness.
		randomHumanDelay()
	}
}

// logURLChange logs URL changes and page details in debug mode.
func (s *ServiceImpl) logURLChange(ctx context.Context, currentURL string) {
	logger.Debugf(ctx, "URL changed: %s", currentURL)

	if !logger.IsDebugLevel() {
		return
	}

	pageInfo, err := s.page.Info()
	if err == nil {
		logger.Debugf(ctx, "Page title: %s", pageInfo.Title)
	}
}

// validateLoginURL validates that the user hasn't navigated away from Deezer.
// Third-party sign-in providers open in popups, so the main page should
// always stay on a deezer.com address.
func (s *ServiceImpl) validateLoginURL(currentURL string) error {
	if currentURL != "" && !strings.Contains(currentURL, deezerDomain) &&
		!strings.HasPrefix(currentURL, "about:") {
		return fmt.Errorf("%w to: %s", ErrNavigatedAway, currentURL)
	}

	return nil
}
