package app

import (
	"context"

	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/logger"
	"github.com/velikanov/deezgrab/internal/service/auth"
)

// ExecuteAuthTokenCommand executes the auth token command.
// It opens a browser, waits for the user to log in, extracts the ARL
// cookie, and saves it to the configuration file.
func ExecuteAuthTokenCommand(ctx context.Context, cfg *config.Config) {
	logger.Info(ctx, "Starting authentication process")

	// Create browser authentication service.
	authService, err := auth.NewService(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize authentication service: %v", err)
		return
	}

	// Perform login and extract token.
	token, err := authService.LoginAndExtractToken(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Authentication failed: %v", err)
		return
	}

	// Update configuration with new token.
	cfg.ARLToken = token

	// Save configuration to file.
	if err = config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	// Print success message.
	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "Authentication complete! You can now download music.")
	logger.Info(ctx, "")
	logger.Info(ctx, "Try downloading a track:")
	logger.Info(ctx, "deezgrab https://www.deezer.com/track/3135556")
}
