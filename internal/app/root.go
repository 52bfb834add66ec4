package app

import (
	"context"
	"errors"

	deezer_client "github.com/velikanov/deezgrab/internal/client/deezer"
	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/logger"
	deezer_service "github.com/velikanov/deezgrab/internal/service/deezer"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the Deezer client, sets up the service components,
// and downloads the track the reference points at.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, reference string) {
	deezerClient, err := deezer_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Deezer client: %v", err)
	}

	urlProcessor := deezer_service.NewURLProcessor()
	sourceResolver := deezer_service.NewSourceResolver(cfg, deezerClient)
	tagProcessor := deezer_service.NewTagProcessor()

	s := deezer_service.NewService(cfg, deezerClient, urlProcessor, sourceResolver, tagProcessor)

	result, err := s.DownloadTrack(ctx, reference)
	if err != nil {
		reportDownloadFailure(ctx, err)

		return
	}

	if result.IsExist {
		logger.Info(ctx, "Nothing to do: the file is already on disk")

		return
	}

	if result.Preview {
		logger.Warn(ctx, "Only the 30-second preview was available; the full track could not be fetched")
	}

	logger.Infof(ctx, "Done: %s", result.Path)
}

// reportDownloadFailure turns terminal error classes into actionable messages.
func reportDownloadFailure(ctx context.Context, err error) {
	switch {
	case errors.Is(err, deezer_client.ErrInvalidCredential):
		logger.Fatalf(ctx,
			"Your ARL token was rejected: %v\n"+
				"Run 'deezgrab auth token' or copy a fresh 'arl' cookie from a logged-in browser session", err)
	case errors.Is(err, deezer_client.ErrTokenRejected):
		logger.Fatalf(ctx,
			"The gateway keeps rejecting the session even after a refresh: %v\n"+
				"The ARL token has most likely expired, get a new one with 'deezgrab auth token'", err)
	case errors.Is(err, deezer_client.ErrTrackNotFound):
		logger.Fatalf(ctx, "Track not found: %v\nCheck that the ID or URL points at an existing track", err)
	case errors.Is(err, deezer_client.ErrRightsRestricted):
		logger.Fatalf(ctx, "This track is not available for streaming in your region or plan: %v", err)
	case errors.Is(err, deezer_service.ErrInvalidTrackReference):
		logger.Fatalf(ctx,
			"Could not understand the track reference: %v\n"+
				"Pass a numeric track ID, a deezer.com/track/... URL, or a link.deezer.com short link", err)
	case errors.Is(err, deezer_service.ErrNoPlayableSource):
		logger.Fatalf(ctx,
			"No playable source found: %v\n"+
				"The track offers neither a full stream nor a preview for this account", err)
	default:
		logger.Fatalf(ctx, "Download failed: %v", err)
	}
}
