package deezer

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/velikanov/deezgrab/internal/client/deezer"
	"github.com/velikanov/deezgrab/internal/config"
	"github.com/velikanov/deezgrab/internal/constants"
	"github.com/velikanov/deezgrab/internal/logger"
	"github.com/velikanov/deezgrab/internal/utils"
)

// Service provides methods for downloading a single track from Deezer.
type Service interface {
	// DownloadTrack runs the full pipeline for one track reference:
	// authentication, metadata, source resolution, download, tagging.
	DownloadTrack(ctx context.Context, reference string) (*DownloadResult, error)
}

// ServiceImpl implements the download service with dependency-injected components.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// deezerClient is the client for interacting with the Deezer gateway and CDNs.
	deezerClient deezer.Client
	// urlProcessor turns user input into a track ID.
	urlProcessor URLProcessor
	// sourceResolver finds a working download URL for a track.
	sourceResolver SourceResolver
	// tagProcessor writes metadata tags to audio files.
	tagProcessor TagProcessor
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	deezerClient deezer.Client,
	urlProcessor URLProcessor,
	sourceResolver SourceResolver,
	tagProcessor TagProcessor,
) Service {
	return &ServiceImpl{
		cfg:            cfg,
		deezerClient:   deezerClient,
		urlProcessor:   urlProcessor,
		sourceResolver: sourceResolver,
		tagProcessor:   tagProcessor,
	}
}

// DownloadTrack runs the full pipeline for one track reference.
func (s *ServiceImpl) DownloadTrack(ctx context.Context, reference string) (*DownloadResult, error) {
	if err := os.MkdirAll(s.cfg.OutputPath, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output path: %w", err)
	}

	if err := s.deezerClient.Authenticate(ctx); err != nil {
		return nil, err
	}

	trackID, err := s.urlProcessor.ExtractTrackID(ctx, reference)
	if err != nil {
		return nil, err
	}

	track, err := s.deezerClient.GetTrackMetadata(ctx, trackID)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Track: %s - %s", track.Artist, track.Title)

	trackFilename := utils.SetFileExtension(
		utils.SanitizeFilename(track.Artist+" - "+track.Title),
		constants.ExtensionMP3,
		true)
	trackPath := filepath.Join(s.cfg.OutputPath, trackFilename)

	if !s.cfg.ReplaceTracks {
		isExist, statErr := utils.IsFileExist(trackPath)
		if statErr != nil {
			return nil, statErr
		}

		if isExist {
			logger.Infof(ctx, "Track '%s' already exists, skipping download", trackPath)

			return &DownloadResult{Path: trackPath, IsExist: true}, nil
		}
	}

	source, err := s.sourceResolver.Resolve(ctx, track)
	if err != nil {
		return nil, err
	}

	tempPath, bytesDownloaded, err := s.downloadAndSaveTrack(ctx, track, source)
	if err != nil {
		return nil, err
	}

	// Write metadata tags to the temporary file before renaming,
	// so the final name only ever points at a complete file.
	writeTagsRequest := &WriteTagsRequest{
		TrackPath:       tempPath,
		Artist:          track.Artist,
		Title:           track.Title,
		DurationSeconds: track.DurationSeconds,
	}

	if err = s.tagProcessor.WriteTags(ctx, writeTagsRequest); err != nil {
		logger.Errorf(ctx, "Failed to write track tags: %v", err)

		_ = os.Remove(tempPath)

		return nil, err
	}

	if err = os.Rename(tempPath, trackPath); err != nil {
		_ = os.Remove(tempPath)

		return nil, fmt.Errorf("failed to finalize track file: %w", err)
	}

	logger.Infof(ctx, "Saved %s to %s",
		humanize.Bytes(utils.SafeInt64ToUint64(bytesDownloaded)), trackPath)

	return &DownloadResult{
		Path:            trackPath,
		BytesDownloaded: bytesDownloaded,
		Preview:         source.Preview,
	}, nil
}
