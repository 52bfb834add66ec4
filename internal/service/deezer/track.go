package deezer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/velikanov/deezgrab/internal/client/deezer"
	"github.com/velikanov/deezgrab/internal/constants"
	"github.com/velikanov/deezgrab/internal/decryption"
	"github.com/velikanov/deezgrab/internal/logger"
)

const (
	// File options for overwriting an existing file.
	overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY

	// tempFileCleanupDelay gives the OS time to release the file handle
	// before removal (Windows needs this).
	tempFileCleanupDelay = 10 * time.Millisecond
)

// downloadAndSaveTrack streams the resolved source to a temporary file,
// decrypting on the fly when the source is encrypted. It returns the
// temporary path for the caller to tag and rename.
//
//nolint:funlen,gocognit,cyclop // Function orchestrates the download workflow with multiple sequential steps.
func (s *ServiceImpl) downloadAndSaveTrack(
	ctx context.Context,
	track *deezer.Track,
	source *ResolvedSource,
) (string, int64, error) {
	fetchResult, err := s.deezerClient.FetchTrack(ctx, source.URL)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch track: %w", err)
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	// Previews are served as plain MP3 and bypass the decryptor entirely.
	reader := io.Reader(fetchResult.Body)

	if source.Encrypted {
		trackKey, keyErr := decryption.DeriveTrackKey(track.ID)
		if keyErr != nil {
			return "", 0, keyErr
		}

		reader, err = decryption.NewStreamReader(fetchResult.Body, trackKey)
		if err != nil {
			return "", 0, err
		}
	}

	// Download to a temporary .part file first for atomic finalization.
	tempFilePath := filepath.Join(
		s.cfg.OutputPath,
		uuid.NewString()+constants.ExtensionPart)

	f, openErr := os.OpenFile(filepath.Clean(tempFilePath), overwriteFileOptions, constants.DefaultFilePermissions)
	if openErr != nil {
		return "", 0, fmt.Errorf("failed to create temporary file: %w", openErr)
	}

	// Track whether the download succeeded.
	// If not, the .part file is cleaned up on function exit.
	var downloadSucceeded bool

	defer func() {
		closeErr := f.Close()

		if !downloadSucceeded {
			time.Sleep(tempFileCleanupDelay)

			if removeErr := os.Remove(tempFilePath); removeErr != nil && !os.IsNotExist(removeErr) {
				logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v (close error: %v)",
					tempFilePath, removeErr, closeErr)
			}
		}
	}()

	// Progress bars only make sense on an interactive info-level terminal;
	// progressbar handles an unknown total (-1) with a spinner.
	var writer io.Writer

	if logger.Level() <= zap.InfoLevel {
		bar := progressbar.DefaultBytes(
			fetchResult.TotalBytes,
			"Downloading",
		)

		writer = io.MultiWriter(f, bar)
	} else {
		writer = f
	}

	var bytesWritten int64

	if s.cfg.ParsedDownloadSpeedLimit == 0 {
		bytesWritten, err = io.Copy(writer, reader)
	} else {
		for {
			var n int64

			n, err = io.CopyN(writer, reader, s.cfg.ParsedDownloadSpeedLimit)
			bytesWritten += n

			if errors.Is(err, io.EOF) {
				err = nil

				break
			}

			if err != nil {
				break
			}

			// Throttle to respect the speed limit.
			time.Sleep(time.Second)
		}
	}

	if err != nil {
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	// Verify the byte count when the server reported one. Decryption is
	// length-preserving, so the comparison holds for encrypted sources too.
	if fetchResult.TotalBytes > 0 && bytesWritten != fetchResult.TotalBytes {
		return "", 0, fmt.Errorf(
			"%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload,
			bytesWritten,
			fetchResult.TotalBytes,
		)
	}

	// Mark the download as successful to prevent cleanup by defer.
	downloadSucceeded = true

	return tempFilePath, bytesWritten, nil
}
