package deezer

import (
	"regexp"
	"strconv"

	"github.com/velikanov/deezgrab/internal/utils"
)

// apiTokenPattern matches the bootstrap API token embedded in the landing page HTML.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var apiTokenPattern = regexp.MustCompile(`"api_token":"(?P<token>[^"]+)"`)

// extractAPIToken scrapes the bootstrap API token from the landing page HTML.
// It returns an empty string when no token is embedded.
func extractAPIToken(html string) string {
	return utils.ExtractNamedGroup(apiTokenPattern, "token", html)
}

// parseTrack converts the raw gateway track object into the application model.
func parseTrack(raw *trackDataRaw) *Track {
	track := &Track{
		ID:              raw.ID,
		Title:           raw.Title,
		Artist:          raw.ArtistName,
		DurationSeconds: parseInt64(raw.Duration),
		MD5Origin:       raw.MD5Origin,
		TrackToken:      raw.TrackToken,
		MediaVersion:    raw.MediaVersion,
		QualityFilesizes: map[string]int64{
			QualityMP3128: parseInt64(raw.FilesizeMP3128),
			QualityMP3256: parseInt64(raw.FilesizeMP3256),
			QualityMP3320: parseInt64(raw.FilesizeMP3320),
		},
	}

	if track.MediaVersion == "" {
		track.MediaVersion = "1"
	}

	for _, media := range raw.Media {
		if media.Type == MediaTypePreview && media.Href != "" {
			track.PreviewURL = media.Href

			break
		}
	}

	return track
}

// streamAllowed reports whether streaming rights permit downloading.
// A missing flag counts as allowed.
func streamAllowed(rights rightsRaw) bool {
	return rights.StreamAdsAvailable == nil || *rights.StreamAdsAvailable
}

// parseInt64 converts a textual gateway number, returning 0 for anything unparseable.
func parseInt64(s string) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return value
}
