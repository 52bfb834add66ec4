package deezer

const (
	// gwLightURI is the URI path for the JSON gateway endpoint.
	gwLightURI = "ajax/gw-light.php"

	// Fixed gateway query parameters.
	gwAPIVersion = "1.0"
	gwInput      = "3"

	// Gateway method names.
	methodGetUserData = "deezer.getUserData"
	methodPageTrack   = "deezer.pageTrack"
	methodGetListData = "song.getListData"

	// arlCookieName is the session cookie carrying the long-lived credential.
	arlCookieName = "arl"

	// Media entry types returned by the gateway.
	MediaTypeFull    = "full"
	MediaTypePreview = "preview"
)

// Audio quality identifiers as the gateway names them.
const (
	QualityMP3320 = "MP3_320"
	QualityMP3256 = "MP3_256"
	QualityMP3128 = "MP3_128"
)

// QualityFallbackOrder lists qualities from best to worst; URL resolution
// walks it downward when the preferred quality is unavailable.
//
//nolint:gochecknoglobals // Immutable ordering used as a constant.
var QualityFallbackOrder = []string{QualityMP3320, QualityMP3256, QualityMP3128}

// tracksCacheSize defines the maximum number of track metadata entries to cache.
// One invocation downloads a single track, so the cache only has to absorb
// repeated lookups for the same identifier within a run.
const tracksCacheSize = 128
