package deezer

import (
	"encoding/json"
	"io"
)

// Session holds the authenticated gateway session state.
// It is owned by the client and mutated only by Authenticate.
type Session struct {
	// APIToken is the confirmed CSRF token appended to every gateway call.
	APIToken string
	// UserID is the numeric identifier of the logged-in user.
	UserID int64
	// UserName is the display name of the logged-in user.
	UserName string
}

// Track is the parsed track metadata the rest of the application works with.
type Track struct {
	// ID is the numeric track identifier as a string.
	ID string
	// Title is the track title.
	Title string
	// Artist is the main artist name.
	Artist string
	// DurationSeconds is the track length in seconds.
	DurationSeconds int64
	// MD5Origin is the CDN routing hash; its first character selects the CDN host.
	MD5Origin string
	// TrackToken is the short-lived token for token-based CDN URLs.
	TrackToken string
	// MediaVersion participates in legacy URL signing.
	MediaVersion string
	// PreviewURL is the unencrypted 30-second clip, empty when absent.
	PreviewURL string
	// QualityFilesizes maps quality identifiers to reported file sizes in bytes.
	// A zero or missing size means the quality is not available.
	QualityFilesizes map[string]int64
}

// FetchTrackResult contains the result of fetching track content.
type FetchTrackResult struct {
	// Body is the content stream.
	Body io.ReadCloser
	// TotalBytes is the total size of the content, -1 when unknown.
	TotalBytes int64
}

// gatewayEnvelope is the common response wrapper of the gateway.
// The error member is a heterogeneous value: an empty array when the
// call succeeded, an object or array of messages otherwise.
type gatewayEnvelope[T any] struct {
	Error   json.RawMessage `json:"error"`
	Results *T              `json:"results"`
}

// userDataResults is the payload of deezer.getUserData.
type userDataResults struct {
	CheckForm string      `json:"checkForm"`
	User      userDataRaw `json:"USER"`
}

type userDataRaw struct {
	ID       int64  `json:"USER_ID"`
	BlogName string `json:"BLOG_NAME"`
	Username string `json:"USERNAME"`
}

// pageTrackResults is the payload of deezer.pageTrack.
type pageTrackResults struct {
	Data *trackDataRaw `json:"DATA"`
}

// listDataResults is the payload of song.getListData.
type listDataResults struct {
	Data []listDataEntryRaw `json:"data"`
}

type listDataEntryRaw struct {
	Media []mediaRaw `json:"MEDIA"`
}

type mediaRaw struct {
	Type string `json:"TYPE"`
	Href string `json:"HREF"`
}

// rightsRaw carries streaming permissions. A missing flag means allowed.
type rightsRaw struct {
	StreamAdsAvailable *bool `json:"STREAM_ADS_AVAILABLE"`
}

// trackDataRaw mirrors the gateway track object. Numeric values arrive
// as strings, so everything is kept textual and parsed afterwards.
type trackDataRaw struct {
	ID             string     `json:"SNG_ID"`
	Title          string     `json:"SNG_TITLE"`
	ArtistName     string     `json:"ART_NAME"`
	Duration       string     `json:"DURATION"`
	MD5Origin      string     `json:"MD5_ORIGIN"`
	TrackToken     string     `json:"TRACK_TOKEN"`
	MediaVersion   string     `json:"MEDIA_VERSION"`
	Rights         rightsRaw  `json:"RIGHTS"`
	FilesizeMP3128 string     `json:"FILESIZE_MP3_128"`
	FilesizeMP3256 string     `json:"FILESIZE_MP3_256"`
	FilesizeMP3320 string     `json:"FILESIZE_MP3_320"`
	Media          []mediaRaw `json:"MEDIA"`
}
