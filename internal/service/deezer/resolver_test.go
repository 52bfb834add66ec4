package deezer

import (
	"context"
	"crypto/md5" //nolint:gosec // MD5 is dictated by the CDN URL signing scheme, not used for security.
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/velikanov/deezgrab/internal/client/deezer"
	mock_deezer_client "github.com/velikanov/deezgrab/internal/client/deezer/mocks"
	"github.com/velikanov/deezgrab/internal/config"
)

const (
	testMD5Origin  = "a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5"
	testTrackToken = "track-token-0123456789abcdef0123456789abcdef"
)

func newResolverTestTrack() *deezer.Track {
	return &deezer.Track{
		ID:           "3135556",
		Title:        "Harder, Better, Faster, Stronger",
		Artist:       "Daft Punk",
		MD5Origin:    testMD5Origin,
		TrackToken:   testTrackToken,
		MediaVersion: "7",
		PreviewURL:   "https://cdn.example/preview.mp3",
	}
}

// expectedTokenURL recomputes a token-based candidate independently.
func expectedTokenURL(contentHash string) string {
	return fmt.Sprintf("https://e-cdns-proxy-%s.dzcdn.net/mobile/1/%s?%s",
		testMD5Origin[:1], contentHash, testTrackToken)
}

// expectedLegacyURL recomputes a legacy candidate independently.
func expectedLegacyURL(hostFormat, quality, trackID, mediaVersion, secret string) string {
	signature := quality + "¤" + trackID + "¤" + mediaVersion + "¤" + testMD5Origin
	sum := md5.Sum([]byte(signature + secret)) //nolint:gosec // Dictated by the URL scheme.

	return fmt.Sprintf(hostFormat, testMD5Origin[:1], hex.EncodeToString(sum[:]))
}

// TestResolve_GatewayMediaURL tests that a probed gateway-provided URL
// wins without constructing any candidates.
func TestResolve_GatewayMediaURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()
	mediaURL := "https://cdn.example/full.mp3"

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return(mediaURL, nil)
	mockClient.EXPECT().ProbeURL(ctx, mediaURL).Return(true)

	resolver := NewSourceResolver(&config.Config{Quality: 3}, mockClient)

	source, err := resolver.Resolve(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, mediaURL, source.URL)
	assert.True(t, source.Encrypted)
	assert.False(t, source.Preview)
}

// TestResolve_TokenCandidate tests that constructed token URLs are probed
// in order and the first hit wins.
func TestResolve_TokenCandidate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()

	firstCandidate := expectedTokenURL(testMD5Origin)

	sum := md5.Sum([]byte(track.ID + testTrackToken)) //nolint:gosec // Dictated by the URL scheme.
	secondCandidate := expectedTokenURL(hex.EncodeToString(sum[:]))

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return("", nil)

	gomock.InOrder(
		mockClient.EXPECT().ProbeURL(ctx, firstCandidate).Return(false),
		mockClient.EXPECT().ProbeURL(ctx, secondCandidate).Return(true),
	)

	resolver := NewSourceResolver(&config.Config{Quality: 3}, mockClient)

	source, err := resolver.Resolve(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, secondCandidate, source.URL)
	assert.True(t, source.Encrypted)
	assert.False(t, source.Preview)
}

// TestResolve_LegacyCandidate tests that the legacy stage starts with the
// configured quality and the newest signing secret, and that a legacy
// hit stops the chain before the preview fallback.
func TestResolve_LegacyCandidate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()

	firstLegacyCandidate := expectedLegacyURL(
		"https://e-cdns-proxy-%s.dzcdn.net/mobile/1/%s",
		deezer.QualityMP3320, track.ID, track.MediaVersion, "jo6aey6haid2Teih")

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return("", nil)
	mockClient.EXPECT().ProbeURL(ctx, firstLegacyCandidate).Return(true)
	// Token candidates all miss.
	mockClient.EXPECT().ProbeURL(ctx, gomock.Any()).Return(false).Times(3)

	resolver := NewSourceResolver(&config.Config{Quality: 3}, mockClient)

	source, err := resolver.Resolve(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, firstLegacyCandidate, source.URL)
	assert.Equal(t, deezer.QualityMP3320, source.Quality)
	assert.True(t, source.Encrypted)
	assert.False(t, source.Preview)
}

// TestResolve_QualityPreference tests that a lower configured quality
// skips the higher signatures entirely.
func TestResolve_QualityPreference(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()

	firstLegacyCandidate := expectedLegacyURL(
		"https://e-cdns-proxy-%s.dzcdn.net/mobile/1/%s",
		deezer.QualityMP3128, track.ID, track.MediaVersion, "jo6aey6haid2Teih")

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return("", nil)
	mockClient.EXPECT().ProbeURL(ctx, firstLegacyCandidate).Return(true)
	mockClient.EXPECT().ProbeURL(ctx, gomock.Any()).Return(false).Times(3)

	resolver := NewSourceResolver(&config.Config{Quality: 1}, mockClient)

	source, err := resolver.Resolve(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, deezer.QualityMP3128, source.Quality)
}

// TestResolve_PreviewFallback tests that exhausting both URL families
// falls back to the unencrypted preview clip.
func TestResolve_PreviewFallback(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return("", nil)
	// 3 token candidates + 3 qualities x 3 secrets x 5 host shapes.
	mockClient.EXPECT().ProbeURL(ctx, gomock.Any()).Return(false).Times(48)

	resolver := NewSourceResolver(&config.Config{Quality: 3}, mockClient)

	source, err := resolver.Resolve(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, track.PreviewURL, source.URL)
	assert.False(t, source.Encrypted)
	assert.True(t, source.Preview)
}

// TestResolve_NoPlayableSource tests total exhaustion without a preview.
func TestResolve_NoPlayableSource(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()
	track.PreviewURL = ""

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return("", nil)
	mockClient.EXPECT().ProbeURL(ctx, gomock.Any()).Return(false).Times(48)

	resolver := NewSourceResolver(&config.Config{Quality: 3}, mockClient)

	_, err := resolver.Resolve(ctx, track)
	require.ErrorIs(t, err, ErrNoPlayableSource)
}

// TestResolve_GatewayErrorTolerated tests that a gateway failure on the
// media URL lookup does not abort the chain.
func TestResolve_GatewayErrorTolerated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	track := newResolverTestTrack()

	firstCandidate := expectedTokenURL(testMD5Origin)

	mockClient := mock_deezer_client.NewMockClient(ctrl)
	mockClient.EXPECT().GetTrackFullMediaURL(ctx, track.ID).Return("", assert.AnError)
	mockClient.EXPECT().ProbeURL(ctx, firstCandidate).Return(true)

	resolver := NewSourceResolver(&config.Config{Quality: 3}, mockClient)

	source, err := resolver.Resolve(ctx, track)
	require.NoError(t, err)

	assert.Equal(t, firstCandidate, source.URL)
}
