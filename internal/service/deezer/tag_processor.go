package deezer

//go:generate $MOCKGEN -source=tag_processor.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"errors"
	"strconv"

	"github.com/oshokin/id3v2/v2"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// Artist is the main artist name.
	Artist string
	// Title is the track title.
	Title string
	// DurationSeconds is the track length in seconds, 0 when unknown.
	DurationSeconds int64
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

const millisecondsPerSecond = 1000

// ErrEmptyTrackPath indicates that the track file path is empty.
var ErrEmptyTrackPath = errors.New("track path cannot be empty")

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes ID3v2 metadata to the MP3 file at req.TrackPath.
func (tp *TagProcessorImpl) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	// Open the MP3 file for writing metadata.
	//nolint:exhaustruct // ParseFrames intentionally omitted when Parse=false (parsing disabled).
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: false})
	if err != nil {
		return err
	}

	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetArtist(req.Artist)
	tag.SetTitle(req.Title)

	if req.DurationSeconds > 0 {
		tag.AddTextFrame(
			tag.CommonID("Length"),
			tag.DefaultEncoding(),
			strconv.FormatInt(req.DurationSeconds*millisecondsPerSecond, 10),
		)
	}

	return tag.Save()
}
