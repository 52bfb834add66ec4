package deezer

// ResolvedSource is a download URL that survived probing, together with
// the facts the downloader needs to handle its content correctly.
type ResolvedSource struct {
	// URL is the probed, ready-to-fetch content URL.
	URL string
	// Quality is the gateway quality identifier the URL was signed for,
	// empty when the source does not encode one (token and preview sources).
	Quality string
	// Encrypted reports whether the content is Blowfish-scrambled and
	// must pass through the streaming decryptor.
	Encrypted bool
	// Preview reports that the source is the 30-second clip, not the full track.
	Preview bool
}

// DownloadResult describes the outcome of a track download.
type DownloadResult struct {
	// Path is the final location of the track file.
	Path string
	// BytesDownloaded is the number of bytes written to disk.
	BytesDownloaded int64
	// IsExist reports that the file already existed and was kept.
	IsExist bool
	// Preview reports that only the 30-second clip was available.
	Preview bool
}
