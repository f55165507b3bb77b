package aniparse

// Options controls which parser rules run. Zero value disables everything;
// use DefaultOptions for the usual all-enabled configuration.
type Options struct {
	Episode         bool
	EpisodeTitle    bool
	FileChecksum    bool
	FileExtension   bool
	ReleaseGroup    bool
	Season          bool
	Title           bool
	VideoResolution bool
	Year            bool
	Date            bool // declared for config compatibility; no rule consumes it yet
}

// DefaultOptions returns options with every rule enabled.
func DefaultOptions() Options {
	return Options{
		Episode:         true,
		EpisodeTitle:    true,
		FileChecksum:    true,
		FileExtension:   true,
		ReleaseGroup:    true,
		Season:          true,
		Title:           true,
		VideoResolution: true,
		Year:            true,
		Date:            true,
	}
}
