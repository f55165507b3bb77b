package aniparse

// ElementKind identifies the kind of metadata an Element carries.
// The values are stable snake_case strings so they can be used directly
// as JSON keys.
type ElementKind string

const (
	ElementAudioTerm           ElementKind = "audio_term"
	ElementDeviceCompatibility ElementKind = "device_compatibility"
	ElementEpisode             ElementKind = "episode"
	ElementEpisodeTitle        ElementKind = "episode_title"
	ElementEpisodeAlt          ElementKind = "episode_alt"
	ElementFileChecksum        ElementKind = "file_checksum"
	ElementFileExtension       ElementKind = "file_extension"
	ElementLanguage            ElementKind = "language"
	ElementOther               ElementKind = "other"
	ElementReleaseGroup        ElementKind = "release_group"
	ElementReleaseInformation  ElementKind = "release_information"
	ElementReleaseVersion      ElementKind = "release_version"
	ElementSeason              ElementKind = "season"
	ElementSource              ElementKind = "source"
	ElementSubtitles           ElementKind = "subtitles"
	ElementTitle               ElementKind = "title"
	ElementType                ElementKind = "type"
	ElementVideoResolution     ElementKind = "video_resolution"
	ElementVideoTerm           ElementKind = "video_term"
	ElementVolume              ElementKind = "volume"
	ElementYear                ElementKind = "year"
)

// Element is a single piece of metadata extracted from a file name.
// Position is the index of the token the element was extracted from and
// orders the output in source order.
type Element struct {
	Kind     ElementKind `json:"kind"`
	Value    string      `json:"value"`
	Position int         `json:"-"`
}

func newElement(kind ElementKind, tok *token) Element {
	return Element{Kind: kind, Value: tok.value, Position: tok.position}
}

// Elements is the ordered result of a parse.
type Elements []Element

// Find returns the value of the first element of the given kind.
func (e Elements) Find(kind ElementKind) (string, bool) {
	for _, el := range e {
		if el.Kind == kind {
			return el.Value, true
		}
	}
	return "", false
}

// FindAll returns the values of every element of the given kind, in order.
func (e Elements) FindAll(kind ElementKind) []string {
	var values []string
	for _, el := range e {
		if el.Kind == kind {
			values = append(values, el.Value)
		}
	}
	return values
}

// Has reports whether any element of the given kind was extracted.
func (e Elements) Has(kind ElementKind) bool {
	_, ok := e.Find(kind)
	return ok
}

// Record is a flat view of parse results with one field per element kind.
// When the element list contains several elements of the same kind, the
// last one wins. Useful for encoding results as a single JSON object.
type Record struct {
	AudioTerm           string `json:"audio_term,omitempty"`
	DeviceCompatibility string `json:"device_compatibility,omitempty"`
	Episode             string `json:"episode,omitempty"`
	EpisodeAlt          string `json:"episode_alt,omitempty"`
	EpisodeTitle        string `json:"episode_title,omitempty"`
	FileChecksum        string `json:"file_checksum,omitempty"`
	FileExtension       string `json:"file_extension,omitempty"`
	Language            string `json:"language,omitempty"`
	Other               string `json:"other,omitempty"`
	ReleaseGroup        string `json:"release_group,omitempty"`
	ReleaseInformation  string `json:"release_information,omitempty"`
	ReleaseVersion      string `json:"release_version,omitempty"`
	Season              string `json:"season,omitempty"`
	Source              string `json:"source,omitempty"`
	Subtitles           string `json:"subtitles,omitempty"`
	Title               string `json:"title,omitempty"`
	Type                string `json:"type,omitempty"`
	VideoResolution     string `json:"video_resolution,omitempty"`
	VideoTerm           string `json:"video_term,omitempty"`
	Volume              string `json:"volume,omitempty"`
	Year                string `json:"year,omitempty"`
}

// ToRecord folds the element list into a flat Record.
func (e Elements) ToRecord() Record {
	var r Record
	for _, el := range e {
		switch el.Kind {
		case ElementAudioTerm:
			r.AudioTerm = el.Value
		case ElementDeviceCompatibility:
			r.DeviceCompatibility = el.Value
		case ElementEpisode:
			r.Episode = el.Value
		case ElementEpisodeAlt:
			r.EpisodeAlt = el.Value
		case ElementEpisodeTitle:
			r.EpisodeTitle = el.Value
		case ElementFileChecksum:
			r.FileChecksum = el.Value
		case ElementFileExtension:
			r.FileExtension = el.Value
		case ElementLanguage:
			r.Language = el.Value
		case ElementOther:
			r.Other = el.Value
		case ElementReleaseGroup:
			r.ReleaseGroup = el.Value
		case ElementReleaseInformation:
			r.ReleaseInformation = el.Value
		case ElementReleaseVersion:
			r.ReleaseVersion = el.Value
		case ElementSeason:
			r.Season = el.Value
		case ElementSource:
			r.Source = el.Value
		case ElementSubtitles:
			r.Subtitles = el.Value
		case ElementTitle:
			r.Title = el.Value
		case ElementType:
			r.Type = el.Value
		case ElementVideoResolution:
			r.VideoResolution = el.Value
		case ElementVideoTerm:
			r.VideoTerm = el.Value
		case ElementVolume:
			r.Volume = el.Value
		case ElementYear:
			r.Year = el.Value
		}
	}
	return r
}
