package aniparse

// keywordKind classifies catalogue entries. It is finer grained than
// ElementKind; several keyword kinds fold into the same element kind.
type keywordKind int

const (
	keywordAudioChannels keywordKind = iota
	keywordAudioCodec
	keywordAudioLanguage
	keywordDeviceCompatibility
	keywordEpisode
	keywordEpisodeType
	keywordFileExtension
	keywordLanguage
	keywordOther
	keywordReleaseGroup
	keywordReleaseInformation
	keywordReleaseVersion
	keywordSeason
	keywordSource
	keywordSubtitles
	keywordType
	keywordVideoCodec
	keywordVideoColorDepth
	keywordVideoFormat
	keywordVideoFrameRate
	keywordVideoProfile
	keywordVideoQuality
	keywordVideoResolution
	keywordVolume
)

// keyword is a catalogue entry. An ambiguous keyword may legitimately occur
// inside a title and does not claim its token unless the token is enclosed.
// An unbounded keyword does not require a non-text character after the match.
type keyword struct {
	kind      keywordKind
	ambiguous bool
	unbounded bool
}

func kw(kind keywordKind) keyword          { return keyword{kind: kind} }
func kwAmbiguous(kind keywordKind) keyword { return keyword{kind: kind, ambiguous: true} }
func kwUnbounded(kind keywordKind) keyword { return keyword{kind: kind, unbounded: true} }

// keywords maps lowercased literals to their catalogue entry. Matching is
// case-insensitive; lookups must lowercase the candidate first.
var keywords = map[string]keyword{
	// Audio
	//
	// Channels
	"2.0ch":        kw(keywordAudioChannels),
	"2ch":          kw(keywordAudioChannels),
	"5.1":          kw(keywordAudioChannels),
	"5.1ch":        kw(keywordAudioChannels),
	"7.1":          kw(keywordAudioChannels),
	"7.1ch":        kw(keywordAudioChannels),
	"dts":          kw(keywordAudioChannels),
	"dts-es":       kw(keywordAudioChannels),
	"dts5.1":       kw(keywordAudioChannels),
	"dolby truehd": kw(keywordAudioChannels),
	"truehd":       kw(keywordAudioChannels),
	"truehd5.1":    kw(keywordAudioChannels),
	"dd5.1":        kw(keywordAudioChannels),
	"dd2.0":        kw(keywordAudioChannels),
	// Codec
	"aac":         kw(keywordAudioCodec),
	"aac2.0":      kw(keywordAudioCodec),
	"aacx2":       kw(keywordAudioCodec),
	"aacx3":       kw(keywordAudioCodec),
	"aacx4":       kw(keywordAudioCodec),
	"ac3":         kw(keywordAudioCodec),
	"eac3":        kw(keywordAudioCodec),
	"e-ac-3":      kw(keywordAudioCodec),
	"flac":        kw(keywordAudioCodec),
	"flacx2":      kw(keywordAudioCodec),
	"flacx3":      kw(keywordAudioCodec),
	"flacx4":      kw(keywordAudioCodec),
	"lossless":    kw(keywordAudioCodec),
	"mp3":         kw(keywordAudioCodec),
	"ogg":         kw(keywordAudioCodec),
	"vorbis":      kw(keywordAudioCodec),
	"atmos":       kw(keywordAudioCodec),
	"dolby atmos": kw(keywordAudioCodec),
	"opus":        kwAmbiguous(keywordAudioCodec), // e.g. "Opus.COLORs"
	// Language
	"dualaudio":  kw(keywordAudioLanguage),
	"dual audio": kw(keywordAudioLanguage),
	"dual-audio": kw(keywordAudioLanguage),

	// Device compatibility
	"android": kwAmbiguous(keywordDeviceCompatibility), // e.g. "Dragon Ball Z: Super Android 13"
	"ipad3":   kw(keywordDeviceCompatibility),
	"iphone5": kw(keywordDeviceCompatibility),
	"ipod":    kw(keywordDeviceCompatibility),
	"ps3":     kw(keywordDeviceCompatibility),
	"xbox":    kw(keywordDeviceCompatibility),
	"xbox360": kw(keywordDeviceCompatibility),

	// Episode prefix
	"ep":       kw(keywordEpisode),
	"eps":      kw(keywordEpisode),
	"episode":  kw(keywordEpisode),
	"episodes": kw(keywordEpisode),
	"episodio": kw(keywordEpisode),
	"episódio": kw(keywordEpisode),
	"capitulo": kw(keywordEpisode),
	"folge":    kw(keywordEpisode),

	// Episode type
	"op":      kwAmbiguous(keywordEpisodeType),
	"opening": kwAmbiguous(keywordEpisodeType),
	"ed":      kwAmbiguous(keywordEpisodeType),
	"ending":  kwAmbiguous(keywordEpisodeType),
	"nced":    kw(keywordEpisodeType),
	"ncop":    kw(keywordEpisodeType),
	"preview": kwAmbiguous(keywordEpisodeType),
	"pv":      kwAmbiguous(keywordEpisodeType),

	// File extension
	"3gp":  kw(keywordFileExtension),
	"avi":  kw(keywordFileExtension),
	"flv":  kw(keywordFileExtension),
	"m2ts": kw(keywordFileExtension),
	"mkv":  kw(keywordFileExtension),
	"mov":  kw(keywordFileExtension),
	"mp4":  kw(keywordFileExtension),
	"mpg":  kw(keywordFileExtension),
	"ogm":  kw(keywordFileExtension),
	"rm":   kw(keywordFileExtension),
	"rmvb": kw(keywordFileExtension),
	"ts":   kw(keywordFileExtension),
	"webm": kw(keywordFileExtension),
	"wmv":  kw(keywordFileExtension),
	"ass":  kw(keywordFileExtension),
	"srt":  kw(keywordFileExtension),
	"ssa":  kw(keywordFileExtension),
	"7z":   kw(keywordFileExtension),
	"zip":  kw(keywordFileExtension),

	// Language
	"eng":     kw(keywordLanguage),
	"english": kw(keywordLanguage),
	"esp":     kwAmbiguous(keywordLanguage), // e.g. "Tokyo ESP"
	"espanol": kw(keywordLanguage),
	"spanish": kw(keywordLanguage),
	"ita":     kwAmbiguous(keywordLanguage), // e.g. "Bokura ga Ita"
	"jap":     kw(keywordLanguage),
	"jp":      kw(keywordLanguage),
	"ja":      kw(keywordLanguage),
	"jpn":     kw(keywordLanguage),
	"pt-br":   kw(keywordLanguage),
	"vostfr":  kw(keywordLanguage),
	"cht":     kw(keywordLanguage),
	"chs":     kw(keywordLanguage),
	"chi":     kw(keywordLanguage),

	// Other
	"remaster":   kw(keywordOther),
	"remastered": kw(keywordOther),
	"uncensored": kw(keywordOther),
	"uncut":      kw(keywordOther),
	"vfr":        kw(keywordOther),
	"widescreen": kw(keywordOther),
	"ws":         kw(keywordOther),

	// Release group
	"thora":     kw(keywordReleaseGroup), // special case because usually placed at the end
	"utw-thora": kw(keywordReleaseGroup), // due to special case above, parser can't handle compound ones
	"jptvclub":  kw(keywordReleaseGroup), // usually at the end

	// Release information
	"batch":    kw(keywordReleaseInformation),
	"complete": kw(keywordReleaseInformation),
	"end":      kwAmbiguous(keywordReleaseInformation), // e.g. "The End of Evangelion"
	"final":    kwAmbiguous(keywordReleaseInformation), // e.g. "Final Approach"
	"patch":    kw(keywordReleaseInformation),
	"remux":    kw(keywordReleaseInformation),

	// Release version
	"v0": kw(keywordReleaseVersion),
	"v1": kw(keywordReleaseVersion),
	"v2": kw(keywordReleaseVersion),
	"v3": kw(keywordReleaseVersion),
	"v4": kw(keywordReleaseVersion),

	// Season
	// Usually preceded or followed by a number (e.g. `2nd Season` or `Season 2`).
	"season": kwAmbiguous(keywordSeason),
	"saison": kwAmbiguous(keywordSeason),

	// Source
	//
	// Blu-ray
	"bd":      kw(keywordSource),
	"bdrip":   kw(keywordSource),
	"bluray":  kw(keywordSource),
	"blu-ray": kw(keywordSource),
	// DVD
	"dvd":       kw(keywordSource),
	"dvd5":      kw(keywordSource),
	"dvd9":      kw(keywordSource),
	"dvdiso":    kw(keywordSource),
	"dvdrip":    kw(keywordSource),
	"dvd-rip":   kw(keywordSource),
	"r2dvd":     kw(keywordSource),
	"r2j":       kw(keywordSource),
	"r2jdvd":    kw(keywordSource),
	"r2jdvdrip": kw(keywordSource),
	// TV
	"hdtv":    kw(keywordSource),
	"hdtvrip": kw(keywordSource),
	"tvrip":   kw(keywordSource),
	"tv-rip":  kw(keywordSource),
	// Web
	"web":         kwAmbiguous(keywordSource),
	"webcast":     kw(keywordSource),
	"webdl":       kw(keywordSource),
	"web-dl":      kw(keywordSource),
	"webrip":      kw(keywordSource),
	"amzn":        kw(keywordSource), // Amazon Prime
	"cr":          kw(keywordSource), // Crunchyroll
	"crunchyroll": kw(keywordSource),
	"dsnp":        kw(keywordSource), // Disney+
	"funi":        kw(keywordSource), // Funimation
	"funimation":  kw(keywordSource),
	"hidi":        kw(keywordSource), // Hidive
	"hidive":      kw(keywordSource),
	"hulu":        kw(keywordSource),
	"netflix":     kw(keywordSource),
	"nf":          kw(keywordSource), // Netflix
	"vrv":         kw(keywordSource),
	"youtube":     kw(keywordSource),

	// Subtitles
	"big5":      kw(keywordSubtitles),
	"dub":       kw(keywordSubtitles),
	"dubbed":    kw(keywordSubtitles),
	"hardsub":   kw(keywordSubtitles),
	"hardsubs":  kw(keywordSubtitles),
	"raw":       kw(keywordSubtitles),
	"softsub":   kw(keywordSubtitles),
	"softsubs":  kw(keywordSubtitles),
	"sub":       kw(keywordSubtitles),
	"subbed":    kw(keywordSubtitles),
	"subtitled": kw(keywordSubtitles),
	"multisub":  kw(keywordSubtitles),
	"multi sub": kw(keywordSubtitles),
	"multi-sub": kw(keywordSubtitles),
	"cc":        kwAmbiguous(keywordSubtitles),
	"sdh":       kwAmbiguous(keywordSubtitles),

	// Type
	"tv":         kwAmbiguous(keywordType),
	"movie":      kwAmbiguous(keywordType),
	"gekijouban": kwAmbiguous(keywordType),
	"oad":        kwAmbiguous(keywordType),
	"oav":        kwAmbiguous(keywordType),
	"ona":        kwAmbiguous(keywordType),
	"ova":        kwAmbiguous(keywordType),
	"sp":         kwAmbiguous(keywordType), // e.g. "Yumeiro Patissiere SP Professional"
	"special":    kwAmbiguous(keywordType),
	"specials":   kwAmbiguous(keywordType),

	// Video
	//
	// Color depth
	"8bit":    kw(keywordVideoColorDepth),
	"8-bit":   kw(keywordVideoColorDepth),
	"10bit":   kw(keywordVideoColorDepth),
	"10bits":  kw(keywordVideoColorDepth),
	"10-bit":  kw(keywordVideoColorDepth),
	"10-bits": kw(keywordVideoColorDepth),
	// Codec
	"av1":          kw(keywordVideoCodec),
	"avc":          kw(keywordVideoCodec),
	"divx5":        kw(keywordVideoCodec),
	"divx6":        kw(keywordVideoCodec),
	"h.264":        kw(keywordVideoCodec),
	"h.265":        kw(keywordVideoCodec),
	"x.264":        kw(keywordVideoCodec),
	"h264":         kw(keywordVideoCodec),
	"h265":         kw(keywordVideoCodec),
	"x264":         kw(keywordVideoCodec),
	"x265":         kw(keywordVideoCodec),
	"hevc":         kw(keywordVideoCodec),
	"hevc2":        kw(keywordVideoCodec),
	"xvid":         kw(keywordVideoCodec),
	"hdr":          kw(keywordVideoCodec),
	"dv":           kw(keywordVideoCodec),
	"dolby vision": kw(keywordVideoCodec),
	// Format
	"wmv3": kw(keywordVideoFormat),
	"wmv9": kw(keywordVideoFormat),
	// Frame rate
	"23.976fps": kw(keywordVideoFrameRate),
	"24fps":     kw(keywordVideoFrameRate),
	"29.97fps":  kw(keywordVideoFrameRate),
	"30fps":     kw(keywordVideoFrameRate),
	"60fps":     kw(keywordVideoFrameRate),
	"120fps":    kw(keywordVideoFrameRate),
	// Profile
	"hi10":    kw(keywordVideoProfile),
	"hi10p":   kw(keywordVideoProfile),
	"hi444":   kw(keywordVideoProfile),
	"hi444p":  kw(keywordVideoProfile),
	"hi444pp": kw(keywordVideoProfile),
	// Quality
	"hd": kw(keywordVideoQuality),
	"sd": kw(keywordVideoQuality),
	"hq": kw(keywordVideoQuality),
	"lq": kw(keywordVideoQuality),
	// Resolution
	"480p":  kwUnbounded(keywordVideoResolution),
	"720p":  kwUnbounded(keywordVideoResolution),
	"1080p": kwUnbounded(keywordVideoResolution),
	"1440p": kwUnbounded(keywordVideoResolution),
	"2160p": kwUnbounded(keywordVideoResolution),
	"4k":    kw(keywordVideoResolution),

	// Volume
	"vol":    kw(keywordVolume),
	"volume": kw(keywordVolume),
}

// keywordPrefixes holds every strict prefix of every catalogue key
// (lowercased), so the greedy matcher can tell in O(1) whether extending
// the current candidate can still reach a key.
var keywordPrefixes = buildKeywordPrefixes()

func buildKeywordPrefixes() map[string]struct{} {
	prefixes := make(map[string]struct{})
	for key := range keywords {
		for i := range key {
			if i > 0 {
				prefixes[key[:i]] = struct{}{}
			}
		}
	}
	return prefixes
}
