package aniparse

import (
	"sort"
	"testing"
)

// pair is a kind/value expectation for a parsed input.
type pair struct {
	kind  ElementKind
	value string
}

func checkElements(t *testing.T, input string, want []pair) {
	t.Helper()
	got := Parse(input)

	for i := 1; i < len(got); i++ {
		if got[i-1].Position > got[i].Position {
			t.Errorf("Parse(%q) output not sorted by position: %v", input, got)
			break
		}
	}

	// Every expected pair must be present; each one consumes a distinct
	// matching element, so a repeated pair needs repeated elements. The
	// order of the pairs is not checked.
	remaining := append(Elements(nil), got...)
	for _, w := range want {
		found := -1
		for i, el := range remaining {
			if el.Kind == w.kind && el.Value == w.value {
				found = i
				break
			}
		}
		if found < 0 {
			t.Errorf("Parse(%q) missing %s=%q\ngot: %v", input, w.kind, w.value, got)
			continue
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
}

func TestParseScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []pair
	}{
		{
			"fansub release",
			"[TaigaSubs]_Toradora!_(2008)_-_01v2_-_Tiger_and_Dragon_[1280x720_H.264_FLAC][1234ABCD]",
			[]pair{
				{ElementReleaseGroup, "TaigaSubs"},
				{ElementTitle, "Toradora!"},
				{ElementYear, "2008"},
				{ElementEpisode, "01"},
				{ElementReleaseVersion, "2"},
				{ElementEpisodeTitle, "Tiger and Dragon"},
				{ElementVideoResolution, "1280x720"},
				{ElementVideoTerm, "H.264"},
				{ElementAudioTerm, "FLAC"},
				{ElementFileChecksum, "1234ABCD"},
			},
		},
		{
			"movie with dotted title",
			"Evangelion_1.11_You_Are_(Not)_Alone_(2009)_[1080p,BluRay,x264,DTS-ES]_-_THORA.mkv",
			[]pair{
				{ElementTitle, "Evangelion 1.11 You Are (Not) Alone"},
				{ElementYear, "2009"},
				{ElementVideoResolution, "1080p"},
				{ElementSource, "BluRay"},
				{ElementVideoTerm, "x264"},
				{ElementAudioTerm, "DTS-ES"},
				{ElementReleaseGroup, "THORA"},
				{ElementFileExtension, "mkv"},
			},
		},
		{
			"season episode range",
			"[Group]_Show_-_S02E05-E06v2_[720p].mkv",
			[]pair{
				{ElementReleaseGroup, "Group"},
				{ElementTitle, "Show"},
				{ElementSeason, "02"},
				{ElementEpisode, "05"},
				{ElementEpisode, "06"},
				{ElementReleaseVersion, "2"},
				{ElementVideoResolution, "720p"},
				{ElementFileExtension, "mkv"},
			},
		},
		{
			"ordinal season",
			"Show - 2nd Season - 03.mkv",
			[]pair{
				{ElementTitle, "Show"},
				{ElementSeason, "2"},
				{ElementEpisode, "03"},
				{ElementFileExtension, "mkv"},
			},
		},
		{
			"japanese episode counter",
			"[Group] Show 第02話 [1080p][ABCDEF01].mkv",
			[]pair{
				{ElementReleaseGroup, "Group"},
				{ElementTitle, "Show"},
				{ElementEpisode, "02"},
				{ElementVideoResolution, "1080p"},
				{ElementFileChecksum, "ABCDEF01"},
				{ElementFileExtension, "mkv"},
			},
		},
		{
			"scene release",
			"Show.Name.S01.E03.HDTV.x264-Group",
			[]pair{
				{ElementTitle, "Show Name"},
				{ElementSeason, "01"},
				{ElementEpisode, "03"},
				{ElementSource, "HDTV"},
				{ElementVideoTerm, "x264"},
				{ElementReleaseGroup, "Group"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkElements(t, tt.input, tt.want)
		})
	}
}

func TestParseEpisodeVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []pair
	}{
		{"separated number", "[ANBU]_Princess_Lover!_-_01_[2048A39A].mkv",
			[]pair{{ElementTitle, "Princess Lover!"}, {ElementEpisode, "01"}, {ElementFileChecksum, "2048A39A"}}},
		{"episode prefix", "Toradora! EP01 (720p).mkv",
			[]pair{{ElementTitle, "Toradora!"}, {ElementEpisode, "01"}, {ElementVideoResolution, "720p"}}},
		{"multi episode range", "[Coalgirls]_White_Album_1-13_(1280x720_Blu-Ray_FLAC)",
			[]pair{{ElementTitle, "White Album"}, {ElementEpisode, "1"}, {ElementEpisode, "13"}, {ElementSource, "Blu-Ray"}}},
		{"number of number", "Magical Nanoha - The Battle of Aces - 01 of 24",
			[]pair{{ElementEpisode, "01"}}},
		{"hash sign", "Show #05v2",
			[]pair{{ElementTitle, "Show"}, {ElementEpisode, "05"}, {ElementReleaseVersion, "2"}}},
		{"fractional", "Show - 07.5 (720p)",
			[]pair{{ElementTitle, "Show"}, {ElementEpisode, "07.5"}, {ElementVideoResolution, "720p"}}},
		{"partial", "Show - 03a [1080p]",
			[]pair{{ElementTitle, "Show"}, {ElementEpisode, "03a"}, {ElementVideoResolution, "1080p"}}},
		{"last number", "[Taka]_Fullmetal_Alchemist_(2003)_30.mkv",
			[]pair{{ElementTitle, "Fullmetal Alchemist"}, {ElementYear, "2003"}, {ElementEpisode, "30"}}},
		{"single with version", "[Group] Show - 01v2",
			[]pair{{ElementEpisode, "01"}, {ElementReleaseVersion, "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkElements(t, tt.input, tt.want)
		})
	}
}

func TestParseEquivalentNumbers(t *testing.T) {
	got := Parse("One Piece - 500 (578) [720p]")

	if v, _ := got.Find(ElementEpisode); v != "500" {
		t.Errorf("episode = %q, want 500", v)
	}
	if v, _ := got.Find(ElementEpisodeAlt); v != "578" {
		t.Errorf("episode_alt = %q, want 578", v)
	}
	if v, _ := got.Find(ElementTitle); v != "One Piece" {
		t.Errorf("title = %q, want One Piece", v)
	}
}

func TestParseSeasonPatterns(t *testing.T) {
	tests := []struct {
		input   string
		season  string
		episode string
	}{
		{"Show S2 - 11", "2", "11"},
		{"Show Season II - 05 [480p]", "2", "05"},
		{"Show - 2nd Season - 03.mkv", "2", "03"},
		{"ワンパンマン 第2期 - 05", "2", "05"},
		{"Show.S01E05.mkv", "01", "05"},
	}

	for _, tt := range tests {
		got := Parse(tt.input)
		if v, _ := got.Find(ElementSeason); v != tt.season {
			t.Errorf("Parse(%q) season = %q, want %q", tt.input, v, tt.season)
		}
		if v, _ := got.Find(ElementEpisode); v != tt.episode {
			t.Errorf("Parse(%q) episode = %q, want %q", tt.input, v, tt.episode)
		}
	}
}

func TestParseVolume(t *testing.T) {
	got := Parse("[SubGroup] Series Title Vol.3 [DVD]")
	if v, _ := got.Find(ElementVolume); v != "3" {
		t.Errorf("volume = %q, want 3", v)
	}
	if v, _ := got.Find(ElementTitle); v != "Series Title" {
		t.Errorf("title = %q, want Series Title", v)
	}

	got = Parse("Series Vol.1-2 [BD]")
	if vols := got.FindAll(ElementVolume); len(vols) != 2 || vols[0] != "1" || vols[1] != "2" {
		t.Errorf("volumes = %v, want [1 2]", vols)
	}
}

func TestParseYearRange(t *testing.T) {
	tests := []struct {
		input string
		year  string // "" means no year expected
	}{
		{"Show (1950) - 01", "1950"},
		{"Show (2050) - 01", "2050"},
		{"Show (1949) - 01", ""},
		{"Show (2051) - 01", ""},
		{"Show [2008] - 01", "2008"},
	}

	for _, tt := range tests {
		got := Parse(tt.input)
		v, ok := got.Find(ElementYear)
		if tt.year == "" {
			if ok {
				t.Errorf("Parse(%q) year = %q, want none", tt.input, v)
			}
			continue
		}
		if v != tt.year {
			t.Errorf("Parse(%q) year = %q, want %q", tt.input, v, tt.year)
		}
	}
}

func TestParseFileChecksumTrailing(t *testing.T) {
	got := Parse("[Group] Show - 01 [9F6BAD9E].mkv")
	if v, _ := got.Find(ElementFileChecksum); v != "9F6BAD9E" {
		t.Errorf("checksum = %q, want 9F6BAD9E", v)
	}
}

func TestParseKeywordAmbiguity(t *testing.T) {
	// An unenclosed ambiguous keyword still emits an element but remains
	// available for the title.
	got := Parse("Tokyo ESP - 01 [720p]")
	if v, _ := got.Find(ElementTitle); v != "Tokyo ESP" {
		t.Errorf("title = %q, want Tokyo ESP", v)
	}
	if v, _ := got.Find(ElementLanguage); v != "ESP" {
		t.Errorf("language = %q, want ESP", v)
	}
}

func TestParseMovieNumberSkipped(t *testing.T) {
	got := Parse("Durarara!! Movie 1")
	if got.Has(ElementEpisode) {
		t.Errorf("movie number misread as episode: %v", got)
	}
	if v, _ := got.Find(ElementTitle); v != "Durarara!! Movie 1" {
		t.Errorf("title = %q", v)
	}
}

func TestParseEpisodeTitleCornerBrackets(t *testing.T) {
	got := Parse("[Group] [Show] - 02 「Ep Title」")
	if v, _ := got.Find(ElementTitle); v != "Show" {
		t.Errorf("title = %q, want Show", v)
	}
	if v, _ := got.Find(ElementEpisodeTitle); v != "Ep Title" {
		t.Errorf("episode title = %q, want Ep Title", v)
	}
}

func TestParseOptions(t *testing.T) {
	input := "[TaigaSubs]_Toradora!_(2008)_-_01v2_[1280x720][1234ABCD].mkv"

	tests := []struct {
		name    string
		mutate  func(*Options)
		absent  []ElementKind
		present []ElementKind
	}{
		{"no episode", func(o *Options) { o.Episode = false },
			[]ElementKind{ElementEpisode}, []ElementKind{ElementTitle, ElementYear}},
		{"no year", func(o *Options) { o.Year = false },
			[]ElementKind{ElementYear}, []ElementKind{ElementEpisode}},
		{"no checksum", func(o *Options) { o.FileChecksum = false },
			[]ElementKind{ElementFileChecksum}, []ElementKind{ElementEpisode}},
		{"no extension", func(o *Options) { o.FileExtension = false },
			[]ElementKind{ElementFileExtension}, []ElementKind{ElementEpisode}},
		{"no release group", func(o *Options) { o.ReleaseGroup = false },
			[]ElementKind{ElementReleaseGroup}, []ElementKind{ElementTitle}},
		{"no title", func(o *Options) { o.Title = false },
			[]ElementKind{ElementTitle}, []ElementKind{ElementEpisode}},
		{"no resolution", func(o *Options) { o.VideoResolution = false },
			[]ElementKind{ElementVideoResolution}, []ElementKind{ElementEpisode}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			got := ParseWithOptions(input, opts)
			for _, kind := range tt.absent {
				if got.Has(kind) {
					t.Errorf("option off but %s still present: %v", kind, got)
				}
			}
			for _, kind := range tt.present {
				if !got.Has(kind) {
					t.Errorf("%s missing: %v", kind, got)
				}
			}
		})
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"]][[",
		"....",
		"-",
		"第話",
		"(((((",
		"01",
	}
	for _, input := range inputs {
		// Must not panic, may produce anything.
		_ = Parse(input)
	}
}

func TestParseOutputSorted(t *testing.T) {
	got := Parse("[TaigaSubs]_Toradora!_(2008)_-_01v2_-_Tiger_and_Dragon_[1280x720_H.264_FLAC][1234ABCD]")
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Position < got[j].Position }) {
		t.Errorf("output not sorted: %v", got)
	}
}

func TestElementsToRecord(t *testing.T) {
	elements := Elements{
		{Kind: ElementEpisode, Value: "01", Position: 3},
		{Kind: ElementEpisode, Value: "02", Position: 5},
		{Kind: ElementTitle, Value: "Show", Position: 0},
	}
	record := elements.ToRecord()
	if record.Episode != "02" {
		t.Errorf("Record.Episode = %q, want last value 02", record.Episode)
	}
	if record.Title != "Show" {
		t.Errorf("Record.Title = %q", record.Title)
	}
}
