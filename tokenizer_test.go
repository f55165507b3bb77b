package aniparse

import "testing"

func TestTokenizeToradora(t *testing.T) {
	input := "[TaigaSubs]_Toradora!_(2008)_-_01v2_-_Tiger_and_Dragon_[1280x720_H.264_FLAC][1234ABCD]"

	type expected struct {
		kind     tokenKind
		value    string
		enclosed bool
	}
	want := []expected{
		{tokenOpenBracket, "[", false},
		{tokenText, "TaigaSubs", true},
		{tokenCloseBracket, "]", false},
		{tokenDelimiter, "_", false},
		{tokenText, "Toradora!", false},
		{tokenDelimiter, "_", false},
		{tokenOpenBracket, "(", false},
		{tokenNumber, "2008", true},
		{tokenCloseBracket, ")", false},
		{tokenDelimiter, "_", false},
		{tokenDelimiter, "-", false},
		{tokenDelimiter, "_", false},
		{tokenText, "01v2", false},
		{tokenDelimiter, "_", false},
		{tokenDelimiter, "-", false},
		{tokenDelimiter, "_", false},
		{tokenText, "Tiger", false},
		{tokenDelimiter, "_", false},
		{tokenText, "and", false},
		{tokenDelimiter, "_", false},
		{tokenText, "Dragon", false},
		{tokenDelimiter, "_", false},
		{tokenOpenBracket, "[", false},
		{tokenText, "1280x720", true},
		{tokenDelimiter, "_", true},
		{tokenKeyword, "H.264", true},
		{tokenDelimiter, "_", true},
		{tokenKeyword, "FLAC", true},
		{tokenCloseBracket, "]", false},
		{tokenOpenBracket, "[", false},
		{tokenText, "1234ABCD", true},
		{tokenCloseBracket, "]", false},
	}

	tokens := tokenize(input)
	if len(tokens) != len(want) {
		t.Fatalf("tokenize() returned %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		got := tokens[i]
		if got.kind != w.kind || got.value != w.value || got.isEnclosed != w.enclosed {
			t.Errorf("token %d = {%v %q enclosed=%v}, want {%v %q enclosed=%v}",
				i, got.kind, got.value, got.isEnclosed, w.kind, w.value, w.enclosed)
		}
		if got.position != i {
			t.Errorf("token %d has position %d", i, got.position)
		}
	}
}

func TestTokenizeFusesNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string // the fused token value expected in the stream
	}{
		{"dot", "Evangelion_1.11_You_Are", "1.11"},
		{"dash", "009-1_The_End", "009-1"},
		{"plus", "Eps_01+02", "01+02"},
		{"no dot n", "Sakura_No.2", "No.2"},
		{"season episode", "Show.S01.E03.mkv", "S01.E03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(tt.input)
			found := false
			for _, tok := range tokens {
				if tok.value == tt.value && tok.kind == tokenText {
					found = true
					break
				}
			}
			if !found {
				var values []string
				for _, tok := range tokens {
					values = append(values, tok.value)
				}
				t.Errorf("tokenize(%q) = %q, missing fused token %q", tt.input, values, tt.value)
			}
		})
	}
}

func TestTokenizeFusionKeepsWordsApart(t *testing.T) {
	// Textual neighbours must not be fused across delimiters.
	tokens := tokenize("Show.Name.mkv")
	for _, tok := range tokens {
		if tok.kind == tokenText && tok.value != "Show" && tok.value != "Name" {
			t.Errorf("unexpected fused token %q", tok.value)
		}
	}
}

func TestTokenizeNoBrackets(t *testing.T) {
	tokens := tokenize("Aharen-san wa Hakarenai 05")
	for i, tok := range tokens {
		if tok.isEnclosed {
			t.Errorf("token %d %q unexpectedly enclosed", i, tok.value)
		}
	}
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		input   string
		matched string // "" means no match
		kind    keywordKind
	}{
		{"FLAC]", "FLAC", keywordAudioCodec},
		{"flac_rest", "flac", keywordAudioCodec},
		{"H.264_", "H.264", keywordVideoCodec},
		{"Dolby TrueHD]", "Dolby TrueHD", keywordAudioChannels},
		{"Dual Audio]", "Dual Audio", keywordAudioLanguage},
		{"1080p", "1080p", keywordVideoResolution},
		// Unbounded resolutions match even when text follows.
		{"1080pX", "1080p", keywordVideoResolution},
		// Bounded keywords need a boundary...
		{"FLACY", "", 0},
		// ...unless ambiguous and followed by a digit (e.g. ED2, Season2).
		{"ED2", "ED", keywordEpisodeType},
		{"Season2", "Season", keywordSeason},
		{"Toradora!", "", 0},
	}

	for _, tt := range tests {
		n, k, ok := matchKeyword(tt.input)
		if tt.matched == "" {
			if ok {
				t.Errorf("matchKeyword(%q) matched %q, want no match", tt.input, tt.input[:n])
			}
			continue
		}
		if !ok {
			t.Errorf("matchKeyword(%q) = no match, want %q", tt.input, tt.matched)
			continue
		}
		if got := tt.input[:n]; got != tt.matched || k.kind != tt.kind {
			t.Errorf("matchKeyword(%q) = %q kind=%v, want %q kind=%v", tt.input, got, k.kind, tt.matched, tt.kind)
		}
	}
}

func TestCombineTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		keep  bool
		want  string
	}{
		{"underscores become spaces", "Tiger_and_Dragon", false, "Tiger and Dragon"},
		{"dots become spaces without other delimiters", "Show.Name", false, "Show Name"},
		{"dots kept next to spaces", "Show Name.Extra", false, "Show Name.Extra"},
		{"trims dashes and spaces", "_-_Tiger_-_", false, "Tiger"},
		{"keeps everything verbatim", "Dual_Audio", true, "Dual_Audio"},
		{"ampersand kept", "Tiger & Dragon", false, "Tiger & Dragon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := combineTokens(tokenize(tt.input), tt.keep)
			if got != tt.want {
				t.Errorf("combineTokens(%q, keep=%v) = %q, want %q", tt.input, tt.keep, got, tt.want)
			}
		})
	}
}

func TestFusionIdempotent(t *testing.T) {
	// Re-running the fusion pass over fused output must not change it.
	input := "Evangelion_1.11_009-1_01+02"
	tokens := tokenize(input)
	before := make([]string, len(tokens))
	for i, tok := range tokens {
		before[i] = tok.value
	}

	fuseTokens(input, tokens)
	for i, tok := range tokens {
		if tok.kind == tokenInvalid || tok.value != before[i] {
			t.Fatalf("fusion not idempotent at token %d: %q -> %q", i, before[i], tok.value)
		}
	}
}
