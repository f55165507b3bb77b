package library

import "testing"

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/path/Show.S01E01.mkv", true},
		{"/path/Show.S01E01.MKV", true},
		{"/path/movie.mp4", true},
		{"/path/old.rmvb", true},
		{"/path/notes.txt", false},
		{"/path/subs.srt", false},
		{"/path/noext", false},
	}

	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.expected {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}
