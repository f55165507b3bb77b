package reporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nomadcxx/aniparse"
	"github.com/Nomadcxx/aniparse/internal/library"
)

func sampleResult() library.ScanResult {
	files := []library.ParsedFile{
		{Path: "/lib/Show/ep1.mkv", Size: 100, Record: aniparse.Record{Title: "Show", Episode: "01"}},
		{Path: "/lib/Show/ep2.mkv", Size: 200, Record: aniparse.Record{Title: "Show", Episode: "02"}},
		{Path: "/lib/Other/ep1.mkv", Size: 50, Record: aniparse.Record{Title: "Other", Episode: "01"}},
	}
	return library.ScanResult{
		Files: files,
		Groups: []library.TitleGroup{
			{Title: "Other", Files: files[2:]},
			{Title: "Show", Files: files[:2]},
		},
		TotalFiles: 3,
	}
}

func TestReportRoundTrip(t *testing.T) {
	report := Report{
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		LibraryPaths: []string{"/lib"},
		Result:       sampleResult(),
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !loaded.Timestamp.Equal(report.Timestamp) {
		t.Errorf("timestamp = %v, want %v", loaded.Timestamp, report.Timestamp)
	}
	if len(loaded.Result.Groups) != 2 {
		t.Errorf("groups = %d, want 2", len(loaded.Result.Groups))
	}
	if loaded.Result.Groups[1].Files[0].Record.Title != "Show" {
		t.Errorf("record lost in round trip: %+v", loaded.Result.Groups[1].Files[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() on missing file should fail")
	}
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(sampleResult(), 0)

	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	// Largest first.
	if summaries[0].Title != "Show" || summaries[0].TotalSize != 300 || summaries[0].FileCount != 2 {
		t.Errorf("summary 0 = %+v", summaries[0])
	}
	if summaries[1].Title != "Other" || summaries[1].TotalSize != 50 {
		t.Errorf("summary 1 = %+v", summaries[1])
	}

	limited := Summarize(sampleResult(), 1)
	if len(limited) != 1 {
		t.Errorf("limited summaries = %d, want 1", len(limited))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{500, "500 B"},
		{1024, "1.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}
