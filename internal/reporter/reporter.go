// Package reporter persists library scan results as timestamped JSON
// reports and summarizes them.
package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Nomadcxx/aniparse/internal/library"
)

// Report represents a completed library scan
type Report struct {
	Timestamp    time.Time          `json:"timestamp"`
	LibraryPaths []string           `json:"libraryPaths"`
	Result       library.ScanResult `json:"result"`
}

// Generate writes a timestamped report file and returns its path
func Generate(report Report) (string, error) {
	reportDir := getReportDir()
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := report.Timestamp.Format("20060102_150405")
	filename := filepath.Join(reportDir, timestamp+".json")

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return filename, nil
}

// Load reads a report file
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("failed to parse report: %w", err)
	}

	return report, nil
}

// getReportDir returns the report directory path
func getReportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/aniparse/scan_results"
	}
	return filepath.Join(home, ".local/share/aniparse/scan_results")
}

// CleanupOldReports removes report files older than 30 days
func CleanupOldReports() error {
	reportDir := getReportDir()
	entries, err := os.ReadDir(reportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read report directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(reportDir, entry.Name()))
		}
	}

	return nil
}

// TitleSummary is a per-title rollup used in report output
type TitleSummary struct {
	Title     string
	FileCount int
	TotalSize int64
}

// Summarize returns the largest title groups first, capped at limit
func Summarize(result library.ScanResult, limit int) []TitleSummary {
	summaries := make([]TitleSummary, 0, len(result.Groups))
	for _, group := range result.Groups {
		summary := TitleSummary{Title: group.Title, FileCount: len(group.Files)}
		for _, file := range group.Files {
			summary.TotalSize += file.Size
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].TotalSize > summaries[j].TotalSize
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// FormatBytes formats byte count to human-readable size
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
