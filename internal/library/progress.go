package library

import (
	"time"
)

// ScanProgress represents real-time scan progress
type ScanProgress struct {
	Stage      string  // "counting_files", "scanning", "complete"
	Current    int     // Current file number
	Total      int     // Total files
	Percentage float64 // 0-100
	Message    string  // Human-readable status

	// Statistics
	FilesParsed   int
	FilesUnparsed int

	// Timing
	StartTime      time.Time
	ElapsedSeconds int
}

// ProgressReporter helps send progress updates over a channel without
// flooding the UI. Updates are throttled to minInterval; Start and
// Complete always go through.
type ProgressReporter struct {
	ch        chan<- ScanProgress
	startTime time.Time
	total     int

	filesParsed   int
	filesUnparsed int

	minInterval time.Duration
	lastSent    time.Time
}

// NewProgressReporter creates a reporter with the given minimum interval
// between UI updates. A nil channel yields a no-op reporter.
func NewProgressReporter(ch chan<- ScanProgress, minInterval time.Duration) *ProgressReporter {
	return &ProgressReporter{
		ch:          ch,
		startTime:   time.Now(),
		minInterval: minInterval,
	}
}

// Start sends the initial progress with the total file count
func (pr *ProgressReporter) Start(total int, message string) {
	if pr == nil || pr.ch == nil {
		return
	}
	pr.total = total
	pr.ch <- pr.build("counting_files", 0, message)
}

// Update sends a throttled progress update for the scanning stage
func (pr *ProgressReporter) Update(current int, message string) {
	if pr == nil || pr.ch == nil {
		return
	}
	if pr.minInterval > 0 && time.Since(pr.lastSent) < pr.minInterval {
		return
	}
	pr.lastSent = time.Now()
	pr.ch <- pr.build("scanning", current, message)
}

// Complete sends the final progress message, bypassing throttling
func (pr *ProgressReporter) Complete(message string) {
	if pr == nil || pr.ch == nil {
		return
	}
	progress := pr.build("complete", pr.total, message)
	progress.Percentage = 100.0
	pr.ch <- progress
}

// CountParsed records a successfully parsed file
func (pr *ProgressReporter) CountParsed() {
	if pr != nil {
		pr.filesParsed++
	}
}

// CountUnparsed records a file whose name yielded no usable title
func (pr *ProgressReporter) CountUnparsed() {
	if pr != nil {
		pr.filesUnparsed++
	}
}

func (pr *ProgressReporter) build(stage string, current int, message string) ScanProgress {
	percentage := 0.0
	if pr.total > 0 {
		percentage = float64(current) / float64(pr.total) * 100.0
	}
	return ScanProgress{
		Stage:          stage,
		Current:        current,
		Total:          pr.total,
		Percentage:     percentage,
		Message:        message,
		FilesParsed:    pr.filesParsed,
		FilesUnparsed:  pr.filesUnparsed,
		StartTime:      pr.startTime,
		ElapsedSeconds: int(time.Since(pr.startTime).Seconds()),
	}
}
