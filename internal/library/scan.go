// Package library walks media library paths and runs every video file name
// through the release-name parser, grouping the results by title.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/Nomadcxx/aniparse"
)

// ParsedFile is a single video file together with the metadata extracted
// from its name.
type ParsedFile struct {
	Path   string          `json:"path"`
	Size   int64           `json:"size"`
	Record aniparse.Record `json:"record"`
}

// TitleGroup collects every file that parsed to the same title.
type TitleGroup struct {
	Title string       `json:"title"`
	Files []ParsedFile `json:"files"`
}

// ScanResult contains all scan results and statistics
type ScanResult struct {
	Files      []ParsedFile `json:"files"`
	Groups     []TitleGroup `json:"groups"`
	Unparsed   []string     `json:"unparsed,omitempty"` // paths with no usable title
	TotalFiles int          `json:"totalFiles"`
}

// Scanner runs library scans with a fixed parser configuration.
type Scanner struct {
	Options aniparse.Options
	Workers int // concurrent parse workers (default: number of CPUs)
	Log     zerolog.Logger
}

// NewScanner creates a scanner with default options and a disabled logger.
func NewScanner() *Scanner {
	return &Scanner{
		Options: aniparse.DefaultOptions(),
		Workers: runtime.NumCPU(),
		Log:     zerolog.Nop(),
	}
}

// Scan walks the library paths and parses every video file name.
// Supports context cancellation for graceful shutdown.
func (s *Scanner) Scan(ctx context.Context, paths []string, progressCh chan<- ScanProgress) (*ScanResult, error) {
	var pr *ProgressReporter
	if progressCh != nil {
		pr = NewProgressReporter(progressCh, 200*time.Millisecond)
	}

	files, err := collectVideoFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	pr.Start(len(files), fmt.Sprintf("Parsing %d video files...", len(files)))
	s.Log.Info().Int("files", len(files)).Strs("paths", paths).Msg("starting library scan")

	parsed, err := s.parseFiles(ctx, files, pr)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Files:      parsed,
		TotalFiles: len(files),
	}
	for _, file := range parsed {
		if file.Record.Title == "" {
			result.Unparsed = append(result.Unparsed, file.Path)
		}
	}
	result.Groups = groupByTitle(parsed)

	pr.Complete(fmt.Sprintf("Parsed %d files into %d titles", len(parsed), len(result.Groups)))
	s.Log.Info().
		Int("files", len(parsed)).
		Int("titles", len(result.Groups)).
		Int("unparsed", len(result.Unparsed)).
		Msg("library scan complete")

	return result, nil
}

// fileEntry is a video file found during the walk stage.
type fileEntry struct {
	path string
	size int64
}

func collectVideoFiles(ctx context.Context, paths []string) ([]fileEntry, error) {
	var files []fileEntry

	for _, libPath := range paths {
		if _, err := os.Stat(libPath); err != nil {
			return nil, fmt.Errorf("library path not accessible: %s: %w", libPath, err)
		}

		err := filepath.Walk(libPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if info.IsDir() || !isVideoFile(path) {
				return nil
			}

			files = append(files, fileEntry{path: path, size: info.Size()})
			return nil
		})

		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", libPath, err)
		}
	}

	return files, nil
}

// parseFiles parses file names using a worker pool. Parsing is pure CPU
// work, so the pool is sized to the CPU count.
func (s *Scanner) parseFiles(ctx context.Context, files []fileEntry, pr *ProgressReporter) ([]ParsedFile, error) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]ParsedFile, len(files))

	var wg sync.WaitGroup
	indexChan := make(chan int, workers)

	var mu sync.Mutex
	processed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				results[index] = s.parseFile(files[index])

				// The reporter is not safe for concurrent use; updates
				// happen under the shared lock.
				mu.Lock()
				processed++
				if results[index].Record.Title == "" {
					pr.CountUnparsed()
				} else {
					pr.CountParsed()
				}
				if processed%5 == 0 {
					pr.Update(processed, fmt.Sprintf("Parsing: %s", filepath.Base(files[index].path)))
				}
				mu.Unlock()
			}
		}()
	}

	var scanErr error
loop:
	for index := range files {
		select {
		case <-ctx.Done():
			scanErr = ctx.Err()
			break loop
		case indexChan <- index:
		}
	}
	close(indexChan)
	wg.Wait()

	if scanErr != nil {
		return nil, scanErr
	}
	return results, nil
}

func (s *Scanner) parseFile(file fileEntry) ParsedFile {
	// The parser expects composed input; file names coming from disk (most
	// notably on macOS) may be decomposed.
	name := norm.NFC.String(filepath.Base(file.path))
	elements := aniparse.ParseWithOptions(name, s.Options)

	s.Log.Debug().Str("file", name).Int("elements", len(elements)).Msg("parsed")

	return ParsedFile{
		Path:   file.path,
		Size:   file.size,
		Record: elements.ToRecord(),
	}
}

func groupByTitle(files []ParsedFile) []TitleGroup {
	groups := make(map[string]*TitleGroup)
	for _, file := range files {
		title := file.Record.Title
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		group, exists := groups[key]
		if !exists {
			group = &TitleGroup{Title: title}
			groups[key] = group
		}
		group.Files = append(group.Files, file)
	}

	result := make([]TitleGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Title < result[j].Title
	})
	return result
}
