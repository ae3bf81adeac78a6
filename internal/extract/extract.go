// Package extract implements the archive extraction pipeline: it validates a
// zip export, creates a uniquely named timestamped dataset directory, and
// extracts every entry into it.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mcdonaldj/exportscan/internal/ports"
)

// DirLayout is the time layout for dataset directory names,
// e.g. "2025-07-20_Sunday_12-04-32".
const DirLayout = "2006-01-02_Monday_15-04-05"

// maxSuffix bounds collision disambiguation attempts for a single timestamp.
const maxSuffix = 1000

var (
	// ErrArchiveNotFound indicates the archive path does not reference an existing file.
	ErrArchiveNotFound = errors.New("archive not found")
	// ErrArchiveCorrupt indicates the file exists but is not a readable zip archive.
	ErrArchiveCorrupt = errors.New("archive corrupt or not a zip")
	// ErrDestinationConflict indicates no free dataset directory name could be found.
	ErrDestinationConflict = errors.New("destination directory conflict")
)

// ExtractionResult describes one completed (or partially completed) extraction.
// It is owned by the caller and never mutated after return.
type ExtractionResult struct {
	Dir        string        // dataset directory the archive was extracted into
	Files      []string      // extracted file paths, in archive order
	EntryCount int           // number of extracted files
	TotalBytes int64         // cumulative uncompressed size
	Elapsed    time.Duration // wall time for the extraction pass
	Incomplete bool          // true when a write failure stopped extraction early
}

// Extractor runs archive extractions. Zero-value is not usable; construct with New.
type Extractor struct {
	archiver ports.Archiver
	fs       ports.FileSystem

	// Now is the clock used for dataset directory names. Tests override it.
	Now func() time.Time
}

// New creates an Extractor backed by the given archiver and filesystem.
func New(archiver ports.Archiver, fs ports.FileSystem) *Extractor {
	return &Extractor{
		archiver: archiver,
		fs:       fs,
		Now:      time.Now,
	}
}

// DirName returns the dataset directory name for the given timestamp.
func DirName(t time.Time) string {
	return t.Format(DirLayout)
}

// Extract validates the archive at archivePath and extracts it into a fresh
// timestamped directory under destRoot (created if absent).
//
// Extractor failures abort the operation. The one exception is a write
// failure mid-extraction: partial output is left in place and the returned
// result carries the files written so far with Incomplete set, alongside
// the error.
func (e *Extractor) Extract(archivePath, destRoot string) (*ExtractionResult, error) {
	info, err := e.fs.Stat(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, archivePath)
		}
		return nil, fmt.Errorf("stat archive: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrArchiveNotFound, archivePath)
	}

	// Validate the container before touching the destination.
	if _, err := e.archiver.List(archivePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveCorrupt, err)
	}

	if err := e.fs.MkdirAll(destRoot, 0755); err != nil {
		return nil, fmt.Errorf("creating destination root: %w", err)
	}

	dest, err := e.freshDatasetDir(destRoot)
	if err != nil {
		return nil, err
	}
	if err := e.fs.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("creating dataset directory: %w", err)
	}

	start := time.Now()
	entries, extractErr := e.archiver.Extract(archivePath, dest)

	result := &ExtractionResult{
		Dir:        dest,
		EntryCount: len(entries),
		Elapsed:    time.Since(start),
		Incomplete: extractErr != nil,
	}
	for _, entry := range entries {
		result.Files = append(result.Files, filepath.Join(dest, entry.Name))
		result.TotalBytes += entry.Size
	}

	if extractErr != nil {
		return result, fmt.Errorf("extracting %s: %w", archivePath, extractErr)
	}
	return result, nil
}

// freshDatasetDir picks the first unused timestamped directory name under
// destRoot. Same-second invocations get a numeric suffix (_2, _3, ...).
func (e *Extractor) freshDatasetDir(destRoot string) (string, error) {
	base := DirName(e.Now())

	for i := 1; i <= maxSuffix; i++ {
		name := base
		if i > 1 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		candidate := filepath.Join(destRoot, name)
		if _, err := e.fs.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no free name for %s", ErrDestinationConflict, base)
}
