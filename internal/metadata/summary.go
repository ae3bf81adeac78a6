package metadata

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileFailure records one file that could not be analyzed.
type FileFailure struct {
	Path string
	Err  error
}

// ExtStat aggregates count and bytes for one file extension.
type ExtStat struct {
	Count int
	Bytes int64
}

// AggregateSummary combines metadata across a file set. Per-file failures
// are collected, never aborting the whole summarization.
type AggregateSummary struct {
	Files       []*FileMetadata
	Failures    []FileFailure
	TotalBytes  int64
	TotalLines  int
	JSONFiles   int
	ByExtension map[string]ExtStat
}

// Summarize analyzes every path in the set and aggregates the results.
// A file that errors is recorded as a failure; totals reflect only the
// successfully analyzed files.
func (a *Analyzer) Summarize(paths []string) *AggregateSummary {
	summary := &AggregateSummary{
		ByExtension: make(map[string]ExtStat),
	}

	for _, path := range paths {
		meta, err := a.Analyze(path)
		if err != nil {
			summary.Failures = append(summary.Failures, FileFailure{Path: path, Err: err})
			continue
		}

		summary.Files = append(summary.Files, meta)
		summary.TotalBytes += meta.SizeBytes
		summary.TotalLines += meta.Lines
		if meta.Shape != nil {
			summary.JSONFiles++
		}

		ext := filepath.Ext(path)
		if ext == "" {
			ext = "(none)"
		}
		stat := summary.ByExtension[ext]
		stat.Count++
		stat.Bytes += meta.SizeBytes
		summary.ByExtension[ext] = stat
	}

	return summary
}

// Report renders the combined textual report: each file's summary line
// followed by failures and totals.
func (s *AggregateSummary) Report() string {
	var b strings.Builder

	for _, meta := range s.Files {
		fmt.Fprintf(&b, "  %s\n", meta.Display())
	}

	if len(s.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "  %s: %v\n", f.Path, f.Err)
		}
	}

	fmt.Fprintf(&b, "\nTotals: %d files, %s, %d lines, %d JSON\n",
		len(s.Files), FormatSize(s.TotalBytes), s.TotalLines, s.JSONFiles)

	if len(s.ByExtension) > 0 {
		exts := make([]string, 0, len(s.ByExtension))
		for ext := range s.ByExtension {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		b.WriteString("By type:")
		for _, ext := range exts {
			stat := s.ByExtension[ext]
			fmt.Fprintf(&b, " %s x%d (%s)", ext, stat.Count, FormatSize(stat.Bytes))
		}
		b.WriteString("\n")
	}

	return b.String()
}
