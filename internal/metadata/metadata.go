// Package metadata computes descriptive metadata for extracted export files:
// sizes, line counts, checksums, and the structural shape of JSON content.
package metadata

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mcdonaldj/exportscan/internal/ports"
)

// ErrFileUnreadable indicates a file could not be stat'ed or read.
var ErrFileUnreadable = errors.New("file unreadable")

// ContentKind classifies what a file's bytes turned out to be.
type ContentKind string

const (
	// KindText is line-countable UTF-8 content that is not valid JSON.
	KindText ContentKind = "text"
	// KindJSON is content that parsed as JSON.
	KindJSON ContentKind = "json"
	// KindBinary is content that failed text decoding (NUL bytes or invalid UTF-8).
	KindBinary ContentKind = "binary"
	// KindSkipped means content analysis was skipped because the file
	// exceeded the configured size cap. Only the size fields are set.
	KindSkipped ContentKind = "skipped"
)

// JSONShape is the top-level structural classification of parsed JSON content.
type JSONShape struct {
	Type     string         // "object", "array" or "scalar"
	Keys     int            // key count, objects only
	Items    int            // element count, arrays only
	ElemType string         // common element type for homogeneous arrays
	TypeHist map[string]int // element type histogram for heterogeneous arrays
}

// Describe renders the shape for display, e.g. "object (2 keys)" or
// "array (3 items, number)".
func (s *JSONShape) Describe() string {
	switch s.Type {
	case "object":
		return fmt.Sprintf("object (%d keys)", s.Keys)
	case "array":
		if s.Items == 0 {
			return "array (empty)"
		}
		if s.ElemType != "" {
			return fmt.Sprintf("array (%d items, %s)", s.Items, s.ElemType)
		}
		types := make([]string, 0, len(s.TypeHist))
		for t := range s.TypeHist {
			types = append(types, t)
		}
		sort.Strings(types)
		parts := make([]string, 0, len(types))
		for _, t := range types {
			parts = append(parts, fmt.Sprintf("%s:%d", t, s.TypeHist[t]))
		}
		return fmt.Sprintf("array (%d items; %s)", s.Items, strings.Join(parts, ", "))
	default:
		return "scalar"
	}
}

// FileMetadata is an immutable snapshot of one file's descriptive metadata,
// computed from a single full read of the file at analysis time.
type FileMetadata struct {
	Path      string
	SizeBytes int64
	SizeHuman string
	Lines     int // meaningful only for KindText and KindJSON
	Kind      ContentKind
	Shape     *JSONShape // nil unless the content parsed as JSON
	SHA256    string     // empty for KindSkipped
}

// Display renders the per-file summary line.
func (m *FileMetadata) Display() string {
	switch m.Kind {
	case KindBinary:
		return fmt.Sprintf("%s: %s, binary", m.Path, m.SizeHuman)
	case KindSkipped:
		return fmt.Sprintf("%s: %s, content not analyzed (over size cap)", m.Path, m.SizeHuman)
	}
	line := fmt.Sprintf("%s: %s, %d lines", m.Path, m.SizeHuman, m.Lines)
	if m.Shape != nil {
		line += ", JSON " + m.Shape.Describe()
	}
	return line
}

// sizeUnits are binary-prefixed (1024 base).
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize formats a byte count with the largest binary prefix where the
// value stays >= 1, at two-decimal precision. Zero formats as "0.00 B".
func FormatSize(bytes int64) string {
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// CountLines counts line-terminator-delimited segments. Trailing content
// without a final newline still counts as one line; empty content is zero.
func CountLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// AnalyzeJSON classifies the top-level structure of JSON content.
// Returns nil when the content is not valid JSON; that is a structural
// fact about the file, not an error.
func AnalyzeJSON(content []byte) *JSONShape {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		return &JSONShape{Type: "object", Keys: len(t)}
	case []any:
		shape := &JSONShape{Type: "array", Items: len(t)}
		hist := make(map[string]int)
		for _, elem := range t {
			hist[jsonTypeName(elem)]++
		}
		if len(hist) == 1 {
			for name := range hist {
				shape.ElemType = name
			}
		} else if len(hist) > 1 {
			shape.TypeHist = hist
		}
		return shape
	default:
		return &JSONShape{Type: "scalar"}
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// isBinary reports whether content fails permissive text decoding.
func isBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) != -1 || !utf8.Valid(content)
}

// Analyzer computes file metadata. Stateless; safe for concurrent use
// across independent files.
type Analyzer struct {
	fs ports.FileSystem

	// MaxContentBytes caps content analysis; files larger than this report
	// size only. Zero means no cap.
	MaxContentBytes int64
}

// New creates an Analyzer backed by the given filesystem.
func New(fs ports.FileSystem) *Analyzer {
	return &Analyzer{fs: fs}
}

// Analyze computes metadata for a single file from one full content read.
func (a *Analyzer) Analyze(path string) (*FileMetadata, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}

	meta := &FileMetadata{
		Path:      path,
		SizeBytes: info.Size(),
		SizeHuman: FormatSize(info.Size()),
	}

	if a.MaxContentBytes > 0 && info.Size() > a.MaxContentBytes {
		meta.Kind = KindSkipped
		return meta, nil
	}

	content, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}

	sum := sha256.Sum256(content)
	meta.SHA256 = hex.EncodeToString(sum[:])

	if isBinary(content) {
		meta.Kind = KindBinary
		return meta, nil
	}

	meta.Lines = CountLines(content)
	meta.Shape = AnalyzeJSON(content)
	if meta.Shape != nil {
		meta.Kind = KindJSON
	} else {
		meta.Kind = KindText
	}

	return meta, nil
}
