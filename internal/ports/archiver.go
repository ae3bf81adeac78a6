package ports

// Entry describes a single entry read from an archive's central directory.
type Entry struct {
	// Name is the relative path recorded in the archive.
	Name string
	// Size is the uncompressed size in bytes.
	Size int64
}

// Archiver abstracts zip archive operations for testability.
// Production code uses ZipArchiver adapter; tests use MockArchiver.
type Archiver interface {
	// Extract extracts every entry of the archive at zipPath into destDir,
	// preserving the relative paths recorded in the archive. Entries are
	// extracted sequentially in central-directory order and the returned
	// slice matches that order. Entry paths resolving outside destDir are
	// rejected; no file is ever written outside destDir.
	//
	// On a mid-extraction write failure the entries extracted so far are
	// returned alongside the error; partial output is left in place.
	Extract(zipPath, destDir string) ([]Entry, error)

	// List returns the archive's file entries in central-directory order
	// without extracting anything. Directory entries are skipped.
	List(zipPath string) ([]Entry, error)
}
