package mocks

import (
	"github.com/mcdonaldj/exportscan/internal/ports"
)

// MockArchiver implements ports.Archiver for testing.
type MockArchiver struct {
	// ExtractCalls records calls to Extract
	ExtractCalls []ExtractCall
	// ListCalls records zip paths passed to List
	ListCalls []string
	// Entries is the entry listing returned by both Extract and List
	Entries []ports.Entry
	// ExtractPartial, when set with ExtractErr, is returned instead of
	// Entries to simulate a mid-extraction write failure
	ExtractPartial []ports.Entry
	// Errors maps method names to errors
	Errors map[string]error
}

// ExtractCall records parameters of an Extract call.
type ExtractCall struct {
	ZipPath string
	DestDir string
}

// NewMockArchiver creates a new mock archiver.
func NewMockArchiver() *MockArchiver {
	return &MockArchiver{
		Errors: make(map[string]error),
	}
}

// Extract extracts a zip archive to destDir.
func (m *MockArchiver) Extract(zipPath, destDir string) ([]ports.Entry, error) {
	m.ExtractCalls = append(m.ExtractCalls, ExtractCall{
		ZipPath: zipPath,
		DestDir: destDir,
	})
	if err, ok := m.Errors["Extract"]; ok {
		return m.ExtractPartial, err
	}
	return m.Entries, nil
}

// List returns the archive's entries without extracting.
func (m *MockArchiver) List(zipPath string) ([]ports.Entry, error) {
	m.ListCalls = append(m.ListCalls, zipPath)
	if err, ok := m.Errors["List"]; ok {
		return nil, err
	}
	return m.Entries, nil
}

// Compile-time check that MockArchiver implements ports.Archiver.
var _ ports.Archiver = (*MockArchiver)(nil)
