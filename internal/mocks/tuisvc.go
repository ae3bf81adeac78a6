package mocks

import (
	"github.com/mcdonaldj/exportscan/internal/config"
	"github.com/mcdonaldj/exportscan/internal/ports"
)

// MockTUIService implements ports.TUIService for testing.
type MockTUIService struct {
	// ConfigResult is the config to return from LoadConfig
	ConfigResult *config.Config
	// ConfigError is the error to return from LoadConfig
	ConfigError error

	// Datasets is the list of datasets to return
	Datasets []ports.TUIDatasetInfo
	// DatasetsError is the error to return from ListDatasets
	DatasetsError error

	// FileLists maps dataset paths to their file metadata
	FileLists map[string][]ports.TUIFileInfo
	// FilesError is the error to return from ListFiles
	FilesError error

	// Call tracking
	LoadConfigCalls   int
	ListDatasetsCalls int
	ListFilesCalls    []string
}

// NewMockTUIService creates a new mock TUI service.
func NewMockTUIService() *MockTUIService {
	return &MockTUIService{
		ConfigResult: &config.Config{},
		FileLists:    make(map[string][]ports.TUIFileInfo),
	}
}

// LoadConfig loads the application configuration.
func (m *MockTUIService) LoadConfig() (*config.Config, error) {
	m.LoadConfigCalls++
	if m.ConfigError != nil {
		return nil, m.ConfigError
	}
	return m.ConfigResult, nil
}

// ListDatasets returns all extraction datasets.
func (m *MockTUIService) ListDatasets(cfg *config.Config) ([]ports.TUIDatasetInfo, error) {
	m.ListDatasetsCalls++
	if m.DatasetsError != nil {
		return nil, m.DatasetsError
	}
	return m.Datasets, nil
}

// ListFiles returns per-file metadata for a dataset.
func (m *MockTUIService) ListFiles(datasetPath string) ([]ports.TUIFileInfo, error) {
	m.ListFilesCalls = append(m.ListFilesCalls, datasetPath)
	if m.FilesError != nil {
		return nil, m.FilesError
	}
	if files, ok := m.FileLists[datasetPath]; ok {
		return files, nil
	}
	return nil, nil
}

// Compile-time check that MockTUIService implements ports.TUIService.
var _ ports.TUIService = (*MockTUIService)(nil)
