// Package tuisvc provides the real implementation of ports.TUIService.
package tuisvc

import (
	"github.com/mcdonaldj/exportscan/internal/adapters/osfs"
	"github.com/mcdonaldj/exportscan/internal/config"
	"github.com/mcdonaldj/exportscan/internal/datasets"
	"github.com/mcdonaldj/exportscan/internal/metadata"
	"github.com/mcdonaldj/exportscan/internal/ports"
)

// Service implements ports.TUIService using real filesystem operations.
type Service struct {
	fs ports.FileSystem
}

// New creates a new TUI service.
func New() *Service {
	return &Service{fs: osfs.New()}
}

// LoadConfig loads the application configuration.
func (s *Service) LoadConfig() (*config.Config, error) {
	return config.Load()
}

// ListDatasets returns all extraction datasets under the configured root.
func (s *Service) ListDatasets(cfg *config.Config) ([]ports.TUIDatasetInfo, error) {
	root := config.ExpandPath(cfg.DestinationRoot)

	found, err := datasets.List(s.fs, root)
	if err != nil {
		return nil, err
	}

	result := make([]ports.TUIDatasetInfo, 0, len(found))
	for _, ds := range found {
		result = append(result, ports.TUIDatasetInfo{
			Name:      ds.Name,
			Path:      ds.Path,
			CreatedAt: ds.CreatedAt,
			FileCount: ds.FileCount,
			TotalSize: ds.TotalSize,
		})
	}
	return result, nil
}

// ListFiles returns per-file metadata for every file in a dataset.
// Files that cannot be analyzed are skipped; the TUI shows what it can.
func (s *Service) ListFiles(datasetPath string) ([]ports.TUIFileInfo, error) {
	files, err := datasets.Files(s.fs, datasetPath)
	if err != nil {
		return nil, err
	}

	analyzer := metadata.New(s.fs)
	cfg, err := config.Load()
	if err == nil {
		analyzer.MaxContentBytes = cfg.MaxLineCountBytes
	}

	var result []ports.TUIFileInfo
	for _, path := range files {
		meta, err := analyzer.Analyze(path)
		if err != nil {
			continue
		}
		info := ports.TUIFileInfo{
			Name:      meta.Path,
			Size:      meta.SizeBytes,
			SizeHuman: meta.SizeHuman,
			Lines:     meta.Lines,
			Binary:    meta.Kind == metadata.KindBinary,
		}
		if meta.Shape != nil {
			info.Shape = meta.Shape.Describe()
		}
		result = append(result, info)
	}
	return result, nil
}

// Compile-time check that Service implements ports.TUIService.
var _ ports.TUIService = (*Service)(nil)
