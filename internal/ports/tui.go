package ports

import (
	"time"

	"github.com/mcdonaldj/exportscan/internal/config"
)

// TUIDatasetInfo contains extraction-dataset metadata for display.
type TUIDatasetInfo struct {
	Name      string
	Path      string
	CreatedAt time.Time
	FileCount int
	TotalSize int64
}

// TUIFileInfo contains per-file metadata for display.
type TUIFileInfo struct {
	Name      string
	Size      int64
	SizeHuman string
	Lines     int
	Binary    bool
	Shape     string // e.g. "array (5 items)", empty when not JSON
}

// TUIService provides operations needed by the TUI.
// This abstraction allows the TUI to be tested without real filesystem operations.
type TUIService interface {
	// LoadConfig loads the application configuration.
	LoadConfig() (*config.Config, error)

	// ListDatasets returns all extraction datasets under the destination root.
	ListDatasets(cfg *config.Config) ([]TUIDatasetInfo, error)

	// ListFiles returns per-file metadata for every file in a dataset.
	ListFiles(datasetPath string) ([]TUIFileInfo, error)
}
