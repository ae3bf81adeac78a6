// Package datasets enumerates extraction output directories by their
// timestamp naming convention. Directory names are the only persisted state;
// no index or manifest file is maintained.
package datasets

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/mcdonaldj/exportscan/internal/extract"
	"github.com/mcdonaldj/exportscan/internal/ports"
)

// namePattern matches dataset directory names, with an optional
// collision suffix: 2025-07-20_Sunday_12-04-32 or ..._12-04-32_2.
var namePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}_[A-Za-z]+_\d{2}-\d{2}-\d{2})(_\d+)?$`)

// Dataset describes one previously created extraction directory.
type Dataset struct {
	Name      string
	Path      string
	CreatedAt time.Time
	FileCount int
	TotalSize int64
}

// List returns the extraction datasets directly under root, newest first.
// A missing root is not an error; it simply holds no datasets.
func List(fs ports.FileSystem, root string) ([]Dataset, error) {
	entries, err := fs.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var result []Dataset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := namePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}

		createdAt, err := time.ParseInLocation(extract.DirLayout, m[1], time.Local)
		if err != nil {
			continue
		}

		ds := Dataset{
			Name:      entry.Name(),
			Path:      filepath.Join(root, entry.Name()),
			CreatedAt: createdAt,
		}
		ds.FileCount, ds.TotalSize = tally(fs, ds.Path)
		result = append(result, ds)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Name > result[j].Name
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Files returns every regular file under a dataset directory, in walk order.
func Files(fs ports.FileSystem, datasetPath string) ([]string, error) {
	var files []string
	err := fs.Walk(datasetPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// tally counts files and bytes under a dataset directory.
func tally(fs ports.FileSystem, path string) (int, int64) {
	count := 0
	var size int64
	_ = fs.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			count++
			size += info.Size()
		}
		return nil
	})
	return count, size
}
