package datasets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcdonaldj/exportscan/internal/adapters/osfs"
	"github.com/mcdonaldj/exportscan/internal/extract"
)

func mkDataset(t *testing.T, root, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dataset dir: %v", err)
	}
	for file, content := range files {
		path := filepath.Join(dir, file)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating parent dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", file, err)
		}
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	root := t.TempDir()

	mkDataset(t, root, "2025-07-20_Sunday_12-04-32", map[string]string{
		"conversations.json": `[1,2]`,
		"README.txt":         "hi\n",
	})
	mkDataset(t, root, "2025-07-21_Monday_09-30-00", map[string]string{
		"user.json": `{}`,
	})
	// Collision-suffixed dataset from a same-second run
	mkDataset(t, root, "2025-07-20_Sunday_12-04-32_2", map[string]string{
		"a.txt": "x",
	})
	// Not datasets: wrong name, plain file
	mkDataset(t, root, "scratch", map[string]string{"x": "y"})
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("n"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	found, err := List(osfs.New(), root)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(found) != 3 {
		t.Fatalf("found %d datasets, expected 3: %+v", len(found), found)
	}

	// Newest first; the suffixed same-second dataset sorts before its base
	wantOrder := []string{
		"2025-07-21_Monday_09-30-00",
		"2025-07-20_Sunday_12-04-32_2",
		"2025-07-20_Sunday_12-04-32",
	}
	for i, want := range wantOrder {
		if found[i].Name != want {
			t.Errorf("found[%d] = %s, expected %s", i, found[i].Name, want)
		}
	}

	first := found[2]
	if first.FileCount != 2 {
		t.Errorf("FileCount = %d, expected 2", first.FileCount)
	}
	if first.TotalSize != 5+3 {
		t.Errorf("TotalSize = %d, expected 8", first.TotalSize)
	}

	wantTime := time.Date(2025, 7, 20, 12, 4, 32, 0, time.Local)
	if !first.CreatedAt.Equal(wantTime) {
		t.Errorf("CreatedAt = %v, expected %v", first.CreatedAt, wantTime)
	}
}

func TestListMissingRoot(t *testing.T) {
	found, err := List(osfs.New(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("List on missing root: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("found %d datasets in missing root", len(found))
	}
}

func TestFilesWalksNestedTree(t *testing.T) {
	root := t.TempDir()
	name := extract.DirName(time.Date(2025, 7, 20, 12, 4, 32, 0, time.Local))
	mkDataset(t, root, name, map[string]string{
		"conversations.json":  `[]`,
		"assets/img/logo.dat": "bin",
	})

	files, err := Files(osfs.New(), filepath.Join(root, name))
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Files = %d, expected 2: %v", len(files), files)
	}
}
