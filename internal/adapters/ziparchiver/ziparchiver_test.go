package ziparchiver

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeZip creates a zip at path with the given name -> content entries,
// in the given order.
func writeZip(t *testing.T, path string, names []string, contents map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating zip: %v", err)
	}
	w := zip.NewWriter(f)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(contents[name])); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing zip file: %v", err)
	}
}

func TestExtractRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "export.zip")

	names := []string{"conversations.json", "assets/image.txt", "README.txt"}
	contents := map[string]string{
		"conversations.json": `[{"id":1},{"id":2}]`,
		"assets/image.txt":   "asset data",
		"README.txt":         "hello\nworld\n",
	}
	writeZip(t, zipPath, names, contents)

	destDir := filepath.Join(tempDir, "out")
	a := New()
	entries, err := a.Extract(zipPath, destDir)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(entries) != len(names) {
		t.Fatalf("extracted %d entries, expected %d", len(entries), len(names))
	}

	// Order matches the archive's central directory
	for i, name := range names {
		if entries[i].Name != name {
			t.Errorf("entries[%d] = %s, expected %s", i, entries[i].Name, name)
		}
		if entries[i].Size != int64(len(contents[name])) {
			t.Errorf("entries[%d].Size = %d, expected %d", i, entries[i].Size, len(contents[name]))
		}
	}

	// Every entry landed at its recorded relative path with intact content
	for name, content := range contents {
		data, err := os.ReadFile(filepath.Join(destDir, name))
		if err != nil {
			t.Errorf("reading extracted %s: %v", name, err)
			continue
		}
		if string(data) != content {
			t.Errorf("%s content = %q, expected %q", name, data, content)
		}
	}
}

func TestExtractRejectsPathTraversal(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "evil.zip")
	writeZip(t, zipPath, []string{"../evil.txt"}, map[string]string{"../evil.txt": "pwned"})

	destDir := filepath.Join(tempDir, "nested", "out")
	a := New()
	_, err := a.Extract(zipPath, destDir)
	if err == nil {
		t.Fatal("expected error for traversal entry")
	}

	// Nothing may be written outside the destination
	if _, err := os.Stat(filepath.Join(tempDir, "nested", "evil.txt")); !os.IsNotExist(err) {
		t.Error("traversal entry was written outside the destination")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "evil.txt")); !os.IsNotExist(err) {
		t.Error("traversal entry escaped to the temp root")
	}
}

func TestExtractCorruptArchive(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "broken.zip")
	if err := os.WriteFile(zipPath, []byte("this is not a zip"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	a := New()
	if _, err := a.Extract(zipPath, filepath.Join(tempDir, "out")); err == nil {
		t.Error("expected error for corrupt archive")
	}
	if _, err := a.List(zipPath); err == nil {
		t.Error("expected List error for corrupt archive")
	}
}

func TestListSkipsDirectories(t *testing.T) {
	tempDir := t.TempDir()
	zipPath := filepath.Join(tempDir, "export.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("creating zip: %v", err)
	}
	w := zip.NewWriter(f)
	if _, err := w.Create("assets/"); err != nil {
		t.Fatalf("creating dir entry: %v", err)
	}
	fw, err := w.Create("assets/a.txt")
	if err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	if _, err := fw.Write([]byte("data")); err != nil {
		t.Fatalf("writing entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}

	a := New()
	entries, err := a.List(zipPath)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "assets/a.txt" {
		t.Errorf("entries = %+v, expected only assets/a.txt", entries)
	}
	if entries[0].Size != 4 {
		t.Errorf("Size = %d, expected 4", entries[0].Size)
	}
}
