package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mcdonaldj/exportscan/internal/config"
	"github.com/mcdonaldj/exportscan/internal/mocks"
	"github.com/mcdonaldj/exportscan/internal/ports"
)

func testService() *mocks.MockTUIService {
	svc := mocks.NewMockTUIService()
	svc.ConfigResult = &config.Config{DestinationRoot: "/test/extracted"}
	svc.Datasets = []ports.TUIDatasetInfo{
		{Name: "2025-07-21_Monday_09-30-00", Path: "/test/extracted/2025-07-21_Monday_09-30-00",
			CreatedAt: time.Now().Add(-time.Hour), FileCount: 3, TotalSize: 4096},
		{Name: "2025-07-20_Sunday_12-04-32", Path: "/test/extracted/2025-07-20_Sunday_12-04-32",
			CreatedAt: time.Now().Add(-25 * time.Hour), FileCount: 2, TotalSize: 1024},
	}
	svc.FileLists["/test/extracted/2025-07-21_Monday_09-30-00"] = []ports.TUIFileInfo{
		{Name: "conversations.json", Size: 2048, SizeHuman: "2.00 KB", Lines: 120,
			Shape: "array (5 items, object)"},
		{Name: "image.dat", Size: 512, SizeHuman: "512.00 B", Binary: true},
	}
	return svc
}

func TestNewModelWithService(t *testing.T) {
	svc := testService()

	m, err := NewModelWithService(svc)
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	if len(m.datasets) != 2 {
		t.Errorf("datasets = %d, expected 2", len(m.datasets))
	}
	if m.view != DatasetsView {
		t.Errorf("view = %v, expected DatasetsView", m.view)
	}
	if svc.LoadConfigCalls != 1 {
		t.Errorf("LoadConfigCalls = %d, expected 1", svc.LoadConfigCalls)
	}
}

func TestNewModelConfigError(t *testing.T) {
	svc := testService()
	svc.ConfigError = errors.New("bad config")

	if _, err := NewModelWithService(svc); err == nil {
		t.Error("expected error when config fails to load")
	}
}

func TestModelNavigation(t *testing.T) {
	m, err := NewModelWithService(testService())
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	// Test down navigation
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Model)
	if m.datasetCursor != 1 {
		t.Errorf("cursor = %d, expected 1", m.datasetCursor)
	}

	// Clamped at the end
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Model)
	if m.datasetCursor != 1 {
		t.Errorf("cursor = %d, expected clamp at 1", m.datasetCursor)
	}

	// Back up, clamped at zero
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(*Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(*Model)
	if m.datasetCursor != 0 {
		t.Errorf("cursor = %d, expected clamp at 0", m.datasetCursor)
	}
}

func TestEnterOpensFilesView(t *testing.T) {
	svc := testService()
	m, err := NewModelWithService(svc)
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	if m.view != FilesView {
		t.Fatalf("view = %v, expected FilesView", m.view)
	}
	if len(m.files) != 2 {
		t.Errorf("files = %d, expected 2", len(m.files))
	}
	if len(svc.ListFilesCalls) != 1 ||
		svc.ListFilesCalls[0] != "/test/extracted/2025-07-21_Monday_09-30-00" {
		t.Errorf("ListFilesCalls = %v", svc.ListFilesCalls)
	}
}

func TestBackReturnsToDatasets(t *testing.T) {
	m, err := NewModelWithService(testService())
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*Model)

	if m.view != DatasetsView {
		t.Errorf("view = %v, expected DatasetsView after esc", m.view)
	}
	if m.files != nil {
		t.Error("files should be cleared on back")
	}
}

func TestFilesViewError(t *testing.T) {
	svc := testService()
	svc.FilesError = errors.New("walk failed")
	m, err := NewModelWithService(svc)
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	if m.view != DatasetsView {
		t.Errorf("view = %v, expected to stay on DatasetsView", m.view)
	}
	if !m.statusErr || !strings.Contains(m.statusMsg, "walk failed") {
		t.Errorf("statusMsg = %q statusErr = %v", m.statusMsg, m.statusErr)
	}
}

func TestQuit(t *testing.T) {
	m, err := NewModelWithService(testService())
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(*Model)

	if !m.quitting {
		t.Error("quitting should be set")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty while quitting")
	}
}

func TestDatasetsViewRender(t *testing.T) {
	m, err := NewModelWithService(testService())
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}
	m.height = 24
	m.width = 80

	view := m.View()
	for _, want := range []string{"exportscan", "2025-07-21_Monday_09-30-00", "4.00 KB"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFilesViewRender(t *testing.T) {
	m, err := NewModelWithService(testService())
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}
	m.height = 24
	m.width = 80

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*Model)

	view := m.View()
	for _, want := range []string{"conversations.json", "array (5 items, object)", "binary"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRefreshDatasets(t *testing.T) {
	svc := testService()
	m, err := NewModelWithService(svc)
	if err != nil {
		t.Fatalf("NewModelWithService failed: %v", err)
	}

	svc.Datasets = svc.Datasets[:1]
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = updated.(*Model)

	if len(m.datasets) != 1 {
		t.Errorf("datasets = %d after refresh, expected 1", len(m.datasets))
	}
	if m.statusMsg != "Refreshed" {
		t.Errorf("statusMsg = %q, expected Refreshed", m.statusMsg)
	}
}
