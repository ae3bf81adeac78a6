package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mcdonaldj/exportscan/internal/adapters/tuisvc"
	"github.com/mcdonaldj/exportscan/internal/config"
	"github.com/mcdonaldj/exportscan/internal/metadata"
	"github.com/mcdonaldj/exportscan/internal/ports"
)

// View represents the current view state
type View int

const (
	DatasetsView View = iota
	FilesView
)

// Model is the main TUI model
type Model struct {
	svc      ports.TUIService
	config   *config.Config
	view     View
	width    int
	height   int
	quitting bool

	// Datasets view
	datasets        []ports.TUIDatasetInfo
	datasetCursor   int
	selectedDataset string

	// Files view
	files      []ports.TUIFileInfo
	fileCursor int

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// NewModel creates a TUI model backed by the real service.
func NewModel() (*Model, error) {
	return NewModelWithService(tuisvc.New())
}

// NewModelWithService creates a TUI model with an injected service.
func NewModelWithService(svc ports.TUIService) (*Model, error) {
	cfg, err := svc.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	m := &Model{
		svc:    svc,
		config: cfg,
		view:   DatasetsView,
	}

	if err := m.loadDatasets(); err != nil {
		return nil, err
	}

	return m, nil
}

// loadDatasets loads all extraction datasets
func (m *Model) loadDatasets() error {
	found, err := m.svc.ListDatasets(m.config)
	if err != nil {
		return err
	}
	m.datasets = found
	if m.datasetCursor >= len(m.datasets) {
		m.datasetCursor = 0
	}
	return nil
}

// loadFiles loads per-file metadata for the selected dataset
func (m *Model) loadFiles() error {
	files, err := m.svc.ListFiles(m.selectedDataset)
	if err != nil {
		return err
	}
	m.files = files
	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Enter):
			if m.view == DatasetsView && len(m.datasets) > 0 {
				m.selectedDataset = m.datasets[m.datasetCursor].Path
				if err := m.loadFiles(); err != nil {
					m.statusMsg = fmt.Sprintf("Error: %v", err)
					m.statusErr = true
				} else {
					m.view = FilesView
					m.fileCursor = 0
				}
			}

		case key.Matches(msg, keys.Back):
			if m.view == FilesView {
				m.view = DatasetsView
				m.files = nil
				m.fileCursor = 0
			}

		case key.Matches(msg, keys.Refresh):
			var err error
			if m.view == DatasetsView {
				err = m.loadDatasets()
			} else {
				err = m.loadFiles()
			}
			if err != nil {
				m.statusMsg = fmt.Sprintf("Refresh failed: %v", err)
				m.statusErr = true
			} else {
				m.statusMsg = "Refreshed"
			}
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.view {
	case DatasetsView:
		m.datasetCursor += delta
		if m.datasetCursor < 0 {
			m.datasetCursor = 0
		}
		if m.datasetCursor >= len(m.datasets) {
			m.datasetCursor = len(m.datasets) - 1
		}
	case FilesView:
		m.fileCursor += delta
		if m.fileCursor < 0 {
			m.fileCursor = 0
		}
		if m.fileCursor >= len(m.files) {
			m.fileCursor = len(m.files) - 1
		}
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.view {
	case DatasetsView:
		content = m.renderDatasetsView()
	case FilesView:
		content = m.renderFilesView()
	}

	return appStyle.Render(content)
}

func (m *Model) renderDatasetsView() string {
	var b strings.Builder

	// Title
	title := titleStyle.Render(" 📦 exportscan ")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Header
	header := fmt.Sprintf("  %-38s %10s %8s %s",
		"DATASET", "SIZE", "FILES", "EXTRACTED")
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 74)))
	b.WriteString("\n")

	if len(m.datasets) == 0 {
		b.WriteString(dimStyle.Render("  No datasets yet. Run: exportscan process <archive.zip>"))
		b.WriteString("\n")
	}

	// List items
	visibleHeight := m.height - 10
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	start := 0
	if m.datasetCursor >= visibleHeight {
		start = m.datasetCursor - visibleHeight + 1
	}

	for i := start; i < len(m.datasets) && i < start+visibleHeight; i++ {
		ds := m.datasets[i]
		cursor := "  "
		style := normalStyle
		if i == m.datasetCursor {
			cursor = "▸ "
			style = selectedStyle
		}

		size := metadata.FormatSize(ds.TotalSize)
		if ds.TotalSize == 0 {
			size = "-"
		}

		line := fmt.Sprintf("%s%-38s %10s %8d %s",
			cursor, truncate(ds.Name, 38), size, ds.FileCount, relativeTime(ds.CreatedAt))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	// Pad to fixed height
	for i := len(m.datasets); i < visibleHeight; i++ {
		b.WriteString("\n")
	}

	// Status
	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	// Help
	help := "[↑/↓] navigate  [enter] files  [r] refresh  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) renderFilesView() string {
	var b strings.Builder

	// Title
	title := titleStyle.Render(fmt.Sprintf(" 📦 %s ", truncate(m.selectedDataset, 50)))
	b.WriteString(title)
	b.WriteString("\n\n")

	// Header
	header := fmt.Sprintf("  %-40s %10s %8s %s",
		"FILE", "SIZE", "LINES", "JSON SHAPE")
	b.WriteString(dimStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 78)))
	b.WriteString("\n")

	if len(m.files) == 0 {
		b.WriteString(dimStyle.Render("  Dataset is empty"))
		b.WriteString("\n")
	}

	// List items
	visibleHeight := m.height - 10
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	start := 0
	if m.fileCursor >= visibleHeight {
		start = m.fileCursor - visibleHeight + 1
	}

	for i := start; i < len(m.files) && i < start+visibleHeight; i++ {
		f := m.files[i]
		cursor := "  "
		style := normalStyle
		if i == m.fileCursor {
			cursor = "▸ "
			style = selectedStyle
		}

		lines := fmt.Sprintf("%d", f.Lines)
		if f.Binary {
			lines = "binary"
		}
		shape := f.Shape
		if shape == "" {
			shape = "-"
		}

		line := fmt.Sprintf("%s%-40s %10s %8s %s",
			cursor, truncate(f.Name, 40), f.SizeHuman, lines, shape)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	// Pad to fixed height
	for i := len(m.files); i < visibleHeight; i++ {
		b.WriteString("\n")
	}

	// Status
	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	}
	b.WriteString("\n")

	// Help
	help := "[↑/↓] navigate  [esc] back  [r] refresh  [q] quit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// Run starts the TUI program.
func Run() error {
	m, err := NewModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Helper functions
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func relativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
