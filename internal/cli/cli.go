// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mcdonaldj/exportscan/internal/adapters/osfs"
	"github.com/mcdonaldj/exportscan/internal/adapters/ziparchiver"
	"github.com/mcdonaldj/exportscan/internal/config"
	"github.com/mcdonaldj/exportscan/internal/datasets"
	"github.com/mcdonaldj/exportscan/internal/extract"
	"github.com/mcdonaldj/exportscan/internal/metadata"
	"github.com/mcdonaldj/exportscan/internal/ports"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// ExtractService provides archive extraction for the CLI.
type ExtractService interface {
	Extract(archivePath, destRoot string) (*extract.ExtractionResult, error)
}

// AnalyzeService provides metadata analysis for the CLI.
type AnalyzeService interface {
	Summarize(paths []string) *metadata.AggregateSummary
}

// DatasetService provides dataset enumeration for the CLI.
type DatasetService interface {
	List(root string) ([]datasets.Dataset, error)
	Files(datasetPath string) ([]string, error)
}

// InspectService lists archive entries without extracting.
type InspectService interface {
	List(zipPath string) ([]ports.Entry, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc  ConfigService
	ExtractSvc ExtractService
	AnalyzeSvc AnalyzeService
	DatasetSvc DatasetService
	InspectSvc InspectService

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error)  { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error  { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string             { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config  { return config.DefaultConfig() }

// defaultExtractService wraps the extract package.
type defaultExtractService struct{}

func (d *defaultExtractService) Extract(archivePath, destRoot string) (*extract.ExtractionResult, error) {
	return extract.New(ziparchiver.New(), osfs.New()).Extract(archivePath, destRoot)
}

// defaultAnalyzeService wraps the metadata package.
type defaultAnalyzeService struct{}

func (d *defaultAnalyzeService) Summarize(paths []string) *metadata.AggregateSummary {
	analyzer := metadata.New(osfs.New())
	if cfg, err := config.Load(); err == nil {
		analyzer.MaxContentBytes = cfg.MaxLineCountBytes
	}
	return analyzer.Summarize(paths)
}

// defaultDatasetService wraps the datasets package.
type defaultDatasetService struct{}

func (d *defaultDatasetService) List(root string) ([]datasets.Dataset, error) {
	return datasets.List(osfs.New(), root)
}
func (d *defaultDatasetService) Files(datasetPath string) ([]string, error) {
	return datasets.Files(osfs.New(), datasetPath)
}

// defaultInspectService wraps the zip archiver.
type defaultInspectService struct{}

func (d *defaultInspectService) List(zipPath string) ([]ports.Entry, error) {
	return ziparchiver.New().List(zipPath)
}

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) extractSvc() ExtractService {
	if c.ExtractSvc != nil {
		return c.ExtractSvc
	}
	return &defaultExtractService{}
}

func (c *CLI) analyzeSvc() AnalyzeService {
	if c.AnalyzeSvc != nil {
		return c.AnalyzeSvc
	}
	return &defaultAnalyzeService{}
}

func (c *CLI) datasetSvc() DatasetService {
	if c.DatasetSvc != nil {
		return c.DatasetSvc
	}
	return &defaultDatasetService{}
}

func (c *CLI) inspectSvc() InspectService {
	if c.InspectSvc != nil {
		return c.InspectSvc
	}
	return &defaultInspectService{}
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		fmt.Fprintln(c.Out, "No command specified. Use 'exportscan help' for usage.")
		return
	}

	switch c.Args[1] {
	case "process":
		c.RunProcess()
	case "list":
		c.ListDatasets()
	case "metadata":
		c.RunMetadata()
	case "inspect":
		c.RunInspect()
	case "init":
		c.InitConfig()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "exportscan v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `exportscan - AI Export Archive Inspector

Usage:
  exportscan                               Launch interactive TUI
  exportscan ui                            Launch interactive TUI
  exportscan process <archive.zip> [--output=DIR]
                                           Extract an export and report file metadata
  exportscan list [root]                   List extraction datasets
  exportscan metadata <dataset-dir>        Report metadata for an extracted dataset
  exportscan inspect <archive.zip>         List archive entries without extracting
  exportscan init                          Create default config file
  exportscan version, -v                   Show version
  exportscan help, -h                      Show this help

Config: ~/.exportscan/config.yaml`)
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	cfg := svc.DefaultConfig()
	if err := svc.Save(cfg); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// RunProcess extracts an archive and summarizes the extracted files.
func (c *CLI) RunProcess() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: exportscan process <archive.zip> [--output=DIR]")
		c.Exit(1)
		return
	}

	cfgSvc := c.configSvc()
	cfg, err := cfgSvc.Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	archivePath := c.Args[2]
	destRoot := config.ExpandPath(cfg.DestinationRoot)
	args := c.Args[3:]
	for i := 0; i < len(args); i++ {
		switch {
		case strings.HasPrefix(args[i], "--output="):
			destRoot = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-o" || args[i] == "--output":
			if i+1 >= len(args) {
				fmt.Fprintln(c.Err, "Missing value for --output")
				c.Exit(1)
				return
			}
			i++
			destRoot = args[i]
		}
	}

	fmt.Fprintf(c.Out, "%s Extracting %s...\n", c.cyan("=>"), archivePath)

	result, err := c.extractSvc().Extract(archivePath, destRoot)
	if err != nil {
		if result != nil && result.Incomplete {
			fmt.Fprintf(c.Err, "Extraction incomplete after %d entries: %v\n",
				result.EntryCount, err)
			fmt.Fprintf(c.Err, "Partial output left at %s\n", result.Dir)
		} else {
			fmt.Fprintf(c.Err, "Extraction failed: %v\n", err)
		}
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Extracted %d entries (%s) to %s in %s\n",
		c.green("*"),
		result.EntryCount,
		c.yellow(metadata.FormatSize(result.TotalBytes)),
		result.Dir,
		result.Elapsed.Round(time.Millisecond))

	summary := c.analyzeSvc().Summarize(result.Files)
	c.printSummary(summary)
}

// RunMetadata summarizes all files under a previously extracted dataset.
func (c *CLI) RunMetadata() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: exportscan metadata <dataset-dir>")
		c.Exit(1)
		return
	}

	datasetDir := c.Args[2]
	files, err := c.datasetSvc().Files(datasetDir)
	if err != nil {
		fmt.Fprintf(c.Err, "Error reading dataset: %v\n", err)
		c.Exit(1)
		return
	}
	if len(files) == 0 {
		fmt.Fprintf(c.Out, "No files found under %s\n", datasetDir)
		return
	}

	fmt.Fprintf(c.Out, "Metadata for %s:\n\n", c.cyan(datasetDir))
	summary := c.analyzeSvc().Summarize(files)
	c.printSummary(summary)
}

// RunInspect lists archive entries without extracting.
func (c *CLI) RunInspect() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: exportscan inspect <archive.zip>")
		c.Exit(1)
		return
	}

	zipPath := c.Args[2]
	entries, err := c.inspectSvc().List(zipPath)
	if err != nil {
		fmt.Fprintf(c.Err, "Error reading archive: %v\n", err)
		c.Exit(1)
		return
	}

	if len(entries) == 0 {
		fmt.Fprintf(c.Out, "Archive %s is empty\n", zipPath)
		return
	}

	fmt.Fprintf(c.Out, "Entries in %s:\n\n", c.cyan(zipPath))
	var total int64
	for _, e := range entries {
		fmt.Fprintf(c.Out, "  %10s  %s\n", metadata.FormatSize(e.Size), e.Name)
		total += e.Size
	}
	fmt.Fprintf(c.Out, "\n%d entries, %s uncompressed\n", len(entries), metadata.FormatSize(total))
}

// ListDatasets lists extraction datasets under the destination root.
func (c *CLI) ListDatasets() {
	root := ""
	if len(c.Args) > 2 {
		root = c.Args[2]
	} else {
		cfg, err := c.configSvc().Load()
		if err != nil {
			fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
			c.Exit(1)
			return
		}
		root = config.ExpandPath(cfg.DestinationRoot)
	}

	found, err := c.datasetSvc().List(root)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	if len(found) == 0 {
		fmt.Fprintf(c.Out, "No datasets found under %s\n", root)
		return
	}

	fmt.Fprintf(c.Out, "Datasets under %s:\n\n", c.cyan(root))
	fmt.Fprintf(c.Out, "  %-35s %10s %8s\n", "DATASET", "SIZE", "FILES")
	fmt.Fprintf(c.Out, "  %-35s %10s %8s\n", "-------", "----", "-----")
	for _, ds := range found {
		fmt.Fprintf(c.Out, "  %-35s %10s %8d\n",
			ds.Name,
			metadata.FormatSize(ds.TotalSize),
			ds.FileCount)
	}
}

// printSummary renders an aggregate summary with per-file failures surfaced.
func (c *CLI) printSummary(summary *metadata.AggregateSummary) {
	for _, meta := range summary.Files {
		marker := c.green("*")
		if meta.Kind == metadata.KindBinary || meta.Kind == metadata.KindSkipped {
			marker = c.gray("-")
		}
		fmt.Fprintf(c.Out, "  %s %s\n", marker, meta.Display())
	}

	if len(summary.Failures) > 0 {
		fmt.Fprintln(c.Out)
		for _, f := range summary.Failures {
			fmt.Fprintf(c.Out, "  %s %s: %v\n", c.red("x"), f.Path, f.Err)
		}
	}

	fmt.Fprintln(c.Out)
	fmt.Fprintf(c.Out, "Totals: %s files, %s, %s lines, %s JSON",
		c.green(fmt.Sprintf("%d", len(summary.Files))),
		c.yellow(metadata.FormatSize(summary.TotalBytes)),
		c.cyan(fmt.Sprintf("%d", summary.TotalLines)),
		c.cyan(fmt.Sprintf("%d", summary.JSONFiles)))
	if len(summary.Failures) > 0 {
		fmt.Fprintf(c.Out, ", %s failures", c.red(fmt.Sprintf("%d", len(summary.Failures))))
	}
	fmt.Fprintln(c.Out)

	if len(summary.ByExtension) > 0 {
		exts := make([]string, 0, len(summary.ByExtension))
		for ext := range summary.ByExtension {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		fmt.Fprint(c.Out, "By type:")
		for _, ext := range exts {
			stat := summary.ByExtension[ext]
			fmt.Fprintf(c.Out, " %s x%d (%s)", ext, stat.Count, metadata.FormatSize(stat.Bytes))
		}
		fmt.Fprintln(c.Out)
	}
}
