package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/shrup/internal/config"
	"github.com/harrison/shrup/internal/filelock"
	"github.com/harrison/shrup/internal/logger"
	"github.com/harrison/shrup/internal/preprocessor"
)

// consoleTracer implements preprocessor.Tracer on top of the console logger,
// emitting one debug line per file enter/leave tagged with the run id.
type consoleTracer struct {
	console *logger.Console
	runID   string
}

// EnterFile logs the start of a file expansion.
func (t *consoleTracer) EnterFile(path string, depth int) {
	t.console.Debugf("[run %s] expanding %s (depth %d)", t.runID, path, depth)
}

// LeaveFile logs the completion of a file expansion.
func (t *consoleTracer) LeaveFile(path string, depth int) {
	t.console.Debugf("[run %s] finished %s (depth %d)", t.runID, path, depth)
}

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	var (
		debugMode  bool
		maxDepth   int
		baseDir    string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "build <input> <output>",
		Short: "Resolve includes and write the combined script",
		Long: `Build reads the input script, recursively inlines every #include
directive, and writes the combined result to the output path atomically.

Supported directive forms:
  #include <lib/util.sh>
  #include "lib/util.sh"
  #include 'lib/util.sh'
  #include lib/util.sh

Relative include paths resolve against the directory of the including file;
absolute-looking paths are rooted at the base directory, and no include may
escape it. Configuration is loaded from .shrup.yaml if present; CLI flags
override configuration file settings.

Examples:
  shrup build main.sh dist/main.sh
  shrup build --debug main.sh out.sh          # annotate spliced blocks
  shrup build --max-depth 10 main.sh out.sh
  shrup build --base-dir ./scripts main.sh out.sh
  shrup build --verbose main.sh out.sh        # per-file progress`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mergeFlags(cmd, configPath, debugMode, maxDepth, baseDir, verbose)
			if err != nil {
				return err
			}
			return runBuild(cmd, cfg, args[0], args[1])
		},
	}

	cmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "add marker comments around each inlined block")
	cmd.Flags().IntVar(&maxDepth, "max-depth", preprocessor.DefaultMaxIncludeDepth, "maximum include nesting depth")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "base directory for include resolution (default: input file's directory)")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show per-file expansion progress")

	return cmd
}

// mergeFlags loads the config file and overlays any flags the user set
// explicitly, so unset flags never clobber file values with defaults.
func mergeFlags(cmd *cobra.Command, configPath string, debugMode bool, maxDepth int, baseDir string, verbose bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = debugMode
	}
	if flags.Changed("max-depth") {
		cfg.MaxIncludeDepth = maxDepth
	}
	if flags.Changed("base-dir") {
		cfg.BaseDirectory = baseDir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newEngine validates the input path and builds an engine for it, defaulting
// the base directory to the input file's parent.
func newEngine(cfg *config.Config, input string) (*preprocessor.Engine, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("failed to access input file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input path is not a file: %s", input)
	}

	base := cfg.BaseDirectory
	if base == "" {
		base = filepath.Dir(input)
	}

	return preprocessor.NewEngine(preprocessor.Config{
		Debug:           cfg.Debug,
		MaxIncludeDepth: cfg.MaxIncludeDepth,
		BaseDirectory:   base,
	})
}

func runBuild(cmd *cobra.Command, cfg *config.Config, input, output string) error {
	engine, err := newEngine(cfg, input)
	if err != nil {
		return err
	}

	console := logger.NewConsole(cmd.OutOrStdout(), cfg.Verbose)
	runID := uuid.New().String()[:8]
	engine.SetTracer(&consoleTracer{console: console, runID: runID})

	lines, err := engine.ExpandFile(input)
	if err != nil {
		return err
	}

	rendered := preprocessor.Render(lines)
	if err := filelock.LockAndWrite(output, []byte(rendered)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	console.Successf("built %s -> %s (%d lines)", input, output, len(lines))
	return nil
}
