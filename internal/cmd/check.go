package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/shrup/internal/config"
	"github.com/harrison/shrup/internal/preprocessor"
)

// countingTracer counts file expansions for the check summary.
type countingTracer struct {
	files int
}

// EnterFile counts one expanded file.
func (t *countingTracer) EnterFile(path string, depth int) {
	t.files++
}

// LeaveFile is a no-op; only entries are counted.
func (t *countingTracer) LeaveFile(path string, depth int) {}

// NewCheckCommand creates and returns the check subcommand
func NewCheckCommand() *cobra.Command {
	var (
		maxDepth   int
		baseDir    string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "check <input>",
		Short: "Validate that a script's include tree resolves",
		Long: `Parse the input script and expand its full include tree without
writing any output, checking for:
  - Malformed #include directives
  - Missing or unreadable include targets
  - Includes escaping the base directory
  - Circular dependencies
  - Include nesting beyond the depth limit

Exit code: 0 if the tree resolves, 1 if errors are found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mergeFlags(cmd, configPath, false, maxDepth, baseDir, false)
			if err != nil {
				return err
			}
			return runCheck(cmd, cfg, args[0])
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", preprocessor.DefaultMaxIncludeDepth, "maximum include nesting depth")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "base directory for include resolution (default: input file's directory)")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to configuration file")

	return cmd
}

func runCheck(cmd *cobra.Command, cfg *config.Config, input string) error {
	engine, err := newEngine(cfg, input)
	if err != nil {
		return err
	}

	tracer := &countingTracer{}
	engine.SetTracer(tracer)

	lines, err := engine.ExpandFile(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d files, %d lines)\n", input, tracer.files, len(lines))
	return nil
}
