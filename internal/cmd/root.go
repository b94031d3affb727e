package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for shrup
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shrup",
		Short: "Shell script preprocessor",
		Long: `Shrup resolves C-preprocessor-style #include directives in shell
scripts, recursively inlining the referenced files into a single output.

Relative include paths resolve against the including file's directory,
absolute-looking paths are rooted at a base directory, and every resolved
path is confined to that base directory. Cycles and runaway nesting are
detected and reported with the full include chain.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewBuildCommand())
	cmd.AddCommand(NewCheckCommand())

	return cmd
}
