// Package cli wires the cgwt commands. Commands stay thin; the session
// registry, address resolution, and lifecycle logic live in their own
// packages.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgwt-sh/cgwt/internal/config"
	"github.com/cgwt-sh/cgwt/internal/output"
	"github.com/cgwt-sh/cgwt/internal/resolve"
)

var (
	cfgFile    string
	cfg        *config.Config
	jsonOutput bool

	// Build information - set via ldflags.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// exitCode carries the code cgwt exits with. A blocking attach propagates
// the tmux client's exit status through here.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "cgwt [address]",
	Short: "One AI coding session per Git branch, addressed by number or name",
	Long: `cgwt runs parallel AI coding sessions, one per Git branch, each in its
own tmux session, and switches between them by short addresses.

Addresses:
  2            second branch session (flat numbering, 0 = supervisor)
  0.1          project 0, branch 1 (multi-project numbering)
  feature-x    branch name
  supervisor   the project's supervisor session ("sup" works too)

Examples:
  cgwt                 # list sessions, grouped by project
  cgwt feature-x       # open or create the feature-x session and attach
  cgwt 0.1             # jump to project 0, branch 1
  cgwt kill feature-x  # kill one session`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOrDefault(cfgFile)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runList()
		}
		return runOpen(args[0], openOptions{flat: rootFlat})
	},
}

var rootFlat bool

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/cgwt/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (machine-readable)")
	rootCmd.Flags().BoolVar(&rootFlat, "flat", false, "Resolve bare indexes against a flat session list (single-project numbering)")
}

// Execute runs the CLI and returns the process exit code. Resolution and
// lifecycle failures exit 1 with an actionable message; a finished attach
// propagates the tmux client's own exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return 1
	}
	return exitCode
}

func printError(err error) {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		output.PrintCLIError(cliErr)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// resolutionError converts resolver errors into CLIErrors carrying the
// remediation context the resolver collected.
func resolutionError(err error) error {
	var nf *resolve.NotFoundError
	if errors.As(err, &nf) {
		return output.NewCLIError(err.Error()).
			WithHint("run 'cgwt' or 'cgwt list' to see what is running")
	}
	var oor *resolve.OutOfRangeError
	if errors.As(err, &oor) {
		return output.NewCLIError(err.Error()).
			WithHint(fmt.Sprintf("valid %s indexes are %d-%d", oor.Dimension, oor.Min, oor.Max))
	}
	return err
}
