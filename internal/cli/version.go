package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cgwt-sh/cgwt/internal/output"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := map[string]string{
			"version":  Version,
			"commit":   Commit,
			"date":     Date,
			"go":       runtime.Version(),
			"platform": runtime.GOOS + "/" + runtime.GOARCH,
		}
		formatter := output.New(jsonOutput)
		return formatter.Output(info, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "cgwt %s (commit %s, built %s, %s %s/%s)\n",
				Version, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
