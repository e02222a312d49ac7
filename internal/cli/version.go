package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v, commit, buildTime := GetVersionInfo()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "git-llm-commit %s\n", v)
		fmt.Fprintf(out, "  git commit: %s\n", commit)
		fmt.Fprintf(out, "  built:      %s\n", buildTime)
		fmt.Fprintf(out, "  go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
