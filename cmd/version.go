package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/runtime"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints the version, commit, build time, platform and the User-Agent qbtc sends to clients.`,
	Run: func(cmd *cobra.Command, args []string) {
		built := runtime.Timestamp
		if t, ok := runtime.BuildTime(); ok {
			built = t.Format(time.RFC3339)
		}

		tw := newTable(os.Stdout)
		fmt.Fprintf(tw, "Version:\t%s\n", runtime.Version)
		fmt.Fprintf(tw, "Commit:\t%s\n", runtime.GitCommit)
		fmt.Fprintf(tw, "Built:\t%s\n", built)
		fmt.Fprintf(tw, "Platform:\t%s\n", runtime.Platform())
		fmt.Fprintf(tw, "User-Agent:\t%s\n", runtime.UserAgent())
		_ = tw.Flush()
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
