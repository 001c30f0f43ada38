package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/client"
	"github.com/autobrr/qbtc/pkg/logger"
)

var appCmd = &cobra.Command{
	Use:   "app [CLIENT]",
	Short: "Show application information",
	Long:  `This command prints the version, Web API version, build information and default save path of a client.`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("app")

		run(cmd.Context(), log, args[0], func(c client.Interface) error {
			info, err := c.AppInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("retrieve application information: %w", err)
			}

			tw := newTable(os.Stdout)
			fmt.Fprintf(tw, "Version:\t%s\n", info.Version)
			fmt.Fprintf(tw, "Web API:\t%s\n", info.WebAPIVersion)
			fmt.Fprintf(tw, "Qt:\t%s\n", info.Build.Qt)
			fmt.Fprintf(tw, "libtorrent:\t%s\n", info.Build.Libtorrent)
			fmt.Fprintf(tw, "Boost:\t%s\n", info.Build.Boost)
			fmt.Fprintf(tw, "OpenSSL:\t%s\n", info.Build.OpenSSL)
			if info.Build.Zlib != "" {
				fmt.Fprintf(tw, "zlib:\t%s\n", info.Build.Zlib)
			}
			fmt.Fprintf(tw, "Bitness:\t%d\n", info.Build.Bitness)
			fmt.Fprintf(tw, "Save path:\t%s\n", info.DefaultSavePath)
			if p := info.Preferences; p.TempPathEnabled {
				fmt.Fprintf(tw, "Temp path:\t%s\n", p.TempPath)
			}
			fmt.Fprintf(tw, "Locale:\t%s\n", info.Preferences.Locale)
			fmt.Fprintf(tw, "Web UI port:\t%d\n", info.Preferences.WebUIPort)
			if info.Preferences.QueueingEnabled {
				fmt.Fprintf(tw, "Queueing:\tmax %d active\n", info.Preferences.MaxActiveTorrents)
			} else {
				fmt.Fprintf(tw, "Queueing:\tdisabled\n")
			}
			return tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(appCmd)
}
