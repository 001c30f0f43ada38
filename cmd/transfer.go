package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/client"
	"github.com/autobrr/qbtc/pkg/logger"
)

var transferCmd = &cobra.Command{
	Use:   "transfer [CLIENT]",
	Short: "Show global transfer information",
	Long:  `This command prints the global transfer statistics and speed limits of a client.`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("transfer")

		run(cmd.Context(), log, args[0], func(c client.Interface) error {
			ts, err := c.TransferSummary(cmd.Context())
			if err != nil {
				return fmt.Errorf("retrieve transfer information: %w", err)
			}

			mode := "regular"
			if ts.AlternativeLimits {
				mode = "alternative"
			}

			tw := newTable(os.Stdout)
			fmt.Fprintf(tw, "Connection:\t%s (%d DHT nodes)\n", ts.ConnectionStatus, ts.DHTNodes)
			fmt.Fprintf(tw, "Download:\t%s (%s this session)\n", rate(ts.DlInfoSpeed), bytes(ts.DlInfoData))
			fmt.Fprintf(tw, "Upload:\t%s (%s this session)\n", rate(ts.UpInfoSpeed), bytes(ts.UpInfoData))
			fmt.Fprintf(tw, "Speed limits:\t%s\n", mode)
			fmt.Fprintf(tw, "Download limit:\t%s\n", limit(ts.DownloadLimit))
			fmt.Fprintf(tw, "Upload limit:\t%s\n", limit(ts.UploadLimit))
			return tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
