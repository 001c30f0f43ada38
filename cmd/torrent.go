package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/client"
	"github.com/autobrr/qbtc/pkg/logger"
	"github.com/autobrr/qbtc/pkg/qbt"
)

var (
	flagTorrentFiles bool
	flagFileIndex    int
	flagRefresh      bool
)

var torrentCmd = &cobra.Command{
	Use:   "torrent [CLIENT] [HASH]",
	Short: "Show a single torrent",
	Long:  `This command prints the summary and properties of a single torrent, looked up by its info-hash.`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("torrent")

		ctx := cmd.Context()
		run(ctx, log, args[0], func(c client.Interface) error {
			t, err := c.GetTorrent(ctx, args[1])
			if err != nil {
				return fmt.Errorf("retrieve torrent: %w", err)
			}

			if _, err := t.Detail(ctx, false); err != nil {
				return fmt.Errorf("retrieve torrent properties: %w", err)
			}

			if flagRefresh {
				if _, err := t.Detail(ctx, true); err != nil {
					log.WithFields(qbt.LogFields(err)).WithError(err).Warn("Failed refreshing torrent properties, showing cached values")
				}
			}

			d, _ := t.CachedDetail()

			printSummary(os.Stdout, t)
			printDetail(os.Stdout, d)

			var files []qbt.ContentItem
			switch {
			case cmd.Flags().Changed("file"):
				f, err := t.File(ctx, flagFileIndex)
				if err != nil {
					return fmt.Errorf("retrieve torrent file %d: %w", flagFileIndex, err)
				}
				files = []qbt.ContentItem{f}
			case flagTorrentFiles:
				if files, err = t.Contents(ctx); err != nil {
					return fmt.Errorf("retrieve torrent files: %w", err)
				}
			default:
				return nil
			}

			fmt.Println()
			printContents(os.Stdout, files)
			return nil
		})
	},
}

func init() {
	torrentCmd.Flags().BoolVar(&flagTorrentFiles, "files", false, "Show the torrent's files")
	torrentCmd.Flags().IntVar(&flagFileIndex, "file", 0, "Show only the file at this index")
	torrentCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Force a second properties fetch, bypassing the cache")

	rootCmd.AddCommand(torrentCmd)
}
