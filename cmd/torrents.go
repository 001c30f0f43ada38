package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/client"
	"github.com/autobrr/qbtc/pkg/config"
	"github.com/autobrr/qbtc/pkg/expression"
	"github.com/autobrr/qbtc/pkg/logger"
	"github.com/autobrr/qbtc/pkg/qbt"
)

var (
	flagFilterName string
	flagWhere      []string
	flagDetails    bool
	flagFiles      bool
)

var torrentsCmd = &cobra.Command{
	Use:   "torrents [CLIENT]",
	Short: "List torrents",
	Long: `This command lists the torrents of a client.

Torrents can be narrowed down with a configured filter (--filter) and/or ad-hoc expressions (--where).`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// init core
		initCore()

		// set log
		log := logger.GetLogger("torrents")

		// build filter
		filter := &config.FilterConfiguration{}
		if flagFilterName != "" {
			f, err := config.Filter(flagFilterName)
			if err != nil {
				log.WithError(err).Fatal("Failed retrieving specified filter")
			}
			filter.Include = append(filter.Include, f.Include...)
			filter.Exclude = append(filter.Exclude, f.Exclude...)
		}
		filter.Include = append(filter.Include, flagWhere...)

		exp, err := expression.Compile(filter)
		if err != nil {
			log.WithError(err).Fatal("Failed compiling filters")
		}

		ctx := cmd.Context()
		run(ctx, log, args[0], func(c client.Interface) error {
			torrents, err := c.GetTorrents(ctx, exp)
			if err != nil {
				return fmt.Errorf("retrieve torrents: %w", err)
			}
			log.Infof("Retrieved %d torrents", len(torrents))

			if !flagDetails && !flagFiles {
				printSummaries(os.Stdout, torrents)
				return nil
			}

			for _, t := range torrents {
				fmt.Println("-----")
				printSummary(os.Stdout, t)

				if flagDetails {
					d, err := t.Detail(ctx, false)
					if err != nil {
						log.WithFields(qbt.LogFields(err)).WithError(err).Errorf("Failed retrieving details for: %s", t.Hash)
					} else {
						printDetail(os.Stdout, d)
					}
				}

				if flagFiles {
					files, err := t.Contents(ctx)
					if err != nil {
						log.WithFields(qbt.LogFields(err)).WithError(err).Errorf("Failed retrieving files for: %s", t.Hash)
					} else {
						printContents(os.Stdout, files)
					}
				}
			}

			return nil
		})
	},
}

func init() {
	torrentsCmd.Flags().StringVar(&flagFilterName, "filter", "", "Use a filter from the config")
	torrentsCmd.Flags().StringArrayVar(&flagWhere, "where", nil, "Only include torrents matching this expression (repeatable)")
	torrentsCmd.Flags().BoolVar(&flagDetails, "details", false, "Fetch and show per-torrent properties")
	torrentsCmd.Flags().BoolVar(&flagFiles, "files", false, "Fetch and show per-torrent files")

	rootCmd.AddCommand(torrentsCmd)
}
