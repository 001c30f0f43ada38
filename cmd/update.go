package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/autobrr/qbtc/pkg/runtime"
)

const repoSlug = "autobrr/qbtc"

var flagUpdateCheck bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update qbtc to the latest release",
	Long: `Replace the running qbtc binary with the latest GitHub release of ` + repoSlug + ` for this platform.

Use --check to only report whether a newer release exists.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo := selfupdate.ParseSlug(repoSlug)

		latest, found, err := selfupdate.DetectLatest(ctx, repo)
		if err != nil {
			return fmt.Errorf("detect latest release: %w", err)
		}
		if !found {
			return fmt.Errorf("no release of %s found for this platform", repoSlug)
		}

		if latest.LessOrEqual(runtime.Version) {
			fmt.Printf("Already up to date: %s\n", runtime.Version)
			return nil
		}

		if flagUpdateCheck {
			fmt.Printf("Update available: %s -> %s (published %s)\n%s\n",
				runtime.Version, latest.Version(), humanize.Time(latest.PublishedAt), latest.URL)
			return nil
		}

		release, err := selfupdate.UpdateSelf(ctx, runtime.Version, repo)
		if err != nil {
			return fmt.Errorf("could not update binary: %w", err)
		}

		fmt.Printf("Successfully updated to version: %s\n", release.Version())
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&flagUpdateCheck, "check", false, "Only check for a newer release")

	rootCmd.AddCommand(updateCmd)
}
