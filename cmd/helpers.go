package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/qbtc/pkg/client"
	"github.com/autobrr/qbtc/pkg/config"
	"github.com/autobrr/qbtc/pkg/qbt"
	"github.com/autobrr/qbtc/pkg/stringutils"
)

const nameWidth = 60

// connect the named client, exiting on failure
func connectClient(ctx context.Context, log *logrus.Entry, clientName string) client.Interface {
	if _, ok := config.Config.Clients[clientName]; !ok {
		log.Fatalf("No client configuration found for: %q", clientName)
	}

	c, err := client.NewClient(clientName)
	if err != nil {
		log.WithError(err).Fatalf("Failed initializing client: %q", clientName)
	}

	log.Debugf("Initialized client %q, type: %s", clientName, c.Type())

	if err := c.Connect(ctx); err != nil {
		fatal(log, err, "Failed connecting")
	}

	log.Debugf("Connected to client")
	return c
}

// run executes fn against a connected client and always logs out before reporting a failure.
func run(ctx context.Context, log *logrus.Entry, clientName string, fn func(c client.Interface) error) {
	c := connectClient(ctx, log, clientName)

	err := fn(c)
	c.Close(ctx)

	if err != nil {
		fatal(log, err, "Failed")
	}
}

func fatal(log *logrus.Entry, err error, msg string) {
	log.WithFields(qbt.LogFields(err)).WithError(err).Fatal(msg)
}

func bytes(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func rate(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n)) + "/s"
}

// limit renders a byte rate limit, where 0 and negative values mean unlimited
func limit(n int64) string {
	if n <= 0 {
		return "unlimited"
	}
	return rate(n)
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

func when(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s (%s)", t.Local().Format(time.DateTime), humanize.Time(t))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printSummaries(w io.Writer, torrents []*qbt.Torrent) {
	tw := newTable(w)
	fmt.Fprintln(tw, "HASH\tNAME\tSTATE\tSIZE\tPROGRESS\tRATIO\tDL\tUP\tCATEGORY\tTAGS")
	for _, t := range torrents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
			t.Hash, stringutils.Truncate(t.Name, nameWidth), t.State, bytes(t.Size), percent(t.Progress),
			t.Ratio, rate(t.DlSpeed), rate(t.UpSpeed), t.Category, t.Tags)
	}
	_ = tw.Flush()
}

func printSummary(w io.Writer, t *qbt.Torrent) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s\n", t.Name)
	fmt.Fprintf(tw, "Hash:\t%s\n", t.Hash)
	fmt.Fprintf(tw, "State:\t%s\n", t.State)
	fmt.Fprintf(tw, "Size:\t%s (%s total)\n", bytes(t.Size), bytes(t.TotalSize))
	fmt.Fprintf(tw, "Progress:\t%s\n", percent(t.Progress))
	fmt.Fprintf(tw, "Ratio:\t%.3f\n", t.Ratio)
	fmt.Fprintf(tw, "Category:\t%s\n", t.Category)
	fmt.Fprintf(tw, "Tags:\t%s\n", t.Tags)
	fmt.Fprintf(tw, "Save path:\t%s\n", t.SavePath)
	fmt.Fprintf(tw, "Tracker:\t%s\n", t.Tracker)
	fmt.Fprintf(tw, "Private:\t%t\n", t.Private)
	fmt.Fprintf(tw, "Added:\t%s\n", when(t.AddedOn))
	fmt.Fprintf(tw, "Completed:\t%s\n", when(t.CompletionOn))
	fmt.Fprintf(tw, "Last activity:\t%s\n", when(t.LastActivity))
	_ = tw.Flush()
}

func printDetail(w io.Writer, d qbt.TorrentDetail) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Created:\t%s by %s\n", when(d.CreationDate), d.CreatedBy)
	fmt.Fprintf(tw, "Comment:\t%s\n", d.Comment)
	fmt.Fprintf(tw, "Pieces:\t%d / %d (%s each)\n", d.PiecesHave, d.PiecesNum, bytes(d.PieceSize))
	fmt.Fprintf(tw, "Downloaded:\t%s (%s this session)\n", bytes(d.TotalDownloaded), bytes(d.TotalDownloadedSession))
	fmt.Fprintf(tw, "Uploaded:\t%s (%s this session)\n", bytes(d.TotalUploaded), bytes(d.TotalUploadedSession))
	fmt.Fprintf(tw, "Wasted:\t%s\n", bytes(d.TotalWasted))
	fmt.Fprintf(tw, "Share ratio:\t%.3f\n", d.ShareRatio)
	fmt.Fprintf(tw, "Seeds:\t%d (%d total)\n", d.Seeds, d.SeedsTotal)
	fmt.Fprintf(tw, "Peers:\t%d (%d total)\n", d.Peers, d.PeersTotal)
	fmt.Fprintf(tw, "Connections:\t%d / %d\n", d.NbConnections, d.NbConnectionsLimit)
	fmt.Fprintf(tw, "Speed:\t%s down / %s up\n", rate(d.DlSpeed), rate(d.UpSpeed))
	fmt.Fprintf(tw, "Limits:\t%s down / %s up\n", limit(d.DlLimit), limit(d.UpLimit))
	fmt.Fprintf(tw, "Last seen complete:\t%s\n", when(d.LastSeen))
	_ = tw.Flush()
}

func printContents(w io.Writer, items []qbt.ContentItem) {
	tw := newTable(w)
	fmt.Fprintln(tw, "  #\tNAME\tSIZE\tPROGRESS\tPRIORITY\tPIECES")
	for _, f := range items {
		pieces := strings.Trim(strings.Join(strings.Fields(fmt.Sprint(f.PieceRange)), "-"), "[]")
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			f.Index, f.Name, bytes(f.Size), percent(f.Progress), f.Priority, pieces)
	}
	_ = tw.Flush()
}
