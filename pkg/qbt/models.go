package qbt

import (
	"time"
)

// TorrentSummary is one entry of the torrents/info listing.
// Timestamps are the zero time when the Web API reports "never".
type TorrentSummary struct {
	Hash               string
	InfohashV1         string
	InfohashV2         string
	Name               string
	MagnetURI          string
	State              TorrentState
	Category           string
	Tags               string
	Tracker            string
	TrackersCount      int64
	SavePath           string
	DownloadPath       string
	ContentPath        string
	Private            bool
	AutoTMM            bool
	ForceStart         bool
	SuperSeeding       bool
	SequentialDL       bool
	FirstLastPiecePrio bool

	AddedOn      time.Time
	CompletionOn time.Time
	LastActivity time.Time
	SeenComplete time.Time

	Size              int64
	TotalSize         int64
	AmountLeft        int64
	Completed         int64
	Downloaded        int64
	DownloadedSession int64
	Uploaded          int64
	UploadedSession   int64
	DlSpeed           int64
	UpSpeed           int64
	DlLimit           int64
	UpLimit           int64
	Eta               int64
	Priority          int64
	TimeActive        int64
	SeedingTime       int64
	SeedingTimeLimit  int64
	MaxSeedingTime    int64

	NumComplete   int64
	NumIncomplete int64
	NumLeechs     int64
	NumSeeds      int64

	Availability float64
	Progress     float64
	Ratio        float64
	RatioLimit   float64
	MaxRatio     float64
}

// TorrentDetail is the torrents/properties record of a single torrent.
type TorrentDetail struct {
	SavePath  string
	Comment   string
	CreatedBy string
	IsPrivate bool

	CreationDate   time.Time
	AdditionDate   time.Time
	CompletionDate time.Time
	LastSeen       time.Time

	PieceSize              int64
	PiecesHave             int64
	PiecesNum              int64
	TotalSize              int64
	TotalWasted            int64
	TotalUploaded          int64
	TotalUploadedSession   int64
	TotalDownloaded        int64
	TotalDownloadedSession int64
	UpLimit                int64
	DlLimit                int64
	TimeElapsed            int64
	SeedingTime            int64
	NbConnections          int64
	NbConnectionsLimit     int64
	DlSpeedAvg             int64
	DlSpeed                int64
	UpSpeedAvg             int64
	UpSpeed                int64
	Eta                    int64
	Peers                  int64
	PeersTotal             int64
	Seeds                  int64
	SeedsTotal             int64
	Reannounce             int64

	ShareRatio float64
}

type FilePriority int

const (
	PriorityDoNotDownload FilePriority = 0
	PriorityNormal        FilePriority = 1
	PriorityHigh          FilePriority = 6
	PriorityMaximal       FilePriority = 7
)

func (p FilePriority) String() string {
	switch p {
	case PriorityDoNotDownload:
		return "Do not download"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityMaximal:
		return "Maximal"
	default:
		return "Mixed"
	}
}

// ContentItem is one file of a torrent as listed by torrents/files.
// PieceRange holds the first and last piece index, inclusive, when reported.
type ContentItem struct {
	Index        int64
	Name         string
	Size         int64
	Progress     float64
	Priority     FilePriority
	IsSeed       bool
	PieceRange   []int64
	Availability float64
}

type BuildInfo struct {
	Qt         string
	Libtorrent string
	Boost      string
	OpenSSL    string
	Zlib       string
	Bitness    int64
}

type ConnectionStatus int

const (
	ConnectionUnknown ConnectionStatus = iota
	ConnectionConnected
	ConnectionFirewalled
	ConnectionDisconnected
)

func ParseConnectionStatus(s string) ConnectionStatus {
	switch s {
	case "connected":
		return ConnectionConnected
	case "firewalled":
		return ConnectionFirewalled
	case "disconnected":
		return ConnectionDisconnected
	default:
		return ConnectionUnknown
	}
}

func (c ConnectionStatus) String() string {
	switch c {
	case ConnectionConnected:
		return "connected"
	case ConnectionFirewalled:
		return "firewalled"
	case ConnectionDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

type TransferInfo struct {
	DlInfoSpeed      int64
	DlInfoData       int64
	UpInfoSpeed      int64
	UpInfoData       int64
	DlRateLimit      int64
	UpRateLimit      int64
	DHTNodes         int64
	ConnectionStatus ConnectionStatus
}

// Preferences carries the handful of typed keys callers commonly need.
// Raw holds the complete parsed object.
type Preferences struct {
	SavePath          string
	TempPathEnabled   bool
	TempPath          string
	Locale            string
	WebUIPort         int64
	MaxActiveTorrents int64
	QueueingEnabled   bool
	Raw               map[string]any
}
