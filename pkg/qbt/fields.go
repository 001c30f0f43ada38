package qbt

import (
	"time"

	"github.com/autobrr/qbtc/pkg/qbt/decode"
)

type ts = TorrentSummary
type td = TorrentDetail

var summaryFields = []decode.Field[ts]{
	decode.Epoch("added_on", func(t *ts) *time.Time { return &t.AddedOn }),
	decode.Int("amount_left", func(t *ts) *int64 { return &t.AmountLeft }),
	decode.Bool("auto_tmm", func(t *ts) *bool { return &t.AutoTMM }),
	decode.Float("availability", func(t *ts) *float64 { return &t.Availability }),
	decode.String("category", func(t *ts) *string { return &t.Category }),
	decode.Int("completed", func(t *ts) *int64 { return &t.Completed }),
	decode.Epoch("completion_on", func(t *ts) *time.Time { return &t.CompletionOn }),
	decode.String("content_path", func(t *ts) *string { return &t.ContentPath }),
	decode.Int("dl_limit", func(t *ts) *int64 { return &t.DlLimit }),
	decode.Int("dlspeed", func(t *ts) *int64 { return &t.DlSpeed }),
	decode.String("download_path", func(t *ts) *string { return &t.DownloadPath }).Or(""),
	decode.Int("downloaded", func(t *ts) *int64 { return &t.Downloaded }),
	decode.Int("downloaded_session", func(t *ts) *int64 { return &t.DownloadedSession }),
	decode.Int("eta", func(t *ts) *int64 { return &t.Eta }),
	decode.Bool("f_l_piece_prio", func(t *ts) *bool { return &t.FirstLastPiecePrio }),
	decode.Bool("force_start", func(t *ts) *bool { return &t.ForceStart }),
	decode.String("hash", func(t *ts) *string { return &t.Hash }),
	decode.String("infohash_v1", func(t *ts) *string { return &t.InfohashV1 }).Or(""),
	decode.String("infohash_v2", func(t *ts) *string { return &t.InfohashV2 }).Or(""),
	decode.Epoch("last_activity", func(t *ts) *time.Time { return &t.LastActivity }),
	decode.String("magnet_uri", func(t *ts) *string { return &t.MagnetURI }),
	decode.Float("max_ratio", func(t *ts) *float64 { return &t.MaxRatio }),
	decode.Int("max_seeding_time", func(t *ts) *int64 { return &t.MaxSeedingTime }),
	decode.String("name", func(t *ts) *string { return &t.Name }),
	decode.Int("num_complete", func(t *ts) *int64 { return &t.NumComplete }),
	decode.Int("num_incomplete", func(t *ts) *int64 { return &t.NumIncomplete }),
	decode.Int("num_leechs", func(t *ts) *int64 { return &t.NumLeechs }),
	decode.Int("num_seeds", func(t *ts) *int64 { return &t.NumSeeds }),
	decode.Int("priority", func(t *ts) *int64 { return &t.Priority }),
	decode.Bool("private", func(t *ts) *bool { return &t.Private }).Or(false),
	decode.Float("progress", func(t *ts) *float64 { return &t.Progress }),
	decode.Float("ratio", func(t *ts) *float64 { return &t.Ratio }),
	decode.Float("ratio_limit", func(t *ts) *float64 { return &t.RatioLimit }),
	decode.String("save_path", func(t *ts) *string { return &t.SavePath }),
	decode.Int("seeding_time", func(t *ts) *int64 { return &t.SeedingTime }),
	decode.Int("seeding_time_limit", func(t *ts) *int64 { return &t.SeedingTimeLimit }),
	decode.Epoch("seen_complete", func(t *ts) *time.Time { return &t.SeenComplete }),
	decode.Bool("seq_dl", func(t *ts) *bool { return &t.SequentialDL }),
	decode.Int("size", func(t *ts) *int64 { return &t.Size }),
	decode.Enum("state", func(t *ts) *TorrentState { return &t.State }, ParseState),
	decode.Bool("super_seeding", func(t *ts) *bool { return &t.SuperSeeding }),
	decode.String("tags", func(t *ts) *string { return &t.Tags }),
	decode.Int("time_active", func(t *ts) *int64 { return &t.TimeActive }),
	decode.Int("total_size", func(t *ts) *int64 { return &t.TotalSize }),
	decode.String("tracker", func(t *ts) *string { return &t.Tracker }),
	decode.Int("trackers_count", func(t *ts) *int64 { return &t.TrackersCount }).Or(nil),
	decode.Int("up_limit", func(t *ts) *int64 { return &t.UpLimit }),
	decode.Int("uploaded", func(t *ts) *int64 { return &t.Uploaded }),
	decode.Int("uploaded_session", func(t *ts) *int64 { return &t.UploadedSession }),
	decode.Int("upspeed", func(t *ts) *int64 { return &t.UpSpeed }),
}

var detailFields = []decode.Field[td]{
	decode.String("save_path", func(d *td) *string { return &d.SavePath }),
	decode.Epoch("creation_date", func(d *td) *time.Time { return &d.CreationDate }),
	decode.Int("piece_size", func(d *td) *int64 { return &d.PieceSize }),
	decode.String("comment", func(d *td) *string { return &d.Comment }),
	decode.Int("total_wasted", func(d *td) *int64 { return &d.TotalWasted }),
	decode.Int("total_uploaded", func(d *td) *int64 { return &d.TotalUploaded }),
	decode.Int("total_uploaded_session", func(d *td) *int64 { return &d.TotalUploadedSession }),
	decode.Int("total_downloaded", func(d *td) *int64 { return &d.TotalDownloaded }),
	decode.Int("total_downloaded_session", func(d *td) *int64 { return &d.TotalDownloadedSession }),
	decode.Int("up_limit", func(d *td) *int64 { return &d.UpLimit }),
	decode.Int("dl_limit", func(d *td) *int64 { return &d.DlLimit }),
	decode.Int("time_elapsed", func(d *td) *int64 { return &d.TimeElapsed }),
	decode.Int("seeding_time", func(d *td) *int64 { return &d.SeedingTime }),
	decode.Int("nb_connections", func(d *td) *int64 { return &d.NbConnections }),
	decode.Int("nb_connections_limit", func(d *td) *int64 { return &d.NbConnectionsLimit }),
	decode.Float("share_ratio", func(d *td) *float64 { return &d.ShareRatio }),
	decode.Epoch("addition_date", func(d *td) *time.Time { return &d.AdditionDate }),
	decode.Epoch("completion_date", func(d *td) *time.Time { return &d.CompletionDate }),
	decode.String("created_by", func(d *td) *string { return &d.CreatedBy }),
	decode.Int("dl_speed_avg", func(d *td) *int64 { return &d.DlSpeedAvg }),
	decode.Int("dl_speed", func(d *td) *int64 { return &d.DlSpeed }),
	decode.Int("eta", func(d *td) *int64 { return &d.Eta }),
	decode.Epoch("last_seen", func(d *td) *time.Time { return &d.LastSeen }),
	decode.Int("peers", func(d *td) *int64 { return &d.Peers }),
	decode.Int("peers_total", func(d *td) *int64 { return &d.PeersTotal }),
	decode.Int("pieces_have", func(d *td) *int64 { return &d.PiecesHave }),
	decode.Int("pieces_num", func(d *td) *int64 { return &d.PiecesNum }),
	decode.Int("reannounce", func(d *td) *int64 { return &d.Reannounce }),
	decode.Int("seeds", func(d *td) *int64 { return &d.Seeds }),
	decode.Int("seeds_total", func(d *td) *int64 { return &d.SeedsTotal }),
	decode.Int("total_size", func(d *td) *int64 { return &d.TotalSize }),
	decode.Int("up_speed_avg", func(d *td) *int64 { return &d.UpSpeedAvg }),
	decode.Int("up_speed", func(d *td) *int64 { return &d.UpSpeed }),
	decode.Bool("is_private", func(d *td) *bool { return &d.IsPrivate }).Or(false),
}

var contentFields = []decode.Field[ContentItem]{
	decode.Int("index", func(c *ContentItem) *int64 { return &c.Index }),
	decode.String("name", func(c *ContentItem) *string { return &c.Name }),
	decode.Int("size", func(c *ContentItem) *int64 { return &c.Size }),
	decode.Float("progress", func(c *ContentItem) *float64 { return &c.Progress }),
	decode.Int("priority", func(c *ContentItem) *FilePriority { return &c.Priority }),
	decode.Bool("is_seed", func(c *ContentItem) *bool { return &c.IsSeed }).Or(false),
	decode.IntList("piece_range", func(c *ContentItem) *[]int64 { return &c.PieceRange }).Or(nil),
	decode.Float("availability", func(c *ContentItem) *float64 { return &c.Availability }),
}

var buildInfoFields = []decode.Field[BuildInfo]{
	decode.String("qt", func(b *BuildInfo) *string { return &b.Qt }),
	decode.String("libtorrent", func(b *BuildInfo) *string { return &b.Libtorrent }),
	decode.String("boost", func(b *BuildInfo) *string { return &b.Boost }),
	decode.String("openssl", func(b *BuildInfo) *string { return &b.OpenSSL }),
	decode.String("zlib", func(b *BuildInfo) *string { return &b.Zlib }).Or(""),
	decode.Int("bitness", func(b *BuildInfo) *int64 { return &b.Bitness }),
}

var transferFields = []decode.Field[TransferInfo]{
	decode.Int("dl_info_speed", func(t *TransferInfo) *int64 { return &t.DlInfoSpeed }),
	decode.Int("dl_info_data", func(t *TransferInfo) *int64 { return &t.DlInfoData }),
	decode.Int("up_info_speed", func(t *TransferInfo) *int64 { return &t.UpInfoSpeed }),
	decode.Int("up_info_data", func(t *TransferInfo) *int64 { return &t.UpInfoData }),
	decode.Int("dl_rate_limit", func(t *TransferInfo) *int64 { return &t.DlRateLimit }),
	decode.Int("up_rate_limit", func(t *TransferInfo) *int64 { return &t.UpRateLimit }),
	decode.Int("dht_nodes", func(t *TransferInfo) *int64 { return &t.DHTNodes }),
	decode.Enum("connection_status", func(t *TransferInfo) *ConnectionStatus { return &t.ConnectionStatus }, ParseConnectionStatus),
}

var preferenceFields = []decode.Field[Preferences]{
	decode.String("save_path", func(p *Preferences) *string { return &p.SavePath }),
	decode.Bool("temp_path_enabled", func(p *Preferences) *bool { return &p.TempPathEnabled }).Or(false),
	decode.String("temp_path", func(p *Preferences) *string { return &p.TempPath }).Or(""),
	decode.String("locale", func(p *Preferences) *string { return &p.Locale }).Or(""),
	decode.Int("web_ui_port", func(p *Preferences) *int64 { return &p.WebUIPort }).Or(nil),
	decode.Int("max_active_torrents", func(p *Preferences) *int64 { return &p.MaxActiveTorrents }).Or(nil),
	decode.Bool("queueing_enabled", func(p *Preferences) *bool { return &p.QueueingEnabled }).Or(false),
}
