package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/autobrr/qbtc/pkg/config"
	"github.com/autobrr/qbtc/pkg/expression"
	"github.com/autobrr/qbtc/pkg/qbt"
)

type Interface interface {
	Type() string
	Connect(ctx context.Context) error
	Close(ctx context.Context)

	AppInfo(ctx context.Context) (*AppInfo, error)
	TransferSummary(ctx context.Context) (*TransferSummary, error)
	GetTorrents(ctx context.Context, exp *expression.Expressions) ([]*qbt.Torrent, error)
	GetTorrent(ctx context.Context, hash string) (*qbt.Torrent, error)
}

type AppInfo struct {
	Version         string
	WebAPIVersion   string
	Build           qbt.BuildInfo
	DefaultSavePath string
	Preferences     qbt.Preferences
}

type TransferSummary struct {
	qbt.TransferInfo
	AlternativeLimits bool
	DownloadLimit     int64
	UploadLimit       int64
}

// NewClient builds the client configured under clients.<name>.
func NewClient(name string) (Interface, error) {
	clientType := config.K.String(config.ClientKey(name) + config.Delimiter + "type")
	if clientType == "" {
		clientType = "qbittorrent"
	}

	switch strings.ToLower(clientType) {
	case "qbittorrent", "qbit", "qbt":
		return NewQBittorrent(name)
	default:
		return nil, fmt.Errorf("client type not supported: %s", clientType)
	}
}
