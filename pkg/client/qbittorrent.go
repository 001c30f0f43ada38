package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/autobrr/qbtc/pkg/config"
	"github.com/autobrr/qbtc/pkg/expression"
	"github.com/autobrr/qbtc/pkg/logger"
	"github.com/autobrr/qbtc/pkg/qbt"
)

/* Struct */

type QBittorrent struct {
	Url         *string `validate:"required,url"`
	User        string
	Password    string
	Token       string
	InsecureTLS bool          `koanf:"insecure_tls"`
	Timeout     time.Duration `validate:"gte=0"`
	RateLimit   int           `koanf:"rate_limit" validate:"gte=0"`

	// internal
	log        *logrus.Entry
	clientType string
	client     *qbt.Client
}

/* Initializer */

func NewQBittorrent(name string) (Interface, error) {
	tc := QBittorrent{
		log:        logger.GetLogger(name),
		clientType: "qBittorrent",
	}

	// load config
	if err := config.K.Unmarshal(config.ClientKey(name), &tc); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// validate config
	if errs := config.ValidateStruct(tc); errs != nil {
		return nil, fmt.Errorf("validate config: %v", errs)
	}

	return &tc, nil
}

func (c *QBittorrent) options() qbt.Options {
	return qbt.Options{
		BaseURL:     *c.Url,
		Username:    c.User,
		Password:    c.Password,
		Token:       c.Token,
		InsecureTLS: c.InsecureTLS,
		Timeout:     c.Timeout,
		RateLimit:   c.RateLimit,
		Logger:      c.log,
	}
}

/* Interface  */

func (c *QBittorrent) Type() string {
	return c.clientType
}

func (c *QBittorrent) Connect(ctx context.Context) error {
	// login
	client, err := qbt.Connect(ctx, c.options())
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// retrieve & validate api version
	apiVersion, err := client.WebAPISemver(ctx)
	if err != nil {
		client.Close(ctx)
		return fmt.Errorf("get api version: %w", err)
	}

	c.client = client
	c.log.Debugf("Connected to %s, API Version: %v", client.Session().BaseURL(), apiVersion)
	return nil
}

func (c *QBittorrent) Close(ctx context.Context) {
	if c.client == nil {
		return
	}

	c.client.Close(ctx)
	c.client = nil
}

func (c *QBittorrent) connected() error {
	if c.client == nil {
		return fmt.Errorf("%s: not connected", c.clientType)
	}

	return nil
}

func (c *QBittorrent) AppInfo(ctx context.Context) (*AppInfo, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	var (
		info AppInfo
		err  error
	)

	if info.Version, err = c.client.AppVersion(ctx); err != nil {
		return nil, fmt.Errorf("get app version: %w", err)
	}

	if info.WebAPIVersion, err = c.client.WebAPIVersion(ctx); err != nil {
		return nil, fmt.Errorf("get api version: %w", err)
	}

	if info.Build, err = c.client.BuildInfo(ctx); err != nil {
		return nil, fmt.Errorf("get build info: %w", err)
	}

	if info.DefaultSavePath, err = c.client.DefaultSavePath(ctx); err != nil {
		return nil, fmt.Errorf("get default save path: %w", err)
	}

	if info.Preferences, err = c.client.Preferences(ctx); err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	return &info, nil
}

func (c *QBittorrent) TransferSummary(ctx context.Context) (*TransferSummary, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	var (
		ts  TransferSummary
		err error
	)

	if ts.TransferInfo, err = c.client.TransferInfo(ctx); err != nil {
		return nil, fmt.Errorf("get transfer info: %w", err)
	}

	if ts.AlternativeLimits, err = c.client.AlternativeSpeedLimitsEnabled(ctx); err != nil {
		return nil, fmt.Errorf("get speed limits mode: %w", err)
	}

	if ts.DownloadLimit, err = c.client.GlobalDownloadLimit(ctx); err != nil {
		return nil, fmt.Errorf("get download limit: %w", err)
	}

	if ts.UploadLimit, err = c.client.GlobalUploadLimit(ctx); err != nil {
		return nil, fmt.Errorf("get upload limit: %w", err)
	}

	return &ts, nil
}

// GetTorrents lists torrents, keeping only those that pass exp when it is set.
func (c *QBittorrent) GetTorrents(ctx context.Context, exp *expression.Expressions) ([]*qbt.Torrent, error) {
	if err := c.connected(); err != nil {
		return nil, err
	}

	// retrieve torrents from client
	c.log.Tracef("Retrieving torrents...")
	torrents, err := c.client.Torrents(ctx)
	if err != nil {
		return nil, fmt.Errorf("get torrents: %w", err)
	}
	c.log.Tracef("Retrieved %d torrents", len(torrents))

	if exp.Empty() {
		return torrents, nil
	}

	now := time.Now()
	filtered := make([]*qbt.Torrent, 0, len(torrents))
	for _, t := range torrents {
		match, err := expression.Matches(ctx, config.NewTorrent(t.TorrentSummary, now), exp)
		if err != nil {
			return nil, fmt.Errorf("filter torrent: %v: %w", t.Hash, err)
		}

		if match {
			filtered = append(filtered, t)
		}
	}

	c.log.Debugf("%d of %d torrents passed the filter", len(filtered), len(torrents))
	return filtered, nil
}

// GetTorrent finds a torrent by hash, case-insensitively.
func (c *QBittorrent) GetTorrent(ctx context.Context, hash string) (*qbt.Torrent, error) {
	torrents, err := c.GetTorrents(ctx, nil)
	if err != nil {
		return nil, err
	}

	for _, t := range torrents {
		if strings.EqualFold(t.Hash, hash) {
			return t, nil
		}
	}

	return nil, fmt.Errorf("torrent not found: %s", hash)
}
