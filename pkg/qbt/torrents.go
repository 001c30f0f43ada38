package qbt

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/autobrr/qbtc/pkg/qbt/decode"
)

// Torrent is a TorrentSummary bound to the Client that listed it.
// Its detail record is fetched on first use and cached until a forced refresh.
type Torrent struct {
	TorrentSummary
	FetchedAt time.Time

	client *Client
	detail *TorrentDetail
}

// Torrents lists every torrent in the order reported by the Web API.
func (c *Client) Torrents(ctx context.Context) ([]*Torrent, error) {
	summaries, err := getArray(ctx, c, "torrents/info", nil, summaryFields)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]*Torrent, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, &Torrent{TorrentSummary: s, FetchedAt: now, client: c})
	}

	c.log.Debugf("Retrieved %d torrents", len(out))
	return out, nil
}

func (c *Client) TorrentProperties(ctx context.Context, hash string) (TorrentDetail, error) {
	d, _, err := getObject(ctx, c, "torrents/properties", url.Values{"hash": {hash}}, detailFields)
	return d, err
}

func (c *Client) TorrentContents(ctx context.Context, hash string) ([]ContentItem, error) {
	return getArray(ctx, c, "torrents/files", url.Values{"hash": {hash}}, contentFields)
}

// TorrentFile fetches a single file entry by index.
func (c *Client) TorrentFile(ctx context.Context, hash string, index int) (ContentItem, error) {
	const endpoint = "torrents/files"

	items, err := getArray(ctx, c, endpoint, url.Values{"hash": {hash}, "indexes": {strconv.Itoa(index)}}, contentFields)
	if err != nil {
		return ContentItem{}, err
	}

	if len(items) != 1 {
		return ContentItem{}, decodeError("decode", endpoint,
			decode.Malformed(fmt.Errorf("expected 1 file for index %d, got %d", index, len(items))))
	}

	return items[0], nil
}

// Detail returns the torrent's properties, fetching them when not cached or when force is set.
// A failed refresh leaves any previously cached value in place.
func (t *Torrent) Detail(ctx context.Context, force bool) (TorrentDetail, error) {
	if t.detail != nil && !force {
		return *t.detail, nil
	}

	d, err := t.client.TorrentProperties(ctx, t.Hash)
	if err != nil {
		return TorrentDetail{}, fmt.Errorf("torrent %s: %w", t.Hash, err)
	}

	t.detail = &d
	return d, nil
}

// CachedDetail returns the cached detail without any network call.
func (t *Torrent) CachedDetail() (TorrentDetail, bool) {
	if t.detail == nil {
		return TorrentDetail{}, false
	}

	return *t.detail, true
}

func (t *Torrent) Contents(ctx context.Context) ([]ContentItem, error) {
	items, err := t.client.TorrentContents(ctx, t.Hash)
	if err != nil {
		return nil, fmt.Errorf("torrent %s: %w", t.Hash, err)
	}

	return items, nil
}

func (t *Torrent) File(ctx context.Context, index int) (ContentItem, error) {
	item, err := t.client.TorrentFile(ctx, t.Hash, index)
	if err != nil {
		return ContentItem{}, fmt.Errorf("torrent %s: %w", t.Hash, err)
	}

	return item, nil
}
