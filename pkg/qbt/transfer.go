package qbt

import (
	"context"
	"strconv"
	"strings"
)

func (c *Client) TransferInfo(ctx context.Context) (TransferInfo, error) {
	t, _, err := getObject(ctx, c, "transfer/info", nil, transferFields)
	return t, err
}

// AlternativeSpeedLimitsEnabled reports whether the alternative speed limits are active.
// The endpoint answers with a bare "1"/"0" (older releases "True"/"False").
func (c *Client) AlternativeSpeedLimitsEnabled(ctx context.Context) (bool, error) {
	const endpoint = "transfer/speedLimitsMode"

	raw, err := c.getText(ctx, endpoint)
	if err != nil {
		return false, err
	}

	enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, scalarError(endpoint, err)
	}

	return enabled, nil
}

// GlobalDownloadLimit returns the global download limit in bytes/s, 0 when unlimited.
func (c *Client) GlobalDownloadLimit(ctx context.Context) (int64, error) {
	return c.limit(ctx, "transfer/downloadLimit")
}

// GlobalUploadLimit returns the global upload limit in bytes/s, 0 when unlimited.
func (c *Client) GlobalUploadLimit(ctx context.Context) (int64, error) {
	return c.limit(ctx, "transfer/uploadLimit")
}

func (c *Client) limit(ctx context.Context, endpoint string) (int64, error) {
	raw, err := c.getText(ctx, endpoint)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, scalarError(endpoint, err)
	}

	return n, nil
}
