package qbt

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
)

func (c *Client) AppVersion(ctx context.Context) (string, error) {
	return c.getText(ctx, "app/version")
}

func (c *Client) WebAPIVersion(ctx context.Context) (string, error) {
	return c.getText(ctx, "app/webapiVersion")
}

// WebAPISemver parses the Web API version, e.g. "2.9.3".
func (c *Client) WebAPISemver(ctx context.Context) (*semver.Version, error) {
	const endpoint = "app/webapiVersion"

	raw, err := c.getText(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, scalarError(endpoint, err)
	}

	return v, nil
}

func (c *Client) BuildInfo(ctx context.Context) (BuildInfo, error) {
	b, _, err := getObject(ctx, c, "app/buildInfo", nil, buildInfoFields)
	return b, err
}

func (c *Client) Preferences(ctx context.Context) (Preferences, error) {
	p, raw, err := getObject(ctx, c, "app/preferences", nil, preferenceFields)
	if err != nil {
		return Preferences{}, err
	}

	p.Raw = raw
	return p, nil
}

func (c *Client) DefaultSavePath(ctx context.Context) (string, error) {
	return c.getText(ctx, "app/defaultSavePath")
}
