package config

// FilterConfiguration is a named set of expressions over torrents.
// A torrent passes when every Include expression matches and no Exclude expression does.
type FilterConfiguration struct {
	Include []string
	Exclude []string
}
