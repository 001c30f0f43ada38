package runtime

import (
	goruntime "runtime"
	"strconv"
	"time"
)

// Build information, populated at build time with -ldflags "-X".
var (
	Version   = "0.0.0-dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)

// UserAgent is sent with every request made against a torrent client.
func UserAgent() string {
	return "qbtc/" + Version
}

// BuildTime parses Timestamp as unix seconds. ok is false when it is unset or not a number.
func BuildTime() (t time.Time, ok bool) {
	sec, err := strconv.ParseInt(Timestamp, 10, 64)
	if err != nil || sec <= 0 {
		return time.Time{}, false
	}

	return time.Unix(sec, 0).UTC(), true
}

// Platform is the GOOS/GOARCH pair the binary was built for.
func Platform() string {
	return goruntime.GOOS + "/" + goruntime.GOARCH
}
