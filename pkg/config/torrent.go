package config

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/bobesa/go-domain-util/domainutil"

	"github.com/autobrr/qbtc/pkg/qbt"
	"github.com/autobrr/qbtc/pkg/regex"
	"github.com/autobrr/qbtc/pkg/sliceutils"
)

// Torrent is the view of a torrent that filter expressions are evaluated against.
type Torrent struct {
	// torrent
	Hash           string   `json:"Hash"`
	Name           string   `json:"Name"`
	Path           string   `json:"Path"`
	Label          string   `json:"Label"`
	Tags           []string `json:"Tags"`
	State          string   `json:"State"`
	StateLabel     string   `json:"StateLabel"`
	TotalBytes     int64    `json:"TotalBytes"`
	Size           int64    `json:"Size"`
	AmountLeft     int64    `json:"AmountLeft"`
	Progress       float64  `json:"Progress"`
	Downloaded     bool     `json:"Downloaded"`
	Seeding        bool     `json:"Seeding"`
	Paused         bool     `json:"Paused"`
	Ratio          float64  `json:"Ratio"`
	Uploaded       int64    `json:"Uploaded"`
	DlSpeed        int64    `json:"DlSpeed"`
	UpSpeed        int64    `json:"UpSpeed"`
	UpLimit        int64    `json:"UpLimit"`
	DlLimit        int64    `json:"DlLimit"`
	Seeds          int64    `json:"Seeds"`
	Peers          int64    `json:"Peers"`
	IsPrivate      bool     `json:"IsPrivate"`
	IsPublic       bool     `json:"IsPublic"`
	AutoTMM        bool     `json:"AutoTMM"`
	ForceStart     bool     `json:"ForceStart"`
	NeverActive    bool     `json:"NeverActive"`
	AddedSeconds   int64    `json:"AddedSeconds"`
	AddedHours     float64  `json:"AddedHours"`
	AddedDays      float64  `json:"AddedDays"`
	SeedingSeconds int64    `json:"SeedingSeconds"`
	SeedingHours   float64  `json:"SeedingHours"`
	SeedingDays    float64  `json:"SeedingDays"`
	InactiveDays   float64  `json:"InactiveDays"`

	// tracker
	Tracker     string `json:"Tracker"`
	TrackerName string `json:"TrackerName"`

	regexPattern *regex.Pattern
}

// NewTorrent derives the filter view of s relative to now.
func NewTorrent(s qbt.TorrentSummary, now time.Time) *Torrent {
	added := elapsed(now, s.AddedOn)
	seeding := time.Duration(s.SeedingTime) * time.Second
	inactive := elapsed(now, s.LastActivity)

	return &Torrent{
		Hash:           s.Hash,
		Name:           s.Name,
		Path:           s.SavePath,
		Label:          s.Category,
		Tags:           sliceutils.SplitTags(s.Tags),
		State:          s.State.Wire(),
		StateLabel:     s.State.String(),
		TotalBytes:     s.TotalSize,
		Size:           s.Size,
		AmountLeft:     s.AmountLeft,
		Progress:       s.Progress,
		Downloaded:     s.State.IsComplete() || (s.AmountLeft == 0 && s.Progress >= 1),
		Seeding:        s.State == qbt.StateUploading || s.State == qbt.StateStalledUP || s.State == qbt.StateForcedUP,
		Paused:         s.State.IsPaused(),
		Ratio:          s.Ratio,
		Uploaded:       s.Uploaded,
		DlSpeed:        s.DlSpeed,
		UpSpeed:        s.UpSpeed,
		UpLimit:        s.UpLimit,
		DlLimit:        s.DlLimit,
		Seeds:          s.NumComplete,
		Peers:          s.NumIncomplete,
		IsPrivate:      s.Private,
		IsPublic:       !s.Private,
		AutoTMM:        s.AutoTMM,
		ForceStart:     s.ForceStart,
		NeverActive:    s.LastActivity.IsZero(),
		AddedSeconds:   int64(added.Seconds()),
		AddedHours:     added.Hours(),
		AddedDays:      added.Hours() / 24,
		SeedingSeconds: int64(seeding.Seconds()),
		SeedingHours:   seeding.Hours(),
		SeedingDays:    seeding.Hours() / 24,
		InactiveDays:   inactive.Hours() / 24,
		Tracker:        s.Tracker,
		TrackerName:    parseTrackerDomain(s.Tracker),
	}
}

func elapsed(now, t time.Time) time.Duration {
	if t.IsZero() || t.After(now) {
		return 0
	}

	return now.Sub(t)
}

func parseTrackerDomain(trackerURL string) string {
	if trackerURL == "" {
		return ""
	}

	u, err := url.Parse(trackerURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	if domain := domainutil.Domain(u.Hostname()); domain != "" {
		return domain
	}

	return u.Hostname()
}

func (t *Torrent) HasAllTags(tags ...string) bool {
	for _, v := range tags {
		if !sliceutils.StringSliceContains(t.Tags, v, true) {
			return false
		}
	}

	return true
}

func (t *Torrent) HasAnyTag(tags ...string) bool {
	for _, v := range tags {
		if sliceutils.StringSliceContains(t.Tags, v, true) {
			return true
		}
	}

	return false
}

// StateIs reports whether the torrent's Web API state is one of states.
func (t *Torrent) StateIs(states ...string) bool {
	return sliceutils.StringSliceContains(states, t.State, true)
}

func (t *Torrent) IsTrackerless() bool {
	return t.Tracker == ""
}

func (t *Torrent) Log(n float64) float64 {
	return math.Log(n)
}

// RegexMatch reports whether the torrent name matches pattern.
func (t *Torrent) RegexMatch(pattern string) bool {
	if t.regexPattern == nil || t.regexPattern.Expression.String() != pattern {
		compiled, err := regex.Compile(pattern)
		if err != nil {
			return false
		}
		t.regexPattern = compiled
	}

	match, err := regex.Check(t.Name, t.regexPattern)
	if err != nil {
		return false
	}

	return match
}

// RegexMatchAny checks if the torrent name matches any of the comma separated patterns
func (t *Torrent) RegexMatchAny(patternsStr string) bool {
	patterns, err := regex.CompileList(patternsStr)
	if err != nil {
		return false
	}

	match, err := regex.CheckAny(t.Name, patterns)
	if err != nil {
		return false
	}
	return match
}

// RegexMatchAll checks if the torrent name matches all of the comma separated patterns
func (t *Torrent) RegexMatchAll(patternsStr string) bool {
	patterns, err := regex.CompileList(strings.TrimSpace(patternsStr))
	if err != nil {
		return false
	}

	match, err := regex.CheckAll(t.Name, patterns)
	if err != nil {
		return false
	}
	return match
}
