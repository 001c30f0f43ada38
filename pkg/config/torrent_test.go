package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/autobrr/qbtc/pkg/qbt"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleSummary() qbt.TorrentSummary {
	return qbt.TorrentSummary{
		Hash:         "8A19577FB5F690970CA43A57FF1011AE202244B8",
		Name:         "ubuntu-24.04-desktop-amd64.iso",
		Category:     "linux",
		Tags:         "linux, iso",
		State:        qbt.StateStalledUP,
		SavePath:     "/downloads/",
		Size:         4_700_000_000,
		TotalSize:    4_700_000_000,
		Progress:     1,
		Ratio:        2.5,
		SeedingTime:  int64((72 * time.Hour).Seconds()),
		AddedOn:      testNow.Add(-96 * time.Hour),
		LastActivity: testNow.Add(-24 * time.Hour),
		Tracker:      "https://torrent.ubuntu.com/announce",
		Private:      false,
		NumComplete:  120,
	}
}

func TestNewTorrent(t *testing.T) {
	tor := NewTorrent(sampleSummary(), testNow)

	assert.Equal(t, []string{"linux", "iso"}, tor.Tags)
	assert.Equal(t, "stalledUP", tor.State)
	assert.Equal(t, "Stalled Uploading", tor.StateLabel)
	assert.True(t, tor.Downloaded)
	assert.True(t, tor.Seeding)
	assert.False(t, tor.Paused)
	assert.True(t, tor.IsPublic)
	assert.InDelta(t, 4.0, tor.AddedDays, 1e-9)
	assert.InDelta(t, 3.0, tor.SeedingDays, 1e-9)
	assert.InDelta(t, 1.0, tor.InactiveDays, 1e-9)
	assert.Equal(t, int64(120), tor.Seeds)
	assert.Equal(t, "ubuntu.com", tor.TrackerName)
	assert.False(t, tor.NeverActive)
}

func TestNewTorrentUnsetTimes(t *testing.T) {
	s := sampleSummary()
	s.AddedOn = time.Time{}
	s.LastActivity = time.Time{}
	s.State = qbt.StateDownloading
	s.Progress = 0.3
	s.AmountLeft = 10
	s.Tracker = ""

	tor := NewTorrent(s, testNow)
	assert.Zero(t, tor.AddedSeconds)
	assert.True(t, tor.NeverActive)
	assert.False(t, tor.Downloaded)
	assert.False(t, tor.Seeding)
	assert.True(t, tor.IsTrackerless())
	assert.Empty(t, tor.TrackerName)
}

func TestTorrentTags(t *testing.T) {
	tor := NewTorrent(sampleSummary(), testNow)

	assert.True(t, tor.HasAllTags("linux", "ISO"))
	assert.False(t, tor.HasAllTags("linux", "keep"))
	assert.True(t, tor.HasAnyTag("keep", "iso"))
	assert.False(t, tor.HasAnyTag("keep"))
	assert.True(t, tor.StateIs("uploading", "stalledup"))
	assert.False(t, tor.StateIs("downloading"))
}

func TestTorrentRegex(t *testing.T) {
	tor := NewTorrent(sampleSummary(), testNow)

	tests := []struct {
		name     string
		match    func() bool
		expected bool
	}{
		{name: "match", match: func() bool { return tor.RegexMatch(`^ubuntu-\d+`) }, expected: true},
		{name: "no_match", match: func() bool { return tor.RegexMatch(`^debian`) }, expected: false},
		{name: "invalid", match: func() bool { return tor.RegexMatch(`(`) }, expected: false},
		{name: "any", match: func() bool { return tor.RegexMatchAny("debian, amd64") }, expected: true},
		{name: "all", match: func() bool { return tor.RegexMatchAll("ubuntu, amd64") }, expected: true},
		{name: "all_miss", match: func() bool { return tor.RegexMatchAll("ubuntu, arm64") }, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.match())
		})
	}
}
