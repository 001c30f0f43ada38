package qbt

import (
	qbittorrent "github.com/autobrr/go-qbittorrent"
)

// TorrentState is the lifecycle state reported for a torrent.
// Unrecognised wire values map to StateUnknown.
type TorrentState int

const (
	StateUnknown TorrentState = iota
	StateError
	StateMissingFiles
	StateUploading
	StatePausedUP
	StatePausedDL
	StateQueuedUP
	StateQueuedDL
	StateStalledUP
	StateStalledDL
	StateCheckingUP
	StateCheckingDL
	StateCheckingResumeData
	StateForcedUP
	StateForcedDL
	StateAllocating
	StateDownloading
	StateMetaDL
	StateMoving
	StateStoppedUP
	StateStoppedDL
)

type stateInfo struct {
	wire  qbittorrent.TorrentState
	label string
}

var states = map[TorrentState]stateInfo{
	StateUnknown:            {qbittorrent.TorrentStateUnknown, "Unknown"},
	StateError:              {qbittorrent.TorrentStateError, "Error"},
	StateMissingFiles:       {qbittorrent.TorrentStateMissingFiles, "Missing Files"},
	StateUploading:          {qbittorrent.TorrentStateUploading, "Uploading"},
	StatePausedUP:           {qbittorrent.TorrentStatePausedUp, "Paused Uploading"},
	StatePausedDL:           {qbittorrent.TorrentStatePausedDl, "Paused Downloading"},
	StateQueuedUP:           {qbittorrent.TorrentStateQueuedUp, "Queued Uploading"},
	StateQueuedDL:           {qbittorrent.TorrentStateQueuedDl, "Queued Download"},
	StateStalledUP:          {qbittorrent.TorrentStateStalledUp, "Stalled Uploading"},
	StateStalledDL:          {qbittorrent.TorrentStateStalledDl, "Stalled Download"},
	StateCheckingUP:         {qbittorrent.TorrentStateCheckingUp, "Checking Uploading"},
	StateCheckingDL:         {qbittorrent.TorrentStateCheckingDl, "Checking Download"},
	StateCheckingResumeData: {qbittorrent.TorrentStateCheckingResumeData, "Checking Resume Data"},
	StateForcedUP:           {qbittorrent.TorrentStateForcedUp, "Forced Uploading"},
	StateForcedDL:           {qbittorrent.TorrentStateForcedDl, "Forced Downloading"},
	StateAllocating:         {qbittorrent.TorrentStateAllocating, "Allocating Space"},
	StateDownloading:        {qbittorrent.TorrentStateDownloading, "Downloading"},
	StateMetaDL:             {qbittorrent.TorrentStateMetaDl, "Metadata Downloading"},
	StateMoving:             {qbittorrent.TorrentStateMoving, "Moving"},
	StateStoppedUP:          {qbittorrent.TorrentStateStoppedUp, "Stopped Uploading"},
	StateStoppedDL:          {qbittorrent.TorrentStateStoppedDl, "Stopped Downloading"},
}

var statesByWire = func() map[string]TorrentState {
	m := make(map[string]TorrentState, len(states))
	for s, info := range states {
		if s == StateUnknown {
			continue
		}
		m[string(info.wire)] = s
	}
	return m
}()

// ParseState maps a wire value to a TorrentState. It never fails.
func ParseState(wire string) TorrentState {
	if s, ok := statesByWire[wire]; ok {
		return s
	}

	return StateUnknown
}

// Wire returns the Web API spelling of the state.
func (s TorrentState) Wire() string {
	if info, ok := states[s]; ok {
		return string(info.wire)
	}

	return string(qbittorrent.TorrentStateUnknown)
}

// String returns the display label, e.g. "Paused Uploading".
func (s TorrentState) String() string {
	if info, ok := states[s]; ok {
		return info.label
	}

	return states[StateUnknown].label
}

func (s TorrentState) IsComplete() bool {
	switch s {
	case StateUploading, StatePausedUP, StateQueuedUP, StateStalledUP, StateCheckingUP, StateForcedUP, StateStoppedUP:
		return true
	default:
		return false
	}
}

func (s TorrentState) IsPaused() bool {
	switch s {
	case StatePausedUP, StatePausedDL, StateStoppedUP, StateStoppedDL:
		return true
	default:
		return false
	}
}
