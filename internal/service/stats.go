package service

import "sync/atomic"

// Stats counts relay outcomes since startup
type Stats struct {
	uploadsOK         atomic.Int64
	uploadsFailed     atomic.Int64
	generationsOK     atomic.Int64
	generationsFailed atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	UploadsOK         int64 `json:"uploads_ok"`
	UploadsFailed     int64 `json:"uploads_failed"`
	GenerationsOK     int64 `json:"generations_ok"`
	GenerationsFailed int64 `json:"generations_failed"`
}

func (s *Stats) recordUpload(ok bool) {
	if ok {
		s.uploadsOK.Add(1)
		return
	}
	s.uploadsFailed.Add(1)
}

func (s *Stats) recordGeneration(ok bool) {
	if ok {
		s.generationsOK.Add(1)
		return
	}
	s.generationsFailed.Add(1)
}

// Snapshot returns the current counter values
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		UploadsOK:         s.uploadsOK.Load(),
		UploadsFailed:     s.uploadsFailed.Load(),
		GenerationsOK:     s.generationsOK.Load(),
		GenerationsFailed: s.generationsFailed.Load(),
	}
}
