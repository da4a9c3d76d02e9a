package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Run is one completed scan over a batch of pastes.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	PastesSeen int       `json:"pastes_seen"`
	Reports    []Report  `json:"reports"`
}

// Session holds the operator's current scan configuration and the latest
// run. One operator, one session; the mutex only exists so the HTTP layer
// can read while the monitor loop writes.
type Session struct {
	mu      sync.RWMutex
	cfg     ScanConfig
	lastRun *Run
}

func NewSession() *Session {
	return &Session{}
}

// Config returns a copy of the current configuration. The keyword slice is
// copied so no caller can mutate the session's value after the fact.
func (s *Session) Config() ScanConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ScanConfig{
		Keywords:      append([]string(nil), s.cfg.Keywords...),
		CaseSensitive: s.cfg.CaseSensitive,
	}
}

// SetKeywords replaces the keyword list wholesale.
func (s *Session) SetKeywords(keywords []string) {
	kws := append([]string(nil), keywords...)
	s.mu.Lock()
	s.cfg = ScanConfig{Keywords: kws, CaseSensitive: s.cfg.CaseSensitive}
	s.mu.Unlock()
}

// SetCaseSensitive replaces the case-sensitivity flag.
func (s *Session) SetCaseSensitive(v bool) {
	s.mu.Lock()
	s.cfg = ScanConfig{Keywords: s.cfg.Keywords, CaseSensitive: v}
	s.mu.Unlock()
}

// RecordRun stores a completed run as the latest and returns it.
func (s *Session) RecordRun(pastesSeen int, reports []Report) Run {
	run := Run{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		PastesSeen: pastesSeen,
		Reports:    reports,
	}
	s.mu.Lock()
	s.lastRun = &run
	s.mu.Unlock()
	return run
}

// LastRun returns the most recent run, if any.
func (s *Session) LastRun() (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return Run{}, false
	}
	return *s.lastRun, true
}
