package app

import (
	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/storage"
)

// Session bundles one calculator engine with its persistence.
type Session struct {
	Engine  *calc.Engine
	DB      *storage.DB // nil when the database could not be opened
	Flusher *storage.Flusher
}

// OpenSession restores the saved history from dataDir and wires the engine
// to write it back. Storage is best-effort: any failure is logged and the
// session runs without the affected piece. An empty dataDir gives an
// in-memory session.
func OpenSession(cfg *storage.Config, dataDir string, log zerolog.Logger) *Session {
	s := &Session{}
	if dataDir == "" {
		s.Engine = calc.New()
		return s
	}

	db, err := storage.OpenDB(dataDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dataDir).Msg("storage unavailable")
	} else {
		s.DB = db
	}

	store, err := storage.OpenHistory(cfg.HistoryBackend, s.DB, dataDir, log)
	if err != nil {
		log.Warn().Err(err).Msg("history will not be saved")
		s.Engine = calc.New()
		return s
	}

	entries, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("starting with empty history")
	}
	log.Debug().Int("entries", len(entries)).Str("backend", cfg.HistoryBackend).Msg("history loaded")

	s.Flusher = storage.NewFlusher(store, log)
	s.Engine = calc.New(
		calc.WithHistory(entries),
		calc.WithHistoryListener(s.Flusher.Submit),
	)
	return s
}

// Close writes pending history and releases storage.
func (s *Session) Close() {
	if s.Flusher != nil {
		s.Flusher.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
