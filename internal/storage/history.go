package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
)

// HistoryKey is the single key the calculation log is stored under.
const HistoryKey = "calculator-history"

// Backend names accepted in the config file.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// SQLiteHistory keeps the calculation log as one JSON value in the kv table.
type SQLiteHistory struct {
	db  *DB
	log zerolog.Logger
}

// NewSQLiteHistory creates a history store backed by db.
func NewSQLiteHistory(db *DB, log zerolog.Logger) *SQLiteHistory {
	return &SQLiteHistory{db: db, log: log}
}

// Load returns the stored log. A missing or malformed value loads as empty.
func (h *SQLiteHistory) Load() ([]calc.Entry, error) {
	raw, err := h.db.Get(HistoryKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return decodeHistory([]byte(raw), h.log), nil
}

// Save replaces the stored log with entries.
func (h *SQLiteHistory) Save(entries []calc.Entry) error {
	data, err := encodeHistory(entries)
	if err != nil {
		return err
	}
	return h.db.Put(HistoryKey, string(data))
}

// FileHistory keeps the calculation log in history.json in the data dir.
type FileHistory struct {
	path string
	log  zerolog.Logger
}

// NewFileHistory creates a file-backed history store in dataDir.
func NewFileHistory(dataDir string, log zerolog.Logger) (*FileHistory, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileHistory{
		path: filepath.Join(dataDir, "history.json"),
		log:  log,
	}, nil
}

// Load returns the stored log. A missing or malformed file loads as empty.
func (h *FileHistory) Load() ([]calc.Entry, error) {
	data, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return decodeHistory(data, h.log), nil
}

// Save writes entries through a temp file so a crash never leaves a
// truncated log behind.
func (h *FileHistory) Save(entries []calc.Entry) error {
	data, err := encodeHistory(entries)
	if err != nil {
		return err
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		return fmt.Errorf("replacing history: %w", err)
	}
	return nil
}

// OpenHistory returns the store for the configured backend. The sqlite
// backend needs db; when db is nil it falls back to the JSON file.
func OpenHistory(backend string, db *DB, dataDir string, log zerolog.Logger) (calc.HistoryStore, error) {
	if backend != BackendJSON && db != nil {
		return NewSQLiteHistory(db, log), nil
	}
	return NewFileHistory(dataDir, log)
}

func encodeHistory(entries []calc.Entry) ([]byte, error) {
	if entries == nil {
		entries = []calc.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling history: %w", err)
	}
	return data, nil
}

func decodeHistory(data []byte, log zerolog.Logger) []calc.Entry {
	var entries []calc.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Msg("discarding malformed history")
		return nil
	}
	return entries
}
