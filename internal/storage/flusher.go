package storage

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/calc"
)

// Flusher writes history snapshots to a store from a single goroutine.
// Submit never blocks; when saves fall behind only the newest snapshot is
// written, so writes stay in order and the store always ends on the latest
// log.
type Flusher struct {
	store calc.HistoryStore
	log   zerolog.Logger

	mu      sync.Mutex
	pending []calc.Entry
	dirty   bool
	closed  bool

	wake   chan struct{}
	quit   chan struct{}
	done   chan struct{}
	errors chan error
}

// NewFlusher starts a flusher for store.
func NewFlusher(store calc.HistoryStore, log zerolog.Logger) *Flusher {
	f := &Flusher{
		store:  store,
		log:    log,
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		errors: make(chan error, 1),
	}
	go f.run()
	return f
}

// Submit queues entries to be saved. It has the signature of an engine
// history listener.
func (f *Flusher) Submit(entries []calc.Entry) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.pending = entries
	f.dirty = true
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Errors reports save failures. Only the most recent unread failure is kept.
func (f *Flusher) Errors() <-chan error {
	return f.errors
}

// Close writes any pending snapshot and stops the goroutine.
func (f *Flusher) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	close(f.quit)
	<-f.done
}

func (f *Flusher) run() {
	defer close(f.done)
	for {
		select {
		case <-f.wake:
			f.flush()
		case <-f.quit:
			f.flush()
			return
		}
	}
}

func (f *Flusher) flush() {
	f.mu.Lock()
	if !f.dirty {
		f.mu.Unlock()
		return
	}
	entries := f.pending
	f.dirty = false
	f.mu.Unlock()

	if err := f.store.Save(entries); err != nil {
		f.log.Warn().Err(err).Int("entries", len(entries)).Msg("saving history")
		select {
		case f.errors <- err:
		default:
		}
		return
	}
	f.log.Debug().Int("entries", len(entries)).Msg("history saved")
}
