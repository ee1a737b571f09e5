// Package autosave persists the resume document with a debounced write-through
// to a store.Store and restores it once at startup.
package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/schemas"
	"github.com/jonathan/careerforge/internal/store"
	"github.com/jonathan/careerforge/internal/types"
)

// Status is the save indicator shown to the user
type Status string

const (
	// StatusSaved means the store holds the latest document
	StatusSaved Status = "saved"
	// StatusSaving means a write is in flight
	StatusSaving Status = "saving"
	// StatusUnsaved means there are edits the store has not seen
	StatusUnsaved Status = "unsaved"
)

// DefaultDelay is the quiet period after the last edit before a write
const DefaultDelay = time.Second

const defaultWriteTimeout = 10 * time.Second

// Save triggers reported to the Recorder
const (
	TriggerDebounce = "debounce"
	TriggerManual   = "manual"
	TriggerClose    = "close"
)

// Load outcomes reported to the Recorder
const (
	LoadRestored = "restored"
	LoadAbsent   = "absent"
	LoadEmpty    = "empty"
	LoadInvalid  = "invalid"
	LoadError    = "error"
)

// Recorder receives persistence events, typically for metrics
type Recorder interface {
	ObserveSave(trigger string, err error)
	ObserveLoad(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSave(string, error) {}
func (nopRecorder) ObserveLoad(string)        {}

// Option configures a Saver
type Option func(*Saver)

// WithKey overrides the store key
func WithKey(key string) Option {
	return func(s *Saver) { s.key = key }
}

// WithDelay overrides the debounce quiet period
func WithDelay(d time.Duration) Option {
	return func(s *Saver) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithWriteTimeout bounds every store call
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Saver) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithLogger sets the logger used for failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *Saver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the persistence event recorder
func WithRecorder(r Recorder) Option {
	return func(s *Saver) {
		if r != nil {
			s.recorder = r
		}
	}
}

// OnStatusChange registers a listener for status transitions. Listeners run
// in transition order and must not call back into the saver's mutating methods.
func OnStatusChange(fn func(Status)) Option {
	return func(s *Saver) { s.listeners = append(s.listeners, fn) }
}

// Saver debounces document changes into store writes.
//
// At most one timer is pending. Every change bumps a generation counter, so a
// timer belonging to a superseded change finds nothing to do. Writes are
// serialized by writeMu, so an older snapshot never lands after a newer one.
type Saver struct {
	store        store.Store
	key          string
	delay        time.Duration
	writeTimeout time.Duration
	logger       *zap.Logger
	recorder     Recorder
	listeners    []func(Status)

	loadOnce sync.Once
	writeMu  sync.Mutex
	notifyMu sync.Mutex
	timers   sync.WaitGroup

	mu         sync.Mutex
	loaded     bool
	closed     bool
	status     Status
	generation uint64
	pending    *types.ResumeDocument
	timer      *time.Timer
}

// New creates a Saver over st. The initial status is saved.
func New(st store.Store, opts ...Option) *Saver {
	s := &Saver{
		store:        st,
		key:          store.DefaultKey,
		delay:        DefaultDelay,
		writeTimeout: defaultWriteTimeout,
		logger:       zap.NewNop(),
		recorder:     nopRecorder{},
		status:       StatusSaved,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the store key the document is persisted under
func (s *Saver) Key() string {
	return s.key
}

// Status returns the current save status
func (s *Saver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Load reads the persisted document. Only the first call reads the store;
// later calls return (nil, false). A missing, empty, or unreadable value
// returns (nil, false) and the caller keeps its default document.
func (s *Saver) Load(ctx context.Context) (*types.ResumeDocument, bool) {
	var doc *types.ResumeDocument
	s.loadOnce.Do(func() {
		var outcome string
		doc, outcome = s.load(ctx)
		s.recorder.ObserveLoad(outcome)

		s.mu.Lock()
		s.loaded = true
		if doc != nil {
			s.unlockWithStatus(StatusSaved)
			return
		}
		s.mu.Unlock()
	})
	return doc, doc != nil
}

func (s *Saver) load(ctx context.Context) (*types.ResumeDocument, string) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, LoadAbsent
		}
		s.logger.Warn("failed to read saved resume", zap.String("key", s.key), zap.Error(err))
		return nil, LoadError
	}
	if len(data) == 0 {
		return nil, LoadAbsent
	}

	if err := schemas.ValidateResume(data); err != nil {
		s.logger.Warn("saved resume failed validation, keeping default", zap.String("key", s.key), zap.Error(err))
		return nil, LoadInvalid
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("failed to parse saved resume, keeping default", zap.String("key", s.key), zap.Error(err))
		return nil, LoadInvalid
	}
	if doc.IsEmpty() {
		return nil, LoadEmpty
	}

	s.logger.Debug("restored saved resume", zap.String("key", s.key), zap.Int("bytes", len(data)))
	return doc.Clone(), LoadRestored
}

// OnChange records an edit and (re)starts the quiet-period timer. Changes
// before Load has run, or after Close, are ignored.
func (s *Saver) OnChange(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}
	s.mu.Lock()
	if !s.loaded || s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.pending = doc.Clone()
	s.stopTimerLocked()

	s.timers.Add(1)
	s.timer = time.AfterFunc(s.delay, func() {
		defer s.timers.Done()
		_ = s.flush(context.Background(), gen, TriggerDebounce)
	})
	s.unlockWithStatus(StatusUnsaved)
}

// SaveNow cancels any pending timer and writes doc immediately. A failed
// write leaves the status unsaved and is not retried.
func (s *Saver) SaveNow(ctx context.Context, doc *types.ResumeDocument) error {
	if doc == nil {
		return &SerializationError{Cause: errors.New("nil document")}
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.generation++
	gen := s.generation
	s.pending = doc.Clone()
	s.stopTimerLocked()
	s.unlockWithStatus(StatusUnsaved)

	return s.flush(ctx, gen, TriggerManual)
}

// Clear removes the persisted document. The in-memory document is not touched.
func (s *Saver) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	s.pending = nil
	s.stopTimerLocked()
	s.mu.Unlock()

	// wait for an in-flight write so it cannot land after the delete
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.logger.Error("failed to clear saved resume", zap.String("key", s.key), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.unlockWithStatus(StatusSaved)
	s.logger.Info("cleared saved resume", zap.String("key", s.key))
	return nil
}

// HasSaved reports whether the store holds a persisted document
func (s *Saver) HasSaved(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	_, err := s.store.Get(ctx, s.key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close flushes a pending debounced write and stops accepting changes.
// It waits for any timer callback that is already running.
func (s *Saver) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	gen := s.generation
	hasPending := s.pending != nil
	s.stopTimerLocked()
	s.mu.Unlock()

	var err error
	if hasPending {
		err = s.flush(ctx, gen, TriggerClose)
	}
	s.timers.Wait()
	return err
}

// flush writes the pending document if gen is still the latest change
func (s *Saver) flush(ctx context.Context, gen uint64, trigger string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.pending == nil {
		s.mu.Unlock()
		return nil
	}
	doc := s.pending
	s.pending = nil
	s.timer = nil
	s.unlockWithStatus(StatusSaving)

	err := s.write(ctx, doc)
	s.recorder.ObserveSave(trigger, err)

	s.mu.Lock()
	switch {
	case err != nil:
		s.logger.Error("failed to save resume",
			zap.String("key", s.key),
			zap.String("trigger", trigger),
			zap.Error(err),
		)
		s.unlockWithStatus(StatusUnsaved)
	case gen != s.generation:
		// a newer edit arrived while writing
		s.unlockWithStatus(StatusUnsaved)
	default:
		s.unlockWithStatus(StatusSaved)
	}
	return err
}

func (s *Saver) write(ctx context.Context, doc *types.ResumeDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &SerializationError{Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return s.store.Set(ctx, s.key, data)
}

// stopTimerLocked cancels the pending timer. Must be called with s.mu held.
func (s *Saver) stopTimerLocked() {
	if s.timer == nil {
		return
	}
	if s.timer.Stop() {
		s.timers.Done()
	}
	s.timer = nil
}

// unlockWithStatus sets the status and releases s.mu. When the status
// changed, listeners are called after the release; notifyMu is taken first
// so transitions are delivered in order.
func (s *Saver) unlockWithStatus(status Status) {
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	listeners := s.listeners
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}
