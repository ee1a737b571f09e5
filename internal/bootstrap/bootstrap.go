// Package bootstrap assembles the document editor, its persistence and the
// optional collaborators from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/autosave"
	"github.com/jonathan/careerforge/internal/config"
	"github.com/jonathan/careerforge/internal/db"
	"github.com/jonathan/careerforge/internal/editor"
	"github.com/jonathan/careerforge/internal/generate"
	"github.com/jonathan/careerforge/internal/llm"
	"github.com/jonathan/careerforge/internal/metrics"
	"github.com/jonathan/careerforge/internal/storage"
	"github.com/jonathan/careerforge/internal/store"
	"github.com/jonathan/careerforge/internal/types"
)

// App holds the wired components shared by the server and the CLI
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Store     store.Store
	Editor    *editor.Editor
	Saver     *autosave.Saver
	Generator *generate.Generator

	publisherMu sync.Mutex
	publisher   storage.Publisher

	closers []func() error
}

// OpenStore connects the configured backend. The returned close func is never nil.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemory(cfg.Store.MemoryLimit), noop, nil
	case config.BackendFile, "":
		s, err := store.NewFile(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendRedis:
		s, err := store.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return database, func() error { database.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// New opens the store, restores the persisted document into a fresh editor
// and subscribes the saver to its mutations.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Store:   st,
		closers: []func() error{closeStore},
	}

	a.Saver = autosave.New(st,
		autosave.WithKey(cfg.Store.Key),
		autosave.WithDelay(cfg.Autosave.Delay),
		autosave.WithWriteTimeout(cfg.Autosave.WriteTimeout),
		autosave.WithLogger(logger.Named("autosave")),
		autosave.WithRecorder(a.Metrics),
	)

	a.Editor = editor.New(nil)
	if doc, ok := a.Saver.Load(ctx); ok {
		a.Editor.Restore(doc)
	}
	a.Editor.Subscribe(a.Saver.OnChange)

	var client llm.Client
	if cfg.Gemini.APIKey != "" {
		c, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.Gemini.APIKey)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		client = c
		a.closers = append(a.closers, c.Close)
	} else {
		logger.Warn("GEMINI_API_KEY not set, content generation disabled")
	}
	a.Generator = generate.New(client,
		generate.WithLogger(logger.Named("generate")),
		generate.WithRecorder(a.Metrics),
	)

	logger.Info("resume loaded",
		zap.String("backend", cfg.Store.Backend),
		zap.String("key", a.Saver.Key()),
		zap.String("status", string(a.Saver.Status())),
	)
	return a, nil
}

// Publisher returns the export destination, connecting on first use
func (a *App) Publisher(ctx context.Context) (storage.Publisher, error) {
	a.publisherMu.Lock()
	defer a.publisherMu.Unlock()

	if a.publisher != nil {
		return a.publisher, nil
	}

	var (
		pub storage.Publisher
		err error
	)
	if a.Config.UseMinIO() {
		m := a.Config.MinIO
		pub, err = storage.NewMinIO(ctx, storage.MinIOConfig{
			Endpoint:         m.Endpoint,
			AccessKeyID:      m.AccessKeyID,
			SecretAccessKey:  m.SecretAccessKey,
			Bucket:           m.Bucket,
			Region:           m.Region,
			Prefix:           m.Prefix,
			UseSSL:           m.UseSSL,
			AutoCreateBucket: m.AutoCreateBucket,
			PresignExpiry:    m.PresignExpiry,
		})
	} else {
		pub, err = storage.NewDir(a.Config.Export.Dir)
	}
	if err != nil {
		return nil, err
	}

	a.publisher = pub
	return pub, nil
}

// Reset deletes the persisted document and puts the default sample back in
// the editor without scheduling a save. Edits are held off until both are done.
func (a *App) Reset(ctx context.Context) error {
	return a.Editor.Reset(types.DefaultResumeDocument(), func() error {
		return a.Saver.Clear(ctx)
	})
}

// Close flushes pending writes and releases every backend
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Saver != nil {
		if err := a.Saver.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
