package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/greenops"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/migration"
	"github.com/rshade/ecotrack/internal/store"
)

// app is the per-invocation wiring of store, engine and ledger.
type app struct {
	cfg    *config.Config
	flags  *globalFlags
	store  *store.Store
	engine *engine.Engine

	journal    *ledger.Journal
	dispatcher *ledger.Dispatcher
}

// openApp opens the state store and, when enabled, the ledger journal.
// The returned app must be closed to flush pending ledger records.
func openApp(ctx context.Context, flags *globalFlags) (*app, error) {
	cfg := config.GetGlobalConfig()

	statePath := flags.statePath
	if statePath == "" {
		p, err := config.StatePath()
		if err != nil {
			return nil, err
		}
		statePath = p
	}
	st, err := store.New(statePath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, flags: flags, store: st}
	opts := []engine.Option{engine.WithStrictCategories(cfg.Tracker.StrictCategories)}

	if cfg.Ledger.Enabled {
		path, pathErr := cfg.LedgerPath()
		if pathErr != nil {
			return nil, pathErr
		}
		j, openErr := ledger.OpenJournal(ctx, path)
		if openErr != nil {
			logger.Warn().Ctx(ctx).Err(openErr).Str("path", path).Msg("ledger journal unavailable, calculations will not be journaled")
		} else {
			a.journal = j
			a.dispatcher = ledger.NewDispatcher(ctx, j, ledger.DefaultQueueSize)
			opts = append(opts, engine.WithRecorder(a.dispatcher))
		}
	}

	a.engine = engine.New(opts...)
	return a, nil
}

// Close drains the dispatcher and closes the journal.
func (a *app) Close() error {
	var errs []error
	if a.dispatcher != nil {
		if err := a.dispatcher.Close(); err != nil {
			errs = append(errs, err)
		}
		st := a.dispatcher.Stats()
		if st.Failed > 0 || st.Dropped > 0 {
			logger.Warn().
				Uint64("failed", st.Failed).
				Uint64("dropped", st.Dropped).
				Msg("some calculations were not journaled")
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// load returns the current document, upgrading older schemas. A fresh
// installation starts from the configured defaults.
func (a *app) load(ctx context.Context) (store.Document, error) {
	if !a.store.Exists() {
		doc := store.DefaultDocument()
		doc.Tracker.User.Settings = a.cfg.TrackerSettings()
		doc.GreenIT.Settings = a.cfg.GreenITSettings()
		return doc, nil
	}

	doc, res, err := migration.LoadAndUpgrade(a.store, a.engine.Now())
	if err != nil {
		return store.Document{}, err
	}
	if res.Upgraded() {
		logger.Info().Ctx(ctx).
			Str("from", res.From).
			Str("to", res.To).
			Strs("steps", res.Applied).
			Msg("state document upgraded")
	}
	return doc, nil
}

// save persists doc.
func (a *app) save(doc store.Document) error {
	doc.SavedAt = a.engine.Now().UTC()
	if err := a.store.Save(doc); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// locale resolves the --locale flag, falling back to the configuration.
func (a *app) locale() (greenops.Locale, error) {
	return resolveLocale(a.flags, a.cfg)
}

func resolveLocale(flags *globalFlags, cfg *config.Config) (greenops.Locale, error) {
	l := flags.locale
	if l == "" {
		l = cfg.Output.Locale
	}
	return greenops.ParseLocale(l)
}

// withApp opens the app for cmd, runs fn and closes the app.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	a, err := openApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(ctx, a)
}

// mutate loads the document, applies fn and saves the result.
func (a *app) mutate(ctx context.Context, fn func(doc store.Document) (store.Document, error)) (store.Document, error) {
	doc, err := a.load(ctx)
	if err != nil {
		return store.Document{}, err
	}
	out, err := fn(doc)
	if err != nil {
		return store.Document{}, err
	}
	if err = a.save(out); err != nil {
		return store.Document{}, err
	}
	return out, nil
}
