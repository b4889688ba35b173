package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/judge"
)

// Runner submits source for judging. *submit.Client satisfies it.
type Runner interface {
	Submit(ctx context.Context, lang judge.Language, source string, cases []judge.TestCase) (*judge.Result, error)
}

// Controller owns the editor session for one problem. Its methods are safe
// for concurrent use; the judge call runs outside the lock.
type Controller struct {
	mu      sync.Mutex
	session Session

	cases  []judge.TestCase
	drafts DraftStore
	runner Runner
	logger *zap.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for run and draft failures.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController opens slug in lang, showing the stored draft when there is
// one and the language template otherwise.
func NewController(ctx context.Context, slug string, lang judge.Language, cases []judge.TestCase, drafts DraftStore, runner Runner, opts ...ControllerOption) (*Controller, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", judge.ErrUnknownLanguage, string(lang))
	}
	c := &Controller{
		cases:  cases,
		drafts: drafts,
		runner: runner,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	source, err := c.loadOrTemplate(ctx, slug, lang)
	if err != nil {
		return nil, err
	}
	c.session = Session{Slug: slug, Language: lang, Source: source}
	return c, nil
}

func (c *Controller) loadOrTemplate(ctx context.Context, slug string, lang judge.Language) (string, error) {
	source, err := c.drafts.Load(ctx, DraftKey(slug, lang))
	if errors.Is(err, ErrDraftNotFound) {
		return Template(lang), nil
	}
	if err != nil {
		return "", err
	}
	return source, nil
}

// Edit replaces the visible source and persists it as the active draft.
func (c *Controller) Edit(ctx context.Context, source string) error {
	c.mu.Lock()
	c.session = c.session.Edit(source)
	key := DraftKey(c.session.Slug, c.session.Language)
	c.mu.Unlock()

	return c.save(ctx, key, source)
}

func (c *Controller) save(ctx context.Context, key, source string) error {
	if err := c.drafts.Save(ctx, key, source); err != nil {
		c.logger.Warn("failed to save draft", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// SwitchLanguage makes lang active and shows its draft or template.
func (c *Controller) SwitchLanguage(ctx context.Context, lang judge.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", judge.ErrUnknownLanguage, string(lang))
	}
	c.mu.Lock()
	slug := c.session.Slug
	c.mu.Unlock()

	source, err := c.loadOrTemplate(ctx, slug, lang)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.session = c.session.SwitchLanguage(lang, source)
	c.mu.Unlock()
	return nil
}

// Reset overwrites the active draft with the language template. Drafts of
// other languages are left alone.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	source := Template(c.session.Language)
	c.session = c.session.Edit(source)
	key := DraftKey(c.session.Slug, c.session.Language)
	c.mu.Unlock()

	return c.save(ctx, key, source)
}

// Run judges the current source against the problem's first test case.
// A failed submission settles as a synthetic "Failed" result. The bool
// reports whether this run's result was applied; it is false when a newer
// run started first.
func (c *Controller) Run(ctx context.Context) (*judge.Result, bool) {
	c.mu.Lock()
	c.session = c.session.BeginRun()
	s := c.session
	c.mu.Unlock()

	res, err := c.runner.Submit(ctx, s.Language, s.Source, c.cases)
	if err != nil {
		c.logger.Warn("run failed",
			zap.String("slug", s.Slug),
			zap.String("language", string(s.Language)),
			zap.Uint64("run_id", s.RunID),
			zap.Error(err),
		)
		res = judge.FailedResult()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next, applied := c.session.Settle(s.RunID, res)
	if !applied {
		c.logger.Debug("discarding stale run result", zap.Uint64("run_id", s.RunID), zap.Uint64("latest", c.session.RunID))
		return res, false
	}
	c.session = next
	return res, true
}

// ToggleOutput shows or hides the output panel.
func (c *Controller) ToggleOutput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = c.session.ToggleOutput()
}

// Snapshot returns the current session record.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// View renders the current session.
func (c *Controller) View() View {
	return Render(c.Snapshot())
}
