package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pavelanni/qgen/internal/client"
	"github.com/pavelanni/qgen/internal/format"
	"github.com/pavelanni/qgen/internal/i18n"
	"github.com/pavelanni/qgen/internal/model"
	"github.com/pavelanni/qgen/internal/theme"
)

const (
	// DoneRevertDelay is how long "Done" stays up after a generation.
	DoneRevertDelay = 2500 * time.Millisecond
	// ActionRevertDelay is how long "Copied" and "Downloaded" stay up.
	ActionRevertDelay = 1800 * time.Millisecond

	// DownloadName is the file name used by Download.
	DownloadName = "questions.txt"

	languagePrefix = "LANGUAGE:"
)

// Generator performs the backend call.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (*client.Result, error)
}

// Preferences is durable key-value storage.
type Preferences interface {
	GetPreference(key string) (string, error)
	SetPreference(key, value string) error
}

// Clipboard receives copied output.
type Clipboard interface {
	WriteText(text string) error
}

// Saver stores a downloaded file.
type Saver interface {
	Save(name string, content []byte) error
}

// Config wires a Controller. Generator, Preferences and View are required.
type Config struct {
	Generator   Generator
	Preferences Preferences
	View        View
	Clipboard   Clipboard
	Saver       Saver

	// SystemDark reports the system colour-scheme signal. Defaults to
	// theme.SystemPrefersDark.
	SystemDark func() bool
	// Now defaults to time.Now.
	Now func() time.Time
	// AfterFunc schedules f after d. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func())
}

// Controller owns the UI state and implements every user action. Actions may
// overlap: nothing serializes two generations, and whichever finishes last
// owns the output and status.
type Controller struct {
	gen        Generator
	prefs      Preferences
	view       View
	clipboard  Clipboard
	saver      Saver
	systemDark func() bool
	now        func() time.Time
	afterFunc  func(time.Duration, func())

	mu        sync.Mutex
	state     State
	statusSeq uint64
}

// New creates a Controller from cfg.
func New(cfg Config) *Controller {
	c := &Controller{
		gen:        cfg.Generator,
		prefs:      cfg.Preferences,
		view:       cfg.View,
		clipboard:  cfg.Clipboard,
		saver:      cfg.Saver,
		systemDark: cfg.SystemDark,
		now:        cfg.Now,
		afterFunc:  cfg.AfterFunc,
	}
	if c.view == nil {
		c.view = ViewFunc(func(State) {})
	}
	if c.saver == nil {
		c.saver = DirSaver{Dir: "."}
	}
	if c.systemDark == nil {
		c.systemDark = theme.SystemPrefersDark
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.afterFunc == nil {
		c.afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	c.state.Theme = model.ThemeLight
	c.state.ThemeGlyph = model.ThemeLight.Glyph()
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// commit applies fn to the state and renders the result. It also returns the
// status sequence number as of this change.
func (c *Controller) commit(fn func(State) State) (State, uint64) {
	c.mu.Lock()
	prev := c.state
	next := fn(prev)
	if next.Status != prev.Status || next.StatusMessage != prev.StatusMessage {
		c.statusSeq++
	}
	next.Version = prev.Version + 1
	c.state = next
	seq := c.statusSeq
	c.mu.Unlock()

	c.view.Render(next)
	return next, seq
}

func (c *Controller) setStatus(st Status, msg string) uint64 {
	_, seq := c.commit(func(s State) State { return s.WithStatus(st, msg) })
	return seq
}

// revertAfter returns the status to idle after d unless another status was
// set in the meantime.
func (c *Controller) revertAfter(ctx context.Context, d time.Duration, seq uint64) {
	idle := i18n.T(ctx, "StatusIdle")
	c.afterFunc(d, func() {
		c.commit(func(s State) State {
			// commit holds c.mu while fn runs.
			if c.statusSeq != seq {
				return s
			}
			return s.WithStatus(StatusIdle, idle)
		})
	})
}

// Init applies the stored theme (or the system signal), fills in the year and
// sets the status to idle. A preference read error is returned after the
// fallback theme has been applied.
func (c *Controller) Init(ctx context.Context) error {
	stored, err := c.prefs.GetPreference(model.ThemeKey)
	if err != nil {
		slog.Warn("read theme preference", "error", err)
		stored = ""
	}
	t := theme.Resolve(stored, c.systemDark())
	year := c.now().Year()
	idle := i18n.T(ctx, "StatusIdle")

	c.commit(func(s State) State {
		return s.WithTheme(t).WithYear(year).WithStatus(StatusIdle, idle)
	})
	slog.Debug("ui initialized", "theme", t, "stored", stored)
	if err != nil {
		return fmt.Errorf("read theme preference: %w", err)
	}
	return nil
}

// Generate validates form, calls the backend and shows the rendered result.
// Validation failures only replace the output with a hint. The spinner is
// hidden on every return path.
func (c *Controller) Generate(ctx context.Context, form Form) error {
	req, err := form.Request()
	if err != nil {
		hint := "NeedText"
		if errors.Is(err, ErrNoTargets) {
			hint = "NeedTargets"
		}
		msg := i18n.T(ctx, hint)
		c.commit(func(s State) State { return s.WithOutput(msg) })
		return err
	}

	generating := i18n.T(ctx, "StatusGenerating")
	c.commit(func(s State) State {
		return s.WithStatus(StatusBusy, generating).WithSpinner(true).WithOutput("").WithSummary("")
	})
	defer c.commit(func(s State) State { return s.WithSpinner(false) })

	start := c.now()
	res, err := c.gen.Generate(ctx, req)
	if err != nil {
		slog.Error("generate failed", "error", err, "elapsed", c.now().Sub(start))
		c.fail(ctx, err)
		return err
	}

	output, badge, summary := c.render(ctx, res)
	slog.Info("generate done",
		"format", res.Format,
		"targets", req.Targets,
		"num_questions", req.NumQuestions,
		"elapsed", c.now().Sub(start),
	)

	done := i18n.T(ctx, "StatusDone")
	_, seq := c.commit(func(s State) State {
		return s.WithOutput(output).WithBadge(badge).WithSummary(summary).WithStatus(StatusOK, done)
	})
	c.revertAfter(ctx, DoneRevertDelay, seq)
	return nil
}

func (c *Controller) render(ctx context.Context, res *client.Result) (output, badge, summary string) {
	if res.Format == model.FormatText {
		first, _, _ := strings.Cut(res.Text, "\n")
		if strings.HasPrefix(first, languagePrefix) {
			badge = strings.TrimSpace(first)
		}
		return res.Text, badge, ""
	}

	if res.Response != nil {
		if res.Response.Language != "" {
			badge = i18n.Td(ctx, "LanguageBadge", map[string]any{
				"Language": format.Upper(res.Response.Language),
			})
		}
		summary = i18n.Tp(ctx, "QuestionsGenerated", res.Response.Questions.Len())
	}
	return format.Questions(res.Response), badge, summary
}

func (c *Controller) fail(ctx context.Context, err error) {
	msg := i18n.Td(ctx, "ErrorOutput", map[string]any{"Message": err.Error()})
	label := i18n.T(ctx, "StatusError")
	c.commit(func(s State) State {
		return s.WithOutput(msg).WithStatus(StatusError, label)
	})
}

// Copy puts the current output on the clipboard.
func (c *Controller) Copy(ctx context.Context) error {
	text := c.State().Output
	var err error
	if c.clipboard == nil {
		err = errors.New("no clipboard available")
	} else {
		err = c.clipboard.WriteText(text)
	}
	if err != nil {
		slog.Warn("copy failed", "error", err)
		c.setStatus(StatusError, i18n.T(ctx, "StatusCopyFailed"))
		return fmt.Errorf("copy output: %w", err)
	}
	seq := c.setStatus(StatusOK, i18n.T(ctx, "StatusCopied"))
	c.revertAfter(ctx, ActionRevertDelay, seq)
	return nil
}

// Download saves the current output as questions.txt.
func (c *Controller) Download(ctx context.Context) error {
	text := c.State().Output
	if err := c.saver.Save(DownloadName, []byte(text)); err != nil {
		slog.Warn("download failed", "error", err)
		c.setStatus(StatusError, i18n.T(ctx, "StatusDownloadFailed"))
		return fmt.Errorf("save %s: %w", DownloadName, err)
	}
	seq := c.setStatus(StatusOK, i18n.T(ctx, "StatusDownloaded"))
	c.revertAfter(ctx, ActionRevertDelay, seq)
	return nil
}

// ToggleTheme flips the theme, updates the glyph and persists the choice.
func (c *Controller) ToggleTheme(ctx context.Context) error {
	s, _ := c.commit(func(s State) State { return s.WithTheme(s.Theme.Toggle()) })
	if err := c.prefs.SetPreference(model.ThemeKey, string(s.Theme)); err != nil {
		slog.Warn("persist theme", "theme", s.Theme, "error", err)
		return fmt.Errorf("persist theme: %w", err)
	}
	slog.Debug("theme toggled", "theme", s.Theme)
	return nil
}
