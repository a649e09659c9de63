// Package ui holds the presentation-independent half of the client: an
// explicit UI state, pure updates over it, and the Controller that drives
// generation, copy, download and theme switching. Presentation adapters
// implement View.
package ui

import "github.com/pavelanni/qgen/internal/model"

// Status is the coarse state shown by the status indicator.
type Status string

const (
	StatusIdle  Status = "idle"
	StatusBusy  Status = "busy"
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// State is everything a View needs to draw. Values are snapshots; the
// Controller never mutates a State it has handed out.
type State struct {
	// Version increases with every committed change. Views may drop a
	// snapshot older than the last one they drew.
	Version uint64

	Status        Status
	StatusMessage string
	Spinner       bool
	Output        string
	LanguageBadge string
	// Summary counts the questions of a structured result. Text results and
	// errors leave it empty.
	Summary    string
	Theme      model.Theme
	ThemeGlyph string
	Year       int
}

// WithStatus sets the status and its label.
func (s State) WithStatus(st Status, msg string) State {
	s.Status = st
	s.StatusMessage = msg
	return s
}

// WithSpinner shows or hides the spinner.
func (s State) WithSpinner(on bool) State {
	s.Spinner = on
	return s
}

// WithOutput replaces the output text.
func (s State) WithOutput(text string) State {
	s.Output = text
	return s
}

// WithBadge replaces the language badge. An empty badge leaves the current
// one in place.
func (s State) WithBadge(badge string) State {
	if badge != "" {
		s.LanguageBadge = badge
	}
	return s
}

// WithSummary replaces the question-count summary.
func (s State) WithSummary(summary string) State {
	s.Summary = summary
	return s
}

// WithTheme applies t and keeps the toggle glyph consistent with it.
func (s State) WithTheme(t model.Theme) State {
	s.Theme = t
	s.ThemeGlyph = t.Glyph()
	return s
}

// WithYear sets the year shown in the footer.
func (s State) WithYear(year int) State {
	s.Year = year
	return s
}

// View draws State snapshots. Render may be called from any goroutine.
type View interface {
	Render(State)
}

// ViewFunc adapts a function to View.
type ViewFunc func(State)

func (f ViewFunc) Render(s State) { f(s) }
