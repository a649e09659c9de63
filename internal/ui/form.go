package ui

import (
	"errors"
	"strings"

	"github.com/pavelanni/qgen/internal/model"
)

const (
	// DefaultCount is used when the count field does not hold a usable number.
	DefaultCount = 5
	// MaxCount caps the number of questions requested per type.
	MaxCount = 1000
)

var (
	// ErrNoText means the input text is blank.
	ErrNoText = errors.New("no input text")
	// ErrNoTargets means no question type is selected.
	ErrNoTargets = errors.New("no question type selected")
)

// Form holds the raw values of the input widgets at the moment Generate is
// triggered.
type Form struct {
	Text         string
	Count        string
	LanguageHint string
	OutputFormat model.OutputFormat

	MCQ         bool
	Cloze       bool
	ShortAnswer bool
}

// Targets returns the selected question types in toggle order.
func (f Form) Targets() []model.Target {
	var targets []model.Target
	if f.MCQ {
		targets = append(targets, model.TargetMCQ)
	}
	if f.Cloze {
		targets = append(targets, model.TargetCloze)
	}
	if f.ShortAnswer {
		targets = append(targets, model.TargetShortAnswer)
	}
	return targets
}

// Request validates the form and builds the request body. The text is sent
// as typed; only presence is checked.
func (f Form) Request() (model.GenerationRequest, error) {
	if strings.TrimSpace(f.Text) == "" {
		return model.GenerationRequest{}, ErrNoText
	}
	targets := f.Targets()
	if len(targets) == 0 {
		return model.GenerationRequest{}, ErrNoTargets
	}

	req := model.GenerationRequest{
		Text:         f.Text,
		Targets:      targets,
		NumQuestions: ParseCount(f.Count),
		OutputFormat: f.OutputFormat,
	}
	if !req.OutputFormat.Valid() {
		req.OutputFormat = model.FormatJSON
	}
	if hint := strings.TrimSpace(f.LanguageHint); hint != "" {
		req.LanguageHint = &hint
	}
	return req, nil
}

// ParseCount reads a leading decimal integer the way a browser's parseInt
// does ("12abc" is 12). Anything unusable, zero or negative yields
// DefaultCount; larger values are clamped to MaxCount.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n <= MaxCount {
			n = n*10 + int(r-'0')
		}
	}
	if digits == 0 || neg || n <= 0 {
		return DefaultCount
	}
	return min(n, MaxCount)
}
