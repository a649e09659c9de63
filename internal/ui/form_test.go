package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/qgen/internal/model"
)

func TestParseCount(t *testing.T) {
	tests := map[string]int{
		"7":     7,
		" 12 ":  12,
		"12abc": 12,
		"abc":   DefaultCount,
		"":      DefaultCount,
		"0":     DefaultCount,
		"-3":    DefaultCount,
		"+4":    4,
		"3.9":   3,
		"1000":  MaxCount,
		"1001":  MaxCount,
		// Large values clamp rather than losing digits.
		"12345678":                MaxCount,
		"99999999999999999999999": MaxCount,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseCount(in), "ParseCount(%q)", in)
	}
}

func TestFormTargetsOrder(t *testing.T) {
	f := Form{ShortAnswer: true, MCQ: true, Cloze: true}
	assert.Equal(t, []model.Target{model.TargetMCQ, model.TargetCloze, model.TargetShortAnswer}, f.Targets())
	assert.Empty(t, Form{}.Targets())
}

func TestFormRequest(t *testing.T) {
	req, err := Form{
		Text:         "  text with padding  ",
		Count:        "",
		LanguageHint: "  es ",
		OutputFormat: model.FormatText,
		ShortAnswer:  true,
	}.Request()
	require.NoError(t, err)
	assert.Equal(t, "  text with padding  ", req.Text)
	assert.Equal(t, DefaultCount, req.NumQuestions)
	require.NotNil(t, req.LanguageHint)
	assert.Equal(t, "es", *req.LanguageHint)
	assert.Equal(t, model.FormatText, req.OutputFormat)
	assert.Equal(t, []model.Target{model.TargetShortAnswer}, req.Targets)
}

func TestFormRequestDefaultsFormat(t *testing.T) {
	req, err := Form{Text: "x", MCQ: true}.Request()
	require.NoError(t, err)
	assert.Equal(t, model.FormatJSON, req.OutputFormat)
}

func TestFormRequestValidation(t *testing.T) {
	_, err := Form{Text: " ", MCQ: true}.Request()
	assert.ErrorIs(t, err, ErrNoText)

	_, err = Form{Text: "x"}.Request()
	assert.ErrorIs(t, err, ErrNoTargets)
}

func TestStateUpdatesArePure(t *testing.T) {
	base := State{Output: "a", LanguageBadge: "LANGUAGE: EN"}
	next := base.WithOutput("b").WithBadge("").WithSpinner(true).WithStatus(StatusBusy, "Generating")

	assert.Equal(t, "a", base.Output)
	assert.False(t, base.Spinner)
	assert.Equal(t, "b", next.Output)
	assert.Equal(t, "LANGUAGE: EN", next.LanguageBadge)
	assert.Equal(t, StatusBusy, next.Status)

	dark := base.WithTheme(model.ThemeDark)
	assert.Equal(t, "☀️", dark.ThemeGlyph)
	assert.Empty(t, base.ThemeGlyph)
}
