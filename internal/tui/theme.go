package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/pavelanni/qgen/internal/model"
	"github.com/pavelanni/qgen/internal/ui"
)

type palette struct {
	background tcell.Color
	text       tcell.Color
	border     tcell.Color
	field      tcell.Color
	fieldText  tcell.Color
	button     tcell.Color
	buttonText tcell.Color
}

var palettes = map[model.Theme]palette{
	model.ThemeDark: {
		background: tcell.ColorBlack,
		text:       tcell.ColorWhite,
		border:     tcell.ColorGray,
		field:      tcell.ColorDarkSlateGray,
		fieldText:  tcell.ColorWhite,
		button:     tcell.ColorSteelBlue,
		buttonText: tcell.ColorWhite,
	},
	model.ThemeLight: {
		background: tcell.ColorWhite,
		text:       tcell.ColorBlack,
		border:     tcell.ColorDarkGray,
		field:      tcell.ColorLightGray,
		fieldText:  tcell.ColorBlack,
		button:     tcell.ColorLightSteelBlue,
		buttonText: tcell.ColorBlack,
	},
}

func paletteFor(t model.Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[model.ThemeLight]
}

func (a *App) applyTheme(t model.Theme) {
	p := paletteFor(t)

	for _, b := range []*tview.Box{
		a.form.Box, a.output.Box, a.status.Box, a.spinner.Box,
		a.badge.Box, a.footer.Box, a.header.Box, a.body.Box, a.root.Box,
	} {
		b.SetBackgroundColor(p.background)
		b.SetBorderColor(p.border)
		b.SetTitleColor(p.text)
	}
	for _, tv := range []*tview.TextView{a.output, a.spinner, a.badge, a.footer} {
		tv.SetTextColor(p.text)
	}
	a.form.
		SetLabelColor(p.text).
		SetFieldBackgroundColor(p.field).
		SetFieldTextColor(p.fieldText).
		SetButtonBackgroundColor(p.button).
		SetButtonTextColor(p.buttonText)
}

func statusColor(s ui.Status) tcell.Color {
	switch s {
	case ui.StatusBusy:
		return tcell.ColorYellow
	case ui.StatusOK:
		return tcell.ColorGreen
	case ui.StatusError:
		return tcell.ColorRed
	default:
		return tcell.ColorGray
	}
}
