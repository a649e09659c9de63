// Package tui is the terminal front-end. It owns the widgets, turns widget
// events into Controller calls and draws every State the Controller commits.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/pavelanni/qgen/internal/i18n"
	"github.com/pavelanni/qgen/internal/model"
	"github.com/pavelanni/qgen/internal/ui"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// App is the terminal UI. It implements ui.View.
type App struct {
	ctx  context.Context
	app  *tview.Application
	ctrl *ui.Controller

	input   *tview.TextArea
	count   *tview.InputField
	lang    *tview.InputField
	format  *tview.DropDown
	mcq     *tview.Checkbox
	cloze   *tview.Checkbox
	short   *tview.Checkbox
	form    *tview.Form
	output  *tview.TextView
	status  *tview.TextView
	spinner *tview.TextView
	badge   *tview.TextView
	footer  *tview.TextView
	header  *tview.Flex
	body    *tview.Flex
	root    *tview.Flex

	themeButton int

	// Only touched on the tview event goroutine.
	drawn    uint64
	stopSpin chan struct{}
}

// New builds the widgets and a Controller that renders into them. cfg.View
// is replaced by the App.
func New(ctx context.Context, cfg ui.Config) *App {
	a := &App{ctx: ctx, app: tview.NewApplication()}
	a.build()
	cfg.View = a
	a.ctrl = ui.New(cfg)
	return a
}

func (a *App) build() {
	t := func(id string) string { return i18n.T(a.ctx, id) }

	a.input = tview.NewTextArea().
		SetLabel(t("LabelInput")).
		SetSize(10, 0).
		SetPlaceholder(t("PlaceholderInput"))
	a.count = tview.NewInputField().
		SetLabel(t("LabelCount")).
		SetText("5").
		SetFieldWidth(6).
		SetAcceptanceFunc(tview.InputFieldInteger)
	a.lang = tview.NewInputField().
		SetLabel(t("LabelLanguage")).
		SetFieldWidth(12)
	a.format = tview.NewDropDown().
		SetLabel(t("LabelFormat")).
		SetOptions([]string{string(model.FormatJSON), string(model.FormatText)}, nil).
		SetCurrentOption(0)
	a.mcq = tview.NewCheckbox().SetLabel(t("LabelMCQ")).SetChecked(true)
	a.cloze = tview.NewCheckbox().SetLabel(t("LabelCloze")).SetChecked(true)
	a.short = tview.NewCheckbox().SetLabel(t("LabelShortAnswer")).SetChecked(true)

	a.form = tview.NewForm().
		AddFormItem(a.input).
		AddFormItem(a.count).
		AddFormItem(a.lang).
		AddFormItem(a.format).
		AddFormItem(a.mcq).
		AddFormItem(a.cloze).
		AddFormItem(a.short).
		AddButton(t("ButtonGenerate"), a.generate).
		AddButton(t("ButtonClear"), a.clearInput).
		AddButton(t("ButtonCopy"), a.copyOutput).
		AddButton(t("ButtonDownload"), a.download).
		AddButton(model.ThemeLight.Glyph(), a.toggleTheme)
	a.themeButton = a.form.GetButtonCount() - 1
	a.form.SetBorder(true).SetTitle(" " + t("AppTitle") + " ")

	a.output = tview.NewTextView().
		SetScrollable(true).
		SetWordWrap(true)
	a.output.SetBorder(true).SetTitle(" " + t("TitleOutput") + " ")

	a.status = tview.NewTextView()
	a.spinner = tview.NewTextView()
	a.badge = tview.NewTextView().SetTextAlign(tview.AlignRight)
	a.footer = tview.NewTextView().SetTextAlign(tview.AlignCenter)

	a.header = tview.NewFlex().
		AddItem(a.status, 0, 1, false).
		AddItem(a.spinner, 2, 0, false).
		AddItem(a.badge, 0, 1, false)
	a.body = tview.NewFlex().
		AddItem(a.form, 0, 1, true).
		AddItem(a.output, 0, 2, false)
	a.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.body, 0, 1, true).
		AddItem(a.footer, 1, 0, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlG:
			a.generate()
			return nil
		case tcell.KeyCtrlT:
			a.toggleTheme()
			return nil
		}
		return event
	})
}

// Run initializes the controller and blocks until the UI exits or ctx is
// cancelled.
func (a *App) Run() error {
	if err := a.ctrl.Init(a.ctx); err != nil {
		slog.Warn("init ui", "error", err)
	}
	go func() {
		<-a.ctx.Done()
		a.app.Stop()
	}()
	return a.app.
		SetRoot(a.root, true).
		SetFocus(a.input).
		EnableMouse(true).
		EnablePaste(true).
		Run()
}

// Render implements ui.View. The state is applied on the event goroutine.
// QueueUpdateDraw waits for the event loop, and Render is also called from
// that loop (theme toggle) and before it starts (Init), so the update is
// queued from its own goroutine. apply drops snapshots that arrive late.
func (a *App) Render(s ui.State) {
	go a.app.QueueUpdateDraw(func() { a.apply(s) })
}

func (a *App) apply(s ui.State) {
	if s.Version != 0 && s.Version <= a.drawn {
		return
	}
	a.drawn = s.Version

	a.applyTheme(s.Theme)
	a.output.SetText(s.Output).ScrollToBeginning()
	a.status.SetText(s.StatusMessage).SetTextColor(statusColor(s.Status))
	a.badge.SetText(s.LanguageBadge)
	title := i18n.T(a.ctx, "TitleOutput")
	if s.Summary != "" {
		title += " · " + s.Summary
	}
	a.output.SetTitle(" " + title + " ")
	a.form.GetButton(a.themeButton).SetLabel(s.ThemeGlyph)
	if s.Year != 0 {
		a.footer.SetText(i18n.Td(a.ctx, "Copyright", map[string]any{"Year": s.Year}))
	}
	a.setSpinner(s.Spinner)
}

// readForm snapshots the widgets. Must run on the event goroutine.
func (a *App) readForm() ui.Form {
	_, outputFormat := a.format.GetCurrentOption()
	return ui.Form{
		Text:         a.input.GetText(),
		Count:        a.count.GetText(),
		LanguageHint: a.lang.GetText(),
		OutputFormat: model.OutputFormat(outputFormat),
		MCQ:          a.mcq.IsChecked(),
		Cloze:        a.cloze.IsChecked(),
		ShortAnswer:  a.short.IsChecked(),
	}
}

func (a *App) generate() {
	form := a.readForm()
	go func() {
		_ = a.ctrl.Generate(a.ctx, form)
	}()
}

func (a *App) clearInput() {
	a.input.SetText("", false)
	a.app.SetFocus(a.input)
}

func (a *App) copyOutput() {
	go func() {
		_ = a.ctrl.Copy(a.ctx)
	}()
}

func (a *App) download() {
	go func() {
		_ = a.ctrl.Download(a.ctx)
	}()
}

func (a *App) toggleTheme() {
	_ = a.ctrl.ToggleTheme(a.ctx)
}

func (a *App) setSpinner(on bool) {
	running := a.stopSpin != nil
	if on == running {
		return
	}
	if !on {
		close(a.stopSpin)
		a.stopSpin = nil
		a.spinner.SetText("")
		return
	}

	stop := make(chan struct{})
	a.stopSpin = stop
	a.spinner.SetText(spinnerFrames[0])
	go func() {
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 1; ; i++ {
			select {
			case <-stop:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				a.app.QueueUpdateDraw(func() {
					if a.stopSpin == stop {
						a.spinner.SetText(frame)
					}
				})
			}
		}
	}()
}
