package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/qgen/internal/client"
	appI18n "github.com/pavelanni/qgen/internal/i18n"
	"github.com/pavelanni/qgen/internal/model"
	"github.com/pavelanni/qgen/internal/store"
	"github.com/pavelanni/qgen/internal/stub"
	"github.com/pavelanni/qgen/internal/theme"
	"github.com/pavelanni/qgen/internal/tui"
	"github.com/pavelanni/qgen/internal/ui"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "qgen",
		Short:        "Generate study questions from text",
		SilenceUsage: true,
	}

	uiC := uiCmd()
	root.AddCommand(uiC, generateCmd(), themeCmd(), stubCmd())

	// Make "ui" the default when no subcommand is given.
	root.RunE = uiC.RunE
	root.Flags().AddFlagSet(uiC.Flags())

	return root
}

func commonFlags(f *pflag.FlagSet) {
	f.String("db", "qgen.db", "SQLite database path for preferences")
	f.StringP("lang", "l", appI18n.DefaultLang, "UI language")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func clientFlags(f *pflag.FlagSet) {
	f.String("api-url", "http://localhost:8000", "Question generation service base URL")
	f.String("download-dir", ".", "Directory that receives questions.txt")
	f.Bool("prefer-dark", false, "Treat the system colour scheme as dark")
}

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI",
		RunE:  runUI,
	}
	f := cmd.Flags()
	commonFlags(f)
	clientFlags(f)
	f.String("log-file", "qgen.log", "Log file (the terminal belongs to the UI)")
	return cmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions once and print them",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	commonFlags(f)
	clientFlags(f)
	f.StringP("text", "t", "", "Input text")
	f.StringP("file", "f", "", "Read input text from a file (- for stdin)")
	f.StringSlice("types", []string{string(model.TargetMCQ), string(model.TargetCloze), string(model.TargetShortAnswer)},
		"Question types (mcq, cloze, short_answer)")
	f.StringP("count", "n", "5", "Questions per type")
	f.String("hint", "", "Language hint passed to the service")
	f.StringP("format", "o", string(model.FormatJSON), "Output format (json, text)")
	f.Bool("download", false, "Also save the output as questions.txt in --download-dir")
	return cmd
}

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the stored colour theme",
		Args:  cobra.NoArgs,
		RunE:  runThemeShow,
	}
	commonFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().Bool("prefer-dark", false, "Treat the system colour scheme as dark")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the stored colour theme",
		Args:  cobra.NoArgs,
		RunE:  runThemeShow,
	}
	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark",
		Args:  cobra.NoArgs,
		RunE:  runThemeToggle,
	}
	set := &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Store a colour theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.ThemeLight), string(model.ThemeDark)},
		RunE:      runThemeSet,
	}
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored theme and follow the system colour scheme",
		Args:  cobra.NoArgs,
		RunE:  runThemeReset,
	}
	cmd.AddCommand(show, toggle, set, reset)
	return cmd
}

func stubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stub-backend",
		Short: "Serve a canned question generation endpoint for local testing",
		RunE:  runStub,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8000", "HTTP listen address")
	f.String("fixture", "", "Response fixture JSON (default: built-in sample)")
	f.StringP("lang", "l", appI18n.DefaultLang, "Fallback language for error messages")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(v *viper.Viper, w io.Writer) {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(w, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(w, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("QGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("qgen")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/qgen")
	v.AddConfigPath("/etc/qgen")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// setup configures logging and translations from v and returns a context
// carrying the configured language.
func setup(cmd *cobra.Command, v *viper.Viper, logTo io.Writer) (context.Context, error) {
	setupLogging(v, logTo)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return nil, fmt.Errorf("init i18n: %w", err)
	}
	return appI18n.Context(cmd.Context(), lang), nil
}

func systemDark(v *viper.Viper) func() bool {
	if v.IsSet("prefer-dark") {
		dark := v.GetBool("prefer-dark")
		return func() bool { return dark }
	}
	return theme.SystemPrefersDark
}

func controllerConfig(v *viper.Viper, db *store.Store) ui.Config {
	return ui.Config{
		Generator:   client.New(v.GetString("api-url"), nil),
		Preferences: db,
		Saver:       ui.DirSaver{Dir: v.GetString("download-dir")},
		SystemDark:  systemDark(v),
	}
}

func runUI(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	logFile, err := os.OpenFile(v.GetString("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	ctx, err := setup(cmd, v, logFile)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	cfg := controllerConfig(v, db)
	cfg.Clipboard = ui.SystemClipboard{}

	slog.Info("starting ui",
		"api_url", v.GetString("api-url"),
		"lang", v.GetString("lang"),
		"download_dir", v.GetString("download-dir"),
	)
	return tui.New(ctx, cfg).Run()
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	ctx, err := setup(cmd, v, os.Stderr)
	if err != nil {
		return err
	}

	text, err := readInput(v.GetString("text"), v.GetString("file"), cmd.InOrStdin())
	if err != nil {
		return err
	}

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctrl := ui.New(controllerConfig(v, db))
	if err := ctrl.Init(ctx); err != nil {
		slog.Warn("init ui state", "error", err)
	}

	form := formFromFlags(v, text)
	genErr := ctrl.Generate(ctx, form)

	out := cmd.OutOrStdout()
	state := ctrl.State()
	if state.LanguageBadge != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), state.LanguageBadge)
	}
	if state.Summary != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), state.Summary)
	}
	fmt.Fprintln(out, state.Output)
	if genErr != nil {
		return genErr
	}

	if v.GetBool("download") {
		if err := ctrl.Download(ctx); err != nil {
			return err
		}
		slog.Info("saved output", "dir", v.GetString("download-dir"), "file", ui.DownloadName)
	}
	return nil
}

func formFromFlags(v *viper.Viper, text string) ui.Form {
	form := ui.Form{
		Text:         text,
		Count:        v.GetString("count"),
		LanguageHint: v.GetString("hint"),
		OutputFormat: model.OutputFormat(strings.ToLower(v.GetString("format"))),
	}
	for _, t := range v.GetStringSlice("types") {
		switch model.Target(strings.TrimSpace(t)) {
		case model.TargetMCQ:
			form.MCQ = true
		case model.TargetCloze:
			form.Cloze = true
		case model.TargetShortAnswer:
			form.ShortAnswer = true
		default:
			slog.Warn("ignoring unknown question type", "type", t)
		}
	}
	return form
}

func readInput(text, path string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func openThemeStore(cmd *cobra.Command) (*viper.Viper, context.Context, *store.Store, error) {
	v := viperForCmd(cmd)
	ctx, err := setup(cmd, v, os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := store.New(v.GetString("db"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	return v, ctx, db, nil
}

func printTheme(w io.Writer, t model.Theme, stored bool) {
	source := "system"
	if stored {
		source = "stored"
	}
	fmt.Fprintf(w, "%s %s (%s)\n", t.Glyph(), t, source)
}

func runThemeShow(cmd *cobra.Command, _ []string) error {
	v, _, db, err := openThemeStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	stored, err := db.GetPreference(model.ThemeKey)
	if err != nil {
		return fmt.Errorf("read theme preference: %w", err)
	}
	t := theme.Resolve(stored, systemDark(v)())
	printTheme(cmd.OutOrStdout(), t, stored == string(t))
	return nil
}

func runThemeToggle(cmd *cobra.Command, _ []string) error {
	v, ctx, db, err := openThemeStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	ctrl := ui.New(ui.Config{Preferences: db, SystemDark: systemDark(v)})
	if err := ctrl.Init(ctx); err != nil {
		return err
	}
	if err := ctrl.ToggleTheme(ctx); err != nil {
		return err
	}
	printTheme(cmd.OutOrStdout(), ctrl.State().Theme, true)
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	t := model.Theme(strings.ToLower(args[0]))
	if t != model.ThemeLight && t != model.ThemeDark {
		return errors.New("theme must be light or dark")
	}
	_, _, db, err := openThemeStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetPreference(model.ThemeKey, string(t)); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}
	printTheme(cmd.OutOrStdout(), t, true)
	return nil
}

func runThemeReset(cmd *cobra.Command, _ []string) error {
	v, _, db, err := openThemeStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeletePreference(model.ThemeKey); err != nil {
		return fmt.Errorf("reset theme: %w", err)
	}
	printTheme(cmd.OutOrStdout(), theme.Resolve("", systemDark(v)()), false)
	return nil
}

func runStub(cmd *cobra.Command, _ []string) error {
	v := viperForCmd(cmd)
	setupLogging(v, os.Stderr)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	fixture, err := stub.LoadFixture(v.GetString("fixture"))
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	addr := v.GetString("addr")
	slog.Info("starting stub backend",
		"addr", addr,
		"fixture", v.GetString("fixture"),
		"path", client.GeneratePath,
	)
	return http.ListenAndServe(addr, stub.New(fixture).Router(lang))
}
