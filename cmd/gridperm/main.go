package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/config"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/export"
	"github.com/san-kum/gridperm/internal/logging"
	"github.com/san-kum/gridperm/internal/script"
	"github.com/san-kum/gridperm/internal/storage"
	"github.com/san-kum/gridperm/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	realtime   bool
	noSave     bool
	frameWidth int
	svgPath    string
	addr       string
)

// main registers the commands and exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gridperm",
		Short:         "animated permutations on a binary grid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gridperm", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [script...]",
		Short: "run a token script headless",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames to wall time")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store a transcript")
	runCmd.Flags().IntVar(&frameWidth, "cell-width", 2, "characters per cell in the printed frame")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final board as SVG")

	validateCmd := &cobra.Command{
		Use:   "validate [script...]",
		Short: "check a script without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  validateScript,
	}

	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "list the available tokens",
		RunE:  listTokens,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal UI",
		RunE:  runTUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot eased progress of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario and check expected grids",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list initial grid presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, validateCmd, tokensCmd, tuiCmd, serveCmd, listCmd, plotCmd, exportCmd, scenarioCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger. The --log-level flag wins
// over the config file.
func setup() (*config.Config, *slog.Logger, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(level), nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	var c clock.Clock = clock.Virtual{Dt: 1 / float64(cfg.Animation.FPS)}
	if realtime {
		rt := clock.NewRealtime(cfg.Animation.FPS)
		defer rt.Stop()
		c = rt
	}

	return execute(cmd.OutOrStdout(), cfg, logger, st, strings.Join(args, " "), c)
}

// execute runs text on a fresh engine, prints the final frame and stores a
// transcript when st is set. A run that fails part-way is still stored.
func execute(out io.Writer, cfg *config.Config, logger *slog.Logger, st *storage.Store, text string, c clock.Clock) error {
	rec := storage.NewRecorder()
	eng, err := engine.New(cfg,
		engine.WithLogger(logger),
		engine.WithObserver(rec),
		engine.WithTokenHook(rec.Begin),
	)
	if err != nil {
		return err
	}

	res, runErr := eng.Run(text, c)
	var verr *script.ValidationError
	if errors.As(runErr, &verr) || errors.Is(runErr, script.ErrEmptyScript) {
		return runErr
	}

	fmt.Fprint(out, eng.Frame(frameWidth, 1))
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Join(res.Final, "\n"))
	fmt.Fprintf(out, "\ntokens: %d  frames: %d  elapsed: %v\n", len(res.Tokens), res.Ticks, res.Elapsed)

	if svgPath != "" {
		svg := export.BoardToSVG(eng.Cells(), eng.Size(), eng.Pitch(), cfg.Grid.CellSize, export.DefaultStyle)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if st != nil {
		samples, commits := rec.Drain()
		meta := storage.RunMetadata{
			Script:   text,
			Tokens:   script.Texts(res.Tokens),
			Size:     cfg.Grid.Size,
			Duration: cfg.Animation.Duration,
			Ticks:    res.Ticks,
			Commits:  commits,
			Elapsed:  res.Elapsed.Seconds(),
			Initial:  res.Initial,
			Final:    res.Final,
		}
		if runErr != nil {
			meta.Error = runErr.Error()
		}
		runID, err := st.Save(meta, samples)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}
	return runErr
}

func validateScript(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	tokens, err := eng.Validate(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tokens\n", len(tokens))
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui needs an interactive terminal")
	}
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	// The alt screen owns the terminal, so logs are dropped.
	tracker := viz.NewTracker()
	eng, err := engine.New(cfg, engine.WithLogger(logging.NewNop()), engine.WithObserver(tracker))
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(viz.NewModel(eng, tracker, cfg.Animation.FPS), tea.WithAltScreen()).Run()
	return err
}
