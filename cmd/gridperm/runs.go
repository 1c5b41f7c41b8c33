package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/gridperm/internal/automation"
	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/config"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSCRIPT\tFRAMES\tCOMMITS\tSTATUS")

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Script,
			run.Ticks,
			run.Commits,
			status,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "script: %s\n", meta.Script)
	fmt.Fprintf(out, "samples: %d\n\n", len(samples))

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Eased
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("eased progress per frame"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listTokens(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	md := tokenTable(eng)
	out := cmd.OutOrStdout()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err := io.WriteString(out, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	rendered, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// tokenTable lists the engine's tokens as a markdown table.
func tokenTable(eng *engine.Engine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tokens (%d×%d grid)\n\n", eng.Size(), eng.Size())
	b.WriteString("| Token | Operation |\n|---|---|\n")
	for _, tok := range eng.Tokens() {
		desc, _ := eng.Describe(tok)
		fmt.Fprintf(&b, "| `%s` | %s |\n", tok, desc)
	}
	return b.String()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range config.ListPresets() {
		cells := config.GetPreset(name)
		parts := make([]string, len(cells))
		for i, rc := range cells {
			parts[i] = fmt.Sprintf("(%d,%d)", rc[0], rc[1])
		}
		fmt.Fprintf(out, "%-14s %s\n", name, strings.Join(parts, " "))
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario: %s (%d steps, tokens %s)\n", sc.Name, len(sc.Steps), strings.Join(automation.Tokens(sc), " "))

	dt := 1 / float64(cfg.Animation.FPS)
	results, runErr := automation.RunScenario(eng, sc, func() clock.Clock { return clock.Virtual{Dt: dt} })

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCRIPT\tFRAMES\tGRID\tRESULT")
	for i, r := range results {
		result := "pass"
		switch {
		case r.Err != nil:
			result = "error"
		case !r.Passed:
			result = "mismatch"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i+1, r.Script, r.Ticks, strings.Join(r.Rows, "/"), result)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if n := automation.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d steps did not match", n, len(results))
	}
	return nil
}
