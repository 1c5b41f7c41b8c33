// Package automation runs scripted scenarios: scripts executed in order on
// one engine, each optionally checked against an expected grid.
package automation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/script"
)

// Scenario is a named sequence of scripts.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one script. Expect, when set, lists the grid rows
// required afterwards as strings of 0 and 1.
type ScenarioStep struct {
	Script string   `yaml:"script"`
	Expect []string `yaml:"expect,omitempty"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Script string
	Ticks  int
	Rows   []string
	Passed bool
	Err    error
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes the steps in order. A step whose script fails stops
// the scenario; a mismatched grid is recorded and the next step still runs.
func RunScenario(eng *engine.Engine, scenario *Scenario, newClock func() clock.Clock) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		res, err := eng.Run(step.Script, newClock())
		sr := StepResult{
			Script: step.Script,
			Ticks:  res.Ticks,
			Rows:   res.Final,
			Err:    err,
		}
		if err != nil {
			results = append(results, sr)
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		sr.Passed = len(step.Expect) == 0 || equalRows(step.Expect, res.Final)
		results = append(results, sr)
	}

	return results, nil
}

// Failed counts steps that errored or did not match.
func Failed(results []StepResult) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

// Tokens lists every distinct token a scenario uses, in first-use order.
func Tokens(scenario *Scenario) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, step := range scenario.Steps {
		for _, t := range script.Parse(step.Script) {
			if !seen[t.Text] {
				seen[t.Text] = true
				out = append(out, t.Text)
			}
		}
	}
	return out
}

func equalRows(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(want[i]) != got[i] {
			return false
		}
	}
	return true
}
