package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/san-kum/gridperm/internal/anim"
	"github.com/san-kum/gridperm/internal/grid"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.OnStep(anim.Sample{Progress: 0.5})
	c.OnStep(anim.Sample{Progress: 1, Committed: true})
	c.OnCommit(grid.Column, []grid.Coord{{Row: 0, Col: 1}})
	c.OnCommit(grid.Row, nil)
	c.OnCommit(grid.Row, nil)
	c.TokenStarted("H0")
	c.ScriptFinished("ok")
	c.ScriptFinished("invalid")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commits.WithLabelValues("column")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.commits.WithLabelValues("row")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.tokens.WithLabelValues("H0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.scripts.WithLabelValues("invalid")))
}

func TestCollectorBusyGauge(t *testing.T) {
	c := NewCollector()
	c.SetBusy(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.busy))
	c.SetBusy(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.busy))
}

func TestCollectorRegistry(t *testing.T) {
	c := NewCollector()
	c.TokenStarted("Z0")

	families, err := c.Registry().Gather()
	assert.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "gridperm_tokens_total")
	assert.Contains(t, names, "gridperm_busy")
}
