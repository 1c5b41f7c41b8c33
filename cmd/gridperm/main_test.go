package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gridperm/internal/clock"
	"github.com/san-kum/gridperm/internal/config"
	"github.com/san-kum/gridperm/internal/engine"
	"github.com/san-kum/gridperm/internal/logging"
	"github.com/san-kum/gridperm/internal/script"
	"github.com/san-kum/gridperm/internal/storage"
)

var frame = clock.Virtual{Dt: 1.0 / 60}

func TestExecuteStoresTranscript(t *testing.T) {
	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())

	var out bytes.Buffer
	err := execute(&out, config.DefaultConfig(), logging.NewNop(), st, "H0, 11", frame)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0011\n0011\n1010\n1010")
	assert.Contains(t, out.String(), "run id:")

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"H0", "11"}, runs[0].Tokens)
	assert.Equal(t, 1, runs[0].Commits)
	assert.Empty(t, runs[0].Error)

	samples, err := st.LoadSamples(runs[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, samples)
	last := samples[len(samples)-1]
	assert.True(t, last.Committed)
	assert.Equal(t, "H0", last.Token)
}

func TestExecuteRejectsInvalidScript(t *testing.T) {
	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())

	var out bytes.Buffer
	err := execute(&out, config.DefaultConfig(), logging.NewNop(), st, "H0 BOGUS", frame)
	assert.True(t, errors.Is(err, script.ErrInvalidScript))
	assert.Empty(t, out.String())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestExecuteWithoutStore(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute(&out, config.DefaultConfig(), logging.NewNop(), nil, "HH", frame))
	assert.NotContains(t, out.String(), "run id:")
}

func TestTokenTable(t *testing.T) {
	eng, err := engine.New(nil)
	require.NoError(t, err)

	md := tokenTable(eng)
	assert.True(t, strings.HasPrefix(md, "# Tokens (4×4 grid)"))
	assert.Contains(t, md, "| `X0` | sequence H0 Z0 H0 |")
	assert.Equal(t, len(eng.Tokens())+4, strings.Count(md, "\n"))
}
