package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, logs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	want := map[string][]string{
		"reach": {
			"reaches(0,3) without e02,e13: true",
			"path [0 1 2 3] via 0→1 1→2 2→3",
			"reaches(0,3) without e01,e23: false",
		},
		"flow": {
			"maxflow(0,3) >= 2: true",
			"flow 2",
			"maxflow(0,3) >= 2 without e01: false",
		},
		"distance": {
			"distance(0,3) with all edges: 2",
			"distance(0,3) without e02,e13: 4",
		},
		"acyclic": {
			"acyclic with 0→1→2→3: true",
			"acyclic with 0→1→2→3→0: false",
		},
	}
	for name, lines := range want {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "demo", name)
			require.NoError(t, err)
			for _, l := range lines {
				assert.Contains(t, out, l)
			}
		})
	}
}

func TestDemo_UnknownScenario(t *testing.T) {
	_, err := execute(t, "demo", "tsp")
	require.Error(t, err)
}

func TestBench(t *testing.T) {
	for _, topo := range []string{"path", "cycle", "grid", "complete", "random"} {
		out, err := execute(t, "bench", "--topology", topo, "--size", "4", "--runs", "2")
		require.NoError(t, err, topo)
		assert.Contains(t, out, topo+" size=4 runs=2")
	}

	_, err := execute(t, "bench", "--topology", "torus")
	require.Error(t, err)
	_, err = execute(t, "bench", "--size", "1", "--topology", "cycle")
	require.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flow_algorithm: edmonds-karp\nmax_rounds: 100\n"), 0o600))

	out, err := execute(t, "--config", path, "demo", "flow")
	require.NoError(t, err)
	assert.Contains(t, out, "flow 2")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "demo", "flow")
	require.Error(t, err)
}
