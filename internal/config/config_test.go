package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scpsim/scpreport/internal/simlog"
)

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunParams(t *testing.T) {
	path := writeParams(t, `
node_count: 4
simulation_time: 120.5
sim_params: "n=4 topology=full threshold=3"
all_tests_passed: true
`)

	params, err := LoadRunParams(path)
	require.NoError(t, err)
	assert.Equal(t, simlog.RunParams{
		NodeCount:      4,
		SimulationTime: 120.5,
		SimParams:      "n=4 topology=full threshold=3",
		AllTestsPassed: true,
	}, params)
}

func TestLoadRunParams_MissingFile(t *testing.T) {
	_, err := LoadRunParams(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, simlog.IsFileAccess(err))
}

func TestLoadRunParams_MalformedYAML(t *testing.T) {
	path := writeParams(t, "node_count: [unclosed")

	_, err := LoadRunParams(path)
	require.Error(t, err)
	assert.False(t, simlog.IsFileAccess(err), "parse failures are not file access errors")
}

func TestLoadRunParams_NegativeNodeCount(t *testing.T) {
	path := writeParams(t, "node_count: -1")

	_, err := LoadRunParams(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node_count")
}

func TestValidate_ZeroValueOK(t *testing.T) {
	assert.NoError(t, Validate(simlog.RunParams{}))
}
