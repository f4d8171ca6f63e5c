package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRemovesTempWorkDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	t.Setenv("PATH", t.TempDir()) // no timelane binary

	args := os.Args
	os.Args = []string{"benchmark"}
	t.Cleanup(func() { os.Args = args })

	assert.Equal(t, 1, run())

	left, err := filepath.Glob(filepath.Join(tmp, "timelane-bench-*"))
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestRunKeepsGivenWorkDir(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv("PATH", t.TempDir())

	args := os.Args
	os.Args = []string{"benchmark", workDir}
	t.Cleanup(func() { os.Args = args })

	assert.Equal(t, 1, run())
	assert.DirExists(t, workDir)
}

func TestGenerateRoadmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.csv")
	require.NoError(t, generateRoadmap(path, 10, 3))

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, generateRoadmap(path, 10, 3))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "seeded data is stable")
	assert.Contains(t, string(first), "id,name,start,end,team,status\n")
}
