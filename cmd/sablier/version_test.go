package main

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stampBuild(t *testing.T, v, c, d string) {
	t.Helper()
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})
	version, commit, date = v, c, d
}

func runVersion(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"version"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestVersionDefaultsWithoutLdflags(t *testing.T) {
	out, err := runVersion(t)
	require.NoError(t, err)

	assert.Contains(t, out, "Sablier dev\n")
	assert.Contains(t, out, "commit: none\n")
	assert.Contains(t, out, "built: unknown\n")
	assert.Contains(t, out, "theme API: v1\n")
}

func TestVersionReportsStampedBuild(t *testing.T) {
	stampBuild(t, "0.4.0", "9f3c2e1", "2026-10-03T12:00:00Z")

	out, err := runVersion(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Sablier 0.4.0\n")
	assert.Contains(t, out, "commit: 9f3c2e1\n")
	assert.Contains(t, out, "go: "+runtime.Version())

	out, err = runVersion(t, "--short")
	require.NoError(t, err)
	assert.Equal(t, "0.4.0\n", out)
}

func TestVersionJSON(t *testing.T) {
	stampBuild(t, "0.4.0", "9f3c2e1", "2026-10-03T12:00:00Z")

	out, err := runVersion(t, "--format", "json")
	require.NoError(t, err)

	var info buildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, buildInfo{Version: "0.4.0", Commit: "9f3c2e1", Date: "2026-10-03T12:00:00Z", Go: runtime.Version(), API: "v1"}, info)

	_, err = runVersion(t, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
