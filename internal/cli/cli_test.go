package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestExplain_Text(t *testing.T) {
	t.Parallel()
	stdout, _, err := execute(t, "explain", fixture("presenters.yaml"))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "explain_text", []byte(stdout))
}

func TestExplain_JSON(t *testing.T) {
	t.Parallel()
	stdout, _, err := execute(t, "--format", "json", "explain", fixture("presenters.yaml"))
	require.NoError(t, err)

	var explanations []MethodExplanation
	require.NoError(t, json.Unmarshal([]byte(stdout), &explanations))
	require.Len(t, explanations, 2)
	assert.Equal(t, "owner_name", explanations[0].Name)
	require.Len(t, explanations[0].Chains, 2)
	assert.Equal(t, "{guest: @name}", explanations[0].Chains[1].Chain)
	assert.Equal(t, []string{"call", "field"}, explanations[0].Chains[1].Kinds)
}

func TestExplain_Invalid(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "explain", fixture("invalid.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()
	stdout, _, err := execute(t, "validate", fixture("presenters.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 method(s)\n", stdout)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()
	stdout, _, err := execute(t, "validate", fixture("invalid.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "line 4")
	assert.Contains(t, stdout, "line 7")
	assert.Equal(t, 2, bytes.Count([]byte(stdout), []byte("error: ")))
}

func TestValidate_JSON(t *testing.T) {
	t.Parallel()
	stdout, _, err := execute(t, "--format", "json", "validate", fixture("invalid.yaml"))
	require.Error(t, err)

	var report ValidationReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, 0, report.Methods)
	assert.Len(t, report.Errors, 2)
}

func TestValidate_VerboseLogsToStderr(t *testing.T) {
	t.Parallel()
	stdout, stderr, err := execute(t, "-v", "validate", fixture("presenters.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ok: 2 method(s)\n", stdout)
	assert.Contains(t, stderr, "definitions loaded")
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "validate", fixture("absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "--format", "xml", "validate", fixture("presenters.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
