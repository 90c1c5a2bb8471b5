package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), &out, &errOut, args)
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	return exitErr.Code
}

func TestExecute_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "resolve")
	assert.Contains(t, out, "--manifests")
}

func TestExecute_Types(t *testing.T) {
	out, _, err := execute(t, "types", "polynomial")
	require.NoError(t, err)
	assert.Contains(t, out, "double")
	assert.Contains(t, out, "real")
	assert.NotContains(t, out, "polynomial_double")
}

func TestExecute_Resolve(t *testing.T) {
	out, _, err := execute(t, "resolve", "poisson_series", "polynomial_integer", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "symbol: _poisson_series_polynomial_integer")
}

func TestExecute_List(t *testing.T) {
	out, _, err := execute(t, "list", "--filter", `series == "polynomial"`)
	require.NoError(t, err)
	assert.Contains(t, out, "_polynomial_rational")
	assert.NotContains(t, out, "_poisson_series_")
}

func TestExecute_Settings(t *testing.T) {
	out, _, err := execute(t, "settings", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"max_term_output": 20`)
}

func TestExecute_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		wantCode int
		wantMsg  string
	}{
		{name: "unsupported pair", args: []string{"resolve", "polynomial", "polynomial_real"}, wantCode: ExitFailure, wantMsg: "no series type available for this coefficient type"},
		{name: "unknown series", args: []string{"types", "laurent"}, wantCode: ExitFailure, wantMsg: "unknown series"},
		{name: "bad filter", args: []string{"list", "-f", "series =="}, wantCode: ExitFailure},
		{name: "missing argument", args: []string{"resolve", "polynomial"}, wantCode: ExitUsage, wantMsg: "accepts 2 arg(s)"},
		{name: "unknown flag", args: []string{"types", "polynomial", "--bogus"}, wantCode: ExitUsage, wantMsg: "unknown flag: --bogus"},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: ExitUsage, wantMsg: "unknown command"},
		{name: "bad log level", args: []string{"settings", "--log-level", "trace"}, wantCode: ExitUsage, wantMsg: "invalid log-level"},
		{name: "bad output", args: []string{"settings", "-o", "csv"}, wantCode: ExitUsage, wantMsg: "invalid output format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, exitCode(t, err))
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}
