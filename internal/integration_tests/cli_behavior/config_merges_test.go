package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/seriesreg/internal/cli"
	"github.com/vk/seriesreg/internal/settings"
	"github.com/vk/seriesreg/internal/testutil"
)

// TestCLI_MergesSettings_FromDirectoryPath validates that the loader discovers
// every HCL file below a --manifests directory and merges it with the
// embedded module manifests.
func TestCLI_MergesSettings_FromDirectoryPath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"overrides/settings.hcl": `
			settings {
				n_threads           = 2
				min_work_per_thread = 1000
			}
		`,
		"overrides/.hidden/settings.hcl": `
			settings {
				n_threads = 99
			}
		`,
	})
	outW, errW := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := cli.Execute(context.Background(), outW, errW, []string{"--manifests", dir, "-o", "json", "settings"})

	// --- Assert ---
	require.NoError(t, err, errW.String())

	var got settings.Values
	require.NoError(t, json.Unmarshal(outW.Bytes(), &got))
	require.EqualValues(t, 2, got.NThreads)
	require.EqualValues(t, 1000, got.MinWorkPerThread)
	require.EqualValues(t, 20, got.MaxTermOutput)
}

// TestCLI_RejectsDuplicateSettings validates that two settings blocks across
// the loaded manifests are a startup error.
func TestCLI_RejectsDuplicateSettings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"a.hcl": "settings {\n  n_threads = 2\n}\n",
		"b.hcl": "settings {\n  tracing = true\n}\n",
	})

	// --- Act ---
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_ = cli.Execute(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--manifests", dir, "settings"})
	}()

	// --- Assert ---
	require.NotNil(t, recovered, "startup should have panicked")
	require.Contains(t, fmt.Sprint(recovered), "settings block declared more than once")
}
