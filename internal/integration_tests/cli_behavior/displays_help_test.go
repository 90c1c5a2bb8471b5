package integration_tests

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/vk/seriesreg/internal/cli"
)

// Test for: displays help
func TestCLI_DisplaysHelp_WhenNoCommandIsProvided(t *testing.T) {
	t.Parallel() // This test is safe to run in parallel with others.

	// --- Arrange ---
	// Capture what's "printed" to the console.
	outW, errW := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	// Run the CLI with no arguments, simulating the user running the
	// program with no commands.
	err := cli.Execute(context.Background(), outW, errW, []string{})

	// --- Assert ---
	if err != nil {
		t.Fatalf("cli.Execute() returned an unexpected error: %v", err)
	}

	// Verify that the help text was printed by checking for known strings.
	for _, want := range []string{"Usage:", "types", "resolve", "serve"} {
		if !strings.Contains(outW.String(), want) {
			t.Errorf("expected output to contain %q, but got:\n%s", want, outW.String())
		}
	}
}
