// Package testutil provides shared helpers for tests that exercise the full
// application startup sequence.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/seriesreg/internal/app"
	"github.com/vk/seriesreg/internal/registry"
)

// LogsEnv enables dumping captured logs for every test when set to "true".
const LogsEnv = "SERIESREG_TEST_LOGS"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Reset discards buffered output.
func (b *SafeBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.b.Reset()
}

// HarnessResult holds the outcome of an application startup.
type HarnessResult struct {
	Output    *SafeBuffer
	LogOutput *SafeBuffer
	Err       error
	App       *app.App
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns its path.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// StartApp builds an App with debug logging, writing files as extra
// manifests. A startup panic is recovered and returned as Err.
func StartApp(t *testing.T, cfg app.Config, files map[string]string, mods ...registry.Module) *HarnessResult {
	t.Helper()

	if len(files) > 0 {
		cfg.ManifestPaths = append(cfg.ManifestPaths, WriteFiles(t, files))
	}
	cfg.LogLevel = "debug"
	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	result := &HarnessResult{Output: &SafeBuffer{}, LogOutput: &SafeBuffer{}}
	t.Cleanup(func() {
		if os.Getenv(LogsEnv) == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput.String())
		}
	})

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(result.Output, result.LogOutput, config, mods...)
	}()
	return result
}

// AssertLogged fails the test unless every fragment appears in the captured
// log output.
func AssertLogged(t *testing.T, result *HarnessResult, fragments ...string) {
	t.Helper()
	logs := result.LogOutput.String()
	for _, f := range fragments {
		require.True(t, strings.Contains(logs, f), "expected %q in log output:\n%s", f, logs)
	}
}
