// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> extension -> service -> store -> SQLite.
//
// Each test runs the real binary in a fresh directory with HOME pointed at
// a temp dir, so global config and the audit log never leak between tests.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tagidx binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "tagidx-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tagidx"
		if os.PathSeparator == '\\' {
			binaryName = "tagidx.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates an isolated directory without a catalogue.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates an isolated directory with an initialised catalogue
// and a local author.
func newTestEnv(t *testing.T, initArgs ...string) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run(append([]string{"init"}, initArgs...)...)
	env.run("config", "author.name", "tester", "--local")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home, "TAGIDX_DB=", "TAGIDX_DIR=")
	return cmd
}

// run executes tagidx with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("tagidx %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes tagidx and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes tagidx with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("tagidx %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runJSON executes tagidx with -o json and decodes stdout into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	cmd := e.command(append(args, "-o", "json")...)
	out, err := cmd.Output()
	require.NoError(e.t, err, "tagidx %v: %s", args, out)
	require.NoError(e.t, json.Unmarshal(out, v), "decoding %q", out)
}

// fails executes tagidx expecting a non-zero exit and returns the output.
func (e *testEnv) fails(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	require.Error(e.t, err, "tagidx %v succeeded: %s", args, out)
	return out
}

// create catalogues an index and returns its full id.
func (e *testEnv) create(dim, tags string) string {
	e.t.Helper()
	var got struct {
		ID string `json:"id"`
	}
	e.runJSON(&got, "index", "new", dim, tags)
	require.NotEmpty(e.t, got.ID)
	return got.ID
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
