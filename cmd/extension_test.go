package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installExtension writes an executable shell script named mbp-<name> in a
// folder added to PATH.
func installExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mbp-"+name), []byte("#!/bin/sh\n"+script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunExtension(t *testing.T) {
	installExtension(t, "hello", `echo "$`+EnvSnapshotDir+` $`+EnvCurrency+` $1"`+"\n")
	dir, out := useSnapshot(t, nil)

	found, code := RunExtension("hello", []string{"world"})

	assert.True(t, found)
	assert.Equal(t, 0, code)
	assert.Equal(t, dir+" INR world\n", out.String())
}

func TestRunExtension_ExitCode(t *testing.T) {
	installExtension(t, "fail", "exit 3\n")
	useSnapshot(t, nil)

	found, code := RunExtension("fail", nil)

	assert.True(t, found)
	assert.Equal(t, 3, code)
}

func TestRunExtension_NotFound(t *testing.T) {
	found, _ := RunExtension("no-such-extension", nil)
	assert.False(t, found)
}
