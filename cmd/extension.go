package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment variables passing the global flags to extensions.
const (
	EnvSnapshotDir = "MBP_SNAPSHOT_DIR"
	EnvCurrency    = "MBP_CURRENCY"
	EnvLogLevel    = "MBP_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external mbp-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "mbp-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		log := logger()
		log.Debug().Err(err).Str("extension", name).Msg("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvSnapshotDir+"="+*snapshotDir,
		EnvCurrency+"="+*currency,
		EnvLogLevel+"="+*logLevel,
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
