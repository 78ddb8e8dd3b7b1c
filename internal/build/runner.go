package build

import (
	"errors"
	"os/exec"
	"time"
	"unicode/utf8"
)

// RunResult captures the outcome of one external tool invocation.
type RunResult struct {
	ExitCode   int
	Output     string
	DurationMs int64
	Truncated  bool
}

// runCommand executes the external build tool in dir with the given
// environment, capturing combined stdout/stderr and wall-clock duration.
// Output beyond logLimit bytes is truncated. A failure to start the process
// is reported as exit code -1 with the error text in the output.
func runCommand(command string, args []string, dir string, env []string, logLimit int) RunResult {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	if env != nil {
		cmd.Env = env
	}

	start := time.Now()
	output, err := cmd.CombinedOutput()

	result := RunResult{
		Output:     string(output),
		DurationMs: time.Since(start).Milliseconds(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			if result.Output != "" {
				result.Output += "\n"
			}
			result.Output += err.Error()
		}
	}

	if logLimit > 0 && len(result.Output) > logLimit {
		// Back off to a rune boundary so the stored log stays valid UTF-8.
		cut := logLimit
		for cut > 0 && !utf8.RuneStart(result.Output[cut]) {
			cut--
		}
		result.Output = result.Output[:cut]
		result.Truncated = true
	}

	return result
}
