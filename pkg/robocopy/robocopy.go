// Package robocopy drives the external robust-copy tool. It owns the
// argument contract and the exit status convention, nothing else: the tool
// does the actual transfer, retries, and log writing.
package robocopy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/paloj/copyto/pkg/logging"
)

// FailureThreshold is the first exit code the tool treats as a hard
// failure. Codes below it, including nonzero ones, only describe what was
// copied or skipped.
const FailureThreshold = 8

// ExitError reports a hard copy failure with the tool's exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("copy tool failed with exit code %d", e.Code)
}

// Options selects the per-run tool behavior.
type Options struct {
	// Retries and RetryWait bound the tool's transient error handling.
	Retries   int
	RetryWait time.Duration

	// Exclusions are names skipped wherever they appear in the tree,
	// whether as a file or as a directory.
	Exclusions []string

	// LogPath, when set, makes the tool append a run log at that path.
	LogPath string
}

// Outcome is the interpreted result of one invocation.
type Outcome struct {
	Code int
}

// Failed reports whether the run hit the hard failure threshold.
func (o Outcome) Failed() bool {
	return o.Code >= FailureThreshold
}

func (o Outcome) String() string {
	if o.Failed() {
		return fmt.Sprintf("failed (exit code %d)", o.Code)
	}
	if o.Code == 0 {
		return "nothing to copy"
	}
	return fmt.Sprintf("copied (exit code %d)", o.Code)
}

// Args builds the tool's argument vector: recursive copy including empty
// directories, timestamp and attribute metadata, bounded retries, name
// exclusions applied to both files and directories, and an optional
// append-mode log file.
func Args(source, dest string, opts Options) []string {
	args := []string{source, dest, "/E", "/COPY:DAT", "/DCOPY:DAT"}
	args = append(args, "/R:"+strconv.Itoa(opts.Retries))
	args = append(args, "/W:"+strconv.Itoa(int(opts.RetryWait/time.Second)))
	if len(opts.Exclusions) > 0 {
		args = append(args, "/XF")
		args = append(args, opts.Exclusions...)
		args = append(args, "/XD")
		args = append(args, opts.Exclusions...)
	}
	if opts.LogPath != "" {
		args = append(args, "/NP", "/LOG+:"+opts.LogPath)
	}
	return args
}

// Copier is the transfer contract the copy runner depends on.
type Copier interface {
	Copy(ctx context.Context, source, dest string, opts Options) (Outcome, error)
}

var _ Copier = (*Runner)(nil)

// Runner invokes the real tool as a subprocess.
type Runner struct {
	// Tool is the binary to invoke, "robocopy" when empty.
	Tool string
}

// Copy runs the tool and blocks until it finishes. Tool output streams
// through so the user sees transfer progress. On failure the partially
// copied tree is left in place for inspection, the tool's append/resume
// semantics make a re-run pick up where it stopped.
func (r *Runner) Copy(ctx context.Context, source, dest string, opts Options) (Outcome, error) {
	tool := r.Tool
	if tool == "" {
		tool = "robocopy"
	}
	args := Args(source, dest, opts)

	logger := logging.GetLogger("robocopy")
	logger.Info().Str("tool", tool).Strs("args", args).Msg("invoking copy tool")

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return Outcome{Code: 0}, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Outcome{}, fmt.Errorf("running %s: %w", tool, err)
	}

	outcome := Outcome{Code: exitErr.ExitCode()}
	logger.Debug().Int("code", outcome.Code).Msg("copy tool finished")
	if outcome.Failed() {
		return outcome, &ExitError{Code: outcome.Code}
	}
	return outcome, nil
}
