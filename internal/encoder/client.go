package encoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const stderrTailLines = 20

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onLine func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an ffmpeg client. timeoutSeconds bounds each run; zero
// disables the bound.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Encode runs the compression plan, forwarding progress updates parsed from
// ffmpeg's stderr stream.
func (c *Client) Encode(ctx context.Context, plan Plan, progress func(ProgressUpdate)) error {
	return c.run(ctx, BuildArgs(plan), "Encoding", progress)
}

// FixRotation runs the rotation pre-pass, re-encoding the video so the given
// clockwise rotation is baked into the pixels of the output file.
func (c *Client) FixRotation(ctx context.Context, input, output string, rotation int, progress func(ProgressUpdate)) error {
	args, err := RotationFixArgs(input, output, rotation)
	if err != nil {
		return err
	}
	return c.run(ctx, args, "Fixing rotation", progress)
}

func (c *Client) run(ctx context.Context, args []string, stage string, progress func(ProgressUpdate)) error {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	tracker := &progressTracker{stage: stage}
	tail := make([]string, 0, stderrTailLines)

	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		if update, ok := tracker.Consume(line); ok {
			if progress != nil {
				progress(update)
			}
			return
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if len(tail) == stderrTailLines {
				copy(tail, tail[1:])
				tail = tail[:stderrTailLines-1]
			}
			tail = append(tail, trimmed)
		}
	})
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.Join(tail, "\n"),
			}
		}
		return fmt.Errorf("run %s: %w", c.binary, err)
	}
	return nil
}

// ExitError reports a non-zero ffmpeg exit together with the tail of its
// stderr output for diagnostics.
type ExitError struct {
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ffmpeg exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("ffmpeg exited with status %d: %s", e.ExitCode, lastLine(e.Stderr))
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(scanStatusLines)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		return err
	}
	if scanErr != nil {
		return fmt.Errorf("scan output: %w", scanErr)
	}
	return nil
}

// scanStatusLines splits on both newlines and carriage returns so ffmpeg's
// in-place status updates surface as individual lines.
func scanStatusLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if idx := bytes.IndexAny(data, "\r\n"); idx >= 0 {
		return idx + 1, data[:idx], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
