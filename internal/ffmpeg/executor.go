package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os/exec"

	cerrors "github.com/five82/cascaler/internal/errors"
)

// Pipe wraps a running ffmpeg subprocess with its stdin/stdout pipes
// open for streaming raw frames or samples. Callers write/read until
// EOF, then call Wait.
type Pipe struct {
	cmd    *exec.Cmd
	Stdin  io.WriteCloser
	Stdout io.ReadCloser
	stderr bytes.Buffer
}

// StartPipe launches binary with args, wiring stdin and/or stdout as
// pipes per the needStdin/needStdout flags. Stderr is captured for
// error reporting.
func StartPipe(ctx context.Context, binary string, args []string, needStdin, needStdout bool) (*Pipe, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	p := &Pipe{cmd: cmd}
	cmd.Stderr = &p.stderr

	if needStdin {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, cerrors.NewCommandError(binary, cerrors.CommandStart, err)
		}
		p.Stdin = stdin
	}
	if needStdout {
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return nil, cerrors.NewCommandError(binary, cerrors.CommandStart, err)
		}
		p.Stdout = stdout
	}

	if err := cmd.Start(); err != nil {
		return nil, cerrors.NewCommandError(binary, cerrors.CommandStart, err)
	}
	return p, nil
}

// Wait blocks until the subprocess exits, returning a structured
// command error (including captured stderr) on non-zero exit.
func (p *Pipe) Wait() error {
	err := p.cmd.Wait()
	if err != nil {
		return cerrors.WrapExecError(p.cmd.Path, err, p.stderr.String())
	}
	return nil
}

// Stderr returns the captured stderr output so far.
func (p *Pipe) Stderr() string {
	return p.stderr.String()
}
