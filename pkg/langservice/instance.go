// Package langservice manages the backing schema language-service process:
// starting it, consuming its output, and restarting it on demand without
// losing editor state.
package langservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"
)

// Standard errors returned by the language service.
var (
	// ErrAlreadyRunning indicates the process is already started.
	ErrAlreadyRunning = errors.New("language service already running")

	// ErrNotRunning indicates no process is running.
	ErrNotRunning = errors.New("language service not running")
)

// RestartError wraps a failed restart. The prior process is left detached;
// a later restart may recover.
type RestartError struct {
	Command string
	Err     error
}

// Error implements the error interface.
func (e *RestartError) Error() string {
	return fmt.Sprintf("restart %s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *RestartError) Unwrap() error { return e.Err }

// Status indicates the current state of the instance.
type Status int32

const (
	StatusStopped Status = iota
	StatusStarting
	StatusRunning
	StatusStopping
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Config defines how to start the language-service process.
type Config struct {
	// Command is the executable to run.
	Command string

	// Args are command-line arguments.
	Args []string

	// Env are additional environment variables.
	Env map[string]string

	// WorkDir is the working directory.
	WorkDir string
}

// processRun is the state of one launched process. The monitor goroutine
// owns the exit: it records the exit error, marks the instance stopped if
// the process died on its own, and closes done, in that order. Everyone
// else only ever waits on done.
type processRun struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser

	done chan struct{}
	err  error // exit error; valid once done is closed
}

// Instance is one supervised language-service process. It carries a single
// mutable running configuration; configuration changes take effect on the
// next start or restart.
type Instance struct {
	mu     sync.Mutex
	config Config

	run *processRun

	status atomic.Int32
}

// NewInstance creates an instance (not yet started).
func NewInstance(config Config) *Instance {
	i := &Instance{config: config}
	i.status.Store(int32(StatusStopped))
	return i
}

// Config returns the current running configuration.
func (i *Instance) Config() Config {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.config
}

// SetConfig replaces the running configuration. The new configuration takes
// effect on the next start or restart.
func (i *Instance) SetConfig(config Config) {
	i.mu.Lock()
	i.config = config
	i.mu.Unlock()
}

// Status returns the current instance status. A process that exits on its
// own reports stopped as soon as the monitor observes the exit.
func (i *Instance) Status() Status {
	return Status(i.status.Load())
}

// Start launches the process.
func (i *Instance) Start(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.startLocked(ctx)
}

func (i *Instance) startLocked(ctx context.Context) error {
	if i.Status() != StatusStopped {
		return ErrAlreadyRunning
	}
	i.status.Store(int32(StatusStarting))

	cmd := exec.CommandContext(ctx, i.config.Command, i.config.Args...)
	cmd.Env = os.Environ()
	for k, v := range i.config.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	if i.config.WorkDir != "" {
		cmd.Dir = i.config.WorkDir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		i.status.Store(int32(StatusStopped))
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		i.status.Store(int32(StatusStopped))
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		i.status.Store(int32(StatusStopped))
		return fmt.Errorf("start %s: %w", i.config.Command, err)
	}

	run := &processRun{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		done:   make(chan struct{}),
	}
	i.run = run

	go func() {
		run.err = cmd.Wait()
		// Self-exit: a stop in progress holds status at stopping and
		// finishes the transition itself.
		i.status.CompareAndSwap(int32(StatusRunning), int32(StatusStopped))
		close(run.done)
	}()

	i.status.Store(int32(StatusRunning))
	return nil
}

// Stop kills the process and waits for it to exit.
func (i *Instance) Stop() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stopLocked()
}

func (i *Instance) stopLocked() error {
	if i.Status() != StatusRunning {
		return ErrNotRunning
	}
	i.status.Store(int32(StatusStopping))

	run := i.run
	if run != nil && run.cmd.Process != nil {
		run.cmd.Process.Kill()
	}

	// cmd.Wait in the monitor goroutine closes the pipes and then done;
	// wait for it so the process is fully reaped before we report stopped.
	if run != nil {
		select {
		case <-run.done:
		case <-time.After(5 * time.Second):
		}
	}

	i.run = nil
	i.status.Store(int32(StatusStopped))
	return nil
}

// Restart stops the process if it is running and starts a fresh one with
// the current configuration. A process that already exited on its own needs
// no stop. Serialization of concurrent restarts is the supervisor's job.
func (i *Instance) Restart(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.stopLocked(); err != nil && !errors.Is(err, ErrNotRunning) {
		return err
	}
	return i.startLocked(ctx)
}

// Pipes returns the running process's stdout and stderr readers, or nils
// when stopped. The readers belong to the current run; a restart replaces
// them, which is why the console must re-attach afterward.
func (i *Instance) Pipes() (stdout, stderr io.Reader) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.run == nil || i.Status() != StatusRunning {
		return nil, nil
	}
	return i.run.stdout, i.run.stderr
}

// Command returns the configured executable name.
func (i *Instance) Command() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.config.Command
}

// Done returns a channel closed when the current run's process has exited.
// Purely a notification: it is never drained by Stop or Restart, so any
// number of waiters may observe the same exit. With no process started the
// channel is already closed.
func (i *Instance) Done() <-chan struct{} {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.run == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return i.run.done
}

// ExitError returns the current run's exit error once its process has
// exited, nil while it is still running or when nothing was started.
func (i *Instance) ExitError() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.run == nil {
		return nil
	}
	select {
	case <-i.run.done:
		return i.run.err
	default:
		return nil
	}
}
