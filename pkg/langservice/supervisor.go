package langservice

import (
	"context"
	"io"
	"sync"

	"github.com/gqlpad/gqlpad/pkg/notify"
	"github.com/gqlpad/gqlpad/pkg/session"
)

const serviceErrorTitle = "GraphQL Language Service Error"

// Process is the supervised service as the supervisor sees it. *Instance
// implements it; tests substitute fakes.
type Process interface {
	Restart(ctx context.Context) error
	Pipes() (stdout, stderr io.Reader)
	Command() string
}

// Revalidator re-runs schema validation for a document after the service
// comes back with a possibly different schema.
type Revalidator interface {
	Revalidate(id session.DocumentID)
}

// Supervisor serializes restarts of the language-service process. Callers
// never block: each Restart call returns immediately and runs its completion
// exactly once, after its restart attempt finishes.
type Supervisor struct {
	mu sync.Mutex

	proc     Process
	console  *Console
	notifier *notify.Bus
}

// NewSupervisor creates a supervisor for proc. The console may be nil.
func NewSupervisor(proc Process, console *Console, notifier *notify.Bus) *Supervisor {
	return &Supervisor{proc: proc, console: console, notifier: notifier}
}

// Restart schedules a restart. Overlapping calls queue on the supervisor's
// lock and run one at a time; each call's onComplete fires exactly once with
// the outcome of its own attempt. A nil onComplete is allowed.
func (s *Supervisor) Restart(onComplete func(error)) {
	go func() {
		err := s.restart()
		if onComplete != nil {
			onComplete(err)
		}
	}()
}

// RestartAndWait restarts synchronously. Used by the CLI surface, where
// there is no editor to return control to.
func (s *Supervisor) RestartAndWait() error {
	return s.restart()
}

func (s *Supervisor) restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The old pipes die with the old process; detach first so the console
	// never renders a dead run's tail into the new session.
	if s.console != nil {
		s.console.Disconnect()
	}

	if err := s.proc.Restart(context.Background()); err != nil {
		rerr := &RestartError{Command: s.proc.Command(), Err: err}
		if s.notifier != nil {
			s.notifier.Error(serviceErrorTitle, rerr.Error())
		}
		return rerr
	}

	if s.console != nil {
		stdout, stderr := s.proc.Pipes()
		s.console.Attach(stdout, stderr)
	}
	return nil
}

// RevalidateOnComplete builds the completion used after an editor-driven
// restart: on success, re-resolve the active document and re-validate it.
// active reports the focused document, or false when none qualifies.
func RevalidateOnComplete(active func() (session.DocumentID, bool), rv Revalidator) func(error) {
	return func(err error) {
		if err != nil {
			return
		}
		if id, ok := active(); ok {
			rv.Revalidate(id)
		}
	}
}
