package langservice

import (
	"bufio"
	"io"
	"sync"
	"sync/atomic"
)

// Console tails the process's output into a writer. It is detached during a
// restart and re-attached to the fresh process's pipes afterward, so readers
// from a previous run never write into the new session.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	onStderr func()

	attached atomic.Bool

	// gen invalidates tail goroutines from earlier attachments.
	gen atomic.Int64
}

// NewConsole creates a console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// OnStderr registers a callback invoked whenever the attached process writes
// a line to stderr. Used to raise the console into view on service errors.
func (c *Console) OnStderr(fn func()) {
	c.mu.Lock()
	c.onStderr = fn
	c.mu.Unlock()
}

// Attached reports whether the console is currently attached.
func (c *Console) Attached() bool {
	return c.attached.Load()
}

// Attach starts tailing the given stdout and stderr readers. A previous
// attachment is implicitly disconnected. Nil readers are skipped.
func (c *Console) Attach(stdout, stderr io.Reader) {
	gen := c.gen.Add(1)
	c.attached.Store(true)

	if stdout != nil {
		go c.tail(stdout, gen, false)
	}
	if stderr != nil {
		go c.tail(stderr, gen, true)
	}
}

// Disconnect stops emitting output. Tail goroutines from the current
// attachment drain their readers silently.
func (c *Console) Disconnect() {
	c.gen.Add(1)
	c.attached.Store(false)
}

func (c *Console) tail(r io.Reader, gen int64, isStderr bool) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if c.gen.Load() != gen {
			continue
		}
		c.emit(scanner.Text(), isStderr)
	}
}

func (c *Console) emit(line string, isStderr bool) {
	c.mu.Lock()
	if c.out != nil {
		io.WriteString(c.out, line+"\n")
	}
	onStderr := c.onStderr
	c.mu.Unlock()

	if isStderr && onStderr != nil {
		onStderr()
	}
}
