package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ptedit/internal/logging"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Document is the editing surface exposed to scripts.
type Document interface {
	Len() int
	ByteAt(offset int) (byte, error)
	Insert(offset int, text string) (int, error)
	Delete(start, end int) error
	Text() string
}

// Error reports a failed script run. It unwraps to the Lua error and, when
// the failure came from the document or the context, to that cause too.
type Error struct {
	Name  string
	Err   error
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap returns the Lua error and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Runner executes scripts. A Runner is safe for concurrent use; every run
// gets its own Lua state.
type Runner struct {
	timeout time.Duration
	logger  *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the maximum duration of a run. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger that receives log() output.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout: DefaultTimeout,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.WithComponent(r.logger, "script")
	return r
}

// RunFile runs the script at path against doc.
func (r *Runner) RunFile(ctx context.Context, doc Document, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.run(ctx, doc, path, string(src))
}

// Run runs source against doc.
func (r *Runner) Run(ctx context.Context, doc Document, source string) error {
	return r.run(ctx, doc, "<string>", source)
}

func (r *Runner) run(ctx context.Context, doc Document, name, source string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return &Error{Name: name, Err: err}
	}

	L := newState()
	defer L.Close()
	L.SetContext(ctx)

	b := &binding{doc: doc, logger: r.logger.With("script", name)}
	b.install(L)

	start := time.Now()
	err := protect(func() error {
		fn, err := L.Load(strings.NewReader(source), name)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
	if err != nil {
		cause := b.lastErr
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = ctxErr
		}
		r.logger.Debug("script failed", "script", name, logging.FieldError, err)
		return &Error{Name: name, Err: err, Cause: cause}
	}

	r.logger.Debug("script finished", "script", name, "calls", b.calls, "elapsed", time.Since(start))
	return nil
}

// newState opens a Lua state with only the safe standard libraries.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// protect converts panics from the Lua runtime into errors.
func protect(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()
	return fn()
}

// IsCanceled reports whether err stems from context cancellation or timeout.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
