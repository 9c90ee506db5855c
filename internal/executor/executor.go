// Package executor runs the bridge client for a single test case.
package executor

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Executor performs one bridge operation and reports its outcome.
// Implementations never return an error for a failed operation; the failure
// is described by the result.
type Executor interface {
	Execute(ctx context.Context, tc model.TestCase) model.ExecutionResult
}

// waitDelay is how long Execute waits for client output after the client is killed.
const waitDelay = 2 * time.Second

// Options configures a CommandExecutor.
type Options struct {
	Command       string
	Args          []string
	Env           map[string]string
	Wallet        string
	SignerKeyPath string
	// Dir is the client working directory. Empty means the current directory.
	Dir string
	// Timeout bounds one invocation. Zero means no limit.
	Timeout time.Duration
	// Stdout and Stderr receive client output. Nil sends it to the null device.
	// Writers other than *os.File are serialized by the executor, since
	// parallel cases copy client output from several goroutines at once.
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// CommandExecutor invokes an external client process once per test case.
// The client runs without a shell; arguments are passed verbatim after
// placeholder substitution.
type CommandExecutor struct {
	command       string
	template      *Template
	env           map[string]string
	wallet        string
	signerKeyPath string
	dir           string
	timeout       time.Duration
	stdout        io.Writer
	stderr        io.Writer
	logger        *zap.Logger
}

// NewCommandExecutor validates the argument template and builds an executor.
func NewCommandExecutor(opts Options) (*CommandExecutor, error) {
	if opts.Command == "" {
		return nil, errors.Config("client.command", "is required")
	}
	tmpl, err := ParseTemplate(opts.Args)
	if err != nil {
		return nil, errors.WrapKind(errors.KindConfig, err, "invalid client arguments")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mu := &sync.Mutex{}
	return &CommandExecutor{
		command:       opts.Command,
		template:      tmpl,
		env:           opts.Env,
		wallet:        opts.Wallet,
		signerKeyPath: opts.SignerKeyPath,
		dir:           opts.Dir,
		timeout:       opts.Timeout,
		stdout:        guardWriter(opts.Stdout, mu),
		stderr:        guardWriter(opts.Stderr, mu),
		logger:        logger,
	}, nil
}

// Args returns the rendered client arguments for tc.
func (e *CommandExecutor) Args(tc model.TestCase) []string {
	return e.template.Render(caseVars(e.wallet, e.signerKeyPath, tc))
}

// CommandLine returns the command followed by the rendered arguments.
func (e *CommandExecutor) CommandLine(tc model.TestCase) []string {
	return append([]string{e.command}, e.Args(tc)...)
}

// Execute runs the client synchronously and maps its exit status.
//
// A zero status is success and a nonzero status is an operation failure.
// When the client cannot be started, times out, or is killed by a signal, the
// result carries model.ExitCodeUnexpected and the cause in Err.
func (e *CommandExecutor) Execute(ctx context.Context, tc model.TestCase) model.ExecutionResult {
	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := e.Args(tc)
	cmd := exec.CommandContext(runCtx, e.command, args...)
	cmd.Dir = e.dir
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	// Bounds the wait for output copying when a killed client leaves
	// children holding its pipes.
	cmd.WaitDelay = waitDelay
	cmd.Env = os.Environ()
	for k, v := range e.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	log := e.logger.With(
		zap.String("mode", tc.Mode.String()),
		zap.String("chain", tc.Chain.String()),
		zap.String("currency", tc.Currency.String()),
	)
	log.Debug("invoking client", zap.String("command", e.command), zap.Strings("args", args))

	start := time.Now()
	err := cmd.Run()
	result := model.ExecutionResult{
		Case:     tc,
		Duration: time.Since(start),
		Attempts: 1,
	}

	switch {
	case err == nil:
		result.Success = true
		result.ExitCode = 0
	case runCtx.Err() != nil:
		// Killed by cancellation or timeout.
		result.ExitCode = model.ExitCodeUnexpected
		result.Err = runCtx.Err()
		if ctx.Err() == nil {
			result.Err = errors.Newf("client timed out after %s", e.timeout)
		}
	default:
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			// ExitCode reports -1 when the process was terminated by a signal.
			result.ExitCode = exitErr.ExitCode()
			if result.ExitCode < 0 {
				result.ExitCode = model.ExitCodeUnexpected
				result.Err = err
			}
		} else {
			result.ExitCode = model.ExitCodeUnexpected
			result.Err = err
		}
	}

	fields := []zap.Field{zap.Int("exit_code", result.ExitCode), zap.Duration("duration", result.Duration)}
	switch {
	case result.Success:
		log.Debug("client succeeded", fields...)
	case result.Err != nil:
		log.Warn("client did not complete", append(fields, zap.Error(result.Err))...)
	default:
		log.Debug("client failed", fields...)
	}

	return result
}

// lockedWriter serializes writes to a writer shared by concurrent clients.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// guardWriter wraps w in a lockedWriter. Files are handed to the child
// directly and need no lock.
func guardWriter(w io.Writer, mu *sync.Mutex) io.Writer {
	if w == nil {
		return nil
	}
	if _, ok := w.(*os.File); ok {
		return w
	}
	return &lockedWriter{mu: mu, w: w}
}
