package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AndreyAkinshin/bridgematrix/internal/config"
	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/executor"
	"github.com/AndreyAkinshin/bridgematrix/internal/logging"
	"github.com/AndreyAkinshin/bridgematrix/internal/output"
	"github.com/AndreyAkinshin/bridgematrix/internal/project"
	"github.com/AndreyAkinshin/bridgematrix/internal/report"
	"github.com/AndreyAkinshin/bridgematrix/internal/runner"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Client output and diagnostic log destinations. Tests replace them.
var (
	clientStdout io.Writer = os.Stdout
	clientStderr io.Writer = os.Stderr
	logConsole   io.Writer = os.Stderr
)

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth = 12
	helpFlagWidth    = 17
	helpEnvWidth     = 26
)

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and the exit code on failure.
func loadProject(opts *GlobalOptions) (*project.Project, int) {
	proj, err := project.Load(project.LoadOptions{ConfigPath: opts.ConfigPath})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.GetExitCode(err)
	}
	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}
	return proj, errors.ExitSuccess
}

// newLogger builds the diagnostic logger. -v forces debug and -q raises the
// console threshold to error; otherwise log.level from config applies.
func newLogger(cfg *config.Config, opts *GlobalOptions, runID string) (*zap.Logger, func() error, error) {
	level := cfg.Log.Level
	switch {
	case opts.Verbose:
		level = "debug"
	case opts.Quiet:
		level = "error"
	}
	return logging.New(logging.Options{
		Level:   level,
		File:    cfg.Log.File,
		Console: logConsole,
		RunID:   runID,
	})
}

// newExecutor builds the client executor for cfg, wrapped in the retry policy.
func newExecutor(cfg *config.Config, opts *GlobalOptions, logger *zap.Logger) (*executor.CommandExecutor, executor.Executor, error) {
	execOpts := executor.Options{
		Command:       cfg.Client.Command,
		Args:          cfg.Client.Args,
		Env:           cfg.Client.Env,
		Wallet:        cfg.Wallet,
		SignerKeyPath: cfg.SignerKeyPath,
		Dir:           cfg.Root,
		Timeout:       cfg.Timeout,
		Logger:        logger,
	}
	if !opts.Quiet {
		execOpts.Stdout = clientStdout
		execOpts.Stderr = clientStderr
	}
	cmdExec, err := executor.NewCommandExecutor(execOpts)
	if err != nil {
		return nil, nil, err
	}
	return cmdExec, executor.WithRetry(cmdExec, cfg.Retry.Attempts, cfg.Retry.Delay, logger), nil
}

// cmdRun executes every case of the matrix and prints the summary.
func cmdRun(opts *GlobalOptions) int {
	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	cfg := proj.Config

	runID := uuid.NewString()
	logger, closeLog, err := newLogger(cfg, opts, runID)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	defer func() { _ = closeLog() }()

	plan, err := runner.Prepare(cfg)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	for _, w := range plan.Warnings {
		out.Warning("%s", w)
	}

	_, ex, err := newExecutor(cfg, opts, logger)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(ex, report.NewReporter(out), runner.Options{
		Concurrency: cfg.Concurrency,
		RunID:       runID,
		Logger:      logger,
	})
	res, err := r.Run(ctx, plan)
	if err != nil {
		out.ErrorPrefix("interrupted")
		return errors.ExitInterrupted
	}

	if cfg.ReportFile != "" {
		doc := report.NewDocument(res.Summary, res.Results, res.StartedAt, res.FinishedAt)
		if err := report.WriteJSON(cfg.ReportFile, doc); err != nil {
			out.ErrorPrefix("failed to write report %s: %v", cfg.ReportFile, err)
			return errors.ExitFailure
		}
		logger.Info("report written", zap.String("path", cfg.ReportFile))
	}

	return report.ExitCode(res.Summary)
}

// cmdMatrix prints the resolved plan without running the client.
func cmdMatrix(opts *GlobalOptions) int {
	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	cfg := proj.Config

	plan, err := runner.BuildPlan(cfg)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	for _, w := range plan.Warnings {
		out.Warning("%s", w)
	}

	headers := []string{"#", "Mode", "Chain", "Chain ID", "Currency", "Amount"}
	rows := make([][]string, 0, len(plan.Cases))
	for i, tc := range plan.Cases {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			tc.Mode.String(),
			tc.Chain.String(),
			strconv.FormatUint(tc.Chain.ID(), 10),
			tc.Currency.String(),
			tc.Amount.String(),
		})
	}

	out.Section("Matrix")
	out.Table(headers, rows)
	out.Println("")
	out.Println("%d chains x %d currencies x %d modes = %d cases",
		len(cfg.Chains), len(cfg.Currencies), len(cfg.Modes), len(plan.Cases))

	if opts.Verbose {
		cmdExec, _, err := newExecutor(cfg, opts, zap.NewNop())
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
		out.Section("Commands")
		for _, tc := range plan.Cases {
			out.Println("%s", strings.Join(cmdExec.CommandLine(tc), " "))
		}
	}

	return errors.ExitSuccess
}

// cmdCheck validates everything a run needs without running the client.
func cmdCheck(opts *GlobalOptions) int {
	proj, code := loadProject(opts)
	if proj == nil {
		return code
	}
	cfg := proj.Config

	plan, err := runner.Prepare(cfg)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	for _, w := range plan.Warnings {
		out.Warning("%s", w)
	}

	if _, _, err := newExecutor(cfg, opts, zap.NewNop()); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	clientPath, err := lookupClient(cfg.Client.Command, cfg.Root)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if proj.ConfigPath != "" {
		out.ValidationSuccess("config: %s", proj.ConfigPath)
	} else {
		out.ValidationSuccess("config: built-in defaults")
	}
	out.ValidationSuccess("wallet: %s", cfg.Wallet)
	out.ValidationSuccess("signer key: %s", cfg.SignerKeyPath)
	out.ValidationSuccess("client: %s", clientPath)
	out.ValidationSuccess("amounts: %d cases resolved", len(plan.Cases))
	return errors.ExitSuccess
}

// lookupClient resolves the client command the way the executor will run it:
// bare names through PATH, relative paths against the project root.
func lookupClient(command, root string) (string, error) {
	path := command
	if strings.ContainsRune(command, filepath.Separator) && !filepath.IsAbs(command) {
		path = filepath.Join(root, command)
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", errors.MissingArtifact("client command", command)
	}
	return resolved, nil
}
