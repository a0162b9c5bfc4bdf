package command

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/site-tools/node-deploy/pkg/errors"
	"github.com/site-tools/node-deploy/pkg/logging"
)

// Spec describes a single external command invocation
type Spec struct {
	Name             string
	Args             []string
	WorkingDirectory string
	Environment      []string
}

// CommandLine renders the invocation for logging and error context
func (s Spec) CommandLine() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Result holds the outcome of a completed command invocation
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Runner executes external commands to completion, capturing their output.
// Run propagates non-zero exit as a command error; Probe suppresses it and
// reports availability only.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
	Probe(ctx context.Context, spec Spec) bool
}

type execRunner struct {
	logger logging.Logger
}

func NewRunner(logger logging.Logger) Runner {
	return &execRunner{
		logger: logger,
	}
}

func (r *execRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	result, err := r.run(ctx, spec)
	if err != nil {
		r.logger.Errorf("Command failed: %s, error: %v", spec.CommandLine(), err)
		if result.Stdout != "" {
			r.logger.Errorf("Command stdout: %s", strings.TrimSpace(result.Stdout))
		}
		if result.Stderr != "" {
			r.logger.Errorf("Command stderr: %s", strings.TrimSpace(result.Stderr))
		}
		return result, err
	}
	r.logger.Infof("Command executed successfully: %s", spec.Name)
	return result, nil
}

func (r *execRunner) Probe(ctx context.Context, spec Spec) bool {
	result, err := r.run(ctx, spec)
	if err != nil {
		r.logger.Debugf("Probe failed: %s, exit code: %d, error: %v", spec.CommandLine(), result.ExitCode, err)
		return false
	}
	return true
}

func (r *execRunner) run(ctx context.Context, spec Spec) (Result, error) {
	if ctx == nil {
		return Result{}, errors.NewValidationError("context cannot be nil", nil).WithContext("command", spec.Name)
	}
	if err := ValidateSpec(spec); err != nil {
		return Result{}, errors.NewValidationError("invalid command spec", err).WithContext("command", spec.Name)
	}

	r.logger.Infof("Executing command: %s", spec.CommandLine())

	env := os.Environ()
	for _, e := range spec.Environment {
		env = append(env, e)
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.WorkingDirectory
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() != nil {
			return result, errors.NewCancelledError("command cancelled", ctx.Err()).WithContext("command_line", spec.CommandLine())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, errors.NewCommandError("command exited with non-zero status", err).
				WithContext("command_line", spec.CommandLine()).
				WithContext("exit_code", result.ExitCode)
		}
		return result, errors.NewProcessError("failed to run command", err).WithContext("command_line", spec.CommandLine())
	}

	return result, nil
}
