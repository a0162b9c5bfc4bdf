package deploy

import (
	"context"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/errors"
	"github.com/site-tools/node-deploy/pkg/logging"
)

// Pipeline runs the deployment procedure as a fixed sequence of steps.
// Every external invocation is attempted exactly once; the first failure
// aborts all subsequent steps. Only cleanup absorbs its own failures.
type Pipeline struct {
	config *Config
	runner command.Runner
	logger logging.Logger

	// directory the runtime setup script is written to; "" means the
	// current working directory
	scriptDir string
}

// PipelineOptions holds optional pipeline knobs
type PipelineOptions struct {
	ScriptDir string
}

func NewPipeline(config *Config, runner command.Runner, logger logging.Logger) *Pipeline {
	return NewPipelineWithOptions(config, runner, logger, PipelineOptions{})
}

func NewPipelineWithOptions(config *Config, runner command.Runner, logger logging.Logger, options PipelineOptions) *Pipeline {
	return &Pipeline{
		config:    config,
		runner:    runner,
		logger:    logger,
		scriptDir: options.ScriptDir,
	}
}

// Run executes the full deployment sequence
func (p *Pipeline) Run(ctx context.Context) error {
	if err := ValidateConfig(p.config); err != nil {
		return errors.NewValidationError("configuration validation failed", err)
	}

	p.logger.Infof("Starting deployment, app: %s, repository: %s", p.config.AppName, p.config.RepoURL)

	if err := p.EnsureGit(ctx); err != nil {
		return err
	}
	if err := p.InstallNode(ctx); err != nil {
		return err
	}
	if err := p.EnsurePM2(ctx); err != nil {
		return err
	}
	if err := p.CloneRepository(ctx); err != nil {
		return err
	}
	if err := p.SetupProject(ctx); err != nil {
		return err
	}
	if err := p.StartApplication(ctx); err != nil {
		return err
	}
	if err := p.ConfigureStartup(ctx); err != nil {
		return err
	}

	p.Cleanup()

	p.logger.Infof("Deployment completed successfully, app: %s", p.config.AppName)

	return nil
}
