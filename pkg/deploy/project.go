package deploy

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/errors"
)

// SetupProject installs project dependencies and runs the build command
// inside the cloned directory. When a package-lock.json is present the
// lockfile-respecting `npm ci` is used instead of `npm install`.
func (p *Pipeline) SetupProject(ctx context.Context) error {
	p.logger.Infof("Setting up project in %s...", p.config.ProjectDir)

	installArgs := []string{"install"}
	if _, err := os.Stat(filepath.Join(p.config.ProjectDir, "package-lock.json")); err == nil {
		installArgs = []string{"ci"}
	}

	_, err := p.runner.Run(ctx, command.Spec{
		Name:             "npm",
		Args:             installArgs,
		WorkingDirectory: p.config.ProjectDir,
	})
	if err != nil {
		return errors.NewCommandError("failed to install project dependencies", err).WithContext("project_dir", p.config.ProjectDir)
	}

	buildName, buildArgs, err := splitCommand(p.config.BuildCommand)
	if err != nil {
		return err
	}

	_, err = p.runner.Run(ctx, command.Spec{
		Name:             buildName,
		Args:             buildArgs,
		WorkingDirectory: p.config.ProjectDir,
	})
	if err != nil {
		return errors.NewCommandError("failed to build project", err).WithContext("build_command", p.config.BuildCommand)
	}

	p.logger.Infof("Project setup completed successfully")

	return nil
}

// StartApplication starts the build output under PM2 with the configured
// logical name. PM2 detaches the process; all lifecycle supervision after
// start is delegated to it.
func (p *Pipeline) StartApplication(ctx context.Context) error {
	p.logger.Infof("Starting application in %s using PM2...", p.config.ProjectDir)

	_, err := p.runner.Run(ctx, command.Spec{
		Name:             "pm2",
		Args:             []string{"start", p.config.StartCommand, "--name", p.config.AppName},
		WorkingDirectory: p.config.ProjectDir,
	})
	if err != nil {
		return errors.NewCommandError("failed to start application with pm2", err).
			WithContext("app_name", p.config.AppName).
			WithContext("start_command", p.config.StartCommand)
	}

	p.logger.Infof("Application started successfully with PM2, app: %s", p.config.AppName)

	return nil
}

func splitCommand(commandLine string) (string, []string, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return "", nil, errors.NewValidationError("command cannot be empty", nil)
	}
	return fields[0], fields[1:], nil
}
