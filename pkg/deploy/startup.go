package deploy

import (
	"context"
	"os"
	"os/user"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/errors"
)

// ConfigureStartup registers PM2 as a boot-time service and persists the
// current process list. The registration runs twice: once unprivileged so
// pm2 can discover the right invocation, then with elevated privileges and
// an explicit user/home context to actually install the systemd unit.
func (p *Pipeline) ConfigureStartup(ctx context.Context) error {
	username, homeDir, err := p.resolveDeployUser()
	if err != nil {
		return err
	}

	_, err = p.runner.Run(ctx, command.Spec{
		Name: "pm2",
		Args: []string{"startup"},
	})
	if err != nil {
		return errors.NewCommandError("failed to run pm2 startup", err)
	}

	_, err = p.runner.Run(ctx, command.Spec{
		Name: "sudo",
		Args: []string{
			"env", "PATH=" + os.Getenv("PATH"),
			"pm2", "startup", "systemd",
			"-u", username,
			"--hp", homeDir,
		},
	})
	if err != nil {
		return errors.NewCommandError("failed to register pm2 boot service", err).
			WithContext("user", username).
			WithContext("home", homeDir)
	}

	_, err = p.runner.Run(ctx, command.Spec{
		Name: "pm2",
		Args: []string{"save"},
	})
	if err != nil {
		return errors.NewCommandError("failed to save pm2 process list", err)
	}

	p.logger.Infof("PM2 startup configuration completed")

	return nil
}

// resolveDeployUser returns the user/home context for boot registration.
// The configured deploy user wins; otherwise the current user is used.
func (p *Pipeline) resolveDeployUser() (string, string, error) {
	if p.config.DeployUser != "" {
		deployUser, err := user.Lookup(p.config.DeployUser)
		if err != nil {
			return "", "", errors.NewValidationError("deploy user not found: "+p.config.DeployUser, err)
		}
		return deployUser.Username, deployUser.HomeDir, nil
	}

	currentUser, err := user.Current()
	if err != nil {
		return "", "", errors.NewInternalError("failed to determine current user", err)
	}
	return currentUser.Username, currentUser.HomeDir, nil
}
