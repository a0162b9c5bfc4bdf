package deploy

import (
	"context"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/errors"
)

// checkDependency probes for a tool via its version-query command.
// Presence alone satisfies the check; no version pinning is performed.
func (p *Pipeline) checkDependency(ctx context.Context, name string, spec command.Spec) bool {
	if p.runner.Probe(ctx, spec) {
		p.logger.Infof("%s is already installed", name)
		return true
	}
	p.logger.Infof("%s is not installed", name)
	return false
}

// EnsureGit installs git via the system package manager if it is missing
func (p *Pipeline) EnsureGit(ctx context.Context) error {
	if p.checkDependency(ctx, "Git", command.Spec{Name: "git", Args: []string{"--version"}}) {
		return nil
	}

	p.logger.Infof("Installing Git...")
	_, err := p.runner.Run(ctx, command.Spec{
		Name: "sudo",
		Args: []string{"apt-get", "install", "-y", "git"},
	})
	if err != nil {
		return errors.NewCommandError("failed to install git", err)
	}
	p.logger.Infof("Git installed successfully")

	return nil
}

// EnsurePM2 installs the PM2 process manager globally via npm if it is
// missing. npm itself ships with the Node.js runtime; a missing npm at this
// point means the runtime install went wrong and is a hard failure.
func (p *Pipeline) EnsurePM2(ctx context.Context) error {
	if !p.checkDependency(ctx, "NPM", command.Spec{Name: "npm", Args: []string{"-v"}}) {
		return errors.NewInternalError("npm is required to install pm2", nil)
	}

	if p.checkDependency(ctx, "PM2", command.Spec{Name: "pm2", Args: []string{"-v"}}) {
		return nil
	}

	p.logger.Infof("Installing PM2...")
	_, err := p.runner.Run(ctx, command.Spec{
		Name: "npm",
		Args: []string{"install", "-g", "pm2"},
	})
	if err != nil {
		return errors.NewCommandError("failed to install pm2", err)
	}
	p.logger.Infof("PM2 installed successfully")

	return nil
}
