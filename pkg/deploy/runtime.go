package deploy

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/errors"
)

const nodeSetupScript = "nodesource_setup.sh"

func (p *Pipeline) setupScriptPath() string {
	return filepath.Join(p.scriptDir, nodeSetupScript)
}

// InstallNode downloads the NodeSource setup script for the pinned major
// version, runs it with elevated privileges, then installs the nodejs
// package. Re-running against a different version does not uninstall the
// prior one.
func (p *Pipeline) InstallNode(ctx context.Context) error {
	p.logger.Infof("Installing Node.js version %s...", p.config.NodeVersion)

	scriptURL := fmt.Sprintf("https://deb.nodesource.com/setup_%s.x", p.config.NodeVersion)
	scriptPath := p.setupScriptPath()

	_, err := p.runner.Run(ctx, command.Spec{
		Name: "curl",
		Args: []string{"-fsSL", scriptURL, "-o", scriptPath},
	})
	if err != nil {
		return errors.NewCommandError("failed to download node setup script", err).WithContext("url", scriptURL)
	}

	_, err = p.runner.Run(ctx, command.Spec{
		Name: "sudo",
		Args: []string{"bash", scriptPath},
	})
	if err != nil {
		return errors.NewCommandError("failed to run node setup script", err).WithContext("script", scriptPath)
	}

	_, err = p.runner.Run(ctx, command.Spec{
		Name: "sudo",
		Args: []string{"apt-get", "install", "-y", "nodejs"},
	})
	if err != nil {
		return errors.NewCommandError("failed to install nodejs package", err)
	}

	p.logger.Infof("Node.js installed successfully")

	return nil
}
