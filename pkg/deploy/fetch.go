package deploy

import (
	"context"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/errors"
)

// CloneRepository performs a fresh clone of the configured repository.
// git itself fails when the target directory already exists and is
// non-empty; no reconciliation of a pre-existing checkout is attempted.
func (p *Pipeline) CloneRepository(ctx context.Context) error {
	p.logger.Infof("Cloning repository from %s to %s...", p.config.RepoURL, p.config.ProjectDir)

	_, err := p.runner.Run(ctx, command.Spec{
		Name: "git",
		Args: []string{"clone", p.config.RepoURL, p.config.ProjectDir},
	})
	if err != nil {
		return errors.NewCommandError("failed to clone repository", err).
			WithContext("repo_url", p.config.RepoURL).
			WithContext("project_dir", p.config.ProjectDir)
	}

	p.logger.Infof("Repository cloned successfully")

	return nil
}
