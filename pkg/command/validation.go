package command

import (
	"os"
	"strings"

	"github.com/site-tools/node-deploy/pkg/errors"
)

// ValidateSpec validates a command invocation spec
func ValidateSpec(spec Spec) error {
	if spec.Name == "" {
		return errors.NewValidationError("command name is required", nil)
	}

	// Validate working directory if provided
	if spec.WorkingDirectory != "" {
		if info, err := os.Stat(spec.WorkingDirectory); err != nil {
			return errors.NewValidationError("working directory not accessible: "+spec.WorkingDirectory, err)
		} else if !info.IsDir() {
			return errors.NewValidationError("working directory is not a directory: "+spec.WorkingDirectory, nil)
		}
	}

	// Validate environment variables
	for _, env := range spec.Environment {
		if !strings.Contains(env, "=") {
			return errors.NewValidationError("invalid environment variable format: "+env, nil)
		}
	}

	return nil
}
