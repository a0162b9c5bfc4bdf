package deploy

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/site-tools/node-deploy/pkg/errors"
)

// ValidateConfig validates the entire configuration structure
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.NewValidationError("configuration cannot be nil", nil)
	}

	if err := validateNodeVersion(config.NodeVersion); err != nil {
		return errors.NewValidationError("invalid node version", err)
	}

	if err := validateRepoURL(config.RepoURL); err != nil {
		return errors.NewValidationError("invalid repository URL", err)
	}

	if err := validateProjectDir(config.ProjectDir); err != nil {
		return errors.NewValidationError("invalid project directory", err)
	}

	if err := ValidateAppName(config.AppName); err != nil {
		return errors.NewValidationError("invalid application name", err)
	}

	if config.BuildCommand == "" {
		return errors.NewValidationError("build command cannot be empty", nil)
	}

	if config.StartCommand == "" {
		return errors.NewValidationError("start command cannot be empty", nil)
	}

	validLogLevels := []string{"", "debug", "info", "warn", "error"}
	valid := false
	for _, level := range validLogLevels {
		if config.Logging.Level == level {
			valid = true
			break
		}
	}
	if !valid {
		return errors.NewValidationError(
			fmt.Sprintf("invalid log level: %s", config.Logging.Level),
			nil,
		).WithContext("valid_levels", "debug, info, warn, error")
	}

	return nil
}

func validateNodeVersion(version string) error {
	if version == "" {
		return errors.NewValidationError("node version is required", nil)
	}

	// NodeSource setup scripts are addressed by major version, e.g. "20"
	for _, char := range version {
		if char < '0' || char > '9' {
			return errors.NewValidationError(
				fmt.Sprintf("node version must be a major version number: %s", version),
				nil,
			)
		}
	}

	return nil
}

func validateRepoURL(repoURL string) error {
	if repoURL == "" {
		return errors.NewValidationError("repository URL is required", nil)
	}

	if strings.ContainsAny(repoURL, " \t\n") {
		return errors.NewValidationError("repository URL cannot contain whitespace: "+repoURL, nil)
	}

	return nil
}

func validateProjectDir(projectDir string) error {
	if projectDir == "" {
		return errors.NewValidationError("project directory is required", nil)
	}

	if !filepath.IsAbs(projectDir) {
		return errors.NewValidationError("project directory must be an absolute path: "+projectDir, nil)
	}

	return nil
}

// ValidateAppName validates the process manager application name
func ValidateAppName(appName string) error {
	if appName == "" {
		return errors.NewValidationError("application name is required", nil)
	}

	for _, char := range appName {
		isValid := (char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '-' || char == '_' || char == '.'
		if !isValid {
			return errors.NewValidationError(
				fmt.Sprintf("application name contains invalid character '%c': %s", char, appName),
				nil,
			).WithContext("valid_characters", "a-z, A-Z, 0-9, -, _, .")
		}
	}

	return nil
}
