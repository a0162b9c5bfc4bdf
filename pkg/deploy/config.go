package deploy

import (
	"io/ioutil"

	"github.com/site-tools/node-deploy/pkg/errors"
	"github.com/site-tools/node-deploy/pkg/runlog"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level deployment configuration file structure
type Config struct {
	NodeVersion  string        `yaml:"node_version"`
	RepoURL      string        `yaml:"repo_url"`
	ProjectDir   string        `yaml:"project_dir"`
	BuildCommand string        `yaml:"build_command,omitempty"`
	StartCommand string        `yaml:"start_command,omitempty"`
	AppName      string        `yaml:"app_name"`
	DeployUser   string        `yaml:"deploy_user,omitempty"` // defaults to the current user
	Logging      runlog.Config `yaml:"logging,omitempty"`
}

const (
	DefaultBuildCommand = "npm run build"
	DefaultStartCommand = "npm run start"
)

// LoadConfigFromFile loads deployment configuration from a YAML file
func LoadConfigFromFile(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read configuration file", err).WithContext("filename", filename)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewValidationError("failed to parse YAML configuration", err).WithContext("filename", filename)
	}

	setConfigDefaults(&config)

	return &config, nil
}

// setConfigDefaults applies default values to configuration
func setConfigDefaults(config *Config) {
	if config.BuildCommand == "" {
		config.BuildCommand = DefaultBuildCommand
	}
	if config.StartCommand == "" {
		config.StartCommand = DefaultStartCommand
	}
	logDefaults := runlog.DefaultConfig()
	if config.Logging.Level == "" {
		config.Logging.Level = logDefaults.Level
	}
	if config.Logging.File == "" {
		config.Logging.File = logDefaults.File
	}
}
