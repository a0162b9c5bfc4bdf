package main

import (
	"context"
	"fmt"
	"os"

	"github.com/site-tools/node-deploy/pkg/command"
	"github.com/site-tools/node-deploy/pkg/deploy"
	"github.com/site-tools/node-deploy/pkg/logging"
	"github.com/site-tools/node-deploy/pkg/runlog"

	flags "github.com/jessevdk/go-flags"
)

type flagOptions struct {
	Config   string `long:"config" description:"path to the deployment configuration file"`
	Validate bool   `long:"validate" description:"validate the configuration and exit"`
}

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s , ", module)
}

func main() {
	var opts flagOptions
	var argv []string = os.Args[1:]
	var parser = flags.NewParser(&opts, flags.HelpFlag)
	var err error
	_, err = parser.ParseArgs(argv)
	if err != nil {
		fmt.Printf("Command line flags parsing failed: %v", err)
		os.Exit(1)
	}

	if opts.Config == "" {
		fmt.Println("Configuration file is required")
		os.Exit(1)
	}

	config, err := deploy.LoadConfigFromFile(opts.Config)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if opts.Validate {
		if err := deploy.ValidateConfig(config); err != nil {
			fmt.Printf("Configuration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration is valid")
		return
	}

	sink, err := runlog.NewLogger(config.Logging)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	sink.Infof("opts: %+v", opts)

	logFuncs := logging.LogFuncs{
		Debugf: sink.Debugf,
		Infof:  sink.Infof,
		Warnf:  sink.Warnf,
		Errorf: sink.Errorf,
	}
	commandLogger := logging.NewLogger(logPrefix("command"), logFuncs)
	deployLogger := logging.NewLogger(logPrefix("deploy"), logFuncs)

	runner := command.NewRunner(commandLogger)
	pipeline := deploy.NewPipeline(config, runner, deployLogger)

	if err := pipeline.Run(context.Background()); err != nil {
		deployLogger.Errorf("Deployment failed: %v", err)
		sink.Close()
		os.Exit(1)
	}
}
