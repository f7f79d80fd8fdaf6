package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/seek/internal/app"
	"github.com/bethropolis/seek/internal/config"
	"github.com/bethropolis/seek/internal/logger"
)

var version = "dev"

func main() {
	flags := config.NewFlags(config.AppName, os.Stderr)
	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	cfg, cfgErr := config.Load(*flags.ConfigFilePath, flags)

	logCloser, err := logger.Init(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	if cfgErr != nil {
		logger.Warnf("Config: %v; using defaults", cfgErr)
	}
	logger.Infof("Starting %s %s", config.AppName, version)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
		logger.Debugf("File path specified: %s", filePath)
	}

	seekApp, err := app.NewApp(filePath, app.Options{Config: cfg})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		logCloser.Close()
		os.Exit(1)
	}

	if err := seekApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		logCloser.Close()
		os.Exit(1)
	}
	logger.Infof("%s finished", config.AppName)
}
