// cmd/quill/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/bethropolis/quill/internal/app"
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	flags := config.NewFlags(config.AppName)
	args, err := flags.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// The terminal belongs to the editor, so logs go to a file by default.
	if cfg.Logger.LogFilePath == "" {
		cfg.Logger.LogFilePath = defaultLogPath()
	}
	logger.SetDebugFilter(*flags.DebugLog)
	logCloser, err := logger.InitWithConfig(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	logger.Infof("Starting %s %s", config.AppName, version)
	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
	}
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	}

	editor, err := app.NewApp(app.Options{Config: cfg, FilePath: filePath})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// defaultLogPath returns the log file in the config directory, falling back
// to the temp directory.
func defaultLogPath() string {
	dir, err := config.Dir()
	if err == nil {
		if err = os.MkdirAll(dir, 0o755); err == nil {
			return filepath.Join(dir, config.DefaultLogFileName)
		}
	}
	return filepath.Join(os.TempDir(), config.DefaultLogFileName)
}
