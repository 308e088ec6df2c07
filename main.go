package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"reade_cli/command"
	"reade_cli/config"
	"reade_cli/host"
	"reade_cli/logger"
	"reade_cli/parse"
)

func main() {
	// Bootstrap logger until the config file is loaded.
	logger.InitLogger(false, "info")

	configPath := config.GetConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "error", err, "config_path", configPath)
		os.Exit(1)
	}

	// Logs go to a rotating file so they never mix with panel output.
	if err := logger.InitFileLogger(cfg.Debug, cfg.LogLevel, cfg.LogFormat, cfg.LogFile); err != nil {
		logger.Warn("File logging unavailable", "error", err)
	}

	logger.Info("Reade started", "version", Version())

	term := host.NewTerminal()
	handler := command.NewHandler(&cfg, configPath, term, command.BuildInfo{
		Version: Version(),
		Info:    VersionInfo(),
	})

	input := readInput()
	if strings.TrimSpace(input) == "" {
		handler.ShowHelp()
		return
	}

	result, err := parse.Parse(input)
	if err != nil {
		// Input validation failed; abort before any network call.
		term.Alert("Reade is sorry", err.Error())
		return
	}

	if err := handler.Process(result); err != nil {
		logger.Error("Command processing failed", "error", err)
		term.Alert("Reade is sorry", err.Error())
		os.Exit(1)
	}
}

// readInput assembles the free-text input line: joined arguments, or piped
// stdin when no arguments were given.
func readInput() string {
	if len(os.Args) > 1 {
		return strings.Join(os.Args[1:], " ")
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Warn("Failed to read stdin", "error", err)
			return ""
		}
		return string(data)
	}
	return ""
}
