package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/fruitslice/internal/config"
	"github.com/tomz197/fruitslice/internal/loop"
	"golang.org/x/term"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	// stdout is the game screen, so logs go to a file.
	logFile, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitslice",
		Level:           settings.Level(),
	})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, settings, logger, loop.TerminalOptions{}); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
