// Command life opens the 500x500 window and draws the instanced cell grid until the window is
// closed or Escape is pressed.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-life/engine"
	"github.com/Carmen-Shannon/oxy-life/engine/config"
	"github.com/Carmen-Shannon/oxy-life/engine/logging"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse("life", args, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logging.SetLogger(logging.NewTextLogger(os.Stderr, cfg.Debug, logging.NewRunID()))
	logger := logging.Logger()

	eng, err := engine.New(cfg)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return 1
	}
	defer eng.Close()

	if err := eng.Run(); err != nil {
		logger.Error("exiting", "error", err)
		return 1
	}
	return 0
}
