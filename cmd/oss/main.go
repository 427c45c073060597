// Command oss runs the process scheduling simulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	oss "github.com/gbroques/process-scheduling"
	"github.com/gbroques/process-scheduling/internal/logger"
	"github.com/gbroques/process-scheduling/service/scheduler"
)

const usage = `Operating System Simulator

Usage: oss [-h] [-l logfile] [-c config] [-s seed]

  -h          show this help and exit
  -l logfile  file receiving the trace and statistics report (default oss.out)
  -c config   YAML configuration URL
  -s seed     random seed, 0 derives one from the wall clock
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "oss: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("oss", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	help := flags.Bool("h", false, "show help")
	logFile := flags.String("l", "", "output file")
	configURL := flags.String("c", "", "configuration URL")
	seed := flags.Int64("s", 0, "random seed")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *help {
		fmt.Fprint(stdout, usage)
		return flag.ErrHelp
	}

	config := oss.DefaultConfig()
	if *configURL != "" {
		var err error
		if config, err = oss.LoadConfig(ctx, *configURL); err != nil {
			return err
		}
	}
	if *logFile != "" {
		config.Output.Path = *logFile
	}
	if *seed != 0 {
		config.Scheduler.Seed = *seed
	}
	level, err := logger.ParseLevel(config.Log.Level)
	if err != nil {
		return err
	}

	srv, err := oss.New(oss.WithConfig(config), oss.WithLogger(logger.Build(stderr, level)))
	if err != nil {
		return err
	}
	outcome, err := srv.Run(ctx)
	if err != nil {
		if errors.Is(err, scheduler.ErrInterrupted) {
			return fmt.Errorf("simulation aborted, partial trace in %s: %w", config.Output.Path, err)
		}
		return err
	}
	fmt.Fprintf(stdout, "Simulated %d processes in %s, output written to %s\n",
		outcome.Result.Completed, outcome.Result.Clock, config.Output.Path)
	return nil
}
