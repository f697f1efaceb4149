package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/haguru/localauth/config"
	"github.com/haguru/localauth/internal/app"
	"github.com/haguru/localauth/internal/cli"
)

func main() {
	configPath := flag.String("config", config.CONFIG_PATH, "path to the YAML configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)
	if cfg.LogFile == "" {
		// keep the prompt readable when logs share the terminal
		logger.SetLevel("error")
	}

	svc, kv, err := app.NewUserService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close(context.Background()) }()

	reader := bufio.NewReader(os.Stdin)
	repl := cli.New(svc, reader, os.Stdout, cli.TerminalPasswordReader(os.Stdin, reader, os.Stdout))
	return repl.Run(ctx)
}
