package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cmdpkg "github.com/nushell-works/ulidkit/internal/cmd"
	cfgpkg "github.com/nushell-works/ulidkit/internal/config"
	logpkg "github.com/nushell-works/ulidkit/pkg/log"
	"github.com/nushell-works/ulidkit/pkg/ulid"
)

func main() {
	cfg, err := cfgpkg.Load(os.Getenv("ULID_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "ulidkit:", err)
		os.Exit(1)
	}
	cfgpkg.FromEnv(&cfg)

	level, err := logpkg.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if cfg.LogFormat == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env := &cmdpkg.Env{
		Config: cfg,
		Logger: logger,
		Gen:    ulid.NewGenerator(),
	}
	root := cmdpkg.NewRoot(env)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ulidkit:", err)
		os.Exit(1)
	}
}
