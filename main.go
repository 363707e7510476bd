// budgetchat - A terminal client for the AI budget assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/budgetchat-tui/internal/api"
	"github.com/jeranaias/budgetchat-tui/internal/cli"
	"github.com/jeranaias/budgetchat-tui/internal/config"
	"github.com/jeranaias/budgetchat-tui/internal/logging"
	"github.com/jeranaias/budgetchat-tui/internal/session"
	"github.com/jeranaias/budgetchat-tui/internal/transcript"
	"github.com/jeranaias/budgetchat-tui/internal/ui/chat"
	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	}

	if !cli.ColorsEnabled(args.NoColor) {
		styles.DisableColor()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dispatch(ctx, cmd, args); err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// dispatch loads configuration, builds the shared Env and runs cmd.
func dispatch(ctx context.Context, cmd cli.Command, args cli.Args) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(args)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	log.Infow("budgetchat starting", "command", cmd.String(), "version", cli.Version, "api", cfg.API.BaseURL)

	env := &cli.Env{
		Config:     cfg,
		ConfigPath: cfgPath,
		Client: api.NewClientWithConfig(&api.ClientConfig{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout.Std(),
			Logger:  log,
		}),
		Logger:      log,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Interactive: cli.IsStdoutTTY(),
		Width:       cli.GetTerminalWidth(),
		Now:         time.Now,
	}

	// Conversations are only recorded by the interactive commands.
	if cmd == cli.CmdTUI || cmd == cli.CmdChat {
		closeTranscript := openTranscript(ctx, env, log)
		defer closeTranscript()
	}

	switch cmd {
	case cli.CmdTUI:
		return runTUI(ctx, env, cfgPath)
	case cli.CmdChat:
		return cli.RunChat(ctx, env, args)
	case cli.CmdAsk:
		return cli.RunAsk(ctx, env, args)
	case cli.CmdHistory:
		return cli.RunHistory(ctx, env, args)
	case cli.CmdClear:
		return cli.RunClear(ctx, env, args)
	case cli.CmdStats:
		return cli.RunStats(ctx, env, args)
	case cli.CmdStatus:
		return cli.RunStatus(ctx, env, args)
	case cli.CmdServe:
		return cli.RunServe(ctx, env, args)
	case cli.CmdTranscript:
		return cli.RunTranscript(ctx, env, args)
	case cli.CmdConfig:
		return cli.RunConfig(env, args)
	}
	return fmt.Errorf("unhandled command %s", cmd)
}

// loadConfig reads --config or the default file and applies the global
// flag overrides. It returns the config and the path it belongs to.
func loadConfig(args cli.Args) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path = args.ConfigPath
		err  error
	)
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		if path, err = config.ConfigPathTOML(); err != nil {
			return nil, "", err
		}
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	if args.API != "" {
		cfg.API.BaseURL = strings.TrimRight(args.API, "/")
	}
	if args.LogLevel != "" {
		if !logging.ValidLevel(args.LogLevel) {
			return nil, path, cli.NewValidationErrorWithExample("log level", args.LogLevel,
				"must be debug, info, warn or error", "budgetchat --log-level debug")
		}
		cfg.Log.Level = args.LogLevel
	}
	return cfg, path, nil
}

// openTranscript starts a recorded session when the transcript is enabled.
// Failures are logged and chat continues unrecorded.
func openTranscript(ctx context.Context, env *cli.Env, log *zap.SugaredLogger) func() {
	if !env.Config.Transcript.Enabled {
		return func() {}
	}

	store, err := transcript.Open(env.Config.Transcript.Path)
	if err != nil {
		log.Warnw("transcript disabled", "path", env.Config.Transcript.Path, "error", err)
		return func() {}
	}
	rec, err := store.StartSession(ctx, env.Config.API.BaseURL, env.Now())
	if err != nil {
		log.Warnw("transcript session not started", "error", err)
		store.Close()
		return func() {}
	}

	log.Infow("recording transcript", "session", rec.SessionID())
	env.Recorder = rec
	return func() { store.Close() }
}

// =============================================================================
// TUI
// =============================================================================

// runTUI runs the full-screen chat until the user quits or ctx is cancelled.
func runTUI(ctx context.Context, env *cli.Env, cfgPath string) error {
	cfg := env.Config

	sess := session.New(session.Config{
		Backend:           env.Client,
		Logger:            env.Logger,
		StatsRefreshDelay: cfg.Session.StatsRefreshDelay.Std(),
		Recorder:          env.Recorder,
	})
	defer sess.Close()

	m := chat.New(chat.Options{
		Context: ctx,
		Session: sess,
		Prober:  env.Client,
		Config:  cfg,
		Logger:  env.Logger,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse wheel scrolling
		tea.WithContext(ctx),
	)

	// Live-reload [ui] settings while the program runs.
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if _, err := os.Stat(cfgPath); err == nil {
		go func() {
			err := config.Watch(watchCtx, cfgPath,
				func(c *config.Config) { p.Send(chat.ConfigReloadedMsg{Config: c}) },
				func(err error) { env.Logger.Warnw("config reload failed", "path", cfgPath, "error", err) },
			)
			if err != nil {
				env.Logger.Warnw("config watch stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running budgetchat: %w", err)
	}
	return nil
}
