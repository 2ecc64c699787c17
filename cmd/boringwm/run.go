package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/boringwm/internal/launch"
	"github.com/1broseidon/boringwm/internal/wm"
	"github.com/1broseidon/boringwm/internal/x11"
)

func runWM(args []string) int {
	var rf runFlags
	cfg, code := parseConfigFlags("run", args, os.Stderr, func(fs *flag.FlagSet) {
		fs.StringVar(&rf.display, "display", "", "X display to manage (default: $DISPLAY)")
		fs.BoolVar(&rf.debug, "debug", false, "Enable debug logging")
	})
	if cfg == nil {
		return code
	}
	if rf.debug {
		cfg.LogLevel = "debug"
	}

	logger := newLogger(os.Stderr, parseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	conn, err := x11.NewConnection(rf.display)
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer conn.Close()

	launcher := launch.New(logger)
	volume := &launch.Volume{
		Launcher: launcher,
		Sink:     cfg.Volume.Sink,
		Step:     cfg.Volume.StepPercent,
		Notify:   cfg.Notify.Enabled,
		AppName:  cfg.Notify.AppName,
	}

	manager, err := wm.New(conn, wm.Options{
		Config:   cfg,
		Launcher: launcher,
		Volume:   volume,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create window manager", "error", err)
		return 1
	}
	if err := manager.Start(); err != nil {
		if errors.Is(err, wm.ErrAnotherWM) {
			logger.Error("another window manager is already running")
		} else {
			logger.Error("failed to start window manager", "error", err)
		}
		return 1
	}

	if started, err := launcher.Autostart(cfg.Autostart); err != nil {
		logger.Warn("autostart failed", "error", err)
	} else if started {
		logger.Info("autostart launched", "path", cfg.Autostart)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = manager.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("window manager stopped")
		return 0
	case errors.Is(err, wm.ErrDisconnected):
		logger.Error("lost connection to display")
		return 1
	default:
		logger.Error("window manager failed", "error", err)
		return 1
	}
}
