// Package launch starts external programs on behalf of the window manager.
//
// Every launch is fire-and-forget: the event loop never waits on a child.
// Children are reaped in the background so they do not linger as zombies.
package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/1broseidon/boringwm/internal/paths"
)

// ErrEmptyCommand is returned when asked to launch an empty argv.
var ErrEmptyCommand = errors.New("empty command")

// Launcher spawns detached child processes.
type Launcher struct {
	logger *slog.Logger

	// start launches argv and returns a function that blocks until it exits.
	start func(argv []string) (wait func() error, err error)
	// output runs argv to completion and returns its stdout.
	output func(ctx context.Context, argv []string) ([]byte, error)

	wg sync.WaitGroup
}

// New returns a Launcher that runs real processes.
func New(logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		logger: logger,
		start:  startProcess,
		output: runOutput,
	}
}

func startProcess(argv []string) (func() error, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Wait, nil
}

func runOutput(ctx context.Context, argv []string) ([]byte, error) {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).Output()
}

// Spawn starts argv without waiting for it. The error only covers starting
// the process; its exit status is logged at debug level.
func (l *Launcher) Spawn(argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrEmptyCommand
	}

	wait, err := l.start(argv)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", argv[0], err)
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := wait(); err != nil {
			l.logger.Debug("child exited", "command", argv[0], "error", err)
		}
	}()
	return nil
}

// Go runs fn in the background and tracks it for Wait.
func (l *Launcher) Go(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// Wait blocks until every reaper and background job has finished.
func (l *Launcher) Wait() {
	l.wg.Wait()
}

// Autostart runs the script at path once if it is an executable regular file.
// A missing script is not an error. It reports whether the script was started.
func (l *Launcher) Autostart(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	ok, err := paths.IsExecutableFile(path)
	if err != nil {
		return false, fmt.Errorf("autostart %s: %w", path, err)
	}
	if !ok {
		l.logger.Debug("no executable autostart script", "path", path)
		return false, nil
	}
	if err := l.Spawn([]string{path}); err != nil {
		return false, fmt.Errorf("autostart: %w", err)
	}
	return true, nil
}
