package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/1broseidon/boringwm/internal/config"
)

func TestPrintMainUsage(t *testing.T) {
	var buf bytes.Buffer
	printMainUsage(&buf)
	for _, want := range []string{"run", "keys", "config print", "version"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q:\n%s", want, buf.String())
		}
	}
}

func TestParseConfigFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantCfg  bool
	}{
		{"defaults", nil, 0, true},
		{"help", []string{"-h"}, 0, false},
		{"unknown flag", []string{"-nope"}, 2, false},
		{"invalid ratio", []string{"-ratio", "1.5"}, 2, false},
		{"positional args", []string{"extra"}, 2, false},
		{"override", []string{"-gap", "0", "-mod", "mod1"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			cfg, code := parseConfigFlags("test", tt.args, &stderr, nil)
			if code != tt.wantCode {
				t.Fatalf("code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if (cfg != nil) != tt.wantCfg {
				t.Fatalf("cfg = %v, want present=%v", cfg, tt.wantCfg)
			}
		})
	}
}

func TestRunConfigPrint(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("TERMINAL", "")

	var stdout, stderr bytes.Buffer
	if code := runConfig([]string{"print", "-gap", "4"}, &stdout, &stderr); code != 0 {
		t.Fatalf("code = %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "# resolved_terminal: kitty\n") {
		t.Fatalf("missing resolved terminal comment:\n%s", out)
	}
	if !strings.Contains(out, "gap: 4") {
		t.Fatalf("override not applied:\n%s", out)
	}
}

func TestRunConfig_UsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := runConfig(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("no subcommand: code = %d, want 2", code)
	}
	if code := runConfig([]string{"edit"}, &stdout, &stderr); code != 2 {
		t.Fatalf("unknown subcommand: code = %d, want 2", code)
	}
	if code := runConfig([]string{"validate", "-border", "-1"}, &stdout, &stderr); code != 2 {
		t.Fatalf("invalid border: code = %d, want 2", code)
	}
}

func TestRenderBindings(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	t.Setenv("TERMINAL", "")

	cfg := config.DefaultConfig()
	cfg.ModKey = "mod1"
	out, err := renderBindings(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mod1-Return", "run kitty", "XF86AudioMute", "focus-next"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRunKeys_BadModifier(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := runKeys([]string{"-mod", "hyper"}, &stdout, &stderr); code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
}
