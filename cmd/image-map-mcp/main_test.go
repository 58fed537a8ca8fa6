package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/ironsheep/image-map-mcp/internal/config"
)

func TestConfigCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(config.EnvLogLevel, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"config", "--verbose"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config: %v", err)
	}

	for _, want := range []string{"log_level: debug", "transpose_default_center: true", "language: eng"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "# source:") {
		t.Errorf("expected source on stderr, got %q", errOut.String())
	}
}

func TestConfigCommand_MissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--config", "/nonexistent/config.yaml"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "image-map-mcp dev") {
		t.Errorf("version output: got %q", out.String())
	}
}
