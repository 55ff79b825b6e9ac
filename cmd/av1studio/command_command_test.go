package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"av1studio/internal/settings"
)

func TestCommandSynthesizesDefaultInvocation(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "command", "-i", "/videos/in.mkv", "-o", "/videos/out.mkv")
	if err != nil {
		t.Fatalf("command: %v", err)
	}

	want := "av1an-verbosity -i /videos/in.mkv -o /videos/out.mkv " +
		"--verbose-frame-info --split-method av-scenechange -e svt-av1 " +
		"--force -v '--tune 2 --keyint 1 --lp 2 --irefresh-type 2'"
	if strings.TrimSpace(out) != want {
		t.Fatalf("unexpected invocation:\n got %s\nwant %s", strings.TrimSpace(out), want)
	}
}

func TestCommandAppliesFlagOverrides(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env,
		"command",
		"-i", "/videos/in.mkv",
		"-o", "/videos/out.mkv",
		"--preset", "6",
		"--crf", "21.25",
		"--workers", "8",
	)
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	for _, fragment := range []string{"--preset 6", "--crf 21.25", "-w 8"} {
		requireContains(t, out, fragment)
	}
}

func TestCommandLoadsSettingsFileAndFlagsWin(t *testing.T) {
	env := setupCLITestEnv(t)

	s := settings.Default()
	s.InputFile = "/videos/in.mkv"
	s.OutputFile = "/videos/out.mkv"
	s.Preset = 8
	s.FilmGrain = 12
	settingsPath := filepath.Join(env.baseDir, "settings.toml")
	if err := settings.Save(settingsPath, s); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	out, _, err := runCLI(t, env, "command", "--settings", settingsPath, "--preset", "2")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	requireContains(t, out, "--preset 2")
	requireContains(t, out, "--film-grain 12")
}

func TestCommandRejectsInvalidFlagValues(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env,
		"command", "-i", "/videos/in.mkv", "-o", "/videos/out.mkv", "--crf", "21.1")
	if !errors.Is(err, settings.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCommandRequiresPaths(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "command")
	if !errors.Is(err, settings.ErrValidation) {
		t.Fatalf("expected validation error for missing paths, got %v", err)
	}
}

func TestCommandMalformedDefaultPresetFallsBack(t *testing.T) {
	env := setupCLITestEnv(t)

	presetPath := filepath.Join(env.baseDir, "default.toml")
	if err := os.WriteFile(presetPath, []byte("preset = \"not a number\"\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	writeTestConfig(t, env, "default_preset = \""+presetPath+"\"\n")

	out, stderr, err := runCLI(t, env, "command", "-i", "/videos/in.mkv", "-o", "/videos/out.mkv")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	requireContains(t, stderr, "Warning: default preset")
	requireContains(t, out, "-e svt-av1")
	if strings.Contains(out, "--preset") {
		t.Fatalf("expected default settings after fallback, got:\n%s", out)
	}
}

func TestCommandUsesDefaultPresetFile(t *testing.T) {
	env := setupCLITestEnv(t)

	s := settings.Default()
	s.Preset = 10
	presetPath := filepath.Join(env.baseDir, "default.toml")
	if err := settings.Save(presetPath, s); err != nil {
		t.Fatalf("save preset: %v", err)
	}
	writeTestConfig(t, env, "default_preset = \""+presetPath+"\"\n")

	out, _, err := runCLI(t, env, "command", "-i", "/videos/in.mkv", "-o", "/videos/out.mkv")
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	requireContains(t, out, "--preset 10")
}
