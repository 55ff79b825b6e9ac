package av1an_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"av1studio/internal/av1an"
	"av1studio/internal/logging"
)

func writeStubEncoder(t *testing.T, dir, outputPath string, exitCode int) string {
	t.Helper()
	script := "#!/bin/sh\n" +
		"echo 'Scene detection complete'\n" +
		"echo '100 400 25.0 00:00:12'\n" +
		"echo '400 400 26.5 00:00:00'\n" +
		"printf 'encoded' > '" + outputPath + "'\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	path := filepath.Join(dir, "fake-av1an")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub encoder: %v", err)
	}
	return path
}

func TestRunnerEncodeReportsProgressAndResult(t *testing.T) {
	base := t.TempDir()
	output := filepath.Join(base, "out.mkv")
	binary := writeStubEncoder(t, base, output, 0)

	inv := av1an.Invocation{Binary: binary, Args: []string{"-i", "in.mkv", "-o", output}}
	runner := av1an.NewRunner(nil, filepath.Join(base, "locks"))

	var updates []av1an.ProgressUpdate
	result, err := runner.Encode(context.Background(), inv, func(u av1an.ProgressUpdate) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if len(updates) != 2 {
		t.Fatalf("expected 2 progress updates, got %d (%+v)", len(updates), updates)
	}
	if updates[0].EncodedFrames != 100 || updates[0].TotalFrames != 400 {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
	if result.Frames != 400 {
		t.Fatalf("unexpected final frame count: %d", result.Frames)
	}
	if result.AverageFPS != 26.5 {
		t.Fatalf("unexpected fps: %v", result.AverageFPS)
	}
	if result.OutputBytes != int64(len("encoded")) {
		t.Fatalf("unexpected output size: %d", result.OutputBytes)
	}
	if result.OutputPath != output {
		t.Fatalf("unexpected output path: %q", result.OutputPath)
	}
}

func TestRunnerEncodeLogsProgressPercent(t *testing.T) {
	base := t.TempDir()
	output := filepath.Join(base, "out.mkv")
	binary := writeStubEncoder(t, base, output, 0)

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	inv := av1an.Invocation{Binary: binary, Args: []string{"-i", "in.mkv", "-o", output}}
	runner := av1an.NewRunner(logger, filepath.Join(base, "locks"))
	if _, err := runner.Encode(context.Background(), inv, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "encode progress") {
		t.Fatalf("expected progress records in log:\n%s", logged)
	}
	if !strings.Contains(logged, "percent=25") {
		t.Fatalf("expected percent attribute for 100/400 frames:\n%s", logged)
	}
}

func TestRunnerEncodeSurfacesFailure(t *testing.T) {
	base := t.TempDir()
	output := filepath.Join(base, "out.mkv")
	binary := writeStubEncoder(t, base, output, 3)

	inv := av1an.Invocation{Binary: binary, Args: []string{"-i", "in.mkv", "-o", output}}
	runner := av1an.NewRunner(nil, "")

	if _, err := runner.Encode(context.Background(), inv, nil); err == nil {
		t.Fatal("expected error for non-zero exit")
	}
}

func TestRunnerEncodeRequiresOutputArg(t *testing.T) {
	runner := av1an.NewRunner(nil, "")
	inv := av1an.Invocation{Binary: "true", Args: []string{"-i", "in.mkv"}}
	if _, err := runner.Encode(context.Background(), inv, nil); err == nil {
		t.Fatal("expected error for missing -o argument")
	}
}

func TestRunnerEncodeHoldsPerOutputLock(t *testing.T) {
	base := t.TempDir()
	lockDir := filepath.Join(base, "locks")
	output := filepath.Join(base, "out.mkv")

	marker := filepath.Join(base, "started")
	slowScript := "#!/bin/sh\ntouch '" + marker + "'\nsleep 30\n"
	slowBinary := filepath.Join(base, "slow-av1an")
	if err := os.WriteFile(slowBinary, []byte(slowScript), 0o755); err != nil {
		t.Fatalf("write slow stub: %v", err)
	}

	runner := av1an.NewRunner(nil, lockDir)
	inv := av1an.Invocation{Binary: slowBinary, Args: []string{"-o", output}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = runner.Encode(ctx, inv, nil)
	}()

	waitForFile(t, marker)

	second := av1an.NewRunner(nil, lockDir)
	_, err := second.Encode(context.Background(), av1an.Invocation{Binary: "true", Args: []string{"-o", output}}, nil)
	if !errors.Is(err, av1an.ErrEncodeActive) {
		t.Fatalf("expected ErrEncodeActive, got %v", err)
	}

	cancel()
	<-done
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", path)
}
