package av1an

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"av1studio/internal/logging"
)

var commandContext = exec.CommandContext

// ErrEncodeActive indicates another encode already holds the lock for the
// same output file.
var ErrEncodeActive = errors.New("encode already in progress for this output")

// Result summarizes a finished encode.
type Result struct {
	OutputPath  string
	OutputBytes int64
	Frames      int
	AverageFPS  float64
	Elapsed     time.Duration
}

// Runner executes synthesized invocations and reports progress.
type Runner struct {
	logger  *slog.Logger
	lockDir string
}

// NewRunner constructs a runner. lockDir receives the per-output lock files
// and is created on demand; a nil logger disables logging.
func NewRunner(logger *slog.Logger, lockDir string) *Runner {
	return &Runner{
		logger:  logging.WithComponent(logger, "av1an"),
		lockDir: lockDir,
	}
}

// Encode runs the invocation to completion, invoking progress for every
// frame report. The context cancels the external process.
func (r *Runner) Encode(ctx context.Context, inv Invocation, progress func(ProgressUpdate)) (Result, error) {
	outputPath := outputArg(inv)
	if outputPath == "" {
		return Result{}, errors.New("invocation has no output path")
	}

	unlock, err := r.acquireLock(outputPath)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	session := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldSession, session))
	logger.Info("starting encode",
		logging.String("binary", inv.Binary),
		logging.String("output", outputPath))

	started := time.Now()
	cmd := commandContext(ctx, inv.Binary, inv.Args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("start %s: %w", inv.Binary, err)
	}

	var last ProgressUpdate
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		update, ok := ParseProgressLine(scanner.Text())
		if !ok {
			continue
		}
		last = update
		logger.Debug("encode progress",
			logging.Int("encoded_frames", update.EncodedFrames),
			logging.Int("total_frames", update.TotalFrames),
			logging.Float64("percent", update.Percent()),
			logging.Float64("fps", update.FPS))
		if progress != nil {
			progress(update)
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return Result{}, fmt.Errorf("read %s output: %w", inv.Binary, err)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("%s failed: %w", inv.Binary, err)
	}

	result := Result{
		OutputPath: outputPath,
		Frames:     last.EncodedFrames,
		AverageFPS: last.FPS,
		Elapsed:    time.Since(started),
	}
	if info, statErr := os.Stat(outputPath); statErr == nil {
		result.OutputBytes = info.Size()
	}

	logger.Info("encode finished",
		logging.Int("frames", result.Frames),
		logging.Int64("output_bytes", result.OutputBytes),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (r *Runner) acquireLock(outputPath string) (func(), error) {
	if strings.TrimSpace(r.lockDir) == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(r.lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lockPath := filepath.Join(r.lockDir, lockName(outputPath))
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire encode lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrEncodeActive, lockPath)
	}
	return func() { _ = lock.Unlock() }, nil
}

func lockName(outputPath string) string {
	base := filepath.Base(outputPath)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return base + ".lock"
}

func outputArg(inv Invocation) string {
	for i, arg := range inv.Args {
		if arg == "-o" && i+1 < len(inv.Args) {
			return inv.Args[i+1]
		}
	}
	return ""
}
