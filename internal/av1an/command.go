package av1an

import (
	"fmt"
	"strconv"
	"strings"

	"av1studio/internal/settings"
)

// DefaultBinary is the orchestrator executable resolved from PATH when no
// explicit path is configured.
const DefaultBinary = "av1an-verbosity"

// Fixed SVT-AV1-PSY flags seeded into every synthesized parameter string.
// They pin the orchestrator to the behavior the progress parser and the
// chunked pipeline expect regardless of user settings.
const baseVideoParams = "--tune 2 --keyint 1 --lp 2 --irefresh-type 2"

// Invocation is a fully-resolved external command.
type Invocation struct {
	Binary string
	Args   []string
}

// BuildCommand synthesizes the av1an invocation for the given settings.
// Required paths and range invariants are checked up front so an invalid
// model can never yield a malformed command.
func BuildCommand(binary string, s settings.Settings) (Invocation, error) {
	if err := s.RequirePaths(); err != nil {
		return Invocation{}, err
	}
	if err := s.Validate(); err != nil {
		return Invocation{}, err
	}

	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}

	args := []string{"-i", s.InputFile, "-o", s.OutputFile}
	if s.ScenesFile != "" {
		args = append(args, "--scenes", s.ScenesFile)
	}
	if s.ZonesFile != "" {
		args = append(args, "--zones", s.ZonesFile)
	}
	args = append(args, "--verbose-frame-info", "--split-method", "av-scenechange")
	if s.Concatenation != settings.ConcatMkvmerge {
		args = append(args, "-c", string(s.Concatenation))
	}
	if s.SourceLibrary != settings.SourceBestSource {
		args = append(args, "-m", string(s.SourceLibrary))
	}
	if s.HasResolution() {
		scale := fmt.Sprintf("scale=%d:%d:flags=bicubic:param0=0:param1=1/2", s.Width, s.Height)
		args = append(args, "-f", "-vf "+scale)
	}
	if s.PixelFormat != settings.DefaultPixelFormat {
		args = append(args, "--pix-format", string(s.PixelFormat))
	}
	args = append(args, "-e", "svt-av1")

	if params := strings.TrimSpace(s.ExtraParams); params != "" {
		// Custom parameters replace the synthesized ones wholesale.
		args = append(args, "-v", params)
	} else {
		args = append(args, "--force", "-v", videoParams(s))
	}

	if s.ThreadAffinity > 0 {
		args = append(args, "--set-thread-affinity", strconv.Itoa(s.ThreadAffinity))
	}
	if s.Workers > 0 {
		args = append(args, "-w", strconv.Itoa(s.Workers))
	}

	return Invocation{Binary: binary, Args: args}, nil
}

// videoParams assembles the SVT parameter string passed through -v. Only
// fields that moved off their defaults are emitted after the fixed seed.
func videoParams(s settings.Settings) string {
	parts := []string{baseVideoParams}
	if s.CRF != settings.DefaultCRF {
		parts = append(parts, "--crf", settings.FormatCRF(s.CRF))
	}
	if s.Preset != settings.DefaultPreset {
		parts = append(parts, "--preset", strconv.Itoa(s.Preset))
	}
	if s.FilmGrain != settings.DefaultFilmGrain {
		parts = append(parts, "--film-grain", strconv.Itoa(s.FilmGrain))
	}
	if s.ColorPrimaries != settings.ColorUnspecified {
		parts = append(parts, "--color-primaries", strconv.Itoa(s.ColorPrimaries))
	}
	if s.TransferCharacteristics != settings.ColorUnspecified {
		parts = append(parts, "--transfer-characteristics", strconv.Itoa(s.TransferCharacteristics))
	}
	if s.MatrixCoefficients != settings.ColorUnspecified {
		parts = append(parts, "--matrix-coefficients", strconv.Itoa(s.MatrixCoefficients))
	}
	if s.ColorRange != settings.ColorRangeStudio {
		parts = append(parts, "--color-range", strconv.Itoa(s.ColorRange))
	}
	return strings.Join(parts, " ")
}

// String renders the invocation as a single shell command line with POSIX
// quoting, suitable for printing or pasting into a terminal.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, shellQuote(inv.Binary))
	for _, arg := range inv.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " \t\n\"'\\$&|;<>()*?[]#~`{}!") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
