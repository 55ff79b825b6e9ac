package settings

import (
	"fmt"
	"strings"
)

// SourceLibrary selects the frame source Av1an uses to pipe exact frame
// ranges to the encoder.
type SourceLibrary string

const (
	SourceBestSource SourceLibrary = "bestsource"
	SourceLSMASH     SourceLibrary = "lsmash"
	SourceFFMS2      SourceLibrary = "ffms2"
)

// ParseSourceLibrary accepts the canonical value plus the spellings the
// upstream tools use ("BestSource", "L-SMASH", "FFMS2").
func ParseSourceLibrary(value string) (SourceLibrary, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "bestsource", "best-source":
		return SourceBestSource, nil
	case "lsmash", "l-smash":
		return SourceLSMASH, nil
	case "ffms2":
		return SourceFFMS2, nil
	default:
		return "", fmt.Errorf("%w: unknown source library %q (want bestsource, lsmash, or ffms2)", ErrValidation, value)
	}
}

func (s SourceLibrary) valid() bool {
	switch s {
	case SourceBestSource, SourceLSMASH, SourceFFMS2:
		return true
	}
	return false
}

// ConcatMethod selects how Av1an joins encoded chunks into the output file.
type ConcatMethod string

const (
	ConcatMkvmerge ConcatMethod = "mkvmerge"
	ConcatFFmpeg   ConcatMethod = "ffmpeg"
	ConcatIVF      ConcatMethod = "ivf"
)

func ParseConcatMethod(value string) (ConcatMethod, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "mkvmerge":
		return ConcatMkvmerge, nil
	case "ffmpeg":
		return ConcatFFmpeg, nil
	case "ivf":
		return ConcatIVF, nil
	default:
		return "", fmt.Errorf("%w: unknown concatenation method %q (want mkvmerge, ffmpeg, or ivf)", ErrValidation, value)
	}
}

func (c ConcatMethod) valid() bool {
	switch c {
	case ConcatMkvmerge, ConcatFFmpeg, ConcatIVF:
		return true
	}
	return false
}

// PixelFormat is the FFmpeg pixel format Av1an targets.
type PixelFormat string

const (
	PixelFormat420P10LE PixelFormat = "yuv420p10le"
	PixelFormat420P     PixelFormat = "yuv420p"
)

func ParsePixelFormat(value string) (PixelFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yuv420p10le":
		return PixelFormat420P10LE, nil
	case "yuv420p":
		return PixelFormat420P, nil
	default:
		return "", fmt.Errorf("%w: unknown pixel format %q (want yuv420p10le or yuv420p)", ErrValidation, value)
	}
}

func (p PixelFormat) valid() bool {
	return p == PixelFormat420P10LE || p == PixelFormat420P
}

// SVT-AV1 signals color description as numeric codes (user guide appendix
// A.2). ColorUnspecified (2) is the encoder default for the first three
// fields; color range defaults to studio (0).
const (
	ColorUnspecified  = 2
	ColorRangeStudio  = 0
	ColorRangeFull    = 1
	MatrixIdentity    = 0
	matrixCodeMax     = 14
	primariesCodeMax  = 12
	primariesCodeEBU  = 22
	transferCodeMax   = 18
	reservedColorCode = 3
)

func validColorPrimaries(code int) bool {
	if code == primariesCodeEBU {
		return true
	}
	return code >= 1 && code <= primariesCodeMax && code != reservedColorCode
}

func validTransferCharacteristics(code int) bool {
	return code >= 1 && code <= transferCodeMax && code != reservedColorCode
}

func validMatrixCoefficients(code int) bool {
	return code >= MatrixIdentity && code <= matrixCodeMax && code != reservedColorCode
}

func validColorRange(code int) bool {
	return code == ColorRangeStudio || code == ColorRangeFull
}
