package settings

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation marks every settings rejection so callers can distinguish
// user input problems from I/O failures with errors.Is.
var ErrValidation = errors.New("validation error")

// Validate enforces the range invariants. Out-of-range values are rejected,
// never clamped, so a preset of 14 surfaces to the user instead of silently
// encoding at 13.
func (s *Settings) Validate() error {
	if !s.SourceLibrary.valid() {
		return fmt.Errorf("%w: source library %q is not one of bestsource, lsmash, ffms2", ErrValidation, s.SourceLibrary)
	}
	if !s.Concatenation.valid() {
		return fmt.Errorf("%w: concatenation method %q is not one of mkvmerge, ffmpeg, ivf", ErrValidation, s.Concatenation)
	}
	if !s.PixelFormat.valid() {
		return fmt.Errorf("%w: pixel format %q is not one of yuv420p10le, yuv420p", ErrValidation, s.PixelFormat)
	}
	if s.Preset < PresetMin || s.Preset > PresetMax {
		return fmt.Errorf("%w: preset %d outside [%d, %d]", ErrValidation, s.Preset, PresetMin, PresetMax)
	}
	if err := validateCRF(s.CRF); err != nil {
		return err
	}
	if s.FilmGrain < 0 {
		return fmt.Errorf("%w: film grain strength %d must be >= 0", ErrValidation, s.FilmGrain)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: resolution %dx%d must not be negative", ErrValidation, s.Width, s.Height)
	}
	if (s.Width > 0) != (s.Height > 0) {
		return fmt.Errorf("%w: resolution needs both width and height (got %dx%d)", ErrValidation, s.Width, s.Height)
	}
	if !validColorPrimaries(s.ColorPrimaries) {
		return fmt.Errorf("%w: color primaries code %d is not defined by SVT-AV1", ErrValidation, s.ColorPrimaries)
	}
	if !validTransferCharacteristics(s.TransferCharacteristics) {
		return fmt.Errorf("%w: transfer characteristics code %d is not defined by SVT-AV1", ErrValidation, s.TransferCharacteristics)
	}
	if !validMatrixCoefficients(s.MatrixCoefficients) {
		return fmt.Errorf("%w: matrix coefficients code %d is not defined by SVT-AV1", ErrValidation, s.MatrixCoefficients)
	}
	if !validColorRange(s.ColorRange) {
		return fmt.Errorf("%w: color range %d must be 0 (studio) or 1 (full)", ErrValidation, s.ColorRange)
	}
	if s.ThreadAffinity < 0 {
		return fmt.Errorf("%w: thread affinity %d must be >= 0", ErrValidation, s.ThreadAffinity)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: worker count %d must be >= 0", ErrValidation, s.Workers)
	}
	return nil
}

// RequirePaths checks the fields command synthesis cannot proceed without.
func (s *Settings) RequirePaths() error {
	if s.InputFile == "" {
		return fmt.Errorf("%w: input file is required", ErrValidation)
	}
	if s.OutputFile == "" {
		return fmt.Errorf("%w: output file is required", ErrValidation)
	}
	return nil
}

func validateCRF(crf float64) error {
	if crf < CRFMin || crf > CRFMax {
		return fmt.Errorf("%w: crf %s outside [0, 70]", ErrValidation, FormatCRF(crf))
	}
	steps := crf / CRFStep
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		return fmt.Errorf("%w: crf %s is not on a 0.25 step", ErrValidation, FormatCRF(crf))
	}
	return nil
}
