package settings_test

import (
	"errors"
	"strings"
	"testing"

	"av1studio/internal/settings"
)

func TestDefaultsSatisfyInvariants(t *testing.T) {
	s := settings.Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if s.Preset != 4 {
		t.Fatalf("unexpected default preset: %d", s.Preset)
	}
	if s.CRF != 27.0 {
		t.Fatalf("unexpected default crf: %v", s.CRF)
	}
	if s.SourceLibrary != settings.SourceBestSource {
		t.Fatalf("unexpected default source library: %q", s.SourceLibrary)
	}
	if s.Concatenation != settings.ConcatMkvmerge {
		t.Fatalf("unexpected default concatenation: %q", s.Concatenation)
	}
	if s.PixelFormat != settings.PixelFormat420P10LE {
		t.Fatalf("unexpected default pixel format: %q", s.PixelFormat)
	}
	if s.Workers != 0 || s.ThreadAffinity != 0 {
		t.Fatalf("expected worker controls to default to 0, got %d/%d", s.Workers, s.ThreadAffinity)
	}
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*settings.Settings)
		want   string
	}{
		{"preset too high", func(s *settings.Settings) { s.Preset = 14 }, "preset"},
		{"preset negative", func(s *settings.Settings) { s.Preset = -1 }, "preset"},
		{"crf above ceiling", func(s *settings.Settings) { s.CRF = 70.25 }, "crf"},
		{"crf negative", func(s *settings.Settings) { s.CRF = -0.25 }, "crf"},
		{"crf off quarter step", func(s *settings.Settings) { s.CRF = 27.1 }, "0.25 step"},
		{"film grain negative", func(s *settings.Settings) { s.FilmGrain = -1 }, "film grain"},
		{"workers negative", func(s *settings.Settings) { s.Workers = -2 }, "worker count"},
		{"affinity negative", func(s *settings.Settings) { s.ThreadAffinity = -1 }, "thread affinity"},
		{"width without height", func(s *settings.Settings) { s.Width = 1920 }, "resolution"},
		{"bad source library", func(s *settings.Settings) { s.SourceLibrary = "avisynth" }, "source library"},
		{"bad concat", func(s *settings.Settings) { s.Concatenation = "cat" }, "concatenation"},
		{"bad pixel format", func(s *settings.Settings) { s.PixelFormat = "rgb24" }, "pixel format"},
		{"reserved primaries code", func(s *settings.Settings) { s.ColorPrimaries = 3 }, "color primaries"},
		{"primaries code out of range", func(s *settings.Settings) { s.ColorPrimaries = 23 }, "color primaries"},
		{"transfer code out of range", func(s *settings.Settings) { s.TransferCharacteristics = 19 }, "transfer"},
		{"matrix code out of range", func(s *settings.Settings) { s.MatrixCoefficients = 15 }, "matrix"},
		{"bad color range", func(s *settings.Settings) { s.ColorRange = 2 }, "color range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := settings.Default()
			tc.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, settings.ErrValidation) {
				t.Fatalf("error not marked as validation error: %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateAcceptsQuarterStepCRF(t *testing.T) {
	for _, crf := range []float64{0, 0.25, 23.75, 27, 69.75, 70} {
		s := settings.Default()
		s.CRF = crf
		if err := s.Validate(); err != nil {
			t.Fatalf("crf %v rejected: %v", crf, err)
		}
	}
}

func TestRequirePaths(t *testing.T) {
	s := settings.Default()
	if err := s.RequirePaths(); !errors.Is(err, settings.ErrValidation) {
		t.Fatalf("expected validation error for missing input, got %v", err)
	}
	s.InputFile = "/videos/in.mkv"
	if err := s.RequirePaths(); !errors.Is(err, settings.ErrValidation) {
		t.Fatalf("expected validation error for missing output, got %v", err)
	}
	s.OutputFile = "/videos/out.mkv"
	if err := s.RequirePaths(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseSourceLibrarySpellings(t *testing.T) {
	cases := map[string]settings.SourceLibrary{
		"BestSource": settings.SourceBestSource,
		"bestsource": settings.SourceBestSource,
		"L-SMASH":    settings.SourceLSMASH,
		"lsmash":     settings.SourceLSMASH,
		"FFMS2":      settings.SourceFFMS2,
	}
	for input, want := range cases {
		got, err := settings.ParseSourceLibrary(input)
		if err != nil {
			t.Fatalf("ParseSourceLibrary(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseSourceLibrary(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := settings.ParseSourceLibrary("dgdecode"); !errors.Is(err, settings.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFormatCRF(t *testing.T) {
	cases := map[float64]string{
		27:    "27",
		23.25: "23.25",
		0.5:   "0.5",
		70:    "70",
	}
	for crf, want := range cases {
		if got := settings.FormatCRF(crf); got != want {
			t.Fatalf("FormatCRF(%v) = %q, want %q", crf, got, want)
		}
	}
}
