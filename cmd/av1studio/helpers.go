package main

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"av1studio/internal/settings"
)

var titleCaser = cases.Title(language.English)

// fieldLabel turns a settings file key into a display label
// ("source_library" -> "Source Library").
func fieldLabel(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		switch word {
		case "crf":
			words[i] = "CRF"
		default:
			words[i] = titleCaser.String(word)
		}
	}
	return strings.Join(words, " ")
}

// settingsRows renders every settings field as a label/value pair in file
// key order. Empty optional paths render as "(none)" so the table stays
// scannable.
func settingsRows(s settings.Settings) [][2]string {
	path := func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "(none)"
		}
		return value
	}
	resolution := "source"
	if s.HasResolution() {
		resolution = strings.Join([]string{itoa(s.Width), itoa(s.Height)}, "x")
	}
	return [][2]string{
		{fieldLabel("input_file"), path(s.InputFile)},
		{fieldLabel("output_file"), path(s.OutputFile)},
		{fieldLabel("scenes_file"), path(s.ScenesFile)},
		{fieldLabel("zones_file"), path(s.ZonesFile)},
		{fieldLabel("source_library"), string(s.SourceLibrary)},
		{fieldLabel("concatenation"), string(s.Concatenation)},
		{fieldLabel("resolution"), resolution},
		{fieldLabel("pixel_format"), string(s.PixelFormat)},
		{fieldLabel("preset"), itoa(s.Preset)},
		{fieldLabel("crf"), settings.FormatCRF(s.CRF)},
		{fieldLabel("film_grain"), itoa(s.FilmGrain)},
		{fieldLabel("extra_params"), path(s.ExtraParams)},
		{fieldLabel("color_primaries"), itoa(s.ColorPrimaries)},
		{fieldLabel("transfer_characteristics"), itoa(s.TransferCharacteristics)},
		{fieldLabel("matrix_coefficients"), itoa(s.MatrixCoefficients)},
		{fieldLabel("color_range"), itoa(s.ColorRange)},
		{fieldLabel("thread_affinity"), itoa(s.ThreadAffinity)},
		{fieldLabel("workers"), itoa(s.Workers)},
	}
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
