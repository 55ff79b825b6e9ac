package main

import (
	"strings"
	"testing"
)

func TestRenderKeyValueTable(t *testing.T) {
	out := renderKeyValueTable("Setting", "Value", [][2]string{
		{"Preset", "4"},
		{"CRF", "27"},
	})

	for _, fragment := range []string{"Setting", "Value", "Preset", "4", "CRF", "27"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("table missing %q:\n%s", fragment, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) < 4 {
		t.Fatalf("expected bordered table with header and rows, got:\n%s", out)
	}
}
