package av1an_test

import (
	"testing"
	"time"

	"av1studio/internal/av1an"
)

func TestParseProgressLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		want av1an.ProgressUpdate
		ok   bool
	}{
		{
			name: "frames only",
			line: "120 4800",
			want: av1an.ProgressUpdate{EncodedFrames: 120, TotalFrames: 4800},
			ok:   true,
		},
		{
			name: "frames with fps",
			line: "  240 4800 31.5",
			want: av1an.ProgressUpdate{EncodedFrames: 240, TotalFrames: 4800, FPS: 31.5},
			ok:   true,
		},
		{
			name: "full line with eta",
			line: "360 4800 29.97 00:02:28",
			want: av1an.ProgressUpdate{EncodedFrames: 360, TotalFrames: 4800, FPS: 29.97, ETA: "00:02:28"},
			ok:   true,
		},
		{name: "log noise", line: "Scene detection complete", ok: false},
		{name: "empty", line: "", ok: false},
		{name: "partial number", line: "123", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := av1an.ParseProgressLine(tc.line)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestProgressPercent(t *testing.T) {
	update := av1an.ProgressUpdate{EncodedFrames: 1200, TotalFrames: 4800}
	if pct := update.Percent(); pct != 25 {
		t.Fatalf("Percent = %v, want 25", pct)
	}
	unknown := av1an.ProgressUpdate{EncodedFrames: 10}
	if pct := unknown.Percent(); pct != -1 {
		t.Fatalf("Percent without totals = %v, want -1", pct)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                     "",
		42 * time.Second:                      "42s",
		2 * time.Minute:                       "2m",
		time.Hour + 3*time.Minute:             "1h3m",
		time.Hour + time.Minute + time.Second: "1h1m1s",
	}
	for d, want := range cases {
		if got := av1an.FormatDuration(d); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
