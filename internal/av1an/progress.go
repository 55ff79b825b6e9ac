package av1an

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ProgressUpdate captures one verbose frame line from av1an-verbosity.
type ProgressUpdate struct {
	EncodedFrames int
	TotalFrames   int
	FPS           float64
	ETA           string
}

// Percent returns completion in [0, 100], or -1 when totals are unknown.
func (p ProgressUpdate) Percent() float64 {
	if p.TotalFrames <= 0 {
		return -1
	}
	return float64(p.EncodedFrames) / float64(p.TotalFrames) * 100
}

// Frame lines carry "<encoded> <total>" with optional "<fps> <eta>" columns.
var frameLinePattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)(?:\s+([0-9]+(?:\.[0-9]+)?))?(?:\s+(\S+))?\s*$`)

// ParseProgressLine extracts a progress update from one line of orchestrator
// output. Lines that are not frame reports return ok=false and are skipped.
func ParseProgressLine(line string) (ProgressUpdate, bool) {
	match := frameLinePattern.FindStringSubmatch(line)
	if match == nil {
		return ProgressUpdate{}, false
	}
	encoded, err := strconv.Atoi(match[1])
	if err != nil {
		return ProgressUpdate{}, false
	}
	total, err := strconv.Atoi(match[2])
	if err != nil {
		return ProgressUpdate{}, false
	}
	update := ProgressUpdate{EncodedFrames: encoded, TotalFrames: total}
	if match[3] != "" {
		if fps, err := strconv.ParseFloat(match[3], 64); err == nil {
			update.FPS = fps
		}
	}
	update.ETA = match[4]
	return update, true
}

// FormatDuration renders a duration compactly ("1h2m3s" without
// zero-valued leading units) for encode summaries.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Second)
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	seconds := (d - minutes*time.Minute) / time.Second
	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, strconv.FormatInt(int64(hours), 10)+"h")
	}
	if minutes > 0 || hours > 0 {
		parts = append(parts, strconv.FormatInt(int64(minutes), 10)+"m")
	}
	if seconds > 0 || (hours == 0 && minutes == 0) {
		parts = append(parts, strconv.FormatInt(int64(seconds), 10)+"s")
	}
	return strings.Join(parts, "")
}
