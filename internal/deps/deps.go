package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"av1studio/internal/config"
)

// Requirement defines an external binary av1studio relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Commands containing a path separator are checked in place; bare names are
// resolved through PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if strings.ContainsRune(cmd, os.PathSeparator) {
			if detail := probePath(cmd); detail != "" {
				status.Detail = detail
				results = append(results, status)
				continue
			}
			status.Available = true
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// probePath checks that path points at an executable regular file. It returns
// an empty string on success and a detail message otherwise.
func probePath(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("binary %q not found", path)
		}
		return fmt.Sprintf("stat %q: %v", path, err)
	}
	if info.IsDir() {
		return fmt.Sprintf("%q is a directory", path)
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return fmt.Sprintf("%q is not executable: %v", path, err)
	}
	return ""
}

// CheckToolchain evaluates the full encoder toolchain for the given config.
// The status command and the encode preflight both use this so the
// requirements list lives in one place.
func CheckToolchain(cfg *config.Config) []Status {
	requirements := []Requirement{
		{
			Name:        "Av1an",
			Command:     cfg.Tools.Av1an,
			Description: "Required for chunked encoding",
		},
		{
			Name:        "mkvmerge",
			Command:     cfg.Tools.Mkvmerge,
			Description: "Required for chunk concatenation",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Required for scaling filters and piping",
		},
	}
	statuses := CheckBinaries(requirements)
	statuses = append(statuses, CheckSVTForAv1an(cfg.Tools.Av1an, cfg.Tools.SVTAV1))
	return statuses
}
