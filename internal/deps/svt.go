package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// CheckSVTForAv1an reports the SVT-AV1 binary Av1an will execute.
//
// Av1an resolves its encoder by looking next to its own executable first and
// then falling back to PATH. This helper mirrors that order so status output
// matches what an encode will actually run.
func CheckSVTForAv1an(av1anCommand, svtCommand string) Status {
	result := Status{
		Name:        "SVT-AV1",
		Description: "Invoked by Av1an for encoding",
	}

	av1anBinary := strings.TrimSpace(av1anCommand)
	svtName := strings.TrimSpace(svtCommand)
	if svtName == "" {
		svtName = "SvtAv1EncApp"
	}

	if av1anBinary != "" {
		if resolved, err := exec.LookPath(av1anBinary); err == nil {
			candidate := filepath.Join(filepath.Dir(resolved), filepath.Base(svtName))
			if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
				if unix.Access(candidate, unix.X_OK) == nil {
					result.Command = candidate
					result.Available = true
					return result
				}
			}
		}
	}

	if svtPath, err := exec.LookPath(svtName); err == nil {
		result.Command = svtPath
		result.Available = true
		return result
	}

	result.Command = svtName
	result.Available = false
	result.Detail = fmt.Sprintf("binary %q not found", svtName)
	return result
}
