package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"snapsort/internal/config"
)

// Requirement defines an external tool the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of one requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the external tools for the given configuration. The
// metadata tool is the only hard requirement; everything else the pipeline
// needs ships in-process.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "exiftool",
			Command:     cfg.ExiftoolBinary(),
			Description: "reads and writes media metadata",
		},
	}
}

// Check evaluates the provided requirements against PATH.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		command := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     command,
			Description: req.Description,
			Optional:    req.Optional,
		}
		if command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(command); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", command)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the subset of statuses for required tools that are not
// available.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
