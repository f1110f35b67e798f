package toolchain

import (
	"fmt"
	"os/exec"
	"strings"
)

// ToolRequirement describes a build tool dependency. Alternatives satisfy
// the requirement when the primary tool is missing; optional tools never
// fail a check.
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g., "cargo", "maturin").
	Name string

	// Alternatives are alternative tool names that can satisfy this
	// requirement. Example: []string{"gcc", "clang", "cc"}
	Alternatives []string

	// Optional indicates this tool won't cause an error if missing.
	Optional bool

	// Purpose is a human-readable description of why this tool is needed.
	Purpose string
}

// ToolChecker is implemented by builders that require external tools, so
// callers can fail fast before attempting a build.
type ToolChecker interface {
	RequiredTools() []ToolRequirement
	CheckTools() error
}

// CheckToolAvailable checks if a tool is available in the system PATH.
func CheckToolAvailable(tool string) error {
	_, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies all required tools are available. It tries
// the primary name first, then each alternative; optional tools are
// skipped. All missing required tools are reported in a single error.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missingTools []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil

		if !found && len(req.Alternatives) > 0 {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missingTools = append(missingTools, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missingTools = append(missingTools, req.Name)
			}
		}
	}

	if len(missingTools) == 0 {
		return nil
	}

	if len(missingTools) == 1 {
		return fmt.Errorf("%s not found in PATH", missingTools[0])
	}

	return fmt.Errorf("missing required tools: %s", strings.Join(missingTools, ", "))
}
