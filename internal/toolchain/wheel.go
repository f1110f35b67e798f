package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// WheelBuildConfig configures a native-extension wheel build.
type WheelBuildConfig struct {
	// ProjectDir is the directory holding Cargo.toml / pyproject.toml.
	ProjectDir string
	// Target is an optional Rust target triple for cross-compilation.
	Target string
	// Args are extra arguments appended to the maturin invocation.
	Args []string
	// Env is extra environment passed to the build.
	Env map[string]string
	// Verbose records the invocation in the output.
	Verbose bool
}

// WheelBuildResult reports the outcome of a wheel build.
type WheelBuildResult struct {
	Success bool
	Wheels  []string
	Output  []string
	Error   error
}

// WheelBuilder builds Python native-extension wheels with maturin.
type WheelBuilder struct{}

// Name returns the builder name
func (b *WheelBuilder) Name() string {
	return "Maturin"
}

// CanBuild checks if this builder can handle the project directory.
func (b *WheelBuilder) CanBuild(projectDir string) bool {
	_, err := os.Stat(filepath.Join(projectDir, "Cargo.toml"))
	return err == nil
}

// RequiredTools returns the list of tools this builder needs.
func (b *WheelBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{Name: "maturin", Purpose: "Python extension packaging tool"},
		{Name: "cargo", Purpose: "Rust compiler and package manager"},
		{Name: "python3", Purpose: "Python 3 interpreter"},
		{Name: "cc", Alternatives: []string{"gcc", "clang"}, Optional: true, Purpose: "C compiler for linking"},
	}
}

// CheckTools verifies that all required tools are available.
func (b *WheelBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// Build runs maturin and collects the produced wheel artifacts.
func (b *WheelBuilder) Build(ctx context.Context, config WheelBuildConfig) (*WheelBuildResult, error) {
	result := &WheelBuildResult{
		Success: false,
		Output:  []string{},
	}

	if err := b.CheckTools(); err != nil {
		result.Error = err
		return result, fmt.Errorf("build tools missing: %w", err)
	}

	if err := b.runMaturin(ctx, config, result); err != nil {
		result.Error = err
		return result, err
	}

	wheels, err := b.findWheels(config.ProjectDir)
	if err != nil {
		result.Error = err
		return result, err
	}
	if len(wheels) == 0 {
		err := fmt.Errorf("no wheels found under %s", filepath.Join(config.ProjectDir, "target", "wheels"))
		result.Error = err
		return result, err
	}

	result.Wheels = wheels
	result.Success = true
	return result, nil
}

func (b *WheelBuilder) runMaturin(ctx context.Context, config WheelBuildConfig, result *WheelBuildResult) error {
	args := []string{"build", "--release"}

	if config.Target != "" {
		args = append(args, "--target", config.Target)
	}

	// Use locked dependencies if Cargo.lock exists
	lockPath := filepath.Join(config.ProjectDir, "Cargo.lock")
	if _, err := os.Stat(lockPath); err == nil {
		args = append(args, "--locked")
	}

	args = append(args, config.Args...)

	cmd := exec.CommandContext(ctx, b.maturinPath(), args...)
	cmd.Dir = config.ProjectDir

	cmd.Env = os.Environ()
	for key, value := range config.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	output, err := cmd.CombinedOutput()
	result.Output = append(result.Output, strings.Split(string(output), "\n")...)

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: %s %s", b.maturinPath(), strings.Join(args, " ")),
			fmt.Sprintf("Working directory: %s", config.ProjectDir))
	}

	if err != nil {
		return fmt.Errorf("maturin build failed: %w", err)
	}

	return nil
}

// findWheels locates built wheel artifacts under target/wheels.
func (b *WheelBuilder) findWheels(projectDir string) ([]string, error) {
	pattern := filepath.Join(projectDir, "target", "wheels", "*.whl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %v", pattern, err)
	}
	return matches, nil
}

// maturinPath returns the path to the maturin executable.
func (b *WheelBuilder) maturinPath() string {
	if path := os.Getenv("MATURIN"); path != "" {
		return path
	}
	return "maturin"
}
