package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// CheckResult is the outcome of a single doctor check. Remedy carries the
// advisory remediation command when the check failed.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
	Remedy string
}

// Doctor verifies the local toolchain needed to build native extension
// wheels: a C compiler, Python with headers, Rust, and maturin. Failures
// are advisory; callers decide whether to treat them as fatal.
type Doctor struct {
	distro    Distro
	distroErr error

	lookPath func(string) (string, error)
}

func NewDoctor() *Doctor {
	distro, err := DetectDistro()
	return &Doctor{
		distro:    distro,
		distroErr: err,
		lookPath:  exec.LookPath,
	}
}

// Distro returns the detected distribution; the error is non-nil when
// detection failed or the distribution is unsupported.
func (d *Doctor) Distro() (Distro, error) {
	return d.distro, d.distroErr
}

// Run executes every check and returns the results in order.
func (d *Doctor) Run(ctx context.Context) []CheckResult {
	results := []CheckResult{d.checkDistro()}

	results = append(results,
		d.checkTool("cc", []string{"gcc", "clang", "cc"}, "C compiler",
			d.distro.Pkg.InstallCommand("gcc")),
		d.checkTool("python3", nil, "Python 3 interpreter",
			d.distro.Pkg.InstallCommand("python3")),
		d.checkTool("python3-config", nil, "Python 3 development headers",
			d.distro.Pkg.InstallCommand(pythonDevPackage(d.distro.Pkg))),
		d.checkTool("rustc", nil, "Rust compiler",
			"curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh"),
		d.checkTool("cargo", nil, "Rust package manager",
			"curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh"),
		d.checkTool("maturin", nil, "Python extension packaging tool",
			"pipx install maturin"),
	)

	if compile := d.verifyCompile(ctx, results); compile != nil {
		results = append(results, *compile)
	}

	return results
}

// Failed reports whether any check did not pass.
func Failed(results []CheckResult) bool {
	for _, r := range results {
		if !r.OK {
			return true
		}
	}
	return false
}

func (d *Doctor) checkDistro() CheckResult {
	if d.distroErr != nil {
		return CheckResult{
			Name:   "distribution",
			OK:     false,
			Detail: d.distroErr.Error(),
			Remedy: "supported families: apt, dnf, zypper, apk, pacman",
		}
	}

	return CheckResult{
		Name:   "distribution",
		OK:     true,
		Detail: fmt.Sprintf("%s (%s)", d.distro.Name, d.distro.Pkg),
	}
}

func (d *Doctor) checkTool(name string, alternatives []string, purpose, remedy string) CheckResult {
	candidates := append([]string{name}, alternatives...)
	for _, candidate := range candidates {
		if path, err := d.lookPath(candidate); err == nil {
			return CheckResult{
				Name:   name,
				OK:     true,
				Detail: path,
			}
		}
	}

	return CheckResult{
		Name:   name,
		OK:     false,
		Detail: purpose + " not found in PATH",
		Remedy: remedy,
	}
}

// verifyCompile builds a trivial C source with the available compiler, the
// same smoke test the manual setup uses. Skipped when no compiler exists.
func (d *Doctor) verifyCompile(ctx context.Context, results []CheckResult) *CheckResult {
	compiler := ""
	for _, candidate := range []string{"cc", "gcc", "clang"} {
		if path, err := d.lookPath(candidate); err == nil {
			compiler = path
			break
		}
	}
	if compiler == "" {
		return nil
	}

	dir, err := os.MkdirTemp("", "toolchain-doctor-")
	if err != nil {
		return &CheckResult{Name: "compile check", OK: false, Detail: err.Error()}
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "main.c")
	out := filepath.Join(dir, "a.out")
	program := "int main(void) { return 0; }\n"
	if err := os.WriteFile(src, []byte(program), 0o644); err != nil {
		return &CheckResult{Name: "compile check", OK: false, Detail: err.Error()}
	}

	cmd := exec.CommandContext(ctx, compiler, "-o", out, src)
	if output, err := cmd.CombinedOutput(); err != nil {
		return &CheckResult{
			Name:   "compile check",
			OK:     false,
			Detail: fmt.Sprintf("%s failed: %s", compiler, string(output)),
			Remedy: d.distro.Pkg.InstallCommand("gcc"),
		}
	}

	return &CheckResult{
		Name:   "compile check",
		OK:     true,
		Detail: compiler + " compiled a test program",
	}
}

func pythonDevPackage(pkg PkgManager) string {
	switch pkg {
	case PkgDnf, PkgZypper:
		return "python3-devel"
	case PkgApk:
		return "python3-dev"
	case PkgPacman:
		return "python" // headers ship with the main package
	default:
		return "python3-dev"
	}
}
