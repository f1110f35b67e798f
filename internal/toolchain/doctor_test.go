package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookPath resolves only the listed tools.
func fakeLookPath(available ...string) func(string) (string, error) {
	set := make(map[string]bool, len(available))
	for _, tool := range available {
		set[tool] = true
	}

	return func(tool string) (string, error) {
		if set[tool] {
			return "/usr/bin/" + tool, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func testDoctor(available ...string) *Doctor {
	return &Doctor{
		distro:   Distro{ID: "ubuntu", Name: "Ubuntu 24.04 LTS", Pkg: PkgApt},
		lookPath: fakeLookPath(available...),
	}
}

func resultByName(t *testing.T, results []CheckResult, name string) CheckResult {
	t.Helper()

	for _, r := range results {
		if r.Name == name {
			return r
		}
	}

	t.Fatalf("no check named %q in results", name)
	return CheckResult{}
}

func TestDoctorRunAllToolsPresent(t *testing.T) {
	// Leave the compiler out so the compile smoke test is skipped and the
	// run stays hermetic.
	doctor := testDoctor("python3", "python3-config", "rustc", "cargo", "maturin")

	results := doctor.Run(context.Background())

	distro := resultByName(t, results, "distribution")
	assert.True(t, distro.OK)
	assert.Contains(t, distro.Detail, "Ubuntu")
	assert.Contains(t, distro.Detail, "apt")

	for _, name := range []string{"python3", "python3-config", "rustc", "cargo", "maturin"} {
		r := resultByName(t, results, name)
		assert.True(t, r.OK, "%s should pass", name)
		assert.Equal(t, "/usr/bin/"+name, r.Detail)
	}

	cc := resultByName(t, results, "cc")
	assert.False(t, cc.OK)
	assert.Equal(t, "sudo apt-get install -y gcc", cc.Remedy)

	assert.True(t, Failed(results))
}

func TestDoctorCompilerAlternatives(t *testing.T) {
	doctor := testDoctor("clang")

	results := doctor.Run(context.Background())

	cc := resultByName(t, results, "cc")
	assert.True(t, cc.OK)
	assert.Equal(t, "/usr/bin/clang", cc.Detail)
}

func TestDoctorMissingToolsCarryRemedies(t *testing.T) {
	doctor := testDoctor()

	results := doctor.Run(context.Background())
	require.True(t, Failed(results))

	rustc := resultByName(t, results, "rustc")
	assert.False(t, rustc.OK)
	assert.Contains(t, rustc.Remedy, "rustup")

	maturin := resultByName(t, results, "maturin")
	assert.False(t, maturin.OK)
	assert.Contains(t, maturin.Remedy, "pipx install maturin")

	pyconfig := resultByName(t, results, "python3-config")
	assert.False(t, pyconfig.OK)
	assert.Contains(t, pyconfig.Remedy, "python3-dev")
}

func TestDoctorUnsupportedDistro(t *testing.T) {
	doctor := &Doctor{
		distro:    Distro{ID: "plan9"},
		distroErr: errors.New("unsupported distribution: plan9"),
		lookPath:  fakeLookPath(),
	}

	results := doctor.Run(context.Background())

	distro := resultByName(t, results, "distribution")
	assert.False(t, distro.OK)
	assert.Contains(t, distro.Detail, "plan9")
	assert.NotEmpty(t, distro.Remedy)

	_, err := doctor.Distro()
	assert.Error(t, err)
}

func TestFailed(t *testing.T) {
	assert.False(t, Failed(nil))
	assert.False(t, Failed([]CheckResult{{OK: true}}))
	assert.True(t, Failed([]CheckResult{{OK: true}, {OK: false}}))
}

func TestPythonDevPackage(t *testing.T) {
	assert.Equal(t, "python3-dev", pythonDevPackage(PkgApt))
	assert.Equal(t, "python3-devel", pythonDevPackage(PkgDnf))
	assert.Equal(t, "python3-devel", pythonDevPackage(PkgZypper))
	assert.Equal(t, "python3-dev", pythonDevPackage(PkgApk))
	assert.Equal(t, "python", pythonDevPackage(PkgPacman))
}
