package toolchain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PkgManager is the package-manager family a distribution uses.
type PkgManager int

const (
	PkgUnknown PkgManager = iota
	PkgApt
	PkgDnf
	PkgZypper
	PkgApk
	PkgPacman
)

func (p PkgManager) String() string {
	switch p {
	case PkgApt:
		return "apt"
	case PkgDnf:
		return "dnf"
	case PkgZypper:
		return "zypper"
	case PkgApk:
		return "apk"
	case PkgPacman:
		return "pacman"
	default:
		return "unknown"
	}
}

// InstallCommand renders the advisory install command for this family.
func (p PkgManager) InstallCommand(pkgs ...string) string {
	joined := strings.Join(pkgs, " ")
	switch p {
	case PkgApt:
		return "sudo apt-get install -y " + joined
	case PkgDnf:
		return "sudo dnf install -y " + joined
	case PkgZypper:
		return "sudo zypper install -y " + joined
	case PkgApk:
		return "sudo apk add " + joined
	case PkgPacman:
		return "sudo pacman -S --noconfirm " + joined
	default:
		return "install with your package manager: " + joined
	}
}

// Distro identifies the Linux distribution from os-release.
type Distro struct {
	ID     string
	IDLike []string
	Name   string
	Pkg    PkgManager
}

const osReleasePath = "/etc/os-release"

// DetectDistro reads /etc/os-release and maps the distribution to a
// package-manager family.
func DetectDistro() (Distro, error) {
	f, err := os.Open(osReleasePath)
	if err != nil {
		return Distro{}, fmt.Errorf("cannot read %s: %w", osReleasePath, err)
	}
	defer f.Close()

	return ParseOSRelease(f)
}

// ParseOSRelease parses os-release content. The family is resolved from ID
// first, then each ID_LIKE entry.
func ParseOSRelease(r io.Reader) (Distro, error) {
	distro := Distro{}

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)

		switch key {
		case "ID":
			distro.ID = value
		case "ID_LIKE":
			distro.IDLike = strings.Fields(value)
		case "PRETTY_NAME":
			distro.Name = value
		}
	}
	if err := s.Err(); err != nil {
		return Distro{}, err
	}

	if distro.ID == "" {
		return Distro{}, fmt.Errorf("os-release has no ID field")
	}

	distro.Pkg = pkgManagerFor(distro.ID)
	for _, like := range distro.IDLike {
		if distro.Pkg != PkgUnknown {
			break
		}
		distro.Pkg = pkgManagerFor(like)
	}

	if distro.Pkg == PkgUnknown {
		return distro, fmt.Errorf("unsupported distribution: %s", distro.ID)
	}

	return distro, nil
}

func pkgManagerFor(id string) PkgManager {
	switch strings.ToLower(id) {
	case "debian", "ubuntu", "linuxmint", "pop", "raspbian":
		return PkgApt
	case "fedora", "rhel", "centos", "rocky", "almalinux", "amzn":
		return PkgDnf
	case "opensuse", "opensuse-leap", "opensuse-tumbleweed", "sles", "suse":
		return PkgZypper
	case "alpine":
		return PkgApk
	case "arch", "manjaro", "endeavouros":
		return PkgPacman
	default:
		return PkgUnknown
	}
}
