package host

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
	pshost "github.com/shirou/gopsutil/v4/host"
)

// NL80211_IFTYPE_NAN was added in Linux 4.9. Older kernels cannot
// advertise NAN whatever the driver does.
const nanKernelConstraint = ">= 4.9"

var kernelVersionRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?`)

type Info struct {
	Hostname      string `json:"hostname"`
	Platform      string `json:"platform"`
	KernelVersion string `json:"kernelVersion"`
	KernelArch    string `json:"kernelArch"`
	// NANKernel is false if the kernel predates NAN support in nl80211.
	NANKernel bool `json:"nanKernel"`
}

// Lookup gathers host facts for report headers.
func Lookup() (Info, error) {
	hi, err := pshost.Info()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read host info: %w", err)
	}

	info := Info{
		Hostname:      hi.Hostname,
		Platform:      fmt.Sprintf("%s %s", hi.Platform, hi.PlatformVersion),
		KernelVersion: hi.KernelVersion,
		KernelArch:    hi.KernelArch,
		NANKernel:     true,
	}

	ok, err := NANKernelSupport(hi.KernelVersion)
	if err == nil {
		info.NANKernel = ok
	}

	return info, nil
}

// NANKernelSupport reports whether a kernel release string, eg.
// "6.1.21-v8+", is new enough to know the NAN interface type.
func NANKernelSupport(release string) (bool, error) {
	m := kernelVersionRegex.FindStringSubmatch(release)
	if m == nil {
		return false, fmt.Errorf("unrecognised kernel release %q", release)
	}

	patch := m[3]
	if patch == "" {
		patch = "0"
	}

	v, err := semver.NewVersion(fmt.Sprintf("%s.%s.%s", m[1], m[2], patch))
	if err != nil {
		return false, err
	}

	c, err := semver.NewConstraint(nanKernelConstraint)
	if err != nil {
		return false, err
	}

	return c.Check(v), nil
}
