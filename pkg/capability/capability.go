package capability

import (
	"strings"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
)

const (
	reasonSupported   = "driver advertises NAN interface mode"
	reasonNoModes     = "driver advertises no interface modes"
	reasonUnsupported = "driver does not advertise NAN interface mode"
)

// SupportsNAN reports whether modes contains the NAN mode. The match
// is exact but case-insensitive. Every NAN verdict goes through here.
func SupportsNAN(modes []string) bool {
	for _, m := range modes {
		if strings.EqualFold(m, wifiaware.ModeNAN) {
			return true
		}
	}
	return false
}

// BindInterfaces maps radio index to the names of the interfaces it
// backs, in the order the kernel listed them. Duplicates are kept.
func BindInterfaces(ifaces []wifiaware.NetworkInterface) map[int][]string {
	bound := map[int][]string{}
	for _, ifi := range ifaces {
		bound[ifi.RadioIndex] = append(bound[ifi.RadioIndex], ifi.Name)
	}
	return bound
}

// ReportFor builds the capability report for a single radio.
func ReportFor(radio wifiaware.RadioDevice, interfaces []string) wifiaware.CapabilityReport {
	modes := radio.SupportedModes
	if modes == nil {
		modes = []string{}
	}
	if interfaces == nil {
		interfaces = []string{}
	}
	radio.SupportedModes = modes

	rep := wifiaware.CapabilityReport{
		Radio:        radio,
		Interfaces:   interfaces,
		Modes:        modes,
		NANSupported: SupportsNAN(modes),
	}

	switch {
	case rep.NANSupported:
		rep.Reason = reasonSupported
	case len(modes) == 0:
		rep.Reason = reasonNoModes
	default:
		rep.Reason = reasonUnsupported
	}

	return rep
}

// Analyze turns enumerator output into a DiscoveryResult, one report
// per radio in kernel order. Interfaces that point at a radio missing
// from radios are ignored.
func Analyze(radios []wifiaware.RadioDevice, ifaces []wifiaware.NetworkInterface) (wifiaware.DiscoveryResult, error) {
	if len(radios) == 0 {
		return wifiaware.DiscoveryResult{}, wifiaware.NewError(wifiaware.NoDeviceFound, "", nil)
	}

	bound := BindInterfaces(ifaces)

	res := wifiaware.DiscoveryResult{
		Reports: make([]wifiaware.CapabilityReport, 0, len(radios)),
	}
	for _, radio := range radios {
		rep := ReportFor(radio, bound[radio.Index])
		res.Reports = append(res.Reports, rep)
		res.AnyNANSupported = res.AnyNANSupported || rep.NANSupported
	}

	return res, nil
}
