package wifiaware

// ModeNAN is the interface mode name nl80211 drivers advertise
// when they can run a NAN (WiFi Aware) device interface.
// Always compare it with SupportsNAN in pkg/capability, never with ==.
const ModeNAN = "nan"

// A RadioDevice is one physical wireless chip (a wiphy) as
// reported by the kernel during a single discovery run.
type RadioDevice struct {
	Index          int      `json:"index"`
	Name           string   `json:"name"`
	SupportedModes []string `json:"supportedModes"`
}

// A NetworkInterface is a netdev (or wdev) backed by exactly
// one RadioDevice, referenced by RadioIndex.
type NetworkInterface struct {
	Name       string `json:"name"`
	Index      int    `json:"index"`
	RadioIndex int    `json:"radioIndex"`
	// Mode is the interface's current operating mode, eg. "station".
	Mode string `json:"mode,omitempty"`
}

type CapabilityReport struct {
	Radio        RadioDevice `json:"radio"`
	Interfaces   []string    `json:"interfaces"`
	Modes        []string    `json:"modes"`
	NANSupported bool        `json:"nanSupported"`
	Reason       string      `json:"reason,omitempty"`
}

type DiscoveryResult struct {
	Reports         []CapabilityReport `json:"reports"`
	AnyNANSupported bool               `json:"anyNanSupported"`
}

// Report returns the report for the radio with the given
// kernel index, if one was produced.
func (r DiscoveryResult) Report(radioIndex int) (CapabilityReport, bool) {
	for _, rep := range r.Reports {
		if rep.Radio.Index == radioIndex {
			return rep, true
		}
	}
	return CapabilityReport{}, false
}

// InterfaceCheck is the answer for a single named interface.
type InterfaceCheck struct {
	Interface NetworkInterface `json:"interface"`
	Report    CapabilityReport `json:"report"`
}
