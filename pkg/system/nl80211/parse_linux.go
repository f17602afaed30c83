//go:build linux

package nl80211

import (
	"errors"
	"fmt"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/mdlayher/wifi"
	"golang.org/x/sys/unix"
)

// attrTypeMask strips NLA_F_NESTED and NLA_F_NET_BYTEORDER.
const attrTypeMask = 0x3fff

var errNoWiphyIndex = errors.New("wiphy message without NL80211_ATTR_WIPHY")

// parseRadios folds split dump messages into one RadioDevice per
// wiphy, in the order each wiphy first appears.
func parseRadios(msgs []genetlink.Message) ([]wifiaware.RadioDevice, error) {
	radios := []wifiaware.RadioDevice{}
	seen := map[int]int{}

	for _, m := range msgs {
		attrs, err := netlink.UnmarshalAttributes(m.Data)
		if err != nil {
			return nil, err
		}

		var (
			index    = -1
			name     string
			modes    []string
			hasModes bool
		)
		for _, a := range attrs {
			switch a.Type & attrTypeMask {
			case unix.NL80211_ATTR_WIPHY:
				index = int(nlenc.Uint32(a.Data))
			case unix.NL80211_ATTR_WIPHY_NAME:
				name = nlenc.String(a.Data)
			case unix.NL80211_ATTR_SUPPORTED_IFTYPES:
				modes, err = parseIftypes(a.Data)
				if err != nil {
					return nil, fmt.Errorf("supported iftypes: %w", err)
				}
				hasModes = true
			}
		}
		if index < 0 {
			return nil, errNoWiphyIndex
		}

		pos, ok := seen[index]
		if !ok {
			pos = len(radios)
			seen[index] = pos
			radios = append(radios, wifiaware.RadioDevice{
				Index:          index,
				SupportedModes: []string{},
			})
		}

		r := &radios[pos]
		if name != "" {
			r.Name = name
		}
		if hasModes {
			r.SupportedModes = modes
		}
	}

	for i := range radios {
		if radios[i].Name == "" {
			radios[i].Name = fmt.Sprintf("phy%d", radios[i].Index)
		}
	}

	return radios, nil
}

// parseIftypes decodes NL80211_ATTR_SUPPORTED_IFTYPES: one flag
// attribute per supported type, typed by enum nl80211_iftype.
func parseIftypes(b []byte) ([]string, error) {
	attrs, err := netlink.UnmarshalAttributes(b)
	if err != nil {
		return nil, err
	}

	modes := make([]string, 0, len(attrs))
	for _, a := range attrs {
		modes = append(modes, ModeName(wifi.InterfaceType(a.Type&attrTypeMask)))
	}
	return modes, nil
}

func parseInterfaces(msgs []genetlink.Message) ([]wifiaware.NetworkInterface, error) {
	ifaces := make([]wifiaware.NetworkInterface, 0, len(msgs))
	for _, m := range msgs {
		attrs, err := netlink.UnmarshalAttributes(m.Data)
		if err != nil {
			return nil, err
		}

		var (
			ifi  = wifiaware.NetworkInterface{RadioIndex: -1}
			wdev uint64
		)
		for _, a := range attrs {
			switch a.Type & attrTypeMask {
			case unix.NL80211_ATTR_IFINDEX:
				ifi.Index = int(nlenc.Uint32(a.Data))
			case unix.NL80211_ATTR_IFNAME:
				ifi.Name = nlenc.String(a.Data)
			case unix.NL80211_ATTR_WIPHY:
				ifi.RadioIndex = int(nlenc.Uint32(a.Data))
			case unix.NL80211_ATTR_IFTYPE:
				ifi.Mode = ModeName(wifi.InterfaceType(nlenc.Uint32(a.Data)))
			case unix.NL80211_ATTR_WDEV:
				wdev = nlenc.Uint64(a.Data)
			}
		}
		if ifi.RadioIndex < 0 {
			return nil, fmt.Errorf("interface %q without NL80211_ATTR_WIPHY", ifi.Name)
		}
		// P2P device and NAN interfaces are wdevs without a netdev.
		if ifi.Name == "" {
			ifi.Name = fmt.Sprintf("wdev 0x%x", wdev)
		}

		ifaces = append(ifaces, ifi)
	}

	return ifaces, nil
}
