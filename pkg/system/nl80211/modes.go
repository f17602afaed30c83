package nl80211

import (
	"fmt"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/mdlayher/wifi"
)

// wifi.InterfaceType mirrors the ordering of enum nl80211_iftype,
// so the nested attribute types of NL80211_ATTR_SUPPORTED_IFTYPES
// convert directly.
var modeNames = map[wifi.InterfaceType]string{
	wifi.InterfaceTypeUnspecified:   "unspecified",
	wifi.InterfaceTypeAdHoc:         "ibss",
	wifi.InterfaceTypeStation:       "station",
	wifi.InterfaceTypeAP:            "ap",
	wifi.InterfaceTypeAPVLAN:        "ap-vlan",
	wifi.InterfaceTypeWDS:           "wds",
	wifi.InterfaceTypeMonitor:       "monitor",
	wifi.InterfaceTypeMeshPoint:     "mesh-point",
	wifi.InterfaceTypeP2PClient:     "p2p-client",
	wifi.InterfaceTypeP2PGroupOwner: "p2p-go",
	wifi.InterfaceTypeP2PDevice:     "p2p-device",
	wifi.InterfaceTypeOCB:           "ocb",
	wifi.InterfaceTypeNAN:           wifiaware.ModeNAN,
}

// ModeName returns the mode name used in reports for an nl80211
// interface type. Types newer than this table are named by number.
func ModeName(t wifi.InterfaceType) string {
	if name, ok := modeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("iftype-%d", int(t))
}
