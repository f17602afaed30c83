package iw

import (
	"testing"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/dogeorg/wifiaware/pkg/capability"
	"github.com/google/go-cmp/cmp"
)

const iwList = `Wiphy phy0
	wiphy index: 0
	max # scan SSIDs: 10
	max scan IEs length: 2048 bytes
	Supported Ciphers:
		* WEP40 (00-0f-ac:1)
		* CCMP-128 (00-0f-ac:4)
	Available Antennas: TX 0 RX 0
	Supported interface modes:
		 * IBSS
		 * managed
		 * AP
		 * P2P-client
		 * P2P-GO
		 * P2P-device
	Band 1:
		Capabilities: 0x1062
	Supported commands:
		 * new_interface
		 * set_interface
	software interface modes (can always be added):
	valid interface combinations:
		 * #{ managed } <= 1, #{ P2P-device } <= 1, #{ P2P-client, P2P-GO } <= 1,
		   total <= 3, #channels <= 2
Wiphy phy1
	wiphy index: 1
	Supported interface modes:
		 * managed
		 * monitor
		 * NAN
	software interface modes (can always be added):
		 * monitor
`

const iwDev = `phy#1
	Unnamed/non-netdev interface
		wdev 0x100000002
		addr 00:c0:ca:aa:bb:cc
		type NAN
	Interface wlan1
		ifindex 5
		wdev 0x100000001
		addr 00:c0:ca:aa:bb:cc
		type managed
phy#0
	Interface wlan0
		ifindex 3
		wdev 0x1
		addr b8:27:eb:00:11:22
		ssid home
		type managed
		channel 6 (2437 MHz), width: 20 MHz, center1: 2437 MHz
		txpower 31.00 dBm
`

func TestParseIWList(t *testing.T) {
	want := []wifiaware.RadioDevice{
		{
			Index:          0,
			Name:           "phy0",
			SupportedModes: []string{"ibss", "station", "ap", "p2p-client", "p2p-go", "p2p-device"},
		},
		{
			Index:          1,
			Name:           "phy1",
			SupportedModes: []string{"station", "monitor", "nan"},
		},
	}

	if diff := cmp.Diff(want, parseIWList(iwList)); diff != "" {
		t.Fatalf("unexpected radios (-want +got):\n%s", diff)
	}
}

func TestParseIWListWithoutIndex(t *testing.T) {
	out := "Wiphy phy2\n\tSupported interface modes:\n\t\t * managed\n"

	want := []wifiaware.RadioDevice{{Index: 2, Name: "phy2", SupportedModes: []string{"station"}}}
	if diff := cmp.Diff(want, parseIWList(out)); diff != "" {
		t.Fatalf("unexpected radios (-want +got):\n%s", diff)
	}
}

func TestParseIWListEmpty(t *testing.T) {
	if radios := parseIWList(""); len(radios) != 0 {
		t.Fatalf("expected no radios, got %v", radios)
	}
}

func TestParseIWDev(t *testing.T) {
	want := []wifiaware.NetworkInterface{
		{Name: "wdev 0x100000002", RadioIndex: 1, Mode: "nan"},
		{Name: "wlan1", Index: 5, RadioIndex: 1, Mode: "station"},
		{Name: "wlan0", Index: 3, RadioIndex: 0, Mode: "station"},
	}

	if diff := cmp.Diff(want, parseIWDev(iwDev)); diff != "" {
		t.Fatalf("unexpected interfaces (-want +got):\n%s", diff)
	}
}

func TestIWOutputAnalyzes(t *testing.T) {
	res, err := capability.Analyze(parseIWList(iwList), parseIWDev(iwDev))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if !res.AnyNANSupported {
		t.Fatal("expected NAN support on phy1")
	}
	if res.Reports[0].NANSupported || !res.Reports[1].NANSupported {
		t.Fatalf("unexpected verdicts: %+v", res.Reports)
	}
	if diff := cmp.Diff([]string{"wdev 0x100000002", "wlan1"}, res.Reports[1].Interfaces); diff != "" {
		t.Fatalf("phy1 interfaces (-want +got):\n%s", diff)
	}
}
