//go:build linux

package nl80211

import (
	"errors"
	"testing"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/genetlink/genltest"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/mdlayher/wifi"
	"golang.org/x/sys/unix"
)

var testFamily = genetlink.Family{
	ID:      26,
	Version: 1,
	Name:    unix.NL80211_GENL_NAME,
}

func testClient(t *testing.T, fn genltest.Func) *Client {
	t.Helper()

	c, err := initClient(genltest.Dial(genltest.ServeFamily(testFamily, fn)), nil)
	if err != nil {
		t.Fatalf("failed to open client: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func encode(t *testing.T, fn func(ae *netlink.AttributeEncoder)) []byte {
	t.Helper()

	ae := netlink.NewAttributeEncoder()
	fn(ae)
	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("failed to encode attributes: %v", err)
	}
	return b
}

// wiphyMsgs splits a wiphy across two messages the way a split dump does.
func wiphyMsgs(t *testing.T, index int, name string, types ...wifi.InterfaceType) []genetlink.Message {
	t.Helper()

	head := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Uint32(unix.NL80211_ATTR_WIPHY, uint32(index))
		ae.String(unix.NL80211_ATTR_WIPHY_NAME, name)
	})
	iftypes := encode(t, func(ae *netlink.AttributeEncoder) {
		ae.Uint32(unix.NL80211_ATTR_WIPHY, uint32(index))
		ae.Nested(unix.NL80211_ATTR_SUPPORTED_IFTYPES, func(nae *netlink.AttributeEncoder) error {
			for _, typ := range types {
				nae.Flag(uint16(typ), true)
			}
			return nil
		})
	})

	return []genetlink.Message{{Data: head}, {Data: iftypes}}
}

func interfaceMsg(t *testing.T, name string, ifindex, phy int, typ wifi.InterfaceType) genetlink.Message {
	t.Helper()

	return genetlink.Message{Data: encode(t, func(ae *netlink.AttributeEncoder) {
		if ifindex > 0 {
			ae.Uint32(unix.NL80211_ATTR_IFINDEX, uint32(ifindex))
		}
		if name != "" {
			ae.String(unix.NL80211_ATTR_IFNAME, name)
		}
		ae.Uint32(unix.NL80211_ATTR_WIPHY, uint32(phy))
		ae.Uint32(unix.NL80211_ATTR_IFTYPE, uint32(typ))
		ae.Uint64(unix.NL80211_ATTR_WDEV, 0x100000001)
	})}
}

func requestAttrs(t *testing.T, greq genetlink.Message) map[uint16][]byte {
	t.Helper()

	attrs, err := netlink.UnmarshalAttributes(greq.Data)
	if err != nil {
		t.Fatalf("failed to unmarshal request: %v", err)
	}
	m := map[uint16][]byte{}
	for _, a := range attrs {
		m[a.Type&attrTypeMask] = a.Data
	}
	return m
}

func TestClientRadiosSplitDump(t *testing.T) {
	c := testClient(t, func(greq genetlink.Message, nreq netlink.Message) ([]genetlink.Message, error) {
		if greq.Header.Command != unix.NL80211_CMD_GET_WIPHY {
			t.Fatalf("unexpected command %d", greq.Header.Command)
		}
		if nreq.Header.Flags&netlink.Dump != netlink.Dump {
			t.Fatal("wiphy request is not a dump")
		}
		if _, ok := requestAttrs(t, greq)[unix.NL80211_ATTR_SPLIT_WIPHY_DUMP]; !ok {
			t.Fatal("wiphy dump is not split")
		}

		msgs := wiphyMsgs(t, 1, "phy1", wifi.InterfaceTypeStation, wifi.InterfaceTypeNAN)
		return append(msgs, wiphyMsgs(t, 0, "phy0", wifi.InterfaceTypeStation, wifi.InterfaceTypeAP, wifi.InterfaceTypeMonitor)...), nil
	})

	radios, err := c.Radios()
	if err != nil {
		t.Fatalf("Radios: %v", err)
	}

	want := []wifiaware.RadioDevice{
		{Index: 1, Name: "phy1", SupportedModes: []string{"station", "nan"}},
		{Index: 0, Name: "phy0", SupportedModes: []string{"station", "ap", "monitor"}},
	}
	if diff := cmp.Diff(want, radios); diff != "" {
		t.Fatalf("unexpected radios (-want +got):\n%s", diff)
	}
}

func TestClientRadiosWithoutIftypes(t *testing.T) {
	c := testClient(t, func(greq genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return []genetlink.Message{{Data: encode(t, func(ae *netlink.AttributeEncoder) {
			ae.Uint32(unix.NL80211_ATTR_WIPHY, 3)
		})}}, nil
	})

	radios, err := c.Radios()
	if err != nil {
		t.Fatalf("Radios: %v", err)
	}

	want := []wifiaware.RadioDevice{{Index: 3, Name: "phy3", SupportedModes: []string{}}}
	if diff := cmp.Diff(want, radios); diff != "" {
		t.Fatalf("unexpected radios (-want +got):\n%s", diff)
	}
}

func TestParseRadiosEmptyDump(t *testing.T) {
	radios, err := parseRadios(nil)
	if err != nil {
		t.Fatalf("parseRadios: %v", err)
	}
	if len(radios) != 0 {
		t.Fatalf("expected no radios, got %v", radios)
	}
}

func TestParseRadiosWithoutIndex(t *testing.T) {
	msgs := []genetlink.Message{{Data: encode(t, func(ae *netlink.AttributeEncoder) {
		ae.String(unix.NL80211_ATTR_WIPHY_NAME, "phy0")
	})}}

	if _, err := parseRadios(msgs); !errors.Is(err, errNoWiphyIndex) {
		t.Fatalf("expected errNoWiphyIndex, got %v", err)
	}
}

func TestClientRadiosKernelError(t *testing.T) {
	c := testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return nil, unix.EIO
	})

	_, err := c.Radios()
	if !errors.Is(err, wifiaware.ErrKernelQueryFailed) {
		t.Fatalf("expected ErrKernelQueryFailed, got %v", err)
	}
	if !errors.Is(err, unix.EIO) {
		t.Fatalf("cause was not preserved: %v", err)
	}
}

func TestClientRadio(t *testing.T) {
	c := testClient(t, func(greq genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		data, ok := requestAttrs(t, greq)[unix.NL80211_ATTR_WIPHY]
		if !ok {
			t.Fatal("wiphy filter missing from request")
		}
		if got := nlenc.Uint32(data); got != 1 {
			t.Fatalf("filtered on wiphy %d", got)
		}

		// Pretend to be a kernel that ignores the filter.
		msgs := wiphyMsgs(t, 0, "phy0", wifi.InterfaceTypeStation)
		return append(msgs, wiphyMsgs(t, 1, "phy1", wifi.InterfaceTypeNAN)...), nil
	})

	radio, err := c.Radio(1)
	if err != nil {
		t.Fatalf("Radio: %v", err)
	}

	want := wifiaware.RadioDevice{Index: 1, Name: "phy1", SupportedModes: []string{"nan"}}
	if diff := cmp.Diff(want, radio); diff != "" {
		t.Fatalf("unexpected radio (-want +got):\n%s", diff)
	}
}

func TestClientRadioMissing(t *testing.T) {
	c := testClient(t, func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return nil, unix.ENODEV
	})

	_, err := c.Radio(7)
	if !errors.Is(err, wifiaware.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestClientInterfaces(t *testing.T) {
	c := testClient(t, func(greq genetlink.Message, nreq netlink.Message) ([]genetlink.Message, error) {
		if greq.Header.Command != unix.NL80211_CMD_GET_INTERFACE {
			t.Fatalf("unexpected command %d", greq.Header.Command)
		}
		if nreq.Header.Flags&netlink.Dump != netlink.Dump {
			t.Fatal("interface request is not a dump")
		}

		return []genetlink.Message{
			interfaceMsg(t, "wlan0", 3, 0, wifi.InterfaceTypeStation),
			interfaceMsg(t, "wlan1", 4, 1, wifi.InterfaceTypeAP),
			interfaceMsg(t, "", 0, 1, wifi.InterfaceTypeNAN),
		}, nil
	})

	ifaces, err := c.Interfaces()
	if err != nil {
		t.Fatalf("Interfaces: %v", err)
	}

	want := []wifiaware.NetworkInterface{
		{Name: "wlan0", Index: 3, RadioIndex: 0, Mode: "station"},
		{Name: "wlan1", Index: 4, RadioIndex: 1, Mode: "ap"},
		{Name: "wdev 0x100000001", RadioIndex: 1, Mode: "nan"},
	}
	if diff := cmp.Diff(want, ifaces); diff != "" {
		t.Fatalf("unexpected interfaces (-want +got):\n%s", diff)
	}
}

func stubInterfaceIndex(t *testing.T, indexes map[string]int) {
	t.Helper()

	prev := interfaceIndex
	interfaceIndex = func(name string) (int, error) {
		if i, ok := indexes[name]; ok {
			return i, nil
		}
		return 0, errors.New("no such network interface")
	}
	t.Cleanup(func() { interfaceIndex = prev })
}

func TestClientInterface(t *testing.T) {
	stubInterfaceIndex(t, map[string]int{"wlan0": 3, "eth0": 2})

	c := testClient(t, func(greq genetlink.Message, nreq netlink.Message) ([]genetlink.Message, error) {
		if nreq.Header.Flags&netlink.Dump != 0 {
			t.Fatal("single interface request must not dump")
		}

		switch nlenc.Uint32(requestAttrs(t, greq)[unix.NL80211_ATTR_IFINDEX]) {
		case 3:
			return []genetlink.Message{interfaceMsg(t, "wlan0", 3, 0, wifi.InterfaceTypeStation)}, nil
		default:
			return nil, unix.ENODEV
		}
	})

	ifi, err := c.Interface("wlan0")
	if err != nil {
		t.Fatalf("Interface: %v", err)
	}
	want := wifiaware.NetworkInterface{Name: "wlan0", Index: 3, RadioIndex: 0, Mode: "station"}
	if diff := cmp.Diff(want, ifi); diff != "" {
		t.Fatalf("unexpected interface (-want +got):\n%s", diff)
	}

	for _, name := range []string{"wlan9", "eth0"} {
		_, err := c.Interface(name)
		if !errors.Is(err, wifiaware.ErrDeviceNotFound) {
			t.Fatalf("%s: expected ErrDeviceNotFound, got %v", name, err)
		}

		var de *wifiaware.DiscoveryError
		if !errors.As(err, &de) || de.Name != name {
			t.Fatalf("%s: error does not name the interface: %v", name, err)
		}
	}
}

func TestInitClientPermissionDenied(t *testing.T) {
	conn := genltest.Dial(func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return nil, unix.EPERM
	})

	_, err := initClient(conn, nil)
	if !errors.Is(err, wifiaware.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestInitClientFamilyMissing(t *testing.T) {
	conn := genltest.Dial(func(_ genetlink.Message, _ netlink.Message) ([]genetlink.Message, error) {
		return nil, unix.ENOENT
	})

	_, err := initClient(conn, nil)
	if !errors.Is(err, wifiaware.ErrNoDeviceFound) {
		t.Fatalf("expected ErrNoDeviceFound, got %v", err)
	}
}
