//go:build linux

package nl80211

import (
	"errors"
	"fmt"
	"net"
	"os"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var _ wifiaware.RadioSession = &Client{}

// interfaceIndex resolves a netdev name to its kernel ifindex.
var interfaceIndex = func(name string) (int, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return 0, err
	}
	return ifi.Index, nil
}

// A Client is one generic netlink session with nl80211. It is not
// safe for concurrent use.
type Client struct {
	c             *genetlink.Conn
	familyID      uint16
	familyVersion uint8
	log           logrus.FieldLogger
}

// Open dials generic netlink and looks up the nl80211 family.
func Open(log logrus.FieldLogger) (*Client, error) {
	c, err := genetlink.Dial(nil)
	if err != nil {
		return nil, classify(err, "")
	}

	// Best effort, older kernels reject these.
	for _, o := range []netlink.ConnOption{
		netlink.ExtendedAcknowledge,
		netlink.GetStrictCheck,
	} {
		_ = c.SetOption(o, true)
	}

	return initClient(c, log)
}

// Opener returns a SessionOpener that dials a new Client per run.
func Opener(log logrus.FieldLogger) wifiaware.SessionOpener {
	return func() (wifiaware.RadioSession, error) {
		c, err := Open(log)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func initClient(c *genetlink.Conn, log logrus.FieldLogger) (*Client, error) {
	family, err := c.GetFamily(unix.NL80211_GENL_NAME)
	if err != nil {
		_ = c.Close()
		if errors.Is(err, os.ErrNotExist) {
			// cfg80211 is not loaded, so there is no wireless driver.
			return nil, wifiaware.NewError(wifiaware.NoDeviceFound, "", fmt.Errorf("nl80211 unavailable: %w", err))
		}
		return nil, classify(err, "")
	}

	log = wifiaware.LoggerOrDiscard(log)
	log.WithFields(logrus.Fields{
		"family":  family.ID,
		"version": family.Version,
	}).Debug("opened nl80211 session")

	return &Client{
		c:             c,
		familyID:      family.ID,
		familyVersion: family.Version,
		log:           log,
	}, nil
}

func (c *Client) Close() error { return c.c.Close() }

// Radios dumps every wiphy. The split dump arrives as several
// messages per wiphy, all from the same request.
func (c *Client) Radios() ([]wifiaware.RadioDevice, error) {
	msgs, err := c.execute(unix.NL80211_CMD_GET_WIPHY, netlink.Dump, func(ae *netlink.AttributeEncoder) {
		ae.Flag(unix.NL80211_ATTR_SPLIT_WIPHY_DUMP, true)
	})
	if err != nil {
		return nil, classify(err, "")
	}

	radios, err := parseRadios(msgs)
	if err != nil {
		return nil, wifiaware.NewError(wifiaware.KernelQueryFailed, "", err)
	}
	if len(radios) == 0 {
		return nil, wifiaware.NewError(wifiaware.NoDeviceFound, "", nil)
	}

	for _, r := range radios {
		c.log.WithFields(logrus.Fields{
			"phy":   r.Index,
			"radio": r.Name,
			"modes": r.SupportedModes,
		}).Debug("found radio")
	}

	return radios, nil
}

// Radio fetches one wiphy by index.
func (c *Client) Radio(index int) (wifiaware.RadioDevice, error) {
	name := fmt.Sprintf("phy#%d", index)

	msgs, err := c.execute(unix.NL80211_CMD_GET_WIPHY, netlink.Dump, func(ae *netlink.AttributeEncoder) {
		ae.Uint32(unix.NL80211_ATTR_WIPHY, uint32(index))
		ae.Flag(unix.NL80211_ATTR_SPLIT_WIPHY_DUMP, true)
	})
	if err != nil {
		if errors.Is(err, unix.ENODEV) {
			return wifiaware.RadioDevice{}, wifiaware.NewError(wifiaware.DeviceNotFound, name, err)
		}
		return wifiaware.RadioDevice{}, classify(err, name)
	}

	radios, err := parseRadios(msgs)
	if err != nil {
		return wifiaware.RadioDevice{}, wifiaware.NewError(wifiaware.KernelQueryFailed, name, err)
	}

	// Older kernels ignore the filter and dump everything.
	for _, r := range radios {
		if r.Index == index {
			return r, nil
		}
	}

	return wifiaware.RadioDevice{}, wifiaware.NewError(wifiaware.DeviceNotFound, name, nil)
}

// Interfaces dumps every wireless interface.
func (c *Client) Interfaces() ([]wifiaware.NetworkInterface, error) {
	msgs, err := c.execute(unix.NL80211_CMD_GET_INTERFACE, netlink.Dump, nil)
	if err != nil {
		return nil, classify(err, "")
	}

	ifaces, err := parseInterfaces(msgs)
	if err != nil {
		return nil, wifiaware.NewError(wifiaware.KernelQueryFailed, "", err)
	}

	return ifaces, nil
}

// Interface resolves a single interface by name. Interfaces that
// exist but are not driven by cfg80211 are reported as not found.
func (c *Client) Interface(name string) (wifiaware.NetworkInterface, error) {
	index, err := interfaceIndex(name)
	if err != nil {
		return wifiaware.NetworkInterface{}, wifiaware.NewError(wifiaware.DeviceNotFound, name, err)
	}

	msgs, err := c.execute(unix.NL80211_CMD_GET_INTERFACE, 0, func(ae *netlink.AttributeEncoder) {
		ae.Uint32(unix.NL80211_ATTR_IFINDEX, uint32(index))
	})
	if err != nil {
		if errors.Is(err, unix.ENODEV) || errors.Is(err, os.ErrNotExist) {
			return wifiaware.NetworkInterface{}, wifiaware.NewError(wifiaware.DeviceNotFound, name, err)
		}
		return wifiaware.NetworkInterface{}, classify(err, name)
	}

	ifaces, err := parseInterfaces(msgs)
	if err != nil {
		return wifiaware.NetworkInterface{}, wifiaware.NewError(wifiaware.KernelQueryFailed, name, err)
	}
	if len(ifaces) == 0 {
		return wifiaware.NetworkInterface{}, wifiaware.NewError(wifiaware.DeviceNotFound, name, nil)
	}

	c.log.WithFields(logrus.Fields{
		"iface": name,
		"phy":   ifaces[0].RadioIndex,
	}).Debug("resolved interface")

	return ifaces[0], nil
}

// execute sends one nl80211 request and collects the replies. params
// may be nil.
func (c *Client) execute(
	cmd uint8,
	flags netlink.HeaderFlags,
	params func(ae *netlink.AttributeEncoder),
) ([]genetlink.Message, error) {
	ae := netlink.NewAttributeEncoder()
	if params != nil {
		params(ae)
	}

	b, err := ae.Encode()
	if err != nil {
		return nil, err
	}

	return c.c.Execute(
		genetlink.Message{
			Header: genetlink.Header{
				Command: cmd,
				Version: c.familyVersion,
			},
			Data: b,
		},
		c.familyID,
		netlink.Request|flags,
	)
}

// classify maps a kernel channel error onto the discovery taxonomy.
func classify(err error, name string) error {
	if errors.Is(err, os.ErrPermission) {
		return wifiaware.NewError(wifiaware.PermissionDenied, name, err)
	}
	return wifiaware.NewError(wifiaware.KernelQueryFailed, name, err)
}
