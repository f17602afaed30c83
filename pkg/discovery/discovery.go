package discovery

import (
	"errors"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/dogeorg/wifiaware/pkg/capability"
	"github.com/sirupsen/logrus"
)

// Discoverer runs discovery against sessions from Open. Each call
// opens its own session and closes it before returning.
type Discoverer struct {
	Open wifiaware.SessionOpener
	Log  logrus.FieldLogger
}

func NewDiscoverer(open wifiaware.SessionOpener, log logrus.FieldLogger) Discoverer {
	return Discoverer{
		Open: open,
		Log:  wifiaware.LoggerOrDiscard(log),
	}
}

// Discover enumerates every radio and interface on the host and
// reports NAN support for each radio.
func (d Discoverer) Discover() (result wifiaware.DiscoveryResult, err error) {
	err = d.withSession(func(s wifiaware.RadioSession) error {
		radios, err := s.Radios()
		if err != nil {
			return err
		}

		ifaces, err := s.Interfaces()
		if err != nil {
			return err
		}

		result, err = capability.Analyze(radios, ifaces)
		return err
	})
	if err != nil {
		return wifiaware.DiscoveryResult{}, err
	}

	for _, rep := range result.Reports {
		d.logger().WithFields(logrus.Fields{
			"radio":      rep.Radio.Name,
			"interfaces": rep.Interfaces,
			"nan":        rep.NANSupported,
		}).Debug("analyzed radio")
	}

	return result, nil
}

// CheckInterface answers whether the radio behind a single named
// interface supports NAN. If the interface cannot be found the
// DeviceNotFound error lists the interfaces that do exist.
func (d Discoverer) CheckInterface(name string) (check wifiaware.InterfaceCheck, err error) {
	err = d.withSession(func(s wifiaware.RadioSession) error {
		ifi, err := s.Interface(name)
		if err != nil {
			if wifiaware.KindOf(err) == wifiaware.DeviceNotFound {
				return d.withAvailable(s, name, err)
			}
			return err
		}

		radio, err := s.Radio(ifi.RadioIndex)
		if err != nil {
			return err
		}

		// Only the named interface is known on this path.
		check = wifiaware.InterfaceCheck{
			Interface: ifi,
			Report:    capability.ReportFor(radio, []string{ifi.Name}),
		}
		return nil
	})
	if err != nil {
		return wifiaware.InterfaceCheck{}, err
	}

	d.logger().WithFields(logrus.Fields{
		"iface": name,
		"radio": check.Report.Radio.Name,
		"nan":   check.Report.NANSupported,
	}).Debug("checked interface")

	return check, nil
}

// withAvailable attaches the names of present interfaces to a
// not-found error. A failure to list them keeps the original error.
func (d Discoverer) withAvailable(s wifiaware.RadioSession, name string, notFound error) error {
	ifaces, err := s.Interfaces()
	if err != nil {
		d.logger().WithError(err).Debug("could not list interfaces")
		return notFound
	}

	names := make([]string, 0, len(ifaces))
	for _, ifi := range ifaces {
		names = append(names, ifi.Name)
	}

	de := &wifiaware.DiscoveryError{Kind: wifiaware.DeviceNotFound, Name: name}
	var orig *wifiaware.DiscoveryError
	if errors.As(notFound, &orig) {
		*de = *orig
	}
	de.Available = names
	return de
}

// withSession opens a session, runs fn and closes the session on
// every path. A close error is only reported if fn succeeded.
func (d Discoverer) withSession(fn func(s wifiaware.RadioSession) error) (err error) {
	s, err := d.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			d.logger().WithError(cerr).Warn("failed to close nl80211 session")
			if err == nil {
				err = wifiaware.NewError(wifiaware.KernelQueryFailed, "", cerr)
			}
		}
	}()

	return fn(s)
}

func (d Discoverer) logger() logrus.FieldLogger {
	return wifiaware.LoggerOrDiscard(d.Log)
}
