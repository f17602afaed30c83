package wifiaware

// see ./system/nl80211 for the kernel implementation

// A RadioSession is an exclusively owned connection to the kernel's
// wireless configuration channel. It must be closed exactly once by
// whoever opened it.
type RadioSession interface {
	// Radios lists every wiphy with its supported interface modes,
	// in kernel order. It fails with NoDeviceFound if there are none.
	Radios() ([]RadioDevice, error)
	// Radio fetches a single wiphy by kernel index.
	Radio(index int) (RadioDevice, error)
	// Interfaces lists every wireless interface in kernel order.
	Interfaces() ([]NetworkInterface, error)
	// Interface resolves a named interface, failing with
	// DeviceNotFound if it is absent or not a wireless interface.
	Interface(name string) (NetworkInterface, error)
	Close() error
}

// SessionOpener opens a fresh RadioSession for one discovery run.
type SessionOpener func() (RadioSession, error)
