//go:build !linux

package nl80211

import (
	"errors"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/sirupsen/logrus"
)

var errUnsupported = errors.New("nl80211 is only available on Linux")

// Opener always fails off Linux.
func Opener(log logrus.FieldLogger) wifiaware.SessionOpener {
	return func() (wifiaware.RadioSession, error) {
		return nil, wifiaware.NewError(wifiaware.KernelQueryFailed, "", errUnsupported)
	}
}
