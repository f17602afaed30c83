package report

import (
	wifiaware "github.com/dogeorg/wifiaware/pkg"
)

// Process exit codes. NoDevice is kept apart from NoNAN so that
// "no hardware" is never mistaken for "hardware without NAN".
const (
	ExitNANAvailable      = 0
	ExitNoNAN             = 1
	ExitInterfaceNotFound = 2
	ExitPermissionDenied  = 3
	ExitFailure           = 4
	ExitNoDevice          = 5
)

// ExitCode picks the exit code for a verdict or a failed run.
func ExitCode(nan bool, err error) int {
	if err != nil {
		switch wifiaware.KindOf(err) {
		case wifiaware.DeviceNotFound:
			return ExitInterfaceNotFound
		case wifiaware.PermissionDenied:
			return ExitPermissionDenied
		case wifiaware.NoDeviceFound:
			return ExitNoDevice
		default:
			return ExitFailure
		}
	}

	if nan {
		return ExitNANAvailable
	}
	return ExitNoNAN
}
