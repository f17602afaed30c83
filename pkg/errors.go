package wifiaware

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	KernelQueryFailed ErrorKind = iota
	NoDeviceFound
	DeviceNotFound
	PermissionDenied
)

func (k ErrorKind) String() string {
	switch k {
	case NoDeviceFound:
		return "no wireless device found"
	case DeviceNotFound:
		return "device not found"
	case PermissionDenied:
		return "permission denied"
	default:
		return "kernel query failed"
	}
}

// Sentinels for errors.Is, matched by kind only.
var (
	ErrNoDeviceFound     = &DiscoveryError{Kind: NoDeviceFound}
	ErrDeviceNotFound    = &DiscoveryError{Kind: DeviceNotFound}
	ErrPermissionDenied  = &DiscoveryError{Kind: PermissionDenied}
	ErrKernelQueryFailed = &DiscoveryError{Kind: KernelQueryFailed}
)

// DiscoveryError is returned by every failing discovery operation.
// Name is the interface or device involved, if any. Available lists
// the interfaces present on the host when a named interface could
// not be resolved, and may be nil if they could not be listed.
type DiscoveryError struct {
	Kind      ErrorKind
	Name      string
	Available []string
	Err       error
}

func (e *DiscoveryError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Name != "" {
		fmt.Fprintf(&sb, ": %q", e.Name)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

func (e *DiscoveryError) Is(target error) bool {
	var t *DiscoveryError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Name == "" && t.Err == nil
}

// NewError builds a DiscoveryError of the given kind.
func NewError(kind ErrorKind, name string, err error) *DiscoveryError {
	return &DiscoveryError{Kind: kind, Name: name, Err: err}
}

// KindOf reports the kind of a discovery error. Errors that did
// not come from discovery are treated as KernelQueryFailed.
func KindOf(err error) ErrorKind {
	var de *DiscoveryError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KernelQueryFailed
}
