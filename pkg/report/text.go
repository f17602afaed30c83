package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/dogeorg/wifiaware/pkg/capability"
	"github.com/dogeorg/wifiaware/pkg/system/host"
	"github.com/muesli/termenv"
)

const (
	markOK   = "✓"
	markFail = "✗"
)

// TextRenderer writes human readable reports.
type TextRenderer struct {
	out   io.Writer
	hints bool

	good    lipgloss.Style
	bad     lipgloss.Style
	heading lipgloss.Style
	faint   lipgloss.Style
}

// NewTextRenderer styles output for w. Colour is only used when w
// is a terminal and noColor is false.
func NewTextRenderer(w io.Writer, hints, noColor bool) *TextRenderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &TextRenderer{
		out:     w,
		hints:   hints,
		good:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		bad:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		heading: r.NewStyle().Bold(true),
		faint:   r.NewStyle().Faint(true),
	}
}

func (t *TextRenderer) Host(info host.Info) {
	fmt.Fprintf(t.out, "%s %s (%s), kernel %s %s\n",
		t.heading.Render("Host:"), info.Hostname, strings.TrimSpace(info.Platform), info.KernelVersion, info.KernelArch)
	if !info.NANKernel {
		fmt.Fprintf(t.out, "%s kernel %s predates nl80211 NAN support (needs 4.9 or newer)\n",
			t.bad.Render("warning:"), info.KernelVersion)
	}
	fmt.Fprintln(t.out)
}

// Discovery writes one block per radio followed by a summary line.
func (t *TextRenderer) Discovery(res wifiaware.DiscoveryResult) {
	var nanRadios []string

	for _, rep := range res.Reports {
		t.radio(rep)
		if rep.NANSupported {
			nanRadios = append(nanRadios, rep.Radio.Name)
		}
	}

	if res.AnyNANSupported {
		fmt.Fprintf(t.out, "%s NAN support detected on %d of %d radios (%s)\n",
			t.good.Render(markOK), len(nanRadios), len(res.Reports), strings.Join(nanRadios, ", "))
		t.hint("WiFi Aware functionality should be available.")
		return
	}

	fmt.Fprintf(t.out, "%s NAN not supported by any of %d radios\n", t.bad.Render(markFail), len(res.Reports))
	t.hint("WiFi Aware will not work with this hardware/driver combination.")
	t.hint("Consider using a USB WiFi adapter with NAN support.")
}

// Interface writes the verdict for a single named interface.
func (t *TextRenderer) Interface(check wifiaware.InterfaceCheck) {
	rep := check.Report
	name := check.Interface.Name

	if rep.NANSupported {
		fmt.Fprintf(t.out, "%s NAN support detected on interface '%s' (%s)\n", t.good.Render(markOK), name, rep.Radio.Name)
		t.hint("WiFi Aware functionality should be available.")
		return
	}

	fmt.Fprintf(t.out, "%s NAN not supported on interface '%s' (%s)\n", t.bad.Render(markFail), name, rep.Radio.Name)
	fmt.Fprintf(t.out, "  %s\n", t.faint.Render("modes: "+t.modes(rep.Modes)))
	t.hint("WiFi Aware will not work with this hardware/driver combination.")
	t.hint("Consider using a USB WiFi adapter with NAN support.")
}

// Error writes a failed run, with remedies when hints are on.
func (t *TextRenderer) Error(err error) {
	var de *wifiaware.DiscoveryError
	if !errors.As(err, &de) {
		fmt.Fprintf(t.out, "%s Error: %v\n", t.bad.Render(markFail), err)
		return
	}

	switch de.Kind {
	case wifiaware.DeviceNotFound:
		fmt.Fprintf(t.out, "%s Error: Interface '%s' not found\n", t.bad.Render(markFail), de.Name)
		fmt.Fprintln(t.out, "  Available interfaces:")
		if de.Available == nil {
			fmt.Fprintln(t.out, "    (unable to enumerate interfaces)")
		}
		for _, name := range de.Available {
			fmt.Fprintf(t.out, "    - %s\n", name)
		}
	case wifiaware.PermissionDenied:
		fmt.Fprintf(t.out, "%s Error: Insufficient permissions to query nl80211\n", t.bad.Render(markFail))
		t.hint("Try running with sudo: sudo nancheck")
	case wifiaware.NoDeviceFound:
		fmt.Fprintf(t.out, "%s Error: No wireless devices found\n", t.bad.Render(markFail))
		t.hint("Check that a wireless adapter is attached and its driver is loaded.")
	default:
		fmt.Fprintf(t.out, "%s Error: %v\n", t.bad.Render(markFail), err)
	}
}

func (t *TextRenderer) radio(rep wifiaware.CapabilityReport) {
	fmt.Fprintf(t.out, "%s (index %d)\n", t.heading.Render(rep.Radio.Name), rep.Radio.Index)

	ifaces := "(none)"
	if len(rep.Interfaces) > 0 {
		ifaces = strings.Join(rep.Interfaces, ", ")
	}
	fmt.Fprintf(t.out, "  interfaces: %s\n", ifaces)
	fmt.Fprintf(t.out, "  modes:      %s\n", t.modes(rep.Modes))

	verdict := t.bad.Render(markFail + " not supported")
	if rep.NANSupported {
		verdict = t.good.Render(markOK + " supported")
	}
	fmt.Fprintf(t.out, "  NAN:        %s (%s)\n\n", verdict, rep.Reason)
}

// modes joins mode names, marking the NAN entry.
func (t *TextRenderer) modes(modes []string) string {
	if len(modes) == 0 {
		return "(none)"
	}

	out := make([]string, 0, len(modes))
	for _, m := range modes {
		if capability.SupportsNAN([]string{m}) {
			m = t.good.Render("[" + m + "]")
		}
		out = append(out, m)
	}
	return strings.Join(out, ", ")
}

func (t *TextRenderer) hint(s string) {
	if t.hints {
		fmt.Fprintf(t.out, "  %s\n", s)
	}
}
