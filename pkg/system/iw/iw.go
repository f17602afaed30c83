package iw

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/sirupsen/logrus"
)

var _ wifiaware.RadioSession = &Session{}

// iw spells interface modes its own way; this maps
// them onto the names the nl80211 backend reports.
var iwModeNames = map[string]string{
	"ibss":                     "ibss",
	"managed":                  "station",
	"ap":                       "ap",
	"ap/vlan":                  "ap-vlan",
	"wds":                      "wds",
	"monitor":                  "monitor",
	"mesh point":               "mesh-point",
	"p2p-client":               "p2p-client",
	"p2p-go":                   "p2p-go",
	"p2p-device":               "p2p-device",
	"outside context of a bss": "ocb",
	"nan":                      wifiaware.ModeNAN,
}

var (
	wiphyRegex      = regexp.MustCompile(`^Wiphy (\S+)`)
	wiphyIndexRegex = regexp.MustCompile(`^\s+wiphy index: (\d+)`)
	modeItemRegex   = regexp.MustCompile(`^\s+\* (.+)$`)
	phyRegex        = regexp.MustCompile(`^phy#(\d+)`)
	interfaceRegex  = regexp.MustCompile(`^\s+Interface (\S+)`)
	unnamedRegex    = regexp.MustCompile(`^\s+Unnamed/non-netdev interface`)
	ifindexRegex    = regexp.MustCompile(`^\s+ifindex (\d+)`)
	wdevRegex       = regexp.MustCompile(`^\s+wdev (0x[0-9a-fA-F]+)`)
	typeRegex       = regexp.MustCompile(`^\s+type (.+)$`)
)

// Session answers RadioSession queries by running the iw binary.
// It holds no kernel handle of its own.
type Session struct {
	path string
	log  logrus.FieldLogger
}

// Opener returns a SessionOpener using the iw binary found on PATH.
func Opener(log logrus.FieldLogger) wifiaware.SessionOpener {
	return func() (wifiaware.RadioSession, error) {
		path, err := exec.LookPath("iw")
		if err != nil {
			return nil, wifiaware.NewError(wifiaware.KernelQueryFailed, "", fmt.Errorf("iw not installed: %w", err))
		}
		return &Session{path: path, log: wifiaware.LoggerOrDiscard(log)}, nil
	}
}

func (s *Session) Close() error { return nil }

func (s *Session) Radios() ([]wifiaware.RadioDevice, error) {
	out, err := s.run("list")
	if err != nil {
		return nil, err
	}

	radios := parseIWList(out)
	if len(radios) == 0 {
		return nil, wifiaware.NewError(wifiaware.NoDeviceFound, "", nil)
	}
	return radios, nil
}

func (s *Session) Radio(index int) (wifiaware.RadioDevice, error) {
	out, err := s.run("list")
	if err != nil {
		return wifiaware.RadioDevice{}, err
	}

	for _, r := range parseIWList(out) {
		if r.Index == index {
			return r, nil
		}
	}
	return wifiaware.RadioDevice{}, wifiaware.NewError(wifiaware.DeviceNotFound, fmt.Sprintf("phy#%d", index), nil)
}

func (s *Session) Interfaces() ([]wifiaware.NetworkInterface, error) {
	out, err := s.run("dev")
	if err != nil {
		return nil, err
	}
	return parseIWDev(out), nil
}

func (s *Session) Interface(name string) (wifiaware.NetworkInterface, error) {
	ifaces, err := s.Interfaces()
	if err != nil {
		return wifiaware.NetworkInterface{}, err
	}

	for _, ifi := range ifaces {
		if ifi.Name == name {
			return ifi, nil
		}
	}
	return wifiaware.NetworkInterface{}, wifiaware.NewError(wifiaware.DeviceNotFound, name, nil)
}

func (s *Session) run(args ...string) (string, error) {
	cmd := exec.Command(s.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.log.WithField("args", args).Debug("running iw")

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "Operation not permitted") || strings.Contains(msg, "Permission denied") {
			return "", wifiaware.NewError(wifiaware.PermissionDenied, "", fmt.Errorf("iw %s: %s", strings.Join(args, " "), msg))
		}
		if strings.Contains(msg, "nl80211 not found") {
			return "", wifiaware.NewError(wifiaware.NoDeviceFound, "", errors.New(msg))
		}
		return "", wifiaware.NewError(wifiaware.KernelQueryFailed, "", fmt.Errorf("iw %s: %w", strings.Join(args, " "), err))
	}

	return stdout.String(), nil
}

// parseIWList reads `iw list` output. Only the "Supported interface
// modes" block is used; software modes are listed again there.
func parseIWList(output string) []wifiaware.RadioDevice {
	radios := []wifiaware.RadioDevice{}
	var (
		cur     *wifiaware.RadioDevice
		inModes bool
		indent  int
	)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		if m := wiphyRegex.FindStringSubmatch(line); m != nil {
			radios = append(radios, wifiaware.RadioDevice{
				Index:          -1,
				Name:           m[1],
				SupportedModes: []string{},
			})
			cur = &radios[len(radios)-1]
			inModes = false
			continue
		}
		if cur == nil {
			continue
		}

		if inModes {
			if m := modeItemRegex.FindStringSubmatch(line); m != nil && leadingTabs(line) > indent {
				cur.SupportedModes = append(cur.SupportedModes, modeName(m[1]))
				continue
			}
			inModes = false
		}

		if m := wiphyIndexRegex.FindStringSubmatch(line); m != nil {
			cur.Index, _ = strconv.Atoi(m[1])
			continue
		}
		if strings.TrimSpace(line) == "Supported interface modes:" {
			inModes = true
			indent = leadingTabs(line)
		}
	}

	// Old iw releases do not print the index; wiphys are listed in
	// index order with the name carrying the number.
	for i := range radios {
		if radios[i].Index < 0 {
			radios[i].Index = indexFromName(radios[i].Name, i)
		}
	}

	return radios
}

// parseIWDev reads `iw dev` output.
func parseIWDev(output string) []wifiaware.NetworkInterface {
	ifaces := []wifiaware.NetworkInterface{}
	phy := -1
	var cur *wifiaware.NetworkInterface

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		if m := phyRegex.FindStringSubmatch(line); m != nil {
			phy, _ = strconv.Atoi(m[1])
			cur = nil
			continue
		}
		if m := interfaceRegex.FindStringSubmatch(line); m != nil {
			ifaces = append(ifaces, wifiaware.NetworkInterface{Name: m[1], RadioIndex: phy})
			cur = &ifaces[len(ifaces)-1]
			continue
		}
		if unnamedRegex.MatchString(line) {
			ifaces = append(ifaces, wifiaware.NetworkInterface{RadioIndex: phy})
			cur = &ifaces[len(ifaces)-1]
			continue
		}
		if cur == nil {
			continue
		}

		if m := ifindexRegex.FindStringSubmatch(line); m != nil {
			cur.Index, _ = strconv.Atoi(m[1])
		} else if m := wdevRegex.FindStringSubmatch(line); m != nil {
			if cur.Name == "" {
				cur.Name = "wdev " + m[1]
			}
		} else if m := typeRegex.FindStringSubmatch(line); m != nil {
			cur.Mode = modeName(m[1])
		}
	}

	return ifaces
}

func modeName(s string) string {
	s = strings.TrimSpace(s)
	if name, ok := iwModeNames[strings.ToLower(s)]; ok {
		return name
	}
	return strings.ToLower(s)
}

func leadingTabs(s string) int {
	return len(s) - len(strings.TrimLeft(s, "\t"))
}

func indexFromName(name string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimPrefix(name, "phy")); err == nil {
		return n
	}
	return fallback
}
