package cmd

import (
	"fmt"
	"io"

	"github.com/dogeorg/wifiaware/cmd/nancheck/utils"
	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/dogeorg/wifiaware/pkg/discovery"
	"github.com/dogeorg/wifiaware/pkg/report"
	"github.com/dogeorg/wifiaware/pkg/system/host"
	"github.com/dogeorg/wifiaware/pkg/system/iw"
	"github.com/dogeorg/wifiaware/pkg/system/nl80211"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	json    bool
	verbose bool
	hints   bool
	noColor bool
	host    bool
	backend string
}

func getOptions(cmd *cobra.Command) options {
	var o options
	o.json, _ = cmd.Flags().GetBool("json")
	o.verbose, _ = cmd.Flags().GetBool("verbose")
	noHints, _ := cmd.Flags().GetBool("no-hints")
	o.hints = !noHints
	o.noColor, _ = cmd.Flags().GetBool("no-color")
	o.host, _ = cmd.Flags().GetBool("host")
	o.backend, _ = cmd.Flags().GetString("backend")
	return o
}

func opener(backend string, log *logrus.Logger) (wifiaware.SessionOpener, error) {
	switch backend {
	case "nl80211":
		return nl80211.Opener(log), nil
	case "iw":
		return iw.Opener(log), nil
	default:
		return nil, fmt.Errorf("unknown backend %q, expected nl80211 or iw", backend)
	}
}

// run holds everything one invocation needs to produce its report.
type run struct {
	opts   options
	log    *logrus.Logger
	d      discovery.Discoverer
	stdout io.Writer
	stderr io.Writer
	info   *host.Info
}

func newRun(cmd *cobra.Command) (*run, error) {
	opts := getOptions(cmd)
	log := utils.NewLogger(opts.verbose)

	open, err := opener(opts.backend, log)
	if err != nil {
		return nil, err
	}

	r := &run{
		opts:   opts,
		log:    log,
		d:      discovery.NewDiscoverer(open, log),
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}

	if opts.host {
		info, err := host.Lookup()
		if err != nil {
			log.WithError(err).Debug("host details unavailable")
		} else {
			r.info = &info
		}
	}

	return r, nil
}

func runList(cmd *cobra.Command) int {
	r, err := newRun(cmd)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return report.ExitFailure
	}

	res, err := r.d.Discover()
	code := report.ExitCode(res.AnyNANSupported, err)

	if r.opts.json {
		doc := r.document(code, err)
		if err == nil {
			doc.Result = &res
		}
		return r.writeJSON(doc, code)
	}

	out := r.text(r.stdout)
	if r.info != nil {
		out.Host(*r.info)
	}
	if err != nil {
		r.text(r.stderr).Error(err)
		return code
	}
	out.Discovery(res)
	return code
}

func runCheck(cmd *cobra.Command, iface string) int {
	r, err := newRun(cmd)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return report.ExitFailure
	}

	check, err := r.d.CheckInterface(iface)
	code := report.ExitCode(check.Report.NANSupported, err)

	if r.opts.json {
		doc := r.document(code, err)
		if err == nil {
			doc.Check = &check
		}
		return r.writeJSON(doc, code)
	}

	out := r.text(r.stdout)
	if r.info != nil {
		out.Host(*r.info)
	}
	if err != nil {
		r.text(r.stderr).Error(err)
		return code
	}
	out.Interface(check)
	return code
}

func (r *run) text(w io.Writer) *report.TextRenderer {
	return report.NewTextRenderer(w, r.opts.hints, r.opts.noColor)
}

func (r *run) document(code int, err error) report.Document {
	doc := report.Document{Host: r.info, ExitCode: code}
	if err != nil {
		doc.Error = report.NewErrorDocument(err)
	}
	return doc
}

func (r *run) writeJSON(doc report.Document, code int) int {
	if err := report.WriteJSON(r.stdout, doc); err != nil {
		r.log.WithError(err).Error("failed to write report")
		return report.ExitFailure
	}
	return code
}
