package report

import (
	"encoding/json"
	"errors"
	"io"

	wifiaware "github.com/dogeorg/wifiaware/pkg"
	"github.com/dogeorg/wifiaware/pkg/system/host"
)

type Document struct {
	Host     *host.Info                 `json:"host,omitempty"`
	Result   *wifiaware.DiscoveryResult `json:"result,omitempty"`
	Check    *wifiaware.InterfaceCheck  `json:"check,omitempty"`
	Error    *ErrorDocument             `json:"error,omitempty"`
	ExitCode int                        `json:"exitCode"`
}

type ErrorDocument struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name,omitempty"`
	Available []string `json:"available,omitempty"`
	Message   string   `json:"message"`
}

func NewErrorDocument(err error) *ErrorDocument {
	doc := &ErrorDocument{
		Kind:    wifiaware.KindOf(err).String(),
		Message: err.Error(),
	}

	var de *wifiaware.DiscoveryError
	if errors.As(err, &de) {
		doc.Name = de.Name
		doc.Available = de.Available
	}
	return doc
}

func WriteJSON(w io.Writer, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
