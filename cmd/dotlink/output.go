package dotlink

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/commands"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/style"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	case "yml":
		return formatYAML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrUnknownFormat, s).
			WithDetail("format", s)
	}
}

// listDocument is the machine readable form of a list result.
type listDocument struct {
	DotfilesRoot   string                   `json:"dotfilesRoot" yaml:"dotfilesRoot"`
	InventorySize  int                      `json:"inventorySize" yaml:"inventorySize"`
	InventoryError string                   `json:"inventoryError,omitempty" yaml:"inventoryError,omitempty"`
	Components     []commands.ComponentView `json:"components,omitempty" yaml:"components,omitempty"`
	Summary        []commands.SummaryGroup  `json:"summary,omitempty" yaml:"summary,omitempty"`
}

func newListDocument(result *commands.ListResult, summary bool) listDocument {
	doc := listDocument{
		DotfilesRoot:  result.DotfilesRoot,
		InventorySize: result.InventorySize,
	}
	if result.InventoryError != nil {
		doc.InventoryError = result.InventoryError.Error()
	}
	if summary {
		doc.Summary = result.Summary().Groups()
	} else {
		doc.Components = result.Views()
	}
	return doc
}

// writeList prints a list result in the requested format.
func writeList(w io.Writer, renderer *style.TerminalRenderer, result *commands.ListResult, format outputFormat, summary bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newListDocument(result, summary))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newListDocument(result, summary)); err != nil {
			return err
		}
		return enc.Close()
	}

	if summary {
		_, err := fmt.Fprintln(w, renderer.RenderSummary(result.Summary()))
		return err
	}
	_, err := fmt.Fprintln(w, renderer.RenderComponentList(result))
	return err
}
