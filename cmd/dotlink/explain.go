package dotlink

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// Explain topics
const (
	topicDescriptor = "descriptor"
	topicConfig     = "config"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "explain [descriptor|config]",
		Short:     MsgExplainShort,
		Long:      MsgExplainLong,
		GroupID:   "misc",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{topicDescriptor, topicConfig},
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := topicDescriptor
			if len(args) == 1 {
				topic = strings.ToLower(args[0])
			}

			content, err := topicContent(topic)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(content, stdoutIsTerminal()))
			return err
		},
	}
}

func topicContent(topic string) (string, error) {
	switch topic {
	case topicDescriptor:
		return MsgDescriptorReference, nil
	case topicConfig:
		return MsgConfigReference + "```toml\n" + config.DefaultContent() + "```\n", nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrUnknownTopic, topic).
			WithDetail("topic", topic)
	}
}

// renderMarkdown renders content with glamour, falling back to the raw
// markdown when rendering fails.
func renderMarkdown(content string, terminal bool) string {
	options := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if terminal {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
