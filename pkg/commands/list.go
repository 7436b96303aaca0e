package commands

import (
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// ListComponentsOptions defines the options for the ListComponents command.
type ListComponentsOptions struct {
	Options
}

// ListResult is the classification of every selected component.
type ListResult struct {
	DotfilesRoot string             `json:"dotfilesRoot" yaml:"dotfilesRoot"`
	Components   []*types.Component `json:"-" yaml:"-"`

	// InventorySize is the number of visible inventory records.
	InventorySize int `json:"inventorySize" yaml:"inventorySize"`

	// InventoryError is set when the inventory could not be fully read.
	InventoryError error `json:"-" yaml:"-"`
}

// Summary groups component names by availability.
type Summary map[types.Availability][]string

// Groups returns the non-empty groups in availability declaration order.
func (s Summary) Groups() []SummaryGroup {
	var groups []SummaryGroup
	for _, a := range types.AllAvailabilities() {
		if names := s[a]; len(names) > 0 {
			groups = append(groups, SummaryGroup{Availability: a, Names: names})
		}
	}
	return groups
}

// SummaryGroup is one availability and its components.
type SummaryGroup struct {
	Availability types.Availability `json:"availability" yaml:"availability"`
	Names        []string           `json:"names" yaml:"names"`
}

// Summary groups the listed components by classification.
func (r *ListResult) Summary() Summary {
	s := Summary{}
	for _, c := range r.Components {
		s[c.Availability] = append(s[c.Availability], c.Name)
	}
	return s
}

// ComponentView is the serializable form of a component.
type ComponentView struct {
	Name         string            `json:"name" yaml:"name"`
	FriendlyName string            `json:"friendlyName,omitempty" yaml:"friendlyName,omitempty"`
	Availability string            `json:"availability" yaml:"availability"`
	SourcePath   string            `json:"sourcePath" yaml:"sourcePath"`
	InstallPath  string            `json:"installPath,omitempty" yaml:"installPath,omitempty"`
	Detected     *inventory.Record `json:"detected,omitempty" yaml:"detected,omitempty"`
	Problems     []string          `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// Views converts the components for JSON and YAML output.
func (r *ListResult) Views() []ComponentView {
	views := make([]ComponentView, 0, len(r.Components))
	for _, c := range r.Components {
		views = append(views, ComponentView{
			Name:         c.Name,
			FriendlyName: c.FriendlyName,
			Availability: c.Availability.String(),
			SourcePath:   c.SourcePath,
			InstallPath:  c.InstallPath,
			Detected:     c.InventoryRef,
			Problems:     c.ProblemMessages(),
		})
	}
	return views
}

// ConfigErrors counts configuration errors across components.
func (r *ListResult) ConfigErrors() int {
	n := 0
	for _, c := range r.Components {
		n += len(c.Problems)
	}
	return n
}

// ListComponents classifies the components in the dotfiles root.
func ListComponents(opts ListComponentsOptions) (*ListResult, error) {
	log := logging.GetLogger("commands.list")
	defer logging.LogOperationStart(log, "ListComponents")()

	res, err := resolveComponents(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		DotfilesRoot:   opts.Config.DotfilesRoot,
		Components:     res.components,
		InventorySize:  res.inventorySize,
		InventoryError: res.inventoryErr,
	}

	log.Info().Str("command", "ListComponents").Int("componentCount", len(result.Components)).Msg("Command finished")
	return result, nil
}
