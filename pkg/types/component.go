package types

import (
	"github.com/arthur-debert/dotlink/pkg/inventory"
)

// Component is one manageable unit of configuration: a direct subdirectory of
// the dotfiles root.
type Component struct {
	// Name is the subdirectory's base name.
	Name string `json:"name" yaml:"name"`

	// FriendlyName is a human label, from the descriptor or the matched
	// inventory record.
	FriendlyName string `json:"friendlyName,omitempty" yaml:"friendlyName,omitempty"`

	Availability Availability `json:"availability" yaml:"availability"`

	// SourcePath is the absolute path of the component's subdirectory.
	SourcePath string `json:"sourcePath" yaml:"sourcePath"`

	// InstallPath is where the tree gets mirrored. Set only for installable
	// components whose install path resolved cleanly.
	InstallPath string `json:"installPath,omitempty" yaml:"installPath,omitempty"`

	// RemovePath is where links from an earlier install would be found. It
	// is resolved whatever the availability, so links outlive the software
	// they were made for and can still be removed.
	RemovePath string `json:"-" yaml:"-"`

	// InventoryRef is the record automatic detection matched, if any.
	InventoryRef *inventory.Record `json:"inventoryRef,omitempty" yaml:"inventoryRef,omitempty"`

	// Problems holds configuration errors found while resolving the component.
	Problems []error `json:"-" yaml:"-"`
}

// AddProblem annotates the component with a configuration error.
func (c *Component) AddProblem(err error) {
	if err != nil {
		c.Problems = append(c.Problems, err)
	}
}

// HasProblems reports whether any configuration error was recorded.
func (c *Component) HasProblems() bool {
	return len(c.Problems) > 0
}

// CanInstall reports whether the linker should process this component.
func (c *Component) CanInstall() bool {
	return c.Availability.Installable() && c.InstallPath != ""
}

// ProblemMessages renders Problems for JSON/YAML output.
func (c *Component) ProblemMessages() []string {
	if len(c.Problems) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(c.Problems))
	for _, p := range c.Problems {
		msgs = append(msgs, p.Error())
	}
	return msgs
}
