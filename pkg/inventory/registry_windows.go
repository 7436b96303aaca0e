//go:build windows

package inventory

import (
	stderrors "errors"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

type uninstallRoot struct {
	key   registry.Key
	label string
	path  string
}

var uninstallRoots = []uninstallRoot{
	{registry.LOCAL_MACHINE, "HKLM", `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.LOCAL_MACHINE, "HKLM", `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`},
	{registry.CURRENT_USER, "HKCU", `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`},
}

// RegistryProvider reads the Windows uninstall registry.
type RegistryProvider struct{}

// NewRegistryProvider creates a provider over the uninstall registry keys.
func NewRegistryProvider() *RegistryProvider {
	return &RegistryProvider{}
}

func (p *RegistryProvider) Name() string { return "registry" }

func (p *RegistryProvider) Query() ([]Record, error) {
	var records []Record
	var errs []error
	for _, root := range uninstallRoots {
		recs, err := p.readRoot(root)
		records = append(records, recs...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return records, stderrors.Join(errs...)
}

func (p *RegistryProvider) readRoot(root uninstallRoot) ([]Record, error) {
	k, err := registry.OpenKey(root.key, root.path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		if stderrors.Is(err, registry.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrInventoryQuery, "cannot open %s\\%s", root.label, root.path).
			WithDetail("key", root.label+`\`+root.path)
	}
	names, err := k.ReadSubKeyNames(-1)
	k.Close()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInventoryQuery, "cannot enumerate %s\\%s", root.label, root.path).
			WithDetail("key", root.label+`\`+root.path)
	}

	var records []Record
	for _, name := range names {
		if rec, ok := p.readEntry(root, name); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (p *RegistryProvider) readEntry(root uninstallRoot, name string) (Record, bool) {
	path := root.path + `\` + name
	k, err := registry.OpenKey(root.key, path, registry.QUERY_VALUE)
	if err != nil {
		return Record{}, false
	}
	defer k.Close()

	rec := Record{
		Key:    root.label + `\` + path,
		Source: p.Name(),
	}
	rec.DisplayName, _, _ = k.GetStringValue("DisplayName")
	rec.DisplayVersion, _, _ = k.GetStringValue("DisplayVersion")
	rec.UninstallCommand, _, _ = k.GetStringValue("UninstallString")
	if v, _, err := k.GetIntegerValue("NoRemove"); err == nil {
		rec.NoRemove = v != 0
	}
	if v, _, err := k.GetIntegerValue("SystemComponent"); err == nil {
		rec.SystemComponent = v != 0
	}
	return rec, true
}
