package inventory

import (
	stderrors "errors"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// MultiProvider concatenates the records of several providers.
type MultiProvider struct {
	Providers []Provider
}

// NewMultiProvider creates a provider over providers, queried in order.
func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{Providers: providers}
}

func (m *MultiProvider) Name() string {
	names := make([]string, 0, len(m.Providers))
	for _, p := range m.Providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, "+")
}

// Query returns every record that could be read together with the joined
// errors of the providers that failed.
func (m *MultiProvider) Query() ([]Record, error) {
	var records []Record
	var errs []error
	for _, p := range m.Providers {
		recs, err := p.Query()
		records = append(records, recs...)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, errors.ErrInventoryQuery, "%s inventory failed", p.Name()).
				WithDetail("source", p.Name()))
		}
	}
	return records, stderrors.Join(errs...)
}
