package inventory

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
)

// Snapshot is the read-only view of the inventory for one run.
type Snapshot struct {
	records []Record
}

// NewSnapshot keeps the visible records, in order.
func NewSnapshot(records []Record) *Snapshot {
	visible := make([]Record, 0, len(records))
	for _, r := range records {
		if Visible(r) {
			visible = append(visible, r)
		}
	}
	return &Snapshot{records: visible}
}

// Load queries the provider once. Records returned alongside an error are
// kept, so one failing source does not hide the others; the error is
// returned for the caller to report.
func Load(p Provider) (*Snapshot, error) {
	logger := logging.GetLogger("inventory")
	if p == nil {
		return NewSnapshot(nil), nil
	}

	records, err := p.Query()
	snap := NewSnapshot(records)

	logger.Debug().
		Str("provider", p.Name()).
		Int("raw", len(records)).
		Int("visible", snap.Len()).
		Msg("Inventory loaded")

	if err != nil {
		return snap, errors.Wrapf(err, errors.ErrInventoryQuery, "inventory query via %s failed", p.Name())
	}
	return snap, nil
}

// Records returns a copy of the visible records.
func (s *Snapshot) Records() []Record {
	if s == nil {
		return nil
	}
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of visible records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}
