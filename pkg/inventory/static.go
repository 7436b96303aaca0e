package inventory

// StaticProvider serves a fixed list of records.
type StaticProvider struct {
	Records []Record
	Err     error
}

// NewStaticProvider creates a provider over records.
func NewStaticProvider(records ...Record) *StaticProvider {
	return &StaticProvider{Records: records}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) Query() ([]Record, error) {
	out := make([]Record, len(p.Records))
	copy(out, p.Records)
	return out, p.Err
}
