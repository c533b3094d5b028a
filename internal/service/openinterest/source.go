package openinterest

import "context"

// Open interest change labels.
const (
	ChangeDeclining = "declining"
	ChangeStable    = "stable"
	ChangeSpike     = "spike"
	ChangeGrowing   = "growing"
)

// Source reports the recent open-interest change for a contract. Real
// open-interest feeds (exchange reports, CFTC data) plug in behind this
// interface.
type Source interface {
	Change(ctx context.Context, ticker string) (string, error)
}

// Static always reports a fixed change label. The default wiring uses
// ChangeSpike until a real feed is connected.
type Static struct {
	Value string
}

// NewStatic creates a Source that always reports value.
func NewStatic(value string) *Static {
	return &Static{Value: value}
}

func (s *Static) Change(_ context.Context, _ string) (string, error) {
	return s.Value, nil
}
