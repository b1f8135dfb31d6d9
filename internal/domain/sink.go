package domain

import "context"

// AggregateSink receives each parser's finalized, immutable entity
// collection at the end of a pass. The storage layer implements it;
// parsers never see what happens to the entities afterwards.
type AggregateSink interface {
	StoreAirports(ctx context.Context, airports []*Airport) error
	StoreNavaids(ctx context.Context, navaids []*Navaid) error
	StoreAirways(ctx context.Context, airways []*Airway) error
	StoreILS(ctx context.Context, systems []*ILS) error
}
