package booking

import (
	"context"
	"sync"

	"medequip-console/internal/logger"
)

// Input is the reactive tuple the quote synchronizer tracks: the equipment,
// the requested period, and the requested quantity.
type Input struct {
	EquipmentID int64
	StartDate   string
	EndDate     string
	Quantity    int
}

func (in Input) complete() bool {
	return in.EquipmentID > 0 && in.StartDate != "" && in.EndDate != "" && in.Quantity > 0
}

// Quote is the derived-state snapshot for an input tuple. A nil pointer
// means "unknown": the query for that half has not resolved for the current
// tuple. Unknown is neither zero nor unavailable.
type Quote struct {
	Input        Input
	Availability *int
	Cost         *float64
}

// Eligible reports whether booking may proceed on this quote. It fails
// closed: false until availability for the period is known, and false
// whenever the known availability cannot cover the requested quantity.
func (q Quote) Eligible() bool {
	return q.Input.complete() && q.Availability != nil && *q.Availability >= q.Input.Quantity
}

// QuoteSynchronizer keeps availability and cost consistent with a rapidly
// changing input tuple despite overlapping in-flight queries.
//
// Every SetInput bumps a generation counter and both queries capture the
// generation at issue time; a result is applied only if the generation still
// matches on arrival. That makes the visible state last-request-wins rather
// than first-response-wins: a slow early response can never clobber a faster
// later one. In-flight requests are not aborted at the transport level, only
// ignored on completion.
type QuoteSynchronizer struct {
	oracle QuoteOracle

	mu           sync.Mutex
	gen          uint64
	input        Input
	availability *int
	cost         *float64
}

func NewQuoteSynchronizer(oracle QuoteOracle) *QuoteSynchronizer {
	return &QuoteSynchronizer{oracle: oracle}
}

// SetInput records a new input tuple, clears the derived state, and — when
// the tuple is complete — issues the two quote queries. The queries are
// independent: they may resolve out of order and each updates only its own
// half of the state. A failed query leaves its half unknown and is logged as
// a non-blocking diagnostic; it never disturbs the other query.
func (s *QuoteSynchronizer) SetInput(ctx context.Context, in Input) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.input = in
	s.availability = nil
	s.cost = nil
	s.mu.Unlock()

	if !in.complete() {
		return
	}

	go func() {
		qty, err := s.oracle.AvailableQuantityForPeriod(ctx, in.EquipmentID, in.StartDate, in.EndDate)
		if err != nil {
			logger.Warn("Availability query failed", "equipment_id", in.EquipmentID, "error", err)
			return
		}
		s.apply(gen, func() { s.availability = &qty })
	}()

	go func() {
		cost, err := s.oracle.CalculateCost(ctx, in.EquipmentID, in.StartDate, in.EndDate, in.Quantity)
		if err != nil {
			logger.Warn("Cost query failed", "equipment_id", in.EquipmentID, "error", err)
			return
		}
		s.apply(gen, func() { s.cost = &cost })
	}()
}

// apply runs update only if the tuple has not changed since gen was issued.
func (s *QuoteSynchronizer) apply(gen uint64, update func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	update()
}

// Snapshot returns the current quote. The pointers are copies, so the
// snapshot stays stable while the synchronizer moves on.
func (s *QuoteSynchronizer) Snapshot() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := Quote{Input: s.input}
	if s.availability != nil {
		v := *s.availability
		q.Availability = &v
	}
	if s.cost != nil {
		v := *s.cost
		q.Cost = &v
	}
	return q
}
