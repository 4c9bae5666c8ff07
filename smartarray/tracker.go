package smartarray

import "sync/atomic"

// Tracker counts storage allocations and releases across every array that
// shares it. A nil *Tracker is valid and records nothing.
type Tracker struct {
	allocations atomic.Int64
	releases    atomic.Int64
	copies      atomic.Int64
	moves       atomic.Int64
}

// Stats is a point-in-time copy of a Tracker's counters. Each field is read
// atomically but the fields are not read together.
type Stats struct {
	Allocations int64 // storage blocks allocated
	Releases    int64 // storage blocks released
	Copies      int64 // copy constructions and copy assignments
	Moves       int64 // move constructions and move assignments
}

// Live is the number of storage blocks allocated and not yet released.
func (s Stats) Live() int64 { return s.Allocations - s.Releases }

func (t *Tracker) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	return Stats{
		Allocations: t.allocations.Load(),
		Releases:    t.releases.Load(),
		Copies:      t.copies.Load(),
		Moves:       t.moves.Load(),
	}
}

func (t *Tracker) addAllocation() {
	if t != nil {
		t.allocations.Add(1)
	}
}

func (t *Tracker) addRelease() {
	if t != nil {
		t.releases.Add(1)
	}
}

func (t *Tracker) addCopy() {
	if t != nil {
		t.copies.Add(1)
	}
}

func (t *Tracker) addMove() {
	if t != nil {
		t.moves.Add(1)
	}
}
