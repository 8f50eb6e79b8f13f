package model

import "time"

// SchedulingClass determines which conflict rules apply to a resource.
// Every resource belongs to exactly one class and the class never
// changes at runtime.
type SchedulingClass string

const (
	// ClassExclusive marks a resource that serves one client at a time
	// (a DJ).  Up to two reservations per day are possible when they
	// split into a morning and an evening slot.
	ClassExclusive SchedulingClass = "EXCLUSIVE"
	// ClassPool marks a member of an interchangeable pool (a photobooth
	// unit).  Each unit takes exactly one reservation per day and any
	// free unit in the pool can satisfy a request.
	ClassPool SchedulingClass = "POOL"
)

// Resource describes one bookable entity from the catalog.
//
// Fields:
//  ID        – stable string identifier (e.g. "dj-aria", "booth-1").
//  Name      – human readable label shown to customers.
//  PoolID    – pool the resource belongs to; empty for exclusive
//              resources, which each form a pool of one.
//  Class     – scheduling class, see SchedulingClass.
//  UnitRank  – ordering inside a pool; the lowest-ranked free unit is
//              assigned first so assignment stays deterministic.
//  Active    – inactive resources are hidden and never bookable.
//  CreatedAt – creation timestamp.
type Resource struct {
	ID        string    // resources.id
	Name      string    // resources.name
	PoolID    string    // resources.pool_id (empty when NULL)
	Class     SchedulingClass // resources.class
	UnitRank  uint32    // resources.unit_rank
	Active    bool      // resources.is_active
	CreatedAt time.Time // resources.created_at
}

// ResourceProfile is the classification result for a booking target.
// It carries everything the evaluator needs: the class, the pool the
// request is scoped to and the ordered list of units that can satisfy
// it.  For an exclusive resource Units contains only the resource
// itself and PoolSize is 1.
type ResourceProfile struct {
	Class    SchedulingClass
	PoolID   string
	PoolSize int
	Units    []string // unit IDs ordered by (unit_rank, id)
}
