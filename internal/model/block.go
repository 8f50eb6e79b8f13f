package model

import "time"

// Block is an admin-entered override that removes a date from
// availability regardless of how many reservations exist.  A block
// names either a single resource or a whole pool, never both.  The
// evaluator treats a block as a synthetic full-capacity reservation
// with no time bounds: the entire day is closed.
type Block struct {
	ID         uint64    // blocks.id
	ResourceID *string   // blocks.resource_id (nullable)
	PoolID     *string   // blocks.pool_id (nullable)
	BlockDate  string    // blocks.block_date (YYYY-MM-DD)
	Reason     string    // blocks.reason
	CreatedAt  time.Time // blocks.created_at
}

// CoversResource reports whether the block applies to the given
// resource, either directly or through the resource's pool.
func (b Block) CoversResource(resourceID, poolID string) bool {
	if b.ResourceID != nil && *b.ResourceID == resourceID {
		return true
	}
	return b.CoversPool(poolID)
}

// CoversPool reports whether the block shuts down an entire pool.
func (b Block) CoversPool(poolID string) bool {
	return b.PoolID != nil && poolID != "" && *b.PoolID == poolID
}
