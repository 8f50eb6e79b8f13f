package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/iliyamo/event-resource-booking/internal/model"
)

// ErrResourceNotFound is returned when a resource lookup fails or the
// resource is inactive.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceRepo provides read access to the resource catalog.  The
// catalog is seeded data: scheduling class and pool membership never
// change at runtime, so no mutation methods exist here.
type ResourceRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewResourceRepo constructs a ResourceRepo with the given DB handle.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// GetByID retrieves a single active resource.  It returns
// ErrResourceNotFound when no active row matches.
func (r *ResourceRepo) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	const q = `SELECT id, name, pool_id, class, unit_rank, is_active, created_at
	           FROM resources WHERE id = ? AND is_active = 1`
	var res model.Resource
	var poolID sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.Name, &poolID, &res.Class, &res.UnitRank, &res.Active, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	if poolID.Valid {
		res.PoolID = poolID.String
	}
	return &res, nil
}

// ListActive returns every active resource ordered by pool and rank so
// public listings are stable.
func (r *ResourceRepo) ListActive(ctx context.Context) ([]model.Resource, error) {
	const q = `SELECT id, name, pool_id, class, unit_rank, is_active, created_at
	           FROM resources WHERE is_active = 1
	           ORDER BY pool_id, unit_rank, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Resource, 0)
	for rows.Next() {
		var res model.Resource
		var poolID sql.NullString
		if err := rows.Scan(&res.ID, &res.Name, &poolID, &res.Class, &res.UnitRank, &res.Active, &res.CreatedAt); err != nil {
			return nil, err
		}
		if poolID.Valid {
			res.PoolID = poolID.String
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Classify resolves a resource ID into the profile the evaluator needs:
// its scheduling class, pool scope and the ordered unit list.  An
// exclusive resource is its own pool of one.  For a pool member the
// whole pool is loaded, ordered by (unit_rank, id) so unit assignment
// stays deterministic.  Returns ErrResourceNotFound for unknown or
// inactive IDs.
func (r *ResourceRepo) Classify(ctx context.Context, id string) (model.ResourceProfile, error) {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return model.ResourceProfile{}, err
	}
	profile := model.ResourceProfile{Class: res.Class, PoolID: res.PoolID}
	if res.Class != model.ClassPool || res.PoolID == "" {
		profile.PoolSize = 1
		profile.Units = []string{res.ID}
		return profile, nil
	}
	const q = `SELECT id FROM resources
	           WHERE pool_id = ? AND is_active = 1
	           ORDER BY unit_rank, id`
	rows, err := r.db.QueryContext(ctx, q, res.PoolID)
	if err != nil {
		return model.ResourceProfile{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var unit string
		if err := rows.Scan(&unit); err != nil {
			return model.ResourceProfile{}, err
		}
		profile.Units = append(profile.Units, unit)
	}
	if err := rows.Err(); err != nil {
		return model.ResourceProfile{}, err
	}
	profile.PoolSize = len(profile.Units)
	return profile, nil
}
