package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/event-resource-booking/internal/engine"
	"github.com/iliyamo/event-resource-booking/internal/model"
)

// BlockRepo provides CRUD operations for manual blocks.  A block names
// either one resource or one pool and removes a date from availability
// regardless of reservation count.  Blocks are admin-entered and read
// by both the month compiler and the commit transaction.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo constructs a BlockRepo with the given DB handle.
func NewBlockRepo(db *sql.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

// Create inserts a new block.  Exactly one of ResourceID and PoolID
// must be set; the handler validates that before calling.  After the
// insert the generated ID and timestamp are populated on the record.
func (r *BlockRepo) Create(ctx context.Context, b *model.Block) error {
	const q = `INSERT INTO blocks (resource_id, pool_id, block_date, reason) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, b.ResourceID, b.PoolID, b.BlockDate, b.Reason)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT id, resource_id, pool_id, block_date, reason, created_at FROM blocks WHERE id = ?`
	return scanBlock(r.db.QueryRowContext(ctx, sel, b.ID), b)
}

// Delete removes a block by ID.  It returns ErrBlockNotFound when no
// row matched.
func (r *BlockRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM blocks WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBlockNotFound
	}
	return nil
}

// ListForMonth returns the blocks touching the given resources or pool
// within one calendar month.  Used by the availability read path.
func (r *BlockRepo) ListForMonth(ctx context.Context, resourceIDs []string, poolID string, year int, month time.Month) ([]model.Block, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	query, args := blockScopeQuery(resourceIDs, poolID)
	query += ` AND block_date BETWEEN ? AND ? ORDER BY block_date, id`
	args = append(args, first.Format(engine.DateFormat), last.Format(engine.DateFormat))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// ListForDateTx returns the blocks covering the given resources or
// pool on one date, read inside an existing transaction.
func (r *BlockRepo) ListForDateTx(ctx context.Context, tx *sql.Tx, resourceIDs []string, poolID, date string) ([]model.Block, error) {
	query, args := blockScopeQuery(resourceIDs, poolID)
	query += ` AND block_date = ? ORDER BY id`
	args = append(args, date)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// ListAll returns every block within one calendar month regardless of
// scope.  Used by the admin listing.
func (r *BlockRepo) ListAll(ctx context.Context, year int, month time.Month) ([]model.Block, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	const q = `SELECT id, resource_id, pool_id, block_date, reason, created_at
	           FROM blocks WHERE block_date BETWEEN ? AND ? ORDER BY block_date, id`
	rows, err := r.db.QueryContext(ctx, q, first.Format(engine.DateFormat), last.Format(engine.DateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// blockScopeQuery builds the WHERE clause matching blocks on any of
// the given resources or on the pool itself.
func blockScopeQuery(resourceIDs []string, poolID string) (string, []interface{}) {
	query := `SELECT id, resource_id, pool_id, block_date, reason, created_at FROM blocks WHERE (`
	args := make([]interface{}, 0, len(resourceIDs)+1)
	if len(resourceIDs) > 0 {
		query += `resource_id IN (` + placeholders(len(resourceIDs)) + `)`
		for _, id := range resourceIDs {
			args = append(args, id)
		}
	} else {
		query += `1 = 0`
	}
	if poolID != "" {
		query += ` OR pool_id = ?`
		args = append(args, poolID)
	}
	query += `)`
	return query, args
}

func scanBlock(s scanner, b *model.Block) error {
	var resourceID, poolID sql.NullString
	var blockDate time.Time
	if err := s.Scan(&b.ID, &resourceID, &poolID, &blockDate, &b.Reason, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBlockNotFound
		}
		return err
	}
	b.BlockDate = blockDate.Format(engine.DateFormat)
	if resourceID.Valid {
		v := resourceID.String
		b.ResourceID = &v
	}
	if poolID.Valid {
		v := poolID.String
		b.PoolID = &v
	}
	return nil
}

func scanBlocks(rows *sql.Rows) ([]model.Block, error) {
	out := make([]model.Block, 0)
	for rows.Next() {
		var b model.Block
		if err := scanBlock(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
