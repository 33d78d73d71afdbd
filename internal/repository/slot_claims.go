package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/liuxh-dev/carpool-scheduler/backend/internal/domain"
	"github.com/liuxh-dev/carpool-scheduler/backend/internal/engine"
)

func (r *Repository) ListClaims() ([]*domain.SlotClaim, error) {
	query := `
		SELECT id, participant, day, drop_off, pick_up, created_at
		FROM carpool_selections
		ORDER BY created_at, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := []*domain.SlotClaim{}
	for rows.Next() {
		var claim domain.SlotClaim
		dst := []any{
			&claim.ID,
			&claim.Participant,
			&claim.Day,
			&claim.DropOff,
			&claim.PickUp,
			&claim.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		claims = append(claims, &claim)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return claims, nil
}

func (r *Repository) DeleteClaim(id int64) error {
	query := `
		DELETE FROM carpool_selections WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// BatchApply 把一批操作放在同一个事务里执行，任何一步失败整批回滚。
// 插入操作会把数据库分配的 id 和 created_at 回填到传入的指针里
func (r *Repository) BatchApply(muts []engine.Mutation) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, mut := range muts {
		switch mut.Op {
		case engine.OpInsertClaim:
			query := `
				INSERT INTO carpool_selections (participant, day, drop_off, pick_up)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at
			`
			params := []any{mut.Claim.Participant, mut.Claim.Day, mut.Claim.DropOff, mut.Claim.PickUp}
			if err := tx.QueryRowContext(ctx, query, params...).Scan(&mut.Claim.ID, &mut.Claim.CreatedAt); err != nil {
				return err
			}
		case engine.OpDeleteClaim:
			query := `DELETE FROM carpool_selections WHERE id = $1`
			res, err := tx.ExecContext(ctx, query, mut.ID)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrNotFound
			}
		case engine.OpInsertHoliday:
			query := `
				INSERT INTO school_holidays (day)
				VALUES ($1)
				RETURNING id, created_at
			`
			if err := tx.QueryRowContext(ctx, query, mut.Holiday.Day).Scan(&mut.Holiday.ID, &mut.Holiday.CreatedAt); err != nil {
				return err
			}
		case engine.OpDeleteHoliday:
			query := `DELETE FROM school_holidays WHERE id = $1`
			res, err := tx.ExecContext(ctx, query, mut.ID)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return domain.ErrNotFound
			}
		default:
			return fmt.Errorf("不支持的批量操作类型 %s", mut.Op)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
